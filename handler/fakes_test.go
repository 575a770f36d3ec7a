package handler

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/spetersoncode/dreamfuse"
	"github.com/spetersoncode/dreamfuse/media"
	"github.com/spetersoncode/dreamfuse/retry"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{R: 200, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// newImageServer serves a PNG on every path except /missing.
func newImageServer(t *testing.T) *httptest.Server {
	t.Helper()
	data := pngBytes(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Write(data)
	}))
	t.Cleanup(srv.Close)
	return srv
}

// testEnv returns an Env whose resolver points at srv and whose retries
// never sleep.
func testEnv(t *testing.T, srv *httptest.Server) Env {
	t.Helper()
	return Env{
		Resolver:  media.NewResolver(srv.URL + "/"),
		Fetcher:   media.NewFetcher(srv.Client()),
		OutputDir: t.TempDir(),
		TempDir:   t.TempDir(),
		Retry: retry.Config{
			Sleep: func(context.Context, time.Duration) error { return nil },
		},
	}
}

func dirEntries(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name()
	}
	return names
}

type chatCall struct {
	messages []dreamfuse.Message
	options  *dreamfuse.Options
}

// fakeChat answers with reply, which sees the 1-based call number.
type fakeChat struct {
	mu    sync.Mutex
	calls []chatCall
	reply func(n int, messages []dreamfuse.Message) (string, error)
}

func (f *fakeChat) Chat(ctx context.Context, messages []dreamfuse.Message, opts ...dreamfuse.Option) (*dreamfuse.Response, error) {
	f.mu.Lock()
	f.calls = append(f.calls, chatCall{messages: messages, options: dreamfuse.ApplyOptions(opts...)})
	n := len(f.calls)
	f.mu.Unlock()

	content, err := f.reply(n, messages)
	if err != nil {
		return nil, err
	}
	return &dreamfuse.Response{Content: content}, nil
}

func (f *fakeChat) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// fakeImages returns url for every prompt unless err is set.
type fakeImages struct {
	mu      sync.Mutex
	prompts []string
	options []*dreamfuse.ImageOptions
	url     string
	err     error
}

func (f *fakeImages) GenerateImage(ctx context.Context, prompt string, opts ...dreamfuse.ImageOption) (*dreamfuse.ImageResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)
	f.options = append(f.options, dreamfuse.ApplyImageOptions(opts...))
	if f.err != nil {
		return nil, f.err
	}
	return &dreamfuse.ImageResponse{Images: []dreamfuse.GeneratedImage{{URL: f.url}}}, nil
}

func contentPolicyError() error {
	return &dreamfuse.Error{
		Msg:  "Your request was rejected as a result of our safety system.",
		Cat:  dreamfuse.ErrorUserInput,
		Code: 400,
		Kind: dreamfuse.ContentPolicyCode,
	}
}

// userText returns the text of the last user message.
func userText(messages []dreamfuse.Message) string {
	for i := len(messages) - 1; i >= 0; i-- {
		m := messages[i]
		if m.Role != dreamfuse.RoleUser {
			continue
		}
		if !m.HasParts() {
			return m.Content
		}
		for _, p := range m.Parts {
			if p.Type == dreamfuse.ContentPartTypeText {
				return p.Text
			}
		}
	}
	return ""
}
