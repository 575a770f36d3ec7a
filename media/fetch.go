package media

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spetersoncode/dreamfuse"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

const userAgent = "dreamfuse/1.0"

// Fetcher downloads remote images.
type Fetcher struct {
	Client *http.Client
}

// NewFetcher returns a fetcher using client, or a client with a five minute
// timeout when nil. Generated images can be large and slow to serve.
func NewFetcher(client *http.Client) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Minute}
	}
	return &Fetcher{Client: client}
}

// Fetch downloads url and returns its body and MIME type.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, string, error) {
	data, mimeType, err := f.fetch(ctx, url)
	if err != nil {
		return nil, "", &dreamfuse.ImageError{Op: "fetch", URL: url, Err: err}
	}
	return data, mimeType, nil
}

func (f *Fetcher) fetch(ctx context.Context, url string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", err
	}
	// Many image hosts reject requests without a User-Agent
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", err
	}

	mimeType := resp.Header.Get("Content-Type")
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = InferMimeType(url)
	}
	return data, mimeType, nil
}

// SaveImage downloads url, decodes it and writes it to dst as PNG.
func (f *Fetcher) SaveImage(ctx context.Context, url, dst string) error {
	data, _, err := f.Fetch(ctx, url)
	if err != nil {
		return err
	}
	return SavePNG(data, dst)
}

// SavePNG decodes any supported image format and writes it to dst as PNG.
func SavePNG(data []byte, dst string) error {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return &dreamfuse.ImageError{Op: "decode", URL: dst, Err: err}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return &dreamfuse.ImageError{Op: "encode", URL: dst, Err: err}
	}
	return writeFile(dst, buf.Bytes())
}

// SaveBase64 decodes a base64 image payload and writes it to dst as PNG.
func SaveBase64(b64, dst string) error {
	data, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return &dreamfuse.ImageError{Op: "decode", URL: "base64", Err: err}
	}
	return SavePNG(data, dst)
}

func writeFile(dst string, data []byte) error {
	if dir := filepath.Dir(dst); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &dreamfuse.ImageError{Op: "save", URL: dst, Err: err}
		}
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return &dreamfuse.ImageError{Op: "save", URL: dst, Err: err}
	}
	return nil
}

// InferMimeType guesses an image MIME type from a URL or path extension.
func InferMimeType(name string) string {
	lower := strings.ToLower(name)
	if i := strings.IndexAny(lower, "?#"); i >= 0 {
		lower = lower[:i]
	}
	switch {
	case strings.HasSuffix(lower, ".jpg"), strings.HasSuffix(lower, ".jpeg"):
		return "image/jpeg"
	case strings.HasSuffix(lower, ".png"):
		return "image/png"
	case strings.HasSuffix(lower, ".gif"):
		return "image/gif"
	case strings.HasSuffix(lower, ".webp"):
		return "image/webp"
	default:
		return "image/jpeg"
	}
}
