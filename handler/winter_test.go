package handler

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spetersoncode/dreamfuse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTransformer struct {
	req    dreamfuse.TransformRequest
	output []string
	err    error
}

func (f *fakeTransformer) TransformImage(ctx context.Context, req dreamfuse.TransformRequest) (*dreamfuse.ImageResponse, error) {
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	resp := &dreamfuse.ImageResponse{}
	for _, u := range f.output {
		resp.Images = append(resp.Images, dreamfuse.GeneratedImage{URL: u})
	}
	return resp, nil
}

func TestWinter(t *testing.T) {
	srv := newImageServer(t)
	env := testEnv(t, srv)
	tr := &fakeTransformer{output: []string{srv.URL + "/missing", srv.URL + "/out.png"}}

	result, err := NewWinter(env, tr).Handle(context.Background(), Conf{WinterInputImage: "/tmp/photo.jpg"})
	require.NoError(t, err)

	assert.Equal(t, srv.URL+"/photo.jpg", tr.req.ImageURL)
	assert.Equal(t, WinterPrompt, tr.req.Prompt)
	assert.Equal(t, WinterNegativePrompt, tr.req.NegativePrompt)

	out := result[WinterOutputImage].(string)
	assert.Equal(t, env.OutputDir, filepath.Dir(out))
	assert.True(t, strings.HasSuffix(out, ".png"))
	assert.FileExists(t, out)
}

func TestWinterErrors(t *testing.T) {
	srv := newImageServer(t)

	t.Run("missing image", func(t *testing.T) {
		_, err := NewWinter(testEnv(t, srv), &fakeTransformer{}).Handle(context.Background(), Conf{})
		assert.ErrorIs(t, err, dreamfuse.ErrMissingParam)
	})

	t.Run("transform failure", func(t *testing.T) {
		boom := errors.New("model crashed")
		_, err := NewWinter(testEnv(t, srv), &fakeTransformer{err: boom}).Handle(context.Background(), Conf{WinterInputImage: "/tmp/a.png"})
		assert.ErrorIs(t, err, boom)
	})

	t.Run("no output", func(t *testing.T) {
		_, err := NewWinter(testEnv(t, srv), &fakeTransformer{}).Handle(context.Background(), Conf{WinterInputImage: "/tmp/a.png"})
		assert.ErrorIs(t, err, dreamfuse.ErrEmptyResponse)
	})

	t.Run("output download failure", func(t *testing.T) {
		env := testEnv(t, srv)
		tr := &fakeTransformer{output: []string{srv.URL + "/missing"}}
		_, err := NewWinter(env, tr).Handle(context.Background(), Conf{WinterInputImage: "/tmp/a.png"})
		var imgErr *dreamfuse.ImageError
		require.ErrorAs(t, err, &imgErr)
		assert.Equal(t, "fetch", imgErr.Op)
		assert.Empty(t, dirEntries(t, env.OutputDir))
	})
}
