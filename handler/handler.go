package handler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spetersoncode/dreamfuse"
	"github.com/spetersoncode/dreamfuse/media"
	"github.com/spetersoncode/dreamfuse/retry"
)

// Conf is the parameter mapping a handler is invoked with.
type Conf map[string]any

// String returns the non-empty string parameter key.
func (c Conf) String(key string) (string, error) {
	v, ok := c[key]
	if !ok || v == nil {
		return "", fmt.Errorf("%w: %s", dreamfuse.ErrMissingParam, key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("parameter %s: expected string, got %T", key, v)
	}
	if s == "" {
		return "", fmt.Errorf("%w: %s", dreamfuse.ErrMissingParam, key)
	}
	return s, nil
}

// Result is the output mapping a handler returns.
type Result map[string]any

// Handler processes one platform request.
type Handler interface {
	Handle(ctx context.Context, conf Conf) (Result, error)
}

// HandlerFunc adapts an ordinary function to Handler.
type HandlerFunc func(ctx context.Context, conf Conf) (Result, error)

// Handle calls f(ctx, conf).
func (f HandlerFunc) Handle(ctx context.Context, conf Conf) (Result, error) {
	return f(ctx, conf)
}

// Env holds the collaborators every handler shares.
type Env struct {
	// Resolver maps platform temp paths to public URLs.
	Resolver *media.Resolver
	// Fetcher downloads inputs and generated images.
	Fetcher *media.Fetcher
	// OutputDir receives result images. Empty means the working directory,
	// which is where the platform picks them up.
	OutputDir string
	// TempDir receives intermediate downloads.
	TempDir string
	// Retry is the policy applied to retried provider calls. The zero value
	// is retry.DefaultConfig().
	Retry retry.Config
	// Metrics is optional.
	Metrics *Metrics
	Logger  *slog.Logger
}

func (e Env) withDefaults() Env {
	if e.Resolver == nil {
		e.Resolver = media.NewResolver("")
	}
	if e.Fetcher == nil {
		e.Fetcher = media.NewFetcher(nil)
	}
	if e.Logger == nil {
		e.Logger = slog.Default()
	}
	return e
}

// retryFor returns the retry policy for one named operation, logging under
// that name and reporting its events to Metrics.
func (e Env) retryFor(handler, op string) retry.Config {
	cfg := e.Retry
	cfg.Logger = e.Logger.With("handler", handler, "op", op)
	if e.Metrics != nil {
		next := cfg.OnEvent
		observe := e.Metrics.RetryObserver(handler, op)
		cfg.OnEvent = func(ev retry.Event) {
			observe(ev)
			if next != nil {
				next(ev)
			}
		}
	}
	return cfg
}

// saveImage stores a generated image at dst, downloading it when the
// provider returned a URL.
func (e Env) saveImage(ctx context.Context, img dreamfuse.GeneratedImage, dst string) error {
	switch {
	case img.URL != "":
		return e.Fetcher.SaveImage(ctx, img.URL, dst)
	case img.Base64 != "":
		return media.SaveBase64(img.Base64, dst)
	default:
		return dreamfuse.ErrEmptyResponse
	}
}

// firstImage returns the first image of resp or ErrEmptyResponse.
func firstImage(resp *dreamfuse.ImageResponse) (dreamfuse.GeneratedImage, error) {
	img, ok := resp.First()
	if !ok {
		return dreamfuse.GeneratedImage{}, dreamfuse.ErrEmptyResponse
	}
	return img, nil
}
