package main

import (
	"context"
	"errors"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spetersoncode/dreamfuse/client"
	"github.com/spetersoncode/dreamfuse/config"
	"github.com/spetersoncode/dreamfuse/handler"
	"github.com/spetersoncode/dreamfuse/media"
)

func newClient(cfg *config.Config, fetcher *media.Fetcher) *client.Client {
	return client.New(client.Config{
		APIKeys: client.APIKeys{
			OpenAI:    cfg.OpenAIKey,
			Anthropic: cfg.AnthropicKey,
			Google:    cfg.GoogleKey,
			Replicate: cfg.ReplicateToken,
		},
		OpenAIBaseURL:  cfg.OpenAIBaseURL,
		ReplicateModel: cfg.WinterModel,
		Fetcher:        fetcher,
	})
}

// buildRegistry creates the providers and registers every handler they can
// serve. Winter is skipped without a Replicate token.
func buildRegistry(ctx context.Context, cfg *config.Config, logger *slog.Logger, reg prometheus.Registerer) (*handler.Registry, error) {
	metrics := handler.NewMetrics("dreamfuse", reg)
	env := handler.Env{
		Resolver:  media.NewResolver(cfg.PublicBaseURL),
		Fetcher:   media.NewFetcher(nil),
		OutputDir: cfg.OutputDir,
		TempDir:   cfg.TempDir,
		Retry:     cfg.RetryConfig(),
		Metrics:   metrics,
		Logger:    logger,
	}

	c := newClient(cfg, env.Fetcher)
	chat, err := c.Chat(ctx, cfg.ChatProvider)
	if err != nil {
		return nil, err
	}
	images, err := c.Images(ctx, cfg.ImageProvider)
	if err != nil {
		return nil, err
	}

	registry := handler.NewRegistry(metrics)
	registry.MustRegister("fusion", handler.NewFusion(env, chat, images,
		handler.WithFusionModels(cfg.Models),
		handler.WithFusionPrompts(cfg.Prompts),
	))
	registry.MustRegister("dream", handler.NewDream(env, chat, images,
		handler.WithDreamModels(cfg.Models),
		handler.WithDreamPrompts(cfg.Prompts),
	))

	transformer, err := c.Transformer()
	var missing *client.ErrMissingAPIKey
	switch {
	case errors.As(err, &missing):
		logger.Warn("REPLICATE_API_TOKEN not set, winter handler disabled")
	case err != nil:
		return nil, err
	default:
		registry.MustRegister("winter", handler.NewWinter(env, transformer))
	}
	return registry, nil
}
