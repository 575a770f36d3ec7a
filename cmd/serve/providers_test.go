package main

import (
	"context"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spetersoncode/dreamfuse"
	"github.com/spetersoncode/dreamfuse/client"
	"github.com/spetersoncode/dreamfuse/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseConfig() *config.Config {
	return &config.Config{
		ChatProvider:  dreamfuse.ProviderOpenAI,
		ImageProvider: dreamfuse.ProviderOpenAI,
		OpenAIKey:     "sk-test",
		RetryAttempts: 3,
		RateLimit:     1,
		WinterModel:   "owner/model:v1",
	}
}

func TestBuildRegistry(t *testing.T) {
	t.Run("without replicate token", func(t *testing.T) {
		registry, err := buildRegistry(context.Background(), baseConfig(), slog.Default(), prometheus.NewRegistry())
		require.NoError(t, err)
		assert.Equal(t, []string{"dream", "fusion"}, registry.Names())
	})

	t.Run("with replicate token", func(t *testing.T) {
		cfg := baseConfig()
		cfg.ReplicateToken = "r8_test"
		registry, err := buildRegistry(context.Background(), cfg, slog.Default(), prometheus.NewRegistry())
		require.NoError(t, err)
		assert.Equal(t, []string{"dream", "fusion", "winter"}, registry.Names())
	})

	t.Run("missing chat key", func(t *testing.T) {
		cfg := baseConfig()
		cfg.ChatProvider = dreamfuse.ProviderAnthropic
		_, err := buildRegistry(context.Background(), cfg, slog.Default(), prometheus.NewRegistry())
		var missing *client.ErrMissingAPIKey
		assert.ErrorAs(t, err, &missing)
	})

	t.Run("unsupported image provider", func(t *testing.T) {
		cfg := baseConfig()
		cfg.ImageProvider = dreamfuse.ProviderAnthropic
		cfg.AnthropicKey = "sk-ant"
		_, err := buildRegistry(context.Background(), cfg, slog.Default(), prometheus.NewRegistry())
		var unsupported *client.ErrFeatureNotSupported
		assert.ErrorAs(t, err, &unsupported)
	})
}
