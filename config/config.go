// Package config loads service configuration from the environment, an
// optional .env file and an optional YAML overlay for models and prompts.
//
// Environment variables:
//
//	OPENAI_API_KEY             OpenAI key (OPENAI_KEY is accepted too)
//	OPENAI_BASE_URL            OpenAI compatible endpoint (default: https://open.momodel.cn/v1)
//	ANTHROPIC_API_KEY          Anthropic key
//	GOOGLE_API_KEY             Google GenAI key
//	REPLICATE_API_TOKEN        Replicate token; the winter handler needs it
//	DREAMFUSE_CHAT_PROVIDER    openai, anthropic or google (default: openai)
//	DREAMFUSE_IMAGE_PROVIDER   openai or google (default: openai)
//	DREAMFUSE_PUBLIC_BASE_URL  where platform temp files are served
//	DREAMFUSE_OUTPUT_DIR       directory for result images (default: .)
//	DREAMFUSE_TEMP_DIR         directory for intermediate downloads
//	DREAMFUSE_PORT             HTTP port (default: 8000)
//	DREAMFUSE_LOG_LEVEL        debug, info, warn or error (default: info)
//	DREAMFUSE_RETRY_ATTEMPTS   attempts per retried call (default: 3)
//	DREAMFUSE_RETRY_DELAY      initial backoff (default: 1s)
//	DREAMFUSE_RATE_LIMIT       admitted requests per second (default: 2)
//	DREAMFUSE_RATE_BURST       limiter burst (default: 4)
//	DREAMFUSE_TIMEOUT          per request timeout (default: 5m)
//	DREAMFUSE_CONFIG           YAML overlay path
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spetersoncode/dreamfuse"
	"github.com/spetersoncode/dreamfuse/handler"
	"github.com/spetersoncode/dreamfuse/media"
	"github.com/spetersoncode/dreamfuse/retry"
)

// DefaultOpenAIBaseURL is the platform's OpenAI compatible gateway.
const DefaultOpenAIBaseURL = "https://open.momodel.cn/v1"

// Config holds the service configuration.
type Config struct {
	// Server
	Port      string
	LogLevel  string
	Timeout   time.Duration
	RateLimit float64
	RateBurst int

	// Providers
	ChatProvider  dreamfuse.Provider
	ImageProvider dreamfuse.Provider

	// API keys
	OpenAIKey      string
	OpenAIBaseURL  string
	AnthropicKey   string
	GoogleKey      string
	ReplicateToken string

	// Files
	PublicBaseURL string
	OutputDir     string
	TempDir       string

	// Retry policy
	RetryAttempts int
	RetryDelay    time.Duration

	// Overlay
	OverlayPath string
	Models      handler.Models
	Prompts     handler.Prompts
	WinterModel string
}

// LoadConfig loads configuration from environment variables.
// It loads a .env file if present (silent fail if not found).
func LoadConfig() (*Config, error) {
	godotenv.Load()

	cfg := FromEnv()
	if cfg.OverlayPath != "" {
		if err := cfg.ApplyOverlayFile(cfg.OverlayPath); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromEnv reads the configuration from the process environment without
// validating it.
func FromEnv() *Config {
	cfg := &Config{
		Port:           getEnvOrDefault("DREAMFUSE_PORT", "8000"),
		LogLevel:       getEnvOrDefault("DREAMFUSE_LOG_LEVEL", "info"),
		Timeout:        getEnvDurationOrDefault("DREAMFUSE_TIMEOUT", 5*time.Minute),
		RateLimit:      getEnvFloatOrDefault("DREAMFUSE_RATE_LIMIT", 2),
		RateBurst:      getEnvIntOrDefault("DREAMFUSE_RATE_BURST", 4),
		ChatProvider:   getEnvProviderOrDefault("DREAMFUSE_CHAT_PROVIDER", dreamfuse.ProviderOpenAI),
		ImageProvider:  getEnvProviderOrDefault("DREAMFUSE_IMAGE_PROVIDER", dreamfuse.ProviderOpenAI),
		OpenAIKey:      getEnvOrDefault("OPENAI_API_KEY", os.Getenv("OPENAI_KEY")),
		OpenAIBaseURL:  getEnvOrDefault("OPENAI_BASE_URL", DefaultOpenAIBaseURL),
		AnthropicKey:   os.Getenv("ANTHROPIC_API_KEY"),
		GoogleKey:      os.Getenv("GOOGLE_API_KEY"),
		ReplicateToken: os.Getenv("REPLICATE_API_TOKEN"),
		PublicBaseURL:  getEnvOrDefault("DREAMFUSE_PUBLIC_BASE_URL", media.DefaultPublicBaseURL),
		OutputDir:      os.Getenv("DREAMFUSE_OUTPUT_DIR"),
		TempDir:        getEnvOrDefault("DREAMFUSE_TEMP_DIR", os.TempDir()),
		RetryAttempts:  getEnvIntOrDefault("DREAMFUSE_RETRY_ATTEMPTS", retry.DefaultMaxAttempts),
		RetryDelay:     getEnvDurationOrDefault("DREAMFUSE_RETRY_DELAY", retry.DefaultInitialDelay),
		OverlayPath:    os.Getenv("DREAMFUSE_CONFIG"),
		Prompts:        handler.DefaultPrompts(),
		WinterModel:    handler.WinterModel,
	}
	cfg.Models = defaultModels(cfg.ChatProvider, cfg.ImageProvider)
	return cfg
}

// defaultModels keeps the tuned OpenAI model names only for steps served by
// OpenAI. Other providers fall back to their own defaults.
func defaultModels(chat, image dreamfuse.Provider) handler.Models {
	m := handler.DefaultModels()
	if chat != dreamfuse.ProviderOpenAI {
		m.Vision, m.FusionChat, m.DreamChat = "", "", ""
	}
	if image != dreamfuse.ProviderOpenAI {
		m.Image = ""
	}
	return m
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if !c.ChatProvider.SupportsChat() {
		return fmt.Errorf("unknown chat provider: %s (must be openai, anthropic, or google)", c.ChatProvider)
	}
	if !c.ImageProvider.SupportsImages() {
		return fmt.Errorf("unknown image provider: %s (must be openai or google)", c.ImageProvider)
	}

	for _, p := range []dreamfuse.Provider{c.ChatProvider, c.ImageProvider} {
		if err := c.requireKey(p); err != nil {
			return err
		}
	}

	if c.RetryAttempts < 1 {
		return fmt.Errorf("DREAMFUSE_RETRY_ATTEMPTS must be at least 1, got %d", c.RetryAttempts)
	}
	if c.RateLimit <= 0 {
		return fmt.Errorf("DREAMFUSE_RATE_LIMIT must be positive, got %v", c.RateLimit)
	}
	return nil
}

func (c *Config) requireKey(provider dreamfuse.Provider) error {
	switch provider {
	case dreamfuse.ProviderOpenAI:
		if c.OpenAIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required for openai provider")
		}
	case dreamfuse.ProviderAnthropic:
		if c.AnthropicKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY is required for anthropic provider")
		}
	case dreamfuse.ProviderGoogle:
		if c.GoogleKey == "" {
			return fmt.Errorf("GOOGLE_API_KEY is required for google provider")
		}
	}
	return nil
}

// RetryConfig returns the retry policy for handler calls.
func (c *Config) RetryConfig() retry.Config {
	cfg := retry.DefaultConfig()
	cfg.MaxAttempts = c.RetryAttempts
	cfg.InitialDelay = c.RetryDelay
	return cfg
}

// SlogLevel maps LogLevel to a slog level. Unknown names mean info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvProviderOrDefault keeps unparseable names verbatim so Validate can
// report them.
func getEnvProviderOrDefault(key string, defaultValue dreamfuse.Provider) dreamfuse.Provider {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if p, err := dreamfuse.ParseProvider(value); err == nil {
		return p
	}
	return dreamfuse.Provider(value)
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
