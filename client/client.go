package client

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/spetersoncode/dreamfuse"
	"github.com/spetersoncode/dreamfuse/media"
	"github.com/spetersoncode/dreamfuse/provider/anthropic"
	"github.com/spetersoncode/dreamfuse/provider/google"
	"github.com/spetersoncode/dreamfuse/provider/openai"
	"github.com/spetersoncode/dreamfuse/provider/replicate"
)

// Feature represents a capability that a provider may support.
type Feature string

const (
	FeatureChat  Feature = "chat"
	FeatureImage Feature = "image"
)

// APIKeys holds API keys for different providers.
// Only configure keys for providers you intend to use.
type APIKeys struct {
	OpenAI    string
	Anthropic string
	Google    string
	Replicate string
}

// Config holds configuration for creating a Client.
type Config struct {
	APIKeys APIKeys

	// OpenAIBaseURL points the OpenAI adapter at a compatible gateway.
	OpenAIBaseURL string

	// ReplicateModel is the "owner/name:version" model run by Transformer.
	ReplicateModel string

	// HTTPClient is shared by every adapter. Nil uses each SDK's default.
	HTTPClient *http.Client

	// Fetcher inlines remote images for providers that cannot fetch them.
	Fetcher *media.Fetcher
}

// Client hands out provider adapters. Adapters are created on first use and
// reused afterwards. It is safe for concurrent use.
type Client struct {
	cfg Config

	mu              sync.Mutex
	openaiClient    *openai.Client
	anthropicClient *anthropic.Client
	googleClient    *google.Client
	replicateClient *replicate.Client
}

// New creates a client with the given configuration.
func New(cfg Config) *Client {
	if cfg.Fetcher == nil {
		cfg.Fetcher = media.NewFetcher(cfg.HTTPClient)
	}
	return &Client{cfg: cfg}
}

// Chat returns the chat adapter for provider.
func (c *Client) Chat(ctx context.Context, provider dreamfuse.Provider) (dreamfuse.ChatProvider, error) {
	switch provider {
	case dreamfuse.ProviderOpenAI:
		oa, err := c.openAI()
		if err != nil {
			return nil, err
		}
		return oa, nil
	case dreamfuse.ProviderAnthropic:
		an, err := c.anthropic()
		if err != nil {
			return nil, err
		}
		return an, nil
	case dreamfuse.ProviderGoogle:
		gc, err := c.google(ctx)
		if err != nil {
			return nil, err
		}
		return gc, nil
	default:
		return nil, &ErrFeatureNotSupported{Provider: provider.String(), Feature: string(FeatureChat)}
	}
}

// Images returns the image generation adapter for provider.
func (c *Client) Images(ctx context.Context, provider dreamfuse.Provider) (dreamfuse.ImageProvider, error) {
	switch provider {
	case dreamfuse.ProviderOpenAI:
		oa, err := c.openAI()
		if err != nil {
			return nil, err
		}
		return oa, nil
	case dreamfuse.ProviderGoogle:
		gc, err := c.google(ctx)
		if err != nil {
			return nil, err
		}
		return gc, nil
	default:
		return nil, &ErrFeatureNotSupported{Provider: provider.String(), Feature: string(FeatureImage)}
	}
}

// Transformer returns the Replicate image-to-image adapter.
func (c *Client) Transformer() (dreamfuse.ImageTransformer, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.replicateClient != nil {
		return c.replicateClient, nil
	}
	if c.cfg.APIKeys.Replicate == "" {
		return nil, &ErrMissingAPIKey{Provider: dreamfuse.ProviderReplicate.String()}
	}
	if c.cfg.ReplicateModel == "" {
		return nil, fmt.Errorf("replicate: no model configured")
	}
	rc, err := replicate.New(c.cfg.APIKeys.Replicate, c.cfg.ReplicateModel,
		replicate.WithHTTPClient(c.cfg.HTTPClient))
	if err != nil {
		return nil, err
	}
	c.replicateClient = rc
	return c.replicateClient, nil
}

func (c *Client) openAI() (*openai.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.openaiClient != nil {
		return c.openaiClient, nil
	}
	if c.cfg.APIKeys.OpenAI == "" {
		return nil, &ErrMissingAPIKey{Provider: dreamfuse.ProviderOpenAI.String()}
	}
	c.openaiClient = openai.New(c.cfg.APIKeys.OpenAI,
		openai.WithBaseURL(c.cfg.OpenAIBaseURL),
		openai.WithHTTPClient(c.cfg.HTTPClient))
	return c.openaiClient, nil
}

func (c *Client) anthropic() (*anthropic.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.anthropicClient != nil {
		return c.anthropicClient, nil
	}
	if c.cfg.APIKeys.Anthropic == "" {
		return nil, &ErrMissingAPIKey{Provider: dreamfuse.ProviderAnthropic.String()}
	}
	c.anthropicClient = anthropic.New(c.cfg.APIKeys.Anthropic,
		anthropic.WithHTTPClient(c.cfg.HTTPClient))
	return c.anthropicClient, nil
}

func (c *Client) google(ctx context.Context) (*google.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.googleClient != nil {
		return c.googleClient, nil
	}
	if c.cfg.APIKeys.Google == "" {
		return nil, &ErrMissingAPIKey{Provider: dreamfuse.ProviderGoogle.String()}
	}
	gc, err := google.New(ctx, c.cfg.APIKeys.Google,
		google.WithHTTPClient(c.cfg.HTTPClient),
		google.WithFetcher(c.cfg.Fetcher))
	if err != nil {
		return nil, fmt.Errorf("create google client: %w", err)
	}
	c.googleClient = gc
	return c.googleClient, nil
}
