// Package google adapts the Google GenAI SDK to the dreamfuse provider
// interfaces: Gemini for chat and vision, Imagen for image generation.
package google

import (
	"context"
	"net/http"
	"strings"

	"github.com/spetersoncode/dreamfuse"
	"github.com/spetersoncode/dreamfuse/media"
	"google.golang.org/genai"
)

// Client wraps the Google GenAI SDK to implement dreamfuse.ChatProvider and
// dreamfuse.ImageProvider.
type Client struct {
	client     *genai.Client
	model      ChatModel
	imageModel ImageModel
	fetcher    *media.Fetcher
	httpClient *http.Client
	baseURL    string
}

// New creates a new Google GenAI client with the given API key.
func New(ctx context.Context, apiKey string, opts ...ClientOption) (*Client, error) {
	c := &Client{
		model:      DefaultChatModel,
		imageModel: DefaultImageModel,
	}
	for _, opt := range opts {
		opt(c)
	}

	cfg := &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: c.httpClient,
	}
	if c.baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: c.baseURL}
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	c.client = client
	if c.fetcher == nil {
		c.fetcher = media.NewFetcher(c.httpClient)
	}
	return c, nil
}

// ClientOption configures the Google client.
type ClientOption func(*Client)

// WithModel sets the default chat model.
func WithModel(model ChatModel) ClientOption {
	return func(c *Client) {
		c.model = model
	}
}

// WithImageModel sets the default Imagen model.
func WithImageModel(model ImageModel) ClientOption {
	return func(c *Client) {
		c.imageModel = model
	}
}

// WithBaseURL overrides the API endpoint.
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithHTTPClient sets the HTTP client used for API calls and image fetches.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithFetcher sets the fetcher used to inline remote images. Gemini only
// reads gs:// URIs itself.
func WithFetcher(f *media.Fetcher) ClientOption {
	return func(c *Client) {
		c.fetcher = f
	}
}

// Chat sends a conversation and returns a complete response.
func (c *Client) Chat(ctx context.Context, messages []dreamfuse.Message, opts ...dreamfuse.Option) (*dreamfuse.Response, error) {
	options := dreamfuse.ApplyOptions(opts...)
	model := c.model
	if options.Model != "" {
		model = ChatModel(options.Model)
	}

	contents, system, err := c.convertMessages(ctx, messages)
	if err != nil {
		return nil, err
	}

	config := &genai.GenerateContentConfig{SystemInstruction: system}
	if options.MaxTokens > 0 {
		config.MaxOutputTokens = int32(options.MaxTokens)
	}

	resp, err := c.client.Models.GenerateContent(ctx, model.String(), contents, config)
	if err != nil {
		return nil, wrapError(err)
	}
	return convertResponse(resp)
}

func convertResponse(resp *genai.GenerateContentResponse) (*dreamfuse.Response, error) {
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return nil, blockedError(string(resp.PromptFeedback.BlockReason))
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, dreamfuse.ErrEmptyResponse
	}

	candidate := resp.Candidates[0]
	var content strings.Builder
	for _, part := range candidate.Content.Parts {
		if part != nil && part.Text != "" {
			content.WriteString(part.Text)
		}
	}
	if content.Len() == 0 {
		if candidate.FinishReason == genai.FinishReasonSafety {
			return nil, blockedError(string(candidate.FinishReason))
		}
		return nil, dreamfuse.ErrEmptyResponse
	}

	usage := dreamfuse.Usage{}
	if resp.UsageMetadata != nil {
		usage.InputTokens = int(resp.UsageMetadata.PromptTokenCount)
		usage.OutputTokens = int(resp.UsageMetadata.CandidatesTokenCount)
	}

	return &dreamfuse.Response{
		Content:      content.String(),
		FinishReason: string(candidate.FinishReason),
		Usage:        usage,
	}, nil
}

var (
	_ dreamfuse.ChatProvider  = (*Client)(nil)
	_ dreamfuse.ImageProvider = (*Client)(nil)
)
