// Package anthropic adapts the Anthropic SDK to dreamfuse.ChatProvider.
// Claude models accept images, so the client can stand in for the vision
// describer.
package anthropic

import (
	"context"
	"net/http"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/spetersoncode/dreamfuse"
)

// ChatModel represents an Anthropic Claude model.
type ChatModel string

const (
	ClaudeSonnet45 ChatModel = "claude-sonnet-4-5"
	ClaudeHaiku45  ChatModel = "claude-haiku-4-5"
	ClaudeOpus45   ChatModel = "claude-opus-4-5"

	// DefaultChatModel is the recommended default model.
	DefaultChatModel ChatModel = ClaudeSonnet45
)

// String returns the API identifier for this model.
func (m ChatModel) String() string { return string(m) }

// defaultMaxTokens is required by the Messages API when the caller sets none.
const defaultMaxTokens = 4096

// Client wraps the Anthropic SDK to implement dreamfuse.ChatProvider.
type Client struct {
	client  *anthropic.Client
	model   ChatModel
	reqOpts []option.RequestOption
}

// New creates a new Anthropic client with the given API key.
func New(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		model: DefaultChatModel,
		reqOpts: []option.RequestOption{
			option.WithAPIKey(apiKey),
			option.WithMaxRetries(0),
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	client := anthropic.NewClient(c.reqOpts...)
	c.client = &client
	return c
}

// ClientOption configures the Anthropic client.
type ClientOption func(*Client)

// WithModel sets the default model for requests.
func WithModel(model ChatModel) ClientOption {
	return func(c *Client) {
		c.model = model
	}
}

// WithBaseURL overrides the API endpoint.
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		if url != "" {
			c.reqOpts = append(c.reqOpts, option.WithBaseURL(url))
		}
	}
}

// WithHTTPClient sets the HTTP client used for API calls.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.reqOpts = append(c.reqOpts, option.WithHTTPClient(hc))
		}
	}
}

// Chat sends a conversation and returns a complete response.
func (c *Client) Chat(ctx context.Context, messages []dreamfuse.Message, opts ...dreamfuse.Option) (*dreamfuse.Response, error) {
	options := dreamfuse.ApplyOptions(opts...)
	model := c.model
	if options.Model != "" {
		model = ChatModel(options.Model)
	}

	maxTokens := int64(defaultMaxTokens)
	if options.MaxTokens > 0 {
		maxTokens = int64(options.MaxTokens)
	}

	msgs, system := convertMessages(messages)
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(model.String()),
		MaxTokens: maxTokens,
		Messages:  msgs,
	}
	if len(system) > 0 {
		params.System = system
	}

	resp, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return nil, wrapError(err)
	}

	var content strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			content.WriteString(block.Text)
		}
	}
	if content.Len() == 0 {
		return nil, dreamfuse.ErrEmptyResponse
	}

	return &dreamfuse.Response{
		Content:      content.String(),
		FinishReason: string(resp.StopReason),
		Usage: dreamfuse.Usage{
			InputTokens:  int(resp.Usage.InputTokens),
			OutputTokens: int(resp.Usage.OutputTokens),
		},
	}, nil
}

var _ dreamfuse.ChatProvider = (*Client)(nil)
