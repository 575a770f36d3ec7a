package openai

import (
	"context"
	"net/http"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/spetersoncode/dreamfuse"
)

// Client wraps the OpenAI SDK to implement dreamfuse.ChatProvider and
// dreamfuse.ImageProvider.
type Client struct {
	client     *openai.Client
	model      ChatModel
	imageModel ImageModel
	reqOpts    []option.RequestOption
}

// New creates a new OpenAI client with the given API key.
func New(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		model:      DefaultChatModel,
		imageModel: DefaultImageModel,
		reqOpts: []option.RequestOption{
			option.WithAPIKey(apiKey),
			option.WithMaxRetries(0),
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	client := openai.NewClient(c.reqOpts...)
	c.client = &client
	return c
}

// ClientOption configures the OpenAI client.
type ClientOption func(*Client)

// WithModel sets the default chat model.
func WithModel(model ChatModel) ClientOption {
	return func(c *Client) {
		c.model = model
	}
}

// WithImageModel sets the default image model.
func WithImageModel(model ImageModel) ClientOption {
	return func(c *Client) {
		c.imageModel = model
	}
}

// WithBaseURL points the client at an OpenAI compatible gateway.
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

	params := openai.ChatCompletionNewParams{
		Model:    model.String(),
		Messages: convertMessages(messages),
	}
	if options.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(options.MaxTokens))
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, wrapError(err)
	}
	if len(resp.Choices) == 0 {
		return nil, dreamfuse.ErrEmptyResponse
	}

	return &dreamfuse.Response{
		Content:      resp.Choices[0].Message.Content,
		FinishReason: string(resp.Choices[0].FinishReason),
		Usage: dreamfuse.Usage{
			InputTokens:  int(resp.Usage.PromptTokens),
			OutputTokens: int(resp.Usage.CompletionTokens),
		},
	}, nil
}

var _ dreamfuse.ChatProvider = (*Client)(nil)
var _ dreamfuse.ImageProvider = (*Client)(nil)
