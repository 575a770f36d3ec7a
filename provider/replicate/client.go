// Package replicate runs image-to-image diffusion models on Replicate.
//
// A run creates a prediction and waits for it to reach a terminal status.
// Output URLs are returned in the order the model produced them.
package replicate

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/replicate/replicate-go"
	"github.com/spetersoncode/dreamfuse"
)

// DefaultPollInterval is the wait between prediction status checks.
const DefaultPollInterval = time.Second

// Client implements dreamfuse.ImageTransformer against the Replicate API.
type Client struct {
	client       *replicate.Client
	model        string
	pollInterval time.Duration
	options      []replicate.ClientOption
}

// New creates a Replicate client. model is an "owner/name:version" reference.
func New(token, model string, opts ...ClientOption) (*Client, error) {
	c := &Client{
		model:        model,
		pollInterval: DefaultPollInterval,
		options: []replicate.ClientOption{
			replicate.WithToken(token),
			// retries belong to the caller's policy
			replicate.WithRetryPolicy(0, &replicate.ConstantBackoff{}),
		},
	}
	for _, opt := range opts {
		opt(c)
	}

	client, err := replicate.NewClient(c.options...)
	if err != nil {
		return nil, fmt.Errorf("replicate: %w", err)
	}
	c.client = client
	return c, nil
}

// ClientOption configures the Replicate client.
type ClientOption func(*Client)

// WithBaseURL overrides the API endpoint.
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		if url != "" {
			c.options = append(c.options, replicate.WithBaseURL(strings.TrimSuffix(url, "/")))
		}
	}
}

// WithHTTPClient sets the HTTP client used for API calls.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.options = append(c.options, replicate.WithHTTPClient(hc))
		}
	}
}

// WithPollInterval sets the wait between status checks.
func WithPollInterval(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.pollInterval = d
		}
	}
}

// TransformImage runs the configured model on req and waits for its output.
func (c *Client) TransformImage(ctx context.Context, req dreamfuse.TransformRequest) (*dreamfuse.ImageResponse, error) {
	if req.ImageURL == "" {
		return nil, fmt.Errorf("image url: %w", dreamfuse.ErrMissingParam)
	}

	input := make(replicate.PredictionInput, len(req.Extra)+3)
	for k, v := range req.Extra {
		input[k] = v
	}
	input["image"] = req.ImageURL
	if req.Prompt != "" {
		input["prompt"] = req.Prompt
	}
	if req.NegativePrompt != "" {
		input["negative_prompt"] = req.NegativePrompt
	}

	pred, err := c.Run(ctx, input)
	if err != nil {
		return nil, err
	}

	urls := OutputURLs(pred.Output)
	if len(urls) == 0 {
		return nil, dreamfuse.ErrEmptyResponse
	}
	images := make([]dreamfuse.GeneratedImage, len(urls))
	for i, u := range urls {
		images[i] = dreamfuse.GeneratedImage{URL: u}
	}
	return &dreamfuse.ImageResponse{Images: images}, nil
}

// Run creates a prediction for the client's model version and blocks until
// it finishes. A failed or canceled prediction is returned as an error.
func (c *Client) Run(ctx context.Context, input replicate.PredictionInput) (*replicate.Prediction, error) {
	version, err := c.version()
	if err != nil {
		return nil, err
	}

	pred, err := c.client.CreatePrediction(ctx, version, input, nil, false)
	if err != nil {
		return nil, wrapError(err)
	}
	if !terminal(pred.Status) {
		if err := c.client.Wait(ctx, pred, replicate.WithPollingInterval(c.pollInterval)); err != nil {
			return nil, wrapError(err)
		}
	}

	if pred.Status != replicate.Succeeded {
		return nil, failure(pred)
	}
	return pred, nil
}

func (c *Client) version() (string, error) {
	_, version, ok := strings.Cut(c.model, ":")
	if !ok || version == "" {
		return "", fmt.Errorf("model %q has no version", c.model)
	}
	return version, nil
}

var _ dreamfuse.ImageTransformer = (*Client)(nil)
