package openai

import (
	"context"

	"github.com/openai/openai-go"
	"github.com/spetersoncode/dreamfuse"
)

// GenerateImage generates images from a text prompt using DALL-E.
func (c *Client) GenerateImage(ctx context.Context, prompt string, opts ...dreamfuse.ImageOption) (*dreamfuse.ImageResponse, error) {
	options := dreamfuse.ApplyImageOptions(opts...)

	model := c.imageModel
	if options.Model != "" {
		model = ImageModel(options.Model)
	}

	params := openai.ImageGenerateParams{
		Model:  openai.ImageModel(model.String()),
		Prompt: prompt,
	}

	size := options.Size
	if size == "" {
		size = dreamfuse.ImageSize1024x1024
	}
	params.Size = openai.ImageGenerateParamsSize(size)

	// DALL-E 3 only supports n=1
	n := options.Count
	if n <= 0 {
		n = 1
	}
	params.N = openai.Int(int64(n))

	if options.Quality != "" {
		params.Quality = openai.ImageGenerateParamsQuality(options.Quality)
	}
	if options.Style != "" {
		params.Style = openai.ImageGenerateParamsStyle(options.Style)
	}

	format := options.Format
	if format == "" {
		format = dreamfuse.ImageFormatURL
	}
	params.ResponseFormat = openai.ImageGenerateParamsResponseFormat(format)

	resp, err := c.client.Images.Generate(ctx, params)
	if err != nil {
		return nil, wrapError(err)
	}
	if len(resp.Data) == 0 {
		return nil, dreamfuse.ErrEmptyResponse
	}

	images := make([]dreamfuse.GeneratedImage, len(resp.Data))
	for i, img := range resp.Data {
		images[i] = dreamfuse.GeneratedImage{
			URL:           img.URL,
			Base64:        img.B64JSON,
			RevisedPrompt: img.RevisedPrompt,
		}
	}

	return &dreamfuse.ImageResponse{Images: images}, nil
}
