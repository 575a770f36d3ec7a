package google

import (
	"context"
	"encoding/base64"

	"github.com/spetersoncode/dreamfuse"
	"google.golang.org/genai"
)

// GenerateImage generates images from a text prompt using Imagen.
// Imagen returns raw bytes, so images come back base64 encoded.
func (c *Client) GenerateImage(ctx context.Context, prompt string, opts ...dreamfuse.ImageOption) (*dreamfuse.ImageResponse, error) {
	options := dreamfuse.ApplyImageOptions(opts...)

	model := c.imageModel
	if options.Model != "" {
		model = ImageModel(options.Model)
	}

	// Imagen supports 1-4 images per call
	n := options.Count
	if n <= 0 {
		n = 1
	}
	config := &genai.GenerateImagesConfig{
		NumberOfImages: int32(n),
		AspectRatio:    aspectRatio(options.Size),
	}

	resp, err := c.client.Models.GenerateImages(ctx, model.String(), prompt, config)
	if err != nil {
		return nil, wrapError(err)
	}
	return convertImages(resp)
}

func convertImages(resp *genai.GenerateImagesResponse) (*dreamfuse.ImageResponse, error) {
	var images []dreamfuse.GeneratedImage
	var filtered string
	for _, img := range resp.GeneratedImages {
		if img == nil {
			continue
		}
		if img.Image == nil || len(img.Image.ImageBytes) == 0 {
			if img.RAIFilteredReason != "" {
				filtered = img.RAIFilteredReason
			}
			continue
		}
		images = append(images, dreamfuse.GeneratedImage{
			Base64:        base64.StdEncoding.EncodeToString(img.Image.ImageBytes),
			RevisedPrompt: img.EnhancedPrompt,
		})
	}

	if len(images) == 0 {
		if filtered != "" {
			return nil, blockedError(filtered)
		}
		return nil, dreamfuse.ErrEmptyResponse
	}
	return &dreamfuse.ImageResponse{Images: images}, nil
}

// aspectRatio maps an ImageSize to an Imagen aspect ratio.
func aspectRatio(size dreamfuse.ImageSize) string {
	switch size {
	case dreamfuse.ImageSize1024x1792:
		return "9:16"
	case dreamfuse.ImageSize1792x1024:
		return "16:9"
	default:
		return "1:1"
	}
}
