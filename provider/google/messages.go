package google

import (
	"context"
	"encoding/base64"
	"strings"

	"github.com/spetersoncode/dreamfuse"
	"github.com/spetersoncode/dreamfuse/media"
	"google.golang.org/genai"
)

// convertMessages maps messages to Gemini contents. System messages are
// collected into a separate instruction.
func (c *Client) convertMessages(ctx context.Context, messages []dreamfuse.Message) ([]*genai.Content, *genai.Content, error) {
	var contents []*genai.Content
	var system *genai.Content

	for _, msg := range messages {
		if msg.Role == dreamfuse.RoleSystem {
			if msg.Content == "" {
				continue
			}
			if system == nil {
				system = &genai.Content{}
			}
			system.Parts = append(system.Parts, &genai.Part{Text: msg.Content})
			continue
		}

		role := "user"
		if msg.Role == dreamfuse.RoleAssistant {
			role = "model"
		}

		var parts []*genai.Part
		if msg.HasParts() {
			converted, err := c.convertParts(ctx, msg.Parts)
			if err != nil {
				return nil, nil, err
			}
			parts = converted
		} else if msg.Content != "" {
			parts = append(parts, &genai.Part{Text: msg.Content})
		}

		if len(parts) > 0 {
			contents = append(contents, &genai.Content{Role: role, Parts: parts})
		}
	}

	return contents, system, nil
}

func (c *Client) convertParts(ctx context.Context, parts []dreamfuse.ContentPart) ([]*genai.Part, error) {
	var result []*genai.Part
	for _, part := range parts {
		switch part.Type {
		case dreamfuse.ContentPartTypeText:
			if part.Text != "" {
				result = append(result, &genai.Part{Text: part.Text})
			}
		case dreamfuse.ContentPartTypeImage:
			p, err := c.imagePart(ctx, part)
			if err != nil {
				return nil, err
			}
			if p != nil {
				result = append(result, p)
			}
		}
	}
	return result, nil
}

func (c *Client) imagePart(ctx context.Context, part dreamfuse.ContentPart) (*genai.Part, error) {
	switch {
	case part.Base64 != "":
		data, err := base64.StdEncoding.DecodeString(part.Base64)
		if err != nil {
			return nil, &dreamfuse.ImageError{Op: "decode", URL: "base64", Err: err}
		}
		mimeType := part.MimeType
		if mimeType == "" {
			mimeType = "image/jpeg"
		}
		return &genai.Part{InlineData: &genai.Blob{Data: data, MIMEType: mimeType}}, nil

	case strings.HasPrefix(part.ImageURL, "gs://"):
		mimeType := part.MimeType
		if mimeType == "" {
			mimeType = media.InferMimeType(part.ImageURL)
		}
		return &genai.Part{FileData: &genai.FileData{FileURI: part.ImageURL, MIMEType: mimeType}}, nil

	case part.ImageURL != "":
		data, mimeType, err := c.fetcher.Fetch(ctx, part.ImageURL)
		if err != nil {
			return nil, err
		}
		if part.MimeType != "" {
			mimeType = part.MimeType
		}
		return &genai.Part{InlineData: &genai.Blob{Data: data, MIMEType: mimeType}}, nil
	}
	return nil, nil
}
