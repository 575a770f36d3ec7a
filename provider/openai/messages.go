package openai

import (
	"fmt"

	"github.com/openai/openai-go"
	"github.com/spetersoncode/dreamfuse"
)

func convertMessages(messages []dreamfuse.Message) []openai.ChatCompletionMessageParamUnion {
	var result []openai.ChatCompletionMessageParamUnion
	for _, msg := range messages {
		switch msg.Role {
		case dreamfuse.RoleSystem:
			if msg.Content != "" {
				result = append(result, openai.SystemMessage(msg.Content))
			}
		case dreamfuse.RoleAssistant:
			if msg.Content != "" {
				result = append(result, openai.AssistantMessage(msg.Content))
			}
		default:
			if msg.HasParts() {
				parts := convertParts(msg.Parts)
				if len(parts) > 0 {
					result = append(result, openai.ChatCompletionMessageParamUnion{
						OfUser: &openai.ChatCompletionUserMessageParam{
							Content: openai.ChatCompletionUserMessageParamContentUnion{
								OfArrayOfContentParts: parts,
							},
						},
					})
				}
			} else if msg.Content != "" {
				result = append(result, openai.UserMessage(msg.Content))
			}
		}
	}
	return result
}

func convertParts(parts []dreamfuse.ContentPart) []openai.ChatCompletionContentPartUnionParam {
	var result []openai.ChatCompletionContentPartUnionParam
	for _, part := range parts {
		switch part.Type {
		case dreamfuse.ContentPartTypeText:
			if part.Text != "" {
				result = append(result, openai.TextContentPart(part.Text))
			}
		case dreamfuse.ContentPartTypeImage:
			url := imageURL(part)
			if url == "" {
				continue
			}
			img := openai.ChatCompletionContentPartImageImageURLParam{URL: url}
			if part.Detail != "" {
				img.Detail = string(part.Detail)
			}
			result = append(result, openai.ImageContentPart(img))
		}
	}
	return result
}

// imageURL returns a data URI for base64 parts and the URL otherwise.
func imageURL(part dreamfuse.ContentPart) string {
	if part.Base64 != "" {
		mimeType := part.MimeType
		if mimeType == "" {
			mimeType = "image/jpeg"
		}
		return fmt.Sprintf("data:%s;base64,%s", mimeType, part.Base64)
	}
	return part.ImageURL
}
