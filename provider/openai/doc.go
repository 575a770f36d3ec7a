// Package openai adapts the OpenAI SDK to the dreamfuse provider interfaces.
//
// The client speaks to any OpenAI compatible endpoint; set WithBaseURL to use
// a proxy such as the Mo platform gateway:
//
//	c := openai.New(key, openai.WithBaseURL("https://open.momodel.cn/v1"))
//	resp, err := c.Chat(ctx, []dreamfuse.Message{
//	    dreamfuse.UserParts(
//	        dreamfuse.NewTextPart("Describe this picture"),
//	        dreamfuse.NewImageBase64Part(b64, "image/jpeg"),
//	    ),
//	}, dreamfuse.WithModel(openai.GPT4o.String()))
//
// The SDK's own retries are disabled so that callers decide the retry policy.
package openai
