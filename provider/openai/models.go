package openai

// ChatModel represents an OpenAI chat/completion model.
type ChatModel string

const (
	GPT4o     ChatModel = "gpt-4o"      // Vision capable
	GPT4oMini ChatModel = "gpt-4o-mini" // Text tasks
	GPT41     ChatModel = "gpt-4.1"
	GPT41Mini ChatModel = "gpt-4.1-mini"

	// DefaultChatModel is the default model for text requests.
	DefaultChatModel ChatModel = GPT4oMini
)

// String returns the API identifier for this model.
func (m ChatModel) String() string { return string(m) }

// ImageModel represents an OpenAI image generation model.
type ImageModel string

const (
	DallE2    ImageModel = "dall-e-2"
	DallE3    ImageModel = "dall-e-3"
	GPTImage1 ImageModel = "gpt-image-1"

	// DefaultImageModel is the default model for image generation.
	DefaultImageModel ImageModel = DallE3
)

// String returns the API identifier for this model.
func (m ImageModel) String() string { return string(m) }
