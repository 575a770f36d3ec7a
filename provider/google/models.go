package google

// ChatModel represents a Google Gemini chat model.
type ChatModel string

const (
	Gemini25Pro       ChatModel = "gemini-2.5-pro"
	Gemini25Flash     ChatModel = "gemini-2.5-flash"
	Gemini25FlashLite ChatModel = "gemini-2.5-flash-lite"

	// DefaultChatModel is the recommended default model.
	DefaultChatModel ChatModel = Gemini25Flash
)

// String returns the API identifier for this model.
func (m ChatModel) String() string { return string(m) }

// ImageModel represents a Google Imagen model.
type ImageModel string

const (
	Imagen4      ImageModel = "imagen-4.0-generate-001"
	Imagen4Fast  ImageModel = "imagen-4.0-fast-generate-001"
	Imagen4Ultra ImageModel = "imagen-4.0-ultra-generate-001"

	// DefaultImageModel is the recommended default image model.
	DefaultImageModel ImageModel = Imagen4
)

// String returns the API identifier for this model.
func (m ImageModel) String() string { return string(m) }
