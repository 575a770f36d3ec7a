package dreamfuse

import "context"

// ChatProvider defines the interface for AI chat providers.
// Vision-capable providers accept image parts in user messages.
type ChatProvider interface {
	// Chat sends a conversation and returns a complete response.
	Chat(ctx context.Context, messages []Message, opts ...Option) (*Response, error)
}
