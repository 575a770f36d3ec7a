// Package dreamfuse holds the provider-neutral types shared by the dreamfuse
// handlers and provider adapters.
//
// # Core Interfaces
//
//   - [ChatProvider]: send a conversation, optionally with images, and
//     receive a text response
//   - [ImageProvider]: generate images from a text prompt
//   - [ImageTransformer]: restyle an existing image with a diffusion model
//
// Adapters live under provider/: openai, anthropic, google and replicate.
//
// # Multimodal Messages
//
// Vision requests carry their image as a content part:
//
//	msg := dreamfuse.UserParts(
//	    dreamfuse.NewTextPart("Describe this picture."),
//	    dreamfuse.NewImageBase64Part(b64, "image/jpeg").WithDetail(dreamfuse.ImageDetailHigh),
//	)
//	resp, err := provider.Chat(ctx, []dreamfuse.Message{msg}, dreamfuse.WithMaxTokens(1000))
//
// # Errors
//
// Adapters return [*Error] values categorized as transient, permanent or
// user input, carrying the HTTP status and any Retry-After hint. Use
// [IsTransient], [IsContentPolicy], [StatusCodeOf] and [RetryAfterOf] to
// inspect them. Image download and encoding failures are [*ImageError].
//
// # Partial Results
//
// Handlers that keep going after a failed step record each step as a
// [Stage], so a successful analysis survives a failed image generation.
package dreamfuse
