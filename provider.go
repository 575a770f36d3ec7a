package dreamfuse

import (
	"fmt"
	"strings"
)

// Provider identifies an AI provider.
type Provider string

// String returns the provider identifier.
func (p Provider) String() string { return string(p) }

// Supported providers.
const (
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
	ProviderGoogle    Provider = "google"
	ProviderReplicate Provider = "replicate"
)

// SupportsChat reports whether the provider implements ChatProvider.
func (p Provider) SupportsChat() bool {
	switch p {
	case ProviderOpenAI, ProviderAnthropic, ProviderGoogle:
		return true
	}
	return false
}

// SupportsImages reports whether the provider implements ImageProvider.
func (p Provider) SupportsImages() bool {
	return p == ProviderOpenAI || p == ProviderGoogle
}

// ParseProvider parses a case-insensitive provider name.
func ParseProvider(s string) (Provider, error) {
	p := Provider(strings.ToLower(strings.TrimSpace(s)))
	switch p {
	case ProviderOpenAI, ProviderAnthropic, ProviderGoogle, ProviderReplicate:
		return p, nil
	}
	return "", fmt.Errorf("unknown provider: %q", s)
}
