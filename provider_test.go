package dreamfuse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProvider(t *testing.T) {
	p, err := ParseProvider(" OpenAI ")
	require.NoError(t, err)
	assert.Equal(t, ProviderOpenAI, p)

	_, err = ParseProvider("cohere")
	assert.ErrorContains(t, err, "unknown provider")
}

func TestProviderCapabilities(t *testing.T) {
	tests := []struct {
		provider Provider
		chat     bool
		images   bool
	}{
		{ProviderOpenAI, true, true},
		{ProviderAnthropic, true, false},
		{ProviderGoogle, true, true},
		{ProviderReplicate, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.provider.String(), func(t *testing.T) {
			assert.Equal(t, tt.chat, tt.provider.SupportsChat())
			assert.Equal(t, tt.images, tt.provider.SupportsImages())
		})
	}
}
