package dreamfuse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleConstants(t *testing.T) {
	assert.Equal(t, Role("user"), RoleUser)
	assert.Equal(t, Role("assistant"), RoleAssistant)
	assert.Equal(t, Role("system"), RoleSystem)
}

func TestContentParts(t *testing.T) {
	t.Run("text part", func(t *testing.T) {
		p := NewTextPart("describe this")
		assert.Equal(t, ContentPartTypeText, p.Type)
		assert.Equal(t, "describe this", p.Text)
	})

	t.Run("url image part", func(t *testing.T) {
		p := NewImageURLPart("https://example.com/a.png")
		assert.Equal(t, ContentPartTypeImage, p.Type)
		assert.Equal(t, "https://example.com/a.png", p.ImageURL)
		assert.Empty(t, p.Base64)
	})

	t.Run("base64 image part with detail", func(t *testing.T) {
		p := NewImageBase64Part("AAAA", "image/jpeg").WithDetail(ImageDetailHigh)
		assert.Equal(t, ContentPartTypeImage, p.Type)
		assert.Equal(t, "AAAA", p.Base64)
		assert.Equal(t, "image/jpeg", p.MimeType)
		assert.Equal(t, ImageDetailHigh, p.Detail)
	})
}

func TestMessageConstructors(t *testing.T) {
	sys := SystemMessage("you are an expert")
	assert.Equal(t, RoleSystem, sys.Role)
	assert.False(t, sys.HasParts())

	user := UserMessage("hello")
	assert.Equal(t, RoleUser, user.Role)
	assert.Equal(t, "hello", user.Content)

	multi := UserParts(NewTextPart("look"), NewImageURLPart("https://example.com/x.jpg"))
	assert.Equal(t, RoleUser, multi.Role)
	assert.True(t, multi.HasParts())
	assert.Len(t, multi.Parts, 2)
}
