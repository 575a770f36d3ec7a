package config

import (
	"fmt"
	"os"

	"github.com/spetersoncode/dreamfuse/handler"
	"gopkg.in/yaml.v3"
)

// Overlay is the YAML document that overrides models and prompt texts.
// Omitted fields keep their current values.
//
//	winter_model: owner/model:version
//	models:
//	  vision: gpt-4o
//	  image: dall-e-3
//	prompts:
//	  dream_system: ...
type Overlay struct {
	WinterModel string          `yaml:"winter_model"`
	Models      handler.Models  `yaml:"models"`
	Prompts     handler.Prompts `yaml:"prompts"`
}

// ApplyOverlayFile reads the YAML overlay at path into c.
func (c *Config) ApplyOverlayFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config overlay: %w", err)
	}
	return c.ApplyOverlay(data)
}

// ApplyOverlay parses a YAML overlay and merges its non-empty fields into c.
func (c *Config) ApplyOverlay(data []byte) error {
	var o Overlay
	if err := yaml.Unmarshal(data, &o); err != nil {
		return fmt.Errorf("parse config overlay: %w", err)
	}

	if o.WinterModel != "" {
		c.WinterModel = o.WinterModel
	}
	c.Prompts = o.Prompts.Merge(c.Prompts)

	set := func(dst *string, src string) {
		if src != "" {
			*dst = src
		}
	}
	set(&c.Models.Vision, o.Models.Vision)
	set(&c.Models.FusionChat, o.Models.FusionChat)
	set(&c.Models.DreamChat, o.Models.DreamChat)
	set(&c.Models.Image, o.Models.Image)
	return nil
}
