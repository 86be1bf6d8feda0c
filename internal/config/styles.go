package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vibegen/vibegen-studio/internal/script"
)

// StyleOverride is one entry in the optional styles YAML file. Operators use
// it to add custom visual styles or retune the built-in ones without a
// rebuild.
type StyleOverride struct {
	Guide   string `yaml:"guide"`
	Palette struct {
		Primary    string `yaml:"primary"`
		Secondary  string `yaml:"secondary"`
		Accent     string `yaml:"accent"`
		Background string `yaml:"background"`
		Text       string `yaml:"text"`
		Glow       string `yaml:"glow"`
	} `yaml:"palette"`
}

// LoadStyleOverrides reads the styles file and installs each entry into the
// style tables. A missing path is not an error; the built-in styles apply.
func LoadStyleOverrides(path string) error {
	if path == "" {
		return nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read styles file: %w", err)
	}

	var overrides map[string]StyleOverride
	if err := yaml.Unmarshal(raw, &overrides); err != nil {
		return fmt.Errorf("parse styles file %s: %w", path, err)
	}

	for name, o := range overrides {
		script.OverrideStyle(name, o.Guide, script.ColorPalette{
			Primary:    o.Palette.Primary,
			Secondary:  o.Palette.Secondary,
			Accent:     o.Palette.Accent,
			Background: o.Palette.Background,
			Text:       o.Palette.Text,
			Glow:       o.Palette.Glow,
		})
	}
	return nil
}
