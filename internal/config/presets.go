package config

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/san-kum/asciiscape/internal/ascii"
)

var ErrUnknownPreset = errors.New("unknown preset")

func preset(theme ascii.Theme, edit func(c *Config)) *Config {
	c := DefaultConfig()
	c.Theme = string(theme)
	edit(c)
	return c
}

var Presets = map[string]map[string]*Config{
	string(ascii.ThemeCodeFlow): {
		"default": preset(ascii.ThemeCodeFlow, func(c *Config) {}),
		"dense": preset(ascii.ThemeCodeFlow, func(c *Config) {
			c.CellWidth, c.CellHeight = 6, 12
		}),
		"still": preset(ascii.ThemeCodeFlow, func(c *Config) {
			c.ReducedMotion = true
		}),
	},
	string(ascii.ThemeParliament): {
		"chamber": preset(ascii.ThemeParliament, func(c *Config) {
			c.Hero.Variant = "below"
		}),
		"night": preset(ascii.ThemeParliament, func(c *Config) {
			c.Hero.Variant = "dark"
		}),
		"daylight": preset(ascii.ThemeParliament, func(c *Config) {
			c.ColorMode = string(ascii.Light)
		}),
	},
	string(ascii.ThemeCircuit): {
		"default": preset(ascii.ThemeCircuit, func(c *Config) {}),
		"retina": preset(ascii.ThemeCircuit, func(c *Config) {
			c.DPR = 2
			c.CellWidth, c.CellHeight = 8, 16
		}),
	},
	string(ascii.ThemeCipher): {
		"default": preset(ascii.ThemeCipher, func(c *Config) {}),
		"slow": preset(ascii.ThemeCipher, func(c *Config) {
			c.FPS = 30
		}),
	},
	string(ascii.ThemeTopography): {
		"survey": preset(ascii.ThemeTopography, func(c *Config) {
			c.Hero.Variant = "below"
			c.Duration = 8
		}),
		"light": preset(ascii.ThemeTopography, func(c *Config) {
			c.ColorMode = string(ascii.Light)
		}),
	},
}

// GetPreset returns a copy of a named preset.
func GetPreset(theme, name string) (*Config, error) {
	themePresets, ok := Presets[theme]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownPreset, "theme %s", theme)
	}
	cfg, ok := themePresets[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownPreset, "%s/%s", theme, name)
	}
	c := *cfg
	c.Sections = append(c.Sections[:0:0], cfg.Sections...)
	return &c, nil
}

func ListPresets(theme string) []string {
	themePresets, ok := Presets[theme]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(themePresets))
	for name := range themePresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
