package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/asciiscape/internal/ascii"
	"github.com/san-kum/asciiscape/internal/page"
)

const (
	DefaultTheme      = string(ascii.ThemeCodeFlow)
	DefaultColorMode  = string(ascii.Dark)
	DefaultDriver     = "tui"
	DefaultFPS        = 60
	DefaultCellWidth  = 8
	DefaultCellHeight = 16
	DefaultDPR        = 1.0
	DefaultWidth      = 960.0
	DefaultHeight     = 480.0
	DefaultDuration   = 5.0
	DefaultDataDir    = ".asciiscape"

	// ReducedMotionEnv requests reduced motion when set to a true value.
	ReducedMotionEnv = "REDUCED_MOTION"
)

var Drivers = []string{"tui", "term", "window", "headless"}

type Config struct {
	Theme         string         `yaml:"theme" toml:"theme"`
	ColorMode     string         `yaml:"color_mode" toml:"color_mode"`
	Driver        string         `yaml:"driver" toml:"driver"`
	FPS           int            `yaml:"fps" toml:"fps"`
	ReducedMotion bool           `yaml:"reduced_motion" toml:"reduced_motion"`
	CellWidth     int            `yaml:"cell_width" toml:"cell_width"`
	CellHeight    int            `yaml:"cell_height" toml:"cell_height"`
	DPR           float64        `yaml:"dpr" toml:"dpr"`
	Width         float64        `yaml:"width" toml:"width"`
	Height        float64        `yaml:"height" toml:"height"`
	Duration      float64        `yaml:"duration" toml:"duration"`
	Seed          uint64         `yaml:"seed" toml:"seed"`
	Hero          HeroConfig     `yaml:"hero" toml:"hero"`
	Sections      []page.Section `yaml:"sections" toml:"sections"`
	DataDir       string         `yaml:"data_dir" toml:"data_dir"`
	LogFile       string         `yaml:"log_file" toml:"log_file"`
}

type HeroConfig struct {
	Variant     string `yaml:"variant" toml:"variant"`
	Headline    string `yaml:"headline" toml:"headline"`
	Subheadline string `yaml:"subheadline" toml:"subheadline"`
}

func DefaultConfig() *Config {
	p := page.DefaultConfig()
	return &Config{
		Theme:      DefaultTheme,
		ColorMode:  DefaultColorMode,
		Driver:     DefaultDriver,
		FPS:        DefaultFPS,
		CellWidth:  DefaultCellWidth,
		CellHeight: DefaultCellHeight,
		DPR:        DefaultDPR,
		Width:      DefaultWidth,
		Height:     DefaultHeight,
		Duration:   DefaultDuration,
		Hero: HeroConfig{
			Variant:     string(p.Variant),
			Headline:    p.Headline,
			Subheadline: p.Subheadline,
		},
		Sections: p.Sections,
		DataDir:  DefaultDataDir,
	}
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

// Load reads a YAML or TOML file over the defaults. The format follows the
// file extension; anything but .toml is YAML.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if isTOML(path) {
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, errors.Wrapf(err, "parse %s", path)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	var data []byte
	if isTOML(path) {
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return err
		}
		data = buf.Bytes()
	} else {
		var err error
		if data, err = yaml.Marshal(cfg); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0644)
}

// ApplyEnv folds environment overrides into the config.
func (c *Config) ApplyEnv() {
	switch strings.ToLower(os.Getenv(ReducedMotionEnv)) {
	case "1", "true", "yes", "reduce":
		c.ReducedMotion = true
	}
}

func (c *Config) Validate() error {
	if _, err := ascii.ParseColorMode(c.ColorMode); err != nil {
		return errors.Wrap(err, "color_mode")
	}
	if _, err := page.ParseVariant(c.Hero.Variant); err != nil {
		return errors.Wrapf(err, "hero.variant %q", c.Hero.Variant)
	}
	known := false
	for _, d := range Drivers {
		if c.Driver == d {
			known = true
		}
	}
	if !known {
		return errors.Errorf("unknown driver: %s", c.Driver)
	}
	if c.FPS <= 0 || c.FPS > 240 {
		return errors.Errorf("fps must be in (0, 240], got %d", c.FPS)
	}
	if c.CellWidth <= 0 || c.CellHeight <= 0 {
		return errors.Errorf("cell size must be positive, got %dx%d", c.CellWidth, c.CellHeight)
	}
	return nil
}

func (c *Config) Mode() ascii.ColorMode {
	m, err := ascii.ParseColorMode(c.ColorMode)
	if err != nil {
		return ascii.Dark
	}
	return m
}

func (c *Config) PageConfig() page.Config {
	v, err := page.ParseVariant(c.Hero.Variant)
	if err != nil {
		v = page.VariantBackground
	}
	return page.Config{
		Variant:     v,
		Headline:    c.Hero.Headline,
		Subheadline: c.Hero.Subheadline,
		Sections:    c.Sections,
	}
}
