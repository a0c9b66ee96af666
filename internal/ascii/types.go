package ascii

import "github.com/pkg/errors"

type Theme string

const (
	ThemeCodeFlow   Theme = "code-flow"
	ThemeParliament Theme = "parliament"
	ThemeCircuit    Theme = "circuit"
	ThemeCipher     Theme = "cipher"
	ThemeTopography Theme = "topography"
)

// Themes lists every theme in display order.
var Themes = []Theme{ThemeCodeFlow, ThemeParliament, ThemeCircuit, ThemeCipher, ThemeTopography}

type ColorMode string

const (
	Light ColorMode = "light"
	Dark  ColorMode = "dark"
)

var ErrUnknownColorMode = errors.New("unknown color mode")

// ParseColorMode accepts "light" and "dark".
func ParseColorMode(s string) (ColorMode, error) {
	switch ColorMode(s) {
	case Light, Dark:
		return ColorMode(s), nil
	}
	return "", errors.Wrapf(ErrUnknownColorMode, "%q", s)
}

// MouseState is the pointer in canvas-local CSS pixels.
type MouseState struct {
	X, Y   float64
	Active bool
}

// ScrollState carries how far the scroll target has been traversed, in [0,1].
type ScrollState struct {
	Progress float64
}

// State is the opaque per-mount state returned by CreateState.
type State any

type Renderer interface {
	CreateState(width, height, dpr float64) State
	Update(s State, dt float64, mouse MouseState, scroll *ScrollState)
	Draw(ctx Context, s State, width, height float64)
}

// Factory builds a renderer for a colour mode.
type Factory func(mode ColorMode) Renderer
