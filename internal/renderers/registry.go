package renderers

import (
	"github.com/pkg/errors"

	"github.com/san-kum/asciiscape/internal/ascii"
)

// ErrUnknownTheme is returned when a theme has no registered renderer.
var ErrUnknownTheme = errors.New("unknown theme")

// Constructor builds a renderer for a colour mode.
type Constructor func(mode ascii.ColorMode, opts ...Option) ascii.Renderer

type Registry struct {
	themes map[ascii.Theme]Constructor
}

func NewRegistry() *Registry {
	r := &Registry{themes: make(map[ascii.Theme]Constructor)}

	r.themes[ascii.ThemeCodeFlow] = NewCodeFlow
	r.themes[ascii.ThemeParliament] = NewParliament
	r.themes[ascii.ThemeCircuit] = NewCircuit
	r.themes[ascii.ThemeCipher] = NewCipher
	r.themes[ascii.ThemeTopography] = NewTopography

	return r
}

// Register adds or replaces the constructor for a theme.
func (r *Registry) Register(theme ascii.Theme, fn Constructor) {
	r.themes[theme] = fn
}

func (r *Registry) Get(theme ascii.Theme, mode ascii.ColorMode, opts ...Option) (ascii.Renderer, error) {
	fn, ok := r.themes[theme]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownTheme, "%q", theme)
	}
	return fn(mode, opts...), nil
}

// Factory binds a theme to an ascii.Factory, so the host can rebuild the
// renderer whenever the colour mode changes.
func (r *Registry) Factory(theme ascii.Theme, opts ...Option) (ascii.Factory, error) {
	fn, ok := r.themes[theme]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownTheme, "%q", theme)
	}
	return func(mode ascii.ColorMode) ascii.Renderer { return fn(mode, opts...) }, nil
}

// List returns the registered themes, built-ins first in display order.
func (r *Registry) List() []ascii.Theme {
	out := make([]ascii.Theme, 0, len(r.themes))
	seen := make(map[ascii.Theme]bool, len(r.themes))
	for _, t := range ascii.Themes {
		if _, ok := r.themes[t]; ok {
			out = append(out, t)
			seen[t] = true
		}
	}
	for t := range r.themes {
		if !seen[t] {
			out = append(out, t)
		}
	}
	return out
}
