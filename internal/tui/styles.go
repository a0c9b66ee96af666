package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/asciiscape/internal/ascii"
	"github.com/san-kum/asciiscape/internal/canvas"
	"github.com/san-kum/asciiscape/internal/headless"
	"github.com/san-kum/asciiscape/internal/page"
)

var (
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	active = lipgloss.NewStyle().Foreground(lipgloss.Color("82")).Bold(true)
	white  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
)

type styleKey struct {
	fg   ascii.RGB
	bold bool
}

// styleCache holds one style per blended colour. Canvas glyphs use at most
// one colour per opacity level, so the cache stays small.
type styleCache struct {
	bg     ascii.RGB
	blank  lipgloss.Style
	styles map[styleKey]lipgloss.Style
}

func newStyleCache(bg ascii.RGB) *styleCache {
	return &styleCache{
		bg:     bg,
		blank:  lipgloss.NewStyle().Background(lipgloss.Color(canvas.Hex(bg))),
		styles: make(map[styleKey]lipgloss.Style),
	}
}

func (c *styleCache) cell(sc headless.ScreenCell) (styleKey, lipgloss.Style) {
	if sc.Layer == headless.LayerEmpty {
		return styleKey{fg: c.bg}, c.blank
	}
	k := styleKey{
		fg:   canvas.Blend(sc.Fill, c.bg),
		bold: sc.Layer == headless.LayerText && (sc.Kind == page.KindHeadline || sc.Kind == page.KindTitle),
	}
	if s, ok := c.styles[k]; ok {
		return k, s
	}
	s := c.blank.Foreground(lipgloss.Color(canvas.Hex(k.fg))).Bold(k.bold)
	c.styles[k] = s
	return k, s
}
