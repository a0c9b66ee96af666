package canvas

import (
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/asciiscape/internal/ascii"
)

func toColorful(c ascii.RGB) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// Blend composites a straight-alpha fill over an opaque background.
func Blend(fg ascii.Fill, bg ascii.RGB) ascii.RGB {
	alpha := fg.Alpha
	if !(alpha > 0) {
		return bg
	}
	if alpha > 1 {
		alpha = 1
	}
	c := toColorful(bg).BlendRgb(toColorful(fg.RGB), alpha).Clamped()
	r, g, b := c.RGB255()
	return ascii.RGB{R: r, G: g, B: b}
}

// Hex formats a colour as #rrggbb.
func Hex(c ascii.RGB) string {
	return toColorful(c).Hex()
}
