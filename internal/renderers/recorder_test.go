package renderers

import (
	"math/rand/v2"

	"github.com/san-kum/asciiscape/internal/ascii"
)

type glyph struct {
	text string
	x, y float64
	fill ascii.Fill
}

// recorder is an ascii.Context that keeps what was painted.
type recorder struct {
	ops       []string
	glyphs    []glyph
	fill      ascii.Fill
	font      ascii.Font
	transform [6]float64
	clear     [4]float64
	depth     int
}

func (r *recorder) Save() {
	r.ops = append(r.ops, "save")
	r.depth++
}

func (r *recorder) Restore() {
	r.ops = append(r.ops, "restore")
	r.depth--
}

func (r *recorder) SetTransform(a, b, c, d, e, f float64) {
	r.ops = append(r.ops, "transform")
	r.transform = [6]float64{a, b, c, d, e, f}
}

func (r *recorder) ClearRect(x, y, w, h float64) {
	r.ops = append(r.ops, "clear")
	r.clear = [4]float64{x, y, w, h}
}

func (r *recorder) SetFont(f ascii.Font)               { r.font = f }
func (r *recorder) SetTextAlign(ascii.TextAlign)       {}
func (r *recorder) SetTextBaseline(ascii.TextBaseline) {}
func (r *recorder) SetFillStyle(f ascii.Fill)          { r.fill = f }

func (r *recorder) FillText(text string, x, y float64) {
	r.glyphs = append(r.glyphs, glyph{text: text, x: x, y: y, fill: r.fill})
}

func seeded(seed uint64) Option {
	return WithRand(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}
