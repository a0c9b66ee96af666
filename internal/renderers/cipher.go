package renderers

import (
	"math"
	"math/rand/v2"

	"github.com/san-kum/asciiscape/internal/ascii"
)

const (
	cipherCell  = 24.0
	cipherDecay = 0.92
	// DecodeBoost multiplies a glyph's cycle speed at full pointer strength.
	DecodeBoost = 8.0
	// cycleEvery throttles glyph cycling of cells away from the pointer.
	cycleEvery = 3
)

var cipherGlyphs = []string{
	"0", "1", "2", "3", "4", "5", "6", "7", "8", "9",
	"A", "B", "C", "D", "E", "F",
	"{", "}", "#", "@", "$", "%", "&", "^",
}

type cipherCellState struct {
	x, y        float64
	dx, dy      float64
	glyph       string
	baseOpacity float64
	opacity     float64
	cycleSpeed  float64
}

func (c cipherCellState) Alpha() float64 { return c.opacity }

type cipherState struct {
	cells      []cipherCellState
	dpr        float64
	time       float64
	frameCount int
	buckets    *ascii.Buckets
}

type cipher struct {
	mode ascii.ColorMode
	rng  *rand.Rand
}

// NewCipher builds the cycling hex-glyph renderer.
func NewCipher(mode ascii.ColorMode, opts ...Option) ascii.Renderer {
	return erase[*cipherState](newCipher(mode, opts...))
}

func newCipher(mode ascii.ColorMode, opts ...Option) *cipher {
	o := buildOptions(opts)
	return &cipher{mode: mode, rng: o.rng}
}

func cipherMaxOpacity(mode ascii.ColorMode) float64 {
	if mode == ascii.Dark {
		return 0.65
	}
	return 0.5
}

// decodeRate is the glyph cycle rate of a cell under pointer influence.
func decodeRate(speed, strength float64) float64 {
	return speed * (1 + strength*DecodeBoost)
}

// cycleGlyph replaces the glyph with probability speed*dt.
func (r *cipher) cycleGlyph(current string, speed, dt float64) string {
	if r.rng.Float64() < speed*dt {
		return pick(r.rng, cipherGlyphs)
	}
	return current
}

func (r *cipher) createState(width, height, dpr float64) *cipherState {
	cols, rows := gridSize(width, height, cipherCell)
	st := &cipherState{
		cells: make([]cipherCellState, 0, cols*rows),
		dpr:   dpr,
	}
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			st.cells = append(st.cells, cipherCellState{
				x:           float64(col)*cipherCell + cipherCell/2,
				y:           float64(row)*cipherCell + cipherCell/2,
				glyph:       pick(r.rng, cipherGlyphs),
				baseOpacity: 0.10 + r.rng.Float64()*0.12,
				cycleSpeed:  0.3 + r.rng.Float64()*0.8,
			})
		}
	}
	st.buckets = ascii.NewBuckets(ascii.PaletteFor(r.mode).Base, len(st.cells))
	return st
}

func (r *cipher) update(s *cipherState, dt float64, mouse ascii.MouseState, _ *ascii.ScrollState) {
	s.time += dt
	s.frameCount++
	cycleNow := s.frameCount%cycleEvery == 0
	maxOpacity := cipherMaxOpacity(r.mode)

	for i := range s.cells {
		c := &s.cells[i]
		breath := 0.5 + 0.5*math.Sin(s.time*0.5+float64(i)*0.015)
		c.opacity = c.baseOpacity * (0.5 + 0.5*breath)

		c.dx *= cipherDecay
		c.dy *= cipherDecay

		strength, ux, uy, near := proximity(mouse, c.x+c.dx, c.y+c.dy)
		if near {
			c.opacity = math.Min(maxOpacity, c.opacity+strength*0.4)
			c.glyph = r.cycleGlyph(c.glyph, decodeRate(c.cycleSpeed, strength), dt)

			force := strength * 2.5
			c.dx -= ux * force
			c.dy -= uy * force
			continue
		}

		if cycleNow {
			c.glyph = r.cycleGlyph(c.glyph, c.cycleSpeed, dt*cycleEvery)
		}
	}
}

func (r *cipher) draw(ctx ascii.Context, s *cipherState, width, height float64) {
	ascii.BeginFrame(ctx, s.dpr, width, height, font14)
	defer ctx.Restore()

	ascii.FillBuckets(s.buckets, s.cells)
	s.buckets.Paint(ctx, func(i int32) {
		c := &s.cells[i]
		ctx.FillText(c.glyph, c.x+c.dx, c.y+c.dy)
	})
}
