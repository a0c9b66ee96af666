package renderers

import (
	"math"
	"math/rand/v2"

	"github.com/san-kum/asciiscape/internal/ascii"
)

const (
	codeFlowCell = 24.0
	// DriftSpeed is the upward drift in CSS pixels per second at speed 1.
	DriftSpeed = 12.0
)

var codeFlowGlyphs = []string{"{", "}", "<", ">", "(", ")", "/", "*", "=", "+", ";", "&", "|", "~"}

type codeParticle struct {
	glyph       string
	x, y        float64
	baseOpacity float64
	opacity     float64
	phase       float64
	speed       float64
	dx, dy      float64
}

func (p codeParticle) Alpha() float64 { return p.opacity }

type codeFlowState struct {
	particles []codeParticle
	cols      int
	rows      int
	dpr       float64
	buckets   *ascii.Buckets
}

type codeFlow struct {
	mode ascii.ColorMode
	rng  *rand.Rand
}

// NewCodeFlow builds the drifting-symbols renderer.
func NewCodeFlow(mode ascii.ColorMode, opts ...Option) ascii.Renderer {
	return erase[*codeFlowState](newCodeFlow(mode, opts...))
}

func newCodeFlow(mode ascii.ColorMode, opts ...Option) *codeFlow {
	o := buildOptions(opts)
	return &codeFlow{mode: mode, rng: o.rng}
}

// codeFlowMaxOpacity caps pointer-boosted opacity.
func codeFlowMaxOpacity(mode ascii.ColorMode) float64 {
	if mode == ascii.Light {
		return 0.45
	}
	return 0.6
}

func (r *codeFlow) createState(width, height, dpr float64) *codeFlowState {
	cols, rows := gridSize(width, height, codeFlowCell)
	particles := make([]codeParticle, 0, cols*rows)

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			particles = append(particles, codeParticle{
				glyph:       pick(r.rng, codeFlowGlyphs),
				x:           float64(col)*codeFlowCell + codeFlowCell/2,
				y:           float64(row)*codeFlowCell + codeFlowCell/2,
				baseOpacity: 0.08 + r.rng.Float64()*0.14,
				phase:       r.rng.Float64() * math.Pi * 2,
				speed:       0.3 + r.rng.Float64()*0.7,
			})
		}
	}

	return &codeFlowState{
		particles: particles,
		cols:      cols,
		rows:      rows,
		dpr:       dpr,
		buckets:   ascii.NewBuckets(ascii.PaletteFor(r.mode).Base, len(particles)),
	}
}

func (r *codeFlow) update(s *codeFlowState, dt float64, mouse ascii.MouseState, _ *ascii.ScrollState) {
	maxOpacity := codeFlowMaxOpacity(r.mode)

	for i := range s.particles {
		p := &s.particles[i]

		p.y -= DriftSpeed * p.speed * dt
		if p.y < -codeFlowCell {
			p.y += float64(s.rows+1) * codeFlowCell
			p.glyph = pick(r.rng, codeFlowGlyphs)
		}

		p.phase += dt * p.speed * 1.5
		pulse := 0.5 + 0.5*math.Sin(p.phase)
		p.opacity = p.baseOpacity * (0.5 + 0.5*pulse)

		p.dx *= DecayFactor
		p.dy *= DecayFactor

		strength, ux, uy, ok := proximity(mouse, p.x+p.dx, p.y+p.dy)
		if !ok {
			continue
		}
		p.opacity = math.Min(maxOpacity, p.opacity+strength*0.3)
		force := strength * 3
		p.dx -= ux * force
		p.dy -= uy * force
	}
}

func (r *codeFlow) draw(ctx ascii.Context, s *codeFlowState, width, height float64) {
	ascii.BeginFrame(ctx, s.dpr, width, height, font14)
	defer ctx.Restore()

	ascii.FillBuckets(s.buckets, s.particles)
	s.buckets.Paint(ctx, func(i int32) {
		p := &s.particles[i]
		ctx.FillText(p.glyph, p.x+p.dx, p.y+p.dy)
	})
}
