package renderers

import (
	"math"
	"math/rand/v2"

	"github.com/san-kum/asciiscape/internal/ascii"
)

const (
	// MouseRadius is the pointer influence radius in CSS pixels.
	MouseRadius = 120.0

	// DecayFactor damps repulsion displacement once per update.
	DecayFactor = 0.9
)

var (
	font14 = ascii.Font{Size: 14, Family: ascii.MonoFamily}
	font11 = ascii.Font{Size: 11, Family: ascii.MonoFamily}
)

type Option func(*options)

type options struct {
	rng *rand.Rand
}

// WithRand pins the random source a renderer synthesises and mutates glyphs with.
func WithRand(r *rand.Rand) Option {
	return func(o *options) { o.rng = r }
}

func buildOptions(opts []Option) options {
	o := options{}
	for _, fn := range opts {
		fn(&o)
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return o
}

// program is a renderer with a concrete state type.
type program[S any] interface {
	createState(width, height, dpr float64) S
	update(s S, dt float64, mouse ascii.MouseState, scroll *ascii.ScrollState)
	draw(ctx ascii.Context, s S, width, height float64)
}

// erase adapts a typed program to the ascii.Renderer interface.
func erase[S any](p program[S]) ascii.Renderer {
	return erased[S]{p}
}

type erased[S any] struct {
	p program[S]
}

func (e erased[S]) CreateState(width, height, dpr float64) ascii.State {
	return e.p.createState(width, height, dpr)
}

func (e erased[S]) Update(s ascii.State, dt float64, mouse ascii.MouseState, scroll *ascii.ScrollState) {
	st, ok := s.(S)
	if !ok {
		return
	}
	e.p.update(st, dt, mouse, scroll)
}

func (e erased[S]) Draw(ctx ascii.Context, s ascii.State, width, height float64) {
	st, ok := s.(S)
	if !ok {
		return
	}
	e.p.draw(ctx, st, width, height)
}

func degenerate(width, height float64) bool {
	return !(width > 0) || !(height > 0) || math.IsInf(width, 0) || math.IsInf(height, 0)
}

// gridSize returns the number of cell columns and rows covering the area.
func gridSize(width, height, cell float64) (int, int) {
	if degenerate(width, height) {
		return 0, 0
	}
	return int(math.Ceil(width / cell)), int(math.Ceil(height / cell))
}

// proximity returns the pointer's influence on (x, y): strength in (0,1] and
// the unit vector from the point towards the pointer. ok is false outside the
// radius. At zero distance the direction is zero.
func proximity(mouse ascii.MouseState, x, y float64) (strength, ux, uy float64, ok bool) {
	if !mouse.Active {
		return 0, 0, 0, false
	}
	mx := mouse.X - x
	my := mouse.Y - y
	dist := math.Sqrt(mx*mx + my*my)
	if dist >= MouseRadius {
		return 0, 0, 0, false
	}
	strength = 1 - dist/MouseRadius
	if dist > 0 {
		ux, uy = mx/dist, my/dist
	}
	return strength, ux, uy, true
}

func pick[T any](rng *rand.Rand, items []T) T {
	return items[rng.IntN(len(items))]
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
