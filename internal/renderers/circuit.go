package renderers

import (
	"math"
	"math/rand/v2"

	"github.com/san-kum/asciiscape/internal/ascii"
)

const (
	circuitCell = 20.0
	// MaxSignals caps the live signal list; the oldest signals are dropped first.
	MaxSignals = 30
	// SpawnInterval is the time between periodic signal spawns, in seconds.
	SpawnInterval = 0.3
	// HubRadius is the distance at which a signal counts as arrived.
	HubRadius      = 5.0
	initialSignals = 8
	hubGlyph       = "[+]"
	signalGlyph    = "*"
)

type node struct {
	x, y        float64
	glyph       string
	baseOpacity float64
	opacity     float64
}

func (n node) Alpha() float64 { return n.opacity }

type signal struct {
	x, y     float64
	tx, ty   float64
	speed    float64
	opacity  float64
	progress float64
}

type circuitState struct {
	nodes       []node
	signals     []signal
	hubX, hubY  float64
	dpr         float64
	time        float64
	signalTimer float64
	buckets     *ascii.Buckets
}

type circuit struct {
	mode ascii.ColorMode
	rng  *rand.Rand
}

// NewCircuit builds the wire-grid renderer with signals flowing to a hub.
func NewCircuit(mode ascii.ColorMode, opts ...Option) ascii.Renderer {
	return erase[*circuitState](newCircuit(mode, opts...))
}

func newCircuit(mode ascii.ColorMode, opts ...Option) *circuit {
	o := buildOptions(opts)
	return &circuit{mode: mode, rng: o.rng}
}

func circuitMaxOpacity(mode ascii.ColorMode) float64 {
	if mode == ascii.Light {
		return 0.45
	}
	return 0.6
}

func (r *circuit) createState(width, height, dpr float64) *circuitState {
	cols, rows := gridSize(width, height, circuitCell)
	st := &circuitState{
		nodes:   make([]node, 0, cols*rows),
		signals: make([]signal, 0, MaxSignals+2),
		dpr:     dpr,
	}
	st.buckets = ascii.NewBuckets(ascii.PaletteFor(r.mode).Base, cols*rows)
	if cols == 0 || rows == 0 {
		return st
	}

	st.hubX, st.hubY = width/2, height/2
	maxDist := math.Max(math.Hypot(st.hubX, st.hubY), 1)

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			x := float64(col)*circuitCell + circuitCell/2
			y := float64(row)*circuitCell + circuitCell/2
			dx, dy := x-st.hubX, y-st.hubY

			var glyph string
			switch {
			case r.rng.Float64() < 0.15:
				glyph = "+"
			case math.Abs(dy) < math.Abs(dx):
				glyph = "-"
			default:
				glyph = "|"
			}

			proximity := 1 - math.Hypot(dx, dy)/maxDist
			st.nodes = append(st.nodes, node{
				x:           x,
				y:           y,
				glyph:       glyph,
				baseOpacity: 0.06 + proximity*0.14,
			})
		}
	}

	for i := 0; i < initialSignals; i++ {
		radius := r.rng.Float64()*math.Min(width, height)*0.4 + 50
		st.signals = append(st.signals, r.ringSignal(st, radius))
	}
	return st
}

func (r *circuit) ringSignal(st *circuitState, radius float64) signal {
	angle := r.rng.Float64() * math.Pi * 2
	return signal{
		x:       st.hubX + math.Cos(angle)*radius,
		y:       st.hubY + math.Sin(angle)*radius,
		tx:      st.hubX,
		ty:      st.hubY,
		speed:   60 + r.rng.Float64()*80,
		opacity: 0.3 + r.rng.Float64()*0.2,
	}
}

func (r *circuit) update(s *circuitState, dt float64, mouse ascii.MouseState, _ *ascii.ScrollState) {
	s.time += dt
	s.signalTimer += dt
	maxOpacity := circuitMaxOpacity(r.mode)

	for i := range s.nodes {
		n := &s.nodes[i]
		pulse := 0.5 + 0.5*math.Sin(s.time*0.6+float64(i)*0.02)
		n.opacity = n.baseOpacity * (0.5 + 0.5*pulse)

		if strength, _, _, ok := proximity(mouse, n.x, n.y); ok {
			n.opacity = math.Min(maxOpacity, n.opacity+strength*0.3)
		}
	}

	r.advanceSignals(s, dt, mouse)

	if s.signalTimer > SpawnInterval && len(s.nodes) > 0 {
		s.signalTimer = 0
		s.signals = append(s.signals, r.ringSignal(s, r.rng.Float64()*200+80))

		if mouse.Active {
			s.signals = append(s.signals, signal{
				x:       mouse.X + (r.rng.Float64()-0.5)*20,
				y:       mouse.Y + (r.rng.Float64()-0.5)*20,
				tx:      s.hubX,
				ty:      s.hubY,
				speed:   80 + r.rng.Float64()*60,
				opacity: 0.35 + r.rng.Float64()*0.15,
			})
		}

		if over := len(s.signals) - MaxSignals; over > 0 {
			n := copy(s.signals, s.signals[over:])
			s.signals = s.signals[:n]
		}
	}
}

// advanceSignals moves every signal toward its target and drops arrivals,
// compacting the slice in one pass.
func (r *circuit) advanceSignals(s *circuitState, dt float64, mouse ascii.MouseState) {
	reach := math.Max(math.Hypot(s.hubX, s.hubY), 1)
	live := s.signals[:0]

	for _, sg := range s.signals {
		dx, dy := sg.tx-sg.x, sg.ty-sg.y
		dist := math.Hypot(dx, dy)
		if dist < HubRadius {
			continue
		}

		speed := sg.speed
		if strength, _, _, ok := proximity(mouse, sg.x, sg.y); ok {
			speed *= 1 + strength*2
		}

		step := speed * dt
		if step >= dist {
			sg.x, sg.y = sg.tx, sg.ty
		} else {
			sg.x += dx / dist * step
			sg.y += dy / dist * step
		}
		sg.progress = 1 - dist/reach

		live = append(live, sg)
	}
	s.signals = live
}

func (r *circuit) draw(ctx ascii.Context, s *circuitState, width, height float64) {
	ascii.BeginFrame(ctx, s.dpr, width, height, font14)
	defer ctx.Restore()

	if len(s.nodes) == 0 {
		return
	}

	ascii.FillBuckets(s.buckets, s.nodes)
	s.buckets.Paint(ctx, func(i int32) {
		n := &s.nodes[i]
		ctx.FillText(n.glyph, n.x, n.y)
	})

	accent := ascii.PaletteFor(r.mode).Accent
	ctx.SetFillStyle(ascii.Fill{RGB: accent, Alpha: 0.35})
	ctx.FillText(hubGlyph, s.hubX, s.hubY)

	for _, sg := range s.signals {
		ctx.SetFillStyle(ascii.Fill{RGB: accent, Alpha: sg.opacity})
		ctx.FillText(signalGlyph, sg.x, sg.y)
	}
}
