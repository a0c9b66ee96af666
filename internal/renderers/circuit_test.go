package renderers

import (
	"math"
	"testing"

	"github.com/san-kum/asciiscape/internal/ascii"
)

func TestCircuitGrid(t *testing.T) {
	r := newCircuit(ascii.Dark, seeded(1))
	s := r.createState(800, 600, 1)

	if len(s.nodes) != 40*30 {
		t.Fatalf("expected 1200 nodes, got %d", len(s.nodes))
	}
	if len(s.signals) != initialSignals {
		t.Errorf("expected %d initial signals, got %d", initialSignals, len(s.signals))
	}
	if s.hubX != 400 || s.hubY != 300 {
		t.Errorf("expected hub at centre, got (%f, %f)", s.hubX, s.hubY)
	}
	for i, n := range s.nodes {
		switch n.glyph {
		case "+", "-", "|":
		default:
			t.Errorf("node %d: unexpected glyph %q", i, n.glyph)
		}
		if n.baseOpacity < 0.06-1e-12 || n.baseOpacity > 0.20+1e-12 {
			t.Errorf("node %d: base opacity %f out of range", i, n.baseOpacity)
		}
	}
}

func TestCircuitSpawnRate(t *testing.T) {
	r := newCircuit(ascii.Dark, seeded(2))
	s := r.createState(800, 600, 1)

	spawns := 0
	for step := 0; step < 63; step++ {
		r.update(s, 0.016, ascii.MouseState{}, nil)
		if len(s.signals) > MaxSignals {
			t.Fatalf("step %d: %d signals above cap", step, len(s.signals))
		}
		// The spawn timer only resets when a signal is born.
		if s.signalTimer != 0 {
			continue
		}
		spawns++
		sg := s.signals[len(s.signals)-1]
		if d := math.Hypot(sg.x-s.hubX, sg.y-s.hubY); d < 80 || d > 280 {
			t.Errorf("step %d: new signal %f from the hub, outside the spawn ring", step, d)
		}
	}
	if spawns < 3 || spawns > 4 {
		t.Errorf("expected 3-4 spawns in one second, got %d", spawns)
	}
}

func TestCircuitCapWithPointer(t *testing.T) {
	r := newCircuit(ascii.Light, seeded(3))
	s := r.createState(1600, 1200, 1)
	mouse := ascii.MouseState{X: 10, Y: 10, Active: true}

	for step := 0; step < 600; step++ {
		r.update(s, 0.016, mouse, nil)
		if len(s.signals) > MaxSignals {
			t.Fatalf("step %d: %d signals above cap", step, len(s.signals))
		}
	}
	for i, n := range s.nodes {
		if n.opacity > 0.45+1e-12 {
			t.Errorf("node %d: opacity %f above light cap", i, n.opacity)
		}
	}
}

func TestCircuitSignalsArrive(t *testing.T) {
	r := newCircuit(ascii.Dark, seeded(4))
	s := r.createState(400, 400, 1)
	s.signals = s.signals[:0]
	s.signals = append(s.signals,
		signal{x: s.hubX + 2, y: s.hubY, tx: s.hubX, ty: s.hubY, speed: 60, opacity: 0.4},
		signal{x: s.hubX + 10, y: s.hubY, tx: s.hubX, ty: s.hubY, speed: 1000, opacity: 0.4},
		signal{x: s.hubX + 100, y: s.hubY, tx: s.hubX, ty: s.hubY, speed: 100, opacity: 0.4},
	)

	r.update(s, 0.1, ascii.MouseState{}, nil)

	if len(s.signals) != 2 {
		t.Fatalf("expected arrived signal removed, got %d signals", len(s.signals))
	}
	if s.signals[0].x != s.hubX || s.signals[0].y != s.hubY {
		t.Errorf("expected fast signal to stop on the hub, got (%f, %f)", s.signals[0].x, s.signals[0].y)
	}
	if math.Abs(s.signals[1].x-(s.hubX+90)) > 1e-9 {
		t.Errorf("expected slow signal at %f, got %f", s.hubX+90, s.signals[1].x)
	}

	r.update(s, 0.016, ascii.MouseState{}, nil)
	for _, sg := range s.signals {
		if sg.x == s.hubX && sg.y == s.hubY {
			t.Errorf("expected signal on the hub to be removed")
		}
	}
}

func TestCircuitDrawAccent(t *testing.T) {
	r := newCircuit(ascii.Dark, seeded(5))
	s := r.createState(400, 300, 1)
	r.update(s, 0.016, ascii.MouseState{}, nil)

	rec := &recorder{}
	r.draw(rec, s, 400, 300)

	accent := ascii.PaletteFor(ascii.Dark).Accent
	hubs, stars := 0, 0
	for _, g := range rec.glyphs {
		switch g.text {
		case hubGlyph:
			hubs++
			if g.fill.RGB != accent || g.fill.Alpha != 0.35 {
				t.Errorf("unexpected hub fill %v", g.fill)
			}
		case signalGlyph:
			stars++
			if g.fill.RGB != accent {
				t.Errorf("unexpected signal colour %v", g.fill.RGB)
			}
		}
	}
	if hubs != 1 {
		t.Errorf("expected one hub, got %d", hubs)
	}
	if stars != len(s.signals) {
		t.Errorf("expected %d signals drawn, got %d", len(s.signals), stars)
	}
}
