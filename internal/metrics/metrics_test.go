package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/asciiscape/internal/host"
)

type fixed struct {
	glyphs int
	alpha  float64
}

func (f *fixed) Coverage() (int, float64) { return f.glyphs, f.alpha }

func TestRecorder(t *testing.T) {
	src := &fixed{glyphs: 10, alpha: 0.2}
	r := NewRecorder(src, DefaultMetrics()...)

	r.OnFrame(host.FrameInfo{Index: 1, Elapsed: 0, Dt: 0}, nil)
	src.glyphs, src.alpha = 30, 0.4
	r.OnFrame(host.FrameInfo{Index: 2, Elapsed: 0.1, Dt: 0.1}, nil)

	stats := r.Stats()
	if len(stats) != 2 {
		t.Fatalf("expected 2 frames, got %d", len(stats))
	}
	if stats[1].Glyphs != 30 || stats[1].Index != 2 {
		t.Errorf("unexpected stats %+v", stats[1])
	}

	v := r.Values()
	if v["coverage"] != 20 {
		t.Errorf("expected coverage 20, got %f", v["coverage"])
	}
	if math.Abs(v["mean_alpha"]-0.3) > 1e-9 {
		t.Errorf("expected mean alpha 0.3, got %f", v["mean_alpha"])
	}
	if v["smoothness"] != 0.5 {
		t.Errorf("expected smoothness 0.5, got %f", v["smoothness"])
	}

	sum := r.Summary()
	if sum.Frames != 2 || sum.MaxGlyphs != 30 || sum.MeanGlyphs != 20 || sum.Duration != 0.1 {
		t.Errorf("unexpected summary %+v", sum)
	}

	r.Reset()
	if len(r.Stats()) != 0 || r.Values()["coverage"] != 0 {
		t.Error("expected empty recorder after reset")
	}
}

func TestMeanAlphaSkipsEmptyFrames(t *testing.T) {
	m := NewMeanAlpha()
	m.Observe(FrameStats{Glyphs: 0})
	m.Observe(FrameStats{Glyphs: 4, MeanAlpha: 0.5})
	if m.Value() != 0.5 {
		t.Errorf("expected 0.5, got %f", m.Value())
	}
}

func TestSmoothnessEmpty(t *testing.T) {
	if v := NewSmoothness(0.1).Value(); v != 1 {
		t.Errorf("expected 1 with no samples, got %f", v)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	if s := Summarize(nil); s.Frames != 0 || s.MeanGlyphs != 0 {
		t.Errorf("expected zero summary, got %+v", s)
	}
}
