// Package metrics measures rendered frames.
package metrics

import (
	"github.com/san-kum/asciiscape/internal/ascii"
	"github.com/san-kum/asciiscape/internal/host"
)

// FrameStats describes one drawn frame.
type FrameStats struct {
	Index     int
	Elapsed   float64
	Dt        float64
	Glyphs    int
	MeanAlpha float64
}

type Metric interface {
	Name() string
	Observe(s FrameStats)
	Value() float64
	Reset()
}

// Sampler reports how much of the surface is painted.
type Sampler interface {
	Coverage() (glyphs int, meanAlpha float64)
}

type SamplerFunc func() (int, float64)

func (f SamplerFunc) Coverage() (int, float64) { return f() }

// Recorder is a host.FrameObserver that samples the surface after every
// frame.
type Recorder struct {
	sampler Sampler
	stats   []FrameStats
	metrics []Metric
}

func NewRecorder(sampler Sampler, metrics ...Metric) *Recorder {
	return &Recorder{
		sampler: sampler,
		stats:   make([]FrameStats, 0, 256),
		metrics: metrics,
	}
}

func DefaultMetrics() []Metric {
	return []Metric{NewCoverage(), NewMeanAlpha(), NewSmoothness(host.MaxDt)}
}

func (r *Recorder) AddMetric(m Metric) { r.metrics = append(r.metrics, m) }

func (r *Recorder) OnFrame(info host.FrameInfo, _ ascii.State) {
	s := FrameStats{Index: info.Index, Elapsed: info.Elapsed, Dt: info.Dt}
	if r.sampler != nil {
		s.Glyphs, s.MeanAlpha = r.sampler.Coverage()
	}
	r.stats = append(r.stats, s)
	for _, m := range r.metrics {
		m.Observe(s)
	}
}

func (r *Recorder) Stats() []FrameStats { return r.stats }

func (r *Recorder) Reset() {
	r.stats = r.stats[:0]
	for _, m := range r.metrics {
		m.Reset()
	}
}

// Values returns every metric keyed by name.
func (r *Recorder) Values() map[string]float64 {
	out := make(map[string]float64, len(r.metrics))
	for _, m := range r.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}

type Summary struct {
	Frames     int
	Duration   float64
	MeanGlyphs float64
	MaxGlyphs  int
	MeanAlpha  float64
}

func Summarize(stats []FrameStats) Summary {
	s := Summary{Frames: len(stats)}
	if len(stats) == 0 {
		return s
	}
	glyphs, alpha := 0.0, 0.0
	for _, f := range stats {
		glyphs += float64(f.Glyphs)
		alpha += f.MeanAlpha
		s.MaxGlyphs = max(s.MaxGlyphs, f.Glyphs)
	}
	s.Duration = stats[len(stats)-1].Elapsed
	s.MeanGlyphs = glyphs / float64(len(stats))
	s.MeanAlpha = alpha / float64(len(stats))
	return s
}

func (r *Recorder) Summary() Summary { return Summarize(r.stats) }
