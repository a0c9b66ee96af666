package metrics

// Smoothness is the share of frames whose dt stayed below the threshold.
// Frames that hit the host's dt clamp count against it.
type Smoothness struct {
	name       string
	threshold  float64
	violations int
	samples    int
}

func NewSmoothness(threshold float64) *Smoothness {
	return &Smoothness{
		name:      "smoothness",
		threshold: threshold,
	}
}

func (s *Smoothness) Name() string {
	return s.name
}

func (s *Smoothness) Observe(f FrameStats) {
	s.samples++
	if f.Dt >= s.threshold {
		s.violations++
	}
}

func (s *Smoothness) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Smoothness) Reset() {
	s.violations = 0
	s.samples = 0
}
