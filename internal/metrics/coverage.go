package metrics

// Coverage is the mean number of painted cells per frame.
type Coverage struct {
	name    string
	sum     float64
	samples int
}

func NewCoverage() *Coverage {
	return &Coverage{name: "coverage"}
}

func (c *Coverage) Name() string { return c.name }

func (c *Coverage) Observe(s FrameStats) {
	c.sum += float64(s.Glyphs)
	c.samples++
}

func (c *Coverage) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return c.sum / float64(c.samples)
}

func (c *Coverage) Reset() {
	c.sum = 0
	c.samples = 0
}

// MeanAlpha is the mean painted-cell alpha across frames with any glyphs.
type MeanAlpha struct {
	name    string
	sum     float64
	samples int
}

func NewMeanAlpha() *MeanAlpha {
	return &MeanAlpha{name: "mean_alpha"}
}

func (m *MeanAlpha) Name() string { return m.name }

func (m *MeanAlpha) Observe(s FrameStats) {
	if s.Glyphs == 0 {
		return
	}
	m.sum += s.MeanAlpha
	m.samples++
}

func (m *MeanAlpha) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *MeanAlpha) Reset() {
	m.sum = 0
	m.samples = 0
}
