package headless

// Env is a fixed host.Environment.
type Env struct {
	DPR           float64
	Viewport      float64
	ReducedMotion bool
}

func (e *Env) DevicePixelRatio() float64  { return e.DPR }
func (e *Env) ViewportHeight() float64    { return e.Viewport }
func (e *Env) PrefersReducedMotion() bool { return e.ReducedMotion }
