package host

import (
	"log/slog"

	"github.com/san-kum/asciiscape/internal/ascii"
)

// MaxDPR caps the device pixel ratio used for the backing buffer.
const MaxDPR = 2.0

// MaxDt caps the seconds passed to a single update.
const MaxDt = 0.1

// Rect is a bounding box in viewport CSS pixels.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

func (r Rect) Bottom() float64 { return r.Y + r.Height }
func (r Rect) Right() float64  { return r.X + r.Width }

// Contains reports whether the point lies inside the rect.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// FrameID identifies a pending frame callback. Zero means none.
type FrameID uint64

// Scheduler is the animation-frame primitive. Callbacks receive a timestamp
// in milliseconds on a monotonic clock.
type Scheduler interface {
	RequestFrame(cb func(ts float64)) FrameID
	CancelFrame(id FrameID)
}

// Element is a canvas-capable surface.
type Element interface {
	Bounds() Rect
	SetBackingSize(w, h int)
	Context() (ascii.Context, error)
}

type Environment interface {
	DevicePixelRatio() float64
	ViewportHeight() float64
	PrefersReducedMotion() bool
}

// ScrollTarget is the element whose traversal drives scroll progress.
type ScrollTarget interface {
	Bounds() Rect
	ScrollHeight() float64
}

type Phase int

const (
	PhaseMounted Phase = iota
	PhaseSized
	PhaseRunning
	PhasePaused
	PhaseUnmounted
)

func (p Phase) String() string {
	switch p {
	case PhaseMounted:
		return "mounted"
	case PhaseSized:
		return "sized"
	case PhaseRunning:
		return "running"
	case PhasePaused:
		return "paused"
	case PhaseUnmounted:
		return "unmounted"
	}
	return "unknown"
}

// FrameInfo describes a completed update and draw.
type FrameInfo struct {
	Index   int
	Elapsed float64
	Dt      float64
}

type FrameObserver interface {
	OnFrame(info FrameInfo, state ascii.State)
}

// ObserverFunc adapts a function to FrameObserver.
type ObserverFunc func(info FrameInfo, state ascii.State)

func (f ObserverFunc) OnFrame(info FrameInfo, state ascii.State) { f(info, state) }

type Options struct {
	Factory      ascii.Factory
	ColorMode    ascii.ColorMode
	ScrollTarget ScrollTarget
	Logger       *slog.Logger
}
