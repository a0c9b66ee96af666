package host

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/san-kum/asciiscape/internal/ascii"
)

type Host struct {
	el    Element
	env   Environment
	sched Scheduler
	opts  Options
	log   *slog.Logger

	renderer ascii.Renderer
	ctx      ascii.Context
	state    ascii.State

	width, height, dpr float64
	rect               Rect

	mouse  ascii.MouseState
	scroll ascii.ScrollState

	frameID  FrameID
	resizeID FrameID
	lastTime float64

	running bool
	visible bool
	reduced bool

	mounted   bool
	unmounted bool

	frames    int
	elapsed   float64
	observers []FrameObserver
}

func New(el Element, env Environment, sched Scheduler, opts Options) *Host {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Host{
		el:        el,
		env:       env,
		sched:     sched,
		opts:      opts,
		log:       log,
		observers: make([]FrameObserver, 0),
	}
}

func (h *Host) AddObserver(o FrameObserver) { h.observers = append(h.observers, o) }

// Mount builds the renderer, sizes the backing buffer and starts the loop,
// or draws one static frame when reduced motion is preferred. When the
// element has no drawing context Mount returns ErrNoContext and the host
// stays inert.
func (h *Host) Mount() error {
	if h.mounted || h.unmounted {
		return ErrMounted
	}
	if h.opts.Factory == nil {
		return ErrNoFactory
	}

	ctx, err := h.el.Context()
	if err != nil {
		h.log.Debug("no drawing context", "err", err)
		return fmt.Errorf("%w: %w", ErrNoContext, err)
	}
	if ctx == nil {
		h.log.Debug("no drawing context")
		return ErrNoContext
	}

	h.mounted = true
	h.ctx = ctx
	h.renderer = h.opts.Factory(h.opts.ColorMode)
	h.reduced = h.env.PrefersReducedMotion()
	h.running = true
	h.visible = true

	if h.opts.ScrollTarget != nil {
		h.Scroll()
	}

	h.resize()

	if h.reduced {
		h.renderStatic()
	} else {
		h.startLoop()
	}

	h.log.Debug("mounted",
		"mode", h.opts.ColorMode,
		"width", h.width,
		"height", h.height,
		"dpr", h.dpr,
		"reduced_motion", h.reduced)
	return nil
}

// Unmount cancels the pending frame and resize, after which every entry
// point is a no-op.
func (h *Host) Unmount() {
	if h.unmounted {
		return
	}
	h.running = false
	h.stopLoop()
	if h.resizeID != 0 {
		h.sched.CancelFrame(h.resizeID)
		h.resizeID = 0
	}
	h.unmounted = true
	h.log.Debug("unmounted", "frames", h.frames)
}

func (h *Host) live() bool { return h.mounted && !h.unmounted }

func (h *Host) Phase() Phase {
	switch {
	case h.unmounted:
		return PhaseUnmounted
	case h.state == nil:
		return PhaseMounted
	case h.frameID != 0:
		return PhaseRunning
	case !h.running || !h.visible:
		return PhasePaused
	}
	return PhaseSized
}

func (h *Host) resize() {
	rect := h.el.Bounds()
	dpr := h.env.DevicePixelRatio()
	if !(dpr > 0) {
		dpr = 1
	}
	dpr = math.Min(dpr, MaxDPR)

	h.el.SetBackingSize(int(rect.Width*dpr), int(rect.Height*dpr))
	h.width = rect.Width
	h.height = rect.Height
	h.dpr = dpr
	h.rect = rect
	h.state = h.renderer.CreateState(rect.Width, rect.Height, dpr)
}

func (h *Host) shouldAnimate() bool {
	return h.running && h.visible && !h.reduced
}

func (h *Host) startLoop() {
	if h.frameID != 0 {
		return
	}
	h.lastTime = 0
	h.frameID = h.sched.RequestFrame(h.tick)
}

func (h *Host) stopLoop() {
	if h.frameID == 0 {
		return
	}
	h.sched.CancelFrame(h.frameID)
	h.frameID = 0
}

func (h *Host) tick(ts float64) {
	if h.unmounted || !h.shouldAnimate() {
		h.frameID = 0
		return
	}

	if h.lastTime == 0 {
		h.lastTime = ts
	}
	dt := (ts - h.lastTime) / 1000
	h.lastTime = ts
	if dt > MaxDt {
		dt = MaxDt
	}
	if dt < 0 {
		dt = 0
	}

	h.frame(dt)
	h.frameID = h.sched.RequestFrame(h.tick)
}

func (h *Host) renderStatic() {
	h.frame(0)
}

func (h *Host) frame(dt float64) {
	if h.state == nil {
		return
	}
	h.renderer.Update(h.state, dt, h.mouse, &h.scroll)
	h.renderer.Draw(h.ctx, h.state, h.width, h.height)

	h.frames++
	h.elapsed += dt
	info := FrameInfo{Index: h.frames, Elapsed: h.elapsed, Dt: dt}
	for _, o := range h.observers {
		o.OnFrame(info, h.state)
	}
}

// NotifyResize schedules a resize on the next frame, replacing any resize
// already pending. Renderer state is rebuilt from scratch.
func (h *Host) NotifyResize() {
	if !h.live() {
		return
	}
	if h.resizeID != 0 {
		h.sched.CancelFrame(h.resizeID)
	}
	h.resizeID = h.sched.RequestFrame(func(float64) {
		h.resizeID = 0
		if !h.live() {
			return
		}
		h.resize()
		if h.reduced {
			h.renderStatic()
		}
	})
}

func (h *Host) SetIntersecting(intersecting bool) {
	if !h.live() {
		return
	}
	h.visible = intersecting
	if !intersecting {
		h.stopLoop()
		return
	}
	if h.shouldAnimate() {
		h.startLoop()
	}
}

func (h *Host) SetDocumentHidden(hidden bool) {
	if !h.live() {
		return
	}
	if hidden {
		h.running = false
		h.stopLoop()
		return
	}
	h.running = true
	if h.shouldAnimate() {
		h.startLoop()
	}
}

// PointerMove records the pointer in viewport coordinates, translated with
// the element rect cached at the last resize or scroll.
func (h *Host) PointerMove(clientX, clientY float64) {
	if !h.live() {
		return
	}
	h.mouse.X = clientX - h.rect.X
	h.mouse.Y = clientY - h.rect.Y
	h.mouse.Active = true
}

func (h *Host) PointerLeave() {
	if !h.live() {
		return
	}
	h.mouse.Active = false
}

// Scroll refreshes the cached element rect and recomputes scroll progress
// from the scroll target, if any.
func (h *Host) Scroll() {
	if !h.live() {
		return
	}
	h.rect = h.el.Bounds()

	target := h.opts.ScrollTarget
	if target == nil {
		return
	}
	h.scroll.Progress = Progress(target.Bounds().Y, target.ScrollHeight(), h.env.ViewportHeight())
}

// Progress is how far a target with the given top and scroll height has
// been traversed through a viewport, clamped to [0,1]. It is 0 when the
// target does not overflow the viewport.
func Progress(top, scrollHeight, viewport float64) float64 {
	span := scrollHeight - viewport
	if !(span > 0) {
		return 0
	}
	return math.Max(0, math.Min(1, -top/span))
}

func (h *Host) Mouse() ascii.MouseState  { return h.mouse }
func (h *Host) ScrollProgress() float64  { return h.scroll.Progress }
func (h *Host) Frames() int              { return h.frames }
func (h *Host) Renderer() ascii.Renderer { return h.renderer }
func (h *Host) State() ascii.State       { return h.state }

// Size returns the CSS size and device pixel ratio of the last resize.
func (h *Host) Size() (width, height, dpr float64) {
	return h.width, h.height, h.dpr
}
