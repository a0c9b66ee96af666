package headless

import (
	"log/slog"
	"time"

	"github.com/san-kum/asciiscape/internal/ascii"
	"github.com/san-kum/asciiscape/internal/canvas"
	"github.com/san-kum/asciiscape/internal/host"
	"github.com/san-kum/asciiscape/internal/page"
	"github.com/san-kum/asciiscape/internal/renderers"
)

type Options struct {
	Theme         ascii.Theme
	Mode          ascii.ColorMode
	Width, Height float64
	DPR           float64
	ReducedMotion bool
	CellWidth     int
	CellHeight    int
	FPS           int
	Page          page.Config
	Logger        *slog.Logger
	Registry      *renderers.Registry
	Renderer      []renderers.Option
	Observers     []host.FrameObserver
}

// Session is a mounted hero canvas on a page, driven by a Clock.
type Session struct {
	opts Options

	Clock   *Clock
	Env     *Env
	Page    *page.Page
	Grid    *canvas.Grid
	Element *canvas.Element

	surface *canvas.Surface
}

func NewSession(opts Options) (*Session, error) {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.DPR <= 0 {
		opts.DPR = 1
	}

	s := &Session{
		opts:  opts,
		Clock: NewClock(opts.FPS),
		Env: &Env{
			DPR:           opts.DPR,
			Viewport:      opts.Height,
			ReducedMotion: opts.ReducedMotion,
		},
		Page: page.New(opts.Page, opts.FPS),
		Grid: canvas.NewGrid(opts.CellWidth, opts.CellHeight),
	}
	s.Element = canvas.NewElement(s.Grid)
	s.Page.SetViewport(opts.Width, opts.Height)
	s.Element.SetBounds(s.Page.CanvasBounds())

	if err := s.mount(opts.Theme, opts.Mode); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) mount(theme ascii.Theme, mode ascii.ColorMode) error {
	opts := []canvas.SurfaceOption{
		canvas.WithScrollTarget(s.Page),
		canvas.WithLogger(s.opts.Logger),
		canvas.WithRendererOptions(s.opts.Renderer...),
	}
	if s.opts.Registry != nil {
		opts = append(opts, canvas.WithRegistry(s.opts.Registry))
	}
	for _, o := range s.opts.Observers {
		opts = append(opts, canvas.WithObserver(o))
	}

	surface, err := canvas.NewSurface(theme, s.Page.Mode(mode), s.Element, s.Env, s.Clock, opts...)
	if err != nil {
		return err
	}
	s.surface = surface
	s.opts.Theme = theme
	s.opts.Mode = mode
	s.sync()
	return nil
}

// sync pushes page geometry into the host.
func (s *Session) sync() {
	s.Element.SetBounds(s.Page.CanvasBounds())
	h := s.surface.Host()
	h.Scroll()
	h.SetIntersecting(s.Page.Intersecting())
}

func (s *Session) Surface() *canvas.Surface { return s.surface }
func (s *Session) Host() *host.Host         { return s.surface.Host() }
func (s *Session) Theme() ascii.Theme       { return s.opts.Theme }
func (s *Session) Mode() ascii.ColorMode    { return s.opts.Mode }
func (s *Session) Frame() canvas.Frame      { return s.Grid.Snapshot() }

// Step animates the page scroll one frame, then fires due frame callbacks.
func (s *Session) Step() {
	if s.Page.Update() {
		s.sync()
	}
	s.Clock.Step()
}

// StepAt is Step for a driver that owns a real clock; ts is in
// milliseconds.
func (s *Session) StepAt(ts float64) {
	if s.Page.Update() {
		s.sync()
	}
	s.Clock.StepAt(ts)
}

func (s *Session) Advance(d time.Duration) {
	for n := int(d / s.Clock.Interval()); n > 0; n-- {
		s.Step()
	}
}

// PointerMove takes viewport coordinates.
func (s *Session) PointerMove(x, y float64) { s.Host().PointerMove(x, y) }
func (s *Session) PointerLeave()            { s.Host().PointerLeave() }
func (s *Session) SetHidden(hidden bool)    { s.Host().SetDocumentHidden(hidden) }
func (s *Session) ScrollBy(dy float64)      { s.Page.ScrollBy(dy) }

// JumpTo scrolls without animation.
func (s *Session) JumpTo(y float64) {
	s.Page.Jump(y)
	s.sync()
}

func (s *Session) Resize(width, height float64) {
	s.Env.Viewport = height
	s.Page.SetViewport(width, height)
	s.sync()
	s.Host().NotifyResize()
}

// SetTheme remounts the surface with another theme.
func (s *Session) SetTheme(theme ascii.Theme) error {
	prev := s.opts.Theme
	s.surface.Close()
	if err := s.mount(theme, s.opts.Mode); err != nil {
		if rerr := s.mount(prev, s.opts.Mode); rerr != nil {
			return rerr
		}
		return err
	}
	return nil
}

func (s *Session) SetMode(mode ascii.ColorMode) error {
	s.surface.Close()
	return s.mount(s.opts.Theme, mode)
}

func (s *Session) Close() { s.surface.Close() }
