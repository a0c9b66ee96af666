package canvas

import (
	"log/slog"

	"github.com/pkg/errors"

	"github.com/san-kum/asciiscape/internal/ascii"
	"github.com/san-kum/asciiscape/internal/host"
	"github.com/san-kum/asciiscape/internal/renderers"
)

// Surface is the canvas component: a theme looked up in the renderer
// registry, mounted on an element by a host.
type Surface struct {
	theme ascii.Theme
	mode  ascii.ColorMode
	host  *host.Host
	inert bool
}

type surfaceConfig struct {
	registry *renderers.Registry
	scroll   host.ScrollTarget
	logger   *slog.Logger
	opts     []renderers.Option
	observer []host.FrameObserver
}

type SurfaceOption func(*surfaceConfig)

func WithScrollTarget(t host.ScrollTarget) SurfaceOption {
	return func(c *surfaceConfig) { c.scroll = t }
}

func WithLogger(l *slog.Logger) SurfaceOption {
	return func(c *surfaceConfig) { c.logger = l }
}

func WithRegistry(r *renderers.Registry) SurfaceOption {
	return func(c *surfaceConfig) { c.registry = r }
}

// WithRendererOptions forwards options to the theme's constructor.
func WithRendererOptions(opts ...renderers.Option) SurfaceOption {
	return func(c *surfaceConfig) { c.opts = append(c.opts, opts...) }
}

// WithObserver registers a frame observer before the host mounts, so it
// also sees a reduced-motion static frame.
func WithObserver(o host.FrameObserver) SurfaceOption {
	return func(c *surfaceConfig) { c.observer = append(c.observer, o) }
}

// NewSurface mounts theme on el. An unknown theme is an error. An element
// without a drawing context is not: the surface is returned inert and
// nothing animates.
func NewSurface(theme ascii.Theme, mode ascii.ColorMode, el host.Element, env host.Environment, sched host.Scheduler, opts ...SurfaceOption) (*Surface, error) {
	cfg := surfaceConfig{}
	for _, fn := range opts {
		fn(&cfg)
	}
	if cfg.registry == nil {
		cfg.registry = renderers.NewRegistry()
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.DiscardHandler)
	}

	factory, err := cfg.registry.Factory(theme, cfg.opts...)
	if err != nil {
		return nil, err
	}

	h := host.New(el, env, sched, host.Options{
		Factory:      factory,
		ColorMode:    mode,
		ScrollTarget: cfg.scroll,
		Logger:       cfg.logger.With("theme", string(theme)),
	})
	for _, o := range cfg.observer {
		h.AddObserver(o)
	}

	s := &Surface{theme: theme, mode: mode, host: h}
	if err := h.Mount(); err != nil {
		if !errors.Is(err, host.ErrNoContext) {
			return nil, err
		}
		cfg.logger.Debug("surface inert", "theme", theme, "err", err)
		s.inert = true
	}
	return s, nil
}

func (s *Surface) Theme() ascii.Theme    { return s.theme }
func (s *Surface) Mode() ascii.ColorMode { return s.mode }
func (s *Surface) Host() *host.Host      { return s.host }
func (s *Surface) Inert() bool           { return s.inert }
func (s *Surface) Close()                { s.host.Unmount() }
