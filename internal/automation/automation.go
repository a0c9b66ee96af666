// Package automation replays scripted pointer, scroll and visibility input
// against a headless canvas and records what was drawn.
package automation

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"os"
	"sort"
	"sync"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/asciiscape/internal/ascii"
	"github.com/san-kum/asciiscape/internal/canvas"
	"github.com/san-kum/asciiscape/internal/headless"
	"github.com/san-kum/asciiscape/internal/host"
	"github.com/san-kum/asciiscape/internal/metrics"
	"github.com/san-kum/asciiscape/internal/page"
	"github.com/san-kum/asciiscape/internal/renderers"
)

// Scenario defines a scripted run of one theme.
type Scenario struct {
	Name          string  `yaml:"name"`
	Description   string  `yaml:"description"`
	Theme         string  `yaml:"theme"`
	ColorMode     string  `yaml:"color_mode"`
	Variant       string  `yaml:"variant"`
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	DPR           float64 `yaml:"dpr"`
	FPS           int     `yaml:"fps"`
	Seed          uint64  `yaml:"seed"`
	ReducedMotion bool    `yaml:"reduced_motion"`
	Duration      float64 `yaml:"duration"`
	Steps         []Step  `yaml:"steps"`
}

// Step is applied once, on the first frame at or after At seconds.
type Step struct {
	At      float64  `yaml:"at"`
	Pointer *Point   `yaml:"pointer,omitempty"`
	Leave   bool     `yaml:"leave,omitempty"`
	Scroll  float64  `yaml:"scroll,omitempty"`
	Jump    *float64 `yaml:"jump,omitempty"`
	Hide    bool     `yaml:"hide,omitempty"`
	Show    bool     `yaml:"show,omitempty"`
	Resize  *Size    `yaml:"resize,omitempty"`
}

type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type Size struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, errors.Wrap(err, "parse scenario")
	}
	scenario.defaults()
	if err := scenario.Validate(); err != nil {
		return nil, err
	}
	return &scenario, nil
}

func (s *Scenario) defaults() {
	if s.Theme == "" {
		s.Theme = string(ascii.ThemeCodeFlow)
	}
	if s.ColorMode == "" {
		s.ColorMode = string(ascii.Dark)
	}
	if s.Width <= 0 {
		s.Width = 800
	}
	if s.Height <= 0 {
		s.Height = 480
	}
	if s.DPR <= 0 {
		s.DPR = 1
	}
	if s.FPS <= 0 {
		s.FPS = 60
	}
	if s.Duration <= 0 {
		s.Duration = 5
	}
}

func (s *Scenario) Validate() error {
	if _, err := ascii.ParseColorMode(s.ColorMode); err != nil {
		return err
	}
	if _, err := page.ParseVariant(s.Variant); err != nil {
		return err
	}
	for i, step := range s.Steps {
		if step.At < 0 {
			return errors.Errorf("step %d: negative time %.2f", i+1, step.At)
		}
		if step.Hide && step.Show {
			return errors.Errorf("step %d: hide and show are exclusive", i+1)
		}
		if step.Resize != nil && (step.Resize.Width <= 0 || step.Resize.Height <= 0) {
			return errors.Errorf("step %d: resize needs a positive size", i+1)
		}
	}
	return nil
}

type Options struct {
	Logger    *slog.Logger
	Registry  *renderers.Registry
	Page      *page.Config
	Observers []host.FrameObserver

	// Capture keeps every Nth frame; 0 keeps only the last.
	Capture int
}

// Result is what one scenario run drew.
type Result struct {
	Scenario string
	Theme    ascii.Theme
	Mode     ascii.ColorMode
	Stats    []metrics.FrameStats
	Summary  metrics.Summary
	Values   map[string]float64
	Frames   []canvas.Frame
	Final    canvas.Frame
}

func (s *Scenario) sessionOptions(opts Options) (headless.Options, error) {
	mode, err := ascii.ParseColorMode(s.ColorMode)
	if err != nil {
		return headless.Options{}, err
	}
	variant, err := page.ParseVariant(s.Variant)
	if err != nil {
		return headless.Options{}, err
	}

	pc := page.DefaultConfig()
	if opts.Page != nil {
		pc = *opts.Page
	}
	pc.Variant = variant

	var rendererOpts []renderers.Option
	if s.Seed != 0 {
		rendererOpts = append(rendererOpts, renderers.WithRand(rand.New(rand.NewPCG(s.Seed, s.Seed))))
	}

	return headless.Options{
		Theme:         ascii.Theme(s.Theme),
		Mode:          mode,
		Width:         s.Width,
		Height:        s.Height,
		DPR:           s.DPR,
		ReducedMotion: s.ReducedMotion,
		FPS:           s.FPS,
		Page:          pc,
		Logger:        opts.Logger,
		Registry:      opts.Registry,
		Renderer:      rendererOpts,
	}, nil
}

// Run executes the scenario frame by frame on a virtual clock.
func Run(ctx context.Context, scenario *Scenario, opts Options) (*Result, error) {
	s := *scenario
	s.defaults()
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	so, err := s.sessionOptions(opts)
	if err != nil {
		return nil, err
	}

	var sess *headless.Session
	rec := metrics.NewRecorder(metrics.SamplerFunc(func() (int, float64) {
		if sess == nil {
			return 0, 0
		}
		return sess.Grid.Coverage()
	}), metrics.DefaultMetrics()...)
	so.Observers = append(append(so.Observers, opts.Observers...), rec)

	sess, err = headless.NewSession(so)
	if err != nil {
		return nil, errors.Wrapf(err, "scenario %q", s.Name)
	}
	defer sess.Close()

	steps := make([]Step, len(s.Steps))
	copy(steps, s.Steps)
	sort.SliceStable(steps, func(i, j int) bool { return steps[i].At < steps[j].At })

	interval := sess.Clock.Interval().Seconds()
	total := int(s.Duration/interval + 0.5)
	res := &Result{Scenario: s.Name, Theme: so.Theme, Mode: so.Mode}

	next := 0
	for i := 0; i < total; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		t := float64(i) * interval
		for next < len(steps) && steps[next].At <= t+1e-9 {
			apply(sess, steps[next])
			opts.Logger.Debug("step", "index", next+1, "at", steps[next].At)
			next++
		}

		sess.Step()
		if opts.Capture > 0 && (i+1)%opts.Capture == 0 {
			res.Frames = append(res.Frames, sess.Frame())
		}
	}

	res.Stats = append([]metrics.FrameStats(nil), rec.Stats()...)
	res.Summary = rec.Summary()
	res.Values = rec.Values()
	res.Final = sess.Frame()

	opts.Logger.Info("scenario complete",
		"name", s.Name,
		"theme", res.Theme,
		"frames", res.Summary.Frames,
		"mean_glyphs", res.Summary.MeanGlyphs)
	return res, nil
}

func apply(sess *headless.Session, step Step) {
	if step.Resize != nil {
		sess.Resize(step.Resize.Width, step.Resize.Height)
	}
	if step.Jump != nil {
		sess.JumpTo(*step.Jump)
	}
	if step.Scroll != 0 {
		sess.ScrollBy(step.Scroll)
	}
	if step.Pointer != nil {
		sess.PointerMove(step.Pointer.X, step.Pointer.Y)
	}
	if step.Leave {
		sess.PointerLeave()
	}
	if step.Hide {
		sess.SetHidden(true)
	}
	if step.Show {
		sess.SetHidden(false)
	}
}

// SweepResult is one theme and mode combination of a sweep.
type SweepResult struct {
	Theme   ascii.Theme
	Mode    ascii.ColorMode
	Summary metrics.Summary
	Values  map[string]float64
}

// Sweep runs the same scenario across every theme and colour mode given,
// one goroutine per combination.
func Sweep(ctx context.Context, s *Scenario, themes []ascii.Theme, modes []ascii.ColorMode, opts Options) ([]SweepResult, error) {
	results := make([]SweepResult, len(themes)*len(modes))
	errs := make([]error, len(results))

	var wg sync.WaitGroup
	for i, theme := range themes {
		for j, mode := range modes {
			wg.Add(1)
			go func(idx int, theme ascii.Theme, mode ascii.ColorMode) {
				defer wg.Done()

				run := *s
				run.Theme = string(theme)
				run.ColorMode = string(mode)

				res, err := Run(ctx, &run, opts)
				if err != nil {
					errs[idx] = errors.Wrapf(err, "sweep %s/%s", theme, mode)
					return
				}
				results[idx] = SweepResult{
					Theme:   theme,
					Mode:    mode,
					Summary: res.Summary,
					Values:  res.Values,
				}
			}(i*len(modes)+j, theme, mode)
		}
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

// ErrZeroSeed is returned by Ensemble when a run would get seed 0, which
// leaves the renderers unseeded.
var ErrZeroSeed = errors.New("ensemble seeds must be non-zero")

// Ensemble runs the scenario once per seed, seedStart to
// seedStart+runs-1, concurrently.
func Ensemble(ctx context.Context, s *Scenario, runs int, seedStart uint64, opts Options) ([]*Result, error) {
	if runs > 0 && (seedStart == 0 || seedStart+uint64(runs-1) < seedStart) {
		return nil, errors.Wrapf(ErrZeroSeed, "seeds %d..+%d", seedStart, runs-1)
	}

	results := make([]*Result, runs)
	errs := make([]error, runs)

	var wg sync.WaitGroup
	for i := 0; i < runs; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			run := *s
			run.Seed = seedStart + uint64(idx)
			results[idx], errs[idx] = Run(ctx, &run, opts)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}
