package host_test

import (
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/asciiscape/internal/ascii"
	"github.com/san-kum/asciiscape/internal/canvas"
	"github.com/san-kum/asciiscape/internal/headless"
	"github.com/san-kum/asciiscape/internal/host"
)

type spyState struct{ width, height, dpr float64 }

// spy records every call the host makes into a renderer.
type spy struct {
	creates []spyState
	dts     []float64
	mice    []ascii.MouseState
	scrolls []float64
	draws   int
}

func (s *spy) CreateState(width, height, dpr float64) ascii.State {
	st := &spyState{width, height, dpr}
	s.creates = append(s.creates, *st)
	return st
}

func (s *spy) Update(_ ascii.State, dt float64, mouse ascii.MouseState, scroll *ascii.ScrollState) {
	s.dts = append(s.dts, dt)
	s.mice = append(s.mice, mouse)
	p := 0.0
	if scroll != nil {
		p = scroll.Progress
	}
	s.scrolls = append(s.scrolls, p)
}

func (s *spy) Draw(ascii.Context, ascii.State, float64, float64) { s.draws++ }

type target struct {
	top, height float64
}

func (t *target) Bounds() host.Rect     { return host.Rect{Y: t.top, Width: 800, Height: t.height} }
func (t *target) ScrollHeight() float64 { return t.height }

const frame = 1.0 / 60

var errContextLost = errors.New("context lost")

// lostElement never yields a drawing context.
type lostElement struct{ *canvas.Element }

func (lostElement) Context() (ascii.Context, error) { return nil, errContextLost }

var _ = Describe("Host", func() {
	var (
		clock *headless.Clock
		env   *headless.Env
		grid  *canvas.Grid
		el    *canvas.Element
		r     *spy
		h     *host.Host
		opts  host.Options
	)

	BeforeEach(func() {
		clock = headless.NewClock(60)
		env = &headless.Env{DPR: 1, Viewport: 600}
		grid = canvas.NewGrid(8, 16)
		el = canvas.NewElement(grid)
		el.SetBounds(host.Rect{Width: 800, Height: 600})
		r = &spy{}
		opts = host.Options{
			Factory:   func(ascii.ColorMode) ascii.Renderer { return r },
			ColorMode: ascii.Dark,
		}
	})

	mount := func() {
		h = host.New(el, env, clock, opts)
		Expect(h.Mount()).To(Succeed())
	}

	Describe("Mount", func() {
		It("sizes the backing buffer and starts the loop", func() {
			env.DPR = 1.5
			mount()

			Expect(h.Phase()).To(Equal(host.PhaseRunning))
			Expect(r.creates).To(Equal([]spyState{{800, 600, 1.5}}))
			w, hh := grid.BackingSize()
			Expect(w).To(Equal(1200))
			Expect(hh).To(Equal(900))
			Expect(clock.Pending()).To(Equal(1))
		})

		It("clamps the device pixel ratio to 2", func() {
			env.DPR = 3
			mount()

			_, _, dpr := h.Size()
			Expect(dpr).To(Equal(host.MaxDPR))
			w, _ := grid.BackingSize()
			Expect(w).To(Equal(1600))
		})

		It("falls back to a ratio of 1 when none is reported", func() {
			env.DPR = 0
			mount()

			_, _, dpr := h.Size()
			Expect(dpr).To(Equal(1.0))
		})

		It("refuses a second mount", func() {
			mount()
			Expect(h.Mount()).To(MatchError(host.ErrMounted))
		})

		It("requires a factory", func() {
			opts.Factory = nil
			h = host.New(el, env, clock, opts)
			Expect(h.Mount()).To(MatchError(host.ErrNoFactory))
		})

		It("stays inert without a drawing context", func() {
			el = canvas.NewElement(nil)
			h = host.New(el, env, clock, opts)

			err := h.Mount()
			Expect(err).To(MatchError(host.ErrNoContext))
			Expect(clock.Pending()).To(BeZero())
			Expect(r.creates).To(BeEmpty())

			h.NotifyResize()
			h.SetIntersecting(true)
			clock.Advance(time.Second)
			Expect(r.dts).To(BeEmpty())
		})

		It("keeps the element's own error in the chain", func() {
			h = host.New(lostElement{el}, env, clock, opts)

			err := h.Mount()
			Expect(err).To(MatchError(host.ErrNoContext))
			Expect(err).To(MatchError(errContextLost))
			Expect(err.Error()).To(ContainSubstring("context lost"))
		})
	})

	Describe("frame loop", func() {
		It("starts from a zero dt and then follows the clock", func() {
			mount()
			clock.Step()
			clock.Step()

			Expect(r.dts).To(HaveLen(2))
			Expect(r.dts[0]).To(BeZero())
			Expect(r.dts[1]).To(BeNumerically("~", frame, 1e-6))
			Expect(r.draws).To(Equal(2))
		})

		It("clamps dt after a long gap", func() {
			mount()
			clock.Step()
			clock.Skip(5 * time.Second)
			clock.Step()

			Expect(r.dts[1]).To(Equal(host.MaxDt))
		})

		It("reports frames to observers", func() {
			var infos []host.FrameInfo
			mount()
			h.AddObserver(host.ObserverFunc(func(info host.FrameInfo, _ ascii.State) {
				infos = append(infos, info)
			}))
			clock.Advance(100 * time.Millisecond)

			Expect(infos).To(HaveLen(6))
			Expect(infos[5].Index).To(Equal(6))
			Expect(infos[5].Elapsed).To(BeNumerically("~", 5*frame, 1e-6))
		})
	})

	Describe("pausing", func() {
		BeforeEach(func() {
			mount()
			clock.Advance(100 * time.Millisecond)
		})

		It("resumes with a fresh baseline after the document was hidden", func() {
			h.SetDocumentHidden(true)
			Expect(h.Phase()).To(Equal(host.PhasePaused))
			Expect(clock.Pending()).To(BeZero())

			clock.Skip(10 * time.Second)
			clock.Advance(time.Second)
			n := len(r.dts)

			h.SetDocumentHidden(false)
			Expect(h.Phase()).To(Equal(host.PhaseRunning))
			clock.Step()
			clock.Step()

			Expect(r.dts).To(HaveLen(n + 2))
			Expect(r.dts[n]).To(BeZero())
			Expect(r.dts[n+1]).To(BeNumerically("~", frame, 1e-6))
		})

		It("pauses while the canvas is out of view", func() {
			h.SetIntersecting(false)
			Expect(h.Phase()).To(Equal(host.PhasePaused))
			n := len(r.dts)
			clock.Advance(time.Second)
			Expect(r.dts).To(HaveLen(n))

			h.SetIntersecting(true)
			clock.Step()
			Expect(r.dts).To(HaveLen(n + 1))
			Expect(r.dts[n]).To(BeZero())
		})

		It("needs both visibility and intersection to run", func() {
			h.SetDocumentHidden(true)
			h.SetIntersecting(false)
			h.SetIntersecting(true)
			Expect(h.Phase()).To(Equal(host.PhasePaused))

			h.SetDocumentHidden(false)
			Expect(h.Phase()).To(Equal(host.PhaseRunning))
			Expect(clock.Pending()).To(Equal(1))
		})

		It("keeps state across a pause", func() {
			h.SetDocumentHidden(true)
			h.SetDocumentHidden(false)
			Expect(r.creates).To(HaveLen(1))
		})
	})

	Describe("resize", func() {
		It("collapses rapid notifications into one rebuild", func() {
			mount()
			el.SetBounds(host.Rect{Width: 400, Height: 300})
			h.NotifyResize()
			h.NotifyResize()
			h.NotifyResize()
			Expect(clock.Pending()).To(Equal(2))

			clock.Step()
			Expect(r.creates).To(Equal([]spyState{{800, 600, 1}, {400, 300, 1}}))

			clock.Advance(time.Second)
			Expect(r.creates).To(HaveLen(2))
		})
	})

	Describe("reduced motion", func() {
		BeforeEach(func() {
			env.ReducedMotion = true
			mount()
		})

		It("draws exactly one static frame", func() {
			Expect(r.dts).To(Equal([]float64{0}))
			Expect(r.draws).To(Equal(1))
			Expect(clock.Pending()).To(BeZero())
			Expect(h.Phase()).To(Equal(host.PhaseSized))

			h.PointerMove(10, 10)
			h.SetDocumentHidden(true)
			h.SetDocumentHidden(false)
			h.SetIntersecting(true)
			clock.Advance(time.Second)
			Expect(r.draws).To(Equal(1))
		})

		It("redraws the static frame after a resize", func() {
			h.NotifyResize()
			clock.Step()
			Expect(r.creates).To(HaveLen(2))
			Expect(r.draws).To(Equal(2))
			Expect(r.dts).To(Equal([]float64{0, 0}))
		})
	})

	Describe("pointer", func() {
		It("translates viewport coordinates with the cached rect", func() {
			el.SetBounds(host.Rect{X: 20, Y: 100, Width: 800, Height: 600})
			mount()

			h.PointerMove(50, 150)
			Expect(h.Mouse()).To(Equal(ascii.MouseState{X: 30, Y: 50, Active: true}))

			el.SetBounds(host.Rect{X: 20, Y: 40, Width: 800, Height: 600})
			h.PointerMove(50, 150)
			Expect(h.Mouse().Y).To(Equal(50.0))

			h.Scroll()
			h.PointerMove(50, 150)
			Expect(h.Mouse().Y).To(Equal(110.0))

			h.PointerLeave()
			Expect(h.Mouse().Active).To(BeFalse())
		})

		It("hands the pointer to update", func() {
			mount()
			h.PointerMove(300, 200)
			clock.Step()
			Expect(r.mice[0]).To(Equal(ascii.MouseState{X: 300, Y: 200, Active: true}))
		})
	})

	Describe("scroll", func() {
		It("measures progress through the scroll target", func() {
			t := &target{top: 0, height: 1600}
			opts.ScrollTarget = t
			mount()
			Expect(h.ScrollProgress()).To(BeZero())

			t.top = -300
			h.Scroll()
			Expect(h.ScrollProgress()).To(BeNumerically("~", 0.3, 1e-9))

			t.top = -5000
			h.Scroll()
			Expect(h.ScrollProgress()).To(Equal(1.0))

			clock.Step()
			Expect(r.scrolls[0]).To(Equal(1.0))
		})

		It("reads the target at mount", func() {
			opts.ScrollTarget = &target{top: -500, height: 1600}
			mount()
			Expect(h.ScrollProgress()).To(BeNumerically("~", 0.5, 1e-9))
		})

		It("holds progress at zero without a scrollable range", func() {
			opts.ScrollTarget = &target{top: -100, height: 500}
			mount()
			Expect(h.ScrollProgress()).To(BeZero())
		})
	})

	Describe("Unmount", func() {
		It("cancels pending work and ignores later events", func() {
			mount()
			h.NotifyResize()
			h.Unmount()

			Expect(h.Phase()).To(Equal(host.PhaseUnmounted))
			Expect(clock.Pending()).To(BeZero())

			h.PointerMove(10, 10)
			h.SetDocumentHidden(false)
			h.SetIntersecting(true)
			h.NotifyResize()
			clock.Advance(time.Second)

			Expect(r.dts).To(BeEmpty())
			Expect(r.creates).To(HaveLen(1))
			Expect(h.Mouse().Active).To(BeFalse())
			Expect(h.Mount()).To(MatchError(host.ErrMounted))
		})

		It("is idempotent", func() {
			mount()
			h.Unmount()
			h.Unmount()
			Expect(h.Phase()).To(Equal(host.PhaseUnmounted))
		})
	})
})

var _ = DescribeTable("Progress",
	func(top, height, viewport, want float64) {
		Expect(host.Progress(top, height, viewport)).To(BeNumerically("~", want, 1e-9))
	},
	Entry("at the top", 0.0, 2000.0, 1000.0, 0.0),
	Entry("half way", -500.0, 2000.0, 1000.0, 0.5),
	Entry("past the end", -1500.0, 2000.0, 1000.0, 1.0),
	Entry("above the top", 200.0, 2000.0, 1000.0, 0.0),
	Entry("no range", -10.0, 800.0, 1000.0, 0.0),
)
