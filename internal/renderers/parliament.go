package renderers

import (
	"math"

	"github.com/san-kum/asciiscape/internal/ascii"
)

const (
	parliamentCell = 20.0
	parliamentRows = 14
	// parliamentSweep is the angular extent of every seat arc.
	parliamentSweep = math.Pi * 0.85
	podiumGlyph     = "[ === ]"
)

var seatGlyphs = []string{"o", "O", ".", "@", "o"}

type seat struct {
	x, y        float64
	glyph       string
	baseGlyph   string
	activeGlyph string
	baseOpacity float64
	opacity     float64
	row         int
}

func (s seat) Alpha() float64 { return s.opacity }

type parliamentState struct {
	seats   []seat
	podiumX float64
	podiumY float64
	dpr     float64
	time    float64
	buckets *ascii.Buckets
}

type parliament struct {
	mode ascii.ColorMode
}

// NewParliament builds the seating-arc renderer. Its layout is fully
// determined by geometry, so it takes no random source.
func NewParliament(mode ascii.ColorMode, _ ...Option) ascii.Renderer {
	return erase[*parliamentState](newParliament(mode))
}

func newParliament(mode ascii.ColorMode) *parliament {
	return &parliament{mode: mode}
}

func parliamentMaxOpacity(mode ascii.ColorMode) float64 {
	if mode == ascii.Light {
		return 0.5
	}
	return 0.7
}

func (r *parliament) createState(width, height, dpr float64) *parliamentState {
	st := &parliamentState{dpr: dpr}
	if degenerate(width, height) {
		st.buckets = ascii.NewBuckets(ascii.PaletteFor(r.mode).Base, 0)
		return st
	}

	cx := width / 2
	cy := height * 0.95
	vertical := height * 0.90
	baseRadius := vertical * 0.15
	rowSpacing := (vertical - baseRadius) / (parliamentRows - 1)
	startAngle := math.Pi + (math.Pi-parliamentSweep)/2

	for row := 0; row < parliamentRows; row++ {
		radius := baseRadius + float64(row)*rowSpacing
		perRow := max(5, int(math.Floor(parliamentSweep*radius/parliamentCell)))

		for i := 0; i < perRow; i++ {
			angle := startAngle + float64(i)/float64(perRow-1)*parliamentSweep
			x := cx + math.Cos(angle)*radius
			y := cy + math.Sin(angle)*radius

			if x < -parliamentCell || x > width+parliamentCell || y < -parliamentCell || y > height+parliamentCell {
				continue
			}
			glyph := seatGlyphs[row%len(seatGlyphs)]
			st.seats = append(st.seats, seat{
				x:           x,
				y:           y,
				glyph:       glyph,
				baseGlyph:   glyph,
				activeGlyph: "@",
				baseOpacity: 0.12 + float64(row)/parliamentRows*0.12,
				opacity:     0.12,
				row:         row,
			})
		}
	}

	st.podiumX = cx
	st.podiumY = cy - baseRadius*0.4
	st.buckets = ascii.NewBuckets(ascii.PaletteFor(r.mode).Base, len(st.seats))
	return st
}

func (r *parliament) update(s *parliamentState, dt float64, mouse ascii.MouseState, _ *ascii.ScrollState) {
	s.time += dt
	maxOpacity := parliamentMaxOpacity(r.mode)

	for i := range s.seats {
		st := &s.seats[i]

		breath := 0.5 + 0.5*math.Sin(s.time*0.8+float64(st.row)*0.5+float64(i)*0.03)
		st.opacity = st.baseOpacity * (0.6 + 0.4*breath)
		st.glyph = st.baseGlyph

		strength, _, _, ok := proximity(mouse, st.x, st.y)
		if !ok {
			continue
		}
		st.opacity = math.Min(maxOpacity, st.opacity+strength*0.35)
		if strength > 0.5 {
			st.glyph = st.activeGlyph
		} else {
			st.glyph = "O"
		}
	}
}

// podiumOpacity pulses independently of the seats.
func (s *parliamentState) podiumOpacity() float64 {
	return 0.18 + 0.04*math.Sin(s.time)
}

func (r *parliament) draw(ctx ascii.Context, s *parliamentState, width, height float64) {
	ascii.BeginFrame(ctx, s.dpr, width, height, font14)
	defer ctx.Restore()

	if len(s.seats) == 0 {
		return
	}

	ctx.SetFillStyle(ascii.Fill{RGB: ascii.PaletteFor(r.mode).Base, Alpha: s.podiumOpacity()})
	ctx.FillText(podiumGlyph, s.podiumX, s.podiumY)

	ascii.FillBuckets(s.buckets, s.seats)
	s.buckets.Paint(ctx, func(i int32) {
		st := &s.seats[i]
		ctx.FillText(st.glyph, st.x, st.y)
	})
}
