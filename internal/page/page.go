// Package page lays out the landing page the hero canvas lives on and
// animates its scroll offset.
package page

import (
	"math"
	"strings"

	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/asciiscape/internal/ascii"
	"github.com/san-kum/asciiscape/internal/host"
)

// Layout metrics in CSS pixels.
const (
	CharWidth  = 8.0
	LineHeight = 16.0
	// MaxMeasure is the widest text column, in characters.
	MaxMeasure = 72
)

type Variant string

const (
	// VariantBackground puts the canvas behind a centred headline.
	VariantBackground Variant = "background"
	// VariantBelow puts the headline above a half-height canvas.
	VariantBelow Variant = "below"
	// VariantDark is VariantBackground forced to the dark colour mode.
	VariantDark Variant = "dark"
)

func ParseVariant(s string) (Variant, error) {
	switch v := Variant(s); v {
	case VariantBackground, VariantBelow, VariantDark:
		return v, nil
	case "":
		return VariantBackground, nil
	}
	return "", ErrUnknownVariant
}

type Section struct {
	Title string `yaml:"title" toml:"title"`
	Body  string `yaml:"body" toml:"body"`
}

type Config struct {
	Variant     Variant   `yaml:"variant" toml:"variant"`
	Headline    string    `yaml:"headline" toml:"headline"`
	Subheadline string    `yaml:"subheadline" toml:"subheadline"`
	Sections    []Section `yaml:"sections" toml:"sections"`
}

func DefaultConfig() Config {
	return Config{
		Variant:     VariantBackground,
		Headline:    "Institute Alterna",
		Subheadline: "Redefining learning, one programme at a time.",
		Sections: []Section{
			{
				Title: "Our mission",
				Body:  "We design free programmes that give students room to think, build and argue about the world they are inheriting.",
			},
			{
				Title: "Programmes",
				Body:  "Model United Nations, enrichment courses and an alternative curriculum, each run by volunteers who were students not long ago.",
			},
			{
				Title: "Get involved",
				Body:  "Volunteer with a team, partner with us as a school, or subscribe to hear when the next cohort opens.",
			},
		},
	}
}

type Kind int

const (
	KindHeadline Kind = iota
	KindSubheadline
	KindTitle
	KindBody
)

// Block is one laid-out line of text in page coordinates.
type Block struct {
	X, Y   float64
	Text   string
	Kind   Kind
	Center bool
}

// Page implements host.ScrollTarget: its top is the negated scroll offset.
type Page struct {
	cfg Config

	width, height float64
	blocks        []Block
	contentHeight float64

	offset   float64
	velocity float64
	target   float64
	spring   harmonica.Spring
}

// New builds a page whose scroll spring is stepped fps times a second.
func New(cfg Config, fps int) *Page {
	if cfg.Variant == "" {
		cfg.Variant = VariantBackground
	}
	if fps <= 0 {
		fps = 60
	}
	return &Page{
		cfg:    cfg,
		spring: harmonica.NewSpring(harmonica.FPS(fps), 8.0, 1.0),
	}
}

func (p *Page) Config() Config { return p.cfg }

// Mode returns the colour mode the hero must use, overriding the
// requested one for the dark variant.
func (p *Page) Mode(requested ascii.ColorMode) ascii.ColorMode {
	if p.cfg.Variant == VariantDark {
		return ascii.Dark
	}
	return requested
}

// SetViewport sets the viewport size and reflows the text.
func (p *Page) SetViewport(width, height float64) {
	p.width = math.Max(0, width)
	p.height = math.Max(0, height)
	p.layout()
	p.target = p.clamp(p.target)
	p.offset = p.clamp(p.offset)
}

func (p *Page) Viewport() (float64, float64) { return p.width, p.height }

// heroCanvas is the canvas rect at zero scroll.
func (p *Page) heroCanvas() host.Rect {
	if p.cfg.Variant == VariantBelow {
		half := math.Floor(p.height / 2)
		return host.Rect{X: 0, Y: half, Width: p.width, Height: p.height - half}
	}
	return host.Rect{X: 0, Y: 0, Width: p.width, Height: p.height}
}

func (p *Page) measure() int {
	cols := int(p.width/CharWidth) - 4
	return max(1, min(MaxMeasure, cols))
}

func wrap(text string, width int) []string {
	rendered := lipgloss.NewStyle().Width(width).Render(text)
	lines := strings.Split(rendered, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	return lines
}

func (p *Page) layout() {
	p.blocks = p.blocks[:0]
	measure := p.measure()
	left := math.Max(0, math.Floor((p.width-float64(measure)*CharWidth)/2))

	headlineY := p.height/2 - LineHeight
	if p.cfg.Variant == VariantBelow {
		headlineY = p.height/4 - LineHeight
	}
	y := math.Floor(headlineY/LineHeight) * LineHeight
	for _, line := range wrap(p.cfg.Headline, measure) {
		p.blocks = append(p.blocks, Block{X: p.width / 2, Y: y, Text: line, Kind: KindHeadline, Center: true})
		y += LineHeight
	}
	y += LineHeight
	for _, line := range wrap(p.cfg.Subheadline, measure) {
		p.blocks = append(p.blocks, Block{X: p.width / 2, Y: y, Text: line, Kind: KindSubheadline, Center: true})
		y += LineHeight
	}

	hero := p.heroCanvas()
	y = hero.Bottom()
	for _, s := range p.cfg.Sections {
		y += LineHeight * 2
		p.blocks = append(p.blocks, Block{X: left, Y: y, Text: s.Title, Kind: KindTitle})
		y += LineHeight * 2
		for _, line := range wrap(s.Body, measure) {
			p.blocks = append(p.blocks, Block{X: left, Y: y, Text: line, Kind: KindBody})
			y += LineHeight
		}
	}
	if len(p.cfg.Sections) > 0 {
		y += LineHeight * 2
	}
	p.contentHeight = y
}

// Blocks returns the text lines in page coordinates.
func (p *Page) Blocks() []Block { return p.blocks }

func (p *Page) ContentHeight() float64 { return p.contentHeight }

func (p *Page) MaxOffset() float64 {
	return math.Max(0, p.contentHeight-p.height)
}

func (p *Page) clamp(v float64) float64 {
	return math.Max(0, math.Min(p.MaxOffset(), v))
}

// ScrollBy moves the scroll target; the offset follows on Update.
func (p *Page) ScrollBy(dy float64) { p.target = p.clamp(p.target + dy) }
func (p *Page) ScrollTo(y float64)  { p.target = p.clamp(y) }

// Jump moves offset and target together without animating.
func (p *Page) Jump(y float64) {
	p.target = p.clamp(y)
	p.offset = p.target
	p.velocity = 0
}

func (p *Page) Offset() float64 { return p.offset }
func (p *Page) Target() float64 { return p.target }

// Settled reports whether the offset has reached its target.
func (p *Page) Settled() bool {
	return p.offset == p.target && p.velocity == 0
}

// Update steps the scroll spring once and reports whether the offset moved.
func (p *Page) Update() bool {
	if p.Settled() {
		return false
	}
	prev := p.offset
	p.offset, p.velocity = p.spring.Update(p.offset, p.velocity, p.target)
	if math.Abs(p.offset-p.target) < 0.5 && math.Abs(p.velocity) < 0.5 {
		p.offset = p.target
		p.velocity = 0
	}
	return p.offset != prev
}

// CanvasBounds is the hero canvas rect in viewport coordinates.
func (p *Page) CanvasBounds() host.Rect {
	r := p.heroCanvas()
	r.Y -= p.offset
	return r
}

// Intersecting reports whether any part of the canvas is in the viewport.
func (p *Page) Intersecting() bool {
	r := p.CanvasBounds()
	return r.Height > 0 && r.Bottom() > 0 && r.Y < p.height
}

func (p *Page) Bounds() host.Rect {
	return host.Rect{X: 0, Y: -p.offset, Width: p.width, Height: p.contentHeight}
}

func (p *Page) ScrollHeight() float64 { return p.contentHeight }

// ScrollProgress is the host's progress measure for this page.
func (p *Page) ScrollProgress() float64 {
	return host.Progress(-p.offset, p.contentHeight, p.height)
}
