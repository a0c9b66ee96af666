package headless

import (
	"math"

	"github.com/san-kum/asciiscape/internal/ascii"
	"github.com/san-kum/asciiscape/internal/page"
)

type Layer int

const (
	LayerEmpty Layer = iota
	LayerCanvas
	LayerText
)

// ScreenCell is one character cell of the composed viewport.
type ScreenCell struct {
	Glyph rune
	Fill  ascii.Fill
	Layer Layer
	Kind  page.Kind
}

// Screen is the viewport as a character grid of page.CharWidth by
// page.LineHeight cells: canvas glyphs with page text on top.
type Screen struct {
	Cols, Rows int
	Cells      []ScreenCell
	Palette    ascii.Palette
	Mode       ascii.ColorMode
}

func (s Screen) At(col, row int) ScreenCell {
	if col < 0 || col >= s.Cols || row < 0 || row >= s.Rows {
		return ScreenCell{}
	}
	return s.Cells[row*s.Cols+col]
}

// Compose samples the canvas under every viewport cell and lays the
// visible page text over it.
func (s *Session) Compose() Screen {
	width, height := s.Page.Viewport()
	mode := s.surface.Mode()
	scr := Screen{
		Cols:    max(0, int(width/page.CharWidth)),
		Rows:    max(0, int(height/page.LineHeight)),
		Palette: ascii.PaletteFor(mode),
		Mode:    mode,
	}
	scr.Cells = make([]ScreenCell, scr.Cols*scr.Rows)

	s.composeCanvas(&scr)
	s.composeText(&scr)
	return scr
}

func (s *Session) composeCanvas(scr *Screen) {
	bounds := s.Element.Bounds()
	bw, bh := s.Grid.BackingSize()
	cw, ch := s.Grid.CellSize()
	if bounds.Width <= 0 || bounds.Height <= 0 || bw == 0 || bh == 0 {
		return
	}
	sx := float64(bw) / bounds.Width
	sy := float64(bh) / bounds.Height

	for row := 0; row < scr.Rows; row++ {
		cy := (float64(row)+0.5)*page.LineHeight - bounds.Y
		if cy < 0 || cy >= bounds.Height {
			continue
		}
		gy := int(cy * sy / float64(ch))
		for col := 0; col < scr.Cols; col++ {
			cx := (float64(col)+0.5)*page.CharWidth - bounds.X
			if cx < 0 || cx >= bounds.Width {
				continue
			}
			c := s.Grid.Cell(int(cx*sx/float64(cw)), gy)
			if c.Empty() {
				continue
			}
			scr.Cells[row*scr.Cols+col] = ScreenCell{Glyph: c.Glyph, Fill: c.Fill, Layer: LayerCanvas}
		}
	}
}

func (s *Session) composeText(scr *Screen) {
	offset := s.Page.Offset()
	for _, b := range s.Page.Blocks() {
		row := int(math.Floor((b.Y - offset) / page.LineHeight))
		if row < 0 || row >= scr.Rows {
			continue
		}
		runes := []rune(b.Text)
		x := b.X
		if b.Center {
			x -= float64(len(runes)) * page.CharWidth / 2
		}
		col0 := int(math.Floor(x / page.CharWidth))
		for k, r := range runes {
			col := col0 + k
			if r == ' ' || col < 0 || col >= scr.Cols {
				continue
			}
			scr.Cells[row*scr.Cols+col] = ScreenCell{
				Glyph: r,
				Fill:  ascii.Fill{RGB: scr.Palette.Base, Alpha: 1},
				Layer: LayerText,
				Kind:  b.Kind,
			}
		}
	}
}
