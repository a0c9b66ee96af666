package canvas

import (
	"math"
	"strings"

	"github.com/san-kum/asciiscape/internal/ascii"
)

const (
	DefaultCellWidth  = 8
	DefaultCellHeight = 16
)

// Cell is one character position of the grid. A zero Glyph is empty.
type Cell struct {
	Glyph rune
	Fill  ascii.Fill
}

func (c Cell) Empty() bool { return c.Glyph == 0 }

type drawState struct {
	m        [6]float64
	font     ascii.Font
	align    ascii.TextAlign
	baseline ascii.TextBaseline
	fill     ascii.Fill
}

var identity = [6]float64{1, 0, 0, 1, 0, 0}

// Grid is a character-cell backing buffer implementing ascii.Context. Its
// backing size is in device pixels, divided into cells of CellWidth by
// CellHeight device pixels. When two glyphs land on the same cell within a
// frame the brighter one is kept.
type Grid struct {
	cellW, cellH  int
	width, height int
	cols, rows    int
	cells         []Cell

	cur   drawState
	stack []drawState
}

func NewGrid(cellW, cellH int) *Grid {
	if cellW <= 0 {
		cellW = DefaultCellWidth
	}
	if cellH <= 0 {
		cellH = DefaultCellHeight
	}
	return &Grid{
		cellW: cellW,
		cellH: cellH,
		cur:   drawState{m: identity},
	}
}

// Resize sets the backing size in device pixels and clears every cell.
func (g *Grid) Resize(width, height int) {
	width = max(width, 0)
	height = max(height, 0)
	g.width, g.height = width, height
	g.cols = (width + g.cellW - 1) / g.cellW
	g.rows = (height + g.cellH - 1) / g.cellH

	n := g.cols * g.rows
	if cap(g.cells) >= n {
		g.cells = g.cells[:n]
		clear(g.cells)
	} else {
		g.cells = make([]Cell, n)
	}
}

func (g *Grid) Cols() int                { return g.cols }
func (g *Grid) Rows() int                { return g.rows }
func (g *Grid) CellSize() (int, int)     { return g.cellW, g.cellH }
func (g *Grid) BackingSize() (int, int)  { return g.width, g.height }
func (g *Grid) Clear()                   { clear(g.cells) }
func (g *Grid) Font() ascii.Font         { return g.cur.font }
func (g *Grid) Transform() [6]float64    { return g.cur.m }
func (g *Grid) FillStyle() ascii.Fill    { return g.cur.fill }
func (g *Grid) inside(col, row int) bool { return col >= 0 && col < g.cols && row >= 0 && row < g.rows }
func (g *Grid) index(col, row int) int   { return row*g.cols + col }
func (g *Grid) Depth() int               { return len(g.stack) }

func (g *Grid) Cell(col, row int) Cell {
	if !g.inside(col, row) {
		return Cell{}
	}
	return g.cells[g.index(col, row)]
}

// Row returns the cells of one row. The slice aliases the grid.
func (g *Grid) Row(row int) []Cell {
	if row < 0 || row >= g.rows {
		return nil
	}
	return g.cells[row*g.cols : (row+1)*g.cols]
}

func (g *Grid) Save() {
	g.stack = append(g.stack, g.cur)
}

func (g *Grid) Restore() {
	if len(g.stack) == 0 {
		return
	}
	g.cur = g.stack[len(g.stack)-1]
	g.stack = g.stack[:len(g.stack)-1]
}

func (g *Grid) SetTransform(a, b, c, d, e, f float64) {
	g.cur.m = [6]float64{a, b, c, d, e, f}
}

func (g *Grid) SetFont(f ascii.Font)                 { g.cur.font = f }
func (g *Grid) SetTextAlign(a ascii.TextAlign)       { g.cur.align = a }
func (g *Grid) SetTextBaseline(b ascii.TextBaseline) { g.cur.baseline = b }
func (g *Grid) SetFillStyle(f ascii.Fill)            { g.cur.fill = f }

func (g *Grid) apply(x, y float64) (float64, float64) {
	m := g.cur.m
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

func (g *Grid) ClearRect(x, y, w, h float64) {
	x0, y0 := g.apply(x, y)
	x1, y1 := g.apply(x+w, y+h)
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	if y0 > y1 {
		y0, y1 = y1, y0
	}

	c0, c1 := span(x0, x1, g.cellW, g.cols)
	r0, r1 := span(y0, y1, g.cellH, g.rows)
	for row := r0; row < r1; row++ {
		clear(g.cells[row*g.cols+c0 : row*g.cols+c1])
	}
}

// span maps a device-pixel interval to the cell range it touches, clamped
// to [0, n].
func span(lo, hi float64, size, n int) (int, int) {
	a := math.Max(0, math.Floor(lo/float64(size)))
	b := math.Min(float64(n), math.Ceil(hi/float64(size)))
	if !(a < b) {
		return 0, 0
	}
	return int(a), int(b)
}

// FillText places text at the transformed anchor, one rune per cell.
// Spaces are transparent.
func (g *Grid) FillText(text string, x, y float64) {
	fill := g.cur.fill
	if !(fill.Alpha > 0) {
		return
	}
	px, py := g.apply(x, y)
	if math.IsNaN(px) || math.IsNaN(py) || math.IsInf(px, 0) || math.IsInf(py, 0) {
		return
	}

	runes := []rune(text)
	fx := px / float64(g.cellW)
	fy := py / float64(g.cellH)
	n := float64(len(runes))
	if fy < -1 || fy > float64(g.rows)+1 || fx < -n-1 || fx > float64(g.cols)+n+1 {
		return
	}

	var col0, row int
	if g.cur.align == ascii.AlignCenter {
		col0 = int(math.Floor(fx - n/2 + 0.5))
	} else {
		col0 = int(math.Floor(fx))
	}
	if g.cur.baseline == ascii.BaselineMiddle {
		row = int(math.Floor(fy))
	} else {
		row = int(math.Floor(fy + 0.5))
	}

	for k, r := range runes {
		col := col0 + k
		if r == ' ' || !g.inside(col, row) {
			continue
		}
		c := &g.cells[g.index(col, row)]
		if !c.Empty() && c.Fill.Alpha > fill.Alpha {
			continue
		}
		c.Glyph = r
		c.Fill = fill
	}
}

// Coverage returns the number of painted cells and their mean alpha.
func (g *Grid) Coverage() (glyphs int, meanAlpha float64) {
	sum := 0.0
	for _, c := range g.cells {
		if c.Empty() {
			continue
		}
		glyphs++
		sum += c.Fill.Alpha
	}
	if glyphs > 0 {
		meanAlpha = sum / float64(glyphs)
	}
	return glyphs, meanAlpha
}

// Snapshot copies the current cells into a Frame.
func (g *Grid) Snapshot() Frame {
	cells := make([]Cell, len(g.cells))
	copy(cells, g.cells)
	return Frame{Cols: g.cols, Rows: g.rows, Cells: cells}
}

func (g *Grid) String() string {
	return g.Snapshot().String()
}

// Frame is an immutable copy of a grid's cells.
type Frame struct {
	Cols, Rows int
	Cells      []Cell
}

func (f Frame) At(col, row int) Cell {
	if col < 0 || col >= f.Cols || row < 0 || row >= f.Rows {
		return Cell{}
	}
	return f.Cells[row*f.Cols+col]
}

func (f Frame) String() string {
	var sb strings.Builder
	sb.Grow((f.Cols + 1) * f.Rows)
	for row := 0; row < f.Rows; row++ {
		if row > 0 {
			sb.WriteByte('\n')
		}
		for col := 0; col < f.Cols; col++ {
			c := f.Cells[row*f.Cols+col]
			if c.Empty() {
				sb.WriteByte(' ')
				continue
			}
			sb.WriteRune(c.Glyph)
		}
	}
	return sb.String()
}
