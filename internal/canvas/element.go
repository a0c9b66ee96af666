package canvas

import (
	"github.com/pkg/errors"

	"github.com/san-kum/asciiscape/internal/ascii"
	"github.com/san-kum/asciiscape/internal/host"
)

// Element is a host.Element backed by a Grid. Drivers position it with
// SetBounds and read the painted cells back from Grid.
type Element struct {
	grid   *Grid
	bounds host.Rect
}

func NewElement(grid *Grid) *Element {
	return &Element{grid: grid}
}

func (e *Element) SetBounds(r host.Rect) { e.bounds = r }
func (e *Element) Bounds() host.Rect     { return e.bounds }
func (e *Element) Grid() *Grid           { return e.grid }

func (e *Element) SetBackingSize(w, h int) {
	if e.grid != nil {
		e.grid.Resize(w, h)
	}
}

func (e *Element) Context() (ascii.Context, error) {
	if e.grid == nil {
		return nil, errors.New("element has no grid")
	}
	return e.grid, nil
}
