package ascii

import (
	"fmt"
	"strconv"
)

type RGB struct {
	R, G, B uint8
}

// Fill is a colour with straight alpha, the equivalent of a canvas fillStyle.
type Fill struct {
	RGB
	Alpha float64
}

func (f Fill) String() string {
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", f.R, f.G, f.B, strconv.FormatFloat(f.Alpha, 'g', -1, 64))
}

// Palette holds the colours a renderer paints with for one colour mode.
type Palette struct {
	Base       RGB
	Accent     RGB
	Background RGB
}

var (
	black    = RGB{0, 0, 0}
	offWhite = RGB{250, 250, 250}
)

// PaletteFor returns the shared base/accent palette for a colour mode.
func PaletteFor(mode ColorMode) Palette {
	if mode == Dark {
		return Palette{Base: offWhite, Accent: RGB{108, 231, 20}, Background: RGB{10, 10, 10}}
	}
	return Palette{Base: black, Accent: RGB{68, 148, 10}, Background: RGB{255, 255, 255}}
}
