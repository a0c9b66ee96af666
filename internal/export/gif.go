package export

import (
	"image"
	"image/color"
	"image/color/palette"
	"image/gif"
	"io"

	"github.com/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/san-kum/asciiscape/internal/ascii"
	"github.com/san-kum/asciiscape/internal/canvas"
)

// GlyphWidth and GlyphHeight are the pixel size of one rasterised cell.
const (
	GlyphWidth  = 8
	GlyphHeight = 16
)

func rgba(c ascii.RGB) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// framePalette collects the blended colours of a frame, background first.
// Frames with more than 256 colours fall back to the Plan 9 palette.
func framePalette(frame canvas.Frame, bg ascii.RGB) color.Palette {
	seen := map[ascii.RGB]bool{bg: true}
	pal := color.Palette{rgba(bg)}
	for _, c := range frame.Cells {
		if c.Empty() {
			continue
		}
		blended := canvas.Blend(c.Fill, bg)
		if seen[blended] {
			continue
		}
		if len(pal) == 256 {
			return append(color.Palette{rgba(bg)}, palette.Plan9[:255]...)
		}
		seen[blended] = true
		pal = append(pal, rgba(blended))
	}
	return pal
}

// Rasterize draws a frame with the 7x13 bitmap face, one glyph per
// GlyphWidth x GlyphHeight cell, composited over bg.
func Rasterize(frame canvas.Frame, bg ascii.RGB) *image.Paletted {
	img := image.NewPaletted(image.Rect(0, 0, frame.Cols*GlyphWidth, frame.Rows*GlyphHeight), framePalette(frame, bg))

	d := font.Drawer{Dst: img, Face: basicfont.Face7x13}
	for row := 0; row < frame.Rows; row++ {
		for col := 0; col < frame.Cols; col++ {
			c := frame.At(col, row)
			if c.Empty() {
				continue
			}
			d.Src = image.NewUniform(rgba(canvas.Blend(c.Fill, bg)))
			d.Dot = fixed.P(col*GlyphWidth, row*GlyphHeight+12)
			d.DrawString(string(c.Glyph))
		}
	}
	return img
}

// WriteGIF encodes frames as a looping animation. delay is in hundredths
// of a second per frame.
func WriteGIF(w io.Writer, frames []canvas.Frame, bg ascii.RGB, delay int) error {
	if len(frames) == 0 {
		return errors.New("no frames to encode")
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range frames {
		anim.Image = append(anim.Image, Rasterize(frame, bg))
		anim.Delay = append(anim.Delay, delay)
	}
	return gif.EncodeAll(w, &anim)
}
