package export

import (
	"bytes"
	"image/gif"
	"strings"
	"testing"

	"github.com/san-kum/asciiscape/internal/ascii"
	"github.com/san-kum/asciiscape/internal/canvas"
)

func sample() canvas.Frame {
	g := canvas.NewGrid(8, 16)
	g.Resize(32, 32)
	g.SetTextAlign(ascii.AlignStart)
	g.SetTextBaseline(ascii.BaselineMiddle)
	g.SetFillStyle(ascii.Fill{RGB: ascii.RGB{R: 250, G: 250, B: 250}, Alpha: 0.5})
	g.FillText("<&", 0, 0)
	g.SetFillStyle(ascii.Fill{RGB: ascii.RGB{R: 108, G: 231, B: 20}, Alpha: 1})
	g.FillText("*", 24, 16)
	return g.Snapshot()
}

func TestFrameToSVG(t *testing.T) {
	svg := FrameToSVG(sample(), 8, 16, ascii.RGB{R: 10, G: 10, B: 10})

	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Fatal("expected a complete svg document")
	}
	if strings.Count(svg, "<text") != 3 {
		t.Errorf("expected 3 text elements, got %d", strings.Count(svg, "<text"))
	}
	if !strings.Contains(svg, "&lt;") || !strings.Contains(svg, "&amp;") {
		t.Error("expected glyphs to be escaped")
	}
	if !strings.Contains(svg, `fill="#6ce714" fill-opacity="1.00"`) {
		t.Error("expected accent glyph fill")
	}
	if !strings.Contains(svg, `fill="#0a0a0a"`) {
		t.Error("expected background fill")
	}
}

func TestSeriesToSVG(t *testing.T) {
	if SeriesToSVG([]float64{1}, 100, 50, "#fff") != "" {
		t.Error("expected empty output for a single point")
	}
	svg := SeriesToSVG([]float64{1, 3, 2, 2}, 300, 100, "#6ce714")
	if strings.Count(svg, " L") != 3 {
		t.Errorf("expected 3 line segments, got %d", strings.Count(svg, " L"))
	}
}

func TestRasterize(t *testing.T) {
	bg := ascii.RGB{R: 10, G: 10, B: 10}
	img := Rasterize(sample(), bg)

	if img.Bounds().Dx() != 4*GlyphWidth || img.Bounds().Dy() != 2*GlyphHeight {
		t.Fatalf("unexpected bounds %v", img.Bounds())
	}
	if len(img.Palette) != 3 {
		t.Errorf("expected background plus two colours, got %d", len(img.Palette))
	}

	lit := 0
	for _, idx := range img.Pix {
		if idx != 0 {
			lit++
		}
	}
	if lit == 0 {
		t.Error("expected glyph pixels")
	}
}

func TestWriteGIF(t *testing.T) {
	var buf bytes.Buffer
	bg := ascii.RGB{}
	if err := WriteGIF(&buf, nil, bg, 2); err == nil {
		t.Error("expected error without frames")
	}

	frames := []canvas.Frame{sample(), sample()}
	if err := WriteGIF(&buf, frames, bg, 2); err != nil {
		t.Fatalf("write: %v", err)
	}
	anim, err := gif.DecodeAll(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(anim.Image) != 2 || anim.Delay[0] != 2 {
		t.Errorf("expected 2 frames at delay 2, got %d", len(anim.Image))
	}
}
