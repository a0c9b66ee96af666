package export

import (
	"fmt"
	"html"
	"strings"

	"github.com/san-kum/asciiscape/internal/ascii"
	"github.com/san-kum/asciiscape/internal/canvas"
)

// FrameToSVG renders a frame as SVG text, one element per painted cell.
func FrameToSVG(frame canvas.Frame, cellW, cellH int, bg ascii.RGB) string {
	width := frame.Cols * cellW
	height := frame.Rows * cellH

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
<g font-family="%s" font-size="%d" text-anchor="middle" dominant-baseline="central">
`, width, height, width, height, canvas.Hex(bg), html.EscapeString(ascii.MonoFamily), cellH-2))

	for row := 0; row < frame.Rows; row++ {
		for col := 0; col < frame.Cols; col++ {
			c := frame.At(col, row)
			if c.Empty() {
				continue
			}
			cx := float64(col*cellW) + float64(cellW)/2
			cy := float64(row*cellH) + float64(cellH)/2
			sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" fill="%s" fill-opacity="%.2f">%s</text>
`, cx, cy, canvas.Hex(c.Fill.RGB), c.Fill.Alpha, html.EscapeString(string(c.Glyph))))
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// SeriesToSVG draws values as a polyline scaled to fill the image.
func SeriesToSVG(values []float64, width, height int, strokeColor string) string {
	if len(values) < 2 {
		return ""
	}

	minY, maxY := values[0], values[0]
	for _, v := range values {
		minY = min(minY, v)
		maxY = max(maxY, v)
	}
	rangeY := maxY - minY
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeY = maxY - minY
	stepX := float64(width) / float64(len(values)-1)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	for i, v := range values {
		x := float64(i) * stepX
		y := float64(height) - (v-minY)/rangeY*float64(height)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
