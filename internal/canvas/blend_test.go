package canvas

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/san-kum/asciiscape/internal/ascii"
)

func TestBlend(t *testing.T) {
	black := ascii.RGB{}
	fg := ascii.RGB{R: 250, G: 250, B: 250}

	assert.Equal(t, black, Blend(ascii.Fill{RGB: fg, Alpha: 0}, black))
	assert.Equal(t, fg, Blend(ascii.Fill{RGB: fg, Alpha: 1}, black))
	assert.Equal(t, fg, Blend(ascii.Fill{RGB: fg, Alpha: 3}, black))

	mid := Blend(ascii.Fill{RGB: fg, Alpha: 0.5}, black)
	assert.InDelta(t, 125, int(mid.R), 1)
	assert.Equal(t, mid.R, mid.G)
}

func TestHex(t *testing.T) {
	assert.Equal(t, "#6ce714", Hex(ascii.RGB{R: 108, G: 231, B: 20}))
}
