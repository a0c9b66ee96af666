package canvas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/asciiscape/internal/ascii"
	"github.com/san-kum/asciiscape/internal/host"
	"github.com/san-kum/asciiscape/internal/renderers"
)

type env struct{ reduced bool }

func (e env) DevicePixelRatio() float64  { return 1 }
func (e env) ViewportHeight() float64    { return 600 }
func (e env) PrefersReducedMotion() bool { return e.reduced }

// frames is a scheduler that queues callbacks until flushed.
type frames struct {
	next host.FrameID
	cbs  map[host.FrameID]func(float64)
}

func (f *frames) RequestFrame(cb func(float64)) host.FrameID {
	if f.cbs == nil {
		f.cbs = make(map[host.FrameID]func(float64))
	}
	f.next++
	f.cbs[f.next] = cb
	return f.next
}

func (f *frames) CancelFrame(id host.FrameID) { delete(f.cbs, id) }

func TestNewSurfaceStatic(t *testing.T) {
	for _, theme := range ascii.Themes {
		grid := NewGrid(8, 16)
		el := NewElement(grid)
		el.SetBounds(host.Rect{Width: 400, Height: 240})

		s, err := NewSurface(theme, ascii.Dark, el, env{reduced: true}, &frames{})
		require.NoError(t, err, theme)

		assert.Equal(t, theme, s.Theme())
		assert.Equal(t, ascii.Dark, s.Mode())
		assert.False(t, s.Inert())
		assert.Equal(t, 1, s.Host().Frames(), theme)
		s.Close()
		assert.Equal(t, host.PhaseUnmounted, s.Host().Phase())
	}
}

func TestNewSurfaceUnknownTheme(t *testing.T) {
	el := NewElement(NewGrid(8, 16))
	_, err := NewSurface("aurora", ascii.Light, el, env{}, &frames{})
	assert.ErrorIs(t, err, renderers.ErrUnknownTheme)
}

func TestNewSurfaceInert(t *testing.T) {
	sched := &frames{}
	s, err := NewSurface(ascii.ThemeCipher, ascii.Light, NewElement(nil), env{}, sched)
	require.NoError(t, err)
	assert.True(t, s.Inert())
	assert.Empty(t, sched.cbs)
}

func TestSurfaceObserverSeesStaticFrame(t *testing.T) {
	el := NewElement(NewGrid(8, 16))
	el.SetBounds(host.Rect{Width: 320, Height: 160})

	var seen []host.FrameInfo
	obs := host.ObserverFunc(func(info host.FrameInfo, _ ascii.State) { seen = append(seen, info) })
	_, err := NewSurface(ascii.ThemeParliament, ascii.Light, el, env{reduced: true}, &frames{}, WithObserver(obs))
	require.NoError(t, err)

	require.Len(t, seen, 1)
	assert.Equal(t, 1, seen[0].Index)
	assert.Zero(t, seen[0].Dt)

	glyphs, _ := el.Grid().Coverage()
	assert.Positive(t, glyphs)
}
