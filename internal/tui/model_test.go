package tui

import (
	"math/rand/v2"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/asciiscape/internal/ascii"
	"github.com/san-kum/asciiscape/internal/headless"
	"github.com/san-kum/asciiscape/internal/host"
	"github.com/san-kum/asciiscape/internal/page"
	"github.com/san-kum/asciiscape/internal/renderers"
)

func newModel(t *testing.T) *Model {
	t.Helper()
	m, err := New(headless.Options{
		Theme:    ascii.ThemeCodeFlow,
		Mode:     ascii.Dark,
		FPS:      60,
		Page:     page.DefaultConfig(),
		Renderer: []renderers.Option{renderers.WithRand(rand.New(rand.NewPCG(3, 4)))},
	}, 80, 24)
	require.NoError(t, err)
	t.Cleanup(m.Close)
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewSizesViewport(t *testing.T) {
	m := newModel(t)
	w, h := m.Session().Page.Viewport()
	assert.Equal(t, 640.0, w)
	assert.Equal(t, 22*page.LineHeight, h)
	assert.Equal(t, host.PhaseRunning, m.Session().Host().Phase())
}

func TestTickSteps(t *testing.T) {
	m := newModel(t)
	require.NotNil(t, m.Init())
	before := m.Session().Host().Frames()
	for i := 0; i < 5; i++ {
		_, cmd := m.Update(tickMsg{id: m.tickID, at: m.epoch.Add(time.Duration(i+1) * m.interval)})
		assert.NotNil(t, cmd)
	}
	assert.Greater(t, m.Session().Host().Frames(), before)

	_, cmd := m.Update(tickMsg{id: m.tickID - 1})
	assert.Nil(t, cmd, "stale ticks must not schedule another")
}

func TestTickTimestampsDriveDt(t *testing.T) {
	m := newModel(t)
	m.Init()

	var dts []float64
	m.Session().Host().AddObserver(host.ObserverFunc(func(info host.FrameInfo, _ ascii.State) {
		dts = append(dts, info.Dt)
	}))

	start := m.epoch.Add(time.Second)
	for i := 0; i < 4; i++ {
		m.Update(tickMsg{id: m.tickID, at: start.Add(time.Duration(i) * 500 * time.Millisecond)})
	}
	require.Len(t, dts, 4)
	assert.InDelta(t, 0, dts[0], 1e-9)
	for _, dt := range dts[1:] {
		assert.InDelta(t, host.MaxDt, dt, 1e-9)
	}

	m.Update(tickMsg{id: m.tickID, at: start.Add(1520 * time.Millisecond)})
	require.Len(t, dts, 5)
	assert.InDelta(t, 0.02, dts[4], 1e-9)
}

func TestThemeKeys(t *testing.T) {
	m := newModel(t)

	m.Update(runes("3"))
	assert.Equal(t, ascii.ThemeCircuit, m.Session().Theme())

	m.Update(runes("5"))
	assert.Equal(t, ascii.ThemeTopography, m.Session().Theme())

	m.Update(runes("1"))
	assert.Equal(t, ascii.ThemeCodeFlow, m.Session().Theme())
}

func TestModeToggle(t *testing.T) {
	m := newModel(t)

	m.Update(runes("m"))
	assert.Equal(t, ascii.Light, m.Session().Surface().Mode())
	assert.Equal(t, ascii.PaletteFor(ascii.Light).Background, m.styles.bg)

	m.Update(runes("m"))
	assert.Equal(t, ascii.Dark, m.Session().Surface().Mode())
}

func TestPauseAndFocus(t *testing.T) {
	m := newModel(t)
	h := func() host.Phase { return m.Session().Host().Phase() }

	m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	assert.Equal(t, host.PhasePaused, h())

	m.Update(tea.FocusMsg{})
	assert.Equal(t, host.PhasePaused, h(), "focus must not resume a paused page")

	m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	assert.Equal(t, host.PhaseRunning, h())

	m.Update(tea.BlurMsg{})
	assert.Equal(t, host.PhasePaused, h())
	m.Update(tea.FocusMsg{})
	assert.Equal(t, host.PhaseRunning, h())
}

func TestPauseSurvivesThemeSwitch(t *testing.T) {
	m := newModel(t)
	m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	m.Update(runes("2"))

	assert.Equal(t, ascii.ThemeParliament, m.Session().Theme())
	assert.Equal(t, host.PhasePaused, m.Session().Host().Phase())
}

func TestMouse(t *testing.T) {
	m := newModel(t)

	m.Update(tea.MouseMsg{X: 10, Y: 5, Action: tea.MouseActionMotion, Button: tea.MouseButtonNone})
	mouse := m.Session().Host().Mouse()
	assert.True(t, mouse.Active)
	assert.Equal(t, 84.0, mouse.X)
	assert.Equal(t, 88.0, mouse.Y)

	m.Update(tea.MouseMsg{X: 10, Y: 23, Action: tea.MouseActionMotion, Button: tea.MouseButtonNone})
	assert.False(t, m.Session().Host().Mouse().Active)

	m.Update(tea.MouseMsg{X: 10, Y: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown})
	assert.Equal(t, ScrollStep, m.Session().Page.Target())
}

func TestScrollKeys(t *testing.T) {
	m := newModel(t)

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, ScrollStep, m.Session().Page.Target())

	m.Update(runes("g"))
	assert.Zero(t, m.Session().Page.Target())
}

func TestWindowSizeAndHelp(t *testing.T) {
	m := newModel(t)

	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	w, h := m.Session().Page.Viewport()
	assert.Equal(t, 800.0, w)
	assert.Equal(t, 28*page.LineHeight, h)

	m.Update(runes("?"))
	_, h = m.Session().Page.Viewport()
	assert.Equal(t, 24*page.LineHeight, h)
}

func TestView(t *testing.T) {
	m := newModel(t)
	for i := 0; i < 10; i++ {
		m.Update(tickMsg{id: m.tickID, at: m.epoch.Add(time.Duration(i+1) * m.interval)})
	}

	view := m.View()
	assert.Contains(t, view, "Institute")
	assert.Contains(t, view, "Alterna")
	assert.Contains(t, view, "1 code-flow")
	assert.Contains(t, view, "dark")
}

func TestQuit(t *testing.T) {
	m := newModel(t)
	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}
