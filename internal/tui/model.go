// Package tui runs the landing page in a terminal with bubbletea.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/san-kum/asciiscape/internal/ascii"
	"github.com/san-kum/asciiscape/internal/headless"
	"github.com/san-kum/asciiscape/internal/page"
)

// ScrollStep is how far one arrow key or wheel notch scrolls, in pixels.
const ScrollStep = 3 * page.LineHeight

// tickMsg carries the id of the tick loop that scheduled it.
type tickMsg struct {
	id int
	at time.Time
}

type Model struct {
	sess *headless.Session
	opts headless.Options
	log  *slog.Logger

	keys     keyMap
	help     help.Model
	styles   *styleCache
	interval time.Duration
	tickID   int
	epoch    time.Time

	width, height int
	paused        bool
	blurred       bool
	err           error
}

// New mounts a session sized for a width x height terminal.
func New(opts headless.Options, width, height int) (*Model, error) {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if zone.DefaultManager == nil {
		zone.NewGlobal()
	}
	m := &Model{
		opts:   opts,
		log:    opts.Logger,
		keys:   defaultKeys(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	opts.Width, opts.Height = m.viewport()

	sess, err := headless.NewSession(opts)
	if err != nil {
		return nil, err
	}
	m.sess = sess
	m.interval = sess.Clock.Interval()
	m.epoch = time.Now()
	m.restyle()
	return m, nil
}

func (m *Model) Session() *headless.Session { return m.sess }

func (m *Model) chrome() int {
	if !m.help.ShowAll {
		return 2
	}
	rows := 0
	for _, col := range m.keys.FullHelp() {
		rows = max(rows, len(col))
	}
	return 1 + rows
}

// viewport is the page size in pixels for the rows left after the bars.
func (m *Model) viewport() (float64, float64) {
	rows := max(1, m.height-m.chrome())
	return float64(m.width) * page.CharWidth, float64(rows) * page.LineHeight
}

func (m *Model) resize() {
	m.help.Width = m.width
	w, h := m.viewport()
	m.sess.Resize(w, h)
}

func (m *Model) restyle() {
	m.styles = newStyleCache(ascii.PaletteFor(m.sess.Surface().Mode()).Background)
}

func (m *Model) tick() tea.Cmd {
	id := m.tickID
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return tickMsg{id: id, at: t} })
}

// sinceMillis is the frame timestamp the host sees for a tick at t.
func sinceMillis(epoch, t time.Time) float64 {
	return float64(t.Sub(epoch)) / float64(time.Millisecond)
}

// Init starts a new tick loop; ticks from an older loop are dropped.
func (m *Model) Init() tea.Cmd {
	m.tickID++
	return m.tick()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
	case tea.FocusMsg:
		m.blurred = false
		m.syncHidden()
	case tea.BlurMsg:
		m.blurred = true
		m.syncHidden()
	case tickMsg:
		if msg.id != m.tickID {
			return m, nil
		}
		m.sess.StepAt(sinceMillis(m.epoch, msg.at))
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) syncHidden() {
	m.sess.SetHidden(m.paused || m.blurred)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Theme):
		m.selectTheme(int(msg.String()[0] - '1'))
	case key.Matches(msg, m.keys.Mode):
		m.toggleMode()
	case key.Matches(msg, m.keys.Pause):
		m.paused = !m.paused
		m.syncHidden()
	case key.Matches(msg, m.keys.Up):
		m.sess.ScrollBy(-ScrollStep)
	case key.Matches(msg, m.keys.Down):
		m.sess.ScrollBy(ScrollStep)
	case key.Matches(msg, m.keys.PageUp):
		_, h := m.viewport()
		m.sess.ScrollBy(-h)
	case key.Matches(msg, m.keys.PageDown):
		_, h := m.viewport()
		m.sess.ScrollBy(h)
	case key.Matches(msg, m.keys.Top):
		m.sess.Page.ScrollTo(0)
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resize()
	}
	return nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
		for i, theme := range ascii.Themes {
			if zone.Get(themeZone(theme)).InBounds(msg) {
				m.selectTheme(i)
				return
			}
		}
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.sess.ScrollBy(-ScrollStep)
		return
	case tea.MouseButtonWheelDown:
		m.sess.ScrollBy(ScrollStep)
		return
	}

	rows := m.height - m.chrome()
	if msg.Y >= rows {
		m.sess.PointerLeave()
		return
	}
	m.sess.PointerMove((float64(msg.X)+0.5)*page.CharWidth, (float64(msg.Y)+0.5)*page.LineHeight)
}

func (m *Model) selectTheme(i int) {
	if i < 0 || i >= len(ascii.Themes) || ascii.Themes[i] == m.sess.Theme() {
		return
	}
	if err := m.sess.SetTheme(ascii.Themes[i]); err != nil {
		m.err = err
		m.log.Error("switch theme", "theme", ascii.Themes[i], "err", err)
		return
	}
	m.err = nil
	m.syncHidden()
	m.log.Info("theme", "theme", ascii.Themes[i])
}

func (m *Model) toggleMode() {
	next := ascii.Dark
	if m.sess.Mode() == ascii.Dark {
		next = ascii.Light
	}
	if err := m.sess.SetMode(next); err != nil {
		m.err = err
		m.log.Error("switch mode", "mode", next, "err", err)
		return
	}
	m.syncHidden()
	m.restyle()
}

func themeZone(theme ascii.Theme) string { return "theme-" + string(theme) }

func (m *Model) View() string {
	var sb strings.Builder
	m.renderScreen(&sb, m.sess.Compose())
	sb.WriteString(m.statusBar())
	sb.WriteByte('\n')
	sb.WriteString(m.help.View(m.keys))
	return zone.Scan(sb.String())
}

func (m *Model) renderScreen(sb *strings.Builder, scr headless.Screen) {
	var run strings.Builder
	for row := 0; row < scr.Rows; row++ {
		var cur styleKey
		var style lipgloss.Style
		for col := 0; col < scr.Cols; col++ {
			sc := scr.At(col, row)
			k, s := m.styles.cell(sc)
			if col > 0 && k != cur {
				sb.WriteString(style.Render(run.String()))
				run.Reset()
			}
			cur, style = k, s
			if sc.Layer == headless.LayerEmpty {
				run.WriteByte(' ')
			} else {
				run.WriteRune(sc.Glyph)
			}
		}
		if run.Len() > 0 {
			sb.WriteString(style.Render(run.String()))
			run.Reset()
		}
		sb.WriteByte('\n')
	}
}

func (m *Model) statusBar() string {
	parts := make([]string, 0, len(ascii.Themes)+2)
	for i, theme := range ascii.Themes {
		label := fmt.Sprintf("%d %s", i+1, theme)
		style := dim
		if theme == m.sess.Theme() {
			style = active
		}
		parts = append(parts, zone.Mark(themeZone(theme), style.Render(label)))
	}

	status := string(m.sess.Surface().Mode())
	if m.paused {
		status += " · paused"
	}
	parts = append(parts, white.Render(status))
	if m.err != nil {
		parts = append(parts, dim.Render(m.err.Error()))
	}
	return strings.Join(parts, "  ")
}

func (m *Model) Close() { m.sess.Close() }

// Run starts the program on the alternate screen and blocks until quit.
func Run(ctx context.Context, opts headless.Options) error {
	m, err := New(opts, 80, 24)
	if err != nil {
		return err
	}
	defer m.Close()

	p := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithReportFocus(),
	)
	_, err = p.Run()
	return err
}
