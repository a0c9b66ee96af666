// Package term runs the landing page on a raw tcell screen: one goroutine
// polls input, the main loop owns the session.
package term

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/san-kum/asciiscape/internal/ascii"
	"github.com/san-kum/asciiscape/internal/canvas"
	"github.com/san-kum/asciiscape/internal/headless"
	"github.com/san-kum/asciiscape/internal/page"
)

const scrollStep = 3 * page.LineHeight

type styleKey struct {
	fg   ascii.RGB
	bold bool
}

type Driver struct {
	screen tcell.Screen
	sess   *headless.Session
	log    *slog.Logger
	epoch  time.Time

	styles  map[styleKey]tcell.Style
	bg      ascii.RGB
	paused  bool
	blurred bool
}

func rgb(c ascii.RGB) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// New mounts a session filling screen, minus one status row.
func New(screen tcell.Screen, opts headless.Options) (*Driver, error) {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	d := &Driver{screen: screen, log: opts.Logger, epoch: time.Now()}
	opts.Width, opts.Height = d.viewport()

	sess, err := headless.NewSession(opts)
	if err != nil {
		return nil, err
	}
	d.sess = sess
	d.restyle()
	return d, nil
}

func (d *Driver) Session() *headless.Session { return d.sess }

func (d *Driver) viewport() (float64, float64) {
	w, h := d.screen.Size()
	return float64(w) * page.CharWidth, float64(max(1, h-1)) * page.LineHeight
}

func (d *Driver) restyle() {
	d.bg = ascii.PaletteFor(d.sess.Surface().Mode()).Background
	d.styles = make(map[styleKey]tcell.Style)
}

func (d *Driver) style(k styleKey) tcell.Style {
	if s, ok := d.styles[k]; ok {
		return s
	}
	s := tcell.StyleDefault.Background(rgb(d.bg)).Foreground(rgb(k.fg)).Bold(k.bold)
	d.styles[k] = s
	return s
}

func (d *Driver) syncHidden() {
	d.sess.SetHidden(d.paused || d.blurred)
}

// HandleEvent applies one input event. It returns false on quit.
func (d *Driver) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return d.handleKey(ev)
	case *tcell.EventMouse:
		d.handleMouse(ev)
	case *tcell.EventResize:
		w, h := d.viewport()
		d.sess.Resize(w, h)
		d.screen.Sync()
	case *tcell.EventFocus:
		d.blurred = !ev.Focused
		d.syncHidden()
	}
	return true
}

func (d *Driver) handleKey(ev *tcell.EventKey) bool {
	_, h := d.viewport()
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyUp:
		d.sess.ScrollBy(-scrollStep)
	case tcell.KeyDown:
		d.sess.ScrollBy(scrollStep)
	case tcell.KeyPgUp:
		d.sess.ScrollBy(-h)
	case tcell.KeyPgDn:
		d.sess.ScrollBy(h)
	case tcell.KeyHome:
		d.sess.Page.ScrollTo(0)
	case tcell.KeyRune:
		switch r := ev.Rune(); {
		case r == 'q':
			return false
		case r >= '1' && r <= '5':
			d.selectTheme(int(r - '1'))
		case r == 'm':
			d.toggleMode()
		case r == ' ':
			d.paused = !d.paused
			d.syncHidden()
		case r == 'j':
			d.sess.ScrollBy(scrollStep)
		case r == 'k':
			d.sess.ScrollBy(-scrollStep)
		}
	}
	return true
}

func (d *Driver) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	buttons := ev.Buttons()
	switch {
	case buttons&tcell.WheelUp != 0:
		d.sess.ScrollBy(-scrollStep)
		return
	case buttons&tcell.WheelDown != 0:
		d.sess.ScrollBy(scrollStep)
		return
	}

	_, h := d.screen.Size()
	if y >= h-1 {
		d.sess.PointerLeave()
		return
	}
	d.sess.PointerMove((float64(x)+0.5)*page.CharWidth, (float64(y)+0.5)*page.LineHeight)
}

func (d *Driver) selectTheme(i int) {
	if i < 0 || i >= len(ascii.Themes) || ascii.Themes[i] == d.sess.Theme() {
		return
	}
	if err := d.sess.SetTheme(ascii.Themes[i]); err != nil {
		d.log.Error("switch theme", "theme", ascii.Themes[i], "err", err)
		return
	}
	d.syncHidden()
}

func (d *Driver) toggleMode() {
	next := ascii.Dark
	if d.sess.Mode() == ascii.Dark {
		next = ascii.Light
	}
	if err := d.sess.SetMode(next); err != nil {
		d.log.Error("switch mode", "mode", next, "err", err)
		return
	}
	d.syncHidden()
	d.restyle()
}

// Draw composes the viewport and shows it with a status row.
func (d *Driver) Draw() {
	scr := d.sess.Compose()
	for row := 0; row < scr.Rows; row++ {
		for col := 0; col < scr.Cols; col++ {
			sc := scr.At(col, row)
			if sc.Layer == headless.LayerEmpty {
				d.screen.SetContent(col, row, ' ', nil, d.style(styleKey{fg: d.bg}))
				continue
			}
			k := styleKey{
				fg:   canvas.Blend(sc.Fill, d.bg),
				bold: sc.Layer == headless.LayerText && (sc.Kind == page.KindHeadline || sc.Kind == page.KindTitle),
			}
			d.screen.SetContent(col, row, sc.Glyph, nil, d.style(k))
		}
	}
	d.drawStatus(scr.Rows)
	d.screen.Show()
}

func (d *Driver) drawStatus(row int) {
	w, _ := d.screen.Size()
	dim := tcell.StyleDefault.Foreground(tcell.PaletteColor(242))
	active := tcell.StyleDefault.Foreground(tcell.PaletteColor(82)).Bold(true)

	col := 0
	put := func(s string, style tcell.Style) {
		for _, r := range s {
			if col < w {
				d.screen.SetContent(col, row, r, nil, style)
			}
			col++
		}
	}
	for i, theme := range ascii.Themes {
		style := dim
		if theme == d.sess.Theme() {
			style = active
		}
		put(fmt.Sprintf("%d %s", i+1, theme), style)
		put("  ", dim)
	}
	status := string(d.sess.Surface().Mode())
	if d.paused {
		status += " paused"
	}
	put(status, tcell.StyleDefault)
	for ; col < w; col++ {
		d.screen.SetContent(col, row, ' ', nil, tcell.StyleDefault)
	}
}

// Loop steps the session every frame interval and applies events until
// quit or ctx ends.
func (d *Driver) Loop(ctx context.Context, events <-chan tcell.Event) error {
	ticker := time.NewTicker(d.sess.Clock.Interval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok || !d.HandleEvent(ev) {
				return nil
			}
		case now := <-ticker.C:
			d.Tick(now)
		}
	}
}

// Tick advances the session to the wall-clock time now and redraws.
func (d *Driver) Tick(now time.Time) {
	d.sess.StepAt(float64(now.Sub(d.epoch)) / float64(time.Millisecond))
	d.Draw()
}

func (d *Driver) Close() { d.sess.Close() }

// Run takes over the terminal until the user quits.
func Run(ctx context.Context, opts headless.Options) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.EnableFocus()
	screen.HideCursor()

	d, err := New(screen, opts)
	if err != nil {
		return err
	}
	defer d.Close()

	events := make(chan tcell.Event, 100)
	go func() {
		defer close(events)
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	return d.Loop(ctx, events)
}
