// Package window runs the landing page in a raylib window, drawing the
// composed cell grid with a monospace font.
package window

import (
	"fmt"
	"log/slog"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/asciiscape/internal/ascii"
	"github.com/san-kum/asciiscape/internal/canvas"
	"github.com/san-kum/asciiscape/internal/headless"
	"github.com/san-kum/asciiscape/internal/page"
)

const (
	defaultCols = 128
	defaultRows = 40
	barHeight   = 24
	scrollStep  = 3 * page.LineHeight
	fontPath    = "/usr/share/fonts/liberation/LiberationMono-Regular.ttf"
)

var (
	colBar     = rl.NewColor(10, 10, 10, 255)
	colText    = rl.NewColor(140, 140, 140, 255)
	colTextDim = rl.NewColor(60, 60, 60, 255)
	colSelect  = rl.NewColor(255, 255, 255, 255)
)

type App struct {
	sess   *headless.Session
	log    *slog.Logger
	font   rl.Font
	target rl.RenderTexture2D
	glyphs map[rune]string

	paused    bool
	minimized bool
}

func color(c ascii.RGB) rl.Color { return rl.NewColor(c.R, c.G, c.B, 255) }

func initWindow(width, height int32) {
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(width, height, "asciiscape")
	rl.SetExitKey(0)
}

// loadFont prefers Liberation Mono and falls back to raylib's built-in font.
func loadFont() rl.Font {
	if _, err := os.Stat(fontPath); err != nil {
		return rl.GetFontDefault()
	}
	font := rl.LoadFontEx(fontPath, 32, nil, 0)
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

func newApp(opts headless.Options) (*App, error) {
	opts.Width, opts.Height = viewport()
	sess, err := headless.NewSession(opts)
	if err != nil {
		return nil, err
	}
	a := &App{
		sess:   sess,
		log:    opts.Logger,
		font:   loadFont(),
		glyphs: make(map[rune]string),
	}
	a.target = rl.LoadRenderTexture(int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight()))
	return a, nil
}

func viewport() (float64, float64) {
	return float64(rl.GetScreenWidth()), float64(max(1, rl.GetScreenHeight()-barHeight))
}

// Run opens the window and blocks until it is closed.
func Run(opts headless.Options) error {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	initWindow(defaultCols*page.CharWidth, defaultRows*page.LineHeight+barHeight)
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(max(1, opts.FPS)))
	if scale := rl.GetWindowScaleDPI(); scale.X > 0 {
		opts.DPR = float64(scale.X)
	}

	a, err := newApp(opts)
	if err != nil {
		return err
	}
	defer a.close()
	a.RunLoop()
	return nil
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		if !a.Update() {
			return
		}
		a.sess.StepAt(rl.GetTime() * 1000)
		a.Draw()
	}
}

func (a *App) close() {
	a.sess.Close()
	rl.UnloadRenderTexture(a.target)
}

func (a *App) syncHidden() {
	a.sess.SetHidden(a.paused || a.minimized)
}

// Update applies window, keyboard and mouse input. It returns false on quit.
func (a *App) Update() bool {
	if rl.IsKeyPressed(rl.KeyQ) || rl.IsKeyPressed(rl.KeyEscape) {
		return false
	}

	if minimized := rl.IsWindowMinimized(); minimized != a.minimized {
		a.minimized = minimized
		a.syncHidden()
	}

	if rl.IsWindowResized() {
		rl.UnloadRenderTexture(a.target)
		a.target = rl.LoadRenderTexture(int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight()))
		w, h := viewport()
		a.sess.Resize(w, h)
	}

	for i, k := range []int32{rl.KeyOne, rl.KeyTwo, rl.KeyThree, rl.KeyFour, rl.KeyFive} {
		if rl.IsKeyPressed(k) {
			a.selectTheme(i)
		}
	}
	if rl.IsKeyPressed(rl.KeyM) {
		a.toggleMode()
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		a.paused = !a.paused
		a.syncHidden()
	}

	_, h := viewport()
	switch {
	case rl.IsKeyPressed(rl.KeyDown) || rl.IsKeyPressed(rl.KeyJ):
		a.sess.ScrollBy(scrollStep)
	case rl.IsKeyPressed(rl.KeyUp) || rl.IsKeyPressed(rl.KeyK):
		a.sess.ScrollBy(-scrollStep)
	case rl.IsKeyPressed(rl.KeyPageDown):
		a.sess.ScrollBy(h)
	case rl.IsKeyPressed(rl.KeyPageUp):
		a.sess.ScrollBy(-h)
	case rl.IsKeyPressed(rl.KeyHome):
		a.sess.Page.ScrollTo(0)
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		a.sess.ScrollBy(-float64(wheel) * scrollStep)
	}

	pos := rl.GetMousePosition()
	if rl.IsCursorOnScreen() && float64(pos.Y) < h {
		a.sess.PointerMove(float64(pos.X), float64(pos.Y))
	} else {
		a.sess.PointerLeave()
	}
	return true
}

func (a *App) selectTheme(i int) {
	if i >= len(ascii.Themes) || ascii.Themes[i] == a.sess.Theme() {
		return
	}
	if err := a.sess.SetTheme(ascii.Themes[i]); err != nil {
		a.log.Error("switch theme", "theme", ascii.Themes[i], "err", err)
		return
	}
	a.syncHidden()
}

func (a *App) toggleMode() {
	next := ascii.Dark
	if a.sess.Mode() == ascii.Dark {
		next = ascii.Light
	}
	if err := a.sess.SetMode(next); err != nil {
		a.log.Error("switch mode", "mode", next, "err", err)
		return
	}
	a.syncHidden()
}

func (a *App) glyph(r rune) string {
	s, ok := a.glyphs[r]
	if !ok {
		s = string(r)
		a.glyphs[r] = s
	}
	return s
}

func (a *App) Draw() {
	scr := a.sess.Compose()
	bg := scr.Palette.Background

	rl.BeginTextureMode(a.target)
	rl.ClearBackground(color(bg))
	for row := 0; row < scr.Rows; row++ {
		for col := 0; col < scr.Cols; col++ {
			sc := scr.At(col, row)
			if sc.Layer == headless.LayerEmpty {
				continue
			}
			pos := rl.NewVector2(float32(col)*page.CharWidth, float32(row)*page.LineHeight)
			rl.DrawTextEx(a.font, a.glyph(sc.Glyph), pos, page.LineHeight, 0, color(canvas.Blend(sc.Fill, bg)))
		}
	}
	rl.EndTextureMode()

	w, h := float32(a.target.Texture.Width), float32(a.target.Texture.Height)
	rl.BeginDrawing()
	rl.ClearBackground(colBar)
	rl.DrawTexturePro(a.target.Texture,
		rl.NewRectangle(0, 0, w, -h),
		rl.NewRectangle(0, 0, w, h),
		rl.NewVector2(0, 0), 0, rl.White)
	a.drawBar()
	rl.EndDrawing()
}

func (a *App) drawBar() {
	y := float32(rl.GetScreenHeight() - barHeight)
	rl.DrawRectangle(0, int32(y), int32(rl.GetScreenWidth()), barHeight, colBar)

	x := float32(8)
	for i, theme := range ascii.Themes {
		label := fmt.Sprintf("%d %s", i+1, theme)
		col := colTextDim
		if theme == a.sess.Theme() {
			col = colSelect
		}
		rl.DrawTextEx(a.font, label, rl.NewVector2(x, y+4), 16, 1, col)
		x += rl.MeasureTextEx(a.font, label, 16, 1).X + 24
	}

	status := fmt.Sprintf("%s  %d fps", a.sess.Surface().Mode(), rl.GetFPS())
	if a.paused {
		status += "  paused"
	}
	rl.DrawTextEx(a.font, status, rl.NewVector2(x, y+4), 16, 1, colText)
}
