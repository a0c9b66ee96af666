package ascii

type TextAlign int

const (
	AlignStart TextAlign = iota
	AlignCenter
)

type TextBaseline int

const (
	BaselineTop TextBaseline = iota
	BaselineMiddle
)

// Font describes the monospace face glyphs are painted with. Surfaces with a
// fixed cell grid ignore Size.
type Font struct {
	Size   float64
	Family string
}

// MonoFamily is the font stack every renderer requests.
const MonoFamily = "'DM Mono', 'Menlo', 'Consolas', monospace"

// Context is the subset of a 2-D drawing surface the renderers use.
// Coordinates passed to ClearRect and FillText are transformed by the current
// matrix; Save and Restore push and pop the whole drawing state.
type Context interface {
	Save()
	Restore()
	SetTransform(a, b, c, d, e, f float64)
	ClearRect(x, y, w, h float64)
	SetFont(f Font)
	SetTextAlign(a TextAlign)
	SetTextBaseline(b TextBaseline)
	SetFillStyle(f Fill)
	FillText(text string, x, y float64)
}

// BeginFrame performs the preamble shared by every renderer's Draw: scoped
// save, device-pixel transform, full clear and centred text setup. The caller
// must call ctx.Restore when done.
func BeginFrame(ctx Context, dpr, width, height float64, font Font) {
	ctx.Save()
	ctx.SetTransform(dpr, 0, 0, dpr, 0, 0)
	ctx.ClearRect(0, 0, width, height)
	ctx.SetFont(font)
	ctx.SetTextAlign(AlignCenter)
	ctx.SetTextBaseline(BaselineMiddle)
}
