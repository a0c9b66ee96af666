package renderers

import (
	"math"

	"github.com/san-kum/asciiscape/internal/ascii"
	"github.com/san-kum/asciiscape/internal/noise"
)

const (
	topoCell  = 12.0
	topoBands = 7
	topoGlyph = "."
	// TerrainSeed fixes the terrain so every mount draws the same map.
	TerrainSeed = 42
	topoScale   = 0.045
	// RevealSpan is the share of scroll progress over which band start points spread.
	RevealSpan = 0.7
	// RevealFade is the scroll progress a band takes to fade in fully.
	RevealFade = 0.25
)

var terrainOctaves = []noise.Octave{
	{Frequency: 1, Weight: 0.55},
	{Frequency: 2.1, Weight: 0.3},
	{Frequency: 4.3, Weight: 0.15},
}

var (
	topoAccent    = ascii.RGB{R: 92, G: 204, B: 13}
	topoBaseLight = ascii.RGB{R: 13, G: 13, B: 13}
	topoBaseDark  = ascii.RGB{R: 250, G: 250, B: 250}
)

type topoCellState struct {
	x, y      float64
	elevation float64
	band      int
	contour   bool
	opacity   float64
}

type topographyState struct {
	cells      []topoCellState
	cols, rows int
	dpr        float64
	base       *ascii.Buckets
	accent     *ascii.Buckets
}

type topography struct {
	mode  ascii.ColorMode
	noise *noise.Generator
}

// NewTopography builds the scroll-revealed contour map renderer. The
// terrain is seeded, so random options are ignored.
func NewTopography(mode ascii.ColorMode, _ ...Option) ascii.Renderer {
	return erase[*topographyState](newTopography(mode))
}

func newTopography(mode ascii.ColorMode) *topography {
	return &topography{mode: mode, noise: noise.New(TerrainSeed)}
}

func (r *topography) baseColor() ascii.RGB {
	if r.mode == ascii.Dark {
		return topoBaseDark
	}
	return topoBaseLight
}

// elevation samples the terrain at grid cell (col, row), normalised to [0,1].
func (r *topography) elevation(col, row int) float64 {
	v := r.noise.Sum(float64(col)*topoScale, float64(row)*topoScale, terrainOctaves)
	return clamp01((v + 1) / 2)
}

func bandOf(elevation float64) int {
	return min(topoBands-1, int(math.Floor(elevation*topoBands)))
}

// accented reports whether a cell draws in the accent colour: contour
// cells of the two highest bands.
func (c *topoCellState) accented() bool {
	return c.contour && c.band >= topoBands-2
}

func (r *topography) createState(width, height, dpr float64) *topographyState {
	cols, rows := gridSize(width, height, topoCell)
	st := &topographyState{
		cells: make([]topoCellState, 0, cols*rows),
		cols:  cols,
		rows:  rows,
		dpr:   dpr,
	}

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			e := r.elevation(col, row)
			st.cells = append(st.cells, topoCellState{
				x:         float64(col)*topoCell + topoCell/2,
				y:         float64(row)*topoCell + topoCell/2,
				elevation: e,
				band:      bandOf(e),
			})
		}
	}

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			idx := row*cols + col
			band := st.cells[idx].band
			st.cells[idx].contour = (col > 0 && st.cells[idx-1].band != band) ||
				(col < cols-1 && st.cells[idx+1].band != band) ||
				(row > 0 && st.cells[idx-cols].band != band) ||
				(row < rows-1 && st.cells[idx+cols].band != band)
		}
	}

	st.base = ascii.NewBuckets(r.baseColor(), len(st.cells))
	st.accent = ascii.NewBuckets(topoAccent, 0)
	return st
}

// bandFade is how far band has faded in at the given scroll progress.
func bandFade(band int, progress float64) float64 {
	start := float64(band) / topoBands * RevealSpan
	return clamp01((progress - start) / RevealFade)
}

func (r *topography) update(s *topographyState, _ float64, _ ascii.MouseState, scroll *ascii.ScrollState) {
	progress := 0.0
	if scroll != nil {
		progress = scroll.Progress
	}

	for i := range s.cells {
		c := &s.cells[i]
		fade := bandFade(c.band, progress)
		switch {
		case fade <= 0:
			c.opacity = 0
		case c.contour:
			c.opacity = fade * (0.45 + float64(c.band)*0.07)
		default:
			c.opacity = fade * (0.04 + float64(c.band)*0.015)
		}
	}
}

func (r *topography) draw(ctx ascii.Context, s *topographyState, width, height float64) {
	ascii.BeginFrame(ctx, s.dpr, width, height, font11)
	defer ctx.Restore()

	ascii.FillBucketsFunc(s.base, s.cells, func(c *topoCellState) float64 {
		if c.accented() {
			return 0
		}
		return c.opacity
	})
	ascii.FillBucketsFunc(s.accent, s.cells, func(c *topoCellState) float64 {
		if !c.accented() {
			return 0
		}
		return c.opacity
	})

	plot := func(i int32) {
		c := &s.cells[i]
		ctx.FillText(topoGlyph, c.x, c.y)
	}
	s.base.Paint(ctx, plot)
	s.accent.Paint(ctx, plot)
}
