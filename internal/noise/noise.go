// Package noise implements a seeded 2-D gradient noise over a shuffled
// permutation table. The same seed always yields the same field.
package noise

import "math"

var gradients = [8][2]float64{
	{1, 1}, {-1, 1}, {1, -1}, {-1, -1},
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
}

// Generator samples gradient noise. Values lie roughly in [-1, 1].
type Generator struct {
	perm [512]uint8
}

// New shuffles the permutation table with a Park-Miller LCG driven by seed.
func New(seed int64) *Generator {
	var p [256]uint8
	for i := range p {
		p[i] = uint8(i)
	}
	s := seed
	for i := 255; i > 0; i-- {
		s = (s * 16807) % 2147483647
		j := s % int64(i+1)
		if j < 0 {
			j += int64(i + 1)
		}
		p[i], p[j] = p[j], p[i]
	}
	g := &Generator{}
	for i := range g.perm {
		g.perm[i] = p[i&255]
	}
	return g
}

func (g *Generator) grad(xi, yi int) [2]float64 {
	return gradients[g.perm[xi+int(g.perm[yi])]&7]
}

// At samples the field at (x, y).
func (g *Generator) At(x, y float64) float64 {
	fx, fy := math.Floor(x), math.Floor(y)
	xi := int(fx) & 255
	yi := int(fy) & 255
	xf := x - fx
	yf := y - fy

	u := xf * xf * (3 - 2*xf)
	v := yf * yf * (3 - 2*yf)

	g00 := g.grad(xi, yi)
	g10 := g.grad(xi+1, yi)
	g01 := g.grad(xi, yi+1)
	g11 := g.grad(xi+1, yi+1)

	n00 := g00[0]*xf + g00[1]*yf
	n10 := g10[0]*(xf-1) + g10[1]*yf
	n01 := g01[0]*xf + g01[1]*(yf-1)
	n11 := g11[0]*(xf-1) + g11[1]*(yf-1)

	nx0 := n00 + u*(n10-n00)
	nx1 := n01 + u*(n11-n01)
	return nx0 + v*(nx1-nx0)
}

// Octave is one layer of a fractal sum.
type Octave struct {
	Frequency float64
	Weight    float64
}

// Sum adds octaves sampled at (x*freq, y*freq).
func (g *Generator) Sum(x, y float64, octaves []Octave) float64 {
	total := 0.0
	for _, o := range octaves {
		total += g.At(x*o.Frequency, y*o.Frequency) * o.Weight
	}
	return total
}
