package life

import (
	"math"
	"slices"
)

// Keeps the searched cell range wide enough to absorb rounding at cell edges.
const gridMargin = 1e-6

// Bin lists influence particle indices in ascending order.
type Bin []int

// grid is a uniform binning of the influence snapshot, rebuilt per pairing.
// Distances are not wrapped, so neither are cells.
type grid struct {
	cell       float64
	cols, rows int
	bins       []Bin
}

// build bins influence with cells of the cutoff size. It returns false when
// binning cannot help or cannot be trusted, and the caller falls back to all pairs.
func (g *grid) build(influence []Particle, cell, width, height float64) bool {
	if !(cell > 0) {
		return false
	}
	cols := int(math.Ceil(width / cell))
	rows := int(math.Ceil(height / cell))
	if cols < 1 || rows < 1 || cols*rows <= 9 || cols*rows > 1<<20 {
		return false
	}
	for i := range influence {
		if !finite(influence[i].X) || !finite(influence[i].Y) {
			return false
		}
	}

	g.cell, g.cols, g.rows = cell, cols, rows
	if cap(g.bins) < cols*rows {
		g.bins = make([]Bin, cols*rows)
	}
	g.bins = g.bins[:cols*rows]
	for i := range g.bins {
		g.bins[i] = g.bins[i][:0]
	}
	for i := range influence {
		cx := g.index(influence[i].X, g.cols)
		cy := g.index(influence[i].Y, g.rows)
		key := cy*g.cols + cx
		g.bins[key] = append(g.bins[key], i)
	}
	return true
}

// index maps a coordinate to its clamped cell. Clamping keeps the mapping
// monotone, so out-of-plane particles still land next to their neighbors.
func (g *grid) index(v float64, n int) int {
	c := math.Floor(v / g.cell)
	if !(c >= 0) {
		return 0
	}
	if c >= float64(n) {
		return n - 1
	}
	return int(c)
}

// candidates appends every index that may lie within one cell of (x, y),
// sorted so neighbors are visited in the same order as the all-pairs pass.
func (g *grid) candidates(dst []int, x, y float64) []int {
	reach := g.cell * (1 + gridMargin)
	x0, x1 := g.index(x-reach, g.cols), g.index(x+reach, g.cols)
	y0, y1 := g.index(y-reach, g.rows), g.index(y+reach, g.rows)
	for cy := y0; cy <= y1; cy++ {
		for cx := x0; cx <= x1; cx++ {
			dst = append(dst, g.bins[cy*g.cols+cx]...)
		}
	}
	slices.Sort(dst)
	return dst
}
