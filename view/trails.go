package view

import (
	"math"

	"github.com/olivierh59500/particle-life-groups/life"
)

// Point is a recorded trail position.
type Point struct{ X, Y float64 }

// Trails keeps the last few positions of every particle, per group.
type Trails struct {
	length int
	paths  [][][]Point // [group][particle]
}

// NewTrails keeps up to length positions per particle.
func NewTrails(length int) *Trails {
	if length < 2 {
		length = 2
	}
	return &Trails{length: length}
}

// Record appends the current position of every particle.
func (t *Trails) Record(groups []life.Group) {
	if len(t.paths) != len(groups) {
		t.paths = make([][][]Point, len(groups))
	}
	for g := range groups {
		ps := groups[g].Particles
		if len(t.paths[g]) != len(ps) {
			t.paths[g] = make([][]Point, len(ps))
		}
		for i, p := range ps {
			path := append(t.paths[g][i], Point{p.X, p.Y})
			if len(path) > t.length {
				path = path[1:]
			}
			t.paths[g][i] = path
		}
	}
}

// Reset drops all recorded positions.
func (t *Trails) Reset() {
	t.paths = nil
}

// Path returns the recorded positions of one particle, oldest first.
func (t *Trails) Path(group, i int) []Point {
	if group >= len(t.paths) || i >= len(t.paths[group]) {
		return nil
	}
	return t.paths[group][i]
}

// Wrapped reports whether the step from a to b crossed a plane edge, in
// which case it should not be drawn as a line.
func Wrapped(a, b Point, w, h float64) bool {
	return math.Abs(b.X-a.X) > w/2 || math.Abs(b.Y-a.Y) > h/2
}
