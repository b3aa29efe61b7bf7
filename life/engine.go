package life

import (
	"errors"
	"fmt"
	"math"
	"sync"
)

// Below this many influence particles the grid costs more than it saves.
const gridThreshold = 64

// ErrInvalidParams is returned by Params.Validate.
var ErrInvalidParams = errors.New("invalid engine parameters")

// Params are the engine-wide tunables.
type Params struct {
	Width, Height  float64 // Plane size, fixed for the run
	MinDistance    float64 // Hard repulsion radius
	ForceDistance  float64 // Cutoff radius
	Friction       float64
	VelocityFactor float64
}

// Validate fails on a configuration that could divide by zero or never interact.
func (p Params) Validate() error {
	switch {
	case !(p.Width > 0) || !(p.Height > 0):
		return fmt.Errorf("%w: plane %gx%g must be positive", ErrInvalidParams, p.Width, p.Height)
	case !(p.MinDistance > 0):
		return fmt.Errorf("%w: min_distance %g must be positive", ErrInvalidParams, p.MinDistance)
	case !(p.ForceDistance > p.MinDistance):
		return fmt.Errorf("%w: force_distance %g must exceed min_distance %g", ErrInvalidParams, p.ForceDistance, p.MinDistance)
	case math.IsNaN(p.Friction) || math.IsNaN(p.VelocityFactor):
		return fmt.Errorf("%w: friction and velocity_factor must be numbers", ErrInvalidParams)
	}
	return nil
}

// Force returns the signed force between two particles at the given distance.
// ok is false at or beyond the cutoff, where the pair does not interact.
func Force(distance, gravity, m1, m2 float64, p Params) (f float64, ok bool) {
	switch {
	case distance >= p.ForceDistance:
		return 0, false
	case distance <= p.MinDistance:
		return -gravity, true
	}
	return gravity * m1 * m2 / distance, true
}

// Wrap folds v into [0, dim), assuming v did not leave by more than one dim.
func Wrap(v, dim float64) float64 {
	return math.Mod(v+dim, dim)
}

// advance runs one particle against the influence set and integrates it.
// When idx is non-nil only those influence indices are visited, in the given order.
func (p *Params) advance(p1 Particle, influence []Particle, idx []int, gravity float64) Particle {
	var fx, fy float64
	n := len(influence)
	if idx != nil {
		n = len(idx)
	}
	for k := 0; k < n; k++ {
		j := k
		if idx != nil {
			j = idx[k]
		}
		p2 := &influence[j]
		dx := p1.X - p2.X
		dy := p1.Y - p2.Y
		distance := math.Sqrt(dx*dx + dy*dy)
		f, ok := Force(distance, gravity, p1.Mass, p2.Mass, *p)
		if !ok {
			continue
		}

		// Accumulators carry over between neighbors and velocity is
		// re-derived after every contributing one.
		fx += (f - p1.XV*p.Friction) * dx
		fy += (f - p1.YV*p.Friction) * dy
		p1.XV = (p1.XV + fx) * p.VelocityFactor
		p1.YV = (p1.YV + fy) * p.VelocityFactor
	}

	p1.X += p1.XV
	p1.Y += p1.YV
	p1.X = Wrap(p1.X, p.Width)
	p1.Y = Wrap(p1.Y, p.Height)
	return p1
}

// Interact updates every active particle against influence, in place.
// influence must not alias active; pass a snapshot for self interaction.
func Interact(active, influence []Particle, gravity float64, p Params) {
	for i := range active {
		active[i] = p.advance(active[i], influence, nil, gravity)
	}
}

// Engine runs Interact with optional grid acceleration and worker goroutines.
// Both produce the same bits as the plain all-pairs pass.
type Engine struct {
	Params  Params
	Workers int  // <= 1 runs on the calling goroutine
	Grid    bool // Use a uniform grid when the influence set is large

	grid    grid
	scratch [][]int
}

// NewEngine validates p and returns an engine.
func NewEngine(p Params, workers int, useGrid bool) (*Engine, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &Engine{Params: p, Workers: workers, Grid: useGrid}, nil
}

// SetForceDistance applies a new cutoff clamped to (MinDistance, limit]
// and returns the value in effect. A limit <= MinDistance means no upper bound.
func (e *Engine) SetForceDistance(v, limit float64) float64 {
	if limit > e.Params.MinDistance && v > limit {
		v = limit
	}
	if !(v > e.Params.MinDistance) {
		v = math.Nextafter(e.Params.MinDistance, math.Inf(1))
	}
	e.Params.ForceDistance = v
	return v
}

// Interact updates active against the influence snapshot.
func (e *Engine) Interact(active, influence []Particle, gravity float64) {
	useGrid := e.Grid && len(influence) >= gridThreshold &&
		e.grid.build(influence, e.Params.ForceDistance, e.Params.Width, e.Params.Height)

	workers := e.Workers
	if workers > len(active) {
		workers = len(active)
	}
	if workers < 1 {
		workers = 1
	}
	for len(e.scratch) < workers {
		e.scratch = append(e.scratch, make([]int, 0, 64))
	}

	if workers == 1 {
		e.chunk(active, 0, len(active), influence, gravity, useGrid, 0)
		return
	}

	var wg sync.WaitGroup
	chunkSize := (len(active) + workers - 1) / workers
	for w := 0; w < workers; w++ {
		start := w * chunkSize
		end := min(start+chunkSize, len(active))
		if start >= end {
			continue
		}
		wg.Add(1)
		go func(w, start, end int) {
			defer wg.Done()
			e.chunk(active, start, end, influence, gravity, useGrid, w)
		}(w, start, end)
	}
	wg.Wait()
}

// chunk processes active[i0:i1]. Each index is written by exactly one worker.
func (e *Engine) chunk(active []Particle, i0, i1 int, influence []Particle, gravity float64, useGrid bool, worker int) {
	for i := i0; i < i1; i++ {
		p1 := active[i]
		var idx []int
		if useGrid && finite(p1.X) && finite(p1.Y) {
			e.scratch[worker] = e.grid.candidates(e.scratch[worker][:0], p1.X, p1.Y)
			idx = e.scratch[worker]
		}
		active[i] = e.Params.advance(p1, influence, idx, gravity)
	}
}

// World owns the groups and the matrix for one run.
type World struct {
	Groups []Group
	Matrix *ForceMatrix
	Engine *Engine

	snapshot []Particle
}

// NewWorld checks that the run can start: at least one group, valid engine
// parameters and a matrix entry for every ordered group pair.
func NewWorld(groups []Group, m *ForceMatrix, e *Engine) (*World, error) {
	if len(groups) == 0 {
		return nil, ErrNoSpecies
	}
	if err := e.Params.Validate(); err != nil {
		return nil, err
	}
	species := make([]Species, len(groups))
	for i, g := range groups {
		species[i] = g.Species
	}
	if err := m.Covers(species); err != nil {
		return nil, err
	}
	return &World{Groups: groups, Matrix: m, Engine: e}, nil
}

// Step advances one frame. Every ordered group pair (i, j) runs in turn,
// group i against a snapshot of group j taken at the start of that pairing,
// so later pairings see the mutations of earlier ones.
func (w *World) Step() error {
	for i := range w.Groups {
		active := &w.Groups[i]
		for j := range w.Groups {
			gravity, err := w.Matrix.Coefficient(active.Species, w.Groups[j].Species)
			if err != nil {
				return err
			}
			w.snapshot = append(w.snapshot[:0], w.Groups[j].Particles...)
			w.Engine.Interact(active.Particles, w.snapshot, gravity)
		}
	}
	return nil
}

// Count returns the total number of particles.
func (w *World) Count() int {
	n := 0
	for i := range w.Groups {
		n += w.Groups[i].Len()
	}
	return n
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
