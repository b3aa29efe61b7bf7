package life

import (
	"errors"
	"fmt"
	"math/rand"
)

// Particle is a single simulated body.
type Particle struct {
	X, Y    float64 // Position
	XV, YV  float64 // Velocity
	Mass    float64
	Species Species
}

// Group is an ordered population of particles sharing one species.
type Group struct {
	Species   Species
	Particles []Particle
}

// Len returns the number of particles in the group.
func (g *Group) Len() int {
	return len(g.Particles)
}

// Snapshot returns a copy of the particles, safe to read while g is mutated.
func (g *Group) Snapshot() []Particle {
	out := make([]Particle, len(g.Particles))
	copy(out, g.Particles)
	return out
}

// MassPolicy selects how particle mass is assigned at seeding.
type MassPolicy int

const (
	// MassFixed gives every particle mass 1.
	MassFixed MassPolicy = iota
	// MassWeighted draws mass 1, 2 or 3 with weights 97, 2 and 1.
	MassWeighted
)

var massWeights = []struct {
	mass   float64
	weight int
}{
	{1, 97},
	{2, 2},
	{3, 1},
}

func (m MassPolicy) String() string {
	switch m {
	case MassFixed:
		return "fixed"
	case MassWeighted:
		return "weighted"
	}
	return fmt.Sprintf("mass_policy(%d)", int(m))
}

// ParseMassPolicy maps "fixed" or "weighted" to a MassPolicy.
func ParseMassPolicy(name string) (MassPolicy, error) {
	switch name {
	case "fixed", "":
		return MassFixed, nil
	case "weighted":
		return MassWeighted, nil
	}
	return 0, fmt.Errorf("unknown mass policy %q", name)
}

// Mass draws one particle mass. MassFixed never consumes randomness.
func (m MassPolicy) Mass(rng *rand.Rand) float64 {
	if m != MassWeighted {
		return 1
	}
	total := 0
	for _, w := range massWeights {
		total += w.weight
	}
	n := rng.Intn(total)
	for _, w := range massWeights {
		if n < w.weight {
			return w.mass
		}
		n -= w.weight
	}
	return massWeights[len(massWeights)-1].mass
}

// SpawnRegion is the seeding rectangle, expressed as fractions of the plane.
type SpawnRegion struct {
	X, Y float64 // Top-left corner
	W, H float64 // Extent
}

// DefaultSpawnRegion covers [1/2.5, 1/2.5+1/3) on both axes.
var DefaultSpawnRegion = SpawnRegion{X: 1 / 2.5, Y: 1 / 2.5, W: 1.0 / 3, H: 1.0 / 3}

// ErrInvalidRegion is returned when a spawn region is empty or not inside the plane.
var ErrInvalidRegion = errors.New("invalid spawn region")

// Validate checks that r is a non-degenerate strict sub-rectangle of the unit plane.
func (r SpawnRegion) Validate() error {
	switch {
	case r.W <= 0 || r.H <= 0:
		return fmt.Errorf("%w: extent %gx%g is empty", ErrInvalidRegion, r.W, r.H)
	case r.X < 0 || r.Y < 0 || r.X+r.W > 1 || r.Y+r.H > 1:
		return fmt.Errorf("%w: (%g,%g)+(%g,%g) leaves the plane", ErrInvalidRegion, r.X, r.Y, r.W, r.H)
	case r.W >= 1 && r.H >= 1:
		return fmt.Errorf("%w: region covers the whole plane", ErrInvalidRegion)
	}
	return nil
}

// Seed creates n particles of one species at rest, uniformly placed in region.
func Seed(rng *rand.Rand, n int, species Species, width, height float64, region SpawnRegion, policy MassPolicy) Group {
	g := Group{Species: species, Particles: make([]Particle, n)}
	x0, y0 := width*region.X, height*region.Y
	w, h := width*region.W, height*region.H
	for i := range g.Particles {
		g.Particles[i] = Particle{
			X:       x0 + rng.Float64()*w,
			Y:       y0 + rng.Float64()*h,
			Mass:    policy.Mass(rng),
			Species: species,
		}
	}
	return g
}
