package life

import (
	"errors"
	"fmt"
	"math/rand"
)

// ErrMissingPair is returned when the force matrix has no entry for a species pair.
var ErrMissingPair = errors.New("force matrix has no entry for pair")

// ErrNoSpecies is returned when a matrix or world is built with no species.
var ErrNoSpecies = errors.New("no species configured")

type pair [2]Species

// ForceMatrix holds the attraction coefficient of every ordered species pair.
// Entries are independent: (a, b) and (b, a) are separate draws.
type ForceMatrix struct {
	species []Species // Distinct, first-seen order
	coeff   map[pair]float64
}

// NewForceMatrix draws every ordered pair of the distinct species uniformly from [-1, 1).
// Duplicates in species are collapsed.
func NewForceMatrix(rng *rand.Rand, species []Species) (*ForceMatrix, error) {
	m := NewEmptyMatrix(species)
	if len(m.species) == 0 {
		return nil, ErrNoSpecies
	}
	for _, a := range m.species {
		for _, b := range m.species {
			m.coeff[pair{a, b}] = rng.Float64()*2 - 1
		}
	}
	return m, nil
}

// NewEmptyMatrix returns a matrix over species with no entries set.
func NewEmptyMatrix(species []Species) *ForceMatrix {
	m := &ForceMatrix{coeff: make(map[pair]float64)}
	seen := make(map[Species]bool, len(species))
	for _, s := range species {
		if seen[s] {
			continue
		}
		seen[s] = true
		m.species = append(m.species, s)
	}
	return m
}

// Set assigns the coefficient of (a, b). Intended for setup before a run starts.
func (m *ForceMatrix) Set(a, b Species, v float64) {
	m.coeff[pair{a, b}] = v
}

// Coefficient returns the coefficient applied to a particle of species a by one of b.
func (m *ForceMatrix) Coefficient(a, b Species) (float64, error) {
	v, ok := m.coeff[pair{a, b}]
	if !ok {
		return 0, fmt.Errorf("%w (%s, %s)", ErrMissingPair, a, b)
	}
	return v, nil
}

// Covers reports the first pair over species with no entry, if any.
func (m *ForceMatrix) Covers(species []Species) error {
	for _, a := range species {
		for _, b := range species {
			if _, err := m.Coefficient(a, b); err != nil {
				return err
			}
		}
	}
	return nil
}

// Species returns the distinct species the matrix was built over.
func (m *ForceMatrix) Species() []Species {
	out := make([]Species, len(m.species))
	copy(out, m.species)
	return out
}

// Entry is one matrix cell, used for logging.
type Entry struct {
	From, To Species
	Value    float64
}

// Entries lists the set cells in species order.
func (m *ForceMatrix) Entries() []Entry {
	out := make([]Entry, 0, len(m.coeff))
	for _, a := range m.species {
		for _, b := range m.species {
			if v, ok := m.coeff[pair{a, b}]; ok {
				out = append(out, Entry{From: a, To: b, Value: v})
			}
		}
	}
	return out
}
