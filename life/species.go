// Package life is the particle interaction engine: species, particles,
// groups, the force matrix and the per-frame update.
package life

import (
	"fmt"
	"strings"
)

// Species tags a particle population. Only identity matters to the engine;
// display colors are the renderer's business.
type Species uint8

const (
	Red Species = iota
	Green
	Blue
	White
	Orange
	Purple
	Yellow
	Plum
	Coral
	Fuchsia
	Navy
	LavenderBlush
	numSpecies
)

var speciesNames = [numSpecies]string{
	Red:           "red",
	Green:         "green",
	Blue:          "blue",
	White:         "white",
	Orange:        "orange",
	Purple:        "purple",
	Yellow:        "yellow",
	Plum:          "plum",
	Coral:         "coral",
	Fuchsia:       "fuchsia",
	Navy:          "navy",
	LavenderBlush: "lavenderblush",
}

// AllSpecies returns every known species in declaration order.
func AllSpecies() []Species {
	out := make([]Species, numSpecies)
	for i := range out {
		out[i] = Species(i)
	}
	return out
}

func (s Species) String() string {
	if s < numSpecies {
		return speciesNames[s]
	}
	return fmt.Sprintf("species(%d)", uint8(s))
}

// ParseSpecies maps a color name (case-insensitive) to its species.
func ParseSpecies(name string) (Species, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, v := range speciesNames {
		if v == n {
			return Species(i), nil
		}
	}
	return 0, fmt.Errorf("unknown species %q", name)
}
