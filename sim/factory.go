package sim

import (
	"fmt"
	"math/rand"

	"github.com/olivierh59500/particle-life-groups/config"
	"github.com/olivierh59500/particle-life-groups/life"
)

// NewWorld builds the force matrix and seeds one group per configured
// population, all from rng.
func NewWorld(cfg *config.Config, rng *rand.Rand) (*life.World, error) {
	species := cfg.Derived.Species
	if len(species) != len(cfg.Population.Species) {
		return nil, fmt.Errorf("config not loaded: %d of %d species resolved", len(species), len(cfg.Population.Species))
	}

	matrix, err := life.NewForceMatrix(rng, species)
	if err != nil {
		return nil, fmt.Errorf("building force matrix: %w", err)
	}

	region := cfg.SpawnRegion()
	groups := make([]life.Group, len(species))
	for i, pop := range cfg.Population.Species {
		groups[i] = life.Seed(rng, pop.Count, species[i], cfg.Derived.Width, cfg.Derived.Height, region, cfg.Derived.MassPolicy)
	}

	engine, err := life.NewEngine(cfg.Params(), cfg.Derived.Workers, cfg.Engine.Grid)
	if err != nil {
		return nil, err
	}
	return life.NewWorld(groups, matrix, engine)
}
