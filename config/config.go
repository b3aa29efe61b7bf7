// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/olivierh59500/particle-life-groups/life"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Population PopulationConfig `yaml:"population"`
	Engine     EngineConfig     `yaml:"engine"`
	Render     RenderConfig     `yaml:"render"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings. The plane is the screen.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetTPS int `yaml:"target_tps"`
}

// PhysicsConfig holds the interaction engine tunables.
type PhysicsConfig struct {
	MinDistance        float64 `yaml:"min_distance"`
	ForceDistance      float64 `yaml:"force_distance"`       // 0 = derive from plane area
	ForceRadiusDivisor float64 `yaml:"force_radius_divisor"` // sqrt(w*h) / this when deriving
	ForceDistanceStep  float64 `yaml:"force_distance_step"`
	ForceDistanceMax   float64 `yaml:"force_distance_max"`
	Friction           float64 `yaml:"friction"`
	VelocityFactor     float64 `yaml:"velocity_factor"`
}

// PopulationConfig holds seeding parameters.
type PopulationConfig struct {
	MassPolicy  string          `yaml:"mass_policy"`
	SpawnRegion RegionConfig    `yaml:"spawn_region"`
	Species     []SpeciesConfig `yaml:"species"`
}

// RegionConfig is the seeding rectangle as fractions of the plane.
type RegionConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

// SpeciesConfig is one configured population.
type SpeciesConfig struct {
	Name  string `yaml:"name"`
	Count int    `yaml:"count"`
}

// EngineConfig holds execution options that never change results.
type EngineConfig struct {
	Workers int  `yaml:"workers"` // 0 = GOMAXPROCS
	Grid    bool `yaml:"grid"`
}

// RenderConfig holds presentation settings.
type RenderConfig struct {
	ParticleScale   float64 `yaml:"particle_scale"`
	BackgroundNoise bool    `yaml:"background_noise"`
	NoiseScale      float64 `yaml:"noise_scale"`
	TrailLength     int     `yaml:"trail_length"`
}

// TelemetryConfig holds diagnostics parameters.
type TelemetryConfig struct {
	Interval int `yaml:"interval"` // Frames between records
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Width, Height float64
	ForceDistance float64
	Workers       int
	MassPolicy    life.MassPolicy
	Species       []life.Species // One per configured population, in order
}

// Load reads the embedded defaults, overlays the file at path if given,
// then validates and computes derived values.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := errors.Join(cfg.computeDerived(), cfg.Validate()); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// computeDerived resolves names and the derived force distance.
func (c *Config) computeDerived() error {
	var errs []error

	c.Derived.Width = float64(c.Screen.Width)
	c.Derived.Height = float64(c.Screen.Height)

	c.Derived.ForceDistance = c.Physics.ForceDistance
	if c.Derived.ForceDistance == 0 && c.Physics.ForceRadiusDivisor > 0 {
		c.Derived.ForceDistance = math.Sqrt(c.Derived.Width*c.Derived.Height) / c.Physics.ForceRadiusDivisor
	}

	c.Derived.Workers = c.Engine.Workers
	if c.Derived.Workers <= 0 {
		c.Derived.Workers = runtime.GOMAXPROCS(0)
	}

	policy, err := life.ParseMassPolicy(c.Population.MassPolicy)
	if err != nil {
		errs = append(errs, fmt.Errorf("population.mass_policy: %w", err))
	}
	c.Derived.MassPolicy = policy

	c.Derived.Species = c.Derived.Species[:0]
	for i, sc := range c.Population.Species {
		s, err := life.ParseSpecies(sc.Name)
		if err != nil {
			errs = append(errs, fmt.Errorf("population.species[%d]: %w", i, err))
			continue
		}
		c.Derived.Species = append(c.Derived.Species, s)
	}

	return errors.Join(errs...)
}

// Validate reports every configuration problem that would stop a run.
func (c *Config) Validate() error {
	var errs []error

	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		errs = append(errs, fmt.Errorf("screen: size %dx%d must be positive", c.Screen.Width, c.Screen.Height))
	}
	if c.Screen.TargetTPS <= 0 {
		errs = append(errs, fmt.Errorf("screen.target_tps: %d must be positive", c.Screen.TargetTPS))
	}
	if err := c.Params().Validate(); err != nil {
		errs = append(errs, fmt.Errorf("physics: %w", err))
	}
	if c.Physics.ForceDistanceStep < 0 {
		errs = append(errs, fmt.Errorf("physics.force_distance_step: %g must not be negative", c.Physics.ForceDistanceStep))
	}
	if err := c.SpawnRegion().Validate(); err != nil {
		errs = append(errs, fmt.Errorf("population.spawn_region: %w", err))
	}
	if len(c.Population.Species) == 0 {
		errs = append(errs, fmt.Errorf("population.species: %w", life.ErrNoSpecies))
	}
	for i, sc := range c.Population.Species {
		if sc.Count < 0 {
			errs = append(errs, fmt.Errorf("population.species[%d]: count %d must not be negative", i, sc.Count))
		}
	}
	if c.Telemetry.Interval < 0 {
		errs = append(errs, fmt.Errorf("telemetry.interval: %d must not be negative", c.Telemetry.Interval))
	}

	return errors.Join(errs...)
}

// Params returns the engine parameters described by the config.
func (c *Config) Params() life.Params {
	return life.Params{
		Width:          c.Derived.Width,
		Height:         c.Derived.Height,
		MinDistance:    c.Physics.MinDistance,
		ForceDistance:  c.Derived.ForceDistance,
		Friction:       c.Physics.Friction,
		VelocityFactor: c.Physics.VelocityFactor,
	}
}

// SpawnRegion returns the seeding rectangle.
func (c *Config) SpawnRegion() life.SpawnRegion {
	r := c.Population.SpawnRegion
	return life.SpawnRegion{X: r.X, Y: r.Y, W: r.W, H: r.H}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
