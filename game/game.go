// Package game is the ebiten frame driver: it steps the simulation once per
// tick, polls input and draws the groups.
package game

import (
	"github.com/aquilax/go-perlin"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/olivierh59500/particle-life-groups/config"
	"github.com/olivierh59500/particle-life-groups/sim"
	"github.com/olivierh59500/particle-life-groups/view"
)

// Visualization modes
const (
	VisParticles = iota
	VisTrails
	numVisModes
)

// Game implements ebiten.Game on top of a sim.Runner.
type Game struct {
	cfg    *config.Config
	runner *sim.Runner

	Paused   bool
	VisMode  int
	MaxTicks int // Stop after this many steps (0 = unlimited)

	camera     *view.Camera
	trails     *view.Trails
	field      *perlin.Perlin
	background *ebiten.Image
}

// New creates a game for an already constructed runner.
func New(cfg *config.Config, runner *sim.Runner) *Game {
	g := &Game{
		cfg:    cfg,
		runner: runner,
		camera: view.NewCamera(),
		trails: view.NewTrails(cfg.Render.TrailLength),
	}
	if cfg.Render.BackgroundNoise {
		g.field = perlin.NewPerlin(2, 2, 3, runner.Rand().Int63())
	}
	runner.FPS = ebiten.ActualFPS
	return g
}

// Update is called each tick by Ebitengine
func (g *Game) Update() error {
	g.handleInput()

	if g.MaxTicks > 0 && g.runner.Frame() >= g.MaxTicks {
		return ebiten.Termination
	}
	if g.Paused {
		return nil
	}
	if err := g.runner.Step(); err != nil {
		return err
	}

	if g.VisMode == VisTrails {
		g.trails.Record(g.runner.World().Groups)
	}
	return nil
}

// Layout returns the screen size
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Screen.Width, g.cfg.Screen.Height
}
