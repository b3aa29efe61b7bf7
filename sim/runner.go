// Package sim drives a run of the simulation independently of any window:
// world construction, stepping, the live force distance and diagnostics.
package sim

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/olivierh59500/particle-life-groups/config"
	"github.com/olivierh59500/particle-life-groups/life"
	"github.com/olivierh59500/particle-life-groups/telemetry"
)

// Options configures a Runner beyond the config file.
type Options struct {
	Seed      int64
	OutputDir string // Empty disables CSV output
	LogStats  bool   // Log diagnostics records via slog
}

// Runner owns one world for the lifetime of a run.
type Runner struct {
	cfg   *config.Config
	world *life.World
	rng   *rand.Rand
	frame int

	timer      *telemetry.StepTimer
	collector  *telemetry.Collector
	output     *telemetry.OutputManager
	groupStats []telemetry.GroupStats
	logStats   bool

	// FPS reports the displayed frame rate. Defaults to the step rate.
	FPS func() float64
}

// NewRunner seeds the world from opts.Seed and opens the output directory.
func NewRunner(cfg *config.Config, opts Options) (*Runner, error) {
	rng := rand.New(rand.NewSource(opts.Seed))
	world, err := NewWorld(cfg, rng)
	if err != nil {
		return nil, err
	}

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	if err := output.WriteConfig(cfg); err != nil {
		output.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}

	r := &Runner{
		cfg:       cfg,
		world:     world,
		rng:       rng,
		timer:     telemetry.NewStepTimer(cfg.Screen.TargetTPS),
		collector: telemetry.NewCollector(),
		output:    output,
		logStats:  opts.LogStats,
	}
	r.FPS = r.timer.StepsPerSecond

	logWorld(world, opts.Seed)
	if dir := output.Dir(); dir != "" {
		slog.Info("writing diagnostics", "dir", dir)
	}
	return r, nil
}

// logWorld reports the populations and the full force matrix.
func logWorld(w *life.World, seed int64) {
	groups := make([]any, 0, len(w.Groups))
	for _, g := range w.Groups {
		groups = append(groups, slog.Int(g.Species.String(), g.Len()))
	}
	slog.Info("world created", "seed", seed, slog.Group("groups", groups...))

	entries := w.Matrix.Entries()
	attrs := make([]any, 0, len(entries))
	for _, e := range entries {
		attrs = append(attrs, slog.Float64(e.From.String()+"->"+e.To.String(), e.Value))
	}
	slog.Info("force matrix", attrs...)
}

// World returns the simulated world.
func (r *Runner) World() *life.World {
	return r.world
}

// Rand returns the run's generator, for presentation randomness drawn after seeding.
func (r *Runner) Rand() *rand.Rand {
	return r.rng
}

// Frame returns the number of completed steps.
func (r *Runner) Frame() int {
	return r.frame
}

// ForceDistance returns the cutoff currently in effect.
func (r *Runner) ForceDistance() float64 {
	return r.world.Engine.Params.ForceDistance
}

// AdjustForceDistance moves the cutoff by dir steps, clamped to a usable range.
func (r *Runner) AdjustForceDistance(dir float64) float64 {
	next := r.ForceDistance() + dir*r.cfg.Physics.ForceDistanceStep
	return r.world.Engine.SetForceDistance(next, r.cfg.Physics.ForceDistanceMax)
}

// Step advances the world one frame and emits diagnostics on the interval.
func (r *Runner) Step() error {
	r.timer.Start()
	err := r.world.Step()
	r.timer.Stop()
	if err != nil {
		return fmt.Errorf("frame %d: %w", r.frame, err)
	}
	r.frame++

	if n := r.cfg.Telemetry.Interval; n > 0 && r.frame%n == 0 {
		return r.report()
	}
	return nil
}

func (r *Runner) report() error {
	frame := r.collector.Frame(r.frame, r.world, r.FPS(), r.timer.StepsPerSecond(), r.timer.Avg())
	r.groupStats = r.collector.Groups(r.groupStats[:0], r.frame, r.world)

	if r.logStats {
		slog.Info("frame", "stats", frame)
		for _, g := range r.groupStats {
			slog.Debug("group", "stats", g)
		}
	}

	if err := r.output.WriteFrame(frame); err != nil {
		return err
	}
	return r.output.WriteGroups(r.groupStats)
}

// Close releases the output files.
func (r *Runner) Close() error {
	return r.output.Close()
}

// RunHeadless steps until ctx is done or maxTicks steps ran (0 = unlimited).
func RunHeadless(ctx context.Context, r *Runner, maxTicks int) error {
	slog.Info("starting headless simulation",
		"particles", r.world.Count(),
		"max_ticks", maxTicks,
		"workers", r.world.Engine.Workers,
		"grid", r.world.Engine.Grid,
	)

	for maxTicks <= 0 || r.frame < maxTicks {
		if err := ctx.Err(); err != nil {
			slog.Info("headless simulation stopped", "frame", r.frame)
			return nil
		}
		if err := r.Step(); err != nil {
			return err
		}
	}

	slog.Info("max ticks reached", "frame", r.frame, "avg_step", r.timer.Avg())
	return nil
}
