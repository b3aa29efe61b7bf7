// Package telemetry collects per-frame diagnostics for the simulation.
package telemetry

import (
	"log/slog"
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/olivierh59500/particle-life-groups/life"
)

// FrameStats is one diagnostics record for the whole world.
type FrameStats struct {
	Frame         int     `csv:"frame"`
	ForceDistance float64 `csv:"force_distance"`
	FPS           float64 `csv:"fps"`
	TPS           float64 `csv:"tps"`
	StepMillis    float64 `csv:"step_ms"`
	Particles     int     `csv:"particles"`
}

// GroupStats summarizes one group's motion at a frame.
type GroupStats struct {
	Frame       int     `csv:"frame"`
	Species     string  `csv:"species"`
	Count       int     `csv:"count"`
	MeanSpeed   float64 `csv:"mean_speed"`
	SpeedStdDev float64 `csv:"speed_stddev"`
	MaxSpeed    float64 `csv:"max_speed"`
	MeanMass    float64 `csv:"mean_mass"`
	CentroidX   float64 `csv:"centroid_x"`
	CentroidY   float64 `csv:"centroid_y"`
}

// LogValue implements slog.LogValuer.
func (f FrameStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("frame", f.Frame),
		slog.Float64("force_distance", f.ForceDistance),
		slog.Float64("fps", round2(f.FPS)),
		slog.Float64("tps", round2(f.TPS)),
		slog.Float64("step_ms", round2(f.StepMillis)),
		slog.Int("particles", f.Particles),
	)
}

// LogValue implements slog.LogValuer.
func (g GroupStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("species", g.Species),
		slog.Int("count", g.Count),
		slog.Float64("mean_speed", round2(g.MeanSpeed)),
		slog.Float64("max_speed", round2(g.MaxSpeed)),
	)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Collector turns world state into stats records. Not safe for concurrent use.
type Collector struct {
	speeds []float64
	masses []float64
	xs, ys []float64
}

// NewCollector creates a collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Frame builds the world-level record.
func (c *Collector) Frame(frame int, w *life.World, fps, tps float64, step time.Duration) FrameStats {
	return FrameStats{
		Frame:         frame,
		ForceDistance: w.Engine.Params.ForceDistance,
		FPS:           fps,
		TPS:           tps,
		StepMillis:    float64(step) / float64(time.Millisecond),
		Particles:     w.Count(),
	}
}

// Groups builds one record per group, appended to dst.
func (c *Collector) Groups(dst []GroupStats, frame int, w *life.World) []GroupStats {
	for i := range w.Groups {
		dst = append(dst, c.group(frame, &w.Groups[i]))
	}
	return dst
}

func (c *Collector) group(frame int, g *life.Group) GroupStats {
	gs := GroupStats{Frame: frame, Species: g.Species.String(), Count: g.Len()}
	if g.Len() == 0 {
		return gs
	}

	c.speeds = c.speeds[:0]
	c.masses = c.masses[:0]
	c.xs, c.ys = c.xs[:0], c.ys[:0]
	for _, p := range g.Particles {
		c.speeds = append(c.speeds, math.Hypot(p.XV, p.YV))
		c.masses = append(c.masses, p.Mass)
		c.xs = append(c.xs, p.X)
		c.ys = append(c.ys, p.Y)
	}

	gs.MeanSpeed, gs.SpeedStdDev = stat.MeanStdDev(c.speeds, nil)
	if math.IsNaN(gs.SpeedStdDev) {
		gs.SpeedStdDev = 0
	}
	gs.MaxSpeed = floats.Max(c.speeds)
	gs.MeanMass = stat.Mean(c.masses, nil)
	gs.CentroidX = stat.Mean(c.xs, nil)
	gs.CentroidY = stat.Mean(c.ys, nil)
	return gs
}
