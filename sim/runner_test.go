package sim

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/olivierh59500/particle-life-groups/config"
	"github.com/olivierh59500/particle-life-groups/life"
)

const smallConfig = `
screen:
  width: 400
  height: 300
  target_tps: 30
physics:
  min_distance: 2
  force_distance: 40
  force_distance_step: 5
  force_distance_max: 60
population:
  mass_policy: weighted
  species:
    - name: navy
      count: 40
    - name: coral
      count: 25
    - name: navy
      count: 10
engine:
  workers: 2
  grid: true
telemetry:
  interval: 2
`

func loadSmall(t *testing.T) *config.Config {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(smallConfig), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return cfg
}

func TestNewWorldFromConfig(t *testing.T) {
	cfg := loadSmall(t)
	r, err := NewRunner(cfg, Options{Seed: 1})
	if err != nil {
		t.Fatalf("NewRunner: %v", err)
	}
	defer r.Close()

	w := r.World()
	if len(w.Groups) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(w.Groups))
	}
	wantCounts := []int{40, 25, 10}
	for i, g := range w.Groups {
		if g.Len() != wantCounts[i] {
			t.Errorf("group %d has %d particles, want %d", i, g.Len(), wantCounts[i])
		}
	}
	// Duplicate species share matrix entries.
	if got := len(w.Matrix.Entries()); got != 4 {
		t.Errorf("matrix has %d entries, want 4", got)
	}
	if w.Engine.Params.ForceDistance != 40 || w.Engine.Workers != 2 || !w.Engine.Grid {
		t.Errorf("engine not configured from file: %+v", w.Engine)
	}
}

func TestRunnerDeterministic(t *testing.T) {
	cfg := loadSmall(t)
	a, err := NewRunner(cfg, Options{Seed: 99})
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewRunner(cfg, Options{Seed: 99})
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 5; i++ {
		if err := a.Step(); err != nil {
			t.Fatal(err)
		}
		if err := b.Step(); err != nil {
			t.Fatal(err)
		}
	}

	for g := range a.World().Groups {
		pa, pb := a.World().Groups[g].Particles, b.World().Groups[g].Particles
		for i := range pa {
			if pa[i] != pb[i] {
				t.Fatalf("group %d particle %d diverged: %+v vs %+v", g, i, pa[i], pb[i])
			}
		}
	}
	if a.Frame() != 5 {
		t.Errorf("frame = %d, want 5", a.Frame())
	}
}

func TestRunnerStaysInPlane(t *testing.T) {
	cfg := loadSmall(t)
	r, err := NewRunner(cfg, Options{Seed: 4})
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 20; i++ {
		if err := r.Step(); err != nil {
			t.Fatal(err)
		}
	}
	p := r.World().Engine.Params
	for _, g := range r.World().Groups {
		for _, pt := range g.Particles {
			if pt.X < 0 || pt.X >= p.Width || pt.Y < 0 || pt.Y >= p.Height {
				t.Fatalf("particle outside plane: %+v", pt)
			}
		}
	}
}

func TestAdjustForceDistance(t *testing.T) {
	cfg := loadSmall(t)
	r, err := NewRunner(cfg, Options{Seed: 2})
	if err != nil {
		t.Fatal(err)
	}

	if got := r.AdjustForceDistance(1); got != 45 {
		t.Errorf("+1 step: got %v, want 45", got)
	}
	for i := 0; i < 10; i++ {
		r.AdjustForceDistance(1)
	}
	if got := r.ForceDistance(); got != 60 {
		t.Errorf("after many increments: got %v, want max 60", got)
	}
	for i := 0; i < 100; i++ {
		r.AdjustForceDistance(-1)
	}
	if got := r.ForceDistance(); !(got > cfg.Physics.MinDistance) {
		t.Errorf("after many decrements: got %v, want > min distance", got)
	}
	if err := r.Step(); err != nil {
		t.Errorf("step with clamped cutoff: %v", err)
	}
}

func TestRunHeadlessWritesOutput(t *testing.T) {
	cfg := loadSmall(t)
	dir := filepath.Join(t.TempDir(), "out")
	r, err := NewRunner(cfg, Options{Seed: 7, OutputDir: dir, LogStats: true})
	if err != nil {
		t.Fatal(err)
	}

	if err := RunHeadless(context.Background(), r, 6); err != nil {
		t.Fatalf("RunHeadless: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatal(err)
	}
	if r.Frame() != 6 {
		t.Errorf("frame = %d, want 6", r.Frame())
	}

	data, err := os.ReadFile(filepath.Join(dir, "frames.csv"))
	if err != nil {
		t.Fatal(err)
	}
	// Interval 2 over 6 frames: header + 3 records.
	if lines := strings.Split(strings.TrimSpace(string(data)), "\n"); len(lines) != 4 {
		t.Errorf("frames.csv has %d lines, want 4", len(lines))
	}
	if _, err := os.Stat(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("config snapshot missing: %v", err)
	}
}

func TestRunHeadlessCancelled(t *testing.T) {
	cfg := loadSmall(t)
	r, err := NewRunner(cfg, Options{Seed: 7})
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := RunHeadless(ctx, r, 0); err != nil {
		t.Fatalf("RunHeadless: %v", err)
	}
	if r.Frame() != 0 {
		t.Errorf("frame = %d, want 0 after cancellation", r.Frame())
	}
}

func TestRunnerStepMissingPair(t *testing.T) {
	cfg := loadSmall(t)
	r, err := NewRunner(cfg, Options{Seed: 3})
	if err != nil {
		t.Fatal(err)
	}
	// Swap in a matrix that lost a pair after construction.
	r.World().Matrix = life.NewEmptyMatrix([]life.Species{life.Navy})
	if err := r.Step(); err == nil {
		t.Error("expected step to fail on missing pair")
	}
}
