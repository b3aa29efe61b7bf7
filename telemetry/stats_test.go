package telemetry

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/olivierh59500/particle-life-groups/config"
	"github.com/olivierh59500/particle-life-groups/life"
)

func testWorld(t *testing.T) *life.World {
	t.Helper()
	groups := []life.Group{
		{Species: life.Navy, Particles: []life.Particle{
			{X: 10, Y: 20, XV: 3, YV: 4, Mass: 1, Species: life.Navy},
			{X: 30, Y: 40, XV: 0, YV: 0, Mass: 3, Species: life.Navy},
		}},
		{Species: life.Coral},
	}
	m := life.NewEmptyMatrix([]life.Species{life.Navy, life.Coral})
	for _, a := range []life.Species{life.Navy, life.Coral} {
		for _, b := range []life.Species{life.Navy, life.Coral} {
			m.Set(a, b, 0.5)
		}
	}
	e, err := life.NewEngine(life.Params{Width: 100, Height: 100, MinDistance: 1, ForceDistance: 50, VelocityFactor: 1}, 1, false)
	if err != nil {
		t.Fatal(err)
	}
	w, err := life.NewWorld(groups, m, e)
	if err != nil {
		t.Fatal(err)
	}
	return w
}

func TestCollectorGroups(t *testing.T) {
	w := testWorld(t)
	c := NewCollector()

	stats := c.Groups(nil, 7, w)
	if len(stats) != 2 {
		t.Fatalf("expected 2 group records, got %d", len(stats))
	}

	navy := stats[0]
	if navy.Species != "navy" || navy.Count != 2 || navy.Frame != 7 {
		t.Errorf("unexpected header fields %+v", navy)
	}
	if math.Abs(navy.MeanSpeed-2.5) > 1e-9 {
		t.Errorf("mean speed = %v, want 2.5", navy.MeanSpeed)
	}
	if math.Abs(navy.MaxSpeed-5) > 1e-9 {
		t.Errorf("max speed = %v, want 5", navy.MaxSpeed)
	}
	if math.Abs(navy.MeanMass-2) > 1e-9 {
		t.Errorf("mean mass = %v, want 2", navy.MeanMass)
	}
	if navy.CentroidX != 20 || navy.CentroidY != 30 {
		t.Errorf("centroid = (%v, %v), want (20, 30)", navy.CentroidX, navy.CentroidY)
	}

	coral := stats[1]
	if coral.Count != 0 || coral.MeanSpeed != 0 {
		t.Errorf("empty group should have zero stats, got %+v", coral)
	}
}

func TestCollectorSingleParticle(t *testing.T) {
	w := testWorld(t)
	w.Groups[0].Particles = w.Groups[0].Particles[:1]

	stats := NewCollector().Groups(nil, 0, w)
	if math.IsNaN(stats[0].SpeedStdDev) {
		t.Error("stddev of one sample should not be NaN")
	}
}

func TestCollectorFrame(t *testing.T) {
	w := testWorld(t)
	f := NewCollector().Frame(3, w, 39.5, 41, 2*time.Millisecond)

	if f.ForceDistance != 50 || f.Particles != 2 || f.StepMillis != 2 {
		t.Errorf("unexpected frame record %+v", f)
	}
}

func TestStepTimer(t *testing.T) {
	st := NewStepTimer(4)
	if st.Avg() != 0 || st.StepsPerSecond() != 0 {
		t.Error("empty timer should report zero")
	}

	for _, d := range []time.Duration{10, 10, 10, 10, 20, 20, 20, 20} {
		st.Record(d * time.Millisecond)
	}
	if st.Avg() != 20*time.Millisecond {
		t.Errorf("avg = %v, want 20ms after window rolled", st.Avg())
	}
	if math.Abs(st.StepsPerSecond()-50) > 1e-9 {
		t.Errorf("steps per second = %v, want 50", st.StepsPerSecond())
	}
}

func TestOutputManager(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}

	w := testWorld(t)
	c := NewCollector()
	for frame := 0; frame < 3; frame++ {
		if err := om.WriteFrame(c.Frame(frame, w, 60, 60, time.Millisecond)); err != nil {
			t.Fatalf("WriteFrame: %v", err)
		}
		if err := om.WriteGroups(c.Groups(nil, frame, w)); err != nil {
			t.Fatalf("WriteGroups: %v", err)
		}
	}
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	if err := om.WriteConfig(cfg); err != nil {
		t.Fatalf("WriteConfig: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	frames, err := os.ReadFile(filepath.Join(dir, "frames.csv"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(frames)), "\n")
	if len(lines) != 4 {
		t.Fatalf("frames.csv has %d lines, want header + 3", len(lines))
	}
	if !strings.HasPrefix(lines[0], "frame,force_distance") {
		t.Errorf("unexpected header %q", lines[0])
	}

	groups, err := os.ReadFile(filepath.Join(dir, "groups.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(strings.TrimSpace(string(groups)), "\n"); n != 6 {
		t.Errorf("groups.csv has %d data lines, want 6", n)
	}
	if _, err := os.Stat(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("config snapshot missing: %v", err)
	}
}

func TestOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil || om != nil {
		t.Fatalf("expected nil manager, got %v, %v", om, err)
	}
	if err := om.WriteFrame(FrameStats{}); err != nil {
		t.Errorf("nil WriteFrame: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Errorf("nil Close: %v", err)
	}
}
