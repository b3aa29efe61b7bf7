package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/olivierh59500/particle-life-groups/config"
	"github.com/olivierh59500/particle-life-groups/game"
	"github.com/olivierh59500/particle-life-groups/sim"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output diagnostics via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV diagnostics and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	debug := flag.Bool("debug", false, "Enable debug logging")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	// Invalid configuration stops here, before any window exists
	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	opts := sim.Options{
		Seed:      rngSeed,
		OutputDir: *outputDir,
		LogStats:  *logStats || *headless,
	}
	if err := run(cfg, opts, *headless, *maxTicks); err != nil {
		slog.Error("simulation failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, opts sim.Options, headless bool, maxTicks int) error {
	runner, err := sim.NewRunner(cfg, opts)
	if err != nil {
		return err
	}
	defer func() {
		if err := runner.Close(); err != nil {
			slog.Warn("closing output", "error", err)
		}
	}()

	if headless {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return sim.RunHeadless(ctx, runner, maxTicks)
	}

	ebiten.SetWindowSize(cfg.Screen.Width, cfg.Screen.Height)
	ebiten.SetWindowTitle("Particle Life")
	ebiten.SetTPS(cfg.Screen.TargetTPS)

	g := game.New(cfg, runner)
	g.MaxTicks = maxTicks
	return ebiten.RunGame(g)
}
