package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/life3d/config"
	"github.com/pthm-cable/life3d/game"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output window and perf stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = lattice.seed from config, then time-based)")
	maxGenerations := flag.Int("max-generations", 0, "Stop after N generations (0 = unlimited)")
	rules := flag.String("rules", "", "Rule code overriding the config, e.g. 5766 or 4-5-10-12")
	dimension := flag.Int("dimension", 0, "Cells per axis (0 = use config)")
	stopOnStagnation := flag.Bool("stop-on-stagnation", false, "Headless: stop when the layout repeats")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	if *rules != "" || *dimension > 0 {
		if *rules != "" {
			cfg.Rules.Code = *rules
		}
		if *dimension > 0 {
			cfg.Lattice.Dimension = *dimension
		}
		if err := cfg.Finalize(); err != nil {
			slog.Error("invalid command line override", "error", err)
			os.Exit(1)
		}
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = cfg.Lattice.Seed
	}
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	// JSON to stdout when headless, readable text on stderr next to the window.
	var logger *slog.Logger
	if *headless {
		logger = slog.New(slog.NewJSONHandler(os.Stdout, nil))
	} else {
		logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}
	slog.SetDefault(logger)

	opts := game.Options{
		Seed:      rngSeed,
		LogStats:  *logStats,
		OutputDir: *outputDir,
		Headless:  *headless,
		Logger:    logger,
	}

	if *headless {
		g, err := game.NewGameWithOptions(cfg, opts)
		if err != nil {
			logger.Error("failed to start", "error", err)
			os.Exit(1)
		}
		defer g.Unload()

		logger.Info("starting headless simulation",
			"seed", rngSeed,
			"max_generations", *maxGenerations,
			"stop_on_stagnation", *stopOnStagnation,
		)

		for {
			stats := g.UpdateHeadless()

			if *maxGenerations > 0 && g.Generation() >= *maxGenerations {
				logger.Info("max generations reached", "generation", g.Generation())
				return
			}
			if stats.Alive == 0 {
				logger.Info("population extinct", "generation", stats.Generation)
				return
			}
			if *stopOnStagnation && g.Session().Stagnant() {
				logger.Info("layout stagnant", "generation", stats.Generation)
				return
			}
		}
	}

	// Graphical mode
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Life 3D")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g, err := game.NewGameWithOptions(cfg, opts)
	if err != nil {
		logger.Error("failed to start", "error", err)
		return
	}
	defer g.Unload()

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()

		if *maxGenerations > 0 && g.Generation() >= *maxGenerations {
			break
		}
	}
}
