// Command rulesearch uses CMA-ES to look for birth/survival thresholds whose
// runs stay alive and active the longest.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/life3d/config"
)

// EvalRecord is one row of evaluations.csv.
type EvalRecord struct {
	Eval         int     `csv:"eval"`
	Fitness      float64 `csv:"fitness"`
	Rules        string  `csv:"rules"`
	SurviveL     int     `csv:"survive_l"`
	SurviveU     int     `csv:"survive_u"`
	FertileL     int     `csv:"fertile_l"`
	FertileU     int     `csv:"fertile_u"`
	Density      int     `csv:"density"`
	MeanLifetime float64 `csv:"mean_lifetime"`
}

// formatDuration formats a duration as 1h02m03s or 2m03s.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second
	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

func main() {
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	maxGenerations := flag.Int("max-generations", 200, "Generations per run (cap)")
	dimension := flag.Int("dimension", 16, "Cells per axis for search runs")
	seeds := flag.Int("seeds", 3, "Number of seeds per evaluation")
	maxEvals := flag.Int("max-evals", 150, "Maximum number of evaluations")
	population := flag.Int("population", 0, "CMA-ES population size (0 = auto)")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	if *outputDir == "" {
		logger.Error("--output is required")
		os.Exit(2)
	}
	if err := run(*configPath, *outputDir, *maxGenerations, *dimension, *seeds, *maxEvals, *population, logger); err != nil {
		logger.Error("rule search failed", "error", err)
		os.Exit(1)
	}
}

func run(configPath, outputDir string, maxGenerations, dimension, nSeeds, maxEvals, population int, logger *slog.Logger) error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	baseCfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	baseCfg.Lattice.Dimension = dimension
	if err := baseCfg.Finalize(); err != nil {
		return err
	}

	params := NewParamVector()
	evalSeeds := make([]int64, nSeeds)
	for i := range evalSeeds {
		evalSeeds[i] = int64(i*1000 + 42)
	}
	// Search runs are chatty at info level; keep only warnings from sessions.
	quiet := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	evaluator := NewFitnessEvaluator(params, baseCfg, maxGenerations, evalSeeds, quiet)

	popSize := population
	if popSize == 0 {
		popSize = 4 + int(3*math.Log(float64(params.Dim())))
	}

	logFile, err := os.Create(filepath.Join(outputDir, "evaluations.csv"))
	if err != nil {
		return fmt.Errorf("creating evaluations.csv: %w", err)
	}
	defer logFile.Close()

	evalCount := 0
	bestFitness := math.Inf(1)
	var best Candidate
	start := time.Now()

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			raw := params.Denormalize(x)
			fitness := evaluator.Evaluate(raw)
			cand := params.Decode(raw)
			evalCount++

			if fitness < bestFitness {
				bestFitness = fitness
				best = cand
			}

			rec := []EvalRecord{{
				Eval:         evalCount,
				Fitness:      fitness,
				Rules:        cand.Rules.String(),
				SurviveL:     cand.Rules.SurviveL,
				SurviveU:     cand.Rules.SurviveU,
				FertileL:     cand.Rules.FertileL,
				FertileU:     cand.Rules.FertileU,
				Density:      cand.Density,
				MeanLifetime: evaluator.LastLifetime(),
			}}
			var werr error
			if evalCount == 1 {
				werr = gocsv.Marshal(rec, logFile)
			} else {
				werr = gocsv.MarshalWithoutHeaders(rec, logFile)
			}
			if werr != nil {
				logger.Error("failed to write evaluation", "error", werr)
			}

			elapsed := time.Since(start)
			remaining := time.Duration(maxEvals-evalCount) * (elapsed / time.Duration(evalCount))
			logger.Info("eval",
				"n", evalCount,
				"rules", cand.Rules.String(),
				"density", cand.Density,
				"fitness", fitness,
				"best", bestFitness,
				"elapsed", formatDuration(elapsed),
				"eta", formatDuration(remaining),
			)
			return fitness
		},
	}

	settings := &optimize.Settings{FuncEvaluations: maxEvals}
	method := &optimize.CmaEsChol{InitStepSize: 0.3, Population: popSize}

	logger.Info("starting CMA-ES",
		"params", params.Dim(), "population", popSize, "max_evals", maxEvals,
		"seeds", nSeeds, "max_generations", maxGenerations, "dimension", dimension)

	initX := params.Normalize(params.DefaultVector())
	if _, err := optimize.Minimize(problem, initX, settings, method); err != nil {
		logger.Info("optimization ended", "reason", err)
	}
	if evalCount == 0 {
		return fmt.Errorf("no evaluations ran")
	}

	logger.Info("search complete",
		"evals", evalCount,
		"elapsed", formatDuration(time.Since(start)),
		"best_rules", best.Rules.String(),
		"best_density", best.Density,
		"best_fitness", bestFitness,
	)

	bestCfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := best.ApplyToConfig(bestCfg); err != nil {
		return err
	}
	out := filepath.Join(outputDir, "best_config.yaml")
	if err := bestCfg.WriteYAML(out); err != nil {
		return err
	}
	logger.Info("best config saved", "path", out)
	return nil
}
