package main

import (
	"log/slog"
	"math"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/pthm-cable/life3d/config"
	"github.com/pthm-cable/life3d/session"
	"github.com/pthm-cable/life3d/telemetry"
)

// Densities outside this band count as dead or saturated.
const (
	minLiveDensity = 0.01
	maxLiveDensity = 0.60
)

// RunResult summarises one seeded run.
type RunResult struct {
	Lifetime int // generations before extinction, saturation or stagnation
	Window   telemetry.WindowStats
}

// Score rewards long-lived runs that keep changing. In [0, 2].
func (r RunResult) Score(maxGenerations int) float64 {
	if maxGenerations <= 0 {
		return 0
	}
	life := float64(r.Lifetime) / float64(maxGenerations)
	activity := math.Min(r.Window.Turnover, 1)
	return life * (1 + activity)
}

// FitnessEvaluator runs headless sessions and computes fitness.
type FitnessEvaluator struct {
	params         *ParamVector
	baseConfig     *config.Config
	maxGenerations int
	seeds          []int64
	log            *slog.Logger

	mu          sync.Mutex
	lastMean    float64
	lastResults []RunResult
}

// NewFitnessEvaluator creates an evaluator.
func NewFitnessEvaluator(params *ParamVector, baseCfg *config.Config, maxGenerations int, seeds []int64, logger *slog.Logger) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:         params,
		baseConfig:     baseCfg,
		maxGenerations: maxGenerations,
		seeds:          seeds,
		log:            logger,
	}
}

// LastLifetime returns the mean lifetime of the most recent evaluation.
func (fe *FitnessEvaluator) LastLifetime() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastMean
}

// Evaluate computes fitness for a raw parameter vector (lower = better).
func (fe *FitnessEvaluator) Evaluate(raw []float64) float64 {
	cand := fe.params.Decode(raw)
	cfg := *fe.baseConfig
	if err := cand.ApplyToConfig(&cfg); err != nil {
		fe.log.Warn("candidate rejected", "rules", cand.Rules.String(), "error", err)
		return 0
	}

	results := make([]RunResult, len(fe.seeds))
	var g errgroup.Group
	for i, seed := range fe.seeds {
		g.Go(func() error {
			r, err := fe.run(&cfg, seed)
			results[i] = r
			return err
		})
	}
	if err := g.Wait(); err != nil {
		fe.log.Warn("run failed", "rules", cand.Rules.String(), "error", err)
		return 0
	}

	var score, life float64
	for _, r := range results {
		score += r.Score(fe.maxGenerations)
		life += float64(r.Lifetime)
	}
	n := float64(len(results))

	fe.mu.Lock()
	fe.lastMean = life / n
	fe.lastResults = results
	fe.mu.Unlock()

	return -score / n
}

// run plays one seeded session until it dies, saturates, stagnates or hits
// the generation cap.
func (fe *FitnessEvaluator) run(cfg *config.Config, seed int64) (RunResult, error) {
	opts := session.OptionsFromConfig(cfg, seed)
	opts.RandomizeOnStart = true
	opts.StartRunning = true
	opts.Logger = fe.log
	sess, err := session.New(opts)
	if err != nil {
		return RunResult{}, err
	}

	cells := sess.Lattice().Len()
	collector := telemetry.NewCollector(fe.maxGenerations)
	lifetime := 0
	var ws telemetry.WindowStats
	full := false
	for gen := 0; gen < fe.maxGenerations; gen++ {
		stats := sess.Advance()
		rec := telemetry.NewGenerationRecord(stats, cells, sess.Stagnant())
		ws, full = collector.Record(rec)
		if rec.Density < minLiveDensity || rec.Density > maxLiveDensity || rec.Stagnant {
			break
		}
		lifetime++
	}

	if !full && collector.Pending() > 0 {
		ws = collector.Flush()
	}
	return RunResult{Lifetime: lifetime, Window: ws}, nil
}
