package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/life3d/automaton"
)

// GenerationRecord is one row of generations.csv.
type GenerationRecord struct {
	Generation int     `csv:"generation"`
	Alive      int     `csv:"alive"`
	Births     int     `csv:"births"`
	Deaths     int     `csv:"deaths"`
	Density    float64 `csv:"density"` // Alive fraction of all cells
	Stagnant   bool    `csv:"stagnant"`
}

// NewGenerationRecord builds a record from the lattice's last step.
func NewGenerationRecord(s automaton.StepStats, cells int, stagnant bool) GenerationRecord {
	var density float64
	if cells > 0 {
		density = float64(s.Alive) / float64(cells)
	}
	return GenerationRecord{
		Generation: s.Generation,
		Alive:      s.Alive,
		Births:     s.Births,
		Deaths:     s.Deaths,
		Density:    density,
		Stagnant:   stagnant,
	}
}

// LogValue implements slog.LogValuer for structured logging.
func (r GenerationRecord) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("generation", r.Generation),
		slog.Int("alive", r.Alive),
		slog.Int("births", r.Births),
		slog.Int("deaths", r.Deaths),
		slog.Float64("density", r.Density),
		slog.Bool("stagnant", r.Stagnant),
	)
}

// WindowStats holds aggregated statistics for a window of generations.
type WindowStats struct {
	WindowStart int `csv:"window_start"`
	WindowEnd   int `csv:"window_end"`

	// Population over the window
	AliveMean float64 `csv:"alive_mean"`
	AliveStd  float64 `csv:"alive_std"`
	AliveMin  float64 `csv:"alive_min"`
	AliveP50  float64 `csv:"alive_p50"`
	AliveMax  float64 `csv:"alive_max"`
	FinalLive int     `csv:"alive_final"`

	// Events during window
	Births int `csv:"births"`
	Deaths int `csv:"deaths"`

	// Turnover is (births+deaths) per live cell per generation.
	Turnover float64 `csv:"turnover"`

	Extinct  bool `csv:"extinct"`
	Stagnant bool `csv:"stagnant"`
}

// ComputePopulationStats returns mean, population standard deviation, min,
// median and max of the samples. All zeros for an empty slice.
func ComputePopulationStats(values []float64) (mean, std, lo, p50, hi float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0, 0
	}

	mean = stat.Mean(values, nil)
	std = stat.PopStdDev(values, nil)

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	lo = sorted[0]
	hi = sorted[len(sorted)-1]
	p50 = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	return mean, std, lo, p50, hi
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", s.WindowStart),
		slog.Int("window_end", s.WindowEnd),
		slog.Float64("alive_mean", s.AliveMean),
		slog.Float64("alive_std", s.AliveStd),
		slog.Float64("alive_min", s.AliveMin),
		slog.Float64("alive_p50", s.AliveP50),
		slog.Float64("alive_max", s.AliveMax),
		slog.Int("alive_final", s.FinalLive),
		slog.Int("births", s.Births),
		slog.Int("deaths", s.Deaths),
		slog.Float64("turnover", s.Turnover),
		slog.Bool("extinct", s.Extinct),
		slog.Bool("stagnant", s.Stagnant),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
