package telemetry

import (
	"log/slog"
	"time"
)

// Phase names for one frame of the driver loop.
const (
	PhaseInput     = "input"
	PhaseStep      = "step"
	PhasePick      = "pick"
	PhaseDraw      = "draw"
	PhaseTelemetry = "telemetry"
)

// Phases lists every phase in loop order.
var Phases = []string{PhaseInput, PhaseStep, PhasePick, PhaseDraw, PhaseTelemetry}

type perfSample struct {
	tick   time.Duration
	phases map[string]time.Duration
}

// PerfCollector keeps a ring of per-tick timings.
type PerfCollector struct {
	size    int
	ring    []perfSample
	next    int
	filled  int
	current map[string]time.Duration

	tickStart  time.Time
	phaseStart time.Time
	phase      string

	lastFrame time.Time
	frame     time.Duration
}

// NewPerfCollector creates a collector averaging over size ticks (60 if size < 1).
func NewPerfCollector(size int) *PerfCollector {
	if size < 1 {
		size = 60
	}
	return &PerfCollector{
		size:    size,
		ring:    make([]perfSample, size),
		current: make(map[string]time.Duration),
	}
}

// StartTick begins timing a new tick.
func (p *PerfCollector) StartTick() {
	p.tickStart = time.Now()
	p.current = make(map[string]time.Duration, len(Phases))
	p.phase = ""
}

// StartPhase closes the running phase, if any, and starts timing phase.
func (p *PerfCollector) StartPhase(phase string) {
	now := time.Now()
	p.closePhase(now)
	p.phaseStart = now
	p.phase = phase
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.phase != "" {
		p.current[p.phase] += now.Sub(p.phaseStart)
	}
}

// EndTick closes the running phase and stores the sample.
func (p *PerfCollector) EndTick() {
	now := time.Now()
	p.closePhase(now)
	p.phase = ""

	p.ring[p.next] = perfSample{tick: now.Sub(p.tickStart), phases: p.current}
	p.next = (p.next + 1) % p.size
	if p.filled < p.size {
		p.filled++
	}
}

// RecordFrame marks a rendered frame; the interval between calls drives FPS.
func (p *PerfCollector) RecordFrame() {
	now := time.Now()
	if !p.lastFrame.IsZero() {
		p.frame = now.Sub(p.lastFrame)
	}
	p.lastFrame = now
}

// Samples returns the number of ticks currently held.
func (p *PerfCollector) Samples() int { return p.filled }

// PerfStats holds aggregated timings over the collector window.
type PerfStats struct {
	AvgTick time.Duration
	MinTick time.Duration
	MaxTick time.Duration

	PhaseAvg map[string]time.Duration
	PhasePct map[string]float64 // share of AvgTick, 0..100

	TicksPerSecond float64

	FrameDuration time.Duration
	FPS           float64
}

// Stats aggregates the ring.
func (p *PerfCollector) Stats() PerfStats {
	out := PerfStats{
		PhaseAvg:      make(map[string]time.Duration),
		PhasePct:      make(map[string]float64),
		FrameDuration: p.frame,
	}
	if p.frame > 0 {
		out.FPS = float64(time.Second) / float64(p.frame)
	}
	if p.filled == 0 {
		return out
	}

	var total time.Duration
	sums := make(map[string]time.Duration)
	for i, s := range p.ring[:p.filled] {
		total += s.tick
		if i == 0 || s.tick < out.MinTick {
			out.MinTick = s.tick
		}
		out.MaxTick = max(out.MaxTick, s.tick)
		for phase, d := range s.phases {
			sums[phase] += d
		}
	}

	n := time.Duration(p.filled)
	out.AvgTick = total / n
	for phase, sum := range sums {
		avg := sum / n
		out.PhaseAvg[phase] = avg
		if out.AvgTick > 0 {
			out.PhasePct[phase] = float64(avg) / float64(out.AvgTick) * 100
		}
	}
	if out.AvgTick > 0 {
		out.TicksPerSecond = float64(time.Second) / float64(out.AvgTick)
	}
	return out
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_tick_us", s.AvgTick.Microseconds()),
		slog.Int64("min_tick_us", s.MinTick.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTick.Microseconds()),
		slog.Float64("ticks_per_sec", s.TicksPerSecond),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}
	for _, phase := range Phases {
		if pct, ok := s.PhasePct[phase]; ok && pct > 0.1 {
			attrs = append(attrs, slog.Float64(phase+"_pct", pct))
		}
	}
	return slog.GroupValue(attrs...)
}

// LogStats logs the stats using slog.
func (s PerfStats) LogStats() {
	slog.Info("perf", "perf", s)
}

// PerfRecord is one row of perf.csv.
type PerfRecord struct {
	Generation   int     `csv:"generation"`
	AvgTickUS    int64   `csv:"avg_tick_us"`
	MinTickUS    int64   `csv:"min_tick_us"`
	MaxTickUS    int64   `csv:"max_tick_us"`
	TicksPerSec  float64 `csv:"ticks_per_sec"`
	FPS          float64 `csv:"fps"`
	InputPct     float64 `csv:"input_pct"`
	StepPct      float64 `csv:"step_pct"`
	PickPct      float64 `csv:"pick_pct"`
	DrawPct      float64 `csv:"draw_pct"`
	TelemetryPct float64 `csv:"telemetry_pct"`
}

// Record flattens the stats for CSV export.
func (s PerfStats) Record(generation int) PerfRecord {
	return PerfRecord{
		Generation:   generation,
		AvgTickUS:    s.AvgTick.Microseconds(),
		MinTickUS:    s.MinTick.Microseconds(),
		MaxTickUS:    s.MaxTick.Microseconds(),
		TicksPerSec:  s.TicksPerSecond,
		FPS:          s.FPS,
		InputPct:     s.PhasePct[PhaseInput],
		StepPct:      s.PhasePct[PhaseStep],
		PickPct:      s.PhasePct[PhasePick],
		DrawPct:      s.PhasePct[PhaseDraw],
		TelemetryPct: s.PhasePct[PhaseTelemetry],
	}
}
