package telemetry

import (
	"testing"
	"time"
)

func TestPerfCollectorPhases(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseStep)
		time.Sleep(2 * time.Millisecond)
		pc.StartPhase(PhasePick)
		time.Sleep(20 * time.Microsecond)
		pc.EndTick()
	}

	stats := pc.Stats()
	if stats.AvgTick <= 0 {
		t.Fatal("expected positive average tick duration")
	}
	if stats.MinTick > stats.AvgTick || stats.AvgTick > stats.MaxTick {
		t.Errorf("min/avg/max out of order: %v/%v/%v", stats.MinTick, stats.AvgTick, stats.MaxTick)
	}
	if _, ok := stats.PhaseAvg[PhaseStep]; !ok {
		t.Error("step phase not tracked")
	}
	if stats.PhasePct[PhaseStep] <= stats.PhasePct[PhasePick] {
		t.Errorf("step (%.1f%%) should dominate pick (%.1f%%)",
			stats.PhasePct[PhaseStep], stats.PhasePct[PhasePick])
	}
	if stats.TicksPerSecond <= 0 {
		t.Error("expected positive throughput")
	}
}

func TestPerfCollectorRingBounded(t *testing.T) {
	pc := NewPerfCollector(4)
	for i := 0; i < 9; i++ {
		pc.StartTick()
		pc.EndTick()
	}
	if pc.Samples() != 4 {
		t.Errorf("samples = %d, want 4", pc.Samples())
	}
}

func TestPerfCollectorEmpty(t *testing.T) {
	stats := NewPerfCollector(0).Stats()
	if stats.AvgTick != 0 || stats.PhaseAvg == nil || stats.PhasePct == nil {
		t.Errorf("unexpected empty stats %+v", stats)
	}
}

func TestPerfCollectorFrames(t *testing.T) {
	pc := NewPerfCollector(1)
	pc.RecordFrame()
	time.Sleep(2 * time.Millisecond)
	pc.RecordFrame()
	if fps := pc.Stats().FPS; fps <= 0 || fps > 1000 {
		t.Errorf("fps = %v, want (0,1000]", fps)
	}
}

func TestPerfRecordFlattensPhases(t *testing.T) {
	s := PerfStats{
		AvgTick:  1500 * time.Microsecond,
		PhasePct: map[string]float64{PhaseStep: 60, PhaseDraw: 40},
	}
	r := s.Record(12)
	if r.Generation != 12 || r.AvgTickUS != 1500 || r.StepPct != 60 || r.DrawPct != 40 || r.PickPct != 0 {
		t.Errorf("unexpected record %+v", r)
	}
}
