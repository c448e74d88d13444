package telemetry

import (
	"math"
	"testing"

	"github.com/pthm-cable/life3d/automaton"
)

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestComputePopulationStats(t *testing.T) {
	mean, std, lo, p50, hi := ComputePopulationStats([]float64{5, 1, 3})
	if !approx(mean, 3) {
		t.Errorf("mean = %v, want 3", mean)
	}
	if !approx(std, math.Sqrt(8.0/3.0)) {
		t.Errorf("std = %v, want %v", std, math.Sqrt(8.0/3.0))
	}
	if lo != 1 || p50 != 3 || hi != 5 {
		t.Errorf("min/p50/max = %v/%v/%v, want 1/3/5", lo, p50, hi)
	}
}

func TestComputePopulationStatsEmpty(t *testing.T) {
	mean, std, lo, p50, hi := ComputePopulationStats(nil)
	if mean != 0 || std != 0 || lo != 0 || p50 != 0 || hi != 0 {
		t.Error("expected zeros for empty input")
	}
}

func TestNewGenerationRecord(t *testing.T) {
	r := NewGenerationRecord(automaton.StepStats{Generation: 4, Alive: 25, Births: 3, Deaths: 1}, 100, true)
	if r.Generation != 4 || r.Births != 3 || r.Deaths != 1 || !r.Stagnant {
		t.Errorf("unexpected record %+v", r)
	}
	if !approx(r.Density, 0.25) {
		t.Errorf("density = %v, want 0.25", r.Density)
	}
	if NewGenerationRecord(automaton.StepStats{Alive: 3}, 0, false).Density != 0 {
		t.Error("zero cells should give zero density")
	}
}

func TestCollectorWindows(t *testing.T) {
	c := NewCollector(3)
	alive := []int{10, 20, 30, 0}

	var got []WindowStats
	for i, a := range alive {
		ws, ok := c.Record(GenerationRecord{Generation: i + 1, Alive: a, Births: 2, Deaths: 1})
		if ok {
			got = append(got, ws)
		}
	}

	if len(got) != 1 {
		t.Fatalf("got %d windows, want 1", len(got))
	}
	ws := got[0]
	if ws.WindowStart != 1 || ws.WindowEnd != 3 {
		t.Errorf("window = [%d,%d], want [1,3]", ws.WindowStart, ws.WindowEnd)
	}
	if !approx(ws.AliveMean, 20) || ws.AliveMin != 10 || ws.AliveMax != 30 || ws.FinalLive != 30 {
		t.Errorf("population stats wrong: %+v", ws)
	}
	if ws.Births != 6 || ws.Deaths != 3 {
		t.Errorf("births/deaths = %d/%d, want 6/3", ws.Births, ws.Deaths)
	}
	if !approx(ws.Turnover, 9.0/60.0) {
		t.Errorf("turnover = %v, want %v", ws.Turnover, 9.0/60.0)
	}

	if c.Pending() != 1 {
		t.Fatalf("pending = %d, want 1", c.Pending())
	}
	tail := c.Flush()
	if tail.WindowStart != 4 || !tail.Extinct {
		t.Errorf("partial window = %+v, want start 4 and extinct", tail)
	}
	if c.Pending() != 0 {
		t.Error("Flush did not reset the window")
	}
}

func TestCollectorStagnantSticky(t *testing.T) {
	c := NewCollector(2)
	c.Record(GenerationRecord{Generation: 1, Alive: 1, Stagnant: true})
	ws, ok := c.Record(GenerationRecord{Generation: 2, Alive: 1})
	if !ok || !ws.Stagnant {
		t.Error("a stagnant generation should mark the whole window")
	}
	ws, _ = c.Record(GenerationRecord{Generation: 3, Alive: 1})
	ws, _ = c.Record(GenerationRecord{Generation: 4, Alive: 1})
	if ws.Stagnant {
		t.Error("stagnant flag leaked into the next window")
	}
}

func TestNewCollectorMinimumWindow(t *testing.T) {
	if NewCollector(0).Window() != 1 {
		t.Error("window should be floored at 1")
	}
}
