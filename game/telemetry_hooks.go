package game

import "github.com/pthm-cable/life3d/telemetry"

// recordGeneration writes the generation that just ran and flushes the stats
// window when it fills.
func (g *Game) recordGeneration() {
	l := g.sess.Lattice()
	rec := telemetry.NewGenerationRecord(l.LastStep(), l.Len(), g.sess.Stagnant())

	if err := g.output.WriteGeneration(rec); err != nil {
		g.log.Error("failed to write generation", "error", err)
	}

	if ws, ok := g.collector.Record(rec); ok {
		g.flushWindow(ws)
	}
}

func (g *Game) flushWindow(ws telemetry.WindowStats) {
	perfStats := g.perf.Stats()

	if g.logStats {
		g.log.Info("stats", "window", ws)
		g.log.Info("perf", "perf", perfStats)
	}

	if err := g.output.WriteWindow(ws); err != nil {
		g.log.Error("failed to write window stats", "error", err)
	}
	if err := g.output.WritePerf(perfStats, ws.WindowEnd); err != nil {
		g.log.Error("failed to write perf", "error", err)
	}

	if ws.Extinct {
		g.log.Warn("population extinct", "generation", ws.WindowEnd)
	}
}
