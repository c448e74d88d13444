package automaton

import "golang.org/x/sync/errgroup"

// slabCounts carries per-slab birth/death tallies out of a parallel step.
type slabCounts struct {
	births, deaths, alive int
}

// Step advances the lattice by exactly one generation.
//
// The alive layout is copied first and every cell is evaluated against that
// copy, then alive and dirty are written into the live buffers.
func (l *Lattice) Step() {
	copy(l.snap.alive, l.alive)

	var total slabCounts
	if l.workers <= 1 || l.dim < 2 {
		total = l.stepSlab(0, l.dim)
	} else {
		total = l.stepParallel()
	}

	l.generation++
	l.last = StepStats{
		Generation: l.generation,
		Alive:      total.alive,
		Births:     total.births,
		Deaths:     total.deaths,
	}

	if l.mode == DensityBased {
		l.recolor(false)
	}
}

// stepParallel splits the i axis into contiguous slabs. Each slab writes only
// its own indices and reads only the shared snapshot.
func (l *Lattice) stepParallel() slabCounts {
	var (
		eg          errgroup.Group
		numWorkers  = min(l.workers, l.dim)
		planesEach  = (l.dim + numWorkers - 1) / numWorkers
		slabResults = make([]slabCounts, numWorkers)
	)

	for w := range numWorkers {
		var (
			start = w * planesEach
			end   = min(start+planesEach, l.dim)
		)
		if start >= l.dim {
			break
		}
		eg.Go(func() error {
			slabResults[w] = l.stepSlab(start, end)
			return nil
		})
	}
	// Workers never fail.
	_ = eg.Wait()

	var total slabCounts
	for _, r := range slabResults {
		total.births += r.births
		total.deaths += r.deaths
		total.alive += r.alive
	}
	return total
}

// stepSlab applies the transition rule to planes [iStart, iEnd).
func (l *Lattice) stepSlab(iStart, iEnd int) slabCounts {
	var out slabCounts
	d := l.dim
	for i := iStart; i < iEnd; i++ {
		for j := 0; j < d; j++ {
			for k := 0; k < d; k++ {
				idx := (i*d+j)*d + k
				prior := l.snap.alive[idx]
				alive, dirty := l.rules.NextState(l.snap.CountNeighbors(Coord{i, j, k}), prior)
				l.alive[idx] = alive
				l.dirty[idx] = dirty
				if alive {
					out.alive++
				}
				if dirty {
					if alive {
						out.births++
					} else {
						out.deaths++
					}
				}
			}
		}
	}
	return out
}
