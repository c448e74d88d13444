package automaton

import (
	"sort"

	"github.com/ojrac/opensimplex-go"
)

// DefaultNoiseScale is the noise frequency in cycles per cell.
const DefaultNoiseScale = 0.15

// SeedNoise fills the lattice with clustered blobs instead of independent
// cells: cells whose 3D simplex noise value falls in the lowest
// densityPercent of the lattice are made alive, so the population is exactly
// round(densityPercent/100 * Len()). The noise field is seeded from the
// lattice RNG. Postconditions match Randomize.
func (l *Lattice) SeedNoise(densityPercent int, scale float64) {
	densityPercent = min(max(densityPercent, 0), 100)
	if scale <= 0 {
		scale = DefaultNoiseScale
	}

	noise := opensimplex.New(l.rng.Int64())
	values := make([]float64, len(l.alive))
	order := make([]int, len(l.alive))
	for idx := range values {
		c := l.CoordOf(idx)
		values[idx] = noise.Eval3(float64(c.I)*scale, float64(c.J)*scale, float64(c.K)*scale)
		order[idx] = idx
	}
	sort.SliceStable(order, func(a, b int) bool { return values[order[a]] < values[order[b]] })

	n := (densityPercent*len(l.alive) + 50) / 100
	for i := range l.alive {
		l.alive[i] = false
	}
	for _, idx := range order[:n] {
		l.alive[idx] = true
	}

	l.generation = 0
	l.last = StepStats{Alive: n}
	l.markAll()
	l.recolor(true)
}
