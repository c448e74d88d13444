package automaton

import "github.com/pkg/errors"

// VisibilitySource reports the presentation layer's view of a cell.
type VisibilitySource interface {
	Visible(c Coord) bool
}

// VisibilityFunc adapts a plain function to VisibilitySource.
type VisibilityFunc func(c Coord) bool

// Visible calls f(c).
func (f VisibilityFunc) Visible(c Coord) bool { return f(c) }

// Randomize makes each cell alive independently with probability
// densityPercent/100. Values outside [0,100] are clamped. Every cell is
// marked dirty and all hints are recomputed.
func (l *Lattice) Randomize(densityPercent int) {
	densityPercent = min(max(densityPercent, 0), 100)
	p := float64(densityPercent) / 100
	for i := range l.alive {
		l.alive[i] = l.rng.Float64() < p
	}
	l.generation = 0
	l.last = StepStats{Alive: l.Population()}
	l.markAll()
	l.recolor(true)
}

// Reset kills every cell and revives the centre. Every cell is marked dirty
// and all hints are recomputed.
func (l *Lattice) Reset() {
	for i := range l.alive {
		l.alive[i] = false
	}
	l.alive[l.Index(l.Center())] = true
	l.generation = 0
	l.last = StepStats{Alive: 1}
	l.markAll()
	l.recolor(true)
}

// SetCell sets the alive flag of a single cell and marks it dirty. Neighbours
// and hints are left alone.
//
// Call it only while the driver is not stepping. Out-of-bounds coordinates
// return ErrOutOfBounds and change nothing.
func (l *Lattice) SetCell(c Coord, alive bool) error {
	if !l.InBounds(c) {
		return errors.Wrapf(ErrOutOfBounds, "[SetCell] %v outside [0,%d)", c, l.dim)
	}
	idx := l.Index(c)
	l.alive[idx] = alive
	l.dirty[idx] = true
	return nil
}

// MatchVisuals overwrites every alive flag with the driver's visibility.
// Afterwards the lattice and the presentation agree, so all dirty flags are
// cleared.
func (l *Lattice) MatchVisuals(src VisibilitySource) {
	for idx := range l.alive {
		l.alive[idx] = src.Visible(l.CoordOf(idx))
		l.dirty[idx] = false
	}
	if l.mode == DensityBased {
		l.recolor(true)
	}
}
