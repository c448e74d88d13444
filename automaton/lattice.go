// Package automaton implements a generalized 3D Game of Life over a fixed
// cubic lattice.
//
// A Lattice is owned by a single driver. No method locks; callers serialize
// access. Every operation runs to completion before returning.
package automaton

import (
	"math/rand/v2"

	"github.com/pkg/errors"
)

// Coord addresses one cell of the lattice.
type Coord struct {
	I, J, K int
}

// CellState is the externally visible state of one cell.
type CellState struct {
	Alive bool
	Dirty bool
}

// Options configures a Lattice beyond its dimension and rules.
type Options struct {
	Dimension int
	Rules     Rules
	Mode      ClassificationMode

	// Seed feeds the PCG source used by Randomize.
	Seed int64

	// Workers > 1 spreads each Step over that many goroutines.
	Workers int
}

// StepStats summarizes the most recent generation.
type StepStats struct {
	Generation int `csv:"generation"`
	Alive      int `csv:"alive"`
	Births     int `csv:"births"`
	Deaths     int `csv:"deaths"`
}

// Lattice stores the cell states of a D x D x D automaton in flat buffers
// indexed i*D*D + j*D + k.
type Lattice struct {
	dim   int
	rules Rules
	mode  ClassificationMode

	alive []bool
	dirty []bool
	hints []VisualHint

	// snap is reused across steps to avoid an allocation per generation.
	snap Snapshot

	rng     *rand.Rand
	workers int

	generation int
	last       StepStats
}

// New constructs a lattice with the centre cell alive and every other cell
// dead.
func New(dimension int, rules Rules) (*Lattice, error) {
	return NewWithOptions(Options{Dimension: dimension, Rules: rules})
}

// NewWithOptions constructs a lattice from the full option set.
func NewWithOptions(opts Options) (*Lattice, error) {
	if opts.Dimension <= 0 {
		return nil, errors.Wrapf(ErrInvalidDimension, "[NewWithOptions] dimension %d", opts.Dimension)
	}
	if err := opts.Rules.Validate(); err != nil {
		return nil, err
	}
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}

	n := opts.Dimension * opts.Dimension * opts.Dimension
	l := &Lattice{
		dim:     opts.Dimension,
		rules:   opts.Rules,
		mode:    opts.Mode,
		alive:   make([]bool, n),
		dirty:   make([]bool, n),
		hints:   make([]VisualHint, n),
		snap:    Snapshot{dim: opts.Dimension, alive: make([]bool, n)},
		rng:     rand.New(rand.NewPCG(uint64(opts.Seed), 0)),
		workers: workers,
	}
	l.Reset()
	return l, nil
}

// Dimension returns the extent D of every axis.
func (l *Lattice) Dimension() int { return l.dim }

// Rules returns the thresholds fixed at construction.
func (l *Lattice) Rules() Rules { return l.rules }

// Len returns the number of cells, D^3.
func (l *Lattice) Len() int { return len(l.alive) }

// Center returns the cell that is alive after construction and Reset.
func (l *Lattice) Center() Coord {
	c := (l.dim - 1) / 2
	return Coord{c, c, c}
}

// InBounds reports whether every axis of c lies in [0,D).
func (l *Lattice) InBounds(c Coord) bool {
	return c.I >= 0 && c.I < l.dim &&
		c.J >= 0 && c.J < l.dim &&
		c.K >= 0 && c.K < l.dim
}

// Index returns the flat buffer index of an in-bounds coordinate.
func (l *Lattice) Index(c Coord) int { return (c.I*l.dim+c.J)*l.dim + c.K }

// CoordOf is the inverse of Index.
func (l *Lattice) CoordOf(idx int) Coord {
	d := l.dim
	return Coord{I: idx / (d * d), J: (idx / d) % d, K: idx % d}
}

// IsAlive reports the alive flag of c. Out-of-bounds coordinates are dead.
func (l *Lattice) IsAlive(c Coord) bool {
	if !l.InBounds(c) {
		return false
	}
	return l.alive[l.Index(c)]
}

// IsDirty reports whether c changed since its dirty flag was last cleared.
func (l *Lattice) IsDirty(c Coord) bool {
	if !l.InBounds(c) {
		return false
	}
	return l.dirty[l.Index(c)]
}

// ClearDirty clears the dirty flag of c.
func (l *Lattice) ClearDirty(c Coord) {
	if l.InBounds(c) {
		l.dirty[l.Index(c)] = false
	}
}

// Cell returns the alive and dirty flags of c.
func (l *Lattice) Cell(c Coord) CellState {
	return CellState{Alive: l.IsAlive(c), Dirty: l.IsDirty(c)}
}

// EachDirty calls fn for every dirty cell in index order and clears its flag.
func (l *Lattice) EachDirty(fn func(c Coord, alive bool)) {
	for idx, d := range l.dirty {
		if !d {
			continue
		}
		fn(l.CoordOf(idx), l.alive[idx])
		l.dirty[idx] = false
	}
}

// Population returns the number of live cells.
func (l *Lattice) Population() int {
	n := 0
	for _, a := range l.alive {
		if a {
			n++
		}
	}
	return n
}

// Generation returns the number of steps taken since construction or the
// last Reset / Randomize.
func (l *Lattice) Generation() int { return l.generation }

// LastStep returns the statistics of the most recent Step.
func (l *Lattice) LastStep() StepStats { return l.last }

// Snapshot returns an immutable copy of the current alive layout.
func (l *Lattice) Snapshot() Snapshot {
	s := Snapshot{dim: l.dim, alive: make([]bool, len(l.alive))}
	copy(s.alive, l.alive)
	return s
}

// AliveCells returns a copy of the flat alive buffer.
func (l *Lattice) AliveCells() []bool {
	out := make([]bool, len(l.alive))
	copy(out, l.alive)
	return out
}

func (l *Lattice) markAll() {
	for i := range l.dirty {
		l.dirty[i] = true
	}
}
