package automaton

// Snapshot is a frozen copy of a lattice's alive layout. Step evaluates every
// cell against one Snapshot so no cell sees a neighbour's updated value.
type Snapshot struct {
	dim   int
	alive []bool
}

// NewSnapshot wraps a flat alive buffer of length dim^3. The buffer is not
// copied.
func NewSnapshot(dim int, alive []bool) Snapshot {
	return Snapshot{dim: dim, alive: alive}
}

// Dimension returns the extent of the snapshot.
func (s Snapshot) Dimension() int { return s.dim }

// Alive reports whether c is alive in the snapshot. Coordinates outside
// [0,D) are absent and read as dead.
func (s Snapshot) Alive(c Coord) bool {
	d := s.dim
	if c.I < 0 || c.I >= d || c.J < 0 || c.J >= d || c.K < 0 || c.K >= d {
		return false
	}
	return s.alive[(c.I*d+c.J)*d+c.K]
}

// CountNeighbors counts live cells in the 3x3x3 block around c, excluding c.
// Offsets outside [0,D) are skipped, not wrapped, so boundary cells have
// fewer than 26 candidates.
func (s Snapshot) CountNeighbors(c Coord) int {
	d := s.dim
	minI, maxI := max(0, c.I-1), min(d-1, c.I+1)
	minJ, maxJ := max(0, c.J-1), min(d-1, c.J+1)
	minK, maxK := max(0, c.K-1), min(d-1, c.K+1)

	count := 0
	for i := minI; i <= maxI; i++ {
		for j := minJ; j <= maxJ; j++ {
			row := (i*d + j) * d
			for k := minK; k <= maxK; k++ {
				if i == c.I && j == c.J && k == c.K {
					continue
				}
				if s.alive[row+k] {
					count++
				}
			}
		}
	}
	return count
}

// Candidates returns how many in-bounds neighbour positions c has.
func (s Snapshot) Candidates(c Coord) int {
	span := func(v int) int { return min(s.dim-1, v+1) - max(0, v-1) + 1 }
	return span(c.I)*span(c.J)*span(c.K) - 1
}

// CountNeighbors counts the live neighbours of c on the current lattice.
func (l *Lattice) CountNeighbors(c Coord) int {
	return Snapshot{dim: l.dim, alive: l.alive}.CountNeighbors(c)
}
