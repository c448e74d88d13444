package camera

import (
	"math"

	"github.com/pthm-cable/life3d/automaton"
)

// Grid maps a D×D×D lattice onto a cube of side Extent centred on the
// origin. Axis I runs along X, J along Y, K along Z.
type Grid struct {
	Dim    int
	Extent float32
}

// CellSize returns the edge length of one cell.
func (g Grid) CellSize() float32 { return g.Extent / float32(g.Dim) }

// Min returns the cube corner with the smallest coordinates.
func (g Grid) Min() Vec3 {
	h := -g.Extent / 2
	return Vec3{h, h, h}
}

// CellCenter returns the world position of the centre of c.
func (g Grid) CellCenter(c automaton.Coord) Vec3 {
	s := g.CellSize()
	m := g.Min()
	return Vec3{
		X: m.X + (float32(c.I)+0.5)*s,
		Y: m.Y + (float32(c.J)+0.5)*s,
		Z: m.Z + (float32(c.K)+0.5)*s,
	}
}

func (g Grid) inBounds(p [3]int) bool {
	for _, v := range p {
		if v < 0 || v >= g.Dim {
			return false
		}
	}
	return true
}

// Hit is the result of a successful pick.
type Hit struct {
	// Cell is the occupied cell the ray struck.
	Cell automaton.Coord
	// Adjacent is the neighbour across the struck face. It may lie outside
	// the lattice when the face is on the boundary.
	Adjacent automaton.Coord
	// Normal is the unit axis offset from Cell to Adjacent.
	Normal automaton.Coord
}

// PickVoxel walks the ray through the grid one cell at a time and returns
// the first cell for which occupied reports true.
func PickVoxel(g Grid, origin, dir Vec3, occupied func(automaton.Coord) bool) (Hit, bool) {
	if g.Dim <= 0 || g.Extent <= 0 || dir.Len() == 0 {
		return Hit{}, false
	}
	tEnter, entryAxis, ok := g.intersect(origin, dir)
	if !ok {
		return Hit{}, false
	}

	s := g.CellSize()
	m := g.Min()
	p := origin.Add(dir.Scale(tEnter))

	var cell, step [3]int
	var tMax, tDelta [3]float32
	for a := 0; a < 3; a++ {
		rel := (p.Axis(a) - m.Axis(a)) / s
		cell[a] = min(max(int(math.Floor(float64(rel))), 0), g.Dim-1)

		d := dir.Axis(a)
		switch {
		case d > 0:
			step[a] = 1
			next := m.Axis(a) + float32(cell[a]+1)*s
			tMax[a] = tEnter + (next-p.Axis(a))/d
			tDelta[a] = s / d
		case d < 0:
			step[a] = -1
			next := m.Axis(a) + float32(cell[a])*s
			tMax[a] = tEnter + (next-p.Axis(a))/d
			tDelta[a] = -s / d
		default:
			tMax[a] = float32(math.Inf(1))
			tDelta[a] = float32(math.Inf(1))
		}
	}

	// The face we entered through. From inside the cube, fall back to the
	// face opposing the dominant direction.
	var normal [3]int
	if entryAxis < 0 {
		entryAxis = dominantAxis(dir)
	}
	normal[entryAxis] = -sign(dir.Axis(entryAxis))

	for g.inBounds(cell) {
		c := toCoord(cell)
		if occupied(c) {
			adj := [3]int{cell[0] + normal[0], cell[1] + normal[1], cell[2] + normal[2]}
			return Hit{Cell: c, Adjacent: toCoord(adj), Normal: toCoord(normal)}, true
		}

		a := 0
		if tMax[1] < tMax[a] {
			a = 1
		}
		if tMax[2] < tMax[a] {
			a = 2
		}
		cell[a] += step[a]
		tMax[a] += tDelta[a]
		normal = [3]int{}
		normal[a] = -step[a]
	}
	return Hit{}, false
}

// intersect clips the ray against the grid cube (slab method). It returns
// the entry distance and the axis of the entry face, or -1 when the origin
// is already inside.
func (g Grid) intersect(origin, dir Vec3) (float32, int, bool) {
	lo := g.Min()
	hi := Vec3{-lo.X, -lo.Y, -lo.Z}

	tNear := float32(math.Inf(-1))
	tFar := float32(math.Inf(1))
	axis := -1
	for a := 0; a < 3; a++ {
		o, d := origin.Axis(a), dir.Axis(a)
		if d == 0 {
			if o < lo.Axis(a) || o > hi.Axis(a) {
				return 0, -1, false
			}
			continue
		}
		t1 := (lo.Axis(a) - o) / d
		t2 := (hi.Axis(a) - o) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tNear {
			tNear = t1
			axis = a
		}
		tFar = min(tFar, t2)
	}
	if tNear > tFar || tFar < 0 {
		return 0, -1, false
	}
	if tNear < 0 {
		return 0, -1, true
	}
	return tNear, axis, true
}

func dominantAxis(v Vec3) int {
	a := 0
	for i := 1; i < 3; i++ {
		if abs32(v.Axis(i)) > abs32(v.Axis(a)) {
			a = i
		}
	}
	return a
}

func sign(x float32) int {
	if x < 0 {
		return -1
	}
	return 1
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func toCoord(p [3]int) automaton.Coord {
	return automaton.Coord{I: p[0], J: p[1], K: p[2]}
}
