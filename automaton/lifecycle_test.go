package automaton

import (
	"errors"
	"math"
	"testing"
)

func TestSetCell(t *testing.T) {
	l := mustNew(t, 4, DefaultRules())
	l.EachDirty(func(Coord, bool) {})

	for idx := 0; idx < l.Len(); idx++ {
		c := l.CoordOf(idx)
		if err := l.SetCell(c, true); err != nil {
			t.Fatalf("SetCell(%v) failed: %v", c, err)
		}
		if !l.IsAlive(c) || !l.IsDirty(c) {
			t.Fatalf("%v: expected alive and dirty after SetCell", c)
		}
	}

	if err := l.SetCell(Coord{1, 1, 1}, false); err != nil {
		t.Fatal(err)
	}
	if l.IsAlive(Coord{1, 1, 1}) {
		t.Error("SetCell(false) left the cell alive")
	}
}

func TestSetCellOutOfBoundsIsNoOp(t *testing.T) {
	l := mustNew(t, 4, DefaultRules())
	l.EachDirty(func(Coord, bool) {})
	before := l.AliveCells()

	for _, c := range []Coord{{4, 0, 0}, {0, -1, 0}, {0, 0, 4}, {-1, -1, -1}, {100, 2, 2}} {
		err := l.SetCell(c, true)
		if !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("SetCell(%v) error = %v, want ErrOutOfBounds", c, err)
		}
	}

	after := l.AliveCells()
	for idx := range before {
		if before[idx] != after[idx] {
			t.Fatalf("cell %v changed after rejected SetCell", l.CoordOf(idx))
		}
		if l.IsDirty(l.CoordOf(idx)) {
			t.Fatalf("cell %v marked dirty after rejected SetCell", l.CoordOf(idx))
		}
	}
}

func TestResetIdempotent(t *testing.T) {
	l, err := NewWithOptions(Options{Dimension: 6, Rules: DefaultRules(), Seed: 3})
	if err != nil {
		t.Fatal(err)
	}
	l.Randomize(50)

	l.Reset()
	once := l.AliveCells()
	l.Reset()
	twice := l.AliveCells()

	for idx := range once {
		if once[idx] != twice[idx] {
			t.Fatalf("Reset not idempotent at %v", l.CoordOf(idx))
		}
	}
	alive := aliveCoords(l)
	if len(alive) != 1 || alive[0] != l.Center() {
		t.Errorf("after Reset live cells = %v, want only %v", alive, l.Center())
	}
	if l.Generation() != 0 {
		t.Errorf("Generation() = %d after Reset", l.Generation())
	}
}

func TestRandomizeBoundaries(t *testing.T) {
	l := mustNew(t, 6, DefaultRules())

	l.Randomize(0)
	if got := l.Population(); got != 0 {
		t.Errorf("Randomize(0) population = %d, want 0", got)
	}

	l.Randomize(100)
	if got := l.Population(); got != l.Len() {
		t.Errorf("Randomize(100) population = %d, want %d", got, l.Len())
	}

	// Clamped inputs behave like the nearest bound.
	l.Randomize(-20)
	if got := l.Population(); got != 0 {
		t.Errorf("Randomize(-20) population = %d, want 0", got)
	}
	l.Randomize(250)
	if got := l.Population(); got != l.Len() {
		t.Errorf("Randomize(250) population = %d, want %d", got, l.Len())
	}
}

func TestRandomizeDensityAndDirty(t *testing.T) {
	l, err := NewWithOptions(Options{Dimension: 20, Rules: DefaultRules(), Seed: 11})
	if err != nil {
		t.Fatal(err)
	}
	l.EachDirty(func(Coord, bool) {})
	l.Randomize(25)

	frac := float64(l.Population()) / float64(l.Len())
	if math.Abs(frac-0.25) > 0.05 {
		t.Errorf("live fraction %.3f far from 0.25", frac)
	}

	dirty := 0
	l.EachDirty(func(Coord, bool) { dirty++ })
	if dirty != l.Len() {
		t.Errorf("Randomize marked %d cells dirty, want all %d", dirty, l.Len())
	}
}

func TestRandomizeSeeded(t *testing.T) {
	opts := Options{Dimension: 6, Rules: DefaultRules(), Seed: 99}
	a, _ := NewWithOptions(opts)
	b, _ := NewWithOptions(opts)
	a.Randomize(40)
	b.Randomize(40)
	for idx := 0; idx < a.Len(); idx++ {
		c := a.CoordOf(idx)
		if a.IsAlive(c) != b.IsAlive(c) {
			t.Fatalf("same seed produced different layouts at %v", c)
		}
	}
}

func TestMatchVisualsOverwrites(t *testing.T) {
	l := mustNew(t, 3, DefaultRules())
	want := map[Coord]bool{{0, 0, 0}: true, {2, 1, 0}: true}
	l.MatchVisuals(VisibilityFunc(func(c Coord) bool { return want[c] }))

	for idx := 0; idx < l.Len(); idx++ {
		c := l.CoordOf(idx)
		if l.IsAlive(c) != want[c] {
			t.Errorf("%v: alive=%v, want %v", c, l.IsAlive(c), want[c])
		}
		if l.IsDirty(c) {
			t.Errorf("%v: dirty after MatchVisuals", c)
		}
	}
}
