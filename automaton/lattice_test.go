package automaton

import (
	"errors"
	"testing"
)

func mustNew(t *testing.T, dim int, rules Rules) *Lattice {
	t.Helper()
	l, err := New(dim, rules)
	if err != nil {
		t.Fatalf("New(%d, %+v) failed: %v", dim, rules, err)
	}
	return l
}

func aliveCoords(l *Lattice) []Coord {
	var out []Coord
	for idx := 0; idx < l.Len(); idx++ {
		c := l.CoordOf(idx)
		if l.IsAlive(c) {
			out = append(out, c)
		}
	}
	return out
}

func TestNewSingleCenterCell(t *testing.T) {
	for _, dim := range []int{1, 2, 3, 4, 5, 10, 25} {
		l := mustNew(t, dim, DefaultRules())
		alive := aliveCoords(l)
		c := (dim - 1) / 2
		if len(alive) != 1 {
			t.Fatalf("D=%d: expected 1 live cell, got %d", dim, len(alive))
		}
		if alive[0] != (Coord{c, c, c}) {
			t.Errorf("D=%d: live cell at %v, want (%d,%d,%d)", dim, alive[0], c, c, c)
		}
	}
}

func TestNewRejectsDegenerateParameters(t *testing.T) {
	tests := []struct {
		name  string
		dim   int
		rules Rules
		want  error
	}{
		{"zero dimension", 0, DefaultRules(), ErrInvalidDimension},
		{"negative dimension", -3, DefaultRules(), ErrInvalidDimension},
		{"fertile decreasing", 5, Rules{FertileL: 4, FertileU: 3, SurviveL: 1, SurviveU: 2}, ErrInvalidRules},
		{"survive above 26", 5, Rules{FertileL: 1, FertileU: 2, SurviveL: 20, SurviveU: 27}, ErrInvalidRules},
		{"negative threshold", 5, Rules{FertileL: -1, FertileU: 2, SurviveL: 1, SurviveU: 2}, ErrInvalidRules},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(tt.dim, tt.rules)
			if l != nil {
				t.Error("expected nil lattice")
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("got error %v, want %v", err, tt.want)
			}
		})
	}
}

func TestIndexRoundtrip(t *testing.T) {
	l := mustNew(t, 4, DefaultRules())
	for idx := 0; idx < l.Len(); idx++ {
		if got := l.Index(l.CoordOf(idx)); got != idx {
			t.Fatalf("Index(CoordOf(%d)) = %d", idx, got)
		}
	}
	if got := l.Index(Coord{1, 2, 3}); got != 1*16+2*4+3 {
		t.Errorf("Index(1,2,3) = %d, want %d", got, 1*16+2*4+3)
	}
}

func TestOutOfBoundsReadsAreDead(t *testing.T) {
	l := mustNew(t, 3, DefaultRules())
	for _, c := range []Coord{{-1, 0, 0}, {0, 3, 0}, {0, 0, 99}} {
		if l.IsAlive(c) || l.IsDirty(c) {
			t.Errorf("%v: expected dead and clean", c)
		}
		l.ClearDirty(c) // must not panic
	}
}

func TestEachDirtyClearsFlags(t *testing.T) {
	l := mustNew(t, 3, DefaultRules())

	// Construction marks every cell for a full presentation sync.
	seen := 0
	live := 0
	l.EachDirty(func(c Coord, alive bool) {
		seen++
		if alive {
			live++
		}
	})
	if seen != 27 || live != 1 {
		t.Fatalf("first sync saw %d cells (%d alive), want 27 (1 alive)", seen, live)
	}

	l.EachDirty(func(Coord, bool) { t.Fatal("dirty flags survived EachDirty") })
}

func TestSnapshotIsIndependent(t *testing.T) {
	l := mustNew(t, 3, DefaultRules())
	snap := l.Snapshot()
	if err := l.SetCell(Coord{0, 0, 0}, true); err != nil {
		t.Fatal(err)
	}
	if snap.Alive(Coord{0, 0, 0}) {
		t.Error("snapshot observed a later mutation")
	}
}
