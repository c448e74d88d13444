package automaton

import (
	"math"
	"testing"
)

func TestRainbowHint(t *testing.T) {
	h := RainbowHint(Coord{0, 8, 16}, 16)
	if h.Zone != ZonePositional || h.Opacity != 0.75 {
		t.Errorf("unexpected hint %+v", h)
	}
	wantG := math.Pow(8, 0.75) / 16
	wantB := math.Pow(16, 0.75) / 16
	if h.Color.R != 0 ||
		math.Abs(float64(h.Color.G)-wantG) > 1e-6 ||
		math.Abs(float64(h.Color.B)-wantB) > 1e-6 {
		t.Errorf("color = %+v, want (0, %.4f, %.4f)", h.Color, wantG, wantB)
	}
}

func TestRainbowIgnoresState(t *testing.T) {
	l := mustNew(t, 5, DefaultRules())
	c := Coord{1, 2, 3}
	before := l.Classify(c)
	l.Randomize(100)
	if after := l.Classify(c); after != before {
		t.Errorf("rainbow hint changed with state: %+v -> %+v", before, after)
	}
}

func TestRulesZone(t *testing.T) {
	r := Rules{FertileL: 2, FertileU: 3, SurviveL: 3, SurviveU: 5}

	tests := []struct {
		neighbors int
		zone      Zone
		opacity   float32
		color     Color
	}{
		{2, ZoneGrowth, 0.75, Hex(0xFF8888)},
		{3, ZoneGrowth, 0.75, Hex(0xFF8888)}, // overlap goes to growth
		{5, ZoneSurvive, 0.75, Hex(0x76BDFB)},
		{0, ZoneDecaying, 1.0 / 3.0, Hex(0x808080)},
		{26, ZoneDecaying, 1.0 / 3.0, Hex(0x808080)},
	}
	for _, tt := range tests {
		t.Run(tt.zone.String(), func(t *testing.T) {
			h := r.Zone(tt.neighbors)
			if h.Zone != tt.zone || h.Color != tt.color {
				t.Errorf("Zone(%d) = %+v, want zone %v color %+v", tt.neighbors, h, tt.zone, tt.color)
			}
			if math.Abs(float64(h.Opacity-tt.opacity)) > 1e-6 {
				t.Errorf("Zone(%d) opacity = %v, want %v", tt.neighbors, h.Opacity, tt.opacity)
			}
		})
	}
}

func TestHex(t *testing.T) {
	c := Hex(0xFF8000)
	if c.R != 1 || math.Abs(float64(c.G)-128.0/255) > 1e-6 || c.B != 0 {
		t.Errorf("Hex(0xFF8000) = %+v", c)
	}
}

func TestDensityClassifyDeterministic(t *testing.T) {
	l, err := NewWithOptions(Options{Dimension: 7, Rules: DefaultRules(), Seed: 5, Mode: DensityBased})
	if err != nil {
		t.Fatal(err)
	}
	l.Randomize(40)

	for idx := 0; idx < l.Len(); idx++ {
		c := l.CoordOf(idx)
		first := l.Classify(c)
		second := l.Classify(c)
		if first != second {
			t.Fatalf("%v: consecutive Classify calls differ: %+v vs %+v", c, first, second)
		}
		if want := l.Rules().Zone(l.CountNeighbors(c)); first != want {
			t.Fatalf("%v: Classify = %+v, want %+v", c, first, want)
		}
	}
}

func TestModeSwitchRecolorsAllCells(t *testing.T) {
	l := mustNew(t, 4, Rules{FertileL: 0, FertileU: 0, SurviveL: 1, SurviveU: 1})
	if l.Hint(Coord{0, 0, 0}).Zone != ZonePositional {
		t.Fatal("new lattice should start with rainbow hints")
	}

	l.SetClassificationMode(DensityBased)
	for idx := 0; idx < l.Len(); idx++ {
		c := l.CoordOf(idx)
		if got, want := l.Hint(c), l.Classify(c); got != want {
			t.Fatalf("%v: cached hint %+v, want %+v", c, got, want)
		}
	}
	// (3,3,3) has no live neighbours: fertile zone.
	if l.Hint(Coord{3, 3, 3}).Zone != ZoneGrowth {
		t.Errorf("far cell zone = %v, want growth", l.Hint(Coord{3, 3, 3}).Zone)
	}
	// (0,0,0) touches the centre: survive zone.
	if l.Hint(Coord{0, 0, 0}).Zone != ZoneSurvive {
		t.Errorf("corner zone = %v, want survive", l.Hint(Coord{0, 0, 0}).Zone)
	}

	l.SetClassificationMode(Rainbow)
	for idx := 0; idx < l.Len(); idx++ {
		c := l.CoordOf(idx)
		if l.Hint(c) != RainbowHint(c, l.Dimension()) {
			t.Fatalf("%v: hint not reset to rainbow", c)
		}
	}
}

func TestStepRecolorsLiveCellsInDensityMode(t *testing.T) {
	l, err := NewWithOptions(Options{Dimension: 6, Rules: DefaultRules(), Seed: 2, Mode: DensityBased})
	if err != nil {
		t.Fatal(err)
	}
	l.Randomize(35)
	l.Step()
	for idx := 0; idx < l.Len(); idx++ {
		c := l.CoordOf(idx)
		if !l.IsAlive(c) {
			continue
		}
		if got, want := l.Hint(c), l.Classify(c); got != want {
			t.Fatalf("%v: live cell hint %+v stale, want %+v", c, got, want)
		}
	}
}
