package automaton

import "math"

// ClassificationMode selects how a cell's color and opacity are derived.
type ClassificationMode int

const (
	// Rainbow colors cells by position only.
	Rainbow ClassificationMode = iota
	// DensityBased colors cells by their live-neighbour zone.
	DensityBased
)

func (m ClassificationMode) String() string {
	switch m {
	case Rainbow:
		return "rainbow"
	case DensityBased:
		return "density"
	default:
		return "unknown"
	}
}

// Zone is the density classification of a cell.
type Zone int

const (
	ZonePositional Zone = iota // Rainbow mode, no density zone
	ZoneGrowth
	ZoneSurvive
	ZoneDecaying
)

func (z Zone) String() string {
	switch z {
	case ZonePositional:
		return "positional"
	case ZoneGrowth:
		return "growth"
	case ZoneSurvive:
		return "survive"
	case ZoneDecaying:
		return "decaying"
	default:
		return "unknown"
	}
}

// Color is a linear RGB triple in [0,1].
type Color struct {
	R, G, B float32
}

// Hex builds a Color from a 0xRRGGBB value.
func Hex(v uint32) Color {
	return Color{
		R: float32((v>>16)&0xFF) / 255,
		G: float32((v>>8)&0xFF) / 255,
		B: float32(v&0xFF) / 255,
	}
}

// VisualHint tells the presentation layer how to draw a cell.
type VisualHint struct {
	Zone    Zone
	Color   Color
	Opacity float32
}

const (
	rainbowExponent = 0.75
	baseOpacity     = 0.75
	decayOpacity    = float32(1.0 / 3.0)
)

var (
	growthColor   = Hex(0xFF8888)
	surviveColor  = Hex(0x76BDFB)
	decayingColor = Hex(0x808080)
)

// Mode returns the active classification mode.
func (l *Lattice) Mode() ClassificationMode { return l.mode }

// SetClassificationMode switches modes and recomputes the hints of all cells.
func (l *Lattice) SetClassificationMode(mode ClassificationMode) {
	l.mode = mode
	l.recolor(true)
}

// Classify computes the hint of c from the current lattice. It is a pure
// function of the mode, the thresholds and the live neighbour count.
func (l *Lattice) Classify(c Coord) VisualHint {
	if l.mode == DensityBased {
		return l.rules.Zone(l.CountNeighbors(c))
	}
	return RainbowHint(c, l.dim)
}

// Hint returns the cached hint of c as of the last recolor.
func (l *Lattice) Hint(c Coord) VisualHint {
	if !l.InBounds(c) {
		return VisualHint{}
	}
	return l.hints[l.Index(c)]
}

// RainbowHint colors c by its normalized position raised to 0.75 per axis.
func RainbowHint(c Coord, dim int) VisualHint {
	d := float64(dim)
	return VisualHint{
		Zone: ZonePositional,
		Color: Color{
			R: float32(math.Pow(float64(c.I), rainbowExponent) / d),
			G: float32(math.Pow(float64(c.J), rainbowExponent) / d),
			B: float32(math.Pow(float64(c.K), rainbowExponent) / d),
		},
		Opacity: baseOpacity,
	}
}

// Zone classifies a neighbour count against the thresholds.
func (r Rules) Zone(neighbors int) VisualHint {
	switch {
	case r.Fertile(neighbors):
		return ZoneHint(ZoneGrowth)
	case r.Survive(neighbors):
		return ZoneHint(ZoneSurvive)
	default:
		return ZoneHint(ZoneDecaying)
	}
}

// ZoneHint returns the fixed colour and opacity of a density zone.
func ZoneHint(z Zone) VisualHint {
	switch z {
	case ZoneGrowth:
		return VisualHint{Zone: z, Color: growthColor, Opacity: baseOpacity}
	case ZoneSurvive:
		return VisualHint{Zone: z, Color: surviveColor, Opacity: baseOpacity}
	default:
		return VisualHint{Zone: ZoneDecaying, Color: decayingColor, Opacity: decayOpacity}
	}
}

// recolor refreshes the hint cache. Rainbow hints never change with state, so
// only a full pass recomputes them; in density mode a partial pass touches
// live cells only.
func (l *Lattice) recolor(all bool) {
	if l.mode == Rainbow && !all {
		return
	}
	for idx := range l.hints {
		if !all && !l.alive[idx] {
			continue
		}
		l.hints[idx] = l.Classify(l.CoordOf(idx))
	}
}
