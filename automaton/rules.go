package automaton

import (
	"fmt"
	"strconv"

	"github.com/pkg/errors"
)

// MaxNeighbors is the size of the 3x3x3 neighbourhood minus its centre.
const MaxNeighbors = 26

// Rules holds the birth/survival thresholds of the automaton.
// Both windows are inclusive and may overlap; the fertile window wins.
type Rules struct {
	FertileL int `yaml:"fertile_l"`
	FertileU int `yaml:"fertile_u"`
	SurviveL int `yaml:"survive_l"`
	SurviveU int `yaml:"survive_u"`
}

// DefaultRules returns the thresholds the viewer ships with (code "5766").
func DefaultRules() Rules {
	return Rules{SurviveL: 5, SurviveU: 7, FertileL: 6, FertileU: 6}
}

// Validate reports whether both windows are non-decreasing and within [0,26].
func (r Rules) Validate() error {
	check := func(name string, lo, hi int) error {
		if lo < 0 || hi > MaxNeighbors || lo > hi {
			return errors.Wrapf(ErrInvalidRules, "[Rules.Validate] %s window [%d,%d]", name, lo, hi)
		}
		return nil
	}
	if err := check("fertile", r.FertileL, r.FertileU); err != nil {
		return err
	}
	return check("survive", r.SurviveL, r.SurviveU)
}

// Fertile reports whether n lies in the fertile window.
func (r Rules) Fertile(n int) bool { return n >= r.FertileL && n <= r.FertileU }

// Survive reports whether n lies in the survive window.
func (r Rules) Survive(n int) bool { return n >= r.SurviveL && n <= r.SurviveU }

// NextState applies the transition rule to a single cell.
//
// Priority order: fertile window -> alive, survive window -> unchanged,
// anything else -> dead. dirty is true when the state changed.
func (r Rules) NextState(neighbors int, prior bool) (alive, dirty bool) {
	switch {
	case r.Fertile(neighbors):
		alive = true
	case r.Survive(neighbors):
		alive = prior
	default:
		alive = false
	}
	return alive, alive != prior
}

// String renders the rules in the compact code form accepted by ParseRules.
// Thresholds above 9 fall back to a dash-separated form.
func (r Rules) String() string {
	vals := [4]int{r.SurviveL, r.SurviveU, r.FertileL, r.FertileU}
	short := true
	for _, v := range vals {
		if v > 9 {
			short = false
		}
	}
	if short {
		return fmt.Sprintf("%d%d%d%d", vals[0], vals[1], vals[2], vals[3])
	}
	return fmt.Sprintf("%d-%d-%d-%d", vals[0], vals[1], vals[2], vals[3])
}

// ParseRules parses a rule code. The four-digit form "5766" reads as
// survive_l, survive_u, fertile_l, fertile_u. The dash form "5-7-6-6"
// allows two-digit thresholds.
func ParseRules(code string) (Rules, error) {
	var parts []string
	if len(code) == 4 {
		for _, ch := range code {
			parts = append(parts, string(ch))
		}
	} else {
		start := 0
		for i := 0; i <= len(code); i++ {
			if i == len(code) || code[i] == '-' {
				parts = append(parts, code[start:i])
				start = i + 1
			}
		}
	}
	if len(parts) != 4 {
		return Rules{}, errors.Wrapf(ErrInvalidRules, "[ParseRules] code %q needs 4 thresholds", code)
	}

	var vals [4]int
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil {
			return Rules{}, errors.Wrapf(ErrInvalidRules, "[ParseRules] code %q: %v", code, err)
		}
		vals[i] = v
	}

	r := Rules{SurviveL: vals[0], SurviveU: vals[1], FertileL: vals[2], FertileU: vals[3]}
	if err := r.Validate(); err != nil {
		return Rules{}, err
	}
	return r, nil
}
