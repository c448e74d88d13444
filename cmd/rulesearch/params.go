package main

import (
	"math"

	"github.com/pthm-cable/life3d/automaton"
	"github.com/pthm-cable/life3d/config"
)

// ParamSpec defines a single searchable parameter.
type ParamSpec struct {
	Name    string
	Min     float64
	Max     float64
	Default float64
}

// ParamVector holds the searchable parameters. Windows are encoded as a
// lower bound plus a width so every point decodes to a valid rule.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard search space.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "survive_l", Min: 0, Max: automaton.MaxNeighbors, Default: 5},
			{Name: "survive_width", Min: 0, Max: 10, Default: 2},
			{Name: "fertile_l", Min: 1, Max: automaton.MaxNeighbors, Default: 6},
			{Name: "fertile_width", Min: 0, Max: 10, Default: 0},
			{Name: "density", Min: 5, Max: 60, Default: 25},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int { return len(pv.Specs) }

// DefaultVector returns the default parameter values.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw values to [0,1].
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	out := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		out[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return out
}

// Denormalize converts [0,1] values back to raw values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	out := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		out[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return out
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	out := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		out[i] = math.Max(spec.Min, math.Min(spec.Max, v[i]))
	}
	return out
}

// Candidate is one decoded point of the search space.
type Candidate struct {
	Rules   automaton.Rules
	Density int
}

// Decode rounds and clamps raw values into a valid candidate.
func (pv *ParamVector) Decode(raw []float64) Candidate {
	c := pv.Clamp(raw)
	round := func(x float64) int { return int(math.Round(x)) }

	sl := round(c[0])
	fl := round(c[2])
	return Candidate{
		Rules: automaton.Rules{
			SurviveL: sl,
			SurviveU: min(sl+round(c[1]), automaton.MaxNeighbors),
			FertileL: fl,
			FertileU: min(fl+round(c[3]), automaton.MaxNeighbors),
		},
		Density: round(c[4]),
	}
}

// ApplyToConfig writes a candidate into cfg and refreshes derived values.
func (c Candidate) ApplyToConfig(cfg *config.Config) error {
	cfg.Rules.Code = ""
	cfg.Rules.SurviveL, cfg.Rules.SurviveU = c.Rules.SurviveL, c.Rules.SurviveU
	cfg.Rules.FertileL, cfg.Rules.FertileU = c.Rules.FertileL, c.Rules.FertileU
	cfg.Simulation.Density = c.Density
	return cfg.Finalize()
}
