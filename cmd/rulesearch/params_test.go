package main

import (
	"testing"

	"github.com/pthm-cable/life3d/automaton"
	"github.com/pthm-cable/life3d/config"
)

func TestNormalizeRoundtrip(t *testing.T) {
	pv := NewParamVector()
	raw := pv.DefaultVector()
	back := pv.Denormalize(pv.Normalize(raw))
	for i := range raw {
		if d := raw[i] - back[i]; d > 1e-9 || d < -1e-9 {
			t.Errorf("%s: %v -> %v", pv.Specs[i].Name, raw[i], back[i])
		}
	}
}

func TestDefaultsDecodeToDefaultRules(t *testing.T) {
	pv := NewParamVector()
	c := pv.Decode(pv.DefaultVector())
	if c.Rules != automaton.DefaultRules() {
		t.Errorf("rules = %+v, want %+v", c.Rules, automaton.DefaultRules())
	}
	if c.Density != 25 {
		t.Errorf("density = %d, want 25", c.Density)
	}
}

func TestDecodeAlwaysValid(t *testing.T) {
	pv := NewParamVector()
	points := [][]float64{
		{-5, -5, -5, -5, -5},
		{100, 100, 100, 100, 100},
		{25.6, 9.4, 0.2, 3.5, 61},
	}
	for _, p := range points {
		c := pv.Decode(p)
		if err := c.Rules.Validate(); err != nil {
			t.Errorf("Decode(%v) = %+v: %v", p, c.Rules, err)
		}
		if c.Density < 5 || c.Density > 60 {
			t.Errorf("Decode(%v) density = %d out of range", p, c.Density)
		}
	}
}

func TestApplyToConfig(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	c := Candidate{Rules: automaton.Rules{SurviveL: 4, SurviveU: 5, FertileL: 5, FertileU: 5}, Density: 30}
	if err := c.ApplyToConfig(cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.Derived.Rules != c.Rules || cfg.Simulation.Density != 30 {
		t.Errorf("config not updated: rules=%+v density=%d", cfg.Derived.Rules, cfg.Simulation.Density)
	}
}
