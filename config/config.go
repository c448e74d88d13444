// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/life3d/automaton"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	Lattice    LatticeConfig    `yaml:"lattice"`
	Rules      RulesConfig      `yaml:"rules"`
	Simulation SimulationConfig `yaml:"simulation"`
	Viewer     ViewerConfig     `yaml:"viewer"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// LatticeConfig holds the shape of the automaton.
type LatticeConfig struct {
	Dimension int   `yaml:"dimension"` // Cells per axis
	Seed      int64 `yaml:"seed"`      // RNG seed for Randomize (0 = time-based)
	Workers   int   `yaml:"workers"`   // Goroutines per step (1 = serial)
}

// RulesConfig holds the birth/survival thresholds.
// Code, when set, overrides the four explicit fields ("5766" = survive 5..7, fertile 6..6).
type RulesConfig struct {
	Code     string `yaml:"code"`
	SurviveL int    `yaml:"survive_l"`
	SurviveU int    `yaml:"survive_u"`
	FertileL int    `yaml:"fertile_l"`
	FertileU int    `yaml:"fertile_u"`
}

// SimulationConfig holds driver pacing and start-up behaviour.
type SimulationConfig struct {
	Density          int  `yaml:"density"`          // Randomize density in percent
	Speed            int  `yaml:"speed"`            // 0..59; one generation every 60-speed frames
	DensityColoring  bool `yaml:"density_coloring"` // Start in density-based classification
	StartPaused      bool `yaml:"start_paused"`
	RandomizeOnStart bool `yaml:"randomize_on_start"`

	SeedPattern string  `yaml:"seed_pattern"` // "random" (independent cells) or "noise" (clustered)
	NoiseScale  float64 `yaml:"noise_scale"`  // Noise frequency in cycles per cell
}

// ViewerConfig holds 3D viewer parameters.
type ViewerConfig struct {
	Extent         float64 `yaml:"extent"`          // World-space edge length of the whole lattice
	CellGap        float64 `yaml:"cell_gap"`        // Fraction of a cell left empty between cubes
	OrbitDistance  float64 `yaml:"orbit_distance"`
	OrbitYaw       float64 `yaml:"orbit_yaw"`   // Degrees
	OrbitPitch     float64 `yaml:"orbit_pitch"` // Degrees
	MinDistance    float64 `yaml:"min_distance"`
	MaxDistance    float64 `yaml:"max_distance"`
	FieldOfView    float64 `yaml:"fovy"`
	ShowBounds     bool    `yaml:"show_bounds"`
	HighlightColor string  `yaml:"highlight_color"` // Hex RRGGBB
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         int `yaml:"stats_window"`          // Generations per stats window
	StagnationHistory   int `yaml:"stagnation_history"`    // Generation hashes kept for cycle detection
	PerfCollectorWindow int `yaml:"perf_collector_window"` // Frames averaged by the perf collector
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Rules          automaton.Rules
	FramesPerStep  int     // 60 - speed, at least 1
	Extent32       float32 // Viewer.Extent as float32
	HighlightColor uint32
}

// Seed patterns for simulation.seed_pattern.
const (
	SeedRandom = "random"
	SeedNoise  = "noise"
)

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path (or defaults if empty).
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg, err := Defaults()
	if err != nil {
		return nil, err
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Finalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Defaults returns the embedded defaults without derived values.
func Defaults() (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}
	return cfg, nil
}

// Finalize validates the config and recomputes derived values. Call it
// again after changing fields programmatically.
func (c *Config) Finalize() error {
	if err := c.computeDerived(); err != nil {
		return err
	}
	return c.Validate()
}

// Validate checks ranges that would otherwise produce an unusable session.
func (c *Config) Validate() error {
	if c.Lattice.Dimension <= 0 {
		return fmt.Errorf("lattice.dimension must be positive, got %d", c.Lattice.Dimension)
	}
	if c.Simulation.Density < 0 || c.Simulation.Density > 100 {
		return fmt.Errorf("simulation.density must be in [0,100], got %d", c.Simulation.Density)
	}
	if c.Simulation.Speed < 0 || c.Simulation.Speed > 59 {
		return fmt.Errorf("simulation.speed must be in [0,59], got %d", c.Simulation.Speed)
	}
	switch c.Simulation.SeedPattern {
	case SeedRandom, SeedNoise:
	default:
		return fmt.Errorf("simulation.seed_pattern must be %q or %q, got %q", SeedRandom, SeedNoise, c.Simulation.SeedPattern)
	}
	if err := c.Derived.Rules.Validate(); err != nil {
		return fmt.Errorf("rules: %w", err)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() error {
	if c.Rules.Code != "" {
		r, err := automaton.ParseRules(c.Rules.Code)
		if err != nil {
			return fmt.Errorf("rules.code: %w", err)
		}
		c.Rules.SurviveL, c.Rules.SurviveU = r.SurviveL, r.SurviveU
		c.Rules.FertileL, c.Rules.FertileU = r.FertileL, r.FertileU
		// Explicit fields now carry the rule; drop the code so later edits win.
		c.Rules.Code = ""
	}
	c.Derived.Rules = automaton.Rules{
		SurviveL: c.Rules.SurviveL,
		SurviveU: c.Rules.SurviveU,
		FertileL: c.Rules.FertileL,
		FertileU: c.Rules.FertileU,
	}

	c.Derived.FramesPerStep = max(60-c.Simulation.Speed, 1)
	c.Derived.Extent32 = float32(c.Viewer.Extent)

	hex, err := strconv.ParseUint(strings.TrimPrefix(c.Viewer.HighlightColor, "#"), 16, 32)
	if err != nil || hex > 0xFFFFFF {
		hex = 0xFFFFFF
	}
	c.Derived.HighlightColor = uint32(hex)

	if c.Simulation.SeedPattern == "" {
		c.Simulation.SeedPattern = SeedRandom
	}
	if c.Lattice.Workers < 1 {
		c.Lattice.Workers = 1
	}
	return nil
}

// LatticeOptions builds automaton options from the config.
func (c *Config) LatticeOptions(seed int64) automaton.Options {
	mode := automaton.Rainbow
	if c.Simulation.DensityColoring {
		mode = automaton.DensityBased
	}
	return automaton.Options{
		Dimension: c.Lattice.Dimension,
		Rules:     c.Derived.Rules,
		Mode:      mode,
		Seed:      seed,
		Workers:   c.Lattice.Workers,
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
