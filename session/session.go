// Package session drives an automaton the way the viewer does: it paces
// generations, keeps the presentation layer's visibility buffer in sync with
// the lattice, and gates pointer edits on the play/pause state.
//
// Nothing here touches raylib, so the same driver backs the headless runner,
// the rule search and the tests.
package session

import (
	"hash/fnv"
	"log/slog"

	"github.com/pthm-cable/life3d/automaton"
	"github.com/pthm-cable/life3d/config"
)

// Options configures a Session.
type Options struct {
	Lattice           automaton.Options
	Density           int    // Percent used by Randomize
	SeedPattern       string // config.SeedRandom or config.SeedNoise
	NoiseScale        float64
	Speed             int // 0..59; one generation every 60-speed ticks
	StartRunning      bool
	RandomizeOnStart  bool
	StagnationHistory int
	Logger            *slog.Logger
}

// OptionsFromConfig maps the loaded config onto session options.
func OptionsFromConfig(cfg *config.Config, seed int64) Options {
	return Options{
		Lattice:           cfg.LatticeOptions(seed),
		Density:           cfg.Simulation.Density,
		SeedPattern:       cfg.Simulation.SeedPattern,
		NoiseScale:        cfg.Simulation.NoiseScale,
		Speed:             cfg.Simulation.Speed,
		StartRunning:      !cfg.Simulation.StartPaused,
		RandomizeOnStart:  cfg.Simulation.RandomizeOnStart,
		StagnationHistory: cfg.Telemetry.StagnationHistory,
	}
}

// Session is the driver context of one simulation. The Running and Casting
// flags live here rather than in package state so independent sessions can
// coexist.
type Session struct {
	lattice *automaton.Lattice
	visible []bool

	// Running is true while generations advance.
	Running bool
	// Casting is true while pointer placement/removal is accepted.
	Casting bool

	density    int
	pattern    string
	noiseScale float64
	speed      int
	frame      int

	history     []uint64
	historySize int

	log *slog.Logger
}

// New creates a session and performs the initial presentation sync.
func New(opts Options) (*Session, error) {
	l, err := automaton.NewWithOptions(opts.Lattice)
	if err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Session{
		lattice:     l,
		visible:     make([]bool, l.Len()),
		Casting:     true,
		pattern:     opts.SeedPattern,
		noiseScale:  opts.NoiseScale,
		historySize: opts.StagnationHistory,
		log:         logger,
	}
	s.SetDensity(opts.Density)
	s.SetSpeed(opts.Speed)

	if opts.RandomizeOnStart {
		s.fill()
	}
	s.sync()

	if opts.StartRunning {
		s.TogglePlay()
	}
	return s, nil
}

// Lattice exposes the engine for read access. Mutate it only through the
// session so the visibility buffer stays consistent.
func (s *Session) Lattice() *automaton.Lattice { return s.lattice }

// Visible reports whether the presentation layer shows c.
func (s *Session) Visible(c automaton.Coord) bool {
	if !s.lattice.InBounds(c) {
		return false
	}
	return s.visible[s.lattice.Index(c)]
}

// Density returns the Randomize density in percent.
func (s *Session) Density() int { return s.density }

// SetDensity sets the Randomize density, clamped to [0,100].
func (s *Session) SetDensity(p int) { s.density = min(max(p, 0), 100) }

// Speed returns the pacing setting.
func (s *Session) Speed() int { return s.speed }

// SetSpeed sets the pacing, clamped to [0,59].
func (s *Session) SetSpeed(v int) {
	s.speed = min(max(v, 0), 59)
	s.frame = 0
}

// FramesPerStep returns how many ticks elapse per generation.
func (s *Session) FramesPerStep() int { return 60 - s.speed }

// Tick advances the frame counter and, while running, steps the lattice once
// every FramesPerStep ticks. It reports whether a generation ran.
func (s *Session) Tick() bool {
	if !s.Running {
		return false
	}
	n := s.FramesPerStep()
	s.frame = (s.frame + 1) % n
	if s.frame != n-1 {
		return false
	}
	s.Advance()
	return true
}

// Advance steps exactly one generation regardless of pacing.
func (s *Session) Advance() automaton.StepStats {
	s.lattice.Step()
	s.sync()
	s.recordHash()
	return s.lattice.LastStep()
}

// TogglePlay starts or pauses stepping. Starting disables pointer edits;
// pausing re-enables them and reconciles the lattice with what is shown.
func (s *Session) TogglePlay() {
	s.Running = !s.Running
	if s.Running {
		s.Casting = false
	} else {
		s.Casting = true
		s.lattice.MatchVisuals(s)
	}
	s.log.Debug("play toggled", "running", s.Running)
}

// Randomize refills the lattice at the session density using the seed
// pattern.
func (s *Session) Randomize() {
	s.Casting = false
	s.fill()
	s.sync()
	s.history = s.history[:0]
	s.Casting = true
	s.log.Info("randomized", "density", s.density, "pattern", s.pattern, "alive", s.lattice.Population())
}

func (s *Session) fill() {
	if s.pattern == config.SeedNoise {
		s.lattice.SeedNoise(s.density, s.noiseScale)
		return
	}
	s.lattice.Randomize(s.density)
}

// Clear stops stepping and resets to the single centre cell.
func (s *Session) Clear() {
	s.Running = false
	s.lattice.Reset()
	s.sync()
	s.history = s.history[:0]
	s.Casting = true
	s.log.Info("cleared")
}

// ToggleDensityColoring switches classification mode and recolors every cell.
func (s *Session) ToggleDensityColoring() automaton.ClassificationMode {
	mode := automaton.DensityBased
	if s.lattice.Mode() == automaton.DensityBased {
		mode = automaton.Rainbow
	}
	s.lattice.SetClassificationMode(mode)
	return mode
}

// Place revives c. It is ignored unless pointer edits are enabled.
func (s *Session) Place(c automaton.Coord) bool { return s.edit(c, true) }

// Remove kills c. It is ignored unless pointer edits are enabled.
func (s *Session) Remove(c automaton.Coord) bool { return s.edit(c, false) }

// edit drops off-grid requests: the pointer layer may resolve a target one
// cell past the boundary and there is nothing useful to retry.
func (s *Session) edit(c automaton.Coord, alive bool) bool {
	if !s.Casting {
		return false
	}
	if err := s.lattice.SetCell(c, alive); err != nil {
		s.log.Debug("edit dropped", "coord", c, "error", err)
		return false
	}
	s.sync()
	return true
}

// Stagnant reports whether the current layout repeats one of the recent
// generations (still life or a short cycle).
func (s *Session) Stagnant() bool {
	n := len(s.history)
	if n < 2 {
		return false
	}
	cur := s.history[n-1]
	for _, h := range s.history[:n-1] {
		if h == cur {
			return true
		}
	}
	return false
}

// Hash returns an FNV-64a digest of the alive layout.
func (s *Session) Hash() uint64 {
	h := fnv.New64a()
	buf := make([]byte, 0, s.lattice.Len())
	for idx := 0; idx < s.lattice.Len(); idx++ {
		if s.visible[idx] {
			buf = append(buf, 1)
		} else {
			buf = append(buf, 0)
		}
	}
	h.Write(buf)
	return h.Sum64()
}

func (s *Session) recordHash() {
	if s.historySize <= 0 {
		return
	}
	s.history = append(s.history, s.Hash())
	if len(s.history) > s.historySize {
		s.history = s.history[1:]
	}
}

// sync copies dirty cells into the visibility buffer and clears them.
func (s *Session) sync() {
	s.lattice.EachDirty(func(c automaton.Coord, alive bool) {
		s.visible[s.lattice.Index(c)] = alive
	})
}
