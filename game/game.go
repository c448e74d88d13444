// Package game wires a session to the raylib viewer and to telemetry.
// The same Game runs headless, where nothing touches raylib.
package game

import (
	"log/slog"

	"github.com/pthm-cable/life3d/automaton"
	"github.com/pthm-cable/life3d/camera"
	"github.com/pthm-cable/life3d/config"
	"github.com/pthm-cable/life3d/session"
	"github.com/pthm-cable/life3d/telemetry"
	"github.com/pthm-cable/life3d/ui"
)

// Options configures a Game beyond what the config file holds.
type Options struct {
	Seed      int64
	LogStats  bool   // Log window and perf stats via slog
	OutputDir string // CSV/config output directory (empty = disabled)
	Headless  bool
	Logger    *slog.Logger
}

// Controls is the key legend shown at the bottom of the viewer.
const Controls = "[Space] play/pause  [R] randomize  [C] clear  [D] coloring  [Tab] panel  " +
	"[LMB] place  [RMB] remove  [MMB/arrows] orbit  [wheel] zoom  [Home] reset view"

// Game holds the complete viewer state.
type Game struct {
	cfg  *config.Config
	sess *session.Session
	log  *slog.Logger

	// Viewer (nil when headless)
	cam      *camera.Camera
	grid     camera.Grid
	hud      *ui.HUD
	panel    *ui.ControlPanel
	hover    *camera.Hit
	drawList []drawCell

	screenWidth, screenHeight float32

	// Telemetry
	perf      *telemetry.PerfCollector
	collector *telemetry.Collector
	output    *telemetry.OutputManager
	logStats  bool
	headless  bool
}

// NewGameWithOptions creates a game from the loaded config.
func NewGameWithOptions(cfg *config.Config, opts Options) (*Game, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	sopts := session.OptionsFromConfig(cfg, opts.Seed)
	sopts.Logger = logger
	if opts.Headless {
		sopts.StartRunning = true
	}
	sess, err := session.New(sopts)
	if err != nil {
		return nil, err
	}

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	if err := output.WriteConfig(cfg); err != nil {
		output.Close()
		return nil, err
	}

	g := &Game{
		cfg:       cfg,
		sess:      sess,
		log:       logger,
		perf:      telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		collector: telemetry.NewCollector(cfg.Telemetry.StatsWindow),
		output:    output,
		logStats:  opts.LogStats,
		headless:  opts.Headless,
	}

	if !opts.Headless {
		g.initViewer()
	}

	l := sess.Lattice()
	logger.Info("game created",
		"dimension", l.Dimension(),
		"rules", l.Rules().String(),
		"mode", l.Mode().String(),
		"alive", l.Population(),
		"headless", opts.Headless,
		"output_dir", output.Dir(),
	)
	return g, nil
}

func (g *Game) initViewer() {
	v := g.cfg.Viewer
	g.screenWidth = float32(g.cfg.Screen.Width)
	g.screenHeight = float32(g.cfg.Screen.Height)

	g.cam = camera.New(g.screenWidth, g.screenHeight,
		float32(v.OrbitYaw), float32(v.OrbitPitch), float32(v.OrbitDistance), float32(v.FieldOfView))
	g.cam.MinDistance = float32(v.MinDistance)
	g.cam.MaxDistance = float32(v.MaxDistance)
	g.grid = camera.Grid{Dim: g.sess.Lattice().Dimension(), Extent: g.cfg.Derived.Extent32}

	g.hud = ui.NewHUD(10, 10, 230)
	g.panel = ui.NewControlPanel(int32(g.cfg.Screen.Width), 240)
}

// Session returns the underlying driver.
func (g *Game) Session() *session.Session { return g.sess }

// Generation returns the current generation number.
func (g *Game) Generation() int { return g.sess.Lattice().Generation() }

// Update runs one viewer frame: input, pacing and telemetry. Draw must follow.
func (g *Game) Update() {
	g.perf.StartTick()

	g.perf.StartPhase(telemetry.PhaseInput)
	g.handleInput()

	g.perf.StartPhase(telemetry.PhaseStep)
	if g.sess.Tick() {
		g.perf.StartPhase(telemetry.PhaseTelemetry)
		g.recordGeneration()
	}

	g.perf.StartPhase(telemetry.PhasePick)
	g.updateHover()
}

// UpdateHeadless advances exactly one generation.
func (g *Game) UpdateHeadless() automaton.StepStats {
	g.perf.StartTick()

	g.perf.StartPhase(telemetry.PhaseStep)
	stats := g.sess.Advance()

	g.perf.StartPhase(telemetry.PhaseTelemetry)
	g.recordGeneration()

	g.perf.EndTick()
	return stats
}

// applyControls feeds control panel actions back into the session.
func (g *Game) applyControls(act ui.ControlActions) {
	if act.Density != g.sess.Density() {
		g.sess.SetDensity(act.Density)
	}
	if act.Speed != g.sess.Speed() {
		g.sess.SetSpeed(act.Speed)
	}
	if act.TogglePlay {
		g.sess.TogglePlay()
	}
	if act.Randomize {
		g.sess.Randomize()
	}
	if act.Clear {
		g.sess.Clear()
	}
	if act.ToggleColoring {
		g.sess.ToggleDensityColoring()
	}
}

// Unload flushes the last partial stats window and closes output files.
func (g *Game) Unload() {
	if g.collector.Pending() > 0 {
		g.flushWindow(g.collector.Flush())
	}
	if err := g.output.Close(); err != nil {
		g.log.Error("failed to close output", "error", err)
	}
	l := g.sess.Lattice()
	g.log.Info("game finished", "generation", l.Generation(), "alive", l.Population())
}
