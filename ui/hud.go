package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/life3d/automaton"
)

// HUDData holds everything the HUD shows for one frame.
type HUDData struct {
	Generation int
	Population int
	Cells      int
	Rules      automaton.Rules
	Mode       automaton.ClassificationMode
	Speed      int
	FPS        int32
	Running    bool
	Stagnant   bool
	Hover      *automaton.Coord
}

// StatusText returns the one-word run state.
func (d HUDData) StatusText() string {
	switch {
	case d.Running && d.Stagnant:
		return "RUNNING (stagnant)"
	case d.Running:
		return "RUNNING"
	default:
		return "PAUSED"
	}
}

// Lines returns the label/value rows of the HUD panel.
func (d HUDData) Lines() [][2]string {
	var pct float64
	if d.Cells > 0 {
		pct = float64(d.Population) / float64(d.Cells) * 100
	}
	lines := [][2]string{
		{"Generation", fmt.Sprintf("%d", d.Generation)},
		{"Population", fmt.Sprintf("%d (%.1f%%)", d.Population, pct)},
		{"Rules", d.Rules.String()},
		{"Coloring", d.Mode.String()},
		{"Speed", fmt.Sprintf("%d", d.Speed)},
		{"FPS", fmt.Sprintf("%d", d.FPS)},
	}
	if d.Hover != nil {
		lines = append(lines, [2]string{"Cell", fmt.Sprintf("%d,%d,%d", d.Hover.I, d.Hover.J, d.Hover.K)})
	}
	return lines
}

// HUD renders the top-left status panel and the zone legend.
type HUD struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewHUD creates a new HUD renderer.
func NewHUD(x, y, width int32) *HUD {
	return &HUD{renderer: NewRenderer(), x: x, y: y, width: width}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	r := h.renderer
	lines := data.Lines()
	rows := int32(len(lines)) + 2
	if data.Mode == automaton.DensityBased {
		rows += 4
	}
	r.DrawPanel(h.x, h.y, h.width, rows*r.Theme.LineHeight+r.Theme.Padding*2)

	x := h.x + r.Theme.Padding
	y := r.DrawSectionHeader(x, h.y+r.Theme.Padding, "Life 3D")
	for _, l := range lines {
		y = r.DrawLabelValue(x, y, l[0], l[1])
	}

	status := r.Theme.StatusPaused
	if data.Running {
		status = r.Theme.StatusRunning
	}
	rl.DrawText(data.StatusText(), x, y, r.Theme.FontSize, status)
	y += r.Theme.LineHeight

	if data.Mode == automaton.DensityBased {
		h.drawLegend(x, y+4)
	}
}

func (h *HUD) drawLegend(x, y int32) {
	for _, z := range []automaton.Zone{automaton.ZoneGrowth, automaton.ZoneSurvive, automaton.ZoneDecaying} {
		y = h.renderer.DrawSwatch(x, y, HintColor(automaton.ZoneHint(z)), z.String())
	}
}

// DrawControls renders the key legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-24, 14, rl.Gray)
}
