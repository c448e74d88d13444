package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/life3d/automaton"
)

// ControlState is what the panel displays.
type ControlState struct {
	Density int
	Speed   int
	Running bool
	Mode    automaton.ClassificationMode
}

// ControlActions reports what the user did on the panel this frame.
// Density and Speed always carry the slider values.
type ControlActions struct {
	Density        int
	Speed          int
	TogglePlay     bool
	Randomize      bool
	Clear          bool
	ToggleColoring bool
}

// ControlPanel is the raygui panel anchored to the top-right corner.
type ControlPanel struct {
	renderer *Renderer
	width    float32
	screenW  float32
	visible  bool
}

const (
	controlRowHeight = 24
	controlGap       = 8
	controlRows      = 5
)

// NewControlPanel creates a panel for a screen of the given width.
func NewControlPanel(screenW, width int32) *ControlPanel {
	return &ControlPanel{
		renderer: NewRenderer(),
		width:    float32(width),
		screenW:  float32(screenW),
		visible:  true,
	}
}

// Resize re-anchors the panel after a window resize.
func (c *ControlPanel) Resize(screenW int32) { c.screenW = float32(screenW) }

// Toggle switches panel visibility.
func (c *ControlPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Bounds returns the panel rectangle.
func (c *ControlPanel) Bounds() rl.Rectangle {
	pad := float32(c.renderer.Theme.Padding)
	h := pad*2 + controlRows*(controlRowHeight+controlGap)
	return rl.Rectangle{X: c.screenW - c.width - pad, Y: pad, Width: c.width, Height: h}
}

// Contains reports whether the screen point lies on the visible panel, so
// the viewer can skip cell picking under it.
func (c *ControlPanel) Contains(x, y float32) bool {
	if !c.visible {
		return false
	}
	b := c.Bounds()
	return x >= b.X && x <= b.X+b.Width && y >= b.Y && y <= b.Y+b.Height
}

// Draw renders the panel and returns the user's actions.
func (c *ControlPanel) Draw(s ControlState) ControlActions {
	act := ControlActions{Density: s.Density, Speed: s.Speed}
	if !c.visible {
		return act
	}

	r := c.renderer
	b := c.Bounds()
	r.DrawPanel(int32(b.X), int32(b.Y), int32(b.Width), int32(b.Height))

	pad := float32(r.Theme.Padding)
	x := b.X + pad
	y := b.Y + pad
	inner := b.Width - pad*2
	sliderW := inner - 40

	rl.DrawText(fmt.Sprintf("Density %d%%", s.Density), int32(x), int32(y), r.Theme.FontSize, r.Theme.LabelColor)
	y += controlRowHeight - 6
	density := gui.SliderBar(rl.Rectangle{X: x + 20, Y: y, Width: sliderW, Height: 16}, "0", "100",
		float32(s.Density), 0, 100)
	act.Density = int(density + 0.5)
	y += controlRowHeight + controlGap

	rl.DrawText(fmt.Sprintf("Speed %d", s.Speed), int32(x), int32(y), r.Theme.FontSize, r.Theme.LabelColor)
	y += controlRowHeight - 6
	speed := gui.SliderBar(rl.Rectangle{X: x + 20, Y: y, Width: sliderW, Height: 16}, "0", "59",
		float32(s.Speed), 0, 59)
	act.Speed = int(speed + 0.5)
	y += controlRowHeight + controlGap

	half := (inner - controlGap) / 2
	play := "Play"
	if s.Running {
		play = "Pause"
	}
	act.TogglePlay = gui.Button(rl.Rectangle{X: x, Y: y, Width: half, Height: controlRowHeight}, play)
	act.Randomize = gui.Button(rl.Rectangle{X: x + half + controlGap, Y: y, Width: half, Height: controlRowHeight}, "Randomize")
	y += controlRowHeight + controlGap

	coloring := "Density colors"
	if s.Mode == automaton.DensityBased {
		coloring = "Rainbow colors"
	}
	act.Clear = gui.Button(rl.Rectangle{X: x, Y: y, Width: half, Height: controlRowHeight}, "Clear")
	act.ToggleColoring = gui.Button(rl.Rectangle{X: x + half + controlGap, Y: y, Width: half, Height: controlRowHeight}, coloring)

	return act
}
