// Package ui draws the viewer's 2D overlay: the HUD, the zone legend and the
// raygui control panel.
package ui

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/life3d/automaton"
)

// Theme holds UI styling constants.
type Theme struct {
	PanelBg        rl.Color
	PanelBorder    rl.Color
	SectionHeader  rl.Color
	LabelColor     rl.Color
	ValueColor     rl.Color
	StatusRunning  rl.Color
	StatusPaused   rl.Color
	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	FontSize       int32
	HeaderFontSize int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:        rl.Color{R: 20, G: 25, B: 30, A: 220},
		PanelBorder:    rl.Color{R: 60, G: 70, B: 80, A: 255},
		SectionHeader:  rl.Yellow,
		LabelColor:     rl.LightGray,
		ValueColor:     rl.RayWhite,
		StatusRunning:  rl.Color{R: 100, G: 200, B: 100, A: 255},
		StatusPaused:   rl.Yellow,
		Padding:        10,
		LineHeight:     18,
		LabelWidth:     90,
		FontSize:       14,
		HeaderFontSize: 16,
	}
}

// Renderer handles all UI drawing with consistent styling.
type Renderer struct {
	Theme Theme
}

// NewRenderer creates a renderer with the default theme.
func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

// DrawPanel draws a panel background with border.
func (r *Renderer) DrawPanel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, r.Theme.PanelBg)
	rl.DrawRectangleLines(x, y, width, height, r.Theme.PanelBorder)
}

// DrawSectionHeader draws a section header and returns the new Y position.
func (r *Renderer) DrawSectionHeader(x, y int32, title string) int32 {
	rl.DrawText(title, x, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
	return y + r.Theme.LineHeight + 2
}

// DrawLabelValue draws a label and value on the same line.
func (r *Renderer) DrawLabelValue(x, y int32, label, value string) int32 {
	rl.DrawText(label, x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawText(value, x+r.Theme.LabelWidth, y, r.Theme.FontSize, r.Theme.ValueColor)
	return y + r.Theme.LineHeight
}

// DrawSwatch draws a colour square followed by a label.
func (r *Renderer) DrawSwatch(x, y int32, color rl.Color, label string) int32 {
	size := r.Theme.FontSize
	rl.DrawRectangle(x, y, size, size, color)
	rl.DrawRectangleLines(x, y, size, size, r.Theme.PanelBorder)
	rl.DrawText(label, x+size+6, y, r.Theme.FontSize, r.Theme.LabelColor)
	return y + r.Theme.LineHeight
}

// HintColor converts a visual hint to a raylib colour, folding the opacity
// into alpha.
func HintColor(h automaton.VisualHint) rl.Color {
	return rl.Color{
		R: unit8(h.Color.R),
		G: unit8(h.Color.G),
		B: unit8(h.Color.B),
		A: unit8(h.Opacity),
	}
}

// HexColor converts a 0xRRGGBB value to an opaque raylib colour.
func HexColor(v uint32) rl.Color {
	return rl.Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}
}

func unit8(v float32) uint8 {
	v = max(0, min(1, v))
	return uint8(math.Round(float64(v) * 255))
}
