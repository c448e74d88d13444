package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/life3d/camera"
)

const (
	orbitKeySpeed   = 1.5 // degrees per frame
	orbitDragSpeed  = 0.3 // degrees per pixel
	zoomWheelFactor = 0.1
)

// handleInput processes keyboard and mouse input.
func (g *Game) handleInput() {
	g.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		g.sess.TogglePlay()
	}
	if rl.IsKeyPressed(rl.KeyR) {
		g.sess.Randomize()
	}
	if rl.IsKeyPressed(rl.KeyC) {
		g.sess.Clear()
	}
	if rl.IsKeyPressed(rl.KeyD) {
		mode := g.sess.ToggleDensityColoring()
		g.log.Debug("coloring", "mode", mode.String())
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		g.panel.Toggle()
	}

	g.handleCameraInput()
	g.handlePointer()
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth = w
	g.screenHeight = h
	g.cam.Resize(w, h)
	g.panel.Resize(int32(w))
}

// handleCameraInput processes orbit and zoom controls.
func (g *Game) handleCameraInput() {
	if rl.IsKeyDown(rl.KeyRight) {
		g.cam.Orbit(orbitKeySpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		g.cam.Orbit(-orbitKeySpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		g.cam.Orbit(0, orbitKeySpeed)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		g.cam.Orbit(0, -orbitKeySpeed)
	}

	if rl.IsMouseButtonDown(rl.MouseButtonMiddle) {
		d := rl.GetMouseDelta()
		g.cam.Orbit(-d.X*orbitDragSpeed, d.Y*orbitDragSpeed)
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		g.cam.ZoomBy(1 - wheel*zoomWheelFactor)
	}
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		g.cam.ZoomBy(0.8)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		g.cam.ZoomBy(1.25)
	}

	if rl.IsKeyPressed(rl.KeyHome) {
		g.cam.Reset()
	}
}

// handlePointer places a cell against the hovered face on left click and
// removes the hovered cell on right click. The session ignores both while
// running.
func (g *Game) handlePointer() {
	if g.hover == nil {
		return
	}
	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		g.sess.Place(g.hover.Adjacent)
	}
	if rl.IsMouseButtonPressed(rl.MouseButtonRight) {
		g.sess.Remove(g.hover.Cell)
	}
}

// updateHover casts the pick ray under the mouse.
func (g *Game) updateHover() {
	g.hover = nil
	m := rl.GetMousePosition()
	if g.panel.Contains(m.X, m.Y) {
		return
	}
	origin, dir := g.cam.Ray(m.X, m.Y)
	if hit, ok := camera.PickVoxel(g.grid, origin, dir, g.sess.Visible); ok {
		g.hover = &hit
	}
}
