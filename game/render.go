package game

import (
	"sort"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/life3d/camera"
	"github.com/pthm-cable/life3d/telemetry"
	"github.com/pthm-cable/life3d/ui"
)

var backgroundColor = rl.Color{R: 18, G: 20, B: 24, A: 255}

type drawCell struct {
	pos   rl.Vector3
	color rl.Color
	depth float32
}

func toRL(v camera.Vec3) rl.Vector3 { return rl.Vector3{X: v.X, Y: v.Y, Z: v.Z} }

// Draw renders the frame and closes the perf tick opened by Update.
func (g *Game) Draw() {
	g.perf.StartPhase(telemetry.PhaseDraw)

	rl.BeginDrawing()
	rl.ClearBackground(backgroundColor)

	rl.BeginMode3D(rl.Camera3D{
		Position:   toRL(g.cam.Position()),
		Target:     toRL(g.cam.Target),
		Up:         rl.Vector3{Y: 1},
		Fovy:       g.cam.Fovy,
		Projection: rl.CameraPerspective,
	})
	g.drawCells()
	if g.cfg.Viewer.ShowBounds {
		e := g.grid.Extent
		rl.DrawCubeWires(rl.Vector3{}, e, e, e, rl.DarkGray)
	}
	g.drawHover()
	rl.EndMode3D()

	g.drawUI()
	rl.EndDrawing()

	g.perf.EndTick()
	g.perf.RecordFrame()
}

// drawCells draws every visible cell back to front so translucent cubes
// blend over the ones behind them.
func (g *Game) drawCells() {
	l := g.sess.Lattice()
	eye := g.cam.Position()

	g.drawList = g.drawList[:0]
	for idx := 0; idx < l.Len(); idx++ {
		c := l.CoordOf(idx)
		if !g.sess.Visible(c) {
			continue
		}
		center := g.grid.CellCenter(c)
		d := center.Sub(eye)
		g.drawList = append(g.drawList, drawCell{
			pos:   toRL(center),
			color: ui.HintColor(l.Hint(c)),
			depth: d.Dot(d),
		})
	}
	sort.Slice(g.drawList, func(i, j int) bool { return g.drawList[i].depth > g.drawList[j].depth })

	size := g.grid.CellSize() * float32(1-g.cfg.Viewer.CellGap)
	for _, dc := range g.drawList {
		rl.DrawCube(dc.pos, size, size, size, dc.color)
	}
}

func (g *Game) drawHover() {
	if g.hover == nil {
		return
	}
	size := g.grid.CellSize()
	highlight := ui.HexColor(g.cfg.Derived.HighlightColor)
	rl.DrawCubeWires(toRL(g.grid.CellCenter(g.hover.Cell)), size, size, size, highlight)

	if g.sess.Casting && g.sess.Lattice().InBounds(g.hover.Adjacent) {
		ghost := highlight
		ghost.A = 96
		rl.DrawCubeWires(toRL(g.grid.CellCenter(g.hover.Adjacent)), size, size, size, ghost)
	}
}

func (g *Game) drawUI() {
	l := g.sess.Lattice()
	data := ui.HUDData{
		Generation: l.Generation(),
		Population: l.Population(),
		Cells:      l.Len(),
		Rules:      l.Rules(),
		Mode:       l.Mode(),
		Speed:      g.sess.Speed(),
		FPS:        rl.GetFPS(),
		Running:    g.sess.Running,
		Stagnant:   g.sess.Stagnant(),
	}
	if g.hover != nil {
		c := g.hover.Cell
		data.Hover = &c
	}
	g.hud.Draw(data)
	g.hud.DrawControls(int32(g.screenHeight), Controls)

	g.applyControls(g.panel.Draw(ui.ControlState{
		Density: g.sess.Density(),
		Speed:   g.sess.Speed(),
		Running: g.sess.Running,
		Mode:    l.Mode(),
	}))
}
