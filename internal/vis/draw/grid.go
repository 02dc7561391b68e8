// Package draw provides rendering functions for visualization.
package draw

import (
	"image"
	"image/color"
	"math"

	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"

	"github.com/elektrokombinacija/mapf-grid-solver/internal/core"
	"github.com/elektrokombinacija/mapf-grid-solver/internal/vis/interact"
)

// Colors for grid rendering.
var (
	ColorCellFree     = color.NRGBA{R: 235, G: 238, B: 240, A: 255}
	ColorCellObstacle = color.NRGBA{R: 60, G: 65, B: 70, A: 255}
	ColorCellStart    = color.NRGBA{R: 80, G: 180, B: 100, A: 255}
	ColorCellGoal     = color.NRGBA{R: 100, G: 140, B: 220, A: 255}
	ColorCellSelected = color.NRGBA{R: 255, G: 200, B: 80, A: 255}
	ColorGridLine     = color.NRGBA{R: 190, G: 195, B: 200, A: 255}
)

// CellSize is the world-space spacing between adjacent grid cells, shared
// by every drawing function in this package so screen coordinates agree.
const CellSize = 32.0

// DrawGrid renders every cell of grid as a filled square, obstacles darker
// than free cells, then overlays thin grid lines.
func DrawGrid(gtx layout.Context, grid *core.Grid, camera *interact.Camera) {
	for x := 0; x < grid.Width; x++ {
		for y := 0; y < grid.Height; y++ {
			col := ColorCellFree
			if grid.IsObstacle(x, y) {
				col = ColorCellObstacle
			}
			drawCellRect(gtx, x, y, camera, col)
		}
	}
	drawGridLines(gtx, grid, camera)
}

// drawCellRect fills the screen-space square for grid cell (x, y).
func drawCellRect(gtx layout.Context, x, y int, camera *interact.Camera, col color.NRGBA) {
	sx, sy := camera.CellToScreen(x, y, CellSize)
	half := float32(CellSize/2) * camera.Zoom
	r := image.Rect(int(sx-half), int(sy-half), int(sx+half), int(sy+half))
	paint.FillShape(gtx.Ops, col, clip.Rect(r).Op())
}

func drawGridLines(gtx layout.Context, grid *core.Grid, camera *interact.Camera) {
	half := float32(CellSize/2) * camera.Zoom
	for x := 0; x <= grid.Width; x++ {
		x0, y0 := camera.CellToScreen(x, 0, CellSize)
		_, y1 := camera.CellToScreen(0, grid.Height, CellSize)
		rect := image.Rect(int(x0-half), int(y0-half), int(x0-half)+1, int(y1-half))
		paint.FillShape(gtx.Ops, ColorGridLine, clip.Rect(rect).Op())
	}
	for y := 0; y <= grid.Height; y++ {
		x0, y0 := camera.CellToScreen(0, y, CellSize)
		x1, _ := camera.CellToScreen(grid.Width, 0, CellSize)
		rect := image.Rect(int(x0-half), int(y0-half), int(x1-half), int(y0-half)+1)
		paint.FillShape(gtx.Ops, ColorGridLine, clip.Rect(rect).Op())
	}
}

// DrawVertex draws a filled circle at a grid cell's center. No renderer in
// this module calls it; agent markers are drawn by DrawAgent.
func DrawVertex(gtx layout.Context, cell core.Cell, camera *interact.Camera, col color.NRGBA, radius float32) {
	screenX, screenY := camera.CellToScreen(cell.X, cell.Y, CellSize)
	drawFilledCircle(gtx, screenX, screenY, radius*camera.Zoom, col)
}

func drawFilledCircle(gtx layout.Context, centerX, centerY, r float32, col color.NRGBA) {
	var path clip.Path
	path.Begin(gtx.Ops)
	path.Move(f32.Pt(centerX+r, centerY))

	segments := 16
	for i := 1; i <= segments; i++ {
		angle := float64(i) * 2 * math.Pi / float64(segments)
		x := centerX + r*float32(math.Cos(angle))
		y := centerY + r*float32(math.Sin(angle))
		path.Line(f32.Pt(x-path.Pos().X, y-path.Pos().Y))
	}
	path.Close()

	paint.FillShape(gtx.Ops, col, clip.Outline{Path: path.End()}.Op())
}

// DrawEdge draws a line between two grid cells. Path rendering does not
// use it; DrawPath draws its own segments.
func DrawEdge(gtx layout.Context, c1, c2 core.Cell, camera *interact.Camera, col color.NRGBA) {
	x1, y1 := camera.CellToScreen(c1.X, c1.Y, CellSize)
	x2, y2 := camera.CellToScreen(c2.X, c2.Y, CellSize)
	drawLine(gtx, x1, y1, x2, y2, 2.0*camera.Zoom, col)
}

func drawLine(gtx layout.Context, x1, y1, x2, y2, width float32, col color.NRGBA) {
	dx := x2 - x1
	dy := y2 - y1
	length := float32(math.Sqrt(float64(dx*dx + dy*dy)))
	if length < 0.1 {
		return
	}
	dx /= length
	dy /= length

	px := -dy * width / 2
	py := dx * width / 2

	var path clip.Path
	path.Begin(gtx.Ops)
	path.MoveTo(f32.Pt(x1+px, y1+py))
	path.LineTo(f32.Pt(x2+px, y2+py))
	path.LineTo(f32.Pt(x2-px, y2-py))
	path.LineTo(f32.Pt(x1-px, y1-py))
	path.Close()

	paint.FillShape(gtx.Ops, col, clip.Outline{Path: path.End()}.Op())
}

// DrawCircleOutline draws a circle outline, used to ring the selected
// agent and active-conflict cells.
func DrawCircleOutline(gtx layout.Context, centerX, centerY float32, radius float32, col color.NRGBA, strokeWidth float32) {
	var outerPath clip.Path
	outerPath.Begin(gtx.Ops)
	outerPath.Move(f32.Pt(centerX+radius, centerY))

	segments := 24
	for i := 1; i <= segments; i++ {
		angle := float64(i) * 2 * math.Pi / float64(segments)
		x := centerX + radius*float32(math.Cos(angle))
		y := centerY + radius*float32(math.Sin(angle))
		outerPath.Line(f32.Pt(x-outerPath.Pos().X, y-outerPath.Pos().Y))
	}
	outerPath.Close()

	innerR := radius - strokeWidth
	if innerR < 0 {
		innerR = 0
	}
	outerPath.Move(f32.Pt(centerX+innerR-outerPath.Pos().X, centerY-outerPath.Pos().Y))
	for i := 1; i <= segments; i++ {
		angle := float64(i) * 2 * math.Pi / float64(segments)
		x := centerX + innerR*float32(math.Cos(angle))
		y := centerY + innerR*float32(math.Sin(angle))
		outerPath.Line(f32.Pt(x-outerPath.Pos().X, y-outerPath.Pos().Y))
	}
	outerPath.Close()

	paint.FillShape(gtx.Ops, col, clip.Outline{Path: outerPath.End()}.Op())
}

// HitTestCell reports whether a screen point falls within radius of cell's
// center.
func HitTestCell(screenX, screenY float32, cell core.Cell, camera *interact.Camera, radius float32) bool {
	cx, cy := camera.CellToScreen(cell.X, cell.Y, CellSize)
	dx := screenX - cx
	dy := screenY - cy
	r := radius * camera.Zoom
	return dx*dx+dy*dy <= r*r
}

// FindAgentAt returns the index of the agent whose current cell is hit by
// the screen point, or -1 if none.
func FindAgentAt(screenX, screenY float32, positions []core.Cell, camera *interact.Camera) int {
	radius := float32(12)
	for i, cell := range positions {
		if HitTestCell(screenX, screenY, cell, camera, radius) {
			return i
		}
	}
	return -1
}
