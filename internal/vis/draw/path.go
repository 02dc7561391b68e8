package draw

import (
	"image/color"
	"math"

	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"

	"github.com/elektrokombinacija/mapf-grid-solver/internal/core"
	"github.com/elektrokombinacija/mapf-grid-solver/internal/vis/interact"
)

// DrawPath draws a sequence of cells as a connected line.
func DrawPath(gtx layout.Context, cells []core.Cell, camera *interact.Camera, col color.NRGBA, width float32) {
	if len(cells) < 2 {
		return
	}

	w := width * camera.Zoom
	for i := 0; i < len(cells)-1; i++ {
		x1, y1 := camera.CellToScreen(cells[i].X, cells[i].Y, CellSize)
		x2, y2 := camera.CellToScreen(cells[i+1].X, cells[i+1].Y, CellSize)
		drawPathSegment(gtx, x1, y1, x2, y2, w, col)
	}
}

// DrawPathTrail draws history (step 0..current, oldest first) as a fading
// trail behind an agent: older segments thinner and more transparent.
func DrawPathTrail(gtx layout.Context, history []core.Cell, camera *interact.Camera, baseColor color.NRGBA, maxWidth float32) {
	if len(history) < 2 {
		return
	}

	n := len(history)
	for i := 0; i < n-1; i++ {
		alpha := uint8(50 + float64(i)/float64(n)*150)
		col := baseColor
		col.A = alpha

		w := maxWidth * camera.Zoom * (0.3 + 0.7*float32(i)/float32(n))

		x1, y1 := camera.CellToScreen(history[i].X, history[i].Y, CellSize)
		x2, y2 := camera.CellToScreen(history[i+1].X, history[i+1].Y, CellSize)
		drawPathSegment(gtx, x1, y1, x2, y2, w, col)
	}
}

// DrawFuturePath draws future (current..end) as a dim, thinner line.
func DrawFuturePath(gtx layout.Context, future []core.Cell, camera *interact.Camera, col color.NRGBA) {
	dimCol := col
	dimCol.A = 80
	DrawPath(gtx, future, camera, dimCol, 1.5)
}

func drawPathSegment(gtx layout.Context, x1, y1, x2, y2, width float32, col color.NRGBA) {
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

// DrawTimedPath draws a full agent path with markers at its start and end.
func DrawTimedPath(gtx layout.Context, path core.Path, camera *interact.Camera, col color.NRGBA) {
	if len(path) == 0 {
		return
	}

	cells := make([]core.Cell, len(path))
	for i, tm := range path {
		cells[i] = core.Cell{X: tm.X, Y: tm.Y}
	}
	DrawPath(gtx, cells, camera, col, 2)

	markerCol := col
	markerCol.A = 200
	first, last := cells[0], cells[len(cells)-1]
	x1, y1 := camera.CellToScreen(first.X, first.Y, CellSize)
	drawFilledCircle(gtx, x1, y1, 4*camera.Zoom, markerCol)
	x2, y2 := camera.CellToScreen(last.X, last.Y, CellSize)
	drawFilledCircle(gtx, x2, y2, 4*camera.Zoom, markerCol)
}

// DrawAllPaths draws every agent's full path, dimmed, as a static overview
// layer underneath the live trail/future rendering.
func DrawAllPaths(gtx layout.Context, paths []core.Path, camera *interact.Camera) {
	for i, path := range paths {
		if len(path) == 0 {
			continue
		}
		col := AgentColor(i)
		col.A = 90
		DrawTimedPath(gtx, path, camera, col)
	}
}

// DrawPathWithArrows draws cells as a path with direction arrows at each
// segment midpoint. No view in this module calls it.
func DrawPathWithArrows(gtx layout.Context, cells []core.Cell, camera *interact.Camera, col color.NRGBA) {
	if len(cells) < 2 {
		return
	}
	DrawPath(gtx, cells, camera, col, 2)

	for i := 0; i < len(cells)-1; i++ {
		midX := float64(cells[i].X+cells[i+1].X) / 2
		midY := float64(cells[i].Y+cells[i+1].Y) / 2

		dx := float64(cells[i+1].X - cells[i].X)
		dy := float64(cells[i+1].Y - cells[i].Y)
		length := math.Sqrt(dx*dx + dy*dy)
		if length < 0.1 {
			continue
		}
		dx /= length
		dy /= length

		drawArrow(gtx, midX, midY, dx, dy, camera, col)
	}
}

func drawArrow(gtx layout.Context, x, y, dirX, dirY float64, camera *interact.Camera, col color.NRGBA) {
	screenX, screenY := camera.CellToScreen(0, 0, CellSize)
	// Offset from the grid origin by (x, y) in cell units, converted to
	// screen space the same way CellToScreen would for a non-integer cell.
	screenX = screenX + float32(x)*float32(CellSize)*camera.Zoom
	screenY = screenY + float32(y)*float32(CellSize)*camera.Zoom
	size := float32(6) * camera.Zoom

	tipX := screenX + float32(dirX)*size
	tipY := screenY + float32(dirY)*size

	perpX := -float32(dirY) * size * 0.5
	perpY := float32(dirX) * size * 0.5

	baseX := screenX - float32(dirX)*size*0.3
	baseY := screenY - float32(dirY)*size*0.3

	var path clip.Path
	path.Begin(gtx.Ops)
	path.MoveTo(f32.Pt(tipX, tipY))
	path.LineTo(f32.Pt(baseX+perpX, baseY+perpY))
	path.LineTo(f32.Pt(baseX-perpX, baseY-perpY))
	path.Close()

	paint.FillShape(gtx.Ops, col, clip.Outline{Path: path.End()}.Op())
}
