package draw

import (
	"image/color"
	"math"
	"time"

	"gioui.org/layout"

	"github.com/elektrokombinacija/mapf-grid-solver/internal/core"
	"github.com/elektrokombinacija/mapf-grid-solver/internal/vis/interact"
)

// Conflict colors
var (
	ColorConflictVertex = color.NRGBA{R: 255, G: 80, B: 80, A: 200}
	ColorConflictEdge   = color.NRGBA{R: 255, G: 150, B: 80, A: 200}
)

// DrawConflict draws a conflict indicator: a pulsing ring at the shared
// cell for a vertex conflict, or a ring plus a highlighted edge for a
// swap conflict.
func DrawConflict(gtx layout.Context, conflict *core.Conflict, camera *interact.Camera) {
	if conflict == nil {
		return
	}

	pulse := float32(math.Sin(float64(time.Now().UnixMilli())/200.0)*0.3 + 0.7)

	if conflict.IsSwap {
		drawSwapConflict(gtx, conflict, camera, pulse)
		return
	}

	screenX, screenY := camera.CellToScreen(conflict.Cell.X, conflict.Cell.Y, CellSize)
	radius := float32(20) * camera.Zoom * pulse
	DrawCircleOutline(gtx, screenX, screenY, radius, ColorConflictVertex, 3*camera.Zoom)

	innerRadius := radius * 0.4 * pulse
	drawFilledCircle(gtx, screenX, screenY, innerRadius, ColorConflictVertex)
}

func drawSwapConflict(gtx layout.Context, conflict *core.Conflict, camera *interact.Camera, pulse float32) {
	x1, y1 := camera.CellToScreen(conflict.SwapFrom.X, conflict.SwapFrom.Y, CellSize)
	x2, y2 := camera.CellToScreen(conflict.SwapTo.X, conflict.SwapTo.Y, CellSize)

	midX := (x1 + x2) / 2
	midY := (y1 + y2) / 2

	radius := float32(15) * camera.Zoom * pulse
	DrawCircleOutline(gtx, midX, midY, radius, ColorConflictEdge, 2*camera.Zoom)

	lineLen := radius * 0.7
	drawConflictX(gtx, midX, midY, lineLen, ColorConflictEdge)

	col := ColorConflictEdge
	col.A = uint8(float32(col.A) * pulse)
	drawPathSegment(gtx, x1, y1, x2, y2, 4*camera.Zoom, col)
}

func drawConflictX(gtx layout.Context, cx, cy, size float32, col color.NRGBA) {
	width := float32(3)

	for _, angle := range []float64{45, 135} {
		rad := angle * math.Pi / 180
		dx := float32(math.Cos(rad)) * size
		dy := float32(math.Sin(rad)) * size

		x1, y1 := cx-dx, cy-dy
		x2, y2 := cx+dx, cy+dy

		drawPathSegment(gtx, x1, y1, x2, y2, width, col)
	}
}

// DrawAllConflicts draws every conflict that touches timestep t.
func DrawAllConflicts(gtx layout.Context, conflicts []*core.Conflict, camera *interact.Camera, t int) {
	for _, conflict := range conflicts {
		if conflict.Time == t {
			DrawConflict(gtx, conflict, camera)
		}
	}
}

// DrawActiveConflict draws the conflict the CBS tree panel is currently
// branching on, with expanding rings to draw the eye to it.
func DrawActiveConflict(gtx layout.Context, conflict *core.Conflict, camera *interact.Camera) {
	if conflict == nil {
		return
	}

	screenX, screenY := camera.CellToScreen(conflict.Cell.X, conflict.Cell.Y, CellSize)
	if conflict.IsSwap {
		screenX, screenY = camera.CellToScreen(conflict.SwapFrom.X, conflict.SwapFrom.Y, CellSize)
	}

	t := float64(time.Now().UnixMilli()) / 1000.0
	for i := 0; i < 3; i++ {
		phase := float64(i) * 0.3
		ripple := float32(math.Mod(t+phase, 1.0))
		radius := float32(10+30*ripple) * camera.Zoom
		alpha := uint8((1.0 - ripple) * 200)

		col := ColorConflictVertex
		col.A = alpha
		DrawCircleOutline(gtx, screenX, screenY, radius, col, 2*camera.Zoom)
	}

	drawFilledCircle(gtx, screenX, screenY, 6*camera.Zoom, ColorConflictVertex)
}
