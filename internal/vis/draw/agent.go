package draw

import (
	"image/color"

	"gioui.org/layout"

	"github.com/elektrokombinacija/mapf-grid-solver/internal/core"
	"github.com/elektrokombinacija/mapf-grid-solver/internal/vis/interact"
)

// Agent marker colors. Every agent in this domain is the same kind of
// mover (unlike the teacher's per-type robot shapes), so markers are
// distinguished only by a rotating palette plus a selected highlight.
var (
	agentPalette = []color.NRGBA{
		{R: 100, G: 200, B: 255, A: 255},
		{R: 255, G: 150, B: 100, A: 255},
		{R: 140, G: 220, B: 140, A: 255},
		{R: 200, G: 100, B: 255, A: 255},
		{R: 255, G: 210, B: 90, A: 255},
	}
	ColorAgentSelected = color.NRGBA{R: 255, G: 255, B: 100, A: 255}
)

// AgentColor returns a stable color for agent index i.
func AgentColor(i int) color.NRGBA {
	return agentPalette[i%len(agentPalette)]
}

// DrawAgent draws agent i at cell, as a filled circle with a yellow
// highlight ring when selected.
func DrawAgent(gtx layout.Context, cell core.Cell, agentIdx int, camera *interact.Camera, selected bool) {
	screenX, screenY := camera.CellToScreen(cell.X, cell.Y, CellSize)
	size := float32(12) * camera.Zoom

	col := AgentColor(agentIdx)
	drawFilledCircle(gtx, screenX, screenY, size, col)
	if selected {
		DrawCircleOutline(gtx, screenX, screenY, size+4, ColorAgentSelected, 2)
	}
}

// DrawAgents draws every agent at its current cell.
func DrawAgents(gtx layout.Context, positions []core.Cell, camera *interact.Camera, selected int) {
	for i, cell := range positions {
		DrawAgent(gtx, cell, i, camera, i == selected)
	}
}
