// Package widgets provides Gio UI widgets for the visualizer.
package widgets

import (
	"image"
	"image/color"

	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/widget/material"

	"github.com/elektrokombinacija/mapf-grid-solver/internal/vis/draw"
	"github.com/elektrokombinacija/mapf-grid-solver/internal/vis/interact"
	"github.com/elektrokombinacija/mapf-grid-solver/internal/vis/state"
)

// Workspace is the main 2D visualization area: the grid, agent paths, and
// agent markers, with camera pan/zoom and click-to-select.
type Workspace struct {
	state  *state.State
	camera *interact.Camera
}

// NewWorkspace creates a new workspace widget.
func NewWorkspace(st *state.State, camera *interact.Camera) *Workspace {
	return &Workspace{
		state:  st,
		camera: camera,
	}
}

// Layout renders the workspace.
func (w *Workspace) Layout(gtx layout.Context, th *material.Theme) layout.Dimensions {
	bounds := gtx.Constraints.Max
	defer clip.Rect(image.Rect(0, 0, bounds.X, bounds.Y)).Push(gtx.Ops).Pop()

	paint.Fill(gtx.Ops, color.NRGBA{R: 25, G: 28, B: 32, A: 255})

	w.handlePointerEvents(gtx)

	if w.state.Grid != nil {
		draw.DrawGrid(gtx, w.state.Grid, w.camera)
	}

	if w.state.Plan != nil {
		for i := range w.state.Agents {
			history := w.state.PathHistory(i)
			if len(history) > 1 {
				col := draw.AgentColor(i)
				draw.DrawPathTrail(gtx, history, w.camera, col, 3)
			}
		}
		for i := range w.state.Agents {
			future := w.state.PathFuture(i)
			col := draw.AgentColor(i)
			draw.DrawFuturePath(gtx, future, w.camera, col)
		}
		for _, c := range w.state.ActiveConflicts() {
			draw.DrawConflict(gtx, c, w.camera)
		}
	}

	if w.state.Algo.Active && w.state.Algo.CurrentConflict != nil {
		draw.DrawActiveConflict(gtx, w.state.Algo.CurrentConflict, w.camera)
	}

	positions := w.state.CurrentPositions()
	draw.DrawAgents(gtx, positions, w.camera, w.state.Selected)

	return layout.Dimensions{Size: bounds}
}

func (w *Workspace) handlePointerEvents(gtx layout.Context) {
	area := clip.Rect(image.Rect(0, 0, gtx.Constraints.Max.X, gtx.Constraints.Max.Y)).Push(gtx.Ops)
	event.Op(gtx.Ops, w)
	area.Pop()

	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target: w,
			Kinds:  pointer.Press | pointer.Drag | pointer.Release | pointer.Scroll | pointer.Move,
		})
		if !ok {
			break
		}
		if pe, ok := ev.(pointer.Event); ok {
			w.handlePointerEvent(gtx, pe)
		}
	}
}

func (w *Workspace) handlePointerEvent(gtx layout.Context, ev pointer.Event) {
	w.camera.HandleEvent(gtx, ev)

	if ev.Kind == pointer.Press && ev.Buttons.Contain(pointer.ButtonPrimary) {
		w.handleClick(ev.Position.X, ev.Position.Y)
	}
}

// handleClick selects the agent under the click, or clears selection if
// the click hit empty space. Grid topology is fixed, so unlike the
// teacher's workspace there is no drag-to-edit path.
func (w *Workspace) handleClick(screenX, screenY float32) {
	if w.state.Grid == nil {
		return
	}

	positions := w.state.CurrentPositions()
	idx := draw.FindAgentAt(screenX, screenY, positions, w.camera)
	if idx >= 0 {
		if w.state.Selected == idx {
			w.state.Selected = -1
		} else {
			w.state.Selected = idx
		}
		return
	}

	w.state.Selected = -1
}
