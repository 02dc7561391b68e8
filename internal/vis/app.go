// Package vis implements a Gio-based visualization for the grid MAPF
// solver: a grid/agent/path view, a discrete-step playback scrubber, and
// a live CBS constraint tree panel.
package vis

import (
	"image/color"

	"gioui.org/app"
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/paint"
	"gioui.org/widget/material"

	"github.com/elektrokombinacija/mapf-grid-solver/internal/cbs"
	"github.com/elektrokombinacija/mapf-grid-solver/internal/core"
	"github.com/elektrokombinacija/mapf-grid-solver/internal/heuristic"
	"github.com/elektrokombinacija/mapf-grid-solver/internal/vis/interact"
	"github.com/elektrokombinacija/mapf-grid-solver/internal/vis/observer"
	"github.com/elektrokombinacija/mapf-grid-solver/internal/vis/state"
	"github.com/elektrokombinacija/mapf-grid-solver/internal/vis/widgets"
)

// App is the main visualization application.
type App struct {
	state     *state.State
	theme     *material.Theme
	workspace *widgets.Workspace
	timeline  *widgets.Timeline
	toolbar   *widgets.Toolbar
	cbsTree   *widgets.CBSTree
	camera    *interact.Camera
}

// NewApp creates a new visualization application. If problem is nil, a
// small built-in demo instance is used.
func NewApp(problem *core.ProblemInstance) (*App, error) {
	th := material.NewTheme()

	if problem == nil {
		problem = createDefaultInstance()
	}

	h, err := heuristic.Build(problem)
	if err != nil {
		return nil, err
	}
	solver := cbs.New(problem, h)
	plan, _, err := solver.Solve(problem.Config.MaxTimeMs)
	if err != nil {
		plan = nil
	}

	st := state.NewState(problem, plan)
	st.Observer = observer.NewAlgoStateObserver(st.Algo)
	camera := interact.NewCamera()

	return &App{
		state:     st,
		theme:     th,
		workspace: widgets.NewWorkspace(st, camera),
		timeline:  widgets.NewTimeline(st),
		toolbar:   widgets.NewToolbar(st),
		cbsTree:   widgets.NewCBSTree(st),
		camera:    camera,
	}, nil
}

// Run starts the application event loop.
func (a *App) Run(w *app.Window) error {
	var ops op.Ops

	tag := new(int)

	for {
		switch e := w.Event().(type) {
		case app.DestroyEvent:
			return e.Err

		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)

			for {
				ev, ok := gtx.Event(key.Filter{Focus: tag, Optional: key.ModCtrl | key.ModShift})
				if !ok {
					break
				}
				if ke, ok := ev.(key.Event); ok && ke.State == key.Press {
					a.handleKeyEvent(ke)
				}
			}

			event.Op(gtx.Ops, tag)

			if _, ok := a.state.PollSolveResult(); ok {
				w.Invalidate()
			}

			a.layout(gtx)
			e.Frame(gtx.Ops)

			if a.state.Playback.Playing {
				a.state.Playback.Advance()
				w.Invalidate()
			}
			if a.state.Algo.Active {
				w.Invalidate()
			}
		}
	}
}

func (a *App) handleKeyEvent(e key.Event) {
	switch e.Name {
	case key.NameSpace:
		a.state.Playback.TogglePlay()
	case key.NameLeftArrow:
		a.state.Playback.StepBack()
	case key.NameRightArrow:
		a.state.Playback.StepForward()
	case key.NameHome:
		a.state.Playback.Reset()
	case "R":
		a.camera.Reset()
	}
}

func (a *App) layout(gtx layout.Context) layout.Dimensions {
	paint.Fill(gtx.Ops, color.NRGBA{R: 30, G: 30, B: 35, A: 255})

	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return a.toolbar.Layout(gtx, a.theme)
		}),
		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			return layout.Flex{Axis: layout.Horizontal}.Layout(gtx,
				layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
					return a.workspace.Layout(gtx, a.theme)
				}),
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					if !a.state.Algo.Active && len(a.state.Algo.GetNodes()) == 0 {
						return layout.Dimensions{}
					}
					return a.cbsTree.Layout(gtx, a.theme)
				}),
			)
		}),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return a.timeline.Layout(gtx, a.theme)
		}),
	)
}

// createDefaultInstance builds a small demo grid with a few agents, used
// when the visualizer is launched without an instance file.
func createDefaultInstance() *core.ProblemInstance {
	obstacle := make([][]bool, 7)
	for x := range obstacle {
		obstacle[x] = make([]bool, 7)
	}
	obstacle[3][1] = true
	obstacle[3][2] = true
	obstacle[3][3] = true
	obstacle[3][5] = true

	grid, err := core.NewGrid(obstacle)
	if err != nil {
		panic(err)
	}

	agents := []core.Agent{
		{AgentNum: 0, GoalX: 6, GoalY: 6},
		{AgentNum: 1, GoalX: 0, GoalY: 6},
		{AgentNum: 2, GoalX: 6, GoalY: 0},
	}
	starts := []core.Cell{
		{X: 0, Y: 0},
		{X: 6, Y: 0},
		{X: 0, Y: 6},
	}

	problem, err := core.NewProblemInstance(grid, agents, starts, core.DefaultConfig())
	if err != nil {
		panic(err)
	}
	return problem
}
