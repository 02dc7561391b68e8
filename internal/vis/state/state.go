// Package state manages the visualizer's view of a solved instance: the
// grid, the agent roster, the resulting Plan, and the playback/algorithm
// panels built on top of it.
package state

import (
	"github.com/elektrokombinacija/mapf-grid-solver/internal/cbs"
	"github.com/elektrokombinacija/mapf-grid-solver/internal/core"
	"github.com/elektrokombinacija/mapf-grid-solver/internal/heuristic"
)

// State holds everything a frame needs to render.
type State struct {
	Grid     *core.Grid
	Agents   []core.Agent
	Plan     *core.Plan
	Playback *PlaybackState
	Algo     *AlgoState
	Selected int // selected agent index, or -1

	Problem  *core.ProblemInstance
	Observer cbs.Observer // set by the caller before StartSolve, e.g. an observer.AlgoStateObserver wrapping Algo

	solveDone chan *core.Plan
}

// NewState builds visualization state for a solved (or still-solving)
// instance. plan may be nil while a CBS run is in progress and only the
// tree panel has data. problem is retained so the toolbar's "Run CBS"
// button can re-solve live under observation.
func NewState(problem *core.ProblemInstance, plan *core.Plan) *State {
	maxStep := 0
	if plan != nil {
		maxStep = plan.Makespan()
	}
	return &State{
		Grid:      problem.Grid,
		Agents:    problem.Agents,
		Plan:      plan,
		Playback:  NewPlaybackState(maxStep),
		Algo:      NewAlgoState(),
		Selected:  -1,
		Problem:   problem,
		solveDone: make(chan *core.Plan, 1),
	}
}

// StartSolve runs CBS over Problem in a background goroutine, notifying
// Observer (if set) as the search explores the constraint tree. The
// caller's frame loop should poll PollSolveResult once per frame to pick
// up the result without a data race on Plan.
func (s *State) StartSolve() {
	if s.Algo.Active {
		return
	}
	s.Algo.Start()

	go func() {
		h, err := heuristic.Build(s.Problem)
		if err != nil {
			s.Algo.Stop()
			s.solveDone <- nil
			return
		}
		solver := cbs.New(s.Problem, h)
		if s.Observer != nil {
			solver.SetObserver(s.Observer)
		}
		plan, _, err := solver.Solve(s.Problem.Config.MaxTimeMs)
		s.Algo.Stop()
		if err != nil {
			s.solveDone <- nil
			return
		}
		s.solveDone <- plan
	}()
}

// PollSolveResult returns a plan produced by StartSolve, if one has
// arrived since the last call, or (nil, false) otherwise. Call once per
// frame from the render goroutine; Plan is only ever written here, so
// there is no race with the renderer's reads.
func (s *State) PollSolveResult() (*core.Plan, bool) {
	select {
	case plan := <-s.solveDone:
		if plan == nil {
			return nil, false
		}
		s.SetPlan(plan)
		return plan, true
	default:
		return nil, false
	}
}

// SetPlan replaces the active plan (e.g. once a running CBS solve
// completes) and resyncs playback bounds.
func (s *State) SetPlan(plan *core.Plan) {
	s.Plan = plan
	maxStep := 0
	if plan != nil {
		maxStep = plan.Makespan()
	}
	s.Playback.MaxStep = maxStep
	s.Playback.SetStep(s.Playback.CurrentStep)
}

// CurrentPositions returns every agent's cell at the current playback
// step. Plans reach the visualizer unpadded, so an agent whose path ends
// before the current step is shown at its last cell; no interpolation is
// done.
func (s *State) CurrentPositions() []core.Cell {
	positions := make([]core.Cell, len(s.Agents))
	if s.Plan == nil {
		return positions
	}
	for i, path := range s.Plan.Paths {
		if len(path) == 0 {
			continue
		}
		t := s.Playback.CurrentStep
		if t >= len(path) {
			t = len(path) - 1
		}
		positions[i] = core.Cell{X: path[t].X, Y: path[t].Y}
	}
	return positions
}

// PathHistory returns agent i's trail from step 0 up to and including the
// current playback step.
func (s *State) PathHistory(agentIdx int) []core.Cell {
	if s.Plan == nil || agentIdx >= len(s.Plan.Paths) {
		return nil
	}
	path := s.Plan.Paths[agentIdx]
	end := s.Playback.CurrentStep + 1
	if end > len(path) {
		end = len(path)
	}
	cells := make([]core.Cell, 0, end)
	for i := 0; i < end; i++ {
		cells = append(cells, core.Cell{X: path[i].X, Y: path[i].Y})
	}
	return cells
}

// PathFuture returns agent i's remaining trail from the current playback
// step to the end of its path.
func (s *State) PathFuture(agentIdx int) []core.Cell {
	if s.Plan == nil || agentIdx >= len(s.Plan.Paths) {
		return nil
	}
	path := s.Plan.Paths[agentIdx]
	start := s.Playback.CurrentStep
	if start >= len(path) {
		start = len(path) - 1
	}
	cells := make([]core.Cell, 0, len(path)-start)
	for i := start; i < len(path); i++ {
		cells = append(cells, core.Cell{X: path[i].X, Y: path[i].Y})
	}
	return cells
}

// ActiveConflicts returns every conflict touching the current playback
// step, for highlighting while scrubbing a plan that (before the CBS
// solver finished) still has crossing paths.
func (s *State) ActiveConflicts() []*core.Conflict {
	if s.Plan == nil {
		return nil
	}
	var active []*core.Conflict
	for _, c := range core.FindAllConflicts(s.Plan.Paths) {
		if c.Time == s.Playback.CurrentStep {
			active = append(active, c)
		}
	}
	return active
}
