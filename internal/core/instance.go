package core

import "fmt"

// ProblemInstance is the immutable input to the solver core (spec.md §1,
// §3): a grid, the agent roster, and the run configuration. It is created
// once per experiment; nothing under internal/heuristic, internal/lowlevel,
// internal/epea, or internal/cbs mutates it.
type ProblemInstance struct {
	Grid   *Grid
	Agents []Agent
	Starts []Cell // Starts[i] is Agents[i]'s start cell
	Config Config
}

// NewProblemInstance validates and constructs an instance: rejects
// obstacle starts/goals and initial collisions, per spec.md §7's "Initial
// collision" error kind.
func NewProblemInstance(grid *Grid, agents []Agent, starts []Cell, cfg Config) (*ProblemInstance, error) {
	if len(agents) != len(starts) {
		panic("core: NewProblemInstance agents/starts length mismatch")
	}
	if cfg.MaxAgents > 0 && len(agents) > cfg.MaxAgents {
		return nil, fmt.Errorf("%w: %d agents, max %d", ErrTooManyAgents, len(agents), cfg.MaxAgents)
	}

	seen := make(map[Cell]int, len(starts))
	for i, s := range starts {
		if grid.IsObstacle(s.X, s.Y) {
			return nil, fmt.Errorf("%w: agent %d at (%d,%d)", ErrStartOnObstacle, agents[i].AgentNum, s.X, s.Y)
		}
		if grid.IsObstacle(agents[i].GoalX, agents[i].GoalY) {
			return nil, fmt.Errorf("%w: agent %d goal (%d,%d)", ErrGoalOnObstacle, agents[i].AgentNum, agents[i].GoalX, agents[i].GoalY)
		}
		if prior, ok := seen[s]; ok {
			return nil, fmt.Errorf("%w: agents %d and %d both start at (%d,%d)", ErrInitialCollision, prior, agents[i].AgentNum, s.X, s.Y)
		}
		seen[s] = agents[i].AgentNum
	}

	return &ProblemInstance{Grid: grid, Agents: agents, Starts: starts, Config: cfg}, nil
}

// NumAgents returns the number of agents in the instance.
func (p *ProblemInstance) NumAgents() int { return len(p.Agents) }

// InitialWorldState builds the root WorldState: every agent at its start,
// g = 0, h left zero (the caller sets it from a Heuristic once built).
func (p *ProblemInstance) InitialWorldState() *WorldState {
	agents := make([]AgentState, len(p.Agents))
	for i, s := range p.Starts {
		agents[i] = AgentState{X: s.X, Y: s.Y, Dir: Wait, CurrentStep: 0, ArrivalTime: 0, Prev: -1}
	}
	return &WorldState{Agents: agents, G: 0, H: 0, Makespan: 0, AgentTurn: 0, Prev: nil}
}
