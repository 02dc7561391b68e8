package core

import "fmt"

// Path is one agent's timed sequence of positions, index 0 at time 0.
type Path []TimedMove

// Plan is a joint MAPF solution: one timed path per agent (C10 of
// spec.md §4.7). Paths may have different lengths before padding; Pad
// extends every path to a common length by waiting at the goal.
type Plan struct {
	Paths []Path
}

// Cost returns the sum-of-costs under the given variant: under Original,
// every step (including waits at the goal once the agent has departed)
// counts; under WaitingAtGoalAlwaysFree, trailing waits at the goal are
// free and each path contributes only up to its last non-wait-at-goal step.
func (p *Plan) Cost(agents []Agent, variant SumOfCostsVariant) int {
	total := 0
	for i, path := range p.Paths {
		if len(path) == 0 {
			continue
		}
		if variant == WaitingAtGoalAlwaysFree {
			total += lastDepartureStep(path, agents[i])
		} else {
			total += path[len(path)-1].Time
		}
	}
	return total
}

// lastDepartureStep returns the step of the last move that is not a wait
// at the agent's goal cell.
func lastDepartureStep(path Path, a Agent) int {
	last := 0
	for i := 1; i < len(path); i++ {
		tm := path[i]
		if tm.X == a.GoalX && tm.Y == a.GoalY && tm.Dir == Wait {
			continue
		}
		last = tm.Time
	}
	return last
}

// Makespan returns the maximum path length (final timestep) across agents.
func (p *Plan) Makespan() int {
	m := 0
	for _, path := range p.Paths {
		if len(path) == 0 {
			continue
		}
		if t := path[len(path)-1].Time; t > m {
			m = t
		}
	}
	return m
}

// Pad extends every path to span [0, makespan] by repeating the last
// position with Wait moves, so all agents can be compared timestep by
// timestep.
func (p *Plan) Pad() {
	makespan := p.Makespan()
	for i, path := range p.Paths {
		if len(path) == 0 {
			continue
		}
		last := path[len(path)-1]
		for t := last.Time + 1; t <= makespan; t++ {
			path = append(path, TimedMove{Move: Move{X: last.X, Y: last.Y, Dir: Wait}, Time: t})
		}
		p.Paths[i] = path
	}
}

// Validate checks grid adjacency, goal termination, and freedom from
// vertex/swap conflicts (spec.md §4.7, §8 "CBS solution conflict-free").
func (p *Plan) Validate(grid *Grid, agents []Agent, numAllowedDirections int) error {
	for i, path := range p.Paths {
		if err := validateSinglePath(grid, path, agents[i], numAllowedDirections); err != nil {
			return fmt.Errorf("agent %d: %w", agents[i].AgentNum, err)
		}
	}
	if c := FindFirstConflict(p.Paths); c != nil {
		return fmt.Errorf("plan has a conflict: %+v", c)
	}
	return nil
}

func validateSinglePath(grid *Grid, path Path, a Agent, numAllowedDirections int) error {
	if len(path) == 0 {
		return fmt.Errorf("empty path")
	}
	for i := 1; i < len(path); i++ {
		prev, cur := path[i-1], path[i]
		if cur.Time != prev.Time+1 {
			return fmt.Errorf("non-consecutive timestep at index %d: %d -> %d", i, prev.Time, cur.Time)
		}
		dx, dy := cur.Dir.Delta()
		if prev.X+dx != cur.X || prev.Y+dy != cur.Y {
			return fmt.Errorf("move at index %d does not match declared direction", i)
		}
		if grid.IsObstacle(cur.X, cur.Y) {
			return fmt.Errorf("step %d lands on an obstacle at (%d,%d)", i, cur.X, cur.Y)
		}
		valid := false
		for _, d := range DirectionSet(numAllowedDirections) {
			if d == cur.Dir {
				valid = true
				break
			}
		}
		if !valid {
			return fmt.Errorf("direction %s not enabled", cur.Dir)
		}
	}
	last := path[len(path)-1]
	if last.X != a.GoalX || last.Y != a.GoalY {
		return fmt.Errorf("path does not end at goal (%d,%d), ends at (%d,%d)", a.GoalX, a.GoalY, last.X, last.Y)
	}
	return nil
}
