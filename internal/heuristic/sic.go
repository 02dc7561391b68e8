// Package heuristic implements the admissible lower bounds used by the
// search engines: SIC (C4) and the tighter pairs-based SPC/MPC (C5).
package heuristic

import (
	"fmt"

	"github.com/elektrokombinacija/mapf-grid-solver/internal/core"
)

// SIC is the Sum-of-Individual-Costs heuristic (spec.md §4.2): for each
// agent, a backward BFS from its goal over the 4/8-connected traversable
// grid gives the exact single-agent shortest-path distance from every cell
// to that agent's goal, ignoring all other agents. It is built once per
// instance and is immutable and safely shared read-only afterward.
type SIC struct {
	problem *core.ProblemInstance
	// dist[agent][cardinality] is the shortest-path distance in moves from
	// cell to the agent's goal, or -1 if unreachable.
	dist [][]int
	// optMove[agent][cardinality] is the direction to take from that cell
	// to make progress toward the agent's goal.
	optMove [][]core.Direction
}

// Build runs the per-agent BFS and returns the heuristic table, or
// ErrUnsolvable if any agent's start cannot reach its goal (spec.md §4.2,
// §7 "Unsolvable instance").
func Build(problem *core.ProblemInstance) (*SIC, error) {
	n := problem.NumAgents()
	numLoc := problem.Grid.NumLocations()

	s := &SIC{
		problem: problem,
		dist:    make([][]int, n),
		optMove: make([][]core.Direction, n),
	}

	for i, agent := range problem.Agents {
		dist, move := bfsFromGoal(problem.Grid, agent, problem.Config.NumAllowedDirections)
		s.dist[i] = dist
		s.optMove[i] = move
	}

	for i, start := range problem.Starts {
		c := problem.Grid.Cardinality(start.X, start.Y)
		if c < 0 || c >= numLoc || s.dist[i][c] < 0 {
			return nil, fmt.Errorf("%w: agent %d", core.ErrUnsolvable, problem.Agents[i].AgentNum)
		}
	}

	return s, nil
}

// bfsFromGoal computes dist[cardinality] and optMove[cardinality] for a
// single agent's goal via uniform-cost BFS (non-wait moves only, cost 1
// per edge).
func bfsFromGoal(grid *core.Grid, agent core.Agent, numAllowedDirections int) ([]int, []core.Direction) {
	numLoc := grid.NumLocations()
	dist := make([]int, numLoc)
	move := make([]core.Direction, numLoc)
	for i := range dist {
		dist[i] = -1
	}

	goalCard := grid.Cardinality(agent.GoalX, agent.GoalY)
	if goalCard < 0 {
		return dist, move
	}

	dist[goalCard] = 0
	queue := make([]core.Cell, 0, numLoc)
	queue = append(queue, core.Cell{X: agent.GoalX, Y: agent.GoalY})

	dirs := core.DirectionSet(numAllowedDirections)

	for head := 0; head < len(queue); head++ {
		cur := queue[head]
		curCard := grid.Cardinality(cur.X, cur.Y)
		for _, d := range dirs {
			if d == core.Wait {
				continue
			}
			dx, dy := d.Delta()
			nx, ny := cur.X+dx, cur.Y+dy
			if grid.IsObstacle(nx, ny) {
				continue
			}
			nc := grid.Cardinality(nx, ny)
			if dist[nc] != -1 {
				continue
			}
			dist[nc] = dist[curCard] + 1
			// Moving from (nx,ny) toward cur makes progress toward the
			// goal, i.e. along d's opposite direction.
			move[nc] = d.Opposite()
			queue = append(queue, core.Cell{X: nx, Y: ny})
		}
	}

	return dist, move
}

// DistTo returns the SIC distance from (x, y) to agent i's goal, or -1 if
// unreachable.
func (s *SIC) DistTo(agentIdx, x, y int) int {
	c := s.problem.Grid.Cardinality(x, y)
	if c < 0 {
		return -1
	}
	return s.dist[agentIdx][c]
}

// OptMove returns the best direction from (x, y) toward agent i's goal.
func (s *SIC) OptMove(agentIdx, x, y int) core.Direction {
	c := s.problem.Grid.Cardinality(x, y)
	return s.optMove[agentIdx][c]
}

// H returns the SIC estimate for a joint world state: the sum of each
// agent's distance to its own goal (spec.md §4.2).
func (s *SIC) H(state *core.WorldState) int {
	total := 0
	for i, as := range state.Agents {
		total += s.DistTo(i, as.X, as.Y)
	}
	return total
}

// HSingle returns the SIC estimate for a single agent at (x, y), used as
// the low-level A* heuristic (C7) and as EPEA*'s per-agent hBefore/hAfter.
func (s *SIC) HSingle(agentIdx, x, y int) int {
	return s.DistTo(agentIdx, x, y)
}

// ClearStats is a no-op for SIC; it exists to satisfy the heuristic
// capability shape described in spec.md §9 (init/h/clearStats). Pairs has
// no ClearStats and keeps no construction stats.
func (s *SIC) ClearStats() {}
