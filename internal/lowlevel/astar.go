// Package lowlevel implements the single-agent constrained A* search used
// by CBS (C7 of spec.md §4.4).
package lowlevel

import (
	"github.com/elektrokombinacija/mapf-grid-solver/internal/containers"
	"github.com/elektrokombinacija/mapf-grid-solver/internal/core"
)

// SingleHeuristic is the capability a single-agent search needs: the exact
// or admissible distance from (x, y) to a given agent's goal. *heuristic.SIC
// satisfies this.
type SingleHeuristic interface {
	HSingle(agentIdx, x, y int) int
}

// VertexConstraint forbids an agent from occupying a cell at a time.
type VertexConstraint struct {
	Agent   int
	X, Y    int
	Time    int
}

// EdgeConstraint forbids an agent from moving between two cells during the
// step that arrives at Time (i.e. leaving FromX,FromY at Time-1 and
// arriving ToX,ToY at Time, in either direction — this also rules out the
// swap the conflicting agent made).
type EdgeConstraint struct {
	Agent                  int
	FromX, FromY, ToX, ToY int
	Time                   int
}

// Constraints is the full constraint set passed to one low-level search.
type Constraints struct {
	Vertex []VertexConstraint
	Edge   []EdgeConstraint
}

// maxConstraintTime returns the deepest timestep any constraint restricts
// for this agent, or -1 if none apply — used to decide whether the agent
// must keep moving/waiting past a naive goal arrival (spec.md §4.4).
func (c *Constraints) maxConstraintTime(agent int) int {
	max := -1
	for _, vc := range c.Vertex {
		if vc.Agent == agent && vc.Time > max {
			max = vc.Time
		}
	}
	for _, ec := range c.Edge {
		if ec.Agent == agent && ec.Time > max {
			max = ec.Time
		}
	}
	return max
}

func (c *Constraints) vertexForbidden(agent, x, y, t int) bool {
	for _, vc := range c.Vertex {
		if vc.Agent == agent && vc.X == x && vc.Y == y && vc.Time == t {
			return true
		}
	}
	return false
}

func (c *Constraints) edgeForbidden(agent, fx, fy, tx, ty, t int) bool {
	for _, ec := range c.Edge {
		if ec.Agent != agent || ec.Time != t {
			continue
		}
		if ec.FromX == fx && ec.FromY == fy && ec.ToX == tx && ec.ToY == ty {
			return true
		}
		if ec.FromX == tx && ec.FromY == ty && ec.ToX == fx && ec.ToY == fy {
			return true
		}
	}
	return false
}

type node struct {
	x, y, t int
	g, h    int
	parent  *node
	idx     int
}

func (n *node) HeapIndex() int     { return n.idx }
func (n *node) SetHeapIndex(i int) { n.idx = i }

func lessNode(a, b *node) bool {
	fa, fb := a.g+a.h, b.g+b.h
	if fa != fb {
		return fa < fb
	}
	return a.t > b.t // prefer deeper nodes on ties, per spec.md §4.1
}

type nodeKey struct{ x, y, t int }

// Search finds a minimum-cost timed path for one agent from (startX,startY)
// at time 0 to its goal, obeying constraints, using h as the A* heuristic.
// It returns (path, true) on success or (nil, false) if no such path
// exists within maxDepth timesteps.
func Search(
	grid *core.Grid,
	h SingleHeuristic,
	agent core.Agent,
	agentIdx int,
	startX, startY int,
	constraints *Constraints,
	numAllowedDirections int,
	maxDepth int,
) (core.Path, bool) {
	mustStayUntil := constraints.maxConstraintTime(agentIdx)

	open := containers.New(lessNode)
	closed := make(map[nodeKey]int)

	start := &node{x: startX, y: startY, t: 0, g: 0, h: h.HSingle(agentIdx, startX, startY)}
	open.Push(start)

	dirs := core.DirectionSet(numAllowedDirections)

	for open.Len() > 0 {
		cur := open.Pop()
		key := nodeKey{cur.x, cur.y, cur.t}
		if g, ok := closed[key]; ok && g <= cur.g {
			continue
		}
		closed[key] = cur.g

		if cur.x == agent.GoalX && cur.y == agent.GoalY && cur.t >= mustStayUntil {
			return reconstruct(cur), true
		}
		if cur.t >= maxDepth {
			continue
		}

		for _, d := range dirs {
			dx, dy := d.Delta()
			nx, ny := cur.x+dx, cur.y+dy
			if grid.IsObstacle(nx, ny) {
				continue
			}
			nt := cur.t + 1
			if constraints.vertexForbidden(agentIdx, nx, ny, nt) {
				continue
			}
			if constraints.edgeForbidden(agentIdx, cur.x, cur.y, nx, ny, nt) {
				continue
			}
			nKey := nodeKey{nx, ny, nt}
			ng := cur.g + 1
			if g, ok := closed[nKey]; ok && g <= ng {
				continue
			}
			child := &node{
				x: nx, y: ny, t: nt,
				g:      ng,
				h:      h.HSingle(agentIdx, nx, ny),
				parent: cur,
			}
			open.Push(child)
		}
	}

	return nil, false
}

func reconstruct(n *node) core.Path {
	var path core.Path
	for cur := n; cur != nil; cur = cur.parent {
		dir := core.Wait
		if cur.parent != nil {
			dir = directionBetween(cur.parent.x, cur.parent.y, cur.x, cur.y)
		}
		path = append(core.Path{{Move: core.Move{X: cur.x, Y: cur.y, Dir: dir}, Time: cur.t}}, path...)
	}
	return path
}

func directionBetween(fx, fy, tx, ty int) core.Direction {
	for _, d := range core.Directions9 {
		dx, dy := d.Delta()
		if fx+dx == tx && fy+dy == ty {
			return d
		}
	}
	return core.Wait
}
