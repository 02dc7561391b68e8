package epea

import (
	"fmt"
	"time"

	"github.com/elektrokombinacija/mapf-grid-solver/internal/containers"
	"github.com/elektrokombinacija/mapf-grid-solver/internal/core"
)

// Stats reports search effort, mirroring the teacher's solver result
// bookkeeping (internal/algo solvers all return expansion/generation
// counts alongside the plan).
type Stats struct {
	Expansions int
	Generated  int
	Elapsed    time.Duration
}

// Engine runs EPEA* with Operator Decomposition over a fixed problem
// instance and heuristic (spec.md §4.5).
type Engine struct {
	problem *core.ProblemInstance
	heur    Heuristic
	dirs    []core.Direction
}

// New builds an Engine for one problem instance and heuristic. The
// heuristic must partition the instance's agents into the groups it
// reports via NumGroups/GroupAgents.
func New(problem *core.ProblemInstance, heur Heuristic) *Engine {
	return &Engine{
		problem: problem,
		heur:    heur,
		dirs:    core.DirectionSet(problem.Config.NumAllowedDirections),
	}
}

// Solve runs EPEA* to completion (or until maxTimeMs elapses) and returns a
// Plan with one path per agent, in agent order.
func (e *Engine) Solve(maxTimeMs int64) (*core.Plan, Stats, error) {
	deadline := time.Now().Add(time.Duration(maxTimeMs) * time.Millisecond)
	stats := Stats{}
	start := time.Now()

	root := &node{state: e.problem.InitialWorldState(), seq: 0}
	root.state.H = FullH(e.heur, root.state)

	open := containers.New(lessNode)
	closed := make(map[interface{}]int)
	seq := 1

	open.Push(root)

	for open.Len() > 0 {
		if maxTimeMs > 0 && time.Now().After(deadline) {
			stats.Elapsed = time.Since(start)
			return nil, stats, fmt.Errorf("%w: epea deadline exceeded after %d expansions", core.ErrUnsolvable, stats.Expansions)
		}

		cur := open.Peek()
		key := cur.state.Key(e.problem.Config.SumOfCostsVariant)
		if g, ok := closed[key]; ok && g < cur.state.G {
			open.Pop()
			continue
		}

		if cur.state.IsGoal(e.problem.Agents) {
			open.Pop()
			stats.Elapsed = time.Since(start)
			return reconstructPlan(cur.state, e.problem.NumAgents()), stats, nil
		}

		e.buildPayload(cur)

		// Skip passes with no combination reaching the target exactly,
		// instead of calling expandPass (and counting an expansion) for
		// nothing.
		for cur.targetDeltaF <= cur.maxDeltaF && !e.existsChildForF(cur, 0, cur.targetDeltaF) {
			cur.targetDeltaF++
		}

		if cur.targetDeltaF > cur.maxDeltaF {
			open.Pop()
			closed[key] = cur.state.G
			continue
		}

		children := e.expandPass(cur)
		stats.Expansions++

		cur.targetDeltaF++
		if cur.targetDeltaF <= cur.maxDeltaF {
			// More passes remain at a higher ΔF: reinsert the same node
			// with its h raised so it re-competes at the right f (spec.md
			// §4.5 step 3).
			cur.state.H = cur.baseH + cur.targetDeltaF
			open.Fix(cur)
		} else {
			open.Pop()
			closed[key] = cur.state.G
		}

		for _, child := range children {
			childKey := child.state.Key(e.problem.Config.SumOfCostsVariant)
			if g, ok := closed[childKey]; ok && g <= child.state.G {
				continue
			}
			child.seq = seq
			seq++
			stats.Generated++
			open.Push(child)
		}
	}

	stats.Elapsed = time.Since(start)
	return nil, stats, core.ErrUnsolvable
}

// buildPayload computes, once per node, the legal per-group direction
// combinations and their ΔF (spec.md §4.5 §7: singleAgentΔF/maxΔF), plus a
// fresh feasibility memo table.
func (e *Engine) buildPayload(n *node) {
	if n.payloadBuilt {
		return
	}
	numGroups := e.heur.NumGroups()
	n.combos = make([][]groupCombo, numGroups)
	n.maxDeltaF = 0
	n.baseH = n.state.H
	n.feasCache = make(map[feasKey]int8)

	for g := 0; g < numGroups; g++ {
		combos := e.groupCombos(n.state, g)
		n.combos[g] = combos
		maxDelta := 0
		for _, c := range combos {
			if d := c.delta(); d > maxDelta {
				maxDelta = d
			}
		}
		n.maxDeltaF += maxDelta
	}
	n.targetDeltaF = 0
	n.payloadBuilt = true
}

// groupCombos enumerates every legal joint direction assignment for the
// agents in group g, filtering obstacles and the group's own internal
// vertex/swap collisions, and computes each combo's ΔF.
func (e *Engine) groupCombos(state *core.WorldState, g int) []groupCombo {
	agentIdxs := e.heur.GroupAgents(g)
	grid := e.problem.Grid

	oldCells := make([]core.Cell, len(agentIdxs))
	for i, a := range agentIdxs {
		oldCells[i] = core.Cell{X: state.Agents[a].X, Y: state.Agents[a].Y}
	}
	oldH := e.heur.HAt(g, oldCells)

	var out []groupCombo
	if len(agentIdxs) == 1 {
		a := agentIdxs[0]
		for _, d := range e.dirs {
			dx, dy := d.Delta()
			nx, ny := state.Agents[a].X+dx, state.Agents[a].Y+dy
			if grid.IsObstacle(nx, ny) {
				continue
			}
			cells := []core.Cell{{X: nx, Y: ny}}
			newH := e.heur.HAt(g, cells)
			out = append(out, groupCombo{
				dirs: []core.Direction{d}, cells: cells,
				deltaG: e.agentDeltaG(a, state, d), deltaH: newH - oldH,
			})
		}
		return out
	}

	a0, a1 := agentIdxs[0], agentIdxs[1]
	for _, d0 := range e.dirs {
		dx0, dy0 := d0.Delta()
		nx0, ny0 := state.Agents[a0].X+dx0, state.Agents[a0].Y+dy0
		if grid.IsObstacle(nx0, ny0) {
			continue
		}
		for _, d1 := range e.dirs {
			dx1, dy1 := d1.Delta()
			nx1, ny1 := state.Agents[a1].X+dx1, state.Agents[a1].Y+dy1
			if grid.IsObstacle(nx1, ny1) {
				continue
			}
			if nx0 == nx1 && ny0 == ny1 {
				continue // internal vertex conflict
			}
			if nx0 == oldCells[1].X && ny0 == oldCells[1].Y && nx1 == oldCells[0].X && ny1 == oldCells[0].Y {
				continue // internal swap conflict
			}
			cells := []core.Cell{{X: nx0, Y: ny0}, {X: nx1, Y: ny1}}
			newH := e.heur.HAt(g, cells)
			out = append(out, groupCombo{
				dirs: []core.Direction{d0, d1}, cells: cells,
				deltaG: e.agentDeltaG(a0, state, d0) + e.agentDeltaG(a1, state, d1),
				deltaH: newH - oldH,
			})
		}
	}
	return out
}

// deltaG is the g-contribution of one agent's move, independent of which
// heuristic is driving the search (spec.md §4.5 §7):
//   - waiting at its own goal costs 0 under both cost variants;
//   - leaving its goal costs a lump sum of the accumulated free wait under
//     Original, or a flat 1 under WaitingAtGoalAlwaysFree;
//   - any other move (or a wait away from goal) costs 1.
func (e *Engine) agentDeltaG(agentIdx int, state *core.WorldState, dir core.Direction) int {
	as := state.Agents[agentIdx]
	agent := e.problem.Agents[agentIdx]
	atGoal := as.X == agent.GoalX && as.Y == agent.GoalY

	if atGoal && dir == core.Wait {
		return 0
	}
	if atGoal {
		if e.problem.Config.SumOfCostsVariant == core.Original {
			return (state.Makespan - as.ArrivalTime) + 1
		}
		return 1
	}
	return 1
}

// existsChildForF reports whether some combination of combos for groups
// [g, numGroups) sums exactly to remaining (spec.md §4.5 §7), memoized per
// node since the same (g, remaining) pair recurs across many branches of
// the OD walk.
func (e *Engine) existsChildForF(n *node, g, remaining int) bool {
	if g == len(n.combos) {
		return remaining == 0
	}
	key := feasKey{group: g, remaining: remaining}
	if v, ok := n.feasCache[key]; ok {
		return v == 1
	}
	found := false
	for _, c := range n.combos[g] {
		if d := c.delta(); d <= remaining && e.existsChildForF(n, g+1, remaining-d) {
			found = true
			break
		}
	}
	if found {
		n.feasCache[key] = 1
	} else {
		n.feasCache[key] = 2
	}
	return found
}

// expandPass performs one OD walk for n.targetDeltaF: a depth-first
// traversal over groups that only follows combos whose delta keeps
// remainingΔF reachable to exactly zero, collecting every resulting full
// joint state whose agents don't collide across groups (spec.md §4.5 §2).
func (e *Engine) expandPass(n *node) []*node {
	var out []*node
	agents := make([]core.AgentState, len(n.state.Agents))
	copy(agents, n.state.Agents)

	type placed struct {
		oldX, oldY int
		newX, newY int
	}
	committed := make([]placed, 0, len(agents))
	runG := 0

	var walk func(g, remaining int)
	walk = func(g, remaining int) {
		if g == len(n.combos) {
			if remaining != 0 {
				return
			}
			child := e.buildChild(n.state, n.baseH, agents, runG, n.targetDeltaF-runG)
			out = append(out, &node{state: child})
			return
		}
		agentIdxs := e.heur.GroupAgents(g)
		for _, c := range n.combos[g] {
			d := c.delta()
			if d > remaining || !e.existsChildForF(n, g+1, remaining-d) {
				continue
			}

			collision := false
			for i, a := range agentIdxs {
				nc := c.cells[i]
				for _, p := range committed {
					if p.newX == nc.X && p.newY == nc.Y {
						collision = true
					}
					if nc.X == p.oldX && nc.Y == p.oldY && n.state.Agents[a].X == p.newX && n.state.Agents[a].Y == p.newY {
						collision = true
					}
					if collision {
						break
					}
				}
				if collision {
					break
				}
			}
			if collision {
				continue
			}

			mark := len(committed)
			savedAgents := make([]core.AgentState, len(agentIdxs))
			for i, a := range agentIdxs {
				savedAgents[i] = agents[a]
				committed = append(committed, placed{
					oldX: n.state.Agents[a].X, oldY: n.state.Agents[a].Y,
					newX: c.cells[i].X, newY: c.cells[i].Y,
				})
				agents[a] = applyMove(agents[a], c.cells[i], c.dirs[i])
			}
			runG += c.deltaG

			walk(g+1, remaining-d)

			runG -= c.deltaG
			committed = committed[:mark]
			for i, a := range agentIdxs {
				agents[a] = savedAgents[i]
			}
		}
	}

	walk(0, n.targetDeltaF)
	return out
}

func applyMove(as core.AgentState, to core.Cell, dir core.Direction) core.AgentState {
	as.X, as.Y, as.Dir = to.X, to.Y, dir
	as.CurrentStep++
	return as
}

// buildChild finishes the per-agent bookkeeping for a newly committed joint
// step — recording ArrivalTime the moment an agent newly reaches its own
// goal — and assembles the child WorldState with G advanced by exactly
// deltaG and H set to baseH (the parent's h before any pass raised it) plus
// deltaH (their sum is always n.targetDeltaF, so child.F() == the parent's
// original F + targetΔF).
func (e *Engine) buildChild(parent *core.WorldState, baseH int, agents []core.AgentState, deltaG, deltaH int) *core.WorldState {
	finalAgents := make([]core.AgentState, len(agents))
	copy(finalAgents, agents)
	for i, goal := range e.problem.Agents {
		wasAtGoal := parent.Agents[i].X == goal.GoalX && parent.Agents[i].Y == goal.GoalY
		isAtGoal := finalAgents[i].X == goal.GoalX && finalAgents[i].Y == goal.GoalY
		if isAtGoal && !wasAtGoal {
			finalAgents[i].ArrivalTime = finalAgents[i].CurrentStep
		}
	}
	child := &core.WorldState{
		Agents:    finalAgents,
		G:         parent.G + deltaG,
		H:         baseH + deltaH,
		AgentTurn: 0,
		Prev:      parent,
	}
	child.RecomputeMakespan()
	return child
}
