package cbs

import (
	"fmt"
	"time"

	"github.com/elektrokombinacija/mapf-grid-solver/internal/containers"
	"github.com/elektrokombinacija/mapf-grid-solver/internal/core"
	"github.com/elektrokombinacija/mapf-grid-solver/internal/lowlevel"
)

// Stats reports search effort, mirroring the teacher's solver result
// bookkeeping (internal/algo solvers all return expansion/generation
// counts alongside the plan).
type Stats struct {
	Expansions int
	Bypasses   int
	Elapsed    time.Duration
}

// Solver runs CBS over a fixed problem instance, replanning single agents
// with the low-level search under h.
type Solver struct {
	problem  *core.ProblemInstance
	h        lowlevel.SingleHeuristic
	maxDepth int
	observer Observer
}

// New builds a Solver. h is typically *heuristic.SIC; it drives every
// low-level replan (C7).
func New(problem *core.ProblemInstance, h lowlevel.SingleHeuristic) *Solver {
	return &Solver{
		problem:  problem,
		h:        h,
		maxDepth: problem.Grid.NumLocations()*(problem.NumAgents()+1) + 64,
	}
}

// Solve runs CBS to completion (or until maxTimeMs elapses).
func (s *Solver) Solve(maxTimeMs int64) (*core.Plan, Stats, error) {
	start := time.Now()
	deadline := start.Add(time.Duration(maxTimeMs) * time.Millisecond)
	stats := Stats{}

	root := &node{parentID: -1}
	paths, ok := s.planAll(&root.constraints, nil)
	if !ok {
		stats.Elapsed = time.Since(start)
		return nil, stats, core.ErrUnsolvable
	}
	root.paths = paths
	root.cost = pathsCost(paths)
	root.nConfl = len(core.FindAllConflicts(paths))

	open := containers.New(lessNode)
	seq := 1
	nodeID := 1
	open.Push(root)

	for open.Len() > 0 {
		if maxTimeMs > 0 && time.Now().After(deadline) {
			stats.Elapsed = time.Since(start)
			return nil, stats, fmt.Errorf("%w: cbs deadline exceeded after %d expansions", core.ErrUnsolvable, stats.Expansions)
		}

		if s.observer != nil && s.observer.ShouldPause() {
			s.observer.WaitForStep()
		}

		cur := open.Pop()
		stats.Expansions++
		s.notifyExpanded(cur)

		conflict := core.FindFirstConflict(cur.paths)
		if conflict == nil {
			plan := &core.Plan{Paths: cur.paths}
			if s.observer != nil {
				s.observer.OnSolutionFound(cur.id, plan)
			}
			stats.Elapsed = time.Since(start)
			return plan, stats, nil
		}
		if s.observer != nil {
			s.observer.OnConflictDetected(cur.id, conflict)
		}

		c1, ok1 := s.branch(cur, conflict, conflict.Agent1, conflict.Agent2)
		c2, ok2 := s.branch(cur, conflict, conflict.Agent2, conflict.Agent1)

		if s.problem.Config.Bypass {
			if ok1 && c1.cost == cur.cost && c1.nConfl < cur.nConfl {
				stats.Bypasses++
				cur.constraints, cur.paths, cur.nConfl = c1.constraints, c1.paths, c1.nConfl
				cur.seq = seq
				seq++
				open.Push(cur)
				continue
			}
			if ok2 && c2.cost == cur.cost && c2.nConfl < cur.nConfl {
				stats.Bypasses++
				cur.constraints, cur.paths, cur.nConfl = c2.constraints, c2.paths, c2.nConfl
				cur.seq = seq
				seq++
				open.Push(cur)
				continue
			}
		}

		if ok1 {
			c1.seq = seq
			seq++
			c1.id = nodeID
			c1.parentID = cur.id
			nodeID++
			open.Push(c1)
		}
		if ok2 {
			c2.seq = seq
			seq++
			c2.id = nodeID
			c2.parentID = cur.id
			nodeID++
			open.Push(c2)
		}
	}

	stats.Elapsed = time.Since(start)
	return nil, stats, core.ErrUnsolvable
}

// branch builds the child that forbids `forbidden` from the conflicting
// cell/edge, replanning forbidden (and, under disjoint splitting, every
// other agent whose current path would violate the new constraint).
func (s *Solver) branch(parent *node, conflict *core.Conflict, forbidden, other int) (*node, bool) {
	var constraints lowlevel.Constraints
	var mustReplan []int

	if conflict.IsSwap {
		ec := lowlevel.EdgeConstraint{
			Agent: forbidden,
			FromX: conflict.SwapFrom.X, FromY: conflict.SwapFrom.Y,
			ToX: conflict.SwapTo.X, ToY: conflict.SwapTo.Y,
			Time: conflict.Time,
		}
		constraints = parent.withEdges(ec)
		mustReplan = []int{forbidden}
	} else {
		vc := lowlevel.VertexConstraint{Agent: forbidden, X: conflict.Cell.X, Y: conflict.Cell.Y, Time: conflict.Time}
		constraints = parent.withVertices(vc)
		mustReplan = []int{forbidden}

		if s.problem.Config.CBSSplitMode == core.SplitDisjoint {
			// Disjoint/global splitting: the other branch requires `other`
			// to occupy the cell, which implicitly forbids every agent but
			// `other` from it at that time. We only add the constraint
			// for `forbidden` (the branch under construction already does
			// that above); replanning any additional agent that currently
			// passes through the cell at that time is handled by also
			// scanning every agent besides `other` for a collision with
			// the newly-forbidden cell.
			for i, p := range parent.paths {
				if i == forbidden || i == other {
					continue
				}
				if cell, ok := cellAtTime(p, conflict.Time); ok && cell == conflict.Cell {
					constraints = appendVertex(constraints, lowlevel.VertexConstraint{Agent: i, X: conflict.Cell.X, Y: conflict.Cell.Y, Time: conflict.Time})
					mustReplan = append(mustReplan, i)
				}
			}
		}
	}

	child := &node{constraints: constraints}
	replanned, ok := s.planAll(&constraints, mustReplan)
	if !ok {
		return nil, false
	}
	paths := make([]core.Path, len(parent.paths))
	copy(paths, parent.paths)
	for _, i := range mustReplan {
		paths[i] = replanned[i]
	}

	child.paths = paths
	child.cost = pathsCost(paths)
	child.nConfl = len(core.FindAllConflicts(paths))
	return child, true
}

func appendVertex(c lowlevel.Constraints, vc lowlevel.VertexConstraint) lowlevel.Constraints {
	vs := make([]lowlevel.VertexConstraint, len(c.Vertex), len(c.Vertex)+1)
	copy(vs, c.Vertex)
	vs = append(vs, vc)
	return lowlevel.Constraints{Vertex: vs, Edge: c.Edge}
}

func cellAtTime(path core.Path, t int) (core.Cell, bool) {
	if len(path) == 0 {
		return core.Cell{}, false
	}
	if t < len(path) {
		return core.Cell{X: path[t].X, Y: path[t].Y}, true
	}
	last := path[len(path)-1]
	return core.Cell{X: last.X, Y: last.Y}, true
}

// planAll replans every agent in `only` (or every agent, if only is nil)
// under constraints, returning one path per agent (others left zero-valued
// — callers that pass a non-nil `only` merge the results themselves).
func (s *Solver) planAll(constraints *lowlevel.Constraints, only []int) ([]core.Path, bool) {
	n := s.problem.NumAgents()
	paths := make([]core.Path, n)

	agents := only
	if agents == nil {
		agents = make([]int, n)
		for i := range agents {
			agents[i] = i
		}
	}

	for _, i := range agents {
		agent := s.problem.Agents[i]
		start := s.problem.Starts[i]
		path, ok := lowlevel.Search(s.problem.Grid, s.h, agent, i, start.X, start.Y, constraints, s.problem.Config.NumAllowedDirections, s.maxDepth)
		if !ok {
			return nil, false
		}
		paths[i] = path
	}
	return paths, true
}

func (s *Solver) notifyExpanded(n *node) {
	if s.observer == nil {
		return
	}
	paths := make([]core.Path, len(n.paths))
	for i, p := range n.paths {
		cp := make(core.Path, len(p))
		copy(cp, p)
		paths[i] = cp
	}
	s.observer.OnNodeExpanded(NodeInfo{ID: n.id, ParentID: n.parentID, Cost: n.cost, NConfl: n.nConfl, Paths: paths})
}

func pathsCost(paths []core.Path) int {
	total := 0
	for _, p := range paths {
		if len(p) == 0 {
			continue
		}
		total += p[len(p)-1].Time
	}
	return total
}
