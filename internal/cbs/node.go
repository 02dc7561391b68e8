// Package cbs implements the high-level Conflict-Based Search solver (C9 of
// spec.md §4.6): a constraint tree over pairwise conflicts, best-first by
// solution cost, wrapping the single-agent low-level planner (C7).
package cbs

import (
	"github.com/elektrokombinacija/mapf-grid-solver/internal/core"
	"github.com/elektrokombinacija/mapf-grid-solver/internal/lowlevel"
)

// node is one constraint-tree node: a full set of per-agent constraints, the
// resulting single-agent paths under them, and the bookkeeping the open
// list's tie-break chain needs (spec.md §4.6's "cost, then conflict count,
// then insertion order").
type node struct {
	constraints lowlevel.Constraints
	paths       []core.Path
	cost        int
	nConfl      int
	idx         int
	seq         int
	id          int
	parentID    int
}

func (n *node) HeapIndex() int     { return n.idx }
func (n *node) SetHeapIndex(i int) { n.idx = i }

func lessNode(a, b *node) bool {
	if a.cost != b.cost {
		return a.cost < b.cost
	}
	if a.nConfl != b.nConfl {
		return a.nConfl < b.nConfl
	}
	return a.seq < b.seq
}

// withVertices returns a new constraint set extending n's with more vertex
// constraints, without mutating n's slices — siblings must not alias each
// other's backing array, since CBS children share a logical persistent map
// but Go slices don't give that for free under append.
func (n *node) withVertices(vcs ...lowlevel.VertexConstraint) lowlevel.Constraints {
	vs := make([]lowlevel.VertexConstraint, len(n.constraints.Vertex), len(n.constraints.Vertex)+len(vcs))
	copy(vs, n.constraints.Vertex)
	vs = append(vs, vcs...)
	return lowlevel.Constraints{Vertex: vs, Edge: n.constraints.Edge}
}

func (n *node) withEdges(ecs ...lowlevel.EdgeConstraint) lowlevel.Constraints {
	es := make([]lowlevel.EdgeConstraint, len(n.constraints.Edge), len(n.constraints.Edge)+len(ecs))
	copy(es, n.constraints.Edge)
	es = append(es, ecs...)
	return lowlevel.Constraints{Vertex: n.constraints.Vertex, Edge: es}
}
