package epea

import "github.com/elektrokombinacija/mapf-grid-solver/internal/core"

// groupCombo is one legal assignment of directions to a group's agents
// (length 1 or 2, matching Heuristic.GroupAgents) together with the ΔF it
// contributes, collision-checked only within the group itself — cross-group
// collisions are caught during the OD walk in expandPass.
type groupCombo struct {
	dirs    []core.Direction
	cells   []core.Cell
	deltaG  int
	deltaH  int
}

// delta is this combo's contribution to ΔF, used for feasibility pruning
// and for partitioning nodes across passes (spec.md §4.5 §7).
func (c groupCombo) delta() int { return c.deltaG + c.deltaH }

// node wraps a joint WorldState with the open-list bookkeeping and the
// partial-expansion payload computed lazily by buildPayload the first time
// the node reaches the top of the open list (spec.md §4.5
// §7: singleAgentΔF/maxΔF/targetΔF, memoized existsChildForF).
type node struct {
	state *core.WorldState
	idx   int
	seq   int // insertion order, for stable tie-breaking

	payloadBuilt bool
	combos       [][]groupCombo // combos[g] = legal combos for group g
	baseH        int            // state.H at the moment the payload was built
	maxDeltaF    int
	targetDeltaF int
	feasCache    map[feasKey]int8 // 0 unknown, 1 yes, 2 no
}

type feasKey struct {
	group     int
	remaining int
}

func (n *node) HeapIndex() int     { return n.idx }
func (n *node) SetHeapIndex(i int) { n.idx = i }

func lessNode(a, b *node) bool {
	fa, fb := a.state.F(), b.state.F()
	if fa != fb {
		return fa < fb
	}
	if a.state.Makespan != b.state.Makespan {
		return a.state.Makespan > b.state.Makespan // prefer deeper nodes on ties, per spec.md §4.1
	}
	return a.seq < b.seq
}
