package epea

import "github.com/elektrokombinacija/mapf-grid-solver/internal/core"

// singleHeuristic is the minimal capability a per-agent heuristic needs to
// drive EPEA* with one group per agent (SIC's natural grouping).
type singleHeuristic interface {
	HSingle(agentIdx, x, y int) int
}

// SICGroups adapts a per-agent heuristic (*heuristic.SIC) into the
// group-based Heuristic interface the engine expects, one singleton group
// per agent — spec.md §4.5's default, non-pairs grouping.
type SICGroups struct {
	h singleHeuristic
	n int
}

// NewSICGroups wraps h (typically *heuristic.SIC) for n agents.
func NewSICGroups(h singleHeuristic, n int) *SICGroups {
	return &SICGroups{h: h, n: n}
}

func (s *SICGroups) NumGroups() int { return s.n }

func (s *SICGroups) GroupAgents(g int) []int { return []int{g} }

func (s *SICGroups) HAt(g int, cells []core.Cell) int {
	return s.h.HSingle(g, cells[0].X, cells[0].Y)
}
