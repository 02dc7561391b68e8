package cbs

import "github.com/elektrokombinacija/mapf-grid-solver/internal/core"

// NodeInfo is a snapshot of one constraint-tree node, handed to an Observer
// at the points in Solve's loop where the visualizer (cmd/mapfvis) wants to
// render the tree as it grows.
type NodeInfo struct {
	ID       int
	ParentID int // -1 for the root
	Cost     int
	NConfl   int
	Paths    []core.Path
}

// Observer receives callbacks as Solve explores the constraint tree. The
// On* callbacks should copy what they need and return quickly; Solve does
// not expect them to block. ShouldPause/WaitForStep are the one place
// Solve deliberately blocks on the observer, so a step-through visualizer
// can single-step the real search instead of driving a second copy of it.
type Observer interface {
	OnNodeExpanded(info NodeInfo)
	OnConflictDetected(nodeID int, conflict *core.Conflict)
	OnSolutionFound(nodeID int, plan *core.Plan)

	// ShouldPause reports whether Solve should block before popping its
	// next node. WaitForStep blocks until the observer releases one step.
	ShouldPause() bool
	WaitForStep()
}

// SetObserver attaches obs to the solver; pass nil to detach. Observer
// callbacks add no behavior to the search itself, only visibility into it.
func (s *Solver) SetObserver(obs Observer) {
	s.observer = obs
}
