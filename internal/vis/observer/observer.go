// Package observer adapts internal/vis/state.AlgoState onto the real
// internal/cbs.Observer interface, so the visualizer's CBS tree panel
// drives the actual solver instead of a second, GUI-only reimplementation
// of CBS.
package observer

import (
	"github.com/elektrokombinacija/mapf-grid-solver/internal/cbs"
	"github.com/elektrokombinacija/mapf-grid-solver/internal/core"
	"github.com/elektrokombinacija/mapf-grid-solver/internal/vis/state"
)

// AlgoStateObserver implements cbs.Observer on top of an *state.AlgoState.
type AlgoStateObserver struct {
	state *state.AlgoState
}

// NewAlgoStateObserver creates an observer backed by as.
func NewAlgoStateObserver(as *state.AlgoState) *AlgoStateObserver {
	return &AlgoStateObserver{state: as}
}

// OnNodeExpanded implements cbs.Observer.
func (o *AlgoStateObserver) OnNodeExpanded(info cbs.NodeInfo) {
	o.state.AddNode(&state.CBSNodeInfo{
		ID:       info.ID,
		ParentID: info.ParentID,
		Cost:     info.Cost,
		NConfl:   info.NConfl,
		Paths:    info.Paths,
	})
	o.state.ExpandNode(info.ID)
}

// OnConflictDetected implements cbs.Observer.
func (o *AlgoStateObserver) OnConflictDetected(nodeID int, conflict *core.Conflict) {
	o.state.RecordConflict(conflict)
}

// OnSolutionFound implements cbs.Observer.
func (o *AlgoStateObserver) OnSolutionFound(nodeID int, plan *core.Plan) {
	o.state.MarkSolution(nodeID)
	o.state.Stop()
}

// ShouldPause implements cbs.Observer.
func (o *AlgoStateObserver) ShouldPause() bool {
	return o.state.ShouldPause()
}

// WaitForStep implements cbs.Observer.
func (o *AlgoStateObserver) WaitForStep() {
	o.state.WaitForStep()
}
