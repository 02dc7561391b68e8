package state

import (
	"sync"

	"github.com/elektrokombinacija/mapf-grid-solver/internal/core"
)

// CBSNodeInfo is one constraint-tree node as rendered by the CBS tree panel.
type CBSNodeInfo struct {
	ID         int
	ParentID   int // -1 for root
	Cost       int
	NConfl     int
	IsOpen     bool
	IsSolution bool
	Conflict   *core.Conflict
	Paths      []core.Path
}

// AlgoState tracks a running (or completed) CBS search for the tree panel
// and drives its pause/step controls. It knows nothing about internal/cbs;
// internal/vis/observer adapts a cbs.Observer onto it.
type AlgoState struct {
	mu sync.Mutex

	Active   bool
	Paused   bool
	Stepping bool

	Nodes       []*CBSNodeInfo
	byID        map[int]int // node ID -> index into Nodes
	CurrentNode int
	OpenSet     []int
	ClosedSet   []int

	NodesExpanded   int
	ConflictsFound  int
	CurrentConflict *core.Conflict

	stepChan chan struct{}
}

// NewAlgoState creates an empty algorithm state.
func NewAlgoState() *AlgoState {
	return &AlgoState{
		byID:        make(map[int]int),
		CurrentNode: -1,
		stepChan:    make(chan struct{}, 1),
	}
}

// Start resets the tree for a new search.
func (a *AlgoState) Start() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Active = true
	a.Paused = false
	a.Stepping = false
	a.Nodes = nil
	a.byID = make(map[int]int)
	a.OpenSet = nil
	a.ClosedSet = nil
	a.CurrentNode = -1
	a.NodesExpanded = 0
	a.ConflictsFound = 0
	a.CurrentConflict = nil
}

// Stop marks the search as finished (solved or exhausted).
func (a *AlgoState) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Active = false
	a.Paused = false
	a.Stepping = false
}

// Pause halts step-by-step advancement at the next expansion.
func (a *AlgoState) Pause() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Paused = true
}

// Resume releases a paused search to run freely.
func (a *AlgoState) Resume() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Paused = false
	select {
	case a.stepChan <- struct{}{}:
	default:
	}
}

// Step releases a paused search for exactly one node expansion.
func (a *AlgoState) Step() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Paused = true
	a.Stepping = true
	select {
	case a.stepChan <- struct{}{}:
	default:
	}
}

// WaitForStep blocks the solving goroutine until a step is allowed. Called
// through the observer's WaitForStep, which cbs.Solve invokes before
// popping each node, not from the render goroutine.
func (a *AlgoState) WaitForStep() {
	a.mu.Lock()
	paused := a.Paused
	a.mu.Unlock()
	if !paused {
		return
	}
	<-a.stepChan
}

// ShouldPause reports whether the solving goroutine should block.
func (a *AlgoState) ShouldPause() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.Paused
}

// AddNode records a newly-generated (not yet expanded) node.
func (a *AlgoState) AddNode(node *CBSNodeInfo) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, known := a.byID[node.ID]; known {
		return
	}
	node.IsOpen = true
	idx := len(a.Nodes)
	a.Nodes = append(a.Nodes, node)
	a.byID[node.ID] = idx
	a.OpenSet = append(a.OpenSet, node.ID)
}

// ExpandNode moves a node from the open set to the closed set and marks it
// current.
func (a *AlgoState) ExpandNode(nodeID int) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.CurrentNode = nodeID
	a.NodesExpanded++

	for i, id := range a.OpenSet {
		if id == nodeID {
			a.OpenSet = append(a.OpenSet[:i], a.OpenSet[i+1:]...)
			break
		}
	}
	a.ClosedSet = append(a.ClosedSet, nodeID)

	if idx, ok := a.byID[nodeID]; ok {
		a.Nodes[idx].IsOpen = false
	}
}

// RecordConflict records the conflict found at the current node.
func (a *AlgoState) RecordConflict(conflict *core.Conflict) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.ConflictsFound++
	a.CurrentConflict = conflict
	if idx, ok := a.byID[a.CurrentNode]; ok {
		a.Nodes[idx].Conflict = conflict
	}
}

// MarkSolution flags a node as the winning leaf.
func (a *AlgoState) MarkSolution(nodeID int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if idx, ok := a.byID[nodeID]; ok {
		a.Nodes[idx].IsSolution = true
	}
}

// GetNodes returns a snapshot of the tree's nodes.
func (a *AlgoState) GetNodes() []*CBSNodeInfo {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]*CBSNodeInfo, len(a.Nodes))
	copy(out, a.Nodes)
	return out
}

// GetCurrentNode returns the ID of the node most recently expanded, or -1.
func (a *AlgoState) GetCurrentNode() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.CurrentNode
}
