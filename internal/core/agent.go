package core

// Agent is an agent's immutable identity: a stable index and a goal cell.
type Agent struct {
	AgentNum int
	GoalX    int
	GoalY    int
}

// AgentState is an agent's mutable state during search (C3 of spec.md §3).
//
// CurrentStep is this agent's g (steps taken so far). ArrivalTime is the
// step at which the agent most recently arrived at its goal (0 while it has
// never left). Prev starts at -1 and is carried along unchanged; path
// reconstruction follows WorldState.Prev instead.
type AgentState struct {
	X, Y        int
	Dir         Direction
	CurrentStep int
	ArrivalTime int
	H           int
	Prev        int
}

// AtGoal reports whether the agent currently occupies its goal cell.
func (s AgentState) AtGoal(a Agent) bool {
	return s.X == a.GoalX && s.Y == a.GoalY
}

// Equal compares two AgentStates per spec.md §3: always (x, y, agent); in
// disjoint-splitting mode, additionally currentStep. agentNum identifies
// which agent this state belongs to within a WorldState, so it is supplied
// by the caller rather than stored redundantly on every state.
func (s AgentState) Equal(o AgentState, isDnC bool) bool {
	if s.X != o.X || s.Y != o.Y {
		return false
	}
	if isDnC && s.CurrentStep != o.CurrentStep {
		return false
	}
	return true
}
