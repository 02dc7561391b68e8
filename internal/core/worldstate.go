package core

// WorldState is a joint state over all agents (C6 of spec.md §3): an
// ordered tuple of per-agent AgentStates plus the bookkeeping the search
// needs to rank and reconstruct nodes.
//
// AgentTurn is the Operator Decomposition cursor: 0 means every agent has
// committed to a move this step (a "full" joint state); a value in
// [1, N) means agents [0, AgentTurn) have committed and the rest still
// hold their previous-step positions, used only internally by the EPEA*
// engine's OD walk.
//
// Prev is a back-pointer to the parent state. Go's garbage collector
// reclaims the DAG once a branch is unreferenced by both the open and
// closed sets and by the solution chain, so no manual arena bookkeeping is
// needed (the teacher's *astarNode uses the same plain-pointer parent
// chain).
type WorldState struct {
	Agents    []AgentState
	G         int
	H         int
	Makespan  int
	AgentTurn int
	Prev      *WorldState
}

// F is the evaluation function g + h.
func (s *WorldState) F() int { return s.G + s.H }

// IsGoal reports whether every agent occupies its goal cell and the state
// is fully committed (AgentTurn == 0).
func (s *WorldState) IsGoal(agents []Agent) bool {
	if s.AgentTurn != 0 {
		return false
	}
	for i, a := range agents {
		if !s.Agents[i].AtGoal(a) {
			return false
		}
	}
	return true
}

// RecomputeMakespan sets Makespan to the max CurrentStep across agents.
func (s *WorldState) RecomputeMakespan() {
	m := 0
	for _, as := range s.Agents {
		if as.CurrentStep > m {
			m = as.CurrentStep
		}
	}
	s.Makespan = m
}

// stateKey is the canonical identity of a WorldState for closed-set
// lookups: per-agent (x, y), the OD cursor, and (only under the Original
// cost variant) the makespan — see spec.md §3.
type stateKey struct {
	positions string // packed "x,y;x,y;..." — comparable, cheap to build
	agentTurn int
	makespan  int
}

// Key returns the canonical identity used for closed-set membership,
// respecting the configured cost variant (spec.md §3, §9).
func (s *WorldState) Key(variant SumOfCostsVariant) stateKey {
	buf := make([]byte, 0, len(s.Agents)*10)
	for i, as := range s.Agents {
		if i > 0 {
			buf = append(buf, ';')
		}
		buf = appendInt(buf, as.X)
		buf = append(buf, ',')
		buf = appendInt(buf, as.Y)
	}
	k := stateKey{positions: string(buf), agentTurn: s.AgentTurn}
	if variant == Original {
		k.makespan = s.Makespan
	}
	return k
}

func appendInt(buf []byte, v int) []byte {
	if v == 0 {
		return append(buf, '0')
	}
	neg := v < 0
	if neg {
		v = -v
	}
	start := len(buf)
	for v > 0 {
		buf = append(buf, byte('0'+v%10))
		v /= 10
	}
	if neg {
		buf = append(buf, '-')
	}
	// reverse the digits just appended
	for i, j := start, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return buf
}
