package epea

import "github.com/elektrokombinacija/mapf-grid-solver/internal/core"

// reconstructPlan walks a goal WorldState's Prev chain back to the root and
// builds one core.Path per agent in timestep order.
func reconstructPlan(goal *core.WorldState, numAgents int) *core.Plan {
	var chain []*core.WorldState
	for s := goal; s != nil; s = s.Prev {
		chain = append(chain, s)
	}
	// chain is goal-to-root; reverse it to root-to-goal.
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}

	paths := make([]core.Path, numAgents)
	for i := range paths {
		paths[i] = make(core.Path, 0, len(chain))
	}
	for t, s := range chain {
		for i, as := range s.Agents {
			paths[i] = append(paths[i], core.TimedMove{
				Move: core.Move{X: as.X, Y: as.Y, Dir: as.Dir},
				Time: t,
			})
		}
	}
	return &core.Plan{Paths: paths}
}
