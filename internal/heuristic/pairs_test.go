package heuristic

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/elektrokombinacija/mapf-grid-solver/internal/core"
)

// buildTestInstance lays out agents along a single row of width w: agent i
// starts at (startX[i], 0) and must reach (goalX[i], 0).
func buildTestInstance(t *testing.T, w, h int, startX, goalX []int) *core.ProblemInstance {
	t.Helper()
	obstacle := make([][]bool, w)
	for x := range obstacle {
		obstacle[x] = make([]bool, h)
	}
	grid, err := core.NewGrid(obstacle)
	require.NoError(t, err)

	agents := make([]core.Agent, len(startX))
	starts := make([]core.Cell, len(startX))
	for i := range startX {
		agents[i] = core.Agent{AgentNum: i, GoalX: goalX[i], GoalY: 0}
		starts[i] = core.Cell{X: startX[i], Y: 0}
	}

	problem, err := core.NewProblemInstance(grid, agents, starts, core.DefaultConfig())
	require.NoError(t, err)
	return problem
}

func TestPairsDominatesSIC(t *testing.T) {
	problem := buildTestInstance(t, 4, 1, []int{0, 3}, []int{3, 0})

	sic, err := Build(problem)
	require.NoError(t, err)
	pairs, err := BuildPairs(problem, SPC, 2_000)
	require.NoError(t, err)

	state := problem.InitialWorldState()
	sicH := sic.H(state)
	pairsH := pairs.H(state)

	require.GreaterOrEqual(t, pairsH, sicH, "pairs heuristic should never be less than SIC (both admissible, pairs is tighter)")
}

func TestPairsOddAgentFallsBackToSIC(t *testing.T) {
	problem := buildTestInstance(t, 3, 1, []int{0, 2, 1}, []int{2, 0, 1})
	pairs, err := BuildPairs(problem, SPC, 2_000)
	require.NoError(t, err)
	require.Equal(t, 2, pairs.oddAgent, "expected agent 2 to be the odd leftover")
	require.Equal(t, pairs.sic.HSingle(2, 0, 0), pairs.HAt(1, []core.Cell{{X: 0, Y: 0}}), "expected the odd agent's group to use its SIC value")
}
