package cbs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/elektrokombinacija/mapf-grid-solver/internal/core"
	"github.com/elektrokombinacija/mapf-grid-solver/internal/heuristic"
)

func openGrid(w, h int) [][]bool {
	g := make([][]bool, w)
	for x := range g {
		g[x] = make([]bool, h)
	}
	return g
}

func TestCBSResolvesHeadOnConflict(t *testing.T) {
	// A 1-wide corridor with swapped-end agents has no conflict-free plan:
	// on a path graph the only way the two agents can cross is by trading
	// cells, which is a swap conflict forbidden by core.FindFirstConflict.
	// A second row gives one agent room to step aside so the instance is
	// actually solvable.
	grid, err := core.NewGrid(openGrid(5, 2))
	require.NoError(t, err)
	agents := []core.Agent{
		{AgentNum: 0, GoalX: 4, GoalY: 0},
		{AgentNum: 1, GoalX: 0, GoalY: 0},
	}
	starts := []core.Cell{{X: 0, Y: 0}, {X: 4, Y: 0}}
	cfg := core.DefaultConfig()

	problem, err := core.NewProblemInstance(grid, agents, starts, cfg)
	require.NoError(t, err)
	sic, err := heuristic.Build(problem)
	require.NoError(t, err)

	solver := New(problem, sic)
	plan, stats, err := solver.Solve(10_000)
	require.NoError(t, err)
	require.NotZero(t, stats.Expansions, "expected at least one expansion")

	plan.Pad()
	require.NoError(t, plan.Validate(grid, agents, cfg.NumAllowedDirections))
}

func TestCBSDisjointSplittingAlsoSolves(t *testing.T) {
	grid, err := core.NewGrid(openGrid(5, 2))
	require.NoError(t, err)
	agents := []core.Agent{
		{AgentNum: 0, GoalX: 4, GoalY: 0},
		{AgentNum: 1, GoalX: 0, GoalY: 0},
	}
	starts := []core.Cell{{X: 0, Y: 0}, {X: 4, Y: 0}}
	cfg := core.DefaultConfig()
	cfg.CBSSplitMode = core.SplitDisjoint
	cfg.IsDnC = true

	problem, err := core.NewProblemInstance(grid, agents, starts, cfg)
	require.NoError(t, err)
	sic, err := heuristic.Build(problem)
	require.NoError(t, err)

	solver := New(problem, sic)
	plan, _, err := solver.Solve(10_000)
	require.NoError(t, err)
	plan.Pad()
	require.NoError(t, plan.Validate(grid, agents, cfg.NumAllowedDirections))
}

func TestCBSCorridorSwapIsUnsolvable(t *testing.T) {
	// A 1-wide corridor of any length with swapped-end agents has no
	// conflict-free plan: crossing without landing on the same cell at the
	// same timestep always requires trading cells, a swap conflict.
	grid, err := core.NewGrid(openGrid(5, 1))
	require.NoError(t, err)
	agents := []core.Agent{
		{AgentNum: 0, GoalX: 4, GoalY: 0},
		{AgentNum: 1, GoalX: 0, GoalY: 0},
	}
	starts := []core.Cell{{X: 0, Y: 0}, {X: 4, Y: 0}}
	cfg := core.DefaultConfig()

	problem, err := core.NewProblemInstance(grid, agents, starts, cfg)
	require.NoError(t, err)
	sic, err := heuristic.Build(problem)
	require.NoError(t, err)

	solver := New(problem, sic)
	_, _, err = solver.Solve(10_000)
	require.Error(t, err)
	require.True(t, errors.Is(err, core.ErrUnsolvable), "expected ErrUnsolvable, got %v", err)
}

func TestCBSNoConflictSolvesWithoutBranching(t *testing.T) {
	grid, err := core.NewGrid(openGrid(3, 3))
	require.NoError(t, err)
	agents := []core.Agent{
		{AgentNum: 0, GoalX: 2, GoalY: 0},
		{AgentNum: 1, GoalX: 0, GoalY: 2},
	}
	starts := []core.Cell{{X: 0, Y: 0}, {X: 2, Y: 2}}
	cfg := core.DefaultConfig()

	problem, err := core.NewProblemInstance(grid, agents, starts, cfg)
	require.NoError(t, err)
	sic, err := heuristic.Build(problem)
	require.NoError(t, err)

	solver := New(problem, sic)
	plan, stats, err := solver.Solve(10_000)
	require.NoError(t, err)
	require.Equal(t, 1, stats.Expansions, "expected the root to be conflict-free (1 expansion)")
	plan.Pad()
	require.NoError(t, plan.Validate(grid, agents, cfg.NumAllowedDirections))
}
