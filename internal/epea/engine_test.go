package epea_test

import (
	"testing"

	"github.com/elektrokombinacija/mapf-grid-solver/internal/core"
	"github.com/elektrokombinacija/mapf-grid-solver/internal/epea"
	"github.com/elektrokombinacija/mapf-grid-solver/internal/heuristic"
)

func openGrid(w, h int) [][]bool {
	g := make([][]bool, w)
	for x := range g {
		g[x] = make([]bool, h)
	}
	return g
}

func TestEngineSolvesTwoAgentCrossing(t *testing.T) {
	grid, err := core.NewGrid(openGrid(3, 3))
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}

	agents := []core.Agent{
		{AgentNum: 0, GoalX: 2, GoalY: 2},
		{AgentNum: 1, GoalX: 0, GoalY: 0},
	}
	starts := []core.Cell{{X: 0, Y: 0}, {X: 2, Y: 2}}
	cfg := core.DefaultConfig()

	problem, err := core.NewProblemInstance(grid, agents, starts, cfg)
	if err != nil {
		t.Fatalf("NewProblemInstance: %v", err)
	}

	sic, err := heuristic.Build(problem)
	if err != nil {
		t.Fatalf("heuristic.Build: %v", err)
	}

	engine := epea.New(problem, epea.NewSICGroups(sic, problem.NumAgents()))
	plan, stats, err := engine.Solve(10_000)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if stats.Expansions == 0 {
		t.Error("expected at least one expansion")
	}

	plan.Pad()
	if err := plan.Validate(grid, agents, cfg.NumAllowedDirections); err != nil {
		t.Fatalf("plan invalid: %v", err)
	}

	cost := plan.Cost(agents, cfg.SumOfCostsVariant)
	if cost < 8 {
		t.Fatalf("cost %d is below the sum of each agent's unobstructed distance (4 each)", cost)
	}
}

func TestEngineSingleAgentTakesShortestPath(t *testing.T) {
	grid, err := core.NewGrid(openGrid(4, 1))
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}

	agents := []core.Agent{{AgentNum: 0, GoalX: 3, GoalY: 0}}
	starts := []core.Cell{{X: 0, Y: 0}}
	cfg := core.DefaultConfig()

	problem, err := core.NewProblemInstance(grid, agents, starts, cfg)
	if err != nil {
		t.Fatalf("NewProblemInstance: %v", err)
	}
	sic, err := heuristic.Build(problem)
	if err != nil {
		t.Fatalf("heuristic.Build: %v", err)
	}

	engine := epea.New(problem, epea.NewSICGroups(sic, 1))
	plan, _, err := engine.Solve(5_000)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if got := plan.Cost(agents, cfg.SumOfCostsVariant); got != 3 {
		t.Fatalf("expected cost 3, got %d", got)
	}
}
