// Command mapfsolve runs grid MAPF solver configurations over one or more
// instances and reports success, cost, and search effort for each.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/elektrokombinacija/mapf-grid-solver/internal/cbs"
	"github.com/elektrokombinacija/mapf-grid-solver/internal/core"
	"github.com/elektrokombinacija/mapf-grid-solver/internal/epea"
	"github.com/elektrokombinacija/mapf-grid-solver/internal/heuristic"
	"github.com/elektrokombinacija/mapf-grid-solver/internal/ioformat"
)

func main() {
	instancePath := flag.String("instance", "", "path to a combined-format instance file (omit for the built-in demo suite)")
	flag.Parse()

	var instances []namedInstance
	if *instancePath != "" {
		inst, err := loadInstance(*instancePath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		instances = []namedInstance{{name: *instancePath, problem: inst}}
	} else {
		instances = builtinDemoSuite()
	}

	runSuite(instances)
}

type namedInstance struct {
	name    string
	problem *core.ProblemInstance
}

func loadInstance(path string) (*core.ProblemInstance, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	ci, err := ioformat.ReadCombined(f)
	if err != nil {
		return nil, err
	}
	return core.NewProblemInstance(ci.Grid, ci.Agents, ci.Starts, core.DefaultConfig())
}

// configResult is one solver configuration's outcome on one instance.
type configResult struct {
	name       string
	success    bool
	cost       int
	expansions int
	generated  int
	elapsed    time.Duration
	err        error
}

// runSuite runs every solver configuration against every instance in order,
// skipping a configuration's remaining (harder) instances once it has
// failed MAX_FAIL_COUNT times in a row (spec.md §6).
func runSuite(instances []namedInstance) {
	const maxFailCount = 3

	configNames := []string{"EPEA*-SIC", "EPEA*-Pairs(SPC)", "EPEA*-Pairs(MPC)", "CBS-local", "CBS-disjoint"}
	consecutiveFails := make(map[string]int, len(configNames))
	skip := make(map[string]bool, len(configNames))

	for _, inst := range instances {
		fmt.Printf("=== %s: %d agents, %dx%d grid ===\n",
			inst.name, len(inst.problem.Agents), inst.problem.Grid.Width, inst.problem.Grid.Height)

		for _, name := range configNames {
			if skip[name] {
				fmt.Printf("  %-20s SKIPPED (exceeded %d consecutive failures)\n", name, maxFailCount)
				continue
			}

			res := runConfig(name, inst.problem)
			report(res)

			if !res.success {
				consecutiveFails[name]++
				if consecutiveFails[name] >= maxFailCount {
					skip[name] = true
				}
			} else {
				consecutiveFails[name] = 0
			}
		}
		fmt.Println()
	}
}

func report(res configResult) {
	if res.err != nil {
		fmt.Printf("  %-20s ERROR: %v\n", res.name, res.err)
		return
	}
	if !res.success {
		fmt.Printf("  %-20s FAILED  time=%v\n", res.name, res.elapsed)
		return
	}
	fmt.Printf("  %-20s cost=%-6d expansions=%-8d generated=%-8d time=%v\n",
		res.name, res.cost, res.expansions, res.generated, res.elapsed)
}

// runConfig solves problem with the named solver configuration.
func runConfig(name string, problem *core.ProblemInstance) configResult {
	maxTimeMs := problem.Config.MaxTimeMs

	switch name {
	case "EPEA*-SIC":
		return runEPEASIC(problem, maxTimeMs)
	case "EPEA*-Pairs(SPC)":
		return runEPEAPairs(problem, heuristic.SPC, maxTimeMs)
	case "EPEA*-Pairs(MPC)":
		return runEPEAPairs(problem, heuristic.MPC, maxTimeMs)
	case "CBS-local":
		return runCBS(name, problem, core.SplitLocal, maxTimeMs)
	case "CBS-disjoint":
		return runCBS(name, problem, core.SplitDisjoint, maxTimeMs)
	default:
		return configResult{name: name, err: fmt.Errorf("mapfsolve: unknown configuration %q", name)}
	}
}

func runEPEASIC(problem *core.ProblemInstance, maxTimeMs int64) configResult {
	sic, err := heuristic.Build(problem)
	if err != nil {
		return configResult{name: "EPEA*-SIC", err: err}
	}
	groups := epea.NewSICGroups(sic, problem.NumAgents())
	engine := epea.New(problem, groups)

	plan, stats, err := engine.Solve(maxTimeMs)
	return configResult{
		name:       "EPEA*-SIC",
		success:    err == nil && plan != nil,
		cost:       planCost(plan),
		expansions: stats.Expansions,
		generated:  stats.Generated,
		elapsed:    stats.Elapsed,
		err:        err,
	}
}

func runEPEAPairs(problem *core.ProblemInstance, agg heuristic.Aggregator, maxTimeMs int64) configResult {
	name := "EPEA*-Pairs(SPC)"
	if agg == heuristic.MPC {
		name = "EPEA*-Pairs(MPC)"
	}

	pairs, err := heuristic.BuildPairs(problem, agg, maxTimeMs/4)
	if err != nil {
		return configResult{name: name, err: err}
	}
	engine := epea.New(problem, pairs)

	plan, stats, err := engine.Solve(maxTimeMs)
	return configResult{
		name:       name,
		success:    err == nil && plan != nil,
		cost:       planCost(plan),
		expansions: stats.Expansions,
		generated:  stats.Generated,
		elapsed:    stats.Elapsed,
		err:        err,
	}
}

func runCBS(name string, problem *core.ProblemInstance, split core.CBSSplitMode, maxTimeMs int64) configResult {
	cfg := problem.Config
	cfg.CBSSplitMode = split
	localProblem, err := core.NewProblemInstance(problem.Grid, problem.Agents, problem.Starts, cfg)
	if err != nil {
		return configResult{name: name, err: err}
	}

	sic, err := heuristic.Build(localProblem)
	if err != nil {
		return configResult{name: name, err: err}
	}
	solver := cbs.New(localProblem, sic)

	plan, stats, err := solver.Solve(maxTimeMs)
	return configResult{
		name:       name,
		success:    err == nil && plan != nil,
		cost:       planCost(plan),
		expansions: stats.Expansions,
		generated:  0,
		elapsed:    stats.Elapsed,
		err:        err,
	}
}

func planCost(plan *core.Plan) int {
	if plan == nil {
		return -1
	}
	cost := 0
	for _, p := range plan.Paths {
		cost += len(p) - 1
	}
	return cost
}

// builtinDemoSuite builds a few increasingly hard grid instances, mirroring
// the teacher's standard-then-harder test progression.
func builtinDemoSuite() []namedInstance {
	return []namedInstance{
		{name: "demo-4x4-2agents", problem: demoInstance(4, 2)},
		{name: "demo-6x6-3agents", problem: demoInstance(6, 3)},
		{name: "demo-8x8-4agents", problem: demoInstance(8, 4)},
	}
}

func demoInstance(size, numAgents int) *core.ProblemInstance {
	obstacle := make([][]bool, size)
	for x := range obstacle {
		obstacle[x] = make([]bool, size)
	}

	grid, err := core.NewGrid(obstacle)
	if err != nil {
		panic(err)
	}

	agents := make([]core.Agent, numAgents)
	starts := make([]core.Cell, numAgents)
	for i := 0; i < numAgents; i++ {
		starts[i] = core.Cell{X: i % size, Y: 0}
		agents[i] = core.Agent{AgentNum: i, GoalX: (size - 1 - i) % size, GoalY: size - 1}
	}

	problem, err := core.NewProblemInstance(grid, agents, starts, core.DefaultConfig())
	if err != nil {
		panic(err)
	}
	return problem
}
