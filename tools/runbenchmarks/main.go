// Command runbenchmarks runs every solver configuration against a
// directory of generated instances and writes a CSV result log.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/elektrokombinacija/mapf-grid-solver/internal/cbs"
	"github.com/elektrokombinacija/mapf-grid-solver/internal/core"
	"github.com/elektrokombinacija/mapf-grid-solver/internal/epea"
	"github.com/elektrokombinacija/mapf-grid-solver/internal/heuristic"
	"github.com/elektrokombinacija/mapf-grid-solver/internal/ioformat"
)

var solverNames = []string{
	"EPEA*-SIC",
	"EPEA*-Pairs(SPC)",
	"EPEA*-Pairs(MPC)",
	"CBS-local",
	"CBS-disjoint",
}

// solverMetrics aggregates one solver's results across every instance it ran.
type solverMetrics struct {
	name           string
	totalRuns      int
	successes      int
	totalRuntimeMs float64
	totalCost      int
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

// runSolver runs one configuration against problem and reports its outcome
// in the ioformat.SolverResult shape the result log expects.
func runSolver(problem *core.ProblemInstance, name string, timeout time.Duration) ioformat.SolverResult {
	maxTimeMs := timeout.Milliseconds()

	start := time.Now()
	plan, expansions, generated, err := solve(problem, name, maxTimeMs)
	elapsed := time.Since(start)

	res := ioformat.SolverResult{
		Solver:     name,
		RuntimeMs:  float64(elapsed.Microseconds()) / 1000.0,
		Expansions: expansions,
		Generated:  generated,
		Cost:       -1,
	}
	if err == nil && plan != nil {
		res.Success = true
		res.Cost = planCost(plan)
		res.SolutionDepth = plan.Makespan()
	}
	return res
}

func solve(problem *core.ProblemInstance, name string, maxTimeMs int64) (*core.Plan, int, int, error) {
	switch name {
	case "EPEA*-SIC":
		sic, err := heuristic.Build(problem)
		if err != nil {
			return nil, 0, 0, err
		}
		engine := epea.New(problem, epea.NewSICGroups(sic, problem.NumAgents()))
		plan, stats, err := engine.Solve(maxTimeMs)
		return plan, stats.Expansions, stats.Generated, err

	case "EPEA*-Pairs(SPC)", "EPEA*-Pairs(MPC)":
		agg := heuristic.SPC
		if name == "EPEA*-Pairs(MPC)" {
			agg = heuristic.MPC
		}
		pairs, err := heuristic.BuildPairs(problem, agg, maxTimeMs/4)
		if err != nil {
			return nil, 0, 0, err
		}
		engine := epea.New(problem, pairs)
		plan, stats, err := engine.Solve(maxTimeMs)
		return plan, stats.Expansions, stats.Generated, err

	case "CBS-local", "CBS-disjoint":
		split := core.SplitLocal
		if name == "CBS-disjoint" {
			split = core.SplitDisjoint
		}
		cfg := problem.Config
		cfg.CBSSplitMode = split
		splitProblem, err := core.NewProblemInstance(problem.Grid, problem.Agents, problem.Starts, cfg)
		if err != nil {
			return nil, 0, 0, err
		}
		sic, err := heuristic.Build(splitProblem)
		if err != nil {
			return nil, 0, 0, err
		}
		solver := cbs.New(splitProblem, sic)
		plan, stats, err := solver.Solve(maxTimeMs)
		return plan, stats.Expansions, 0, err

	default:
		return nil, 0, 0, fmt.Errorf("runbenchmarks: unknown solver %q", name)
	}
}

func planCost(plan *core.Plan) int {
	cost := 0
	for _, p := range plan.Paths {
		cost += len(p) - 1
	}
	return cost
}

func printSummary(results []ioformat.SolverResult) {
	metrics := make(map[string]*solverMetrics)
	for _, r := range results {
		m, ok := metrics[r.Solver]
		if !ok {
			m = &solverMetrics{name: r.Solver}
			metrics[r.Solver] = m
		}
		m.totalRuns++
		if r.Success {
			m.successes++
			m.totalRuntimeMs += r.RuntimeMs
			m.totalCost += r.Cost
		}
	}

	fmt.Println("\n=== BENCHMARK SUMMARY ===")
	fmt.Printf("%-20s %8s %8s %12s %10s\n", "Solver", "Runs", "Success", "Avg Time(ms)", "Avg Cost")
	fmt.Println(strings.Repeat("-", 62))

	var names []string
	for name := range metrics {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		m := metrics[name]
		avgTime, avgCost := 0.0, 0.0
		if m.successes > 0 {
			avgTime = m.totalRuntimeMs / float64(m.successes)
			avgCost = float64(m.totalCost) / float64(m.successes)
		}
		fmt.Printf("%-20s %8d %8d %12.2f %10.2f\n", m.name, m.totalRuns, m.successes, avgTime, avgCost)
	}
}

func main() {
	inputDir := flag.String("input", "testdata", "directory containing generated .instance files")
	outputFile := flag.String("output", "evidence/benchmark_results.csv", "output CSV file")
	timeout := flag.Duration("timeout", 30*time.Second, "timeout per solver run")
	solverFilter := flag.String("solver", "", "run only specific solvers (comma-separated)")
	verbose := flag.Bool("verbose", false, "verbose per-run output")

	flag.Parse()

	outputDir := filepath.Dir(*outputFile)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	pattern := filepath.Join(*inputDir, "*.instance")
	files, err := filepath.Glob(pattern)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error finding instance files: %v\n", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Fprintf(os.Stderr, "No instance files found in %s\n", *inputDir)
		fmt.Fprintf(os.Stderr, "Run geninstances first: go run ./tools/geninstances -scaling -output %s\n", *inputDir)
		os.Exit(1)
	}

	activeSolvers := solverNames
	if *solverFilter != "" {
		activeSolvers = strings.Split(*solverFilter, ",")
	}

	out, err := os.Create(*outputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating %s: %v\n", *outputFile, err)
		os.Exit(1)
	}
	defer out.Close()

	logWriter, err := ioformat.NewResultLogWriter(out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error starting result log: %v\n", err)
		os.Exit(1)
	}

	totalRuns := len(files) * len(activeSolvers)
	currentRun := 0

	fmt.Printf("Running benchmarks: %d instances x %d solvers = %d runs\n", len(files), len(activeSolvers), totalRuns)
	fmt.Printf("Timeout per run: %v\n\n", *timeout)

	var allResults []ioformat.SolverResult

	for _, file := range files {
		problem, err := loadInstance(file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading %s: %v\n", file, err)
			continue
		}

		name := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
		instRes := ioformat.InstanceResult{
			GridWidth:  problem.Grid.Width,
			GridHeight: problem.Grid.Height,
			NumAgents:  problem.NumAgents(),
			InstanceID: name,
		}
		instRes.ObstacleCount = problem.Grid.Width*problem.Grid.Height - problem.Grid.NumLocations()

		for _, solver := range activeSolvers {
			currentRun++
			if *verbose {
				fmt.Printf("[%d/%d] %s / %s ... ", currentRun, totalRuns, name, solver)
			} else {
				fmt.Printf("\r[%d/%d] Running...", currentRun, totalRuns)
			}

			result := runSolver(problem, solver, *timeout)
			instRes.SolverResults = append(instRes.SolverResults, result)
			allResults = append(allResults, result)

			if *verbose {
				if result.Success {
					fmt.Printf("OK (%.2fms, cost=%d)\n", result.RuntimeMs, result.Cost)
				} else {
					fmt.Printf("FAILED\n")
				}
			}
		}

		if err := logWriter.WriteInstance(instRes); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing results for %s: %v\n", name, err)
		}
	}
	fmt.Println()

	if err := logWriter.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "Error flushing results: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Results written to: %s\n", *outputFile)

	printSummary(allResults)
}
