// Command geninstances generates deterministic grid MAPF instances with
// configurable size, agent count, and obstacle density.
package main

import (
	"flag"
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/elektrokombinacija/mapf-grid-solver/internal/core"
	"github.com/elektrokombinacija/mapf-grid-solver/internal/ioformat"
)

// instanceParams defines the parameters for one generated instance.
type instanceParams struct {
	seed            int64
	numAgents       int
	gridWidth       int
	gridHeight      int
	obstacleDensity float64
}

// generateInstance builds a random grid and a set of agents whose starts
// and goals are distinct, unobstructed cells.
func generateInstance(p instanceParams) (*core.Grid, []core.Agent, []core.Cell, error) {
	rng := rand.New(rand.NewSource(p.seed))

	obstacle := make([][]bool, p.gridWidth)
	for x := range obstacle {
		obstacle[x] = make([]bool, p.gridHeight)
		for y := range obstacle[x] {
			obstacle[x][y] = rng.Float64() < p.obstacleDensity
		}
	}

	grid, err := core.NewGrid(obstacle)
	if err != nil {
		return nil, nil, nil, err
	}

	free := make([]core.Cell, 0, p.gridWidth*p.gridHeight)
	for x := 0; x < p.gridWidth; x++ {
		for y := 0; y < p.gridHeight; y++ {
			if !grid.IsObstacle(x, y) {
				free = append(free, core.Cell{X: x, Y: y})
			}
		}
	}
	if len(free) < 2*p.numAgents {
		return nil, nil, nil, fmt.Errorf("geninstances: only %d free cells, need %d for starts and goals", len(free), 2*p.numAgents)
	}
	rng.Shuffle(len(free), func(i, j int) { free[i], free[j] = free[j], free[i] })

	starts := make([]core.Cell, p.numAgents)
	agents := make([]core.Agent, p.numAgents)
	for i := 0; i < p.numAgents; i++ {
		starts[i] = free[i]
		goal := free[p.numAgents+i]
		agents[i] = core.Agent{AgentNum: i, GoalX: goal.X, GoalY: goal.Y}
	}

	return grid, agents, starts, nil
}

func main() {
	seed := flag.Int64("seed", 42, "random seed for deterministic generation")
	numAgents := flag.Int("agents", 10, "number of agents")
	gridWidth := flag.Int("width", 16, "grid width")
	gridHeight := flag.Int("height", 16, "grid height")
	obstacleDensity := flag.Float64("obstacles", 0.1, "obstacle density (0-1)")
	outputDir := flag.String("output", "testdata", "output directory")
	scalingMode := flag.Bool("scaling", false, "generate a scaling test suite (10, 50, 100, 500 agents)")

	flag.Parse()

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	var suite []instanceParams
	if *scalingMode {
		for _, n := range []int{10, 50, 100, 500} {
			gridSize := int(math.Ceil(math.Sqrt(float64(n)) * 3))
			if gridSize < *gridWidth {
				gridSize = *gridWidth
			}
			suite = append(suite, instanceParams{
				seed:            *seed,
				numAgents:       n,
				gridWidth:       gridSize,
				gridHeight:      gridSize,
				obstacleDensity: *obstacleDensity,
			})
		}
	} else {
		suite = append(suite, instanceParams{
			seed:            *seed,
			numAgents:       *numAgents,
			gridWidth:       *gridWidth,
			gridHeight:      *gridHeight,
			obstacleDensity: *obstacleDensity,
		})
	}

	for _, p := range suite {
		grid, agents, starts, err := generateInstance(p)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error generating instance (agents=%d, seed=%d): %v\n", p.numAgents, p.seed, err)
			continue
		}

		name := fmt.Sprintf("mapf_%d_%dx%d_%d", p.numAgents, p.gridWidth, p.gridHeight, p.seed)
		filename := filepath.Join(*outputDir, name+".instance")

		f, err := os.Create(filename)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating %s: %v\n", filename, err)
			continue
		}
		err = ioformat.WriteCombined(f, name, grid, agents, starts)
		f.Close()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", filename, err)
			continue
		}

		fmt.Printf("Generated: %s (%d agents, %dx%d grid)\n", filename, p.numAgents, p.gridWidth, p.gridHeight)
	}
}
