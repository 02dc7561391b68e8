// Command mapfvis provides a GUI visualization for the grid MAPF solver.
package main

import (
	"flag"
	"log"
	"os"

	"gioui.org/app"
	"gioui.org/unit"

	"github.com/elektrokombinacija/mapf-grid-solver/internal/core"
	"github.com/elektrokombinacija/mapf-grid-solver/internal/ioformat"
	"github.com/elektrokombinacija/mapf-grid-solver/internal/vis"
)

func main() {
	instancePath := flag.String("instance", "", "path to a combined-format instance file (omit for the built-in demo)")
	flag.Parse()

	problem, err := loadInstance(*instancePath)
	if err != nil {
		log.Fatal(err)
	}

	go func() {
		window := new(app.Window)
		window.Option(
			app.Title("mapf grid solver visualizer"),
			app.Size(unit.Dp(1400), unit.Dp(900)),
		)

		application, err := vis.NewApp(problem)
		if err != nil {
			log.Fatal(err)
		}
		if err := application.Run(window); err != nil {
			log.Fatal(err)
		}
		os.Exit(0)
	}()
	app.Main()
}

// loadInstance reads a combined-format instance file, or returns (nil, nil)
// when path is empty so the caller falls back to vis.NewApp's built-in demo.
func loadInstance(path string) (*core.ProblemInstance, error) {
	if path == "" {
		return nil, nil
	}

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
