package ioformat

import (
	"encoding/csv"
	"fmt"
	"io"
)

// SolverResult is one solver's outcome on one instance, per spec.md §6's
// result log schema.
type SolverResult struct {
	Solver         string
	Success        bool
	RuntimeMs      float64
	Cost           int // negative sentinel on failure, per §7
	Expansions     int
	Generated      int
	MaxSubgroup    int
	SolutionDepth  int
}

// InstanceResult bundles the instance metadata with every solver's result
// on it, so one row per solver shares the leading instance columns.
type InstanceResult struct {
	GridWidth      int
	GridHeight     int
	NumAgents      int
	ObstacleCount  int
	InstanceID     string
	SolverResults  []SolverResult
}

var resultHeader = []string{
	"grid_width", "grid_height", "num_agents", "obstacle_count", "instance_id",
	"solver", "success", "runtime_ms", "cost", "expansions", "generated",
	"max_subgroup", "solution_depth",
}

// ResultLogWriter streams InstanceResult rows to CSV as they are produced,
// mirroring the teacher's encoding/csv benchmark writer (tools/run_benchmarks)
// but writing incrementally instead of buffering the whole run in memory.
type ResultLogWriter struct {
	w *csv.Writer
}

// NewResultLogWriter wraps w and writes the header row immediately.
func NewResultLogWriter(w io.Writer) (*ResultLogWriter, error) {
	cw := csv.NewWriter(w)
	if err := cw.Write(resultHeader); err != nil {
		return nil, fmt.Errorf("ioformat: writing result log header: %w", err)
	}
	return &ResultLogWriter{w: cw}, nil
}

// WriteInstance appends one row per solver result for an instance.
func (rl *ResultLogWriter) WriteInstance(r InstanceResult) error {
	for _, sr := range r.SolverResults {
		row := []string{
			fmt.Sprintf("%d", r.GridWidth),
			fmt.Sprintf("%d", r.GridHeight),
			fmt.Sprintf("%d", r.NumAgents),
			fmt.Sprintf("%d", r.ObstacleCount),
			r.InstanceID,
			sr.Solver,
			fmt.Sprintf("%t", sr.Success),
			fmt.Sprintf("%.3f", sr.RuntimeMs),
			fmt.Sprintf("%d", sr.Cost),
			fmt.Sprintf("%d", sr.Expansions),
			fmt.Sprintf("%d", sr.Generated),
			fmt.Sprintf("%d", sr.MaxSubgroup),
			fmt.Sprintf("%d", sr.SolutionDepth),
		}
		if err := rl.w.Write(row); err != nil {
			return fmt.Errorf("ioformat: writing result row: %w", err)
		}
	}
	return nil
}

// Flush flushes the underlying CSV writer and returns any write error.
func (rl *ResultLogWriter) Flush() error {
	rl.w.Flush()
	return rl.w.Error()
}
