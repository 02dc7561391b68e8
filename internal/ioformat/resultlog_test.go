package ioformat

import (
	"bytes"
	"strings"
	"testing"
)

func TestResultLogWriterWritesHeaderAndRows(t *testing.T) {
	var buf bytes.Buffer
	rl, err := NewResultLogWriter(&buf)
	if err != nil {
		t.Fatalf("NewResultLogWriter: %v", err)
	}

	err = rl.WriteInstance(InstanceResult{
		GridWidth:     8,
		GridHeight:    8,
		NumAgents:     4,
		ObstacleCount: 3,
		InstanceID:    "inst-0",
		SolverResults: []SolverResult{
			{Solver: "EPEA*+SIC", Success: true, RuntimeMs: 12.5, Cost: 20, Expansions: 100, Generated: 300, MaxSubgroup: 1, SolutionDepth: 20},
			{Solver: "CBS", Success: false, RuntimeMs: 5000, Cost: -1, Expansions: 40, Generated: 120, MaxSubgroup: 2, SolutionDepth: 0},
		},
	})
	if err != nil {
		t.Fatalf("WriteInstance: %v", err)
	}
	if err := rl.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines: %q", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "grid_width,grid_height") {
		t.Fatalf("unexpected header: %q", lines[0])
	}
	if !strings.Contains(lines[2], "-1") {
		t.Fatalf("expected failure row to carry the negative cost sentinel: %q", lines[2])
	}
}
