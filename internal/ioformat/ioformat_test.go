package ioformat

import (
	"bytes"
	"strings"
	"testing"
)

func TestReadBenchmarkMapRoundTrip(t *testing.T) {
	src := "type octile\nheight 3\nwidth 4\nmap\n....\n.@@.\n....\n"
	grid, err := ReadBenchmarkMap(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ReadBenchmarkMap: %v", err)
	}
	if grid.Width != 4 || grid.Height != 3 {
		t.Fatalf("got %dx%d, want 4x3", grid.Width, grid.Height)
	}
	if !grid.IsObstacle(1, 1) || !grid.IsObstacle(2, 1) {
		t.Fatal("expected obstacles at (1,1) and (2,1)")
	}
	if grid.IsObstacle(0, 0) {
		t.Fatal("(0,0) should be traversable")
	}

	var buf bytes.Buffer
	if err := WriteBenchmarkMap(&buf, grid); err != nil {
		t.Fatalf("WriteBenchmarkMap: %v", err)
	}
	grid2, err := ReadBenchmarkMap(&buf)
	if err != nil {
		t.Fatalf("re-reading written map: %v", err)
	}
	if grid2.Width != grid.Width || grid2.Height != grid.Height {
		t.Fatal("round-tripped grid dimensions changed")
	}
	for x := 0; x < grid.Width; x++ {
		for y := 0; y < grid.Height; y++ {
			if grid.IsObstacle(x, y) != grid2.IsObstacle(x, y) {
				t.Fatalf("obstacle mismatch at (%d,%d) after round trip", x, y)
			}
		}
	}
}

func TestReadLironMapRoundTrip(t *testing.T) {
	src := "3,2\n10\n01\n00\n"
	grid, err := ReadLironMap(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ReadLironMap: %v", err)
	}
	if grid.Width != 3 || grid.Height != 2 {
		t.Fatalf("got %dx%d, want 3x2", grid.Width, grid.Height)
	}
	if !grid.IsObstacle(0, 0) || !grid.IsObstacle(1, 1) {
		t.Fatal("expected obstacles at (0,0) and (1,1)")
	}
	if grid.IsObstacle(1, 0) || grid.IsObstacle(0, 1) {
		t.Fatal("unexpected obstacle")
	}

	var buf bytes.Buffer
	if err := WriteLironMap(&buf, grid); err != nil {
		t.Fatalf("WriteLironMap: %v", err)
	}
	grid2, err := ReadLironMap(&buf)
	if err != nil {
		t.Fatalf("re-reading written liron map: %v", err)
	}
	if grid2.Width != grid.Width || grid2.Height != grid.Height {
		t.Fatal("round-tripped liron grid dimensions changed")
	}
}

func TestReadAgentsRoundTrip(t *testing.T) {
	src := "2\n3,3,0,0\n0,0,3,3\n"
	agents, err := ReadAgents(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ReadAgents: %v", err)
	}
	if len(agents) != 2 {
		t.Fatalf("got %d agents, want 2", len(agents))
	}
	if agents[0].StartX != 0 || agents[0].StartY != 0 || agents[0].GoalX != 3 || agents[0].GoalY != 3 {
		t.Fatalf("unexpected first agent record: %+v", agents[0])
	}

	var buf bytes.Buffer
	if err := WriteAgents(&buf, agents); err != nil {
		t.Fatalf("WriteAgents: %v", err)
	}
	agents2, err := ReadAgents(&buf)
	if err != nil {
		t.Fatalf("re-reading written .agents: %v", err)
	}
	if len(agents2) != len(agents) {
		t.Fatal("round-tripped agent count changed")
	}
}

func TestReadScen(t *testing.T) {
	src := "version 1\n0\tmaze.map\t10\t10\t1\t2\t3\t4\t5.5\n"
	agents, err := ReadScen(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ReadScen: %v", err)
	}
	if len(agents) != 1 {
		t.Fatalf("got %d agents, want 1", len(agents))
	}
	a := agents[0]
	// File columns are startY,startX,goalY,goalX = 1,2,3,4; inverted to
	// (x,y) means StartX=2, StartY=1, GoalX=4, GoalY=3.
	if a.StartX != 2 || a.StartY != 1 || a.GoalX != 4 || a.GoalY != 3 {
		t.Fatalf("unexpected scen record: %+v", a)
	}
	if a.OptimalCost != 5.5 {
		t.Fatalf("got optimal cost %v, want 5.5", a.OptimalCost)
	}
}

func TestReadCombinedRoundTrip(t *testing.T) {
	src := "inst1,maze\nGrid:\n3,2\n.@.\n...\nAgents:\n1\n0,2,0,0,1\n"
	ci, err := ReadCombined(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ReadCombined: %v", err)
	}
	if ci.ID != "inst1" || ci.GridName != "maze" {
		t.Fatalf("unexpected id/gridName: %q/%q", ci.ID, ci.GridName)
	}
	if ci.Grid.Width != 3 || ci.Grid.Height != 2 {
		t.Fatalf("got %dx%d grid, want 3x2", ci.Grid.Width, ci.Grid.Height)
	}
	if !ci.Grid.IsObstacle(1, 0) {
		t.Fatal("expected obstacle at (1,0)")
	}
	if len(ci.Agents) != 1 || ci.Agents[0].GoalX != 2 || ci.Starts[0].Y != 1 {
		t.Fatalf("unexpected agent roster: %+v / %+v", ci.Agents, ci.Starts)
	}

	var buf bytes.Buffer
	if err := WriteCombined(&buf, "inst1,maze", ci.Grid, ci.Agents, ci.Starts); err != nil {
		t.Fatalf("WriteCombined: %v", err)
	}
	ci2, err := ReadCombined(&buf)
	if err != nil {
		t.Fatalf("re-reading written combined file: %v", err)
	}
	if ci2.Grid.Width != ci.Grid.Width || len(ci2.Agents) != len(ci.Agents) {
		t.Fatal("round-tripped combined instance changed shape")
	}
}

func TestReadCombinedWithoutIDLine(t *testing.T) {
	src := "Grid:\n2,1\n..\nAgents:\n0\n"
	ci, err := ReadCombined(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ReadCombined: %v", err)
	}
	if ci.ID != "" {
		t.Fatalf("expected empty ID, got %q", ci.ID)
	}
	if len(ci.Agents) != 0 {
		t.Fatalf("expected zero agents, got %d", len(ci.Agents))
	}
}
