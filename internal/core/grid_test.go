package core

import "testing"

func emptyGrid(w, h int) [][]bool {
	g := make([][]bool, w)
	for x := range g {
		g[x] = make([]bool, h)
	}
	return g
}

func TestCardinalityBijection(t *testing.T) {
	obstacle := emptyGrid(3, 3)
	obstacle[1][1] = true // center blocked
	grid, err := NewGrid(obstacle)
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}

	if grid.NumLocations() != 8 {
		t.Fatalf("expected 8 traversable cells, got %d", grid.NumLocations())
	}

	seen := make(map[int]bool)
	for x := 0; x < 3; x++ {
		for y := 0; y < 3; y++ {
			c := grid.Cardinality(x, y)
			if x == 1 && y == 1 {
				if c != -1 {
					t.Fatalf("obstacle cell should have cardinality -1, got %d", c)
				}
				continue
			}
			if c < 0 || c >= grid.NumLocations() {
				t.Fatalf("cardinality %d out of range for (%d,%d)", c, x, y)
			}
			if seen[c] {
				t.Fatalf("duplicate cardinality %d", c)
			}
			seen[c] = true

			cell := grid.CellAt(c)
			if cell.X != x || cell.Y != y {
				t.Fatalf("CellAt(%d) = %+v, want (%d,%d)", c, cell, x, y)
			}
		}
	}
}

func TestEmptyGridRejected(t *testing.T) {
	if _, err := NewGrid(nil); err != ErrEmptyGrid {
		t.Fatalf("expected ErrEmptyGrid, got %v", err)
	}
}

func TestIsObstacleOutOfBounds(t *testing.T) {
	grid, _ := NewGrid(emptyGrid(2, 2))
	if !grid.IsObstacle(-1, 0) {
		t.Error("out of bounds should count as obstacle")
	}
	if !grid.IsObstacle(2, 0) {
		t.Error("out of bounds should count as obstacle")
	}
	if grid.IsObstacle(0, 0) {
		t.Error("(0,0) should be traversable")
	}
}
