package core

// Grid is a static rectangular 4-connected grid with obstacles (C1).
//
// Cardinality is a dense index of the traversable subset: every passable
// cell maps to a unique value in [0, NumLocations), obstacle cells map to
// -1. It is computed once at construction and never changes, so heuristic
// tables keyed by cardinality index can be built once and shared read-only.
type Grid struct {
	Width, Height int
	obstacle      [][]bool // obstacle[x][y]
	cardinality   [][]int  // cardinality[x][y], -1 for obstacles
	cells         []Cell   // cardinality index -> (x, y)
}

// Cell is a grid coordinate.
type Cell struct {
	X, Y int
}

// NewGrid builds a Grid from an obstacle matrix indexed obstacle[x][y].
// It panics if the matrix is not rectangular; callers (instance IO) are
// expected to validate shape before calling this.
func NewGrid(obstacle [][]bool) (*Grid, error) {
	width := len(obstacle)
	if width == 0 || len(obstacle[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	height := len(obstacle[0])
	for x := 1; x < width; x++ {
		if len(obstacle[x]) != height {
			panic("core: NewGrid obstacle matrix is not rectangular")
		}
	}

	g := &Grid{
		Width:    width,
		Height:   height,
		obstacle: obstacle,
	}
	g.buildCardinality()
	return g, nil
}

func (g *Grid) buildCardinality() {
	g.cardinality = make([][]int, g.Width)
	for x := range g.cardinality {
		g.cardinality[x] = make([]int, g.Height)
		for y := range g.cardinality[x] {
			g.cardinality[x][y] = -1
		}
	}

	next := 0
	for x := 0; x < g.Width; x++ {
		for y := 0; y < g.Height; y++ {
			if !g.obstacle[x][y] {
				g.cardinality[x][y] = next
				g.cells = append(g.cells, Cell{X: x, Y: y})
				next++
			}
		}
	}
}

// NumLocations is the count of traversable cells.
func (g *Grid) NumLocations() int { return len(g.cells) }

// InBounds reports whether (x, y) lies within the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// IsObstacle reports whether (x, y) is blocked. Out-of-bounds counts as
// blocked so callers can use it directly as a traversability test.
func (g *Grid) IsObstacle(x, y int) bool {
	if !g.InBounds(x, y) {
		return true
	}
	return g.obstacle[x][y]
}

// Cardinality returns the dense index of (x, y), or -1 if it is an
// obstacle or out of bounds.
func (g *Grid) Cardinality(x, y int) int {
	if !g.InBounds(x, y) {
		return -1
	}
	return g.cardinality[x][y]
}

// CellAt is the inverse of Cardinality: the (x, y) for a dense index in
// [0, NumLocations).
func (g *Grid) CellAt(idx int) Cell {
	return g.cells[idx]
}
