package core

// Conflict is a collision between two agents' paths (C11 of spec.md §4.7,
// §8): either a vertex conflict (same cell, same time) or a swap conflict
// (two agents exchange cells across one timestep).
type Conflict struct {
	Agent1, Agent2 int // indices into the paths/agents slice
	Cell           Cell
	Time           int
	IsSwap         bool
	// For swap conflicts, the two cells being exchanged.
	SwapFrom, SwapTo Cell
}

// posAtTime returns an agent's cell at time t. Paths are built with unit
// timesteps starting at 0, so path[t] holds time t directly while t is in
// range; past the path's end the agent is assumed to wait at its final
// cell (its goal, once the path is complete).
func posAtTime(path Path, t int) (Cell, bool) {
	if len(path) == 0 {
		return Cell{}, false
	}
	if t < len(path) {
		return Cell{X: path[t].X, Y: path[t].Y}, true
	}
	last := path[len(path)-1]
	return Cell{X: last.X, Y: last.Y}, true
}

func maxPathLen(paths []Path) int {
	m := 0
	for _, p := range paths {
		if len(p) > m {
			m = len(p)
		}
	}
	return m
}

// FindFirstConflict scans all timesteps in increasing order and returns the
// earliest conflict (vertex conflicts are checked before swap conflicts at
// the same time, since a vertex conflict is detectable at its own instant
// while a swap spans the instant before it).
func FindFirstConflict(paths []Path) *Conflict {
	horizon := maxPathLen(paths)

	for t := 0; t < horizon; t++ {
		for i := 0; i < len(paths); i++ {
			for j := i + 1; j < len(paths); j++ {
				pi, oki := posAtTime(paths[i], t)
				pj, okj := posAtTime(paths[j], t)
				if oki && okj && pi == pj {
					return &Conflict{Agent1: i, Agent2: j, Cell: pi, Time: t}
				}
			}
		}
		if t == 0 {
			continue
		}
		for i := 0; i < len(paths); i++ {
			for j := i + 1; j < len(paths); j++ {
				prevI, okI1 := posAtTime(paths[i], t-1)
				curI, okI2 := posAtTime(paths[i], t)
				prevJ, okJ1 := posAtTime(paths[j], t-1)
				curJ, okJ2 := posAtTime(paths[j], t)
				if okI1 && okI2 && okJ1 && okJ2 && prevI == curJ && prevJ == curI && prevI != curI {
					return &Conflict{
						Agent1: i, Agent2: j, Cell: prevI, Time: t, IsSwap: true,
						SwapFrom: prevI, SwapTo: curI,
					}
				}
			}
		}
	}
	return nil
}

// FindAllConflicts returns every vertex and swap conflict in the paths, in
// increasing time order.
func FindAllConflicts(paths []Path) []*Conflict {
	var out []*Conflict
	horizon := maxPathLen(paths)

	for t := 0; t < horizon; t++ {
		for i := 0; i < len(paths); i++ {
			for j := i + 1; j < len(paths); j++ {
				pi, oki := posAtTime(paths[i], t)
				pj, okj := posAtTime(paths[j], t)
				if oki && okj && pi == pj {
					out = append(out, &Conflict{Agent1: i, Agent2: j, Cell: pi, Time: t})
				}
			}
		}
		if t == 0 {
			continue
		}
		for i := 0; i < len(paths); i++ {
			for j := i + 1; j < len(paths); j++ {
				prevI, okI1 := posAtTime(paths[i], t-1)
				curI, okI2 := posAtTime(paths[i], t)
				prevJ, okJ1 := posAtTime(paths[j], t-1)
				curJ, okJ2 := posAtTime(paths[j], t)
				if okI1 && okI2 && okJ1 && okJ2 && prevI == curJ && prevJ == curI && prevI != curI {
					out = append(out, &Conflict{
						Agent1: i, Agent2: j, Cell: prevI, Time: t, IsSwap: true,
						SwapFrom: prevI, SwapTo: curI,
					})
				}
			}
		}
	}
	return out
}
