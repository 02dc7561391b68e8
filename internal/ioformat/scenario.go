package ioformat

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/elektrokombinacija/mapf-grid-solver/internal/core"
)

// ScenarioAgent is one parsed agent record: a start and goal cell, plus the
// benchmark's claimed optimal cost (0 if the format doesn't carry one).
type ScenarioAgent struct {
	StartX, StartY int
	GoalX, GoalY   int
	OptimalCost    float64
}

// ReadAgents parses the `.agents` scenario format: a leading agent-count
// line, then one `goalX,goalY,startX,startY` record per line.
func ReadAgents(r io.Reader) ([]ScenarioAgent, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1<<20)

	if !sc.Scan() {
		return nil, fmt.Errorf("ioformat: .agents file missing count line")
	}
	count, err := strconv.Atoi(strings.TrimSpace(sc.Text()))
	if err != nil {
		return nil, fmt.Errorf("ioformat: .agents count: %w", err)
	}

	agents := make([]ScenarioAgent, 0, count)
	for sc.Scan() && len(agents) < count {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.Split(line, ",")
		if len(fields) != 4 {
			return nil, fmt.Errorf("ioformat: malformed .agents line %q", line)
		}
		vals, err := parseInts(fields)
		if err != nil {
			return nil, err
		}
		agents = append(agents, ScenarioAgent{
			GoalX: vals[0], GoalY: vals[1],
			StartX: vals[2], StartY: vals[3],
		})
	}
	if len(agents) != count {
		return nil, fmt.Errorf("ioformat: expected %d .agents records, got %d", count, len(agents))
	}
	return agents, sc.Err()
}

// WriteAgents writes agents in the `.agents` scenario format.
func WriteAgents(w io.Writer, agents []ScenarioAgent) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, len(agents))
	for _, a := range agents {
		fmt.Fprintf(bw, "%d,%d,%d,%d\n", a.GoalX, a.GoalY, a.StartX, a.StartY)
	}
	return bw.Flush()
}

// ReadScen parses the `.scen` format: a `version 1` header, then tab
// separated rows `block mapName cols rows startY startX goalY goalX
// optimalCost`. Coordinates in the file are (column,row); the returned
// ScenarioAgent fields are inverted to (x,y).
func ReadScen(r io.Reader) ([]ScenarioAgent, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1<<20)

	if !sc.Scan() {
		return nil, fmt.Errorf("ioformat: .scen file is empty")
	}
	header := strings.TrimSpace(sc.Text())
	if !strings.HasPrefix(header, "version") {
		return nil, fmt.Errorf("ioformat: .scen missing version header, got %q", header)
	}

	var agents []ScenarioAgent
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) != 9 {
			return nil, fmt.Errorf("ioformat: malformed .scen line, want 9 tab fields, got %d", len(fields))
		}
		startY, err := strconv.Atoi(fields[4])
		if err != nil {
			return nil, fmt.Errorf("ioformat: .scen startY: %w", err)
		}
		startX, err := strconv.Atoi(fields[5])
		if err != nil {
			return nil, fmt.Errorf("ioformat: .scen startX: %w", err)
		}
		goalY, err := strconv.Atoi(fields[6])
		if err != nil {
			return nil, fmt.Errorf("ioformat: .scen goalY: %w", err)
		}
		goalX, err := strconv.Atoi(fields[7])
		if err != nil {
			return nil, fmt.Errorf("ioformat: .scen goalX: %w", err)
		}
		optimal, err := strconv.ParseFloat(fields[8], 64)
		if err != nil {
			return nil, fmt.Errorf("ioformat: .scen optimalCost: %w", err)
		}
		agents = append(agents, ScenarioAgent{
			StartX: startX, StartY: startY,
			GoalX: goalX, GoalY: goalY,
			OptimalCost: optimal,
		})
	}
	return agents, sc.Err()
}

// WriteScen writes agents in the `.scen` format against mapName, inverting
// (x,y) back to the file's (column,row) convention.
func WriteScen(w io.Writer, mapName string, cols, rows int, agents []ScenarioAgent) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "version 1")
	for _, a := range agents {
		fmt.Fprintf(bw, "0\t%s\t%d\t%d\t%d\t%d\t%d\t%d\t%g\n",
			mapName, cols, rows, a.StartY, a.StartX, a.GoalY, a.GoalX, a.OptimalCost)
	}
	return bw.Flush()
}

// CombinedInstance is the parsed result of the combined file format: an
// optional id/gridName line, a grid, and the agent roster as
// core.Agent/core.Cell pairs ready for core.NewProblemInstance.
type CombinedInstance struct {
	ID       string
	GridName string
	Grid     *core.Grid
	Agents   []core.Agent
	Starts   []core.Cell
}

// ReadCombined parses the combined format: an optional `id,gridName` line,
// a `Grid:` block (W,H then grid rows), then an `Agents:` block (count
// then `agentNum,goalX,goalY,startX,startY` records).
func ReadCombined(r io.Reader) (*CombinedInstance, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1<<20)

	ci := &CombinedInstance{}

	if !sc.Scan() {
		return nil, fmt.Errorf("ioformat: combined file is empty")
	}
	first := strings.TrimSpace(sc.Text())
	if first != "Grid:" {
		parts := strings.SplitN(first, ",", 2)
		ci.ID = strings.TrimSpace(parts[0])
		if len(parts) == 2 {
			ci.GridName = strings.TrimSpace(parts[1])
		}
		if !sc.Scan() {
			return nil, fmt.Errorf("ioformat: combined file missing Grid: block")
		}
		first = strings.TrimSpace(sc.Text())
	}
	if first != "Grid:" {
		return nil, fmt.Errorf("ioformat: expected \"Grid:\", got %q", first)
	}

	if !sc.Scan() {
		return nil, fmt.Errorf("ioformat: combined file missing grid dimensions")
	}
	dims := strings.Split(strings.TrimSpace(sc.Text()), ",")
	if len(dims) != 2 {
		return nil, fmt.Errorf("ioformat: malformed grid dimensions %q", sc.Text())
	}
	width, err := strconv.Atoi(strings.TrimSpace(dims[0]))
	if err != nil {
		return nil, fmt.Errorf("ioformat: grid width: %w", err)
	}
	height, err := strconv.Atoi(strings.TrimSpace(dims[1]))
	if err != nil {
		return nil, fmt.Errorf("ioformat: grid height: %w", err)
	}

	obstacle := make([][]bool, width)
	for x := range obstacle {
		obstacle[x] = make([]bool, height)
	}
	for y := 0; y < height; y++ {
		if !sc.Scan() {
			return nil, fmt.Errorf("ioformat: combined file truncated in grid block at row %d", y)
		}
		line := sc.Text()
		if len(line) < width {
			return nil, fmt.Errorf("ioformat: combined grid row %d too short", y)
		}
		for x := 0; x < width; x++ {
			if obstacleChars[line[x]] {
				obstacle[x][y] = true
			}
		}
	}
	grid, err := core.NewGrid(obstacle)
	if err != nil {
		return nil, err
	}
	ci.Grid = grid

	if !sc.Scan() {
		return nil, fmt.Errorf("ioformat: combined file missing Agents: block")
	}
	if strings.TrimSpace(sc.Text()) != "Agents:" {
		return nil, fmt.Errorf("ioformat: expected \"Agents:\", got %q", sc.Text())
	}
	if !sc.Scan() {
		return nil, fmt.Errorf("ioformat: combined file missing agent count")
	}
	count, err := strconv.Atoi(strings.TrimSpace(sc.Text()))
	if err != nil {
		return nil, fmt.Errorf("ioformat: agent count: %w", err)
	}

	for sc.Scan() && len(ci.Agents) < count {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.Split(line, ",")
		if len(fields) != 5 {
			return nil, fmt.Errorf("ioformat: malformed agent line %q", line)
		}
		vals, err := parseInts(fields)
		if err != nil {
			return nil, err
		}
		ci.Agents = append(ci.Agents, core.Agent{AgentNum: vals[0], GoalX: vals[1], GoalY: vals[2]})
		ci.Starts = append(ci.Starts, core.Cell{X: vals[3], Y: vals[4]})
	}
	if len(ci.Agents) != count {
		return nil, fmt.Errorf("ioformat: expected %d agent records, got %d", count, len(ci.Agents))
	}

	return ci, sc.Err()
}

// WriteCombined writes the combined format. idLine is written verbatim as
// the optional leading line if non-empty.
func WriteCombined(w io.Writer, idLine string, grid *core.Grid, agents []core.Agent, starts []core.Cell) error {
	bw := bufio.NewWriter(w)
	if idLine != "" {
		fmt.Fprintln(bw, idLine)
	}
	fmt.Fprintln(bw, "Grid:")
	fmt.Fprintf(bw, "%d,%d\n", grid.Width, grid.Height)
	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			if grid.IsObstacle(x, y) {
				bw.WriteByte('@')
			} else {
				bw.WriteByte('.')
			}
		}
		bw.WriteByte('\n')
	}
	fmt.Fprintln(bw, "Agents:")
	fmt.Fprintln(bw, len(agents))
	for i, a := range agents {
		fmt.Fprintf(bw, "%d,%d,%d,%d,%d\n", a.AgentNum, a.GoalX, a.GoalY, starts[i].X, starts[i].Y)
	}
	return bw.Flush()
}

func parseInts(fields []string) ([]int, error) {
	vals := make([]int, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, fmt.Errorf("ioformat: field %q: %w", f, err)
		}
		vals[i] = v
	}
	return vals, nil
}
