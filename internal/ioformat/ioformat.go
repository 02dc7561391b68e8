// Package ioformat reads and writes the instance file formats of spec.md
// §6: benchmark (`type octile`) maps, Liron maps, `.agents` and `.scen`
// scenarios, and the combined single-file format. It works only on
// io.Reader/io.Writer (the commands open the files); everything downstream
// works on *core.Grid, []core.Agent and []core.Cell.
package ioformat

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/elektrokombinacija/mapf-grid-solver/internal/core"
)

// obstacleChars are the benchmark-map glyphs that mark a blocked cell;
// anything else (typically '.', 'G', 'S') is traversable.
var obstacleChars = map[byte]bool{
	'@': true,
	'O': true,
	'T': true,
	'W': true,
}

// ReadBenchmarkMap parses a `type octile` benchmark map: a `type` line, a
// `height H` line, a `width W` line, a `map` line, then H rows of W
// characters.
func ReadBenchmarkMap(r io.Reader) (*core.Grid, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1<<20)

	var height, width int
	haveHeight, haveWidth := false, false

	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if line == "map" {
			break
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "type":
			// value (e.g. "octile") is accepted but not otherwise checked.
		case "height":
			if len(fields) < 2 {
				return nil, fmt.Errorf("ioformat: malformed height line %q", line)
			}
			h, err := strconv.Atoi(fields[1])
			if err != nil {
				return nil, fmt.Errorf("ioformat: height: %w", err)
			}
			height, haveHeight = h, true
		case "width":
			if len(fields) < 2 {
				return nil, fmt.Errorf("ioformat: malformed width line %q", line)
			}
			w, err := strconv.Atoi(fields[1])
			if err != nil {
				return nil, fmt.Errorf("ioformat: width: %w", err)
			}
			width, haveWidth = w, true
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("ioformat: reading header: %w", err)
	}
	if !haveHeight || !haveWidth {
		return nil, fmt.Errorf("ioformat: benchmark map missing height/width header")
	}

	obstacle := make([][]bool, width)
	for x := range obstacle {
		obstacle[x] = make([]bool, height)
	}

	row := 0
	for sc.Scan() && row < height {
		line := sc.Text()
		if len(line) < width {
			return nil, fmt.Errorf("ioformat: row %d too short: have %d, want %d", row, len(line), width)
		}
		for x := 0; x < width; x++ {
			if obstacleChars[line[x]] {
				obstacle[x][row] = true
			}
		}
		row++
	}
	if row != height {
		return nil, fmt.Errorf("ioformat: expected %d map rows, got %d", height, row)
	}

	return core.NewGrid(obstacle)
}

// ReadLironMap parses the Liron map format: a `W,H` header line, then W
// rows of H characters where '1' is an obstacle and anything else is
// traversable.
func ReadLironMap(r io.Reader) (*core.Grid, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1<<20)

	if !sc.Scan() {
		return nil, fmt.Errorf("ioformat: liron map missing header")
	}
	header := strings.Split(strings.TrimSpace(sc.Text()), ",")
	if len(header) != 2 {
		return nil, fmt.Errorf("ioformat: malformed liron header %q", sc.Text())
	}
	width, err := strconv.Atoi(strings.TrimSpace(header[0]))
	if err != nil {
		return nil, fmt.Errorf("ioformat: liron width: %w", err)
	}
	height, err := strconv.Atoi(strings.TrimSpace(header[1]))
	if err != nil {
		return nil, fmt.Errorf("ioformat: liron height: %w", err)
	}

	obstacle := make([][]bool, width)
	for x := range obstacle {
		obstacle[x] = make([]bool, height)
	}

	row := 0
	for sc.Scan() && row < width {
		line := sc.Text()
		if len(line) < height {
			return nil, fmt.Errorf("ioformat: liron row %d too short", row)
		}
		for y := 0; y < height; y++ {
			if line[y] == '1' {
				obstacle[row][y] = true
			}
		}
		row++
	}
	if row != width {
		return nil, fmt.Errorf("ioformat: expected %d liron rows, got %d", width, row)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	return core.NewGrid(obstacle)
}

// WriteBenchmarkMap writes grid in the `type octile` benchmark format.
func WriteBenchmarkMap(w io.Writer, grid *core.Grid) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "type octile")
	fmt.Fprintf(bw, "height %d\n", grid.Height)
	fmt.Fprintf(bw, "width %d\n", grid.Width)
	fmt.Fprintln(bw, "map")
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
	return bw.Flush()
}

// WriteLironMap writes grid in the Liron map format.
func WriteLironMap(w io.Writer, grid *core.Grid) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d,%d\n", grid.Width, grid.Height)
	for x := 0; x < grid.Width; x++ {
		for y := 0; y < grid.Height; y++ {
			if grid.IsObstacle(x, y) {
				bw.WriteByte('1')
			} else {
				bw.WriteByte('0')
			}
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
