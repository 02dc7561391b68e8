package core

import "testing"

func TestOppositeReversesDelta(t *testing.T) {
	for _, d := range Directions5 {
		if d == Wait {
			continue
		}
		dx, dy := d.Delta()
		ox, oy := d.Opposite().Delta()
		if dx != -ox || dy != -oy {
			t.Errorf("%s opposite %s does not reverse delta", d, d.Opposite())
		}
	}
	if Wait.Opposite() != Wait {
		t.Error("Wait should be its own opposite")
	}
}

func TestGetNextMovesCountAndObstacles(t *testing.T) {
	obstacle := emptyGrid(3, 3)
	obstacle[1][0] = true // block north of center
	grid, _ := NewGrid(obstacle)

	moves := GetNextMoves(grid, TimedMove{Move: Move{X: 1, Y: 1}}, 5)
	if len(moves) != 4 { // E, S, W, Wait — N is blocked
		t.Fatalf("expected 4 moves, got %d: %+v", len(moves), moves)
	}
	for _, m := range moves {
		if m.Dir == North {
			t.Fatal("north should be pruned by obstacle")
		}
		if m.Time != 1 {
			t.Fatalf("expected time 1, got %d", m.Time)
		}
	}
}

func TestDirectionSetSizes(t *testing.T) {
	if len(DirectionSet(5)) != 5 {
		t.Fatal("expected 5 directions for NumAllowedDirections=5")
	}
	if len(DirectionSet(9)) != 9 {
		t.Fatal("expected 9 directions for NumAllowedDirections=9")
	}
}
