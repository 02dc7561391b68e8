package core

import "errors"

// Sentinel errors for instance construction and validation, in the style of
// gridgraph's package-level error vars.
var (
	// ErrEmptyGrid indicates a grid with zero width or height.
	ErrEmptyGrid = errors.New("core: grid must have positive width and height")
	// ErrStartOnObstacle indicates an agent's start cell is not traversable.
	ErrStartOnObstacle = errors.New("core: agent start lies on an obstacle")
	// ErrGoalOnObstacle indicates an agent's goal cell is not traversable.
	ErrGoalOnObstacle = errors.New("core: agent goal lies on an obstacle")
	// ErrInitialCollision indicates two agents share a start cell.
	ErrInitialCollision = errors.New("core: two agents share a start cell")
	// ErrUnsolvable indicates that no plan was found: SIC could not reach some
	// agent's start from its goal, a search exhausted its open list, or
	// (wrapped) a search ran past its time limit.
	ErrUnsolvable = errors.New("core: instance unsolvable, goal unreachable from start")
	// ErrTooManyAgents indicates the agent count exceeds Config.MaxAgents.
	ErrTooManyAgents = errors.New("core: agent count exceeds configured maximum")
)
