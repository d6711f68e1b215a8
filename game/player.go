package game

import "github.com/beka-birhanu/vinom-maze/maze"

// MoveOutcome is the result of a movement attempt. Rejected moves are not errors.
type MoveOutcome int

const (
	MoveNone MoveOutcome = iota
	MoveRejected
	MoveApplied
	MoveReachedGoal
)

func (o MoveOutcome) String() string {
	switch o {
	case MoveRejected:
		return "rejected"
	case MoveApplied:
		return "applied"
	case MoveReachedGoal:
		return "reached_goal"
	default:
		return "none"
	}
}

// Player is a position bound to the dimensions of the grid it walks on.
type Player struct {
	pos    maze.Position
	width  int
	height int
}

// NewPlayer places a player at the origin of a width x height grid.
func NewPlayer(width, height int) Player {
	return Player{width: width, height: height}
}

// Position returns the current cell.
func (p *Player) Position() maze.Position { return p.pos }

// Goal returns the bottom-right cell of the bound grid.
func (p *Player) Goal() maze.Position {
	return maze.Position{X: p.width - 1, Y: p.height - 1}
}

// SetGridSize rebinds the player to new grid dimensions.
func (p *Player) SetGridSize(width, height int) {
	p.width = width
	p.height = height
}

// ResetTo moves the player without any legality check.
func (p *Player) ResetTo(pos maze.Position) {
	p.pos = pos
}

// Move attempts a single step of (dx, dy). Only the four unit axis vectors are legal.
// The position is left untouched unless the target is inside the grid and no wall blocks it.
func (p *Player) Move(dx, dy int, g Grid) MoveOutcome {
	d, ok := maze.DirectionOf(dx, dy)
	if !ok {
		return MoveRejected
	}

	target := p.pos.Step(d)
	if target.X < 0 || target.X >= p.width || target.Y < 0 || target.Y >= p.height {
		return MoveRejected
	}
	if g.HasWall(p.pos, d) {
		return MoveRejected
	}

	p.pos = target
	if p.pos == p.Goal() {
		return MoveReachedGoal
	}
	return MoveApplied
}
