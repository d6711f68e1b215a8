package game

import "github.com/beka-birhanu/vinom-maze/maze"

// Grid defines the read-only wall queries entities need during play.
type Grid interface {
	Width() int
	Height() int
	InBound(p maze.Position) bool
	HasWall(p maze.Position, d maze.Direction) bool
}

// BestTimeStore persists the single best completion time.
type BestTimeStore interface {
	// Load returns the stored best time. ok is false when none has been recorded yet.
	Load() (best float64, ok bool, err error)

	// Save records a new best time.
	Save(best float64) error
}

var _ Grid = (*maze.Maze)(nil)
