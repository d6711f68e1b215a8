package game

import "github.com/beka-birhanu/vinom-maze/maze"

// Snapshot is a read-only copy of a session handed to render layers.
type Snapshot struct {
	Difficulty      string         `json:"difficulty"`
	State           string         `json:"state"`
	Intent          string         `json:"intent"`
	Width           int            `json:"width"`
	Height          int            `json:"height"`
	Walls           [][]maze.Cell  `json:"walls"` // indexed [y][x]
	Player          maze.Position  `json:"player"`
	Goal            maze.Position  `json:"goal"`
	Obstacle        *maze.Position `json:"obstacle,omitempty"`
	ObstacleDensity float64        `json:"obstacle_density"`
	Elapsed         float64        `json:"elapsed"`
	BestTime        *float64       `json:"best_time,omitempty"`
	Dynamic         bool           `json:"dynamic"`
}

// Snapshot copies the current session state.
func (s *Simulation) Snapshot() Snapshot {
	snap := Snapshot{
		Difficulty:      s.difficulty.String(),
		State:           s.state.String(),
		Intent:          s.intent.String(),
		Width:           s.maze.Width(),
		Height:          s.maze.Height(),
		Walls:           s.maze.Walls(),
		Player:          s.player.Position(),
		Goal:            s.goal,
		ObstacleDensity: s.settings.ObstacleDensity,
		Elapsed:         s.elapsed,
		Dynamic:         s.settings.Dynamic,
	}
	if s.settings.WanderingObstacle {
		pos := s.obstacle.Position()
		snap.Obstacle = &pos
	}
	if s.hasBest {
		best := s.best
		snap.BestTime = &best
	}
	return snap
}
