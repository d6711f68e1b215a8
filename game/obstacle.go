package game

import "github.com/beka-birhanu/vinom-maze/maze"

const maxObstacleStride = 2

// Obstacle random-walks over the grid ignoring walls.
type Obstacle struct {
	pos      maze.Position
	elapsed  float64 // seconds since the last step
	interval float64 // seconds required before the next step
}

// NewObstacle creates an obstacle at pos stepping every interval seconds.
func NewObstacle(pos maze.Position, interval float64) *Obstacle {
	return &Obstacle{pos: pos, interval: interval}
}

// Position returns the current cell.
func (o *Obstacle) Position() maze.Position { return o.pos }

// Step accumulates dt and, once the interval is reached, jumps by a random offset in
// [-2, 2] on each axis, clamped into the width x height grid. It reports whether a jump happened.
func (o *Obstacle) Step(dt float64, width, height int, rng maze.Rand) bool {
	o.elapsed += dt
	if o.elapsed < o.interval {
		return false
	}

	o.pos.X = clamp(o.pos.X+rng.IntRange(-maxObstacleStride, maxObstacleStride), 0, width-1)
	o.pos.Y = clamp(o.pos.Y+rng.IntRange(-maxObstacleStride, maxObstacleStride), 0, height-1)
	o.elapsed = 0
	return true
}

// CollidesWith reports whether the obstacle occupies p.
func (o *Obstacle) CollidesWith(p maze.Position) bool {
	return o.pos == p
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
