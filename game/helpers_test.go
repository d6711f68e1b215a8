package game

import (
	"errors"
	"io"

	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/sirupsen/logrus"
)

// scriptedRand serves queued values first, then falls back to a seeded source.
type scriptedRand struct {
	queue    []int
	fallback *maze.SeededRand
}

func newScriptedRand(seed int64) *scriptedRand {
	return &scriptedRand{fallback: maze.NewRand(seed)}
}

func (r *scriptedRand) push(values ...int) {
	r.queue = append(r.queue, values...)
}

func (r *scriptedRand) IntRange(low, high int) int {
	if len(r.queue) == 0 {
		return r.fallback.IntRange(low, high)
	}
	v := r.queue[0]
	r.queue = r.queue[1:]
	return v
}

// memoryStore is a BestTimeStore that records every save.
type memoryStore struct {
	best    float64
	has     bool
	saves   []float64
	loadErr error
	saveErr error
}

func (m *memoryStore) Load() (float64, bool, error) {
	if m.loadErr != nil {
		return 0, false, m.loadErr
	}
	return m.best, m.has, nil
}

func (m *memoryStore) Save(best float64) error {
	m.saves = append(m.saves, best)
	if m.saveErr != nil {
		return m.saveErr
	}
	m.best = best
	m.has = true
	return nil
}

var errStoreDown = errors.New("store is down")

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// wallGrid is a Grid with explicitly listed walls.
type wallGrid struct {
	width, height int
	walls         map[maze.Position]map[maze.Direction]bool
}

func newWallGrid(width, height int) *wallGrid {
	return &wallGrid{width: width, height: height, walls: map[maze.Position]map[maze.Direction]bool{}}
}

func (g *wallGrid) block(p maze.Position, d maze.Direction) {
	if g.walls[p] == nil {
		g.walls[p] = map[maze.Direction]bool{}
	}
	g.walls[p][d] = true
}

func (g *wallGrid) Width() int  { return g.width }
func (g *wallGrid) Height() int { return g.height }

func (g *wallGrid) InBound(p maze.Position) bool {
	return p.X >= 0 && p.X < g.width && p.Y >= 0 && p.Y < g.height
}

func (g *wallGrid) HasWall(p maze.Position, d maze.Direction) bool {
	return g.walls[p][d]
}

// openMove returns a movement input that is legal from the player's cell.
func openMove(s *Simulation) (Input, maze.Position) {
	pos := s.Player()
	for _, in := range []Input{MoveRight, MoveDown, MoveLeft, MoveUp} {
		dx, dy := in.Delta()
		d, _ := maze.DirectionOf(dx, dy)
		target := pos.Step(d)
		if s.Maze().InBound(target) && !s.Maze().HasWall(pos, d) {
			return in, target
		}
	}
	return InputNone, pos
}
