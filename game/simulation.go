package game

import (
	"errors"
	"fmt"

	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/sirupsen/logrus"
)

// Simulation-related errors.
var (
	ErrNoRandomSource = errors.New("simulation needs a random source")
)

// SimulationConfig holds what a new session is built from.
type SimulationConfig struct {
	Difficulty Difficulty
	Width      int
	Height     int
	Rand       maze.Rand          // Rand is the single random source of the session.
	Store      BestTimeStore      // Store is optional; without it best times live in memory only.
	Logger     logrus.FieldLogger // Logger is optional.
}

// TickResult reports what happened during one tick.
type TickResult struct {
	State       State
	Intent      Intent
	Move        MoveOutcome
	Regenerated bool // the maze was rebuilt around the player
	Collided    bool // the obstacle sent the player back to the origin
	NewBest     bool // the session was won with a new best time
	Restarted   bool // retry or reset started the run over
}

// Simulation owns one game session: the maze, the entities, the timers and the state machine.
// It is single-threaded; callers serialize access.
type Simulation struct {
	difficulty Difficulty
	settings   Settings
	maze       *maze.Maze
	player     Player
	obstacle   *Obstacle
	goal       maze.Position

	state  State
	intent Intent
	won    bool // set by the move that lands on the goal

	elapsed    float64 // game timer, seconds
	regenTimer float64 // seconds since the last rebuild
	best       float64
	hasBest    bool

	rng    maze.Rand
	store  BestTimeStore
	logger logrus.FieldLogger
}

// NewSimulation builds the maze, places the entities and loads the best time.
// A failing or empty store leaves the best time unset.
func NewSimulation(cfg SimulationConfig) (*Simulation, error) {
	settings, err := SettingsFor(cfg.Difficulty)
	if err != nil {
		return nil, err
	}
	if cfg.Rand == nil {
		return nil, ErrNoRandomSource
	}

	m, err := maze.New(cfg.Width, cfg.Height, cfg.Rand)
	if err != nil {
		return nil, fmt.Errorf("building maze: %w", err)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	s := &Simulation{
		difficulty: cfg.Difficulty,
		settings:   settings,
		maze:       m,
		player:     NewPlayer(m.Width(), m.Height()),
		obstacle:   NewObstacle(maze.Position{}, settings.ObstacleInterval),
		goal:       maze.Position{X: m.Width() - 1, Y: m.Height() - 1},
		state:      Playing,
		rng:        cfg.Rand,
		store:      cfg.Store,
		logger:     logger.WithField("difficulty", cfg.Difficulty.String()),
	}
	s.loadBestTime()
	return s, nil
}

// State returns the current phase.
func (s *Simulation) State() State { return s.state }

// Intent returns what the host should do once the session is Over.
func (s *Simulation) Intent() Intent { return s.intent }

// Difficulty returns the difficulty the session was created with.
func (s *Simulation) Difficulty() Difficulty { return s.difficulty }

// Elapsed returns the game timer in seconds.
func (s *Simulation) Elapsed() float64 { return s.elapsed }

// BestTime returns the best recorded time; ok is false while unset.
func (s *Simulation) BestTime() (best float64, ok bool) { return s.best, s.hasBest }

// Player returns the current player position.
func (s *Simulation) Player() maze.Position { return s.player.Position() }

// Maze exposes the grid for read-only queries.
func (s *Simulation) Maze() Grid { return s.maze }

// Tick advances the session by dt seconds.
//
// While playing the order is fixed: rebuild the maze when the dynamic timer expires,
// step the obstacle and check collision, apply at most one movement input, advance the
// timer, evaluate the goal. Control inputs (pause, reset, home) are applied afterwards,
// so they take effect from the next tick. On the win screen only retry and quit are read.
func (s *Simulation) Tick(dt float64, inputs ...Input) TickResult {
	if dt < 0 {
		dt = 0
	}

	var res TickResult
	switch s.state {
	case Over:
	case Won:
		s.handleWinScreen(inputs, &res)
	default:
		s.play(dt, inputs, &res)
	}

	res.State = s.state
	res.Intent = s.intent
	return res
}

func (s *Simulation) play(dt float64, inputs []Input, res *TickResult) {
	paused := s.state == Paused

	// 1. periodic rebuild
	if s.settings.Dynamic && !paused {
		s.regenTimer += dt
		if s.regenTimer >= s.settings.RegenInterval {
			s.regenerate(s.player.Position())
			s.regenTimer = 0
			res.Regenerated = true
		}
	}

	// 2. obstacle
	if s.settings.WanderingObstacle && !paused {
		s.obstacle.Step(dt, s.maze.Width(), s.maze.Height(), s.rng)
		// the obstacle spawns on the origin; sending the player there again changes nothing
		if s.obstacle.CollidesWith(s.player.Position()) && s.player.Position() != (maze.Position{}) {
			s.player.ResetTo(maze.Position{})
			res.Collided = true
		}
	}

	// 3. one movement
	if !paused {
		for _, in := range inputs {
			if !in.IsMove() {
				continue
			}
			dx, dy := in.Delta()
			res.Move = s.player.Move(dx, dy, s.maze)
			if res.Move == MoveReachedGoal {
				s.won = true
			}
			break
		}
	}

	// 4. timer
	if !paused {
		s.elapsed += dt
	}

	// 5. goal
	if s.won {
		s.enterWon(res)
		return
	}

	for _, in := range inputs {
		switch in {
		case TogglePause:
			if s.state == Paused {
				s.state = Playing
			} else {
				s.state = Paused
			}
		case Reset:
			if s.state == Playing {
				s.restart()
				res.Restarted = true
			}
		case Home:
			if s.state == Playing {
				s.state = Over
				s.intent = IntentHome
				return
			}
		}
	}
}

func (s *Simulation) handleWinScreen(inputs []Input, res *TickResult) {
	for _, in := range inputs {
		switch in {
		case Retry:
			s.restart()
			res.Restarted = true
			return
		case Quit:
			s.state = Over
			s.intent = IntentExit
			return
		}
	}
}

// enterWon records the final time and persists it when it beats the stored best.
func (s *Simulation) enterWon(res *TickResult) {
	s.state = Won
	if s.hasBest && s.elapsed >= s.best {
		return
	}

	s.best = s.elapsed
	s.hasBest = true
	res.NewBest = true

	if s.store == nil {
		return
	}
	if err := s.store.Save(s.best); err != nil {
		s.logger.WithError(err).Warn("saving best time")
	}
}

// restart begins a new run of the same session: origin, timers cleared, maze rebuilt from the origin.
func (s *Simulation) restart() {
	s.player.ResetTo(maze.Position{})
	s.won = false
	s.elapsed = 0
	s.regenTimer = 0
	s.regenerate(maze.Position{})
	s.state = Playing
	s.intent = IntentNone
}

func (s *Simulation) regenerate(from maze.Position) {
	if err := s.maze.Regenerate(from); err != nil {
		s.logger.WithError(err).Error("regenerating maze")
		return
	}
	s.player.SetGridSize(s.maze.Width(), s.maze.Height())
}

func (s *Simulation) loadBestTime() {
	if s.store == nil {
		return
	}
	best, ok, err := s.store.Load()
	if err != nil {
		s.logger.WithError(err).Warn("loading best time, starting without one")
		return
	}
	if ok && best >= 0 {
		s.best = best
		s.hasBest = true
	}
}
