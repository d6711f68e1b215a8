package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/beka-birhanu/vinom-maze/game"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	defaultTickRate    = 60
	defaultInputBuffer = 16
	defaultMazeWidth   = 20
	defaultMazeHeight  = 15
	defaultIdleTimeout = 5 * time.Minute
)

// Session manager errors.
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrInputQueueFull  = errors.New("input queue is full")
	ErrManagerClosed   = errors.New("session manager is shut down")
)

// Config holds the dependencies of a GameSessionManager.
type Config struct {
	Store       i.BestTimeRepo // Store is shared by every session; nil keeps best times in memory.
	TickRate    int            // ticks per second
	Width       int
	Height      int
	Seed        int64         // 0 seeds every session from the clock
	InputBuffer int           // pending inputs allowed per session
	IdleTimeout time.Duration // sessions nobody reads or writes for this long are dropped
	Logger      *logrus.Entry
	Now         func() time.Time
}

// GameSessionManager runs one simulation goroutine per session.
type GameSessionManager struct {
	sessions    map[uuid.UUID]*session
	store       i.BestTimeRepo
	period      time.Duration
	width       int
	height      int
	seed        int64
	inputBuffer int
	idleTimeout time.Duration
	logger      *logrus.Entry
	now         func() time.Time
	closed      bool
	wg          sync.WaitGroup
	sync.RWMutex
}

type session struct {
	id      uuid.UUID
	sim     *game.Simulation
	pending []game.Input
	seen    time.Time // last NewSession, Snapshot or Submit
	stop    chan struct{}
	once    sync.Once
	sync.Mutex
}

// NewGameSessionManager creates a manager; zero config fields fall back to defaults.
func NewGameSessionManager(c *Config) (*GameSessionManager, error) {
	if c == nil {
		c = &Config{}
	}

	rate := c.TickRate
	if rate <= 0 {
		rate = defaultTickRate
	}
	width, height := c.Width, c.Height
	if width == 0 && height == 0 {
		width, height = defaultMazeWidth, defaultMazeHeight
	}
	if width <= 0 || height <= 0 || width > maze.MaxDimension || height > maze.MaxDimension {
		return nil, fmt.Errorf("%w: %dx%d", maze.ErrInvalidDimensions, width, height)
	}
	buffer := c.InputBuffer
	if buffer <= 0 {
		buffer = defaultInputBuffer
	}
	idle := c.IdleTimeout
	if idle <= 0 {
		idle = defaultIdleTimeout
	}
	logger := c.Logger
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	now := c.Now
	if now == nil {
		now = time.Now
	}

	return &GameSessionManager{
		sessions:    make(map[uuid.UUID]*session),
		store:       c.Store,
		period:      time.Second / time.Duration(rate),
		width:       width,
		height:      height,
		seed:        c.Seed,
		inputBuffer: buffer,
		idleTimeout: idle,
		logger:      logger,
		now:         now,
	}, nil
}

// NewSession builds a simulation at the given difficulty and starts ticking it.
func (g *GameSessionManager) NewSession(ctx context.Context, d game.Difficulty) (uuid.UUID, error) {
	if err := ctx.Err(); err != nil {
		return uuid.Nil, err
	}

	sessionID := uuid.New()
	sim, err := game.NewSimulation(game.SimulationConfig{
		Difficulty: d,
		Width:      g.width,
		Height:     g.height,
		Rand:       maze.NewRand(g.seed),
		Store:      g.store,
		Logger:     g.logger.WithField("session", sessionID),
	})
	if err != nil {
		return uuid.Nil, fmt.Errorf("creating session: %w", err)
	}

	s := &session{id: sessionID, sim: sim, seen: g.now(), stop: make(chan struct{})}

	g.Lock()
	if g.closed {
		g.Unlock()
		return uuid.Nil, ErrManagerClosed
	}
	for {
		if _, ok := g.sessions[sessionID]; !ok {
			break
		}
		sessionID = uuid.New()
		s.id = sessionID
	}
	g.sessions[sessionID] = s
	g.wg.Add(1)
	g.Unlock()

	go g.run(s)
	g.logger.WithFields(logrus.Fields{"session": sessionID, "difficulty": d}).Info("started new session")
	return sessionID, nil
}

// Snapshot returns a copy of the session state.
func (g *GameSessionManager) Snapshot(id uuid.UUID) (game.Snapshot, error) {
	s, err := g.session(id)
	if err != nil {
		return game.Snapshot{}, err
	}
	s.Lock()
	defer s.Unlock()
	s.seen = g.now()
	return s.sim.Snapshot(), nil
}

// Submit queues an input for the session. Inputs are consumed in order, one per tick.
func (g *GameSessionManager) Submit(id uuid.UUID, in game.Input) error {
	s, err := g.session(id)
	if err != nil {
		return err
	}
	s.Lock()
	defer s.Unlock()
	s.seen = g.now()
	if len(s.pending) >= g.inputBuffer {
		return ErrInputQueueFull
	}
	s.pending = append(s.pending, in)
	return nil
}

// EndSession stops the session and removes it.
func (g *GameSessionManager) EndSession(id uuid.UUID) error {
	g.Lock()
	s, ok := g.sessions[id]
	if ok {
		delete(g.sessions, id)
	}
	g.Unlock()
	if !ok {
		return ErrSessionNotFound
	}
	s.halt()
	g.logger.WithField("session", id).Info("session ended")
	return nil
}

// Count returns the number of running sessions.
func (g *GameSessionManager) Count() int {
	g.RLock()
	defer g.RUnlock()
	return len(g.sessions)
}

// Shutdown stops every session and refuses new ones. It waits for the session goroutines to exit.
func (g *GameSessionManager) Shutdown() {
	g.Lock()
	g.closed = true
	for id, s := range g.sessions {
		s.halt()
		delete(g.sessions, id)
	}
	g.Unlock()
	g.wg.Wait()
	g.logger.Info("all sessions stopped")
}

func (g *GameSessionManager) session(id uuid.UUID) (*session, error) {
	g.RLock()
	defer g.RUnlock()
	s, ok := g.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

func (g *GameSessionManager) run(s *session) {
	defer g.wg.Done()

	ticker := time.NewTicker(g.period)
	defer ticker.Stop()
	clock := game.NewFrameClock(g.now)

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			res := s.tick(clock.Elapsed())
			if res.NewBest {
				best, _ := s.bestTime()
				g.logger.WithFields(logrus.Fields{"session": s.id, "best": game.FormatClock(best)}).Info("new best time")
			}
			if res.State == game.Over {
				g.logger.WithFields(logrus.Fields{"session": s.id, "intent": res.Intent}).Info("session over")
				g.remove(s)
				return
			}
			if s.idleFor(g.now()) >= g.idleTimeout {
				g.logger.WithField("session", s.id).Info("session idle, dropping it")
				g.remove(s)
				return
			}
		}
	}
}

// remove forgets a session that finished on its own.
func (g *GameSessionManager) remove(s *session) {
	g.Lock()
	defer g.Unlock()
	if cur, ok := g.sessions[s.id]; ok && cur == s {
		delete(g.sessions, s.id)
	}
}

// tick runs one simulation step with the inputs that are due. Later inputs wait for the following ticks.
func (s *session) tick(dt float64) game.TickResult {
	s.Lock()
	defer s.Unlock()

	due, rest := game.SplitDue(s.pending)
	res := s.sim.Tick(dt, due...)
	s.pending = append([]game.Input(nil), rest...)
	return res
}

func (s *session) idleFor(now time.Time) time.Duration {
	s.Lock()
	defer s.Unlock()
	return now.Sub(s.seen)
}

func (s *session) bestTime() (float64, bool) {
	s.Lock()
	defer s.Unlock()
	return s.sim.BestTime()
}

func (s *session) halt() {
	s.once.Do(func() { close(s.stop) })
}
