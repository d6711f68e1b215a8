package game

import (
	"testing"

	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSim(t *testing.T, d Difficulty, w, h int, rng maze.Rand, store BestTimeStore) *Simulation {
	t.Helper()
	s, err := NewSimulation(SimulationConfig{
		Difficulty: d,
		Width:      w,
		Height:     h,
		Rand:       rng,
		Store:      store,
		Logger:     quietLogger(),
	})
	require.NoError(t, err)
	return s
}

func TestNewSimulation(t *testing.T) {
	t.Run("rejects a missing random source", func(t *testing.T) {
		_, err := NewSimulation(SimulationConfig{Difficulty: Easy, Width: 20, Height: 15})
		assert.ErrorIs(t, err, ErrNoRandomSource)
	})

	t.Run("rejects an unknown difficulty", func(t *testing.T) {
		_, err := NewSimulation(SimulationConfig{Difficulty: Difficulty(7), Width: 20, Height: 15, Rand: maze.NewRand(1)})
		assert.ErrorIs(t, err, ErrUnknownDifficulty)
	})

	t.Run("rejects bad dimensions", func(t *testing.T) {
		_, err := NewSimulation(SimulationConfig{Difficulty: Easy, Width: 0, Height: 15, Rand: maze.NewRand(1)})
		assert.ErrorIs(t, err, maze.ErrInvalidDimensions)
	})

	t.Run("starts playing at the origin with a perfect maze", func(t *testing.T) {
		s := newSim(t, Easy, 20, 15, maze.NewRand(3), nil)
		snap := s.Snapshot()

		assert.Equal(t, Playing, s.State())
		assert.Equal(t, maze.Position{}, snap.Player)
		assert.Equal(t, maze.Position{X: 19, Y: 14}, snap.Goal)
		assert.Nil(t, snap.BestTime)
		assert.Nil(t, snap.Obstacle)
		assert.Equal(t, "easy", snap.Difficulty)
		assert.Equal(t, "playing", snap.State)

		m, ok := s.Maze().(*maze.Maze)
		require.True(t, ok)
		assert.Equal(t, 20*15-1, m.Passages())
	})

	t.Run("loads the stored best time", func(t *testing.T) {
		s := newSim(t, Easy, 20, 15, maze.NewRand(3), &memoryStore{best: 42.5, has: true})
		best, ok := s.BestTime()
		assert.True(t, ok)
		assert.Equal(t, 42.5, best)
		require.NotNil(t, s.Snapshot().BestTime)
		assert.Equal(t, 42.5, *s.Snapshot().BestTime)
	})

	t.Run("a failing store means no best time", func(t *testing.T) {
		s := newSim(t, Easy, 20, 15, maze.NewRand(3), &memoryStore{loadErr: errStoreDown})
		_, ok := s.BestTime()
		assert.False(t, ok)
	})
}

func TestIllegalMovesChangeNothing(t *testing.T) {
	s := newSim(t, Easy, 20, 15, maze.NewRand(8), nil)

	res := s.Tick(0.016, MoveUp)
	assert.Equal(t, MoveRejected, res.Move)
	res = s.Tick(0.016, MoveLeft)
	assert.Equal(t, MoveRejected, res.Move)

	assert.Equal(t, maze.Position{}, s.Player())
	assert.Equal(t, Playing, s.State())
}

func TestOneMovementPerTick(t *testing.T) {
	s := newSim(t, Easy, 20, 15, maze.NewRand(8), nil)
	first, target := openMove(s)
	require.NotEqual(t, InputNone, first)

	res := s.Tick(0.016, first, first, first)
	assert.Equal(t, MoveApplied, res.Move)
	assert.Equal(t, target, s.Player())
}

func TestWinAndBestTime(t *testing.T) {
	// A 2x1 maze has a single passage: right from the origin is the goal.
	t.Run("reaching the goal wins and saves the first time", func(t *testing.T) {
		store := &memoryStore{}
		s := newSim(t, Easy, 2, 1, maze.NewRand(1), store)

		s.Tick(1.5)
		res := s.Tick(0.5, MoveRight)

		assert.Equal(t, MoveReachedGoal, res.Move)
		assert.Equal(t, Won, res.State)
		assert.True(t, res.NewBest)
		assert.Equal(t, []float64{2.0}, store.saves)
	})

	t.Run("best time tracks the minimum and saves only on improvement", func(t *testing.T) {
		store := &memoryStore{}
		s := newSim(t, Easy, 2, 1, maze.NewRand(1), store)

		times := []float64{5, 3, 4, 2, 2, 6}
		var newBests []bool
		for _, tm := range times {
			res := s.Tick(tm, MoveRight)
			require.Equal(t, Won, res.State)
			newBests = append(newBests, res.NewBest)

			res = s.Tick(0.016, Retry)
			require.Equal(t, Playing, res.State)
			require.True(t, res.Restarted)
		}

		assert.Equal(t, []bool{true, true, false, true, false, false}, newBests)
		assert.Equal(t, []float64{5, 3, 2}, store.saves)
		best, ok := s.BestTime()
		assert.True(t, ok)
		assert.Equal(t, 2.0, best)
	})

	t.Run("a stored best is only replaced by a strictly lower time", func(t *testing.T) {
		store := &memoryStore{best: 3, has: true}
		s := newSim(t, Easy, 2, 1, maze.NewRand(1), store)

		res := s.Tick(3, MoveRight)
		assert.False(t, res.NewBest)
		assert.Empty(t, store.saves)
	})

	t.Run("a failing save keeps the in-memory record", func(t *testing.T) {
		store := &memoryStore{saveErr: errStoreDown}
		s := newSim(t, Easy, 2, 1, maze.NewRand(1), store)

		res := s.Tick(4, MoveRight)
		assert.True(t, res.NewBest)
		assert.Equal(t, Won, s.State())
		best, ok := s.BestTime()
		assert.True(t, ok)
		assert.Equal(t, 4.0, best)
	})

	t.Run("the win screen freezes play", func(t *testing.T) {
		s := newSim(t, Easy, 2, 1, maze.NewRand(1), nil)
		s.Tick(1, MoveRight)
		elapsed := s.Elapsed()

		res := s.Tick(5, MoveLeft, TogglePause, Reset, Home)
		assert.Equal(t, Won, res.State)
		assert.Equal(t, MoveNone, res.Move)
		assert.Equal(t, elapsed, s.Elapsed())
		assert.Equal(t, maze.Position{X: 1, Y: 0}, s.Player())
	})

	t.Run("retry starts over from the origin", func(t *testing.T) {
		s := newSim(t, Easy, 2, 1, maze.NewRand(1), nil)
		s.Tick(1, MoveRight)

		res := s.Tick(0.016, Retry)
		assert.Equal(t, Playing, res.State)
		assert.Equal(t, maze.Position{}, s.Player())
		assert.Zero(t, s.Elapsed())
	})

	t.Run("quit ends the session with an exit intent", func(t *testing.T) {
		s := newSim(t, Easy, 2, 1, maze.NewRand(1), nil)
		s.Tick(1, MoveRight)

		res := s.Tick(0.016, Quit)
		assert.Equal(t, Over, res.State)
		assert.Equal(t, IntentExit, res.Intent)

		res = s.Tick(1, Retry, MoveLeft)
		assert.Equal(t, Over, res.State)
	})

	t.Run("retry and quit are ignored while playing", func(t *testing.T) {
		s := newSim(t, Easy, 20, 15, maze.NewRand(1), nil)
		res := s.Tick(1, Retry, Quit)
		assert.Equal(t, Playing, res.State)
		assert.Equal(t, 1.0, s.Elapsed())
	})
}

func TestPause(t *testing.T) {
	s := newSim(t, Easy, 20, 15, maze.NewRand(12), nil)
	move, _ := openMove(s)

	// the toggling tick still runs under the previous state
	res := s.Tick(1, TogglePause)
	assert.Equal(t, Paused, res.State)
	assert.Equal(t, 1.0, s.Elapsed())

	res = s.Tick(10, move)
	assert.Equal(t, Paused, res.State)
	assert.Equal(t, MoveNone, res.Move)
	assert.Equal(t, maze.Position{}, s.Player())
	assert.Equal(t, 1.0, s.Elapsed())

	// reset and home are ignored while paused
	res = s.Tick(1, Reset, Home)
	assert.Equal(t, Paused, res.State)
	assert.False(t, res.Restarted)

	res = s.Tick(2, TogglePause)
	assert.Equal(t, Playing, res.State)
	assert.Equal(t, 1.0, s.Elapsed())

	s.Tick(2)
	assert.Equal(t, 3.0, s.Elapsed())
}

func TestDynamicRegeneration(t *testing.T) {
	s := newSim(t, Hard, 20, 15, maze.NewRand(21), nil)
	m := s.Maze().(*maze.Maze)
	before := m.Walls()

	assert.False(t, s.Tick(1).Regenerated)
	assert.False(t, s.Tick(1.5).Regenerated)

	s.Tick(0, TogglePause)
	assert.False(t, s.Tick(10).Regenerated, "paused sessions never rebuild")
	s.Tick(0, TogglePause)

	res := s.Tick(0.5)
	assert.True(t, res.Regenerated)
	assert.NotEqual(t, before, m.Walls())
	assert.Equal(t, 20*15, m.Reachable(s.Player()))
	assert.Equal(t, 20*15-1, m.Passages())

	// the accumulator restarted
	assert.False(t, s.Tick(2.5).Regenerated)
	assert.True(t, s.Tick(0.5).Regenerated)
}

func TestStaticLevelsNeverRegenerate(t *testing.T) {
	for _, d := range []Difficulty{Easy, Medium} {
		s := newSim(t, d, 20, 15, maze.NewRand(21), nil)
		for i := 0; i < 20; i++ {
			assert.False(t, s.Tick(1).Regenerated)
		}
	}
}

func TestObstacleCollisionSendsPlayerHome(t *testing.T) {
	rng := newScriptedRand(30)
	s := newSim(t, Medium, 20, 15, rng, nil)
	require.NotNil(t, s.Snapshot().Obstacle)

	move, target := openMove(s)
	res := s.Tick(0.1, move)
	require.Equal(t, MoveApplied, res.Move)
	assert.False(t, res.Collided)

	// the obstacle still sits at the origin and jumps straight onto the player
	rng.push(target.X, target.Y)
	res = s.Tick(0.4)

	assert.True(t, res.Collided)
	assert.Equal(t, maze.Position{}, s.Player())
	assert.Equal(t, target, *s.Snapshot().Obstacle)
	assert.Equal(t, Playing, res.State)
	assert.InDelta(t, 0.5, s.Elapsed(), 1e-9, "the timer keeps running")
}

func TestObstacleOnTheOriginLeavesThePlayerAlone(t *testing.T) {
	rng := newScriptedRand(30)
	s := newSim(t, Medium, 20, 15, rng, nil)

	rng.push(1, 0)
	res := s.Tick(0.5)
	require.Equal(t, maze.Position{X: 1, Y: 0}, *s.Snapshot().Obstacle)
	assert.False(t, res.Collided)

	// back onto the player, who never left the origin
	rng.push(-1, 0)
	res = s.Tick(0.5)

	assert.Equal(t, s.Player(), *s.Snapshot().Obstacle)
	assert.False(t, res.Collided, "a player already at the origin is not sent home again")
	assert.Equal(t, maze.Position{}, s.Player())
	assert.Equal(t, Playing, res.State)
}

func TestObstacleFrozenWhilePaused(t *testing.T) {
	rng := newScriptedRand(30)
	s := newSim(t, Medium, 20, 15, rng, nil)

	s.Tick(0, TogglePause)
	rng.push(2, 2)
	s.Tick(5)
	assert.Equal(t, maze.Position{}, *s.Snapshot().Obstacle)

	s.Tick(0, TogglePause)
	s.Tick(0.5)
	assert.Equal(t, maze.Position{X: 2, Y: 2}, *s.Snapshot().Obstacle)
}

func TestObstacleOnlyOnMedium(t *testing.T) {
	for _, d := range []Difficulty{Easy, Hard} {
		rng := newScriptedRand(30)
		s := newSim(t, d, 20, 15, rng, nil)
		rng.push(1, 1)
		s.Tick(1)
		assert.Nil(t, s.Snapshot().Obstacle)
		assert.Len(t, rng.queue, 2, "no draws for the obstacle on %s", d)
	}
}

func TestResetAndHome(t *testing.T) {
	t.Run("reset restarts the run", func(t *testing.T) {
		s := newSim(t, Easy, 20, 15, maze.NewRand(4), nil)
		move, _ := openMove(s)
		s.Tick(2, move)
		require.NotEqual(t, maze.Position{}, s.Player())

		res := s.Tick(1, Reset)
		assert.True(t, res.Restarted)
		assert.Equal(t, Playing, res.State)
		assert.Equal(t, maze.Position{}, s.Player())
		assert.Zero(t, s.Elapsed())

		m := s.Maze().(*maze.Maze)
		assert.Equal(t, 20*15, m.Reachable(maze.Position{}))
	})

	t.Run("home ends the session", func(t *testing.T) {
		s := newSim(t, Easy, 20, 15, maze.NewRand(4), nil)
		res := s.Tick(1, Home)
		assert.Equal(t, Over, res.State)
		assert.Equal(t, IntentHome, res.Intent)
		assert.Equal(t, "home", s.Snapshot().Intent)
	})
}

func TestSameSeedSameSession(t *testing.T) {
	script := []Input{MoveRight, MoveDown, MoveDown, MoveRight, MoveUp, MoveRight, MoveDown, MoveLeft}

	run := func() Snapshot {
		s := newSim(t, Medium, 20, 15, maze.NewRand(555), nil)
		for _, in := range script {
			s.Tick(0.3, in)
		}
		return s.Snapshot()
	}

	assert.Equal(t, run(), run())
}
