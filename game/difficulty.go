package game

import (
	"errors"
	"fmt"
	"strings"
)

// Difficulty selects the behaviour toggles of a session.
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
)

const (
	defaultRegenInterval    = 3.0 // seconds between maze rebuilds on dynamic levels
	defaultObstacleInterval = 0.5 // seconds between obstacle steps
)

var ErrUnknownDifficulty = errors.New("unknown difficulty")

// Settings is the configuration record a difficulty maps to.
// Dynamic and WanderingObstacle are independent toggles.
type Settings struct {
	ObstacleDensity   float64 // ObstacleDensity is informational, reported to the UI.
	Dynamic           bool    // Dynamic rebuilds the maze every RegenInterval seconds.
	WanderingObstacle bool    // WanderingObstacle spawns a random-walking obstacle.
	RegenInterval     float64 // RegenInterval in seconds.
	ObstacleInterval  float64 // ObstacleInterval is the time between obstacle steps, in seconds.
}

var settings = map[Difficulty]Settings{
	Easy: {
		ObstacleDensity:  0.3,
		RegenInterval:    defaultRegenInterval,
		ObstacleInterval: defaultObstacleInterval,
	},
	Medium: {
		ObstacleDensity:   0.5,
		WanderingObstacle: true,
		RegenInterval:     defaultRegenInterval,
		ObstacleInterval:  defaultObstacleInterval,
	},
	Hard: {
		ObstacleDensity:  0.7,
		Dynamic:          true,
		RegenInterval:    defaultRegenInterval,
		ObstacleInterval: defaultObstacleInterval,
	},
}

// SettingsFor returns the configuration record of d.
func SettingsFor(d Difficulty) (Settings, error) {
	s, ok := settings[d]
	if !ok {
		return Settings{}, fmt.Errorf("%w: %d", ErrUnknownDifficulty, int(d))
	}
	return s, nil
}

// ParseDifficulty accepts the names produced by Difficulty.String, case-insensitively.
func ParseDifficulty(name string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "easy":
		return Easy, nil
	case "medium":
		return Medium, nil
	case "hard":
		return Hard, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownDifficulty, name)
}

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	default:
		return fmt.Sprintf("n/a:%d", int(d))
	}
}
