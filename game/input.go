package game

import (
	"errors"
	"fmt"
	"strings"
)

// Input is a discrete, edge-triggered event delivered to a simulation tick.
type Input int

const (
	InputNone Input = iota
	MoveUp
	MoveDown
	MoveLeft
	MoveRight
	TogglePause
	Retry
	Quit
	Reset
	Home
)

var ErrUnknownInput = errors.New("unknown input")

var inputNames = map[Input]string{
	InputNone:   "none",
	MoveUp:      "up",
	MoveDown:    "down",
	MoveLeft:    "left",
	MoveRight:   "right",
	TogglePause: "pause",
	Retry:       "retry",
	Quit:        "quit",
	Reset:       "reset",
	Home:        "home",
}

// ParseInput accepts the names produced by Input.String, case-insensitively.
func ParseInput(name string) (Input, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for in, n := range inputNames {
		if n == name && in != InputNone {
			return in, nil
		}
	}
	return InputNone, fmt.Errorf("%w: %q", ErrUnknownInput, name)
}

func (in Input) String() string {
	if n, ok := inputNames[in]; ok {
		return n
	}
	return fmt.Sprintf("n/a:%d", int(in))
}

// IsMove reports whether the input is one of the four movement signals.
func (in Input) IsMove() bool {
	return in >= MoveUp && in <= MoveRight
}

// Delta returns the unit vector of a movement input, (0, 0) otherwise.
func (in Input) Delta() (int, int) {
	switch in {
	case MoveUp:
		return 0, -1
	case MoveDown:
		return 0, 1
	case MoveLeft:
		return -1, 0
	case MoveRight:
		return 1, 0
	}
	return 0, 0
}

// SplitDue separates queued inputs into those due on the next tick and those that wait.
// A tick takes at most one event, so an earlier pause or reset is applied before a later move.
func SplitDue(pending []Input) (due, rest []Input) {
	for idx, in := range pending {
		if in != InputNone {
			return pending[:idx+1], pending[idx+1:]
		}
	}
	return pending, nil
}
