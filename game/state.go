package game

import "fmt"

// State is the phase of a session.
type State int

const (
	Playing State = iota
	Paused
	Won
	Over // terminal: the host should tear the session down
)

// Intent tells the host what to do once a session is Over.
type Intent int

const (
	IntentNone Intent = iota
	IntentExit        // quit was selected on the win screen
	IntentHome        // go back to level selection
)

func (s State) String() string {
	switch s {
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	case Won:
		return "won"
	case Over:
		return "over"
	default:
		return fmt.Sprintf("n/a:%d", int(s))
	}
}

func (i Intent) String() string {
	switch i {
	case IntentExit:
		return "exit"
	case IntentHome:
		return "home"
	default:
		return "none"
	}
}
