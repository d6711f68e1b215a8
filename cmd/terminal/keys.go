package main

import (
	"github.com/beka-birhanu/vinom-maze/game"
	"github.com/gdamore/tcell/v2"
)

// action is what a key press means to the host outside the simulation.
type action int

const (
	actionNone action = iota
	actionExit
	actionSelect // a level was picked on the menu
	actionInput  // an input event for the running session
)

// levelKey maps the menu keys to difficulties.
func levelKey(r rune) (game.Difficulty, bool) {
	switch r {
	case 'e', 'E':
		return game.Easy, true
	case 'm', 'M':
		return game.Medium, true
	case 'h', 'H':
		return game.Hard, true
	}
	return 0, false
}

// menuKey interprets a key on the level select screen.
func menuKey(ev *tcell.EventKey) (action, game.Difficulty) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return actionExit, 0
	case tcell.KeyRune:
		if ev.Rune() == 'q' || ev.Rune() == 'Q' {
			return actionExit, 0
		}
		if d, ok := levelKey(ev.Rune()); ok {
			return actionSelect, d
		}
	}
	return actionNone, 0
}

// sessionKey interprets a key while a session runs. r means retry on the win screen and reset otherwise.
func sessionKey(ev *tcell.EventKey, state game.State) (action, game.Input) {
	switch ev.Key() {
	case tcell.KeyCtrlC:
		return actionExit, game.InputNone
	case tcell.KeyUp:
		return actionInput, game.MoveUp
	case tcell.KeyDown:
		return actionInput, game.MoveDown
	case tcell.KeyLeft:
		return actionInput, game.MoveLeft
	case tcell.KeyRight:
		return actionInput, game.MoveRight
	case tcell.KeyEscape:
		return actionInput, game.Home
	case tcell.KeyRune:
	default:
		return actionNone, game.InputNone
	}

	switch ev.Rune() {
	case 'p', 'P', ' ':
		return actionInput, game.TogglePause
	case 'r', 'R':
		if state == game.Won {
			return actionInput, game.Retry
		}
		return actionInput, game.Reset
	case 'q', 'Q':
		return actionInput, game.Quit
	case 'h', 'H':
		return actionInput, game.Home
	}
	return actionNone, game.InputNone
}
