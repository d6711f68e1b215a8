package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/beka-birhanu/vinom-maze/game"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"
)

// host drives the level select screen and one simulation at a time on a terminal screen.
type host struct {
	screen   tcell.Screen
	store    game.BestTimeStore
	logger   *logrus.Entry
	width    int
	height   int
	seed     int64
	tickRate int

	sim     *game.Simulation
	pending []game.Input
	message string
	best    string // menu label, read from the store when the menu opens
}

// start builds a new session at difficulty d.
func (h *host) start(d game.Difficulty) error {
	sim, err := game.NewSimulation(game.SimulationConfig{
		Difficulty: d,
		Width:      h.width,
		Height:     h.height,
		Rand:       maze.NewRand(h.seed),
		Store:      h.store,
		Logger:     h.logger,
	})
	if err != nil {
		return fmt.Errorf("starting %s level: %w", d, err)
	}
	h.sim = sim
	h.pending = nil
	h.message = ""
	h.logger.WithField("difficulty", d).Info("level started")
	return nil
}

// handleKey applies a key press; it returns false when the program should exit.
func (h *host) handleKey(ev *tcell.EventKey) (bool, error) {
	if h.sim == nil {
		act, d := menuKey(ev)
		switch act {
		case actionExit:
			return false, nil
		case actionSelect:
			return true, h.start(d)
		}
		return true, nil
	}

	act, in := sessionKey(ev, h.sim.State())
	switch act {
	case actionExit:
		return false, nil
	case actionInput:
		h.pending = append(h.pending, in)
	}
	return true, nil
}

// step advances the running session; it returns false when the player quit from the win screen.
func (h *host) step(dt float64) bool {
	if h.sim == nil {
		return true
	}

	due, rest := game.SplitDue(h.pending)
	res := h.sim.Tick(dt, due...)
	h.pending = append([]game.Input(nil), rest...)

	switch {
	case res.NewBest:
		h.message = "New best time!"
	case res.Collided:
		h.message = "Caught by the obstacle, back to the start"
	case res.Restarted:
		h.message = ""
	}

	if res.State != game.Over {
		return true
	}
	h.logger.WithField("intent", res.Intent).Info("level over")
	h.openMenu()
	return res.Intent != game.IntentExit
}

// lines renders the current screen as text.
func (h *host) lines() []string {
	if h.sim == nil {
		if h.best == "" {
			return menuLines("--:--")
		}
		return menuLines(h.best)
	}
	return sessionLines(h.sim.Snapshot(), h.message)
}

// openMenu leaves the running session, if any, and refreshes the best time shown on the menu.
func (h *host) openMenu() {
	h.sim = nil
	h.pending = nil
	h.best = h.loadBest()
}

func (h *host) loadBest() string {
	if h.store == nil {
		return "--:--"
	}
	best, ok, err := h.store.Load()
	if err != nil {
		h.logger.WithError(err).Warn("loading best time")
		return "--:--"
	}
	if !ok {
		return "--:--"
	}
	return game.FormatClock(best)
}

func menuLines(best string) []string {
	return []string{
		"VINOM MAZE",
		"",
		"Select a level:",
		"  [E] Easy    static maze",
		"  [M] Medium  a wandering obstacle sends you home",
		"  [H] Hard    the maze rebuilds every few seconds",
		"",
		"Best time: " + best,
		"",
		"[Q] quit",
	}
}

func sessionLines(snap game.Snapshot, message string) []string {
	marks := map[maze.Position]rune{snap.Goal: 'G'}
	if snap.Obstacle != nil {
		marks[*snap.Obstacle] = 'X'
	}
	marks[snap.Player] = '@'

	best := "--:--"
	if snap.BestTime != nil {
		best = game.FormatClock(*snap.BestTime)
	}

	out := []string{fmt.Sprintf("%s  Time %s  Best %s", strings.ToUpper(snap.Difficulty), game.FormatClock(snap.Elapsed), best)}
	out = append(out, strings.Split(strings.TrimSuffix(maze.RenderWalls(snap.Walls, marks), "\n"), "\n")...)

	switch snap.State {
	case game.Paused.String():
		out = append(out, "PAUSED  [P] resume")
	case game.Won.String():
		out = append(out, fmt.Sprintf("YOU WIN in %s  [R] retry  [Q] quit", game.FormatClock(snap.Elapsed)))
	default:
		out = append(out, "arrows move  [P] pause  [R] reset  [H] home")
	}
	if message != "" {
		out = append(out, message)
	}
	return out
}

// draw paints the current lines on the screen.
func (h *host) draw() {
	h.screen.Clear()
	style := tcell.StyleDefault
	for y, line := range h.lines() {
		x := 0
		for _, r := range line {
			st := style
			switch r {
			case '@':
				st = style.Foreground(tcell.ColorGreen).Bold(true)
			case 'G':
				st = style.Foreground(tcell.ColorYellow)
			case 'X':
				st = style.Foreground(tcell.ColorRed)
			}
			h.screen.SetContent(x, y, r, nil, st)
			x++
		}
	}
	h.screen.Show()
}

// run is the frame loop: key events are queued as they arrive and consumed on ticks.
func (h *host) run() error {
	ticker := time.NewTicker(time.Second / time.Duration(h.tickRate))
	defer ticker.Stop()
	clock := game.NewFrameClock(nil)

	eventChan := make(chan tcell.Event, 100)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := h.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case eventChan <- ev:
			case <-quit:
				return
			}
		}
	}()

	h.openMenu()
	h.draw()
	for {
		select {
		case ev := <-eventChan:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				wasMenu := h.sim == nil
				keep, err := h.handleKey(ev)
				if err != nil {
					return err
				}
				if !keep {
					return nil
				}
				if wasMenu && h.sim != nil {
					clock.Elapsed()
				}
			case *tcell.EventResize:
				h.screen.Sync()
			}
			h.draw()
		case <-ticker.C:
			if !h.step(clock.Elapsed()) {
				return nil
			}
			h.draw()
		}
	}
}
