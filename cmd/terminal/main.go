// Command terminal plays the maze in a terminal.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/beka-birhanu/vinom-maze/config"
	"github.com/beka-birhanu/vinom-maze/infrastruture/besttime"
	"github.com/beka-birhanu/vinom-maze/infrastruture/logger"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/gdamore/tcell/v2"
)

func main() {
	bestFile := flag.String("best", config.Envs.BestTimeFile, "best time file")
	logFile := flag.String("log", "", "write logs to this file")
	seed := flag.Int64("seed", config.Envs.MazeSeed, "maze seed, 0 for a random one")
	flag.Parse()

	var logOut io.Writer = io.Discard
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "opening log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logOut = f
	}
	log := logger.New("TERMINAL", config.ColorPurple, logOut)

	width, height, err := maze.DimensionsFor(config.Envs.ScreenWidth, config.Envs.ScreenHeight, config.Envs.CellSize)
	if err != nil {
		fmt.Fprintf(os.Stderr, "deriving maze dimensions: %v\n", err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "creating screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "initializing screen: %v\n", err)
		os.Exit(1)
	}

	tickRate := config.Envs.TickRate
	if tickRate <= 0 {
		tickRate = 60
	}

	h := &host{
		screen:   screen,
		store:    besttime.NewFileStore(*bestFile),
		logger:   log,
		width:    width,
		height:   height,
		seed:     *seed,
		tickRate: tickRate,
	}
	err = h.run()
	screen.Fini()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
