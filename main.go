package main

import (
	"flag"
	"fmt"
	"os"

	"shadowcast-rogue/internal/game"
	"shadowcast-rogue/internal/logger"
)

func main() {
	cfg := game.DefaultConfig()
	flag.IntVar(&cfg.MapWidth, "width", cfg.MapWidth, "map width")
	flag.IntVar(&cfg.MapHeight, "height", cfg.MapHeight, "map height")
	flag.IntVar(&cfg.ViewRadius, "radius", cfg.ViewRadius, "player view radius")
	flag.IntVar(&cfg.Levels, "levels", cfg.Levels, "number of levels")
	flag.IntVar(&cfg.PillarCount, "pillars", cfg.PillarCount, "pillars on the first level")
	flag.IntVar(&cfg.StalkerCount, "stalkers", cfg.StalkerCount, "stalkers on the first level")
	flag.BoolVar(&cfg.Doors, "doors", cfg.Doors, "hang doors in room exits")
	flag.Int64Var(&cfg.Seed, "seed", 0, "level seed (0 picks one)")
	flag.BoolVar(&cfg.SaveRunLog, "runlog", cfg.SaveRunLog, "append finished runs to the run log")
	logFile := flag.String("log", "", "write logs to this file")
	flag.Parse()

	// The screen owns stdout, so logs go to a file or nowhere.
	if *logFile != "" {
		os.Setenv("LOG_FILE", *logFile)
	}
	if err := logger.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	if os.Getenv("LOG_FILE") == "" {
		logger.Quiet()
	}

	g, err := game.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	g.Run()
}
