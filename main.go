package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/tetryon/physbed/config"
)

func main() {
	configPath := flag.String("config", "physbed.yaml", "config file path")
	scenePath := flag.String("scene", "", "scene JSON to load (overrides config)")
	scenarioPath := flag.String("scenario", "", "scenario script to run (overrides config)")
	debug := flag.Bool("debug", false, "enable debug draw overlays")
	record := flag.String("record", "", "capture output: video file or PNG directory (overrides config)")
	paused := flag.Bool("paused", false, "start paused")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *scenePath != "" {
		cfg.Scene = *scenePath
	}
	if *scenarioPath != "" {
		cfg.Scenario = *scenarioPath
	}
	if *debug {
		cfg.DebugDraw = true
	}
	if *record != "" {
		cfg.Capture.Path = *record
	}
	if *paused {
		cfg.StartPaused = true
	}

	game, err := NewGame(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
