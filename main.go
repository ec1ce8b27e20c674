package main

import (
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	configPath := flag.String("config", "", "controller yaml overriding the embedded defaults")
	scriptName := flag.String("script", "", "drive the player from an intent script in prefabs/scripts instead of the keyboard")
	debug := flag.Bool("debug", false, "draw physics shapes, the ground probe and controller state")
	watch := flag.Bool("watch", true, "reload controller specs and scripts when they change on disk")
	verbose := flag.Bool("v", false, "log controller transitions")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	game, err := NewGame(Options{
		ConfigPath: *configPath,
		Script:     *scriptName,
		Debug:      *debug,
		Watch:      *watch,
	}, logger)
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("controller2d")
	ebiten.SetTPS(game.TickRate())

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
