// Command simulate runs a character headless from an intent script and writes
// a per-tick CSV trace.
package main

import (
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/milk9111/controller2d/prefabs"
)

func main() {
	configPath := flag.String("config", "", "controller yaml overriding the embedded defaults")
	scriptName := flag.String("script", "run_and_jump", "intent script in prefabs/scripts")
	ticks := flag.Int("ticks", 600, "number of fixed ticks to simulate")
	out := flag.String("out", "", "trace csv path (stdout if empty)")
	verbose := flag.Bool("v", false, "log controller transitions")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	spec, err := prefabs.LoadControllerSpec(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	lvl, err := prefabs.LoadLevelSpec()
	if err != nil {
		log.Fatal(err)
	}
	src, err := prefabs.LoadScript(*scriptName)
	if err != nil {
		log.Fatal(err)
	}

	rows, err := Run(Options{Spec: spec, Level: lvl, Script: string(src), Ticks: *ticks}, logger)
	if err != nil {
		log.Fatal(err)
	}

	w := os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		w = f
	}
	if err := WriteTrace(w, rows); err != nil {
		log.Fatal(err)
	}
	sum := Summarize(rows)
	logger.Info("simulation done",
		"ticks", sum.Ticks,
		"grounded", sum.GroundedFraction,
		"mean_speed_x", sum.MeanSpeedX,
		"peak_y", sum.PeakY,
		"jumps", sum.Jumps,
		"landings", sum.Landings,
		"out", *out,
	)
}
