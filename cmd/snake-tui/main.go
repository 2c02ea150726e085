package main

import (
	"flag"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Serpent-Sense/internal/config"
	"github.com/Garsondee/Serpent-Sense/internal/game"
	"github.com/Garsondee/Serpent-Sense/internal/scores"
	"github.com/Garsondee/Serpent-Sense/internal/tui"
)

func main() {
	var (
		configPath = flag.String("config", "", "optional TOML config file")
		seed       = flag.Int64("seed", 0, "RNG seed (0 = time based)")
		cells      = flag.Int("cells", 0, "grid side length (0 = config value)")
		autopilot  = flag.Bool("autopilot", false, "let the AI steer the player")
		quiet      = flag.Bool("quiet", false, "disable sound")
	)
	flag.Parse()

	cfg := game.DefaultConfig()
	// The terminal board is smaller by default so it fits 80x24 and up.
	cfg.CellCount = 20
	cfg.FoodCount = 5
	if *configPath != "" {
		loaded, err := config.Load(*configPath, cfg)
		if err != nil {
			log.Fatal(err)
		}
		cfg = loaded
	}
	if *cells > 0 {
		cfg.CellCount = *cells
	}
	if *autopilot {
		cfg.Autopilot = true
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	var store scores.Store
	opts := []game.Option{game.WithSeed(*seed)}
	if path, err := scores.DefaultPath(); err != nil {
		log.Printf("scores disabled: %v", err)
	} else if f, err := scores.Open(path); err != nil {
		log.Printf("scores disabled: %v", err)
	} else {
		store = f
		opts = append(opts, game.WithScoreKeeper(f))
	}

	sim, err := game.NewSim(cfg, opts...)
	if err != nil {
		log.Fatal(err)
	}

	var sound *tui.Sound
	if !*quiet {
		if sound, err = tui.NewSound(); err != nil {
			log.Printf("sound disabled: %v", err)
		}
	}
	defer sound.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal(err)
	}
	if err := screen.Init(); err != nil {
		log.Fatal(err)
	}

	runErr := tui.New(screen, sim, store, sound).Run()
	screen.Fini()
	if runErr != nil {
		log.Fatal(runErr)
	}
}
