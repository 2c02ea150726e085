package main

import (
	"flag"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/Serpent-Sense/internal/config"
	"github.com/Garsondee/Serpent-Sense/internal/game"
	"github.com/Garsondee/Serpent-Sense/internal/scores"
	"github.com/Garsondee/Serpent-Sense/internal/ui"
)

func main() {
	var (
		configPath = flag.String("config", "", "optional TOML config file")
		seed       = flag.Int64("seed", 0, "RNG seed (0 = time based)")
		cellPx     = flag.Int("cell", ui.DefaultCellPx, "cell size in pixels")
		verbose    = flag.Bool("verbose", false, "show AI decisions in the event panel")
		autopilot  = flag.Bool("autopilot", false, "let the AI steer the player")
		noScores   = flag.Bool("no-scores", false, "do not read or write the score file")
	)
	flag.Parse()

	cfg := game.DefaultConfig()
	if *configPath != "" {
		loaded, err := config.Load(*configPath, cfg)
		if err != nil {
			log.Fatal(err)
		}
		cfg = loaded
	}
	if *autopilot {
		cfg.Autopilot = true
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	var store scores.Store
	if !*noScores {
		store = openScores()
	}

	thoughtLog := ui.NewThoughtLog(*verbose)
	opts := []game.Option{game.WithSeed(*seed), game.WithEventSink(thoughtLog)}
	if store != nil {
		opts = append(opts, game.WithScoreKeeper(store))
	}
	sim, err := game.NewSim(cfg, opts...)
	if err != nil {
		log.Fatal(err)
	}

	g := ui.New(sim, ui.Options{
		CellPx:     *cellPx,
		ThoughtLog: thoughtLog,
		Store:      store,
		Sounds:     ui.NewSounds(),
	})
	w, h := g.Size()
	ebiten.SetWindowTitle("Serpent Sense")
	ebiten.SetWindowSize(w, h)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}

// openScores opens the per-user score file. A broken file is reported and
// the game runs without persistence.
func openScores() scores.Store {
	path, err := scores.DefaultPath()
	if err != nil {
		log.Printf("scores disabled: %v", err)
		return nil
	}
	f, err := scores.Open(path)
	if err != nil {
		log.Printf("scores disabled: %v", err)
		return nil
	}
	return f
}
