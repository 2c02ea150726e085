// Package config reads game settings from a TOML file.
//
// Every key is optional; missing keys keep the value of the base config.
//
//	cell_count = 30
//	ai_snakes = 1
//	tick_interval = "120ms"
//	food_move_interval = "2s"
//	self_collision = true
package config

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/Garsondee/Serpent-Sense/internal/game"
)

// File mirrors game.Config with optional fields.
type File struct {
	CellCount            *int           `toml:"cell_count"`
	FoodCount            *int           `toml:"food_count"`
	AISnakes             *int           `toml:"ai_snakes"`
	TickInterval         *time.Duration `toml:"tick_interval"`
	FoodMoveInterval     *time.Duration `toml:"food_move_interval"`
	FoodReward           *int           `toml:"food_reward"`
	SelfCollision        *bool          `toml:"self_collision"`
	FoodAttemptsPerItem  *int           `toml:"food_attempts_per_item"`
	FoodAttemptsPerBatch *int           `toml:"food_attempts_per_batch"`
	AIRespawnTicks       *int           `toml:"ai_respawn_ticks"`
	Autopilot            *bool          `toml:"autopilot"`
}

// Apply copies every set field onto cfg.
func (f File) Apply(cfg game.Config) game.Config {
	setInt(&cfg.CellCount, f.CellCount)
	setInt(&cfg.FoodCount, f.FoodCount)
	setInt(&cfg.AISnakes, f.AISnakes)
	setInt(&cfg.FoodReward, f.FoodReward)
	setInt(&cfg.FoodAttemptsPerItem, f.FoodAttemptsPerItem)
	setInt(&cfg.FoodAttemptsPerBatch, f.FoodAttemptsPerBatch)
	setInt(&cfg.AIRespawnTicks, f.AIRespawnTicks)
	if f.TickInterval != nil {
		cfg.TickInterval = *f.TickInterval
	}
	if f.FoodMoveInterval != nil {
		cfg.FoodMoveInterval = *f.FoodMoveInterval
	}
	if f.SelfCollision != nil {
		cfg.SelfCollision = *f.SelfCollision
	}
	if f.Autopilot != nil {
		cfg.Autopilot = *f.Autopilot
	}
	return cfg
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}

// Load reads path over base and validates the result. Unknown keys are
// an error so typos do not go unnoticed.
func Load(path string, base game.Config) (game.Config, error) {
	var f File
	md, err := toml.DecodeFile(path, &f)
	if err != nil {
		return base, fmt.Errorf("decode %s: %w", path, err)
	}
	return finish(md, f, base, path)
}

// Parse is Load for an in-memory document.
func Parse(doc string, base game.Config) (game.Config, error) {
	var f File
	md, err := toml.Decode(doc, &f)
	if err != nil {
		return base, fmt.Errorf("decode config: %w", err)
	}
	return finish(md, f, base, "config")
}

func finish(md toml.MetaData, f File, base game.Config, name string) (game.Config, error) {
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return base, fmt.Errorf("%s: unknown keys: %s", name, strings.Join(keys, ", "))
	}
	cfg := f.Apply(base)
	if err := cfg.Validate(); err != nil {
		return base, fmt.Errorf("%s: %w", name, err)
	}
	return cfg, nil
}

// Write encodes cfg as a complete config file.
func Write(w io.Writer, cfg game.Config) error {
	f := File{
		CellCount:            &cfg.CellCount,
		FoodCount:            &cfg.FoodCount,
		AISnakes:             &cfg.AISnakes,
		TickInterval:         &cfg.TickInterval,
		FoodMoveInterval:     &cfg.FoodMoveInterval,
		FoodReward:           &cfg.FoodReward,
		SelfCollision:        &cfg.SelfCollision,
		FoodAttemptsPerItem:  &cfg.FoodAttemptsPerItem,
		FoodAttemptsPerBatch: &cfg.FoodAttemptsPerBatch,
		AIRespawnTicks:       &cfg.AIRespawnTicks,
		Autopilot:            &cfg.Autopilot,
	}
	return toml.NewEncoder(w).Encode(f)
}
