package game

import (
	"errors"
	"fmt"
	"time"
)

// Tick interval limits accepted by SetSpeed.
const (
	MinTickInterval = 30 * time.Millisecond
	MaxTickInterval = 500 * time.Millisecond
)

// MaxAISnakes is the number of AI spawn slots.
const MaxAISnakes = 2

// Config holds the tunables of one game.
type Config struct {
	CellCount        int           // grid side length in cells
	FoodCount        int           // target food pool size
	AISnakes         int           // 0..MaxAISnakes
	TickInterval     time.Duration // time between simulation steps
	FoodMoveInterval time.Duration // simulated time between food drifts; 0 = never
	FoodReward       int           // score per food eaten by the player

	// SelfCollision ends the game when the player's head runs into its own
	// body. Off by default: only the walls are lethal.
	SelfCollision bool

	FoodAttemptsPerItem  int
	FoodAttemptsPerBatch int

	// AIRespawnTicks is how long a crashed AI snake stays off the board.
	// 0 leaves it off for the rest of the game.
	AIRespawnTicks int

	// Autopilot lets the AI brain steer the player.
	Autopilot bool
}

// DefaultConfig mirrors the classic 400px canvas with 10px cells.
func DefaultConfig() Config {
	return Config{
		CellCount:            40,
		FoodCount:            10,
		AISnakes:             2,
		TickInterval:         150 * time.Millisecond,
		FoodMoveInterval:     3 * time.Second,
		FoodReward:           10,
		FoodAttemptsPerItem:  defaultFoodAttemptsPerItem,
		FoodAttemptsPerBatch: defaultFoodAttemptsPerBatch,
	}
}

// Validate reports every setting that cannot produce a playable board.
func (c Config) Validate() error {
	var errs []error
	if c.CellCount < 8 || c.CellCount > 200 {
		errs = append(errs, fmt.Errorf("cell count %d out of range [8,200]", c.CellCount))
	}
	if c.FoodCount < 1 || c.FoodCount > c.CellCount*c.CellCount/2 {
		errs = append(errs, fmt.Errorf("food count %d out of range [1,%d]", c.FoodCount, c.CellCount*c.CellCount/2))
	}
	if c.AISnakes < 0 || c.AISnakes > MaxAISnakes {
		errs = append(errs, fmt.Errorf("ai snakes %d out of range [0,%d]", c.AISnakes, MaxAISnakes))
	}
	if c.TickInterval < MinTickInterval || c.TickInterval > MaxTickInterval {
		errs = append(errs, fmt.Errorf("tick interval %s out of range [%s,%s]", c.TickInterval, MinTickInterval, MaxTickInterval))
	}
	if c.FoodMoveInterval < 0 {
		errs = append(errs, fmt.Errorf("food move interval %s is negative", c.FoodMoveInterval))
	}
	if c.FoodReward < 0 {
		errs = append(errs, fmt.Errorf("food reward %d is negative", c.FoodReward))
	}
	if c.AIRespawnTicks < 0 {
		errs = append(errs, fmt.Errorf("ai respawn ticks %d is negative", c.AIRespawnTicks))
	}
	return errors.Join(errs...)
}

// ClampInterval limits d to the accepted tick interval range.
func ClampInterval(d time.Duration) time.Duration {
	return min(max(d, MinTickInterval), MaxTickInterval)
}
