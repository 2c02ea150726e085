package main

import (
	"flag"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/Garsondee/Serpent-Sense/internal/config"
	"github.com/Garsondee/Serpent-Sense/internal/game"
)

type runStats struct {
	runIndex int
	id       string
	seed     int64

	ticks     int // ticks played before the game ended or the cap
	ended     bool
	endReason string

	score     int
	length    int
	foodEaten int
	fallback  float64 // player fallback rate under autopilot

	aiEaten    int
	aiCrashes  int
	aiRespawns int
	foodShort  int
}

func main() {
	var runs int
	var ticks int
	var seedBase int64
	var seedStep int64
	var cells int
	var food int
	var ai int
	var respawn int
	var selfCollision bool
	var configPath string

	flag.IntVar(&runs, "runs", 5, "number of headless games")
	flag.IntVar(&ticks, "ticks", 2000, "tick cap per game")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.IntVar(&cells, "cells", 40, "grid side length in cells")
	flag.IntVar(&food, "food", 10, "food pool size")
	flag.IntVar(&ai, "ai", 2, "number of AI snakes (0-2)")
	flag.IntVar(&respawn, "respawn", 0, "ticks before a crashed AI snake respawns (0 = never)")
	flag.BoolVar(&selfCollision, "self-collision", false, "end the game when the player hits its own body")
	flag.StringVar(&configPath, "config", "", "optional TOML config file")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if ticks <= 0 {
		fmt.Println("error: -ticks must be > 0")
		return
	}

	cfg := game.DefaultConfig()
	if configPath != "" {
		loaded, err := config.Load(configPath, cfg)
		if err != nil {
			fmt.Printf("error: %v\n", err)
			return
		}
		cfg = loaded
	}
	// Flags given on the command line win over the file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "cells":
			cfg.CellCount = cells
		case "food":
			cfg.FoodCount = food
		case "ai":
			cfg.AISnakes = ai
		case "respawn":
			cfg.AIRespawnTicks = respawn
		case "self-collision":
			cfg.SelfCollision = selfCollision
		}
	})
	cfg.Autopilot = true
	if err := cfg.Validate(); err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}

	fmt.Printf("=== Headless Snake Report ===\n")
	fmt.Printf("runs=%d ticks=%d seed_base=%d seed_step=%d cells=%d food=%d ai=%d respawn=%d self_collision=%t\n\n",
		runs, ticks, seedBase, seedStep, cfg.CellCount, cfg.FoodCount, cfg.AISnakes, cfg.AIRespawnTicks, cfg.SelfCollision)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		stats := runGame(i+1, seed, ticks, cfg)
		all = append(all, stats)
		printRun(stats)
	}

	printAggregate(all)
}

// runGame plays one autopilot game until it ends or hits the tick cap.
func runGame(runIndex int, seed int64, maxTicks int, cfg game.Config) runStats {
	ts := game.NewTestSim(
		game.WithConfig(cfg),
		game.WithTestSeed(seed),
	)
	played := ts.RunUntil(func(ts *game.TestSim) bool {
		return ts.Phase() == game.PhaseEnded
	}, maxTicks)

	rs := runStats{
		runIndex: runIndex,
		id:       uuid.New().String(),
		seed:     seed,
		ticks:    ts.Tick(),
		ended:    played >= 0,
		score:    ts.Score(),
	}
	if e, ok := ts.SimLog.LastOf("state", "ended"); ok {
		rs.endReason = e.Value
	}

	sum := ts.Summary()
	p := sum.Player()
	rs.length = p.Length
	rs.foodEaten = p.Stats.FoodEaten
	rs.fallback = p.FallbackRate()
	for _, r := range sum.Snakes {
		if r.Kind != game.KindAI {
			continue
		}
		rs.aiEaten += r.Stats.FoodEaten
		rs.aiCrashes += r.Stats.Crashes
	}
	rs.aiRespawns = ts.SimLog.CountCategory("ai", "respawn")
	rs.foodShort = ts.SimLog.CountCategory("food", "short")
	return rs
}

func printRun(rs runStats) {
	fmt.Printf("--- Run %d (seed=%d id=%s) ---\n", rs.runIndex, rs.seed, rs.id)
	outcome := "survived"
	if rs.ended {
		outcome = "ended: " + rs.endReason
	}
	fmt.Printf("outcome: %s ticks=%d\n", outcome, rs.ticks)
	fmt.Printf("player: score=%d length=%d food_eaten=%d fallback=%.1f%%\n",
		rs.score, rs.length, rs.foodEaten, rs.fallback*100)
	fmt.Printf("ai: food_eaten=%d crashes=%d respawns=%d\n", rs.aiEaten, rs.aiCrashes, rs.aiRespawns)
	if rs.foodShort > 0 {
		fmt.Printf("food_short_events=%d\n", rs.foodShort)
	}
	fmt.Println()
}

// aggregate is the cross-run summary.
type aggregate struct {
	runs      int
	survived  int
	avgTicks  float64
	avgScore  float64
	bestScore int
	bestRun   string
	worst     int
	medScore  float64
	avgFall   float64
	aiCrashes int
	reasons   map[string]int
}

func summarise(all []runStats) aggregate {
	ag := aggregate{runs: len(all), reasons: map[string]int{}}
	if len(all) == 0 {
		return ag
	}
	totalTicks := 0
	totalScore := 0
	totalFall := 0.0
	scores := make([]int, 0, len(all))
	ag.worst = all[0].score
	for _, rs := range all {
		totalTicks += rs.ticks
		totalScore += rs.score
		totalFall += rs.fallback
		ag.aiCrashes += rs.aiCrashes
		scores = append(scores, rs.score)
		if !rs.ended {
			ag.survived++
		} else {
			ag.reasons[reasonKind(rs.endReason)]++
		}
		if rs.score > ag.bestScore || ag.bestRun == "" {
			ag.bestScore = rs.score
			ag.bestRun = rs.id
		}
		if rs.score < ag.worst {
			ag.worst = rs.score
		}
	}
	ag.avgTicks = avg(totalTicks, len(all))
	ag.avgScore = avg(totalScore, len(all))
	ag.avgFall = totalFall / float64(len(all))
	ag.medScore = median(scores)
	return ag
}

func printAggregate(all []runStats) {
	ag := summarise(all)
	fmt.Println("=== Aggregate ===")
	fmt.Printf("runs=%d survived_cap=%d\n", ag.runs, ag.survived)
	fmt.Printf("score: avg=%.1f median=%.1f best=%d (%s) worst=%d\n",
		ag.avgScore, ag.medScore, ag.bestScore, ag.bestRun, ag.worst)
	fmt.Printf("avg_ticks=%.1f avg_fallback=%.1f%% ai_crashes=%d\n", ag.avgTicks, ag.avgFall*100, ag.aiCrashes)
	fmt.Printf("end_reasons: %s\n", joinCounts(ag.reasons))
}

// reasonKind reduces an end message such as "wall at (40,12)" to "wall".
func reasonKind(reason string) string {
	if reason == "" {
		return "unknown"
	}
	kind, _, _ := strings.Cut(reason, " at ")
	return kind
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func median(vals []int) float64 {
	if len(vals) == 0 {
		return 0
	}
	s := append([]int(nil), vals...)
	sort.Ints(s)
	mid := len(s) / 2
	if len(s)%2 == 1 {
		return float64(s[mid])
	}
	return float64(s[mid-1]+s[mid]) / 2
}

func joinCounts(m map[string]int) string {
	if len(m) == 0 {
		return "none"
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%d", k, m[k]))
	}
	return strings.Join(parts, " ")
}
