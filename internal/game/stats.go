package game

import (
	"fmt"
	"strings"
)

// --- Per-snake report ---

// SnakeReport is a snapshot of one snake's counters.
type SnakeReport struct {
	Label  string
	Kind   Kind
	Alive  bool
	Length int
	Stats  SnakeStats
}

// Decisions returns the number of brain decisions the snake received.
func (r SnakeReport) Decisions() int {
	return r.Stats.PathMoves + r.Stats.GreedyMoves + r.Stats.HoldMoves
}

// FallbackRate is the share of decisions that did not follow a BFS route.
func (r SnakeReport) FallbackRate() float64 {
	n := r.Decisions()
	if n == 0 {
		return 0
	}
	return float64(r.Stats.GreedyMoves+r.Stats.HoldMoves) / float64(n)
}

// SimSummary is a snapshot of the whole game.
type SimSummary struct {
	Seed      int64
	Tick      int
	Phase     Phase
	Score     int
	Best      int
	FoodOnMap int
	Snakes    []SnakeReport
}

// Summary captures the current game state for reports.
func (s *Sim) Summary() SimSummary {
	sum := SimSummary{
		Seed:      s.seed,
		Tick:      s.tick,
		Phase:     s.phase,
		Score:     s.score,
		Best:      s.best,
		FoodOnMap: s.food.Len(),
	}
	for _, sn := range s.Snakes() {
		sum.Snakes = append(sum.Snakes, SnakeReport{
			Label:  sn.Label,
			Kind:   sn.Kind,
			Alive:  sn.Alive,
			Length: sn.Len(),
			Stats:  sn.Stats,
		})
	}
	return sum
}

// Player returns the player's report.
func (ss SimSummary) Player() SnakeReport {
	for _, r := range ss.Snakes {
		if r.Kind == KindPlayer {
			return r
		}
	}
	return SnakeReport{}
}

// FormatSummary renders a fixed-width table of snake counters.
func FormatSummary(ss SimSummary) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Summary at T=%03d (%s) ---\n", ss.Tick, ss.Phase)
	fmt.Fprintf(&sb, "score=%d best=%d food_on_map=%d\n", ss.Score, ss.Best, ss.FoodOnMap)
	fmt.Fprintf(&sb, "%-5s %-6s %-5s %4s %4s %4s %5s %5s %5s %5s %6s\n",
		"snake", "kind", "alive", "len", "max", "ate", "path", "greed", "hold", "crash", "fallbk")
	for _, r := range ss.Snakes {
		fmt.Fprintf(&sb, "%-5s %-6s %-5t %4d %4d %4d %5d %5d %5d %5d %5.1f%%\n",
			r.Label, r.Kind, r.Alive, r.Length, r.Stats.MaxLength, r.Stats.FoodEaten,
			r.Stats.PathMoves, r.Stats.GreedyMoves, r.Stats.HoldMoves, r.Stats.Crashes,
			r.FallbackRate()*100)
	}
	return sb.String()
}
