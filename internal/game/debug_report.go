package game

import (
	"fmt"
	"strings"
)

// DebugReport builds a plain-text dump of the game for bug reports:
// seed, config, counters and the log lines of the last lastTicks ticks.
func (s *Sim) DebugReport(lastTicks int) string {
	if lastTicks <= 0 {
		lastTicks = 120
	}

	toTick := s.tick
	fromTick := toTick - lastTicks + 1
	if fromTick < 0 {
		fromTick = 0
	}

	var b strings.Builder
	fmt.Fprintf(&b, "--- SerpentSense debug report ---\n")
	fmt.Fprintf(&b, "seed=%d tick_range=[%d..%d] ticks=%d\n", s.seed, fromTick, toTick, toTick-fromTick+1)
	c := s.cfg
	fmt.Fprintf(&b, "config: cells=%d food=%d ai=%d interval=%s food_move=%s self_collision=%t respawn=%d autopilot=%t\n\n",
		c.CellCount, c.FoodCount, c.AISnakes, s.interval, c.FoodMoveInterval, c.SelfCollision, c.AIRespawnTicks, c.Autopilot)

	b.WriteString(FormatSummary(s.Summary()))
	b.WriteByte('\n')

	for _, sn := range s.Snakes() {
		fmt.Fprintf(&b, "== %s (%s) dir=%s pending=%s ==\n", sn.Label, sn.Kind, sn.Dir, sn.Pending)
		if !sn.Alive {
			b.WriteString("(off the board)\n")
			continue
		}
		fmt.Fprintf(&b, "body: %s\n", formatCells(sn.Body))
		if sn.HasTarget {
			fmt.Fprintf(&b, "target: (%d,%d)\n", sn.Target.X, sn.Target.Y)
		}
	}
	fmt.Fprintf(&b, "food: %s\n\n", formatCells(s.food.items))

	b.WriteString("events:\n")
	lines := s.log.FormatRange(fromTick, toTick)
	if lines == "" {
		b.WriteString("(none recorded)\n")
	}
	b.WriteString(lines)
	return b.String()
}

func formatCells(cells []Position) string {
	parts := make([]string, len(cells))
	for i, p := range cells {
		parts[i] = fmt.Sprintf("(%d,%d)", p.X, p.Y)
	}
	return strings.Join(parts, " ")
}
