package game

import (
	"math"
	"math/rand"
)

// Greedy scorer weights.
const (
	greedyDistanceWeight = -2.0
	greedySafetyWeight   = 3.0
)

// --- Decision modes ---

// DecisionMode records how the brain arrived at a direction.
type DecisionMode int

const (
	ModeHold   DecisionMode = iota // kept the current direction
	ModePath                       // first step of a BFS route
	ModeGreedy                     // fallback scorer
)

func (m DecisionMode) String() string {
	switch m {
	case ModeHold:
		return "hold"
	case ModePath:
		return "path"
	case ModeGreedy:
		return "greedy"
	default:
		return "unknown"
	}
}

// Decision is the outcome of one Brain.Decide call.
type Decision struct {
	Dir       Direction
	Mode      DecisionMode
	Target    Position
	HasTarget bool
	PathLen   int     // moves in the BFS route, 0 when none
	Score     float64 // winning greedy score, 0 otherwise
}

// Brain picks directions for computer-driven snakes.
type Brain struct {
	grid Grid
	rng  *rand.Rand
}

// NewBrain creates a brain for grid. rng supplies the greedy tie-break jitter.
func NewBrain(grid Grid, rng *rand.Rand) *Brain {
	return &Brain{grid: grid, rng: rng}
}

// NearestFood returns the food closest to from by Manhattan distance.
// Ties keep the earliest item in foods.
func NearestFood(from Position, foods []Position) (Position, bool) {
	best := Position{}
	bestDist := math.MaxInt
	for _, f := range foods {
		if d := from.Manhattan(f); d < bestDist {
			best, bestDist = f, d
		}
	}
	return best, bestDist != math.MaxInt
}

// Decide chooses the next direction for s and stores it in s.Pending.
// occ must hold every snake cell, s's own body included.
func (b *Brain) Decide(s *Snake, occ *Occupancy, foods []Position) Decision {
	dec := Decision{Dir: s.Dir, Mode: ModeHold}

	target, ok := NearestFood(s.Head(), foods)
	s.Target, s.HasTarget = target, ok
	if !ok {
		s.Stats.HoldMoves++
		return dec
	}
	dec.Target, dec.HasTarget = target, true

	if path, found := FindPath(b.grid, s.Head(), target, occ); found && len(path) > 0 {
		dec.PathLen = len(path)
		if !path[0].IsReverseOf(s.Dir) {
			dec.Dir = path[0]
			dec.Mode = ModePath
			s.Pending = dec.Dir
			s.Stats.PathMoves++
			return dec
		}
	}

	if d, score, ok := b.greedy(s, occ, target); ok {
		dec.Dir = d
		dec.Mode = ModeGreedy
		dec.Score = score
		s.Pending = d
		s.Stats.GreedyMoves++
		return dec
	}

	s.Pending = s.Dir
	s.Stats.HoldMoves++
	return dec
}

// greedy scores every non-reversing move into a free cell:
// closer to target is better, more free neighbours is better, and a
// uniform [0,1) jitter breaks ties so two equal moves do not oscillate.
func (b *Brain) greedy(s *Snake, occ *Occupancy, target Position) (Direction, float64, bool) {
	head := s.Head()
	bestDir := s.Dir
	bestScore := math.Inf(-1)
	found := false

	for _, d := range searchOrder {
		if d.IsReverseOf(s.Dir) {
			continue
		}
		cell := head.Add(d)
		if occ.IsBlocked(cell) {
			continue
		}
		score := greedyDistanceWeight*float64(cell.Manhattan(target)) +
			greedySafetyWeight*float64(occ.FreeNeighbours(cell)) +
			b.rng.Float64()
		if score > bestScore {
			bestScore = score
			bestDir = d
			found = true
		}
	}
	if !found {
		return s.Dir, 0, false
	}
	return bestDir, bestScore, true
}
