package game

import (
	"fmt"
	"time"
)

// TestSim is a headless harness around Sim used by tests and the headless
// report. It allows hand-placed snakes and food and a manual clock.
type TestSim struct {
	*Sim
	SimLog *SimLog
	Sched  *Scheduler

	base     Config
	baseSeed int64
	clock    time.Duration

	// layout overrides, applied after the default Reset
	playerBody []Position
	playerDir  Direction
	aiBodies   [][]Position
	aiDirs     []Direction
	foods      []Position
	foodSet    bool
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptInfra simOptionKind = iota // grid, seed, config flags, verbose, applied first
	simOptSnake                      // place snakes, applied after the board is built
	simOptFood                       // place food, applied last
)

// SimOption is a builder function applied to a TestSim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*TestSim)
}

// WithGridSize sets the side length of the grid.
func WithGridSize(cells int) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.base.CellCount = cells
	}}
}

// WithTestSeed sets the RNG seed for deterministic runs.
func WithTestSeed(seed int64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.baseSeed = seed
	}}
}

// WithVerbose enables per-tick verbose logging.
func WithVerbose(v bool) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.SimLog = NewSimLog(v)
	}}
}

// WithConfig replaces the whole config; later infra options still apply.
func WithConfig(cfg Config) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.base = cfg
	}}
}

// WithTweak edits the config in place.
func WithTweak(fn func(*Config)) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		fn(&ts.base)
	}}
}

// WithPlayer places the player with the given body, head first.
func WithPlayer(dir Direction, body ...Position) SimOption {
	return SimOption{simOptSnake, func(ts *TestSim) {
		ts.playerBody = body
		ts.playerDir = dir
	}}
}

// WithAISnake adds an AI snake with the given body, head first. Adding any
// AI snake this way replaces the default spawn slots. Reset brings the
// default slots back.
func WithAISnake(dir Direction, body ...Position) SimOption {
	return SimOption{simOptSnake, func(ts *TestSim) {
		ts.aiBodies = append(ts.aiBodies, body)
		ts.aiDirs = append(ts.aiDirs, dir)
	}}
}

// WithFood replaces the initial food pool.
func WithFood(ps ...Position) SimOption {
	return SimOption{simOptFood, func(ts *TestSim) {
		ts.foods = ps
		ts.foodSet = true
	}}
}

// NewTestSim constructs a TestSim from the given options in ordered passes:
//  1. Infrastructure (grid, seed, config, verbose)
//  2. Default board via Reset
//  3. Snake overrides
//  4. Food overrides
//
// Unlike NewSim it does not validate the config, so tests may use tiny grids.
func NewTestSim(opts ...SimOption) *TestSim {
	cfg := DefaultConfig()
	cfg.AISnakes = 0
	ts := &TestSim{
		base:     cfg,
		baseSeed: 1,
		SimLog:   NewSimLog(false),
	}
	for _, o := range opts {
		if o.kind == simOptInfra {
			o.fn(ts)
		}
	}
	ts.Sim = newSim(ts.base, WithSeed(ts.baseSeed), WithSimLog(ts.SimLog))
	ts.Sim.Reset()

	for _, o := range opts {
		if o.kind == simOptSnake {
			o.fn(ts)
		}
	}
	ts.applySnakes()

	for _, o := range opts {
		if o.kind == simOptFood {
			o.fn(ts)
		}
	}
	if ts.foodSet {
		ts.food.Set(ts.foods)
	} else if ts.playerBody != nil || len(ts.aiBodies) > 0 {
		// Food from Reset was placed around the default spawns.
		ts.food.PlaceInitial(ts.occupancy())
	}

	ts.Sched = NewScheduler(ts.Sim)
	return ts
}

func (ts *TestSim) applySnakes() {
	if ts.playerBody != nil {
		placeSnake(ts.player, ts.playerDir, ts.playerBody)
	}
	if len(ts.aiBodies) == 0 {
		return
	}
	ts.ai = ts.ai[:0]
	for i, body := range ts.aiBodies {
		ai := NewSnake(i+1, fmt.Sprintf("AI-%d", i+1), KindAI, body[0], ts.aiDirs[i], aiColors[i%MaxAISnakes])
		placeSnake(ai, ts.aiDirs[i], body)
		ts.ai = append(ts.ai, ai)
	}
}

func placeSnake(s *Snake, dir Direction, body []Position) {
	s.Body = append([]Position(nil), body...)
	s.Dir = dir
	s.Pending = dir
	s.spawnHead = body[0]
	s.spawnDir = dir
	s.Stats.MaxLength = len(body)
}

// RunTicks advances the simulation n ticks directly, bypassing the clock.
func (ts *TestSim) RunTicks(n int) []StepReport {
	reps := make([]StepReport, 0, n)
	for i := 0; i < n; i++ {
		reps = append(reps, ts.Step())
	}
	return reps
}

// RunUntil steps up to maxTicks, stopping early if predicate returns true.
// Returns the tick at which the predicate was satisfied, or -1.
func (ts *TestSim) RunUntil(predicate func(*TestSim) bool, maxTicks int) int {
	for i := 0; i < maxTicks; i++ {
		ts.Step()
		if predicate(ts) {
			return ts.Tick()
		}
	}
	return -1
}

// AdvanceClock feeds d of manual time through the scheduler.
func (ts *TestSim) AdvanceClock(d time.Duration) int {
	ts.clock += d
	return ts.Sched.Advance(d)
}

// Clock returns the manual time fed so far.
func (ts *TestSim) Clock() time.Duration {
	return ts.clock
}
