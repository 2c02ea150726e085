package game

import (
	"fmt"
	"image/color"
	"math/rand"
	"time"
)

// Phase is the simulation state machine.
type Phase int

const (
	PhaseRunning Phase = iota
	PhasePaused
	PhaseEnded
)

func (p Phase) String() string {
	switch p {
	case PhaseRunning:
		return "running"
	case PhasePaused:
		return "paused"
	case PhaseEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// ScoreKeeper persists the best score between games.
type ScoreKeeper interface {
	Best() int
	Record(score int) error
}

// Presentation tags for the spawn slots.
var (
	playerColor = color.RGBA{R: 0, G: 255, B: 136, A: 255}
	aiColors    = [MaxAISnakes]color.RGBA{
		{R: 255, G: 107, B: 0, A: 255},
		{R: 155, G: 89, B: 182, A: 255},
	}
)

// StepReport summarises what one Step did.
type StepReport struct {
	Tick       int
	Phase      Phase
	PlayerAte  bool
	AIAte      int
	Relocated  bool
	AICrashes  int
	AIRespawns int
	Ended      bool // this step moved the game into PhaseEnded
	FoodShort  int  // unfilled food slots after this step
}

// Sim owns the complete game state and advances it one tick at a time.
// It is not safe for concurrent use; one goroutine drives it.
type Sim struct {
	cfg      Config
	grid     Grid
	seed     int64
	rng      *rand.Rand
	brain    *Brain
	log      *SimLog
	sink     EventSink
	keeper   ScoreKeeper
	interval time.Duration

	player *Snake
	ai     []*Snake
	food   *FoodField

	score     int
	best      int
	phase     Phase
	tick      int
	foodClock time.Duration
}

// Option configures a Sim at construction.
type Option func(*Sim)

// WithSeed seeds the simulation RNG for reproducible runs.
func WithSeed(seed int64) Option {
	return func(s *Sim) {
		s.seed = seed
		s.rng = rand.New(rand.NewSource(seed)) // #nosec G404 -- game only
	}
}

// WithRand injects a caller-owned RNG.
func WithRand(rng *rand.Rand) Option {
	return func(s *Sim) {
		s.rng = rng
	}
}

// WithScoreKeeper sets where the best score is read from and written to.
func WithScoreKeeper(k ScoreKeeper) Option {
	return func(s *Sim) {
		s.keeper = k
	}
}

// WithSimLog replaces the default non-verbose log.
func WithSimLog(l *SimLog) Option {
	return func(s *Sim) {
		s.log = l
	}
}

// WithEventSink forwards every event to sink in addition to the SimLog.
func WithEventSink(sink EventSink) Option {
	return func(s *Sim) {
		s.sink = sink
	}
}

// NewSim validates cfg, applies opts and starts a fresh game.
func NewSim(cfg Config, opts ...Option) (*Sim, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	s := newSim(cfg, opts...)
	s.Reset()
	return s, nil
}

// newSim builds a Sim without placing any entities.
func newSim(cfg Config, opts ...Option) *Sim {
	seed := time.Now().UnixNano()
	s := &Sim{
		cfg:      cfg,
		grid:     Grid{CellCount: cfg.CellCount},
		seed:     seed,
		rng:      rand.New(rand.NewSource(seed)), // #nosec G404 -- game only
		log:      NewSimLog(false),
		sink:     discardSink{},
		interval: cfg.TickInterval,
	}
	for _, o := range opts {
		o(s)
	}
	if s.keeper != nil {
		s.best = s.keeper.Best()
	}
	s.brain = NewBrain(s.grid, s.rng)
	s.food = NewFoodField(s.grid, cfg.FoodCount, cfg.FoodAttemptsPerItem, cfg.FoodAttemptsPerBatch, s.rng)
	return s
}

// Reset puts the board back to its starting layout: the player centred
// heading right, AI snakes in their corners, a fresh food pool.
// The tick interval set through SetSpeed is kept.
func (s *Sim) Reset() {
	c := s.cfg.CellCount
	s.player = NewSnake(0, "P1", KindPlayer, Position{X: c / 2, Y: c / 2}, DirRight, playerColor)
	s.ai = s.ai[:0]
	for i := 0; i < s.cfg.AISnakes; i++ {
		head := aiSpawn(c, i)
		s.ai = append(s.ai, NewSnake(i+1, fmt.Sprintf("AI-%d", i+1), KindAI, head, DirRight, aiColors[i]))
	}
	s.score = 0
	s.tick = 0
	s.foodClock = 0
	s.phase = PhaseRunning
	s.log.Reset()
	short := s.food.PlaceInitial(s.occupancy())
	s.emit(0, nil, "state", "reset", fmt.Sprintf("%dx%d grid, %d ai", c, c, len(s.ai)), 0)
	if short > 0 {
		s.emit(0, nil, "food", "short", fmt.Sprintf("placed %d of %d", s.food.Len(), s.food.Target()), float64(short))
	}
}

// aiSpawn returns the head cell of AI slot i: one near the top-left corner,
// one near the bottom-right, both heading right with room for the tail.
func aiSpawn(cellCount, i int) Position {
	inset := max(initialLength-1, cellCount/8)
	if i == 0 {
		return Position{X: inset, Y: inset}
	}
	far := cellCount - 1 - max(0, cellCount/8-1)
	return Position{X: far, Y: far}
}

// --- Accessors ---

// Config returns the config the game was built with.
func (s *Sim) Config() Config { return s.cfg }

// Grid returns the board.
func (s *Sim) Grid() Grid { return s.grid }

// Seed returns the seed of the built-in RNG. It means nothing after WithRand.
func (s *Sim) Seed() int64 { return s.seed }

// Log returns the event log.
func (s *Sim) Log() *SimLog { return s.log }

// Player returns the player snake.
func (s *Sim) Player() *Snake { return s.player }

// AISnakes returns the AI snakes in spawn order, crashed ones included.
func (s *Sim) AISnakes() []*Snake { return s.ai }

// Foods returns a copy of the food positions.
func (s *Sim) Foods() []Position { return s.food.Positions() }

// Score returns the current game score.
func (s *Sim) Score() int { return s.score }

// BestScore returns the best score seen, persisted or this session.
func (s *Sim) BestScore() int { return s.best }

// Phase returns the state machine phase.
func (s *Sim) Phase() Phase { return s.phase }

// Tick returns the number of steps played since Reset.
func (s *Sim) Tick() int { return s.tick }

// Interval returns the current tick interval.
func (s *Sim) Interval() time.Duration { return s.interval }

// Running reports whether the game has not ended. A paused game is running.
func (s *Sim) Running() bool { return s.phase != PhaseEnded }

// Paused reports whether ticks are currently suspended.
func (s *Sim) Paused() bool { return s.phase == PhasePaused }

// Autopilot reports whether the brain is steering the player.
func (s *Sim) Autopilot() bool { return s.cfg.Autopilot }

// Snakes returns the player followed by the AI snakes.
func (s *Sim) Snakes() []*Snake {
	out := make([]*Snake, 0, 1+len(s.ai))
	out = append(out, s.player)
	return append(out, s.ai...)
}

// --- Input ---

// SetDirection queues d for the player. It is ignored unless the game is
// running and unpaused and d turns the snake onto the other axis; a
// reversal or a repeat of the current axis is dropped silently.
func (s *Sim) SetDirection(d Direction) bool {
	if s.phase != PhaseRunning {
		return false
	}
	if !d.Perpendicular(s.player.Dir) {
		return false
	}
	s.player.Pending = d
	s.emitVerbose(s.player, "input", "direction", d.String(), 0)
	return true
}

// CommitDirection moves the player's pending direction into the active one
// between ticks, so a second key press inside the same tick is judged
// against the first.
func (s *Sim) CommitDirection() {
	if s.phase != PhaseRunning {
		return
	}
	s.player.commit()
}

// TogglePause flips between running and paused. An ended game stays ended.
func (s *Sim) TogglePause() Phase {
	switch s.phase {
	case PhaseRunning:
		s.phase = PhasePaused
		s.emit(s.tick, nil, "state", "paused", "", 0)
	case PhasePaused:
		s.phase = PhaseRunning
		s.emit(s.tick, nil, "state", "resumed", "", 0)
	}
	return s.phase
}

// SetSpeed changes the tick interval, clamped to the accepted range.
// Returns the interval actually applied.
func (s *Sim) SetSpeed(d time.Duration) time.Duration {
	s.interval = ClampInterval(d)
	return s.interval
}

// SetAutopilot hands player steering to the brain or back to input.
func (s *Sim) SetAutopilot(on bool) {
	s.cfg.Autopilot = on
	s.emit(s.tick, s.player, "input", "autopilot", fmt.Sprintf("%v", on), 0)
}

// --- Step ---

// Step advances the game by one tick. Paused and ended games are left
// untouched.
func (s *Sim) Step() StepReport {
	if s.phase != PhaseRunning {
		return StepReport{Tick: s.tick, Phase: s.phase, FoodShort: s.food.Target() - s.food.Len()}
	}
	s.tick++
	rep := StepReport{Tick: s.tick}

	// 1. PLAYER
	if s.cfg.Autopilot {
		s.decide(s.player)
	}
	s.player.commit()
	rep.PlayerAte = s.move(s.player)

	// 2. AI, in spawn order, each against the board as the previous left it.
	for _, ai := range s.ai {
		if !ai.Alive {
			if s.tryRespawn(ai) {
				rep.AIRespawns++
			}
			continue
		}
		s.decide(ai)
		ai.commit()
		if s.move(ai) {
			rep.AIAte++
		}
		if !s.grid.InBounds(ai.Head()) {
			s.emit(s.tick, ai, "ai", "crash", fmt.Sprintf("hit wall at (%d,%d)", ai.Head().X, ai.Head().Y), float64(ai.Len()))
			ai.crash(s.cfg.AIRespawnTicks)
			rep.AICrashes++
		}
	}

	// 3. FOOD DRIFT
	if s.cfg.FoodMoveInterval > 0 {
		s.foodClock += s.interval
		if s.foodClock >= s.cfg.FoodMoveInterval {
			moved := s.food.Relocate(s.occupancy())
			s.foodClock = 0
			rep.Relocated = true
			s.emitVerbose(nil, "food", "relocate", fmt.Sprintf("%d of %d moved", moved, s.food.Len()), float64(moved))
		}
	}

	// 4. PLAYER COLLISION
	if reason := s.playerCollision(); reason != "" {
		s.phase = PhaseEnded
		rep.Ended = true
		s.emit(s.tick, s.player, "state", "ended", reason, float64(s.score))
	}

	rep.Phase = s.phase
	rep.FoodShort = s.food.Target() - s.food.Len()
	return rep
}

// decide runs the brain for sn against the current board.
func (s *Sim) decide(sn *Snake) {
	dec := s.brain.Decide(sn, s.occupancy(), s.food.items)
	s.emitVerbose(sn, "ai", "decision",
		fmt.Sprintf("%s %s path=%d", dec.Mode, dec.Dir, dec.PathLen), float64(dec.PathLen))
	if dec.Mode != ModePath && dec.HasTarget {
		s.emitVerbose(sn, "ai", "fallback",
			fmt.Sprintf("no route to (%d,%d), %s %s", dec.Target.X, dec.Target.Y, dec.Mode, dec.Dir), 0)
	}
}

// move advances sn one cell, eating any food under the new head.
// Returns true if food was eaten.
func (s *Sim) move(sn *Snake) bool {
	head := sn.advance()
	if !s.food.Remove(head) {
		sn.dropTail()
		return false
	}

	sn.Stats.FoodEaten++
	s.emit(s.tick, sn, "food", "eaten", fmt.Sprintf("(%d,%d) len=%d", head.X, head.Y, sn.Len()), float64(sn.Len()))
	if sn.Kind == KindPlayer {
		s.addScore(s.cfg.FoodReward)
	}
	if short := s.food.Replenish(s.occupancy()); short > 0 {
		s.emit(s.tick, sn, "food", "short", fmt.Sprintf("placed %d of %d", s.food.Len(), s.food.Target()), float64(short))
	}
	return true
}

func (s *Sim) addScore(n int) {
	s.score += n
	if s.score <= s.best {
		return
	}
	s.best = s.score
	s.emit(s.tick, s.player, "score", "best", fmt.Sprintf("%d", s.best), float64(s.best))
	if s.keeper == nil {
		return
	}
	if err := s.keeper.Record(s.best); err != nil {
		s.emit(s.tick, s.player, "score", "persist_error", err.Error(), float64(s.best))
	}
}

// playerCollision returns why the player died this tick, or "".
func (s *Sim) playerCollision() string {
	head := s.player.Head()
	if !s.grid.InBounds(head) {
		return fmt.Sprintf("wall at (%d,%d)", head.X, head.Y)
	}
	if s.cfg.SelfCollision && s.player.HitsSelf() {
		return fmt.Sprintf("own body at (%d,%d)", head.X, head.Y)
	}
	return ""
}

// tryRespawn counts down a crashed AI snake and puts it back on its spawn
// cells once they are clear of snakes and food.
func (s *Sim) tryRespawn(ai *Snake) bool {
	if s.cfg.AIRespawnTicks == 0 {
		return false
	}
	if ai.respawnIn > 0 {
		ai.respawnIn--
		if ai.respawnIn > 0 {
			return false
		}
	}
	occ := s.occupancy()
	for _, p := range spawnBody(ai.spawnHead, ai.spawnDir) {
		if occ.IsBlocked(p) || s.food.IndexAt(p) >= 0 {
			return false
		}
	}
	ai.respawn()
	s.emit(s.tick, ai, "ai", "respawn", fmt.Sprintf("(%d,%d)", ai.Head().X, ai.Head().Y), 0)
	return true
}

// occupancy builds the obstacle set from every live snake.
func (s *Sim) occupancy() *Occupancy {
	return NewOccupancy(s.grid, s.Snakes()...)
}

// --- Events ---

func (s *Sim) emit(tick int, sn *Snake, category, key, value string, num float64) {
	label, kind := snakeTags(sn)
	s.log.Add(tick, label, kind, category, key, value, num)
	s.sink.Add(tick, label, kind, category, key, value, num)
}

func (s *Sim) emitVerbose(sn *Snake, category, key, value string, num float64) {
	label, kind := snakeTags(sn)
	s.log.AddVerbose(s.tick, label, kind, category, key, value, num)
	s.sink.AddVerbose(s.tick, label, kind, category, key, value, num)
}

func snakeTags(sn *Snake) (string, string) {
	if sn == nil {
		return "--", "--"
	}
	return sn.Label, sn.Kind.String()
}
