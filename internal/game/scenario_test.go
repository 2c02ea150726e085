package game

import (
	"errors"
	"testing"
	"time"
)

// dumpLog prints the full SimLog to t.Log so it appears in `go test -v` output.
func dumpLog(t *testing.T, ts *TestSim) {
	t.Helper()
	entries := ts.SimLog.Entries()
	if len(entries) == 0 {
		t.Log("(no log entries)")
		return
	}
	for _, e := range entries {
		t.Log(e.String())
	}
}

// dumpSummary prints the scenario summary block.
func dumpSummary(t *testing.T, ts *TestSim) {
	t.Helper()
	t.Log(FormatSummary(ts.Summary()))
}

// --- Scenario: Player Eats ---

func TestScenario_PlayerEats(t *testing.T) {
	t.Log("=== TestScenario_PlayerEats ===")
	t.Log("--- Setup: 10x10, player at (5,5) heading right, one food at (6,5) ---")

	ts := NewTestSim(
		WithGridSize(10),
		WithTweak(func(c *Config) { c.FoodCount = 1 }),
		WithPlayer(DirRight, Position{5, 5}, Position{4, 5}, Position{3, 5}),
		WithFood(Position{6, 5}),
	)

	rep := ts.Step()
	dumpLog(t, ts)

	if !rep.PlayerAte {
		t.Fatal("expected the player to eat on tick 1")
	}
	p := ts.Player()
	if p.Head() != (Position{6, 5}) {
		t.Fatalf("expected head (6,5), got %v", p.Head())
	}
	if p.Len() != 4 {
		t.Fatalf("expected length 4, got %d", p.Len())
	}
	if ts.Score() != 10 {
		t.Fatalf("expected score 10, got %d", ts.Score())
	}
	foods := ts.Foods()
	if len(foods) != 1 {
		t.Fatalf("expected one replacement food, got %d", len(foods))
	}
	if p.Occupies(foods[0]) {
		t.Fatalf("replacement food %v placed on the player", foods[0])
	}
	if foods[0] == (Position{6, 5}) {
		t.Fatal("replacement food reused the eaten cell")
	}
	if ts.SimLog.CountCategory("food", "eaten") != 1 {
		t.Fatal("expected one food/eaten entry")
	}
}

// --- Scenario: Straight Run Into The Wall ---

func TestScenario_StraightRunIntoWall(t *testing.T) {
	t.Log("=== TestScenario_StraightRunIntoWall ===")

	ts := NewTestSim(
		WithGridSize(10),
		WithTweak(func(c *Config) {
			c.FoodCount = 1
			c.FoodMoveInterval = 0
		}),
		WithPlayer(DirRight, Position{5, 5}, Position{4, 5}, Position{3, 5}),
		WithFood(Position{0, 9}),
	)

	for i := 1; i <= 4; i++ {
		rep := ts.Step()
		if rep.Ended {
			t.Fatalf("tick %d: ended early", i)
		}
		want := Position{5 + i, 5}
		if ts.Player().Head() != want {
			t.Fatalf("tick %d: expected head %v, got %v", i, want, ts.Player().Head())
		}
		if ts.Player().Len() != 3 {
			t.Fatalf("tick %d: length changed without food: %d", i, ts.Player().Len())
		}
	}

	rep := ts.Step()
	dumpLog(t, ts)
	if !rep.Ended || ts.Phase() != PhaseEnded {
		t.Fatalf("expected the game to end at the wall, phase=%s", ts.Phase())
	}
	if !ts.SimLog.HasEntry("state", "ended", "wall") {
		t.Fatal("expected a state/ended wall entry")
	}

	// Nothing moves once the game is over.
	body := append([]Position(nil), ts.Player().Body...)
	tick := ts.Tick()
	ts.RunTicks(5)
	if ts.Tick() != tick {
		t.Fatalf("tick advanced after the end: %d -> %d", tick, ts.Tick())
	}
	for i, c := range ts.Player().Body {
		if c != body[i] {
			t.Fatalf("body changed after the end at %d: %v -> %v", i, body[i], c)
		}
	}
	if ts.SetDirection(DirUp) {
		t.Fatal("direction input accepted after the end")
	}
}

// --- Scenario: Input Rules ---

func TestScenario_DirectionInput(t *testing.T) {
	ts := NewTestSim(
		WithGridSize(10),
		WithPlayer(DirRight, Position{5, 5}, Position{4, 5}, Position{3, 5}),
	)

	if ts.SetDirection(DirLeft) {
		t.Error("reversal accepted")
	}
	if ts.SetDirection(DirRight) {
		t.Error("same-axis input accepted")
	}
	if !ts.SetDirection(DirUp) {
		t.Fatal("perpendicular input rejected")
	}
	if ts.Player().Dir != DirRight {
		t.Fatal("queued input applied before commit")
	}
	// Judged against the active direction, which is still right.
	if !ts.SetDirection(DirDown) {
		t.Fatal("second perpendicular input rejected before commit")
	}
	ts.Step()
	if ts.Player().Head() != (Position{5, 6}) {
		t.Fatalf("expected the last queued direction to win, head %v", ts.Player().Head())
	}
}

// --- Scenario: Pause ---

func TestScenario_PauseFreezesBoard(t *testing.T) {
	ts := NewTestSim(
		WithGridSize(10),
		WithPlayer(DirRight, Position{5, 5}, Position{4, 5}, Position{3, 5}),
	)
	if ts.TogglePause() != PhasePaused {
		t.Fatal("expected paused")
	}
	if ts.SetDirection(DirUp) {
		t.Error("direction input accepted while paused")
	}
	foods := ts.Foods()
	ts.RunTicks(10)
	if ts.Tick() != 0 || ts.Player().Head() != (Position{5, 5}) {
		t.Fatalf("paused game advanced: tick=%d head=%v", ts.Tick(), ts.Player().Head())
	}
	for i, f := range ts.Foods() {
		if f != foods[i] {
			t.Fatalf("food moved while paused: %v -> %v", foods[i], f)
		}
	}
	if ts.TogglePause() != PhaseRunning {
		t.Fatal("expected resumed")
	}
	ts.Step()
	if ts.Tick() != 1 {
		t.Fatalf("expected tick 1 after resume, got %d", ts.Tick())
	}
	if ts.SimLog.CountCategory("state", "paused") != 1 || ts.SimLog.CountCategory("state", "resumed") != 1 {
		t.Fatal("expected pause and resume entries")
	}
}

// --- Scenario: Self Collision ---

func selfLoopSim(selfCollision bool) *TestSim {
	return NewTestSim(
		WithGridSize(10),
		WithTweak(func(c *Config) {
			c.SelfCollision = selfCollision
			c.FoodCount = 1
		}),
		WithPlayer(DirUp,
			Position{5, 5}, Position{5, 6}, Position{4, 6}, Position{4, 5}, Position{4, 4}),
		WithFood(Position{0, 0}),
	)
}

func TestScenario_SelfCollisionFlag(t *testing.T) {
	on := selfLoopSim(true)
	if !on.SetDirection(DirLeft) {
		t.Fatal("turn rejected")
	}
	rep := on.Step()
	dumpLog(t, on)
	if !rep.Ended {
		t.Fatal("expected running into the body to end the game")
	}
	if !on.SimLog.HasEntry("state", "ended", "own body") {
		t.Fatal("expected an own-body end reason")
	}

	off := selfLoopSim(false)
	off.SetDirection(DirLeft)
	if rep := off.Step(); rep.Ended {
		t.Fatal("self overlap should be harmless with the flag off")
	}
	if !off.Player().HitsSelf() {
		t.Fatal("expected the head to overlap the body")
	}
}

// --- Scenario: AI Eats ---

func TestScenario_AIEatsWithoutScoring(t *testing.T) {
	ts := NewTestSim(
		WithGridSize(10),
		WithTweak(func(c *Config) { c.FoodCount = 2 }),
		WithPlayer(DirRight, Position{3, 8}, Position{2, 8}, Position{1, 8}),
		WithAISnake(DirRight, Position{4, 2}, Position{3, 2}, Position{2, 2}),
		WithFood(Position{5, 2}, Position{0, 0}),
	)
	rep := ts.Step()
	if rep.AIAte != 1 {
		t.Fatalf("expected the ai to eat, report %+v", rep)
	}
	if ts.Score() != 0 {
		t.Fatalf("ai food must not score, got %d", ts.Score())
	}
	ai := ts.AISnakes()[0]
	if ai.Len() != 4 || ai.Head() != (Position{5, 2}) {
		t.Fatalf("expected ai head (5,2) len 4, got %v len %d", ai.Head(), ai.Len())
	}
	if len(ts.Foods()) != 2 {
		t.Fatalf("expected pool topped back up to 2, got %d", len(ts.Foods()))
	}
}

// --- Scenario: AI Crash And Respawn ---

func TestScenario_AICrashAndRespawn(t *testing.T) {
	t.Log("--- Setup: AI-1 boxed into the top-right corner by AI-2 ---")
	ts := NewTestSim(
		WithGridSize(10),
		WithTweak(func(c *Config) {
			c.FoodCount = 1
			c.AIRespawnTicks = 2
		}),
		WithPlayer(DirRight, Position{5, 5}, Position{4, 5}, Position{3, 5}),
		WithAISnake(DirRight, Position{9, 0}, Position{8, 0}, Position{7, 0}),
		WithAISnake(DirDown, Position{9, 3}, Position{9, 2}, Position{9, 1}),
		WithFood(Position{0, 9}),
	)

	rep := ts.Step()
	ai := ts.AISnakes()[0]
	if rep.AICrashes != 1 || ai.Alive {
		t.Fatalf("expected AI-1 to crash on tick 1, report %+v", rep)
	}
	if ts.Phase() != PhaseRunning {
		t.Fatal("an ai crash must not end the game")
	}
	if ai.Stats.Crashes != 1 {
		t.Fatalf("expected crash counted, got %d", ai.Stats.Crashes)
	}

	if rep := ts.Step(); rep.AIRespawns != 0 {
		t.Fatal("respawned before the countdown ran out")
	}
	rep = ts.Step()
	dumpLog(t, ts)
	if rep.AIRespawns != 1 || !ai.Alive {
		t.Fatalf("expected respawn on tick 3, report %+v", rep)
	}
	if ai.Head() != (Position{9, 0}) || ai.Dir != DirRight || ai.Len() != initialLength {
		t.Fatalf("unexpected respawn state head=%v dir=%s len=%d", ai.Head(), ai.Dir, ai.Len())
	}
	if !ts.SimLog.HasEntry("ai", "respawn", "(9,0)") {
		t.Fatal("expected an ai/respawn entry")
	}
}

func TestScenario_AICrashStaysOffWithoutRespawn(t *testing.T) {
	ts := NewTestSim(
		WithGridSize(10),
		WithTweak(func(c *Config) { c.FoodCount = 1 }),
		WithPlayer(DirRight, Position{5, 5}, Position{4, 5}, Position{3, 5}),
		WithAISnake(DirRight, Position{9, 0}, Position{8, 0}, Position{7, 0}),
		WithAISnake(DirDown, Position{9, 3}, Position{9, 2}, Position{9, 1}),
		WithFood(Position{0, 9}),
	)
	ts.RunTicks(4)
	if ts.AISnakes()[0].Alive {
		t.Fatal("ai should stay off the board with respawn disabled")
	}
	if ts.AISnakes()[0].Len() != 0 {
		t.Fatal("crashed ai should hold no cells")
	}
}

// --- Scenario: Food Drift ---

func TestScenario_FoodDriftTiming(t *testing.T) {
	ts := NewTestSim(
		WithGridSize(20),
		WithTweak(func(c *Config) {
			c.FoodCount = 1
			c.TickInterval = 150 * time.Millisecond
			c.FoodMoveInterval = 300 * time.Millisecond
		}),
		WithPlayer(DirRight, Position{10, 10}, Position{9, 10}, Position{8, 10}),
		WithFood(Position{0, 19}),
	)
	reps := ts.RunTicks(4)
	want := []bool{false, true, false, true}
	for i, rep := range reps {
		if rep.Relocated != want[i] {
			t.Errorf("tick %d: relocated=%v, want %v", rep.Tick, rep.Relocated, want[i])
		}
	}
	f := ts.Foods()[0]
	if f.Manhattan(Position{0, 19}) > 2 {
		t.Fatalf("food drifted further than two relocations allow: %v", f)
	}
}

func TestScenario_FoodDriftDisabled(t *testing.T) {
	ts := NewTestSim(
		WithGridSize(20),
		WithTweak(func(c *Config) {
			c.FoodCount = 3
			c.FoodMoveInterval = 0
		}),
		WithPlayer(DirDown, Position{10, 2}, Position{10, 1}, Position{10, 0}),
		WithFood(Position{0, 0}, Position{19, 19}, Position{0, 19}),
	)
	for _, rep := range ts.RunTicks(10) {
		if rep.Relocated {
			t.Fatal("food drifted with relocation disabled")
		}
	}
	want := []Position{{0, 0}, {19, 19}, {0, 19}}
	for i, f := range ts.Foods() {
		if f != want[i] {
			t.Fatalf("food %d moved: %v -> %v", i, want[i], f)
		}
	}
}

// --- Scenario: Best Score ---

type fakeKeeper struct {
	best     int
	recorded []int
	err      error
}

func (k *fakeKeeper) Best() int { return k.best }

func (k *fakeKeeper) Record(score int) error {
	k.recorded = append(k.recorded, score)
	if k.err != nil {
		return k.err
	}
	k.best = score
	return nil
}

func eatTwiceSim(t *testing.T, keeper ScoreKeeper) *Sim {
	t.Helper()
	cfg := DefaultConfig()
	cfg.AISnakes = 0
	s, err := NewSim(cfg, WithSeed(7), WithScoreKeeper(keeper))
	if err != nil {
		t.Fatal(err)
	}
	c := cfg.CellCount
	s.food.Set([]Position{{c/2 + 1, c / 2}, {c/2 + 2, c / 2}})
	s.Step()
	s.Step()
	return s
}

func TestScenario_BestScoreRecorded(t *testing.T) {
	k := &fakeKeeper{best: 15}
	s := eatTwiceSim(t, k)
	if s.Score() != 20 {
		t.Fatalf("expected score 20, got %d", s.Score())
	}
	if s.BestScore() != 20 {
		t.Fatalf("expected best 20, got %d", s.BestScore())
	}
	if len(k.recorded) != 1 || k.recorded[0] != 20 {
		t.Fatalf("expected only the record-breaking score persisted, got %v", k.recorded)
	}

	s.Reset()
	if s.Score() != 0 || s.BestScore() != 20 {
		t.Fatalf("reset should clear score but keep best, got %d/%d", s.Score(), s.BestScore())
	}
}

func TestScenario_BestScorePersistError(t *testing.T) {
	k := &fakeKeeper{err: errors.New("disk full")}
	s := eatTwiceSim(t, k)
	if s.BestScore() != 20 {
		t.Fatalf("best should still update in memory, got %d", s.BestScore())
	}
	if !s.Log().HasEntry("score", "persist_error", "disk full") {
		t.Fatal("expected a persist_error entry")
	}
}

// --- Scenario: Autopilot ---

func TestScenario_AutopilotEats(t *testing.T) {
	ts := NewTestSim(
		WithGridSize(12),
		WithTweak(func(c *Config) {
			c.Autopilot = true
			c.FoodCount = 1
			c.FoodMoveInterval = 0
		}),
		WithPlayer(DirRight, Position{6, 6}, Position{5, 6}, Position{4, 6}),
		WithFood(Position{6, 2}),
	)
	tick := ts.RunUntil(func(ts *TestSim) bool { return ts.Score() > 0 }, 20)
	dumpLog(t, ts)
	dumpSummary(t, ts)
	if tick != 4 {
		t.Fatalf("expected the autopilot to reach (6,2) on tick 4, got %d", tick)
	}
	if ts.Phase() != PhaseRunning {
		t.Fatal("autopilot crashed")
	}
}

// --- Scenario: Reset ---

func TestScenario_ResetRestoresLayout(t *testing.T) {
	cfg := DefaultConfig()
	s, err := NewSim(cfg, WithSeed(3))
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 30; i++ {
		s.Step()
	}
	s.Reset()
	if s.Tick() != 0 || s.Score() != 0 || s.Phase() != PhaseRunning {
		t.Fatalf("unexpected state after reset: tick=%d score=%d phase=%s", s.Tick(), s.Score(), s.Phase())
	}
	if s.Player().Head() != (Position{20, 20}) || s.Player().Dir != DirRight || s.Player().Len() != 3 {
		t.Fatalf("player not back at spawn: %v %s", s.Player().Head(), s.Player().Dir)
	}
	if len(s.AISnakes()) != 2 {
		t.Fatalf("expected 2 ai snakes, got %d", len(s.AISnakes()))
	}
	if s.AISnakes()[0].Head() != (Position{5, 5}) || s.AISnakes()[1].Head() != (Position{35, 35}) {
		t.Fatalf("ai spawns wrong: %v %v", s.AISnakes()[0].Head(), s.AISnakes()[1].Head())
	}
	if len(s.Foods()) != cfg.FoodCount {
		t.Fatalf("expected %d food, got %d", cfg.FoodCount, len(s.Foods()))
	}
}

func TestNewSim_RejectsBadConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CellCount = 2
	if _, err := NewSim(cfg); err == nil {
		t.Fatal("expected an error for a 2x2 grid")
	}
}
