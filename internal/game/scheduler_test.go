package game

import (
	"testing"
	"time"
)

func TestScheduler_TicksPerInterval(t *testing.T) {
	ts := NewTestSim()
	if n := ts.AdvanceClock(149 * time.Millisecond); n != 0 {
		t.Fatalf("expected no tick before the interval, got %d", n)
	}
	if n := ts.AdvanceClock(time.Millisecond); n != 1 {
		t.Fatalf("expected one tick at 150ms, got %d", n)
	}
	if n := ts.AdvanceClock(450 * time.Millisecond); n != 3 {
		t.Fatalf("expected three ticks in 450ms, got %d", n)
	}
	if ts.Tick() != 4 || ts.Clock() != 600*time.Millisecond {
		t.Fatalf("expected tick 4 at 600ms, got tick %d at %s", ts.Tick(), ts.Clock())
	}
}

func TestScheduler_CommitsAtHalfInterval(t *testing.T) {
	ts := NewTestSim()
	ts.SetDirection(DirUp)
	ts.AdvanceClock(74 * time.Millisecond)
	if ts.Player().Dir != DirRight {
		t.Fatal("direction committed before half an interval")
	}
	ts.AdvanceClock(time.Millisecond)
	if ts.Player().Dir != DirUp {
		t.Fatalf("expected up committed at 75ms, got %s", ts.Player().Dir)
	}
	if ts.Tick() != 0 {
		t.Fatal("commit must not step the game")
	}
	// The next key press is now judged against up.
	if ts.SetDirection(DirDown) {
		t.Fatal("reversal of the committed direction accepted")
	}
	if !ts.SetDirection(DirRight) {
		t.Fatal("turn off the committed direction rejected")
	}
}

func TestScheduler_OnTickWhilePaused(t *testing.T) {
	ts := NewTestSim()
	var reps []StepReport
	ts.Sched.OnTick = func(rep StepReport) { reps = append(reps, rep) }

	ts.TogglePause()
	if n := ts.AdvanceClock(300 * time.Millisecond); n != 2 {
		t.Fatalf("expected two render-only ticks, got %d", n)
	}
	if len(reps) != 2 || ts.Tick() != 0 {
		t.Fatalf("expected OnTick twice without stepping, got %d calls at tick %d", len(reps), ts.Tick())
	}
	for _, rep := range reps {
		if rep.Phase != PhasePaused {
			t.Fatalf("expected paused reports, got %s", rep.Phase)
		}
	}
}

func TestScheduler_SetSpeedRestartsClock(t *testing.T) {
	ts := NewTestSim()
	ts.AdvanceClock(100 * time.Millisecond)
	if got := ts.Sched.SetSpeed(200 * time.Millisecond); got != 200*time.Millisecond {
		t.Fatalf("expected 200ms applied, got %s", got)
	}
	if ts.Sched.Pending() != 0 {
		t.Fatal("expected the partial interval discarded")
	}
	if n := ts.AdvanceClock(150 * time.Millisecond); n != 0 {
		t.Fatalf("ticked at the old interval: %d", n)
	}
	if n := ts.AdvanceClock(50 * time.Millisecond); n != 1 {
		t.Fatalf("expected one tick at the new interval, got %d", n)
	}

	if got := ts.Sched.SetSpeed(5 * time.Millisecond); got != MinTickInterval {
		t.Fatalf("expected clamp to %s, got %s", MinTickInterval, got)
	}
	if got := ts.Sched.SetSpeed(time.Second); got != MaxTickInterval {
		t.Fatalf("expected clamp to %s, got %s", MaxTickInterval, got)
	}
}

func TestScheduler_StopsAtGameOver(t *testing.T) {
	ts := NewTestSim(
		WithGridSize(10),
		WithPlayer(DirRight, Position{8, 5}, Position{7, 5}, Position{6, 5}),
	)
	calls := 0
	ts.Sched.OnTick = func(StepReport) { calls++ }
	if n := ts.AdvanceClock(time.Second); n != 2 {
		t.Fatalf("expected the clock to stop at the fatal tick, got %d ticks", n)
	}
	if calls != 2 || ts.Phase() != PhaseEnded {
		t.Fatalf("expected 2 callbacks and an ended game, got %d %s", calls, ts.Phase())
	}
	if ts.Sched.Pending() != 0 {
		t.Fatal("expected the clock cleared at game over")
	}
}

func TestScheduler_ResetDiscardsPartialInterval(t *testing.T) {
	ts := NewTestSim()
	ts.AdvanceClock(300 * time.Millisecond)
	ts.AdvanceClock(100 * time.Millisecond)
	ts.Sched.Reset()
	if ts.Tick() != 0 || ts.Sched.Pending() != 0 {
		t.Fatalf("expected a fresh clock, tick=%d pending=%s", ts.Tick(), ts.Sched.Pending())
	}
	if n := ts.AdvanceClock(100 * time.Millisecond); n != 0 {
		t.Fatal("leftover time from before the reset produced a tick")
	}
}
