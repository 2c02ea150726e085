package game

import "time"

// Scheduler turns elapsed wall time into simulation ticks. It owns two
// accumulators on one timeline: the tick clock (one Step per interval) and
// the direction-commit clock (twice per interval), so a quick second key
// press is judged against the first one instead of being dropped.
//
// Advance is called by whatever drives the game: ebiten's fixed update rate,
// a time.Ticker in the terminal, or a test advancing a manual clock.
type Scheduler struct {
	sim *Sim

	tickAccum   time.Duration
	commitAccum time.Duration

	// OnTick is called after every elapsed interval, including paused ones
	// (render-only), with the report of that Step.
	OnTick func(StepReport)
}

// NewScheduler wraps sim.
func NewScheduler(sim *Sim) *Scheduler {
	return &Scheduler{sim: sim}
}

// Sim returns the driven simulation.
func (sc *Scheduler) Sim() *Sim {
	return sc.sim
}

// Advance feeds dt of elapsed time and returns how many ticks elapsed.
func (sc *Scheduler) Advance(dt time.Duration) int {
	if dt <= 0 {
		return 0
	}
	interval := sc.sim.Interval()
	half := interval / 2

	ticks := 0
	remaining := dt
	for remaining > 0 {
		// Step to whichever clock fires next, so commits and ticks
		// interleave in the order they would on two real timers.
		toCommit := max(0, half-sc.commitAccum)
		toTick := max(0, interval-sc.tickAccum)
		step := min(remaining, toCommit, toTick)

		sc.commitAccum += step
		sc.tickAccum += step
		remaining -= step

		if sc.commitAccum >= half {
			sc.commitAccum = 0
			sc.sim.CommitDirection()
		}
		if sc.tickAccum >= interval {
			sc.tickAccum = 0
			rep := sc.sim.Step()
			ticks++
			if sc.OnTick != nil {
				sc.OnTick(rep)
			}
			if rep.Ended {
				// Nothing further happens until Reset.
				sc.tickAccum, sc.commitAccum = 0, 0
				return ticks
			}
		}
	}
	return ticks
}

// SetSpeed applies a new tick interval and restarts both clocks, so the
// next tick lands one full new interval from now. State is untouched.
func (sc *Scheduler) SetSpeed(d time.Duration) time.Duration {
	applied := sc.sim.SetSpeed(d)
	sc.tickAccum, sc.commitAccum = 0, 0
	return applied
}

// Reset cancels any partially elapsed interval and restarts the game.
func (sc *Scheduler) Reset() {
	sc.tickAccum, sc.commitAccum = 0, 0
	sc.sim.Reset()
}

// Pending returns the time already accumulated toward the next tick.
func (sc *Scheduler) Pending() time.Duration {
	return sc.tickAccum
}
