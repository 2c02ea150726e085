package tui

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Sound plays sine blips through the default output device. A nil *Sound
// is silent.
type Sound struct {
	muted bool
}

// NewSound opens the speaker. The game runs fine without it, so callers
// usually log the error and continue with a nil *Sound.
func NewSound() (*Sound, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return nil, err
	}
	return &Sound{}, nil
}

// blip is one tone of a sound effect.
type blip struct {
	freq float64
	dur  time.Duration
}

var (
	eatBlips      = []blip{{880, 50 * time.Millisecond}}
	crashBlips    = []blip{{330, 80 * time.Millisecond}}
	gameOverBlips = []blip{{392, 120 * time.Millisecond}, {262, 120 * time.Millisecond}, {196, 250 * time.Millisecond}}
)

// sequence chains blips into one streamer.
func sequence(blips []blip) (beep.Streamer, error) {
	parts := make([]beep.Streamer, 0, len(blips))
	for _, b := range blips {
		sine, err := generators.SineTone(sampleRate, b.freq)
		if err != nil {
			return nil, err
		}
		parts = append(parts, beep.Take(sampleRate.N(b.dur), sine))
	}
	return beep.Seq(parts...), nil
}

func (s *Sound) play(blips []blip) {
	if s == nil || s.muted {
		return
	}
	st, err := sequence(blips)
	if err != nil {
		return
	}
	speaker.Play(st)
}

// Eat, Crash and GameOver play their effect unless muted.
func (s *Sound) Eat()      { s.play(eatBlips) }
func (s *Sound) Crash()    { s.play(crashBlips) }
func (s *Sound) GameOver() { s.play(gameOverBlips) }

// ToggleMute flips sound on or off and returns true if now muted.
func (s *Sound) ToggleMute() bool {
	if s == nil {
		return true
	}
	s.muted = !s.muted
	return s.muted
}

// Close releases the speaker.
func (s *Sound) Close() {
	if s != nil {
		speaker.Close()
	}
}
