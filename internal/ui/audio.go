package ui

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

const sampleRate = 44100

// Sounds plays short synthesized blips. A nil *Sounds is silent.
type Sounds struct {
	eat      *audio.Player
	crash    *audio.Player
	gameOver *audio.Player
	muted    bool
}

// NewSounds opens the audio context and renders every blip up front.
// Only one audio context may exist per process.
func NewSounds() *Sounds {
	ctx := audio.NewContext(sampleRate)
	return &Sounds{
		eat:      ctx.NewPlayerFromBytes(tone(880, 0.08)),
		crash:    ctx.NewPlayerFromBytes(tone(330, 0.15)),
		gameOver: ctx.NewPlayerFromBytes(tone(196, 0.45)),
	}
}

// tone renders a decaying sine as 16-bit little-endian stereo PCM.
func tone(freq, seconds float64) []byte {
	n := int(sampleRate * seconds)
	buf := make([]byte, n*4)
	for i := 0; i < n; i++ {
		t := float64(i) / sampleRate
		envelope := math.Exp(-4 * t / seconds)
		v := int16(math.Sin(2*math.Pi*freq*t) * 6000 * envelope)
		for ch := 0; ch < 2; ch++ {
			idx := i*4 + ch*2
			buf[idx] = byte(v)
			buf[idx+1] = byte(v >> 8)
		}
	}
	return buf
}

func (s *Sounds) play(p *audio.Player) {
	if s.muted {
		return
	}
	if err := p.Rewind(); err != nil {
		return
	}
	p.Play()
}

// Eat, Crash and GameOver are no-ops on a nil *Sounds.
func (s *Sounds) Eat() {
	if s != nil {
		s.play(s.eat)
	}
}

func (s *Sounds) Crash() {
	if s != nil {
		s.play(s.crash)
	}
}

func (s *Sounds) GameOver() {
	if s != nil {
		s.play(s.gameOver)
	}
}

// ToggleMute flips sound on or off and returns true if now muted.
func (s *Sounds) ToggleMute() bool {
	if s == nil {
		return true
	}
	s.muted = !s.muted
	return s.muted
}

// Muted reports whether blips are suppressed.
func (s *Sounds) Muted() bool {
	return s == nil || s.muted
}
