package ui

import (
	"fmt"
	"image/color"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Garsondee/Serpent-Sense/internal/game"
)

var _ game.EventSink = (*ThoughtLog)(nil)

func TestThoughtLog_RingKeepsNewest(t *testing.T) {
	tl := NewThoughtLog(false)
	for i := 0; i < logMaxEntries+5; i++ {
		tl.Add(i, "P1", "player", "food", "eaten", fmt.Sprintf("#%d", i), 0)
	}
	got := tl.Recent()
	require.Len(t, got, logMaxEntries)
	assert.Equal(t, 5, got[0].Tick, "oldest surviving entry")
	assert.Equal(t, logMaxEntries+4, got[len(got)-1].Tick)
	assert.Equal(t, "food/eaten #64", got[len(got)-1].Message)

	tl.Clear()
	assert.Empty(t, tl.Recent())
}

func TestThoughtLog_VerboseGate(t *testing.T) {
	quiet := NewThoughtLog(false)
	quiet.AddVerbose(1, "AI-1", "ai", "ai", "decision", "path right", 0)
	assert.Empty(t, quiet.Recent())

	loud := NewThoughtLog(true)
	loud.AddVerbose(1, "AI-1", "ai", "ai", "decision", "path right", 0)
	assert.Len(t, loud.Recent(), 1)
}

func TestThoughtLog_Colors(t *testing.T) {
	tl := NewThoughtLog(false)
	c := color.RGBA{R: 1, G: 2, B: 3, A: 255}
	tl.SetColor("AI-1", c)
	assert.Equal(t, c, tl.colorFor("AI-1"))
	assert.Equal(t, globalEventColor, tl.colorFor("--"))
}

func TestClip(t *testing.T) {
	assert.Equal(t, "short", clip("short", 10))
	assert.Equal(t, "abcd~", clip("abcdefgh", 5))
}

func TestShadeClamps(t *testing.T) {
	c := color.RGBA{R: 250, G: 10, B: 100, A: 255}
	assert.Equal(t, color.RGBA{R: 255, G: 40, B: 130, A: 255}, shade(c, 30))
	assert.Equal(t, color.RGBA{R: 220, G: 0, B: 70, A: 255}, shade(c, -30))
}

func TestWithAlpha_Premultiplied(t *testing.T) {
	got := withAlpha(color.RGBA{R: 200, G: 100, B: 50, A: 255}, 0.5)
	assert.Equal(t, uint8(100), got.R)
	assert.Equal(t, uint8(127), got.A)
	assert.LessOrEqual(t, got.R, got.A)
}

func TestSegmentBrightness(t *testing.T) {
	assert.Equal(t, 1.0, segmentBrightness(0, 10))
	assert.InDelta(t, 0.94, segmentBrightness(1, 10), 1e-9)
	assert.InDelta(t, 0.46, segmentBrightness(9, 10), 1e-9)
	assert.Equal(t, 0.4, segmentBrightness(30, 10))
	for i := 1; i < 20; i++ {
		assert.Less(t, segmentBrightness(i+1, 20), segmentBrightness(i, 20)+1e-9)
	}
}

func TestFoodColorsCycle(t *testing.T) {
	a1, b1 := foodColors(3)
	a2, b2 := foodColors(13)
	assert.Equal(t, a1, a2)
	assert.Equal(t, b1, b2)
}

func TestTone(t *testing.T) {
	buf := tone(440, 0.1)
	require.Len(t, buf, int(sampleRate*0.1)*4)
	// Left and right channels carry the same sample.
	for i := 0; i+3 < len(buf); i += 4 {
		if buf[i] != buf[i+2] || buf[i+1] != buf[i+3] {
			t.Fatalf("channels differ at frame %d", i/4)
		}
	}
}

func TestNilSoundsAreSilent(t *testing.T) {
	var s *Sounds
	assert.NotPanics(t, func() {
		s.Eat()
		s.Crash()
		s.GameOver()
	})
	assert.True(t, s.Muted())
}

func TestDirectionForKey(t *testing.T) {
	cases := map[ebiten.Key]game.Direction{
		ebiten.KeyArrowUp:    game.DirUp,
		ebiten.KeyW:          game.DirUp,
		ebiten.KeyArrowDown:  game.DirDown,
		ebiten.KeyS:          game.DirDown,
		ebiten.KeyArrowLeft:  game.DirLeft,
		ebiten.KeyA:          game.DirLeft,
		ebiten.KeyArrowRight: game.DirRight,
		ebiten.KeyD:          game.DirRight,
	}
	for k, want := range cases {
		got, ok := directionForKey(k)
		require.True(t, ok, k.String())
		assert.Equal(t, want, got, k.String())
	}
	_, ok := directionForKey(ebiten.KeySpace)
	assert.False(t, ok)
}

func TestStatusLine(t *testing.T) {
	sim, err := game.NewSim(game.DefaultConfig(), game.WithSeed(1))
	require.NoError(t, err)
	assert.Equal(t, "SCORE 0   BEST 0   LEN 3   150ms   manual", statusLine(sim))
}
