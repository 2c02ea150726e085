package ui

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/Garsondee/Serpent-Sense/internal/game"
)

// basicfont.Face7x13 metrics.
const (
	charWidth  = 7
	lineHeight = 15
)

func newFace() text.Face {
	return text.NewGoXFace(basicfont.Face7x13)
}

func drawText(dst *ebiten.Image, face text.Face, s string, x, y int, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(c)
	op.LineSpacing = lineHeight
	text.Draw(dst, s, face, op)
}

// drawCentered draws each line of s centred on cx.
func drawCentered(dst *ebiten.Image, face text.Face, s string, cx, y int, c color.Color) {
	for i, line := range strings.Split(s, "\n") {
		w, _ := text.Measure(line, face, lineHeight)
		drawText(dst, face, line, cx-int(w)/2, y+i*lineHeight, c)
	}
}

// statusLine is the one-line summary above the board.
func statusLine(s *game.Sim) string {
	mode := "manual"
	if s.Autopilot() {
		mode = "autopilot"
	}
	return fmt.Sprintf("SCORE %d   BEST %d   LEN %d   %dms   %s",
		s.Score(), s.BestScore(), s.Player().Len(), s.Interval().Milliseconds(), mode)
}

// hudLines is the key legend.
func hudLines(muted bool) []string {
	sound := "on"
	if muted {
		sound = "off"
	}
	return []string{
		"arrows/WASD  steer",
		"space        pause",
		"R            restart",
		",/.          slower/faster",
		"O            autopilot",
		"C            copy report",
		"M            sound " + sound,
		"H            hide help",
	}
}

// drawHUD renders the key legend in the bottom-left corner of the board.
func (g *Game) drawHUD(screen *ebiten.Image) {
	lines := hudLines(g.sounds.Muted())
	const padX, padY = 6, 4

	maxLen := 0
	for _, l := range lines {
		maxLen = max(maxLen, len(l))
	}
	boxW := float32(maxLen*charWidth + padX*2)
	boxH := float32(len(lines)*lineHeight + padY*2)
	bx := float32(g.offX + 6)
	by := float32(g.offY+g.boardPx) - boxH - 6

	vector.FillRect(screen, bx, by, boxW, boxH, color.RGBA{R: 10, G: 10, B: 20, A: 200}, false)
	vector.StrokeRect(screen, bx, by, boxW, boxH, 1.0, borderColor, false)
	drawText(screen, g.face, strings.Join(lines, "\n"), int(bx)+padX, int(by)+padY, dimTextColor)
}

// drawOverlay dims the board and prints the pause or game-over banner.
func (g *Game) drawOverlay(screen *ebiten.Image) {
	var msg string
	col := textColor
	switch g.sim.Phase() {
	case game.PhasePaused:
		msg = "PAUSED\n\nspace to continue"
	case game.PhaseEnded:
		msg = fmt.Sprintf("GAME OVER\n\nscore %d   best %d\n\nR to restart", g.sim.Score(), g.sim.BestScore())
		col = gameOverColor
	default:
		return
	}
	bp := float32(g.boardPx)
	vector.FillRect(screen, float32(g.offX), float32(g.offY), bp, bp, overlayColor, false)
	drawCentered(screen, g.face, msg, g.offX+g.boardPx/2, g.offY+g.boardPx/2-2*lineHeight, col)
}
