package tui

import (
	"fmt"
	"image/color"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Serpent-Sense/internal/game"
	"github.com/Garsondee/Serpent-Sense/internal/scores"
)

// Each grid cell is two terminal columns wide so the board looks square.
const cellCols = 2

// Board origin inside the terminal: one status row, then the frame.
const (
	boardX = 1
	boardY = 2
)

var (
	styleDefault = tcell.StyleDefault
	styleFrame   = tcell.StyleDefault.Foreground(tcell.NewRGBColor(70, 70, 120))
	styleDim     = tcell.StyleDefault.Foreground(tcell.NewRGBColor(150, 150, 170))
	styleAlert   = tcell.StyleDefault.Foreground(tcell.NewRGBColor(255, 71, 87)).Bold(true)
	styleFood    = tcell.StyleDefault.Foreground(tcell.NewRGBColor(255, 107, 129))
)

// Glyphs.
const (
	bodyGlyph = '▓'
	headGlyph = '█'
	foodLeft  = '('
	foodRight = ')'
)

// eyes returns the two glyphs drawn on a head moving in d.
func eyes(d game.Direction) (rune, rune) {
	switch d {
	case game.DirRight:
		return headGlyph, '▶'
	case game.DirLeft:
		return '◀', headGlyph
	case game.DirUp:
		return '▲', '▲'
	default:
		return '▼', '▼'
	}
}

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// fade darkens c for body segment i of n.
func fade(c color.RGBA, i, n int) tcell.Color {
	f := 1.0
	if i > 0 && n > 0 {
		f = max(0.4, 1-float64(i)/float64(n)*0.6)
	}
	return tcell.NewRGBColor(int32(float64(c.R)*f), int32(float64(c.G)*f), int32(float64(c.B)*f))
}

// minSize returns the terminal size needed to show the board.
func minSize(cells int) (int, int) {
	return boardX + cells*cellCols + 2, boardY + cells + 3
}

func putStr(s tcell.Screen, x, y int, str string, style tcell.Style) {
	for _, r := range str {
		s.SetContent(x, y, r, nil, style)
		x++
	}
}

func putCell(s tcell.Screen, p game.Position, left, right rune, style tcell.Style) {
	x := boardX + 1 + p.X*cellCols
	y := boardY + 1 + p.Y
	s.SetContent(x, y, left, nil, style)
	s.SetContent(x+1, y, right, nil, style)
}

// render draws the whole frame. It does not call Show.
func render(s tcell.Screen, sim *game.Sim, v view) {
	s.Clear()
	w, h := s.Size()
	cells := sim.Grid().CellCount
	needW, needH := minSize(cells)
	if w < needW || h < needH {
		putStr(s, 0, 0, fmt.Sprintf("terminal too small: need %dx%d, have %dx%d", needW, needH, w, h), styleAlert)
		return
	}

	putStr(s, boardX, 0, statusLine(sim), styleDefault)
	drawFrame(s, cells)

	for _, f := range sim.Foods() {
		putCell(s, f, foodLeft, foodRight, styleFood)
	}
	for _, sn := range sim.Snakes() {
		drawSnake(s, sim.Grid(), sn)
	}

	footer := boardY + cells + 2
	if v.flash != "" {
		putStr(s, boardX, footer, v.flash, styleDim)
	} else if v.showHelp {
		putStr(s, boardX, footer, "arrows/wasd steer  space pause  r restart  ,/. speed  o auto  c copy  m sound  q quit", styleDim)
	}

	switch sim.Phase() {
	case game.PhasePaused:
		centre(s, cells, cells/2, []string{"PAUSED", "space to continue"}, styleDefault)
	case game.PhaseEnded:
		lines := []string{
			"GAME OVER",
			fmt.Sprintf("score %d  best %d", sim.Score(), sim.BestScore()),
			"r restart  q quit",
		}
		lines = append(lines, historyLines(v.history, 5)...)
		centre(s, cells, cells/2-2, lines, styleAlert)
	}
}

func statusLine(sim *game.Sim) string {
	mode := "manual"
	if sim.Autopilot() {
		mode = "autopilot"
	}
	return fmt.Sprintf("SCORE %d  BEST %d  LEN %d  %dms  %s",
		sim.Score(), sim.BestScore(), sim.Player().Len(), sim.Interval().Milliseconds(), mode)
}

// historyLines formats the last n runs, newest first.
func historyLines(runs []scores.Run, n int) []string {
	if len(runs) == 0 {
		return nil
	}
	out := []string{"", "recent games"}
	for i := len(runs) - 1; i >= 0 && len(out) < n+2; i-- {
		r := runs[i]
		out = append(out, fmt.Sprintf("%s  %4d pts  %4d ticks", r.At.Local().Format("01-02 15:04"), r.Score, r.Ticks))
	}
	return out
}

func drawFrame(s tcell.Screen, cells int) {
	right := boardX + 1 + cells*cellCols
	bottom := boardY + 1 + cells
	for x := boardX + 1; x < right; x++ {
		s.SetContent(x, boardY, '─', nil, styleFrame)
		s.SetContent(x, bottom, '─', nil, styleFrame)
	}
	for y := boardY + 1; y < bottom; y++ {
		s.SetContent(boardX, y, '│', nil, styleFrame)
		s.SetContent(right, y, '│', nil, styleFrame)
	}
	s.SetContent(boardX, boardY, '┌', nil, styleFrame)
	s.SetContent(right, boardY, '┐', nil, styleFrame)
	s.SetContent(boardX, bottom, '└', nil, styleFrame)
	s.SetContent(right, bottom, '┘', nil, styleFrame)
}

func drawSnake(s tcell.Screen, g game.Grid, sn *game.Snake) {
	if !sn.Alive {
		return
	}
	n := sn.Len()
	for i := n - 1; i >= 0; i-- {
		p := sn.Body[i]
		if !g.InBounds(p) {
			continue
		}
		if i == 0 {
			l, r := eyes(sn.Dir)
			putCell(s, p, l, r, styleDefault.Foreground(rgb(sn.Color)).Bold(true))
			continue
		}
		putCell(s, p, bodyGlyph, bodyGlyph, styleDefault.Foreground(fade(sn.Color, i, n)))
	}
}

// centre writes lines centred over the board starting at grid row.
func centre(s tcell.Screen, cells, row int, lines []string, style tcell.Style) {
	mid := boardX + 1 + cells*cellCols/2
	for i, l := range lines {
		r := []rune(l)
		x := mid - len(r)/2
		y := boardY + 1 + row + i
		putStr(s, x-1, y, " "+l+" ", style)
	}
}
