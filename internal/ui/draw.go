package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Serpent-Sense/internal/game"
)

// cellOrigin returns the top-left pixel of cell p.
func (g *Game) cellOrigin(p game.Position) (float32, float32) {
	return float32(g.offX + p.X*g.cellPx), float32(g.offY + p.Y*g.cellPx)
}

// cellCenter returns the centre pixel of cell p.
func (g *Game) cellCenter(p game.Position) (float32, float32) {
	x, y := g.cellOrigin(p)
	half := float32(g.cellPx) / 2
	return x + half, y + half
}

func (g *Game) drawBoard(screen *ebiten.Image) {
	ox, oy := float32(g.offX), float32(g.offY)
	bp := float32(g.boardPx)
	vector.FillRect(screen, ox, oy, bp, bp, boardColor, false)
	drawGridOffset(screen, g.offX, g.offY, g.boardPx, g.boardPx, g.cellPx, gridColor)
	vector.StrokeRect(screen, ox-1, oy-1, bp+2, bp+2, 2.0, borderColor, false)
}

func (g *Game) drawFood(screen *ebiten.Image) {
	r := float32(g.cellPx)/2 - 2
	for i, f := range g.sim.Foods() {
		outer, inner := foodColors(i)
		cx, cy := g.cellCenter(f)
		vector.FillCircle(screen, cx, cy, r, outer, true)
		vector.FillCircle(screen, cx, cy, r*0.6, inner, true)
		vector.FillCircle(screen, cx-r/3, cy-r/3, r/3, highlightColor, true)
	}
}

// drawTargets draws a faint line from each AI head to the food it chases.
func (g *Game) drawTargets(screen *ebiten.Image) {
	for _, s := range g.sim.AISnakes() {
		if !s.Alive || !s.HasTarget {
			continue
		}
		hx, hy := g.cellCenter(s.Head())
		tx, ty := g.cellCenter(s.Target)
		vector.StrokeLine(screen, hx, hy, tx, ty, 1.0, withAlpha(s.Color, 0.35), true)
	}
}

func (g *Game) drawSnake(screen *ebiten.Image, s *game.Snake) {
	if !s.Alive {
		return
	}
	size := float32(g.cellPx - 2)
	n := s.Len()
	// Tail first so the head is drawn on top.
	for i := n - 1; i >= 0; i-- {
		p := s.Body[i]
		if !g.sim.Grid().InBounds(p) {
			continue
		}
		x, y := g.cellOrigin(p)
		c := s.Color
		if i > 0 {
			c = withAlpha(shade(s.Color, -10), segmentBrightness(i, n))
		}
		vector.FillRect(screen, x+1, y+1, size, size, c, false)
		if i == 0 {
			vector.FillRect(screen, x+1, y+1, size, size/3, withAlpha(shade(s.Color, 40), 0.5), false)
			g.drawEyes(screen, x+1, y+1, size, s.Dir)
		}
	}
}

// drawEyes puts two eyes on the edge of the head facing dir.
func (g *Game) drawEyes(screen *ebiten.Image, x, y, size float32, dir game.Direction) {
	r := max(1.5, size/8)
	off := size / 3
	var ex1, ey1, ex2, ey2 float32
	switch dir {
	case game.DirRight:
		ex1, ey1, ex2, ey2 = x+size-off, y+off, x+size-off, y+size-off
	case game.DirLeft:
		ex1, ey1, ex2, ey2 = x+off, y+off, x+off, y+size-off
	case game.DirUp:
		ex1, ey1, ex2, ey2 = x+off, y+off, x+size-off, y+off
	default:
		ex1, ey1, ex2, ey2 = x+off, y+size-off, x+size-off, y+size-off
	}
	vector.FillCircle(screen, ex1, ey1, r, eyeColor, true)
	vector.FillCircle(screen, ex2, ey2, r, eyeColor, true)
}

func drawGridOffset(screen *ebiten.Image, offX, offY, w, h, spacing int, c color.Color) {
	if spacing <= 0 {
		return
	}
	ox, oy := float32(offX), float32(offY)
	for x := 0; x <= w; x += spacing {
		xf := ox + float32(x)
		vector.StrokeLine(screen, xf, oy, xf, oy+float32(h), 1.0, c, false)
	}
	for y := 0; y <= h; y += spacing {
		yf := oy + float32(y)
		vector.StrokeLine(screen, ox, yf, ox+float32(w), yf, 1.0, c, false)
	}
}
