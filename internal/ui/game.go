// Package ui is the ebiten window front-end.
package ui

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/Garsondee/Serpent-Sense/internal/game"
	"github.com/Garsondee/Serpent-Sense/internal/scores"
)

// borderWidth is the pixel gap between the window edge and the board.
const borderWidth = 24

// DefaultCellPx is the side of one grid cell in pixels.
const DefaultCellPx = 14

// speedStep is how much , and . change the tick interval.
const speedStep = 10 * time.Millisecond

// flashFrames is how long a status message stays on screen.
const flashFrames = 120

// reportTicks is how many ticks of events go into a copied report.
const reportTicks = 200

// Game is the ebiten window front-end for one Sim.
type Game struct {
	sim        *game.Sim
	sched      *game.Scheduler
	store      scores.Store
	thoughtLog *ThoughtLog
	sounds     *Sounds
	face       text.Face

	width   int
	height  int
	cellPx  int
	boardPx int // board side in pixels
	offX    int // pixel offset from window left to board left
	offY    int // pixel offset from window top to board top

	showHUD bool
	keys    []ebiten.Key

	flash      string
	flashUntil int
	frame      int
}

// Options configures New. Zero values pick the defaults.
type Options struct {
	CellPx     int
	ThoughtLog *ThoughtLog // should be the sim's event sink
	Store      scores.Store
	Sounds     *Sounds
}

// New wraps sim in an ebiten game.
func New(sim *game.Sim, opts Options) *Game {
	cellPx := opts.CellPx
	if cellPx <= 0 {
		cellPx = DefaultCellPx
	}
	tl := opts.ThoughtLog
	if tl == nil {
		tl = NewThoughtLog(false)
	}
	store := opts.Store
	if store == nil {
		store = scores.NewMemory(sim.BestScore())
	}
	boardPx := sim.Grid().CellCount * cellPx
	g := &Game{
		sim:        sim,
		sched:      game.NewScheduler(sim),
		store:      store,
		thoughtLog: tl,
		sounds:     opts.Sounds,
		face:       newFace(),
		width:      borderWidth + boardPx + borderWidth + logPanelWidth,
		height:     borderWidth + boardPx + borderWidth,
		cellPx:     cellPx,
		boardPx:    boardPx,
		offX:       borderWidth,
		offY:       borderWidth,
		showHUD:    true,
	}
	for _, s := range sim.Snakes() {
		tl.SetColor(s.Label, s.Color)
	}
	g.sched.OnTick = g.onTick
	return g
}

// Update handles input and feeds one frame of time to the scheduler.
func (g *Game) Update() error {
	g.frame++
	g.handleInput()
	g.sched.Advance(time.Second / time.Duration(ebiten.TPS()))
	return nil
}

// onTick reacts to a finished step: sounds and the score history.
func (g *Game) onTick(rep game.StepReport) {
	if rep.PlayerAte {
		g.sounds.Eat()
	}
	if rep.AICrashes > 0 {
		g.sounds.Crash()
	}
	if rep.Ended {
		g.sounds.GameOver()
		g.recordRun()
	}
}

func (g *Game) recordRun() {
	run := scores.NewRun(g.sim.Score(), g.sim.Tick(), g.sim.Player().Len())
	if err := g.store.AddRun(run); err != nil {
		g.setFlash("could not save score: " + err.Error())
	}
}

func (g *Game) setFlash(msg string) {
	g.flash = msg
	g.flashUntil = g.frame + flashFrames
}

// handleInput processes key presses in the order they arrived this frame,
// so two quick turns inside one frame both reach the sim.
func (g *Game) handleInput() {
	g.keys = inpututil.AppendJustPressedKeys(g.keys[:0])
	for _, k := range g.keys {
		if d, ok := directionForKey(k); ok {
			if !g.sim.Autopilot() {
				g.sim.SetDirection(d)
			}
			continue
		}
		switch k {
		case ebiten.KeySpace:
			g.sim.TogglePause()
		case ebiten.KeyR:
			g.sched.Reset()
			g.thoughtLog.Clear()
		case ebiten.KeyComma:
			d := g.sched.SetSpeed(g.sim.Interval() + speedStep)
			g.setFlash(fmt.Sprintf("tick %dms", d.Milliseconds()))
		case ebiten.KeyPeriod:
			d := g.sched.SetSpeed(g.sim.Interval() - speedStep)
			g.setFlash(fmt.Sprintf("tick %dms", d.Milliseconds()))
		case ebiten.KeyO:
			g.sim.SetAutopilot(!g.sim.Autopilot())
		case ebiten.KeyC:
			g.copyReport()
		case ebiten.KeyM:
			if g.sounds.ToggleMute() {
				g.setFlash("sound off")
			} else {
				g.setFlash("sound on")
			}
		case ebiten.KeyH:
			g.showHUD = !g.showHUD
		}
	}
}

func (g *Game) copyReport() {
	if err := copyText(g.sim.DebugReport(reportTicks)); err != nil {
		g.setFlash("clipboard: " + err.Error())
		return
	}
	g.setFlash("debug report copied")
}

// directionForKey maps arrows and WASD to directions.
func directionForKey(k ebiten.Key) (game.Direction, bool) {
	switch k {
	case ebiten.KeyArrowUp, ebiten.KeyW:
		return game.DirUp, true
	case ebiten.KeyArrowDown, ebiten.KeyS:
		return game.DirDown, true
	case ebiten.KeyArrowLeft, ebiten.KeyA:
		return game.DirLeft, true
	case ebiten.KeyArrowRight, ebiten.KeyD:
		return game.DirRight, true
	}
	return 0, false
}

// Draw renders the board, the event panel and the overlays.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(windowColor)
	g.drawBoard(screen)
	g.drawFood(screen)
	g.drawTargets(screen)
	for _, s := range g.sim.Snakes() {
		g.drawSnake(screen, s)
	}
	g.drawOverlay(screen)

	drawText(screen, g.face, statusLine(g.sim), g.offX, 5, textColor)
	if g.frame < g.flashUntil {
		drawText(screen, g.face, g.flash, g.offX, g.offY+g.boardPx+5, dimTextColor)
	}
	g.thoughtLog.Draw(screen, g.face, g.offX+g.boardPx+borderWidth, g.height)
	if g.showHUD {
		g.drawHUD(screen)
	}
}

// Layout keeps a fixed logical size regardless of the window.
func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}

// Size returns the window size in pixels.
func (g *Game) Size() (int, int) {
	return g.width, g.height
}
