// Package tui is the terminal front-end, drawn with tcell.
package tui

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Serpent-Sense/internal/game"
	"github.com/Garsondee/Serpent-Sense/internal/scores"
)

// frameInterval is the redraw and scheduler cadence.
const frameInterval = 16 * time.Millisecond

const (
	speedStep   = 10 * time.Millisecond
	flashFor    = 2 * time.Second
	reportTicks = 200
)

// view is the front-end state render needs beyond the sim.
type view struct {
	flash    string
	showHelp bool
	history  []scores.Run
}

// App runs one game in a terminal.
type App struct {
	screen tcell.Screen
	sim    *game.Sim
	sched  *game.Scheduler
	store  scores.Store
	sound  *Sound

	view       view
	flashUntil time.Time
	now        func() time.Time
}

// New wires sim to screen. The screen must already be initialised. A nil
// store keeps history in memory; a nil sound is silent.
func New(screen tcell.Screen, sim *game.Sim, store scores.Store, sound *Sound) *App {
	if store == nil {
		store = scores.NewMemory(sim.BestScore())
	}
	a := &App{
		screen: screen,
		sim:    sim,
		sched:  game.NewScheduler(sim),
		store:  store,
		sound:  sound,
		view:   view{showHelp: true},
		now:    time.Now,
	}
	a.view.history = store.Runs()
	a.sched.OnTick = a.onTick
	return a
}

// Run drives the game until the player quits. Key events are read on a
// separate goroutine and merged with the frame ticker.
func (a *App) Run() error {
	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()
	last := a.now()
	a.draw()

	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !a.handleKey(ev) {
					return nil
				}
			case *tcell.EventResize:
				a.screen.Sync()
			}
			a.draw()
		case <-ticker.C:
			now := a.now()
			a.sched.Advance(now.Sub(last))
			last = now
			a.draw()
		}
	}
}

func (a *App) onTick(rep game.StepReport) {
	if rep.PlayerAte {
		a.sound.Eat()
	}
	if rep.AICrashes > 0 {
		a.sound.Crash()
	}
	if rep.Ended {
		a.sound.GameOver()
		a.recordRun()
	}
}

func (a *App) recordRun() {
	run := scores.NewRun(a.sim.Score(), a.sim.Tick(), a.sim.Player().Len())
	if err := a.store.AddRun(run); err != nil {
		a.setFlash("could not save score: " + err.Error())
	}
	a.view.history = a.store.Runs()
}

func (a *App) setFlash(msg string) {
	a.view.flash = msg
	a.flashUntil = a.now().Add(flashFor)
}

// handleKey applies one key press. It returns false when the user quits.
func (a *App) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyUp:
		a.steer(game.DirUp)
	case tcell.KeyDown:
		a.steer(game.DirDown)
	case tcell.KeyLeft:
		a.steer(game.DirLeft)
	case tcell.KeyRight:
		a.steer(game.DirRight)
	case tcell.KeyRune:
		return a.handleRune(ev.Rune())
	}
	return true
}

func (a *App) handleRune(r rune) bool {
	switch r {
	case 'q', 'Q':
		return false
	case 'w', 'W':
		a.steer(game.DirUp)
	case 's', 'S':
		a.steer(game.DirDown)
	case 'a', 'A':
		a.steer(game.DirLeft)
	case 'd', 'D':
		a.steer(game.DirRight)
	case ' ':
		a.sim.TogglePause()
	case 'r', 'R':
		a.sched.Reset()
		a.view.flash = ""
	case ',', '<':
		d := a.sched.SetSpeed(a.sim.Interval() + speedStep)
		a.setFlash(fmt.Sprintf("tick %dms", d.Milliseconds()))
	case '.', '>':
		d := a.sched.SetSpeed(a.sim.Interval() - speedStep)
		a.setFlash(fmt.Sprintf("tick %dms", d.Milliseconds()))
	case 'o', 'O':
		a.sim.SetAutopilot(!a.sim.Autopilot())
	case 'c', 'C':
		if err := copyText(a.sim.DebugReport(reportTicks)); err != nil {
			a.setFlash("clipboard: " + err.Error())
		} else {
			a.setFlash("debug report copied")
		}
	case 'm', 'M':
		if a.sound.ToggleMute() {
			a.setFlash("sound off")
		} else {
			a.setFlash("sound on")
		}
	case 'h', 'H':
		a.view.showHelp = !a.view.showHelp
	}
	return true
}

func (a *App) steer(d game.Direction) {
	if a.sim.Autopilot() {
		return
	}
	a.sim.SetDirection(d)
}

func (a *App) draw() {
	if a.view.flash != "" && a.now().After(a.flashUntil) {
		a.view.flash = ""
	}
	render(a.screen, a.sim, a.view)
	a.screen.Show()
}
