package ui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	logPanelWidth = 300
	logMaxEntries = 60
	logLineHeight = 15
)

// ThoughtEntry is a single line in the event panel.
type ThoughtEntry struct {
	Tick    int
	Label   string // e.g. "P1", "AI-2", "--"
	Kind    string
	Message string
}

// ThoughtLog is a ring buffer of game events rendered beside the board.
// It satisfies game.EventSink.
type ThoughtLog struct {
	ring    []ThoughtEntry
	next    int  // slot the next entry is written to
	full    bool // ring has wrapped at least once
	verbose bool
	colors  map[string]color.RGBA
}

// NewThoughtLog creates an event panel with a fixed capacity. verbose
// also keeps per-tick decision entries.
func NewThoughtLog(verbose bool) *ThoughtLog {
	return &ThoughtLog{
		ring:    make([]ThoughtEntry, logMaxEntries),
		verbose: verbose,
		colors:  map[string]color.RGBA{},
	}
}

// SetColor tags entries for label with c.
func (tl *ThoughtLog) SetColor(label string, c color.RGBA) {
	tl.colors[label] = c
}

// Add records an event as "category/key value", overwriting the oldest
// line once the panel is full.
func (tl *ThoughtLog) Add(tick int, snake, kind, category, key, value string, _ float64) {
	msg := category + "/" + key
	if value != "" {
		msg += " " + value
	}
	tl.ring[tl.next] = ThoughtEntry{Tick: tick, Label: snake, Kind: kind, Message: msg}
	tl.next++
	if tl.next == len(tl.ring) {
		tl.next = 0
		tl.full = true
	}
}

// AddVerbose appends an entry only when the panel is verbose.
func (tl *ThoughtLog) AddVerbose(tick int, snake, kind, category, key, value string, numVal float64) {
	if !tl.verbose {
		return
	}
	tl.Add(tick, snake, kind, category, key, value, numVal)
}

// Recent returns the kept entries, oldest first.
func (tl *ThoughtLog) Recent() []ThoughtEntry {
	if !tl.full {
		return append([]ThoughtEntry(nil), tl.ring[:tl.next]...)
	}
	out := make([]ThoughtEntry, 0, len(tl.ring))
	out = append(out, tl.ring[tl.next:]...)
	return append(out, tl.ring[:tl.next]...)
}

// Clear drops every entry.
func (tl *ThoughtLog) Clear() {
	tl.next, tl.full = 0, false
}

func (tl *ThoughtLog) colorFor(label string) color.RGBA {
	if c, ok := tl.colors[label]; ok {
		return c
	}
	return globalEventColor
}

// Draw renders the panel on the right side of the screen.
func (tl *ThoughtLog) Draw(screen *ebiten.Image, face text.Face, panelX, panelH int) {
	vector.FillRect(screen, float32(panelX), 0, float32(logPanelWidth), float32(panelH), color.RGBA{R: 14, G: 14, B: 28, A: 248}, false)
	vector.StrokeLine(screen, float32(panelX), 0, float32(panelX), float32(panelH), 1.0, borderColor, false)

	vector.FillRect(screen, float32(panelX), 0, float32(logPanelWidth), 20, color.RGBA{R: 26, G: 26, B: 46, A: 255}, false)
	drawText(screen, face, "EVENTS", panelX+8, 3, textColor)
	vector.StrokeLine(screen, float32(panelX), 20, float32(panelX+logPanelWidth), 20, 1.0, borderColor, false)

	// Newest line at the bottom; the last tick's lines are highlighted.
	lines := tl.Recent()
	if rows := (panelH - 28) / logLineHeight; len(lines) > rows {
		lines = lines[len(lines)-rows:]
	}
	lastTick := -1
	if len(lines) > 0 {
		lastTick = lines[len(lines)-1].Tick
	}
	maxChars := (logPanelWidth - 16) / charWidth

	for i, e := range lines {
		y := 24 + i*logLineHeight
		col := dimTextColor
		if e.Tick == lastTick {
			col = textColor
			vector.FillRect(screen, float32(panelX+2), float32(y), float32(logPanelWidth-4), float32(logLineHeight), color.RGBA{R: 40, G: 40, B: 70, A: 160}, false)
		}
		vector.FillRect(screen, float32(panelX+5), float32(y+4), 3, 7, tl.colorFor(e.Label), false)
		drawText(screen, face, clip(fmt.Sprintf("%4d %-4s %s", e.Tick, e.Label, e.Message), maxChars), panelX+12, y+1, col)
	}
}

// clip shortens s to n runes.
func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "~"
}
