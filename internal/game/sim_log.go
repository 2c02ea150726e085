package game

import (
	"fmt"
	"strings"
)

// EventSink receives simulation events as they happen. SimLog keeps them
// all; the window front-end keeps a short ring buffer for its side panel.
type EventSink interface {
	Add(tick int, snake, kind, category, key, value string, numVal float64)
	AddVerbose(tick int, snake, kind, category, key, value string, numVal float64)
}

// SimLogEntry is one recorded simulation event.
type SimLogEntry struct {
	Tick     int
	Snake    string  // label e.g. "P1", "AI-1", or "--" for global events
	Kind     string  // "player", "ai", or "--"
	Category string  // food, ai, score, state, input
	Key      string  // specific event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value for threshold checks
}

// String formats the entry as a fixed-width log line.
//
//	[T=042] AI-1 ai        fallback         no route to (12,7)
func (e SimLogEntry) String() string {
	return fmt.Sprintf("[T=%03d] %-4s %-9s %-16s %s",
		e.Tick, e.Snake, e.Category, e.Key, e.Value)
}

// SimLog is the full event history of one game, in tick order. Tests and
// the headless report query it; the debug report prints a window of it.
type SimLog struct {
	entries []SimLogEntry
	verbose bool
}

// NewSimLog creates a SimLog. Verbose logs also keep per-tick decisions and
// food drift.
func NewSimLog(verbose bool) *SimLog {
	return &SimLog{verbose: verbose}
}

// Add records an entry. Global events pass an empty snake label.
func (sl *SimLog) Add(tick int, snake, kind, category, key, value string, numVal float64) {
	if snake == "" {
		snake, kind = "--", "--"
	}
	sl.entries = append(sl.entries, SimLogEntry{
		Tick: tick, Snake: snake, Kind: kind,
		Category: category, Key: key, Value: value, NumVal: numVal,
	})
}

// AddVerbose records an entry only when the log is verbose.
func (sl *SimLog) AddVerbose(tick int, snake, kind, category, key, value string, numVal float64) {
	if sl.verbose {
		sl.Add(tick, snake, kind, category, key, value, numVal)
	}
}

// Entries returns every recorded entry, oldest first.
func (sl *SimLog) Entries() []SimLogEntry { return sl.entries }

// Reset drops every entry and keeps the verbose setting.
func (sl *SimLog) Reset() { sl.entries = sl.entries[:0] }

// LogQuery selects entries. Zero fields match anything; To == 0 means no
// upper tick bound.
type LogQuery struct {
	Category string
	Key      string
	Snake    string
	Contains string // substring of Value
	From, To int
}

func (q LogQuery) match(e SimLogEntry) bool {
	switch {
	case q.Category != "" && e.Category != q.Category,
		q.Key != "" && e.Key != q.Key,
		q.Snake != "" && e.Snake != q.Snake,
		e.Tick < q.From,
		q.To > 0 && e.Tick > q.To:
		return false
	}
	return q.Contains == "" || strings.Contains(e.Value, q.Contains)
}

// Select returns every entry matching q, oldest first.
func (sl *SimLog) Select(q LogQuery) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if q.match(e) {
			out = append(out, e)
		}
	}
	return out
}

// Filter returns entries matching category and key; empty matches any.
func (sl *SimLog) Filter(category, key string) []SimLogEntry {
	return sl.Select(LogQuery{Category: category, Key: key})
}

// FilterSnake returns entries for one snake label.
func (sl *SimLog) FilterSnake(label string) []SimLogEntry {
	return sl.Select(LogQuery{Snake: label})
}

// FilterTickRange returns entries with fromTick <= Tick <= toTick.
func (sl *SimLog) FilterTickRange(fromTick, toTick int) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if e.Tick >= fromTick && e.Tick <= toTick {
			out = append(out, e)
		}
	}
	return out
}

// CountCategory returns how many entries match category and key.
func (sl *SimLog) CountCategory(category, key string) int {
	n := 0
	q := LogQuery{Category: category, Key: key}
	for _, e := range sl.entries {
		if q.match(e) {
			n++
		}
	}
	return n
}

// LastOf returns the newest entry with this category and key.
func (sl *SimLog) LastOf(category, key string) (SimLogEntry, bool) {
	q := LogQuery{Category: category, Key: key}
	for i := len(sl.entries) - 1; i >= 0; i-- {
		if q.match(sl.entries[i]) {
			return sl.entries[i], true
		}
	}
	return SimLogEntry{}, false
}

// HasEntry reports whether any entry matches; empty arguments match anything.
func (sl *SimLog) HasEntry(category, key, valueSubstr string) bool {
	q := LogQuery{Category: category, Key: key, Contains: valueSubstr}
	for _, e := range sl.entries {
		if q.match(e) {
			return true
		}
	}
	return false
}

// Format renders the whole log, one line per entry, for t.Log.
func (sl *SimLog) Format() string {
	return formatEntries(sl.entries)
}

// FormatRange renders the entries of ticks fromTick..toTick inclusive.
func (sl *SimLog) FormatRange(fromTick, toTick int) string {
	return formatEntries(sl.FilterTickRange(fromTick, toTick))
}

func formatEntries(entries []SimLogEntry) string {
	var sb strings.Builder
	for _, e := range entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// discardSink drops every event.
type discardSink struct{}

func (discardSink) Add(int, string, string, string, string, string, float64)        {}
func (discardSink) AddVerbose(int, string, string, string, string, string, float64) {}
