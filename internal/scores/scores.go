// Package scores persists the best score and a short history of finished
// games between sessions.
package scores

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"
)

// HistoryLimit is how many finished games a store remembers.
const HistoryLimit = 20

// Run is one finished game.
type Run struct {
	ID     uuid.UUID `toml:"id"`
	Score  int       `toml:"score"`
	Ticks  int       `toml:"ticks"`
	Length int       `toml:"length"`
	At     time.Time `toml:"at"`
}

// NewRun stamps a finished game with a fresh ID and the current time.
func NewRun(score, ticks, length int) Run {
	return Run{
		ID:     uuid.New(),
		Score:  score,
		Ticks:  ticks,
		Length: length,
		At:     time.Now().UTC().Truncate(time.Second),
	}
}

// record is the on-disk layout.
type record struct {
	Best int   `toml:"best"`
	Runs []Run `toml:"runs"`
}

func (r *record) add(run Run) {
	r.Runs = append(r.Runs, run)
	if n := len(r.Runs); n > HistoryLimit {
		r.Runs = append([]Run(nil), r.Runs[n-HistoryLimit:]...)
	}
	if run.Score > r.Best {
		r.Best = run.Score
	}
}

// File is a score store backed by a TOML file.
type File struct {
	path string

	mu  sync.Mutex
	rec record
}

// DefaultPath returns scores.toml under the user config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(dir, "serpent-sense", "scores.toml"), nil
}

// Open loads the store at path. A missing file is an empty store; it is
// created on the first write.
func Open(path string) (*File, error) {
	f := &File{path: path}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return f, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read scores: %w", err)
	}
	if err := toml.Unmarshal(data, &f.rec); err != nil {
		return nil, fmt.Errorf("decode scores %s: %w", path, err)
	}
	return f, nil
}

// Path returns the backing file.
func (f *File) Path() string {
	return f.path
}

// Best returns the highest score recorded so far.
func (f *File) Best() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rec.Best
}

// Record stores score as the new best when it beats the current one.
func (f *File) Record(score int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if score <= f.rec.Best {
		return nil
	}
	f.rec.Best = score
	return f.save()
}

// AddRun appends a finished game to the history and saves.
func (f *File) AddRun(run Run) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rec.add(run)
	return f.save()
}

// Runs returns the history, oldest first.
func (f *File) Runs() []Run {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Run(nil), f.rec.Runs...)
}

func (f *File) save() error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("create scores dir: %w", err)
	}
	data, err := toml.Marshal(f.rec)
	if err != nil {
		return fmt.Errorf("encode scores: %w", err)
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write scores: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("replace scores: %w", err)
	}
	return nil
}

// Memory keeps scores for the lifetime of the process only.
type Memory struct {
	mu  sync.Mutex
	rec record
}

// NewMemory returns a store starting at best.
func NewMemory(best int) *Memory {
	return &Memory{rec: record{Best: best}}
}

// Best returns the best score recorded so far.
func (m *Memory) Best() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rec.Best
}

// Record keeps score if it beats the best. It never fails.
func (m *Memory) Record(score int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if score > m.rec.Best {
		m.rec.Best = score
	}
	return nil
}

// AddRun appends run to the history, dropping the oldest past HistoryLimit.
func (m *Memory) AddRun(run Run) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rec.add(run)
	return nil
}

// Runs returns a copy of the history, oldest first.
func (m *Memory) Runs() []Run {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Run(nil), m.rec.Runs...)
}

// Store is what the front-ends need from either implementation.
type Store interface {
	Best() int
	Record(score int) error
	AddRun(run Run) error
	Runs() []Run
}
