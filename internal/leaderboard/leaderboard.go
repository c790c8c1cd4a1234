// Package leaderboard keeps the top scores behind a small storage interface.
package leaderboard

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log"
	"slices"
	"strings"
	"sync"
	"time"
	"unicode/utf8"
)

const (
	// MaxEntries is the number of scores retained.
	MaxEntries = 10
	// MaxNameLength caps a sanitized player name, in runes.
	MaxNameLength = 15
	// MaxPointsPerSecond is the plausibility ceiling for a run.
	MaxPointsPerSecond = 10
)

// ErrEmptyName is returned when a name is empty after sanitizing.
var ErrEmptyName = errors.New("leaderboard: empty name")

// Entry is one leaderboard row. ID identifies the session that produced it,
// so re-submitting the same session is a no-op.
type Entry struct {
	ID        string `msgpack:"id"`
	Name      string `msgpack:"name"`
	Score     int    `msgpack:"score"`
	Timestamp int64  `msgpack:"ts"`
}

// Backend persists the whole leaderboard as one value.
type Backend interface {
	Load(ctx context.Context) ([]Entry, error)
	Store(ctx context.Context, entries []Entry) error
}

// Sanitize strips angle brackets, trims surrounding space and caps the
// result at MaxNameLength runes.
func Sanitize(name string) string {
	name = strings.NewReplacer("<", "", ">", "").Replace(name)
	name = strings.TrimSpace(name)
	if utf8.RuneCountInString(name) > MaxNameLength {
		runes := []rune(name)
		name = string(runes[:MaxNameLength])
	}
	return name
}

// Plausible reports whether score could have been earned in elapsedSeconds.
// It is advisory; the engine never consults it.
func Plausible(score int, elapsedSeconds float64) bool {
	if score < 0 || elapsedSeconds < 0 {
		return false
	}
	return float64(score)/(elapsedSeconds+1) < MaxPointsPerSecond
}

// Board orders, trims and de-duplicates entries on top of a Backend.
type Board struct {
	mu      sync.Mutex
	backend Backend
	log     *log.Logger
	now     func() time.Time
}

// NewBoard wraps backend. A nil logger uses log.Default().
func NewBoard(backend Backend, logger *log.Logger) *Board {
	if logger == nil {
		logger = log.Default()
	}
	return &Board{backend: backend, log: logger, now: time.Now}
}

// Scores returns the stored entries, highest first. Backend failures are
// logged and reported as an empty board.
func (b *Board) Scores(ctx context.Context) []Entry {
	b.mu.Lock()
	defer b.mu.Unlock()
	entries, err := b.backend.Load(ctx)
	if err != nil {
		b.log.Printf("leaderboard: load: %v", err)
		return []Entry{}
	}
	sortEntries(entries)
	return entries
}

// SaveScore records score for name under id. Saving an id that is already
// on the board leaves the board unchanged.
func (b *Board) SaveScore(ctx context.Context, id, name string, score int) error {
	name = Sanitize(name)
	if name == "" {
		return ErrEmptyName
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	entries, err := b.backend.Load(ctx)
	if err != nil {
		return fmt.Errorf("leaderboard: load: %w", err)
	}
	if id != "" && slices.ContainsFunc(entries, func(e Entry) bool { return e.ID == id }) {
		return nil
	}
	entries = append(entries, Entry{
		ID:        id,
		Name:      name,
		Score:     score,
		Timestamp: b.now().UnixMilli(),
	})
	sortEntries(entries)
	if len(entries) > MaxEntries {
		entries = entries[:MaxEntries]
	}
	if err := b.backend.Store(ctx, entries); err != nil {
		return fmt.Errorf("leaderboard: store: %w", err)
	}
	return nil
}

// HighScore returns the best stored score, or 0.
func (b *Board) HighScore(ctx context.Context) int {
	entries := b.Scores(ctx)
	if len(entries) == 0 {
		return 0
	}
	return entries[0].Score
}

// sortEntries orders by score descending; ties keep the earlier entry first.
func sortEntries(entries []Entry) {
	slices.SortStableFunc(entries, func(a, b Entry) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return cmp.Compare(a.Timestamp, b.Timestamp)
	})
}

// MemoryBackend keeps the board in process memory.
type MemoryBackend struct {
	mu      sync.Mutex
	entries []Entry
}

// NewMemoryBackend returns an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend { return &MemoryBackend{} }

// Load returns a copy of the stored entries.
func (m *MemoryBackend) Load(context.Context) ([]Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.entries), nil
}

// Store replaces the stored entries.
func (m *MemoryBackend) Store(_ context.Context, entries []Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = slices.Clone(entries)
	return nil
}
