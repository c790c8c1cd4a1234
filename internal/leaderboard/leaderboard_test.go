package leaderboard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func quiet() *log.Logger { return log.New(io.Discard, "", 0) }

func TestSanitize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"PlayerOne", "PlayerOne"},
		{"  padded  ", "padded"},
		{"<b>bold</b>", "bbold/b"},
		{`<script>alert("xss")</script>PlayerOne`, `scriptalert("xs`},
		{"averyveryverylongname", "averyveryverylo"},
		{"<<>>", ""},
		{"ünïcödé-ñämé-long", "ünïcödé-ñämé-lo"},
	}
	for _, tc := range cases {
		got := Sanitize(tc.in)
		if got != tc.want {
			t.Errorf("Sanitize(%q) = %q, want %q", tc.in, got, tc.want)
		}
		if strings.ContainsAny(got, "<>") {
			t.Errorf("Sanitize(%q) kept angle brackets", tc.in)
		}
		if n := len([]rune(got)); n > MaxNameLength {
			t.Errorf("Sanitize(%q) has %d runes", tc.in, n)
		}
	}
}

func TestPlausible(t *testing.T) {
	cases := []struct {
		score   int
		elapsed float64
		want    bool
	}{
		{0, 0, true},
		{40, 10, true},
		{109, 10, true},
		{110, 10, false},
		{5000, 30, false},
		{-1, 30, false},
	}
	for _, tc := range cases {
		if got := Plausible(tc.score, tc.elapsed); got != tc.want {
			t.Errorf("Plausible(%d, %v) = %v, want %v", tc.score, tc.elapsed, got, tc.want)
		}
	}
}

func backends(t *testing.T) map[string]Backend {
	t.Helper()
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return map[string]Backend{
		"memory": NewMemoryBackend(),
		"file":   NewFileBackend(filepath.Join(t.TempDir(), "nested", "board.msgpack")),
		"sqlite": db,
	}
}

func TestBoardKeepsTopTenSorted(t *testing.T) {
	for name, backend := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			board := NewBoard(backend, quiet())
			clock := time.Unix(1_000, 0)
			board.now = func() time.Time {
				clock = clock.Add(time.Second)
				return clock
			}

			scores := []int{50, 10, 300, 70, 70, 20, 990, 0, 40, 120, 80, 65, 15, 400}
			for i, s := range scores {
				if err := board.SaveScore(ctx, fmt.Sprintf("run-%d", i), fmt.Sprintf("p%d", i), s); err != nil {
					t.Fatalf("save %d: %v", i, err)
				}
				got := board.Scores(ctx)
				if len(got) > MaxEntries {
					t.Fatalf("board holds %d entries", len(got))
				}
				for j := 1; j < len(got); j++ {
					if got[j-1].Score < got[j].Score {
						t.Fatalf("board not sorted: %+v", got)
					}
				}
			}

			got := board.Scores(ctx)
			want := []int{990, 400, 300, 120, 80, 70, 70, 65, 50, 40}
			if len(got) != len(want) {
				t.Fatalf("len = %d, want %d", len(got), len(want))
			}
			for i := range want {
				if got[i].Score != want[i] {
					t.Fatalf("entry %d score = %d, want %d", i, got[i].Score, want[i])
				}
			}
			if got[5].Name != "p3" || got[6].Name != "p4" {
				t.Fatalf("ties must keep submission order, got %s then %s", got[5].Name, got[6].Name)
			}
			if board.HighScore(ctx) != 990 {
				t.Fatalf("high score = %d", board.HighScore(ctx))
			}
		})
	}
}

func TestBoardSaveIsIdempotentPerID(t *testing.T) {
	for name, backend := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			board := NewBoard(backend, quiet())
			for i := 0; i < 3; i++ {
				if err := board.SaveScore(ctx, "session-a", "pilot", 120); err != nil {
					t.Fatalf("save: %v", err)
				}
			}
			if got := board.Scores(ctx); len(got) != 1 {
				t.Fatalf("entries = %d, want 1", len(got))
			}
		})
	}
}

func TestBoardSanitizesNames(t *testing.T) {
	ctx := context.Background()
	board := NewBoard(NewMemoryBackend(), quiet())
	if err := board.SaveScore(ctx, "x", "<script>alert(1)</script>", 10); err != nil {
		t.Fatalf("save: %v", err)
	}
	got := board.Scores(ctx)[0].Name
	if strings.ContainsAny(got, "<>") || len([]rune(got)) > MaxNameLength {
		t.Fatalf("stored name %q not sanitized", got)
	}
	if err := board.SaveScore(ctx, "y", " <> ", 10); !errors.Is(err, ErrEmptyName) {
		t.Fatalf("err = %v, want ErrEmptyName", err)
	}
}

type brokenBackend struct{}

var errBroken = errors.New("disk on fire")

func (brokenBackend) Load(context.Context) ([]Entry, error) { return nil, errBroken }
func (brokenBackend) Store(context.Context, []Entry) error  { return errBroken }

func TestBoardFailuresFallBack(t *testing.T) {
	ctx := context.Background()
	board := NewBoard(brokenBackend{}, quiet())
	if got := board.Scores(ctx); got == nil || len(got) != 0 {
		t.Fatalf("scores = %v, want empty board", got)
	}
	if err := board.SaveScore(ctx, "id", "pilot", 10); !errors.Is(err, errBroken) {
		t.Fatalf("err = %v, want wrapped backend error", err)
	}
}

func TestFileBackendPersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "board.msgpack")
	if err := NewBoard(NewFileBackend(path), quiet()).SaveScore(ctx, "a", "pilot", 77); err != nil {
		t.Fatalf("save: %v", err)
	}
	got := NewBoard(NewFileBackend(path), quiet()).Scores(ctx)
	if len(got) != 1 || got[0].Score != 77 || got[0].Name != "pilot" || got[0].ID != "a" {
		t.Fatalf("reloaded = %+v", got)
	}
}

func TestSQLiteBackendPersistsAcrossConnections(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "scores.db")
	db, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := NewBoard(db, quiet()).SaveScore(ctx, "a", "pilot", 55); err != nil {
		t.Fatalf("save: %v", err)
	}
	db.Close()

	db, err = OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer db.Close()
	got := NewBoard(db, quiet()).Scores(ctx)
	if len(got) != 1 || got[0].Score != 55 {
		t.Fatalf("reloaded = %+v", got)
	}
}
