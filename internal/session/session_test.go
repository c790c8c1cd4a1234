package session

import (
	"context"
	"fmt"
	"io"
	"log"
	"testing"
	"time"

	"neon-slither/internal/flavor"
	"neon-slither/internal/leaderboard"
	"neon-slither/internal/sim"
)

type stubSource struct{}

func (stubSource) Message(_ context.Context, k flavor.Kind, score int) string {
	return fmt.Sprintf("%s:%d", k, score)
}

var t0 = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func quiet() *log.Logger { return log.New(io.Discard, "", 0) }

func newController(t *testing.T, board *leaderboard.Board) *Controller {
	t.Helper()
	if board == nil {
		board = leaderboard.NewBoard(leaderboard.NewMemoryBackend(), quiet())
	}
	eng := sim.New(sim.DefaultConfig(), 7, quiet())
	c := New(eng, board, stubSource{}, Options{Name: "<b>Tester</b>", Logger: quiet()})
	t.Cleanup(c.Wait)
	return c
}

func settle(c *Controller) {
	c.Wait()
	c.Poll()
}

func TestIntroText(t *testing.T) {
	c := newController(t, nil)
	if c.State() != Start || c.Active() {
		t.Fatalf("state = %v", c.State())
	}
	settle(c)
	if got := c.FlavorText(); got != "intro:0" {
		t.Fatalf("intro = %q", got)
	}
}

// runIntoWall steers nothing: the snake heads right until it leaves the grid.
func runIntoWall(t *testing.T, c *Controller, start time.Time) (time.Time, int) {
	t.Helper()
	now := start
	fired := 0
	for i := 0; i < 100 && c.State() == Playing; i++ {
		now = now.Add(time.Second)
		if c.Observe(c.Engine().Tick(now), now) {
			fired++
		}
	}
	if fired != 1 {
		t.Fatalf("game over fired %d times", fired)
	}
	return now, c.FinalScore()
}

func TestWallEndsSessionAndRestartResets(t *testing.T) {
	c := newController(t, nil)
	settle(c)
	c.Start(t0)
	if !c.Active() || c.Score() != 0 {
		t.Fatalf("after start: state %v score %d", c.State(), c.Score())
	}

	now, final := runIntoWall(t, c, t0)
	eng := c.Engine()
	if c.State() != GameOver || !eng.Over() {
		t.Fatalf("state = %v over = %v", c.State(), eng.Over())
	}
	if final != eng.Score() {
		t.Fatalf("final %d, engine score %d", final, eng.Score())
	}
	if head := eng.Head(); head.X != eng.Size().W-1 {
		t.Fatalf("head %v not at right edge", head)
	}
	if c.Observe(eng.Tick(now.Add(time.Second)), now.Add(time.Second)) {
		t.Fatalf("game over fired twice")
	}
	if c.FlavorText() != LoadingText || !c.Loading() {
		t.Fatalf("flavor while pending = %q", c.FlavorText())
	}

	settle(c)
	if want := fmt.Sprintf("outro:%d", final); c.FlavorText() != want {
		t.Fatalf("outro = %q, want %q", c.FlavorText(), want)
	}
	board := c.Leaderboard()
	if len(board) != 1 || board[0].Name != c.Name() || c.Name() != "bTester/b" || board[0].Score != final || board[0].ID != c.ID().String() {
		t.Fatalf("leaderboard = %+v", board)
	}
	if c.HighScore() != final {
		t.Fatalf("high = %d", c.HighScore())
	}

	prev := c.ID()
	c.Start(now.Add(time.Minute))
	if c.Score() != 0 || eng.Score() != 0 || eng.Over() || c.ID() == prev {
		t.Fatalf("restart did not reset: score %d over %v", eng.Score(), eng.Over())
	}
	if len(eng.Snake()) != eng.Config().InitialLength {
		t.Fatalf("snake length %d", len(eng.Snake()))
	}
	for _, s := range eng.Snake() {
		if s == eng.Food() {
			t.Fatalf("food %v on snake", s)
		}
	}
}

func TestScoreTracksCaptures(t *testing.T) {
	c := newController(t, nil)
	c.Start(t0)
	c.Observe(sim.Outcome{Kind: sim.FoodCaptured, Points: 10, Score: 10}, t0)
	c.Observe(sim.Outcome{Kind: sim.Continued, Score: 10}, t0)
	c.Observe(sim.Outcome{Kind: sim.PowerUpCaptured, Points: 50, Score: 60}, t0)
	if c.Score() != 60 {
		t.Fatalf("score = %d", c.Score())
	}
}

func TestImplausibleScoreNotSubmitted(t *testing.T) {
	c := newController(t, nil)
	c.Start(t0)
	now := t0.Add(time.Second)
	if !c.Observe(sim.Outcome{Kind: sim.GameOver, Score: 1000}, now) {
		t.Fatalf("game over not reported")
	}
	settle(c)
	if !c.Rejected() {
		t.Fatalf("score not rejected")
	}
	if len(c.Leaderboard()) != 0 {
		t.Fatalf("implausible score stored: %+v", c.Leaderboard())
	}
	if c.HighScore() != 1000 {
		t.Fatalf("high score should still track the session: %d", c.HighScore())
	}
}

func TestStaleOutroIsDropped(t *testing.T) {
	c := newController(t, nil)
	settle(c)
	c.Start(t0)
	c.Observe(sim.Outcome{Kind: sim.GameOver, Score: 20}, t0.Add(10*time.Second))
	c.Start(t0.Add(11 * time.Second))
	settle(c)
	if c.Loading() || c.FlavorText() == "outro:20" {
		t.Fatalf("stale outro applied: %q", c.FlavorText())
	}
}

func TestPause(t *testing.T) {
	c := newController(t, nil)
	c.TogglePause(t0)
	if c.State() != Start {
		t.Fatalf("pause before start changed state to %v", c.State())
	}
	c.Start(t0)
	c.TogglePause(t0.Add(2 * time.Second))
	if c.State() != Paused || c.Active() {
		t.Fatalf("state = %v", c.State())
	}
	c.Steer(sim.Down)
	if c.Engine().PendingDirection() != sim.Right {
		t.Fatalf("steer applied while paused")
	}
	if c.Observe(sim.Outcome{Kind: sim.GameOver}, t0.Add(3*time.Second)) {
		t.Fatalf("observe ran while paused")
	}
	if got := c.Elapsed(t0.Add(10 * time.Second)); got != 2*time.Second {
		t.Fatalf("elapsed while paused = %v", got)
	}
	c.TogglePause(t0.Add(10 * time.Second))
	if got := c.Elapsed(t0.Add(11 * time.Second)); got != 3*time.Second {
		t.Fatalf("elapsed after resume = %v", got)
	}
	c.Steer(sim.Down)
	if c.Engine().PendingDirection() != sim.Down {
		t.Fatalf("steer ignored while playing")
	}
}

func TestResumeDoesNotTickImmediately(t *testing.T) {
	c := newController(t, nil)
	c.Start(t0)
	eng := c.Engine()
	interval := eng.Interval()

	c.TogglePause(t0.Add(100 * time.Millisecond))
	resume := t0.Add(10 * time.Second)
	c.TogglePause(resume)
	if eng.Due(resume) {
		t.Fatalf("tick due right after resume")
	}
	if !eng.Due(resume.Add(interval - 100*time.Millisecond)) {
		t.Fatalf("tick not due once the rest of the interval passed")
	}
}

func TestHighScoreFromLeaderboard(t *testing.T) {
	board := leaderboard.NewBoard(leaderboard.NewMemoryBackend(), quiet())
	if err := board.SaveScore(context.Background(), "old", "veteran", 500); err != nil {
		t.Fatal(err)
	}
	c := newController(t, board)
	settle(c)
	if c.HighScore() != 500 || len(c.Leaderboard()) != 1 {
		t.Fatalf("high = %d board = %+v", c.HighScore(), c.Leaderboard())
	}
}
