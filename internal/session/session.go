// Package session owns the game lifecycle around a simulation engine: start,
// pause, game over, score submission and flavor text.
package session

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"neon-slither/internal/flavor"
	"neon-slither/internal/leaderboard"
	"neon-slither/internal/sim"
)

// State is the lifecycle phase of a session.
type State uint8

const (
	Start State = iota
	Playing
	Paused
	GameOver
)

func (s State) String() string {
	switch s {
	case Start:
		return "start"
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	case GameOver:
		return "gameover"
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}

const (
	// BootText is shown until the intro message arrives.
	BootText = "Accessing System..."
	// LoadingText replaces the outro while it is being generated.
	LoadingText = "Analyzing neural patterns..."
)

// Options tune a Controller. Zero values pick defaults.
type Options struct {
	Name           string
	RequestTimeout time.Duration
	Logger         *log.Logger
}

type resultKind uint8

const (
	gotFlavor resultKind = iota
	gotScores
)

type result struct {
	kind    resultKind
	seq     uint64
	text    string
	entries []leaderboard.Entry
}

// Controller drives one engine through successive sessions. All methods
// except those on in-flight requests run on the frame goroutine; background
// work reports back through Poll.
type Controller struct {
	eng    *sim.Engine
	board  *leaderboard.Board
	flavor flavor.Source
	log    *log.Logger
	name   string
	wait   time.Duration

	state    State
	id       uuid.UUID
	seq      uint64
	started  time.Time
	pausedAt time.Time
	paused   time.Duration
	score    int
	final    int
	high     int
	text     string
	loading  bool
	scores   []leaderboard.Entry
	rejected bool

	mu    sync.Mutex
	inbox []result
	wg    sync.WaitGroup
}

// New builds a controller in the Start state and requests the intro text
// and the current leaderboard in the background.
func New(eng *sim.Engine, board *leaderboard.Board, src flavor.Source, opts Options) *Controller {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 10 * time.Second
	}
	if opts.Name == "" {
		opts.Name = "Pilot"
	}
	if src == nil {
		src = flavor.Static{}
	}
	c := &Controller{
		eng:    eng,
		board:  board,
		flavor: src,
		log:    opts.Logger,
		name:   opts.Name,
		wait:   opts.RequestTimeout,
		state:  Start,
		text:   BootText,
	}
	c.requestFlavor(flavor.Intro, 0, c.seq)
	c.refreshScores()
	return c
}

// Start begins a new session from any state: a fresh session id, a reset
// engine and a zero score.
func (c *Controller) Start(now time.Time) sim.Outcome {
	c.id = uuid.New()
	c.seq++
	c.state = Playing
	c.started = now
	c.paused = 0
	c.score = 0
	c.final = 0
	c.loading = false
	c.rejected = false
	return c.eng.Reset(now)
}

// TogglePause flips between Playing and Paused. Other states are unchanged.
func (c *Controller) TogglePause(now time.Time) {
	switch c.state {
	case Playing:
		c.state = Paused
		c.pausedAt = now
	case Paused:
		c.state = Playing
		held := now.Sub(c.pausedAt)
		c.paused += held
		c.eng.Hold(held)
	case Start, GameOver:
	}
}

// Steer forwards a direction intent while the session is playing.
func (c *Controller) Steer(d sim.Direction) {
	if c.state == Playing {
		c.eng.SetPendingDirection(d)
	}
}

// Observe applies a tick outcome. It reports true exactly once per session,
// on the tick that ended it.
func (c *Controller) Observe(o sim.Outcome, now time.Time) bool {
	if c.state != Playing {
		return false
	}
	switch o.Kind {
	case sim.Continued:
		return false
	case sim.FoodCaptured, sim.PowerUpCaptured:
		c.score = o.Score
		return false
	case sim.GameOver:
		c.finish(o.Score, now)
		return true
	}
	return false
}

func (c *Controller) finish(final int, now time.Time) {
	c.state = GameOver
	c.score = final
	c.final = final
	if final > c.high {
		c.high = final
	}
	c.loading = true
	c.requestFlavor(flavor.Outro, final, c.seq)

	elapsed := c.Elapsed(now)
	if !leaderboard.Plausible(final, elapsed.Seconds()) {
		c.rejected = true
		c.log.Printf("session %s: score %d in %s rejected as implausible", c.id, final, elapsed.Round(time.Millisecond))
		return
	}
	c.submit(c.id.String(), final)
}

func (c *Controller) submit(id string, score int) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), c.wait)
		defer cancel()
		if err := c.board.SaveScore(ctx, id, c.name, score); err != nil {
			c.log.Printf("session %s: %v", id, err)
		}
		c.post(result{kind: gotScores, entries: c.board.Scores(ctx)})
	}()
}

func (c *Controller) refreshScores() {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), c.wait)
		defer cancel()
		c.post(result{kind: gotScores, entries: c.board.Scores(ctx)})
	}()
}

func (c *Controller) requestFlavor(kind flavor.Kind, score int, seq uint64) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), c.wait)
		defer cancel()
		c.post(result{kind: gotFlavor, seq: seq, text: c.flavor.Message(ctx, kind, score)})
	}()
}

func (c *Controller) post(r result) {
	c.mu.Lock()
	c.inbox = append(c.inbox, r)
	c.mu.Unlock()
}

// Poll applies finished background results. Flavor text from an earlier
// session is discarded. It reports whether anything changed.
func (c *Controller) Poll() bool {
	c.mu.Lock()
	pending := c.inbox
	c.inbox = nil
	c.mu.Unlock()

	for _, r := range pending {
		switch r.kind {
		case gotFlavor:
			if r.seq != c.seq {
				continue
			}
			c.text = r.text
			c.loading = false
		case gotScores:
			c.scores = r.entries
			if len(r.entries) > 0 && r.entries[0].Score > c.high {
				c.high = r.entries[0].Score
			}
		}
	}
	return len(pending) > 0
}

// Wait blocks until all background requests have finished.
func (c *Controller) Wait() { c.wg.Wait() }

// State returns the lifecycle phase.
func (c *Controller) State() State { return c.state }

// Active reports whether the simulation should advance.
func (c *Controller) Active() bool { return c.state == Playing }

// Engine returns the driven engine.
func (c *Controller) Engine() *sim.Engine { return c.eng }

// ID returns the current session id, zero before the first Start.
func (c *Controller) ID() uuid.UUID { return c.id }

// Score returns the live score of the current session.
func (c *Controller) Score() int { return c.score }

// FinalScore returns the score the last session ended with.
func (c *Controller) FinalScore() int { return c.final }

// HighScore is the best of the persisted leaderboard and every session seen.
func (c *Controller) HighScore() int { return c.high }

// FlavorText returns the intro or outro message, or LoadingText while the
// outro is pending.
func (c *Controller) FlavorText() string {
	if c.loading {
		return LoadingText
	}
	return c.text
}

// Loading reports whether an outro request is outstanding.
func (c *Controller) Loading() bool { return c.loading }

// Rejected reports whether the last final score failed the plausibility check.
func (c *Controller) Rejected() bool { return c.rejected }

// Leaderboard returns the most recently loaded entries.
func (c *Controller) Leaderboard() []leaderboard.Entry { return c.scores }

// Name is the player name as the leaderboard stores it.
func (c *Controller) Name() string { return leaderboard.Sanitize(c.name) }

// Elapsed is the playing time of the current session, excluding pauses.
func (c *Controller) Elapsed(now time.Time) time.Duration {
	if c.started.IsZero() {
		return 0
	}
	d := now.Sub(c.started) - c.paused
	if c.state == Paused {
		d -= now.Sub(c.pausedAt)
	}
	return max(d, 0)
}
