// Package sim implements the snake simulation: movement, collisions,
// growth, combo scoring, power-ups and the particle effects they trigger.
package sim

import (
	"image/color"
	"log"
	"time"

	"neon-slither/internal/core"
	"neon-slither/internal/particles"
)

// Cell is a grid coordinate.
type Cell = core.Cell

// PowerUp is a time-limited bonus cell.
type PowerUp struct {
	Cell   Cell
	Expiry time.Time
}

// Combo tracks consecutive captures inside the combo window. Opacity is
// purely visual and fades independently of scoring.
type Combo struct {
	Count    int
	LastTime time.Time
	Anchor   Cell
	Opacity  float64
}

var (
	foodBurstColor    = color.RGBA{R: 0xff, G: 0x00, B: 0xff, A: 0xff}
	powerUpBurstColor = color.RGBA{R: 0xff, G: 0xff, B: 0x00, A: 0xff}
)

// Engine owns the simulation state. It is not safe for concurrent use: the
// loop driver is the only caller and reads and writes happen on one goroutine.
type Engine struct {
	cfg  Config
	size core.Size
	rng  *core.RNG
	log  *log.Logger

	snake    []Cell
	food     Cell
	powerUp  *PowerUp
	pu       PowerUp
	combo    *Combo
	cm       Combo
	score    int
	dir      Direction
	next     Direction
	interval time.Duration
	gate     core.TickGate
	over     bool

	mask *core.ByteGrid
	pool *particles.Pool
}

// New creates an engine. The engine is inert until Reset is called.
func New(cfg Config, seed int64, logger *log.Logger) *Engine {
	if cfg.Grid < 4 {
		cfg.Grid = 4
	}
	if logger == nil {
		logger = log.Default()
	}
	size := core.Square(cfg.Grid)
	return &Engine{
		cfg:   cfg,
		size:  size,
		rng:   core.NewRNG(seed),
		log:   logger,
		snake: make([]Cell, 0, size.Area()+1),
		mask:  core.NewByteGrid(size.W, size.H),
		pool:  particles.NewPool(cfg.Params.ParticlePool),
	}
}

// Reset starts a fresh run: a horizontal snake heading right from the
// configured origin, new food, no power-up or combo, score zero and the
// initial tick interval. It returns a Continued outcome carrying the zero
// score; callers reset their score displays from it.
func (e *Engine) Reset(now time.Time) Outcome {
	e.snake = e.snake[:0]
	for i := 0; i < e.cfg.InitialLength; i++ {
		e.snake = append(e.snake, Cell{X: e.cfg.Origin.X - i, Y: e.cfg.Origin.Y})
	}
	e.dir = Right
	e.next = Right
	e.powerUp = nil
	e.combo = nil
	e.score = 0
	e.interval = e.cfg.Params.InitialInterval
	e.gate.Reset(now)
	e.over = false
	e.pool.Clear()
	e.food = e.place()
	return Outcome{Kind: Continued, Score: 0}
}

// Due reports whether the current tick interval has elapsed since the last
// tick (or since Reset).
func (e *Engine) Due(now time.Time) bool {
	return e.gate.Ready(now, e.interval)
}

// Hold delays the next tick by d. The session calls it on resume so a pause
// does not count towards the current interval.
func (e *Engine) Hold(d time.Duration) {
	if d > 0 {
		e.gate.Shift(d)
	}
}

// SetPendingDirection queues d for the next tick. A reversal of the
// committed direction is silently dropped.
func (e *Engine) SetPendingDirection(d Direction) {
	if !d.Valid() || d == e.dir.Opposite() {
		return
	}
	e.next = d
}

// Tick advances the simulation by one step. Once the game is over every
// further call returns the same GameOver outcome without touching state.
func (e *Engine) Tick(now time.Time) Outcome {
	if e.over {
		return Outcome{Kind: GameOver, Score: e.score, At: e.snake[0]}
	}
	e.gate.Commit(now)
	e.dir = e.next
	dx, dy := e.dir.Delta()
	head := e.snake[0].Add(dx, dy)

	if !e.size.Contains(head) || e.occupies(head) {
		e.over = true
		return Outcome{Kind: GameOver, Score: e.score, At: head}
	}

	e.prepend(head)
	p := &e.cfg.Params
	out := Outcome{Kind: Continued, At: head}

	switch {
	case head == e.food:
		out.Kind = FoodCaptured
		out.Points, out.Combo = e.capture(head, now)
		e.score += out.Points
		particles.Burst(e.pool, e.rng, e.food, foodBurstColor, p.ParticleBurst, p.ParticleSpread)
		if e.powerUp != nil {
			e.food = e.place(e.powerUp.Cell)
		} else {
			e.food = e.place()
		}
		e.interval -= p.IntervalStep
		if e.interval < p.MinInterval {
			e.interval = p.MinInterval
		}
		if e.powerUp == nil && p.PowerUpMilestone > 0 && e.score%p.PowerUpMilestone == 0 && e.rng.Chance(p.PowerUpProbability) {
			e.pu = PowerUp{Cell: e.place(e.food), Expiry: now.Add(p.PowerUpLifetime)}
			e.powerUp = &e.pu
		}

	case e.powerUp != nil && head == e.powerUp.Cell:
		out.Kind = PowerUpCaptured
		out.Points = p.PowerUpBonus
		e.score += out.Points
		particles.Burst(e.pool, e.rng, e.powerUp.Cell, powerUpBurstColor, p.ParticleBurst, p.ParticleSpread)
		e.snake = e.snake[:len(e.snake)-1]
		for i := 0; i < p.PowerUpShrink && len(e.snake) > p.ShrinkFloor; i++ {
			e.snake = e.snake[:len(e.snake)-1]
		}
		e.interval += p.PowerUpSlowdown
		e.powerUp = nil

	default:
		e.snake = e.snake[:len(e.snake)-1]
	}

	if e.powerUp != nil && now.After(e.powerUp.Expiry) {
		e.powerUp = nil
	}
	out.Score = e.score
	return out
}

// capture updates the combo for a food capture at now and returns the points
// earned together with the combo count after the update.
func (e *Engine) capture(at Cell, now time.Time) (int, int) {
	p := &e.cfg.Params
	points := p.BasePoints
	if e.combo != nil && now.Sub(e.combo.LastTime) <= p.ComboWindow {
		e.combo.Count++
		e.combo.LastTime = now
		e.combo.Opacity = 1
		points += e.combo.Count * p.ComboBonus
		return points, e.combo.Count
	}
	e.cm = Combo{Count: 1, LastTime: now, Anchor: at, Opacity: 1}
	e.combo = &e.cm
	return points, 1
}

// AdvanceFrame moves and fades particles and fades the combo label. It runs
// once per rendered frame whether or not a tick happened.
func (e *Engine) AdvanceFrame() {
	p := &e.cfg.Params
	e.pool.Advance(p.ParticleStep, p.ParticleFade)
	if e.combo != nil && e.combo.Opacity > 0 {
		e.combo.Opacity -= p.ComboFade
		if e.combo.Opacity < 0 {
			e.combo.Opacity = 0
		}
	}
}

func (e *Engine) occupies(c Cell) bool {
	for _, s := range e.snake {
		if s == c {
			return true
		}
	}
	return false
}

func (e *Engine) prepend(c Cell) {
	e.snake = append(e.snake, Cell{})
	copy(e.snake[1:], e.snake)
	e.snake[0] = c
}

// place picks a random cell free of the snake and of any extra cells.
func (e *Engine) place(extra ...Cell) Cell {
	e.mask.Clear()
	e.mask.Mark(e.snake...)
	e.mask.Mark(extra...)
	c, ok := core.RandomEmptyCell(e.rng, e.mask, e.cfg.Params.PlacementAttempts)
	if !ok {
		e.log.Printf("sim: grid %dx%d full after %d attempts, placing at %v", e.size.W, e.size.H, e.cfg.Params.PlacementAttempts, c)
	}
	return c
}
