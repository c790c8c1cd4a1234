package sim

import (
	"fmt"
	"strconv"
	"time"

	"neon-slither/internal/core"
	"neon-slither/internal/particles"
)

// Snake returns the snake cells head first. The slice is owned by the
// engine and only valid until the next Tick or Reset.
func (e *Engine) Snake() []Cell { return e.snake }

// Head returns the first snake cell.
func (e *Engine) Head() Cell { return e.snake[0] }

// Food returns the food cell.
func (e *Engine) Food() Cell { return e.food }

// PowerUp returns the live power-up, if any.
func (e *Engine) PowerUp() (PowerUp, bool) {
	if e.powerUp == nil {
		return PowerUp{}, false
	}
	return *e.powerUp, true
}

// Combo returns the current combo record, if one exists.
func (e *Engine) Combo() (Combo, bool) {
	if e.combo == nil {
		return Combo{}, false
	}
	return *e.combo, true
}

// Score returns the current score.
func (e *Engine) Score() int { return e.score }

// Interval returns the current tick interval.
func (e *Engine) Interval() time.Duration { return e.interval }

// LastTick returns the time of the most recent tick or reset.
func (e *Engine) LastTick() time.Time { return e.gate.Last() }

// Direction returns the committed heading.
func (e *Engine) Direction() Direction { return e.dir }

// PendingDirection returns the heading that the next tick will commit.
func (e *Engine) PendingDirection() Direction { return e.next }

// Over reports whether the run has ended.
func (e *Engine) Over() bool { return e.over }

// Size returns the grid dimensions.
func (e *Engine) Size() core.Size { return e.size }

// Config returns the configuration the engine was built with.
func (e *Engine) Config() Config { return e.cfg }

// Particles exposes the particle pool for rendering.
func (e *Engine) Particles() *particles.Pool { return e.pool }

// Snapshot is a detached copy of the engine state.
type Snapshot struct {
	Snake     []Cell
	Food      Cell
	PowerUp   *PowerUp
	Combo     *Combo
	Score     int
	Direction Direction
	Interval  time.Duration
	Over      bool
	Particles int
}

// Snapshot copies the current state.
func (e *Engine) Snapshot() Snapshot {
	s := Snapshot{
		Snake:     append([]Cell(nil), e.snake...),
		Food:      e.food,
		Score:     e.score,
		Direction: e.dir,
		Interval:  e.interval,
		Over:      e.over,
		Particles: e.pool.Active(),
	}
	if pu, ok := e.PowerUp(); ok {
		s.PowerUp = &pu
	}
	if c, ok := e.Combo(); ok {
		s.Combo = &c
	}
	return s
}

// Readouts reports live engine values for status panels.
func (e *Engine) Readouts() []core.ReadoutGroup {
	combo := "-"
	if c, ok := e.Combo(); ok {
		combo = fmt.Sprintf("x%d", c.Count)
	}
	powerUp := "-"
	if pu, ok := e.PowerUp(); ok {
		powerUp = fmt.Sprintf("%d,%d", pu.Cell.X, pu.Cell.Y)
	}
	return []core.ReadoutGroup{
		{Name: "Snake", Readouts: []core.Readout{
			{Label: "Length", Value: strconv.Itoa(len(e.snake))},
			{Label: "Heading", Value: e.dir.String()},
			{Label: "Interval", Value: e.interval.String()},
		}},
		{Name: "Grid", Readouts: []core.Readout{
			{Label: "Combo", Value: combo},
			{Label: "Power-up", Value: powerUp},
			{Label: "Particles", Value: fmt.Sprintf("%d/%d", e.pool.Active(), e.pool.Cap())},
		}},
	}
}
