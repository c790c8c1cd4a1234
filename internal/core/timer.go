package core

import "time"

// TickGate decides when a variable-interval simulation is due for its next
// step. Unlike a fixed-rate accumulator the interval is supplied on every
// query, so the simulation may speed up or slow down between ticks.
type TickGate struct {
	last time.Time
}

// Reset makes now the reference point for the next tick.
func (g *TickGate) Reset(now time.Time) { g.last = now }

// Last returns the timestamp of the most recently committed tick.
func (g *TickGate) Last() time.Time { return g.last }

// Ready reports whether at least interval has elapsed since the last commit.
func (g *TickGate) Ready(now time.Time, interval time.Duration) bool {
	if g.last.IsZero() {
		g.last = now
	}
	return now.Sub(g.last) >= interval
}

// Shift moves the reference point forward by d, as if the last tick happened
// d later. A gate that has never been reset is left alone.
func (g *TickGate) Shift(d time.Duration) {
	if !g.last.IsZero() {
		g.last = g.last.Add(d)
	}
}

// Commit records now as the time of the latest tick.
func (g *TickGate) Commit(now time.Time) { g.last = now }
