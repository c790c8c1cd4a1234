// Package autopilot steers an engine without a player. It is a greedy
// food-seeker with a flood-fill check against boxing itself in.
package autopilot

import (
	"neon-slither/internal/core"
	"neon-slither/internal/sim"
)

// Pilot chooses directions for one engine. It reuses its scratch grids
// between calls.
type Pilot struct {
	blocked *core.ByteGrid
	seen    *core.ByteGrid
	queue   []core.Cell
}

// New returns a pilot for an n x n grid.
func New(n int) *Pilot {
	return &Pilot{
		blocked: core.NewByteGrid(n, n),
		seen:    core.NewByteGrid(n, n),
		queue:   make([]core.Cell, 0, n*n),
	}
}

var order = [...]sim.Direction{sim.Up, sim.Right, sim.Down, sim.Left}

// Next picks the direction for the coming tick. Among moves that stay on the
// grid and off the body it prefers those leaving at least a snake's length of
// reachable space, then the shortest distance to the target.
func (p *Pilot) Next(eng *sim.Engine) sim.Direction {
	snake := eng.Snake()
	cur := eng.Direction()
	if len(snake) == 0 {
		return cur
	}
	size := eng.Size()
	head := snake[0]
	target := eng.Food()
	if pu, ok := eng.PowerUp(); ok && dist(head, pu.Cell) < dist(head, target) {
		target = pu.Cell
	}

	p.blocked.Clear()
	// The engine tests the head against every segment, tail included.
	p.blocked.Mark(snake...)

	best, bestRoomy, bestDist := cur, false, -1
	found := false
	for _, d := range order {
		if d == cur.Opposite() {
			continue
		}
		dx, dy := d.Delta()
		next := head.Add(dx, dy)
		if !size.Contains(next) || p.blocked.At(next) != 0 {
			continue
		}
		roomy := p.reach(next, len(snake)) >= len(snake)
		dd := dist(next, target)
		if !found || (roomy && !bestRoomy) || (roomy == bestRoomy && dd < bestDist) {
			best, bestRoomy, bestDist, found = d, roomy, dd, true
		}
	}
	return best
}

// reach counts free cells reachable from start, stopping once limit is met.
func (p *Pilot) reach(start core.Cell, limit int) int {
	p.seen.Clear()
	p.queue = append(p.queue[:0], start)
	p.seen.Set(start, 1)
	count := 0
	for len(p.queue) > 0 && count < limit {
		c := p.queue[0]
		p.queue = p.queue[1:]
		count++
		for _, d := range order {
			dx, dy := d.Delta()
			n := c.Add(dx, dy)
			if n.X < 0 || n.Y < 0 || n.X >= p.seen.W || n.Y >= p.seen.H {
				continue
			}
			if p.blocked.At(n) != 0 || p.seen.At(n) != 0 {
				continue
			}
			p.seen.Set(n, 1)
			p.queue = append(p.queue, n)
		}
	}
	return count
}

func dist(a, b core.Cell) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
