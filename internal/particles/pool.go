// Package particles provides a fixed-capacity particle store that recycles
// slots instead of allocating during play.
package particles

import (
	"image/color"
	"math"

	"neon-slither/internal/core"
)

// Particle is a single visual spark. Position and velocity are in grid
// cells; Size is in screen pixels. Life runs from 1 down to 0.
type Particle struct {
	X, Y   float64
	VX, VY float64
	Life   float64
	Color  color.RGBA
	Size   float64

	active bool
	slot   int32
	live   int32
}

// Active reports whether the particle currently occupies a pool slot.
func (p *Particle) Active() bool { return p.active }

// Pool hands out particle slots from a free list. Capacity is fixed at
// construction; Acquire reports false when every slot is in use.
type Pool struct {
	slots []Particle
	free  []int32
	live  []int32
}

// NewPool allocates capacity particle slots up front.
func NewPool(capacity int) *Pool {
	if capacity < 0 {
		capacity = 0
	}
	p := &Pool{
		slots: make([]Particle, capacity),
		free:  make([]int32, 0, capacity),
		live:  make([]int32, 0, capacity),
	}
	p.Clear()
	return p
}

// Cap returns the fixed number of slots.
func (p *Pool) Cap() int { return len(p.slots) }

// Active returns the number of slots in use.
func (p *Pool) Active() int { return len(p.live) }

// Clear releases every slot.
func (p *Pool) Clear() {
	p.free = p.free[:0]
	p.live = p.live[:0]
	for i := len(p.slots) - 1; i >= 0; i-- {
		p.slots[i] = Particle{slot: int32(i), live: -1}
		p.free = append(p.free, int32(i))
	}
}

// Acquire marks a free slot active and returns it. When the pool is
// exhausted it returns nil, false; callers drop the request.
func (p *Pool) Acquire() (*Particle, bool) {
	n := len(p.free)
	if n == 0 {
		return nil, false
	}
	idx := p.free[n-1]
	p.free = p.free[:n-1]

	pt := &p.slots[idx]
	*pt = Particle{active: true, slot: idx, live: int32(len(p.live))}
	p.live = append(p.live, idx)
	return pt, true
}

// Release returns pt's slot to the free list. Releasing an inactive or
// foreign particle is a no-op.
func (p *Pool) Release(pt *Particle) {
	if pt == nil || !pt.active {
		return
	}
	idx := pt.slot
	if idx < 0 || int(idx) >= len(p.slots) || &p.slots[idx] != pt {
		return
	}
	pos := pt.live
	last := len(p.live) - 1
	moved := p.live[last]
	p.live[pos] = moved
	p.slots[moved].live = pos
	p.live = p.live[:last]

	pt.active = false
	pt.live = -1
	p.free = append(p.free, idx)
}

// Each calls fn for every active particle in arbitrary order. fn must not
// acquire or release slots.
func (p *Pool) Each(fn func(*Particle)) {
	for _, idx := range p.live {
		fn(&p.slots[idx])
	}
}

// Advance moves every active particle by step times its velocity, reduces
// its life by fade and releases it once life reaches zero.
func (p *Pool) Advance(step, fade float64) {
	for i := len(p.live) - 1; i >= 0; i-- {
		pt := &p.slots[p.live[i]]
		pt.X += pt.VX * step
		pt.Y += pt.VY * step
		pt.Life -= fade
		if pt.Life <= 0 {
			pt.Life = 0
			p.Release(pt)
		}
	}
}

// Burst spawns up to count particles at the centre of cell, flying out with
// random velocities in [-spread/2, spread/2). Requests past capacity are
// dropped. It returns the number of particles actually spawned.
func Burst(p *Pool, rng *core.RNG, at core.Cell, col color.RGBA, count int, spread float64) int {
	spawned := 0
	for i := 0; i < count; i++ {
		pt, ok := p.Acquire()
		if !ok {
			break
		}
		pt.X = float64(at.X)
		pt.Y = float64(at.Y)
		pt.VX = rng.Range(-0.5, 0.5) * spread
		pt.VY = rng.Range(-0.5, 0.5) * spread
		pt.Life = 1
		pt.Color = col
		pt.Size = math.Floor(rng.Range(2, 6))
		spawned++
	}
	return spawned
}
