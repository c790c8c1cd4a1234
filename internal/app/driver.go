package app

import (
	"time"

	"neon-slither/internal/session"
	"neon-slither/internal/sfx"
	"neon-slither/internal/sim"
)

// Frame describes what happened during one driven frame.
type Frame struct {
	Ticked   bool
	Outcome  sim.Outcome
	GameOver bool
}

// Cue returns the sound for the frame's outcome, if any.
func (f Frame) Cue() (sfx.Cue, bool) {
	if !f.Ticked {
		return 0, false
	}
	switch f.Outcome.Kind {
	case sim.FoodCaptured:
		if f.Outcome.Combo > 1 {
			return sfx.CueCombo, true
		}
		return sfx.CueCapture, true
	case sim.PowerUpCaptured:
		return sfx.CuePowerUp, true
	case sim.GameOver:
		if f.GameOver {
			return sfx.CueGameOver, true
		}
	case sim.Continued:
	}
	return 0, false
}

// Driver runs the per-frame loop independent of any window or terminal:
// tick when the session is active and the interval has elapsed, then always
// advance the visual state.
type Driver struct {
	ctl    *session.Controller
	frames uint64
	ticks  uint64
}

// NewDriver wraps a session controller.
func NewDriver(ctl *session.Controller) *Driver {
	return &Driver{ctl: ctl}
}

// Session returns the driven controller.
func (d *Driver) Session() *session.Controller { return d.ctl }

// Frame advances one display frame at now.
func (d *Driver) Frame(now time.Time) Frame {
	d.ctl.Poll()
	eng := d.ctl.Engine()
	var f Frame
	if d.ctl.Active() && eng.Due(now) {
		f.Ticked = true
		f.Outcome = eng.Tick(now)
		f.GameOver = d.ctl.Observe(f.Outcome, now)
		d.ticks++
	}
	eng.AdvanceFrame()
	d.frames++
	return f
}

// Stats returns the number of frames driven and ticks taken.
func (d *Driver) Stats() (frames, ticks uint64) { return d.frames, d.ticks }
