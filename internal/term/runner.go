package term

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"

	"neon-slither/internal/app"
	"neon-slither/internal/session"
	"neon-slither/internal/sfx"
)

// Sound plays cues. *speaker.Speaker satisfies it; nil means silence.
type Sound interface {
	Play(cue sfx.Cue, combo int)
}

// Runner is the terminal loop driver: a fixed-rate frame ticker feeding the
// shared driver, plus key events from the screen.
type Runner struct {
	screen  tcell.Screen
	driver  *app.Driver
	painter Painter
	sound   Sound
	frame   time.Duration
	clock   func() time.Time
}

// NewRunner builds a runner drawing to screen at fps frames per second.
func NewRunner(screen tcell.Screen, driver *app.Driver, sound Sound, fps int) *Runner {
	if fps <= 0 {
		fps = 60
	}
	return &Runner{
		screen: screen,
		driver: driver,
		sound:  sound,
		frame:  time.Second / time.Duration(fps),
		clock:  time.Now,
	}
}

// Run loops until ctx is cancelled, the user quits, or the screen stops
// delivering events. The caller owns screen initialisation and Fini.
func (r *Runner) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 16)
	go func() {
		defer close(events)
		for {
			ev := r.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	ticker := time.NewTicker(r.frame)
	defer ticker.Stop()
	r.step(r.clock())
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if r.apply(Decode(ev.Key(), ev.Rune()), r.clock()) {
					return nil
				}
			case *tcell.EventResize:
				r.screen.Sync()
			}
		case <-ticker.C:
			r.step(r.clock())
		}
	}
}

// step drives one frame and redraws.
func (r *Runner) step(now time.Time) app.Frame {
	f := r.driver.Frame(now)
	if cue, ok := f.Cue(); ok && r.sound != nil {
		r.sound.Play(cue, f.Outcome.Combo)
	}
	r.painter.Draw(r.screen, r.driver.Session(), now)
	r.screen.Show()
	return f
}

// apply performs a decoded input and reports whether the loop should stop.
func (r *Runner) apply(in Input, now time.Time) bool {
	ctl := r.driver.Session()
	switch in.Action {
	case Quit:
		return true
	case Steer:
		ctl.Steer(in.Direction)
	case Confirm:
		if ctl.State() == session.Start || ctl.State() == session.GameOver {
			ctl.Start(now)
		}
	case Pause:
		ctl.TogglePause(now)
	case Restart:
		ctl.Start(now)
	case Readouts:
		r.painter.ShowReadouts = !r.painter.ShowReadouts
	case None:
	}
	return false
}
