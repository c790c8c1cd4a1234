//go:build ebiten

package app

import (
	"log"
	"time"

	"neon-slither/internal/render"
	"neon-slither/internal/session"
	"neon-slither/internal/sim"
	"neon-slither/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Game adapts a session driver to the ebiten.Game interface.
type Game struct {
	driver  *Driver
	painter *render.Painter
	hud     *ui.HUD
	overlay *ui.Overlay
	sound   *cuePlayer

	side  int
	clock func() time.Time
}

// New constructs a Game around ctl. side is the logical screen size in
// pixels. Audio failures are logged and the game runs silently.
func New(ctl *session.Controller, side int, mute bool, logger *log.Logger) *Game {
	if logger == nil {
		logger = log.Default()
	}
	g := &Game{
		driver:  NewDriver(ctl),
		painter: render.NewPainter(),
		hud:     ui.NewHUD(ctl),
		overlay: ui.NewOverlay(ctl.Engine()),
		side:    side,
		clock:   time.Now,
	}
	if !mute {
		sound, err := newCuePlayer()
		if err != nil {
			logger.Printf("sound disabled: %v", err)
		} else {
			g.sound = sound
		}
	}
	return g
}

var keyDirections = map[ebiten.Key]sim.Direction{
	ebiten.KeyArrowUp:    sim.Up,
	ebiten.KeyW:          sim.Up,
	ebiten.KeyArrowDown:  sim.Down,
	ebiten.KeyS:          sim.Down,
	ebiten.KeyArrowLeft:  sim.Left,
	ebiten.KeyA:          sim.Left,
	ebiten.KeyArrowRight: sim.Right,
	ebiten.KeyD:          sim.Right,
}

// Update handles per-frame input and drives the simulation.
func (g *Game) Update() error {
	now := g.clock()
	ctl := g.driver.Session()
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	switch ctl.State() {
	case session.Start, session.GameOver:
		if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyR) {
			ctl.Start(now)
		}
	case session.Playing, session.Paused:
		if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
			ctl.TogglePause(now)
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyR) {
			ctl.Start(now)
		}
	}
	for key, dir := range keyDirections {
		if inpututil.IsKeyJustPressed(key) {
			ctl.Steer(dir)
		}
	}
	g.overlay.Update()

	f := g.driver.Frame(now)
	if cue, ok := f.Cue(); ok {
		g.sound.Play(cue, f.Outcome.Combo)
	}
	return nil
}

// Draw renders the current frame.
func (g *Game) Draw(screen *ebiten.Image) {
	ctl := g.driver.Session()
	g.painter.Draw(screen, ctl.Engine(), g.clock())
	g.hud.Draw(screen)
	g.overlay.Draw(screen)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.side, g.side
}
