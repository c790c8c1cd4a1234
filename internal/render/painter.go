//go:build ebiten

package render

import (
	"image/color"
	"time"

	"neon-slither/internal/particles"
	"neon-slither/internal/sim"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

// Painter draws an engine onto an ebiten image. It only reads engine state.
type Painter struct {
	bg    *ebiten.Image
	buf   []byte
	side  int
	cells int
}

// NewPainter returns a painter with no cached background.
func NewPainter() *Painter { return &Painter{} }

// Draw renders one frame of eng into screen.
func (p *Painter) Draw(screen *ebiten.Image, eng *sim.Engine, now time.Time) {
	b := screen.Bounds()
	l := NewLayout(b.Dx(), b.Dy(), eng.Size().W)
	screen.Fill(Background)
	p.drawBackground(screen, l)
	if len(eng.Snake()) == 0 {
		return
	}

	eng.Particles().Each(func(pt *particles.Particle) {
		x, y := l.Centre(pt.X, pt.Y)
		s := float32(pt.Size)
		vector.DrawFilledRect(screen, float32(x)-s/2, float32(y)-s/2, s, s, Fade(pt.Color, pt.Life), false)
	})

	fx, fy := l.Centre(float64(eng.Food().X), float64(eng.Food().Y))
	r := l.Tile / 3 * FoodPulse(now)
	glow(screen, fx, fy, r, FoodGlow(now)/3, Food, 1)
	vector.DrawFilledCircle(screen, float32(fx), float32(fy), float32(r), Food, true)

	if pu, ok := eng.PowerUp(); ok {
		a := PowerUpAlpha(pu.Expiry, now, eng.Config().Params.PowerUpLifetime)
		px, py := l.Centre(float64(pu.Cell.X), float64(pu.Cell.Y))
		pr := l.Tile / 2.5
		glow(screen, px, py, pr, 8, PowerUp, a)
		vector.DrawFilledCircle(screen, float32(px), float32(py), float32(pr), Fade(PowerUp, a), true)
	}

	snake := eng.Snake()
	for i := len(snake) - 1; i >= 0; i-- {
		head := i == 0
		col := SnakeBody
		if head {
			col = SnakeHead
		}
		rc := l.Segment(snake[i], head)
		vector.DrawFilledRect(screen, float32(rc.X), float32(rc.Y), float32(rc.W), float32(rc.H), col, true)
	}
	if len(snake) > 0 {
		for _, e := range l.Eyes(snake[0], eng.Direction()) {
			vector.DrawFilledRect(screen, float32(e.X), float32(e.Y), float32(e.W), float32(e.H), Eye, false)
		}
	}

	if c, ok := eng.Combo(); ok && c.Opacity > 0 {
		label := ComboLabel(c.Count)
		face := basicfont.Face7x13
		w := text.BoundString(face, label).Dx()
		cx, _ := l.Centre(float64(c.Anchor.X), float64(c.Anchor.Y))
		_, top := l.Origin(c.Anchor)
		text.Draw(screen, label, face, int(cx)-w/2, int(top-l.Tile), Fade(Accent, c.Opacity))
	}
}

func (p *Painter) drawBackground(screen *ebiten.Image, l Layout) {
	side := int(l.Side)
	if side <= 0 {
		return
	}
	if p.bg == nil || p.side != side || p.cells != l.Cells {
		p.side, p.cells = side, l.Cells
		p.buf = make([]byte, 4*side*side)
		fillGridRGBA(p.buf, side, l.Cells, Background, GridLine)
		p.bg = ebiten.NewImage(side, side)
		p.bg.WritePixels(p.buf)
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(l.OffsetX, l.OffsetY)
	screen.DrawImage(p.bg, op)
}

// glow fakes a blurred halo with a few translucent rings.
func glow(dst *ebiten.Image, x, y, r, width float64, col color.RGBA, alpha float64) {
	const rings = 3
	for i := rings; i >= 1; i-- {
		rr := r + width*float64(i)/rings
		vector.DrawFilledCircle(dst, float32(x), float32(y), float32(rr), Fade(col, alpha*0.12), true)
	}
}
