// Package render holds the frame-independent drawing rules shared by every
// frontend, plus the ebiten painter.
package render

import (
	"fmt"
	"image/color"
	"math"
	"time"

	"neon-slither/internal/core"
	"neon-slither/internal/sim"
)

// Palette is the neon colour scheme.
var (
	Background = color.RGBA{R: 0x05, G: 0x05, B: 0x05, A: 0xff}
	GridLine   = color.RGBA{R: 0x11, G: 0x11, B: 0x11, A: 0xff}
	SnakeHead  = color.RGBA{R: 0x00, G: 0xf2, B: 0xff, A: 0xff}
	SnakeBody  = color.RGBA{R: 0x00, G: 0xa8, B: 0xff, A: 0xff}
	Food       = color.RGBA{R: 0xff, G: 0x00, B: 0xff, A: 0xff}
	PowerUp    = color.RGBA{R: 0xff, G: 0xff, B: 0x00, A: 0xff}
	Accent     = color.RGBA{R: 0x00, G: 0xf2, B: 0xff, A: 0xff}
	Eye        = color.RGBA{A: 0xff}
)

// Layout maps grid cells onto a square drawing area centred in a surface.
type Layout struct {
	Cells   int
	Tile    float64
	Side    float64
	OffsetX float64
	OffsetY float64
}

// NewLayout fits a cells x cells grid into a w x h surface.
func NewLayout(w, h, cells int) Layout {
	if cells <= 0 {
		cells = 1
	}
	side := float64(min(w, h))
	if side < 0 {
		side = 0
	}
	return Layout{
		Cells:   cells,
		Tile:    side / float64(cells),
		Side:    side,
		OffsetX: (float64(w) - side) / 2,
		OffsetY: (float64(h) - side) / 2,
	}
}

// Origin returns the top-left pixel of cell c.
func (l Layout) Origin(c core.Cell) (float64, float64) {
	return l.OffsetX + float64(c.X)*l.Tile, l.OffsetY + float64(c.Y)*l.Tile
}

// Centre returns the pixel centre of a fractional cell position.
func (l Layout) Centre(x, y float64) (float64, float64) {
	return l.OffsetX + x*l.Tile + l.Tile/2, l.OffsetY + y*l.Tile + l.Tile/2
}

func millis(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Millisecond)
}

// FoodPulse is the food radius multiplier at now, oscillating in [0.6, 1.0].
func FoodPulse(now time.Time) float64 {
	return 0.8 + math.Sin(millis(now)/150)*0.2
}

// FoodGlow is the glow width in pixels at now, oscillating in [5, 25].
func FoodGlow(now time.Time) float64 {
	return 15 + math.Sin(millis(now)/150)*10
}

// PowerUpAlpha is the power-up opacity at now. Above 20% remaining lifetime
// it is solid; below it flashes between 1 and 0.3.
func PowerUpAlpha(expiry, now time.Time, lifetime time.Duration) float64 {
	if lifetime <= 0 {
		return 1
	}
	remaining := float64(expiry.Sub(now)) / float64(lifetime)
	if remaining > 0.2 {
		return 1
	}
	if math.Sin(millis(now)/50) > 0 {
		return 1
	}
	return 0.3
}

// ComboLabel is the text shown above a combo anchor.
func ComboLabel(count int) string {
	return fmt.Sprintf("COMBO x%d", count)
}

// Fade scales c by alpha, producing a premultiplied colour.
func Fade(c color.RGBA, alpha float64) color.RGBA {
	alpha = math.Max(0, math.Min(1, alpha))
	return color.RGBA{
		R: uint8(float64(c.R) * alpha),
		G: uint8(float64(c.G) * alpha),
		B: uint8(float64(c.B) * alpha),
		A: uint8(float64(c.A) * alpha),
	}
}

// Rect is a pixel rectangle.
type Rect struct {
	X, Y, W, H float64
}

// Segment returns the inset rectangle for a snake segment. The head is drawn
// larger than the body.
func (l Layout) Segment(c core.Cell, head bool) Rect {
	pad := 3.0
	if head {
		pad = 1
	}
	pad = math.Min(pad, l.Tile/4)
	x, y := l.Origin(c)
	return Rect{X: x + pad, Y: y + pad, W: l.Tile - 2*pad, H: l.Tile - 2*pad}
}

// Eyes places the two head eyes across the head, perpendicular to travel.
func (l Layout) Eyes(head core.Cell, dir sim.Direction) [2]Rect {
	const size = 2.0
	x, y := l.Origin(head)
	inset := l.Tile / 4
	mid := l.Tile/2 - size/2
	switch dir {
	case sim.Up, sim.Down:
		return [2]Rect{
			{X: x + inset, Y: y + mid, W: size, H: size},
			{X: x + l.Tile - inset - size, Y: y + mid, W: size, H: size},
		}
	case sim.Left, sim.Right:
	}
	return [2]Rect{
		{X: x + mid, Y: y + inset, W: size, H: size},
		{X: x + mid, Y: y + l.Tile - inset - size, W: size, H: size},
	}
}
