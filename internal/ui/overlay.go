//go:build ebiten

package ui

import (
	"neon-slither/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// Overlay draws a toggleable readout panel in the bottom-left corner.
type Overlay struct {
	src  core.ReadoutProvider
	show bool
}

// NewOverlay constructs a hidden overlay for src.
func NewOverlay(src core.ReadoutProvider) *Overlay {
	return &Overlay{src: src}
}

// Update toggles the panel with Tab.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		o.show = !o.show
	}
}

// Draw renders the readouts when visible.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if o == nil || !o.show || o.src == nil {
		return
	}
	groups := o.src.Readouts()
	rows := 0
	for _, g := range groups {
		rows += 1 + len(g.Readouts)
	}
	h := rows*lineHeight + 2*panelPadding
	y0 := screen.Bounds().Dy() - panelPadding - h
	drawPanel(screen, panelPadding, y0, overlayWidth, h)

	face := basicfont.Face7x13
	y := y0 + panelPadding + headerBaseline
	for _, g := range groups {
		drawText(screen, g.Name, panelPadding*2, y, dimText)
		y += lineHeight
		for _, r := range g.Readouts {
			drawText(screen, r.Label, panelPadding*3, y, brightText)
			vw := text.BoundString(face, r.Value).Dx()
			drawText(screen, r.Value, panelPadding+overlayWidth-panelPadding-vw, y, brightText)
			y += lineHeight
		}
	}
}

const overlayWidth = 200
