//go:build ebiten

package ui

import (
	"fmt"
	"image/color"
	"strconv"

	"neon-slither/internal/leaderboard"
	"neon-slither/internal/render"
	"neon-slither/internal/session"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

var (
	panelBG    = color.RGBA{A: 0xb0}
	dimText    = color.RGBA{R: 0x80, G: 0x80, B: 0x88, A: 0xff}
	brightText = color.RGBA{R: 0xe6, G: 0xe6, B: 0xf0, A: 0xff}
	rupture    = color.RGBA{R: 0xff, G: 0x00, B: 0xff, A: 0xff}
)

// HUD draws the score panels and the start, pause and game-over screens.
type HUD struct {
	ctl *session.Controller
}

// NewHUD constructs a HUD reading from ctl.
func NewHUD(ctl *session.Controller) *HUD { return &HUD{ctl: ctl} }

// Draw paints whatever the current session state calls for.
func (h *HUD) Draw(screen *ebiten.Image) {
	if h == nil || h.ctl == nil {
		return
	}
	switch h.ctl.State() {
	case session.Start:
		h.drawStart(screen)
	case session.Playing:
		h.drawScores(screen)
	case session.Paused:
		h.drawScores(screen)
		h.drawPaused(screen)
	case session.GameOver:
		h.drawGameOver(screen)
	}
}

func (h *HUD) drawScores(screen *ebiten.Image) {
	w := screen.Bounds().Dx()
	drawPanel(screen, panelPadding, panelPadding, scoreWidth, scoreHeight)
	drawText(screen, "GRID_SCORE", panelPadding*2, panelPadding+headerBaseline, dimText)
	drawText(screen, strconv.Itoa(h.ctl.Score()), panelPadding*2, panelPadding+headerBaseline+lineHeight, render.Accent)

	x := w - panelPadding - scoreWidth
	drawPanel(screen, x, panelPadding, scoreWidth, scoreHeight)
	drawText(screen, "MAX_EFFICIENCY", x+panelPadding, panelPadding+headerBaseline, dimText)
	drawText(screen, strconv.Itoa(h.ctl.HighScore()), x+panelPadding, panelPadding+headerBaseline+lineHeight, brightText)
}

func (h *HUD) drawPaused(screen *ebiten.Image) {
	b := screen.Bounds()
	drawCentered(screen, []line{
		{"PAUSED", render.Accent},
		{"SPACE TO RESUME", dimText},
	}, b.Dx(), b.Dy())
}

func (h *HUD) drawStart(screen *ebiten.Image) {
	b := screen.Bounds()
	drawCentered(screen, []line{
		{"SYSTEM.ACTIVE", dimText},
		{"NEON SLITHER", render.Accent},
		{"", brightText},
		{quote(h.ctl.FlavorText()), dimText},
		{"", brightText},
		{"PILOT " + h.ctl.Name(), dimText},
		{"ENTER: INITIALIZE", brightText},
		{"MOVE: WASD / ARROWS  SPACE: PAUSE", dimText},
	}, b.Dx(), b.Dy())
}

func (h *HUD) drawGameOver(screen *ebiten.Image) {
	b := screen.Bounds()
	flavor := h.ctl.FlavorText()
	if !h.ctl.Loading() {
		flavor = quote(flavor)
	}
	lines := []line{
		{"CORE RUPTURE", rupture},
		{"TERMINAL YIELD", dimText},
		{strconv.Itoa(h.ctl.FinalScore()), brightText},
		{flavor, dimText},
	}
	if h.ctl.Rejected() {
		lines = append(lines, line{"SCORE NOT RECORDED", rupture})
	}
	lines = append(lines, line{"", brightText})
	lines = append(lines, leaderboardLines(h.ctl.Leaderboard(), h.ctl.ID().String())...)
	lines = append(lines, line{"", brightText}, line{"ENTER: RE-LINK", brightText})
	drawCentered(screen, lines, b.Dx(), b.Dy())
}

func leaderboardLines(entries []leaderboard.Entry, current string) []line {
	if len(entries) == 0 {
		return nil
	}
	out := []line{{"TOP PILOTS", dimText}}
	for i, e := range entries {
		col := brightText
		if e.ID == current {
			col = render.Accent
		}
		out = append(out, line{fmt.Sprintf("%2d. %-15s %6d", i+1, e.Name, e.Score), col})
	}
	return out
}

func quote(s string) string {
	if s == "" {
		return ""
	}
	return `"` + s + `"`
}

type line struct {
	text string
	col  color.Color
}

func drawCentered(screen *ebiten.Image, lines []line, w, h int) {
	face := basicfont.Face7x13
	widest := 0
	for _, l := range lines {
		widest = max(widest, text.BoundString(face, l.text).Dx())
	}
	boxW := widest + 4*panelPadding
	boxH := len(lines)*lineHeight + 2*panelPadding
	x0 := (w - boxW) / 2
	y0 := (h - boxH) / 2
	drawPanel(screen, x0, y0, boxW, boxH)
	for i, l := range lines {
		lw := text.BoundString(face, l.text).Dx()
		drawText(screen, l.text, (w-lw)/2, y0+panelPadding+headerBaseline+i*lineHeight, l.col)
	}
}

func drawPanel(screen *ebiten.Image, x, y, w, h int) {
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), panelBG, false)
	vector.StrokeRect(screen, float32(x), float32(y), float32(w), float32(h), 1, render.Fade(render.Accent, 0.3), false)
}

func drawText(screen *ebiten.Image, s string, x, y int, col color.Color) {
	text.Draw(screen, s, basicfont.Face7x13, x, y, col)
}

const (
	panelPadding   = 12
	lineHeight     = 18
	headerBaseline = 14
	scoreWidth     = 130
	scoreHeight    = 48
)
