// Package term is the terminal frontend: a tcell painter, key decoding and a
// frame loop around the shared driver.
package term

import (
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"

	"neon-slither/internal/core"
	"neon-slither/internal/particles"
	"neon-slither/internal/render"
	"neon-slither/internal/session"
)

// Surface is the part of tcell.Screen the painter writes to.
type Surface interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Size() (int, int)
}

const (
	boardTop  = 1
	boardLeft = 0
	cellWidth = 2
)

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

var base = tcell.StyleDefault.Background(rgb(render.Background)).Foreground(tcell.ColorWhite)

// Painter draws a session onto a character grid. Each grid cell is two
// columns wide.
type Painter struct {
	ShowReadouts bool
}

// Cell returns the screen column and row of grid cell c.
func Cell(c core.Cell) (int, int) {
	return boardLeft + 1 + c.X*cellWidth, boardTop + 1 + c.Y
}

// Draw renders the full frame for ctl at now.
func (p *Painter) Draw(s Surface, ctl *session.Controller, now time.Time) {
	w, h := s.Size()
	fill(s, 0, 0, w, h, base)
	eng := ctl.Engine()
	n := eng.Size().W

	p.drawStatus(s, ctl)
	p.drawBorder(s, n)
	switch ctl.State() {
	case session.Start:
		p.drawBox(s, n, []string{
			"NEON SLITHER",
			"",
			ctl.FlavorText(),
			"",
			"ENTER: INITIALIZE",
			"ARROWS/WASD  SPACE: PAUSE  Q: QUIT",
		})
		return
	case session.Playing, session.Paused, session.GameOver:
	}

	eng.Particles().Each(func(pt *particles.Particle) {
		x, y := int(math.Round(pt.X)), int(math.Round(pt.Y))
		if x < 0 || y < 0 || x >= n || y >= n {
			return
		}
		cx, cy := Cell(core.Cell{X: x, Y: y})
		put(s, cx, cy, "·", base.Foreground(rgb(render.Fade(pt.Color, pt.Life))))
	})

	food := "●"
	if render.FoodPulse(now) < 0.8 {
		food = "•"
	}
	fx, fy := Cell(eng.Food())
	put(s, fx, fy, food, base.Foreground(rgb(render.Food)))

	if pu, ok := eng.PowerUp(); ok {
		if render.PowerUpAlpha(pu.Expiry, now, eng.Config().Params.PowerUpLifetime) >= 1 {
			px, py := Cell(pu.Cell)
			put(s, px, py, "★", base.Foreground(rgb(render.PowerUp)))
		}
	}

	snake := eng.Snake()
	for i := len(snake) - 1; i >= 0; i-- {
		x, y := Cell(snake[i])
		if i == 0 {
			put(s, x, y, "██", base.Foreground(rgb(render.SnakeHead)))
			continue
		}
		put(s, x, y, "▓▓", base.Foreground(rgb(render.SnakeBody)))
	}

	if c, ok := eng.Combo(); ok && c.Opacity > 0 {
		label := render.ComboLabel(c.Count)
		x, y := Cell(c.Anchor)
		x -= len(label)/2 - 1
		put(s, max(x, 1), max(y-1, boardTop+1), label, base.Foreground(rgb(render.Fade(render.Accent, c.Opacity))).Bold(true))
	}

	if p.ShowReadouts {
		p.drawReadouts(s, n, eng.Readouts())
	}

	switch ctl.State() {
	case session.Paused:
		p.drawBox(s, n, []string{"PAUSED", "SPACE TO RESUME"})
	case session.GameOver:
		lines := []string{"CORE RUPTURE", fmt.Sprintf("TERMINAL YIELD %d", ctl.FinalScore()), ctl.FlavorText()}
		if ctl.Rejected() {
			lines = append(lines, "SCORE NOT RECORDED")
		}
		if board := ctl.Leaderboard(); len(board) > 0 {
			lines = append(lines, "", "TOP PILOTS")
			for i, e := range board {
				lines = append(lines, fmt.Sprintf("%2d. %-15s %6d", i+1, e.Name, e.Score))
			}
		}
		lines = append(lines, "", "ENTER: RE-LINK")
		p.drawBox(s, n, lines)
	case session.Start, session.Playing:
	}
}

func (p *Painter) drawStatus(s Surface, ctl *session.Controller) {
	status := fmt.Sprintf(" GRID_SCORE %d   MAX_EFFICIENCY %d   PILOT %s", ctl.Score(), ctl.HighScore(), ctl.Name())
	put(s, 0, 0, status, base.Foreground(rgb(render.Accent)).Bold(true))
}

func (p *Painter) drawBorder(s Surface, n int) {
	st := base.Foreground(rgb(render.Fade(render.Accent, 0.5)))
	right := boardLeft + 1 + n*cellWidth
	bottom := boardTop + 1 + n
	for x := boardLeft + 1; x < right; x++ {
		s.SetContent(x, boardTop, '─', nil, st)
		s.SetContent(x, bottom, '─', nil, st)
	}
	for y := boardTop + 1; y < bottom; y++ {
		s.SetContent(boardLeft, y, '│', nil, st)
		s.SetContent(right, y, '│', nil, st)
	}
	s.SetContent(boardLeft, boardTop, '┌', nil, st)
	s.SetContent(right, boardTop, '┐', nil, st)
	s.SetContent(boardLeft, bottom, '└', nil, st)
	s.SetContent(right, bottom, '┘', nil, st)
}

func (p *Painter) drawReadouts(s Surface, n int, groups []core.ReadoutGroup) {
	x := boardLeft + 3 + n*cellWidth
	y := boardTop + 1
	for _, g := range groups {
		put(s, x, y, g.Name, base.Foreground(rgb(render.Accent)))
		y++
		for _, r := range g.Readouts {
			put(s, x+1, y, fmt.Sprintf("%-10s %s", r.Label, r.Value), base)
			y++
		}
	}
}

// drawBox centres lines over the board on a cleared panel.
func (p *Painter) drawBox(s Surface, n int, lines []string) {
	width := 0
	for _, l := range lines {
		width = max(width, len([]rune(l)))
	}
	width += 4
	boardW := n*cellWidth + 2
	x0 := boardLeft + max((boardW-width)/2, 0)
	y0 := boardTop + max((n+2-len(lines)-2)/2, 0)
	fill(s, x0, y0, width, len(lines)+2, base)
	for i, l := range lines {
		lx := x0 + (width-len([]rune(l)))/2
		put(s, lx, y0+1+i, l, base.Foreground(tcell.ColorWhite))
	}
}

func fill(s Surface, x0, y0, w, h int, st tcell.Style) {
	for y := y0; y < y0+h; y++ {
		for x := x0; x < x0+w; x++ {
			s.SetContent(x, y, ' ', nil, st)
		}
	}
}

func put(s Surface, x, y int, text string, st tcell.Style) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, st)
		x++
	}
}
