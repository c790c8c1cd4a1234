package term

import (
	"github.com/gdamore/tcell/v2"

	"neon-slither/internal/sim"
)

// Action is a decoded key press.
type Action uint8

const (
	None Action = iota
	Steer
	Confirm
	Pause
	Restart
	Readouts
	Quit
)

// Input pairs an action with its direction for Steer.
type Input struct {
	Action    Action
	Direction sim.Direction
}

// Decode maps a key and rune to an input. Arrows and WASD steer; Enter
// starts; Space pauses; r restarts; Tab toggles readouts; q, Esc and
// Ctrl-C quit.
func Decode(key tcell.Key, r rune) Input {
	switch key {
	case tcell.KeyUp:
		return Input{Action: Steer, Direction: sim.Up}
	case tcell.KeyDown:
		return Input{Action: Steer, Direction: sim.Down}
	case tcell.KeyLeft:
		return Input{Action: Steer, Direction: sim.Left}
	case tcell.KeyRight:
		return Input{Action: Steer, Direction: sim.Right}
	case tcell.KeyEnter:
		return Input{Action: Confirm}
	case tcell.KeyTab:
		return Input{Action: Readouts}
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return Input{Action: Quit}
	case tcell.KeyRune:
		return decodeRune(r)
	}
	return Input{}
}

func decodeRune(r rune) Input {
	switch r {
	case 'w', 'W':
		return Input{Action: Steer, Direction: sim.Up}
	case 's', 'S':
		return Input{Action: Steer, Direction: sim.Down}
	case 'a', 'A':
		return Input{Action: Steer, Direction: sim.Left}
	case 'd', 'D':
		return Input{Action: Steer, Direction: sim.Right}
	case ' ':
		return Input{Action: Pause}
	case 'r', 'R':
		return Input{Action: Restart}
	case 'q', 'Q':
		return Input{Action: Quit}
	}
	return Input{}
}
