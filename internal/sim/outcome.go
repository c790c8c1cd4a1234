package sim

import "fmt"

// OutcomeKind tags the result of a single Tick.
type OutcomeKind uint8

const (
	// Continued is a normal move: nothing was captured.
	Continued OutcomeKind = iota
	// FoodCaptured means the head reached the food cell.
	FoodCaptured
	// PowerUpCaptured means the head reached the live power-up.
	PowerUpCaptured
	// GameOver means the head left the grid or hit the body.
	GameOver
)

func (k OutcomeKind) String() string {
	switch k {
	case Continued:
		return "continued"
	case FoodCaptured:
		return "food"
	case PowerUpCaptured:
		return "powerup"
	case GameOver:
		return "gameover"
	}
	return fmt.Sprintf("OutcomeKind(%d)", uint8(k))
}

// Outcome is the event produced by Tick. Points is the score gained this
// tick; Score is the total after the tick (the final score for GameOver).
type Outcome struct {
	Kind   OutcomeKind
	Points int
	Score  int
	Combo  int
	At     Cell
}

// ScoreChanged reports whether the tick changed the score.
func (o Outcome) ScoreChanged() bool {
	switch o.Kind {
	case FoodCaptured, PowerUpCaptured:
		return o.Points > 0
	case Continued, GameOver:
		return false
	}
	return false
}
