package sim

import "github.com/vovakirdan/oscillator/internal/config"

// Mode is the session's game mode. It is either Menu or Playing;
// no other type can implement it.
type Mode interface {
	isMode()
}

// Menu is the idle mode between runs.
type Menu struct {
	LastScore    uint // Score of the run that just ended
	HasLastScore bool // False until a run has ended
}

// Playing is an active run.
type Playing struct {
	Oscillator   OscillatorState
	ScrollOffset float64
	Score        uint
	Obstacles    []Obstacle
}

func (Menu) isMode()    {}
func (Playing) isMode() {}

// Clock tracks wall-clock timestamps and accumulated game time.
type Clock struct {
	LastTimestampMs  float64
	TotalGameTimeSec float64
}

// InitialMode returns the mode a new session starts in.
func InitialMode() Mode {
	return Menu{}
}

// newPlaying creates the state of a fresh run.
func newPlaying(c config.GameConstants) Playing {
	return Playing{
		Oscillator: OscillatorState{Position: c.Spring.InitialOffset},
	}
}
