package sim

import (
	"fmt"

	"github.com/vovakirdan/oscillator/internal/config"
)

// ModeKind names the active mode in a snapshot.
type ModeKind string

const (
	ModeMenu    ModeKind = "menu"
	ModePlaying ModeKind = "playing"
)

// Snapshot is a copy of everything a renderer needs.
// Mutating it has no effect on the session.
type Snapshot struct {
	Mode         ModeKind
	LastScore    uint
	HasLastScore bool
	InputActive  bool

	// Playing-only fields; zero in menu mode
	Position     float64
	EntityX      float64
	EntityY      float64
	ScrollOffset float64
	Score        uint
	Obstacles    []Obstacle
}

// NewSnapshot builds a snapshot from a mode.
func NewSnapshot(c config.GameConstants, mode Mode, inputActive bool) Snapshot {
	switch m := mode.(type) {
	case Playing:
		obstacles := make([]Obstacle, len(m.Obstacles))
		copy(obstacles, m.Obstacles)
		return Snapshot{
			Mode:         ModePlaying,
			InputActive:  inputActive,
			Position:     m.Oscillator.Position,
			EntityX:      c.EntityX(m.Oscillator.Position),
			EntityY:      c.Entity.Y,
			ScrollOffset: m.ScrollOffset,
			Score:        m.Score,
			Obstacles:    obstacles,
		}
	case Menu:
		return Snapshot{
			Mode:         ModeMenu,
			LastScore:    m.LastScore,
			HasLastScore: m.HasLastScore,
			InputActive:  inputActive,
		}
	default:
		return Snapshot{Mode: ModeMenu, InputActive: inputActive}
	}
}

// MaxDisplayScore is the largest score FormatScore can show.
const MaxDisplayScore = 99999

// FormatScore renders a score as five zero-padded digits, clamped at 99999.
func FormatScore(score uint) string {
	if score > MaxDisplayScore {
		score = MaxDisplayScore
	}
	return fmt.Sprintf("%05d", score)
}
