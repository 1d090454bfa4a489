package sim

import (
	"math"

	"github.com/vovakirdan/oscillator/internal/config"
)

// ClockDelta returns the wall-clock delta for a frame, clamped to
// [0, MaxDeltaMs], and whether clamping changed it.
func ClockDelta(c config.GameConstants, clock Clock, timestampMs float64) (deltaMs float64, clamped bool) {
	raw := timestampMs - clock.LastTimestampMs
	deltaMs = math.Max(0, math.Min(c.Clock.MaxDeltaMs, raw))
	// NaN timestamps fall through both comparisons; treat them as no time passing
	if math.IsNaN(deltaMs) {
		return 0, true
	}
	return deltaMs, deltaMs != raw
}

// Advance runs one frame of the state machine and returns the next clock and mode.
// Neither argument is modified. A run that collides this frame returns Menu
// carrying the run's score.
func Advance(c config.GameConstants, clock Clock, mode Mode, timestampMs float64, inputActive bool, rng RandomSource) (Clock, Mode) {
	next, mode, _ := advance(c, clock, mode, timestampMs, inputActive, rng)
	return next, mode
}

// advance is Advance plus the frame's collision result.
func advance(c config.GameConstants, clock Clock, mode Mode, timestampMs float64, inputActive bool, rng RandomSource) (Clock, Mode, Collision) {
	deltaMs, _ := ClockDelta(c, clock, timestampMs)
	dt := deltaMs * c.Clock.GameTimeRate

	next := Clock{
		LastTimestampMs:  timestampMs,
		TotalGameTimeSec: clock.TotalGameTimeSec + dt,
	}

	switch m := mode.(type) {
	case Playing:
		p, hit := stepPlaying(c, m, clock.TotalGameTimeSec, dt, inputActive, rng)
		if hit.Fatal() {
			return next, Menu{LastScore: p.Score, HasLastScore: true}, hit
		}
		return next, p, hit

	case Menu:
		if c.Start == config.StartOnHold && inputActive {
			// The starting frame does not count towards the new run
			next.TotalGameTimeSec = 0
			return next, newPlaying(c), Collision{}
		}
		return next, m, Collision{}

	default:
		return next, mode, Collision{}
	}
}

// stepPlaying computes the next Playing state from the game time at the
// start of the frame and the frame's game-time delta.
func stepPlaying(c config.GameConstants, p Playing, totalSec, dt float64, inputActive bool, rng RandomSource) (Playing, Collision) {
	// Scroll and score derive from elapsed game time, not accumulated deltas
	scroll := c.Scroll.Velocity * totalSec
	score := uint(math.Round(c.Scroll.ScoreRate * totalSec))

	osc := Step(p.Oscillator, dt, Damping(c.Spring, inputActive), c.Spring)

	obstacles := pruneObstacles(p.Obstacles, scroll, c.Area.Height, 1)
	if o, ok := spawnObstacle(c, scroll, dt, rng); ok {
		obstacles = append(obstacles, o)
	}

	next := Playing{
		Oscillator:   osc,
		ScrollOffset: scroll,
		Score:        score,
		Obstacles:    obstacles,
	}
	return next, DetectCollision(c, next)
}

// OnInputPressed handles a discrete press. From Menu it starts a fresh run
// and resets game time; while Playing it changes nothing.
func OnInputPressed(c config.GameConstants, clock Clock, mode Mode) (Clock, Mode) {
	if _, ok := mode.(Menu); !ok {
		return clock, mode
	}
	return Clock{LastTimestampMs: clock.LastTimestampMs}, newPlaying(c)
}

// OnInputReleased handles a discrete release. Releasing never changes
// the mode; damping follows the held flag the host passes to Advance.
func OnInputReleased(_ config.GameConstants, clock Clock, mode Mode) (Clock, Mode) {
	return clock, mode
}
