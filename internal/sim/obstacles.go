package sim

import "github.com/vovakirdan/oscillator/internal/config"

// Obstacle is a scrolling hazard centered at (X, Y) in game space.
// Its on-screen y is Y + ScrollOffset.
type Obstacle struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// HalfWidth returns half the obstacle width (its radius in circle variants).
func (o Obstacle) HalfWidth() float64 { return o.Width / 2 }

// HalfHeight returns half the obstacle height.
func (o Obstacle) HalfHeight() float64 { return o.Height / 2 }

// ScreenY returns the obstacle's scrolled y position.
func (o Obstacle) ScreenY(scrollOffset float64) float64 {
	return o.Y + scrollOffset
}

// RandomSource supplies uniform samples in [0, 1).
// *math/rand.Rand satisfies it.
type RandomSource interface {
	Float64() float64
}

// pruneObstacles returns the obstacles that have not yet scrolled past the
// bottom of the game area, in their original order. The input is not modified.
func pruneObstacles(obstacles []Obstacle, scrollOffset, areaHeight float64, extra int) []Obstacle {
	kept := make([]Obstacle, 0, len(obstacles)+extra)
	for _, o := range obstacles {
		if scrollOffset+o.Y-o.HalfHeight() > areaHeight {
			continue
		}
		kept = append(kept, o)
	}
	return kept
}

// spawnObstacle rolls for a new obstacle. One roll is drawn per call while
// spawning is enabled, so the expected rate is one obstacle per period.
func spawnObstacle(c config.GameConstants, scrollOffset, dt float64, rng RandomSource) (Obstacle, bool) {
	if c.Obstacles.Period <= 0 || rng == nil {
		return Obstacle{}, false
	}
	if rng.Float64()*c.Obstacles.Period >= dt {
		return Obstacle{}, false
	}

	x := c.Area.LaneCenterX + (rng.Float64()-0.5)*c.Obstacles.SpawnRange
	return Obstacle{
		X:      x,
		Y:      -scrollOffset - c.Obstacles.LeadDistance,
		Width:  c.Obstacles.Width,
		Height: c.Obstacles.Height,
	}, true
}
