package sim

import (
	"math"

	"github.com/vovakirdan/oscillator/internal/config"
)

// HitKind describes what ended a run.
type HitKind int

const (
	HitNone HitKind = iota
	HitLeftWall
	HitRightWall
	HitObstacle
)

// String returns a human-readable name for the hit.
func (h HitKind) String() string {
	switch h {
	case HitNone:
		return "none"
	case HitLeftWall:
		return "left wall"
	case HitRightWall:
		return "right wall"
	case HitObstacle:
		return "obstacle"
	default:
		return "unknown"
	}
}

// Collision is the result of a collision check.
type Collision struct {
	Kind     HitKind
	Obstacle int // Index into Playing.Obstacles when Kind is HitObstacle
}

// Fatal reports whether the collision ends the run.
func (c Collision) Fatal() bool {
	return c.Kind != HitNone
}

// DetectCollision checks the ball against the lane walls and then against
// each obstacle in order, stopping at the first hit.
func DetectCollision(c config.GameConstants, p Playing) Collision {
	ex := c.EntityX(p.Oscillator.Position)
	ey := c.Entity.Y
	hw := c.Entity.HalfWidth

	if ex-hw < c.Area.LeftWall {
		return Collision{Kind: HitLeftWall}
	}
	if ex+hw > c.Area.RightWall {
		return Collision{Kind: HitRightWall}
	}

	for i, o := range p.Obstacles {
		oy := o.ScreenY(p.ScrollOffset)
		var hit bool
		switch c.Shape {
		case config.ShapeCircle:
			hit = circlesOverlap(ex, ey, hw, o.X, oy, o.HalfWidth())
		default:
			hit = boxesOverlap(ex, ey, hw, c.Entity.HalfHeight, o.X, oy, o.HalfWidth(), o.HalfHeight())
		}
		if hit {
			return Collision{Kind: HitObstacle, Obstacle: i}
		}
	}
	return Collision{Kind: HitNone}
}

// boxesOverlap tests two centered boxes using per-axis half extents.
// Touching edges do not overlap.
func boxesOverlap(ax, ay, ahw, ahh, bx, by, bhw, bhh float64) bool {
	return math.Abs(ax-bx) < ahw+bhw && math.Abs(ay-by) < ahh+bhh
}

// circlesOverlap tests two circles by center distance.
func circlesOverlap(ax, ay, ar, bx, by, br float64) bool {
	return math.Hypot(ax-bx, ay-by) < ar+br
}
