package config

import (
	_ "embed"
)

// Variant IDs with embedded defaults.
const (
	VariantClassic = "classic"
	VariantCourse  = "course"
	VariantShrooms = "shrooms"
)

//go:embed defaults/classic.yaml
var defaultClassicYAML []byte

//go:embed defaults/course.yaml
var defaultCourseYAML []byte

//go:embed defaults/shrooms.yaml
var defaultShroomsYAML []byte

// DefaultCourseConstants returns the constants of the scrolling obstacle course.
func DefaultCourseConstants() GameConstants {
	return GameConstants{
		Clock: ClockConfig{
			MaxDeltaMs:   100,
			GameTimeRate: 0.004,
		},
		Spring: SpringConfig{
			StiffnessS:    1,
			StiffnessT:    1,
			Center:        0,
			DampingLow:    -0.2,
			DampingHigh:   0.6,
			InitialOffset: 0.1,
		},
		Area: AreaConfig{
			Width:         160,
			Height:        90,
			LaneCenterX:   80,
			PositionScale: 80,
			LeftWall:      8,
			RightWall:     152,
		},
		Entity: EntityConfig{
			Y:          75,
			HalfWidth:  1.5,
			HalfHeight: 1.5,
		},
		Scroll: ScrollConfig{
			Velocity:  10,
			ScoreRate: 10,
		},
		Obstacles: ObstacleConfig{
			Period:       1.5,
			SpawnRange:   120,
			Width:        12,
			Height:       4,
			LeadDistance: 5,
		},
		Start: StartOnPress,
		Shape: ShapeRect,
	}
}

// DefaultShroomsConstants returns the course with round obstacles.
func DefaultShroomsConstants() GameConstants {
	c := DefaultCourseConstants()
	c.Obstacles.Width = 8
	c.Obstacles.Height = 8
	c.Obstacles.Period = 1.2
	c.Shape = ShapeCircle
	return c
}

// DefaultClassicConstants returns the constants of the plain swing variant:
// hold to start, no obstacles, walls at the edges of the game area.
func DefaultClassicConstants() GameConstants {
	c := DefaultCourseConstants()
	c.Area.LeftWall = 0
	c.Area.RightWall = 160
	c.Scroll.Velocity = 0
	c.Obstacles.Period = 0
	c.Start = StartOnHold
	c.Shape = ShapeCircle
	return c
}

// DefaultConstants returns the hardcoded constants for a variant.
// Unknown variants get the course constants.
func DefaultConstants(variant string) GameConstants {
	switch variant {
	case VariantClassic:
		return DefaultClassicConstants()
	case VariantShrooms:
		return DefaultShroomsConstants()
	default:
		return DefaultCourseConstants()
	}
}

// GetDefaultYAML returns the embedded default YAML for a variant.
func GetDefaultYAML(variant string) []byte {
	switch variant {
	case VariantClassic:
		return defaultClassicYAML
	case VariantCourse:
		return defaultCourseYAML
	case VariantShrooms:
		return defaultShroomsYAML
	default:
		return nil
	}
}
