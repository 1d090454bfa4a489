// Package config provides YAML-based game constants loading and difficulty
// presets for the oscillator variants.
package config

import (
	"errors"
	"fmt"
)

// StartTrigger selects how a run starts from the menu.
type StartTrigger string

const (
	// StartOnPress starts a run on a discrete press event.
	StartOnPress StartTrigger = "press"
	// StartOnHold starts a run on any frame where input is held.
	StartOnHold StartTrigger = "hold"
)

// Shape selects the collision geometry used for obstacles and the ball.
type Shape string

const (
	ShapeRect   Shape = "rect"
	ShapeCircle Shape = "circle"
)

// GameConstants contains every tunable of a variant.
// Values are fixed for the lifetime of a session.
type GameConstants struct {
	Clock     ClockConfig    `yaml:"clock"`
	Spring    SpringConfig   `yaml:"spring"`
	Area      AreaConfig     `yaml:"area"`
	Entity    EntityConfig   `yaml:"entity"`
	Scroll    ScrollConfig   `yaml:"scroll"`
	Obstacles ObstacleConfig `yaml:"obstacles"`
	Start     StartTrigger   `yaml:"start"`
	Shape     Shape          `yaml:"shape"`
}

// ClockConfig defines how wall-clock time is turned into game time.
type ClockConfig struct {
	MaxDeltaMs   float64 `yaml:"max_delta_ms"`   // Largest per-frame wall-clock delta
	GameTimeRate float64 `yaml:"game_time_rate"` // Game seconds per wall-clock millisecond
}

// SpringConfig defines the damped oscillator.
type SpringConfig struct {
	StiffnessS    float64 `yaml:"stiffness_s"` // Position gain on velocity
	StiffnessT    float64 `yaml:"stiffness_t"` // Restoring force gain
	Center        float64 `yaml:"center"`
	DampingLow    float64 `yaml:"damping_low"`  // Used while input is released
	DampingHigh   float64 `yaml:"damping_high"` // Used while input is held
	InitialOffset float64 `yaml:"initial_offset"`
}

// AreaConfig defines the visible game area and the lane.
type AreaConfig struct {
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	LaneCenterX   float64 `yaml:"lane_center_x"`
	PositionScale float64 `yaml:"position_scale"` // Game units per unit of oscillator displacement
	LeftWall      float64 `yaml:"left_wall"`      // Right edge of the left wall
	RightWall     float64 `yaml:"right_wall"`     // Left edge of the right wall
}

// EntityConfig defines the controlled ball.
type EntityConfig struct {
	Y          float64 `yaml:"y"`
	HalfWidth  float64 `yaml:"half_width"`
	HalfHeight float64 `yaml:"half_height"`
}

// ScrollConfig defines scrolling and scoring rates.
type ScrollConfig struct {
	Velocity  float64 `yaml:"velocity"`   // Game units per game second
	ScoreRate float64 `yaml:"score_rate"` // Points per game second
}

// ObstacleConfig defines obstacle spawning.
type ObstacleConfig struct {
	Period       float64 `yaml:"period"`        // Mean game seconds between spawns, <= 0 disables
	SpawnRange   float64 `yaml:"spawn_range"`   // Horizontal range centered on the lane
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	LeadDistance float64 `yaml:"lead_distance"` // Spawn distance above the visible top edge
}

// EntityX converts an oscillator position into a game-space x coordinate.
func (c GameConstants) EntityX(position float64) float64 {
	return c.Area.LaneCenterX + c.Area.PositionScale*position
}

// Validate reports configuration errors that would make the simulation meaningless.
func (c GameConstants) Validate() error {
	var errs []error

	if c.Area.Width <= 0 || c.Area.Height <= 0 {
		errs = append(errs, fmt.Errorf("area must be positive, got %gx%g", c.Area.Width, c.Area.Height))
	}
	if c.Area.LeftWall >= c.Area.RightWall {
		errs = append(errs, fmt.Errorf("left wall %g must be left of right wall %g", c.Area.LeftWall, c.Area.RightWall))
	}
	if c.Clock.MaxDeltaMs < 0 {
		errs = append(errs, fmt.Errorf("clock.max_delta_ms must not be negative, got %g", c.Clock.MaxDeltaMs))
	}
	if c.Clock.GameTimeRate <= 0 {
		errs = append(errs, fmt.Errorf("clock.game_time_rate must be positive, got %g", c.Clock.GameTimeRate))
	}
	if c.Entity.HalfWidth < 0 || c.Entity.HalfHeight < 0 {
		errs = append(errs, errors.New("entity extents must not be negative"))
	}
	if c.Obstacles.Width < 0 || c.Obstacles.Height < 0 {
		errs = append(errs, errors.New("obstacle extents must not be negative"))
	}

	switch c.Start {
	case StartOnPress, StartOnHold:
	default:
		errs = append(errs, fmt.Errorf("unknown start trigger %q", c.Start))
	}

	switch c.Shape {
	case ShapeRect, ShapeCircle:
	default:
		errs = append(errs, fmt.Errorf("unknown shape %q", c.Shape))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid constants: %w", errors.Join(errs...))
	}
	return nil
}
