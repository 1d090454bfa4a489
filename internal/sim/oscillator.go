// Package sim implements the oscillator simulation core: the damped spring
// integrator, the menu/playing state machine, obstacle spawning and pruning,
// and collision detection. It has no terminal or I/O dependencies.
package sim

import "github.com/vovakirdan/oscillator/internal/config"

// OscillatorState is the ball's displacement from the lane center and its velocity.
type OscillatorState struct {
	Position float64
	Velocity float64
}

// Step advances the oscillator by dt game seconds using explicit Euler.
// Both updates read the state from the start of the step; position is
// written first, then velocity from the old position.
func Step(s OscillatorState, dt, damping float64, spring config.SpringConfig) OscillatorState {
	return OscillatorState{
		Position: s.Position + spring.StiffnessS*s.Velocity*dt,
		Velocity: s.Velocity -
			spring.StiffnessT*(s.Position-spring.Center)*dt -
			damping*s.Velocity*dt,
	}
}

// Damping returns the damping coefficient for the current input state.
func Damping(spring config.SpringConfig, inputActive bool) float64 {
	if inputActive {
		return spring.DampingHigh
	}
	return spring.DampingLow
}
