package core

// RuntimeConfig contains host settings passed to a variant at creation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Host frames per second (default 60)
	Seed     int64 // RNG seed for obstacle spawning
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState is the host-facing summary of a session.
type GameState struct {
	InMenu       bool // Menu mode: waiting for a start trigger
	Score        uint // Current score while playing
	LastScore    uint // Score of the previous run
	HasLastScore bool // Whether a run has finished this session
	Held         bool // Input currently held
	Paused       bool // Host-side pause, the session is not advanced
}

// StepResult is returned by Game.Step after each frame.
type StepResult struct {
	State   GameState
	Started bool    // A run started this frame
	Ended   bool    // A run ended this frame
	Clamped bool    // The frame delta was clamped
	DeltaMs float64 // Delta actually applied, in milliseconds
	Cause   string  // What ended the run ("left-wall", "obstacle", ...)
}
