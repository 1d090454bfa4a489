package sim

import "github.com/vovakirdan/oscillator/internal/config"

// StepInfo describes what happened during one Session.Advance call.
type StepInfo struct {
	DeltaMs   float64   // Clamped wall-clock delta used this frame
	Clamped   bool      // Whether the raw delta was outside [0, MaxDeltaMs]
	Started   bool      // A run started this frame (hold-start variants)
	Ended     bool      // A run ended this frame
	Hit       Collision // The collision that ended the run, if any
	FinalMode Mode
}

// Session owns one player's clock, mode, held input and random source.
// Hosts call Press/Release on input edges and Advance once per frame.
// A Session is not safe for concurrent use.
type Session struct {
	consts config.GameConstants
	clock  Clock
	mode   Mode
	held   bool
	rng    RandomSource
}

// NewSession creates a session in the initial menu mode.
func NewSession(c config.GameConstants, rng RandomSource) *Session {
	return &Session{
		consts: c,
		mode:   InitialMode(),
		rng:    rng,
	}
}

// Constants returns the session's constants.
func (s *Session) Constants() config.GameConstants { return s.consts }

// Clock returns the current clock.
func (s *Session) Clock() Clock { return s.clock }

// Mode returns the current mode.
func (s *Session) Mode() Mode { return s.mode }

// Held reports whether input is currently held.
func (s *Session) Held() bool { return s.held }

// Press marks input as held and delivers the press edge.
// It returns true if the press started a new run.
func (s *Session) Press() bool {
	s.held = true
	_, wasMenu := s.mode.(Menu)
	s.clock, s.mode = OnInputPressed(s.consts, s.clock, s.mode)
	_, nowPlaying := s.mode.(Playing)
	return wasMenu && nowPlaying
}

// Release marks input as released and delivers the release edge.
func (s *Session) Release() {
	s.held = false
	s.clock, s.mode = OnInputReleased(s.consts, s.clock, s.mode)
}

// Advance runs one frame at the given wall-clock timestamp.
func (s *Session) Advance(timestampMs float64) StepInfo {
	deltaMs, clamped := ClockDelta(s.consts, s.clock, timestampMs)
	_, wasPlaying := s.mode.(Playing)

	var hit Collision
	s.clock, s.mode, hit = advance(s.consts, s.clock, s.mode, timestampMs, s.held, s.rng)
	_, nowPlaying := s.mode.(Playing)

	return StepInfo{
		DeltaMs:   deltaMs,
		Clamped:   clamped,
		Started:   !wasPlaying && nowPlaying,
		Ended:     wasPlaying && !nowPlaying,
		Hit:       hit,
		FinalMode: s.mode,
	}
}

// Snapshot returns a read-only view of the session for rendering.
func (s *Session) Snapshot() Snapshot {
	return NewSnapshot(s.consts, s.mode, s.held)
}
