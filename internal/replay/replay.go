// Package replay records the input a session received and re-simulates it.
// A recording holds the RNG seed, the constants and every applied frame,
// which is enough to reproduce the session exactly.
package replay

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/oscillator/internal/config"
)

// ErrEmpty is returned when a recording has no frames.
var ErrEmpty = errors.New("replay: recording has no frames")

// Frame is one frame applied to a session: the input edges delivered
// before Advance and the timestamp passed to it.
type Frame struct {
	TimestampMs float64
	Pressed     bool
	Released    bool
}

// Recording is a complete, replayable session.
type Recording struct {
	ID        int64 // Zero until stored
	Variant   string
	Seed      int64
	Constants config.GameConstants
	Frames    []Frame
	CreatedAt time.Time
}

// Duration returns the wall-clock span covered by the frames.
func (r Recording) Duration() time.Duration {
	if len(r.Frames) < 2 {
		return 0
	}
	ms := r.Frames[len(r.Frames)-1].TimestampMs - r.Frames[0].TimestampMs
	return time.Duration(ms * float64(time.Millisecond))
}

// Validate checks that the recording can be replayed.
func (r Recording) Validate() error {
	if r.Variant == "" {
		return errors.New("replay: recording has no variant")
	}
	if len(r.Frames) == 0 {
		return ErrEmpty
	}
	if err := r.Constants.Validate(); err != nil {
		return fmt.Errorf("replay: %w", err)
	}
	return nil
}

// Recorder collects frames from a live game.
// It is not safe for concurrent use.
type Recorder struct {
	rec Recording
}

// NewRecorder starts a recording for a session created with the given seed and constants.
func NewRecorder(variant string, seed int64, c config.GameConstants) *Recorder {
	return &Recorder{rec: Recording{
		Variant:   variant,
		Seed:      seed,
		Constants: c,
	}}
}

// Record appends one applied frame.
func (r *Recorder) Record(timestampMs float64, pressed, released bool) {
	r.rec.Frames = append(r.rec.Frames, Frame{
		TimestampMs: timestampMs,
		Pressed:     pressed,
		Released:    released,
	})
}

// Len returns the number of recorded frames.
func (r *Recorder) Len() int {
	return len(r.rec.Frames)
}

// Recording returns a copy of what has been recorded so far.
func (r *Recorder) Recording() Recording {
	out := r.rec
	out.Frames = make([]Frame, len(r.rec.Frames))
	copy(out.Frames, r.rec.Frames)
	out.CreatedAt = time.Now()
	return out
}
