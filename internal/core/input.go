package core

// Action is a semantic input intent, abstracted from physical keys and mouse buttons.
type Action int

const (
	ActionNone    Action = iota
	ActionPress          // Input went down (mouse press, space down)
	ActionRelease        // Input went up
	ActionPause          // P - pause/unpause the run
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionPress:
		return "Press"
	case ActionRelease:
		return "Release"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// InputFrame is everything the host collected for one frame.
type InputFrame struct {
	// TimestampMs is the host's monotonic frame timestamp in milliseconds.
	TimestampMs float64

	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame for the given timestamp.
func NewInputFrame(timestampMs float64) InputFrame {
	return InputFrame{
		TimestampMs: timestampMs,
		Actions:     make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}
