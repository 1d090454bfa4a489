// Package oscillator adapts a sim.Session to the registry.Game interface and
// registers the built-in variants. The ball swings across a scrolling lane;
// holding input damps the swing, releasing it lets the swing grow.
package oscillator

import (
	"math/rand"

	"github.com/vovakirdan/oscillator/internal/config"
	"github.com/vovakirdan/oscillator/internal/core"
	"github.com/vovakirdan/oscillator/internal/sim"
)

// FrameRecorder receives every frame that was applied to the session,
// in the order the session saw it.
type FrameRecorder interface {
	Record(timestampMs float64, pressed, released bool)
}

// Game drives one session from host input frames.
type Game struct {
	id      string
	title   string
	consts  config.GameConstants
	session *sim.Session
	config  core.RuntimeConfig

	paused   bool
	pending  core.Action // Last edge seen while paused, applied on resume
	recorder FrameRecorder
}

// New creates a game for the given variant and constants.
// Call Reset before the first Step.
func New(id, title string, c config.GameConstants) *Game {
	g := &Game{id: id, title: title, consts: c}
	g.Reset(core.DefaultConfig())
	return g
}

// ID returns the variant identifier.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name of the variant.
func (g *Game) Title() string {
	return g.title
}

// Constants returns the constants the game was created with.
func (g *Game) Constants() config.GameConstants {
	return g.consts
}

// SetRecorder attaches a recorder; nil detaches it.
func (g *Game) SetRecorder(r FrameRecorder) {
	g.recorder = r
}

// Reset starts a fresh session in the menu, seeded from cfg.Seed.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.config = cfg
	g.session = sim.NewSession(g.consts, rand.New(rand.NewSource(cfg.Seed)))
	g.paused = false
	g.pending = core.ActionNone
}

// Step applies the frame's input edges and advances the session.
// A press is applied before a release so a tap shorter than one frame
// still starts a press-triggered run.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	_, playing := g.session.Mode().(sim.Playing)
	if in.Has(core.ActionPause) && playing {
		g.paused = !g.paused
	}

	pressed := in.Has(core.ActionPress)
	released := in.Has(core.ActionRelease)

	if g.paused {
		switch {
		case released:
			g.pending = core.ActionRelease
		case pressed:
			g.pending = core.ActionPress
		}
		return core.StepResult{State: g.State()}
	}

	switch g.pending {
	case core.ActionPress:
		pressed = true
	case core.ActionRelease:
		released = released || !pressed
	}
	g.pending = core.ActionNone

	started := false
	if pressed {
		started = g.session.Press()
	}
	if released {
		g.session.Release()
	}

	info := g.session.Advance(in.TimestampMs)
	if g.recorder != nil {
		g.recorder.Record(in.TimestampMs, pressed, released)
	}

	result := core.StepResult{
		State:   g.State(),
		Started: started || info.Started,
		Ended:   info.Ended,
		Clamped: info.Clamped,
		DeltaMs: info.DeltaMs,
	}
	if info.Ended {
		result.Cause = info.Hit.Kind.String()
	}
	return result
}

// Snapshot returns a render-ready copy of the session.
func (g *Game) Snapshot() sim.Snapshot {
	return g.session.Snapshot()
}

// Render draws the current session state to the screen.
func (g *Game) Render(dst *core.Screen) {
	RenderSnapshot(dst, g.consts, g.title, g.session.Snapshot())
	if g.paused {
		drawCenteredMessage(dst, "PAUSED", "p resume  ·  b back  ·  q quit")
	}
}

// State returns the current host-facing state.
func (g *Game) State() core.GameState {
	snap := g.session.Snapshot()
	return core.GameState{
		InMenu:       snap.Mode == sim.ModeMenu,
		Score:        snap.Score,
		LastScore:    snap.LastScore,
		HasLastScore: snap.HasLastScore,
		Held:         snap.InputActive,
		Paused:       g.paused,
	}
}
