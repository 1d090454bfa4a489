package oscillator

import (
	"strings"
	"testing"

	"github.com/vovakirdan/oscillator/internal/config"
	"github.com/vovakirdan/oscillator/internal/core"
	"github.com/vovakirdan/oscillator/internal/sim"
)

// unitScreen gives a one-cell-per-unit play area for the 160x90 defaults:
// HUD on row 0, frame from row 1, interior starting at (1, 2).
func unitScreen() *core.Screen {
	return core.NewScreen(162, 93)
}

func screenContains(s *core.Screen, text string) bool {
	return strings.Contains(s.String(), text)
}

func TestRenderMenu(t *testing.T) {
	c := config.DefaultCourseConstants()
	s := unitScreen()

	RenderSnapshot(s, c, "Oscillator Course", sim.Snapshot{Mode: sim.ModeMenu})
	if !screenContains(s, "OSCILLATOR COURSE") {
		t.Error("menu should show the title")
	}
	if !screenContains(s, "press space or click to start") {
		t.Error("press-start variant should show the press prompt")
	}
	if screenContains(s, "LAST SCORE") {
		t.Error("menu should not show a last score before any run")
	}

	RenderSnapshot(s, c, "Oscillator Course", sim.Snapshot{Mode: sim.ModeMenu, LastScore: 42, HasLastScore: true})
	if !screenContains(s, "LAST SCORE 00042") {
		t.Error("menu should show the zero-padded last score")
	}

	classic := config.DefaultClassicConstants()
	RenderSnapshot(s, classic, "Oscillator Classic", sim.Snapshot{Mode: sim.ModeMenu})
	if !screenContains(s, "hold space or the mouse button to start") {
		t.Error("hold-start variant should show the hold prompt")
	}
}

func TestRenderPlaying(t *testing.T) {
	c := config.DefaultCourseConstants()
	s := unitScreen()

	snap := sim.NewSnapshot(c, sim.Playing{
		Oscillator:   sim.OscillatorState{Position: 0.1},
		ScrollOffset: 20,
		Score:        7,
		Obstacles:    []sim.Obstacle{{X: 40, Y: 10, Width: 12, Height: 4}},
	}, true)
	RenderSnapshot(s, c, "Oscillator Course", snap)

	// Ball at x = 80 + 80*0.1 = 88, y = 75
	ball := s.GetCell(1+88, 2+75)
	if ball.Rune != BallChar || ball.Color != core.ColorBallHeld {
		t.Errorf("ball cell = %+v, expected held ball", ball)
	}

	// Obstacle centered at (40, 10+20) spans x 34..46 and y 28..32
	if got := s.GetCell(1+40, 2+30); got.Rune != ObstacleChar {
		t.Errorf("obstacle center cell = %+v", got)
	}
	if got := s.Get(1+30, 2+30); got == ObstacleChar {
		t.Error("obstacle drawn outside its width")
	}

	if got := s.Get(1+8, 2+5); got != WallChar {
		t.Errorf("left wall cell = %q, expected %q", got, WallChar)
	}

	if !strings.Contains(s.Row(0), "SCORE 00007") {
		t.Errorf("HUD row = %q, expected the padded score", s.Row(0))
	}
	if !strings.Contains(s.Row(0), "[HOLD]") {
		t.Error("HUD should show the held indicator")
	}
}

func TestRenderCircleObstacle(t *testing.T) {
	c := config.DefaultShroomsConstants()
	s := unitScreen()

	snap := sim.NewSnapshot(c, sim.Playing{
		Obstacles: []sim.Obstacle{{X: 50, Y: 40, Width: 8, Height: 8}},
	}, false)
	RenderSnapshot(s, c, "Oscillator Shrooms", snap)

	if got := s.Get(1+50, 2+40); got != ShroomChar {
		t.Errorf("circle center = %q, expected %q", got, ShroomChar)
	}
	// Bounding box corner lies outside the circle
	if got := s.Get(1+46, 2+36); got == ShroomChar {
		t.Error("circle should not fill its bounding box corners")
	}
}

func TestRenderTinyScreen(t *testing.T) {
	s := core.NewScreen(3, 2)
	RenderSnapshot(s, config.DefaultCourseConstants(), "x", sim.Snapshot{Mode: sim.ModePlaying})
	if strings.TrimSpace(strings.ReplaceAll(s.String(), "\n", "")) != "" {
		t.Error("screens too small for a frame should stay blank")
	}
}

func TestPausedOverlay(t *testing.T) {
	g := newCourse(1)
	g.Step(frame(16, core.ActionPress))
	g.Step(frame(32, core.ActionPause))

	s := core.NewScreen(80, 24)
	g.Render(s)
	if !screenContains(s, "PAUSED") {
		t.Error("paused game should render the pause overlay")
	}
}
