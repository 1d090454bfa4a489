package oscillator

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/oscillator/internal/config"
	"github.com/vovakirdan/oscillator/internal/core"
	"github.com/vovakirdan/oscillator/internal/sim"
)

// Visual characters for rendering
const (
	BallChar     = '●'
	ObstacleChar = '█'
	ShroomChar   = '◉'
	WallChar     = '║'
	LaneChar     = '┊'
)

// viewport maps game-area coordinates to cells inside the play frame.
// Row 0 is reserved for the HUD.
type viewport struct {
	frame  core.Rect
	inner  core.Rect
	sx, sy float64 // Cells per game unit
}

func newViewport(c config.GameConstants, dst *core.Screen) viewport {
	frame := core.NewRect(0, 1, dst.Width(), dst.Height()-1)
	inner := frame.Inset(1)
	return viewport{
		frame: frame,
		inner: inner,
		sx:    float64(inner.W) / c.Area.Width,
		sy:    float64(inner.H) / c.Area.Height,
	}
}

func (v viewport) col(x float64) int {
	return v.inner.X + int(math.Floor(x*v.sx))
}

func (v viewport) row(y float64) int {
	return v.inner.Y + int(math.Floor(y*v.sy))
}

// box returns the cells covered by a centered box, at least one cell, clipped to the frame.
func (v viewport) box(cx, cy, hw, hh float64) core.Rect {
	x0, x1 := v.col(cx-hw), v.col(cx+hw)
	y0, y1 := v.row(cy-hh), v.row(cy+hh)
	r := core.NewRect(x0, y0, max(x1-x0, 1), max(y1-y0, 1))
	return r.Clip(v.inner)
}

// RenderSnapshot draws a snapshot of any session into dst.
// Replay playback uses it directly; Game.Render wraps it.
func RenderSnapshot(dst *core.Screen, c config.GameConstants, title string, snap sim.Snapshot) {
	dst.Clear()
	if dst.Width() < 4 || dst.Height() < 4 {
		return
	}

	v := newViewport(c, dst)
	dst.DrawBox(v.frame, core.ColorBorder)

	if snap.Mode == sim.ModeMenu {
		renderMenu(dst, c, v, title, snap)
		return
	}

	renderLane(dst, c, v)
	for _, o := range snap.Obstacles {
		renderObstacle(dst, c, v, o, snap.ScrollOffset)
	}

	ballColor := core.ColorBall
	if snap.InputActive {
		ballColor = core.ColorBallHeld
	}
	bx, by := v.col(snap.EntityX), v.row(snap.EntityY)
	if v.inner.Contains(bx, by) {
		dst.SetColored(bx, by, BallChar, ballColor)
	}

	renderHUD(dst, title, "SCORE "+sim.FormatScore(snap.Score), snap.InputActive)
}

func renderLane(dst *core.Screen, c config.GameConstants, v viewport) {
	if x := v.col(c.Area.LaneCenterX); v.inner.Contains(x, v.inner.Y) {
		dst.DrawVLine(x, v.inner.Y, v.inner.H, LaneChar, core.ColorLane)
	}
	for _, wall := range []float64{c.Area.LeftWall, c.Area.RightWall} {
		x := v.col(wall)
		if wall <= 0 || wall >= c.Area.Width || !v.inner.Contains(x, v.inner.Y) {
			continue
		}
		dst.DrawVLine(x, v.inner.Y, v.inner.H, WallChar, core.ColorWall)
	}
}

func renderObstacle(dst *core.Screen, c config.GameConstants, v viewport, o sim.Obstacle, scroll float64) {
	cy := o.ScreenY(scroll)
	r := v.box(o.X, cy, o.HalfWidth(), o.HalfHeight())
	if r.Empty() {
		return
	}

	if c.Shape != config.ShapeCircle {
		dst.DrawRect(r, ObstacleChar, core.ColorObstacle)
		return
	}

	drawn := false
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			gx := (float64(x-v.inner.X)+0.5)/v.sx - o.X
			gy := (float64(y-v.inner.Y)+0.5)/v.sy - cy
			if sq(gx/o.HalfWidth())+sq(gy/o.HalfHeight()) <= 1 {
				dst.SetColored(x, y, ShroomChar, core.ColorShroom)
				drawn = true
			}
		}
	}
	if !drawn {
		// Smaller than a cell; still show it
		cx, cyCell := v.col(o.X), v.row(cy)
		if v.inner.Contains(cx, cyCell) {
			dst.SetColored(cx, cyCell, ShroomChar, core.ColorShroom)
		}
	}
}

func renderMenu(dst *core.Screen, c config.GameConstants, v viewport, title string, snap sim.Snapshot) {
	top := v.inner.Y + v.inner.H/3
	dst.DrawTextCentered(top, strings.ToUpper(title), core.ColorTitle)

	if snap.HasLastScore {
		dst.DrawTextCentered(top+2, "LAST SCORE "+sim.FormatScore(snap.LastScore), core.ColorHUD)
	}

	prompt := "press space or click to start"
	if c.Start == config.StartOnHold {
		prompt = "hold space or the mouse button to start"
	}
	dst.DrawTextCentered(top+4, prompt, core.ColorDefault)
	dst.DrawTextCentered(top+6, "hold to calm the swing  ·  let go and it grows", core.ColorMuted)

	renderHUD(dst, title, "", snap.InputActive)
}

func renderHUD(dst *core.Screen, title, right string, held bool) {
	dst.DrawTextColored(1, 0, title, core.ColorTitle)
	if held {
		dst.DrawTextColored(len([]rune(title))+2, 0, "[HOLD]", core.ColorBallHeld)
	}
	if right != "" {
		dst.DrawTextColored(dst.Width()-len(right)-1, 0, right, core.ColorHUD)
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	boxW := max(len([]rune(title)), len([]rune(subtitle))) + 4
	boxH := 5
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorBorder)
	dst.DrawTextCentered(box.Y+1, title, core.ColorTitle)
	dst.DrawTextCentered(box.Y+3, subtitle, core.ColorMuted)
}

func sq(x float64) float64 { return x * x }

// Describe returns a one-line summary of a variant's constants for listings.
func Describe(c config.GameConstants) string {
	obstacles := "no obstacles"
	if c.Obstacles.Period > 0 {
		obstacles = fmt.Sprintf("%s obstacles, spawn period %.2g", c.Shape, c.Obstacles.Period)
	}
	return fmt.Sprintf("%s to start, %s", c.Start, obstacles)
}
