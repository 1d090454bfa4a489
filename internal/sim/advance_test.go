package sim

import (
	"math"
	"math/rand"
	"reflect"
	"testing"

	"github.com/vovakirdan/oscillator/internal/config"
)

// fixedRand always returns the same sample.
type fixedRand float64

func (f fixedRand) Float64() float64 { return float64(f) }

// seqRand cycles through a fixed sequence of samples.
type seqRand struct {
	vals []float64
	i    int
}

func (r *seqRand) Float64() float64 {
	v := r.vals[r.i%len(r.vals)]
	r.i++
	return v
}

// testConstants returns course constants with walls far apart and spawning off.
func testConstants() config.GameConstants {
	c := config.DefaultCourseConstants()
	c.Area.LeftWall = -1e6
	c.Area.RightWall = 1e6
	c.Obstacles.Period = 0
	return c
}

// startRun presses from a fresh menu and returns the playing state.
func startRun(t *testing.T, c config.GameConstants) (Clock, Playing) {
	t.Helper()
	clock, mode := OnInputPressed(c, Clock{}, InitialMode())
	p, ok := mode.(Playing)
	if !ok {
		t.Fatalf("OnInputPressed from menu should start a run, got %T", mode)
	}
	return clock, p
}

func TestClockDeltaClamping(t *testing.T) {
	c := testConstants()
	maxDelta := c.Clock.MaxDeltaMs

	tests := []struct {
		name        string
		last, now   float64
		wantDelta   float64
		wantClamped bool
	}{
		{name: "normal frame", last: 100, now: 116, wantDelta: 16, wantClamped: false},
		{name: "exactly max", last: 0, now: maxDelta, wantDelta: maxDelta, wantClamped: false},
		{name: "backgrounded tab", last: 0, now: 10000, wantDelta: maxDelta, wantClamped: true},
		{name: "clock went backwards", last: 500, now: 200, wantDelta: 0, wantClamped: true},
		{name: "negative timestamp", last: 0, now: -16, wantDelta: 0, wantClamped: true},
		{name: "nan timestamp", last: 0, now: math.NaN(), wantDelta: 0, wantClamped: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, clamped := ClockDelta(c, Clock{LastTimestampMs: tc.last}, tc.now)
			if got != tc.wantDelta || clamped != tc.wantClamped {
				t.Errorf("ClockDelta() = (%v, %v), expected (%v, %v)", got, clamped, tc.wantDelta, tc.wantClamped)
			}
		})
	}
}

func TestAdvanceLargeGapMatchesMaxDelta(t *testing.T) {
	c := testConstants()
	clock, p := startRun(t, c)

	clockA, modeA := Advance(c, clock, p, 10000, false, nil)
	clockB, modeB := Advance(c, clock, p, c.Clock.MaxDeltaMs, false, nil)

	if clockA.TotalGameTimeSec != clockB.TotalGameTimeSec {
		t.Errorf("game time differs: gap=%v, max=%v", clockA.TotalGameTimeSec, clockB.TotalGameTimeSec)
	}
	if !reflect.DeepEqual(modeA, modeB) {
		t.Errorf("modes differ:\n gap %+v\n max %+v", modeA, modeB)
	}
	if clockA.LastTimestampMs != 10000 {
		t.Errorf("LastTimestampMs = %v, expected 10000", clockA.LastTimestampMs)
	}
}

func TestAdvanceGameTimeMonotonic(t *testing.T) {
	c := testConstants()
	c.Obstacles.Period = 1.0
	rng := rand.New(rand.NewSource(3))

	var clock Clock
	var mode Mode = InitialMode()
	ts := 0.0
	prev := 0.0

	for i := 0; i < 500; i++ {
		if i == 100 {
			clock, mode = OnInputPressed(c, clock, mode)
			prev = clock.TotalGameTimeSec
		}
		ts += rng.Float64() * 250 // Includes gaps beyond the clamp
		clock, mode = Advance(c, clock, mode, ts, i%7 < 3, rng)
		if clock.TotalGameTimeSec < prev {
			t.Fatalf("frame %d: game time went backwards: %v -> %v", i, prev, clock.TotalGameTimeSec)
		}
		prev = clock.TotalGameTimeSec
	}
}

func TestAdvanceMenuIsInert(t *testing.T) {
	c := testConstants()
	menu := Menu{LastScore: 12, HasLastScore: true}

	clock, mode := Advance(c, Clock{}, menu, 16, true, fixedRand(0))
	if mode != Mode(menu) {
		t.Errorf("press-start menu should ignore held input, got %+v", mode)
	}
	if clock.TotalGameTimeSec <= 0 {
		t.Error("game time should keep accumulating in menu mode")
	}
}

func TestAdvanceHoldStart(t *testing.T) {
	c := testConstants()
	c.Start = config.StartOnHold

	clock, mode := Advance(c, Clock{LastTimestampMs: 0, TotalGameTimeSec: 42}, InitialMode(), 16, false, nil)
	if _, ok := mode.(Menu); !ok {
		t.Fatalf("released input should stay in menu, got %T", mode)
	}

	clock, mode = Advance(c, clock, mode, 32, true, nil)
	p, ok := mode.(Playing)
	if !ok {
		t.Fatalf("held input should start a run, got %T", mode)
	}
	if clock.TotalGameTimeSec != 0 {
		t.Errorf("TotalGameTimeSec = %v, expected 0 at run start", clock.TotalGameTimeSec)
	}
	if p.Oscillator != (OscillatorState{Position: c.Spring.InitialOffset}) {
		t.Errorf("Oscillator = %+v, expected initial offset", p.Oscillator)
	}
}

func TestOnInputPressed(t *testing.T) {
	c := testConstants()
	clock := Clock{LastTimestampMs: 900, TotalGameTimeSec: 33}

	nextClock, mode := OnInputPressed(c, clock, Menu{LastScore: 77, HasLastScore: true})
	p, ok := mode.(Playing)
	if !ok {
		t.Fatalf("press in menu should start a run, got %T", mode)
	}
	if nextClock.TotalGameTimeSec != 0 || nextClock.LastTimestampMs != 900 {
		t.Errorf("clock = %+v, expected game time reset and timestamp kept", nextClock)
	}
	if p.Score != 0 || p.ScrollOffset != 0 || len(p.Obstacles) != 0 {
		t.Errorf("fresh run should be empty, got %+v", p)
	}

	// Pressing while playing changes nothing
	p.Score = 5
	againClock, again := OnInputPressed(c, nextClock, p)
	if !reflect.DeepEqual(again, Mode(p)) || againClock != nextClock {
		t.Errorf("press while playing should be a no-op, got %+v", again)
	}

	relClock, rel := OnInputReleased(c, nextClock, p)
	if !reflect.DeepEqual(rel, Mode(p)) || relClock != nextClock {
		t.Error("release should be a no-op")
	}
}

func TestNewRunResetsAfterPriorRun(t *testing.T) {
	c := testConstants()
	clock, p := startRun(t, c)

	var mode Mode = p
	ts := 0.0
	for i := 0; i < 100; i++ {
		ts += 16
		clock, mode = Advance(c, clock, mode, ts, true, nil)
	}
	p = mode.(Playing)
	if p.Score == 0 || p.ScrollOffset == 0 {
		t.Fatalf("run should have progressed, got score %d scroll %v", p.Score, p.ScrollOffset)
	}

	// Crash into the right wall
	p.Oscillator.Position = 1e7
	clock, mode = Advance(c, clock, p, ts, true, nil)
	menu, ok := mode.(Menu)
	if !ok || !menu.HasLastScore {
		t.Fatalf("wall hit should end the run with a score, got %+v", mode)
	}

	clock, mode = OnInputPressed(c, clock, menu)
	if clock.TotalGameTimeSec != 0 {
		t.Errorf("TotalGameTimeSec = %v, expected 0", clock.TotalGameTimeSec)
	}
	ts += 16
	_, mode = Advance(c, clock, mode, ts, true, nil)
	p = mode.(Playing)
	if p.Score != 0 || p.ScrollOffset != 0 {
		t.Errorf("first frame of a new run should have score 0 and scroll 0, got %d, %v", p.Score, p.ScrollOffset)
	}
}

func TestObstacleAtEntityIsFatal(t *testing.T) {
	for _, shape := range []config.Shape{config.ShapeRect, config.ShapeCircle} {
		t.Run(string(shape), func(t *testing.T) {
			c := testConstants()
			c.Shape = shape
			clock, p := startRun(t, c)

			// Let the run progress so scroll is non-zero
			var mode Mode = p
			ts := 0.0
			for i := 0; i < 30; i++ {
				ts += 16
				clock, mode = Advance(c, clock, mode, ts, true, nil)
			}
			p = mode.(Playing)

			// Next frame has zero elapsed time, so its scroll is known
			scroll := c.Scroll.Velocity * clock.TotalGameTimeSec
			p.Obstacles = append(p.Obstacles, Obstacle{
				X:      c.EntityX(p.Oscillator.Position),
				Y:      c.Entity.Y - scroll,
				Width:  0.5,
				Height: 0.5,
			})

			_, next := Advance(c, clock, p, ts, true, nil)
			menu, ok := next.(Menu)
			if !ok {
				t.Fatalf("obstacle on the ball should be fatal, got %T", next)
			}
			want := uint(math.Round(c.Scroll.ScoreRate * clock.TotalGameTimeSec))
			if !menu.HasLastScore || menu.LastScore != want {
				t.Errorf("LastScore = %d (set %v), expected %d", menu.LastScore, menu.HasLastScore, want)
			}
		})
	}
}

func TestWallCollision(t *testing.T) {
	c := config.DefaultCourseConstants()
	c.Obstacles.Period = 0

	tests := []struct {
		name     string
		position float64
		want     HitKind
	}{
		{name: "center", position: 0, want: HitNone},
		{name: "left wall", position: -0.9, want: HitLeftWall},
		{name: "right wall", position: 0.9, want: HitRightWall},
		{name: "just inside right", position: (c.Area.RightWall - c.Entity.HalfWidth - c.Area.LaneCenterX - 0.01) / c.Area.PositionScale, want: HitNone},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := Playing{Oscillator: OscillatorState{Position: tc.position}}
			if got := DetectCollision(c, p).Kind; got != tc.want {
				t.Errorf("DetectCollision() = %v, expected %v", got, tc.want)
			}
		})
	}
}

func TestObstacleOverlapShapes(t *testing.T) {
	c := testConstants()
	ex := c.EntityX(0)
	ey := c.Entity.Y

	tests := []struct {
		name  string
		shape config.Shape
		o     Obstacle
		want  bool
	}{
		{name: "rect overlap", shape: config.ShapeRect, o: Obstacle{X: ex + 5, Y: ey, Width: 8, Height: 2}, want: true},
		{name: "rect touching edge", shape: config.ShapeRect, o: Obstacle{X: ex + 5.5, Y: ey, Width: 8, Height: 2}, want: false},
		{name: "rect uses own half height", shape: config.ShapeRect, o: Obstacle{X: ex, Y: ey + 3, Width: 20, Height: 2}, want: false},
		{name: "rect vertical overlap", shape: config.ShapeRect, o: Obstacle{X: ex, Y: ey + 2, Width: 20, Height: 2}, want: true},
		{name: "circle diagonal miss", shape: config.ShapeCircle, o: Obstacle{X: ex + 4, Y: ey + 4, Width: 4, Height: 4}, want: false},
		{name: "circle diagonal hit", shape: config.ShapeCircle, o: Obstacle{X: ex + 2, Y: ey + 2, Width: 4, Height: 4}, want: true},
		{name: "rect diagonal corner", shape: config.ShapeRect, o: Obstacle{X: ex + 3, Y: ey + 3, Width: 4, Height: 4}, want: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c.Shape = tc.shape
			p := Playing{Obstacles: []Obstacle{tc.o}}
			got := DetectCollision(c, p)
			if got.Fatal() != tc.want {
				t.Errorf("DetectCollision() = %+v, expected fatal=%v", got, tc.want)
			}
		})
	}
}

func TestCollisionShortCircuitsInOrder(t *testing.T) {
	c := testConstants()
	ex, ey := c.EntityX(0), c.Entity.Y
	p := Playing{Obstacles: []Obstacle{
		{X: ex + 100, Y: ey, Width: 2, Height: 2},
		{X: ex, Y: ey, Width: 2, Height: 2},
		{X: ex, Y: ey, Width: 4, Height: 4},
	}}

	got := DetectCollision(c, p)
	if got.Kind != HitObstacle || got.Obstacle != 1 {
		t.Errorf("DetectCollision() = %+v, expected first hit at index 1", got)
	}
}

func TestObstaclePrunedAfterScrollingPast(t *testing.T) {
	c := testConstants()
	clock, p := startRun(t, c)

	// Spawned at the top of the screen far from the ball's path
	o := Obstacle{
		X:      c.Area.LaneCenterX + 60,
		Y:      -p.ScrollOffset - c.Obstacles.LeadDistance,
		Width:  c.Obstacles.Width,
		Height: c.Obstacles.Height,
	}
	p.Obstacles = []Obstacle{o}

	var mode Mode = p
	ts := 0.0
	removed := false
	for i := 0; i < 2000 && !removed; i++ {
		ts += 16
		clock, mode = Advance(c, clock, mode, ts, true, nil)
		cur, ok := mode.(Playing)
		if !ok {
			t.Fatalf("frame %d: run ended unexpectedly", i)
		}

		past := cur.ScrollOffset+o.Y-o.HalfHeight() > c.Area.Height
		present := len(cur.Obstacles) == 1
		if past == present {
			t.Fatalf("frame %d: scroll %v, past=%v but present=%v", i, cur.ScrollOffset, past, present)
		}
		removed = past
	}

	if !removed {
		t.Fatal("obstacle was never pruned")
	}
}

func TestPruneKeepsOrder(t *testing.T) {
	obstacles := []Obstacle{
		{X: 1, Y: 10, Height: 2},
		{X: 2, Y: 95, Height: 2},
		{X: 3, Y: 20, Height: 2},
		{X: 4, Y: 92, Height: 2},
	}
	orig := append([]Obstacle(nil), obstacles...)

	got := pruneObstacles(obstacles, 0, 90, 0)
	want := []Obstacle{obstacles[0], obstacles[2], obstacles[3]}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("pruneObstacles() = %+v, expected %+v", got, want)
	}
	if !reflect.DeepEqual(obstacles, orig) {
		t.Error("pruneObstacles must not modify its input")
	}
}

func TestSpawnPlacement(t *testing.T) {
	c := testConstants()
	c.Obstacles.Period = 1.5

	clock, p := startRun(t, c)
	clock.TotalGameTimeSec = 2 // scroll = 20 this frame

	rng := &seqRand{vals: []float64{0, 0.75}}
	_, mode := Advance(c, clock, p, 16, true, rng)
	got := mode.(Playing)

	if len(got.Obstacles) != 1 {
		t.Fatalf("expected one spawned obstacle, got %d", len(got.Obstacles))
	}
	o := got.Obstacles[0]
	wantX := c.Area.LaneCenterX + 0.25*c.Obstacles.SpawnRange
	wantY := -20 - c.Obstacles.LeadDistance
	if math.Abs(o.X-wantX) > eps || math.Abs(o.Y-wantY) > eps {
		t.Errorf("spawned at (%v, %v), expected (%v, %v)", o.X, o.Y, wantX, wantY)
	}
	if o.Width != c.Obstacles.Width || o.Height != c.Obstacles.Height {
		t.Errorf("spawned size %vx%v, expected %vx%v", o.Width, o.Height, c.Obstacles.Width, c.Obstacles.Height)
	}
}

func TestSpawnRollAboveDeltaDoesNothing(t *testing.T) {
	c := testConstants()
	c.Obstacles.Period = 1.5
	clock, p := startRun(t, c)

	// 0.5 * 1.5 = 0.75 game seconds, far more than one 16ms frame
	_, mode := Advance(c, clock, p, 16, true, fixedRand(0.5))
	if n := len(mode.(Playing).Obstacles); n != 0 {
		t.Errorf("expected no spawn, got %d obstacles", n)
	}
}

func TestSpawnRateMatchesPeriod(t *testing.T) {
	c := testConstants()
	c.Obstacles.Period = 1.0
	c.Area.Height = 1e9 // never prune
	c.Entity.HalfWidth = 0
	c.Entity.HalfHeight = 0
	c.Obstacles.Width = 0
	c.Obstacles.Height = 0

	rng := rand.New(rand.NewSource(99))
	clock, p := startRun(t, c)
	var mode Mode = p
	ts := 0.0
	for i := 0; i < 20000; i++ {
		ts += 16
		clock, mode = Advance(c, clock, mode, ts, true, rng)
	}

	p, ok := mode.(Playing)
	if !ok {
		t.Fatal("zero-size obstacles should never collide")
	}
	expected := clock.TotalGameTimeSec / c.Obstacles.Period
	n := float64(len(p.Obstacles))
	if n < expected*0.85 || n > expected*1.15 {
		t.Errorf("spawned %v obstacles, expected about %v", n, expected)
	}
}

func TestAdvanceDoesNotMutateInput(t *testing.T) {
	c := testConstants()
	c.Obstacles.Period = 0.001
	clock, p := startRun(t, c)
	p.Obstacles = []Obstacle{{X: 10, Y: 10, Width: 1, Height: 1}}
	orig := append([]Obstacle(nil), p.Obstacles...)

	_, mode := Advance(c, clock, p, 16, true, fixedRand(0))
	if len(mode.(Playing).Obstacles) != 2 {
		t.Fatal("expected a spawn with period near zero")
	}
	if !reflect.DeepEqual(p.Obstacles, orig) {
		t.Errorf("input obstacles changed: %+v", p.Obstacles)
	}
}

func TestEndToEndHeldRun(t *testing.T) {
	c := testConstants()
	c.Obstacles.Period = 1.5
	rng := fixedRand(0.999999) // never below one frame of game time

	clock, mode := OnInputPressed(c, Clock{}, InitialMode())
	initial := math.Abs(c.Spring.InitialOffset - c.Spring.Center)

	var lastScore uint
	var positions []float64
	ts := 0.0
	for clock.TotalGameTimeSec < 2.0 {
		clock, mode = Advance(c, clock, mode, ts, true, rng)
		p, ok := mode.(Playing)
		if !ok {
			t.Fatalf("t=%vms: run ended unexpectedly", ts)
		}
		if p.Score < lastScore {
			t.Fatalf("t=%vms: score decreased %d -> %d", ts, lastScore, p.Score)
		}
		if len(p.Obstacles) != 0 {
			t.Fatalf("t=%vms: unexpected spawn", ts)
		}
		lastScore = p.Score
		positions = append(positions, p.Oscillator.Position)
		ts += 16
	}

	if lastScore == 0 {
		t.Error("score should have increased")
	}
	for _, x := range positions[len(positions)/2:] {
		if math.Abs(x-c.Spring.Center) >= initial {
			t.Errorf("position %v should stay closer to center than the initial offset %v", x, initial)
		}
	}
}

func TestDeterministicWithSameSeed(t *testing.T) {
	c := config.DefaultCourseConstants()

	run := func() []Snapshot {
		s := NewSession(c, rand.New(rand.NewSource(2024)))
		s.Press()
		var snaps []Snapshot
		ts := 0.0
		for i := 0; i < 600; i++ {
			if i%40 == 0 {
				s.Release()
			} else if i%40 == 25 {
				s.Press()
			}
			s.Advance(ts)
			snaps = append(snaps, s.Snapshot())
			ts += 16
		}
		return snaps
	}

	a, b := run(), run()
	if !reflect.DeepEqual(a, b) {
		t.Error("same seed and inputs should produce identical snapshots")
	}
}
