package replay

import (
	"math/rand"

	"github.com/vovakirdan/oscillator/internal/sim"
)

// Player steps a recording through a fresh session one frame at a time.
type Player struct {
	rec     Recording
	session *sim.Session
	next    int
}

// NewPlayer prepares a recording for playback.
func NewPlayer(rec Recording) (*Player, error) {
	if err := rec.Validate(); err != nil {
		return nil, err
	}
	return &Player{
		rec:     rec,
		session: sim.NewSession(rec.Constants, rand.New(rand.NewSource(rec.Seed))),
	}, nil
}

// Recording returns the recording being played.
func (p *Player) Recording() Recording {
	return p.rec
}

// Done reports whether every frame has been applied.
func (p *Player) Done() bool {
	return p.next >= len(p.rec.Frames)
}

// Progress returns the number of applied frames and the total.
func (p *Player) Progress() (applied, total int) {
	return p.next, len(p.rec.Frames)
}

// NextTimestamp returns the timestamp of the next frame, if any.
func (p *Player) NextTimestamp() (float64, bool) {
	if p.Done() {
		return 0, false
	}
	return p.rec.Frames[p.next].TimestampMs, true
}

// Step applies the next frame in the same order a live game does:
// press, then release, then advance.
func (p *Player) Step() (sim.StepInfo, bool) {
	if p.Done() {
		return sim.StepInfo{}, false
	}
	f := p.rec.Frames[p.next]
	p.next++

	started := false
	if f.Pressed {
		started = p.session.Press()
	}
	if f.Released {
		p.session.Release()
	}
	info := p.session.Advance(f.TimestampMs)
	info.Started = info.Started || started
	return info, true
}

// Snapshot returns the current session snapshot.
func (p *Player) Snapshot() sim.Snapshot {
	return p.session.Snapshot()
}

// RunResult describes one finished run inside a recording.
type RunResult struct {
	Score     uint
	Cause     string
	StartedMs float64
	EndedMs   float64
}

// Result is the outcome of re-simulating a whole recording.
type Result struct {
	Runs   []RunResult
	Frames int
	Final  sim.Snapshot
}

// Best returns the highest score among finished runs.
func (r Result) Best() uint {
	var best uint
	for _, run := range r.Runs {
		best = max(best, run.Score)
	}
	return best
}

// Simulate replays a recording to the end and reports every finished run.
// A run still in progress at the last frame is not included.
func Simulate(rec Recording) (Result, error) {
	p, err := NewPlayer(rec)
	if err != nil {
		return Result{}, err
	}

	var (
		res     Result
		startMs float64
	)
	for {
		ts, _ := p.NextTimestamp()
		info, ok := p.Step()
		if !ok {
			break
		}
		res.Frames++
		if info.Started {
			startMs = ts
		}
		if info.Ended {
			menu, _ := info.FinalMode.(sim.Menu)
			res.Runs = append(res.Runs, RunResult{
				Score:     menu.LastScore,
				Cause:     info.Hit.Kind.String(),
				StartedMs: startMs,
				EndedMs:   ts,
			})
		}
	}
	res.Final = p.Snapshot()
	return res, nil
}
