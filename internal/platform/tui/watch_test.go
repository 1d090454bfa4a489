package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/oscillator/internal/config"
	"github.com/vovakirdan/oscillator/internal/core"
	"github.com/vovakirdan/oscillator/internal/replay"
	"github.com/vovakirdan/oscillator/internal/storage"
)

// testRecording returns twenty frames 16ms apart with a press on the first.
func testRecording() replay.Recording {
	r := replay.NewRecorder(config.VariantCourse, 5, config.DefaultCourseConstants())
	for i := 1; i <= 20; i++ {
		r.Record(float64(i*16), i == 1, false)
	}
	return r.Recording()
}

func updateWatch(t *testing.T, m WatchModel, msg tea.Msg) WatchModel {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(WatchModel)
	if !ok {
		t.Fatalf("Update returned %T, expected WatchModel", next)
	}
	return nm
}

func TestWatchFollowsWallClock(t *testing.T) {
	m, err := NewWatchModel(testRecording(), "Oscillator Course", core.DefaultConfig())
	if err != nil {
		t.Fatalf("NewWatchModel() failed: %v", err)
	}

	m = updateWatch(t, m, tick(0))
	if applied, _ := m.player.Progress(); applied != 1 {
		t.Fatalf("first tick should only apply the first frame, applied %d", applied)
	}

	m = updateWatch(t, m, tick(100))
	if applied, _ := m.player.Progress(); applied != 7 {
		t.Errorf("after 100ms applied %d frames, expected 7", applied)
	}
	if m.player.Snapshot().Mode != "playing" {
		t.Error("recorded press should have started a run")
	}

	m = updateWatch(t, m, keyMsg("+"))
	if m.Speed() != 2 {
		t.Fatalf("Speed() = %v, expected 2", m.Speed())
	}
	m = updateWatch(t, m, tick(200))
	if applied, _ := m.player.Progress(); applied != 19 {
		t.Errorf("after 100ms at 2x applied %d frames, expected 19", applied)
	}

	m = updateWatch(t, m, tick(300))
	if !m.Done() {
		t.Error("replay should be finished")
	}
	if !strings.Contains(m.View(), "end of replay") {
		t.Error("view should announce the end of the replay")
	}
}

func TestWatchPause(t *testing.T) {
	m, err := NewWatchModel(testRecording(), "Oscillator Course", core.DefaultConfig())
	if err != nil {
		t.Fatalf("NewWatchModel() failed: %v", err)
	}

	m = updateWatch(t, m, tick(0))
	m = updateWatch(t, m, keyMsg(" "))
	m = updateWatch(t, m, tick(1000))
	if applied, _ := m.player.Progress(); applied != 1 {
		t.Errorf("paused playback applied %d frames, expected 1", applied)
	}

	m = updateWatch(t, m, keyMsg(" "))
	m = updateWatch(t, m, tick(1016))
	if applied, _ := m.player.Progress(); applied != 2 {
		t.Errorf("resumed playback applied %d frames, expected 2", applied)
	}
}

func TestWatchSpeedBounds(t *testing.T) {
	m, err := NewWatchModel(testRecording(), "", core.DefaultConfig())
	if err != nil {
		t.Fatalf("NewWatchModel() failed: %v", err)
	}
	for range 10 {
		m = updateWatch(t, m, keyMsg("-"))
	}
	if m.Speed() != watchSpeeds[0] {
		t.Errorf("Speed() = %v, expected the slowest speed", m.Speed())
	}
	for range 10 {
		m = updateWatch(t, m, keyMsg("+"))
	}
	if m.Speed() != watchSpeeds[len(watchSpeeds)-1] {
		t.Errorf("Speed() = %v, expected the fastest speed", m.Speed())
	}
}

func TestWatchRejectsEmptyRecording(t *testing.T) {
	rec := replay.NewRecorder(config.VariantCourse, 1, config.DefaultCourseConstants()).Recording()
	if _, err := NewWatchModel(rec, "", core.DefaultConfig()); err == nil {
		t.Error("NewWatchModel() should reject an empty recording")
	}
}

func TestReplaysBrowser(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "replays.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	id, err := store.SaveReplay(testRecording())
	if err != nil {
		t.Fatalf("SaveReplay() failed: %v", err)
	}

	m := NewReplaysModel(store, 80, 24)
	if len(m.replays) != 1 {
		t.Fatalf("expected one replay in the all tab, got %d", len(m.replays))
	}
	if !strings.Contains(m.View(), "REPLAYS") {
		t.Error("view should show the title")
	}

	// Tabs: all, classic, course, shrooms
	next, _ := m.Update(keyMsg("tab"))
	m = next.(ReplaysModel)
	if m.tabs[m.tab] != config.VariantClassic || len(m.replays) != 0 {
		t.Errorf("classic tab shows %d replays, expected none", len(m.replays))
	}
	next, _ = m.Update(keyMsg("tab"))
	m = next.(ReplaysModel)
	if len(m.replays) != 1 {
		t.Errorf("course tab shows %d replays, expected 1", len(m.replays))
	}

	next, _ = m.Update(keyMsg("enter"))
	m = next.(ReplaysModel)
	if m.WatchID() != id {
		t.Errorf("WatchID() = %d, expected %d", m.WatchID(), id)
	}
}

func TestReplaysBrowserWithoutStore(t *testing.T) {
	m := NewReplaysModel(nil, 80, 24)
	if !strings.Contains(m.View(), "unavailable") {
		t.Error("view should explain that storage is unavailable")
	}
	next, _ := m.Update(keyMsg("enter"))
	if next.(ReplaysModel).WatchID() != 0 {
		t.Error("nothing should be selectable without a store")
	}
}
