package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/oscillator/internal/core"
	"github.com/vovakirdan/oscillator/internal/games/oscillator"
	"github.com/vovakirdan/oscillator/internal/replay"
	"github.com/vovakirdan/oscillator/internal/sim"
)

// Playback speeds offered by the faster/slower keys.
var watchSpeeds = []float64{0.25, 0.5, 1, 2, 4, 8}

const defaultSpeed = 2 // index of 1x

var statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("229"))

// WatchModel plays a stored recording back in real time.
type WatchModel struct {
	player   *replay.Player
	title    string
	screen   *core.Screen
	config   core.RuntimeConfig
	keys     WatchKeyMap
	help     help.Model
	speed    int
	paused   bool
	playhead float64 // Recording milliseconds elapsed since the first frame
	origin   float64 // Timestamp of the first frame
	lastTick time.Time
	runs     int
	lastRun  string

	quitting   bool
	backToMenu bool
}

// NewWatchModel prepares a recording for playback.
func NewWatchModel(rec replay.Recording, title string, cfg core.RuntimeConfig) (WatchModel, error) {
	p, err := replay.NewPlayer(rec)
	if err != nil {
		return WatchModel{}, err
	}
	origin, _ := p.NextTimestamp()

	m := WatchModel{
		player: p,
		title:  title,
		screen: core.NewScreen(cfg.ScreenW, cfg.ScreenH-2),
		config: cfg,
		keys:   DefaultWatchKeyMap(),
		help:   help.New(),
		speed:  defaultSpeed,
		origin: origin,
	}
	m.help.Width = cfg.ScreenW
	return m, nil
}

// Init starts the playback loop.
func (m WatchModel) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.backToMenu = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Pause):
			m.paused = !m.paused
		case key.Matches(msg, m.keys.Faster):
			m.speed = min(m.speed+1, len(watchSpeeds)-1)
		case key.Matches(msg, m.keys.Slower):
			m.speed = max(m.speed-1, 0)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
		m.screen.Resize(msg.Width, msg.Height-2)
		return m, nil

	case TickMsg:
		t := time.Time(msg)
		if !m.paused {
			elapsed := 0.0
			if !m.lastTick.IsZero() {
				elapsed = sinceMs(m.lastTick, t) * watchSpeeds[m.speed]
			}
			m.advance(elapsed)
		}
		m.lastTick = t
		if m.quitting || m.backToMenu {
			return m, nil
		}
		return m, tickCmd(m.config.TickRate)
	}

	return m, nil
}

// advance moves the playhead and applies every frame it has passed.
func (m *WatchModel) advance(elapsedMs float64) {
	m.playhead += elapsedMs
	for {
		ts, ok := m.player.NextTimestamp()
		if !ok || ts-m.origin > m.playhead {
			return
		}
		info, _ := m.player.Step()
		if info.Started {
			m.runs++
		}
		if info.Ended {
			snap := m.player.Snapshot()
			m.lastRun = fmt.Sprintf("run %d: %s (%s)", m.runs, sim.FormatScore(snap.LastScore), info.Hit.Kind)
		}
	}
}

// Speed returns the current playback speed multiplier.
func (m WatchModel) Speed() float64 {
	return watchSpeeds[m.speed]
}

// Done reports whether every recorded frame has been played.
func (m WatchModel) Done() bool {
	return m.player.Done()
}

// View renders the current playback frame.
func (m WatchModel) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	oscillator.RenderSnapshot(m.screen, m.player.Recording().Constants, m.title, m.player.Snapshot())

	applied, total := m.player.Progress()
	status := fmt.Sprintf(" replay #%d  frame %d/%d  %gx", m.player.Recording().ID, applied, total, m.Speed())
	switch {
	case m.player.Done():
		status += "  end of replay"
	case m.paused:
		status += "  paused"
	}
	if m.lastRun != "" {
		status += "  " + m.lastRun
	}

	return RenderScreen(m.screen) + "\n" +
		statusStyle.Render(status) + "\n" +
		helpStyle.Render(m.help.View(m.keys))
}

// IsQuitting returns true if user requested to quit entirely.
func (m WatchModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back.
func (m WatchModel) BackToMenu() bool {
	return m.backToMenu
}

// RunWatch plays a recording in its own Bubble Tea program.
// It returns true if the viewer asked to go back rather than quit.
func RunWatch(rec replay.Recording, title string, cfg core.RuntimeConfig) (goBack bool, err error) {
	model, err := NewWatchModel(rec, title, cfg)
	if err != nil {
		return false, err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(WatchModel)
	return ok && m.BackToMenu(), nil
}
