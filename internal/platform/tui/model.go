package tui

import (
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/oscillator/internal/config"
	"github.com/vovakirdan/oscillator/internal/core"
	"github.com/vovakirdan/oscillator/internal/games/oscillator"
	"github.com/vovakirdan/oscillator/internal/registry"
	"github.com/vovakirdan/oscillator/internal/replay"
	"github.com/vovakirdan/oscillator/internal/storage"
)

// recordable is implemented by games that can report applied frames.
type recordable interface {
	SetRecorder(r oscillator.FrameRecorder)
	Constants() config.GameConstants
}

// PlayOptions configures a play host.
type PlayOptions struct {
	Store  *storage.Store // Replay storage; nil disables saving
	Logger *log.Logger    // Nil discards log output
	Record bool           // Record the session and save it on exit
}

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// Model is the Bubble Tea model that drives one variant.
type Model struct {
	game     registry.Game
	screen   *core.Screen
	store    *storage.Store
	logger   *log.Logger
	config   core.RuntimeConfig
	keys     PlayKeyMap
	help     help.Model
	start    time.Time
	input    core.InputFrame
	held     bool
	state    core.GameState
	recorder *replay.Recorder
	runs     int

	exitOnBack bool
	quitting   bool
	backToMenu bool
}

// NewModel creates a play host for the given game and resets it.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts PlayOptions) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	m := Model{
		game:   game,
		screen: core.NewScreen(cfg.ScreenW, cfg.ScreenH-1),
		store:  opts.Store,
		logger: logger.With("variant", game.ID()),
		config: cfg,
		keys:   DefaultPlayKeyMap(),
		help:   help.New(),
		start:  time.Now(),
		input:  core.NewInputFrame(0),
	}
	m.help.Width = cfg.ScreenW

	game.Reset(cfg)
	m.state = game.State()

	if r, ok := game.(recordable); ok && opts.Record {
		m.recorder = replay.NewRecorder(game.ID(), cfg.Seed, r.Constants())
		r.SetRecorder(m.recorder)
	}

	m.logger.Debug("session reset", "seed", cfg.Seed, "fps", cfg.TickRate)
	return m
}

// Init starts the frame loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.edge(mouseAction(msg))
		return m, nil

	case tea.WindowSizeMsg:
		// The simulation works in game units; only the view changes
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
		m.resizeForHelp()
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// edge queues a press or release for the next frame.
func (m *Model) edge(a core.Action) {
	switch a {
	case core.ActionPress:
		m.held = true
	case core.ActionRelease:
		m.held = false
	default:
		return
	}
	m.input.Set(a)
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.finish()
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		if !m.state.InMenu && !m.state.Paused {
			return m, nil
		}
		m.finish()
		m.backToMenu = true
		if m.exitOnBack {
			return m, tea.Quit
		}
		return m, nil

	case key.Matches(msg, m.keys.Toggle):
		if m.held {
			m.edge(core.ActionRelease)
		} else {
			m.edge(core.ActionPress)
		}

	case key.Matches(msg, m.keys.Tap):
		m.edge(core.ActionPress)
		m.edge(core.ActionRelease)

	case key.Matches(msg, m.keys.Pause):
		m.input.Set(core.ActionPause)

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resizeForHelp()
	}

	return m, nil
}

// resizeForHelp keeps the screen buffer above the help footer.
func (m *Model) resizeForHelp() {
	lines := 1
	if m.help.ShowAll {
		lines = 4
	}
	m.screen.Resize(m.config.ScreenW, m.config.ScreenH-lines)
}

// handleTick runs one simulation frame at the tick's timestamp.
func (m Model) handleTick(t time.Time) (tea.Model, tea.Cmd) {
	if m.quitting || m.backToMenu {
		return m, nil
	}

	m.input.TimestampMs = sinceMs(m.start, t)
	result := m.game.Step(m.input)
	m.state = result.State
	m.input.Clear()

	if result.Clamped && !m.state.InMenu {
		m.logger.Debug("clock delta clamped", "delta_ms", result.DeltaMs)
	}
	if result.Started {
		m.runs++
		m.logger.Info("run started", "run", m.runs)
	}
	if result.Ended {
		m.logger.Info("run ended", "run", m.runs, "score", m.state.LastScore, "cause", result.Cause)
	}

	return m, tickCmd(m.config.TickRate)
}

// finish saves the recording once, if there is anything worth keeping.
func (m *Model) finish() {
	if m.recorder == nil || m.store == nil || m.runs == 0 {
		return
	}
	rec := m.recorder.Recording()
	m.recorder = nil

	id, err := m.store.SaveReplay(rec)
	if err != nil {
		m.logger.Warn("could not save replay", "error", err)
		return
	}
	m.logger.Info("replay saved", "id", id, "frames", len(rec.Frames))
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// State returns the last observed game state.
func (m Model) State() core.GameState {
	return m.state
}

// Runs returns how many runs were started in this host.
func (m Model) Runs() int {
	return m.runs
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to the picker.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts a Bubble Tea program for a single variant.
// It returns true if the player asked to go back rather than quit.
func Run(game registry.Game, cfg core.RuntimeConfig, opts PlayOptions) (goBack bool, err error) {
	model := NewModel(game, cfg, opts)
	model.exitOnBack = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(), // Left button press/release drive the input
	)

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(Model)
	return ok && m.BackToMenu(), nil
}
