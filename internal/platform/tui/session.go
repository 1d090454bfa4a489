package tui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/oscillator/internal/config"
	"github.com/vovakirdan/oscillator/internal/core"
	"github.com/vovakirdan/oscillator/internal/registry"
	"github.com/vovakirdan/oscillator/internal/storage"
)

// sessionView is the screen a SessionModel currently shows.
type sessionView int

const (
	viewMenu sessionView = iota
	viewPlay
	viewReplays
	viewWatch
)

// SessionOptions configures a SessionModel.
type SessionOptions struct {
	Store      *storage.Store
	Logger     *log.Logger
	Difficulty config.DifficultyPreset
	Record     bool
}

// SessionModel manages the full session flow inside one program:
// menu -> play -> menu, and menu -> replays -> watch -> replays.
// This is the top-level model used for SSH sessions.
type SessionModel struct {
	opts     SessionOptions
	logger   *log.Logger
	config   core.RuntimeConfig
	view     sessionView
	menu     MenuModel
	play     Model
	replays  ReplaysModel
	watch    WatchModel
	quitting bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(cfg core.RuntimeConfig, opts SessionOptions) SessionModel {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return SessionModel{
		opts:   opts,
		logger: logger,
		config: cfg,
		menu:   NewMenuModel(cfg),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
// Child models signal their exits with tea.Quit; the session swallows those
// commands and switches views instead.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.view {
	case viewPlay:
		return m.updatePlay(msg)
	case viewReplays:
		return m.updateReplays(msg)
	case viewWatch:
		return m.updateWatch(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsReplays():
		return m.openReplays()

	case m.menu.Selected() != nil:
		return m.startPlay(m.menu.Selected().VariantID)
	}

	return m, cmd
}

// startPlay creates a play host for a variant.
func (m SessionModel) startPlay(variantID string) (tea.Model, tea.Cmd) {
	c, err := config.Resolve(variantID, "", m.opts.Difficulty)
	if err != nil {
		m.logger.Error("could not load constants", "variant", variantID, "error", err)
		return m.openMenu()
	}
	game, err := registry.Create(variantID, c)
	if err != nil {
		m.logger.Error("could not create variant", "variant", variantID, "error", err)
		return m.openMenu()
	}

	cfg := m.config
	cfg.Seed = 0 // A fresh seed per play
	m.play = NewModel(game, cfg, PlayOptions{
		Store:  m.opts.Store,
		Logger: m.logger,
		Record: m.opts.Record,
	})
	m.view = viewPlay
	return m, m.play.Init()
}

// updatePlay handles updates when a variant is being played.
func (m SessionModel) updatePlay(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.play.Update(msg)
	if playModel, ok := newModel.(Model); ok {
		m.play = playModel
	}

	switch {
	case m.play.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.play.BackToMenu():
		return m.openMenu()
	}

	return m, cmd
}

// updateReplays handles updates when browsing replays.
func (m SessionModel) updateReplays(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.replays.Update(msg)
	if replaysModel, ok := newModel.(ReplaysModel); ok {
		m.replays = replaysModel
	}

	switch {
	case m.replays.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.replays.IsGoingBack():
		return m.openMenu()
	case m.replays.WatchID() != 0:
		return m.startWatch(m.replays.WatchID())
	}

	return m, cmd
}

// startWatch loads a replay and starts playback.
func (m SessionModel) startWatch(id int64) (tea.Model, tea.Cmd) {
	if m.opts.Store == nil {
		return m.openReplays()
	}
	rec, err := m.opts.Store.Replay(id)
	if err != nil {
		m.logger.Error("could not load replay", "id", id, "error", err)
		return m.openReplays()
	}
	watch, err := NewWatchModel(rec, variantTitle(rec.Variant), m.config)
	if err != nil {
		m.logger.Error("could not play replay", "id", id, "error", err)
		return m.openReplays()
	}

	m.watch = watch
	m.view = viewWatch
	return m, m.watch.Init()
}

// updateWatch handles updates during replay playback.
func (m SessionModel) updateWatch(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.watch.Update(msg)
	if watchModel, ok := newModel.(WatchModel); ok {
		m.watch = watchModel
	}

	switch {
	case m.watch.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.watch.BackToMenu():
		return m.openReplays()
	}

	return m, cmd
}

func (m SessionModel) openMenu() (tea.Model, tea.Cmd) {
	m.menu = NewMenuModel(m.config)
	m.view = viewMenu
	return m, m.menu.Init()
}

func (m SessionModel) openReplays() (tea.Model, tea.Cmd) {
	m.replays = NewReplaysModel(m.opts.Store, m.config.ScreenW, m.config.ScreenH)
	m.view = viewReplays
	return m, m.replays.Init()
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.view {
	case viewPlay:
		return m.play.View()
	case viewReplays:
		return m.replays.View()
	case viewWatch:
		return m.watch.View()
	default:
		return m.menu.View()
	}
}

// variantTitle returns a variant's display title, or its ID if unknown.
func variantTitle(id string) string {
	if info, ok := registry.Info(id); ok {
		return info.Title
	}
	return id
}
