package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/oscillator/internal/registry"
	"github.com/vovakirdan/oscillator/internal/storage"
)

const maxReplays = 100 // Max replays to load per tab

// ReplaysKeyMap defines the key bindings for the replay browser.
type ReplaysKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	NextTab key.Binding
	PrevTab key.Binding
	Watch   key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ReplaysKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextTab, k.Watch, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ReplaysKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextTab, k.PrevTab},
		{k.Watch, k.Back, k.Quit},
	}
}

// DefaultReplaysKeyMap returns default key bindings.
func DefaultReplaysKeyMap() ReplaysKeyMap {
	return ReplaysKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next variant"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev variant"),
		),
		Watch: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "watch"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ReplaysModel is the Bubble Tea model for browsing stored replays.
type ReplaysModel struct {
	tabs      []string // "" lists every variant
	tab       int
	store     *storage.Store
	replays   []storage.ReplaySummary
	loadErr   error
	table     table.Model
	help      help.Model
	keys      ReplaysKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
	watchID   int64
}

// NewReplaysModel creates a replay browser.
func NewReplaysModel(store *storage.Store, width, height int) ReplaysModel {
	tabs := []string{""}
	for _, v := range registry.List() {
		tabs = append(tabs, v.ID)
	}

	h := help.New()
	h.Width = width

	m := ReplaysModel{
		tabs:   tabs,
		store:  store,
		keys:   DefaultReplaysKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.load()
	return m
}

// createTable creates a new table sized to the window.
func (m *ReplaysModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Variant", Width: 10},
		{Title: "Frames", Width: 8},
		{Title: "Length", Width: 9},
		{Title: "Recorded", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load fetches the replays of the current tab.
func (m *ReplaysModel) load() {
	m.replays, m.loadErr = nil, nil
	if m.store != nil {
		m.replays, m.loadErr = m.store.ListReplays(m.tabs[m.tab], maxReplays)
	}

	rows := make([]table.Row, len(m.replays))
	for i, r := range m.replays {
		rows[i] = table.Row{
			strconv.FormatInt(r.ID, 10),
			r.Variant,
			strconv.Itoa(r.Frames),
			fmt.Sprintf("%.1fs", r.Duration.Seconds()),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the browser.
func (m ReplaysModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the browser.
func (m ReplaysModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextTab):
			m.tab = (m.tab + 1) % len(m.tabs)
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.PrevTab):
			m.tab = (m.tab - 1 + len(m.tabs)) % len(m.tabs)
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.Watch):
			if i := m.table.Cursor(); i >= 0 && i < len(m.replays) {
				m.watchID = m.replays[i].ID
				return m, tea.Quit
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table = m.createTable()
		m.load()
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the browser.
func (m ReplaysModel) View() string {
	if m.quitting || m.goingBack || m.watchID != 0 {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	tabStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	tabs := make([]string, len(m.tabs))
	for i, t := range m.tabs {
		name := t
		if name == "" {
			name = "all"
		}
		if i == m.tab {
			tabs[i] = activeTabStyle.Render(name)
		} else {
			tabs[i] = tabStyle.Render(" " + name + " ")
		}
	}

	var body string
	switch {
	case m.store == nil:
		body = tabStyle.Italic(true).Padding(2, 4).Render("Replay storage is unavailable.")
	case m.loadErr != nil:
		body = tabStyle.Italic(true).Padding(2, 4).Render("Could not load replays:\n" + m.loadErr.Error())
	case len(m.replays) == 0:
		body = tabStyle.Italic(true).Padding(2, 4).Render("No replays recorded yet.\nPlay a run with recording enabled.")
	default:
		body = m.table.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		centerText(titleStyle.Render("REPLAYS"), m.width),
		"",
		centerText(lipgloss.JoinHorizontal(lipgloss.Top, tabs...), m.width),
		"",
		centerText(boxStyle.Render(body), m.width),
		helpStyle.Render(m.help.View(m.keys)),
	)
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ReplaysModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ReplaysModel) IsQuitting() bool {
	return m.quitting
}

// WatchID returns the replay chosen for playback, or 0.
func (m ReplaysModel) WatchID() int64 {
	return m.watchID
}

// RunReplays runs the replay browser.
// Returns the chosen replay ID (0 if none) and whether the user went back.
func RunReplays(store *storage.Store, width, height int) (watchID int64, goBack bool, err error) {
	p := tea.NewProgram(
		NewReplaysModel(store, width, height),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return 0, false, fmt.Errorf("replays: %w", err)
	}

	m, ok := finalModel.(ReplaysModel)
	if !ok {
		return 0, false, nil
	}
	return m.WatchID(), m.IsGoingBack(), nil
}
