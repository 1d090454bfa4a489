package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/oscillator/internal/core"
	"github.com/vovakirdan/oscillator/internal/registry"
)

const (
	swingFPS       = 30
	swingFrequency = 3.0
	swingDamping   = 0.12
	swingTrack     = 41 // Cells in the swing line
)

var (
	menuTitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuBallStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	menuMutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// menuTickMsg drives the menu animation. It is distinct from TickMsg so a
// stale tick never advances a game.
type menuTickMsg time.Time

func menuTickCmd() tea.Cmd {
	return tea.Tick(time.Second/swingFPS, func(t time.Time) tea.Msg {
		return menuTickMsg(t)
	})
}

// swingBall is the decorative ball above the variant list. A lightly damped
// spring chases a target that flips sides every second, so the ball
// overshoots and rings like the game's oscillator.
type swingBall struct {
	spring harmonica.Spring
	pos    float64
	vel    float64
	target float64
	frames int
}

func newSwingBall() swingBall {
	return swingBall{
		spring: harmonica.NewSpring(harmonica.FPS(swingFPS), swingFrequency, swingDamping),
		target: 1,
	}
}

func (b *swingBall) step() {
	b.frames++
	if b.frames%swingFPS == 0 {
		b.target = -b.target
	}
	b.pos, b.vel = b.spring.Update(b.pos, b.vel, b.target)
}

// column maps the ball position to a cell on a track of the given width.
// Overshoot past the targets is clamped to the track ends.
func (b swingBall) column(width int) int {
	half := float64(width-1) / 2
	x := half + b.pos*half*0.8
	return core.Clamp(int(math.Round(x)), 0, width-1)
}

func (b swingBall) render(width int) string {
	col := b.column(width)
	var sb strings.Builder
	sb.WriteString(menuMutedStyle.Render(strings.Repeat("─", col)))
	sb.WriteString(menuBallStyle.Render("●"))
	sb.WriteString(menuMutedStyle.Render(strings.Repeat("─", width-col-1)))
	return sb.String()
}

// MenuItem represents a selectable variant in the menu.
type MenuItem struct {
	VariantID   string
	Title       string
	Description string
}

// MenuModel is the Bubble Tea model for the variant picker.
type MenuModel struct {
	items       []MenuItem
	cursor      int
	width       int
	height      int
	config      core.RuntimeConfig
	keys        MenuKeyMap
	help        help.Model
	swing       swingBall
	quitting    bool
	selected    *MenuItem
	openReplays bool
}

// NewMenuModel creates a new menu model listing every registered variant.
func NewMenuModel(cfg core.RuntimeConfig) MenuModel {
	variants := registry.List()
	items := make([]MenuItem, 0, len(variants))
	for _, v := range variants {
		items = append(items, MenuItem{
			VariantID:   v.ID,
			Title:       v.Title,
			Description: v.Description,
		})
	}

	h := help.New()
	h.Width = cfg.ScreenW

	return MenuModel{
		items:  items,
		width:  cfg.ScreenW,
		height: cfg.ScreenH,
		config: cfg,
		keys:   DefaultMenuKeyMap(),
		help:   h,
		swing:  newSwingBall(),
	}
}

// Init starts the swing animation.
func (m MenuModel) Init() tea.Cmd {
	return menuTickCmd()
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case menuTickMsg:
		if m.done() {
			return m, nil
		}
		m.swing.step()
		return m, menuTickCmd()
	}

	return m, nil
}

func (m MenuModel) done() bool {
	return m.quitting || m.selected != nil || m.openReplays
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Select):
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit
		}

	case key.Matches(msg, m.keys.Replays):
		m.openReplays = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("O S C I L L A T O R"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.swing.render(min(swingTrack, max(m.width-4, 3))), m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		line := "  " + item.Title
		if i == m.cursor {
			line = menuSelectedStyle.Render("> " + item.Title)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	if len(m.items) > 0 {
		b.WriteString("\n")
		b.WriteString(centerText(menuMutedStyle.Render(m.items[m.cursor].Description), m.width))
		b.WriteString("\n")
	} else {
		b.WriteString(centerText("No variants registered.", m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(helpStyle.Render(m.help.View(m.keys)), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsReplays returns true if user asked for the replay browser.
func (m MenuModel) WantsReplays() bool {
	return m.openReplays
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	VariantID    string
	Config       core.RuntimeConfig
	WantsReplays bool
	Quit         bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(cfg core.RuntimeConfig) (MenuResult, error) {
	model := NewMenuModel(cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, fmt.Errorf("menu: %w", err)
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{Config: m.Config()}
	switch {
	case m.WantsReplays():
		result.WantsReplays = true
	case m.IsQuitting():
		result.Quit = true
	case m.Selected() != nil:
		result.VariantID = m.Selected().VariantID
	default:
		result.Quit = true
	}

	return result, nil
}
