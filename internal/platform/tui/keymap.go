package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/oscillator/internal/core"
)

// PlayKeyMap defines the key bindings while a variant is running.
// Terminals report no key releases, so space toggles the held state;
// the left mouse button gives real press and release edges.
type PlayKeyMap struct {
	Toggle key.Binding
	Tap    key.Binding
	Pause  key.Binding
	Back   key.Binding
	Quit   key.Binding
	Help   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k PlayKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Tap, k.Pause, k.Back, k.Quit, k.Help}
}

// FullHelp returns key bindings for the full help view.
func (k PlayKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.Tap},
		{k.Pause, k.Back, k.Quit, k.Help},
	}
}

// DefaultPlayKeyMap returns default key bindings.
func DefaultPlayKeyMap() PlayKeyMap {
	return PlayKeyMap{
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space/mouse", "hold/release"),
		),
		Tap: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "tap"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more"),
		),
	}
}

// MenuKeyMap defines the key bindings for the variant picker.
type MenuKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Select  key.Binding
	Replays key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k MenuKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Replays, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k MenuKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Select}, {k.Replays, k.Quit}}
}

// DefaultMenuKeyMap returns default key bindings.
func DefaultMenuKeyMap() MenuKeyMap {
	return MenuKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k", "w"),
			key.WithHelp("up/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j", "s"),
			key.WithHelp("down/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "play"),
		),
		Replays: key.NewBinding(
			key.WithKeys("tab", "r"),
			key.WithHelp("tab", "replays"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// WatchKeyMap defines the key bindings for replay playback.
type WatchKeyMap struct {
	Pause  key.Binding
	Faster key.Binding
	Slower key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k WatchKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.Faster, k.Slower, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k WatchKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultWatchKeyMap returns default key bindings.
func DefaultWatchKeyMap() WatchKeyMap {
	return WatchKeyMap{
		Pause: key.NewBinding(
			key.WithKeys(" ", "p"),
			key.WithHelp("space", "pause"),
		),
		Faster: key.NewBinding(
			key.WithKeys("+", "=", "right", "l"),
			key.WithHelp("+", "faster"),
		),
		Slower: key.NewBinding(
			key.WithKeys("-", "left", "h"),
			key.WithHelp("-", "slower"),
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

// mouseAction maps a left mouse button event to an input edge.
// Some terminals report releases without a button, so any release counts.
func mouseAction(msg tea.MouseMsg) core.Action {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			return core.ActionPress
		}
	case tea.MouseActionRelease:
		return core.ActionRelease
	}
	return core.ActionNone
}
