// Package viewer is the reference terminal UI for the multi-buffer diff
// engine. It wires up to four synchronized DiffPanes over the engine's
// query surface, a command palette covering the diffupdate/diffsplit/
// diffpatch/diffget/diffput command set, a diffopt editor, a status bar
// reporting diff-mode flags, and modal dialogs for engine errors.
//
// Every visible piece implements Component, a Bubble Tea model extended
// with focus management, so the chrome composes the same way regardless of
// how many buffers participate. The diff engine itself stays a plain
// library; only this package knows about tea.Msg.
package viewer

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Component is a focusable Bubble Tea model. Update returns a Component
// rather than tea.Model so containers can hold concrete component values
// without re-asserting types on every message.
type Component interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Component, tea.Cmd)
	View() string

	Focus()
	Blur()
	Focused() bool
}

// Application routes messages to a set of Components: window sizes and
// animation ticks are broadcast, key presses go to the focused component
// only, and tab/shift+tab cycle focus. The diff viewer's Model uses one
// Application for its fixed chrome while managing the per-buffer panes
// itself (pane count changes as buffers register).
type Application struct {
	width, height int
	components    []Component
	focused       int
}

// NewApplication creates an empty application with nothing focused.
func NewApplication() *Application {
	return &Application{focused: -1}
}

// AddComponent appends c; the first component added receives focus.
func (a *Application) AddComponent(c Component) {
	a.components = append(a.components, c)
	if a.focused < 0 {
		a.focused = 0
		c.Focus()
	}
}

// FocusComponent moves focus to the component at index.
func (a *Application) FocusComponent(index int) {
	if index < 0 || index >= len(a.components) || index == a.focused {
		return
	}
	if a.focused >= 0 {
		a.components[a.focused].Blur()
	}
	a.focused = index
	a.components[index].Focus()
}

// Init initializes every component.
func (a *Application) Init() tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(a.components))
	for _, c := range a.components {
		cmds = append(cmds, c.Init())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (a *Application) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return a, tea.Quit
		case "tab":
			a.cycleFocus(1)
			return a, nil
		case "shift+tab":
			a.cycleFocus(-1)
			return a, nil
		}
		if a.focused >= 0 {
			var cmd tea.Cmd
			a.components[a.focused], cmd = a.components[a.focused].Update(msg)
			return a, cmd
		}
		return a, nil

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, a.broadcast(msg)
	}

	if isTickMessage(msg) {
		return a, a.broadcast(msg)
	}
	if a.focused >= 0 {
		var cmd tea.Cmd
		a.components[a.focused], cmd = a.components[a.focused].Update(msg)
		return a, cmd
	}
	return a, nil
}

// broadcast sends msg to every component, focused or not.
func (a *Application) broadcast(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	for i, c := range a.components {
		var cmd tea.Cmd
		a.components[i], cmd = c.Update(msg)
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// cycleFocus moves focus by dir (+1 forward, -1 backward), wrapping.
func (a *Application) cycleFocus(dir int) {
	n := len(a.components)
	if n == 0 {
		return
	}
	if a.focused >= 0 {
		a.components[a.focused].Blur()
	}
	a.focused = ((a.focused+dir)%n + n) % n
	a.components[a.focused].Focus()
}

// View concatenates every component's view in insertion order.
func (a *Application) View() string {
	if len(a.components) == 0 {
		return "No components"
	}
	var b strings.Builder
	for _, c := range a.components {
		b.WriteString(c.View())
	}
	return b.String()
}

// isTickMessage reports whether msg drives an animation and therefore must
// reach every component, not just the focused one.
func isTickMessage(msg tea.Msg) bool {
	switch msg.(type) {
	case spinnerTickMsg, rebuildTickMsg:
		return true
	}
	name := fmt.Sprintf("%T", msg)
	return strings.Contains(name, "tick") || strings.Contains(name, "Tick")
}
