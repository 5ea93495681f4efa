package viewer

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	tea "github.com/charmbracelet/bubbletea"

	diffengine "github.com/SCKelemen/diffengine"
)

// ModalSeverity colors a modal's border to match how urgently the user
// needs to act. ShowEngineError derives it from the engine's error kinds
// so a retryable mistake (ambiguous target, unknown buffer) reads
// differently from a failure that left the diff list partial.
type ModalSeverity int

const (
	// SeverityInfo is the default for plain alerts, confirms, and prompts.
	SeverityInfo ModalSeverity = iota
	// SeverityWarning marks a user-correctable mistake: retrying with
	// different input fixes it.
	SeverityWarning
	// SeverityError marks a failure that left the engine's diff list in a
	// partial or stale state, not just a bad argument.
	SeverityError
)

func (s ModalSeverity) borderColor() lipgloss.Color {
	switch s {
	case SeverityWarning:
		return lipgloss.Color("#FFB300")
	case SeverityError:
		return lipgloss.Color("#F44336")
	default:
		return lipgloss.Color("#26C6DA")
	}
}

// ModalButton is one selectable action at the bottom of a modal. For input
// modals the Action receives the entered text.
type ModalButton struct {
	Label  string
	Action func(value string) tea.Cmd
}

// Modal is the single dialog surface of the viewer: alerts for engine
// errors, confirms, and text prompts (explicit transfer targets, address
// ranges). Only one dialog shows at a time.
type Modal struct {
	width   int
	height  int
	visible bool
	focused bool

	severity ModalSeverity
	title    string
	message  string
	buttons  []ModalButton
	selected int

	input    textinput.Model
	hasInput bool

	onCancel func() tea.Cmd
}

// NewModal creates a hidden modal.
func NewModal() *Modal {
	ti := textinput.New()
	ti.CharLimit = 200
	ti.Width = 40
	return &Modal{input: ti}
}

// Init implements Component.
func (m *Modal) Init() tea.Cmd {
	if m.hasInput {
		return textinput.Blink
	}
	return nil
}

// Update implements Component.
func (m *Modal) Update(msg tea.Msg) (Component, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if !m.visible || !m.focused {
			return m, nil
		}
		switch msg.Type {
		case tea.KeyEsc:
			m.Hide()
			if m.onCancel != nil {
				return m, m.onCancel()
			}
			return m, nil

		case tea.KeyEnter:
			if m.selected >= len(m.buttons) {
				return m, nil
			}
			btn := m.buttons[m.selected]
			value := ""
			if m.hasInput {
				value = m.input.Value()
			}
			m.Hide()
			if btn.Action != nil {
				return m, btn.Action(value)
			}
			return m, nil

		case tea.KeyTab, tea.KeyRight:
			m.selected = (m.selected + 1) % len(m.buttons)
			return m, nil

		case tea.KeyShiftTab, tea.KeyLeft:
			m.selected = (m.selected + len(m.buttons) - 1) % len(m.buttons)
			return m, nil
		}
	}

	if m.visible && m.focused && m.hasInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the dialog box.
func (m *Modal) View() string {
	if !m.visible || m.width == 0 {
		return ""
	}

	boxWidth := min(60, m.width-4)
	dim := lipgloss.NewStyle().Faint(true)

	var rows []string
	for _, line := range wrapText(m.message, boxWidth-4) {
		rows = append(rows, line)
	}
	if m.hasInput {
		rows = append(rows, "", m.input.View())
	}

	var btns []string
	for i, b := range m.buttons {
		label := "[ " + b.Label + " ]"
		if i == m.selected {
			label = lipgloss.NewStyle().Reverse(true).Render(label)
		} else {
			label = dim.Render(label)
		}
		btns = append(btns, label)
	}
	rows = append(rows, "", strings.Join(btns, "  "))
	rows = append(rows, dim.Render("tab: navigate · enter: confirm · esc: cancel"))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.severity.borderColor()).
		Width(boxWidth).
		Padding(0, 1)

	title := lipgloss.NewStyle().Bold(true).Foreground(m.severity.borderColor()).Render(m.title)
	return "\n" + title + "\n" + box.Render(strings.Join(rows, "\n")) + "\n"
}

// Focus implements Component.
func (m *Modal) Focus() {
	m.focused = true
	if m.hasInput {
		m.input.Focus()
	}
}

// Blur implements Component.
func (m *Modal) Blur() {
	m.focused = false
	m.input.Blur()
}

// Focused implements Component.
func (m *Modal) Focused() bool { return m.focused }

// IsVisible reports whether a dialog is showing.
func (m *Modal) IsVisible() bool { return m.visible }

// Hide closes the dialog.
func (m *Modal) Hide() {
	m.visible = false
	m.input.Blur()
}

func (m *Modal) show() {
	m.visible = true
	m.focused = true
	m.selected = 0
	if m.hasInput {
		m.input.SetValue("")
		m.input.Focus()
	}
}

// ShowAlert displays a one-button message dialog.
func (m *Modal) ShowAlert(title, message string, onOK func() tea.Cmd) {
	m.severity = SeverityInfo
	m.title = title
	m.message = message
	m.hasInput = false
	m.onCancel = nil
	m.buttons = []ModalButton{{Label: "OK", Action: func(string) tea.Cmd {
		if onOK != nil {
			return onOK()
		}
		return nil
	}}}
	m.show()
}

// ShowConfirm displays a yes/no dialog.
func (m *Modal) ShowConfirm(title, message string, onYes, onNo func() tea.Cmd) {
	m.severity = SeverityInfo
	m.title = title
	m.message = message
	m.hasInput = false
	m.onCancel = onNo
	m.buttons = []ModalButton{
		{Label: "Yes", Action: func(string) tea.Cmd {
			if onYes != nil {
				return onYes()
			}
			return nil
		}},
		{Label: "No", Action: func(string) tea.Cmd {
			if onNo != nil {
				return onNo()
			}
			return nil
		}},
	}
	m.show()
}

// ShowInput displays a text-prompt dialog; the entered value is handed to
// onOK.
func (m *Modal) ShowInput(title, message, placeholder string, onOK func(string) tea.Cmd, onCancel func() tea.Cmd) {
	m.severity = SeverityInfo
	m.title = title
	m.message = message
	m.hasInput = true
	m.input.Placeholder = placeholder
	m.onCancel = onCancel
	m.buttons = []ModalButton{
		{Label: "OK", Action: func(v string) tea.Cmd {
			if onOK != nil {
				return onOK(v)
			}
			return nil
		}},
		{Label: "Cancel", Action: func(string) tea.Cmd {
			if onCancel != nil {
				return onCancel()
			}
			return nil
		}},
	}
	m.show()
}

// classifyEngineError maps an engine error to a dialog title and severity.
// Capacity, participation, ambiguity, and lookup errors describe a
// correctable argument; differ and allocation failures left engine state
// partial.
func classifyEngineError(err error) (ModalSeverity, string) {
	switch {
	case errors.Is(err, diffengine.ErrCapacityExceeded):
		return SeverityWarning, "Capacity Exceeded"
	case errors.Is(err, diffengine.ErrNotParticipating):
		return SeverityWarning, "Not Participating"
	case errors.Is(err, diffengine.ErrAmbiguous):
		return SeverityWarning, "Ambiguous Target"
	case errors.Is(err, diffengine.ErrNotFound):
		return SeverityWarning, "Target Not Found"
	case errors.Is(err, diffengine.ErrDifferFailed):
		return SeverityError, "Differ Failed"
	case errors.Is(err, diffengine.ErrAllocationFailed):
		return SeverityError, "Allocation Failed"
	default:
		return SeverityError, "Diff Engine"
	}
}

// ShowEngineError displays an alert for an error surfaced from the diff
// engine, with the border colored by classifyEngineError's severity.
func (m *Modal) ShowEngineError(err error, onOK func() tea.Cmd) {
	severity, title := classifyEngineError(err)
	m.ShowAlert(title, err.Error(), onOK)
	m.severity = severity
}

// wrapText word-wraps text to the given width.
func wrapText(text string, width int) []string {
	if width <= 0 {
		return []string{text}
	}
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}
	var lines []string
	var cur strings.Builder
	for _, w := range words {
		switch {
		case cur.Len() == 0:
			cur.WriteString(w)
		case cur.Len()+1+len(w) <= width:
			cur.WriteString(" ")
			cur.WriteString(w)
		default:
			lines = append(lines, cur.String())
			cur.Reset()
			cur.WriteString(w)
		}
	}
	if cur.Len() > 0 {
		lines = append(lines, cur.String())
	}
	return lines
}
