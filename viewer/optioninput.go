package viewer

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	diffengine "github.com/SCKelemen/diffengine"
)

// OptionInput is a single-line editor for the diffopt string.
// It validates on submit via diffengine.ParseOptions and
// reports the last parse error so the host can surface it in a Modal.
type OptionInput struct {
	width       int
	height      int
	textarea    textarea.Model
	focused     bool
	placeholder string
	lastErr     error
	onApply     func(diffengine.Options) tea.Cmd
}

// NewOptionInput creates a new diffopt editor, pre-filled with initial.
func NewOptionInput(initial string) *OptionInput {
	ta := textarea.New()
	ta.Placeholder = "filler,icase,iwhite,context:3"
	ta.ShowLineNumbers = false
	ta.CharLimit = 200
	ta.SetHeight(1)
	ta.SetValue(initial)

	return &OptionInput{
		textarea:    ta,
		placeholder: "filler,icase,iwhite,context:3",
		height:      3, // 1 line + border
	}
}

// OnApply registers fn to run when a syntactically valid diffopt string is
// submitted (Ctrl+J or alt+Enter, matching the rest of the viewer's
// submit-on-enter convention).
func (o *OptionInput) OnApply(fn func(diffengine.Options) tea.Cmd) {
	o.onApply = fn
}

// Err returns the error from the most recent failed ParseOptions call, if
// any.
func (o *OptionInput) Err() error { return o.lastErr }

// Init initializes the option input.
func (o *OptionInput) Init() tea.Cmd {
	return textarea.Blink
}

// Update handles messages.
func (o *OptionInput) Update(msg tea.Msg) (Component, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		o.width = msg.Width
		o.textarea.SetWidth(msg.Width - 4)

	case tea.KeyMsg:
		if !o.focused {
			return o, nil
		}

		if msg.Type == tea.KeyCtrlJ || (msg.Type == tea.KeyEnter && msg.Alt) {
			raw := strings.TrimSpace(o.textarea.Value())
			opts, err := diffengine.ParseOptions(raw)
			o.lastErr = err
			if err != nil {
				return o, nil
			}
			if o.onApply != nil {
				return o, o.onApply(opts)
			}
			return o, nil
		}

		if msg.Type == tea.KeyCtrlD {
			o.textarea.Reset()
			o.lastErr = nil
			return o, nil
		}
	}

	if o.focused {
		o.textarea, cmd = o.textarea.Update(msg)
	}

	return o, cmd
}

// View renders the option input.
func (o *OptionInput) View() string {
	if o.width == 0 {
		return ""
	}

	var b strings.Builder

	b.WriteString("\033[2m┌")
	b.WriteString(strings.Repeat("─", o.width-2))
	b.WriteString("┐\033[0m\n")

	line := o.textarea.View()
	b.WriteString("\033[2m│\033[0m ")
	b.WriteString(line)
	visualLen := len(stripANSI(line))
	if visualLen < o.width-4 {
		b.WriteString(strings.Repeat(" ", o.width-4-visualLen))
	}
	b.WriteString(" \033[2m│\033[0m\n")

	b.WriteString("\033[2m└")
	hint := "diffopt: Ctrl+J applies · Ctrl+D clears"
	if o.lastErr != nil {
		hint = o.lastErr.Error()
	}
	hintLen := len(hint)
	if hintLen < o.width-4 {
		b.WriteString(" \033[3m")
		b.WriteString(hint)
		b.WriteString("\033[0m\033[2m ")
		b.WriteString(strings.Repeat("─", o.width-hintLen-6))
	} else {
		b.WriteString(strings.Repeat("─", o.width-2))
	}
	b.WriteString("┘\033[0m\n")

	return b.String()
}

// Focus is called when this component receives focus.
func (o *OptionInput) Focus() {
	o.focused = true
	o.textarea.Focus()
}

// Blur is called when this component loses focus.
func (o *OptionInput) Blur() {
	o.focused = false
	o.textarea.Blur()
}

// Focused returns whether this component is currently focused.
func (o *OptionInput) Focused() bool {
	return o.focused
}

// Value returns the current diffopt text.
func (o *OptionInput) Value() string {
	return o.textarea.Value()
}

// SetValue replaces the current diffopt text.
func (o *OptionInput) SetValue(value string) {
	o.textarea.SetValue(value)
}
