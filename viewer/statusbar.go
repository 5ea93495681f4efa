package viewer

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	design "github.com/SCKelemen/design-system"
	tea "github.com/charmbracelet/bubbletea"

	diffengine "github.com/SCKelemen/diffengine"
)

// StatusBar is the bottom line of the viewer: diff-mode state on the left
// (active comparison flags, pending rebuild) and key hints on the right.
type StatusBar struct {
	width   int
	focused bool
	message string

	textStyle lipgloss.Style
	hintStyle lipgloss.Style
}

// StatusBarOption configures a StatusBar.
type StatusBarOption func(*StatusBar)

// WithStatusBarDesignTokens applies design-system colors.
func WithStatusBarDesignTokens(tokens *design.DesignTokens) StatusBarOption {
	return func(s *StatusBar) { s.applyTokens(tokens) }
}

// WithStatusBarTheme applies a named design-system theme.
func WithStatusBarTheme(theme string) StatusBarOption {
	return func(s *StatusBar) { s.applyTokens(designTokensForTheme(theme)) }
}

// NewStatusBar creates a status bar reading "Ready".
func NewStatusBar(opts ...StatusBarOption) *StatusBar {
	s := &StatusBar{
		message:   "Ready",
		textStyle: lipgloss.NewStyle().Faint(true),
		hintStyle: lipgloss.NewStyle().Faint(true),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *StatusBar) applyTokens(tokens *design.DesignTokens) {
	if tokens == nil {
		return
	}
	s.textStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Color))
	s.hintStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Accent))
}

// SetMessage replaces the left-hand status text.
func (s *StatusBar) SetMessage(msg string) { s.message = msg }

// Message returns the current left-hand status text.
func (s *StatusBar) Message() string { return s.message }

// SetDiffModeMessage formats the engine's option flags and rebuild state
// into the status message: "ICASE IWHITE | rebuild pending", or "Ready"
// when nothing is set.
func (s *StatusBar) SetDiffModeMessage(opts diffengine.Options, pendingRebuild bool) {
	var flags []string
	if opts.ICase {
		flags = append(flags, "ICASE")
	}
	if opts.IWhite {
		flags = append(flags, "IWHITE")
	}
	if opts.Filler {
		flags = append(flags, "FILLER")
	}

	msg := strings.Join(flags, " ")
	if pendingRebuild {
		if msg != "" {
			msg += " | "
		}
		msg += "rebuild pending"
	}
	if msg == "" {
		msg = "Ready"
	}
	s.SetMessage(msg)
}

// Init implements Component.
func (s *StatusBar) Init() tea.Cmd { return nil }

// Update implements Component.
func (s *StatusBar) Update(msg tea.Msg) (Component, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		s.width = msg.Width
	}
	return s, nil
}

// View renders the bar. Hints mirror vim's diff-mode vocabulary: ]c / [c
// jump between change blocks, do / dp are diffget / diffput.
func (s *StatusBar) View() string {
	if s.width == 0 {
		return ""
	}

	left := s.message
	right := s.hintStyle.Render("]c [c: blocks · do dp: get/put · ctrl+k: commands · q: quit")

	gap := s.width - visibleWidth(left) - visibleWidth(right)
	if gap < 1 {
		line := padTo(left, s.width)
		if s.focused {
			return lipgloss.NewStyle().Reverse(true).Render(line) + "\n"
		}
		return s.textStyle.Render(line) + "\n"
	}

	line := s.textStyle.Render(left) + strings.Repeat(" ", gap) + right
	if s.focused {
		return lipgloss.NewStyle().Reverse(true).Render(stripANSI(line)) + "\n"
	}
	return line + "\n"
}

// Focus implements Component.
func (s *StatusBar) Focus() { s.focused = true }

// Blur implements Component.
func (s *StatusBar) Blur() { s.focused = false }

// Focused implements Component.
func (s *StatusBar) Focused() bool { return s.focused }
