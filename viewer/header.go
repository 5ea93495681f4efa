package viewer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	design "github.com/SCKelemen/design-system"
	tea "github.com/charmbracelet/bubbletea"
)

// BufferHeader is the one-line title bar above each diff pane: the buffer's
// name, a marker when it is the reference buffer every other pane is
// compared against, and a right-aligned line count.
type BufferHeader struct {
	width   int
	focused bool

	name        string
	isReference bool
	lineCount   int

	nameStyle lipgloss.Style
	refStyle  lipgloss.Style
	dimStyle  lipgloss.Style
}

// BufferHeaderOption configures a BufferHeader.
type BufferHeaderOption func(*BufferHeader)

// WithHeaderTheme selects the design-system theme for the header's accent
// color (the reference marker).
func WithHeaderTheme(theme string) BufferHeaderOption {
	return func(h *BufferHeader) {
		h.applyTokens(designTokensForTheme(theme))
	}
}

// NewBufferHeader creates a header for one pane. isReference marks the
// buffer the rebuild driver diffs every other buffer against.
func NewBufferHeader(name string, isReference bool, opts ...BufferHeaderOption) *BufferHeader {
	h := &BufferHeader{
		name:        name,
		isReference: isReference,
		nameStyle:   lipgloss.NewStyle().Bold(true),
		dimStyle:    lipgloss.NewStyle().Faint(true),
	}
	h.applyTokens(design.DefaultTheme())
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *BufferHeader) applyTokens(tokens *design.DesignTokens) {
	if tokens == nil {
		return
	}
	h.refStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Accent)).Bold(true)
}

// SetLineCount updates the right-aligned line count. Zero hides it.
func (h *BufferHeader) SetLineCount(n int) { h.lineCount = n }

// Name returns the buffer name this header displays.
func (h *BufferHeader) Name() string { return h.name }

// IsReference reports whether this header marks the reference buffer.
func (h *BufferHeader) IsReference() bool { return h.isReference }

// Init implements Component.
func (h *BufferHeader) Init() tea.Cmd { return nil }

// Update implements Component.
func (h *BufferHeader) Update(msg tea.Msg) (Component, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		h.width = msg.Width
	}
	return h, nil
}

// View renders the header line.
func (h *BufferHeader) View() string {
	left := h.nameStyle.Render(h.name)
	if h.isReference {
		left += " " + h.refStyle.Render("[reference]")
	}

	right := ""
	if h.lineCount > 0 {
		right = h.dimStyle.Render(fmt.Sprintf("%dL", h.lineCount))
	}

	if h.width <= 0 {
		if right == "" {
			return left + "\n"
		}
		return left + "  " + right + "\n"
	}

	gap := h.width - visibleWidth(left) - visibleWidth(right)
	if gap < 1 {
		return padTo(left, h.width) + "\n"
	}
	return left + strings.Repeat(" ", gap) + right + "\n"
}

// Focus implements Component.
func (h *BufferHeader) Focus() { h.focused = true }

// Blur implements Component.
func (h *BufferHeader) Blur() { h.focused = false }

// Focused implements Component.
func (h *BufferHeader) Focused() bool { return h.focused }
