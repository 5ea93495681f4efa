package viewer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	design "github.com/SCKelemen/design-system"

	diffengine "github.com/SCKelemen/diffengine"
)

// DiffPane renders one participating buffer's lines, annotated with the
// engine's per-line classification, as one scrollable column of a
// synchronized multi-buffer diff view. Scrolling is delegated to a
// viewport.Model rather than hand-tracked, so its top line can be mapped
// into every other pane's coordinate space via the engine's MapTopline
// to keep all panes showing matching diff territory.
type DiffPane struct {
	width   int
	height  int
	focused bool

	engine *diffengine.Engine
	buf    diffengine.Buffer
	label  string // filename or buffer name shown in the header

	vp       viewport.Model
	cursor   diffengine.Lnum // line the cursor rests on, for fold toggling and transfer
	expanded map[diffengine.Lnum]bool // fold regions the user opened

	colors lineClassColors // theme-derived colors for each LineClass

	lastErr error // set by View if a stale-list rebuild failed
}

// DiffPaneOption configures a DiffPane.
type DiffPaneOption func(*DiffPane)

// WithDiffPaneLabel sets the header label (usually the buffer's filename).
func WithDiffPaneLabel(label string) DiffPaneOption {
	return func(p *DiffPane) {
		p.label = label
	}
}

// WithDiffPaneTop sets the initial scroll position.
func WithDiffPaneTop(top diffengine.Lnum) DiffPaneOption {
	return func(p *DiffPane) {
		p.vp.SetYOffset(int(top) - 1)
	}
}

// WithDiffPaneTheme selects the design-system theme used to color this
// pane's Changed/InsertedOrDeleted/filler markers (see theme_tokens.go).
func WithDiffPaneTheme(theme string) DiffPaneOption {
	return func(p *DiffPane) {
		p.colors = lineClassColorsForTheme(designTokensForTheme(theme))
	}
}

// NewDiffPane creates a pane over buf, tracked by engine.
func NewDiffPane(engine *diffengine.Engine, buf diffengine.Buffer, opts ...DiffPaneOption) *DiffPane {
	p := &DiffPane{
		engine:   engine,
		buf:      buf,
		vp:       viewport.New(0, 0),
		cursor:   1,
		expanded: make(map[diffengine.Lnum]bool),
		colors:   lineClassColorsForTheme(design.DefaultTheme()),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Init initializes the pane.
func (p *DiffPane) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (p *DiffPane) Update(msg tea.Msg) (Component, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width = msg.Width
		p.height = msg.Height
		p.vp.Width = msg.Width
		if h := msg.Height - 1; h > 0 { // header row isn't part of the viewport
			p.vp.Height = h
		} else {
			p.vp.Height = 0
		}
		return p, nil

	case tea.KeyMsg:
		if !p.focused {
			return p, nil
		}
		switch msg.String() {
		case "j", "down":
			p.cursor++
			p.vp.LineDown(1)
		case "k", "up":
			if p.cursor > 1 {
				p.cursor--
			}
			p.vp.LineUp(1)
		case "ctrl+o", "enter", " ":
			p.Toggle(p.cursor)
		case "pgdown", "ctrl+f":
			p.vp.LineDown(p.vp.Height)
		case "pgup", "ctrl+b":
			p.vp.LineUp(p.vp.Height)
		}
		return p, nil
	}

	var cmd tea.Cmd
	p.vp, cmd = p.vp.Update(msg)
	return p, cmd
}

// TopLine returns the first visible buffer line, derived from the
// viewport's scroll offset.
func (p *DiffPane) TopLine() diffengine.Lnum {
	return diffengine.Lnum(p.vp.YOffset + 1)
}

// SetTopLine scrolls the viewport so lnum becomes the first visible line,
// used to keep panes in sync via MapTopline. The offset is clamped to the
// viewport's scroll range for the content it last rendered, so a pane that
// has not rendered yet stays at line 1.
func (p *DiffPane) SetTopLine(lnum diffengine.Lnum) {
	off := int(lnum) - 1
	if off < 0 {
		off = 0
	}
	p.vp.SetYOffset(off)
}

// Err returns the error from the most recent rebuild triggered by View, if
// the list was stale and the differ failed.
func (p *DiffPane) Err() error { return p.lastErr }

// View renders the pane.
func (p *DiffPane) View() string {
	if p.buf == nil {
		return ""
	}
	if p.engine.Invalid() {
		p.lastErr = p.engine.Rebuild()
	}

	icon := "\033[33m⏺\033[0m"
	header := fmt.Sprintf("%s \033[1m%s\033[0m\n", icon, p.label)

	var content strings.Builder
	lnum := diffengine.Lnum(1)
	for int(lnum) <= p.buf.LineCount() {
		if p.foldableHere(lnum) {
			n := p.foldRunLength(lnum)
			if !p.expanded[lnum] {
				content.WriteString(fmt.Sprintf("  \033[2m⎿  … %d unchanged lines (ctrl+o to expand)\033[0m\n", n))
				lnum += diffengine.Lnum(n)
				continue
			}
		}

		content.WriteString(p.renderLine(lnum))
		lnum++
	}

	p.vp.SetContent(content.String())
	return header + p.vp.View()
}

// Focus is called when this component receives focus.
func (p *DiffPane) Focus() { p.focused = true }

// Blur is called when this component loses focus.
func (p *DiffPane) Blur() { p.focused = false }

// Focused returns whether this component is currently focused.
func (p *DiffPane) Focused() bool { return p.focused }

// Toggle expands or collapses the fold region starting at lnum.
func (p *DiffPane) Toggle(lnum diffengine.Lnum) {
	p.expanded[lnum] = !p.expanded[lnum]
}

// Expand opens the fold region starting at lnum.
func (p *DiffPane) Expand(lnum diffengine.Lnum) { p.expanded[lnum] = true }

// Collapse closes the fold region starting at lnum.
func (p *DiffPane) Collapse(lnum diffengine.Lnum) { p.expanded[lnum] = false }

// IsExpanded reports whether the fold region starting at lnum is open.
func (p *DiffPane) IsExpanded(lnum diffengine.Lnum) bool { return p.expanded[lnum] }

// foldableHere reports whether lnum sits far enough from every block's edge
// to be collapsible under the engine's context setting.
func (p *DiffPane) foldableHere(lnum diffengine.Lnum) bool {
	return p.engine.FoldContains(p.buf, lnum)
}

// foldRunLength returns how many consecutive lines starting at lnum remain
// foldable.
func (p *DiffPane) foldRunLength(lnum diffengine.Lnum) int {
	n := 0
	for int(lnum)+n <= p.buf.LineCount() && p.engine.FoldContains(p.buf, lnum+diffengine.Lnum(n)) {
		n++
	}
	return n
}

// renderLine renders a single buffer line styled by its diff classification.
func (p *DiffPane) renderLine(lnum diffengine.Lnum) string {
	text := p.buf.Line(lnum)
	class, fill, err := p.engine.ClassifyLine(p.buf, lnum)
	if err != nil {
		return fmt.Sprintf("    %s\n", text)
	}

	var out strings.Builder
	if class == diffengine.ClassFillerAbove && fill > 0 {
		for i := 0; i < fill; i++ {
			out.WriteString(fmt.Sprintf("  %s~%s\n", p.colors.Filler, p.colors.Reset))
		}
	}

	switch class {
	case diffengine.ClassChanged:
		out.WriteString(p.renderChangedLine(lnum, text))
	case diffengine.ClassInsertedOrDeleted:
		out.WriteString(fmt.Sprintf("  %s+ %s%s\n", p.colors.forClass(class), text, p.colors.Reset))
	default:
		out.WriteString(fmt.Sprintf("  %s  %s%s\n", p.colors.Filler, text, p.colors.Reset))
	}
	return out.String()
}

// renderChangedLine highlights the intra-line span IntraLineDiff reports.
func (p *DiffPane) renderChangedLine(lnum diffengine.Lnum, text string) string {
	start, end, ok := p.engine.IntraLineDiff(p.buf, lnum)
	if !ok || start >= end {
		return fmt.Sprintf("  %s! %s%s\n", p.colors.Changed, text, p.colors.Reset)
	}
	return fmt.Sprintf("  %s! %s%s%s%s%s%s%s\n",
		p.colors.Changed, text[:start], p.colors.ChangedHighlight, text[start:end], p.colors.Reset, p.colors.Changed, text[end:], p.colors.Reset)
}
