package viewer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/SCKelemen/cli/renderer"
	"github.com/SCKelemen/color"
	design "github.com/SCKelemen/design-system"
	"github.com/SCKelemen/layout"
	tea "github.com/charmbracelet/bubbletea"

	diffengine "github.com/SCKelemen/diffengine"
)

// StatCard summarizes one buffer pair of the diff: how many lines the
// compared buffer adds, removes, and changes relative to the reference.
type StatCard struct {
	width   int
	height  int
	focused bool
	tokens  *design.DesignTokens

	label   string
	added   int
	removed int
	changed int

	// composited switches View to the layout/renderer screen-compositing
	// path instead of plain string assembly.
	composited bool
}

// StatCardOption configures a StatCard.
type StatCardOption func(*StatCard)

// WithStatCardTheme selects the design-system theme for the card's text
// color on the composited path.
func WithStatCardTheme(theme string) StatCardOption {
	return func(s *StatCard) { s.tokens = designTokensForTheme(theme) }
}

// WithStatCardComposited routes rendering through the layout/renderer
// screen compositor.
func WithStatCardComposited(on bool) StatCardOption {
	return func(s *StatCard) { s.composited = on }
}

// NewBlockStatCard walks blocks once and builds the card for the pair
// (ref, other): every block classifies as an addition (other has lines
// where ref has none), a removal (the reverse), or a change (both sides
// have lines).
func NewBlockStatCard(label string, blocks []*diffengine.Block, ref, other int, opts ...StatCardOption) *StatCard {
	added, removed, changed := blockPairStats(blocks, ref, other)
	s := &StatCard{
		width:   30,
		height:  6,
		tokens:  design.DefaultTheme(),
		label:   label,
		added:   added,
		removed: removed,
		changed: changed,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// blockPairStats classifies each block between buffer slots ref and other.
func blockPairStats(blocks []*diffengine.Block, ref, other int) (added, removed, changed int) {
	for _, b := range blocks {
		r, o := b.Count(ref), b.Count(other)
		switch {
		case r == 0 && o > 0:
			added += o
		case o == 0 && r > 0:
			removed += r
		case r > 0 && o > 0:
			changed += o
		}
	}
	return added, removed, changed
}

// Stats returns the card's added/removed/changed line counts.
func (s *StatCard) Stats() (added, removed, changed int) {
	return s.added, s.removed, s.changed
}

// Label returns the buffer name this card reports on.
func (s *StatCard) Label() string { return s.label }

// SetSize fixes the card's outer dimensions in cells.
func (s *StatCard) SetSize(w, h int) {
	s.width = w
	s.height = h
}

// Init implements Component.
func (s *StatCard) Init() tea.Cmd { return nil }

// Update implements Component.
func (s *StatCard) Update(msg tea.Msg) (Component, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		s.SetSize(msg.Width, msg.Height)
	}
	return s, nil
}

// View renders the card.
func (s *StatCard) View() string {
	if s.width == 0 {
		return ""
	}
	if s.composited {
		return s.renderComposited()
	}

	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(s.tokens.Accent)).
		Width(s.width - 2).
		Padding(0, 1)
	if s.focused {
		border = border.BorderForeground(lipgloss.Color(s.tokens.Color))
	}

	title := lipgloss.NewStyle().Bold(true).Render(s.label)
	counts := fmt.Sprintf("%s  %s  %s",
		lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50")).Render(fmt.Sprintf("+%d", s.added)),
		lipgloss.NewStyle().Foreground(lipgloss.Color("#F44336")).Render(fmt.Sprintf("-%d", s.removed)),
		lipgloss.NewStyle().Foreground(lipgloss.Color(s.tokens.Accent)).Render(fmt.Sprintf("~%d", s.changed)))
	sub := lipgloss.NewStyle().Faint(true).Render("vs reference")

	return border.Render(title+"\n"+counts+"\n"+sub) + "\n"
}

// renderComposited draws the card through the layout engine and the cli
// renderer's screen compositor.
func (s *StatCard) renderComposited() string {
	card := &layout.Node{
		Style: layout.Style{
			Display:       layout.DisplayFlex,
			FlexDirection: layout.FlexDirectionColumn,
			Width:         layout.Px(float64(s.width)),
			Height:        layout.Px(float64(s.height)),
			Padding: layout.Spacing{
				Top:    layout.Ch(0.5),
				Bottom: layout.Ch(0.5),
				Left:   layout.Ch(1),
				Right:  layout.Ch(1),
			},
		},
	}

	ctx := layout.NewLayoutContext(float64(s.width), float64(s.height), 16)
	layout.Layout(card, layout.Tight(float64(s.width), float64(s.height)), ctx)

	rgba, _ := color.HexToRGB(s.tokens.Color)
	var fg color.Color = rgba
	styled := renderer.NewStyledNode(card, &renderer.Style{Foreground: &fg})

	var content strings.Builder
	content.WriteString(s.label + "\n")
	fmt.Fprintf(&content, "+%d -%d ~%d\n", s.added, s.removed, s.changed)
	content.WriteString("vs reference\n")
	styled.Content = content.String()

	screen := renderer.NewScreen(s.width, s.height)
	screen.Render(styled)
	return screen.String()
}

// Focus implements Component.
func (s *StatCard) Focus() { s.focused = true }

// Blur implements Component.
func (s *StatCard) Blur() { s.focused = false }

// Focused implements Component.
func (s *StatCard) Focused() bool { return s.focused }
