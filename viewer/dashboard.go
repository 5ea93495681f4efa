package viewer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	tea "github.com/charmbracelet/bubbletea"

	diffengine "github.com/SCKelemen/diffengine"
)

// Dashboard is the diff summary panel: one StatCard per non-reference
// buffer, laid out in a row through the same flexbox that sizes the panes.
// The engine's block list never pushes change notifications, so the Model
// calls RefreshFromEngine after every rebuild or transfer.
type Dashboard struct {
	width   int
	height  int
	focused bool

	title string
	cards []*StatCard
}

// DashboardOption configures a Dashboard.
type DashboardOption func(*Dashboard)

// WithDashboardTitle sets the panel title.
func WithDashboardTitle(title string) DashboardOption {
	return func(d *Dashboard) { d.title = title }
}

// NewDiffDashboard builds a dashboard populated from engine's current
// block list.
func NewDiffDashboard(engine *diffengine.Engine, title string, opts ...DashboardOption) *Dashboard {
	d := &Dashboard{title: title}
	for _, opt := range opts {
		opt(d)
	}
	d.RefreshFromEngine(engine)
	return d
}

// RefreshFromEngine recomputes every card from engine's registered buffers
// and block list, replacing the dashboard's cards wholesale. The first
// registered buffer is the reference every other buffer reports against.
func (d *Dashboard) RefreshFromEngine(engine *diffengine.Engine) {
	ref := -1
	for i := 0; i < diffengine.MaxBuffers; i++ {
		if engine.BufferAt(i) != nil {
			ref = i
			break
		}
	}
	if ref < 0 {
		d.cards = nil
		return
	}

	blocks := engine.Blocks()
	var cards []*StatCard
	for i := 0; i < diffengine.MaxBuffers; i++ {
		if i == ref {
			continue
		}
		buf := engine.BufferAt(i)
		if buf == nil {
			continue
		}
		label := fmt.Sprintf("buffer %d", i)
		if named, ok := buf.(diffengine.Named); ok {
			label = named.BufferName()
		}
		cards = append(cards, NewBlockStatCard(label, blocks, ref, i))
	}
	d.cards = cards
	d.sizeCards()
}

// Cards returns the current stat cards in slot order.
func (d *Dashboard) Cards() []*StatCard { return d.cards }

// sizeCards distributes the dashboard's width over the cards via the
// column flexbox.
func (d *Dashboard) sizeCards() {
	if d.width == 0 || len(d.cards) == 0 {
		return
	}
	for i, w := range paneWidths(d.width, len(d.cards)) {
		d.cards[i].SetSize(w, 5)
	}
}

// Init implements Component.
func (d *Dashboard) Init() tea.Cmd { return nil }

// Update implements Component.
func (d *Dashboard) Update(msg tea.Msg) (Component, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		d.width = msg.Width
		d.height = msg.Height
		d.sizeCards()
	}
	return d, nil
}

// View renders the title bar and the row of cards.
func (d *Dashboard) View() string {
	if d.width == 0 || len(d.cards) == 0 {
		return ""
	}

	var b strings.Builder
	if d.title != "" {
		b.WriteString(lipgloss.NewStyle().Bold(true).Render(d.title))
		b.WriteString("\n")
	}

	views := make([]string, len(d.cards))
	for i, c := range d.cards {
		views[i] = c.View()
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, views...))
	return b.String()
}

// Focus implements Component.
func (d *Dashboard) Focus() { d.focused = true }

// Blur implements Component.
func (d *Dashboard) Blur() { d.focused = false }

// Focused implements Component.
func (d *Dashboard) Focused() bool { return d.focused }
