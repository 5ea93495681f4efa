package viewer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	tea "github.com/charmbracelet/bubbletea"
)

// Command is one palette entry: a named action from the diff command set
// (diffupdate, diffsplit, diffpatch, diffget, diffput, diffopt).
type Command struct {
	Name        string
	Description string
	Category    string
	Keybinding  string
	Action      func() tea.Cmd

	// Enabled reports whether the command can currently run. diffget and
	// diffput need a focused pane and a resolvable transfer target; a nil
	// Enabled means always runnable. Disabled commands stay listed so the
	// palette still documents them, but render dimmed; Enter on one closes
	// the palette without running its Action.
	Enabled func() bool
}

func (c Command) enabled() bool {
	return c.Enabled == nil || c.Enabled()
}

// CommandPalette is the searchable launcher for the diff command set,
// opened with ctrl+k and closed with esc. Typing filters by name,
// description, and category; enter closes the palette and runs the selected
// command.
type CommandPalette struct {
	width   int
	height  int
	visible bool
	focused bool

	input    textinput.Model
	commands []Command
	filtered []Command
	selected int

	maxRows int
}

// NewCommandPalette creates a hidden palette over commands.
func NewCommandPalette(commands []Command) *CommandPalette {
	ti := textinput.New()
	ti.Placeholder = "Type to search commands..."
	ti.CharLimit = 100
	ti.Width = 50
	ti.Focus()

	return &CommandPalette{
		input:    ti,
		commands: commands,
		filtered: commands,
		maxRows:  8,
	}
}

// Init implements Component.
func (cp *CommandPalette) Init() tea.Cmd { return textinput.Blink }

// Update implements Component.
func (cp *CommandPalette) Update(msg tea.Msg) (Component, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		cp.width = msg.Width
		cp.height = msg.Height
		return cp, nil

	case tea.KeyMsg:
		if !cp.focused {
			return cp, nil
		}
		if !cp.visible {
			if msg.Type == tea.KeyCtrlK {
				cp.Show()
			}
			return cp, nil
		}

		switch msg.Type {
		case tea.KeyEsc:
			cp.Hide()
			return cp, nil
		case tea.KeyUp:
			if cp.selected > 0 {
				cp.selected--
			}
			return cp, nil
		case tea.KeyDown:
			if cp.selected < len(cp.filtered)-1 {
				cp.selected++
			}
			return cp, nil
		case tea.KeyEnter:
			cp.Hide()
			if cp.selected < len(cp.filtered) {
				cmd := cp.filtered[cp.selected]
				if cmd.Action != nil && cmd.enabled() {
					return cp, cmd.Action()
				}
			}
			return cp, nil
		}

		var cmd tea.Cmd
		cp.input, cmd = cp.input.Update(msg)
		cp.filter()
		cp.selected = 0
		return cp, cmd
	}

	if cp.visible && cp.focused {
		var cmd tea.Cmd
		cp.input, cmd = cp.input.Update(msg)
		cp.filter()
		return cp, cmd
	}
	return cp, nil
}

// filter narrows the command list to entries matching the query in name,
// description, or category.
func (cp *CommandPalette) filter() {
	query := strings.ToLower(strings.TrimSpace(cp.input.Value()))
	if query == "" {
		cp.filtered = cp.commands
		return
	}
	var out []Command
	for _, c := range cp.commands {
		if strings.Contains(strings.ToLower(c.Name), query) ||
			strings.Contains(strings.ToLower(c.Description), query) ||
			strings.Contains(strings.ToLower(c.Category), query) {
			out = append(out, c)
		}
	}
	cp.filtered = out
}

// View renders the palette box.
func (cp *CommandPalette) View() string {
	if !cp.visible || cp.width == 0 {
		return ""
	}

	boxWidth := min(60, cp.width-4)
	inner := boxWidth - 4

	titleStyle := lipgloss.NewStyle().Bold(true).Reverse(true).Width(boxWidth).Align(lipgloss.Center)
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Width(boxWidth).
		Padding(0, 1)
	selStyle := lipgloss.NewStyle().Reverse(true)
	dimStyle := lipgloss.NewStyle().Faint(true)

	var rows []string
	rows = append(rows, cp.input.View())
	rows = append(rows, dimStyle.Render(strings.Repeat("─", inner)))

	visible := cp.filtered
	if len(visible) > cp.maxRows {
		visible = visible[:cp.maxRows]
	}
	if len(visible) == 0 {
		rows = append(rows, dimStyle.Render("No commands found"))
	}
	for i, c := range visible {
		label := c.Name
		if !c.enabled() {
			label += " (unavailable)"
		}
		line := padTo(label, inner-len(c.Keybinding)-1)
		if c.Keybinding != "" {
			line += " " + dimStyle.Render(c.Keybinding)
		}
		switch {
		case i == cp.selected && c.enabled():
			line = selStyle.Render("▸ " + padTo(label, inner-2))
		case i == cp.selected:
			line = selStyle.Render(dimStyle.Render("▸ " + padTo(label, inner-2)))
		case !c.enabled():
			line = dimStyle.Render(line)
		}
		rows = append(rows, line)
	}
	rows = append(rows, dimStyle.Render(fmt.Sprintf("%d commands", len(cp.filtered))))

	body := boxStyle.Render(strings.Join(rows, "\n"))
	return titleStyle.Render("Command Palette") + "\n" + body + "\n"
}

// Focus implements Component.
func (cp *CommandPalette) Focus() {
	cp.focused = true
	cp.input.Focus()
}

// Blur implements Component.
func (cp *CommandPalette) Blur() {
	cp.focused = false
	cp.input.Blur()
}

// Focused implements Component.
func (cp *CommandPalette) Focused() bool { return cp.focused }

// Show opens the palette with a cleared query.
func (cp *CommandPalette) Show() {
	cp.visible = true
	cp.input.SetValue("")
	cp.filtered = cp.commands
	cp.selected = 0
	cp.input.Focus()
}

// Hide closes the palette.
func (cp *CommandPalette) Hide() {
	cp.visible = false
	cp.input.Blur()
}

// IsVisible reports whether the palette is open.
func (cp *CommandPalette) IsVisible() bool { return cp.visible }
