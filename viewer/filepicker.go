package viewer

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	tea "github.com/charmbracelet/bubbletea"
)

// pickerEntry is one row of the picker: a file that can be picked or a
// directory that can be descended into.
type pickerEntry struct {
	name  string
	isDir bool
}

// FilePicker is the flat, one-directory-at-a-time file chooser the diff
// viewer opens for diffsplit (pick the next participating buffer) and
// diffpatch (pick the patch file). Enter on a directory descends into it,
// backspace goes back up, enter on a file hands the path to the OnPick
// callback.
type FilePicker struct {
	width   int
	height  int
	focused bool

	dir        string
	entries    []pickerEntry
	selected   int
	scroll     int
	showHidden bool
	loadErr    error

	onPick func(path string) tea.Cmd

	dirStyle lipgloss.Style
	selStyle lipgloss.Style
	dimStyle lipgloss.Style
}

// FilePickerOption configures a FilePicker.
type FilePickerOption func(*FilePicker)

// WithPickerHidden makes dotfiles visible from the start.
func WithPickerHidden(show bool) FilePickerOption {
	return func(p *FilePicker) { p.showHidden = show }
}

// NewFilePicker creates a picker rooted at dir.
func NewFilePicker(dir string, opts ...FilePickerOption) *FilePicker {
	abs, err := filepath.Abs(dir)
	if err != nil {
		abs = dir
	}
	p := &FilePicker{
		dir:      abs,
		height:   20,
		dirStyle: lipgloss.NewStyle().Bold(true),
		selStyle: lipgloss.NewStyle().Reverse(true),
		dimStyle: lipgloss.NewStyle().Faint(true),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.reload()
	return p
}

// OnPick registers fn to run when the user picks a regular file.
func (p *FilePicker) OnPick(fn func(path string) tea.Cmd) { p.onPick = fn }

// Dir returns the directory currently listed.
func (p *FilePicker) Dir() string { return p.dir }

// SelectedPath returns the absolute path of the highlighted entry, or ""
// when the directory is empty.
func (p *FilePicker) SelectedPath() string {
	if p.selected < 0 || p.selected >= len(p.entries) {
		return ""
	}
	return filepath.Join(p.dir, p.entries[p.selected].name)
}

// reload re-reads the current directory, directories first.
func (p *FilePicker) reload() {
	p.entries = nil
	p.selected = 0
	p.scroll = 0

	dirents, err := os.ReadDir(p.dir)
	p.loadErr = err
	if err != nil {
		return
	}
	for _, d := range dirents {
		if !p.showHidden && strings.HasPrefix(d.Name(), ".") {
			continue
		}
		p.entries = append(p.entries, pickerEntry{name: d.Name(), isDir: d.IsDir()})
	}
	sort.Slice(p.entries, func(i, j int) bool {
		if p.entries[i].isDir != p.entries[j].isDir {
			return p.entries[i].isDir
		}
		return p.entries[i].name < p.entries[j].name
	})
}

// Init implements Component.
func (p *FilePicker) Init() tea.Cmd { return nil }

// Update implements Component.
func (p *FilePicker) Update(msg tea.Msg) (Component, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width = msg.Width
		p.height = msg.Height

	case tea.KeyMsg:
		if !p.focused {
			return p, nil
		}
		switch msg.String() {
		case "up", "k":
			if p.selected > 0 {
				p.selected--
			}
		case "down", "j":
			if p.selected < len(p.entries)-1 {
				p.selected++
			}
		case "enter", "l", "right":
			return p, p.open()
		case "backspace", "h", "left":
			p.ascend()
		case ".":
			p.showHidden = !p.showHidden
			p.reload()
		case "r":
			p.reload()
		}
	}
	return p, nil
}

// open descends into the selected directory or picks the selected file.
func (p *FilePicker) open() tea.Cmd {
	if p.selected < 0 || p.selected >= len(p.entries) {
		return nil
	}
	entry := p.entries[p.selected]
	path := filepath.Join(p.dir, entry.name)
	if entry.isDir {
		p.dir = path
		p.reload()
		return nil
	}
	if p.onPick != nil {
		return p.onPick(path)
	}
	return nil
}

// ascend moves to the parent directory, stopping at the filesystem root.
func (p *FilePicker) ascend() {
	parent := filepath.Dir(p.dir)
	if parent == p.dir {
		return
	}
	prev := filepath.Base(p.dir)
	p.dir = parent
	p.reload()
	for i, e := range p.entries {
		if e.name == prev {
			p.selected = i
			break
		}
	}
}

// View renders the listing with the path on top and key hints below.
func (p *FilePicker) View() string {
	if p.width == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(p.dirStyle.Render(p.dir))
	b.WriteString("\n")

	if p.loadErr != nil {
		b.WriteString(p.dimStyle.Render(p.loadErr.Error()))
		b.WriteString("\n")
		return b.String()
	}

	rows := p.height - 3
	if rows < 1 {
		rows = 1
	}
	if p.selected < p.scroll {
		p.scroll = p.selected
	}
	if p.selected >= p.scroll+rows {
		p.scroll = p.selected - rows + 1
	}

	end := p.scroll + rows
	if end > len(p.entries) {
		end = len(p.entries)
	}
	for i := p.scroll; i < end; i++ {
		e := p.entries[i]
		name := e.name
		if e.isDir {
			name += "/"
		}
		line := padTo("  "+name, p.width)
		if i == p.selected && p.focused {
			line = p.selStyle.Render(line)
		} else if e.isDir {
			line = p.dirStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	if len(p.entries) == 0 {
		b.WriteString(p.dimStyle.Render("  (empty)"))
		b.WriteString("\n")
	}

	if p.focused {
		b.WriteString(p.dimStyle.Render("enter: open · backspace: up · .: hidden · r: refresh"))
	}
	return b.String()
}

// Focus implements Component.
func (p *FilePicker) Focus() { p.focused = true }

// Blur implements Component.
func (p *FilePicker) Blur() { p.focused = false }

// Focused implements Component.
func (p *FilePicker) Focused() bool { return p.focused }
