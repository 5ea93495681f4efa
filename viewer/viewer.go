package viewer

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	diffengine "github.com/SCKelemen/diffengine"
)

// rebuildDoneMsg reports the outcome of a Rebuild run on a background
// goroutine. Rebuild is the engine's only blocking call, so the viewer
// offloads it to keep processing keystrokes while the external differ
// runs.
type rebuildDoneMsg struct{ err error }

// rebuildTickMsg drives the idle auto-rebuild check: on a short interval,
// the Model looks at engine.Invalid() and, if a prior edit left the list
// stale and no rebuild is already in flight, kicks one off automatically
// instead of waiting for the next query to notice.
type rebuildTickMsg struct{}

const rebuildPollInterval = 250 * time.Millisecond

func rebuildTick() tea.Cmd {
	return tea.Tick(rebuildPollInterval, func(time.Time) tea.Msg {
		return rebuildTickMsg{}
	})
}

// Model is the reference tea.Program wiring for the multi-buffer diff
// engine: up to four synchronized DiffPanes plus the command palette,
// status bar, modal, and option editor that drive the diff command set.
type Model struct {
	engine *diffengine.Engine

	panes   []*DiffPane
	headers []*BufferHeader

	app        *Application
	status     *StatusBar
	palette    *CommandPalette
	modal      *Modal
	optsEditor *OptionInput
	picker     *FilePicker
	spinner    *RebuildSpinner
	dashboard  *Dashboard

	theme string

	width, height int

	rebuilding  bool
	showOpts    bool
	showFiles   bool
	showSummary bool

	// filePickMode selects what the file picker's next OnPick does:
	// "split" registers the opened file as a new participating buffer
	// (diffsplit), "patch" treats it as a patch file applied to the
	// focused pane's buffer (diffpatch).
	filePickMode string
}

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithViewerTheme selects the design-system theme used for status bar and
// highlight colors ("default", "midnight", "nord", "paper", "wrapped").
func WithViewerTheme(theme string) ModelOption {
	return func(m *Model) { m.theme = theme }
}

// NewModel builds a reference viewer over engine, with one DiffPane per
// buffer already registered in engine's slots at construction time.
// Buffers opened later via the file explorer (diffsplit) are registered
// and given panes on the fly.
func NewModel(engine *diffengine.Engine, rootPath string, opts ...ModelOption) *Model {
	m := &Model{
		engine: engine,
		theme:  "default",
	}
	for _, o := range opts {
		o(m)
	}

	tokens := designTokensForTheme(m.theme)

	m.status = NewStatusBar(WithStatusBarDesignTokens(tokens))
	m.modal = NewModal()
	m.optsEditor = NewOptionInput(optionsToString(engine.Options()))
	m.optsEditor.OnApply(func(o diffengine.Options) tea.Cmd {
		return m.applyOptions(o)
	})
	m.spinner = NewRebuildSpinner(SpinnerDots)
	m.filePickMode = "split"
	m.picker = NewFilePicker(rootPath)
	m.picker.OnPick(func(path string) tea.Cmd {
		if m.filePickMode == "patch" {
			return m.diffpatch(path)
		}
		return m.diffsplit(path)
	})
	m.palette = NewCommandPalette(m.commands())
	m.dashboard = NewDiffDashboard(engine, "Diff Summary")

	m.app = NewApplication()
	m.app.AddComponent(m.palette)

	m.rebuildPanes()
	m.refreshSummary()

	return m
}

// refreshSummary recomputes the dashboard's StatCards from the engine's
// current block list. Called whenever the list changes shape (after a
// rebuild or a transfer), since the engine's Block list doesn't push
// change notifications of its own.
func (m *Model) refreshSummary() {
	m.dashboard.RefreshFromEngine(m.engine)
}

// rebuildPanes rebuilds the header/pane slices from the engine's current
// slot array. Called by NewModel and on registration changes (diffsplit,
// diffpatch); a transfer never changes slot membership, so transferFocused
// only refreshes the summary.
func (m *Model) rebuildPanes() {
	m.panes = nil
	m.headers = nil
	refIdx := -1
	for i := 0; i < diffengine.MaxBuffers; i++ {
		if buf := m.bufferAtSlot(i); buf != nil {
			if refIdx < 0 {
				refIdx = i
			}
			label := fmt.Sprintf("buffer %d", i)
			if named, ok := buf.(diffengine.Named); ok {
				label = named.BufferName()
			}
			pane := NewDiffPane(m.engine, buf, WithDiffPaneLabel(label), WithDiffPaneTheme(m.theme))
			m.panes = append(m.panes, pane)
			hdr := NewBufferHeader(label, i == refIdx, WithHeaderTheme(m.theme))
			hdr.SetLineCount(buf.LineCount())
			m.headers = append(m.headers, hdr)
		}
	}
	if len(m.panes) > 0 {
		m.panes[0].Focus()
	}
}

// syncPaneScroll keeps every other pane's scroll position aligned with the
// focused pane's by projecting its top line into each other buffer's
// coordinate space via MapTopline, so every pane shows matching diff
// territory. A pane whose mapping fails (not participating) is left alone.
func (m *Model) syncPaneScroll() {
	focused := m.focusedPane()
	if focused == nil {
		return
	}
	top := focused.TopLine()
	for _, p := range m.panes {
		if p == focused {
			continue
		}
		mapped, err := m.engine.MapTopline(focused.buf, p.buf, top)
		if err != nil {
			continue
		}
		p.SetTopLine(mapped)
	}
}

// focusNextPane moves keyboard focus to the next (or, with prev=true, the
// previous) DiffPane, wrapping around. Panes live outside the Application's
// own component list (they're per-buffer, not fixed chrome), so focus
// cycling between them is handled here rather than by Application.
func (m *Model) focusNextPane(prev bool) {
	if len(m.panes) == 0 {
		return
	}
	cur := -1
	for i, p := range m.panes {
		if p.Focused() {
			cur = i
			break
		}
	}
	m.panes[max(cur, 0)].Blur()
	next := 0
	if cur >= 0 {
		if prev {
			next = (cur - 1 + len(m.panes)) % len(m.panes)
		} else {
			next = (cur + 1) % len(m.panes)
		}
	}
	m.panes[next].Focus()
}

// bufferAtSlot exposes the engine's registered buffers for pane
// construction. The engine keeps slot contents private; NewModel only
// needs read access, obtained here through the engine's exported BufferAt
// accessor.
func (m *Model) bufferAtSlot(i int) diffengine.Buffer {
	return m.engine.BufferAt(i)
}

// setShowFiles shows or hides the file picker, moving keyboard focus with
// it so navigation keys reach the listing while it is up.
func (m *Model) setShowFiles(show bool) {
	m.showFiles = show
	if show {
		m.picker.Focus()
	} else {
		m.picker.Blur()
	}
}

// setShowOpts shows or hides the diffopt editor, moving keyboard focus
// with it.
func (m *Model) setShowOpts(show bool) {
	m.showOpts = show
	if show {
		m.optsEditor.Focus()
	} else {
		m.optsEditor.Blur()
	}
}

// diffsplit opens path as a new MemBuffer, registers it with the engine,
// and kicks off a rebuild.
func (m *Model) diffsplit(path string) tea.Cmd {
	data, err := os.ReadFile(path)
	if err != nil {
		return m.showError(err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	buf := diffengine.NewMemBuffer(path, lines)

	if _, err := m.engine.RegisterBuffer(buf); err != nil {
		return m.showError(err)
	}

	m.rebuildPanes()
	m.setShowFiles(false)
	return m.startRebuild()
}

// diffpatch derives a new participating buffer from a patch: the focused pane's
// buffer is written to a temp file, `patch -o NEW ORIG < patchfile` applies
// the patch into a second temp file (mirroring the engine's own
// ExternalDiffer process-spawning style in differ.go), and the result is
// read back and registered as a new participating buffer, exactly as
// diffsplit registers a file opened from the explorer.
func (m *Model) diffpatch(patchPath string) tea.Cmd {
	pane := m.focusedPane()
	if pane == nil {
		return m.showError(fmt.Errorf("diffengine: no focused pane to patch"))
	}

	dir, err := os.MkdirTemp("", "diffviewer-patch-")
	if err != nil {
		return m.showError(err)
	}
	defer os.RemoveAll(dir)

	origPath := filepath.Join(dir, "orig")
	if err := pane.buf.WriteToFile(origPath); err != nil {
		return m.showError(err)
	}

	patchFile, err := os.Open(patchPath)
	if err != nil {
		return m.showError(err)
	}
	defer patchFile.Close()

	newPath := filepath.Join(dir, "new")
	cmd := exec.Command("patch", "-o", newPath, origPath)
	cmd.Stdin = patchFile
	if out, err := cmd.CombinedOutput(); err != nil {
		return m.showError(fmt.Errorf("%w: patch: %v: %s", diffengine.ErrDifferFailed, err, strings.TrimSpace(string(out))))
	}

	data, err := os.ReadFile(newPath)
	if err != nil {
		return m.showError(err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	buf := diffengine.NewMemBuffer(patchedBufferName(pane.label), lines)

	if _, err := m.engine.RegisterBuffer(buf); err != nil {
		return m.showError(err)
	}

	m.rebuildPanes()
	return m.startRebuild()
}

// patchedBufferName names the buffer diffpatch registers, e.g. "a.go" ->
// "a.go.patched", so the new pane's header reads clearly against the
// buffer it was derived from.
func patchedBufferName(origLabel string) string {
	return origLabel + ".patched"
}

// startRebuild kicks off Rebuild on a background goroutine so the UI stays
// responsive while the external differ runs.
func (m *Model) startRebuild() tea.Cmd {
	if m.rebuilding {
		return nil
	}
	m.rebuilding = true
	spin := m.spinner.Start()
	run := func() tea.Msg {
		return rebuildDoneMsg{err: m.engine.Rebuild()}
	}
	return tea.Batch(spin, run)
}

// applyOptions installs o on the engine and, if that left the
// list stale, starts a rebuild.
func (m *Model) applyOptions(o diffengine.Options) tea.Cmd {
	m.engine.SetOptions(o)
	m.setShowOpts(false)
	if m.engine.Invalid() {
		return m.startRebuild()
	}
	return nil
}

// showError surfaces err through the Modal; engine errors carry no
// structured payload beyond the sentinel, so the dialog is the message
// channel. ShowEngineError classifies the error kind to
// pick the modal's title and border severity.
func (m *Model) showError(err error) tea.Cmd {
	m.modal.ShowEngineError(err, nil)
	return nil
}

// commands builds the command-palette entries for the diff command set.
func (m *Model) commands() []Command {
	return []Command{
		{
			Name:        "diffupdate",
			Description: "Clear and rebuild the diff from the external differ",
			Category:    "Diff",
			Keybinding:  "ctrl+u",
			Action:      func() tea.Cmd { return m.startRebuild() },
		},
		{
			Name:        "diffsplit",
			Description: "Open a file and register it as a participating buffer",
			Category:    "Diff",
			Keybinding:  "ctrl+o",
			Action: func() tea.Cmd {
				m.filePickMode = "split"
				m.setShowFiles(true)
				return nil
			},
		},
		{
			Name:        "diffpatch",
			Description: "Apply a patch file to the focused buffer into a new buffer",
			Category:    "Diff",
			Keybinding:  "ctrl+w",
			Enabled:     func() bool { return m.focusedPane() != nil },
			Action: func() tea.Cmd {
				m.filePickMode = "patch"
				m.setShowFiles(true)
				return nil
			},
		},
		{
			Name:        "diffopt",
			Description: "Edit filler/icase/iwhite/context options",
			Category:    "Diff",
			Keybinding:  "ctrl+y",
			Action: func() tea.Cmd {
				m.setShowOpts(true)
				return nil
			},
		},
		{
			Name:        "diffget",
			Description: "Pull the focused pane's changes from the other buffer",
			Category:    "Diff",
			Keybinding:  "ctrl+g",
			Enabled:     func() bool { return m.canTransfer() },
			Action:      func() tea.Cmd { return m.transferFocused(diffengine.TransferGet) },
		},
		{
			Name:        "diffput",
			Description: "Push the focused pane's changes into the other buffer",
			Category:    "Diff",
			Keybinding:  "ctrl+p",
			Enabled:     func() bool { return m.canTransfer() },
			Action:      func() tea.Cmd { return m.transferFocused(diffengine.TransferPut) },
		},
		{
			Name:        "diff summary",
			Description: "Toggle the added/removed/changed dashboard",
			Category:    "View",
			Keybinding:  "ctrl+d",
			Action: func() tea.Cmd {
				m.showSummary = !m.showSummary
				return nil
			},
		},
	}
}

// focusedPane returns the pane currently holding keyboard focus, or nil.
func (m *Model) focusedPane() *DiffPane {
	for _, p := range m.panes {
		if p.Focused() {
			return p
		}
	}
	return nil
}

// canTransfer reports whether diffget/diffput can currently resolve a
// target: a pane must be focused and its default transfer target
// must resolve without an Ambiguous or NotFound error. Backs the
// command palette's Enabled predicate for both commands.
func (m *Model) canTransfer() bool {
	pane := m.focusedPane()
	if pane == nil {
		return false
	}
	_, err := m.engine.ResolveTarget(pane.buf, "")
	return err == nil
}

// transferFocused runs a Get/Put over the focused pane's
// cursor line against the default transfer target, reporting engine errors
// through the Modal.
func (m *Model) transferFocused(kind diffengine.TransferKind) tea.Cmd {
	pane := m.focusedPane()
	if pane == nil {
		return m.showError(fmt.Errorf("diffengine: no focused pane to transfer from"))
	}

	target, err := m.engine.ResolveTarget(pane.buf, "")
	if err != nil {
		return m.showError(err)
	}

	var xferErr error
	if kind == diffengine.TransferGet {
		xferErr = m.engine.Get(pane.buf, target, pane.cursor, pane.cursor)
	} else {
		xferErr = m.engine.Put(pane.buf, target, pane.cursor, pane.cursor)
	}
	if xferErr != nil {
		return m.showError(xferErr)
	}
	m.refreshSummary()
	return nil
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.app.Init(), rebuildTick())
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case rebuildDoneMsg:
		m.rebuilding = false
		m.spinner.Stop()
		m.refreshSummary()
		if msg.err != nil {
			cmds = append(cmds, m.showError(msg.err))
		}

	case rebuildTickMsg:
		if m.engine.Invalid() && !m.rebuilding {
			cmds = append(cmds, m.startRebuild())
		}
		cmds = append(cmds, rebuildTick())

	case tea.KeyMsg:
		if m.modal.IsVisible() {
			var c Component
			c, cmd := m.modal.Update(msg)
			m.modal = c.(*Modal)
			return m, cmd
		}
		switch msg.String() {
		case "ctrl+k":
			m.palette.Show()
		case "ctrl+u":
			cmds = append(cmds, m.startRebuild())
		case "ctrl+o":
			m.filePickMode = "split"
			m.setShowFiles(!m.showFiles)
		case "ctrl+w":
			if m.focusedPane() != nil {
				m.filePickMode = "patch"
				m.setShowFiles(!m.showFiles)
			}
		case "ctrl+y":
			m.setShowOpts(!m.showOpts)
		case "ctrl+g":
			cmds = append(cmds, m.transferFocused(diffengine.TransferGet))
		case "ctrl+p":
			cmds = append(cmds, m.transferFocused(diffengine.TransferPut))
		case "]":
			m.focusNextPane(false)
		case "[":
			m.focusNextPane(true)
		case "ctrl+d":
			m.showSummary = !m.showSummary
		}
	}

	var spinCmd tea.Cmd
	m.spinner, spinCmd = m.spinner.Update(msg)
	cmds = append(cmds, spinCmd)

	var appModel tea.Model
	appModel, cmd := m.app.Update(msg)
	m.app = appModel.(*Application)
	cmds = append(cmds, cmd)

	var widths []int
	if wsm, ok := msg.(tea.WindowSizeMsg); ok && len(m.panes) > 0 {
		widths = paneWidths(wsm.Width, len(m.panes))
	}
	for i, p := range m.panes {
		paneMsg := msg
		if widths != nil {
			wsm := msg.(tea.WindowSizeMsg)
			wsm.Width = widths[i]
			wsm.Height = wsm.Height - 4 // status bar, spinner/picker/opts rows
			paneMsg = wsm
		}
		var c Component
		c, cmd = p.Update(paneMsg)
		m.panes[i] = c.(*DiffPane)
		cmds = append(cmds, cmd)

		if i < len(m.headers) {
			c, cmd = m.headers[i].Update(paneMsg)
			m.headers[i] = c.(*BufferHeader)
			cmds = append(cmds, cmd)
		}
	}
	m.syncPaneScroll()

	if m.showFiles {
		var c Component
		c, cmd = m.picker.Update(msg)
		m.picker = c.(*FilePicker)
		cmds = append(cmds, cmd)
	}
	if m.showOpts {
		var c Component
		c, cmd = m.optsEditor.Update(msg)
		m.optsEditor = c.(*OptionInput)
		cmds = append(cmds, cmd)
	}
	if m.showSummary {
		var c Component
		c, cmd = m.dashboard.Update(msg)
		m.dashboard = c.(*Dashboard)
		cmds = append(cmds, cmd)
	}

	var c Component
	c, cmd = m.status.Update(msg)
	m.status = c.(*StatusBar)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// View implements tea.Model.
func (m *Model) View() string {
	m.status.SetDiffModeMessage(m.engine.Options(), m.rebuilding)

	var panes []string
	for i, p := range m.panes {
		var col strings.Builder
		if i < len(m.headers) {
			col.WriteString(m.headers[i].View())
		}
		col.WriteString(p.View())
		panes = append(panes, col.String())
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, panes...)

	var b strings.Builder
	b.WriteString(body)
	b.WriteString("\n")
	if m.rebuilding {
		b.WriteString(m.spinner.View())
		b.WriteString(" rebuilding…\n")
	}
	if m.showFiles {
		b.WriteString(m.picker.View())
		b.WriteString("\n")
	}
	if m.showOpts {
		b.WriteString(m.optsEditor.View())
	}
	if m.showSummary {
		b.WriteString(m.dashboard.View())
		b.WriteString("\n")
	}
	b.WriteString(m.status.View())
	if m.palette.IsVisible() {
		b.WriteString(m.palette.View())
	}
	if m.modal.IsVisible() {
		b.WriteString(m.modal.View())
	}
	return b.String()
}

// optionsToString renders o back into diffopt syntax, the inverse of
// ParseOptions, so OptionInput starts pre-filled with the engine's current
// flags.
func optionsToString(o diffengine.Options) string {
	var parts []string
	if o.Filler {
		parts = append(parts, "filler")
	}
	if o.ICase {
		parts = append(parts, "icase")
	}
	if o.IWhite {
		parts = append(parts, "iwhite")
	}
	if o.Context != 0 {
		parts = append(parts, fmt.Sprintf("context:%d", o.Context))
	}
	return strings.Join(parts, ",")
}

// Run starts the tea.Program over m with the alternate screen enabled.
func Run(m *Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
