package viewer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func pickerFixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range []string{"b.txt", "a.txt", ".hidden"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "sub", "inner.txt"), []byte("y\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestFilePickerListsDirectoriesFirst(t *testing.T) {
	p := NewFilePicker(pickerFixture(t))

	if len(p.entries) != 3 {
		t.Fatalf("expected 3 visible entries (hidden skipped), got %d", len(p.entries))
	}
	if !p.entries[0].isDir || p.entries[0].name != "sub" {
		t.Fatalf("expected the directory first, got %+v", p.entries[0])
	}
	if p.entries[1].name != "a.txt" || p.entries[2].name != "b.txt" {
		t.Fatalf("expected files sorted by name, got %+v", p.entries[1:])
	}
}

func TestFilePickerHiddenToggle(t *testing.T) {
	p := NewFilePicker(pickerFixture(t))
	p.Focus()

	p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'.'}})
	found := false
	for _, e := range p.entries {
		if e.name == ".hidden" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected '.' to reveal hidden files")
	}
}

func TestFilePickerDescendAndAscend(t *testing.T) {
	dir := pickerFixture(t)
	p := NewFilePicker(dir)
	p.Focus()

	// "sub" is selected first; enter descends.
	p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if filepath.Base(p.Dir()) != "sub" {
		t.Fatalf("expected to descend into sub, at %q", p.Dir())
	}
	if len(p.entries) != 1 || p.entries[0].name != "inner.txt" {
		t.Fatalf("expected inner.txt listed, got %+v", p.entries)
	}

	p.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	if p.Dir() != dir {
		t.Fatalf("expected backspace to return to %q, at %q", dir, p.Dir())
	}
	if p.SelectedPath() != filepath.Join(dir, "sub") {
		t.Fatalf("expected selection restored to the directory we came from, got %q", p.SelectedPath())
	}
}

func TestFilePickerOnPickFiresForFilesOnly(t *testing.T) {
	p := NewFilePicker(pickerFixture(t))
	p.Focus()

	var picked string
	p.OnPick(func(path string) tea.Cmd {
		picked = path
		return nil
	})

	// Enter on the directory descends, never picks.
	p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if picked != "" {
		t.Fatalf("expected no pick for a directory, got %q", picked)
	}

	// Now on inner.txt.
	p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if filepath.Base(picked) != "inner.txt" {
		t.Fatalf("expected inner.txt picked, got %q", picked)
	}
}

func TestFilePickerIgnoresKeysWhenBlurred(t *testing.T) {
	p := NewFilePicker(pickerFixture(t))

	p.Update(tea.KeyMsg{Type: tea.KeyDown})
	if p.selected != 0 {
		t.Fatal("expected key presses ignored while blurred")
	}
}

func TestFilePickerViewShowsListing(t *testing.T) {
	p := NewFilePicker(pickerFixture(t))
	p.Focus()
	p.Update(tea.WindowSizeMsg{Width: 60, Height: 20})

	view := stripANSI(p.View())
	if !strings.Contains(view, "sub/") {
		t.Errorf("expected directory rendered with trailing slash, got %q", view)
	}
	if !strings.Contains(view, "a.txt") || !strings.Contains(view, "b.txt") {
		t.Errorf("expected files in the listing, got %q", view)
	}
	if !strings.Contains(view, "enter: open") {
		t.Errorf("expected key hints while focused, got %q", view)
	}
}
