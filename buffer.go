package diffengine

import (
	"fmt"
	"os"
)

// Buffer is the buffer collaborator the engine depends on. A
// line returned by Line is only valid until the next call to Line on the
// same Buffer — callers that need to compare lines across fetches must
// copy the bytes first.
type Buffer interface {
	// LineCount returns the number of lines currently in the buffer.
	LineCount() int
	// Line returns the text of the given 1-based line.
	Line(lnum Lnum) string
	// DeleteLines removes count lines starting at lnum.
	DeleteLines(lnum Lnum, count int)
	// AppendLines inserts lines after lnum (lnum 0 means "before line 1").
	AppendLines(lnum Lnum, lines []string)
	// WriteToFile writes the full buffer contents to path.
	WriteToFile(path string) error
	// Checkpoint snapshots undo state for [lnum, lnum+count) before a
	// Transfer Operator mutation.
	Checkpoint(lnum Lnum, count int)
}

// MemBuffer is a slice-backed Buffer used by tests and by the reference
// viewer when no host editor is attached.
type MemBuffer struct {
	Name  string
	lines []string
}

// NewMemBuffer creates a MemBuffer from initial line contents.
func NewMemBuffer(name string, lines []string) *MemBuffer {
	cp := append([]string(nil), lines...)
	return &MemBuffer{Name: name, lines: cp}
}

func (b *MemBuffer) LineCount() int { return len(b.lines) }

func (b *MemBuffer) Line(lnum Lnum) string {
	i := int(lnum) - 1
	if i < 0 || i >= len(b.lines) {
		return ""
	}
	return b.lines[i]
}

func (b *MemBuffer) DeleteLines(lnum Lnum, count int) {
	i := int(lnum) - 1
	if i < 0 || count <= 0 {
		return
	}
	end := i + count
	if end > len(b.lines) {
		end = len(b.lines)
	}
	if i >= end {
		return
	}
	b.lines = append(b.lines[:i], b.lines[end:]...)
}

func (b *MemBuffer) AppendLines(lnum Lnum, lines []string) {
	if len(lines) == 0 {
		return
	}
	i := int(lnum)
	if i < 0 {
		i = 0
	}
	if i > len(b.lines) {
		i = len(b.lines)
	}
	out := make([]string, 0, len(b.lines)+len(lines))
	out = append(out, b.lines[:i]...)
	out = append(out, lines...)
	out = append(out, b.lines[i:]...)
	b.lines = out
}

func (b *MemBuffer) WriteToFile(path string) error {
	var data []byte
	for _, l := range b.lines {
		data = append(data, l...)
		data = append(data, '\n')
	}
	return os.WriteFile(path, data, 0o644)
}

func (b *MemBuffer) Checkpoint(lnum Lnum, count int) {
	// MemBuffer keeps no undo log; real hosts snapshot undo state here.
}

// Lines returns a copy of the buffer's current contents.
func (b *MemBuffer) Lines() []string {
	return append([]string(nil), b.lines...)
}

// BufferName identifies the buffer for target-pattern resolution in the
// Transfer Operator.
func (b *MemBuffer) BufferName() string { return b.Name }

func (b *MemBuffer) String() string {
	return fmt.Sprintf("MemBuffer(%s, %d lines)", b.Name, len(b.lines))
}
