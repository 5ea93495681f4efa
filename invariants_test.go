package diffengine

import (
	"io"
	"testing"
)

// checkListInvariants asserts the structural invariants that must hold
// between any two externally visible operations: strict block ordering
// with at least one unchanged line between consecutive blocks in every
// participating buffer, no all-zero blocks, and positive start lines.
func checkListInvariants(t *testing.T, e *Engine) {
	t.Helper()
	idxs := e.participatingIndexes()
	blocks := e.Blocks()
	for k, b := range blocks {
		allZero := true
		for _, i := range idxs {
			if b.Start(i) < 1 {
				t.Errorf("block %d: start[%d] = %d < 1", k, i, b.Start(i))
			}
			if b.Count(i) != 0 {
				allZero = false
			}
		}
		if allZero {
			t.Errorf("block %d: every participating count is zero", k)
		}
		if k+1 < len(blocks) {
			next := blocks[k+1]
			for _, i := range idxs {
				if b.End(i) >= next.Start(i) {
					t.Errorf("block %d/%d overlap in buffer %d: end %d, next start %d",
						k, k+1, i, b.End(i), next.Start(i))
				}
			}
		}
	}
}

func hookEngine(t *testing.T, output string, bufs ...*MemBuffer) *Engine {
	t.Helper()
	differ := HookDiffer{Hook: func(refPath, otherPath string, w io.Writer) error {
		_, err := io.WriteString(w, output)
		return err
	}}
	e := New(differ, Options{})
	for _, b := range bufs {
		if _, err := e.RegisterBuffer(b); err != nil {
			t.Fatalf("register buffer: %v", err)
		}
	}
	return e
}

func blocksEqual(x, y []*Block, idxs []int) bool {
	if len(x) != len(y) {
		return false
	}
	for k := range x {
		for _, i := range idxs {
			if x[k].Start(i) != y[k].Start(i) || x[k].Count(i) != y[k].Count(i) {
				return false
			}
		}
	}
	return true
}

// Property P4: rebuilding twice yields a structurally equal list.
func TestRebuildIsIdempotent(t *testing.T) {
	a := NewMemBuffer("a", []string{"one", "two", "three", "four", "five"})
	b := NewMemBuffer("b", []string{"one", "TWO", "three", "4a", "4b", "five"})
	out := "2c2\n< two\n---\n> TWO\n4c4,5\n< four\n---\n> 4a\n> 4b\n"
	e := hookEngine(t, out, a, b)

	if err := e.Rebuild(); err != nil {
		t.Fatalf("first rebuild: %v", err)
	}
	first := e.Blocks()
	if err := e.Rebuild(); err != nil {
		t.Fatalf("second rebuild: %v", err)
	}
	if !blocksEqual(first, e.Blocks(), e.participatingIndexes()) {
		t.Fatalf("second rebuild changed the list: %+v vs %+v", first, e.Blocks())
	}
	checkListInvariants(t, e)
}

// Properties P1/P2 across a sequence of edits: every notification leaves
// the list ordered, gapped, and free of all-zero blocks.
func TestEditSequencePreservesInvariants(t *testing.T) {
	a := NewMemBuffer("a", []string{"one", "two", "three", "four", "five", "six", "seven"})
	b := NewMemBuffer("b", []string{"one", "TWO", "three", "four", "FIVE", "six", "seven"})
	out := "2c2\n< two\n---\n> TWO\n5c5\n< five\n---\n> FIVE\n"
	e := hookEngine(t, out, a, b)
	if err := e.Rebuild(); err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	checkListInvariants(t, e)

	edits := []struct {
		buf          *MemBuffer
		line1, line2 Lnum
		amount       int
		amountAfter  int
	}{
		{a, 1, MaxLnum, 2, 0}, // insert 2 lines at the top of a
		{b, 3, 4, 0, -2},      // delete 2 lines mid-b
		{a, 6, MaxLnum, 1, 0}, // insert inside a's shifted territory
		{b, 1, 1, 0, 1},       // net-insert 1 line at b's top
	}
	for step, ed := range edits {
		applyNotifiedEdit(ed.buf, ed.line1, ed.line2, ed.amount, ed.amountAfter)
		e.NotifyEdit(ed.buf, ed.line1, ed.line2, ed.amount, ed.amountAfter)
		checkListInvariants(t, e)
		if t.Failed() {
			t.Fatalf("invariants broken after edit %d: %+v", step, ed)
		}
	}
}

// applyNotifiedEdit mirrors a NotifyEdit notification onto the buffer
// contents so the list and the text stay in step during the test.
func applyNotifiedEdit(buf *MemBuffer, line1, line2 Lnum, amount, amountAfter int) {
	switch {
	case line2 == MaxLnum:
		lines := make([]string, amount)
		for i := range lines {
			lines[i] = "ins"
		}
		buf.AppendLines(line1-1, lines)
	case amountAfter > 0:
		lines := make([]string, amountAfter)
		for i := range lines {
			lines[i] = "ins"
		}
		buf.AppendLines(line2, lines)
	default:
		buf.DeleteLines(line1, -amountAfter)
	}
}

// Property P7: after a put and a fresh rebuild, the transferred range has
// no blocks left between the two buffers.
func TestPutThenRebuildLeavesNoBlocks(t *testing.T) {
	a := NewMemBuffer("a", []string{"x", "y", "z"})
	b := NewMemBuffer("b", []string{"x", "Y", "z"})
	e := hookEngine(t, "2c2\n< y\n---\n> Y\n", a, b)
	if err := e.Rebuild(); err != nil {
		t.Fatalf("rebuild: %v", err)
	}

	if err := e.Put(a, b, 2, 2); err != nil {
		t.Fatalf("put: %v", err)
	}

	// The buffers now agree, so a rebuild (with a differ reflecting the
	// new contents) yields an empty list.
	e.differ = HookDiffer{Hook: func(refPath, otherPath string, w io.Writer) error {
		return nil
	}}
	if err := e.Rebuild(); err != nil {
		t.Fatalf("rebuild after put: %v", err)
	}
	if len(e.Blocks()) != 0 {
		t.Fatalf("expected an empty list after put+rebuild, got %d blocks", len(e.Blocks()))
	}
}

func TestResolveTargetByNamePattern(t *testing.T) {
	a := NewMemBuffer("main.go", []string{"x"})
	b := NewMemBuffer("main_test.go", []string{"x"})
	c := NewMemBuffer("README.md", []string{"x"})
	e := newTestEngine(t, a, b, c)

	got, err := e.ResolveTarget(a, "README")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != c {
		t.Fatalf("expected README.md, got %v", got)
	}

	// "main" matches only main_test.go from a's point of view (a itself is
	// excluded), so it resolves despite the shared prefix.
	got, err = e.ResolveTarget(a, "main")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != b {
		t.Fatalf("expected main_test.go, got %v", got)
	}

	if _, err := e.ResolveTarget(b, "nope"); err == nil {
		t.Fatal("expected NotFound for a pattern matching nothing")
	}
}
