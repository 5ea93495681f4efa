package diffengine

import "testing"

func newTestEngineWithOptions(t *testing.T, opts Options, bufs ...*MemBuffer) *Engine {
	t.Helper()
	e := New(nil, opts)
	for _, b := range bufs {
		if _, err := e.RegisterBuffer(b); err != nil {
			t.Fatalf("register buffer: %v", err)
		}
	}
	return e
}

func TestClassifyLineChanged(t *testing.T) {
	a := NewMemBuffer("a", []string{"x", "y", "z"})
	b := NewMemBuffer("b", []string{"x", "Y", "z"})
	e := newTestEngine(t, a, b)

	blk := &Block{}
	blk.start[0], blk.count[0] = 2, 1
	blk.start[1], blk.count[1] = 2, 1
	e.head = blk

	class, _, err := e.ClassifyLine(a, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if class != ClassChanged {
		t.Fatalf("got %v, want ClassChanged", class)
	}
}

func TestClassifyLineInsertedOrDeletedAndFiller(t *testing.T) {
	a := NewMemBuffer("a", []string{"a", "b"})
	b := NewMemBuffer("b", []string{"a", "INS", "b"})
	e := newTestEngineWithOptions(t, Options{Filler: true}, a, b)

	blk := &Block{}
	blk.start[0], blk.count[0] = 2, 0
	blk.start[1], blk.count[1] = 2, 1
	e.head = blk

	class, _, err := e.ClassifyLine(b, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if class != ClassInsertedOrDeleted {
		t.Fatalf("got %v, want ClassInsertedOrDeleted", class)
	}

	class, n, err := e.ClassifyLine(a, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if class != ClassFillerAbove || n != 1 {
		t.Fatalf("got class=%v n=%d, want ClassFillerAbove(1)", class, n)
	}
}

// Three-way, differing counts.
func TestClassifyLineThreeWayFiller(t *testing.T) {
	a := NewMemBuffer("a", []string{"x"})
	b := NewMemBuffer("b", []string{"x", "p"})
	c := NewMemBuffer("c", []string{"x", "p", "q"})
	e := newTestEngineWithOptions(t, Options{Filler: true}, a, b, c)

	blk := &Block{}
	blk.start[0], blk.count[0] = 2, 0
	blk.start[1], blk.count[1] = 2, 1
	blk.start[2], blk.count[2] = 2, 2
	e.head = blk

	class, _, err := e.ClassifyLine(c, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if class != ClassInsertedOrDeleted {
		t.Fatalf("got %v, want ClassInsertedOrDeleted", class)
	}

	class, n, err := e.ClassifyLine(a, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if class != ClassFillerAbove || n != 2 {
		t.Fatalf("got class=%v n=%d, want ClassFillerAbove(2)", class, n)
	}
}

func TestClassifyLineNoneOutsideBlocks(t *testing.T) {
	a := NewMemBuffer("a", []string{"x", "y", "z"})
	b := NewMemBuffer("b", []string{"x", "Y", "z"})
	e := newTestEngine(t, a, b)

	blk := &Block{}
	blk.start[0], blk.count[0] = 2, 1
	blk.start[1], blk.count[1] = 2, 1
	e.head = blk

	class, _, err := e.ClassifyLine(a, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if class != ClassNone {
		t.Fatalf("got %v, want ClassNone", class)
	}
}

func TestIntraLineDiffReportsNarrowestChangedSpan(t *testing.T) {
	a := NewMemBuffer("a", []string{"hello world"})
	b := NewMemBuffer("b", []string{"hello there"})
	e := newTestEngine(t, a, b)

	blk := &Block{}
	blk.start[0], blk.count[0] = 1, 1
	blk.start[1], blk.count[1] = 1, 1
	e.head = blk

	start, end, ok := e.IntraLineDiff(a, 1)
	if !ok {
		t.Fatalf("expected ok")
	}
	if start != len("hello ") {
		t.Fatalf("got start=%d, want %d", start, len("hello "))
	}
	if end != len("hello world") {
		t.Fatalf("got end=%d, want %d", end, len("hello world"))
	}
}

func TestMapToplineInsideBlock(t *testing.T) {
	a := NewMemBuffer("a", []string{"1", "2", "3", "4"})
	b := NewMemBuffer("b", []string{"1", "2", "X", "4"})
	e := newTestEngine(t, a, b)

	blk := &Block{}
	blk.start[0], blk.count[0] = 3, 1
	blk.start[1], blk.count[1] = 3, 1
	e.head = blk

	got, err := e.MapTopline(a, b, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 3 {
		t.Fatalf("got %d, want 3", got)
	}
}

func TestMapToplineClampsToShorterTargetBlock(t *testing.T) {
	a := NewMemBuffer("a", []string{"1", "x", "y", "z", "5"})
	b := NewMemBuffer("b", []string{"1", "X", "5"})
	e := newTestEngine(t, a, b)

	blk := &Block{}
	blk.start[0], blk.count[0] = 2, 3
	blk.start[1], blk.count[1] = 2, 1
	e.head = blk

	// Rows 3 and 4 of a have no counterpart in b's shorter block; both
	// land on b's block end (line 3), not on unchanged lines below it.
	for _, lnum := range []Lnum{3, 4} {
		got, err := e.MapTopline(a, b, lnum)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != 3 {
			t.Fatalf("MapTopline(a, b, %d) = %d, want 3 (target block end)", lnum, got)
		}
	}

	// Row 2 still has a counterpart and maps directly.
	got, err := e.MapTopline(a, b, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 2 {
		t.Fatalf("MapTopline(a, b, 2) = %d, want 2", got)
	}
}

func TestMapToplinePastLastBlockAnchorsToEnd(t *testing.T) {
	a := NewMemBuffer("a", []string{"1", "2", "3"})
	b := NewMemBuffer("b", []string{"1", "2"})
	e := newTestEngine(t, a, b)

	got, err := e.MapTopline(a, b, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 2 {
		t.Fatalf("got %d, want 2 (clamped to buffer end)", got)
	}
}

func TestFoldContains(t *testing.T) {
	a := NewMemBuffer("a", []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10"})
	b := NewMemBuffer("b", []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10"})
	e := newTestEngineWithOptions(t, Options{Context: 2}, a, b)

	blk := &Block{}
	blk.start[0], blk.count[0] = 5, 1
	blk.start[1], blk.count[1] = 5, 1
	e.head = blk

	if e.FoldContains(a, 4) {
		t.Fatalf("line 4 is within context 2 of the block edge, must not be foldable")
	}
	if !e.FoldContains(a, 1) {
		t.Fatalf("line 1 is far from the block, must be foldable")
	}
}
