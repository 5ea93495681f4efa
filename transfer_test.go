package diffengine

import (
	"errors"
	"testing"
)

// diffput resolves a block entirely.
func TestPutResolvesBlock(t *testing.T) {
	a := NewMemBuffer("a", []string{"x", "y", "z"})
	b := NewMemBuffer("b", []string{"x", "Y", "z"})
	e := newTestEngine(t, a, b)

	blk := &Block{}
	blk.start[0], blk.count[0] = 2, 1
	blk.start[1], blk.count[1] = 2, 1
	e.head = blk

	if err := e.Put(a, b, 2, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := b.Lines(); got[1] != "y" {
		t.Fatalf("got b=%v, want line 2 = \"y\"", got)
	}
	if len(e.Blocks()) != 0 {
		t.Fatalf("expected the resolved block to be removed, got %d blocks", len(e.Blocks()))
	}
	if e.busy {
		t.Fatalf("expected busy cleared after transfer")
	}
}

func TestGetPullsFromTargetAndLeavesUnresolvedBlockWhenThirdBufferDiffers(t *testing.T) {
	a := NewMemBuffer("a", []string{"x", "y", "z"})
	b := NewMemBuffer("b", []string{"x", "Y", "z"})
	c := NewMemBuffer("c", []string{"x", "DIFFERENT", "z"})
	e := newTestEngine(t, a, b, c)

	blk := &Block{}
	blk.start[0], blk.count[0] = 2, 1
	blk.start[1], blk.count[1] = 2, 1
	blk.start[2], blk.count[2] = 2, 1
	e.head = blk

	if err := e.Get(a, b, 2, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := a.Lines(); got[1] != "Y" {
		t.Fatalf("got a=%v, want line 2 pulled from b (\"Y\")", got)
	}
	blocks := e.Blocks()
	if len(blocks) != 1 {
		t.Fatalf("expected block to survive (c still differs), got %d blocks", len(blocks))
	}
}

func TestResolveTargetDefaultRequiresExactlyOneOther(t *testing.T) {
	a := NewMemBuffer("a", nil)
	e := newTestEngine(t, a)

	if _, err := e.ResolveTarget(a, ""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound with no other buffer, got %v", err)
	}

	b := NewMemBuffer("b", nil)
	c := NewMemBuffer("c", nil)
	e.RegisterBuffer(b)
	e.RegisterBuffer(c)

	if _, err := e.ResolveTarget(a, ""); !errors.Is(err, ErrAmbiguous) {
		t.Fatalf("expected ErrAmbiguous with two other buffers, got %v", err)
	}

	got, err := e.ResolveTarget(a, "b")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != Buffer(b) {
		t.Fatalf("expected pattern match to resolve to b")
	}
}

func TestResolveTargetByNumericIndex(t *testing.T) {
	a := NewMemBuffer("a", nil)
	b := NewMemBuffer("b", nil)
	e := newTestEngine(t, a, b)

	got, err := e.ResolveTarget(a, "1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != Buffer(b) {
		t.Fatalf("expected slot 1 to resolve to b")
	}
}
