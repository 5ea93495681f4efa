package diffengine

import (
	"errors"
	"testing"
)

func TestRegisterBufferCapacity(t *testing.T) {
	e := New(nil, Options{})
	for i := 0; i < MaxBuffers; i++ {
		buf := NewMemBuffer("b", nil)
		idx, err := e.RegisterBuffer(buf)
		if err != nil {
			t.Fatalf("register %d: unexpected error %v", i, err)
		}
		if idx != i {
			t.Fatalf("register %d: got slot %d", i, idx)
		}
	}

	if _, err := e.RegisterBuffer(NewMemBuffer("overflow", nil)); !errors.Is(err, ErrCapacityExceeded) {
		t.Fatalf("expected ErrCapacityExceeded, got %v", err)
	}
}

func TestUnregisterBufferFreesSlot(t *testing.T) {
	e := New(nil, Options{})
	a := NewMemBuffer("a", nil)
	idx, _ := e.RegisterBuffer(a)
	e.UnregisterBuffer(a)
	if e.participating(idx) {
		t.Fatalf("slot %d still participating after unregister", idx)
	}
	if !e.Invalid() {
		t.Fatalf("expected list marked invalid after unregister")
	}
}

func TestSetOptionsStaleOnFlagChange(t *testing.T) {
	e := New(nil, Options{})
	e.invalid = false
	e.SetOptions(Options{ICase: true})
	if !e.Invalid() {
		t.Fatalf("expected invalid after ICase change")
	}

	e.invalid = false
	e.SetOptions(Options{ICase: true, Context: 5})
	if e.Invalid() {
		t.Fatalf("did not expect invalid when only Context changes")
	}
}

func TestReferenceIndexIsFirstNonEmptySlot(t *testing.T) {
	e := New(nil, Options{})
	if e.referenceIndex() != -1 {
		t.Fatalf("expected -1 for empty engine")
	}
	a := NewMemBuffer("a", nil)
	b := NewMemBuffer("b", nil)
	e.RegisterBuffer(a)
	e.RegisterBuffer(b)
	if e.referenceIndex() != 0 {
		t.Fatalf("expected reference index 0")
	}
	e.UnregisterBuffer(a)
	if e.referenceIndex() != 1 {
		t.Fatalf("expected reference index 1 after unregistering the first slot")
	}
}
