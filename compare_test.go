package diffengine

import "testing"

func TestLinesEqualPlain(t *testing.T) {
	if !linesEqual("abc", "abc", Options{}) {
		t.Fatalf("expected equal")
	}
	if linesEqual("abc", "ABC", Options{}) {
		t.Fatalf("expected unequal without ICase")
	}
}

func TestLinesEqualICase(t *testing.T) {
	opts := Options{ICase: true}
	if !linesEqual("Hello World", "hello world", opts) {
		t.Fatalf("expected case-insensitive match")
	}
	if linesEqual("Hello", "Goodbye", opts) {
		t.Fatalf("expected mismatch")
	}
}

func TestLinesEqualIWhite(t *testing.T) {
	opts := Options{IWhite: true}
	if !linesEqual("a  b", "a b", opts) {
		t.Fatalf("expected whitespace-run collapse to match")
	}
	if !linesEqual("a b  ", "a b", opts) {
		t.Fatalf("expected trailing whitespace to be ignored")
	}
	if linesEqual("ab", "a b", opts) {
		t.Fatalf("expected mismatch: no whitespace to collapse on one side")
	}
}

func TestLinesEqualIWhiteAndICase(t *testing.T) {
	opts := Options{IWhite: true, ICase: true}
	if !linesEqual("Foo   Bar", "foo bar", opts) {
		t.Fatalf("expected combined-flag match")
	}
}

func TestLinesEqualUnicodeFold(t *testing.T) {
	opts := Options{ICase: true}
	if linesEqual("straße", "STRASSE", opts) {
		// German sharp s does not fold to "ss" under simple case
		// folding; this must NOT match.
		t.Fatalf("did not expect straße to fold to STRASSE")
	}
	if !linesEqual("café", "CAFÉ", opts) {
		t.Fatalf("expected accented rune fold to match")
	}
}
