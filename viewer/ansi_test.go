package viewer

import "testing"

func TestStripANSI(t *testing.T) {
	in := "\033[1mbold\033[0m plain"
	if got := stripANSI(in); got != "bold plain" {
		t.Fatalf("got %q", got)
	}
	if got := stripANSI("no escapes"); got != "no escapes" {
		t.Fatalf("got %q", got)
	}
}

func TestTruncateANSIKeepsStyling(t *testing.T) {
	in := "\033[31mred text here\033[0m"
	got := truncateANSI(in, 3)
	if stripANSI(got) != "red" {
		t.Fatalf("expected 3 visible chars, got %q", stripANSI(got))
	}
	if got == "red" {
		t.Fatal("expected escape sequences preserved through truncation")
	}
}

func TestVisibleWidth(t *testing.T) {
	if w := visibleWidth("\033[7mabc\033[0m"); w != 3 {
		t.Fatalf("expected width 3, got %d", w)
	}
}

func TestPadTo(t *testing.T) {
	if got := padTo("ab", 5); got != "ab   " {
		t.Fatalf("got %q", got)
	}
	if got := padTo("abcdefgh", 6); stripANSI(got) != "abc..." {
		t.Fatalf("expected ellipsis truncation, got %q", got)
	}
	if got := padTo("abcdef", 2); visibleWidth(got) != 2 {
		t.Fatalf("expected hard cut at tiny widths, got %q", got)
	}
}
