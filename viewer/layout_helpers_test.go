package viewer

import (
	"testing"

	"github.com/SCKelemen/layout"
)

func TestNColumnLayoutChildren(t *testing.T) {
	root := NColumnLayout(3)
	if len(root.Children) != 3 {
		t.Fatalf("expected 3 children, got %d", len(root.Children))
	}
	for i, c := range root.Children {
		if c.Style.FlexGrow != 1 {
			t.Errorf("child %d: expected default flex-grow 1, got %v", i, c.Style.FlexGrow)
		}
	}
}

func TestNColumnLayoutRatios(t *testing.T) {
	root := NColumnLayout(2, 2, 1)
	if root.Children[0].Style.FlexGrow != 2 || root.Children[1].Style.FlexGrow != 1 {
		t.Fatalf("expected flex-grow ratios 2:1, got %v:%v",
			root.Children[0].Style.FlexGrow, root.Children[1].Style.FlexGrow)
	}
}

func TestPaneWidthsFillTerminal(t *testing.T) {
	for _, n := range []int{1, 2, 3, 4} {
		widths := paneWidths(120, n)
		if len(widths) != n {
			t.Fatalf("n=%d: expected %d widths, got %d", n, n, len(widths))
		}
		total := 0
		for _, w := range widths {
			if w < 1 {
				t.Fatalf("n=%d: pane width must be positive, got %v", n, widths)
			}
			total += w
		}
		// Columns plus the gaps between them cover the full terminal width.
		if got := total + (n - 1); got != 120 {
			t.Errorf("n=%d: columns+gaps = %d, want 120 (widths %v)", n, got, widths)
		}
	}
}

func TestPaneWidthsDegenerateInput(t *testing.T) {
	if paneWidths(0, 2) != nil {
		t.Error("expected nil for zero width")
	}
	if paneWidths(80, 0) != nil {
		t.Error("expected nil for zero panes")
	}
}

func TestCenteredOverlayShape(t *testing.T) {
	root := CenteredOverlay(60, 20)
	if len(root.Children) != 1 {
		t.Fatalf("expected a single floating child, got %d", len(root.Children))
	}
	if root.Style.JustifyContent != layout.JustifyContentCenter ||
		root.Style.AlignItems != layout.AlignItemsCenter {
		t.Error("expected the overlay to center its child on both axes")
	}
}
