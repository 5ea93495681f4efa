package viewer

import (
	"github.com/SCKelemen/layout"
)

// NColumnLayout builds the flexbox row that places 1..4 diff panes side by
// side, one column per participating buffer. ratios sets per-column
// flex-grow; a missing or zero ratio defaults to 1 (equal widths).
func NColumnLayout(n int, ratios ...float64) *layout.Node {
	children := make([]*layout.Node, n)
	for i := 0; i < n; i++ {
		grow := 1.0
		if i < len(ratios) && ratios[i] != 0 {
			grow = ratios[i]
		}
		children[i] = &layout.Node{
			Style: layout.Style{FlexGrow: grow},
		}
	}
	return &layout.Node{
		Style: layout.Style{
			Display:       layout.DisplayFlex,
			FlexDirection: layout.FlexDirectionRow,
			Width:         layout.Vw(100),
			Height:        layout.Vh(100),
			FlexGap:       layout.Ch(1),
		},
		Children: children,
	}
}

// paneWidths solves NColumnLayout for a concrete terminal width and returns
// the resulting column widths in cells. The Model calls this on every
// WindowSizeMsg so pane sizing goes through the same flexbox the rest of
// the chrome uses instead of a hand-rolled division.
func paneWidths(total, n int) []int {
	if n <= 0 || total <= 0 {
		return nil
	}
	root := NColumnLayout(n)
	ctx := layout.NewLayoutContext(float64(total), 1, 16)
	layout.Layout(root, layout.Tight(float64(total), 1), ctx)

	// Treat the solved widths as proportions and apportion the cells left
	// after the inter-pane gaps, so rounding inside the layout engine never
	// leaves the row short of (or past) the terminal edge.
	target := total - (n - 1)
	if target < n {
		target = n
	}
	sum := 0.0
	for _, child := range root.Children {
		sum += child.Rect.Width
	}

	widths := make([]int, n)
	assigned := 0
	for i, child := range root.Children {
		share := 1.0 / float64(n)
		if sum > 0 {
			share = child.Rect.Width / sum
		}
		widths[i] = int(share * float64(target))
		if widths[i] < 1 {
			widths[i] = 1
		}
		assigned += widths[i]
	}
	widths[n-1] += target - assigned
	if widths[n-1] < 1 {
		widths[n-1] = 1
	}
	return widths
}

// CenteredOverlay builds the node tree that floats a w x h box (in cells)
// over the full viewport. No viewer component calls it: Model.View appends
// the command palette and modal below the status bar.
func CenteredOverlay(w, h float64) *layout.Node {
	return &layout.Node{
		Style: layout.Style{
			Display:        layout.DisplayFlex,
			FlexDirection:  layout.FlexDirectionColumn,
			JustifyContent: layout.JustifyContentCenter,
			AlignItems:     layout.AlignItemsCenter,
			Width:          layout.Vw(100),
			Height:         layout.Vh(100),
		},
		Children: []*layout.Node{
			{
				Style: layout.Style{
					Width:  layout.Ch(w),
					Height: layout.Ch(h),
				},
			},
		},
	}
}
