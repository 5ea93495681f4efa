package viewer

import "strings"

// stripANSI removes ANSI escape sequences so visible width can be measured.
func stripANSI(s string) string {
	var out strings.Builder
	inEscape := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			inEscape = true
		case inEscape:
			if r == 'm' {
				inEscape = false
			}
		default:
			out.WriteRune(r)
		}
	}
	return out.String()
}

// truncateANSI cuts s down to maxWidth visible characters, keeping escape
// sequences intact so styling survives the cut.
func truncateANSI(s string, maxWidth int) string {
	var out strings.Builder
	width := 0
	inEscape := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			inEscape = true
			out.WriteRune(r)
		case inEscape:
			out.WriteRune(r)
			if r == 'm' {
				inEscape = false
			}
		default:
			if width >= maxWidth {
				continue
			}
			out.WriteRune(r)
			width++
		}
	}
	return out.String()
}

// visibleWidth counts the runes of s that actually occupy a terminal cell.
func visibleWidth(s string) int {
	return len([]rune(stripANSI(s)))
}

// padTo right-pads s with spaces to the given visible width, truncating with
// an ellipsis when it is too long.
func padTo(s string, width int) string {
	w := visibleWidth(s)
	if w > width {
		if width > 3 {
			return truncateANSI(s, width-3) + "..."
		}
		return truncateANSI(s, width)
	}
	return s + strings.Repeat(" ", width-w)
}
