package viewer

import (
	"fmt"
	"strconv"
	"strings"

	design "github.com/SCKelemen/design-system"

	diffengine "github.com/SCKelemen/diffengine"
)

func designTokensForTheme(theme string) *design.DesignTokens {
	switch strings.ToLower(strings.TrimSpace(theme)) {
	case "midnight":
		return design.MidnightTheme()
	case "nord":
		return design.NordTheme()
	case "paper":
		return design.PaperTheme()
	case "wrapped":
		return design.WrappedTheme()
	default:
		return design.DefaultTheme()
	}
}

func ansiColorFromHex(hex string) string {
	s := strings.TrimSpace(strings.TrimPrefix(hex, "#"))
	if len(s) != 6 {
		return ""
	}

	value, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return ""
	}

	r := (value >> 16) & 0xFF
	g := (value >> 8) & 0xFF
	b := value & 0xFF
	return fmt.Sprintf("\033[38;2;%d;%d;%dm", r, g, b)
}

// lineClassColors are the ANSI foreground codes DiffPane uses to paint each
// of query.go's LineClass results, derived from the active design-system
// theme rather than a fixed palette. The accent color marks both Changed
// text and the highlighted intra-line span, so the theme chosen with
// WithViewerTheme colors diff output consistently with the rest of the
// chrome.
type lineClassColors struct {
	Changed          string // accent-colored "! " marker and unchanged half of a changed line
	ChangedHighlight string // inverse-accent background for the intra-line change span
	InsertedOrDeleted string // green, the conventional insertion color
	Filler           string // dim foreground, for "~" filler rows and unchanged context
	Reset            string
}

func lineClassColorsForTheme(tokens *design.DesignTokens) lineClassColors {
	accent := ansiColorFromHex(tokens.Accent)
	if accent == "" {
		accent = "\033[33m"
	}
	return lineClassColors{
		Changed:           accent,
		ChangedHighlight:  "\033[7m" + accent,
		InsertedOrDeleted: "\033[32m",
		Filler:            "\033[2m",
		Reset:             "\033[0m",
	}
}

// forClass picks the marker color for a query.go LineClass; callers that
// already know they're in the ClassFillerAbove gap use Filler directly.
func (c lineClassColors) forClass(class diffengine.LineClass) string {
	switch class {
	case diffengine.ClassChanged:
		return c.Changed
	case diffengine.ClassInsertedOrDeleted:
		return c.InsertedOrDeleted
	default:
		return c.Filler
	}
}
