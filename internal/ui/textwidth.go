package ui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Ellipsis ends text cut by TruncateToWidthWithEllipsis.
const Ellipsis = "…"

// RuneWidth returns the number of cells a rune takes: 2 for wide runes
// (emoji, CJK), 0 for combining marks and control characters.
func RuneWidth(r rune) int {
	return max(0, runewidth.RuneWidth(r))
}

// StringWidth returns the number of cells a string takes.
func StringWidth(s string) int {
	return runewidth.StringWidth(s)
}

// TruncateToWidth cuts s to at most maxWidth cells without splitting a
// wide rune.
func TruncateToWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	width := 0
	for i, r := range s {
		width += RuneWidth(r)
		if width > maxWidth {
			return s[:i]
		}
	}
	return s
}

// TruncateToWidthWithEllipsis cuts s to maxWidth cells, ending it with an
// ellipsis when anything was cut.
func TruncateToWidthWithEllipsis(s string, maxWidth int) string {
	if StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= 1 {
		return TruncateToWidth(Ellipsis, maxWidth)
	}
	return TruncateToWidth(s, maxWidth-1) + Ellipsis
}

// PadStringToWidth pads s with spaces to width cells.
func PadStringToWidth(s string, width int) string {
	if n := width - StringWidth(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}
