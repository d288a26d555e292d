package render

import (
	"math"
	"strings"
	"unicode/utf8"
)

// Ellipsis ends truncated text.
const Ellipsis = "…"

// MeasureFunc returns the width of text in surface units.
type MeasureFunc func(text string) int

// Truncate keeps the first length runes of str and appends an ellipsis when
// anything was cut.
func Truncate(str string, length int) string {
	if length < utf8.RuneCountInString(str) {
		runes := []rune(str)
		return string(runes[:max(0, length)]) + Ellipsis
	}
	return str
}

// BinaryTruncateToWidth finds the longest truncation of str, searching rune
// lengths between start and end, that fits in width. With a truncationChar
// a string that does not fit is replaced by that character repeated to fill
// the width.
func BinaryTruncateToWidth(measure MeasureFunc, str string, width, start, end int, truncationChar string) string {
	length := utf8.RuneCountInString(str)
	if end >= length && measure(str) <= width {
		return str
	}

	if truncationChar != "" {
		charWidth := max(1, measure(truncationChar))
		return strings.Repeat(truncationChar, max(1, width/charWidth))
	}

	lo := start
	hi := min(length-1, end)
	result := str
	for hi >= lo {
		mid := (hi + lo + 1) / 2
		truncated := Truncate(str, mid)
		if measure(truncated) <= width {
			result = truncated
			if lo == mid {
				break
			}
			lo = mid
		} else if mid == 0 {
			// Even the bare ellipsis does not fit
			result = truncated
			break
		} else {
			hi = mid - 1
		}
	}
	return result
}

// TruncateToWidth truncates str to fit width. fontWidth is the estimated
// width of one character, used to narrow the search.
func TruncateToWidth(measure MeasureFunc, str string, width int, fontWidth float64, truncationChar string) string {
	if width <= 0 || str == "" {
		return ""
	}
	if fontWidth <= 0 {
		fontWidth = DefaultFontWidth
	}

	length := utf8.RuneCountInString(str)
	estimate := float64(width) / fontWidth
	lo := min(max(0, int(math.Floor(estimate/2))-5), length)
	hi := min(int(math.Ceil(estimate*2)), length)

	return BinaryTruncateToWidth(measure, str, width, lo, hi, truncationChar)
}

// truncateProportional shortens text to at most maxLength characters for
// the width of a header, without measuring.
func truncateProportional(text string, maxLength float64) string {
	if maxLength <= 0 {
		return ""
	}
	length := utf8.RuneCountInString(text)
	if float64(length) > maxLength {
		keep := int(maxLength - 1)
		return string([]rune(text)[:max(0, keep)]) + Ellipsis
	}
	return text
}
