package textutil

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

const ellipsis = "…"

// DisplayWidth reports the printable width of text accounting for wide runes.
func DisplayWidth(text string) int {
	return runewidth.StringWidth(text)
}

// TruncateToWidth cuts text to at most width cells, ending with an ellipsis
// when something was removed.
func TruncateToWidth(text string, width int) string {
	if width <= 0 || text == "" {
		return ""
	}
	if runewidth.StringWidth(text) <= width {
		return text
	}
	return runewidth.Truncate(text, width, ellipsis)
}

// TruncateLeftToWidth keeps the end of text, which is the useful part of a
// long path.
func TruncateLeftToWidth(text string, width int) string {
	if width <= 0 || text == "" {
		return ""
	}
	if runewidth.StringWidth(text) <= width {
		return text
	}
	ellipsisWidth := runewidth.StringWidth(ellipsis)
	if width <= ellipsisWidth {
		return ellipsis
	}
	return ellipsis + runewidth.TruncateLeft(text, runewidth.StringWidth(text)-(width-ellipsisWidth), "")
}

// PadRight truncates or pads text with spaces to exactly width cells.
func PadRight(text string, width int) string {
	text = TruncateToWidth(text, width)
	if gap := width - runewidth.StringWidth(text); gap > 0 {
		return text + strings.Repeat(" ", gap)
	}
	return text
}

// PadLeft is PadRight with the padding in front, for numeric columns.
func PadLeft(text string, width int) string {
	text = TruncateToWidth(text, width)
	if gap := width - runewidth.StringWidth(text); gap > 0 {
		return strings.Repeat(" ", gap) + text
	}
	return text
}
