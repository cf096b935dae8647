package textutil

import "github.com/mattn/go-runewidth"

// DisplayWidth reports the number of terminal columns text occupies.
func DisplayWidth(text string) int {
	return runewidth.StringWidth(text)
}

// TruncateToWidth cuts text so it fits in width columns. It never splits a
// wide rune; a width of zero or less means "no limit".
func TruncateToWidth(text string, width int) string {
	if width <= 0 || runewidth.StringWidth(text) <= width {
		return text
	}
	return runewidth.Truncate(text, width, "")
}
