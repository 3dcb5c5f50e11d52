// Package layout holds text measurement helpers for the terminal views.
package layout

import (
	"regexp"
	"unicode/utf8"
)

// Ellipsis marks truncated text.
const Ellipsis = "..."

// ansiRegex matches ANSI escape sequences.
var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// StripANSI removes ANSI escape codes from a string.
func StripANSI(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}

// VisibleLength returns the visible length of a string (excluding ANSI codes).
func VisibleLength(s string) int {
	return utf8.RuneCountInString(StripANSI(s))
}

// TruncateText truncates text to maxWidth, ending it with Ellipsis.
// Returns the truncated text and whether truncation occurred.
func TruncateText(text string, maxWidth int) (string, bool) {
	if maxWidth <= 0 {
		return "", true
	}
	runes := []rune(text)
	if len(runes) <= maxWidth {
		return text, false
	}

	ellipsisLen := utf8.RuneCountInString(Ellipsis)
	if maxWidth <= ellipsisLen {
		return Ellipsis[:maxWidth], true
	}
	return string(runes[:maxWidth-ellipsisLen]) + Ellipsis, true
}

// TruncateMiddle shortens text to maxWidth by replacing its middle with
// Ellipsis, so both the start and the end of a path stay readable.
// Example: TruncateMiddle("/home/user/.config/syncmark/config.json", 20) -> "/home/use...fig.json"
func TruncateMiddle(text string, maxWidth int) (string, bool) {
	runes := []rune(text)
	if len(runes) <= maxWidth {
		return text, false
	}

	ellipsisLen := utf8.RuneCountInString(Ellipsis)
	if maxWidth <= ellipsisLen+1 {
		return TruncateText(text, maxWidth)
	}

	keep := maxWidth - ellipsisLen
	tail := keep / 2
	head := keep - tail
	return string(runes[:head]) + Ellipsis + string(runes[len(runes)-tail:]), true
}
