package domain

import (
	"strings"
	"unicode/utf8"
)

// TextStats summarizes a document buffer for the counter display.
type TextStats struct {
	Chars int // Unicode code points, the app's headline number
	Words int
	Lines int
}

// CountText computes display statistics for a text buffer.
func CountText(text string) TextStats {
	stats := TextStats{
		Chars: utf8.RuneCountInString(text),
		Words: len(strings.Fields(text)),
	}
	if text != "" {
		stats.Lines = strings.Count(text, "\n") + 1
	}
	return stats
}
