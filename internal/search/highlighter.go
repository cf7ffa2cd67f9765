package search

import (
	"strings"
	"unicode/utf8"
)

// Highlight wraps case-insensitive occurrences of terms in text with open and close
// markers, then truncates the result to maxLen runes of the original text.
// maxLen <= 0 disables truncation.
func Highlight(text string, terms []string, open, close string, maxLen int) string {
	truncated := false
	if maxLen > 0 && utf8.RuneCountInString(text) > maxLen {
		text = string([]rune(text)[:maxLen])
		truncated = true
	}

	lower := strings.ToLower(text)
	if len(lower) != len(text) {
		// Offsets in lower must line up with text.
		terms = nil
	}
	marks := make([]bool, len(text))
	for _, term := range terms {
		term = strings.ToLower(strings.TrimSpace(term))
		if term == "" {
			continue
		}
		for start := 0; ; {
			i := strings.Index(lower[start:], term)
			if i < 0 {
				break
			}
			for j := start + i; j < start+i+len(term); j++ {
				marks[j] = true
			}
			start += i + len(term)
		}
	}

	var b strings.Builder
	inMark := false
	for i := 0; i < len(text); i++ {
		if marks[i] != inMark {
			if marks[i] {
				b.WriteString(open)
			} else {
				b.WriteString(close)
			}
			inMark = marks[i]
		}
		b.WriteByte(text[i])
	}
	if inMark {
		b.WriteString(close)
	}
	if truncated {
		b.WriteString("...")
	}
	return b.String()
}
