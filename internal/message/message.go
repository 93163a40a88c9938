// Package message splits raw dialog text into display lines.
package message

import "strings"

// DefaultMaxLines is the line limit used when none is configured.
const DefaultMaxLines = 20

// escapedNewline is the two-character sequence treated as a line break.
const escapedNewline = `\n`

// Message is an ordered, non-empty list of display lines.
type Message []string

// Split cuts raw into at most maxLines lines.
//
// A literal newline or the escape sequence `\n` ends a line, whichever comes
// first. Once maxLines-1 lines have been cut the rest of raw, delimiters
// included, becomes the last line unchanged. A maxLines below 1 is treated as 1.
func Split(raw string, maxLines int) Message {
	if maxLines < 1 {
		maxLines = 1
	}

	lines := make(Message, 0, min(maxLines, strings.Count(raw, "\n")+strings.Count(raw, escapedNewline)+1))
	rest := raw
	for len(lines) < maxLines-1 {
		idx, width := nextBreak(rest)
		if idx < 0 {
			break
		}
		lines = append(lines, rest[:idx])
		rest = rest[idx+width:]
	}
	return append(lines, rest)
}

// nextBreak returns the index and byte width of the first delimiter in s,
// or -1 when s has none.
func nextBreak(s string) (int, int) {
	nl := strings.IndexByte(s, '\n')
	esc := strings.Index(s, escapedNewline)

	switch {
	case nl < 0 && esc < 0:
		return -1, 0
	case esc < 0 || (nl >= 0 && nl < esc):
		return nl, 1
	default:
		return esc, len(escapedNewline)
	}
}

// Count returns the number of lines.
func (m Message) Count() int {
	return len(m)
}

// String joins the lines with newlines.
func (m Message) String() string {
	return strings.Join(m, "\n")
}
