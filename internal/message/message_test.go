package message

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		maxLines int
		expected Message
	}{
		{
			name:     "no delimiters",
			raw:      "hello",
			maxLines: 5,
			expected: Message{"hello"},
		},
		{
			name:     "literal newline",
			raw:      "hello\nworld",
			maxLines: 5,
			expected: Message{"hello", "world"},
		},
		{
			name:     "escaped newline",
			raw:      `hello\nworld`,
			maxLines: 5,
			expected: Message{"hello", "world"},
		},
		{
			name:     "escaped form folds into last line",
			raw:      `a\nb\nc`,
			maxLines: 2,
			expected: Message{"a", `b\nc`},
		},
		{
			name:     "mixed delimiters take the nearer one",
			raw:      "a\\nb\nc",
			maxLines: 5,
			expected: Message{"a", "b", "c"},
		},
		{
			name:     "literal before escape",
			raw:      "a\nb\\nc",
			maxLines: 5,
			expected: Message{"a", "b", "c"},
		},
		{
			name:     "empty input",
			raw:      "",
			maxLines: 5,
			expected: Message{""},
		},
		{
			name:     "empty segments",
			raw:      "\n\n",
			maxLines: 5,
			expected: Message{"", "", ""},
		},
		{
			name:     "trailing delimiter with room",
			raw:      "a\n",
			maxLines: 5,
			expected: Message{"a", ""},
		},
		{
			name:     "trailing delimiter without room",
			raw:      "a\nb\n",
			maxLines: 2,
			expected: Message{"a", "b\n"},
		},
		{
			name:     "single line limit keeps raw text",
			raw:      "a\nb",
			maxLines: 1,
			expected: Message{"a\nb"},
		},
		{
			name:     "zero limit treated as one",
			raw:      "a\nb",
			maxLines: 0,
			expected: Message{"a\nb"},
		},
		{
			name:     "lone backslash is not a delimiter",
			raw:      `C:\path`,
			maxLines: 5,
			expected: Message{`C:\path`},
		},
		{
			name:     "backslash at end",
			raw:      `end\`,
			maxLines: 5,
			expected: Message{`end\`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Split(tt.raw, tt.maxLines))
		})
	}
}

func TestSplit_LineCountWithinLimit(t *testing.T) {
	for n := 0; n < 8; n++ {
		segments := make([]string, n+1)
		for i := range segments {
			segments[i] = strings.Repeat("x", i)
		}
		raw := strings.Join(segments, "\n")

		got := Split(raw, n+1)
		require.Len(t, got, n+1)
		assert.Equal(t, Message(segments), got)
	}
}

func TestSplit_NeverExceedsLimit(t *testing.T) {
	raw := strings.Repeat(`line\n`, 50)

	for maxLines := 1; maxLines <= 10; maxLines++ {
		got := Split(raw, maxLines)
		require.Len(t, got, maxLines)

		consumed := strings.Repeat(`line\n`, maxLines-1)
		assert.Equal(t, raw[len(consumed):], got[maxLines-1])
	}
}

func TestMessage_String(t *testing.T) {
	m := Split(`one\ntwo`, DefaultMaxLines)
	assert.Equal(t, 2, m.Count())
	assert.Equal(t, "one\ntwo", m.String())
}
