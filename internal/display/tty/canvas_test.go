package tty

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanvas_NewIsBlank(t *testing.T) {
	c := newCanvas(3, 2)
	rows := c.render([]string{""})
	require.Len(t, rows, 2)
	for _, row := range rows {
		assert.Equal(t, "   ", row)
	}
}

func TestCanvas_NegativeSize(t *testing.T) {
	c := newCanvas(-1, -4)
	assert.Empty(t, c.render(nil))
}

func TestCanvas_TextAndClip(t *testing.T) {
	c := newCanvas(6, 2)
	c.text(1, 0, "hello world", 0, 0)
	c.text(0, 1, "ok", 0, 0)
	c.text(0, 5, "off canvas", 0, 0)

	rows := c.render([]string{""})
	assert.Equal(t, " hello", rows[0])
	assert.Equal(t, "ok    ", rows[1])
}

func TestCanvas_WideRunes(t *testing.T) {
	c := newCanvas(5, 1)
	c.text(0, 0, "中文字", 0, 0)

	// The third rune would overflow the right edge.
	assert.Equal(t, "中文 ", c.render([]string{""})[0])
}

func TestCanvas_FillResetsCells(t *testing.T) {
	c := newCanvas(4, 1)
	c.text(0, 0, "abcd", 0, 0)
	c.fill(1, 0, 2, 1, 0)

	assert.Equal(t, "a  d", c.render([]string{""})[0])
}

func TestCanvas_RenderKeepsRunsTogether(t *testing.T) {
	palette := []string{"", "1", "2"}
	c := newCanvas(10, 1)
	c.fill(0, 0, 10, 1, 2)
	c.text(2, 0, "hello", 1, 2)

	row := c.render(palette)[0]
	assert.True(t, strings.Contains(row, "hello"), "row %q", row)
}
