package tty

import (
	"fmt"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/jmylchreest/wmdialog/internal/display"
)

// ansiNames maps the colour names every terminal understands to ANSI indexes.
var ansiNames = map[string]string{
	"black":   "0",
	"red":     "1",
	"green":   "2",
	"yellow":  "3",
	"blue":    "4",
	"magenta": "5",
	"cyan":    "6",
	"white":   "7",
	"gray":    "8",
	"grey":    "8",
}

// parseColor converts a colour spec into a lipgloss colour string. It accepts
// #rgb and #rrggbb, ANSI indexes 0-255 and the basic colour names.
func parseColor(name string) (string, error) {
	name = strings.TrimSpace(name)
	if strings.HasPrefix(name, "#") {
		c, err := colorful.Hex(name)
		if err != nil {
			return "", fmt.Errorf("%w: %v", display.ErrUnknownColor, err)
		}
		return c.Hex(), nil
	}
	if n, err := strconv.Atoi(name); err == nil {
		if n < 0 || n > 255 {
			return "", fmt.Errorf("%w: ansi index %d out of range", display.ErrUnknownColor, n)
		}
		return name, nil
	}
	if idx, ok := ansiNames[strings.ToLower(name)]; ok {
		return idx, nil
	}
	return "", fmt.Errorf("%w: %q", display.ErrUnknownColor, name)
}

// colorName looks up an allocated colour. Colour zero is the terminal default.
func colorName(palette []string, c display.Color) string {
	if int(c) >= len(palette) {
		return ""
	}
	return palette[c]
}
