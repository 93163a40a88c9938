package tty

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/wmdialog/internal/display"
	"github.com/jmylchreest/wmdialog/internal/layout"
)

func TestService_OpenRequiresTerminal(t *testing.T) {
	s := New(Options{Input: &bytes.Buffer{}, Output: &bytes.Buffer{}})
	err := s.Open()
	assert.ErrorIs(t, err, display.ErrNoDisplay)
	assert.NoError(t, s.Close())
}

func TestService_AllocColor(t *testing.T) {
	s := New(Options{})

	fg, err := s.AllocColor("#ffffff")
	require.NoError(t, err)
	bg, err := s.AllocColor("blue")
	require.NoError(t, err)
	assert.NotEqual(t, fg, bg)
	assert.Equal(t, "#ffffff", colorName(s.palette, fg))

	_, err = s.AllocColor("nope")
	assert.ErrorIs(t, err, display.ErrUnknownColor)
}

func TestService_LoadFont(t *testing.T) {
	s := New(Options{})

	f, err := s.LoadFont("anything")
	require.NoError(t, err)
	assert.Equal(t, "anything", f.Name())
	assert.Equal(t, layout.FontMetrics{Ascent: 1}, f.Metrics())
	assert.Equal(t, 1, f.Metrics().Height())
	assert.Equal(t, 5, f.Width("hello"))
	assert.Equal(t, 4, f.Width("中文"))

	_, err = s.LoadFont("")
	assert.ErrorIs(t, err, display.ErrFontUnusable)
}

func TestService_DrawsOnBaseline(t *testing.T) {
	s := New(Options{})
	f, err := s.LoadFont(display.DefaultFont)
	require.NoError(t, err)

	require.NoError(t, s.CreateWindow(layout.Geometry{Width: 8, Height: 2}, 0))
	s.FillRect(0, 0, 8, 2, 0)
	s.DrawText(f, 2, 1, "one", 0, 0)
	s.DrawText(f, 2, 2, "two", 0, 0)

	rows := s.canvas.render(s.palette)
	assert.Equal(t, []string{"  one   ", "  two   "}, rows)
}

func TestService_PresentBeforeOpen(t *testing.T) {
	s := New(Options{})
	assert.ErrorIs(t, s.Present(), display.ErrClosed)
}

func TestService_NextEventAfterClose(t *testing.T) {
	s := New(Options{})
	s.emit(display.Event{Kind: display.EventExpose})
	require.NoError(t, s.Close())

	_, err := s.NextEvent()
	assert.ErrorIs(t, err, display.ErrClosed)
}

func TestService_NextEventDeliversQueued(t *testing.T) {
	s := New(Options{})
	s.emit(display.Event{Kind: display.EventButtonRelease, X: 1})

	ev, err := s.NextEvent()
	require.NoError(t, err)
	assert.Equal(t, display.EventButtonRelease, ev.Kind)
	assert.Equal(t, 1, ev.X)
}

func TestService_EmitNeverBlocks(t *testing.T) {
	s := New(Options{})
	for i := 0; i < eventBuffer*2; i++ {
		s.emit(display.Event{Kind: display.EventExpose})
	}
	assert.Len(t, s.events, eventBuffer)
}
