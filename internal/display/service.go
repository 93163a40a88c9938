package display

import (
	"github.com/jmylchreest/wmdialog/internal/layout"
)

// DefaultFont is loaded when the requested font is unavailable.
const DefaultFont = "fixed"

// Color is a colour handle allocated by a Service.
type Color uint32

// Font measures text for one loaded font. Each backend picks the text strategy
// for a font once, when the font is loaded.
type Font interface {
	Name() string
	Metrics() layout.FontMetrics
	Width(text string) int
}

// EventKind classifies events delivered by a Service.
type EventKind int

const (
	// EventOther is any event the dialog ignores.
	EventOther EventKind = iota
	// EventExpose asks for the window contents to be redrawn.
	EventExpose
	// EventVisibilityChange reports the window was obscured or uncovered.
	EventVisibilityChange
	// EventButtonRelease is a pointer button release on the window.
	EventButtonRelease
	// EventInterrupt is a user interrupt the backend could not turn into a signal.
	EventInterrupt
)

// String returns the string representation of the event kind.
func (k EventKind) String() string {
	switch k {
	case EventExpose:
		return "expose"
	case EventVisibilityChange:
		return "visibility"
	case EventButtonRelease:
		return "button-release"
	case EventInterrupt:
		return "interrupt"
	default:
		return "other"
	}
}

// Event is a single event from the display.
type Event struct {
	Kind EventKind
	// Count is the number of expose events still queued behind this one.
	Count int
	// Button and window-relative pointer position for button events.
	Button int
	X, Y   int
}

// Service is the windowing surface a Dialog draws on.
//
// NextEvent blocks until an event is available and returns ErrClosed once
// Close has been called. Close may be called from any goroutine; every other
// method is called by the Dialog with its lock held.
type Service interface {
	Open() error
	ScreenSize() (width, height int)
	AllocColor(name string) (Color, error)
	LoadFont(name string) (Font, error)
	CreateWindow(g layout.Geometry, border Color) error
	FillRect(x, y, width, height int, c Color)
	DrawText(f Font, x, y int, text string, fg, bg Color)
	Present() error
	Raise() error
	NextEvent() (Event, error)
	Close() error
}
