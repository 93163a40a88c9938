package display

import "errors"

var (
	// ErrClosed is returned once the display connection has been closed.
	ErrClosed = errors.New("display closed")
	// ErrNoDisplay means the display connection could not be opened.
	ErrNoDisplay = errors.New("cannot open display")
	// ErrUnknownColor means a colour name could not be allocated.
	ErrUnknownColor = errors.New("cannot allocate color")
	// ErrFontUnusable means neither the requested nor the default font loaded.
	ErrFontUnusable = errors.New("cannot load font")
	// ErrInterrupted means the user interrupted the dialog from the backend.
	ErrInterrupted = errors.New("interrupted")
)

// Error is a fatal display setup error.
type Error struct {
	Op      string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}
