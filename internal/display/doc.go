// Package display draws a dialog through a Service backend.
//
// A Dialog owns one Service. Setup opens the display, allocates the colours,
// loads the font with a fallback to DefaultFont, computes the geometry and
// maps the window. Run blocks on the Service's event stream, redrawing on
// exposure and raising the window when it is obscured, until a button release
// lands inside the window. Close releases the server resources and may be
// called from any goroutine; after it returns the dialog never touches the
// connection again.
//
// Backends live in subpackages: x11 speaks the X protocol directly and tty
// renders the same dialog into a terminal.
package display
