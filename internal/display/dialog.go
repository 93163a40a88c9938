package display

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/jmylchreest/wmdialog/internal/layout"
	"github.com/jmylchreest/wmdialog/internal/message"
)

// Style names the font and colours of a dialog.
type Style struct {
	Font       string
	Foreground string
	Background string
	Border     string
}

// Dialog is a single toast window. It owns the display handles for its
// lifetime and serialises drawing against teardown.
type Dialog struct {
	svc     Service
	lines   message.Message
	style   Style
	spacing layout.Spacing
	logger  *slog.Logger

	mu       sync.Mutex
	closed   bool
	font     Font
	fg       Color
	bg       Color
	border   Color
	geometry layout.Geometry
}

// NewDialog creates a dialog for lines. Nothing touches the display until Setup.
func NewDialog(svc Service, lines message.Message, style Style, spacing layout.Spacing, logger *slog.Logger) *Dialog {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dialog{
		svc:     svc,
		lines:   lines,
		style:   style,
		spacing: spacing,
		logger:  logger,
	}
}

// Setup opens the display, allocates colours, loads the font, computes the
// geometry, maps the window and draws it once. Every error is fatal.
func (d *Dialog) Setup() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.svc.Open(); err != nil {
		return &Error{Op: "open", Message: "cannot open display", Cause: err}
	}

	var err error
	if d.fg, err = d.allocColor(d.style.Foreground); err != nil {
		return err
	}
	if d.bg, err = d.allocColor(d.style.Background); err != nil {
		return err
	}
	if d.border, err = d.allocColor(d.style.Border); err != nil {
		return err
	}
	if d.font, err = d.loadFont(d.style.Font); err != nil {
		return err
	}

	screenW, screenH := d.svc.ScreenSize()
	d.geometry = layout.Compute(d.lines, d.font.Metrics(), d.spacing, screenW, screenH, d.font.Width)
	d.logger.Debug("computed dialog geometry",
		"lines", d.lines.Count(),
		"x", d.geometry.X,
		"y", d.geometry.Y,
		"width", d.geometry.Width,
		"height", d.geometry.Height,
		"screen_width", screenW,
		"screen_height", screenH,
	)

	if err := d.svc.CreateWindow(d.geometry, d.border); err != nil {
		return &Error{Op: "window", Message: "cannot create window", Cause: err}
	}

	return d.drawLocked()
}

// allocColor allocates a named colour. Caller must hold the lock.
func (d *Dialog) allocColor(name string) (Color, error) {
	c, err := d.svc.AllocColor(name)
	if err != nil {
		return 0, &Error{Op: "color", Message: fmt.Sprintf("cannot allocate color '%s'", name), Cause: err}
	}
	return c, nil
}

// loadFont loads name, falling back to DefaultFont. Caller must hold the lock.
func (d *Dialog) loadFont(name string) (Font, error) {
	if name == "" {
		return nil, &Error{Op: "font", Message: "cannot load font: ''", Cause: ErrFontUnusable}
	}

	font, err := d.svc.LoadFont(name)
	if err != nil {
		d.logger.Warn("failed to load font, using default", "font", name, "default", DefaultFont, "error", err)
		font, err = d.svc.LoadFont(DefaultFont)
		if err != nil {
			return nil, &Error{Op: "font", Message: fmt.Sprintf("cannot load font: '%s'", name), Cause: errors.Join(ErrFontUnusable, err)}
		}
	}

	if font.Metrics().Height() <= 0 {
		return nil, &Error{Op: "font", Message: fmt.Sprintf("cannot load font: '%s'", font.Name()), Cause: ErrFontUnusable}
	}

	d.logger.Debug("loaded font",
		"font", font.Name(),
		"ascent", font.Metrics().Ascent,
		"descent", font.Metrics().Descent,
	)
	return font, nil
}

// Geometry returns the computed window geometry.
func (d *Dialog) Geometry() layout.Geometry {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.geometry
}

// Lines returns the lines shown by the dialog.
func (d *Dialog) Lines() message.Message {
	return d.lines
}

// Draw repaints the dialog.
func (d *Dialog) Draw() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.drawLocked()
}

// drawLocked paints the background and every line. Caller must hold the lock.
func (d *Dialog) drawLocked() error {
	if d.closed {
		return ErrClosed
	}

	d.svc.FillRect(0, 0, d.geometry.Width, d.geometry.Height, d.bg)
	for i, line := range d.lines {
		x, y := layout.Baseline(i, d.font.Metrics(), d.spacing)
		d.svc.DrawText(d.font, x, y, line, d.fg, d.bg)
	}
	return d.svc.Present()
}

// raise puts the window back on top of the stack.
func (d *Dialog) raise() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return ErrClosed
	}
	return d.svc.Raise()
}

// Run waits for events until the user dismisses the window.
//
// Expose events redraw the window and visibility changes raise it again; both
// keep waiting. Run returns nil on a button release, ErrInterrupted on a
// backend interrupt and ErrClosed when the dialog was closed elsewhere.
func (d *Dialog) Run() error {
	for {
		ev, err := d.svc.NextEvent()
		if err != nil {
			return err
		}

		switch ev.Kind {
		case EventButtonRelease:
			d.logger.Debug("button released", "button", ev.Button, "x", ev.X, "y", ev.Y)
			return nil
		case EventExpose:
			if ev.Count == 0 {
				err = d.Draw()
			}
		case EventVisibilityChange:
			err = d.raise()
		case EventInterrupt:
			return ErrInterrupted
		}

		if errors.Is(err, ErrClosed) {
			return ErrClosed
		}
		if err != nil {
			d.logger.Warn("failed to handle event", "event", ev.Kind, "error", err)
		}
	}
}

// Close releases the font, surface, graphics context, window and display
// connection. Only the first call does anything.
func (d *Dialog) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return nil
	}
	d.closed = true
	return d.svc.Close()
}
