// Package x11 draws dialogs on an X server using the core protocol.
package x11

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/jmylchreest/wmdialog/internal/display"
	"github.com/jmylchreest/wmdialog/internal/layout"
)

// eventMask selects the events a dialog window reacts to.
const eventMask = xproto.EventMaskExposure |
	xproto.EventMaskButtonRelease |
	xproto.EventMaskVisibilityChange

// Service implements display.Service over an X11 connection.
type Service struct {
	displayName string
	logger      *slog.Logger
	dial        func(displayName string) (*xgb.Conn, error)

	conn     *xgb.Conn
	screen   *xproto.ScreenInfo
	window   xproto.Window
	pixmap   xproto.Pixmap
	gc       xproto.Gcontext
	fonts    []*Font
	geometry layout.Geometry

	closeOnce sync.Once
}

// New creates a service for displayName. An empty name uses $DISPLAY.
//
// xgb reports through a package-level logger that writes to stderr; New points
// it at logger at debug level, so authority lookups and the closed event
// stream stay quiet unless --verbose is set.
func New(displayName string, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	xgb.Logger = slog.NewLogLogger(logger.With("component", "xgb").Handler(), slog.LevelDebug)
	return &Service{
		displayName: displayName,
		logger:      logger,
		dial:        xgb.NewConnDisplay,
	}
}

// Open connects to the X server.
func (s *Service) Open() error {
	conn, err := s.dial(s.displayName)
	if err != nil {
		return fmt.Errorf("%w: %v", display.ErrNoDisplay, err)
	}
	s.conn = conn
	s.screen = xproto.Setup(conn).DefaultScreen(conn)
	s.logger.Debug("connected to X server",
		"display", s.displayName,
		"screen_width", s.screen.WidthInPixels,
		"screen_height", s.screen.HeightInPixels,
	)
	return nil
}

// ScreenSize returns the default screen size in pixels.
func (s *Service) ScreenSize() (int, int) {
	return int(s.screen.WidthInPixels), int(s.screen.HeightInPixels)
}

// AllocColor allocates a colour in the default colormap. Hex specs are parsed
// locally, anything else is looked up by name on the server.
func (s *Service) AllocColor(name string) (display.Color, error) {
	cmap := s.screen.DefaultColormap

	if strings.HasPrefix(name, "#") {
		c, err := colorful.Hex(name)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", display.ErrUnknownColor, err)
		}
		r, g, b := c.RGB255()
		reply, err := xproto.AllocColor(s.conn, cmap, scale16(r), scale16(g), scale16(b)).Reply()
		if err != nil {
			return 0, fmt.Errorf("%w: %v", display.ErrUnknownColor, err)
		}
		return display.Color(reply.Pixel), nil
	}

	reply, err := xproto.AllocNamedColor(s.conn, cmap, uint16(len(name)), name).Reply()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", display.ErrUnknownColor, err)
	}
	return display.Color(reply.Pixel), nil
}

func scale16(v uint8) uint16 {
	return uint16(v)<<8 | uint16(v)
}

// LoadFont opens a core font and reads its glyph metrics.
func (s *Service) LoadFont(name string) (display.Font, error) {
	if name == "" {
		return nil, display.ErrFontUnusable
	}
	fid, err := xproto.NewFontId(s.conn)
	if err != nil {
		return nil, err
	}
	if err := xproto.OpenFontChecked(s.conn, fid, uint16(len(name)), name).Check(); err != nil {
		return nil, fmt.Errorf("open font %q: %w", name, err)
	}
	info, err := xproto.QueryFont(s.conn, xproto.Fontable(fid)).Reply()
	if err != nil {
		xproto.CloseFont(s.conn, fid)
		return nil, fmt.Errorf("query font %q: %w", name, err)
	}

	f := newFont(fid, name, info)
	s.fonts = append(s.fonts, f)
	s.logger.Debug("loaded font",
		"font", name,
		"ascent", f.metrics.Ascent,
		"descent", f.metrics.Descent,
		"two_byte", f.table.twoByte(),
	)
	return f, nil
}

// CreateWindow creates the override-redirect window and its back buffer, then
// maps it above its siblings.
func (s *Service) CreateWindow(g layout.Geometry, border display.Color) error {
	s.geometry = g
	width, height := clampDim(g.Width), clampDim(g.Height)

	wid, err := xproto.NewWindowId(s.conn)
	if err != nil {
		return err
	}
	err = xproto.CreateWindowChecked(s.conn, s.screen.RootDepth, wid, s.screen.Root,
		clamp16(g.X), clamp16(g.Y), width, height, 1,
		xproto.WindowClassCopyFromParent, s.screen.RootVisual,
		xproto.CwBackPixmap|xproto.CwBorderPixel|xproto.CwOverrideRedirect|xproto.CwEventMask,
		[]uint32{xproto.BackPixmapParentRelative, uint32(border), 1, eventMask},
	).Check()
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	s.window = wid

	pid, err := xproto.NewPixmapId(s.conn)
	if err != nil {
		return err
	}
	root := xproto.Drawable(s.screen.Root)
	if err := xproto.CreatePixmapChecked(s.conn, s.screen.RootDepth, pid, root, width, height).Check(); err != nil {
		return fmt.Errorf("create pixmap: %w", err)
	}
	s.pixmap = pid

	gc, err := xproto.NewGcontextId(s.conn)
	if err != nil {
		return err
	}
	if err := xproto.CreateGCChecked(s.conn, gc, root, xproto.GcLineWidth, []uint32{1}).Check(); err != nil {
		return fmt.Errorf("create gc: %w", err)
	}
	s.gc = gc

	return s.Raise()
}

// FillRect fills a rectangle of the back buffer.
func (s *Service) FillRect(x, y, width, height int, c display.Color) {
	xproto.ChangeGC(s.conn, s.gc, xproto.GcForeground, []uint32{uint32(c)})
	xproto.PolyFillRectangle(s.conn, xproto.Drawable(s.pixmap), s.gc, []xproto.Rectangle{{
		X:      clamp16(x),
		Y:      clamp16(y),
		Width:  clampDim(width),
		Height: clampDim(height),
	}})
}

// DrawText draws text with its baseline at y into the back buffer.
func (s *Service) DrawText(f display.Font, x, y int, text string, fg, bg display.Color) {
	xf, ok := f.(*Font)
	if !ok {
		s.logger.Warn("font not loaded by this display", "font", f.Name())
		return
	}
	xproto.ChangeGC(s.conn, s.gc, xproto.GcForeground|xproto.GcBackground|xproto.GcFont,
		[]uint32{uint32(fg), uint32(bg), uint32(xf.id)})
	xf.text.draw(s.conn, xproto.Drawable(s.pixmap), s.gc, x, y, text)
}

// Present copies the back buffer to the window and waits for the server.
func (s *Service) Present() error {
	xproto.CopyArea(s.conn, xproto.Drawable(s.pixmap), xproto.Drawable(s.window), s.gc,
		0, 0, 0, 0, clampDim(s.geometry.Width), clampDim(s.geometry.Height))
	return s.sync()
}

// Raise maps the window above its siblings.
func (s *Service) Raise() error {
	xproto.ConfigureWindow(s.conn, s.window, xproto.ConfigWindowStackMode,
		[]uint32{xproto.StackModeAbove})
	xproto.MapWindow(s.conn, s.window)
	return s.sync()
}

// sync round-trips to the server so queued requests are processed.
func (s *Service) sync() error {
	_, err := xproto.GetInputFocus(s.conn).Reply()
	return err
}

// NextEvent blocks for the next X event.
func (s *Service) NextEvent() (display.Event, error) {
	ev, xerr := s.conn.WaitForEvent()
	if ev == nil && xerr == nil {
		return display.Event{}, display.ErrClosed
	}
	if xerr != nil {
		s.logger.Debug("x11 protocol error", "error", xerr)
		return display.Event{Kind: display.EventOther}, nil
	}
	return translate(ev), nil
}

// translate maps an X event to a display event.
func translate(ev xgb.Event) display.Event {
	switch e := ev.(type) {
	case xproto.ExposeEvent:
		return display.Event{Kind: display.EventExpose, Count: int(e.Count)}
	case xproto.VisibilityNotifyEvent:
		return display.Event{Kind: display.EventVisibilityChange}
	case xproto.ButtonReleaseEvent:
		return display.Event{
			Kind:   display.EventButtonRelease,
			Button: int(e.Detail),
			X:      int(e.EventX),
			Y:      int(e.EventY),
		}
	default:
		return display.Event{Kind: display.EventOther}
	}
}

// Close frees every handle that was created and disconnects. It is safe to
// call more than once.
func (s *Service) Close() error {
	var err error
	s.closeOnce.Do(func() {
		if s.conn == nil {
			return
		}
		for _, f := range s.fonts {
			xproto.CloseFont(s.conn, f.id)
		}
		if s.gc != 0 {
			xproto.FreeGC(s.conn, s.gc)
		}
		if s.pixmap != 0 {
			xproto.FreePixmap(s.conn, s.pixmap)
		}
		if s.window != 0 {
			xproto.DestroyWindow(s.conn, s.window)
		}
		err = s.sync()
		s.conn.Close()
	})
	return err
}

var _ display.Service = (*Service)(nil)
