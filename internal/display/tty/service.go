// Package tty shows dialogs in a terminal for sessions without an X server.
package tty

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/jmylchreest/wmdialog/internal/display"
	"github.com/jmylchreest/wmdialog/internal/layout"
)

// eventBuffer bounds events queued before the dialog starts reading them.
const eventBuffer = 64

// Options configures the terminal service.
type Options struct {
	// Input and Output default to stdin and stdout. Output must be a terminal.
	Input  io.Reader
	Output io.Writer
	Logger *slog.Logger
}

// Service implements display.Service on a terminal using bubbletea.
type Service struct {
	opts   Options
	logger *slog.Logger

	program *tea.Program
	events  chan display.Event
	closed  chan struct{}
	exited  chan struct{}
	runErr  error

	screenW  int
	screenH  int
	palette  []string
	canvas   canvas
	geometry layout.Geometry
	border   string

	closeOnce sync.Once
}

// New creates a terminal service.
func New(opts Options) *Service {
	if opts.Input == nil {
		opts.Input = os.Stdin
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		opts:    opts,
		logger:  logger,
		events:  make(chan display.Event, eventBuffer),
		closed:  make(chan struct{}),
		exited:  make(chan struct{}),
		palette: []string{""},
	}
}

// Open takes over the terminal and starts the program.
func (s *Service) Open() error {
	f, ok := s.opts.Output.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return fmt.Errorf("%w: output is not a terminal", display.ErrNoDisplay)
	}
	w, h, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return fmt.Errorf("%w: %v", display.ErrNoDisplay, err)
	}
	s.screenW, s.screenH = w, h

	m := newModel(w, h, defaultKeyMap(), s.emit)
	s.program = tea.NewProgram(m,
		tea.WithInput(s.opts.Input),
		tea.WithOutput(s.opts.Output),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithoutSignalHandler(),
	)
	go func() {
		_, err := s.program.Run()
		s.runErr = err
		close(s.exited)
	}()

	s.logger.Debug("terminal opened", "width", w, "height", h)
	return nil
}

// emit queues an event without blocking the program's update loop.
func (s *Service) emit(ev display.Event) {
	select {
	case s.events <- ev:
	default:
		s.logger.Debug("dropping terminal event", "kind", ev.Kind)
	}
}

// ScreenSize returns the terminal size in cells.
func (s *Service) ScreenSize() (int, int) {
	return s.screenW, s.screenH
}

// AllocColor registers a colour in the palette.
func (s *Service) AllocColor(name string) (display.Color, error) {
	c, err := parseColor(name)
	if err != nil {
		return 0, err
	}
	s.palette = append(s.palette, c)
	return display.Color(len(s.palette) - 1), nil
}

// LoadFont returns a one-cell font. Terminals have a single font, so any
// non-empty name loads.
func (s *Service) LoadFont(name string) (display.Font, error) {
	if name == "" {
		return nil, display.ErrFontUnusable
	}
	return cellFont{name: name}, nil
}

// CreateWindow allocates the back buffer for a box of g's size.
func (s *Service) CreateWindow(g layout.Geometry, border display.Color) error {
	s.geometry = g
	s.canvas = newCanvas(g.Width, g.Height)
	s.border = colorName(s.palette, border)
	return nil
}

// FillRect fills a rectangle of the back buffer.
func (s *Service) FillRect(x, y, width, height int, c display.Color) {
	s.canvas.fill(x, y, width, height, c)
}

// DrawText writes text whose baseline is on row y.
func (s *Service) DrawText(f display.Font, x, y int, text string, fg, bg display.Color) {
	s.canvas.text(x, y-f.Metrics().Ascent, text, fg, bg)
}

// Present hands the back buffer to the program for display.
func (s *Service) Present() error {
	if s.program == nil {
		return display.ErrClosed
	}
	s.program.Send(frameMsg{
		geometry: s.geometry,
		screenW:  s.screenW,
		screenH:  s.screenH,
		border:   s.border,
		rows:     s.canvas.render(s.palette),
	})
	return nil
}

// Raise is a no-op; the box is always on top of the alternate screen.
func (s *Service) Raise() error {
	return nil
}

// NextEvent blocks for the next terminal event. If the program stops on its
// own the dialog is told it was interrupted.
func (s *Service) NextEvent() (display.Event, error) {
	select {
	case <-s.closed:
		return display.Event{}, display.ErrClosed
	default:
	}
	select {
	case ev := <-s.events:
		return ev, nil
	case <-s.closed:
		return display.Event{}, display.ErrClosed
	case <-s.exited:
		s.logger.Debug("terminal program exited", "error", s.runErr)
		return display.Event{Kind: display.EventInterrupt}, nil
	}
}

// Close stops the program and restores the terminal.
func (s *Service) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.closed)
		if s.program == nil {
			return
		}
		s.program.Quit()
		<-s.exited
		err = s.runErr
	})
	return err
}

// cellFont measures text in terminal cells.
type cellFont struct {
	name string
}

func (f cellFont) Name() string { return f.name }

func (f cellFont) Metrics() layout.FontMetrics {
	return layout.FontMetrics{Ascent: 1, Descent: 0}
}

func (f cellFont) Width(text string) int {
	return lipgloss.Width(text)
}

var _ display.Service = (*Service)(nil)
