package display

import (
	"errors"
	"sync"
	"unicode/utf8"

	"github.com/jmylchreest/wmdialog/internal/layout"
)

// fakeFont measures every rune as 7 pixels.
type fakeFont struct {
	name    string
	metrics layout.FontMetrics
}

func (f *fakeFont) Name() string                { return f.name }
func (f *fakeFont) Metrics() layout.FontMetrics { return f.metrics }
func (f *fakeFont) Width(text string) int       { return 7 * utf8.RuneCountInString(text) }

type drawnText struct {
	X, Y int
	Text string
}

// fakeService records drawing calls and replays queued events.
type fakeService struct {
	mu sync.Mutex

	openErr   error
	colors    map[string]Color
	fonts     map[string]*fakeFont
	screenW   int
	screenH   int
	events    chan Event
	closed    chan struct{}
	closeOnce sync.Once

	window   layout.Geometry
	border   Color
	texts    []drawnText
	fills    int
	presents int
	raises   int
	closes   int
}

func newFakeService() *fakeService {
	return &fakeService{
		colors: map[string]Color{
			"#000000": 1,
			"#ffffff": 2,
			"#ff0000": 3,
		},
		fonts: map[string]*fakeFont{
			DefaultFont: {name: DefaultFont, metrics: layout.FontMetrics{Ascent: 11, Descent: 2}},
		},
		screenW: 1920,
		screenH: 1080,
		events:  make(chan Event, 16),
		closed:  make(chan struct{}),
	}
}

func (s *fakeService) Open() error { return s.openErr }

func (s *fakeService) ScreenSize() (int, int) { return s.screenW, s.screenH }

func (s *fakeService) AllocColor(name string) (Color, error) {
	if c, ok := s.colors[name]; ok {
		return c, nil
	}
	return 0, ErrUnknownColor
}

func (s *fakeService) LoadFont(name string) (Font, error) {
	if f, ok := s.fonts[name]; ok {
		return f, nil
	}
	return nil, errors.New("no such font")
}

func (s *fakeService) CreateWindow(g layout.Geometry, border Color) error {
	s.window = g
	s.border = border
	return nil
}

func (s *fakeService) FillRect(x, y, width, height int, c Color) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fills++
}

func (s *fakeService) DrawText(f Font, x, y int, text string, fg, bg Color) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.texts = append(s.texts, drawnText{X: x, Y: y, Text: text})
}

func (s *fakeService) Present() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.presents++
	return nil
}

func (s *fakeService) Raise() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.raises++
	return nil
}

func (s *fakeService) NextEvent() (Event, error) {
	select {
	case ev := <-s.events:
		return ev, nil
	case <-s.closed:
		return Event{}, ErrClosed
	}
}

func (s *fakeService) Close() error {
	s.mu.Lock()
	s.closes++
	s.mu.Unlock()
	s.closeOnce.Do(func() { close(s.closed) })
	return nil
}

func (s *fakeService) counts() (presents, raises, closes int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.presents, s.raises, s.closes
}
