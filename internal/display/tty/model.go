package tty

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/wmdialog/internal/display"
	"github.com/jmylchreest/wmdialog/internal/layout"
)

// frameMsg carries a presented back buffer to the program.
type frameMsg struct {
	geometry layout.Geometry
	// screen is the terminal size the geometry was computed against.
	screenW, screenH int
	border           string
	rows             []string
}

// model is the bubbletea model that shows the dialog box. It anchors the box
// to the bottom-right corner so a resized terminal keeps the same margins.
type model struct {
	width  int
	height int
	frame  frameMsg
	keys   keyMap
	emit   func(display.Event)
}

func newModel(width, height int, keys keyMap, emit func(display.Event)) model {
	return model{width: width, height: height, keys: keys, emit: emit}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.emit(display.Event{Kind: display.EventExpose})

	case frameMsg:
		m.frame = msg

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionRelease {
			break
		}
		if ev, ok := m.hit(msg.X, msg.Y); ok {
			ev.Button = int(msg.Button)
			m.emit(ev)
		}

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Interrupt) {
			m.emit(display.Event{Kind: display.EventInterrupt})
		}
	}
	return m, nil
}

// origin returns the screen cell of the box's top-left border corner.
func (m model) origin() (int, int) {
	x, y := m.frame.geometry.X, m.frame.geometry.Y
	if m.width > 0 && m.frame.screenW > 0 {
		x += m.width - m.frame.screenW
	}
	if m.height > 0 && m.frame.screenH > 0 {
		y += m.height - m.frame.screenH
	}
	return max(x, 0), max(y, 0)
}

// hit reports whether the screen cell (x, y) falls on the box, border
// included, and returns a button event with box-relative coordinates.
func (m model) hit(x, y int) (display.Event, bool) {
	if m.frame.rows == nil {
		return display.Event{}, false
	}
	ox, oy := m.origin()
	g := m.frame.geometry
	outer := layout.Geometry{X: ox, Y: oy, Width: g.Width + 2, Height: g.Height + 2}
	if !outer.Contains(x, y) {
		return display.Event{}, false
	}
	return display.Event{Kind: display.EventButtonRelease, X: x - ox - 1, Y: y - oy - 1}, true
}

func (m model) View() string {
	if m.frame.rows == nil {
		return ""
	}
	style := lipgloss.NewStyle().Border(lipgloss.NormalBorder())
	if m.frame.border != "" {
		style = style.BorderForeground(lipgloss.Color(m.frame.border))
	}
	box := style.Render(strings.Join(m.frame.rows, "\n"))

	ox, oy := m.origin()
	indent := strings.Repeat(" ", ox)

	var b strings.Builder
	b.WriteString(strings.Repeat("\n", oy))
	for i, line := range strings.Split(box, "\n") {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(indent)
		b.WriteString(line)
	}
	return b.String()
}
