package tty

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/wmdialog/internal/display"
)

// cell is one terminal column of the back buffer.
type cell struct {
	r  rune
	fg display.Color
	bg display.Color
	// cont marks the second column of a double-width rune.
	cont bool
}

// canvas is the back buffer the dialog draws into, in cells.
type canvas struct {
	width  int
	height int
	cells  []cell
}

func newCanvas(width, height int) canvas {
	width, height = max(width, 0), max(height, 0)
	c := canvas{width: width, height: height, cells: make([]cell, width*height)}
	for i := range c.cells {
		c.cells[i].r = ' '
	}
	return c
}

func (c *canvas) at(x, y int) *cell {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return nil
	}
	return &c.cells[y*c.width+x]
}

// fill blanks a rectangle with the colour col.
func (c *canvas) fill(x, y, width, height int, col display.Color) {
	for cy := y; cy < y+height; cy++ {
		for cx := x; cx < x+width; cx++ {
			if p := c.at(cx, cy); p != nil {
				*p = cell{r: ' ', fg: col, bg: col}
			}
		}
	}
}

// text writes s on row starting at column x, clipping at the right edge.
func (c *canvas) text(x, row int, s string, fg, bg display.Color) {
	for _, r := range s {
		w := lipgloss.Width(string(r))
		if w == 0 {
			continue
		}
		if x+w > c.width {
			return
		}
		if p := c.at(x, row); p != nil {
			*p = cell{r: r, fg: fg, bg: bg}
		}
		if w == 2 {
			if p := c.at(x+1, row); p != nil {
				*p = cell{fg: fg, bg: bg, cont: true}
			}
		}
		x += w
	}
}

// render styles every row, merging runs of cells that share colours.
func (c canvas) render(palette []string) []string {
	rows := make([]string, 0, c.height)
	for y := 0; y < c.height; y++ {
		var (
			b      strings.Builder
			run    strings.Builder
			fg, bg display.Color
		)
		flush := func() {
			if run.Len() == 0 {
				return
			}
			b.WriteString(styleFor(palette, fg, bg).Render(run.String()))
			run.Reset()
		}
		for x := 0; x < c.width; x++ {
			p := c.cells[y*c.width+x]
			if p.cont {
				continue
			}
			if p.fg != fg || p.bg != bg {
				flush()
				fg, bg = p.fg, p.bg
			}
			run.WriteRune(p.r)
		}
		flush()
		rows = append(rows, b.String())
	}
	return rows
}

func styleFor(palette []string, fg, bg display.Color) lipgloss.Style {
	style := lipgloss.NewStyle()
	if name := colorName(palette, fg); name != "" {
		style = style.Foreground(lipgloss.Color(name))
	}
	if name := colorName(palette, bg); name != "" {
		style = style.Background(lipgloss.Color(name))
	}
	return style
}
