// Package layout computes dialog window geometry from message lines and font metrics.
package layout

// Edge offsets keeping the window clear of the bottom-right screen corner.
const (
	rightMargin = 2
	bottomExtra = 4
)

// FontMetrics describes the vertical extent of a loaded font in pixels.
type FontMetrics struct {
	Ascent  int
	Descent int
}

// Height returns the line height of the font.
func (m FontMetrics) Height() int {
	return m.Ascent + m.Descent
}

// Spacing is the padding between the window edge and its text.
type Spacing struct {
	Horizontal int
	Vertical   int
}

// Geometry is the size and screen origin of the dialog window.
type Geometry struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Right returns the x coordinate one past the right edge.
func (g Geometry) Right() int {
	return g.X + g.Width
}

// Bottom returns the y coordinate one past the bottom edge.
func (g Geometry) Bottom() int {
	return g.Y + g.Height
}

// Contains reports whether the screen point (x, y) lies inside the window.
func (g Geometry) Contains(x, y int) bool {
	return x >= g.X && x < g.Right() && y >= g.Y && y < g.Bottom()
}

// MeasureFunc returns the rendered width of text in pixels.
type MeasureFunc func(text string) int

// Compute derives the window geometry for lines rendered with the given font.
//
// The window is as wide as the widest line plus horizontal padding on both
// sides. Its height reserves three vertical spacings: one above the text and
// two below it. The window sits 2 pixels left of the right screen edge and one
// line height plus 4 pixels above the bottom edge.
//
// Metrics are not validated here; callers reject fonts with a zero height.
func Compute(lines []string, metrics FontMetrics, spacing Spacing, screenWidth, screenHeight int, measure MeasureFunc) Geometry {
	textWidth := 0
	for _, line := range lines {
		if w := measure(line); w > textWidth {
			textWidth = w
		}
	}

	fontHeight := metrics.Height()
	width := textWidth + 2*spacing.Horizontal
	height := 3*spacing.Vertical + fontHeight*len(lines)

	return Geometry{
		X:      screenWidth - (width + rightMargin),
		Y:      screenHeight - height - (fontHeight + bottomExtra),
		Width:  width,
		Height: height,
	}
}

// Baseline returns the window-relative origin of the text baseline for line i.
func Baseline(i int, metrics FontMetrics, spacing Spacing) (int, int) {
	return spacing.Horizontal, spacing.Vertical + metrics.Height()*(i+1)
}
