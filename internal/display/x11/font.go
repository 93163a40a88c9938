package x11

import (
	"github.com/BurntSushi/xgb/xproto"

	"github.com/jmylchreest/wmdialog/internal/display"
	"github.com/jmylchreest/wmdialog/internal/layout"
)

// Font is a core X font and the text strategy chosen for it.
type Font struct {
	id      xproto.Font
	name    string
	metrics layout.FontMetrics
	table   charTable
	text    textStrategy
}

func newFont(id xproto.Font, name string, info *xproto.QueryFontReply) *Font {
	table := newCharTable(info)
	return &Font{
		id:   id,
		name: name,
		metrics: layout.FontMetrics{
			Ascent:  int(info.FontAscent),
			Descent: int(info.FontDescent),
		},
		table: table,
		text:  newTextStrategy(table),
	}
}

// Name returns the name the font was opened with.
func (f *Font) Name() string { return f.name }

// Metrics returns the font's ascent and descent.
func (f *Font) Metrics() layout.FontMetrics { return f.metrics }

// Width returns the advance width of text in pixels.
func (f *Font) Width(text string) int { return f.text.width(text) }

var _ display.Font = (*Font)(nil)
