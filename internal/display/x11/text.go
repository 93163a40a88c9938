package x11

import (
	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"golang.org/x/text/encoding/charmap"
)

// maxTextItem is the longest string a single ImageText request carries.
const maxTextItem = 255

// charTable holds per-glyph advance widths from a QueryFont reply.
type charTable struct {
	minByte1    byte
	maxByte1    byte
	minByte2    uint16
	maxByte2    uint16
	defaultChar uint16
	maxWidth    int
	widths      []int
	exists      []bool
}

func newCharTable(info *xproto.QueryFontReply) charTable {
	t := charTable{
		minByte1:    info.MinByte1,
		maxByte1:    info.MaxByte1,
		minByte2:    info.MinCharOrByte2,
		maxByte2:    info.MaxCharOrByte2,
		defaultChar: info.DefaultChar,
		maxWidth:    int(info.MaxBounds.CharacterWidth),
		widths:      make([]int, len(info.CharInfos)),
		exists:      make([]bool, len(info.CharInfos)),
	}
	for i, ci := range info.CharInfos {
		t.widths[i] = int(ci.CharacterWidth)
		t.exists[i] = ci != (xproto.Charinfo{})
	}
	return t
}

// index locates the glyph for the two-byte code (b1, b2).
func (t charTable) index(b1 byte, b2 uint16) (int, bool) {
	if b1 < t.minByte1 || b1 > t.maxByte1 || b2 < t.minByte2 || b2 > t.maxByte2 {
		return 0, false
	}
	cols := int(t.maxByte2-t.minByte2) + 1
	i := int(b1-t.minByte1)*cols + int(b2-t.minByte2)
	if i >= len(t.widths) || !t.exists[i] {
		return 0, false
	}
	return i, true
}

// width returns the advance of one glyph, falling back to the default char.
func (t charTable) width(b1 byte, b2 uint16) int {
	// Monospaced fonts may omit per-glyph metrics entirely.
	if len(t.widths) == 0 {
		return t.maxWidth
	}
	if i, ok := t.index(b1, b2); ok {
		return t.widths[i]
	}
	def1, def2 := byte(t.defaultChar>>8), t.defaultChar&0xff
	if t.minByte1 == 0 && t.maxByte1 == 0 {
		def1, def2 = 0, t.defaultChar
	}
	if i, ok := t.index(def1, def2); ok {
		return t.widths[i]
	}
	return 0
}

// twoByte reports whether the font is a matrix font indexed by two bytes.
func (t charTable) twoByte() bool {
	return t.minByte1 != 0 || t.maxByte1 != 0
}

// textStrategy encodes, measures and draws text for one kind of font.
type textStrategy interface {
	width(text string) int
	draw(conn *xgb.Conn, d xproto.Drawable, gc xproto.Gcontext, x, y int, text string)
}

// newTextStrategy picks the text path for a font once, at load time.
func newTextStrategy(table charTable) textStrategy {
	if table.twoByte() {
		return wideText{table: table}
	}
	return byteText{table: table}
}

// byteText renders Latin-1 text with single-byte fonts.
type byteText struct {
	table charTable
}

// encodeLatin1 converts text to ISO 8859-1, replacing unmappable runes with '?'.
func encodeLatin1(text string) []byte {
	out := make([]byte, 0, len(text))
	for _, r := range text {
		b, ok := charmap.ISO8859_1.EncodeRune(r)
		if !ok {
			b = '?'
		}
		out = append(out, b)
	}
	return out
}

func (s byteText) width(text string) int {
	w := 0
	for _, b := range encodeLatin1(text) {
		w += s.table.width(0, uint16(b))
	}
	return w
}

func (s byteText) draw(conn *xgb.Conn, d xproto.Drawable, gc xproto.Gcontext, x, y int, text string) {
	for _, chunk := range chunk(encodeLatin1(text), maxTextItem) {
		xproto.ImageText8(conn, byte(len(chunk)), d, gc, clamp16(x), clamp16(y), string(chunk))
		for _, b := range chunk {
			x += s.table.width(0, uint16(b))
		}
	}
}

// wideText renders text with two-byte (ISO 10646) matrix fonts.
type wideText struct {
	table charTable
}

// encodeChar2b converts text to two-byte glyph codes. Runes outside the basic
// multilingual plane become '?'.
func encodeChar2b(text string) []xproto.Char2b {
	out := make([]xproto.Char2b, 0, len(text))
	for _, r := range text {
		if r > 0xffff {
			r = '?'
		}
		out = append(out, xproto.Char2b{Byte1: byte(r >> 8), Byte2: byte(r)})
	}
	return out
}

func (s wideText) width(text string) int {
	w := 0
	for _, c := range encodeChar2b(text) {
		w += s.table.width(c.Byte1, uint16(c.Byte2))
	}
	return w
}

func (s wideText) draw(conn *xgb.Conn, d xproto.Drawable, gc xproto.Gcontext, x, y int, text string) {
	for _, chunk := range chunk(encodeChar2b(text), maxTextItem) {
		xproto.ImageText16(conn, byte(len(chunk)), d, gc, clamp16(x), clamp16(y), chunk)
		for _, c := range chunk {
			x += s.table.width(c.Byte1, uint16(c.Byte2))
		}
	}
}

// chunk splits s into pieces of at most n elements.
func chunk[T any](s []T, n int) [][]T {
	var out [][]T
	for len(s) > n {
		out = append(out, s[:n])
		s = s[n:]
	}
	if len(s) > 0 {
		out = append(out, s)
	}
	return out
}

// clamp16 converts a coordinate to the protocol's int16 range.
func clamp16(v int) int16 {
	switch {
	case v > 32767:
		return 32767
	case v < -32768:
		return -32768
	default:
		return int16(v)
	}
}

// clampDim converts a size to the protocol's uint16 range. X rejects zero sizes.
func clampDim(v int) uint16 {
	switch {
	case v < 1:
		return 1
	case v > 65535:
		return 65535
	default:
		return uint16(v)
	}
}
