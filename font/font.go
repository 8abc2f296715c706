// Package font provides the bundled 8x8 bitmap font used by
// framebuf.FrameBuffer.Text, plus an adapter so a tinygo.org/x/tinyfont
// Fonter can be used in its place via TextWith.
package font

import (
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
)

// Font is the minimal contract framebuf.Text needs: an 8-row glyph for any
// rune. framebuf.Text passes runes through unchanged; Default itself
// substitutes the DEL glyph (127) for runes outside 32..127.
type Font interface {
	// Glyph returns the 8 row-bytes for r, LSB-first per row (bit 0 =
	// leftmost column), or ok=false if r has no glyph.
	Glyph(r rune) (rows [8]byte, ok bool)
}

// Default is the bundled 96-glyph (codepoints 32..127) 8x8 table.
var Default Font = table8x8{}

type table8x8 struct{}

func (table8x8) Glyph(r rune) (rows [8]byte, ok bool) {
	if r < 32 || r > 127 {
		r = 127
	}
	idx := int(r-32) * 8
	if idx < 0 || idx+8 > len(glyphData8x8) {
		return rows, false
	}
	copy(rows[:], glyphData8x8[idx:idx+8])
	return rows, true
}

// FromTinyfont adapts a tinyfont.Fonter so it can render through
// framebuf.FrameBuffer.TextWith. Because tinyfont addresses a
// drivers.Displayer directly rather than exposing raw glyph bits, the
// adapter renders each requested rune into an internal bitmask by
// presenting a tiny fake Displayer and recording the pixels tinyfont sets.
func FromTinyfont(f tinyfont.Fonter) Font {
	return &tinyfontAdapter{f: f}
}

type tinyfontAdapter struct {
	f tinyfont.Fonter
}

type maskDisplayer struct {
	rows [8]byte
}

func (d *maskDisplayer) Size() (x, y int16) { return 8, 8 }

func (d *maskDisplayer) SetPixel(x, y int16, c color.RGBA) {
	if x < 0 || x >= 8 || y < 0 || y >= 8 {
		return
	}
	if c.R == 0 && c.G == 0 && c.B == 0 && c.A == 0 {
		return
	}
	d.rows[y] |= 1 << uint(x)
}

func (d *maskDisplayer) Display() error { return nil }

var _ drivers.Displayer = (*maskDisplayer)(nil)

func (a *tinyfontAdapter) Glyph(r rune) (rows [8]byte, ok bool) {
	d := &maskDisplayer{}
	tinyfont.WriteLine(d, a.f, 0, 7, string(r), color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF})
	return d.rows, true
}
