// Package driver adapts a framebuf.FrameBuffer to the
// tinygo.org/x/drivers.Displayer interface, so tinyfont and real panel
// drivers from the tinygo.org/x/drivers family can address this library's
// buffer directly.
package driver

import (
	"image/color"

	"tinygo.org/x/drivers"

	"framebuf"
)

// Displayer wraps fb as a drivers.Displayer. fb must be in RGB565 format;
// SetPixel is a no-op on any other format since the 24-bit color.RGBA
// input has no lossless mapping into the narrower palette formats.
func Displayer(fb *framebuf.FrameBuffer) drivers.Displayer {
	return &fbDisplayer{fb: fb}
}

type fbDisplayer struct {
	fb *framebuf.FrameBuffer
}

func (d *fbDisplayer) Size() (x, y int16) {
	return int16(d.fb.Width()), int16(d.fb.Height())
}

func (d *fbDisplayer) SetPixel(x, y int16, c color.RGBA) {
	if d.fb.Format() != framebuf.RGB565 {
		return
	}
	col := uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
	d.fb.SetPixel(int(x), int(y), col)
}

func (d *fbDisplayer) Display() error { return nil }

var _ drivers.Displayer = (*fbDisplayer)(nil)
