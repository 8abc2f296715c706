// Package framebuf is an embedded 2D framebuffer graphics library. It owns
// no display hardware: it manipulates a caller-provided linear byte buffer
// interpreted as a 2D pixel grid in one of seven pixel-packing formats, and
// exposes primitive drawing operations (pixel, line, rectangle, circle,
// triangle, text, bit-blit, scroll) over that buffer.
//
// The buffer is never copied or retained beyond the lifetime the caller
// already gives it: FrameBuffer holds only the slice header, so the host
// is responsible for keeping the backing array alive.
package framebuf

import (
	"fmt"

	"framebuf/font"
	"framebuf/pixfmt"
)

// Format identifies one of the seven supported pixel packings.
type Format = pixfmt.Format

// Format constants, matching the legacy numbering.
const (
	MVLSB   = pixfmt.MVLSB
	RGB565  = pixfmt.RGB565
	GS4HMSB = pixfmt.GS4HMSB
	MHLSB   = pixfmt.MHLSB
	MHMSB   = pixfmt.MHMSB
	GS2HMSB = pixfmt.GS2HMSB
	PL8     = pixfmt.PL8
)

// Aliases matching the legacy MicroPython-style names.
const (
	MonoVLSB = pixfmt.MonoVLSB
	MonoHLSB = pixfmt.MonoHLSB
	MonoHMSB = pixfmt.MonoHMSB
)

// NoKey is the sentinel color-key value meaning "no transparency" for Blit.
const NoKey = -1

// ConstructionError is returned by New when the format tag is unknown or
// the supplied buffer is too small for the requested geometry.
type ConstructionError struct {
	Reason string
}

func (e *ConstructionError) Error() string { return "framebuf: " + e.Reason }

// Config bundles optional construction knobs for New.
type Config struct {
	// Stride overrides the default row stride (pixels). Zero means
	// "compute from width per the format's rounding rule."
	Stride int
	// Fill, if non-nil, is used to fill the whole buffer immediately
	// after construction.
	Fill *uint32
}

// FrameBuffer is a 2D pixel grid backed by a caller-owned byte buffer.
//
// A FrameBuffer carries no internal locking: callers must not invoke
// drawing methods concurrently on the same value, matching the
// single-threaded, cooperative model this library targets.
type FrameBuffer struct {
	buf    []byte
	width  int
	height int
	stride int
	format Format
	codec  pixfmt.Codec
	font   font.Font
}

// New constructs a FrameBuffer over buf, interpreting it as a width x
// height grid in the given format. The stride is rounded up per the
// format's alignment rule unless overridden by cfg.Stride.
func New(buf []byte, width, height int, format Format, cfg ...Config) (*FrameBuffer, error) {
	var c Config
	if len(cfg) > 0 {
		c = cfg[0]
	}

	codec, err := pixfmt.Lookup(format)
	if err != nil {
		return nil, &ConstructionError{Reason: err.Error()}
	}
	if width <= 0 || height <= 0 {
		return nil, &ConstructionError{Reason: fmt.Sprintf("invalid dimensions %dx%d", width, height)}
	}

	stride := c.Stride
	if stride <= 0 {
		stride = codec.Stride(width)
	}
	if stride < width {
		return nil, &ConstructionError{Reason: fmt.Sprintf("stride %d smaller than width %d", stride, width)}
	}

	need := codec.RequiredBytes(stride, height)
	if len(buf) < need {
		return nil, &ConstructionError{Reason: fmt.Sprintf("buffer too small: have %d bytes, need %d", len(buf), need)}
	}

	fb := &FrameBuffer{
		buf:    buf,
		width:  width,
		height: height,
		stride: stride,
		format: format,
		codec:  codec,
		font:   font.Default,
	}
	if c.Fill != nil {
		fb.Fill(*c.Fill)
	}
	logDebug("framebuf.New", "format", format, "width", width, "height", height, "stride", stride)
	return fb, nil
}

// New1 is the legacy constructor producing a MVLSB FrameBuffer, matching
// the original FrameBuffer1(buffer, width, height[, stride]) signature.
func New1(buf []byte, width, height int, cfg ...Config) (*FrameBuffer, error) {
	return New(buf, width, height, MVLSB, cfg...)
}

// Width returns the logical pixel width.
func (fb *FrameBuffer) Width() int { return fb.width }

// Height returns the logical pixel height.
func (fb *FrameBuffer) Height() int { return fb.height }

// Stride returns the effective row stride, in pixels.
func (fb *FrameBuffer) Stride() int { return fb.stride }

// Format returns the pixel format this FrameBuffer was constructed with.
func (fb *FrameBuffer) Format() Format { return fb.format }

// Buffer returns the raw backing byte slice.
func (fb *FrameBuffer) Buffer() []byte { return fb.buf }

// Bytes returns the true number of bytes required by this FrameBuffer's
// geometry and format. Unlike the legacy accessor this expansion replaces
// (see SPEC_FULL.md §9), this is the exact byte count, not an upper bound.
func (fb *FrameBuffer) Bytes() int {
	return fb.codec.RequiredBytes(fb.stride, fb.height)
}

// SetFont overrides the font used by Text. TextWith called with a nil font
// uses font.Default, not this font.
func (fb *FrameBuffer) SetFont(f font.Font) { fb.font = f }

func (fb *FrameBuffer) contains(x, y int) bool {
	return x >= 0 && x < fb.width && y >= 0 && y < fb.height
}

// clipRect intersects (x,y,w,h) with the framebuffer bounds. ok is false
// if the intersection is empty.
func (fb *FrameBuffer) clipRect(x, y, w, h int) (cx, cy, cw, ch int, ok bool) {
	if w <= 0 || h <= 0 {
		return 0, 0, 0, 0, false
	}
	x1, y1 := x+w, y+h
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	if x1 > fb.width {
		x1 = fb.width
	}
	if y1 > fb.height {
		y1 = fb.height
	}
	if x1 <= x || y1 <= y {
		return 0, 0, 0, 0, false
	}
	return x, y, x1 - x, y1 - y, true
}
