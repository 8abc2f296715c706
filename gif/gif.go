// Package gif plays an animated GIF onto a framebuf.FrameBuffer: demuxing
// GIF87a/89a block structure, decompressing LZW-coded image data, and
// compositing each frame (with interlacing, transparency and disposal
// handling) directly onto the destination buffer.
package gif

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"framebuf"
	"framebuf/hostio"
)

// DecodeError reports a GIF file that is malformed or uses an unsupported
// feature.
type DecodeError struct {
	Reason string
}

func (e *DecodeError) Error() string { return "gif: " + e.Reason }

// errTerminator is returned internally by drawImage to signal a clean 0x3B
// trailer; it never escapes Play.
var errTerminator = errors.New("gif: terminator")

// Block introducer and extension label bytes, named per the GIF89a spec
// and the pack's own extension-block reference material.
const (
	blockImageDescriptor = 0x2C
	blockExtension       = 0x21
	blockTrailer         = 0x3B

	extGraphicsControl = 0xF9
	extPlainText       = 0x01
	extApplication     = 0xFF
	extComment         = 0xFE

	gceBlockSize = 4
)

// Play decodes the GIF read from src and renders each frame onto fb at
// (opts.X, opts.Y), pacing frames via opts.clock() and invoking
// opts.OnFrame after each one. It returns when the stream's trailer is
// reached, when ctx is canceled, or on the first decode error.
func Play(ctx context.Context, fb *framebuf.FrameBuffer, src hostio.File, opts Options) error {
	d := &decoder{
		fb:   fb,
		src:  src,
		opts: opts,
	}
	if err := d.checkHeader(); err != nil {
		return err
	}
	if err := d.readLogicalScreen(); err != nil {
		return err
	}

	for frame := 0; ; frame++ {
		if err := ctx.Err(); err != nil {
			return &DecodeError{Reason: fmt.Sprintf("canceled: %v", err)}
		}

		delay, err := d.drawImage(ctx)
		if err != nil {
			if errors.Is(err, errTerminator) {
				return nil
			}
			return err
		}

		if opts.OnFrame != nil {
			opts.OnFrame(frame)
		}

		ms := delay
		if ms < 10 {
			ms = 10
		}
		if err := d.opts.clock().Sleep(ctx, time.Duration(ms*10)*time.Millisecond); err != nil {
			return &DecodeError{Reason: fmt.Sprintf("canceled during delay: %v", err)}
		}
	}
}

type rect struct{ x, y, w, h int }

type decoder struct {
	fb   *framebuf.FrameBuffer
	src  hostio.File
	opts Options

	screenW, screenH int
	bgIndex          int

	globalPalette []uint32
	globalBackup  []uint32
	palette       []uint32

	prevRect     rect
	prevDisposal int
	haveDrawn    bool

	delay        int
	disposal     int
	transparent  int // -1 if none
}

func (d *decoder) checkHeader() error {
	hdr := make([]byte, 6)
	if _, err := io.ReadFull(d.src, hdr); err != nil {
		return &DecodeError{Reason: fmt.Sprintf("read signature: %v", err)}
	}
	if string(hdr[:3]) != "GIF" || hdr[3] != '8' || (hdr[4] != '7' && hdr[4] != '9') || hdr[5] != 'a' {
		return &DecodeError{Reason: fmt.Sprintf("bad signature %q", hdr)}
	}
	return nil
}

func (d *decoder) readLogicalScreen() error {
	lsd := make([]byte, 7)
	if _, err := io.ReadFull(d.src, lsd); err != nil {
		return &DecodeError{Reason: fmt.Sprintf("read logical screen descriptor: %v", err)}
	}
	d.screenW = int(leU16(lsd[0:2]))
	d.screenH = int(leU16(lsd[2:4]))
	flags := lsd[4]
	d.bgIndex = int(lsd[5])

	d.transparent = -1
	d.disposal = 0
	d.delay = 0

	if flags&0x80 != 0 {
		size := 2 << uint(flags&0x07)
		pal, err := d.readPalette(size)
		if err != nil {
			return err
		}
		d.globalPalette = pal
		d.palette = pal
	}
	return nil
}

func (d *decoder) readPalette(numColors int) ([]uint32, error) {
	raw := make([]byte, numColors*3)
	if _, err := io.ReadFull(d.src, raw); err != nil {
		return nil, &DecodeError{Reason: fmt.Sprintf("read color table: %v", err)}
	}
	pal := make([]uint32, numColors)
	for i := range pal {
		r, g, b := raw[i*3], raw[i*3+1], raw[i*3+2]
		pal[i] = uint32(r)<<16 | uint32(g)<<8 | uint32(b)
	}
	return pal, nil
}

func (d *decoder) backgroundColor() uint32 {
	if d.bgIndex >= 0 && d.bgIndex < len(d.palette) {
		return d.palette[d.bgIndex]
	}
	return 0
}

// drawImage reads one block. It returns the frame's delay (centiseconds)
// on a successfully rendered image block, or errTerminator on 0x3B.
//
// transparent is reset to "none" at the top of every call: a frame with no
// Graphics Control Extension of its own must not inherit the transparent
// index left over from whichever earlier frame last set one.
func (d *decoder) drawImage(ctx context.Context) (int, error) {
	d.transparent = -1
	for {
		tag := make([]byte, 1)
		if _, err := io.ReadFull(d.src, tag); err != nil {
			return 0, &DecodeError{Reason: fmt.Sprintf("read block tag: %v", err)}
		}

		switch tag[0] {
		case blockImageDescriptor:
			return d.handleImageDescriptor(ctx)
		case blockExtension:
			if err := d.handleExtension(); err != nil {
				return 0, err
			}
		case blockTrailer:
			return 0, errTerminator
		default:
			return 0, &DecodeError{Reason: fmt.Sprintf("unexpected block tag 0x%02x", tag[0])}
		}
	}
}

func (d *decoder) handleImageDescriptor(ctx context.Context) (int, error) {
	idesc := make([]byte, 9)
	if _, err := io.ReadFull(d.src, idesc); err != nil {
		return 0, &DecodeError{Reason: fmt.Sprintf("read image descriptor: %v", err)}
	}
	xoff := int(leU16(idesc[0:2]))
	yoff := int(leU16(idesc[2:4]))
	width := int(leU16(idesc[4:6]))
	height := int(leU16(idesc[6:8]))
	packed := idesc[8]
	hasLocal := packed&0x80 != 0
	interlaced := packed&0x40 != 0

	fr := rect{x: d.opts.X + xoff, y: d.opts.Y + yoff, w: width, h: height}

	if hasLocal {
		size := 2 << uint(packed&0x07)
		d.globalBackup = d.palette
		pal, err := d.readPalette(size)
		if err != nil {
			return 0, err
		}
		d.palette = pal
	}

	if d.haveDrawn && d.prevDisposal == 2 {
		d.clearPreviousRect(fr)
	}

	lzwMinCode := make([]byte, 1)
	if _, err := io.ReadFull(d.src, lzwMinCode); err != nil {
		return 0, &DecodeError{Reason: fmt.Sprintf("read LZW min code size: %v", err)}
	}

	lz, err := newLZWReader(d.src, int(lzwMinCode[0]))
	if err != nil {
		return 0, err
	}

	if err := d.compositeFrame(ctx, lz, fr, interlaced); err != nil {
		return 0, err
	}

	if err := lz.drainSubBlocks(); err != nil {
		return 0, err
	}

	if hasLocal {
		d.palette = d.globalBackup
		d.globalBackup = nil
	}

	delay := d.delay
	d.prevRect = fr
	d.prevDisposal = d.disposal
	d.haveDrawn = true
	return delay, nil
}

func (d *decoder) handleExtension() error {
	label := make([]byte, 1)
	if _, err := io.ReadFull(d.src, label); err != nil {
		return &DecodeError{Reason: fmt.Sprintf("read extension label: %v", err)}
	}

	switch label[0] {
	case extGraphicsControl:
		return d.readGraphicsControl()
	case extPlainText, extApplication, extComment:
		return drainSubBlocks(d.src)
	default:
		return drainSubBlocks(d.src)
	}
}

func (d *decoder) readGraphicsControl() error {
	sizeByte := make([]byte, 1)
	if _, err := io.ReadFull(d.src, sizeByte); err != nil {
		return &DecodeError{Reason: fmt.Sprintf("read GCE block size: %v", err)}
	}
	if sizeByte[0] != gceBlockSize {
		return &DecodeError{Reason: fmt.Sprintf("unexpected GCE block size %d", sizeByte[0])}
	}
	body := make([]byte, gceBlockSize)
	if _, err := io.ReadFull(d.src, body); err != nil {
		return &DecodeError{Reason: fmt.Sprintf("read GCE body: %v", err)}
	}
	packed := body[0]
	d.disposal = int(packed>>2) & 0x07
	d.delay = int(leU16(body[1:3]))
	if packed&0x01 != 0 {
		d.transparent = int(body[3])
	} else {
		d.transparent = -1
	}
	return drainSubBlocks(d.src)
}

func leU16(b []byte) uint16 { return uint16(b[0]) | uint16(b[1])<<8 }
