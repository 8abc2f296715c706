package gif

import (
	"context"
	"fmt"

	"framebuf"
)

var interlacePass = [4]struct{ start, step int }{
	{0, 8}, {4, 8}, {2, 4}, {1, 2},
}

// compositeFrame decodes fr.w * fr.h palette indices from lz and paints
// them onto the framebuffer, row-length-encoded into horizontal fill runs.
// Row order follows the GIF interlacing scheme when interlaced is set.
func (d *decoder) compositeFrame(ctx context.Context, lz *lzwReader, fr rect, interlaced bool) error {
	pass := 0
	nextPassY := fr.y
	rowsEmitted := 0

	for rowsEmitted < fr.h {
		if err := ctx.Err(); err != nil {
			return &DecodeError{Reason: fmt.Sprintf("canceled mid-frame: %v", err)}
		}

		var outY int
		if !interlaced {
			outY = fr.y + rowsEmitted
		} else {
			outY = nextPassY
			nextPassY += interlacePass[pass].step
			for nextPassY >= fr.y+fr.h && pass < 3 {
				pass++
				nextPassY = fr.y + interlacePass[pass].start
			}
		}

		if err := d.compositeRow(lz, fr, outY); err != nil {
			return err
		}
		rowsEmitted++
	}
	return nil
}

func (d *decoder) compositeRow(lz *lzwReader, fr rect, outY int) error {
	oldIndex := -1
	count := 0

	flush := func(xEnd int) {
		if count == 0 {
			return
		}
		d.paintRun(xEnd-count, outY, count, oldIndex)
	}

	for xCount := 0; xCount < fr.w; xCount++ {
		idx, err := d.nextPaletteIndex(lz)
		if err != nil {
			return err
		}

		x := fr.x + xCount
		if idx == oldIndex {
			count++
			continue
		}
		flush(x)
		oldIndex = idx
		count = 1
	}
	flush(fr.x + fr.w)
	return nil
}

func (d *decoder) nextPaletteIndex(lz *lzwReader) (int, error) {
	b, ok, err := lz.nextByte()
	if err != nil {
		return 0, err
	}
	if !ok {
		// The end-of-information code arrived before the declared frame
		// size; the missing pixels are left unpainted rather than erroring,
		// since a short final frame is common in hand-edited GIFs. (A
		// sub-block chain that ends mid-code is an error from readCode.)
		framebuf.Logger().Warn("gif: truncated sub-block, padding remainder of frame")
		return -1, nil
	}
	idx := int(b)
	if idx < 0 || idx >= len(d.palette) {
		return 0, &DecodeError{Reason: fmt.Sprintf("palette index %d out of range (table has %d colors)", idx, len(d.palette))}
	}
	return idx, nil
}

// paintRun emits one run of count pixels starting at (x,y) for palette
// index idx, honoring transparency and the disposal-2 background quirk.
func (d *decoder) paintRun(x, y, count, idx int) {
	if idx < 0 {
		return
	}
	if idx != d.transparent {
		d.fb.FillRect(x, y, count, 1, d.palette[idx])
		return
	}
	if d.disposal == 2 {
		// Preserved from the reference decoder: a transparent pixel under
		// disposal 2 still paints palette[idx], not the background color.
		d.fb.FillRect(x, y, count, 1, d.palette[idx])
	}
}

// clearPreviousRect clears the parts of the previous frame's rectangle
// that lie outside cur's bounds, in up to four strips (top, bottom, left,
// right of cur relative to prev), to background color. Strips wider or
// taller than MaxClearStrip are skipped rather than drawn.
func (d *decoder) clearPreviousRect(cur rect) {
	prev := d.prevRect
	bg := d.backgroundColor()
	limit := d.opts.maxClearStrip()

	clear := func(x, y, w, h int) {
		if w <= 0 || h <= 0 || w > limit || h > limit {
			return
		}
		d.fb.FillRect(x, y, w, h, bg)
	}

	prevBottom := prev.y + prev.h
	prevRight := prev.x + prev.w
	curBottom := cur.y + cur.h
	curRight := cur.x + cur.w

	// Top: rows of prev above cur's top edge.
	clear(prev.x, prev.y, prev.w, min(cur.y, prevBottom)-prev.y)
	// Bottom: rows of prev below cur's bottom edge.
	bottomY := max(curBottom, prev.y)
	clear(prev.x, bottomY, prev.w, prevBottom-bottomY)
	// Left: columns of prev left of cur's left edge, within the
	// vertical band the two rectangles share.
	top := max(prev.y, cur.y)
	bottom := min(prevBottom, curBottom)
	clear(prev.x, top, min(cur.x, prevRight)-prev.x, bottom-top)
	// Right: columns of prev right of cur's right edge, same band.
	rightX := max(curRight, prev.x)
	clear(rightX, top, prevRight-rightX, bottom-top)
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
