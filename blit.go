package framebuf

// Blit copies pixels from src onto fb with src's top-left corner placed at
// (x,y). Pixels equal to key are treated as transparent and skipped; pass
// NoKey to copy every pixel unconditionally. Regions of src that fall
// outside fb are clipped rather than causing an error.
func (fb *FrameBuffer) Blit(src *FrameBuffer, x, y, key int) {
	if x >= fb.width || y >= fb.height || -x >= src.width || -y >= src.height {
		return
	}

	x0 := max(0, x)
	y0 := max(0, y)
	sx := max(0, -x)
	sy := max(0, -y)
	x0End := min(fb.width, x+src.width)
	y0End := min(fb.height, y+src.height)

	for ; y0 < y0End; y0++ {
		cx1 := sx
		for cx0 := x0; cx0 < x0End; cx0++ {
			col, ok := src.Pixel(cx1, sy)
			if ok && int(col) != key {
				fb.SetPixel(cx0, y0, col)
			}
			cx1++
		}
		sy++
	}
}

// Scroll shifts every pixel by (dx,dy) in place, leaving the vacated band
// untouched (matching the legacy FrameBuffer.scroll, which never clears
// behind the shift).
func (fb *FrameBuffer) Scroll(dx, dy int) {
	var sx, xend, stepX int
	if dx < 0 {
		sx, xend, stepX = 0, fb.width+dx, 1
		if xend <= 0 {
			return
		}
	} else {
		sx, xend, stepX = fb.width-1, dx-1, -1
		if xend >= sx {
			return
		}
	}

	var y, yend, stepY int
	if dy < 0 {
		y, yend, stepY = 0, fb.height+dy, 1
		if yend <= 0 {
			return
		}
	} else {
		y, yend, stepY = fb.height-1, dy-1, -1
		if yend >= y {
			return
		}
	}

	for ; y != yend; y += stepY {
		for x := sx; x != xend; x += stepX {
			col, ok := fb.Pixel(x-dx, y-dy)
			if !ok {
				continue
			}
			fb.SetPixel(x, y, col)
		}
	}
}
