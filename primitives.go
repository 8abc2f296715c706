package framebuf

import (
	"framebuf/font"
)

// Fill sets every pixel to col. Equivalent to FillRect(0,0,width,height,col).
func (fb *FrameBuffer) Fill(col uint32) {
	fb.codec.FillRect(fb.buf, fb.stride, 0, 0, fb.width, fb.height, col)
}

// FillRect fills the rectangle (x,y,w,h), clipped to the framebuffer, with col.
func (fb *FrameBuffer) FillRect(x, y, w, h int, col uint32) {
	cx, cy, cw, ch, ok := fb.clipRect(x, y, w, h)
	if !ok {
		return
	}
	fb.codec.FillRect(fb.buf, fb.stride, cx, cy, cw, ch, col)
}

// SetPixel sets the pixel at (x,y) to col. Out-of-bounds coordinates are a no-op.
func (fb *FrameBuffer) SetPixel(x, y int, col uint32) {
	if !fb.contains(x, y) {
		return
	}
	fb.codec.SetPixel(fb.buf, fb.stride, x, y, col)
}

// Pixel reads the pixel at (x,y). ok is false if (x,y) is out of bounds.
func (fb *FrameBuffer) Pixel(x, y int) (col uint32, ok bool) {
	if !fb.contains(x, y) {
		return 0, false
	}
	return fb.codec.GetPixel(fb.buf, fb.stride, x, y), true
}

// HLine draws a horizontal line of length w starting at (x,y).
func (fb *FrameBuffer) HLine(x, y, w int, col uint32) {
	fb.FillRect(x, y, w, 1, col)
}

// VLine draws a vertical line of length h starting at (x,y).
func (fb *FrameBuffer) VLine(x, y, h int, col uint32) {
	fb.FillRect(x, y, 1, h, col)
}

// Rect draws the outline of a w x h rectangle at (x,y).
func (fb *FrameBuffer) Rect(x, y, w, h int, col uint32) {
	if w <= 0 || h <= 0 {
		return
	}
	fb.HLine(x, y, w, col)
	fb.HLine(x, y+h-1, w, col)
	fb.VLine(x, y, h, col)
	fb.VLine(x+w-1, y, h, col)
}

// FillRect-based filled rectangle, exposed as an alias for readability at
// call sites that pair it with Rect.
func (fb *FrameBuffer) FillRectangle(x, y, w, h int, col uint32) {
	fb.FillRect(x, y, w, h, col)
}

// Line draws a straight line from (x1,y1) to (x2,y2) using integer
// Bresenham stepping. Points outside the framebuffer are skipped
// individually rather than clipping the whole line.
func (fb *FrameBuffer) Line(x1, y1, x2, y2 int, col uint32) {
	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	if dx == 0 && dy == 0 {
		fb.SetPixel(x1, y1, col)
		return
	}

	if dy > dx {
		// Steep line: swap axes.
		sy := 1
		if y1 > y2 {
			sy = -1
		}
		err := 2*dx - dy
		x, y := x1, y1
		for i := 0; i <= dy; i++ {
			fb.SetPixel(x, y, col)
			if err > 0 {
				x += sign(x2 - x1)
				err -= 2 * dy
			}
			err += 2 * dx
			y += sy
		}
		return
	}

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	err := 2*dy - dx
	x, y := x1, y1
	for i := 0; i <= dx; i++ {
		fb.SetPixel(x, y, col)
		if err > 0 {
			y += sign(y2 - y1)
			err -= 2 * dx
		}
		err += 2 * dy
		x += sx
	}
}

// Circle draws the outline of a circle of radius r centered at (x,y) using
// the midpoint circle algorithm.
func (fb *FrameBuffer) Circle(x, y, r int, col uint32) {
	if r <= 0 {
		fb.SetPixel(x, y, col)
		return
	}
	cx, cy := r, 0
	err := 0
	for cx >= cy {
		fb.plotOctants(x, y, cx, cy, col)
		cy++
		if err <= 0 {
			err += 2*cy + 1
		}
		if err > 0 {
			cx--
			err -= 2*cx + 1
		}
	}
}

func (fb *FrameBuffer) plotOctants(cx, cy, x, y int, col uint32) {
	fb.SetPixel(cx+x, cy+y, col)
	fb.SetPixel(cx+y, cy+x, col)
	fb.SetPixel(cx-x, cy+y, col)
	fb.SetPixel(cx-y, cy+x, col)
	fb.SetPixel(cx-x, cy-y, col)
	fb.SetPixel(cx-y, cy-x, col)
	fb.SetPixel(cx+x, cy-y, col)
	fb.SetPixel(cx+y, cy-x, col)
}

// FillCircle draws a filled circle of radius r centered at (x,y): at each
// midpoint step (cx,cy) it fills four one-row spans, 2*cx+1 wide at rows
// y±cy and 2*cy+1 wide at rows y±cx.
func (fb *FrameBuffer) FillCircle(x, y, r int, col uint32) {
	if r <= 0 {
		fb.SetPixel(x, y, col)
		return
	}
	cx, cy := r, 0
	err := 0
	for cx >= cy {
		fb.FillRect(x-cx, y-cy, 2*cx+1, 1, col)
		fb.FillRect(x-cx, y+cy, 2*cx+1, 1, col)
		fb.FillRect(x-cy, y-cx, 2*cy+1, 1, col)
		fb.FillRect(x-cy, y+cx, 2*cy+1, 1, col)
		cy++
		if err <= 0 {
			err += 2*cy + 1
		}
		if err > 0 {
			cx--
			err -= 2*cx + 1
		}
	}
}

type point struct{ x, y int }

// Triangle draws the unfilled outline of a triangle as three lines.
func (fb *FrameBuffer) Triangle(x0, y0, x1, y1, x2, y2 int, col uint32) {
	fb.Line(x0, y0, x1, y1, col)
	fb.Line(x1, y1, x2, y2, col)
	fb.Line(x2, y2, x0, y0, col)
}

// Traingle is a deprecated alias for Triangle, kept for source-level
// familiarity with the original (misspelled) API this library imitates.
//
// Deprecated: use Triangle.
func (fb *FrameBuffer) Traingle(x0, y0, x1, y1, x2, y2 int, col uint32) {
	fb.Triangle(x0, y0, x1, y1, x2, y2, col)
}

// FillTriangle draws a filled triangle by sorting vertices by y and
// scan-converting each row via fixed-point edge interpolation.
func (fb *FrameBuffer) FillTriangle(x0, y0, x1, y1, x2, y2 int, col uint32) {
	pts := [3]point{{x0, y0}, {x1, y1}, {x2, y2}}
	if pts[0].y > pts[1].y {
		pts[0], pts[1] = pts[1], pts[0]
	}
	if pts[1].y > pts[2].y {
		pts[1], pts[2] = pts[2], pts[1]
	}
	if pts[0].y > pts[1].y {
		pts[0], pts[1] = pts[1], pts[0]
	}
	p0, p1, p2 := pts[0], pts[1], pts[2]

	if p0.y == p2.y {
		// Degenerate: everything on one scanline.
		minX, maxX := p0.x, p0.x
		for _, p := range pts {
			if p.x < minX {
				minX = p.x
			}
			if p.x > maxX {
				maxX = p.x
			}
		}
		fb.FillRect(minX, p0.y, maxX-minX+1, 1, col)
		return
	}

	dy01 := p1.y - p0.y
	dy02 := p2.y - p0.y
	dy12 := p2.y - p1.y
	if dy01 == 0 {
		dy01 = 1
	}
	if dy02 == 0 {
		dy02 = 1
	}
	if dy12 == 0 {
		dy12 = 1
	}

	dx01 := p1.x - p0.x
	dx02 := p2.x - p0.x
	dx12 := p2.x - p1.x

	sa, sb := 0, 0
	var y int
	for y = p0.y; y <= p1.y; y++ {
		a := p0.x + sa/dy01
		b := p0.x + sb/dy02
		sa += dx01
		sb += dx02
		fb.fillTriRow(y, a, b, col)
	}

	sa = dx12 * (y - p1.y)
	sb = dx02 * (y - p0.y)
	for ; y <= p2.y; y++ {
		a := p1.x + sa/dy12
		b := p0.x + sb/dy02
		sa += dx12
		sb += dx02
		fb.fillTriRow(y, a, b, col)
	}
}

func (fb *FrameBuffer) fillTriRow(y, a, b int, col uint32) {
	if a > b {
		a, b = b, a
	}
	fb.FillRect(a, y, b-a+1, 1, col)
}

// RoundRect draws the outline of a rounded rectangle with corner radius r.
func (fb *FrameBuffer) RoundRect(x, y, w, h, r int, col uint32) {
	if w <= 0 || h <= 0 {
		return
	}
	if r < 1 {
		fb.Rect(x, y, w, h, col)
		return
	}
	fb.HLine(x+r, y, w-2*r, col)
	fb.HLine(x+r, y+h-1, w-2*r, col)
	fb.VLine(x, y+r, h-2*r, col)
	fb.VLine(x+w-1, y+r, h-2*r, col)
	fb.cornerArc(x+r, y+r, r, col, true, false, false, false)
	fb.cornerArc(x+w-r-1, y+r, r, col, false, true, false, false)
	fb.cornerArc(x+r, y+h-r-1, r, col, false, false, false, true)
	fb.cornerArc(x+w-r-1, y+h-r-1, r, col, false, false, true, false)
}

// FillRoundRect draws a filled rounded rectangle with corner radius r.
func (fb *FrameBuffer) FillRoundRect(x, y, w, h, r int, col uint32) {
	if w <= 0 || h <= 0 {
		return
	}
	if r < 1 {
		fb.FillRect(x, y, w, h, col)
		return
	}
	fb.FillRect(x+r, y, w-2*r, h, col)
	fb.FillRect(x, y+r, w, h-2*r, col)
	fb.cornerFill(x+r, y+r, r, col, true, true, false, false)
	fb.cornerFill(x+w-r-1, y+r, r, col, false, true, true, false)
	fb.cornerFill(x+r, y+h-r-1, r, col, true, false, false, true)
	fb.cornerFill(x+w-r-1, y+h-r-1, r, col, false, false, true, true)
}

func (fb *FrameBuffer) cornerArc(cx, cy, r int, col uint32, q1, q2, q3, q4 bool) {
	x, y := r, 0
	err := 0
	for x >= y {
		if q1 {
			fb.SetPixel(cx-x, cy-y, col)
			fb.SetPixel(cx-y, cy-x, col)
		}
		if q2 {
			fb.SetPixel(cx+x, cy-y, col)
			fb.SetPixel(cx+y, cy-x, col)
		}
		if q3 {
			fb.SetPixel(cx+x, cy+y, col)
			fb.SetPixel(cx+y, cy+x, col)
		}
		if q4 {
			fb.SetPixel(cx-x, cy+y, col)
			fb.SetPixel(cx-y, cy+x, col)
		}
		y++
		if err <= 0 {
			err += 2*y + 1
		}
		if err > 0 {
			x--
			err -= 2*x + 1
		}
	}
}

func (fb *FrameBuffer) cornerFill(cx, cy, r int, col uint32, q1, q2, q3, q4 bool) {
	for dy := -r; dy <= r; dy++ {
		dx := isqrt(r*r - dy*dy)
		if dy <= 0 {
			if q1 {
				fb.FillRect(cx-dx, cy+dy, dx, 1, col)
			}
			if q2 {
				fb.FillRect(cx, cy+dy, dx+1, 1, col)
			}
		}
		if dy >= 0 {
			if q4 {
				fb.FillRect(cx-dx, cy+dy, dx, 1, col)
			}
			if q3 {
				fb.FillRect(cx, cy+dy, dx+1, 1, col)
			}
		}
	}
}

// Text draws str starting at (x,y) using the framebuffer's active font
// (font.Default unless overridden with SetFont), one character 8 pixels
// wide with no spacing.
func (fb *FrameBuffer) Text(str string, x, y int, col uint32) {
	fb.TextWith(fb.font, str, x, y, col)
}

// TextWith draws str with an explicit font, letting a caller substitute a
// tinyfont-backed font via font.FromTinyfont without changing the
// framebuffer's default.
//
// Glyphs are walked row-major (8 rows of 8 horizontal bits), the transpose
// of the original's column-major walk (8 columns of 8 vertical bits); both
// visit the same 64 cells and produce identical glyphs, since font.Font's
// row-byte table is stored to match.
func (fb *FrameBuffer) TextWith(f font.Font, str string, x, y int, col uint32) {
	if f == nil {
		f = font.Default
	}
	x0 := x
	for _, r := range str {
		rows, ok := f.Glyph(r)
		if !ok {
			x0 += 8
			continue
		}
		for row := 0; row < 8; row++ {
			b := rows[row]
			for c := 0; c < 8; c++ {
				if b&(1<<uint(c)) == 0 {
					continue
				}
				fb.SetPixel(x0+c, y+row, col)
			}
		}
		x0 += 8
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	if v < 0 {
		return -1
	}
	if v > 0 {
		return 1
	}
	return 0
}

func isqrt(n int) int {
	if n <= 0 {
		return 0
	}
	x := n
	y := (x + 1) / 2
	for y < x {
		x = y
		y = (x + n/x) / 2
	}
	return x
}
