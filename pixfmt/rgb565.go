package pixfmt

// rgb565Codec stores one 16-bit pixel per 2 bytes: the high byte of the
// packed RGB565 value first, then the low byte. This matches the source
// implementation's COL0/setpixel/fill_rect path, which byte-swaps the
// computed RGB565 value before storing it, so on a little-endian target the
// high byte lands at the lower address.
type rgb565Codec struct{}

func (rgb565Codec) Stride(width int) int { return width }

func (rgb565Codec) RequiredBytes(stride, height int) int { return stride * height * 2 }

// rgb565FromColor converts a 24-bit 0xRRGGBB input into the packed 16-bit
// RGB565 value, matching the source's COL0/COL macros.
func rgb565FromColor(col uint32) uint16 {
	r := (col >> 16) & 0xff
	g := (col >> 8) & 0xff
	b := col & 0xff
	return uint16(((r >> 3) << 11) | ((g >> 2) << 5) | (b >> 3))
}

func (rgb565Codec) SetPixel(buf []byte, stride, x, y int, col uint32) {
	idx := (x + y*stride) * 2
	if idx < 0 || idx+1 >= len(buf) {
		return
	}
	color := rgb565FromColor(col)
	buf[idx] = byte(color >> 8)
	buf[idx+1] = byte(color)
}

func (rgb565Codec) GetPixel(buf []byte, stride, x, y int) uint32 {
	idx := (x + y*stride) * 2
	if idx < 0 || idx+1 >= len(buf) {
		return 0
	}
	return uint32(buf[idx])<<8 | uint32(buf[idx+1])
}

func (rgb565Codec) FillRect(buf []byte, stride, x, y, w, h int, col uint32) {
	color := rgb565FromColor(col)
	hi, lo := byte(color>>8), byte(color)
	rowStart := (x + y*stride) * 2
	for ; h > 0; h-- {
		idx := rowStart
		for ww := 0; ww < w; ww++ {
			if idx >= 0 && idx+1 < len(buf) {
				buf[idx] = hi
				buf[idx+1] = lo
			}
			idx += 2
		}
		rowStart += stride * 2
	}
}
