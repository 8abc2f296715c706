package bmp

import (
	"encoding/binary"
	"testing"

	"framebuf"
	"framebuf/hostio"
)

// build2x2BMP assembles a minimal uncompressed 24-bpp BMP: a 2x2 image
// with rows padded to a 4-byte boundary, stored bottom-up (positive
// biHeight) unless topDown is set.
func build2x2BMP(topDown bool) []byte {
	const (
		fileHeaderSize = 14
		dibSize        = 40
		width          = 2
		height         = 2
		bpp             = 24
	)
	rowBytes := ((bpp*width + 31) / 32) * 4 // = 8: 6 data bytes + 2 padding
	pixelData := fileHeaderSize + dibSize
	fileSize := pixelData + rowBytes*height

	buf := make([]byte, fileSize)
	buf[0], buf[1] = 'B', 'M'
	binary.LittleEndian.PutUint32(buf[2:6], uint32(fileSize))
	binary.LittleEndian.PutUint32(buf[10:14], uint32(pixelData))

	binary.LittleEndian.PutUint32(buf[14:18], dibSize)
	binary.LittleEndian.PutUint32(buf[18:22], uint32(width))
	h := int32(height)
	if topDown {
		h = -h
	}
	binary.LittleEndian.PutUint32(buf[22:26], uint32(h))
	binary.LittleEndian.PutUint16(buf[26:28], 1) // planes
	binary.LittleEndian.PutUint16(buf[28:30], bpp)
	binary.LittleEndian.PutUint32(buf[30:34], 0) // BI_RGB

	// Row order in the file is always bottom-to-top unless biHeight < 0.
	// fileRow 0 corresponds to source row (topDown ? 0 : height-1).
	colors := [2][2][3]byte{
		{{0, 0, 255}, {0, 255, 0}}, // logical row 0: red, green (stored as B,G,R)
		{{255, 0, 0}, {255, 255, 255}}, // logical row 1: blue, white
	}
	for fileRow := 0; fileRow < height; fileRow++ {
		logicalRow := height - 1 - fileRow
		if topDown {
			logicalRow = fileRow
		}
		off := pixelData + fileRow*rowBytes
		for x := 0; x < width; x++ {
			px := colors[logicalRow][x]
			buf[off+x*3+0] = px[0]
			buf[off+x*3+1] = px[1]
			buf[off+x*3+2] = px[2]
		}
	}
	return buf
}

func TestDecodeBottomUp(t *testing.T) {
	data := build2x2BMP(false)
	fs := hostio.Mem{"img.bmp": data}
	f, err := fs.Open("img.bmp")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	fb, err := framebuf.New(make([]byte, 2*2*2), 2, 2, framebuf.RGB565)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := Decode(fb, f, 0, 0); err != nil {
		t.Fatalf("Decode: %v", err)
	}

	// Colors are stored through the RGB565 codec, so compare against the
	// packed 16-bit representation rather than the original 24-bit input.
	col, _ := fb.Pixel(0, 0)
	if col != 0xF800 {
		t.Errorf("pixel(0,0) = 0x%04x, want 0xf800 (red)", col)
	}
	col, _ = fb.Pixel(1, 0)
	if col != 0x07E0 {
		t.Errorf("pixel(1,0) = 0x%04x, want 0x07e0 (green)", col)
	}
	col, _ = fb.Pixel(0, 1)
	if col != 0x001F {
		t.Errorf("pixel(0,1) = 0x%04x, want 0x001f (blue)", col)
	}
	col, _ = fb.Pixel(1, 1)
	if col != 0xFFFF {
		t.Errorf("pixel(1,1) = 0x%04x, want 0xffff (white)", col)
	}
}

func TestDecodeTopDown(t *testing.T) {
	data := build2x2BMP(true)
	fs := hostio.Mem{"img.bmp": data}
	f, _ := fs.Open("img.bmp")
	defer f.Close()

	fb, err := framebuf.New(make([]byte, 2*2*2), 2, 2, framebuf.RGB565)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := Decode(fb, f, 0, 0); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	col, _ := fb.Pixel(0, 0)
	if col != 0xF800 {
		t.Errorf("pixel(0,0) = 0x%04x, want 0xf800 (red)", col)
	}
}

func TestDecodeRejectsBadSignature(t *testing.T) {
	fs := hostio.Mem{"bad.bmp": make([]byte, 60)}
	f, _ := fs.Open("bad.bmp")
	defer f.Close()
	fb, _ := framebuf.New(make([]byte, 100), 4, 4, framebuf.PL8)
	if err := Decode(fb, f, 0, 0); err == nil {
		t.Fatal("expected error for missing BM signature")
	}
}

func TestDecodeRejectsUnsupportedBitDepth(t *testing.T) {
	data := build2x2BMP(false)
	binary.LittleEndian.PutUint16(data[28:30], 16)
	fs := hostio.Mem{"img.bmp": data}
	f, _ := fs.Open("img.bmp")
	defer f.Close()
	fb, _ := framebuf.New(make([]byte, 100), 4, 4, framebuf.PL8)
	if err := Decode(fb, f, 0, 0); err == nil {
		t.Fatal("expected error for unsupported bpp")
	}
}
