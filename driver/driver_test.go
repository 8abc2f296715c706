package driver

import (
	"image/color"
	"testing"

	"framebuf"
)

func TestDisplayerSizeMatchesFrameBuffer(t *testing.T) {
	fb, _ := framebuf.New(make([]byte, 16*16*2), 16, 16, framebuf.RGB565)
	d := Displayer(fb)
	w, h := d.Size()
	if w != 16 || h != 16 {
		t.Errorf("Size() = %d,%d, want 16,16", w, h)
	}
}

func TestDisplayerSetPixelWritesThroughOnRGB565(t *testing.T) {
	fb, _ := framebuf.New(make([]byte, 4*4*2), 4, 4, framebuf.RGB565)
	d := Displayer(fb)
	d.SetPixel(1, 2, color.RGBA{R: 0xFF, G: 0x00, B: 0x00, A: 0xFF})

	col, _ := fb.Pixel(1, 2)
	if col != 0xF800 {
		t.Errorf("pixel(1,2) = 0x%04x, want 0xf800 (packed red)", col)
	}
}

func TestDisplayerSetPixelNoOpOnNonRGB565(t *testing.T) {
	fb, _ := framebuf.New(make([]byte, 16), 4, 4, framebuf.PL8)
	d := Displayer(fb)
	d.SetPixel(0, 0, color.RGBA{R: 0xFF, A: 0xFF})

	col, _ := fb.Pixel(0, 0)
	if col != 0 {
		t.Errorf("pixel(0,0) = %d, want 0 (SetPixel is a no-op on non-RGB565 formats)", col)
	}
}

func TestDisplayerDisplayReturnsNil(t *testing.T) {
	fb, _ := framebuf.New(make([]byte, 32), 4, 4, framebuf.RGB565)
	d := Displayer(fb)
	if err := d.Display(); err != nil {
		t.Errorf("Display() = %v, want nil", err)
	}
}
