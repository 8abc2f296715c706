package pixfmt

import "testing"

func TestGS2SetGetPixel(t *testing.T) {
	c := gs2Codec{}
	stride := c.Stride(5)
	buf := make([]byte, c.RequiredBytes(stride, 1))
	c.SetPixel(buf, stride, 1, 0, 3)
	if got := c.GetPixel(buf, stride, 1, 0); got != 3 {
		t.Fatalf("GetPixel(1,0) = %d, want 3", got)
	}
	if got := c.GetPixel(buf, stride, 0, 0); got != 0 {
		t.Fatalf("neighboring pixel disturbed: GetPixel(0,0) = %d, want 0", got)
	}
}

func TestGS4SetGetPixel(t *testing.T) {
	c := gs4Codec{}
	stride := c.Stride(4)
	buf := make([]byte, c.RequiredBytes(stride, 1))

	c.SetPixel(buf, stride, 0, 0, 0xA)
	c.SetPixel(buf, stride, 1, 0, 0x5)
	if buf[0] != 0xA5 {
		t.Fatalf("buf[0] = 0x%02x, want 0xA5 (high nibble = even x)", buf[0])
	}
	if got := c.GetPixel(buf, stride, 0, 0); got != 0xA {
		t.Errorf("GetPixel(0,0) = %x, want a", got)
	}
	if got := c.GetPixel(buf, stride, 1, 0); got != 0x5 {
		t.Errorf("GetPixel(1,0) = %x, want 5", got)
	}
}

func TestGS4FillRectOddWidth(t *testing.T) {
	c := gs4Codec{}
	stride := c.Stride(5)
	buf := make([]byte, c.RequiredBytes(stride, 1))
	c.FillRect(buf, stride, 0, 0, 5, 1, 0x7)
	for x := 0; x < 5; x++ {
		if got := c.GetPixel(buf, stride, x, 0); got != 0x7 {
			t.Fatalf("pixel %d = %x, want 7", x, got)
		}
	}
}

func TestGS4FillRectOddOffset(t *testing.T) {
	c := gs4Codec{}
	stride := c.Stride(6)
	buf := make([]byte, c.RequiredBytes(stride, 1))
	c.FillRect(buf, stride, 1, 0, 4, 1, 0x3)
	for x := 1; x < 5; x++ {
		if got := c.GetPixel(buf, stride, x, 0); got != 0x3 {
			t.Fatalf("pixel %d = %x, want 3", x, got)
		}
	}
	if got := c.GetPixel(buf, stride, 0, 0); got != 0 {
		t.Fatalf("pixel 0 disturbed: got %x, want 0", got)
	}
}

func TestPL8SetGetPixelAndFillRect(t *testing.T) {
	c := pl8Codec{}
	stride := c.Stride(10)
	buf := make([]byte, c.RequiredBytes(stride, 4))

	c.SetPixel(buf, stride, 3, 2, 0x42)
	if got := c.GetPixel(buf, stride, 3, 2); got != 0x42 {
		t.Fatalf("GetPixel(3,2) = %x, want 42", got)
	}

	c.FillRect(buf, stride, 0, 0, 10, 4, 0x11)
	for y := 0; y < 4; y++ {
		for x := 0; x < 10; x++ {
			if got := c.GetPixel(buf, stride, x, y); got != 0x11 {
				t.Fatalf("pixel (%d,%d) = %x, want 11", x, y, got)
			}
		}
	}
}
