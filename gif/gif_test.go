package gif

import (
	"bytes"
	"compress/lzw"
	"context"
	"testing"
	"time"

	"framebuf"
	"framebuf/hostio"
)

// buildCheckerboardGIF assembles a minimal, spec-valid GIF87a byte stream
// encoding a 2x2 checkerboard {0,1,1,0} against a 2-color global palette
// {black, white}, using the standard library's LZW writer in the GIF
// variant (LSB-first bit order) to produce the compressed sub-blocks.
func buildCheckerboardGIF(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer

	buf.WriteString("GIF87a")

	// Logical screen descriptor: 2x2, global color table present, 2 entries.
	buf.Write([]byte{2, 0, 2, 0, 0x80, 0, 0})

	// Global color table: black, white.
	buf.Write([]byte{0x00, 0x00, 0x00, 0xFF, 0xFF, 0xFF})

	// Image descriptor: xoff=0 yoff=0 w=2 h=2, no local table, not interlaced.
	buf.WriteByte(blockImageDescriptor)
	buf.Write([]byte{0, 0, 0, 0, 2, 0, 2, 0, 0x00})

	const minCodeSize = 2
	buf.WriteByte(minCodeSize)

	var compressed bytes.Buffer
	lw := lzw.NewWriter(&compressed, lzw.LSB, minCodeSize)
	if _, err := lw.Write([]byte{0, 1, 1, 0}); err != nil {
		t.Fatalf("lzw write: %v", err)
	}
	if err := lw.Close(); err != nil {
		t.Fatalf("lzw close: %v", err)
	}

	data := compressed.Bytes()
	for len(data) > 0 {
		n := len(data)
		if n > 255 {
			n = 255
		}
		buf.WriteByte(byte(n))
		buf.Write(data[:n])
		data = data[n:]
	}
	buf.WriteByte(0) // sub-block terminator

	buf.WriteByte(blockTrailer)
	return buf.Bytes()
}

// buildTwoFrameGIF assembles a 2-pixel-wide, 1-row GIF with two frames:
// the first carries a Graphics Control Extension marking palette index 1
// transparent, the second has no extension at all. Both frames encode the
// same index sequence {0,1}.
func buildTwoFrameGIF(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer

	buf.WriteString("GIF89a")
	buf.Write([]byte{2, 0, 1, 0, 0x80, 0, 0})
	buf.Write([]byte{0x00, 0x00, 0x00, 0xFF, 0xFF, 0xFF})

	writeFrame := func(withGCE bool) {
		if withGCE {
			buf.WriteByte(blockExtension)
			buf.WriteByte(extGraphicsControl)
			buf.WriteByte(gceBlockSize)
			buf.Write([]byte{0x01, 0, 0, 1}) // transparent flag set, index 1
			buf.WriteByte(0)
		}

		buf.WriteByte(blockImageDescriptor)
		buf.Write([]byte{0, 0, 0, 0, 2, 0, 1, 0, 0x00})

		const minCodeSize = 2
		buf.WriteByte(minCodeSize)

		var compressed bytes.Buffer
		lw := lzw.NewWriter(&compressed, lzw.LSB, minCodeSize)
		if _, err := lw.Write([]byte{0, 1}); err != nil {
			t.Fatalf("lzw write: %v", err)
		}
		if err := lw.Close(); err != nil {
			t.Fatalf("lzw close: %v", err)
		}
		data := compressed.Bytes()
		for len(data) > 0 {
			n := len(data)
			if n > 255 {
				n = 255
			}
			buf.WriteByte(byte(n))
			buf.Write(data[:n])
			data = data[n:]
		}
		buf.WriteByte(0)
	}

	writeFrame(true)
	writeFrame(false)

	buf.WriteByte(blockTrailer)
	return buf.Bytes()
}

func TestPlayResetsTransparencyPerFrame(t *testing.T) {
	data := buildTwoFrameGIF(t)
	fs := hostio.Mem{"twoframe.gif": data}
	f, err := fs.Open("twoframe.gif")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	fb, err := framebuf.New(make([]byte, 2), 2, 1, framebuf.PL8)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	fb.Fill(5) // sentinel: distinct from both painted colors (0x00, 0xFF)

	frames := 0
	err = Play(context.Background(), fb, f, Options{
		Clock:   stubClock{},
		OnFrame: func(int) { frames++ },
	})
	if err != nil {
		t.Fatalf("Play: %v", err)
	}
	if frames != 2 {
		t.Fatalf("frames = %d, want 2", frames)
	}

	// Frame 1 marks index 1 transparent, so pixel 1 is skipped and keeps
	// the sentinel until frame 2 repaints it. Frame 2 carries no GCE, so
	// its own index-1 pixel must NOT inherit frame 1's transparent index
	// and must be painted with palette[1] (white, truncated to 0xFF by
	// the PL8 codec).
	col, _ := fb.Pixel(1, 0)
	if col != 0xFF {
		t.Fatalf("pixel(1,0) = 0x%02x, want 0xff (frame 2 must not inherit frame 1's transparent index)", col)
	}
}

type stubClock struct{}

func (stubClock) Sleep(ctx context.Context, d time.Duration) error { return nil }

func TestPlayCheckerboard(t *testing.T) {
	data := buildCheckerboardGIF(t)
	fs := hostio.Mem{"checker.gif": data}
	f, err := fs.Open("checker.gif")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	fb, err := framebuf.New(make([]byte, 4), 2, 2, framebuf.PL8)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	frames := 0
	err = Play(context.Background(), fb, f, Options{
		Clock:   stubClock{},
		OnFrame: func(int) { frames++ },
	})
	if err != nil {
		t.Fatalf("Play: %v", err)
	}
	if frames != 1 {
		t.Fatalf("frames = %d, want 1", frames)
	}

	// The compositor paints palette[index] (a 24-bit color), which the PL8
	// codec then truncates to its low byte; against {black, white} that's
	// 0x00 for index 0 and 0xFF for index 1, not the raw index value.
	want := []byte{0x00, 0xFF, 0xFF, 0x00}
	if !bytes.Equal(fb.Buffer(), want) {
		t.Fatalf("buffer = %v, want %v", fb.Buffer(), want)
	}
}

func TestCheckHeaderRejectsBadSignature(t *testing.T) {
	fs := hostio.Mem{"bad.gif": []byte("NOTAGIF...")}
	f, _ := fs.Open("bad.gif")
	defer f.Close()

	fb, _ := framebuf.New(make([]byte, 4), 2, 2, framebuf.PL8)
	err := Play(context.Background(), fb, f, Options{Clock: stubClock{}})
	if err == nil {
		t.Fatal("expected error for bad signature")
	}
}

func TestPlayRespectsCancellation(t *testing.T) {
	data := buildCheckerboardGIF(t)
	fs := hostio.Mem{"checker.gif": data}
	f, _ := fs.Open("checker.gif")
	defer f.Close()

	fb, _ := framebuf.New(make([]byte, 4), 2, 2, framebuf.PL8)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Play(ctx, fb, f, Options{Clock: stubClock{}})
	if err == nil {
		t.Fatal("expected cancellation error")
	}
}
