// Command fbview opens a BMP or GIF file and displays it in a desktop
// window, rendering through an RGB565 framebuf.FrameBuffer exactly as an
// embedded target would.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"

	"framebuf"
	"framebuf/bmp"
	"framebuf/gif"
	"framebuf/hostio"
)

func main() {
	width := flag.Int("width", 320, "framebuffer width in pixels")
	height := flag.Int("height", 240, "framebuffer height in pixels")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	if *verbose {
		framebuf.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: fbview [-width N] [-height N] <file.bmp|file.gif>")
		os.Exit(2)
	}
	path := flag.Arg(0)

	buf := make([]byte, *width**height*2)
	fb, err := framebuf.New(buf, *width, *height, framebuf.RGB565)
	if err != nil {
		fmt.Fprintln(os.Stderr, "fbview:", err)
		os.Exit(1)
	}

	g := &viewer{fb: fb}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".bmp":
		if err := renderBMP(fb, path); err != nil {
			fmt.Fprintln(os.Stderr, "fbview:", err)
			os.Exit(1)
		}
	case ".gif":
		ctx := context.Background()
		go g.playGIF(ctx, path)
	default:
		fmt.Fprintln(os.Stderr, "fbview: unsupported extension", path)
		os.Exit(2)
	}

	ebiten.SetWindowTitle("fbview: " + filepath.Base(path))
	ebiten.SetWindowSize(*width*2, *height*2)
	ebiten.SetTPS(60)
	if err := ebiten.RunGame(g); err != nil {
		fmt.Fprintln(os.Stderr, "fbview:", err)
		os.Exit(1)
	}
}

func renderBMP(fb *framebuf.FrameBuffer, path string) error {
	f, err := (hostio.OS{}).Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return bmp.Decode(fb, f, 0, 0)
}

// viewer serializes access to fb between the ebiten draw loop and the GIF
// playback goroutine by taking a snapshot after each frame, mirroring the
// host framebuffer's own snapshot/present boundary: drawing calls on fb
// itself are never made concurrently with each other, but the snapshot
// copy lets Draw read a consistent buffer while playback keeps running.
type viewer struct {
	mu       sync.Mutex
	fb       *framebuf.FrameBuffer
	snapshot []byte

	img   *image.RGBA
	fbImg *ebiten.Image
}

func (g *viewer) takeSnapshot() {
	g.mu.Lock()
	defer g.mu.Unlock()
	buf := g.fb.Buffer()
	if len(g.snapshot) != len(buf) {
		g.snapshot = make([]byte, len(buf))
	}
	copy(g.snapshot, buf)
}

func (g *viewer) playGIF(ctx context.Context, path string) {
	f, err := (hostio.OS{}).Open(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "fbview:", err)
		return
	}
	defer f.Close()

	opts := gif.Options{OnFrame: func(int) { g.takeSnapshot() }}
	for {
		if _, err := f.Seek(0, 0); err != nil {
			return
		}
		if err := gif.Play(ctx, g.fb, f, opts); err != nil {
			return
		}
		if ctx.Err() != nil {
			return
		}
	}
}

func (g *viewer) Update() error { return nil }

func (g *viewer) Draw(screen *ebiten.Image) {
	g.mu.Lock()
	buf := g.snapshot
	if buf == nil {
		buf = g.fb.Buffer()
	}
	g.mu.Unlock()

	w, h := g.fb.Width(), g.fb.Height()
	if g.img == nil || g.img.Bounds().Dx() != w || g.img.Bounds().Dy() != h {
		g.img = image.NewRGBA(image.Rect(0, 0, w, h))
		g.fbImg = ebiten.NewImage(w, h)
	}

	dst := g.img.Pix
	for i := 0; i+1 < len(buf) && i/2*4+3 < len(dst); i += 2 {
		packed := uint16(buf[i])<<8 | uint16(buf[i+1])
		r := byte((packed >> 11) & 0x1F << 3)
		gg := byte((packed >> 5) & 0x3F << 2)
		b := byte(packed & 0x1F << 3)
		j := (i / 2) * 4
		dst[j+0] = r
		dst[j+1] = gg
		dst[j+2] = b
		dst[j+3] = 0xFF
	}

	g.fbImg.ReplacePixels(g.img.Pix)
	screen.DrawImage(g.fbImg, nil)
}

func (g *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.fb.Width(), g.fb.Height()
}
