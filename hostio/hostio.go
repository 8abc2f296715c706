// Package hostio abstracts the filesystem collaborator that bmp.Decode and
// gif.Play read image data from, so both packages work unmodified whether
// the caller is backed by the host OS, an in-memory buffer (tests, embedded
// assets), or a future on-device VFS.
package hostio

import (
	"errors"
	"io"
	"os"
)

// File is the minimal random-access handle the decoders need: sequential
// reads plus seeking. bmp.Decode seeks to the start of each pixel row;
// gif.Play only reads forward.
type File interface {
	io.Reader
	io.Seeker
	io.Closer
}

// FS opens named files for reading. It mirrors fs.FS's Open but returns a
// File (seekable) rather than fs.File, since bmp.Decode seeks.
type FS interface {
	Open(name string) (File, error)
}

// ErrNotExist is returned by Mem.Open for names it doesn't hold.
var ErrNotExist = errors.New("hostio: file does not exist")

// OS is an FS backed by the real filesystem via os.Open.
type OS struct{}

func (OS) Open(name string) (File, error) {
	return os.Open(name)
}

// Mem is an in-memory FS, useful for tests and for bundling decoded assets
// without touching a real filesystem.
type Mem map[string][]byte

func (m Mem) Open(name string) (File, error) {
	data, ok := m[name]
	if !ok {
		return nil, &os.PathError{Op: "open", Path: name, Err: ErrNotExist}
	}
	return &memFile{r: io.NewSectionReader(bytesReaderAt(data), 0, int64(len(data)))}, nil
}

type bytesReaderAt []byte

func (b bytesReaderAt) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 || off >= int64(len(b)) {
		return 0, io.EOF
	}
	n := copy(p, b[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

type memFile struct {
	r *io.SectionReader
}

func (f *memFile) Read(p []byte) (int, error)               { return f.r.Read(p) }
func (f *memFile) Seek(off int64, whence int) (int64, error) { return f.r.Seek(off, whence) }
func (f *memFile) Close() error                              { return nil }
