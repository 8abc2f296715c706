package gif

import (
	"fmt"
	"io"
)

const (
	maxCodeBits  = 12
	maxDictSize  = 1 << maxCodeBits
	windowSize   = 300
)

// lzwReader decompresses a GIF image's LZW-coded sub-block chain and
// exposes the decoded pixel stream one byte at a time via nextByte.
type lzwReader struct {
	src io.Reader

	minCodeSize int
	clearCode   int
	endCode     int
	nextCode    int
	codeSize    int
	maxCodeSize int

	prefix [maxDictSize]int
	suffix [maxDictSize]int
	stack  [maxDictSize]int
	sp     int

	oldCode   int
	firstCode int

	window   [windowSize]byte
	curBit   int
	lastByte int

	atEOF   bool
	done    bool
	started bool
}

func newLZWReader(src io.Reader, minCodeSize int) (*lzwReader, error) {
	if minCodeSize < 2 || minCodeSize > 8 {
		return nil, &DecodeError{Reason: fmt.Sprintf("invalid LZW minimum code size %d", minCodeSize)}
	}
	l := &lzwReader{
		src:         src,
		minCodeSize: minCodeSize,
	}
	l.resetDict()
	return l, nil
}

func (l *lzwReader) resetDict() {
	l.clearCode = 1 << uint(l.minCodeSize)
	l.endCode = l.clearCode + 1
	l.nextCode = l.clearCode + 2
	l.codeSize = l.minCodeSize + 1
	l.maxCodeSize = 2 << uint(l.minCodeSize)
	for i := 0; i < l.clearCode; i++ {
		l.suffix[i] = i
	}
}

// nextByte returns the next decompressed byte, or ok=false once the
// end-of-information code has been consumed.
func (l *lzwReader) nextByte() (byte, bool, error) {
	if l.sp > 0 {
		l.sp--
		return byte(l.stack[l.sp]), true, nil
	}
	if l.done {
		return 0, false, nil
	}
	if err := l.decodeNext(); err != nil {
		return 0, false, err
	}
	if l.done {
		return 0, false, nil
	}
	if l.sp == 0 {
		return 0, false, nil
	}
	l.sp--
	return byte(l.stack[l.sp]), true, nil
}

func (l *lzwReader) push(v int) error {
	if l.sp >= len(l.stack) {
		return &DecodeError{Reason: "LZW decompression stack overflow"}
	}
	l.stack[l.sp] = v
	l.sp++
	return nil
}

func (l *lzwReader) decodeNext() error {
	code, err := l.readCode()
	if err != nil {
		return err
	}

	switch {
	case code == l.clearCode || !l.started:
		// The first code of a stream is handled as if a clear code
		// preceded it, whether or not the encoder wrote one.
		l.started = true
		l.resetDict()
		for code == l.clearCode {
			code, err = l.readCode()
			if err != nil {
				return err
			}
		}
		if code == l.endCode {
			l.done = true
			return nil
		}
		l.oldCode = code
		l.firstCode = code
		return l.push(code)

	case code == l.endCode:
		l.done = true
		return nil
	}

	incoming := code
	if code >= l.nextCode {
		if err := l.push(l.firstCode); err != nil {
			return err
		}
		code = l.oldCode
	}

	for code >= l.clearCode {
		if err := l.push(l.suffix[code]); err != nil {
			return err
		}
		if code == l.prefix[code] {
			return &DecodeError{Reason: "LZW prefix cycle detected"}
		}
		code = l.prefix[code]
	}

	l.firstCode = l.suffix[code]
	if err := l.push(l.firstCode); err != nil {
		return err
	}

	if l.nextCode < maxDictSize {
		l.prefix[l.nextCode] = l.oldCode
		l.suffix[l.nextCode] = l.firstCode
		l.nextCode++
		if l.nextCode >= l.maxCodeSize && l.codeSize < maxCodeBits {
			l.maxCodeSize *= 2
			l.codeSize++
		}
	}

	l.oldCode = incoming
	return nil
}

// readCode extracts the next codeSize-bit little-endian code from the
// sliding sub-block window, refilling from the source when the window is
// exhausted.
func (l *lzwReader) readCode() (int, error) {
	for (l.curBit+l.codeSize) > l.lastByte*8 {
		if l.atEOF {
			return 0, &DecodeError{Reason: "LZW stream truncated"}
		}
		if err := l.refill(); err != nil {
			return 0, err
		}
	}

	ret := 0
	byteIdx := l.curBit / 8
	bitOff := uint(l.curBit % 8)
	bitsLeft := l.codeSize
	shift := uint(0)
	for bitsLeft > 0 && byteIdx < len(l.window) {
		avail := 8 - bitOff
		take := avail
		if uint(bitsLeft) < take {
			take = uint(bitsLeft)
		}
		mask := byte((1 << take) - 1)
		bits := (l.window[byteIdx] >> bitOff) & mask
		ret |= int(bits) << shift
		shift += take
		bitsLeft -= int(take)
		byteIdx++
		bitOff = 0
	}
	l.curBit += l.codeSize
	return ret & ((1 << uint(l.codeSize)) - 1), nil
}

// refill compacts the window, discarding fully-consumed bytes, then reads
// one more GIF data sub-block (length byte + payload) onto the end.
func (l *lzwReader) refill() error {
	consumedBytes := l.curBit / 8
	if consumedBytes > 0 {
		remaining := l.lastByte - consumedBytes
		copy(l.window[:remaining], l.window[consumedBytes:l.lastByte])
		l.lastByte = remaining
		l.curBit -= consumedBytes * 8
	}

	lenByte := make([]byte, 1)
	if _, err := io.ReadFull(l.src, lenByte); err != nil {
		return &DecodeError{Reason: fmt.Sprintf("read sub-block length: %v", err)}
	}
	n := int(lenByte[0])
	if n == 0 {
		l.atEOF = true
		return nil
	}
	if l.lastByte+n > len(l.window) {
		return &DecodeError{Reason: "LZW sub-block exceeds decode window"}
	}
	if _, err := io.ReadFull(l.src, l.window[l.lastByte:l.lastByte+n]); err != nil {
		return &DecodeError{Reason: fmt.Sprintf("read sub-block payload: %v", err)}
	}
	l.lastByte += n
	return nil
}

// drainSubBlocks consumes any remaining GIF data sub-blocks belonging to
// this image (the decoder may finish on endCode before the chain's
// zero-length terminator has been read).
func (l *lzwReader) drainSubBlocks() error {
	if l.atEOF {
		return nil
	}
	return drainSubBlocks(l.src)
}

// drainSubBlocks reads and discards a chain of length-prefixed sub-blocks
// (used for extension payloads this decoder doesn't interpret) until the
// zero-length terminator.
func drainSubBlocks(r io.Reader) error {
	lenByte := make([]byte, 1)
	buf := make([]byte, 255)
	for {
		if _, err := io.ReadFull(r, lenByte); err != nil {
			return &DecodeError{Reason: fmt.Sprintf("read sub-block length: %v", err)}
		}
		n := int(lenByte[0])
		if n == 0 {
			return nil
		}
		if _, err := io.ReadFull(r, buf[:n]); err != nil {
			return &DecodeError{Reason: fmt.Sprintf("read sub-block: %v", err)}
		}
	}
}
