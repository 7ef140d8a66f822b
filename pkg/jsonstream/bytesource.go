package jsonstream

import "io"

// bufSize is the size of the internal read window. ~32 KiB, matching the
// reference implementation this package's streaming model is grounded on.
const bufSize = 32 * 1024

// ByteSource is a buffered byte reader with one-byte pushback, the sole
// I/O-facing collaborator of Lexer. Reads are served out of a fixed
// window refilled from the underlying io.Reader; a zero-length read with
// a nil error is treated as transient and retried, so only io.EOF (or a
// non-nil, non-EOF error) ends the stream.
//
// Grounded on the ring-buffer pushback in db47h-lex's lexer/reader.go,
// adapted from runes to raw bytes and from a fixed ring to a refillable
// window sized to the spec's ~32 KiB budget.
type ByteSource struct {
	r           io.Reader
	buf         [bufSize]byte
	i, limit    int
	ungetByte   byte
	hasUnget    bool
	lastInBuf   byte // the most recently returned byte, valid for Unget
	haveLastBuf bool
}

// NewByteSource returns a ByteSource reading from r.
func NewByteSource(r io.Reader) *ByteSource {
	return &ByteSource{r: r}
}

// Get returns the next byte of the stream. ok is false at end of stream;
// err is non-nil only when the underlying reader failed terminally.
func (b *ByteSource) Get() (c byte, ok bool, err error) {
	if b.hasUnget {
		b.hasUnget = false
		b.lastInBuf, b.haveLastBuf = b.ungetByte, true
		return b.ungetByte, true, nil
	}
	if b.i >= b.limit {
		b.i = 0
		for {
			n, rerr := b.r.Read(b.buf[:])
			if n > 0 {
				b.limit = n
				break
			}
			if rerr == io.EOF {
				return 0, false, nil
			}
			if rerr != nil {
				return 0, false, rerr
			}
			// n == 0, err == nil: transient, retry.
		}
	}
	c = b.buf[b.i]
	b.i++
	b.lastInBuf, b.haveLastBuf = c, true
	return c, true, nil
}

// Unget pushes the most recently returned byte back onto the stream. It
// is only valid immediately after a successful Get, and at most one byte
// of pushback is supported.
func (b *ByteSource) Unget() {
	if !b.haveLastBuf {
		return
	}
	b.ungetByte = b.lastInBuf
	b.hasUnget = true
	b.haveLastBuf = false
}
