package transfer

import (
	"errors"
	"io"
)

// BoundedReader exposes only the next n bytes of an underlying reader.
//
// Once the budget is spent every Read reports io.EOF without touching the
// underlying reader, so generic "copy until EOF" helpers stop exactly at the
// frame boundary even when the peer has already sent the bytes that follow.
type BoundedReader struct {
	r         io.Reader
	remaining uint64
}

// NewBoundedReader takes ownership of r and caps it at n bytes.
// Use Unwrap to get r back once the frame has been consumed.
func NewBoundedReader(r io.Reader, n uint64) *BoundedReader {
	return &BoundedReader{r: r, remaining: n}
}

// Read reads min(len(p), Remaining()) bytes. A frame cut short by the
// underlying reader fails with io.ErrUnexpectedEOF rather than a short count.
func (b *BoundedReader) Read(p []byte) (int, error) {
	if b.remaining == 0 {
		return 0, io.EOF
	}
	n := uint64(len(p))
	if n > b.remaining {
		n = b.remaining
	}
	if n == 0 {
		return 0, nil
	}
	read, err := io.ReadFull(b.r, p[:n])
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		b.remaining -= uint64(read)
		return read, err
	}
	b.remaining -= n
	return int(n), nil
}

// Remaining returns the number of frame bytes not yet read.
func (b *BoundedReader) Remaining() uint64 { return b.remaining }

// Exhausted reports whether the whole frame has been read.
func (b *BoundedReader) Exhausted() bool { return b.remaining == 0 }

// Unwrap relinquishes the underlying reader. The BoundedReader must not be
// used afterwards.
func (b *BoundedReader) Unwrap() io.Reader {
	r := b.r
	b.r = nil
	return r
}
