package transfer

import (
	"errors"
	"io"

	"github.com/pierrec/lz4/v4"
)

// ErrCompressionFailed is returned when the LZ4 writer rejects its options.
var ErrCompressionFailed = errors.New("transfer: compression setup failed")

// CompressionLevel controls the speed/ratio tradeoff.
type CompressionLevel int

const (
	CompressionFast    CompressionLevel = iota // Fastest, lower ratio
	CompressionDefault                         // Balanced
	CompressionBest                            // Best ratio, slower
)

func (l CompressionLevel) option() lz4.Option {
	switch l {
	case CompressionFast:
		return lz4.CompressionLevelOption(lz4.Fast)
	case CompressionBest:
		return lz4.CompressionLevelOption(lz4.Level9)
	default:
		return lz4.CompressionLevelOption(lz4.Level4)
	}
}

// CompressedStream carries a duplex byte stream inside LZ4 frames, one frame
// per direction. Both peers must wrap their ends; the transfer protocol
// itself is unchanged inside the frames.
//
// Written data is held in LZ4 blocks until Flush. The engine flushes at
// every point where it waits on the peer.
type CompressedStream struct {
	r *lz4.Reader
	w *lz4.Writer
}

// NewCompressedStream wraps the read and write halves of a stream.
func NewCompressedStream(r io.Reader, w io.Writer, level CompressionLevel) (*CompressedStream, error) {
	zw := lz4.NewWriter(w)
	if err := zw.Apply(lz4.BlockSizeOption(lz4.Block256Kb), level.option()); err != nil {
		return nil, errors.Join(ErrCompressionFailed, err)
	}
	return &CompressedStream{r: lz4.NewReader(r), w: zw}, nil
}

func (s *CompressedStream) Read(p []byte) (int, error) { return s.r.Read(p) }

func (s *CompressedStream) Write(p []byte) (int, error) { return s.w.Write(p) }

// Flush emits any buffered data as a complete LZ4 block.
func (s *CompressedStream) Flush() error { return s.w.Flush() }

// Close terminates the outgoing LZ4 frame. The underlying stream stays open.
func (s *CompressedStream) Close() error { return s.w.Close() }
