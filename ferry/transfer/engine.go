package transfer

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"
)

const (
	// LengthPrefixSize is the size of the big endian payload length header.
	LengthPrefixSize = 8
	// CompletionSignal is the single byte the puller sends back once the
	// payload has been stored.
	CompletionSignal byte = 0
)

// Flusher is implemented by writers that buffer data, such as
// bufio.Writer and CompressedStream. The engine flushes them before it
// waits on the peer, so nothing the peer needs stays stuck in a buffer.
type Flusher interface {
	Flush() error
}

// Config configures an Engine.
type Config struct {
	BufferSize int          // bytes per copy buffer (default: 256KB)
	Progress   ProgressFunc // optional payload progress callback
	Logger     *slog.Logger // nil disables logging
}

// DefaultConfig returns the engine defaults.
func DefaultConfig() Config {
	return Config{
		BufferSize: DefaultBufferSize,
	}
}

// Result is the outcome of Perform. Reader and Writer are the halves the
// caller passed in, handed back for reuse of the connection.
type Result struct {
	Stats  Stats
	Reader io.Reader
	Writer io.Writer
}

// Engine runs push and pull transfers. An Engine is safe for concurrent use;
// each transfer owns the stream halves it is given.
type Engine struct {
	config  Config
	buffers *bufferPool
	log     *slog.Logger
}

// NewEngine creates an engine.
func NewEngine(config Config) *Engine {
	if config.BufferSize <= 0 {
		config.BufferSize = DefaultBufferSize
	}
	log := config.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Engine{
		config:  config,
		buffers: newBufferPool(config.BufferSize),
		log:     log,
	}
}

var defaultEngine = NewEngine(DefaultConfig())

// PushFile runs Engine.Push on a default engine.
func PushFile(source string, w io.Writer, r io.Reader) (Stats, error) {
	return defaultEngine.Push(source, w, r)
}

// PullFile runs Engine.Pull on a default engine.
func PullFile(destination string, w io.Writer, r io.Reader) (Stats, error) {
	return defaultEngine.Pull(destination, w, r)
}

// Perform runs Engine.Perform on a default engine.
func Perform(req Request, r io.Reader, w io.Writer) (Result, error) {
	return defaultEngine.Perform(req, r, w)
}

// Perform runs req over the given stream halves.
func (e *Engine) Perform(req Request, r io.Reader, w io.Writer) (Result, error) {
	var (
		stats Stats
		err   error
	)
	switch req := req.(type) {
	case Push:
		stats, err = e.Push(req.Source, w, r)
	case Pull:
		stats, r, err = e.pull(req.Destination, w, r)
	default:
		return Result{}, fmt.Errorf("transfer: unknown request type %T", req)
	}
	if err != nil {
		return Result{}, err
	}
	return Result{Stats: stats, Reader: r, Writer: w}, nil
}

// Push sends the file at source over w and waits on r for the peer's
// CompletionSignal. The returned stats exist only once the peer has
// confirmed the whole payload.
func (e *Engine) Push(source string, w io.Writer, r io.Reader) (Stats, error) {
	start := time.Now()

	f, err := os.Open(source)
	if err != nil {
		return Stats{}, fmt.Errorf("transfer: open source: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return Stats{}, fmt.Errorf("transfer: stat source: %w", err)
	}
	if !info.Mode().IsRegular() {
		return Stats{}, fmt.Errorf("transfer: source %s is not a regular file", source)
	}
	size := uint64(info.Size())
	e.log.Debug("push started", "source", source, "bytes", size)

	if err := writeLengthPrefix(w, size); err != nil {
		return Stats{}, err
	}

	buf := e.buffers.get()
	defer e.buffers.put(buf)

	dst := withProgress(w, e.config.Progress, "push", size)
	sent, err := io.CopyBuffer(dst, io.LimitReader(f, int64(size)), *buf)
	if err != nil {
		return Stats{}, fmt.Errorf("transfer: send payload: %w", err)
	}
	if uint64(sent) != size {
		return Stats{}, fmt.Errorf("%w: declared %d bytes, read %d", ErrSourceChanged, size, sent)
	}
	var probe [1]byte
	if n, _ := f.Read(probe[:]); n > 0 {
		return Stats{}, fmt.Errorf("%w: source grew past %d bytes", ErrSourceChanged, size)
	}
	if err := flush(w); err != nil {
		return Stats{}, fmt.Errorf("transfer: flush payload: %w", err)
	}

	if err := readCompletion(r); err != nil {
		return Stats{}, err
	}

	stats := NewStats(size, time.Since(start))
	e.log.Debug("push finished", "source", source, "stats", stats.String())
	return stats, nil
}

// Pull receives a file from r into destination and then writes the
// CompletionSignal to w. Any file already at destination is replaced.
func (e *Engine) Pull(destination string, w io.Writer, r io.Reader) (Stats, error) {
	stats, _, err := e.pull(destination, w, r)
	return stats, err
}

// pull returns the raw reader recovered from the frame once the payload is
// stored, so the connection stays usable after the handshake.
func (e *Engine) pull(destination string, w io.Writer, r io.Reader) (Stats, io.Reader, error) {
	start := time.Now()

	// A failed removal only matters if it also stops the create below,
	// which reports its own error.
	_ = os.Remove(destination)

	f, err := os.OpenFile(destination, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return Stats{}, nil, fmt.Errorf("transfer: create destination: %w", err)
	}
	defer f.Close()

	size, err := readLengthPrefix(r)
	if err != nil {
		return Stats{}, nil, err
	}
	e.log.Debug("pull started", "destination", destination, "bytes", size)

	buf := e.buffers.get()
	defer e.buffers.put(buf)

	body := NewBoundedReader(r, size)
	fw := bufio.NewWriterSize(f, len(*buf))
	received, err := io.CopyBuffer(withProgress(fw, e.config.Progress, "pull", size), body, *buf)
	if errors.Is(err, io.ErrUnexpectedEOF) {
		return Stats{}, nil, fmt.Errorf("%w: declared %d bytes, received %d: %w", ErrLengthMismatch, size, received, err)
	}
	if err != nil {
		return Stats{}, nil, fmt.Errorf("transfer: receive payload: %w", err)
	}
	if uint64(received) != size {
		return Stats{}, nil, fmt.Errorf("%w: declared %d bytes, received %d", ErrLengthMismatch, size, received)
	}
	if err := fw.Flush(); err != nil {
		return Stats{}, nil, fmt.Errorf("transfer: write destination: %w", err)
	}
	if err := f.Close(); err != nil {
		return Stats{}, nil, fmt.Errorf("transfer: close destination: %w", err)
	}
	raw := body.Unwrap()

	if _, err := w.Write([]byte{CompletionSignal}); err != nil {
		return Stats{}, nil, fmt.Errorf("transfer: write completion signal: %w", err)
	}
	if err := flush(w); err != nil {
		return Stats{}, nil, fmt.Errorf("transfer: flush completion signal: %w", err)
	}

	stats := NewStats(size, time.Since(start))
	e.log.Debug("pull finished", "destination", destination, "stats", stats.String())
	return stats, raw, nil
}

func writeLengthPrefix(w io.Writer, size uint64) error {
	var prefix [LengthPrefixSize]byte
	binary.BigEndian.PutUint64(prefix[:], size)
	if _, err := w.Write(prefix[:]); err != nil {
		return fmt.Errorf("transfer: write length prefix: %w", err)
	}
	return nil
}

func readLengthPrefix(r io.Reader) (uint64, error) {
	var prefix [LengthPrefixSize]byte
	if _, err := io.ReadFull(r, prefix[:]); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return 0, fmt.Errorf("transfer: read length prefix: %w", err)
	}
	return binary.BigEndian.Uint64(prefix[:]), nil
}

func readCompletion(r io.Reader) error {
	var signal [1]byte
	if _, err := io.ReadFull(r, signal[:]); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: stream closed before completion: %w", ErrBadCompletion, io.ErrUnexpectedEOF)
		}
		return fmt.Errorf("transfer: read completion signal: %w", err)
	}
	if signal[0] != CompletionSignal {
		return fmt.Errorf("%w: got 0x%02x", ErrBadCompletion, signal[0])
	}
	return nil
}

func flush(w io.Writer) error {
	if f, ok := w.(Flusher); ok {
		return f.Flush()
	}
	return nil
}
