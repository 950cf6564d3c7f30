package transfer

import (
	"bytes"
	"io"
	"net"
	"path/filepath"
	"testing"
)

func TestCompressedStreamFlush(t *testing.T) {
	a, b := net.Pipe()
	defer a.Close()
	defer b.Close()

	zs, err := NewCompressedStream(a, a, CompressionDefault)
	if err != nil {
		t.Fatalf("NewCompressedStream: %v", err)
	}
	zr, err := NewCompressedStream(b, b, CompressionDefault)
	if err != nil {
		t.Fatalf("NewCompressedStream: %v", err)
	}

	msg := bytes.Repeat([]byte("ferry "), 1000)
	errCh := make(chan error, 1)
	go func() {
		if _, err := zs.Write(msg); err != nil {
			errCh <- err
			return
		}
		errCh <- zs.Flush()
	}()

	got := make([]byte, len(msg))
	if _, err := io.ReadFull(zr, got); err != nil {
		t.Fatalf("ReadFull: %v", err)
	}
	if err := <-errCh; err != nil {
		t.Fatalf("write side: %v", err)
	}
	if !bytes.Equal(got, msg) {
		t.Fatalf("decompressed data mismatch")
	}
}

func TestPushPullCompressed(t *testing.T) {
	levels := []CompressionLevel{CompressionFast, CompressionDefault, CompressionBest}
	engine := NewEngine(DefaultConfig())

	for _, level := range levels {
		for _, content := range [][]byte{nil, bytes.Repeat([]byte("abcdefgh"), 100000), patterned(300 * 1024)} {
			dir := t.TempDir()
			src := filepath.Join(dir, "src")
			dst := filepath.Join(dir, "dst")
			writeFile(t, src, content)

			a, b := net.Pipe()
			pushSide, err := NewCompressedStream(a, a, level)
			if err != nil {
				t.Fatalf("NewCompressedStream: %v", err)
			}
			pullSide, err := NewCompressedStream(b, b, level)
			if err != nil {
				t.Fatalf("NewCompressedStream: %v", err)
			}

			done := make(chan error, 1)
			go func() {
				_, err := engine.Push(src, pushSide, pushSide)
				done <- err
			}()
			stats, err := engine.Pull(dst, pullSide, pullSide)
			if err != nil {
				t.Fatalf("level %d: Pull: %v", level, err)
			}
			if err := <-done; err != nil {
				t.Fatalf("level %d: Push: %v", level, err)
			}
			a.Close()
			b.Close()

			if stats.Bytes != uint64(len(content)) {
				t.Fatalf("level %d: bytes %d want %d", level, stats.Bytes, len(content))
			}
			if got := readFile(t, dst); !bytes.Equal(got, content) {
				t.Fatalf("level %d: destination mismatch", level)
			}
		}
	}
}
