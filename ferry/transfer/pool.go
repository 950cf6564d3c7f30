package transfer

import "sync"

// DefaultBufferSize is the default copy buffer size (256 KB).
const DefaultBufferSize = 256 * 1024

// bufferPool provides reusable copy buffers so back-to-back transfers on one
// engine do not allocate a fresh buffer each time.
type bufferPool struct {
	pool sync.Pool
	size int
}

func newBufferPool(size int) *bufferPool {
	if size <= 0 {
		size = DefaultBufferSize
	}
	return &bufferPool{
		pool: sync.Pool{
			New: func() interface{} {
				buf := make([]byte, size)
				return &buf
			},
		},
		size: size,
	}
}

func (p *bufferPool) get() *[]byte {
	return p.pool.Get().(*[]byte)
}

func (p *bufferPool) put(buf *[]byte) {
	if len(*buf) == p.size {
		p.pool.Put(buf)
	}
}
