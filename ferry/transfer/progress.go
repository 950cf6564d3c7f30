package transfer

import "io"

// ProgressEvent reports how far a push or pull has moved its payload.
type ProgressEvent struct {
	// Operation is "push" or "pull".
	Operation string
	// Bytes is the cumulative number of payload bytes moved so far.
	Bytes uint64
	// Total is the declared payload length.
	Total uint64
}

// ProgressFunc is called from the transferring goroutine after every write
// of payload bytes. It must return quickly.
type ProgressFunc func(ProgressEvent)

// progressWriter counts payload bytes on their way to w.
type progressWriter struct {
	w     io.Writer
	fn    ProgressFunc
	event ProgressEvent
}

func withProgress(w io.Writer, fn ProgressFunc, op string, total uint64) io.Writer {
	if fn == nil {
		return w
	}
	return &progressWriter{w: w, fn: fn, event: ProgressEvent{Operation: op, Total: total}}
}

func (p *progressWriter) Write(b []byte) (int, error) {
	n, err := p.w.Write(b)
	if n > 0 {
		p.event.Bytes += uint64(n)
		p.fn(p.event)
	}
	return n, err
}
