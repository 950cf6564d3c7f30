package transfer

import (
	"fmt"
	"time"
)

const mebibyte = 1024 * 1024

// Stats summarizes a completed transfer. Elapsed covers the whole round trip,
// handshake included.
type Stats struct {
	Bytes           uint64
	ThroughputMiBps float64
	LatencyMs       float64
	Elapsed         time.Duration
}

// NewStats derives throughput and latency from a byte count and elapsed time.
// A zero elapsed time yields zero throughput.
func NewStats(bytes uint64, elapsed time.Duration) Stats {
	secs := elapsed.Seconds()
	var throughput float64
	if secs > 0 {
		throughput = float64(bytes) / secs / mebibyte
	}
	return Stats{
		Bytes:           bytes,
		ThroughputMiBps: throughput,
		LatencyMs:       secs * 1000,
		Elapsed:         elapsed,
	}
}

func (s Stats) String() string {
	return fmt.Sprintf("bytes: %d; throughput: %.2f MiB/s; latency: %.2f ms;",
		s.Bytes, s.ThroughputMiBps, s.LatencyMs)
}
