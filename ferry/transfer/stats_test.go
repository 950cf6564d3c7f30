package transfer

import (
	"math"
	"testing"
	"time"
)

func TestNewStats(t *testing.T) {
	s := NewStats(2*mebibyte, 2*time.Second)
	if s.Bytes != 2*mebibyte {
		t.Fatalf("bytes: got %d", s.Bytes)
	}
	if math.Abs(s.ThroughputMiBps-1.0) > 1e-9 {
		t.Fatalf("throughput: got %f want 1.0", s.ThroughputMiBps)
	}
	if math.Abs(s.LatencyMs-2000) > 1e-9 {
		t.Fatalf("latency: got %f want 2000", s.LatencyMs)
	}
}

func TestNewStatsZeroElapsed(t *testing.T) {
	s := NewStats(1024, 0)
	if s.ThroughputMiBps != 0 || s.LatencyMs != 0 {
		t.Fatalf("expected zero throughput and latency, got %+v", s)
	}
}

func TestStatsString(t *testing.T) {
	tests := []struct {
		stats Stats
		want  string
	}{
		{
			NewStats(mebibyte, time.Second),
			"bytes: 1048576; throughput: 1.00 MiB/s; latency: 1000.00 ms;",
		},
		{
			NewStats(0, 1500*time.Microsecond),
			"bytes: 0; throughput: 0.00 MiB/s; latency: 1.50 ms;",
		},
	}
	for _, tt := range tests {
		if got := tt.stats.String(); got != tt.want {
			t.Fatalf("String: got %q want %q", got, tt.want)
		}
	}
}
