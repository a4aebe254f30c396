package graph

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/GoSim-25-26J-441/tracker-gateway/internal/tracker/domain"
)

// Metrics tracks persistence calls made by resolvers.
type Metrics struct {
	calls     int64
	failures  int64 // suppressed errors other than not-found
	notFound  int64
	timeouts  int64
	latencyNs int64
}

// MetricsSnapshot is a point-in-time copy of Metrics.
type MetricsSnapshot struct {
	Calls            int64   `json:"calls"`
	Failures         int64   `json:"failures"`
	NotFound         int64   `json:"not_found"`
	Timeouts         int64   `json:"timeouts"`
	AverageLatencyMs float64 `json:"avg_latency_ms"`
}

func (m *Metrics) record(d time.Duration, err error) {
	atomic.AddInt64(&m.calls, 1)
	atomic.AddInt64(&m.latencyNs, d.Nanoseconds())
	switch {
	case err == nil:
	case domain.IsNotFound(err):
		atomic.AddInt64(&m.notFound, 1)
	case errors.Is(err, context.DeadlineExceeded):
		atomic.AddInt64(&m.timeouts, 1)
		atomic.AddInt64(&m.failures, 1)
	default:
		atomic.AddInt64(&m.failures, 1)
	}
}

// Snapshot returns the current counters.
func (m *Metrics) Snapshot() MetricsSnapshot {
	s := MetricsSnapshot{
		Calls:    atomic.LoadInt64(&m.calls),
		Failures: atomic.LoadInt64(&m.failures),
		NotFound: atomic.LoadInt64(&m.notFound),
		Timeouts: atomic.LoadInt64(&m.timeouts),
	}
	if s.Calls > 0 {
		s.AverageLatencyMs = float64(atomic.LoadInt64(&m.latencyNs)) / float64(s.Calls) / 1e6
	}
	return s
}
