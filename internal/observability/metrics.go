package observability

import (
	"strconv"
	"sync"
	"time"
)

// Metrics keeps per-route counters in process memory. The request logger
// feeds RecordRequest with the final status; the error middleware feeds
// RecordError with the resolved error code.
type Metrics struct {
	mu       sync.Mutex
	requests map[string]int64
	errors   map[string]int64
}

// NewMetrics initializes empty counters.
func NewMetrics() *Metrics {
	return &Metrics{
		requests: make(map[string]int64),
		errors:   make(map[string]int64),
	}
}

// RecordRequest counts a completed request by path, method and status.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.bump(m.requests, path+"|"+method+"|"+strconv.Itoa(status))
}

// RecordError counts a failed request by path, method and error code.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	m.bump(m.errors, path+"|"+method+"|"+code)
}

func (m *Metrics) bump(counters map[string]int64, key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	counters[key]++
}
