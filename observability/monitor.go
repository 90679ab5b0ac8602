// Package observability aggregates bus telemetry for the monitor worker.
package observability

import "sync/atomic"

// Stats is a point-in-time snapshot of bus traffic.
type Stats struct {
	Published uint64
	Delivered uint64
	Dropped   uint64
}

// Monitor counts envelopes crossing the bus. Counters are atomic so the
// bus can increment them from any goroutine without locking.
type Monitor struct {
	published atomic.Uint64
	delivered atomic.Uint64
	dropped   atomic.Uint64
}

func NewMonitor() *Monitor {
	return &Monitor{}
}

func (m *Monitor) IncrPublished() {
	if m != nil {
		m.published.Add(1)
	}
}

func (m *Monitor) IncrDelivered() {
	if m != nil {
		m.delivered.Add(1)
	}
}

func (m *Monitor) IncrDropped() {
	if m != nil {
		m.dropped.Add(1)
	}
}

func (m *Monitor) Snapshot() Stats {
	if m == nil {
		return Stats{}
	}
	return Stats{
		Published: m.published.Load(),
		Delivered: m.delivered.Load(),
		Dropped:   m.dropped.Load(),
	}
}
