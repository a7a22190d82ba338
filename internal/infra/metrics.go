package infra

import (
	"sync/atomic"
	"time"
)

// Metrics provides lightweight observability without external dependencies.
// Uses atomic operations for thread-safety.
type Metrics struct {
	// Counters
	gatewayCalls   atomic.Uint64
	gatewayErrors  atomic.Uint64
	ordersMirrored atomic.Uint64

	// Latency tracking for gateway round trips
	latencySumNs atomic.Int64
	latencyCount atomic.Uint64

	// Gauges
	streamConnected atomic.Int32 // 1 = connected, 0 = disconnected
}

// GlobalMetrics is the singleton metrics instance.
var GlobalMetrics = &Metrics{}

// RecordGatewayCall records a completed gateway round trip with latency.
func (m *Metrics) RecordGatewayCall(latency time.Duration) {
	m.gatewayCalls.Add(1)
	m.latencySumNs.Add(latency.Nanoseconds())
	m.latencyCount.Add(1)
}

// RecordGatewayError records a failed gateway round trip.
func (m *Metrics) RecordGatewayError() {
	m.gatewayErrors.Add(1)
}

// RecordOrderMirrored records a local mirror write.
func (m *Metrics) RecordOrderMirrored() {
	m.ordersMirrored.Add(1)
}

// SetStreamConnected sets the ticker stream connection gauge.
func (m *Metrics) SetStreamConnected(connected bool) {
	if connected {
		m.streamConnected.Store(1)
	} else {
		m.streamConnected.Store(0)
	}
}

// Snapshot returns the current metric values for logging or display.
type MetricsSnapshot struct {
	GatewayCalls    uint64
	GatewayErrors   uint64
	OrdersMirrored  uint64
	AvgLatencyMs    float64
	StreamConnected bool
}

// Snapshot captures current values. Not atomic across fields, which is fine
// for periodic reporting.
func (m *Metrics) Snapshot() MetricsSnapshot {
	snap := MetricsSnapshot{
		GatewayCalls:    m.gatewayCalls.Load(),
		GatewayErrors:   m.gatewayErrors.Load(),
		OrdersMirrored:  m.ordersMirrored.Load(),
		StreamConnected: m.streamConnected.Load() == 1,
	}
	if count := m.latencyCount.Load(); count > 0 {
		snap.AvgLatencyMs = float64(m.latencySumNs.Load()) / float64(count) / 1e6
	}
	return snap
}
