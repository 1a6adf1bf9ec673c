package methods

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/stellar/txresult/cmd/stellar-txresult/internal/daemon/interfaces"
)

const (
	decodeStatusSuccess = "success"
	decodeStatusFailed  = "failed"
	decodeStatusError   = "error"
)

// DecodeMetrics tracks the outcome of every decodeTransactionResult call.
type DecodeMetrics struct {
	decodeCounter  *prometheus.CounterVec
	decodeDuration prometheus.Summary
	operationCount prometheus.Summary
}

func NewDecodeMetrics(daemon interfaces.Daemon) *DecodeMetrics {
	m := &DecodeMetrics{
		decodeCounter: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: daemon.MetricsNamespace(), Name: "decode_total",
			Help: "number of decoded transaction results, by outcome",
		}, []string{"status"}),
		decodeDuration: prometheus.NewSummary(prometheus.SummaryOpts{
			Namespace: daemon.MetricsNamespace(), Name: "decode_duration_seconds",
			Help:       "transaction result decoding durations, sliding window = 10m",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001}, //nolint:mnd
		}),
		operationCount: prometheus.NewSummary(prometheus.SummaryOpts{
			Namespace: daemon.MetricsNamespace(), Name: "decode_operation_count",
			Help:       "number of operation results in a decoded transaction result, sliding window = 10m",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001}, //nolint:mnd
		}),
	}
	daemon.MetricsRegistry().MustRegister(m.decodeCounter, m.decodeDuration, m.operationCount)
	return m
}

func (m *DecodeMetrics) observe(status string, seconds float64, operations int) {
	if m == nil {
		return
	}
	m.decodeCounter.With(prometheus.Labels{"status": status}).Inc()
	m.decodeDuration.Observe(seconds)
	if status != decodeStatusError {
		m.operationCount.Observe(float64(operations))
	}
}
