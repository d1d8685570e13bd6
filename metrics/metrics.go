// Copyright (c) 2026 The betchain developers
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package metrics instruments the orchestration engine with prometheus
// counters and histograms. A nil *Metrics is a valid no-op, so callers
// that do not scrape can skip the wiring entirely.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the engine's instruments, registered on construction.
type Metrics struct {
	operations *prometheus.CounterVec
	failures   *prometheus.CounterVec
	strategies *prometheus.CounterVec
	submit     prometheus.Histogram
}

// New creates and registers the engine metrics on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "betchain_operations_total",
			Help: "Orchestration runs by operation and terminal status.",
		}, []string{"operation", "status"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "betchain_failures_total",
			Help: "Failures by taxonomy code.",
		}, []string{"code"}),
		strategies: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "betchain_selection_strategy_total",
			Help: "Successful UTXO selections by strategy.",
		}, []string{"strategy"}),
		submit: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "betchain_submit_duration_seconds",
			Help:    "Time spent in the provider's construct-sign-submit call.",
			Buckets: prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(m.operations, m.failures, m.strategies, m.submit)
	return m
}

// OperationDone records a finished orchestration run.
func (m *Metrics) OperationDone(operation string, success bool) {
	if m == nil {
		return
	}
	status := "success"
	if !success {
		status = "failure"
	}
	m.operations.WithLabelValues(operation, status).Inc()
}

// Failure records a failure code.
func (m *Metrics) Failure(code string) {
	if m == nil {
		return
	}
	m.failures.WithLabelValues(code).Inc()
}

// Strategy records the selection strategy that produced a selection.
func (m *Metrics) Strategy(strategy string) {
	if m == nil {
		return
	}
	m.strategies.WithLabelValues(strategy).Inc()
}

// ObserveSubmit records the duration of one provider submission.
func (m *Metrics) ObserveSubmit(d time.Duration) {
	if m == nil {
		return
	}
	m.submit.Observe(d.Seconds())
}
