/* Apache v2 license
 * Copyright (C) 2019 Intel Corporation
 *
 * SPDX-License-Identifier: Apache-2.0
 */

// Package metrics records decoding outcomes for Prometheus.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ResultOK = "ok"
)

// Metrics provides observability for decoding requests.
type Metrics struct {
	// Decodes by format and result: "ok" or the failure's error kind
	Decodes *prometheus.CounterVec

	// Decode latency by format
	DecodeLatency *prometheus.HistogramVec
}

// New creates a Metrics instance registered with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Decodes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "licensecode_decodes_total",
			Help: "Total decode attempts by barcode format and result",
		}, []string{"format", "result"}),

		DecodeLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "licensecode_decode_duration_seconds",
			Help:    "Duration of a single decode, including payload decryption",
			Buckets: []float64{0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.05},
		}, []string{"format"}),
	}
}

// ObserveDecode records one decode attempt of the format.
func (m *Metrics) ObserveDecode(format, result string, d time.Duration) {
	if m != nil {
		m.Decodes.WithLabelValues(format, result).Inc()
		m.DecodeLatency.WithLabelValues(format).Observe(d.Seconds())
	}
}
