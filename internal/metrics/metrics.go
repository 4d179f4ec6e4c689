// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package metrics declares the Prometheus collectors SnapUI exports on
// /metrics. Collectors are registered with the default registry at init.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Generations counts finished generation attempts by outcome
	// ("success" or a failure kind such as "timeout").
	Generations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "snapui_generations_total",
			Help: "Generation attempts by outcome",
		},
		[]string{"outcome"},
	)

	// GenerationDuration observes the wall time of remote model calls.
	GenerationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "snapui_generation_duration_seconds",
			Help:    "Duration of remote generation calls",
			Buckets: []float64{0.5, 1, 2, 4, 8, 12, 16, 20, 30},
		},
		[]string{"provider"},
	)

	// Exports counts export actions by action and result.
	Exports = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "snapui_exports_total",
			Help: "Export actions (copy, download, open, preview) by result",
		},
		[]string{"action", "result"}, // result: ok|empty
	)
)

func init() {
	prometheus.MustRegister(Generations, GenerationDuration, Exports)
}

// ObserveGeneration records the outcome of one attempt. A zero duration
// (local validation failure) skips the histogram.
func ObserveGeneration(provider, outcome string, d time.Duration) {
	Generations.WithLabelValues(outcome).Inc()
	if d > 0 {
		GenerationDuration.WithLabelValues(provider).Observe(d.Seconds())
	}
}

// ObserveExport records one export action.
func ObserveExport(action string, empty bool) {
	result := "ok"
	if empty {
		result = "empty"
	}
	Exports.WithLabelValues(action, result).Inc()
}

// Handler serves the default registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}
