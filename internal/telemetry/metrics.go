// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/jeranaias/devconsole/internal/commands"
)

const namespace = "devconsole"

// Metrics exports dispatch outcomes to Prometheus. It implements
// commands.Observer.
//
// Command names are used as label values only when they resolved, so a
// typo cannot create an unbounded number of series.
type Metrics struct {
	registry   *prometheus.Registry
	executions *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	registered prometheus.Gauge
	timeScale  prometheus.Gauge
}

// NewMetrics creates the collectors on a private registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		executions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "executions_total",
			Help:      "Executed console lines by command and outcome.",
		}, []string{"command", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "execution_duration_seconds",
			Help:      "Time spent dispatching a console line.",
			Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
		}, []string{"command"}),
		registered: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "registered_commands",
			Help:      "Commands in the registry.",
		}),
		timeScale: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "time_scale",
			Help:      "Current simulation time scale.",
		}),
	}
	m.timeScale.Set(1)
	m.registry.MustRegister(m.executions, m.duration, m.registered, m.timeScale)
	return m
}

// Registry returns the Prometheus registry holding the collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Observe implements commands.Observer.
func (m *Metrics) Observe(exec commands.Execution) {
	label := exec.Command
	if exec.Outcome == commands.OutcomeCommandNotFound {
		label = "unknown"
	}
	m.executions.WithLabelValues(label, exec.Outcome.String()).Inc()
	m.duration.WithLabelValues(label).Observe(exec.Duration.Seconds())
}

// SetRegistered records the registry size.
func (m *Metrics) SetRegistered(n int) {
	m.registered.Set(float64(n))
}

// SetTimeScale records the simulation time scale.
func (m *Metrics) SetTimeScale(scale float64) {
	m.timeScale.Set(scale)
}
