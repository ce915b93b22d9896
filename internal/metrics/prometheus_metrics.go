// Package metrics provides a Prometheus implementation of client.MetricsReporter.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/rocketgeek/akismetclient-go/client"
)

var (
	exchangeCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "akismet_exchanges_total",
		Help: "Total number of provider exchanges",
	}, []string{"command", "outcome"}) // outcome: spam, ham, valid, invalid or an error type

	exchangeDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "akismet_exchange_duration_seconds",
		Help:    "Duration of provider exchanges",
		Buckets: prometheus.DefBuckets,
	}, []string{"command"})

	registrationCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "akismet_registrations_total",
		Help: "Total number of validated registrations",
	}, []string{"decision"})
)

// PrometheusMetrics implements client.MetricsReporter using Prometheus.
type PrometheusMetrics struct{}

// NewPrometheusMetrics creates a new Prometheus metrics reporter.
func NewPrometheusMetrics() *PrometheusMetrics {
	return &PrometheusMetrics{}
}

var _ client.MetricsReporter = (*PrometheusMetrics)(nil)

// RecordExchange records one provider exchange.
func (m *PrometheusMetrics) RecordExchange(command, outcome string, duration float64) {
	exchangeCounter.WithLabelValues(command, outcome).Inc()
	exchangeDuration.WithLabelValues(command).Observe(duration)
}

// RecordRegistration records the decision of a registration validation chain.
func (m *PrometheusMetrics) RecordRegistration(decision client.Decision) {
	registrationCounter.WithLabelValues(string(decision)).Inc()
}
