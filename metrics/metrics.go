// Package metrics exposes attestation counters and relay latency for Prometheus.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/ruteri/brand-attestations/attestation"
	"github.com/ruteri/brand-attestations/interfaces"
)

// Metrics holds the service collectors on a private registry.
type Metrics struct {
	registry     *prometheus.Registry
	attestations *prometheus.CounterVec
	relayLatency *prometheus.HistogramVec
}

// NewMetrics registers the service collectors under namespace.
func NewMetrics(namespace string) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		attestations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "attestations_total",
			Help:      "Attestation attempts by record type, dispatch mode and outcome.",
		}, []string{"record_type", "mode", "outcome"}),
		relayLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "relay_request_seconds",
			Help:      "Round trip time of relay attestation requests.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"outcome"}),
	}

	m.registry.MustRegister(
		m.attestations,
		m.relayLatency,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveAttestation implements attestation.Recorder.
func (m *Metrics) ObserveAttestation(rt interfaces.RecordType, mode attestation.Mode, outcome attestation.Outcome) {
	m.attestations.WithLabelValues(string(rt), string(mode), string(outcome)).Inc()
}

// ObserveRelayRequest implements relay.Recorder.
func (m *Metrics) ObserveRelayRequest(elapsed time.Duration, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.relayLatency.WithLabelValues(outcome).Observe(elapsed.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Gatherer exposes the registry for tests and embedding.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// MetricsServer serves /metrics on its own listener.
type MetricsServer struct {
	srv *http.Server
}

// New returns a metrics server for m listening on listenAddr.
func New(listenAddr string, m *Metrics) (*MetricsServer, error) {
	if m == nil {
		return nil, errors.New("metrics server needs a metrics registry")
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())

	return &MetricsServer{
		srv: &http.Server{
			Addr:              listenAddr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}, nil
}

func (s *MetricsServer) ListenAndServe() error {
	return s.srv.ListenAndServe()
}

func (s *MetricsServer) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
