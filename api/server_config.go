package api

import (
	"log/slog"
	"time"

	"github.com/ruteri/brand-attestations/metrics"
)

// HTTPServerConfig configures httpserver.Server.
type HTTPServerConfig struct {
	// ListenAddr serves the attestation API, e.g. "127.0.0.1:8080".
	ListenAddr string

	// MetricsAddr serves /metrics. Empty disables the metrics listener.
	MetricsAddr string

	// Metrics is served on MetricsAddr. Required when MetricsAddr is set.
	Metrics *metrics.Metrics

	// EnablePprof mounts net/http/pprof under /debug.
	EnablePprof bool

	Log *slog.Logger

	// DrainDuration is how long Drain waits with /readyz failing.
	DrainDuration time.Duration

	// GracefulShutdownDuration bounds each listener's Shutdown.
	GracefulShutdownDuration time.Duration

	ReadTimeout time.Duration

	// WriteTimeout is the maximum duration before timing out writes of
	// the response. It must exceed the relay timeout.
	WriteTimeout time.Duration
}
