package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/ruteri/brand-attestations/attestation"
	"github.com/ruteri/brand-attestations/interfaces"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Attestations(t *testing.T) {
	m := NewMetrics("test")

	m.ObserveAttestation(interfaces.BrandScoreType, attestation.ModeSimulated, attestation.OutcomeSuccess)
	m.ObserveAttestation(interfaces.BrandScoreType, attestation.ModeSimulated, attestation.OutcomeSuccess)
	m.ObserveAttestation(interfaces.BrandHealthType, attestation.ModeRelay, attestation.OutcomeRelayError)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.attestations.WithLabelValues("brand_score", "simulated", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.attestations.WithLabelValues("brand_health", "relay", "relay_error")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.attestations))
}

func TestMetrics_RelayLatency(t *testing.T) {
	m := NewMetrics("test")
	m.ObserveRelayRequest(300*time.Millisecond, nil)
	m.ObserveRelayRequest(2*time.Second, errors.New("timeout"))

	assert.Equal(t, 2, testutil.CollectAndCount(m.relayLatency))
}

func TestMetrics_Handler(t *testing.T) {
	m := NewMetrics("brand_attestations")
	m.ObserveAttestation(interfaces.ContentCheckType, attestation.ModeRelay, attestation.OutcomeSuccess)

	srv, err := New(":0", m)
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	srv.srv.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	body, err := io.ReadAll(rr.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body),
		`brand_attestations_attestations_total{mode="relay",outcome="success",record_type="content_check"} 1`))
	assert.Contains(t, string(body), "go_goroutines")

	_, err = New(":0", nil)
	assert.Error(t, err)
}
