package httpserver

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ruteri/brand-attestations/api"
	"github.com/ruteri/brand-attestations/archive"
	"github.com/ruteri/brand-attestations/attestation"
	"github.com/ruteri/brand-attestations/chains"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	registry, err := chains.NewDefaultRegistry("")
	require.NoError(t, err)
	store := archive.NewMemoryBackend()
	client, err := attestation.NewClient(attestation.Options{Registry: registry, Archive: store, Log: logger})
	require.NoError(t, err)

	srv, err := New(&api.HTTPServerConfig{ListenAddr: "127.0.0.1:0", Log: logger}, NewHandler(client, registry, store, logger))
	require.NoError(t, err)
	return srv
}

func get(t *testing.T, h http.Handler, path string) (int, string) {
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	return rr.Code, rr.Body.String()
}

func TestServer_HealthAndDrain(t *testing.T) {
	srv := newTestServer(t)
	h := srv.Handler()

	code, body := get(t, h, "/livez")
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"status":"alive"}`, body)

	code, _ = get(t, h, "/readyz")
	assert.Equal(t, http.StatusOK, code)

	_, body = get(t, h, "/drain")
	assert.JSONEq(t, `{"status":"draining"}`, body)
	_, body = get(t, h, "/drain")
	assert.JSONEq(t, `{"status":"already draining"}`, body)

	code, body = get(t, h, "/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.JSONEq(t, `{"status":"not ready"}`, body)

	_, body = get(t, h, "/undrain")
	assert.JSONEq(t, `{"status":"ready"}`, body)
	_, body = get(t, h, "/undrain")
	assert.JSONEq(t, `{"status":"already ready"}`, body)

	code, _ = get(t, h, "/readyz")
	assert.Equal(t, http.StatusOK, code)
}

func TestServer_DrainBeforeShutdown(t *testing.T) {
	srv := newTestServer(t)

	srv.Drain()
	code, _ := get(t, srv.Handler(), "/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, code)

	srv.Shutdown()
}

func TestServer_RoutesAPI(t *testing.T) {
	srv := newTestServer(t)

	code, body := get(t, srv.Handler(), "/api/chain")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, `"key":"base-sepolia"`)
	assert.Contains(t, body, `"mode":"simulated"`)

	code, _ = get(t, srv.Handler(), "/debug/pprof/")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestServer_MetricsRequiresRegistry(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	_, err := New(&api.HTTPServerConfig{MetricsAddr: "127.0.0.1:0", Log: logger}, nil)
	assert.Error(t, err)
}
