package clients

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ruteri/brand-attestations/api"
	"github.com/ruteri/brand-attestations/archive"
	"github.com/ruteri/brand-attestations/attestation"
	"github.com/ruteri/brand-attestations/chains"
	"github.com/ruteri/brand-attestations/httpserver"
	"github.com/ruteri/brand-attestations/interfaces"
	"github.com/ruteri/brand-attestations/relay"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func startService(t *testing.T, opts attestation.Options) *AttestationClient {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	registry, err := chains.NewDefaultRegistry("base")
	require.NoError(t, err)
	store := archive.NewMemoryBackend()

	opts.Registry = registry
	opts.Archive = store
	opts.Log = logger
	client, err := attestation.NewClient(opts)
	require.NoError(t, err)

	srv, err := httpserver.New(&api.HTTPServerConfig{Log: logger}, httpserver.NewHandler(client, registry, store, logger))
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return &AttestationClient{ServerAddr: ts.URL + "/"}
}

func TestAttestationClient_RoundTrip(t *testing.T) {
	c := startService(t, attestation.Options{})
	ctx := context.Background()

	summary, err := c.Chain(ctx)
	require.NoError(t, err)
	assert.Equal(t, interfaces.ChainKey("base"), summary.Key)
	assert.Equal(t, uint64(8453), summary.ChainID)
	assert.Equal(t, attestation.ModeSimulated, summary.Mode)

	recipient := common.HexToAddress("0x3333333333333333333333333333333333333333")
	res, err := c.Create(ctx, interfaces.BrandIdentityType, &api.CreateAttestationRequest{
		Recipient: recipient,
		Data:      json.RawMessage(`{"brandHash":"0xabcd","name":"Acme","version":2,"timestamp":1700000000}`),
	})
	require.NoError(t, err)
	require.True(t, res.Success)
	assert.Equal(t, recipient, res.Attestation.Recipient)
	assert.True(t, strings.HasPrefix(res.Attestation.ExplorerURL, "https://base.easscan.org/attestation/view/"))

	record, err := c.Get(ctx, res.Attestation.UID)
	require.NoError(t, err)
	assert.Equal(t, res.Attestation, record)

	_, err = c.Get(ctx, "0x"+strings.Repeat("0f", 32))
	assert.ErrorIs(t, err, interfaces.ErrRecordNotFound)

	schemas, err := c.Schemas(ctx)
	require.NoError(t, err)
	assert.Len(t, schemas.Schemas, len(interfaces.RecordTypes))
}

func TestAttestationClient_RelayFailure(t *testing.T) {
	mockRelay := &relay.MockRelay{}
	mockRelay.On("Attest", mock.Anything, mock.Anything).Return(nil, relay.ErrRejected)
	c := startService(t, attestation.Options{Relay: mockRelay, Credential: "secret"})

	res, err := c.Create(context.Background(), interfaces.BrandScoreType, &api.CreateAttestationRequest{
		Data: json.RawMessage(`{"overallScore":1,"subScores":[1,2,3,4],"timestamp":1,"username":"u","archetype":"a"}`),
	})
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, relay.ErrRejected.Error())
}

func TestAttestationClient_Errors(t *testing.T) {
	c := startService(t, attestation.Options{})
	ctx := context.Background()

	_, err := c.Create(ctx, "brand_mood", &api.CreateAttestationRequest{Data: json.RawMessage(`{}`)})
	assert.ErrorContains(t, err, "returned error 404")

	_, err = c.Create(ctx, interfaces.BrandIdentityType, &api.CreateAttestationRequest{
		Data: json.RawMessage(`{"brandHash":"0xzz","name":"Acme","version":1,"timestamp":1}`),
	})
	assert.ErrorContains(t, err, "returned error 400")

	_, err = c.Get(ctx, "nope")
	assert.ErrorContains(t, err, "returned error 400")

	unreachable := &AttestationClient{ServerAddr: "http://127.0.0.1:1"}
	_, err = unreachable.Chain(ctx)
	assert.ErrorContains(t, err, "could not request")
}

func TestAttestationClient_NonJSONError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusInternalServerError)
	}))
	defer ts.Close()

	c := &AttestationClient{ServerAddr: ts.URL, HTTPClient: ts.Client()}
	_, err := c.Create(context.Background(), interfaces.BrandScoreType, &api.CreateAttestationRequest{Data: json.RawMessage(`{}`)})
	assert.ErrorContains(t, err, "upstream exploded")
}

func TestMockAttestationProvider(t *testing.T) {
	m := &MockAttestationProvider{}
	var provider api.AttestationProvider = m

	m.On("Get", mock.Anything, "0x01").Return(nil, interfaces.ErrRecordNotFound)
	_, err := provider.Get(context.Background(), "0x01")
	assert.ErrorIs(t, err, interfaces.ErrRecordNotFound)
	m.AssertExpectations(t)
}
