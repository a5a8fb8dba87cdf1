package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/ruteri/brand-attestations/api"
	"github.com/ruteri/brand-attestations/attestation"
	"github.com/ruteri/brand-attestations/interfaces"
	"github.com/stretchr/testify/mock"
)

// AttestationClient implements api.AttestationProvider over HTTP.
type AttestationClient struct {
	// ServerAddr is the base URL of the attestation service
	ServerAddr string

	// HTTPClient defaults to http.DefaultClient
	HTTPClient *http.Client
}

var _ api.AttestationProvider = (*AttestationClient)(nil)

func (c *AttestationClient) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c *AttestationClient) url(path string) string {
	return strings.TrimSuffix(c.ServerAddr, "/") + path
}

// Create posts a record to the service. A relay failure is not an error: it
// is returned as a Result with Success unset.
func (c *AttestationClient) Create(ctx context.Context, rt interfaces.RecordType, req *api.CreateAttestationRequest) (*attestation.Result, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url("/api/attestations/"+string(rt)), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient().Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("could not request attestation endpoint: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("could not read attestation response: %w", err)
	}

	var result attestation.Result
	if err := json.Unmarshal(bodyBytes, &result); err != nil {
		return nil, fmt.Errorf("attestation endpoint returned error %d: %s", resp.StatusCode, string(bodyBytes))
	}

	switch resp.StatusCode {
	case http.StatusOK, http.StatusBadGateway:
		return &result, nil
	default:
		return nil, fmt.Errorf("attestation endpoint returned error %d: %s", resp.StatusCode, result.Error)
	}
}

// Get fetches an archived attestation. Unknown UIDs yield
// interfaces.ErrRecordNotFound.
func (c *AttestationClient) Get(ctx context.Context, uid string) (*interfaces.AttestationRecord, error) {
	var record interfaces.AttestationRecord
	if err := c.getJSON(ctx, "/api/attestations/"+uid, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// Chain describes the network the service attests on.
func (c *AttestationClient) Chain(ctx context.Context) (*api.ChainSummary, error) {
	var summary api.ChainSummary
	if err := c.getJSON(ctx, "/api/chain", &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// Schemas lists schema strings and UIDs on the active network.
func (c *AttestationClient) Schemas(ctx context.Context) (*api.SchemasResponse, error) {
	var schemas api.SchemasResponse
	if err := c.getJSON(ctx, "/api/schemas", &schemas); err != nil {
		return nil, err
	}
	return &schemas, nil
}

func (c *AttestationClient) getJSON(ctx context.Context, path string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url(path), nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return fmt.Errorf("could not request %s: %w", path, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", interfaces.ErrRecordNotFound, path)
	default:
		bodyBytes, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("%s returned non-200 response: %d", path, resp.StatusCode)
		}
		return fmt.Errorf("%s returned error %d: %s", path, resp.StatusCode, strings.TrimSpace(string(bodyBytes)))
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("could not parse response of %s: %w", path, err)
	}
	return nil
}

// MockAttestationProvider implements a mock api.AttestationProvider for testing.
type MockAttestationProvider struct {
	mock.Mock
}

func (m *MockAttestationProvider) Create(ctx context.Context, rt interfaces.RecordType, req *api.CreateAttestationRequest) (*attestation.Result, error) {
	args := m.Called(ctx, rt, req)
	res, _ := args.Get(0).(*attestation.Result)
	return res, args.Error(1)
}

func (m *MockAttestationProvider) Get(ctx context.Context, uid string) (*interfaces.AttestationRecord, error) {
	args := m.Called(ctx, uid)
	rec, _ := args.Get(0).(*interfaces.AttestationRecord)
	return rec, args.Error(1)
}

func (m *MockAttestationProvider) Chain(ctx context.Context) (*api.ChainSummary, error) {
	args := m.Called(ctx)
	summary, _ := args.Get(0).(*api.ChainSummary)
	return summary, args.Error(1)
}
