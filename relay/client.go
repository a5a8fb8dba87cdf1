package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ruteri/brand-attestations/interfaces"
)

// AttestPath is the relay endpoint attestations are posted to.
const AttestPath = "/v1/attestations"

// maxResponseSize caps how much of a relay response is read.
const maxResponseSize = 1024 * 1024

// ErrRejected is wrapped by errors the relay reported in a well-formed response.
var ErrRejected = errors.New("relay rejected attestation")

// RelayError is returned for non-2xx relay responses.
type RelayError struct {
	StatusCode int
	Body       string
}

func (e *RelayError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("relay returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("relay returned status %d: %s", e.StatusCode, e.Body)
}

// Recorder receives the latency of every relay round trip.
type Recorder interface {
	ObserveRelayRequest(elapsed time.Duration, err error)
}

// Response is the relay's answer to an attestation request.
type Response struct {
	Success     bool                     `json:"success"`
	Attestation *interfaces.RelayReceipt `json:"attestation,omitempty"`
	Error       string                   `json:"error,omitempty"`
}

// Client implements interfaces.Relay over the relay's HTTP API.
type Client struct {
	// BaseURL is the relay root, e.g. https://relay.example.com
	BaseURL string

	// Credential is sent as a bearer token.
	Credential string

	// HTTPClient defaults to http.DefaultClient.
	HTTPClient *http.Client

	Metrics Recorder
}

// NewClient returns a relay client whose requests time out after timeout.
// A zero timeout leaves requests bounded only by the caller's context.
func NewClient(baseURL, credential string, timeout time.Duration) *Client {
	return &Client{
		BaseURL:    strings.TrimSuffix(baseURL, "/"),
		Credential: credential,
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

// Attest posts req to the relay and waits for the broadcast receipt.
func (c *Client) Attest(ctx context.Context, req *interfaces.RelayRequest) (receipt *interfaces.RelayReceipt, err error) {
	if c.Metrics != nil {
		start := time.Now()
		defer func() { c.Metrics.ObserveRelayRequest(time.Since(start), err) }()
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("could not marshal relay request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+AttestPath, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.Credential != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.Credential)
	}

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("could not reach relay: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("could not read relay response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		relayErr := &RelayError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(respBody))}
		// Prefer the relay's own message when it sent the structured shape.
		var parsed Response
		if json.Unmarshal(respBody, &parsed) == nil && parsed.Error != "" {
			relayErr.Body = parsed.Error
		}
		return nil, relayErr
	}

	var parsed Response
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("could not parse relay response: %w", err)
	}
	if !parsed.Success {
		msg := parsed.Error
		if msg == "" {
			msg = "no reason given"
		}
		return nil, fmt.Errorf("%w: %s", ErrRejected, msg)
	}
	if parsed.Attestation == nil {
		return nil, fmt.Errorf("%w: success without attestation", ErrRejected)
	}

	return parsed.Attestation, nil
}
