package archive

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ruteri/brand-attestations/interfaces"
)

// ErrInvalidUID is returned for keys that are not 32-byte hex attestation UIDs.
var ErrInvalidUID = errors.New("invalid attestation uid")

// ErrUnavailable is returned by MultiBackend when no backend is reachable.
var ErrUnavailable = errors.New("no archive backend available")

// ErrInvalidLocationURI is returned by the factory for unparseable or unsupported URIs.
var ErrInvalidLocationURI = errors.New("invalid archive location uri")

// recordKey normalizes an attestation UID into the object name records are
// stored under. Only 32-byte hex values are accepted so keys never escape the
// backend's directory or prefix.
func recordKey(uid string) (string, error) {
	raw, err := hexutil.Decode(strings.ToLower(uid))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidUID, err)
	}
	if len(raw) != common.HashLength {
		return "", fmt.Errorf("%w: got %d bytes", ErrInvalidUID, len(raw))
	}
	return hexutil.Encode(raw) + ".json", nil
}

func marshalRecord(record *interfaces.AttestationRecord) ([]byte, error) {
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("could not marshal attestation record: %w", err)
	}
	return data, nil
}

func unmarshalRecord(data []byte) (*interfaces.AttestationRecord, error) {
	var record interfaces.AttestationRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("could not parse attestation record: %w", err)
	}
	return &record, nil
}
