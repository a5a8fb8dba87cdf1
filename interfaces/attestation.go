package interfaces

import (
	"context"
	"errors"

	"github.com/ethereum/go-ethereum/common"
)

// AttestationRecord is the immutable outcome of one successful attestation attempt.
// Simulated records carry the same shape; only Simulated tells them apart.
type AttestationRecord struct {
	UID           string         `json:"uid"`
	TxHash        string         `json:"tx_hash"`
	Chain         ChainKey       `json:"chain"`
	ChainID       uint64         `json:"chain_id"`
	RecordType    RecordType     `json:"record_type"`
	SchemaID      SchemaID       `json:"schema_id"`
	Attester      common.Address `json:"attester"`
	Recipient     common.Address `json:"recipient"`
	ContentDigest string         `json:"content_digest"`
	CreatedAt     int64          `json:"created_at"`
	ExplorerURL   string         `json:"explorer_url"`
	Simulated     bool           `json:"simulated"`
}

// RelayRequest is the payload dispatched to the external signing relay.
type RelayRequest struct {
	RecordType RecordType     `json:"recordType"`
	ChainID    uint64         `json:"chainId"`
	SchemaID   SchemaID       `json:"schemaUid"`
	Recipient  common.Address `json:"recipient"`
	Data       string         `json:"data"`
	RefUID     common.Hash    `json:"refUid"`
}

// RelayReceipt is what the relay reports back for a broadcast attestation.
type RelayReceipt struct {
	UID       string         `json:"uid"`
	TxHash    string         `json:"txHash"`
	Attester  common.Address `json:"attester"`
	Timestamp int64          `json:"timestamp"`
}

// Relay signs and broadcasts attestations on behalf of this service.
type Relay interface {
	Attest(ctx context.Context, req *RelayRequest) (*RelayReceipt, error)
}

// ErrRecordNotFound is returned by archive backends for unknown attestation UIDs.
var ErrRecordNotFound = errors.New("attestation record not found")

// ArchiveBackend persists created attestation records keyed by UID.
type ArchiveBackend interface {
	Store(ctx context.Context, record *AttestationRecord) error
	Fetch(ctx context.Context, uid string) (*AttestationRecord, error)
	Available(ctx context.Context) bool
	Name() string
	LocationURI() string
}
