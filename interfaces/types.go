// Package interfaces defines the core interfaces and types for the attestation system.
// It provides the contract between different components without implementation details.
package interfaces

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

// RecordType tags one of the supported attestation record schemas.
type RecordType string

const (
	BrandIdentityType    RecordType = "brand_identity"
	ContentCheckType     RecordType = "content_check"
	BrandScoreType       RecordType = "brand_score"
	VoiceFingerprintType RecordType = "voice_fingerprint"
	BrandHealthType      RecordType = "brand_health"
)

// RecordTypes lists every supported record type in a stable order.
var RecordTypes = []RecordType{
	BrandIdentityType,
	ContentCheckType,
	BrandScoreType,
	VoiceFingerprintType,
	BrandHealthType,
}

// ErrUnknownRecordType is returned when a record type tag is not one of RecordTypes.
var ErrUnknownRecordType = errors.New("unknown record type")

// ParseRecordType validates a record type tag.
func ParseRecordType(s string) (RecordType, error) {
	for _, rt := range RecordTypes {
		if string(rt) == s {
			return rt, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRecordType, s)
}

// String returns the record type tag.
func (rt RecordType) String() string {
	return string(rt)
}

// ChainKey is the human-readable selector of a supported network, e.g. "base-sepolia".
type ChainKey string

// String returns the chain key as a string.
func (k ChainKey) String() string {
	return string(k)
}

// SchemaID is the 32-byte identifier of a schema registered in an attestation registry.
type SchemaID [32]byte

// NewSchemaIDFromHex parses a 64-char hex string, with or without the 0x prefix.
func NewSchemaIDFromHex(s string) (SchemaID, error) {
	clean := strings.TrimPrefix(s, "0x")
	if len(clean) != 64 {
		return SchemaID{}, errors.New("invalid schema id length: hex string must be 64 characters")
	}

	raw, err := hex.DecodeString(clean)
	if err != nil {
		return SchemaID{}, fmt.Errorf("invalid hex format: %w", err)
	}

	var id SchemaID
	copy(id[:], raw)
	return id, nil
}

// String returns the 0x-prefixed hex representation.
func (id SchemaID) String() string {
	return "0x" + hex.EncodeToString(id[:])
}

// IsZero reports whether the id is unset.
func (id SchemaID) IsZero() bool {
	return id == SchemaID{}
}

// MarshalText implements encoding.TextMarshaler.
func (id SchemaID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *SchemaID) UnmarshalText(text []byte) error {
	parsed, err := NewSchemaIDFromHex(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
