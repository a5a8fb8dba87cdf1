package api

import (
	"context"
	"encoding/json"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ruteri/brand-attestations/attestation"
	"github.com/ruteri/brand-attestations/chains"
	"github.com/ruteri/brand-attestations/interfaces"
	"github.com/samber/lo"
)

// AttestationProvider is implemented by the HTTP client of the attestation
// service.
type AttestationProvider interface {
	// Create attests data as a record of type rt. The returned error covers
	// transport failures and rejected input; relay failures come back as a
	// Result with Success unset.
	Create(ctx context.Context, rt interfaces.RecordType, req *CreateAttestationRequest) (*attestation.Result, error)

	// Get fetches an archived record by attestation UID.
	Get(ctx context.Context, uid string) (*interfaces.AttestationRecord, error)

	// Chain describes the network the service attests on.
	Chain(ctx context.Context) (*ChainSummary, error)
}

// CreateAttestationRequest is the body of POST /api/attestations/{record_type}.
type CreateAttestationRequest struct {
	// Recipient defaults to the zero address.
	Recipient common.Address `json:"recipient"`

	// Data holds the record fields, e.g. {"overallScore":82,...} for brand_score.
	Data json.RawMessage `json:"data"`
}

// ChainSummary describes one configured network.
type ChainSummary struct {
	Key                   interfaces.ChainKey `json:"key"`
	ChainID               uint64              `json:"chain_id"`
	Name                  string              `json:"name"`
	EASAddress            common.Address      `json:"eas_address"`
	SchemaRegistryAddress common.Address      `json:"schema_registry_address"`
	ExplorerURL           string              `json:"explorer_url"`
	Family                chains.Family       `json:"family"`

	// Mode is set for the active network only.
	Mode attestation.Mode `json:"mode,omitempty"`
}

// NewChainSummary drops the RPC URL and schema table from cfg; RPC endpoints
// may embed provider keys.
func NewChainSummary(cfg chains.ChainConfig) ChainSummary {
	return ChainSummary{
		Key:                   cfg.Key,
		ChainID:               cfg.ChainID,
		Name:                  cfg.Name,
		EASAddress:            cfg.EASAddress,
		SchemaRegistryAddress: cfg.SchemaRegistryAddress,
		ExplorerURL:           cfg.ExplorerURL,
		Family:                cfg.Family,
	}
}

// SchemaInfo pairs a record type with its schema string and on-chain UID.
type SchemaInfo struct {
	RecordType interfaces.RecordType `json:"record_type"`
	Schema     string                `json:"schema"`
	UID        interfaces.SchemaID   `json:"uid"`
}

// SchemasResponse is returned by GET /api/schemas.
type SchemasResponse struct {
	Chain   interfaces.ChainKey `json:"chain"`
	Schemas []SchemaInfo        `json:"schemas"`
}

// NewSchemasResponse lists the schemas of cfg in record type order.
func NewSchemasResponse(cfg chains.ChainConfig) SchemasResponse {
	return SchemasResponse{
		Chain: cfg.Key,
		Schemas: lo.Map(interfaces.RecordTypes, func(rt interfaces.RecordType, _ int) SchemaInfo {
			return SchemaInfo{
				RecordType: rt,
				Schema:     interfaces.SchemaDefinitions[rt],
				UID:        cfg.Schemas[rt],
			}
		}),
	}
}
