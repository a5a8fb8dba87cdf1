// Package interfaces defines core interfaces and types for the attestation
// system, separating interface definitions from implementations.
//
// # Record Types
//
// RecordType tags one of the five supported schemas (brand identity, content
// check, brand score, voice fingerprint, brand health). SchemaDefinitions holds
// the schema string each one is registered under; the encoder emits fields in
// exactly that order.
//
// # Dispatch Interfaces
//
// Relay: the external service that signs and broadcasts attestations. The
// attestation client sends it a RelayRequest and turns the RelayReceipt into
// an AttestationRecord.
//
// ArchiveBackend: optional persistence of created AttestationRecords keyed by
// UID (file, S3, or a fan-out over several backends).
//
// # Identifier Types
//
// - ChainKey: human-readable network selector
// - SchemaID: 32-byte schema identifier, hex encoded in JSON and YAML
package interfaces
