// Package clients provides a Go client for the attestation service HTTP API.
//
// AttestationClient covers creating attestations, fetching archived records
// and inspecting the active network. MockAttestationProvider stands in for it
// in tests.
package clients
