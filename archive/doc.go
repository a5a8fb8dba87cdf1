// Package archive keeps a copy of every created attestation record, keyed by
// attestation UID, so the HTTP API can serve records without querying chain
// indexers.
//
// Backends are selected by location URI (see Factory.BackendFor) and combined
// with MultiBackend. Records are stored as JSON objects named {uid}.json.
package archive
