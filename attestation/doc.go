// Package attestation turns typed records into attestations on the active
// network.
//
// Client.Create encodes the record, resolves its schema id and then either
// hands the payload to the configured relay or, when no signing credential is
// configured, synthesizes a record of the same shape with random identifiers.
// Callers never need to special-case simulation; AttestationRecord.Simulated
// carries the provenance.
//
// Each attempt is followed by a Tracker through the advisory lifecycle
//
//	idle -> preparing -> signing -> confirming -> confirmed
//
// with failed reachable from any non-terminal state after preparing.
package attestation
