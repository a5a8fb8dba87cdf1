// Package chains holds the per-network configuration of the attestation
// service: chain id, RPC endpoint, EAS and schema registry addresses, explorer
// base URL and the schema UID of every record type.
//
// A Registry is built once at startup from a network table (DefaultChains,
// optionally patched with ApplyOverrides) and a selector. It is read-only
// afterwards and safe for concurrent use.
//
// Explorer links branch on the network Family only, so adding a network to an
// existing family is a table change:
//
//	easscan: {explorer}/attestation/view/{uid}
//	generic: {explorer}/tx/{hash}
//
// Probe and ProbeAll check RPC endpoints against the configured chain ids.
package chains
