// Command attestd serves the brand attestation HTTP API.
//
// Settings come from ATTEST_* environment variables; flags override them.
// Without a relay credential the service simulates attestations and reports
// mode "simulated" on /api/chain.
//
// Example:
//
//	attestd --chain base --relay-url https://relay.example --relay-credential $TOKEN \
//	    --archive file:///var/lib/attestd --archive s3://attestations/prod?region=us-east-1
package main
