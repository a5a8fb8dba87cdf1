// Command attest encodes brand records and creates attestations from the
// command line.
//
// Without --server, create runs a local attestation client configured by the
// same ATTEST_* variables and flags as attestd. With --server it talks to a
// running attestd.
//
// Examples:
//
//	attest encode brand_score --data '{"overallScore":82,"subScores":[80,85,78,84],"timestamp":1700000000,"username":"alice","archetype":"The Creator"}'
//	attest --server http://127.0.0.1:8080 create brand_identity --data @identity.json
//	attest --chain localhost probe
package main
