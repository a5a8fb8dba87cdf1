/*
Package api holds the HTTP contract of the attestation service: request and
response types, server configuration, and (in api/clients) a Go client.

# Endpoints

	POST /api/attestations/{record_type}   create an attestation
	GET  /api/attestations/{uid}           fetch an archived attestation
	GET  /api/chain                        active network
	GET  /api/chains/{chain_id}            look up a configured network by id
	GET  /api/schemas                      schema strings and UIDs on the active network

Create answers 200 with {"success":true,"attestation":{...}}, 502 with
{"success":false,"error":"..."} when the relay failed, and 400 for input that
cannot be encoded.

# Health

	GET /livez, /readyz, /drain, /undrain
*/
package api
