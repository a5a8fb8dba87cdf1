/*
Package httpserver serves the attestation API over HTTP.

Handler maps requests onto an attestation client, the chain registry and an
optional archive. Server wraps it with request logging, health endpoints,
pprof and a separate metrics listener.

# Status codes

POST /api/attestations/{record_type} answers:

  - 200 with {"success":true,"attestation":{...}}
  - 400 when the body or the record fields are invalid
  - 404 for an unknown record type
  - 413 when the body exceeds 1MB
  - 502 with {"success":false,"error":"..."} when the relay failed

# Draining

GET /drain flips /readyz to 503 so load balancers stop routing new requests;
GET /undrain reverts it. Server.Drain does the same on shutdown and then waits
out the configured drain period.
*/
package httpserver
