// Package relay talks to the external service that signs and broadcasts
// attestations. The relay owns the signing key; this service only sends the
// encoded payload and the schema id it was encoded for.
//
//	POST {relay}/v1/attestations
//	Authorization: Bearer {credential}
//
//	{"recordType":"brand_score","chainId":84532,"schemaUid":"0x..",
//	 "recipient":"0x..","data":"0x..","refUid":"0x00.."}
//
// A successful response carries {"success":true,"attestation":{"uid","txHash",
// "attester","timestamp"}}; failures carry {"success":false,"error":".."}.
package relay
