// Package encoder turns typed attestation records into the 32-byte word layout
// an EAS-style attestation registry expects for their schemas.
//
// The word primitives (EncodeUint, EncodeAddress, EncodeFixedBytes,
// EncodeString) are pure functions. Encode dispatches on the concrete record
// type to one hand-written layout function per schema: fixed-size fields go to
// the head, every string puts an offset word in the head and its
// [length][padded bytes] pair in the tail, in declaration order.
//
// Only the schemas listed in interfaces.SchemaDefinitions are supported, and
// each layout function reads like its schema string.
package encoder
