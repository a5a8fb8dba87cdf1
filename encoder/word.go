package encoder

import (
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// WordSize is the size of one ABI word in bytes.
const WordSize = 32

// wordHexLen is the length of one encoded word in hex characters.
const wordHexLen = 2 * WordSize

var (
	// ErrFixedBytesTooLong is returned when a fixed-bytes value does not fit a 32-byte slot.
	ErrFixedBytesTooLong = errors.New("fixed bytes value exceeds 32 bytes")

	// ErrInvalidHex is returned when a fixed-bytes value is not valid hex.
	ErrInvalidHex = errors.New("invalid hex string")
)

// EncodeUint encodes a non-negative integer as one big-endian word.
// Negative values and values wider than 256 bits are a caller error.
func EncodeUint(v *big.Int) string {
	return hex.EncodeToString(common.LeftPadBytes(v.Bytes(), WordSize))
}

// EncodeUint64 is EncodeUint for native unsigned integers.
func EncodeUint64(v uint64) string {
	return EncodeUint(new(big.Int).SetUint64(v))
}

// EncodeAddress places the 20 address bytes in the low-order end of a word.
func EncodeAddress(addr common.Address) string {
	return hex.EncodeToString(common.LeftPadBytes(addr.Bytes(), WordSize))
}

// EncodeFixedBytes right-pads a hex value (optionally 0x-prefixed) to one word.
// Values longer than 32 bytes are rejected rather than truncated.
func EncodeFixedBytes(value string) (string, error) {
	clean := strings.TrimPrefix(strings.TrimPrefix(value, "0x"), "0X")
	raw, err := hex.DecodeString(clean)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidHex, err)
	}
	if len(raw) > WordSize {
		return "", fmt.Errorf("%w: got %d bytes", ErrFixedBytesTooLong, len(raw))
	}

	return hex.EncodeToString(common.RightPadBytes(raw, WordSize)), nil
}

// EncodeString returns the length word followed by the UTF-8 bytes of s,
// right-padded to the next word boundary. The offset word pointing at it is
// emitted by the schema layout, not here.
func EncodeString(s string) string {
	raw := []byte(s)
	return EncodeUint64(uint64(len(raw))) + hex.EncodeToString(common.RightPadBytes(raw, paddedLen(len(raw))))
}

// paddedLen rounds n up to a multiple of WordSize.
func paddedLen(n int) int {
	return (n + WordSize - 1) / WordSize * WordSize
}
