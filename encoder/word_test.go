package encoder

import (
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeUint(t *testing.T) {
	tests := []struct {
		name     string
		value    *big.Int
		expected string
	}{
		{
			name:     "zero",
			value:    big.NewInt(0),
			expected: strings.Repeat("0", 64),
		},
		{
			name:     "small",
			value:    big.NewInt(82),
			expected: strings.Repeat("0", 62) + "52",
		},
		{
			name:     "unix timestamp",
			value:    big.NewInt(1700000000),
			expected: strings.Repeat("0", 56) + "6553f100",
		},
		{
			name:     "max uint256",
			value:    new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1)),
			expected: strings.Repeat("f", 64),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			word := EncodeUint(tt.value)
			assert.Len(t, word, 64)
			assert.Equal(t, tt.expected, word)
		})
	}
}

func TestEncodeUint64MatchesEncodeUint(t *testing.T) {
	for _, v := range []uint64{0, 1, 100, 1 << 40, ^uint64(0)} {
		assert.Equal(t, EncodeUint(new(big.Int).SetUint64(v)), EncodeUint64(v))
	}
}

func TestEncodeAddress(t *testing.T) {
	addr := common.HexToAddress("0x00000000000000000000000000000000000000ff")
	assert.Equal(t, strings.Repeat("0", 62)+"ff", EncodeAddress(addr))

	addr = common.HexToAddress("0x4200000000000000000000000000000000000021")
	word := EncodeAddress(addr)
	assert.Len(t, word, 64)
	assert.Equal(t, strings.Repeat("0", 24)+"4200000000000000000000000000000000000021", word)

	assert.Equal(t, strings.Repeat("0", 64), EncodeAddress(common.Address{}))
}

func TestEncodeFixedBytes(t *testing.T) {
	t.Run("right padded", func(t *testing.T) {
		word, err := EncodeFixedBytes("0x1234")
		require.NoError(t, err)
		assert.Equal(t, "1234"+strings.Repeat("0", 60), word)
	})

	t.Run("prefix optional", func(t *testing.T) {
		withPrefix, err := EncodeFixedBytes("0xabcdef")
		require.NoError(t, err)
		withoutPrefix, err := EncodeFixedBytes("abcdef")
		require.NoError(t, err)
		assert.Equal(t, withPrefix, withoutPrefix)
	})

	t.Run("empty", func(t *testing.T) {
		word, err := EncodeFixedBytes("")
		require.NoError(t, err)
		assert.Equal(t, strings.Repeat("0", 64), word)
	})

	t.Run("exactly 32 bytes", func(t *testing.T) {
		full := strings.Repeat("ab", 32)
		word, err := EncodeFixedBytes(full)
		require.NoError(t, err)
		assert.Equal(t, full, word)
	})

	t.Run("33 bytes rejected", func(t *testing.T) {
		_, err := EncodeFixedBytes(strings.Repeat("ab", 33))
		assert.ErrorIs(t, err, ErrFixedBytesTooLong)
	})

	t.Run("odd length rejected", func(t *testing.T) {
		_, err := EncodeFixedBytes("0xabc")
		assert.ErrorIs(t, err, ErrInvalidHex)
	})

	t.Run("non hex rejected", func(t *testing.T) {
		_, err := EncodeFixedBytes("0xzz")
		assert.ErrorIs(t, err, ErrInvalidHex)
	})
}

func TestEncodeString(t *testing.T) {
	tests := []struct {
		name        string
		value       string
		length      uint64
		paddedBytes int
	}{
		{name: "empty", value: "", length: 0, paddedBytes: 0},
		{name: "short", value: "acme", length: 4, paddedBytes: 32},
		{name: "one word", value: strings.Repeat("x", 32), length: 32, paddedBytes: 32},
		{name: "spills into second word", value: strings.Repeat("x", 33), length: 33, paddedBytes: 64},
		{name: "multibyte utf8 counts bytes", value: "café", length: 5, paddedBytes: 32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded := EncodeString(tt.value)
			require.Len(t, encoded, 64+2*tt.paddedBytes)
			assert.Equal(t, EncodeUint64(tt.length), encoded[:64])
			assert.Zero(t, (len(encoded)/2)%WordSize, "length+payload must be word aligned")

			content := encoded[64:]
			raw := []byte(tt.value)
			if len(raw) > 0 {
				assert.True(t, strings.HasPrefix(content, common.Bytes2Hex(raw)))
			}
			assert.Equal(t, strings.Repeat("0", len(content)-2*len(raw)), content[2*len(raw):])
		})
	}
}
