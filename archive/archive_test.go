package archive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ruteri/brand-attestations/interfaces"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testUID = "0x6e4851b1ee4ee826a06a4514895640816b4143bf2408c33e5c1263275daf53ce"

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testRecord(uid string) *interfaces.AttestationRecord {
	return &interfaces.AttestationRecord{
		UID:           uid,
		TxHash:        "0x4b3a1c2f2d6b1e8b6f3c2a1d9e8f7a6b5c4d3e2f1a0b9c8d7e6f5a4b3c2d1e0f",
		Chain:         "base-sepolia",
		ChainID:       84532,
		RecordType:    interfaces.BrandScoreType,
		SchemaID:      interfaces.SchemaID{0x01, 0x02},
		Attester:      common.HexToAddress("0x1111111111111111111111111111111111111111"),
		Recipient:     common.HexToAddress("0x2222222222222222222222222222222222222222"),
		ContentDigest: "0xdeadbeef",
		CreatedAt:     1700000000,
		ExplorerURL:   "https://base-sepolia.easscan.org/attestation/view/" + uid,
	}
}

func TestFileBackend(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "archive")
	backend, err := NewFileBackend(dir, testLogger())
	require.NoError(t, err)

	ctx := context.Background()
	assert.True(t, backend.Available(ctx))
	assert.Equal(t, "file-archive", backend.Name())
	assert.Equal(t, "file://"+dir, backend.LocationURI())

	_, err = backend.Fetch(ctx, testUID)
	assert.ErrorIs(t, err, interfaces.ErrRecordNotFound)

	record := testRecord(testUID)
	require.NoError(t, backend.Store(ctx, record))

	fetched, err := backend.Fetch(ctx, testUID)
	require.NoError(t, err)
	assert.Equal(t, record, fetched)

	// uids are case-insensitive
	upper := "0x6E4851B1EE4EE826A06A4514895640816B4143BF2408C33E5C1263275DAF53CE"
	fetched, err = backend.Fetch(ctx, upper)
	require.NoError(t, err)
	assert.Equal(t, record.UID, fetched.UID)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, testUID+".json", entries[0].Name())

	require.NoError(t, os.RemoveAll(dir))
	assert.False(t, backend.Available(ctx))
}

func TestRecordKey_RejectsNonUIDs(t *testing.T) {
	for _, uid := range []string{"", "0x", "../../etc/passwd", "0x1234", testUID + "00", "6e4851b1ee4ee826a06a4514895640816b4143bf2408c33e5c1263275daf53ce"} {
		t.Run(uid, func(t *testing.T) {
			_, err := recordKey(uid)
			assert.ErrorIs(t, err, ErrInvalidUID)
		})
	}

	backend := NewMemoryBackend()
	err := backend.Store(context.Background(), testRecord("0xuid"))
	assert.ErrorIs(t, err, ErrInvalidUID)
}

func TestMemoryBackend(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryBackend()

	record := testRecord(testUID)
	require.NoError(t, backend.Store(ctx, record))
	assert.Equal(t, 1, backend.Len())

	// stored records are copies
	record.TxHash = "0xchanged"
	fetched, err := backend.Fetch(ctx, testUID)
	require.NoError(t, err)
	assert.NotEqual(t, "0xchanged", fetched.TxHash)
}

// MockArchiveBackend implements interfaces.ArchiveBackend for testing
type MockArchiveBackend struct {
	mock.Mock
	name string
}

func (m *MockArchiveBackend) Fetch(ctx context.Context, uid string) (*interfaces.AttestationRecord, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*interfaces.AttestationRecord), args.Error(1)
}

func (m *MockArchiveBackend) Store(ctx context.Context, record *interfaces.AttestationRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockArchiveBackend) Available(ctx context.Context) bool {
	args := m.Called(ctx)
	return args.Bool(0)
}

func (m *MockArchiveBackend) Name() string {
	return m.name
}

func (m *MockArchiveBackend) LocationURI() string {
	return "mock://" + m.name
}

func TestMultiBackend_Available(t *testing.T) {
	tests := []struct {
		name     string
		backends []bool
		expected bool
	}{
		{name: "all backends available", backends: []bool{true, true}, expected: true},
		{name: "some backends available", backends: []bool{false, true, false}, expected: true},
		{name: "no backends available", backends: []bool{false, false}, expected: false},
		{name: "no backends", backends: []bool{}, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var backends []interfaces.ArchiveBackend
			for i, available := range tt.backends {
				m := &MockArchiveBackend{name: fmt.Sprintf("mock-%d", i)}
				m.On("Available", mock.Anything).Return(available).Maybe()
				backends = append(backends, m)
			}

			multi := NewMultiBackend(backends, testLogger())
			assert.Equal(t, tt.expected, multi.Available(context.Background()))
		})
	}
}

func TestMultiBackend_Fetch(t *testing.T) {
	record := testRecord(testUID)
	backendErr := errors.New("connection reset")

	tests := []struct {
		name        string
		setupMocks  func() []interfaces.ArchiveBackend
		expected    *interfaces.AttestationRecord
		expectedErr error
	}{
		{
			name: "first backend has the record",
			setupMocks: func() []interfaces.ArchiveBackend {
				m1 := &MockArchiveBackend{name: "m1"}
				m1.On("Available", mock.Anything).Return(true)
				m1.On("Fetch", mock.Anything, testUID).Return(record, nil)
				m2 := &MockArchiveBackend{name: "m2"}
				return []interfaces.ArchiveBackend{m1, m2}
			},
			expected: record,
		},
		{
			name: "falls back past unavailable and failing backends",
			setupMocks: func() []interfaces.ArchiveBackend {
				m1 := &MockArchiveBackend{name: "m1"}
				m1.On("Available", mock.Anything).Return(false)
				m2 := &MockArchiveBackend{name: "m2"}
				m2.On("Available", mock.Anything).Return(true)
				m2.On("Fetch", mock.Anything, testUID).Return(nil, backendErr)
				m3 := &MockArchiveBackend{name: "m3"}
				m3.On("Available", mock.Anything).Return(true)
				m3.On("Fetch", mock.Anything, testUID).Return(record, nil)
				return []interfaces.ArchiveBackend{m1, m2, m3}
			},
			expected: record,
		},
		{
			name: "missing everywhere",
			setupMocks: func() []interfaces.ArchiveBackend {
				m1 := &MockArchiveBackend{name: "m1"}
				m1.On("Available", mock.Anything).Return(true)
				m1.On("Fetch", mock.Anything, testUID).Return(nil, interfaces.ErrRecordNotFound)
				m2 := &MockArchiveBackend{name: "m2"}
				m2.On("Available", mock.Anything).Return(true)
				m2.On("Fetch", mock.Anything, testUID).Return(nil, interfaces.ErrRecordNotFound)
				return []interfaces.ArchiveBackend{m1, m2}
			},
			expectedErr: interfaces.ErrRecordNotFound,
		},
		{
			name: "backend failure is not reported as missing",
			setupMocks: func() []interfaces.ArchiveBackend {
				m1 := &MockArchiveBackend{name: "m1"}
				m1.On("Available", mock.Anything).Return(true)
				m1.On("Fetch", mock.Anything, testUID).Return(nil, interfaces.ErrRecordNotFound)
				m2 := &MockArchiveBackend{name: "m2"}
				m2.On("Available", mock.Anything).Return(true)
				m2.On("Fetch", mock.Anything, testUID).Return(nil, backendErr)
				return []interfaces.ArchiveBackend{m1, m2}
			},
			expectedErr: backendErr,
		},
		{
			name: "nothing available",
			setupMocks: func() []interfaces.ArchiveBackend {
				m1 := &MockArchiveBackend{name: "m1"}
				m1.On("Available", mock.Anything).Return(false)
				return []interfaces.ArchiveBackend{m1}
			},
			expectedErr: ErrUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backends := tt.setupMocks()
			multi := NewMultiBackend(backends, testLogger())

			fetched, err := multi.Fetch(context.Background(), testUID)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, fetched)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expected, fetched)
			}

			for _, b := range backends {
				b.(*MockArchiveBackend).AssertExpectations(t)
			}
		})
	}
}

func TestMultiBackend_Store(t *testing.T) {
	record := testRecord(testUID)

	t.Run("partial success", func(t *testing.T) {
		m1 := &MockArchiveBackend{name: "m1"}
		m1.On("Available", mock.Anything).Return(true)
		m1.On("Store", mock.Anything, record).Return(errors.New("disk full"))
		m2 := &MockArchiveBackend{name: "m2"}
		m2.On("Available", mock.Anything).Return(true)
		m2.On("Store", mock.Anything, record).Return(nil)
		m3 := &MockArchiveBackend{name: "m3"}
		m3.On("Available", mock.Anything).Return(false)

		multi := NewMultiBackend([]interfaces.ArchiveBackend{m1, m2, m3}, testLogger())
		require.NoError(t, multi.Store(context.Background(), record))

		m1.AssertExpectations(t)
		m2.AssertExpectations(t)
		m3.AssertNotCalled(t, "Store", mock.Anything, mock.Anything)
	})

	t.Run("all fail", func(t *testing.T) {
		m1 := &MockArchiveBackend{name: "m1"}
		m1.On("Available", mock.Anything).Return(true)
		m1.On("Store", mock.Anything, record).Return(errors.New("disk full"))

		multi := NewMultiBackend([]interfaces.ArchiveBackend{m1}, testLogger())
		err := multi.Store(context.Background(), record)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "m1: disk full")
	})

	t.Run("nothing available", func(t *testing.T) {
		m1 := &MockArchiveBackend{name: "m1"}
		m1.On("Available", mock.Anything).Return(false)

		multi := NewMultiBackend([]interfaces.ArchiveBackend{m1}, testLogger())
		assert.ErrorIs(t, multi.Store(context.Background(), record), ErrUnavailable)
	})

	t.Run("location uri", func(t *testing.T) {
		multi := NewMultiBackend([]interfaces.ArchiveBackend{
			&MockArchiveBackend{name: "a"},
			&MockArchiveBackend{name: "b"},
		}, testLogger())
		assert.Equal(t, "multi:[mock://a,mock://b]", multi.LocationURI())
	})
}
