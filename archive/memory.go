package archive

import (
	"context"
	"sync"

	"github.com/ruteri/brand-attestations/interfaces"
)

// MemoryBackend keeps records in process memory. Used for development and tests.
type MemoryBackend struct {
	mu      sync.RWMutex
	records map[string]interfaces.AttestationRecord
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{records: make(map[string]interfaces.AttestationRecord)}
}

func (b *MemoryBackend) Fetch(ctx context.Context, uid string) (*interfaces.AttestationRecord, error) {
	key, err := recordKey(uid)
	if err != nil {
		return nil, err
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	record, ok := b.records[key]
	if !ok {
		return nil, interfaces.ErrRecordNotFound
	}
	return &record, nil
}

func (b *MemoryBackend) Store(ctx context.Context, record *interfaces.AttestationRecord) error {
	key, err := recordKey(record.UID)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.records[key] = *record
	return nil
}

// Len returns the number of archived records.
func (b *MemoryBackend) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.records)
}

func (b *MemoryBackend) Available(ctx context.Context) bool { return true }

func (b *MemoryBackend) Name() string { return "memory" }

func (b *MemoryBackend) LocationURI() string { return "memory://" }
