package archive

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ruteri/brand-attestations/interfaces"
)

// FileBackend archives attestation records as JSON files on the local file system.
type FileBackend struct {
	baseDir     string
	log         *slog.Logger
	locationURI string
}

// NewFileBackend creates a file archive rooted at baseDir, creating it if needed.
func NewFileBackend(baseDir string, log *slog.Logger) (*FileBackend, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create archive directory: %w", err)
	}

	return &FileBackend{
		baseDir:     baseDir,
		log:         log,
		locationURI: fmt.Sprintf("file://%s", baseDir),
	}, nil
}

// Fetch reads the record archived under uid.
// Returns ErrRecordNotFound if no such record exists.
func (b *FileBackend) Fetch(ctx context.Context, uid string) (*interfaces.AttestationRecord, error) {
	key, err := recordKey(uid)
	if err != nil {
		return nil, err
	}
	filePath := filepath.Join(b.baseDir, key)

	data, err := os.ReadFile(filePath)
	if os.IsNotExist(err) {
		return nil, interfaces.ErrRecordNotFound
	} else if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	b.log.Debug("Fetched attestation from file",
		slog.String("path", filePath),
		slog.Int("size", len(data)))

	return unmarshalRecord(data)
}

// Store writes record under its UID. Storing the same UID twice overwrites;
// records are immutable so the content is identical.
func (b *FileBackend) Store(ctx context.Context, record *interfaces.AttestationRecord) error {
	key, err := recordKey(record.UID)
	if err != nil {
		return err
	}
	data, err := marshalRecord(record)
	if err != nil {
		return err
	}

	filePath := filepath.Join(b.baseDir, key)
	tmpPath := filePath + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := os.Rename(tmpPath, filePath); err != nil {
		return fmt.Errorf("failed to move file into place: %w", err)
	}

	b.log.Debug("Stored attestation in file",
		slog.String("path", filePath),
		slog.String("uid", record.UID))

	return nil
}

// Available checks if the archive directory still exists.
func (b *FileBackend) Available(ctx context.Context) bool {
	_, err := os.Stat(b.baseDir)
	if err != nil {
		b.log.Debug("File archive unavailable", "err", err)
		return false
	}
	return true
}

// Name returns a unique identifier for this backend.
func (b *FileBackend) Name() string {
	return fmt.Sprintf("file-%s", filepath.Base(b.baseDir))
}

// LocationURI returns the URI that identifies this backend.
func (b *FileBackend) LocationURI() string {
	return b.locationURI
}
