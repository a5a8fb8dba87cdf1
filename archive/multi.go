package archive

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ruteri/brand-attestations/interfaces"
)

// MultiBackend archives to every available backend and fetches from the first
// one holding the record.
type MultiBackend struct {
	backends []interfaces.ArchiveBackend
	log      *slog.Logger
}

// NewMultiBackend creates a fan-out archive over backends.
func NewMultiBackend(backends []interfaces.ArchiveBackend, logger *slog.Logger) *MultiBackend {
	if logger == nil {
		logger = slog.Default()
	}
	return &MultiBackend{
		backends: backends,
		log:      logger,
	}
}

// Fetch tries each available backend in order. ErrRecordNotFound is returned
// only when every backend that answered reported the record missing.
func (m *MultiBackend) Fetch(ctx context.Context, uid string) (*interfaces.AttestationRecord, error) {
	start := time.Now()
	var errs []error
	notFound := 0

	for _, backend := range m.backends {
		if !backend.Available(ctx) {
			m.log.Debug("Backend unavailable",
				slog.String("backend_name", backend.Name()),
				slog.String("uid", uid))
			continue
		}

		record, err := backend.Fetch(ctx, uid)
		if err == nil {
			m.log.Debug("Fetched attestation",
				slog.String("backend_name", backend.Name()),
				slog.String("uid", uid),
				slog.Duration("duration", time.Since(start)))
			return record, nil
		}
		if errors.Is(err, ErrInvalidUID) {
			return nil, err
		}
		if errors.Is(err, interfaces.ErrRecordNotFound) {
			notFound++
		}

		errs = append(errs, fmt.Errorf("%s: %w", backend.Name(), err))
		m.log.Debug("Failed to fetch from backend",
			slog.String("backend_name", backend.Name()),
			slog.String("uid", uid),
			"err", err)
	}

	if len(errs) == 0 {
		return nil, ErrUnavailable
	}
	if notFound == len(errs) {
		return nil, interfaces.ErrRecordNotFound
	}

	m.log.Error("All backends failed to fetch attestation",
		slog.String("uid", uid),
		slog.Int("failed_backends", len(errs)),
		slog.Duration("duration", time.Since(start)))

	return nil, fmt.Errorf("all backends failed to fetch %s: %w", uid, errors.Join(errs...))
}

// Store writes to all available backends and succeeds if at least one did.
func (m *MultiBackend) Store(ctx context.Context, record *interfaces.AttestationRecord) error {
	start := time.Now()
	var errs []error
	stored := 0

	for _, backend := range m.backends {
		if !backend.Available(ctx) {
			m.log.Debug("Backend unavailable", slog.String("backend_name", backend.Name()))
			continue
		}

		if err := backend.Store(ctx, record); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", backend.Name(), err))
			m.log.Debug("Failed to store to backend",
				slog.String("backend_name", backend.Name()),
				"err", err)
			continue
		}
		stored++
	}

	if len(errs) == 0 && stored == 0 {
		return ErrUnavailable
	}
	if stored == 0 {
		m.log.Error("All backends failed to store attestation",
			slog.String("uid", record.UID),
			slog.Int("failed_backends", len(errs)),
			slog.Duration("duration", time.Since(start)))
		return fmt.Errorf("all backends failed to store %s: %w", record.UID, errors.Join(errs...))
	}

	m.log.Info("Archived attestation",
		slog.String("uid", record.UID),
		slog.Int("backends", stored),
		slog.Duration("duration", time.Since(start)))

	return nil
}

// Available checks if any backend is available.
func (m *MultiBackend) Available(ctx context.Context) bool {
	for _, backend := range m.backends {
		if backend.Available(ctx) {
			return true
		}
	}
	return false
}

// Name returns the name of this backend.
func (m *MultiBackend) Name() string {
	return "multi-archive"
}

// LocationURI combines the URIs of all backends.
func (m *MultiBackend) LocationURI() string {
	locations := make([]string, 0, len(m.backends))
	for _, backend := range m.backends {
		locations = append(locations, backend.LocationURI())
	}
	return "multi:[" + strings.Join(locations, ",") + "]"
}
