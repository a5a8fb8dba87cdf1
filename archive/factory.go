package archive

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/ruteri/brand-attestations/interfaces"
)

// Factory creates archive backends from location URIs.
type Factory struct {
	log *slog.Logger
}

func NewFactory(logger *slog.Logger) *Factory {
	return &Factory{log: logger}
}

// BackendFor creates a backend from a location URI.
//
// Supported schemes:
//   - file:///absolute/path or file://./relative/path
//   - s3://[ACCESS_KEY:SECRET_KEY@]bucket/prefix?region=us-east-1&endpoint=http://minio:9000
//   - memory://
func (f *Factory) BackendFor(locationURI string) (interfaces.ArchiveBackend, error) {
	u, err := url.Parse(locationURI)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLocationURI, err)
	}

	switch strings.ToLower(u.Scheme) {
	case "file":
		return f.createFileBackend(u)
	case "s3":
		return f.createS3Backend(u)
	case "memory":
		return NewMemoryBackend(), nil
	default:
		return nil, fmt.Errorf("%w: unsupported scheme %q", ErrInvalidLocationURI, u.Scheme)
	}
}

// MultiBackend creates a fan-out archive from several URIs. URIs that fail to
// parse are skipped with a warning; at least one must succeed.
func (f *Factory) MultiBackend(locationURIs []string) (*MultiBackend, error) {
	backends := make([]interfaces.ArchiveBackend, 0, len(locationURIs))
	for _, uri := range locationURIs {
		backend, err := f.BackendFor(uri)
		if err != nil {
			f.log.Warn("Failed to create archive backend", "err", err, slog.String("locationURI", uri))
			continue
		}
		backends = append(backends, backend)
	}

	if len(backends) == 0 {
		return nil, fmt.Errorf("%w: no valid archive backends in %v", ErrInvalidLocationURI, locationURIs)
	}

	return NewMultiBackend(backends, f.log), nil
}

// s3://[ACCESS_KEY:SECRET_KEY@]bucket/prefix?region=...&endpoint=...
func (f *Factory) createS3Backend(u *url.URL) (interfaces.ArchiveBackend, error) {
	bucketName := u.Host
	if bucketName == "" {
		return nil, fmt.Errorf("%w: missing bucket in %s", ErrInvalidLocationURI, u.Redacted())
	}
	prefix := strings.TrimPrefix(u.Path, "/")

	query := u.Query()
	region := query.Get("region")
	if region == "" {
		region = "us-east-1"
	}
	endpoint := query.Get("endpoint")

	var accessKey, secretKey string
	if u.User != nil {
		accessKey = u.User.Username()
		secretKey, _ = u.User.Password()
	}

	f.log.Debug("Creating S3 archive", slog.String("uri", u.Redacted()))
	return NewS3Backend(bucketName, prefix, region, endpoint, accessKey, secretKey, f.log)
}

// file:///absolute/path or file://./relative/path
func (f *Factory) createFileBackend(u *url.URL) (interfaces.ArchiveBackend, error) {
	path := u.Path
	if u.Host != "" {
		path = u.Host + "/" + strings.TrimPrefix(path, "/")
	}
	if path == "" {
		return nil, fmt.Errorf("%w: empty path in %s", ErrInvalidLocationURI, u.String())
	}

	f.log.Debug("Creating file archive", slog.String("path", path))
	return NewFileBackend(path, f.log)
}
