package flags

import (
	"log/slog"

	"github.com/ruteri/brand-attestations/archive"
	"github.com/ruteri/brand-attestations/attestation"
	"github.com/ruteri/brand-attestations/chains"
	"github.com/ruteri/brand-attestations/config"
	"github.com/ruteri/brand-attestations/interfaces"
	"github.com/ruteri/brand-attestations/metrics"
	"github.com/ruteri/brand-attestations/relay"
)

// Service bundles the components both binaries build from a Config.
type Service struct {
	Registry *chains.Registry
	Archive  interfaces.ArchiveBackend
	Client   *attestation.Client
}

// BuildService wires registry, archive, relay and attestation client. m may
// be nil.
func BuildService(cfg *config.Config, logger *slog.Logger, m *metrics.Metrics) (*Service, error) {
	registry, err := cfg.BuildRegistry()
	if err != nil {
		logger.Error("Failed to build chain registry", "err", err)
		return nil, err
	}

	opts := attestation.Options{
		Registry:   registry,
		Credential: cfg.RelayCredential,
		Attester:   cfg.Attester,
		Log:        logger,
	}

	svc := &Service{Registry: registry}

	if len(cfg.Archive) > 0 {
		store, err := archive.NewFactory(logger).MultiBackend(cfg.Archive)
		if err != nil {
			logger.Error("Failed to create archive", "err", err)
			return nil, err
		}
		logger.Info("Archiving attestations", "location", store.LocationURI())
		svc.Archive = store
		opts.Archive = store
	}

	if cfg.RelayURL != "" {
		relayClient := relay.NewClient(cfg.RelayURL, cfg.RelayCredential, cfg.RelayTimeout)
		if m != nil {
			relayClient.Metrics = m
		}
		opts.Relay = relayClient
	}

	if m != nil {
		opts.Metrics = m
	}

	svc.Client, err = attestation.NewClient(opts)
	if err != nil {
		logger.Error("Failed to create attestation client", "err", err)
		return nil, err
	}

	active := registry.Active()
	logger.Info("Attestation client ready", "chain", active.Key, "chainId", active.ChainID, "mode", svc.Client.Mode())
	return svc, nil
}
