package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ruteri/brand-attestations/chains"
	"github.com/ruteri/brand-attestations/interfaces"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is returned for settings that contradict each other.
var ErrInvalid = errors.New("invalid configuration")

// Config holds the attestation service settings.
type Config struct {
	// Chain selects the active network by key. Empty selects the default.
	Chain string `env:"ATTEST_CHAIN"`

	// RelayURL and RelayCredential enable relay dispatch. Without a
	// credential the service runs in simulation mode.
	RelayURL        string        `env:"ATTEST_RELAY_URL"`
	RelayCredential string        `env:"ATTEST_RELAY_CREDENTIAL"`
	RelayTimeout    time.Duration `env:"ATTEST_RELAY_TIMEOUT" envDefault:"30s"`

	// Attester is reported for simulated attestations and for relay
	// receipts that omit it.
	Attester common.Address `env:"ATTEST_ATTESTER"`

	// ChainsFile points at a YAML file of per-network overrides.
	ChainsFile string `env:"ATTEST_CHAINS_FILE"`

	// Archive lists archive location URIs (file://, s3://, memory://).
	Archive []string `env:"ATTEST_ARCHIVE" envSeparator:","`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}

// Validate checks settings that cannot be checked field by field.
func (c *Config) Validate() error {
	if c.RelayCredential != "" && c.RelayURL == "" {
		return fmt.Errorf("%w: relay credential set without relay url", ErrInvalid)
	}
	if c.RelayTimeout < 0 {
		return fmt.Errorf("%w: negative relay timeout", ErrInvalid)
	}
	return nil
}

// ChainsFile is the layout of the YAML overrides file:
//
//	chains:
//	  base:
//	    rpc_url: https://base.example/rpc
//	    schemas:
//	      brand_score: "0x..."
type ChainsFile struct {
	Chains map[interfaces.ChainKey]chains.Override `yaml:"chains"`
}

// LoadChainOverrides reads per-network overrides from a YAML file.
func LoadChainOverrides(path string) (map[interfaces.ChainKey]chains.Override, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read chains file: %w", err)
	}

	var f ChainsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse chains file: %w", err)
	}
	return f.Chains, nil
}

// BuildRegistry applies the overrides file, if any, to the built-in network
// table and selects the active network.
func (c *Config) BuildRegistry() (*chains.Registry, error) {
	configs := chains.DefaultChains()
	if c.ChainsFile != "" {
		overrides, err := LoadChainOverrides(c.ChainsFile)
		if err != nil {
			return nil, err
		}
		if configs, err = chains.ApplyOverrides(configs, overrides); err != nil {
			return nil, err
		}
	}
	return chains.NewRegistry(c.Chain, configs)
}
