package chains

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ruteri/brand-attestations/interfaces"
)

// Override replaces selected fields of a built-in network configuration.
// Zero values leave the built-in value in place.
type Override struct {
	RPCURL                string                                         `yaml:"rpc_url"`
	ExplorerURL           string                                         `yaml:"explorer_url"`
	EASAddress            *common.Address                                `yaml:"eas_address"`
	SchemaRegistryAddress *common.Address                                `yaml:"schema_registry_address"`
	Schemas               map[interfaces.RecordType]interfaces.SchemaID `yaml:"schemas"`
}

// ApplyOverrides returns a copy of configs with overrides applied.
// Overrides for networks not present in configs are rejected.
func ApplyOverrides(configs []ChainConfig, overrides map[interfaces.ChainKey]Override) ([]ChainConfig, error) {
	out := make([]ChainConfig, len(configs))
	index := make(map[interfaces.ChainKey]int, len(configs))
	for i, cfg := range configs {
		out[i] = cfg.clone()
		index[cfg.Key] = i
	}

	for key, o := range overrides {
		i, ok := index[key]
		if !ok {
			return nil, fmt.Errorf("%w: override for %q", ErrUnknownChain, key)
		}

		cfg := &out[i]
		if o.RPCURL != "" {
			cfg.RPCURL = o.RPCURL
		}
		if o.ExplorerURL != "" {
			cfg.ExplorerURL = o.ExplorerURL
		}
		if o.EASAddress != nil {
			cfg.EASAddress = *o.EASAddress
		}
		if o.SchemaRegistryAddress != nil {
			cfg.SchemaRegistryAddress = *o.SchemaRegistryAddress
		}
		for rt, id := range o.Schemas {
			if _, err := interfaces.ParseRecordType(string(rt)); err != nil {
				return nil, fmt.Errorf("override for %s: %w", key, err)
			}
			if cfg.Schemas == nil {
				cfg.Schemas = make(map[interfaces.RecordType]interfaces.SchemaID)
			}
			cfg.Schemas[rt] = id
		}
	}

	return out, nil
}
