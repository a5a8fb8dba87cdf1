package chains

import (
	"errors"
	"fmt"
	"sort"

	"github.com/ruteri/brand-attestations/interfaces"
	"github.com/samber/lo"
)

// DefaultChainKey is the network used when no selector is configured.
const DefaultChainKey interfaces.ChainKey = "base-sepolia"

var (
	// ErrUnknownChain is returned when the selector names no configured network.
	ErrUnknownChain = errors.New("unknown chain")

	// ErrUnknownChainID is returned by reverse lookups of unconfigured chain ids.
	ErrUnknownChainID = errors.New("unknown chain id")

	// ErrInvalidConfig is returned for network tables that break registry invariants.
	ErrInvalidConfig = errors.New("invalid chain configuration")
)

// Registry is an immutable lookup table of network configurations with one
// active network selected at construction.
type Registry struct {
	active interfaces.ChainKey
	byKey  map[interfaces.ChainKey]ChainConfig
	byID   map[uint64]interfaces.ChainKey
}

// NewRegistry validates configs and resolves the active network from selector.
// An empty selector resolves to DefaultChainKey; any other unknown selector fails.
func NewRegistry(selector string, configs []ChainConfig) (*Registry, error) {
	r := &Registry{
		byKey: make(map[interfaces.ChainKey]ChainConfig, len(configs)),
		byID:  make(map[uint64]interfaces.ChainKey, len(configs)),
	}

	for _, cfg := range configs {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		if _, exists := r.byKey[cfg.Key]; exists {
			return nil, fmt.Errorf("%w: duplicate chain key %s", ErrInvalidConfig, cfg.Key)
		}
		if other, exists := r.byID[cfg.ChainID]; exists {
			return nil, fmt.Errorf("%w: chain id %d used by both %s and %s", ErrInvalidConfig, cfg.ChainID, other, cfg.Key)
		}
		r.byKey[cfg.Key] = cfg.clone()
		r.byID[cfg.ChainID] = cfg.Key
	}

	active := interfaces.ChainKey(selector)
	if active == "" {
		active = DefaultChainKey
	}
	if _, ok := r.byKey[active]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownChain, selector)
	}
	r.active = active

	return r, nil
}

// NewDefaultRegistry is NewRegistry over DefaultChains.
func NewDefaultRegistry(selector string) (*Registry, error) {
	return NewRegistry(selector, DefaultChains())
}

// Validate checks a single configuration, including schema completeness.
func (c ChainConfig) Validate() error {
	if c.Key == "" {
		return fmt.Errorf("%w: chain %d has no key", ErrInvalidConfig, c.ChainID)
	}
	if c.ChainID == 0 {
		return fmt.Errorf("%w: chain %s has no chain id", ErrInvalidConfig, c.Key)
	}
	switch c.Family {
	case FamilyEASScan, FamilyGeneric:
	default:
		return fmt.Errorf("%w: chain %s has unknown explorer family %q", ErrInvalidConfig, c.Key, c.Family)
	}
	for _, rt := range interfaces.RecordTypes {
		if _, err := c.SchemaID(rt); err != nil {
			return err
		}
	}
	return nil
}

// Active returns the configuration of the selected network.
func (r *Registry) Active() ChainConfig {
	return r.byKey[r.active].clone()
}

// ActiveKey returns the selected network key.
func (r *Registry) ActiveKey() interfaces.ChainKey {
	return r.active
}

// Config returns the configuration of any known network.
func (r *Registry) Config(key interfaces.ChainKey) (ChainConfig, error) {
	cfg, ok := r.byKey[key]
	if !ok {
		return ChainConfig{}, fmt.Errorf("%w: %q", ErrUnknownChain, key)
	}
	return cfg.clone(), nil
}

// KeyForChainID maps a numeric chain id back to its key. Unknown ids fail.
func (r *Registry) KeyForChainID(id uint64) (interfaces.ChainKey, error) {
	key, ok := r.byID[id]
	if !ok {
		return "", fmt.Errorf("%w: %d", ErrUnknownChainID, id)
	}
	return key, nil
}

// ConfigForChainID is KeyForChainID followed by Config.
func (r *Registry) ConfigForChainID(id uint64) (ChainConfig, error) {
	key, err := r.KeyForChainID(id)
	if err != nil {
		return ChainConfig{}, err
	}
	return r.Config(key)
}

// ChainIDs returns every configured chain id in ascending order.
func (r *Registry) ChainIDs() []uint64 {
	ids := make([]uint64, 0, len(r.byID))
	for id := range r.byID {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Keys returns every configured network key ordered by chain id.
func (r *Registry) Keys() []interfaces.ChainKey {
	return lo.Map(r.ChainIDs(), func(id uint64, _ int) interfaces.ChainKey {
		return r.byID[id]
	})
}

// Configs returns every configuration ordered by chain id.
func (r *Registry) Configs() []ChainConfig {
	ids := r.ChainIDs()
	out := make([]ChainConfig, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.byKey[r.byID[id]].clone())
	}
	return out
}
