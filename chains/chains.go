package chains

import (
	"fmt"
	"maps"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ruteri/brand-attestations/interfaces"
)

// Family groups networks whose explorers share a URL shape.
type Family string

const (
	// FamilyEASScan networks have an easscan deployment with attestation pages.
	FamilyEASScan Family = "easscan"
	// FamilyGeneric networks only have a block explorer with /tx/{hash} pages.
	FamilyGeneric Family = "generic"
)

// ChainConfig holds every per-network constant the attestation client needs.
type ChainConfig struct {
	ChainID               uint64                                         `json:"chain_id"`
	Key                   interfaces.ChainKey                            `json:"key"`
	Name                  string                                         `json:"name"`
	RPCURL                string                                         `json:"rpc_url"`
	EASAddress            common.Address                                 `json:"eas_address"`
	SchemaRegistryAddress common.Address                                 `json:"schema_registry_address"`
	ExplorerURL           string                                         `json:"explorer_url"`
	Family                Family                                         `json:"family"`
	Schemas               map[interfaces.RecordType]interfaces.SchemaID `json:"schemas"`
}

// SchemaID returns the schema identifier registered for rt on this chain.
func (c ChainConfig) SchemaID(rt interfaces.RecordType) (interfaces.SchemaID, error) {
	id, ok := c.Schemas[rt]
	if !ok || id.IsZero() {
		return interfaces.SchemaID{}, fmt.Errorf("%w: no schema for %s on %s", ErrInvalidConfig, rt, c.Key)
	}
	return id, nil
}

func (c ChainConfig) clone() ChainConfig {
	c.Schemas = maps.Clone(c.Schemas)
	return c
}

// DeriveSchemaID computes the schema UID the way the EAS SchemaRegistry does:
// keccak256(abi.encodePacked(schema, resolver, revocable)).
func DeriveSchemaID(schema string, resolver common.Address, revocable bool) interfaces.SchemaID {
	packed := make([]byte, 0, len(schema)+common.AddressLength+1)
	packed = append(packed, schema...)
	packed = append(packed, resolver.Bytes()...)
	if revocable {
		packed = append(packed, 1)
	} else {
		packed = append(packed, 0)
	}
	return interfaces.SchemaID(crypto.Keccak256Hash(packed))
}

// DefaultSchemas derives the UID of every record schema registered without a
// resolver and as revocable.
func DefaultSchemas() map[interfaces.RecordType]interfaces.SchemaID {
	schemas := make(map[interfaces.RecordType]interfaces.SchemaID, len(interfaces.RecordTypes))
	for _, rt := range interfaces.RecordTypes {
		schemas[rt] = DeriveSchemaID(interfaces.SchemaDefinitions[rt], common.Address{}, true)
	}
	return schemas
}

// OP-stack chains expose EAS as predeploys.
var (
	opStackEAS            = common.HexToAddress("0x4200000000000000000000000000000000000021")
	opStackSchemaRegistry = common.HexToAddress("0x4200000000000000000000000000000000000020")
)

// DefaultChains returns the built-in network table.
func DefaultChains() []ChainConfig {
	return []ChainConfig{
		{
			ChainID:               1,
			Key:                   "ethereum",
			Name:                  "Ethereum Mainnet",
			RPCURL:                "https://cloudflare-eth.com",
			EASAddress:            common.HexToAddress("0xA1207F3BBa224E2c9c3c6D5aF63D0eb1582Ce587"),
			SchemaRegistryAddress: common.HexToAddress("0xA7b39296258348C78294F95B872b282326A97BDF"),
			ExplorerURL:           "https://easscan.org",
			Family:                FamilyEASScan,
			Schemas:               DefaultSchemas(),
		},
		{
			ChainID:               11155111,
			Key:                   "sepolia",
			Name:                  "Sepolia",
			RPCURL:                "https://rpc.sepolia.org",
			EASAddress:            common.HexToAddress("0xC2679fBD37d54388Ce493F1DB75320D236e1815e"),
			SchemaRegistryAddress: common.HexToAddress("0x0a7E2Ff54e76B8E6659aedc9103FB21c038050D0"),
			ExplorerURL:           "https://sepolia.easscan.org",
			Family:                FamilyEASScan,
			Schemas:               DefaultSchemas(),
		},
		{
			ChainID:               8453,
			Key:                   "base",
			Name:                  "Base",
			RPCURL:                "https://mainnet.base.org",
			EASAddress:            opStackEAS,
			SchemaRegistryAddress: opStackSchemaRegistry,
			ExplorerURL:           "https://base.easscan.org",
			Family:                FamilyEASScan,
			Schemas:               DefaultSchemas(),
		},
		{
			ChainID:               84532,
			Key:                   "base-sepolia",
			Name:                  "Base Sepolia",
			RPCURL:                "https://sepolia.base.org",
			EASAddress:            opStackEAS,
			SchemaRegistryAddress: opStackSchemaRegistry,
			ExplorerURL:           "https://base-sepolia.easscan.org",
			Family:                FamilyEASScan,
			Schemas:               DefaultSchemas(),
		},
		{
			ChainID:               10,
			Key:                   "optimism",
			Name:                  "OP Mainnet",
			RPCURL:                "https://mainnet.optimism.io",
			EASAddress:            opStackEAS,
			SchemaRegistryAddress: opStackSchemaRegistry,
			ExplorerURL:           "https://optimism.easscan.org",
			Family:                FamilyEASScan,
			Schemas:               DefaultSchemas(),
		},
		{
			ChainID:               42161,
			Key:                   "arbitrum",
			Name:                  "Arbitrum One",
			RPCURL:                "https://arb1.arbitrum.io/rpc",
			EASAddress:            common.HexToAddress("0xbD75f629A22Dc1ceD33dDA0b68c546A1c035c458"),
			SchemaRegistryAddress: common.HexToAddress("0xA310da9c5B885E7fb3fbA9D66E9Ba6Df512b78eB"),
			ExplorerURL:           "https://arbitrum.easscan.org",
			Family:                FamilyEASScan,
			Schemas:               DefaultSchemas(),
		},
		{
			// Local dev node (anvil / geth --dev). Contract addresses are whatever the
			// local deployment produced and are normally set through overrides.
			ChainID:     1337,
			Key:         "localhost",
			Name:        "Local Devnet",
			RPCURL:      "http://127.0.0.1:8545",
			ExplorerURL: "http://127.0.0.1:4000",
			Family:      FamilyGeneric,
			Schemas:     DefaultSchemas(),
		},
	}
}
