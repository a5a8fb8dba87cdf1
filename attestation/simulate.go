package attestation

import (
	"crypto/rand"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ruteri/brand-attestations/chains"
	"github.com/ruteri/brand-attestations/encoder"
	"github.com/ruteri/brand-attestations/interfaces"
)

// simulated builds a record without any network I/O. Its shape matches a
// relay-backed record; UID and transaction hash are random 32-byte values.
func (c *Client) simulated(cfg chains.ChainConfig, rt interfaces.RecordType, schemaID interfaces.SchemaID, recipient common.Address, payload encoder.Payload) (*interfaces.AttestationRecord, error) {
	uid, err := randomHash()
	if err != nil {
		return nil, fmt.Errorf("could not generate attestation uid: %w", err)
	}
	txHash, err := randomHash()
	if err != nil {
		return nil, fmt.Errorf("could not generate transaction hash: %w", err)
	}

	return &interfaces.AttestationRecord{
		UID:           uid,
		TxHash:        txHash,
		Chain:         cfg.Key,
		ChainID:       cfg.ChainID,
		RecordType:    rt,
		SchemaID:      schemaID,
		Attester:      c.attester,
		Recipient:     recipient,
		ContentDigest: payload.Digest().Hex(),
		CreatedAt:     c.now().Unix(),
		ExplorerURL:   cfg.RecordURL(uid, txHash),
		Simulated:     true,
	}, nil
}

func randomHash() (string, error) {
	var b [common.HashLength]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	return hexutil.Encode(b[:]), nil
}
