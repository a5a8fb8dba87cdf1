package chains

import (
	"fmt"
	"strings"
)

// AttestationURL links to an attestation. Generic networks have no attestation
// pages and fall back to the /tx/ shape; RecordURL picks the tx hash there.
func (c ChainConfig) AttestationURL(uid string) string {
	switch c.Family {
	case FamilyEASScan:
		return fmt.Sprintf("%s/attestation/view/%s", c.explorerBase(), uid)
	default:
		return c.TransactionURL(uid)
	}
}

// TransactionURL links to a transaction on the network's block explorer.
func (c ChainConfig) TransactionURL(hash string) string {
	return fmt.Sprintf("%s/tx/%s", c.explorerBase(), hash)
}

// RecordURL is the display link stored on an AttestationRecord: the
// attestation page where the family has one, the transaction page otherwise.
func (c ChainConfig) RecordURL(uid, txHash string) string {
	if c.Family == FamilyEASScan {
		return c.AttestationURL(uid)
	}
	return c.TransactionURL(txHash)
}

func (c ChainConfig) explorerBase() string {
	return strings.TrimSuffix(c.ExplorerURL, "/")
}
