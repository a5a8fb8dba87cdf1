package attestation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/ruteri/brand-attestations/chains"
	"github.com/ruteri/brand-attestations/encoder"
	"github.com/ruteri/brand-attestations/interfaces"
)

// Mode tells whether an attempt went through the relay or was simulated.
type Mode string

const (
	ModeRelay     Mode = "relay"
	ModeSimulated Mode = "simulated"
)

// Outcome labels how an attempt ended.
type Outcome string

const (
	OutcomeSuccess    Outcome = "success"
	OutcomeRelayError Outcome = "relay_error"
	OutcomeInvalid    Outcome = "invalid"
)

var (
	// ErrMisconfigured is returned by NewClient for option sets that cannot work.
	ErrMisconfigured = errors.New("attestation client misconfigured")

	// ErrNilRecord is returned by Create when no record is given.
	ErrNilRecord = errors.New("nil record")
)

// Recorder receives one observation per Create call.
type Recorder interface {
	ObserveAttestation(rt interfaces.RecordType, mode Mode, outcome Outcome)
}

// Result is what callers get back from Create: either a complete record or an
// error message, never both.
type Result struct {
	Success     bool                          `json:"success"`
	Attestation *interfaces.AttestationRecord `json:"attestation,omitempty"`
	Error       string                        `json:"error,omitempty"`
}

func failure(err error) Result {
	return Result{Success: false, Error: err.Error()}
}

// Options configures a Client.
type Options struct {
	// Registry supplies the active network. Required.
	Registry *chains.Registry

	// Relay signs and broadcasts. Used only when Credential is set.
	Relay interfaces.Relay

	// Credential is the relay signing credential. Empty selects simulation.
	Credential string

	// Attester is reported on simulated records and on relay receipts that
	// omit it.
	Attester common.Address

	// Archive, when set, receives every created record.
	Archive interfaces.ArchiveBackend

	Metrics  Recorder
	Observer Observer
	Log      *slog.Logger

	// Now defaults to time.Now.
	Now func() time.Time
}

// Client encodes records and dispatches them to the relay, or simulates the
// dispatch when no signing credential is configured.
type Client struct {
	registry *chains.Registry
	relay    interfaces.Relay
	simulate bool
	attester common.Address
	archive  interfaces.ArchiveBackend
	metrics  Recorder
	observer Observer
	log      *slog.Logger
	now      func() time.Time
}

// NewClient validates opts and returns a ready client.
func NewClient(opts Options) (*Client, error) {
	if opts.Registry == nil {
		return nil, fmt.Errorf("%w: no chain registry", ErrMisconfigured)
	}
	if opts.Credential != "" && opts.Relay == nil {
		return nil, fmt.Errorf("%w: signing credential set without a relay", ErrMisconfigured)
	}

	log := opts.Log
	if log == nil {
		log = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	c := &Client{
		registry: opts.Registry,
		relay:    opts.Relay,
		simulate: opts.Credential == "",
		attester: opts.Attester,
		archive:  opts.Archive,
		metrics:  opts.Metrics,
		observer: opts.Observer,
		log:      log.With("chain", opts.Registry.ActiveKey()),
		now:      now,
	}

	if c.simulate {
		c.log.Info("No signing credential configured, attestations will be simulated")
	}

	return c, nil
}

// Mode reports how Create dispatches.
func (c *Client) Mode() Mode {
	if c.simulate {
		return ModeSimulated
	}
	return ModeRelay
}

// Chain returns the active network configuration.
func (c *Client) Chain() chains.ChainConfig {
	return c.registry.Active()
}

// Create attests rec for recipient on the active network.
//
// Encoding preconditions (unsupported record, malformed fixed bytes, missing
// schema id) are returned as errors. Relay failures are reported through
// Result with Success unset. Concurrent calls are independent; two identical
// calls produce two records.
func (c *Client) Create(ctx context.Context, rec encoder.Record, recipient common.Address) (Result, error) {
	if rec == nil {
		return Result{}, ErrNilRecord
	}

	tracker := NewTracker(uuid.NewString(), c.observer)
	c.advance(tracker, StatusPreparing)

	rt := rec.Type()
	log := c.log.With("attempt", tracker.ID(), "recordType", rt)

	cfg := c.registry.Active()

	payload, err := encoder.Encode(rec)
	if err != nil {
		c.advance(tracker, StatusFailed)
		c.observe(rt, OutcomeInvalid)
		return Result{}, fmt.Errorf("could not encode %s: %w", rt, err)
	}

	schemaID, err := cfg.SchemaID(rt)
	if err != nil {
		c.advance(tracker, StatusFailed)
		c.observe(rt, OutcomeInvalid)
		return Result{}, err
	}

	c.advance(tracker, StatusSigning)

	var record *interfaces.AttestationRecord
	if c.simulate {
		record, err = c.simulated(cfg, rt, schemaID, recipient, payload)
		if err != nil {
			c.advance(tracker, StatusFailed)
			c.observe(rt, OutcomeRelayError)
			log.Error("Could not simulate attestation", "err", err)
			return failure(err), nil
		}
		c.advance(tracker, StatusConfirming)
		log.Info("Simulated attestation", "uid", record.UID, "txHash", record.TxHash)
	} else {
		receipt, err := c.relay.Attest(ctx, &interfaces.RelayRequest{
			RecordType: rt,
			ChainID:    cfg.ChainID,
			SchemaID:   schemaID,
			Recipient:  recipient,
			Data:       payload.String(),
			RefUID:     common.Hash{},
		})
		if err == nil && receipt == nil {
			err = errors.New("relay returned no receipt")
		}
		if err == nil && receipt.UID == "" {
			err = errors.New("relay receipt has no attestation uid")
		}
		if err != nil {
			c.advance(tracker, StatusFailed)
			c.observe(rt, OutcomeRelayError)
			log.Error("Relay rejected attestation", "err", err)
			return failure(err), nil
		}

		c.advance(tracker, StatusConfirming)
		record = c.fromReceipt(cfg, rt, schemaID, recipient, payload, receipt)
		log.Info("Attestation created", "uid", record.UID, "txHash", record.TxHash)
	}

	c.advance(tracker, StatusConfirmed)
	c.observe(rt, OutcomeSuccess)
	c.store(ctx, record)

	return Result{Success: true, Attestation: record}, nil
}

func (c *Client) fromReceipt(cfg chains.ChainConfig, rt interfaces.RecordType, schemaID interfaces.SchemaID, recipient common.Address, payload encoder.Payload, receipt *interfaces.RelayReceipt) *interfaces.AttestationRecord {
	attester := receipt.Attester
	if attester == (common.Address{}) {
		attester = c.attester
	}
	createdAt := receipt.Timestamp
	if createdAt == 0 {
		createdAt = c.now().Unix()
	}

	return &interfaces.AttestationRecord{
		UID:           receipt.UID,
		TxHash:        receipt.TxHash,
		Chain:         cfg.Key,
		ChainID:       cfg.ChainID,
		RecordType:    rt,
		SchemaID:      schemaID,
		Attester:      attester,
		Recipient:     recipient,
		ContentDigest: payload.Digest().Hex(),
		CreatedAt:     createdAt,
		ExplorerURL:   cfg.RecordURL(receipt.UID, receipt.TxHash),
	}
}

func (c *Client) store(ctx context.Context, record *interfaces.AttestationRecord) {
	if c.archive == nil {
		return
	}
	// The attestation exists regardless; archiving is best effort.
	if err := c.archive.Store(ctx, record); err != nil {
		c.log.Warn("Could not archive attestation", "uid", record.UID, "archive", c.archive.Name(), "err", err)
	}
}

func (c *Client) advance(t *Tracker, next Status) {
	if err := t.Transition(next); err != nil {
		c.log.Debug("Status transition rejected", "attempt", t.ID(), "err", err)
	}
}

func (c *Client) observe(rt interfaces.RecordType, outcome Outcome) {
	if c.metrics != nil {
		c.metrics.ObserveAttestation(rt, c.Mode(), outcome)
	}
}
