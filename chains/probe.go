package chains

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ruteri/brand-attestations/interfaces"
	"golang.org/x/sync/errgroup"
)

// ErrChainIDMismatch is returned when an RPC endpoint serves a different network.
var ErrChainIDMismatch = errors.New("rpc chain id mismatch")

// maxConcurrentProbes bounds ProbeAll fan-out.
const maxConcurrentProbes = 4

// ChainIDReader is the subset of an RPC client Probe needs.
type ChainIDReader interface {
	ChainID(ctx context.Context) (*big.Int, error)
}

// RPCClient is a ChainIDReader that holds a connection.
type RPCClient interface {
	ChainIDReader
	Close()
}

// Dialer opens an RPC connection for ProbeAll.
type Dialer func(ctx context.Context, rpcURL string) (RPCClient, error)

// DialEthclient dials rpcURL with go-ethereum's ethclient.
func DialEthclient(ctx context.Context, rpcURL string) (RPCClient, error) {
	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, err
	}
	return client, nil
}

// Probe checks that reader serves the network described by cfg.
func Probe(ctx context.Context, reader ChainIDReader, cfg ChainConfig) error {
	id, err := reader.ChainID(ctx)
	if err != nil {
		return fmt.Errorf("could not query chain id for %s: %w", cfg.Key, err)
	}
	if !id.IsUint64() || id.Uint64() != cfg.ChainID {
		return fmt.Errorf("%w: %s expects %d, rpc reports %s", ErrChainIDMismatch, cfg.Key, cfg.ChainID, id)
	}
	return nil
}

// ProbeAll dials and probes every config concurrently and returns the
// per-network outcome; a nil entry means the endpoint checked out.
func ProbeAll(ctx context.Context, configs []ChainConfig, dial Dialer) map[interfaces.ChainKey]error {
	var (
		mu      sync.Mutex
		results = make(map[interfaces.ChainKey]error, len(configs))
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentProbes)

	for _, cfg := range configs {
		g.Go(func() error {
			err := probeOne(gctx, cfg, dial)

			mu.Lock()
			results[cfg.Key] = err
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func probeOne(ctx context.Context, cfg ChainConfig, dial Dialer) error {
	client, err := dial(ctx, cfg.RPCURL)
	if err != nil {
		return fmt.Errorf("could not dial %s: %w", cfg.RPCURL, err)
	}
	defer client.Close()

	return Probe(ctx, client, cfg)
}
