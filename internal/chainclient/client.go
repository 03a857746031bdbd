// Package chainclient defines the narrow surface the PoW solver consumes
// from the chain: four synchronous calls. Everything else about talking
// to the chain, the actual RPC/gRPC transport, the wallet's keys, the
// axon server, is an external collaborator outside this repository.
package chainclient

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/holiman/uint256"
)

// ErrTransientChain marks a retryable failure talking to the chain: a
// network error, or a null/empty block hash the chain should not have
// returned. RetryConstant gives up after its attempt budget and wraps
// the final failure with this sentinel so callers can still classify it.
var ErrTransientChain = errors.New("chainclient: transient chain error")

// Client is the four operations the solver consumes from the chain.
// BlockHash returns the chain's native "0x"-prefixed ASCII-hex form.
type Client interface {
	CurrentBlockNumber(ctx context.Context) (uint64, error)
	CurrentDifficulty(ctx context.Context) (*uint256.Int, error)
	BlockHash(ctx context.Context, blockNumber uint64) (string, error)
	WalletIsRegistered(ctx context.Context) (bool, error)
}

// RetryConstant retries fn up to attempts times with a fixed delay
// between tries, honoring ctx cancellation. The solver uses it for the
// block-context reads: the initial block number, the block hash (via
// FetchBlockHash), and the difficulty lookups.
func RetryConstant[T any](ctx context.Context, attempts int, delay time.Duration, fn func(ctx context.Context) (T, error)) (T, error) {
	var (
		result T
		err    error
	)
	for attempt := 1; attempt <= attempts; attempt++ {
		result, err = fn(ctx)
		if err == nil {
			return result, nil
		}
		if attempt == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		case <-time.After(delay):
		}
	}
	return result, fmt.Errorf("%w: after %d attempts: %v", ErrTransientChain, attempts, err)
}

// FetchBlockHash retries BlockHash, additionally treating an empty string
// as a transient failure: a chain that has not indexed a block's hash
// yet answers with "" rather than an error, and that must be retried
// rather than accepted as a valid zero-length hash.
func FetchBlockHash(ctx context.Context, c Client, blockNumber uint64, attempts int, delay time.Duration) (string, error) {
	return RetryConstant(ctx, attempts, delay, func(ctx context.Context) (string, error) {
		hash, err := c.BlockHash(ctx, blockNumber)
		if err != nil {
			return "", err
		}
		if hash == "" {
			return "", fmt.Errorf("empty block hash for block %d", blockNumber)
		}
		return hash, nil
	})
}
