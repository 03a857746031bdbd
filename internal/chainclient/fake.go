package chainclient

import (
	"context"
	"sync"

	"github.com/holiman/uint256"
)

// Fake is an in-memory Client used to drive the solver's end-to-end test
// scenarios deterministically: tests mutate it from a separate goroutine
// (to simulate a chain advancing, or a wallet becoming registered mid-run)
// while the coordinator polls it concurrently, so every field is guarded.
type Fake struct {
	mu          sync.Mutex
	blockNumber uint64
	hashes      map[uint64]string
	difficulty  *uint256.Int
	registered  bool

	// BlockHashErrs, if non-empty, is consumed front-to-back: each call to
	// BlockHash pops one error off the list and returns it instead of the
	// real hash. Simulates a transient network failure from the chain.
	BlockHashErrs []error

	// NullHashCount, if positive, makes BlockHash return "" (no error)
	// that many times before returning the real hash. Simulates a chain
	// that answers but has not indexed the block hash yet.
	NullHashCount int
}

// NewFake returns a Fake seeded at blockNumber with hash and difficulty.
func NewFake(blockNumber uint64, hash string, difficulty *uint256.Int) *Fake {
	return &Fake{
		blockNumber: blockNumber,
		hashes:      map[uint64]string{blockNumber: hash},
		difficulty:  difficulty,
	}
}

// Advance moves the chain tip to blockNumber with the given hash and
// difficulty, simulating a new block arriving.
func (f *Fake) Advance(blockNumber uint64, hash string, difficulty *uint256.Int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.blockNumber = blockNumber
	f.hashes[blockNumber] = hash
	f.difficulty = difficulty
}

// SetRegistered flips the wallet's registration flag.
func (f *Fake) SetRegistered(registered bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.registered = registered
}

func (f *Fake) CurrentBlockNumber(ctx context.Context) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.blockNumber, nil
}

func (f *Fake) CurrentDifficulty(ctx context.Context) (*uint256.Int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.difficulty.Clone(), nil
}

func (f *Fake) BlockHash(ctx context.Context, blockNumber uint64) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.BlockHashErrs) > 0 {
		err := f.BlockHashErrs[0]
		f.BlockHashErrs = f.BlockHashErrs[1:]
		return "", err
	}
	if f.NullHashCount > 0 {
		f.NullHashCount--
		return "", nil
	}
	return f.hashes[blockNumber], nil
}

func (f *Fake) WalletIsRegistered(ctx context.Context) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.registered, nil
}
