// Package pow implements the registration proof-of-work solver: the CPU
// and GPU nonce search, the shared mining target, and the coordinator that
// keeps both backends pointed at the freshest chain block.
package pow

import (
	"math/big"

	"github.com/holiman/uint256"
)

// BlockContext is the mining target derived from a single chain
// observation: a block number, the ASCII-hex body of that block's hash
// (with the leading "0x" already stripped), and the difficulty in force
// for that block.
type BlockContext struct {
	BlockNumber uint64
	HashASCII   []byte
	Difficulty  *uint256.Int
}

// Solution is a (nonce, block, difficulty, seal) tuple that satisfies the
// difficulty predicate for the block it was mined against.
type Solution struct {
	Nonce       uint64
	BlockNumber uint64
	Difficulty  *uint256.Int
	Seal        [32]byte
}

// BestCandidate is the closest near-miss seen during a worker's sweep.
// It exists only to drive telemetry; it never gates correctness. Margin
// is kept as a math/big value rather than uint256.Int because seal *
// difficulty can reach 384 bits before the limit is subtracted back out,
// wider than uint256 can hold.
type BestCandidate struct {
	Margin *big.Int
	Seal   [32]byte
}
