package pow

import (
	"sync"

	"github.com/holiman/uint256"

	"github.com/gydschain/gydschain/internal/util"
)

// BlockState is the single piece of mutable state shared between the
// coordinator and every worker: the block currently being mined against.
// The coordinator is the sole writer; workers only ever Snapshot it.
//
// Difficulty is kept packed as two 32-bit halves so the whole triple can
// be copied out under one lock acquisition with no torn reads. The pack
// truncates to 64 bits: difficulties above 2^64-1 are not representable
// by this state, matching the admission target's practical range.
type BlockState struct {
	mu          sync.RWMutex
	blockNumber uint64
	hashASCII   []byte
	diffHigh    uint32
	diffLow     uint32
}

// NewBlockState returns an empty BlockState; callers must Update it before
// any worker calls Snapshot.
func NewBlockState() *BlockState {
	return &BlockState{}
}

// Update overwrites all three fields atomically with respect to Snapshot.
func (s *BlockState) Update(ctx BlockContext) {
	high, low := packDifficulty(ctx.Difficulty)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.blockNumber = ctx.BlockNumber
	s.hashASCII = append(s.hashASCII[:0], ctx.HashASCII...)
	s.diffHigh = high
	s.diffLow = low
}

// Snapshot returns local copies of the block number, the block hash's
// ASCII-hex body, and the unpacked difficulty, all read under one lock
// acquisition so no caller ever observes a partially updated triple.
func (s *BlockState) Snapshot() (blockNumber uint64, hashASCII []byte, difficulty *uint256.Int) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.blockNumber, util.CopyBytes(s.hashASCII), unpackDifficulty(s.diffHigh, s.diffLow)
}

// packDifficulty splits a difficulty into its high and low 32-bit halves.
func packDifficulty(difficulty *uint256.Int) (high, low uint32) {
	v := difficulty.Uint64()
	return uint32(v >> 32), uint32(v & 0xFFFFFFFF)
}

// unpackDifficulty reassembles a difficulty from its packed halves.
func unpackDifficulty(high, low uint32) *uint256.Int {
	v := (uint64(high) << 32) | uint64(low)
	return new(uint256.Int).SetUint64(v)
}
