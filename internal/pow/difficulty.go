package pow

import (
	"math/big"

	"github.com/holiman/uint256"
)

// limitBig is 2^256 - 1, the fixed ceiling against which every seal is
// judged regardless of difficulty.
var limitBig = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))

// Meets reports whether seal satisfies difficulty: interpreting seal as a
// big-endian 256-bit integer, seal * difficulty must not exceed 2^256 - 1.
//
// difficulty is itself at most a u128, but the product can overflow a
// plain 256-bit multiply, so this uses uint256's overflow-checked
// MulOverflow rather than a naive Mul: the overflow flag alone is the
// predicate, since overflowing 256 bits is exactly how "product exceeds
// the limit" manifests once the low 256 bits are discarded.
func Meets(seal [32]byte, difficulty *uint256.Int) bool {
	sealInt := new(uint256.Int).SetBytes(seal[:])
	_, overflow := new(uint256.Int).MulOverflow(sealInt, difficulty)
	return !overflow
}

// Margin returns seal*difficulty - limit for a seal that does not meet
// difficulty, for ranking near-misses during progress reporting. The
// product can reach 384 bits (256 from the seal, 128 from the
// difficulty), past what uint256 can hold, so this path uses math/big;
// it runs once per failing nonce, well under the cost of the two hashes
// that produced the seal.
func Margin(seal [32]byte, difficulty *uint256.Int) (margin *big.Int, ok bool) {
	sealInt := new(big.Int).SetBytes(seal[:])
	product := new(big.Int).Mul(sealInt, difficulty.ToBig())
	if product.Cmp(limitBig) <= 0 {
		return nil, false
	}
	return new(big.Int).Sub(product, limitBig), true
}
