package pow

import (
	"encoding/hex"

	"github.com/gydschain/gydschain/internal/crypto"
)

// Seal computes the registration PoW seal for nonce against the ASCII-hex
// body of a block hash (the "0x" prefix already stripped).
//
// The pipeline is bit-exact with the on-chain verifier: the nonce is
// little-endian encoded then re-encoded as ASCII hex, concatenated with
// the block hash's own ASCII hex body, and that *ASCII* message is parsed
// back into binary before hashing. Hashing the ASCII bytes directly (skipping
// the decode step) produces a seal the verifier rejects.
func Seal(nonce uint64, hashASCII []byte) [32]byte {
	var nonceBytes [8]byte
	for i := range nonceBytes {
		nonceBytes[i] = byte(nonce >> (8 * uint(i)))
	}
	nonceHex := make([]byte, hex.EncodedLen(len(nonceBytes)))
	hex.Encode(nonceHex, nonceBytes[:])

	preSealASCII := make([]byte, 0, len(nonceHex)+len(hashASCII))
	preSealASCII = append(preSealASCII, nonceHex...)
	preSealASCII = append(preSealASCII, hashASCII...)

	preSeal := make([]byte, hex.DecodedLen(len(preSealASCII)))
	if _, err := hex.Decode(preSeal, preSealASCII); err != nil {
		// preSealASCII is built entirely from our own hex.Encode output plus
		// a caller-supplied ASCII-hex block hash; a malformed block hash is
		// a chain-client contract violation, not a recoverable solver state.
		panic("pow: block hash is not valid ASCII hex: " + err.Error())
	}

	h1 := crypto.Hash256(preSeal)

	var seal [32]byte
	copy(seal[:], crypto.Keccak256(h1))
	return seal
}
