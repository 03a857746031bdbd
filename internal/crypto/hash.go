package crypto

import (
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/crypto/sha3"
)

// Hash256 returns SHA256 hash
func Hash256(data []byte) []byte {
	hash := sha256.Sum256(data)
	return hash[:]
}

// Hash256Hex returns hex-encoded SHA256 hash
func Hash256Hex(data []byte) string {
	return hex.EncodeToString(Hash256(data))
}

// Keccak256 returns Keccak-256 hash (Ethereum-style)
func Keccak256(data []byte) []byte {
	hash := sha3.NewLegacyKeccak256()
	hash.Write(data)
	return hash.Sum(nil)
}

// Keccak256Hex returns hex-encoded Keccak-256 hash
func Keccak256Hex(data []byte) string {
	return hex.EncodeToString(Keccak256(data))
}
