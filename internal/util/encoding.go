package util

import "encoding/hex"

// EncodeHex encodes bytes to hex string with 0x prefix
func EncodeHex(data []byte) string {
	return "0x" + hex.EncodeToString(data)
}

// DecodeHex decodes hex string (with or without 0x prefix)
func DecodeHex(s string) ([]byte, error) {
	if len(s) >= 2 && s[0:2] == "0x" {
		s = s[2:]
	}
	return hex.DecodeString(s)
}

// CopyBytes returns a copy of a byte slice
func CopyBytes(data []byte) []byte {
	if data == nil {
		return nil
	}
	cpy := make([]byte, len(data))
	copy(cpy, data)
	return cpy
}
