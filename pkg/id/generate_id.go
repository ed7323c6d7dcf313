package id

import (
	"crypto/rand"
	"encoding/hex"
)

// NewToken64 returns 64 hex characters (256 bits), used for session ids.
func NewToken64() string {
	b := make([]byte, 32)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
