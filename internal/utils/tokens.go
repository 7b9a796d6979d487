package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// NewOpaqueID returns a random hex identifier, used for pending pull
// confirmation descriptors.
func NewOpaqueID(nBytes int) (string, error) {
	if nBytes <= 0 {
		nBytes = 16
	}
	b := make([]byte, nBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
