package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

const APIKeyPrefix = "ms_live_"

// GenerateAPIKey returns a new key (prefix + 64 hex chars) and its hash.
func GenerateAPIKey() (key, hash string, err error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", "", fmt.Errorf("generate api key: %w", err)
	}
	key = APIKeyPrefix + hex.EncodeToString(buf)
	return key, HashAPIKey(key), nil
}

// HashAPIKey is the hex sha256 stored in place of the key.
func HashAPIKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}
