package uid

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateGameID returns a random 32-character hex game ID.
func GenerateGameID() string {
	bytes := make([]byte, 16)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}
