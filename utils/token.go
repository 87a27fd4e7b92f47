package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// GenerateTemporaryToken mints a single-use, purpose-bound token for email
// verification or password reset: raw random hex plus an expiry timestamp,
// both persisted on the user record.
func GenerateTemporaryToken(ttl time.Duration) (token string, expiry time.Time, err error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate token: %v", err)
	}
	return hex.EncodeToString(buf), time.Now().Add(ttl), nil
}
