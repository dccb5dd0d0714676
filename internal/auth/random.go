package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// emailTokenLength is the number of random bytes in verification and
// password reset tokens.
const emailTokenLength = 32

// RandomToken returns a hex-encoded random token for email
// verification and password reset links.
func RandomToken() (string, error) {
	buf := make([]byte, emailTokenLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate random token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
