package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
)

// tokenIDLength is the fixed length of session token identifiers.
const tokenIDLength = 20

const tokenAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// HashPassword returns the hex HMAC-SHA256 of the password under the
// process-wide secret. The hash is deterministic, so credential checks are a
// direct string comparison against the stored value.
func HashPassword(secret, password string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(password))
	return hex.EncodeToString(mac.Sum(nil))
}

// NewTokenID returns a random 20-character lowercase-alphanumeric id.
func NewTokenID() string {
	buf := make([]byte, tokenIDLength)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing means the process is unusable.
		panic("auth: reading random source: " + err.Error())
	}
	for i, b := range buf {
		buf[i] = tokenAlphabet[int(b)%len(tokenAlphabet)]
	}
	return string(buf)
}
