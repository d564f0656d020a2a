package cryptox

import (
	"crypto/sha256"
	"encoding/base64"
)

// FingerprintToken returns a deterministic SHA-256 fingerprint of a token
// value. Refresh tokens are stored and looked up by fingerprint so the
// allowlist never holds the raw token.
//
// The fingerprint is a base64url string (43 chars).
func FingerprintToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
