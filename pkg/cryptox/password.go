package cryptox

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"

	"golang.org/x/crypto/pbkdf2"
)

// PBKDF2 parameters for the password digest. The digest is deliberately
// deterministic per password (fixed salt derived from the pepper): login
// compares digests by equality, so the same password must always produce
// the same digest.
const (
	digestIterations = 16384
	digestKeyLength  = 32
)

// DigestPassword derives a deterministic PBKDF2-SHA256 digest of password.
// The site pepper acts as the (fixed) salt.
func DigestPassword(password string) string {
	key := pbkdf2.Key(
		[]byte(password),
		[]byte("admind:"+GetPepper()),
		digestIterations,
		digestKeyLength,
		sha256.New,
	)
	return base64.RawStdEncoding.EncodeToString(key)
}

// VerifyPassword compares password against a stored digest in constant time.
func VerifyPassword(password, digest string) bool {
	computed := DigestPassword(password)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(digest)) == 1
}
