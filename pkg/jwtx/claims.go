package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Default token TTLs. The refresh TTL is conventionally double the access
// TTL; services may override both.
const (
	DefaultAccessTokenTTL = 15 * time.Minute

	DefaultRefreshTokenTTL = 2 * DefaultAccessTokenTTL
)

// PermissionFlags is one resource category's action flags as embedded in the
// token payload.
type PermissionFlags struct {
	View   bool `json:"view"`
	Create bool `json:"create"`
	Update bool `json:"update"`
	Delete bool `json:"delete"`
}

// RoleSnapshot is the full role object carried inside every token so that
// authorization checks never round-trip to the store. The snapshot goes
// stale when the role changes; the window is bounded by the access TTL.
type RoleSnapshot struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	User       PermissionFlags `json:"user"`
	MasterData PermissionFlags `json:"masterData"`
}

// Claims are the token claims shared by access and refresh tokens. Subject
// holds the user id.
type Claims struct {
	jwt.RegisteredClaims

	Username string       `json:"username,omitempty"`
	Fullname string       `json:"fullname,omitempty"`
	Avatar   string       `json:"avatar,omitempty"`
	Role     RoleSnapshot `json:"role"`
}

// NewClaims builds minimally-correct claims for a principal snapshot.
func NewClaims(
	userID, username, fullname, avatar string,
	role RoleSnapshot,
	ttl time.Duration,
	issuer string,
	now time.Time,
) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		Username: username,
		Fullname: fullname,
		Avatar:   avatar,
		Role:     role,
	}
}

// WithoutTimestamps returns a copy of c stripped of exp/iat/nbf/jti. Refresh
// re-mints tokens from the remaining payload, so the snapshot survives but
// every emitted token gets fresh timestamps.
func (c Claims) WithoutTimestamps() Claims {
	c.ExpiresAt = nil
	c.IssuedAt = nil
	c.NotBefore = nil
	c.ID = ""
	return c
}

// NewJTI returns a URL-safe random identifier for the "jti" claim.
func NewJTI() string {
	var b [20]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}

// ValidateIssuer checks the issuer when one is expected.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil
	}
	if c.Issuer != expected {
		return ErrIssuer
	}
	return nil
}

// ValidateExpiry ensures the token hasn't expired (exp) and isn't used
// before it is valid (nbf).
func (c *Claims) ValidateExpiry() error {
	now := time.Now().UTC()

	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Time) {
		return ErrExpired
	}
	if c.NotBefore != nil && now.Before(c.NotBefore.Time) {
		return ErrNotYetValid
	}
	return nil
}
