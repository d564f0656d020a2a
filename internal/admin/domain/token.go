package domain

import "time"

// Principal is the authenticated identity snapshot embedded in both tokens.
// Authorization decisions read the Role copy here and never re-query the
// store, so role edits only propagate on refresh.
type Principal struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Fullname string `json:"fullname"`
	Avatar   string `json:"avatar,omitempty"`
	Role     Role   `json:"role"`
}

// TokenPair is what the auth endpoints return: the short-lived access JWT
// and the longer-lived refresh JWT, always issued together.
type TokenPair struct {
	Principal    Principal     `json:"userData"`
	AccessToken  string        `json:"accessToken"`
	RefreshToken string        `json:"refreshToken"`
	ExpiresIn    time.Duration `json:"-"`
}

// RefreshRecord is a persisted allowlist row. A refresh token mints a new
// pair iff its signature verifies AND a row with its fingerprint exists.
type RefreshRecord struct {
	ID        string
	UserID    string
	TokenHash string // SHA-256 fingerprint of the refresh token value
	ExpiresAt time.Time
	CreatedAt time.Time
}
