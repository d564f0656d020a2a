package jwtx

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMalformed   = errors.New("jwtx: malformed token")
	ErrInvalidSig  = errors.New("jwtx: invalid signature")
	ErrIssuer      = errors.New("jwtx: issuer mismatch")
	ErrExpired     = errors.New("jwtx: token expired")
	ErrNotYetValid = errors.New("jwtx: token not yet valid")
)

// Signer signs Claims into a compact JWT.
type Signer interface {
	Sign(Claims) (string, error)
}

// Verifier validates a compact JWT and returns the claims if it's legit.
// Decode checks only the signature, for callers that establish liveness by
// other means (an allowlist row, say) and just need the payload back.
type Verifier interface {
	Verify(token string) (Claims, error)
	Decode(token string) (Claims, error)
}

// HS256Signer signs tokens with a shared HMAC-SHA256 secret. Access and
// refresh tokens use distinct secrets so one can never stand in for the
// other.
type HS256Signer struct {
	secret []byte
}

func NewSignerHS256(secret []byte) (*HS256Signer, error) {
	if len(secret) == 0 {
		return nil, errors.New("jwtx: empty HS256 secret")
	}
	return &HS256Signer{secret: secret}, nil
}

func (s *HS256Signer) Sign(claims Claims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// HS256Verifier validates HS256 tokens against a shared secret and an
// expected issuer.
type HS256Verifier struct {
	secret []byte
	issuer string
}

func NewVerifierHS256(secret []byte, issuer string) (*HS256Verifier, error) {
	if len(secret) == 0 {
		return nil, errors.New("jwtx: empty HS256 secret")
	}
	return &HS256Verifier{secret: secret, issuer: issuer}, nil
}

// Verify parses and validates tokenStr, returning its Claims.
func (v *HS256Verifier) Verify(tokenStr string) (Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		// Expiry is validated explicitly below so expired tokens surface as
		// ErrExpired rather than a generic parse failure.
		jwt.WithoutClaimsValidation(),
	)

	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenSignatureInvalid) {
			return Claims{}, ErrInvalidSig
		}
		return Claims{}, ErrMalformed
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Claims{}, ErrMalformed
	}

	if err := claims.ValidateIssuer(v.issuer); err != nil {
		return Claims{}, err
	}
	if err := claims.ValidateExpiry(); err != nil {
		return Claims{}, err
	}

	return *claims, nil
}

// Decode parses tokenStr and checks the signature but skips issuer and
// expiry validation. Used where the caller needs the payload of a token it
// already knows to be past or about to be replaced.
func (v *HS256Verifier) Decode(tokenStr string) (Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)

	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenSignatureInvalid) {
			return Claims{}, ErrInvalidSig
		}
		return Claims{}, ErrMalformed
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return Claims{}, ErrMalformed
	}
	return *claims, nil
}

// ExpiresIn reports the remaining lifetime of the claims at now, clamped to
// zero.
func ExpiresIn(c Claims, now time.Time) time.Duration {
	if c.ExpiresAt == nil {
		return 0
	}
	d := c.ExpiresAt.Time.Sub(now)
	if d < 0 {
		return 0
	}
	return d
}
