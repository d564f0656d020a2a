package jwtx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func testClaims(ttl time.Duration) Claims {
	role := RoleSnapshot{
		ID:   "01J0ROLE",
		Name: "administrator",
		User: PermissionFlags{View: true, Create: true, Update: true, Delete: true},
		MasterData: PermissionFlags{
			View: true, Create: true, Update: true, Delete: true,
		},
	}
	return NewClaims("01J0USER", "alice", "Alice", "", role, ttl, "admind-test", time.Now())
}

func TestSignAndVerifyRoundTrip(t *testing.T) {
	t.Parallel()

	signer, err := NewSignerHS256([]byte("access-secret"))
	require.NoError(t, err)
	verifier, err := NewVerifierHS256([]byte("access-secret"), "admind-test")
	require.NoError(t, err)

	tok, err := signer.Sign(testClaims(time.Minute))
	require.NoError(t, err)

	claims, err := verifier.Verify(tok)
	require.NoError(t, err)
	require.Equal(t, "01J0USER", claims.Subject)
	require.Equal(t, "alice", claims.Username)
	require.Equal(t, "administrator", claims.Role.Name)
	require.True(t, claims.Role.MasterData.Delete)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	t.Parallel()

	signer, _ := NewSignerHS256([]byte("access-secret"))
	verifier, _ := NewVerifierHS256([]byte("refresh-secret"), "admind-test")

	tok, err := signer.Sign(testClaims(time.Minute))
	require.NoError(t, err)

	_, err = verifier.Verify(tok)
	require.ErrorIs(t, err, ErrInvalidSig)
}

func TestVerifyRejectsExpired(t *testing.T) {
	t.Parallel()

	signer, _ := NewSignerHS256([]byte("s"))
	verifier, _ := NewVerifierHS256([]byte("s"), "admind-test")

	tok, err := signer.Sign(testClaims(-time.Minute))
	require.NoError(t, err)

	_, err = verifier.Verify(tok)
	require.ErrorIs(t, err, ErrExpired)

	// Decode still yields the payload.
	claims, err := verifier.Decode(tok)
	require.NoError(t, err)
	require.Equal(t, "alice", claims.Username)
}

func TestVerifyRejectsWrongIssuer(t *testing.T) {
	t.Parallel()

	signer, _ := NewSignerHS256([]byte("s"))
	verifier, _ := NewVerifierHS256([]byte("s"), "someone-else")

	tok, err := signer.Sign(testClaims(time.Minute))
	require.NoError(t, err)

	_, err = verifier.Verify(tok)
	require.ErrorIs(t, err, ErrIssuer)
}

func TestWithoutTimestamps(t *testing.T) {
	t.Parallel()

	c := testClaims(time.Minute)
	stripped := c.WithoutTimestamps()

	require.Nil(t, stripped.ExpiresAt)
	require.Nil(t, stripped.IssuedAt)
	require.Nil(t, stripped.NotBefore)
	require.Empty(t, stripped.ID)
	require.Equal(t, c.Username, stripped.Username)
	require.Equal(t, c.Role, stripped.Role)
}

func TestExpiresIn(t *testing.T) {
	t.Parallel()

	now := time.Now()
	c := testClaims(time.Minute)
	require.InDelta(t, time.Minute, ExpiresIn(c, now), float64(2*time.Second))
	require.Zero(t, ExpiresIn(c, now.Add(2*time.Minute)))
	require.Zero(t, ExpiresIn(Claims{}, now))
}
