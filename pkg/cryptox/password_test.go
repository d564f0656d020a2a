package cryptox

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDigestPasswordIsDeterministic(t *testing.T) {
	t.Parallel()

	a := DigestPassword("pw1word")
	b := DigestPassword("pw1word")
	require.Equal(t, a, b)
	require.NotEmpty(t, a)
}

func TestDigestPasswordDiffersPerPassword(t *testing.T) {
	t.Parallel()

	require.NotEqual(t, DigestPassword("pw1word"), DigestPassword("pw2word"))
}

func TestVerifyPassword(t *testing.T) {
	t.Parallel()

	digest := DigestPassword("correct-horse")
	require.True(t, VerifyPassword("correct-horse", digest))
	require.False(t, VerifyPassword("wrong-horse", digest))
	require.False(t, VerifyPassword("correct-horse", "not-a-digest"))
}

func TestFingerprintToken(t *testing.T) {
	t.Parallel()

	fp := FingerprintToken("some.jwt.value")
	require.Len(t, fp, 43)
	require.Equal(t, fp, FingerprintToken("some.jwt.value"))
	require.NotEqual(t, fp, FingerprintToken("other.jwt.value"))
}
