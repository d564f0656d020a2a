package service

import (
	"context"
	"testing"
	"time"

	"github.com/opsgarden/admind/internal/admin/domain"
	"github.com/opsgarden/admind/pkg/apierr"
	"github.com/opsgarden/admind/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func registerTestUser(t *testing.T, env *testEnv, username string) domain.TokenPair {
	t.Helper()

	pair, err := env.Auth.Register(context.Background(), RegisterParams{
		Username:        username,
		Email:           username + "@example.com",
		Fullname:        "Test " + username,
		Password:        "hunter2!",
		ConfirmPassword: "hunter2!",
	})
	require.NoError(t, err)
	return pair
}

func TestRegister(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	env := newTestEnv(t)

	t.Run("creates the account under the default role", func(t *testing.T) {
		pair := registerTestUser(t, env, "alice")

		require.NotEmpty(t, pair.AccessToken)
		require.NotEmpty(t, pair.RefreshToken)
		require.NotEqual(t, pair.AccessToken, pair.RefreshToken)
		require.Equal(t, "alice", pair.Principal.Username)
		require.Equal(t, domain.RoleNameNormal, pair.Principal.Role.Name)

		// The default role grants masterData view and nothing on users.
		require.True(t, pair.Principal.Role.MasterData.View)
		require.False(t, pair.Principal.Role.User.Create)
	})

	t.Run("rejects a taken username", func(t *testing.T) {
		_, err := env.Auth.Register(ctx, RegisterParams{
			Username:        "alice",
			Password:        "pw",
			ConfirmPassword: "pw",
		})
		require.True(t, apierr.IsKind(err, apierr.KindConflict))
	})

	t.Run("rejects a taken email", func(t *testing.T) {
		_, err := env.Auth.Register(ctx, RegisterParams{
			Username:        "alice2",
			Email:           "alice@example.com",
			Password:        "pw",
			ConfirmPassword: "pw",
		})
		require.True(t, apierr.IsKind(err, apierr.KindConflict))
	})

	t.Run("rejects a mismatched confirmation", func(t *testing.T) {
		_, err := env.Auth.Register(ctx, RegisterParams{
			Username:        "bob",
			Password:        "pw1",
			ConfirmPassword: "pw2",
		})
		require.True(t, apierr.IsKind(err, apierr.KindValidation))
	})

	t.Run("requires username and password", func(t *testing.T) {
		_, err := env.Auth.Register(ctx, RegisterParams{Username: "  "})
		require.True(t, apierr.IsKind(err, apierr.KindValidation))
	})
}

func TestLogin(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	env := newTestEnv(t)
	registerTestUser(t, env, "carol")

	t.Run("valid credentials mint a pair", func(t *testing.T) {
		pair, err := env.Auth.Login(ctx, "carol", "hunter2!")
		require.NoError(t, err)
		require.NotEmpty(t, pair.AccessToken)

		principal, err := env.Auth.PrincipalFromAccessToken(pair.AccessToken)
		require.NoError(t, err)
		require.Equal(t, pair.Principal.UserID, principal.UserID)
		require.Equal(t, "carol", principal.Username)
	})

	t.Run("wrong password and unknown user are indistinguishable", func(t *testing.T) {
		_, errWrongPw := env.Auth.Login(ctx, "carol", "nope")
		_, errNoUser := env.Auth.Login(ctx, "nobody", "nope")

		require.True(t, apierr.IsKind(errWrongPw, apierr.KindNotFound))
		require.True(t, apierr.IsKind(errNoUser, apierr.KindNotFound))
		require.Equal(t, errWrongPw.Error(), errNoUser.Error())
	})

	t.Run("blank input is a validation error", func(t *testing.T) {
		_, err := env.Auth.Login(ctx, "", "")
		require.True(t, apierr.IsKind(err, apierr.KindValidation))
	})
}

func TestVerify(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	env := newTestEnv(t)
	pair := registerTestUser(t, env, "dave")

	t.Run("mints a fresh pair for a live user", func(t *testing.T) {
		fresh, err := env.Auth.Verify(ctx, pair.Principal.UserID)
		require.NoError(t, err)
		require.Equal(t, pair.Principal.UserID, fresh.Principal.UserID)
		require.NotEmpty(t, fresh.AccessToken)
	})

	t.Run("missing user is an internal error", func(t *testing.T) {
		_, err := env.Auth.Verify(ctx, "01K0000000000000000000000X")
		require.True(t, apierr.IsKind(err, apierr.KindInternal))
	})
}

func TestRefresh(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("rotates the allowlist entry", func(t *testing.T) {
		env := newTestEnv(t)
		pair := registerTestUser(t, env, "erin")

		rotated, err := env.Auth.Refresh(ctx, pair.RefreshToken)
		require.NoError(t, err)
		require.NotEqual(t, pair.RefreshToken, rotated.RefreshToken)
		require.Equal(t, pair.Principal.UserID, rotated.Principal.UserID)

		// The old token left the allowlist with the rotation.
		_, err = env.Auth.Refresh(ctx, pair.RefreshToken)
		require.True(t, apierr.IsKind(err, apierr.KindInternal))

		// The new one works.
		_, err = env.Auth.Refresh(ctx, rotated.RefreshToken)
		require.NoError(t, err)
	})

	t.Run("revoked token cannot refresh", func(t *testing.T) {
		env := newTestEnv(t)
		pair := registerTestUser(t, env, "frank")

		require.NoError(t, env.Auth.RevokeRefreshToken(ctx, pair.RefreshToken))

		_, err := env.Auth.Refresh(ctx, pair.RefreshToken)
		require.True(t, apierr.IsKind(err, apierr.KindInternal))
	})

	t.Run("expired allowlist row yields an expiry error", func(t *testing.T) {
		env := newTestEnv(t)
		pair := registerTestUser(t, env, "grace")

		// Rewind the allowlist row into the past. The token itself
		// still carries a valid signature, so only the row decides.
		hash := cryptox.FingerprintToken(pair.RefreshToken)
		rec, err := env.Store.RefreshTokens().GetRefreshRecordByHash(ctx, hash)
		require.NoError(t, err)
		require.NoError(t, env.Store.RefreshTokens().DeleteRefreshRecord(ctx, hash))
		rec.ExpiresAt = time.Now().UTC().Add(-time.Hour)
		require.NoError(t, env.Store.RefreshTokens().CreateRefreshRecord(ctx, rec))

		_, err = env.Auth.Refresh(ctx, pair.RefreshToken)
		require.True(t, apierr.IsKind(err, apierr.KindExpired))

		// The lazy check also dropped the row, so a retry finds nothing.
		_, err = env.Auth.Refresh(ctx, pair.RefreshToken)
		require.True(t, apierr.IsKind(err, apierr.KindInternal))
	})

	t.Run("empty token is a validation error", func(t *testing.T) {
		env := newTestEnv(t)
		_, err := env.Auth.Refresh(ctx, "")
		require.True(t, apierr.IsKind(err, apierr.KindValidation))
	})
}

func TestLogout(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("revokes the user's refresh tokens", func(t *testing.T) {
		env := newTestEnv(t)
		pair := registerTestUser(t, env, "heidi")

		require.NoError(t, env.Auth.Logout(ctx, pair.AccessToken))

		_, err := env.Auth.Refresh(ctx, pair.RefreshToken)
		require.True(t, apierr.IsKind(err, apierr.KindInternal))
		require.Equal(t, 0, env.Registry.Len())
	})

	t.Run("garbage access token is rejected", func(t *testing.T) {
		env := newTestEnv(t)
		err := env.Auth.Logout(ctx, "not-a-jwt")
		require.True(t, apierr.IsKind(err, apierr.KindValidation))
	})

	t.Run("empty access token is rejected", func(t *testing.T) {
		env := newTestEnv(t)
		err := env.Auth.Logout(ctx, "")
		require.True(t, apierr.IsKind(err, apierr.KindValidation))
	})
}

func TestRegistrySweep(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	env := newTestEnv(t)
	pair := registerTestUser(t, env, "ivan")

	hash := cryptox.FingerprintToken(pair.RefreshToken)
	require.Equal(t, 1, env.Registry.Len())

	// Nothing is due yet.
	env.Registry.sweep(time.Now())
	require.Equal(t, 1, env.Registry.Len())

	// Fast-forward past the refresh lifetime: the sweeper evicts both the
	// map entry and the persisted row without any client action.
	env.Registry.sweep(time.Now().Add(3 * time.Minute))
	require.Equal(t, 0, env.Registry.Len())

	_, err := env.Store.RefreshTokens().GetRefreshRecordByHash(ctx, hash)
	require.Error(t, err)

	_, err = env.Auth.Refresh(ctx, pair.RefreshToken)
	require.True(t, apierr.IsKind(err, apierr.KindInternal))
}

func TestRegistryWarm(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	env := newTestEnv(t)
	pair := registerTestUser(t, env, "judy")

	// Simulate a restart: a fresh registry over the same store.
	restarted := NewRegistry(env.Store, env.Auth.Logger, time.Minute)
	require.Equal(t, 0, restarted.Len())

	require.NoError(t, restarted.Warm(ctx))
	require.Equal(t, 1, restarted.Len())

	restarted.ForgetUser(pair.Principal.UserID)
	require.Equal(t, 0, restarted.Len())
}
