package httpx

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/opsgarden/admind/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, secret []byte, ttl time.Duration) string {
	t.Helper()

	signer, err := jwtx.NewSignerHS256(secret)
	require.NoError(t, err)

	claims := jwtx.NewClaims("user-1", "alice", "Alice A", "",
		jwtx.RoleSnapshot{ID: "role-1", Name: "tester", User: jwtx.PermissionFlags{View: true}},
		ttl, "test-issuer", time.Now())

	token, err := signer.Sign(claims)
	require.NoError(t, err)
	return token
}

func TestAuthnMiddleware(t *testing.T) {
	t.Parallel()

	secret := []byte("authn-test-secret")
	verifier, err := jwtx.NewVerifierHS256(secret, "test-issuer")
	require.NoError(t, err)

	var gotUserID string
	handler := AuthnMiddleware(verifier)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = UserIDFromContext(r.Context())
		claims, ok := ClaimsFromContext(r.Context())
		require.True(t, ok)
		require.Equal(t, "alice", claims.Username)
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("valid token passes identity through", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+signedToken(t, secret, time.Minute))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "user-1", gotUserID)
	})

	t.Run("missing header is unauthorized", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Contains(t, rec.Header().Get("WWW-Authenticate"), "invalid_token")
	})

	t.Run("expired token is unauthorized", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+signedToken(t, secret, -time.Minute))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong secret is unauthorized", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+signedToken(t, []byte("other"), time.Minute))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRequirePermission(t *testing.T) {
	t.Parallel()

	secret := []byte("authz-test-secret")
	verifier, err := jwtx.NewVerifierHS256(secret, "test-issuer")
	require.NoError(t, err)

	serve := func(t *testing.T, allow PermissionFunc, token string) *httptest.ResponseRecorder {
		t.Helper()

		h := Chain(okHandler(), AuthnMiddleware(verifier), RequirePermission(allow))
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	token := signedToken(t, secret, time.Minute)

	t.Run("grant passes through", func(t *testing.T) {
		rec := serve(t, func(c jwtx.Claims) (bool, error) { return c.Role.User.View, nil }, token)
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("denial is forbidden", func(t *testing.T) {
		rec := serve(t, func(c jwtx.Claims) (bool, error) { return c.Role.User.Delete, nil }, token)
		require.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("malformed check fails closed", func(t *testing.T) {
		rec := serve(t, func(c jwtx.Claims) (bool, error) { return true, errors.New("bad check") }, token)
		require.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("unauthenticated request never reaches the gate", func(t *testing.T) {
		rec := serve(t, func(c jwtx.Claims) (bool, error) { return true, nil }, "")
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
