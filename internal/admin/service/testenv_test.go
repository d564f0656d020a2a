package service

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/opsgarden/admind/internal/admin/store"
	"github.com/opsgarden/admind/internal/admin/store/drivers/sqlite"
	"github.com/opsgarden/admind/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

const testIssuer = "admind-test"

var (
	testAccessSecret  = []byte("test-access-secret")
	testRefreshSecret = []byte("test-refresh-secret")
)

type testEnv struct {
	Store    store.Store
	Registry *Registry
	Auth     *AuthService
	Users    *UserService
	Roles    *RoleService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	registry := NewRegistry(st, logger, time.Minute)

	accessSigner, err := jwtx.NewSignerHS256(testAccessSecret)
	require.NoError(t, err)
	accessVerifier, err := jwtx.NewVerifierHS256(testAccessSecret, testIssuer)
	require.NoError(t, err)
	refreshSigner, err := jwtx.NewSignerHS256(testRefreshSecret)
	require.NoError(t, err)
	refreshVerifier, err := jwtx.NewVerifierHS256(testRefreshSecret, testIssuer)
	require.NoError(t, err)

	return &testEnv{
		Store:    st,
		Registry: registry,
		Auth: &AuthService{
			Store:           st,
			Registry:        registry,
			Logger:          logger,
			AccessSigner:    accessSigner,
			AccessVerifier:  accessVerifier,
			RefreshSigner:   refreshSigner,
			RefreshVerifier: refreshVerifier,
			Issuer:          testIssuer,
			AccessTTL:       time.Minute,
			RefreshTTL:      2 * time.Minute,
		},
		Users: &UserService{Store: st, Logger: logger},
		Roles: &RoleService{Store: st, Logger: logger},
	}
}
