package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/opsgarden/admind/internal/admin/domain"
	"github.com/opsgarden/admind/internal/admin/service"
	"github.com/opsgarden/admind/internal/admin/store"
	"github.com/opsgarden/admind/internal/admin/store/drivers/sqlite"
	"github.com/opsgarden/admind/pkg/adminsdk"
	"github.com/opsgarden/admind/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	Server *httptest.Server
	Client *adminsdk.SDKClient

	Store store.Store
	Auth  *service.AuthService
	Users *service.UserService
	Roles *service.RoleService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	registry := service.NewRegistry(st, logger, time.Minute)

	accessSigner, err := jwtx.NewSignerHS256([]byte("router-test-access"))
	require.NoError(t, err)
	accessVerifier, err := jwtx.NewVerifierHS256([]byte("router-test-access"), "admind-test")
	require.NoError(t, err)
	refreshSigner, err := jwtx.NewSignerHS256([]byte("router-test-refresh"))
	require.NoError(t, err)
	refreshVerifier, err := jwtx.NewVerifierHS256([]byte("router-test-refresh"), "admind-test")
	require.NoError(t, err)

	auth := &service.AuthService{
		Store:           st,
		Registry:        registry,
		Logger:          logger,
		AccessSigner:    accessSigner,
		AccessVerifier:  accessVerifier,
		RefreshSigner:   refreshSigner,
		RefreshVerifier: refreshVerifier,
		Issuer:          "admind-test",
		AccessTTL:       5 * time.Minute,
		RefreshTTL:      10 * time.Minute,
	}
	users := &service.UserService{Store: st, Logger: logger}
	roles := &service.RoleService{Store: st, Logger: logger}

	router := NewRouter(accessVerifier, "test", st, logger)
	router.AuthService = auth
	router.UserService = users
	router.RoleService = roles
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return &testServer{
		Server: srv,
		Client: adminsdk.NewSDKClient(srv.URL),
		Store:  st,
		Auth:   auth,
		Users:  users,
		Roles:  roles,
	}
}

// seedAdmin provisions an account under the administrator role and logs it
// in through the API with the derived initial password.
func seedAdmin(t *testing.T, env *testServer, username string) *adminsdk.Session {
	t.Helper()

	ctx := context.Background()

	admin, err := env.Store.Roles().GetRoleByName(ctx, domain.RoleNameAdministrator)
	require.NoError(t, err)

	_, err = env.Users.Create(ctx, service.CreateUserParams{
		Username: username,
		Email:    username + "@example.com",
		Fullname: "Admin " + username,
		RoleID:   admin.ID,
	})
	require.NoError(t, err)

	session, err := env.Client.Login(ctx, username, username+"_c")
	require.NoError(t, err)
	return session
}

func registerSession(t *testing.T, env *testServer, username string) *adminsdk.Session {
	t.Helper()

	session, err := env.Client.Register(context.Background(), adminsdk.RegisterRequest{
		Username:        username,
		Email:           username + "@example.com",
		Fullname:        "Test " + username,
		Password:        "hunter2!",
		ConfirmPassword: "hunter2!",
	})
	require.NoError(t, err)
	return session
}

func TestRouterAuthFlow(t *testing.T) {
	t.Parallel()

	env := newTestServer(t)
	ctx := context.Background()

	session := registerSession(t, env, "dana")
	require.NotEmpty(t, session.AccessToken())
	require.NotEmpty(t, session.RefreshToken())

	t.Run("profile reflects registration", func(t *testing.T) {
		profile, err := session.GetProfile(ctx)
		require.NoError(t, err)
		require.Equal(t, "dana", profile.Username)
		require.Equal(t, domain.RoleNameNormal, profile.Role.Name)
	})

	t.Run("verify swaps the token pair", func(t *testing.T) {
		before := session.RefreshToken()

		tokens, err := session.Verify(ctx)
		require.NoError(t, err)
		require.Equal(t, "dana", tokens.UserData.Username)
		require.Equal(t, "Bearer", tokens.TokenType)
		require.NotEqual(t, before, session.RefreshToken())
	})

	t.Run("refresh rotates and invalidates the old token", func(t *testing.T) {
		old := session.RefreshToken()

		tokens, err := env.Client.Refresh(ctx, old)
		require.NoError(t, err)
		require.NotEqual(t, old, tokens.RefreshToken)

		_, err = env.Client.Refresh(ctx, old)
		var apiErr *adminsdk.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, adminsdk.ErrorCodeInternal, apiErr.Code)

		// The rotation happened outside the session, so re-arm it
		// with the fresh pair.
		session = env.Client.NewSessionFromTokens(tokens.AccessToken, tokens.RefreshToken, tokens.ExpiresIn)
	})

	t.Run("logout revokes every refresh token", func(t *testing.T) {
		refresh := session.RefreshToken()

		require.NoError(t, session.Logout(ctx))

		_, err := env.Client.Refresh(ctx, refresh)
		var apiErr *adminsdk.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, adminsdk.ErrorCodeInternal, apiErr.Code)
	})
}

func TestRouterSessionAutoRefresh(t *testing.T) {
	t.Parallel()

	env := newTestServer(t)
	ctx := context.Background()

	// A lifetime inside the SDK's refresh buffer forces a rotation before
	// the first authenticated call.
	env.Auth.AccessTTL = 10 * time.Second
	env.Auth.RefreshTTL = time.Minute

	session := registerSession(t, env, "erin")
	initialRefresh := session.RefreshToken()

	profile, err := session.GetProfile(ctx)
	require.NoError(t, err)
	require.Equal(t, "erin", profile.Username)
	require.NotEqual(t, initialRefresh, session.RefreshToken())
}

func TestRouterPermissionGate(t *testing.T) {
	t.Parallel()

	env := newTestServer(t)
	ctx := context.Background()

	normal := registerSession(t, env, "norma")
	admin := seedAdmin(t, env, "root")

	t.Run("normal role can view roles", func(t *testing.T) {
		roles, err := normal.ListRoles(ctx)
		require.NoError(t, err)
		require.NotEmpty(t, roles.Roles)
	})

	t.Run("normal role cannot view users", func(t *testing.T) {
		_, err := normal.ListUsers(ctx)
		var apiErr *adminsdk.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusForbidden, apiErr.StatusCode)
		require.Equal(t, adminsdk.ErrorCodeForbidden, apiErr.Code)
	})

	t.Run("normal role cannot create roles", func(t *testing.T) {
		_, err := normal.CreateRole(ctx, adminsdk.RoleRequest{Name: "intruder"})
		var apiErr *adminsdk.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	})

	t.Run("administrator can view users", func(t *testing.T) {
		users, err := admin.ListUsers(ctx)
		require.NoError(t, err)
		require.Len(t, users.Users, 2)
	})

	t.Run("promotion unlocks on the next token pair", func(t *testing.T) {
		adminRole, err := env.Store.Roles().GetRoleByName(ctx, domain.RoleNameAdministrator)
		require.NoError(t, err)

		profile, err := normal.GetProfile(ctx)
		require.NoError(t, err)

		_, err = admin.UpdateUserRole(ctx, profile.ID, adminRole.ID)
		require.NoError(t, err)

		// The old access token still carries the normal role snapshot.
		_, err = normal.ListUsers(ctx)
		var apiErr *adminsdk.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusForbidden, apiErr.StatusCode)

		// Verify mints a pair over the current role.
		_, err = normal.Verify(ctx)
		require.NoError(t, err)

		_, err = normal.ListUsers(ctx)
		require.NoError(t, err)
	})
}

func TestRouterAuthnRequired(t *testing.T) {
	t.Parallel()

	env := newTestServer(t)

	for name, header := range map[string]string{
		"missing token": "",
		"garbage token": "Bearer not-a-jwt",
	} {
		t.Run(name, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodGet, env.Server.URL+"/v1/users", nil)
			require.NoError(t, err)
			if header != "" {
				req.Header.Set("Authorization", header)
			}

			resp, err := env.Server.Client().Do(req)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()

			require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			require.NotEmpty(t, resp.Header.Get("WWW-Authenticate"))
		})
	}
}

func TestRouterErrorMapping(t *testing.T) {
	t.Parallel()

	env := newTestServer(t)
	ctx := context.Background()

	admin := seedAdmin(t, env, "root")
	registerSession(t, env, "frank")

	requireAPIError := func(t *testing.T, err error, status int, code string) {
		t.Helper()
		var apiErr *adminsdk.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, status, apiErr.StatusCode)
		require.Equal(t, code, apiErr.Code)
		require.NotEmpty(t, apiErr.Message)
	}

	t.Run("duplicate registration conflicts", func(t *testing.T) {
		_, err := env.Client.Register(ctx, adminsdk.RegisterRequest{
			Username:        "frank",
			Email:           "frank2@example.com",
			Fullname:        "Frank Again",
			Password:        "hunter2!",
			ConfirmPassword: "hunter2!",
		})
		requireAPIError(t, err, http.StatusBadRequest, adminsdk.ErrorCodeConflict)
	})

	t.Run("wrong password maps to not found", func(t *testing.T) {
		_, err := env.Client.Login(ctx, "frank", "wrong")
		requireAPIError(t, err, http.StatusNotFound, adminsdk.ErrorCodeNotFound)
	})

	t.Run("unknown user id maps to not found", func(t *testing.T) {
		_, err := admin.GetUser(ctx, "01JAQ6Y8G0AAAAAAAAAAAAAAAA")
		requireAPIError(t, err, http.StatusNotFound, adminsdk.ErrorCodeNotFound)
	})

	t.Run("duplicate role name conflicts", func(t *testing.T) {
		_, err := admin.CreateRole(ctx, adminsdk.RoleRequest{Name: domain.RoleNameNormal})
		requireAPIError(t, err, http.StatusBadRequest, adminsdk.ErrorCodeConflict)
	})

	t.Run("system roles are not deletable", func(t *testing.T) {
		normalRole, err := env.Store.Roles().GetRoleByName(ctx, domain.RoleNameNormal)
		require.NoError(t, err)

		err = admin.DeleteRole(ctx, normalRole.ID)
		requireAPIError(t, err, http.StatusBadRequest, adminsdk.ErrorCodeValidation)
	})

	t.Run("malformed body maps to validation", func(t *testing.T) {
		resp, err := env.Server.Client().Post(
			env.Server.URL+"/v1/auth/refresh", "application/json",
			http.NoBody,
		)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var body adminsdk.ErrorResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		require.Equal(t, adminsdk.ErrorCodeValidation, body.Code)
	})
}

func TestRouterUserAdministration(t *testing.T) {
	t.Parallel()

	env := newTestServer(t)
	ctx := context.Background()

	admin := seedAdmin(t, env, "root")

	normalRole, err := env.Store.Roles().GetRoleByName(ctx, domain.RoleNameNormal)
	require.NoError(t, err)
	adminRole, err := env.Store.Roles().GetRoleByName(ctx, domain.RoleNameAdministrator)
	require.NoError(t, err)

	created, err := admin.CreateUser(ctx, adminsdk.CreateUserRequest{
		Username: "gwen",
		Email:    "gwen@example.com",
		Fullname: "Gwen Harper",
		RoleID:   normalRole.ID,
	})
	require.NoError(t, err)
	require.Equal(t, domain.RoleNameNormal, created.Role.Name)

	t.Run("created user logs in with the derived password", func(t *testing.T) {
		session, err := env.Client.Login(ctx, "gwen", "gwen_c")
		require.NoError(t, err)
		require.NotEmpty(t, session.AccessToken())
	})

	t.Run("role change shows up in permissions", func(t *testing.T) {
		updated, err := admin.UpdateUserRole(ctx, created.ID, adminRole.ID)
		require.NoError(t, err)
		require.Equal(t, domain.RoleNameAdministrator, updated.Role.Name)

		perms, err := admin.GetUserPermissions(ctx, created.ID)
		require.NoError(t, err)
		require.True(t, perms.User.Delete)
	})

	t.Run("search matches case-insensitively", func(t *testing.T) {
		result, err := admin.SearchUsers(ctx, "GWE", 1, 10, "USERNAME", "ASC")
		require.NoError(t, err)
		require.Len(t, result.Data, 1)
		require.Equal(t, "gwen", result.Data[0].Username)
		require.Equal(t, 1, result.Pagination.PageCount)
	})

	t.Run("deleted users disappear from reads", func(t *testing.T) {
		require.NoError(t, admin.DeleteUser(ctx, created.ID))

		_, err := admin.GetUser(ctx, created.ID)
		var apiErr *adminsdk.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusNotFound, apiErr.StatusCode)

		users, err := admin.ListUsers(ctx)
		require.NoError(t, err)
		require.Len(t, users.Users, 1)
	})
}

func TestRouterRoleLifecycle(t *testing.T) {
	t.Parallel()

	env := newTestServer(t)
	ctx := context.Background()

	admin := seedAdmin(t, env, "root")

	created, err := admin.CreateRole(ctx, adminsdk.RoleRequest{
		Name:        "auditor",
		Description: "Read-only access",
		User:        adminsdk.PermissionSet{View: true},
		MasterData:  adminsdk.PermissionSet{View: true},
	})
	require.NoError(t, err)
	require.True(t, created.Editable)
	require.False(t, created.Archived)

	t.Run("update replaces the matrix", func(t *testing.T) {
		updated, err := admin.UpdateRole(ctx, created.ID, adminsdk.RoleRequest{
			Name:        "auditor",
			Description: "Read-only access",
			User:        adminsdk.PermissionSet{View: true, Update: true},
			MasterData:  adminsdk.PermissionSet{View: true},
		})
		require.NoError(t, err)
		require.True(t, updated.User.Update)
		require.False(t, updated.User.Create)
	})

	t.Run("delete archives rather than removes", func(t *testing.T) {
		require.NoError(t, admin.DeleteRole(ctx, created.ID))

		role, err := admin.GetRole(ctx, created.ID)
		require.NoError(t, err)
		require.True(t, role.Archived)

		all, err := admin.ListRoles(ctx)
		require.NoError(t, err)
		for _, r := range all.Roles {
			require.NotEqual(t, created.ID, r.ID)
		}

		err = admin.DeleteRole(ctx, created.ID)
		var apiErr *adminsdk.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	})
}

func TestRouterHealth(t *testing.T) {
	t.Parallel()

	env := newTestServer(t)
	ctx := context.Background()

	live, err := env.Client.Livez(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", live.Status)
	require.Equal(t, "test", live.Version)

	ready, err := env.Client.Readyz(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", ready.Status)
	require.NotNil(t, ready.Checks)
	require.Equal(t, "ok", ready.Checks.Database)
}
