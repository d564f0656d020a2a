package service

import (
	"context"
	"testing"

	"github.com/opsgarden/admind/internal/admin/domain"
	"github.com/opsgarden/admind/internal/admin/store"
	"github.com/opsgarden/admind/pkg/apierr"
	"github.com/opsgarden/admind/pkg/idx"
	"github.com/stretchr/testify/require"
)

func adminRole(t *testing.T, env *testEnv) domain.Role {
	t.Helper()

	role, err := env.Store.Roles().GetRoleByName(context.Background(), domain.RoleNameAdministrator)
	require.NoError(t, err)
	return role
}

func TestUserCreate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	env := newTestEnv(t)
	admin := adminRole(t, env)

	t.Run("provisions an account with the derived initial password", func(t *testing.T) {
		created, err := env.Users.Create(ctx, CreateUserParams{
			Username: "mallory",
			Email:    "mallory@example.com",
			Fullname: "Mallory M",
			RoleID:   admin.ID,
		})
		require.NoError(t, err)
		require.Equal(t, admin.ID, created.Role.ID)

		// The initial password is the username suffixed with "_c".
		pair, err := env.Auth.Login(ctx, "mallory", "mallory_c")
		require.NoError(t, err)
		require.Equal(t, created.ID, pair.Principal.UserID)
	})

	t.Run("rejects duplicate usernames", func(t *testing.T) {
		_, err := env.Users.Create(ctx, CreateUserParams{
			Username: "mallory",
			Email:    "second@example.com",
			RoleID:   admin.ID,
		})
		require.True(t, apierr.IsKind(err, apierr.KindConflict))
	})

	t.Run("rejects a duplicate email", func(t *testing.T) {
		_, err := env.Users.Create(ctx, CreateUserParams{
			Username: "mallory2",
			Email:    "mallory@example.com",
			RoleID:   admin.ID,
		})
		require.True(t, apierr.IsKind(err, apierr.KindConflict))
	})

	t.Run("storage classifies uniqueness violations", func(t *testing.T) {
		// Bypass the availability pre-checks the way a concurrent
		// writer would, straight against the live unique indexes.
		err := env.Store.Users().CreateUser(ctx, domain.User{
			ID:             idx.New().String(),
			Username:       "mallory",
			PasswordDigest: "x",
			Email:          "different@example.com",
			RoleID:         admin.ID,
		})
		require.ErrorIs(t, err, store.ErrAlreadyExists)

		err = env.Store.Users().CreateUser(ctx, domain.User{
			ID:             idx.New().String(),
			Username:       "different",
			PasswordDigest: "x",
			Email:          "mallory@example.com",
			RoleID:         admin.ID,
		})
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("rejects an unknown role", func(t *testing.T) {
		_, err := env.Users.Create(ctx, CreateUserParams{
			Username: "oscar",
			Email:    "oscar@example.com",
			RoleID:   "01K0000000000000000000000X",
		})
		require.True(t, apierr.IsKind(err, apierr.KindValidation))
	})

	t.Run("rejects a malformed email", func(t *testing.T) {
		_, err := env.Users.Create(ctx, CreateUserParams{
			Username: "peggy",
			Email:    "not-an-email",
			RoleID:   admin.ID,
		})
		require.True(t, apierr.IsKind(err, apierr.KindValidation))
	})
}

func TestUserSearch(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	env := newTestEnv(t)
	admin := adminRole(t, env)

	for _, u := range []struct{ username, fullname string }{
		{"anna", "Anna Appleseed"},
		{"annette", "Annette Banks"},
		{"bob", "Bob Appleby"},
		{"carla", "Carla Chen"},
	} {
		_, err := env.Users.Create(ctx, CreateUserParams{
			Username: u.username,
			Email:    u.username + "@example.com",
			Fullname: u.fullname,
			RoleID:   admin.ID,
		})
		require.NoError(t, err)
	}

	t.Run("matches username and fullname case-insensitively", func(t *testing.T) {
		res, err := env.Users.Search(ctx, "ANN", domain.Pagination{})
		require.NoError(t, err)
		// anna, annette by username; Bob Appleby does not contain "ann".
		require.Len(t, res.Data, 2)

		res, err = env.Users.Search(ctx, "apple", domain.Pagination{})
		require.NoError(t, err)
		// Anna Appleseed and Bob Appleby by fullname.
		require.Len(t, res.Data, 2)
	})

	t.Run("empty query matches everyone", func(t *testing.T) {
		res, err := env.Users.Search(ctx, "", domain.Pagination{})
		require.NoError(t, err)
		require.Len(t, res.Data, 4)
		require.Equal(t, 1, res.PageInfo.PageCount)
	})

	t.Run("pages with a computed page count", func(t *testing.T) {
		res, err := env.Users.Search(ctx, "", domain.Pagination{Page: 1, Limit: 3})
		require.NoError(t, err)
		require.Len(t, res.Data, 3)
		require.Equal(t, 2, res.PageInfo.PageCount)

		res, err = env.Users.Search(ctx, "", domain.Pagination{Page: 2, Limit: 3})
		require.NoError(t, err)
		require.Len(t, res.Data, 1)
	})

	t.Run("no matches is an empty page, not an error", func(t *testing.T) {
		res, err := env.Users.Search(ctx, "zzz", domain.Pagination{})
		require.NoError(t, err)
		require.Empty(t, res.Data)
		require.Equal(t, 0, res.PageInfo.PageCount)
	})

	t.Run("sorts ascending by username on request", func(t *testing.T) {
		res, err := env.Users.Search(ctx, "", domain.Pagination{
			Sort: domain.Sort{By: domain.SortByUsername, Order: domain.SortAsc},
		})
		require.NoError(t, err)
		require.Equal(t, "anna", res.Data[0].Username)
		require.Equal(t, "carla", res.Data[len(res.Data)-1].Username)
	})
}

func TestUserUpdateRoleAndPermissions(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	env := newTestEnv(t)
	admin := adminRole(t, env)
	pair := registerTestUser(t, env, "nancy")

	perms, err := env.Users.GetPermissions(ctx, pair.Principal.UserID)
	require.NoError(t, err)
	require.False(t, perms.User.Create)

	updated, err := env.Users.UpdateRole(ctx, pair.Principal.UserID, admin.ID)
	require.NoError(t, err)
	require.Equal(t, admin.ID, updated.Role.ID)

	perms, err = env.Users.GetPermissions(ctx, pair.Principal.UserID)
	require.NoError(t, err)
	require.True(t, perms.User.Create)

	t.Run("unknown user is not found", func(t *testing.T) {
		_, err := env.Users.UpdateRole(ctx, "01K0000000000000000000000X", admin.ID)
		require.True(t, apierr.IsKind(err, apierr.KindNotFound))
	})
}

func TestUserDelete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	env := newTestEnv(t)
	pair := registerTestUser(t, env, "olivia")

	require.NoError(t, env.Users.Delete(ctx, pair.Principal.UserID))

	t.Run("deleted users disappear from reads", func(t *testing.T) {
		_, err := env.Users.Get(ctx, pair.Principal.UserID)
		require.True(t, apierr.IsKind(err, apierr.KindNotFound))

		_, err = env.Auth.Login(ctx, "olivia", "hunter2!")
		require.True(t, apierr.IsKind(err, apierr.KindNotFound))
	})

	t.Run("the username becomes reusable", func(t *testing.T) {
		_, err := env.Auth.Register(ctx, RegisterParams{
			Username:        "olivia",
			Email:           "olivia2@example.com",
			Password:        "pw",
			ConfirmPassword: "pw",
		})
		require.NoError(t, err)
	})

	t.Run("double delete is not found", func(t *testing.T) {
		err := env.Users.Delete(ctx, pair.Principal.UserID)
		require.True(t, apierr.IsKind(err, apierr.KindNotFound))
	})
}

func TestUserProfile(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	env := newTestEnv(t)
	pair := registerTestUser(t, env, "quinn")
	other := registerTestUser(t, env, "rupert")

	t.Run("updates email and fullname", func(t *testing.T) {
		updated, err := env.Users.UpdateProfile(ctx, pair.Principal.UserID, "quinn+new@example.com", "Quinn Q")
		require.NoError(t, err)
		require.Equal(t, "quinn+new@example.com", updated.Email)
		require.Equal(t, "Quinn Q", updated.Fullname)
	})

	t.Run("rejects another user's email", func(t *testing.T) {
		_, err := env.Users.UpdateProfile(ctx, pair.Principal.UserID, "rupert@example.com", "Quinn Q")
		require.True(t, apierr.IsKind(err, apierr.KindConflict))
	})

	t.Run("changes the username when free", func(t *testing.T) {
		updated, err := env.Users.ChangeUsername(ctx, pair.Principal.UserID, "quincy")
		require.NoError(t, err)
		require.Equal(t, "quincy", updated.Username)

		_, err = env.Users.ChangeUsername(ctx, other.Principal.UserID, "quincy")
		require.True(t, apierr.IsKind(err, apierr.KindConflict))
	})

	t.Run("keeping your own username is allowed", func(t *testing.T) {
		_, err := env.Users.ChangeUsername(ctx, pair.Principal.UserID, "quincy")
		require.NoError(t, err)
	})
}
