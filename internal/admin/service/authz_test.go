package service

import (
	"testing"

	"github.com/opsgarden/admind/internal/admin/domain"
	"github.com/stretchr/testify/require"
)

func TestAllowed(t *testing.T) {
	t.Parallel()

	admin := domain.Principal{
		UserID:   "u1",
		Username: "root",
		Role: domain.Role{
			ID:         "r1",
			Name:       domain.RoleNameAdministrator,
			User:       domain.PermissionSet{View: true, Create: true, Update: true, Delete: true},
			MasterData: domain.PermissionSet{View: true, Create: true, Update: true, Delete: true},
		},
	}
	normal := domain.Principal{
		UserID:   "u2",
		Username: "joe",
		Role: domain.Role{
			ID:         "r2",
			Name:       domain.RoleNameNormal,
			MasterData: domain.PermissionSet{View: true},
		},
	}

	t.Run("grants follow the matrix", func(t *testing.T) {
		ok, err := Allowed(admin, domain.ResourceUser, domain.ActionDelete)
		require.NoError(t, err)
		require.True(t, ok)

		ok, err = Allowed(normal, domain.ResourceMasterData, domain.ActionView)
		require.NoError(t, err)
		require.True(t, ok)
	})

	t.Run("denials are not errors", func(t *testing.T) {
		ok, err := Allowed(normal, domain.ResourceUser, domain.ActionCreate)
		require.NoError(t, err)
		require.False(t, ok)

		ok, err = Allowed(normal, domain.ResourceMasterData, domain.ActionDelete)
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("principal without a role fails closed", func(t *testing.T) {
		ok, err := Allowed(domain.Principal{UserID: "u3"}, domain.ResourceUser, domain.ActionView)
		require.ErrorIs(t, err, ErrInvalidPrincipal)
		require.False(t, ok)
	})

	t.Run("unknown resource or action fail closed", func(t *testing.T) {
		ok, err := Allowed(admin, domain.Resource("billing"), domain.ActionView)
		require.ErrorIs(t, err, ErrUnknownResource)
		require.False(t, ok)

		ok, err = Allowed(admin, domain.ResourceUser, domain.Action("approve"))
		require.ErrorIs(t, err, ErrUnknownAction)
		require.False(t, ok)
	})
}

func TestAllowedNames(t *testing.T) {
	t.Parallel()

	admin := domain.Principal{
		UserID: "u1",
		Role: domain.Role{
			ID:   "r1",
			Name: domain.RoleNameAdministrator,
			User: domain.PermissionSet{View: true},
		},
	}

	ok, err := AllowedNames(admin, "user", "view")
	require.NoError(t, err)
	require.True(t, ok)

	_, err = AllowedNames(admin, "USER", "view")
	require.ErrorIs(t, err, ErrUnknownResource)

	_, err = AllowedNames(admin, "user", "View")
	require.ErrorIs(t, err, ErrUnknownAction)
}
