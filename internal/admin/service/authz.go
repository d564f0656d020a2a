package service

import (
	"errors"

	"github.com/opsgarden/admind/internal/admin/domain"
)

var (
	// ErrInvalidPrincipal is returned when the principal carries no usable
	// role snapshot.
	ErrInvalidPrincipal = errors.New("authz: invalid principal")

	// ErrUnknownResource is returned for a resource outside the permission
	// matrix.
	ErrUnknownResource = errors.New("authz: unknown resource")

	// ErrUnknownAction is returned for an action outside the permission
	// matrix.
	ErrUnknownAction = errors.New("authz: unknown action")
)

// Allowed reports whether the principal's role grants action on resource.
// It is a pure decision over the role snapshot embedded in the principal;
// it never consults storage, so a stale snapshot keeps its grants until the
// access token is re-minted.
//
// A denial is (false, nil). An error means the question itself was
// malformed and the caller must fail closed.
func Allowed(p domain.Principal, resource domain.Resource, action domain.Action) (bool, error) {
	if p.Role.ID == "" && p.Role.Name == "" {
		return false, ErrInvalidPrincipal
	}

	var set domain.PermissionSet
	switch resource {
	case domain.ResourceUser:
		set = p.Role.User
	case domain.ResourceMasterData:
		set = p.Role.MasterData
	default:
		return false, ErrUnknownResource
	}

	switch action {
	case domain.ActionView, domain.ActionCreate, domain.ActionUpdate, domain.ActionDelete:
		return set.Allows(action), nil
	default:
		return false, ErrUnknownAction
	}
}

// AllowedNames is Allowed over raw resource/action names, for callers at a
// parsing boundary such as HTTP middleware.
func AllowedNames(p domain.Principal, resource, action string) (bool, error) {
	res, err := domain.ParseResource(resource)
	if err != nil {
		return false, ErrUnknownResource
	}
	act, err := domain.ParseAction(action)
	if err != nil {
		return false, ErrUnknownAction
	}
	return Allowed(p, res, act)
}
