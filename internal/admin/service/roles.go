package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/opsgarden/admind/internal/admin/domain"
	"github.com/opsgarden/admind/internal/admin/store"
	"github.com/opsgarden/admind/pkg/apierr"
	"github.com/opsgarden/admind/pkg/idx"
)

// RoleService owns master-data role management. The two seeded roles ship
// with Editable=false and are immune to update and delete; everything
// created through this service is editable.
type RoleService struct {
	Store  store.Store
	Logger *slog.Logger
}

// RoleParams carry the mutable role fields for create and update.
type RoleParams struct {
	Name        string
	Description string
	User        domain.PermissionSet
	MasterData  domain.PermissionSet
}

// Create inserts a new editable role.
func (s *RoleService) Create(ctx context.Context, p RoleParams) (domain.Role, error) {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return domain.Role{}, apierr.Validation("role name is required")
	}

	if _, err := s.Store.Roles().GetRoleByName(ctx, p.Name); err == nil {
		return domain.Role{}, apierr.Conflict(fmt.Sprintf("role %s already exists", p.Name))
	} else if !errors.Is(err, store.ErrNotFound) {
		return domain.Role{}, apierr.Internal("failed to check role name")
	}

	now := time.Now().UTC()
	role := domain.Role{
		ID:          idx.New().String(),
		Name:        p.Name,
		Description: p.Description,
		User:        p.User,
		MasterData:  p.MasterData,
		Editable:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Store.Roles().CreateRole(ctx, role); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.Role{}, apierr.Conflict(fmt.Sprintf("role %s already exists", p.Name))
		}
		s.Logger.Error("failed to create role", "error", err)
		return domain.Role{}, apierr.Internal("failed to create role")
	}
	return role, nil
}

// Get fetches a single role by id, archived or not.
func (s *RoleService) Get(ctx context.Context, id string) (domain.Role, error) {
	role, err := s.Store.Roles().GetRoleByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Role{}, apierr.NotFound("data not found")
		}
		return domain.Role{}, apierr.Internal("failed to load role")
	}
	return role, nil
}

// GetAll lists the non-archived roles.
func (s *RoleService) GetAll(ctx context.Context) ([]domain.Role, error) {
	roles, err := s.Store.Roles().ListRoles(ctx)
	if err != nil {
		return nil, apierr.Internal("failed to list roles")
	}
	return roles, nil
}

// Search pages over non-archived roles whose name matches query,
// case-insensitively.
func (s *RoleService) Search(ctx context.Context, query string, p domain.Pagination) (domain.SearchResult[domain.Role], error) {
	p = p.Normalize()

	total, rows, err := s.Store.Roles().SearchRoles(ctx, query, p)
	if err != nil {
		return domain.SearchResult[domain.Role]{}, apierr.Internal("failed to search roles")
	}

	return domain.SearchResult[domain.Role]{
		PageInfo: domain.PageInfo{
			Pagination: p,
			PageCount:  domain.PageCount(total, p.Limit),
		},
		Data: rows,
	}, nil
}

// Update replaces a role's name, description and permission matrix. Roles
// flagged non-editable are left untouched.
func (s *RoleService) Update(ctx context.Context, id string, p RoleParams) (domain.Role, error) {
	role, err := s.Get(ctx, id)
	if err != nil {
		return domain.Role{}, err
	}
	if !role.Editable {
		return domain.Role{}, apierr.Validation("role is not editable")
	}

	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return domain.Role{}, apierr.Validation("role name is required")
	}

	if p.Name != role.Name {
		if _, err := s.Store.Roles().GetRoleByName(ctx, p.Name); err == nil {
			return domain.Role{}, apierr.Conflict(fmt.Sprintf("role %s already exists", p.Name))
		} else if !errors.Is(err, store.ErrNotFound) {
			return domain.Role{}, apierr.Internal("failed to check role name")
		}
	}

	role.Name = p.Name
	role.Description = p.Description
	role.User = p.User
	role.MasterData = p.MasterData
	role.UpdatedAt = time.Now().UTC()

	if err := s.Store.Roles().UpdateRole(ctx, role); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Role{}, apierr.NotFound("data not found")
		}
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.Role{}, apierr.Conflict(fmt.Sprintf("role %s already exists", p.Name))
		}
		s.Logger.Error("failed to update role", "error", err)
		return domain.Role{}, apierr.Internal("failed to update role")
	}
	return role, nil
}

// Delete archives an editable role. The row survives so any users still
// referencing it keep a resolvable, if archived, role.
func (s *RoleService) Delete(ctx context.Context, id string) error {
	role, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !role.Editable {
		return apierr.Validation("role is not editable")
	}
	if role.Archived {
		return apierr.NotFound("data not found")
	}

	if err := s.Store.Roles().ArchiveRole(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apierr.NotFound("data not found")
		}
		return apierr.Internal("failed to delete role")
	}
	return nil
}
