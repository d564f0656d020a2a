package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/opsgarden/admind/internal/admin/domain"
	"github.com/opsgarden/admind/internal/admin/store"
	"github.com/opsgarden/admind/pkg/apierr"
	"github.com/opsgarden/admind/pkg/cryptox"
	"github.com/opsgarden/admind/pkg/idx"
)

// UserService owns administrative user management plus the self-service
// profile operations.
type UserService struct {
	Store  store.Store
	Logger *slog.Logger
}

// CreateUserParams are the admin-created account inputs. The account gets a
// deterministic initial password of "<username>_c" which the user is
// expected to change on first login.
type CreateUserParams struct {
	Username string
	Email    string
	Fullname string
	RoleID   string
}

// Create provisions an account on behalf of an administrator.
func (s *UserService) Create(ctx context.Context, p CreateUserParams) (domain.UserWithRole, error) {
	p.Username = strings.TrimSpace(p.Username)
	p.Email = strings.TrimSpace(p.Email)
	p.Fullname = strings.TrimSpace(p.Fullname)

	if p.Username == "" {
		return domain.UserWithRole{}, apierr.Validation("username is required")
	}
	if err := validateEmail(p.Email); err != nil {
		return domain.UserWithRole{}, err
	}

	available, err := s.Store.Users().IsUsernameAvailable(ctx, p.Username, "")
	if err != nil {
		return domain.UserWithRole{}, apierr.Internal("failed to check username availability")
	}
	if !available {
		return domain.UserWithRole{}, apierr.Conflict(fmt.Sprintf("username %s is taken, please use other username", p.Username))
	}

	available, err = s.Store.Users().IsEmailAvailable(ctx, p.Email, "")
	if err != nil {
		return domain.UserWithRole{}, apierr.Internal("failed to check email availability")
	}
	if !available {
		return domain.UserWithRole{}, apierr.Conflict(fmt.Sprintf("email %s is already in use", p.Email))
	}

	role, err := s.Store.Roles().GetRoleByID(ctx, p.RoleID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.UserWithRole{}, apierr.Validation("role does not exist")
		}
		return domain.UserWithRole{}, apierr.Internal("failed to load role")
	}

	now := time.Now().UTC()
	user := domain.User{
		ID:             idx.New().String(),
		Username:       p.Username,
		PasswordDigest: cryptox.DigestPassword(p.Username + "_c"),
		Email:          p.Email,
		Fullname:       p.Fullname,
		RoleID:         role.ID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.UserWithRole{}, apierr.Conflict("username or email is already in use")
		}
		s.Logger.Error("failed to create user", "error", err)
		return domain.UserWithRole{}, apierr.Internal("failed to create user")
	}

	return domain.UserWithRole{User: user, Role: role}, nil
}

// Get fetches a single non-deleted user with its role.
func (s *UserService) Get(ctx context.Context, id string) (domain.UserWithRole, error) {
	user, err := s.Store.Users().GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.UserWithRole{}, apierr.NotFound("data not found")
		}
		return domain.UserWithRole{}, apierr.Internal("failed to load user")
	}
	return user, nil
}

// GetAll lists every non-deleted user.
func (s *UserService) GetAll(ctx context.Context) ([]domain.UserWithRole, error) {
	users, err := s.Store.Users().ListUsers(ctx)
	if err != nil {
		return nil, apierr.Internal("failed to list users")
	}
	return users, nil
}

// Search pages over users matching query against username or fullname,
// case-insensitively. An empty query matches everyone.
func (s *UserService) Search(ctx context.Context, query string, p domain.Pagination) (domain.SearchResult[domain.UserWithRole], error) {
	p = p.Normalize()

	total, rows, err := s.Store.Users().SearchUsers(ctx, query, p)
	if err != nil {
		return domain.SearchResult[domain.UserWithRole]{}, apierr.Internal("failed to search users")
	}

	return domain.SearchResult[domain.UserWithRole]{
		PageInfo: domain.PageInfo{
			Pagination: p,
			PageCount:  domain.PageCount(total, p.Limit),
		},
		Data: rows,
	}, nil
}

// GetPermissions returns the user's current role, matrix included. This is
// the fresh-from-store view, unlike the snapshot inside an access token.
func (s *UserService) GetPermissions(ctx context.Context, userID string) (domain.Role, error) {
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Role{}, apierr.NotFound("data not found")
		}
		return domain.Role{}, apierr.Internal("failed to load user")
	}
	return user.Role, nil
}

// UpdateRole repoints the user at another role. Takes effect in tokens on
// the next login or refresh.
func (s *UserService) UpdateRole(ctx context.Context, userID, roleID string) (domain.UserWithRole, error) {
	if _, err := s.Store.Roles().GetRoleByID(ctx, roleID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.UserWithRole{}, apierr.Validation("role does not exist")
		}
		return domain.UserWithRole{}, apierr.Internal("failed to load role")
	}

	if err := s.Store.Users().UpdateUserRole(ctx, userID, roleID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.UserWithRole{}, apierr.NotFound("data not found")
		}
		return domain.UserWithRole{}, apierr.Internal("failed to update user role")
	}

	return s.Get(ctx, userID)
}

// Delete soft-deletes the user. Their username and email become reusable,
// but the row survives for audit.
func (s *UserService) Delete(ctx context.Context, userID string) error {
	if err := s.Store.Users().SoftDeleteUser(ctx, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apierr.NotFound("data not found")
		}
		return apierr.Internal("failed to delete user")
	}
	return nil
}

// GetProfile is the self-service variant of Get.
func (s *UserService) GetProfile(ctx context.Context, userID string) (domain.UserWithRole, error) {
	return s.Get(ctx, userID)
}

// UpdateProfile mutates the caller's email and fullname.
func (s *UserService) UpdateProfile(ctx context.Context, userID, email, fullname string) (domain.UserWithRole, error) {
	email = strings.TrimSpace(email)
	fullname = strings.TrimSpace(fullname)

	if err := validateEmail(email); err != nil {
		return domain.UserWithRole{}, err
	}

	available, err := s.Store.Users().IsEmailAvailable(ctx, email, userID)
	if err != nil {
		return domain.UserWithRole{}, apierr.Internal("failed to check email availability")
	}
	if !available {
		return domain.UserWithRole{}, apierr.Conflict(fmt.Sprintf("email %s is already in use", email))
	}

	if err := s.Store.Users().UpdateProfile(ctx, userID, email, fullname); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.UserWithRole{}, apierr.NotFound("data not found")
		}
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.UserWithRole{}, apierr.Conflict(fmt.Sprintf("email %s is already in use", email))
		}
		return domain.UserWithRole{}, apierr.Internal("failed to update profile")
	}

	return s.Get(ctx, userID)
}

// ChangeUsername renames the caller's account. The new name must not be
// held by any other non-deleted user.
func (s *UserService) ChangeUsername(ctx context.Context, userID, username string) (domain.UserWithRole, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return domain.UserWithRole{}, apierr.Validation("username is required")
	}

	available, err := s.Store.Users().IsUsernameAvailable(ctx, username, userID)
	if err != nil {
		return domain.UserWithRole{}, apierr.Internal("failed to check username availability")
	}
	if !available {
		return domain.UserWithRole{}, apierr.Conflict(fmt.Sprintf("username %s is taken, please use other username", username))
	}

	if err := s.Store.Users().ChangeUsername(ctx, userID, username); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.UserWithRole{}, apierr.NotFound("data not found")
		}
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.UserWithRole{}, apierr.Conflict(fmt.Sprintf("username %s is taken, please use other username", username))
		}
		return domain.UserWithRole{}, apierr.Internal("failed to change username")
	}

	return s.Get(ctx, userID)
}

func validateEmail(email string) error {
	if email == "" {
		return apierr.Validation("email is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return apierr.Validation("email is not valid")
	}
	return nil
}
