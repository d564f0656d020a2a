package store

import (
	"context"
	"errors"
	"time"

	"github.com/opsgarden/admind/internal/admin/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers implement it.
// Sub-repositories keep concerns tidy and individually mockable.
type Store interface {
	Users() Users
	Roles() Roles
	RefreshTokens() RefreshTokens

	ApplyMigrations() error

	// Tx starts a read/write transaction scoped Store. The caller MUST call
	// Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction, committing on nil and rolling
	// back on error. Use it for multi-step operations that must be atomic
	// (e.g. refresh rotation).
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store with Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a non-deleted user joined with its role.
	GetUserByID(ctx context.Context, id string) (domain.UserWithRole, error)

	// GetUserByUsername returns a non-deleted user (digest included) joined
	// with its role. Used during login.
	GetUserByUsername(ctx context.Context, username string) (domain.UserWithRole, error)

	// CreateUser inserts a new user (id provided by the app via ULID).
	CreateUser(ctx context.Context, u domain.User) error

	// ListUsers returns all non-deleted users with their roles.
	ListUsers(ctx context.Context) ([]domain.UserWithRole, error)

	// SearchUsers pages over non-deleted users whose username or fullname
	// contains query (case-insensitive). Returns the total match count
	// alongside the requested page.
	SearchUsers(ctx context.Context, query string, p domain.Pagination) (int, []domain.UserWithRole, error)

	// UpdateUserRole repoints the role reference and bumps updated_at.
	UpdateUserRole(ctx context.Context, userID, roleID string) error

	// UpdateProfile mutates email and fullname.
	UpdateProfile(ctx context.Context, userID, email, fullname string) error

	// ChangeUsername renames the account.
	ChangeUsername(ctx context.Context, userID, username string) error

	// SoftDeleteUser marks the user deleted without removing the row.
	SoftDeleteUser(ctx context.Context, userID string) error

	// IsUsernameAvailable reports whether no non-deleted user other than
	// excludeID holds username. Empty excludeID means no exclusion.
	IsUsernameAvailable(ctx context.Context, username, excludeID string) (bool, error)

	// IsEmailAvailable is the email counterpart of IsUsernameAvailable.
	IsEmailAvailable(ctx context.Context, email, excludeID string) (bool, error)
}

type Roles interface {
	// GetRoleByID fetches a role, archived or not.
	GetRoleByID(ctx context.Context, id string) (domain.Role, error)

	// GetRoleByName fetches a role by unique name. Used for the seeded
	// default role during registration.
	GetRoleByName(ctx context.Context, name string) (domain.Role, error)

	// ListRoles returns all non-archived roles.
	ListRoles(ctx context.Context) ([]domain.Role, error)

	// SearchRoles pages over non-archived roles whose name contains query
	// (case-insensitive).
	SearchRoles(ctx context.Context, query string, p domain.Pagination) (int, []domain.Role, error)

	// CreateRole inserts a new role (id is ULID).
	CreateRole(ctx context.Context, r domain.Role) error

	// UpdateRole replaces name, description and both permission sets.
	UpdateRole(ctx context.Context, r domain.Role) error

	// ArchiveRole soft-deletes the role.
	ArchiveRole(ctx context.Context, roleID string) error
}

type RefreshTokens interface {
	// CreateRefreshRecord inserts an allowlist row.
	CreateRefreshRecord(ctx context.Context, rec domain.RefreshRecord) error

	// GetRefreshRecordByHash looks an allowlist row up by token fingerprint.
	GetRefreshRecordByHash(ctx context.Context, hash string) (domain.RefreshRecord, error)

	// DeleteRefreshRecord removes a row by fingerprint. Deleting an absent
	// row is a no-op, which keeps registry eviction idempotent.
	DeleteRefreshRecord(ctx context.Context, hash string) error

	// DeleteUserRefreshRecords removes every row for a user (logout).
	DeleteUserRefreshRecords(ctx context.Context, userID string) error

	// DeleteExpiredRefreshRecords removes rows past their expiry.
	DeleteExpiredRefreshRecords(ctx context.Context, now time.Time) error

	// ListActiveRefreshRecords returns unexpired rows, used to warm the
	// in-memory registry after a restart.
	ListActiveRefreshRecords(ctx context.Context, now time.Time) ([]domain.RefreshRecord, error)
}
