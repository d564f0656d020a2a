package domain

import "time"

// User is an administrative account. Username and email are unique among
// non-deleted users; deletion is soft (DeletedAt set).
type User struct {
	ID             string
	Username       string
	PasswordDigest string // deterministic PBKDF2 digest, compared by equality
	Email          string
	Fullname       string
	Avatar         string // opaque reference, may be empty
	RoleID         string
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      *time.Time
}

// UserWithRole is a user joined with its role record, as returned by reads
// that need the permission matrix.
type UserWithRole struct {
	User
	Role Role
}
