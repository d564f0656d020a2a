package domain

import "time"

// PermissionSet holds the four action flags for one resource category.
type PermissionSet struct {
	View   bool `json:"view"`
	Create bool `json:"create"`
	Update bool `json:"update"`
	Delete bool `json:"delete"`
}

// Role carries the permission matrix over the two resource categories.
// System-seeded roles have Editable=false and can never be updated or
// archived. Deletion is soft: Archived roles stay in the table but drop out
// of listings.
type Role struct {
	ID          string
	Name        string
	Description string
	User        PermissionSet
	MasterData  PermissionSet
	Editable    bool
	Archived    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Seeded role names. The normal role is the default for self-registration.
const (
	RoleNameAdministrator = "administrator"
	RoleNameNormal        = "normal"
)
