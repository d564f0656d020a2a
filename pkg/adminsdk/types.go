package adminsdk

import "time"

// ErrorResponse is the classified error body every endpoint returns on
// failure.
type ErrorResponse struct {
	// Code is the error class (e.g. "validation_error", "not_found").
	Code string `json:"code"`

	// Message is a human-readable description of the failure.
	Message string `json:"message"`
}

// PermissionSet is one resource category's action grants.
type PermissionSet struct {
	View   bool `json:"view"`
	Create bool `json:"create"`
	Update bool `json:"update"`
	Delete bool `json:"delete"`
}

// RoleInfo is the wire form of a role, permission matrix included.
type RoleInfo struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	User        PermissionSet `json:"user"`
	MasterData  PermissionSet `json:"masterData"`
	Editable    bool          `json:"editable"`
	Archived    bool          `json:"isArchived"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// UserInfo is the wire form of a user with its resolved role.
type UserInfo struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email,omitempty"`
	Fullname  string    `json:"fullname,omitempty"`
	Avatar    string    `json:"avatar,omitempty"`
	Role      RoleInfo  `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PrincipalInfo is the identity snapshot returned alongside freshly minted
// tokens.
type PrincipalInfo struct {
	UserID   string   `json:"userId"`
	Username string   `json:"username"`
	Fullname string   `json:"fullname,omitempty"`
	Avatar   string   `json:"avatar,omitempty"`
	Role     RoleInfo `json:"role"`
}

// TokenResponse is returned by register, login, verify and refresh. The
// tokens always come as a pair.
type TokenResponse struct {
	UserData     PrincipalInfo `json:"userData"`
	AccessToken  string        `json:"accessToken"`
	RefreshToken string        `json:"refreshToken"`
	TokenType    string        `json:"tokenType"`
	ExpiresIn    int           `json:"expiresIn"` // access token lifetime in seconds
}

// RegisterRequest is the self-registration payload.
type RegisterRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Fullname        string `json:"fullname"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// LoginRequest is the credential payload.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RefreshRequest presents a refresh token for rotation.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// RevokeRequest withdraws a refresh token from the allowlist.
type RevokeRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// CreateUserRequest provisions an account on behalf of an administrator.
// The account's initial password is derived from the username.
type CreateUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Fullname string `json:"fullname"`
	RoleID   string `json:"roleId"`
}

// UpdateUserRoleRequest repoints a user at another role.
type UpdateUserRoleRequest struct {
	RoleID string `json:"roleId"`
}

// UpdateProfileRequest mutates the caller's own email and fullname.
type UpdateProfileRequest struct {
	Email    string `json:"email"`
	Fullname string `json:"fullname"`
}

// ChangeUsernameRequest renames the caller's own account.
type ChangeUsernameRequest struct {
	Username string `json:"username"`
}

// RoleRequest carries the mutable role fields for create and update.
type RoleRequest struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	User        PermissionSet `json:"user"`
	MasterData  PermissionSet `json:"masterData"`
}

// PageInfo echoes the effective pagination plus the computed page count.
type PageInfo struct {
	Page      int    `json:"page"`
	Limit     int    `json:"limit"`
	SortBy    string `json:"sortBy,omitempty"`
	SortOrder string `json:"sortOrder"`
	PageCount int    `json:"pageCount"`
}

// ListUsersResponse is the unpaginated user listing.
type ListUsersResponse struct {
	Users []UserInfo `json:"users"`
}

// SearchUsersResponse is one page of user matches.
type SearchUsersResponse struct {
	Pagination PageInfo   `json:"pagination"`
	Data       []UserInfo `json:"data"`
}

// ListRolesResponse is the unpaginated role listing.
type ListRolesResponse struct {
	Roles []RoleInfo `json:"roles"`
}

// SearchRolesResponse is one page of role matches.
type SearchRolesResponse struct {
	Pagination PageInfo   `json:"pagination"`
	Data       []RoleInfo `json:"data"`
}

// HealthResponse is returned by the livez and readyz endpoints.
type HealthResponse struct {
	Status  string        `json:"status"`
	Version string        `json:"version,omitempty"`
	Uptime  string        `json:"uptime,omitempty"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports per-dependency readiness.
type HealthChecks struct {
	Database string `json:"database"`
}
