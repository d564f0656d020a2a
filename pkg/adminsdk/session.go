package adminsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"
)

// refreshBuffer is how long before the real expiry a session refreshes its
// access token.
const refreshBuffer = 30 * time.Second

// Session is an authenticated connection. Every method obtains a valid
// access token first, refreshing through the rotation endpoint when the
// current one nears expiry.
type Session struct {
	client *SDKClient

	mu           sync.RWMutex
	accessToken  string
	refreshToken string
	expiresAt    time.Time
}

func newSession(client *SDKClient, tokens *TokenResponse) *Session {
	return &Session{
		client:       client,
		accessToken:  tokens.AccessToken,
		refreshToken: tokens.RefreshToken,
		expiresAt:    time.Now().Add(time.Duration(tokens.ExpiresIn)*time.Second - refreshBuffer),
	}
}

// AccessToken returns the current access token without checking expiry.
func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

// RefreshToken returns the current refresh token.
func (s *Session) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshToken
}

// getValidToken returns a usable access token, rotating the pair when the
// stored one is about to expire.
func (s *Session) getValidToken(ctx context.Context) (string, error) {
	s.mu.RLock()
	if time.Now().Before(s.expiresAt) {
		token := s.accessToken
		s.mu.RUnlock()
		return token, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	// Another goroutine may have refreshed while we waited for the lock.
	if time.Now().Before(s.expiresAt) {
		return s.accessToken, nil
	}
	if s.refreshToken == "" {
		return "", fmt.Errorf("adminsdk: access token expired and no refresh token available")
	}

	tokens, err := s.client.Refresh(ctx, s.refreshToken)
	if err != nil {
		return "", fmt.Errorf("adminsdk: refreshing token: %w", err)
	}

	s.accessToken = tokens.AccessToken
	s.refreshToken = tokens.RefreshToken
	s.expiresAt = time.Now().Add(time.Duration(tokens.ExpiresIn)*time.Second - refreshBuffer)

	return s.accessToken, nil
}

// Verify asks the server to re-validate the session owner, replacing the
// session's token pair with the freshly minted one.
func (s *Session) Verify(ctx context.Context) (*TokenResponse, error) {
	var tokens TokenResponse
	if err := s.doJSON(ctx, http.MethodGet, "/v1/auth/verify", nil, &tokens); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.accessToken = tokens.AccessToken
	s.refreshToken = tokens.RefreshToken
	s.expiresAt = time.Now().Add(time.Duration(tokens.ExpiresIn)*time.Second - refreshBuffer)
	s.mu.Unlock()

	return &tokens, nil
}

// Logout ends the session server-side, revoking its refresh tokens.
func (s *Session) Logout(ctx context.Context) error {
	return s.doJSON(ctx, http.MethodPost, "/v1/auth/logout", nil, nil)
}

// GetProfile fetches the caller's own account.
func (s *Session) GetProfile(ctx context.Context) (*UserInfo, error) {
	var user UserInfo
	if err := s.doJSON(ctx, http.MethodGet, "/v1/profile", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile mutates the caller's email and fullname.
func (s *Session) UpdateProfile(ctx context.Context, req UpdateProfileRequest) (*UserInfo, error) {
	var user UserInfo
	if err := s.doJSON(ctx, http.MethodPut, "/v1/profile", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ChangeUsername renames the caller's account.
func (s *Session) ChangeUsername(ctx context.Context, username string) (*UserInfo, error) {
	var user UserInfo
	req := ChangeUsernameRequest{Username: username}
	if err := s.doJSON(ctx, http.MethodPut, "/v1/profile/username", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ListUsers fetches every active user. Requires user view permission.
func (s *Session) ListUsers(ctx context.Context) (*ListUsersResponse, error) {
	var out ListUsersResponse
	if err := s.doJSON(ctx, http.MethodGet, "/v1/users", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SearchUsers pages over users matching query. Requires user view
// permission.
func (s *Session) SearchUsers(ctx context.Context, query string, page, limit int, sortBy, sortOrder string) (*SearchUsersResponse, error) {
	var out SearchUsersResponse
	path := "/v1/users/search?" + searchQuery(query, page, limit, sortBy, sortOrder)
	if err := s.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetUser fetches a single user. Requires user view permission.
func (s *Session) GetUser(ctx context.Context, id string) (*UserInfo, error) {
	var user UserInfo
	if err := s.doJSON(ctx, http.MethodGet, "/v1/users/"+url.PathEscape(id), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUser provisions an account. Requires user create permission.
func (s *Session) CreateUser(ctx context.Context, req CreateUserRequest) (*UserInfo, error) {
	var user UserInfo
	if err := s.doJSON(ctx, http.MethodPost, "/v1/users", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserPermissions fetches a user's current role straight from storage.
// Requires user view permission.
func (s *Session) GetUserPermissions(ctx context.Context, id string) (*RoleInfo, error) {
	var role RoleInfo
	if err := s.doJSON(ctx, http.MethodGet, "/v1/users/"+url.PathEscape(id)+"/permissions", nil, &role); err != nil {
		return nil, err
	}
	return &role, nil
}

// UpdateUserRole repoints a user at another role. Requires user update
// permission.
func (s *Session) UpdateUserRole(ctx context.Context, id, roleID string) (*UserInfo, error) {
	var user UserInfo
	req := UpdateUserRoleRequest{RoleID: roleID}
	if err := s.doJSON(ctx, http.MethodPut, "/v1/users/"+url.PathEscape(id)+"/role", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser soft-deletes an account. Requires user delete permission.
func (s *Session) DeleteUser(ctx context.Context, id string) error {
	return s.doJSON(ctx, http.MethodDelete, "/v1/users/"+url.PathEscape(id), nil, nil)
}

// ListRoles fetches every active role. Requires masterData view permission.
func (s *Session) ListRoles(ctx context.Context) (*ListRolesResponse, error) {
	var out ListRolesResponse
	if err := s.doJSON(ctx, http.MethodGet, "/v1/roles", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SearchRoles pages over roles matching query. Requires masterData view
// permission.
func (s *Session) SearchRoles(ctx context.Context, query string, page, limit int, sortBy, sortOrder string) (*SearchRolesResponse, error) {
	var out SearchRolesResponse
	path := "/v1/roles/search?" + searchQuery(query, page, limit, sortBy, sortOrder)
	if err := s.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetRole fetches a single role. Requires masterData view permission.
func (s *Session) GetRole(ctx context.Context, id string) (*RoleInfo, error) {
	var role RoleInfo
	if err := s.doJSON(ctx, http.MethodGet, "/v1/roles/"+url.PathEscape(id), nil, &role); err != nil {
		return nil, err
	}
	return &role, nil
}

// CreateRole inserts an editable role. Requires masterData create
// permission.
func (s *Session) CreateRole(ctx context.Context, req RoleRequest) (*RoleInfo, error) {
	var role RoleInfo
	if err := s.doJSON(ctx, http.MethodPost, "/v1/roles", req, &role); err != nil {
		return nil, err
	}
	return &role, nil
}

// UpdateRole replaces a role's mutable fields. Requires masterData update
// permission.
func (s *Session) UpdateRole(ctx context.Context, id string, req RoleRequest) (*RoleInfo, error) {
	var role RoleInfo
	if err := s.doJSON(ctx, http.MethodPut, "/v1/roles/"+url.PathEscape(id), req, &role); err != nil {
		return nil, err
	}
	return &role, nil
}

// DeleteRole archives a role. Requires masterData delete permission.
func (s *Session) DeleteRole(ctx context.Context, id string) error {
	return s.doJSON(ctx, http.MethodDelete, "/v1/roles/"+url.PathEscape(id), nil, nil)
}

func searchQuery(query string, page, limit int, sortBy, sortOrder string) string {
	values := url.Values{}
	if query != "" {
		values.Set("q", query)
	}
	if page > 0 {
		values.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		values.Set("limit", strconv.Itoa(limit))
	}
	if sortBy != "" {
		values.Set("sortBy", sortBy)
	}
	if sortOrder != "" {
		values.Set("sortOrder", sortOrder)
	}
	return values.Encode()
}

// doJSON performs an authenticated JSON round trip.
func (s *Session) doJSON(ctx context.Context, method, path string, in, out any) error {
	token, err := s.getValidToken(ctx)
	if err != nil {
		return err
	}

	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("adminsdk: encoding request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.client.url(path), body)
	if err != nil {
		return fmt.Errorf("adminsdk: creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.client.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("adminsdk: sending request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return parseAPIError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("adminsdk: decoding response: %w", err)
	}
	return nil
}
