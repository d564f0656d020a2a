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
	"github.com/opsgarden/admind/pkg/cryptox"
	"github.com/opsgarden/admind/pkg/idx"
	"github.com/opsgarden/admind/pkg/jwtx"
)

// AuthService owns the token lifecycle: register, login, verify, refresh and
// logout. Every successful operation that authenticates a user mints a fresh
// access/refresh pair; refresh tokens are additionally allowlisted in the
// store and tracked by the Registry for background eviction.
type AuthService struct {
	Store    store.Store
	Registry *Registry
	Logger   *slog.Logger

	AccessSigner    jwtx.Signer
	AccessVerifier  jwtx.Verifier
	RefreshSigner   jwtx.Signer
	RefreshVerifier jwtx.Verifier

	Issuer     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// RegisterParams are the self-registration inputs.
type RegisterParams struct {
	Username        string
	Email           string
	Fullname        string
	Password        string
	ConfirmPassword string
}

// Register creates an account under the seeded default role and signs the
// new user straight in.
func (s *AuthService) Register(ctx context.Context, p RegisterParams) (domain.TokenPair, error) {
	p.Username = strings.TrimSpace(p.Username)
	p.Email = strings.TrimSpace(p.Email)
	p.Fullname = strings.TrimSpace(p.Fullname)

	if p.Username == "" || p.Password == "" {
		return domain.TokenPair{}, apierr.Validation("username and password are required")
	}
	if p.Password != p.ConfirmPassword {
		return domain.TokenPair{}, apierr.Validation("confirmation password does not match")
	}

	available, err := s.Store.Users().IsUsernameAvailable(ctx, p.Username, "")
	if err != nil {
		return domain.TokenPair{}, apierr.Internal("failed to check username availability")
	}
	if !available {
		return domain.TokenPair{}, apierr.Conflict(fmt.Sprintf("username %s is taken, please use other username", p.Username))
	}

	if p.Email != "" {
		available, err = s.Store.Users().IsEmailAvailable(ctx, p.Email, "")
		if err != nil {
			return domain.TokenPair{}, apierr.Internal("failed to check email availability")
		}
		if !available {
			return domain.TokenPair{}, apierr.Conflict(fmt.Sprintf("email %s is already registered, please use other email", p.Email))
		}
	}

	role, err := s.Store.Roles().GetRoleByName(ctx, domain.RoleNameNormal)
	if err != nil {
		s.Logger.Error("default role missing during registration", "error", err)
		return domain.TokenPair{}, apierr.Internal("default role is not configured")
	}

	now := time.Now().UTC()
	user := domain.User{
		ID:             idx.New().String(),
		Username:       p.Username,
		PasswordDigest: cryptox.DigestPassword(p.Password),
		Email:          p.Email,
		Fullname:       p.Fullname,
		RoleID:         role.ID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			// A concurrent registration won the availability race.
			return domain.TokenPair{}, apierr.Conflict("username or email is already in use")
		}
		s.Logger.Error("failed to create user", "error", err)
		return domain.TokenPair{}, apierr.Internal("failed to create user")
	}

	principal := domain.Principal{
		UserID:   user.ID,
		Username: user.Username,
		Fullname: user.Fullname,
		Avatar:   user.Avatar,
		Role:     role,
	}
	return s.issuePair(ctx, principal)
}

// Login authenticates a username/password pair. A missing user and a wrong
// password produce the same error so the response never confirms which half
// was wrong.
func (s *AuthService) Login(ctx context.Context, username, password string) (domain.TokenPair, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return domain.TokenPair{}, apierr.Validation("username and password are required")
	}

	user, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.TokenPair{}, apierr.NotFound("user not found")
		}
		return domain.TokenPair{}, apierr.Internal("failed to load user")
	}

	if !cryptox.VerifyPassword(password, user.PasswordDigest) {
		return domain.TokenPair{}, apierr.NotFound("user not found")
	}

	return s.issuePair(ctx, principalOf(user))
}

// Verify re-validates a session owner by id and mints a fresh pair with the
// user's current role. Designed for an authenticated "am I still valid"
// round trip, so the principal has already passed token verification.
func (s *AuthService) Verify(ctx context.Context, userID string) (domain.TokenPair, error) {
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.TokenPair{}, apierr.Internal("login failed, user data not found")
		}
		return domain.TokenPair{}, apierr.Internal("failed to load user")
	}
	return s.issuePair(ctx, principalOf(user))
}

// Refresh rotates a refresh token: the presented token must both verify
// cryptographically and still sit on the allowlist. On success the old
// allowlist row is atomically replaced by a row for the new token.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (domain.TokenPair, error) {
	if refreshToken == "" {
		return domain.TokenPair{}, apierr.Validation("refresh token is required")
	}

	hash := cryptox.FingerprintToken(refreshToken)

	rec, err := s.Store.RefreshTokens().GetRefreshRecordByHash(ctx, hash)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.TokenPair{}, apierr.Internal("refresh token not found")
		}
		return domain.TokenPair{}, apierr.Internal("failed to load refresh token")
	}

	now := time.Now().UTC()
	if now.After(rec.ExpiresAt) {
		// Lazy eviction in case the sweeper hasn't reached this row yet.
		_ = s.Store.RefreshTokens().DeleteRefreshRecord(ctx, hash)
		s.Registry.Forget(hash)
		return domain.TokenPair{}, apierr.Expired("refresh token is expired")
	}

	// The allowlist row is authoritative for liveness (checked above), so
	// the payload only needs a signature check. The old timestamps are
	// stripped before re-minting; the new pair gets fresh ones.
	claims, err := s.RefreshVerifier.Decode(refreshToken)
	if err != nil {
		return domain.TokenPair{}, apierr.Expired("refresh token is expired")
	}

	principal := PrincipalFromClaims(claims.WithoutTimestamps())
	pair, _, refresh, err := s.mintPair(principal, now)
	if err != nil {
		return domain.TokenPair{}, err
	}

	newHash := cryptox.FingerprintToken(refresh)
	newRec := domain.RefreshRecord{
		ID:        idx.New().String(),
		UserID:    principal.UserID,
		TokenHash: newHash,
		ExpiresAt: now.Add(s.refreshTTL()),
		CreatedAt: now,
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.RefreshTokens().DeleteRefreshRecord(ctx, hash); err != nil {
			return err
		}
		return tx.RefreshTokens().CreateRefreshRecord(ctx, newRec)
	})
	if err != nil {
		s.Logger.Error("failed to rotate refresh token", "error", err)
		return domain.TokenPair{}, apierr.Internal("failed to rotate refresh token")
	}

	s.Registry.Forget(hash)
	s.Registry.Track(newHash, principal.UserID, newRec.ExpiresAt)

	return pair, nil
}

// Logout validates the caller's access token and then best-effort revokes
// every outstanding refresh token for that user, so the session cannot be
// resurrected via refresh.
func (s *AuthService) Logout(ctx context.Context, accessToken string) error {
	if accessToken == "" {
		return apierr.Validation("access token is required")
	}

	claims, err := s.AccessVerifier.Verify(accessToken)
	if err != nil {
		if errors.Is(err, jwtx.ErrExpired) {
			return apierr.Expired("access token is expired")
		}
		return apierr.Validation("invalid access token")
	}

	if err := s.Store.RefreshTokens().DeleteUserRefreshRecords(ctx, claims.Subject); err != nil {
		// Revocation is best effort. The allowlist rows still expire on
		// their own, so a failure here doesn't keep the session alive
		// forever.
		s.Logger.Error("failed to revoke refresh tokens on logout", "error", err, "user_id", claims.Subject)
	}
	s.Registry.ForgetUser(claims.Subject)

	return nil
}

// RevokeRefreshToken withdraws a single refresh token from the allowlist.
// Revoking an unknown token is a no-op.
func (s *AuthService) RevokeRefreshToken(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return apierr.Validation("refresh token is required")
	}

	hash := cryptox.FingerprintToken(refreshToken)
	if err := s.Store.RefreshTokens().DeleteRefreshRecord(ctx, hash); err != nil {
		return apierr.Internal("failed to revoke refresh token")
	}
	s.Registry.Forget(hash)
	return nil
}

// issuePair mints a new pair and allowlists the refresh half.
func (s *AuthService) issuePair(ctx context.Context, principal domain.Principal) (domain.TokenPair, error) {
	now := time.Now().UTC()

	pair, _, refresh, err := s.mintPair(principal, now)
	if err != nil {
		return domain.TokenPair{}, err
	}

	hash := cryptox.FingerprintToken(refresh)
	rec := domain.RefreshRecord{
		ID:        idx.New().String(),
		UserID:    principal.UserID,
		TokenHash: hash,
		ExpiresAt: now.Add(s.refreshTTL()),
		CreatedAt: now,
	}
	if err := s.Store.RefreshTokens().CreateRefreshRecord(ctx, rec); err != nil {
		s.Logger.Error("failed to allowlist refresh token", "error", err)
		return domain.TokenPair{}, apierr.Internal("failed to issue tokens")
	}
	s.Registry.Track(hash, principal.UserID, rec.ExpiresAt)

	return pair, nil
}

// mintPair signs an access and a refresh token for the principal. It does
// not touch the store.
func (s *AuthService) mintPair(principal domain.Principal, now time.Time) (domain.TokenPair, string, string, error) {
	snapshot := roleSnapshot(principal.Role)

	accessClaims := jwtx.NewClaims(
		principal.UserID, principal.Username, principal.Fullname, principal.Avatar,
		snapshot, s.accessTTL(), s.Issuer, now,
	)
	access, err := s.AccessSigner.Sign(accessClaims)
	if err != nil {
		return domain.TokenPair{}, "", "", apierr.Internal("failed to sign access token")
	}

	refreshClaims := jwtx.NewClaims(
		principal.UserID, principal.Username, principal.Fullname, principal.Avatar,
		snapshot, s.refreshTTL(), s.Issuer, now,
	)
	refresh, err := s.RefreshSigner.Sign(refreshClaims)
	if err != nil {
		return domain.TokenPair{}, "", "", apierr.Internal("failed to sign refresh token")
	}

	return domain.TokenPair{
		Principal:    principal,
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    jwtx.ExpiresIn(accessClaims, now),
	}, access, refresh, nil
}

func (s *AuthService) accessTTL() time.Duration {
	if s.AccessTTL > 0 {
		return s.AccessTTL
	}
	return jwtx.DefaultAccessTokenTTL
}

func (s *AuthService) refreshTTL() time.Duration {
	if s.RefreshTTL > 0 {
		return s.RefreshTTL
	}
	// Conventionally double the access lifetime.
	return 2 * s.accessTTL()
}

// principalOf builds a principal from a stored user and its joined role.
func principalOf(u domain.UserWithRole) domain.Principal {
	return domain.Principal{
		UserID:   u.ID,
		Username: u.Username,
		Fullname: u.Fullname,
		Avatar:   u.Avatar,
		Role:     u.Role,
	}
}

// roleSnapshot converts a role into the token-payload form.
func roleSnapshot(r domain.Role) jwtx.RoleSnapshot {
	return jwtx.RoleSnapshot{
		ID:         r.ID,
		Name:       r.Name,
		User:       jwtx.PermissionFlags(r.User),
		MasterData: jwtx.PermissionFlags(r.MasterData),
	}
}

// PrincipalFromClaims rebuilds the principal carried in verified token
// claims, for callers like HTTP middleware that already hold them. Only
// the identity fields and the permission matrix survive the round trip;
// role metadata like description or timestamps is not part of the payload.
func PrincipalFromClaims(c jwtx.Claims) domain.Principal {
	return domain.Principal{
		UserID:   c.Subject,
		Username: c.Username,
		Fullname: c.Fullname,
		Avatar:   c.Avatar,
		Role: domain.Role{
			ID:         c.Role.ID,
			Name:       c.Role.Name,
			User:       domain.PermissionSet(c.Role.User),
			MasterData: domain.PermissionSet(c.Role.MasterData),
		},
	}
}

// PrincipalFromAccessToken verifies an access token and returns the embedded
// principal. Used by HTTP middleware.
func (s *AuthService) PrincipalFromAccessToken(token string) (domain.Principal, error) {
	claims, err := s.AccessVerifier.Verify(token)
	if err != nil {
		if errors.Is(err, jwtx.ErrExpired) {
			return domain.Principal{}, apierr.Expired("access token is expired")
		}
		return domain.Principal{}, apierr.Expired("invalid access token")
	}
	return PrincipalFromClaims(claims), nil
}
