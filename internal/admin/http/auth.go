package http

import (
	"encoding/json"
	"net/http"

	"github.com/opsgarden/admind/internal/admin/service"
	"github.com/opsgarden/admind/pkg/adminsdk"
	"github.com/opsgarden/admind/pkg/apierr"
	"github.com/opsgarden/admind/pkg/httpx"
	"github.com/opsgarden/admind/pkg/slogx"
)

type AuthHandler struct {
	AuthService *service.AuthService
}

// decodeJSON reads a JSON request body into v, rejecting trailing garbage.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<20))
	if err := dec.Decode(v); err != nil {
		return apierr.Validation("request body is not valid JSON")
	}
	return nil
}

// HandleRegister godoc
//
//	@Summary		Register a new account
//	@Description	Creates an account under the default role and signs the user in, returning a token pair.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		adminsdk.RegisterRequest	true	"Registration payload"
//	@Success		201		{object}	adminsdk.TokenResponse		"Token pair and user data"
//	@Failure		400		{object}	adminsdk.ErrorResponse		"Validation or conflict error"
//	@Failure		500		{object}	adminsdk.ErrorResponse		"Internal server error"
//	@Router			/v1/auth/register [post].
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req adminsdk.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.WriteError(w, err)
		return
	}

	pair, err := h.AuthService.Register(r.Context(), service.RegisterParams{
		Username:        req.Username,
		Email:           req.Email,
		Fullname:        req.Fullname,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	slogx.FromContext(r.Context()).Info("user registered", "user_id", pair.Principal.UserID)
	httpx.WriteJSON(w, http.StatusCreated, tokenResponse(pair))
}

// HandleLogin godoc
//
//	@Summary		Log in
//	@Description	Authenticates a username/password pair and returns a token pair.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		adminsdk.LoginRequest	true	"Credentials"
//	@Success		200		{object}	adminsdk.TokenResponse	"Token pair and user data"
//	@Failure		400		{object}	adminsdk.ErrorResponse	"Validation error"
//	@Failure		404		{object}	adminsdk.ErrorResponse	"Unknown user or wrong password"
//	@Router			/v1/auth/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req adminsdk.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.WriteError(w, err)
		return
	}

	pair, err := h.AuthService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	slogx.FromContext(r.Context()).Info("user logged in", "user_id", pair.Principal.UserID)
	httpx.WriteJSON(w, http.StatusOK, tokenResponse(pair))
}

// HandleVerify godoc
//
//	@Summary		Verify the session
//	@Description	Re-validates the caller and mints a fresh token pair carrying the user's current role.
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	adminsdk.TokenResponse	"Fresh token pair"
//	@Failure		401	{object}	adminsdk.ErrorResponse	"Missing or invalid token"
//	@Failure		500	{object}	adminsdk.ErrorResponse	"Session owner no longer exists"
//	@Security		BearerAuth
//	@Router			/v1/auth/verify [get].
func (h *AuthHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFromContext(r.Context())

	pair, err := h.AuthService.Verify(r.Context(), userID)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, tokenResponse(pair))
}

// HandleRefresh godoc
//
//	@Summary		Refresh the token pair
//	@Description	Rotates an allowlisted refresh token into a brand new pair. The presented token leaves the allowlist.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		adminsdk.RefreshRequest	true	"Refresh token"
//	@Success		200		{object}	adminsdk.TokenResponse	"Fresh token pair"
//	@Failure		401		{object}	adminsdk.ErrorResponse	"Refresh token expired"
//	@Failure		500		{object}	adminsdk.ErrorResponse	"Refresh token unknown or revoked"
//	@Router			/v1/auth/refresh [post].
func (h *AuthHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	var req adminsdk.RefreshRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.WriteError(w, err)
		return
	}

	pair, err := h.AuthService.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, tokenResponse(pair))
}

// HandleLogout godoc
//
//	@Summary		Log out
//	@Description	Validates the bearer token and revokes every refresh token the caller holds.
//	@Tags			Auth
//	@Produce		json
//	@Success		204	"Logged out"
//	@Failure		400	{object}	adminsdk.ErrorResponse	"Malformed access token"
//	@Failure		401	{object}	adminsdk.ErrorResponse	"Expired access token"
//	@Security		BearerAuth
//	@Router			/v1/auth/logout [post].
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	token, ok := httpx.BearerToken(r)
	if !ok {
		httpx.WriteError(w, apierr.Validation("access token is required"))
		return
	}

	if err := h.AuthService.Logout(r.Context(), token); err != nil {
		httpx.WriteError(w, err)
		return
	}

	httpx.NoCache(w)
	w.WriteHeader(http.StatusNoContent)
}

// HandleRevoke godoc
//
//	@Summary		Revoke a refresh token
//	@Description	Withdraws a single refresh token from the allowlist. Revoking an unknown token succeeds.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body	adminsdk.RevokeRequest	true	"Refresh token"
//	@Success		204		"Revoked"
//	@Failure		400		{object}	adminsdk.ErrorResponse	"Validation error"
//	@Router			/v1/auth/revoke [post].
func (h *AuthHandler) HandleRevoke(w http.ResponseWriter, r *http.Request) {
	var req adminsdk.RevokeRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.WriteError(w, err)
		return
	}

	if err := h.AuthService.RevokeRefreshToken(r.Context(), req.RefreshToken); err != nil {
		httpx.WriteError(w, err)
		return
	}

	httpx.NoCache(w)
	w.WriteHeader(http.StatusNoContent)
}
