package http

import (
	"net/http"

	"github.com/opsgarden/admind/internal/admin/service"
	"github.com/opsgarden/admind/pkg/adminsdk"
	"github.com/opsgarden/admind/pkg/httpx"
)

// ProfileHandler serves the caller's own account. No permission gate beyond
// authentication: everyone may read and edit themselves.
type ProfileHandler struct {
	UserService *service.UserService
}

// HandleGet godoc
//
//	@Summary		Get own profile
//	@Description	Returns the caller's account with its resolved role.
//	@Tags			Profile
//	@Produce		json
//	@Success		200	{object}	adminsdk.UserInfo
//	@Failure		401	{object}	adminsdk.ErrorResponse	"Missing or invalid token"
//	@Security		BearerAuth
//	@Router			/v1/profile [get].
func (h *ProfileHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	user, err := h.UserService.GetProfile(r.Context(), httpx.UserIDFromContext(r.Context()))
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, userInfo(user))
}

// HandleUpdate godoc
//
//	@Summary		Update own profile
//	@Description	Mutates the caller's email and fullname.
//	@Tags			Profile
//	@Accept			json
//	@Produce		json
//	@Param			request	body		adminsdk.UpdateProfileRequest	true	"New profile fields"
//	@Success		200		{object}	adminsdk.UserInfo
//	@Failure		400		{object}	adminsdk.ErrorResponse	"Validation or conflict error"
//	@Security		BearerAuth
//	@Router			/v1/profile [put].
func (h *ProfileHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req adminsdk.UpdateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.WriteError(w, err)
		return
	}

	user, err := h.UserService.UpdateProfile(r.Context(),
		httpx.UserIDFromContext(r.Context()), req.Email, req.Fullname)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, userInfo(user))
}

// HandleChangeUsername godoc
//
//	@Summary		Change own username
//	@Description	Renames the caller's account. Already-issued tokens keep the old username until refresh.
//	@Tags			Profile
//	@Accept			json
//	@Produce		json
//	@Param			request	body		adminsdk.ChangeUsernameRequest	true	"New username"
//	@Success		200		{object}	adminsdk.UserInfo
//	@Failure		400		{object}	adminsdk.ErrorResponse	"Validation or conflict error"
//	@Security		BearerAuth
//	@Router			/v1/profile/username [put].
func (h *ProfileHandler) HandleChangeUsername(w http.ResponseWriter, r *http.Request) {
	var req adminsdk.ChangeUsernameRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.WriteError(w, err)
		return
	}

	user, err := h.UserService.ChangeUsername(r.Context(),
		httpx.UserIDFromContext(r.Context()), req.Username)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, userInfo(user))
}
