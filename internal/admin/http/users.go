package http

import (
	"net/http"

	"github.com/opsgarden/admind/internal/admin/service"
	"github.com/opsgarden/admind/pkg/adminsdk"
	"github.com/opsgarden/admind/pkg/httpx"
	"github.com/opsgarden/admind/pkg/slogx"
)

type UsersHandler struct {
	UserService *service.UserService
}

// HandleList godoc
//
//	@Summary		List users
//	@Description	Returns every active user with its resolved role. Requires user view permission.
//	@Tags			Users
//	@Produce		json
//	@Success		200	{object}	adminsdk.ListUsersResponse
//	@Failure		401	{object}	adminsdk.ErrorResponse	"Missing or invalid token"
//	@Failure		403	{object}	adminsdk.ErrorResponse	"Missing permission"
//	@Security		BearerAuth
//	@Router			/v1/users [get].
func (h *UsersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	users, err := h.UserService.GetAll(r.Context())
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, adminsdk.ListUsersResponse{Users: userInfos(users)})
}

// HandleSearch godoc
//
//	@Summary		Search users
//	@Description	Pages over users whose username or fullname contains q, case-insensitively. Requires user view permission.
//	@Tags			Users
//	@Produce		json
//	@Param			q			query		string	false	"Substring to match"
//	@Param			page		query		int		false	"1-indexed page"	default(1)
//	@Param			limit		query		int		false	"Page size"			default(10)
//	@Param			sortBy		query		string	false	"USERNAME | FULLNAME | ROLE | CREATED_AT"
//	@Param			sortOrder	query		string	false	"ASC | DESC"	default(DESC)
//	@Success		200			{object}	adminsdk.SearchUsersResponse
//	@Failure		401			{object}	adminsdk.ErrorResponse	"Missing or invalid token"
//	@Failure		403			{object}	adminsdk.ErrorResponse	"Missing permission"
//	@Security		BearerAuth
//	@Router			/v1/users/search [get].
func (h *UsersHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	query, p := paginationFromQuery(r)

	res, err := h.UserService.Search(r.Context(), query, p)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, adminsdk.SearchUsersResponse{
		Pagination: pageInfo(res.PageInfo),
		Data:       userInfos(res.Data),
	})
}

// HandleGet godoc
//
//	@Summary		Get a user
//	@Description	Fetches a single active user by id. Requires user view permission.
//	@Tags			Users
//	@Produce		json
//	@Param			id	path		string	true	"User id"
//	@Success		200	{object}	adminsdk.UserInfo
//	@Failure		404	{object}	adminsdk.ErrorResponse	"Unknown or deleted user"
//	@Security		BearerAuth
//	@Router			/v1/users/{id} [get].
func (h *UsersHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	user, err := h.UserService.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, userInfo(user))
}

// HandleCreate godoc
//
//	@Summary		Create a user
//	@Description	Provisions an account with a username-derived initial password. Requires user create permission.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			request	body		adminsdk.CreateUserRequest	true	"New account"
//	@Success		201		{object}	adminsdk.UserInfo
//	@Failure		400		{object}	adminsdk.ErrorResponse	"Validation or conflict error"
//	@Failure		403		{object}	adminsdk.ErrorResponse	"Missing permission"
//	@Security		BearerAuth
//	@Router			/v1/users [post].
func (h *UsersHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req adminsdk.CreateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.WriteError(w, err)
		return
	}

	user, err := h.UserService.Create(r.Context(), service.CreateUserParams{
		Username: req.Username,
		Email:    req.Email,
		Fullname: req.Fullname,
		RoleID:   req.RoleID,
	})
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	slogx.FromContext(r.Context()).Info("user created",
		"user_id", user.ID,
		"created_by", httpx.UserIDFromContext(r.Context()),
	)
	httpx.WriteJSON(w, http.StatusCreated, userInfo(user))
}

// HandlePermissions godoc
//
//	@Summary		Get a user's permissions
//	@Description	Returns the user's current role straight from storage, not the possibly stale token snapshot. Requires user view permission.
//	@Tags			Users
//	@Produce		json
//	@Param			id	path		string	true	"User id"
//	@Success		200	{object}	adminsdk.RoleInfo
//	@Failure		404	{object}	adminsdk.ErrorResponse	"Unknown or deleted user"
//	@Security		BearerAuth
//	@Router			/v1/users/{id}/permissions [get].
func (h *UsersHandler) HandlePermissions(w http.ResponseWriter, r *http.Request) {
	role, err := h.UserService.GetPermissions(r.Context(), r.PathValue("id"))
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, roleInfo(role))
}

// HandleUpdateRole godoc
//
//	@Summary		Update a user's role
//	@Description	Repoints the user at another role. Outstanding access tokens keep the old snapshot until refresh. Requires user update permission.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string							true	"User id"
//	@Param			request	body		adminsdk.UpdateUserRoleRequest	true	"Target role"
//	@Success		200		{object}	adminsdk.UserInfo
//	@Failure		400		{object}	adminsdk.ErrorResponse	"Unknown role"
//	@Failure		404		{object}	adminsdk.ErrorResponse	"Unknown or deleted user"
//	@Security		BearerAuth
//	@Router			/v1/users/{id}/role [put].
func (h *UsersHandler) HandleUpdateRole(w http.ResponseWriter, r *http.Request) {
	var req adminsdk.UpdateUserRoleRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.WriteError(w, err)
		return
	}

	user, err := h.UserService.UpdateRole(r.Context(), r.PathValue("id"), req.RoleID)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, userInfo(user))
}

// HandleDelete godoc
//
//	@Summary		Delete a user
//	@Description	Soft-deletes the account, freeing its username and email for reuse. Requires user delete permission.
//	@Tags			Users
//	@Produce		json
//	@Param			id	path	string	true	"User id"
//	@Success		204	"Deleted"
//	@Failure		404	{object}	adminsdk.ErrorResponse	"Unknown or already deleted user"
//	@Security		BearerAuth
//	@Router			/v1/users/{id} [delete].
func (h *UsersHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.UserService.Delete(r.Context(), r.PathValue("id")); err != nil {
		httpx.WriteError(w, err)
		return
	}

	slogx.FromContext(r.Context()).Info("user deleted",
		"user_id", r.PathValue("id"),
		"deleted_by", httpx.UserIDFromContext(r.Context()),
	)
	w.WriteHeader(http.StatusNoContent)
}
