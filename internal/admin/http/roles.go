package http

import (
	"net/http"

	"github.com/opsgarden/admind/internal/admin/domain"
	"github.com/opsgarden/admind/internal/admin/service"
	"github.com/opsgarden/admind/pkg/adminsdk"
	"github.com/opsgarden/admind/pkg/httpx"
	"github.com/opsgarden/admind/pkg/slogx"
)

type RolesHandler struct {
	RoleService *service.RoleService
}

func roleParams(req adminsdk.RoleRequest) service.RoleParams {
	return service.RoleParams{
		Name:        req.Name,
		Description: req.Description,
		User:        domain.PermissionSet(req.User),
		MasterData:  domain.PermissionSet(req.MasterData),
	}
}

// HandleList godoc
//
//	@Summary		List roles
//	@Description	Returns every non-archived role. Requires masterData view permission.
//	@Tags			Roles
//	@Produce		json
//	@Success		200	{object}	adminsdk.ListRolesResponse
//	@Failure		401	{object}	adminsdk.ErrorResponse	"Missing or invalid token"
//	@Failure		403	{object}	adminsdk.ErrorResponse	"Missing permission"
//	@Security		BearerAuth
//	@Router			/v1/roles [get].
func (h *RolesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	roles, err := h.RoleService.GetAll(r.Context())
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, adminsdk.ListRolesResponse{Roles: roleInfos(roles)})
}

// HandleSearch godoc
//
//	@Summary		Search roles
//	@Description	Pages over non-archived roles whose name contains q, case-insensitively. Requires masterData view permission.
//	@Tags			Roles
//	@Produce		json
//	@Param			q			query		string	false	"Substring to match"
//	@Param			page		query		int		false	"1-indexed page"	default(1)
//	@Param			limit		query		int		false	"Page size"			default(10)
//	@Param			sortBy		query		string	false	"NAME | CREATED_AT"
//	@Param			sortOrder	query		string	false	"ASC | DESC"	default(DESC)
//	@Success		200			{object}	adminsdk.SearchRolesResponse
//	@Failure		401			{object}	adminsdk.ErrorResponse	"Missing or invalid token"
//	@Failure		403			{object}	adminsdk.ErrorResponse	"Missing permission"
//	@Security		BearerAuth
//	@Router			/v1/roles/search [get].
func (h *RolesHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	query, p := paginationFromQuery(r)

	res, err := h.RoleService.Search(r.Context(), query, p)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, adminsdk.SearchRolesResponse{
		Pagination: pageInfo(res.PageInfo),
		Data:       roleInfos(res.Data),
	})
}

// HandleGet godoc
//
//	@Summary		Get a role
//	@Description	Fetches a role by id, archived ones included so user references stay resolvable. Requires masterData view permission.
//	@Tags			Roles
//	@Produce		json
//	@Param			id	path		string	true	"Role id"
//	@Success		200	{object}	adminsdk.RoleInfo
//	@Failure		404	{object}	adminsdk.ErrorResponse	"Unknown role"
//	@Security		BearerAuth
//	@Router			/v1/roles/{id} [get].
func (h *RolesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	role, err := h.RoleService.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, roleInfo(role))
}

// HandleCreate godoc
//
//	@Summary		Create a role
//	@Description	Inserts an editable role with the given permission matrix. Requires masterData create permission.
//	@Tags			Roles
//	@Accept			json
//	@Produce		json
//	@Param			request	body		adminsdk.RoleRequest	true	"New role"
//	@Success		201		{object}	adminsdk.RoleInfo
//	@Failure		400		{object}	adminsdk.ErrorResponse	"Validation or conflict error"
//	@Failure		403		{object}	adminsdk.ErrorResponse	"Missing permission"
//	@Security		BearerAuth
//	@Router			/v1/roles [post].
func (h *RolesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req adminsdk.RoleRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.WriteError(w, err)
		return
	}

	role, err := h.RoleService.Create(r.Context(), roleParams(req))
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	slogx.FromContext(r.Context()).Info("role created",
		"role_id", role.ID,
		"created_by", httpx.UserIDFromContext(r.Context()),
	)
	httpx.WriteJSON(w, http.StatusCreated, roleInfo(role))
}

// HandleUpdate godoc
//
//	@Summary		Update a role
//	@Description	Replaces an editable role's name, description and permission matrix. Seeded roles are rejected untouched. Requires masterData update permission.
//	@Tags			Roles
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Role id"
//	@Param			request	body		adminsdk.RoleRequest	true	"Replacement fields"
//	@Success		200		{object}	adminsdk.RoleInfo
//	@Failure		400		{object}	adminsdk.ErrorResponse	"Validation, conflict or non-editable role"
//	@Failure		404		{object}	adminsdk.ErrorResponse	"Unknown role"
//	@Security		BearerAuth
//	@Router			/v1/roles/{id} [put].
func (h *RolesHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req adminsdk.RoleRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.WriteError(w, err)
		return
	}

	role, err := h.RoleService.Update(r.Context(), r.PathValue("id"), roleParams(req))
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, roleInfo(role))
}

// HandleDelete godoc
//
//	@Summary		Delete a role
//	@Description	Archives an editable role. It disappears from listings but stays resolvable by id. Requires masterData delete permission.
//	@Tags			Roles
//	@Produce		json
//	@Param			id	path	string	true	"Role id"
//	@Success		204	"Archived"
//	@Failure		400	{object}	adminsdk.ErrorResponse	"Non-editable role"
//	@Failure		404	{object}	adminsdk.ErrorResponse	"Unknown or already archived role"
//	@Security		BearerAuth
//	@Router			/v1/roles/{id} [delete].
func (h *RolesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.RoleService.Delete(r.Context(), r.PathValue("id")); err != nil {
		httpx.WriteError(w, err)
		return
	}

	slogx.FromContext(r.Context()).Info("role archived",
		"role_id", r.PathValue("id"),
		"archived_by", httpx.UserIDFromContext(r.Context()),
	)
	w.WriteHeader(http.StatusNoContent)
}
