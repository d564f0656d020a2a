package http

import (
	"net/http"
	"strconv"

	"github.com/opsgarden/admind/internal/admin/domain"
	"github.com/opsgarden/admind/pkg/adminsdk"
)

func roleInfo(r domain.Role) adminsdk.RoleInfo {
	return adminsdk.RoleInfo{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		User:        adminsdk.PermissionSet(r.User),
		MasterData:  adminsdk.PermissionSet(r.MasterData),
		Editable:    r.Editable,
		Archived:    r.Archived,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func userInfo(u domain.UserWithRole) adminsdk.UserInfo {
	return adminsdk.UserInfo{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Fullname:  u.Fullname,
		Avatar:    u.Avatar,
		Role:      roleInfo(u.Role),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func userInfos(users []domain.UserWithRole) []adminsdk.UserInfo {
	out := make([]adminsdk.UserInfo, len(users))
	for i, u := range users {
		out[i] = userInfo(u)
	}
	return out
}

func roleInfos(roles []domain.Role) []adminsdk.RoleInfo {
	out := make([]adminsdk.RoleInfo, len(roles))
	for i, r := range roles {
		out[i] = roleInfo(r)
	}
	return out
}

func tokenResponse(pair domain.TokenPair) adminsdk.TokenResponse {
	return adminsdk.TokenResponse{
		UserData: adminsdk.PrincipalInfo{
			UserID:   pair.Principal.UserID,
			Username: pair.Principal.Username,
			Fullname: pair.Principal.Fullname,
			Avatar:   pair.Principal.Avatar,
			Role:     roleInfo(pair.Principal.Role),
		},
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int(pair.ExpiresIn.Seconds()),
	}
}

func pageInfo(p domain.PageInfo) adminsdk.PageInfo {
	return adminsdk.PageInfo{
		Page:      p.Page,
		Limit:     p.Limit,
		SortBy:    p.Sort.By,
		SortOrder: p.Sort.Order,
		PageCount: p.PageCount,
	}
}

// paginationFromQuery reads q/page/limit/sortBy/sortOrder query parameters.
// Out-of-range values fall back to the Normalize defaults downstream.
func paginationFromQuery(r *http.Request) (string, domain.Pagination) {
	q := r.URL.Query()

	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	return q.Get("q"), domain.Pagination{
		Page:  page,
		Limit: limit,
		Sort: domain.Sort{
			By:    q.Get("sortBy"),
			Order: q.Get("sortOrder"),
		},
	}
}
