package domain

// Sort keys accepted by the search endpoints. Unknown keys fall back to
// creation time, matching the listing default.
const (
	SortByUsername  = "USERNAME"
	SortByFullname  = "FULLNAME"
	SortByRole      = "ROLE"
	SortByName      = "NAME"
	SortByCreatedAt = "CREATED_AT"

	SortAsc  = "ASC"
	SortDesc = "DESC"
)

// Sort is a search ordering instruction.
type Sort struct {
	By    string `json:"by"`
	Order string `json:"order"`
}

// Pagination is the 1-indexed page request accompanying a search.
type Pagination struct {
	Page  int  `json:"page"`
	Limit int  `json:"limit"`
	Sort  Sort `json:"sort"`
}

// PageInfo echoes the request pagination plus the computed page count.
// Empty result sets report PageCount 0 rather than failing.
type PageInfo struct {
	Pagination

	PageCount int `json:"pageCount"`
}

// SearchResult is one page of matches.
type SearchResult[T any] struct {
	PageInfo PageInfo `json:"pagination"`
	Data     []T      `json:"data"`
}

// Normalize clamps nonsense pagination input to usable defaults.
func (p Pagination) Normalize() Pagination {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = 10
	}
	if p.Sort.Order != SortAsc {
		p.Sort.Order = SortDesc
	}
	return p
}

// PageCount computes ceil(total/limit) for a normalized limit.
func PageCount(total, limit int) int {
	if total == 0 || limit < 1 {
		return 0
	}
	return (total + limit - 1) / limit
}
