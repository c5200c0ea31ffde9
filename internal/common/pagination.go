package common

import "strings"

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// ListParams holds normalized page/limit/search query parameters.
type ListParams struct {
	Page   int    `query:"page"`
	Limit  int    `query:"limit"`
	Search string `query:"search"`
}

// Normalize applies defaults and bounds.
func (p ListParams) Normalize() ListParams {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	p.Search = strings.TrimSpace(p.Search)
	return p
}

// Offset is the row offset for the requested page.
func (p ListParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Pagination is the paging block of list responses.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// Page is one page of list results.
type Page[T any] struct {
	Items      []T
	Pagination Pagination
}

// NewPage builds a Page, computing totalPages as ceil(total/limit).
func NewPage[T any](items []T, total int, params ListParams) *Page[T] {
	if items == nil {
		items = []T{}
	}
	totalPages := 0
	if params.Limit > 0 {
		totalPages = (total + params.Limit - 1) / params.Limit
	}
	return &Page[T]{
		Items: items,
		Pagination: Pagination{
			Page:       params.Page,
			Limit:      params.Limit,
			Total:      total,
			TotalPages: totalPages,
		},
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// SearchPattern wraps a term for ILIKE substring matching. Wildcards in
// term match literally; the query must declare ESCAPE '\'.
func SearchPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}
