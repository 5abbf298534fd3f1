// Package page holds offset-based pagination parameters and result pages.
package page

import (
	"strconv"

	"github.com/kailas-cloud/plantdex/internal/domain"
)

// Pagination limits.
const (
	MinPage         = 1
	MinPerPage      = 1
	DefaultPerPage  = 20
	DefaultMaxLimit = 100
)

// Parameters is a validated page request.
type Parameters struct {
	page    int
	perPage int
}

// NewParameters validates page bounds. Out-of-range values are rejected, never clamped.
func NewParameters(pageNum, perPage, maxPerPage int) (Parameters, error) {
	if maxPerPage <= 0 {
		maxPerPage = DefaultMaxLimit
	}
	if pageNum < MinPage {
		return Parameters{}, domain.NewInvalidInput("page", "must be at least 1")
	}
	if perPage < MinPerPage {
		return Parameters{}, domain.NewInvalidInput("per_page", "must be at least 1")
	}
	if perPage > maxPerPage {
		return Parameters{}, domain.NewInvalidInput("per_page", "must not exceed "+strconv.Itoa(maxPerPage))
	}
	return Parameters{page: pageNum, perPage: perPage}, nil
}

// DefaultParameters returns the first page with the given page size.
// A non-positive perPage falls back to DefaultPerPage.
func DefaultParameters(perPage int) Parameters {
	if perPage < MinPerPage {
		perPage = DefaultPerPage
	}
	return Parameters{page: MinPage, perPage: perPage}
}

// Page returns the 1-based page number.
func (p Parameters) Page() int { return p.page }

// PerPage returns the page size.
func (p Parameters) PerPage() int { return p.perPage }

// Offset returns the number of rows to skip: (page-1) * per_page.
func (p Parameters) Offset() int { return (p.page - 1) * p.perPage }

// PastEnd reports whether the page lies beyond the last page of totalItems rows.
// It never computes the offset, so arbitrarily large page numbers are safe.
func (p Parameters) PastEnd(totalItems int) bool {
	return p.page > TotalPages(totalItems, p.perPage)
}

// Validate re-checks the invariants. The zero value is invalid.
func (p Parameters) Validate() error {
	if p.page < MinPage {
		return domain.NewInvalidInput("page", "must be at least 1")
	}
	if p.perPage < MinPerPage {
		return domain.NewInvalidInput("per_page", "must be at least 1")
	}
	return nil
}

// Page is one slice of an ordered result set plus totals.
type Page[T any] struct {
	Items      []T `json:"results"`
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	TotalItems int `json:"total_results"`
	TotalPages int `json:"total_pages"`
}

// New assembles a page. items beyond PerPage are a caller bug and are cut off.
func New[T any](items []T, params Parameters, totalItems int) Page[T] {
	if items == nil {
		items = []T{}
	}
	if len(items) > params.perPage {
		items = items[:params.perPage]
	}
	return Page[T]{
		Items:      items,
		Page:       params.page,
		PerPage:    params.perPage,
		TotalItems: totalItems,
		TotalPages: TotalPages(totalItems, params.perPage),
	}
}

// TotalPages returns ceil(totalItems / perPage); zero items means zero pages.
func TotalPages(totalItems, perPage int) int {
	if totalItems <= 0 || perPage <= 0 {
		return 0
	}
	return (totalItems + perPage - 1) / perPage
}

// Map converts the items of a page, keeping its metadata.
func Map[A, B any](p Page[A], fn func(A) B) Page[B] {
	items := make([]B, len(p.Items))
	for i := range p.Items {
		items[i] = fn(p.Items[i])
	}
	return Page[B]{
		Items:      items,
		Page:       p.Page,
		PerPage:    p.PerPage,
		TotalItems: p.TotalItems,
		TotalPages: p.TotalPages,
	}
}
