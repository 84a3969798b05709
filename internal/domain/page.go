package domain

// PaginationParams carries page/limit values from the HTTP layer to the repo layer.
// Page is 1-indexed. Limit is capped at 100 by NewPaginationParams.
type PaginationParams struct {
	// Page is the current page number, starting at 1.
	Page int
	// Limit is the maximum number of items to return.
	Limit int
}

// NewPaginationParams normalizes raw page/limit query values.
// Zero or negative pages fall back to 1; limits outside 1..100 are clamped
// (default 20) to prevent runaway queries on the applications listing.
func NewPaginationParams(page, limit int) PaginationParams {
	p := PaginationParams{Page: 1, Limit: 20}
	if page >= 1 {
		p.Page = page
	}
	if limit >= 1 {
		p.Limit = limit
		if p.Limit > 100 {
			p.Limit = 100
		}
	}
	return p
}

// Offset returns the zero-based row offset for a SQL OFFSET clause.
func (p PaginationParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// TotalPages returns the page count for total rows at this limit.
func (p PaginationParams) TotalPages(total int64) int64 {
	if total <= 0 {
		return 0
	}
	return (total + int64(p.Limit) - 1) / int64(p.Limit)
}
