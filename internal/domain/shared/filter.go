package shared

// Pagination holds page-based pagination parameters shared by all search
// endpoints. The zero value is normalized by Normalize.
type Pagination struct {
	Page  int
	Limit int
}

// DefaultLimit is applied when no limit is requested. The upstream system
// pages through full result sets, so the default is intentionally large.
const DefaultLimit = 1000

// Normalize fills in defaults for unset pagination values.
func (p Pagination) Normalize() Pagination {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	return p
}

// Offset returns the row offset for the current page.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}
