package pagination

// Page carries offset pagination parameters bound from the query string.
type Page struct {
	Page     int `form:"page,default=1"`
	PageSize int `form:"page_size,default=10" validate:"gte=1,lte=250"` // Min 1, Max 250
}

const (
	defaultPageSize = 10
	maxPageSize     = 250
)

// Normalize clamps page and page_size into their allowed ranges.
func (p Page) Normalize() Page {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = defaultPageSize
	}
	if p.PageSize > maxPageSize {
		p.PageSize = maxPageSize
	}
	return p
}

// Offset returns the row offset for the normalized page.
func (p Page) Offset() int {
	n := p.Normalize()
	return (n.Page - 1) * n.PageSize
}

// Limit returns the row limit for the normalized page.
func (p Page) Limit() int {
	return p.Normalize().PageSize
}

// PageInfo is the listing envelope metadata returned to clients.
type PageInfo struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalItems int64 `json:"total_items"`
	HasMore    bool  `json:"has_more"`
}

// BuildPageInfo computes the response metadata for an offset page.
func BuildPageInfo(p Page, total int64) PageInfo {
	n := p.Normalize()
	return PageInfo{
		Page:       n.Page,
		PageSize:   n.PageSize,
		TotalItems: total,
		HasMore:    int64(n.Offset()+n.PageSize) < total,
	}
}
