package pagination

// Pagination carries the page window of a list request. Limit is clamped to
// [1, MaxLimit]; page numbering starts at 1.
type Pagination struct {
	Page  int `form:"page,default=1"`
	Limit int `form:"limit,default=20" validate:"gte=1,lte=100"`
}

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// PageInfo is the pagination block included in every list response. Total is
// produced by a COUNT over the same filter predicate as the data query.
type PageInfo struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
	HasNext    bool  `json:"hasNext"`
	HasPrev    bool  `json:"hasPrev"`
}

// Normalize clamps the requested window to sane bounds.
func (p Pagination) Normalize() Pagination {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

// Offset returns the row offset for the normalized window.
func (p Pagination) Offset() int {
	n := p.Normalize()
	return (n.Page - 1) * n.Limit
}

// BuildPageInfo derives the response pagination block from the total row count.
func BuildPageInfo(p Pagination, total int64) PageInfo {
	n := p.Normalize()
	totalPages := int((total + int64(n.Limit) - 1) / int64(n.Limit))
	return PageInfo{
		Page:       n.Page,
		Limit:      n.Limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    n.Page < totalPages,
		HasPrev:    n.Page > 1 && total > 0,
	}
}
