package services

const (
	defaultPage  = 1
	defaultLimit = 20
	maxLimit     = 100
)

// PageMeta describes one page of a listing.
type PageMeta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// NormalizePagination clamps raw page and limit values. Page floors at 1
// (default 1), limit is clamped into [1,100] with 20 as the unset default.
// The returned skip is (page-1)*limit.
func NormalizePagination(page, limit int) (normPage, normLimit, skip int) {
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit, (page - 1) * limit
}

// NewPageMeta builds the page descriptor. TotalPages is never below 1, even
// for an empty result set.
func NewPageMeta(page, limit int, total int64) PageMeta {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	if totalPages < 1 {
		totalPages = 1
	}
	return PageMeta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}
