package postgres

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/tutorlane/marketplace-service/internal/repositories"
)

// handleDBError is a package-level helper for wrapping database errors with
// the failed operation. gorm.ErrRecordNotFound stays unwrapped so callers can
// still detect it with repositories.IsNotFoundError.
func handleDBError(err error, operation string) error {
	if err == nil {
		return nil
	}
	if repositories.IsNotFoundError(err) {
		return err
	}
	return fmt.Errorf("%s failed: %w", operation, err)
}

// applyTutorFilters adds predicates for the non-nil tutor filter fields.
// The search term matches the tutor subject or the joined user name.
func applyTutorFilters(query *gorm.DB, filters repositories.TutorFilters) *gorm.DB {
	if filters.Search != nil && *filters.Search != "" {
		pattern := "%" + *filters.Search + "%"
		query = query.
			Joins("JOIN users ON users.id = tutors.user_id").
			Where("tutors.subject ILIKE ? OR users.name ILIKE ?", pattern, pattern)
	}
	if filters.CategoryID != nil {
		query = query.Where("tutors.category_id = ?", *filters.CategoryID)
	}
	if filters.Group != nil {
		query = query.Where("tutors.group = ?", *filters.Group)
	}
	if filters.PriceMin != nil {
		query = query.Where("tutors.price_per_day >= ?", *filters.PriceMin)
	}
	if filters.PriceMax != nil {
		query = query.Where("tutors.price_per_day <= ?", *filters.PriceMax)
	}
	if filters.Available != nil {
		query = query.Where("tutors.is_available = ?", *filters.Available)
	}
	if filters.Featured != nil {
		query = query.Where("tutors.is_featured = ?", *filters.Featured)
	}
	return query
}

func applyBookingFilters(query *gorm.DB, filters repositories.BookingFilters) *gorm.DB {
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.StudentID != nil {
		query = query.Where("student_id = ?", *filters.StudentID)
	}
	if filters.TutorID != nil {
		query = query.Where("tutor_id = ?", *filters.TutorID)
	}
	if filters.DateFrom != nil {
		query = query.Where("date >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		query = query.Where("date <= ?", *filters.DateTo)
	}
	return query
}

func applyReviewFilters(query *gorm.DB, filters repositories.ReviewFilters) *gorm.DB {
	if filters.TutorID != nil {
		query = query.Where("tutor_id = ?", *filters.TutorID)
	}
	if filters.StudentID != nil {
		query = query.Where("student_id = ?", *filters.StudentID)
	}
	if filters.RatingMin != nil {
		query = query.Where("rating >= ?", *filters.RatingMin)
	}
	if filters.RatingMax != nil {
		query = query.Where("rating <= ?", *filters.RatingMax)
	}
	return query
}

func applyUserFilters(query *gorm.DB, filters repositories.UserFilters) *gorm.DB {
	if filters.Search != nil && *filters.Search != "" {
		pattern := "%" + *filters.Search + "%"
		query = query.Where("name ILIKE ? OR email ILIKE ?", pattern, pattern)
	}
	if filters.Role != nil {
		query = query.Where("role = ?", *filters.Role)
	}
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	return query
}

// applyPaginationAndSort applies pagination and sorting with SQL injection
// protection. Sort columns are whitelisted; anything else falls back to
// created_at.
func applyPaginationAndSort(query *gorm.DB, sortBy, sortOrder string, limit, offset int) *gorm.DB {
	allowedSortColumns := map[string]bool{
		"created_at":    true,
		"updated_at":    true,
		"id":            true,
		"name":          true,
		"date":          true,
		"status":        true,
		"rating":        true,
		"price_per_day": true,
		"experience":    true,
	}

	if sortBy == "" || !allowedSortColumns[sortBy] {
		sortBy = "created_at"
	}

	if sortOrder != "asc" && sortOrder != "ASC" {
		sortOrder = "DESC"
	} else {
		sortOrder = "ASC"
	}

	query = query.Order(sortBy + " " + sortOrder)

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	return query
}
