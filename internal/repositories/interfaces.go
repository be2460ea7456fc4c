package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/tutorlane/marketplace-service/internal/models"
)

// IsNotFoundError reports whether err is the store's missing-record error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// ===== SHARED FILTER STRUCTS =====
//
// A nil filter field means "absent": it must not contribute any predicate.

type TutorFilters struct {
	Search     *string               `json:"search"`
	CategoryID *uint                 `json:"category_id"`
	Group      *models.AcademicGroup `json:"group"`
	PriceMin   *float64              `json:"price_min"`
	PriceMax   *float64              `json:"price_max"`
	Available  *bool                 `json:"available"`
	Featured   *bool                 `json:"featured"`
	Limit      int                   `json:"limit"`
	Offset     int                   `json:"offset"`
	SortBy     string                `json:"sort_by"`
	SortOrder  string                `json:"sort_order"`
}

type BookingFilters struct {
	Status    *models.BookingStatus `json:"status"`
	StudentID *uint                 `json:"student_id"`
	TutorID   *uint                 `json:"tutor_id"`
	DateFrom  *time.Time            `json:"date_from"`
	DateTo    *time.Time            `json:"date_to"`
	Limit     int                   `json:"limit"`
	Offset    int                   `json:"offset"`
	SortBy    string                `json:"sort_by"`
	SortOrder string                `json:"sort_order"`
}

type ReviewFilters struct {
	TutorID   *uint `json:"tutor_id"`
	StudentID *uint `json:"student_id"`
	RatingMin *int  `json:"rating_min"`
	RatingMax *int  `json:"rating_max"`
	Limit     int   `json:"limit"`
	Offset    int   `json:"offset"`
}

type UserFilters struct {
	Search *string            `json:"search"`
	Role   *models.UserRole   `json:"role"`
	Status *models.UserStatus `json:"status"`
	Limit  int                `json:"limit"`
	Offset int                `json:"offset"`
}

// ===== ANALYTICS RESULT STRUCTS =====

type EntityCounts struct {
	Users      int64 `json:"users"`
	Students   int64 `json:"students"`
	Tutors     int64 `json:"tutors"`
	Categories int64 `json:"categories"`
	Bookings   int64 `json:"bookings"`
	Reviews    int64 `json:"reviews"`
}

type DailyBookingCount struct {
	Day   string `json:"day"`
	Count int64  `json:"count"`
}

type RatingStats struct {
	Average float64 `json:"average"`
	Count   int64   `json:"count"`
}
