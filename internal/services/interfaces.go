package services

import (
	"context"
	"time"

	"github.com/tutorlane/marketplace-service/internal/models"
	"github.com/tutorlane/marketplace-service/internal/repositories"
	"github.com/tutorlane/marketplace-service/internal/validator"
)

// ===== REQUEST DTOs =====

// Use validator request types
type StudentProfileUpsertRequest = validator.StudentProfileUpsertRequest
type StudentProfilePatchRequest = validator.StudentProfilePatchRequest
type TutorProfileUpsertRequest = validator.TutorProfileUpsertRequest
type TutorProfilePatchRequest = validator.TutorProfilePatchRequest
type AvailabilityUpdateRequest = validator.AvailabilityUpdateRequest
type BookingCreateRequest = validator.BookingCreateRequest
type ReviewCreateRequest = validator.ReviewCreateRequest
type CategoryCreateRequest = validator.CategoryCreateRequest
type CategoryUpdateRequest = validator.CategoryUpdateRequest
type UserRoleUpdateRequest = validator.UserRoleUpdateRequest
type UserStatusUpdateRequest = validator.UserStatusUpdateRequest
type FeaturedUpdateRequest = validator.FeaturedUpdateRequest

// ===== LIST QUERY PARAMS =====

// TutorBrowseQuery carries the public tutor listing filters after binding.
type TutorBrowseQuery struct {
	Search     *string
	CategoryID *uint
	Group      *models.AcademicGroup
	PriceMin   *float64
	PriceMax   *float64
	Available  *bool
	Featured   *bool
	Page       int
	Limit      int
	SortBy     string
	SortOrder  string
}

type BookingListQuery struct {
	Status *models.BookingStatus
	Page   int
	Limit  int
}

type UserListQuery struct {
	Search *string
	Role   *models.UserRole
	Status *models.UserStatus
	Page   int
	Limit  int
}

type ReviewListQuery struct {
	TutorID   *uint
	RatingMin *int
	RatingMax *int
	Page      int
	Limit     int
}

// AnalyticsQuery carries the admin analytics window and leaderboard size.
// Zero values mean "use defaults" (trailing 30 days, top 5).
type AnalyticsQuery struct {
	From *time.Time
	To   *time.Time
	TopN int
}

// ===== RESPONSE DTOs =====

type TutorListResponse struct {
	Tutors []*models.Tutor `json:"tutors"`
	Meta   PageMeta        `json:"meta"`
}

type BookingListResponse struct {
	Bookings []*models.Booking `json:"bookings"`
	Meta     PageMeta          `json:"meta"`
}

type UserListResponse struct {
	Users []*models.User `json:"users"`
	Meta  PageMeta       `json:"meta"`
}

type ReviewListResponse struct {
	Reviews []*models.Review `json:"reviews"`
	Meta    PageMeta         `json:"meta"`
}

// TutorDashboardResponse aggregates a tutor's own activity.
type TutorDashboardResponse struct {
	Sessions map[models.BookingStatus]int64 `json:"sessions"`
	Rating   RatingSummary                  `json:"rating"`
}

type RatingSummary struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// AnalyticsResponse is the admin dashboard payload.
type AnalyticsResponse struct {
	Window           AnalyticsWindow                  `json:"window"`
	Counts           repositories.EntityCounts        `json:"counts"`
	UsersByRole      map[string]int64                 `json:"users_by_role"`
	UsersByStatus    map[string]int64                 `json:"users_by_status"`
	BookingsByStatus map[string]int64                 `json:"bookings_by_status"`
	DailyBookings    []repositories.DailyBookingCount `json:"daily_bookings"`
	Reviews          repositories.RatingStats         `json:"reviews"`
	TopTutors        []*TutorLeaderboardEntry         `json:"top_tutors"`
}

type AnalyticsWindow struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

type TutorLeaderboardEntry struct {
	TutorID      uint    `json:"tutor_id"`
	Name         string  `json:"name"`
	Subject      string  `json:"subject"`
	Category     string  `json:"category"`
	AvgRating    float64 `json:"avg_rating"`
	ReviewsCount int     `json:"reviews_count"`
}

// ===== SERVICE INTERFACES =====

// CatalogService serves the public browse surface.
type CatalogService interface {
	BrowseTutors(ctx context.Context, query TutorBrowseQuery) (*TutorListResponse, error)
	GetTutor(ctx context.Context, id uint) (*models.Tutor, error)
	ListCategories(ctx context.Context) ([]*models.Category, error)
}

// StudentService covers the student-facing operations, keyed by the
// authenticated user's id.
type StudentService interface {
	GetProfile(ctx context.Context, userID string) (*models.Student, error)
	UpsertProfile(ctx context.Context, userID string, req StudentProfileUpsertRequest) (*models.Student, error)
	PatchProfile(ctx context.Context, userID string, req StudentProfilePatchRequest) (*models.Student, error)

	CreateBooking(ctx context.Context, userID string, req BookingCreateRequest) (*models.Booking, error)
	ListBookings(ctx context.Context, userID string, query BookingListQuery) (*BookingListResponse, error)
	GetBooking(ctx context.Context, userID string, bookingID uint) (*models.Booking, error)
	CancelBooking(ctx context.Context, userID string, bookingID uint) (*models.Booking, error)

	CreateReview(ctx context.Context, userID string, req ReviewCreateRequest) (*models.Review, error)
	ListReviews(ctx context.Context, userID string) ([]*models.Review, error)
}

// TutorService covers the tutor-facing operations.
type TutorService interface {
	GetProfile(ctx context.Context, userID string) (*models.Tutor, error)
	UpsertProfile(ctx context.Context, userID string, req TutorProfileUpsertRequest) (*models.Tutor, error)
	PatchProfile(ctx context.Context, userID string, req TutorProfilePatchRequest) (*models.Tutor, error)
	UpdateAvailability(ctx context.Context, userID string, req AvailabilityUpdateRequest) (*models.Tutor, error)

	ListSessions(ctx context.Context, userID string, query BookingListQuery) (*BookingListResponse, error)
	GetSession(ctx context.Context, userID string, bookingID uint) (*models.Booking, error)
	CompleteSession(ctx context.Context, userID string, bookingID uint) (*models.Booking, error)

	ListReviews(ctx context.Context, userID string) ([]*models.Review, error)
	GetDashboard(ctx context.Context, userID string) (*TutorDashboardResponse, error)
}

// AdminService covers user administration, moderation and taxonomy.
type AdminService interface {
	ListUsers(ctx context.Context, query UserListQuery) (*UserListResponse, error)
	GetUser(ctx context.Context, userID string) (*models.User, error)
	UpdateUserRole(ctx context.Context, userID string, req UserRoleUpdateRequest) (*models.User, error)
	UpdateUserStatus(ctx context.Context, userID string, req UserStatusUpdateRequest) (*models.User, error)
	SuspendUser(ctx context.Context, userID string) (*models.User, error)
	ActivateUser(ctx context.Context, userID string) (*models.User, error)
	DeleteUser(ctx context.Context, userID string) error

	CreateCategory(ctx context.Context, req CategoryCreateRequest) (*models.Category, error)
	UpdateCategory(ctx context.Context, id uint, req CategoryUpdateRequest) (*models.Category, error)
	DeleteCategory(ctx context.Context, id uint) error

	ListBookings(ctx context.Context, query BookingListQuery) (*BookingListResponse, error)
	ListReviews(ctx context.Context, query ReviewListQuery) (*ReviewListResponse, error)
	DeleteReview(ctx context.Context, id uint) error

	SetTutorFeatured(ctx context.Context, tutorID uint, req FeaturedUpdateRequest) (*models.Tutor, error)
	SetTutorAvailability(ctx context.Context, tutorID uint, req AvailabilityUpdateRequest) (*models.Tutor, error)
}

// AnalyticsService serves the admin analytics dashboard and its export.
type AnalyticsService interface {
	GetAnalytics(ctx context.Context, query AnalyticsQuery) (*AnalyticsResponse, error)
	ExportAnalytics(ctx context.Context, query AnalyticsQuery) ([]byte, error)
}

// ServiceManager provides access to all services
type ServiceManager interface {
	Catalog() CatalogService
	Student() StudentService
	Tutor() TutorService
	Admin() AdminService
	Analytics() AnalyticsService

	Health(ctx context.Context) error
}
