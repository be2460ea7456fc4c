package repositories

import (
	"context"

	"github.com/tutorlane/marketplace-service/internal/models"
)

type BookingRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Booking, error)
	// GetByIDWithDetails preloads student, tutor and review.
	GetByIDWithDetails(ctx context.Context, id uint) (*models.Booking, error)
	Create(ctx context.Context, booking *models.Booking) error
	// UpdateStatusIf performs the conditional transition "set status = to
	// where id = ? and status = from" and reports whether a row changed.
	// This is the single atomic unit behind every state-machine guard.
	UpdateStatusIf(ctx context.Context, id uint, from, to models.BookingStatus) (bool, error)
	List(ctx context.Context, filters BookingFilters) ([]*models.Booking, int64, error)
	// CountByStatusForTutor feeds the tutor dashboard.
	CountByStatusForTutor(ctx context.Context, tutorID uint) (map[models.BookingStatus]int64, error)
	DeleteByStudentID(ctx context.Context, studentID uint) error
	DeleteByTutorID(ctx context.Context, tutorID uint) error
}

type ReviewRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Review, error)
	GetByBookingID(ctx context.Context, bookingID uint) (*models.Review, error)
	ExistsByBookingID(ctx context.Context, bookingID uint) (bool, error)
	Create(ctx context.Context, review *models.Review) error
	ListByTutorID(ctx context.Context, tutorID uint) ([]*models.Review, error)
	ListByStudentID(ctx context.Context, studentID uint) ([]*models.Review, error)
	List(ctx context.Context, filters ReviewFilters) ([]*models.Review, int64, error)
	Delete(ctx context.Context, id uint) error
	DeleteByStudentID(ctx context.Context, studentID uint) error
	DeleteByTutorID(ctx context.Context, tutorID uint) error
}
