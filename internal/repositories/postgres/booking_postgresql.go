package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/tutorlane/marketplace-service/internal/models"
	"github.com/tutorlane/marketplace-service/internal/repositories"
)

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingPostgreSQL(db *gorm.DB) repositories.BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) GetByID(ctx context.Context, id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := r.db.WithContext(ctx).First(&booking, id).Error; err != nil {
		return nil, handleDBError(err, "get booking by id")
	}
	return &booking, nil
}

func (r *bookingRepository) GetByIDWithDetails(ctx context.Context, id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Student.User").
		Preload("Tutor.User").
		Preload("Review").
		First(&booking, id).Error; err != nil {
		return nil, handleDBError(err, "get booking with details")
	}
	return &booking, nil
}

func (r *bookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	if err := r.db.WithContext(ctx).Create(booking).Error; err != nil {
		return handleDBError(err, "create booking")
	}
	return nil
}

// UpdateStatusIf is the conditional transition: the status column only
// changes when the row still holds the expected source status. A false
// return with nil error means the guard failed, not that the row is missing.
func (r *bookingRepository) UpdateStatusIf(ctx context.Context, id uint, from, to models.BookingStatus) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if result.Error != nil {
		return false, handleDBError(result.Error, "update booking status")
	}
	return result.RowsAffected > 0, nil
}

func (r *bookingRepository) List(ctx context.Context, filters repositories.BookingFilters) ([]*models.Booking, int64, error) {
	var bookings []*models.Booking
	var total int64

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		query := tx.Model(&models.Booking{})
		query = applyBookingFilters(query, filters)

		if err := query.Count(&total).Error; err != nil {
			return handleDBError(err, "count bookings")
		}

		query = query.
			Preload("Student.User").
			Preload("Tutor.User").
			Preload("Review")
		query = applyPaginationAndSort(query, filters.SortBy, filters.SortOrder, filters.Limit, filters.Offset)

		if err := query.Find(&bookings).Error; err != nil {
			return handleDBError(err, "list bookings")
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	return bookings, total, nil
}

func (r *bookingRepository) CountByStatusForTutor(ctx context.Context, tutorID uint) (map[models.BookingStatus]int64, error) {
	type row struct {
		Status models.BookingStatus
		Count  int64
	}
	var rows []row

	if err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Select("status, COUNT(*) as count").
		Where("tutor_id = ?", tutorID).
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, handleDBError(err, "count bookings by status")
	}

	counts := make(map[models.BookingStatus]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	return counts, nil
}

func (r *bookingRepository) DeleteByStudentID(ctx context.Context, studentID uint) error {
	if err := r.db.WithContext(ctx).
		Delete(&models.Booking{}, "student_id = ?", studentID).Error; err != nil {
		return handleDBError(err, "delete bookings by student")
	}
	return nil
}

func (r *bookingRepository) DeleteByTutorID(ctx context.Context, tutorID uint) error {
	if err := r.db.WithContext(ctx).
		Delete(&models.Booking{}, "tutor_id = ?", tutorID).Error; err != nil {
		return handleDBError(err, "delete bookings by tutor")
	}
	return nil
}
