package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/tutorlane/marketplace-service/internal/models"
	"github.com/tutorlane/marketplace-service/internal/repositories"
)

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewPostgreSQL(db *gorm.DB) repositories.ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) GetByID(ctx context.Context, id uint) (*models.Review, error) {
	var review models.Review
	if err := r.db.WithContext(ctx).
		Preload("Student.User").
		First(&review, id).Error; err != nil {
		return nil, handleDBError(err, "get review by id")
	}
	return &review, nil
}

func (r *reviewRepository) GetByBookingID(ctx context.Context, bookingID uint) (*models.Review, error) {
	var review models.Review
	if err := r.db.WithContext(ctx).
		First(&review, "booking_id = ?", bookingID).Error; err != nil {
		return nil, handleDBError(err, "get review by booking id")
	}
	return &review, nil
}

func (r *reviewRepository) ExistsByBookingID(ctx context.Context, bookingID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Where("booking_id = ?", bookingID).
		Count(&count).Error; err != nil {
		return false, handleDBError(err, "check review exists")
	}
	return count > 0, nil
}

func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	if err := r.db.WithContext(ctx).Create(review).Error; err != nil {
		return handleDBError(err, "create review")
	}
	return nil
}

func (r *reviewRepository) ListByTutorID(ctx context.Context, tutorID uint) ([]*models.Review, error) {
	var reviews []*models.Review
	if err := r.db.WithContext(ctx).
		Preload("Student.User").
		Where("tutor_id = ?", tutorID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		return nil, handleDBError(err, "list reviews by tutor")
	}
	return reviews, nil
}

func (r *reviewRepository) ListByStudentID(ctx context.Context, studentID uint) ([]*models.Review, error) {
	var reviews []*models.Review
	if err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		return nil, handleDBError(err, "list reviews by student")
	}
	return reviews, nil
}

func (r *reviewRepository) List(ctx context.Context, filters repositories.ReviewFilters) ([]*models.Review, int64, error) {
	var reviews []*models.Review
	var total int64

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		query := tx.Model(&models.Review{})
		query = applyReviewFilters(query, filters)

		if err := query.Count(&total).Error; err != nil {
			return handleDBError(err, "count reviews")
		}

		query = query.Preload("Student.User")
		query = applyPaginationAndSort(query, "created_at", "desc", filters.Limit, filters.Offset)

		if err := query.Find(&reviews).Error; err != nil {
			return handleDBError(err, "list reviews")
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	return reviews, total, nil
}

func (r *reviewRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Review{}, id)
	if result.Error != nil {
		return handleDBError(result.Error, "delete review")
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *reviewRepository) DeleteByStudentID(ctx context.Context, studentID uint) error {
	if err := r.db.WithContext(ctx).
		Delete(&models.Review{}, "student_id = ?", studentID).Error; err != nil {
		return handleDBError(err, "delete reviews by student")
	}
	return nil
}

func (r *reviewRepository) DeleteByTutorID(ctx context.Context, tutorID uint) error {
	if err := r.db.WithContext(ctx).
		Delete(&models.Review{}, "tutor_id = ?", tutorID).Error; err != nil {
		return handleDBError(err, "delete reviews by tutor")
	}
	return nil
}
