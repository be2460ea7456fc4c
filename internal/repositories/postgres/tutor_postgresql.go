package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/tutorlane/marketplace-service/internal/models"
	"github.com/tutorlane/marketplace-service/internal/repositories"
)

type tutorRepository struct {
	db *gorm.DB
}

func NewTutorPostgreSQL(db *gorm.DB) repositories.TutorRepository {
	return &tutorRepository{db: db}
}

func (r *tutorRepository) GetByID(ctx context.Context, id uint) (*models.Tutor, error) {
	var tutor models.Tutor
	if err := r.db.WithContext(ctx).
		Preload("User").
		First(&tutor, id).Error; err != nil {
		return nil, handleDBError(err, "get tutor by id")
	}
	return &tutor, nil
}

func (r *tutorRepository) GetByIDWithDetails(ctx context.Context, id uint) (*models.Tutor, error) {
	var tutor models.Tutor
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Category").
		Preload("Reviews").
		First(&tutor, id).Error; err != nil {
		return nil, handleDBError(err, "get tutor with details")
	}
	return &tutor, nil
}

func (r *tutorRepository) GetByUserID(ctx context.Context, userID string) (*models.Tutor, error) {
	var tutor models.Tutor
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Category").
		First(&tutor, "user_id = ?", userID).Error; err != nil {
		return nil, handleDBError(err, "get tutor by user id")
	}
	return &tutor, nil
}

func (r *tutorRepository) Create(ctx context.Context, tutor *models.Tutor) error {
	if err := r.db.WithContext(ctx).Create(tutor).Error; err != nil {
		return handleDBError(err, "create tutor")
	}
	return nil
}

func (r *tutorRepository) Update(ctx context.Context, tutor *models.Tutor) error {
	if err := r.db.WithContext(ctx).Save(tutor).Error; err != nil {
		return handleDBError(err, "update tutor")
	}
	return nil
}

func (r *tutorRepository) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	result := r.db.WithContext(ctx).
		Model(&models.Tutor{}).
		Where("id = ?", id).
		Updates(fields)
	if result.Error != nil {
		return handleDBError(result.Error, "update tutor fields")
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// List counts and fetches inside one transaction so the total and the page
// describe the same snapshot.
func (r *tutorRepository) List(ctx context.Context, filters repositories.TutorFilters) ([]*models.Tutor, int64, error) {
	var tutors []*models.Tutor
	var total int64

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		query := tx.Model(&models.Tutor{})
		query = applyTutorFilters(query, filters)

		if err := query.Count(&total).Error; err != nil {
			return handleDBError(err, "count tutors")
		}

		query = query.
			Preload("User").
			Preload("Category").
			Preload("Reviews")
		query = applyPaginationAndSort(query, filters.SortBy, filters.SortOrder, filters.Limit, filters.Offset)

		if err := query.Find(&tutors).Error; err != nil {
			return handleDBError(err, "list tutors")
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	return tutors, total, nil
}

func (r *tutorRepository) ListAllWithReviews(ctx context.Context) ([]*models.Tutor, error) {
	var tutors []*models.Tutor
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Category").
		Preload("Reviews").
		Find(&tutors).Error; err != nil {
		return nil, handleDBError(err, "list tutors with reviews")
	}
	return tutors, nil
}

func (r *tutorRepository) DeleteByUserID(ctx context.Context, userID string) error {
	if err := r.db.WithContext(ctx).
		Delete(&models.Tutor{}, "user_id = ?", userID).Error; err != nil {
		return handleDBError(err, "delete tutor by user id")
	}
	return nil
}
