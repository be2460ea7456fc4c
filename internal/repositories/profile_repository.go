package repositories

import (
	"context"

	"github.com/tutorlane/marketplace-service/internal/models"
)

type StudentRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Student, error)
	GetByUserID(ctx context.Context, userID string) (*models.Student, error)
	Create(ctx context.Context, student *models.Student) error
	Update(ctx context.Context, student *models.Student) error
	// UpdateFields applies a partial update; only the listed columns change.
	UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error
	DeleteByUserID(ctx context.Context, userID string) error
}

type TutorRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Tutor, error)
	// GetByIDWithDetails preloads user, category and reviews.
	GetByIDWithDetails(ctx context.Context, id uint) (*models.Tutor, error)
	GetByUserID(ctx context.Context, userID string) (*models.Tutor, error)
	Create(ctx context.Context, tutor *models.Tutor) error
	Update(ctx context.Context, tutor *models.Tutor) error
	UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error
	// List runs count and page fetch inside one transaction so meta and rows
	// agree; reviews are preloaded for the derived rating fields.
	List(ctx context.Context, filters TutorFilters) ([]*models.Tutor, int64, error)
	// ListAllWithReviews is the analytics read: every tutor with user,
	// category and reviews preloaded.
	ListAllWithReviews(ctx context.Context) ([]*models.Tutor, error)
	DeleteByUserID(ctx context.Context, userID string) error
}

type CategoryRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Category, error)
	ExistsByID(ctx context.Context, id uint) (bool, error)
	// List returns all categories, alphabetical by name.
	List(ctx context.Context) ([]*models.Category, error)
	Create(ctx context.Context, category *models.Category) error
	UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error
	Delete(ctx context.Context, id uint) error
	// CountTutors reports how many tutors reference the category.
	CountTutors(ctx context.Context, id uint) (int64, error)
}
