package postgres

import (
	"context"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/tutorlane/marketplace-service/internal/cache"
	"github.com/tutorlane/marketplace-service/internal/models"
	"github.com/tutorlane/marketplace-service/internal/repositories"
)

const categoryListKey = "list"

type categoryRepository struct {
	db    *gorm.DB
	cache *cache.CacheHelper
}

func NewCategoryPostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.CategoryRepository {
	return &categoryRepository{
		db:    db,
		cache: cache.NewCacheHelper(redisClient, "category:"),
	}
}

func (r *categoryRepository) GetByID(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, id).Error; err != nil {
		return nil, handleDBError(err, "get category by id")
	}
	return &category, nil
}

func (r *categoryRepository) ExistsByID(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Category{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, handleDBError(err, "check category exists")
	}
	return count > 0, nil
}

// List serves from cache when possible; the full category set is small and
// changes rarely.
func (r *categoryRepository) List(ctx context.Context) ([]*models.Category, error) {
	var categories []*models.Category
	if err := r.cache.Get(ctx, categoryListKey, &categories); err == nil {
		return categories, nil
	}

	if err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&categories).Error; err != nil {
		return nil, handleDBError(err, "list categories")
	}

	_ = r.cache.Set(ctx, categoryListKey, categories, cache.CategoryTTL)

	return categories, nil
}

func (r *categoryRepository) Create(ctx context.Context, category *models.Category) error {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return handleDBError(err, "create category")
	}
	_ = r.cache.Delete(ctx, categoryListKey)
	return nil
}

func (r *categoryRepository) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	result := r.db.WithContext(ctx).
		Model(&models.Category{}).
		Where("id = ?", id).
		Updates(fields)
	if result.Error != nil {
		return handleDBError(result.Error, "update category fields")
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	_ = r.cache.Delete(ctx, categoryListKey)
	return nil
}

func (r *categoryRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Category{}, id)
	if result.Error != nil {
		return handleDBError(result.Error, "delete category")
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	_ = r.cache.Delete(ctx, categoryListKey)
	return nil
}

func (r *categoryRepository) CountTutors(ctx context.Context, id uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Tutor{}).
		Where("category_id = ?", id).
		Count(&count).Error; err != nil {
		return 0, handleDBError(err, "count tutors in category")
	}
	return count, nil
}
