package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tutorlane/marketplace-service/internal/models"
	"github.com/tutorlane/marketplace-service/internal/repositories"
)

type analyticsRepository struct {
	db *gorm.DB
}

func NewAnalyticsPostgreSQL(db *gorm.DB) repositories.AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) EntityCounts(ctx context.Context) (*repositories.EntityCounts, error) {
	counts := &repositories.EntityCounts{}

	tables := []struct {
		model interface{}
		dest  *int64
	}{
		{&models.User{}, &counts.Users},
		{&models.Student{}, &counts.Students},
		{&models.Tutor{}, &counts.Tutors},
		{&models.Category{}, &counts.Categories},
		{&models.Booking{}, &counts.Bookings},
		{&models.Review{}, &counts.Reviews},
	}

	for _, t := range tables {
		if err := r.db.WithContext(ctx).Model(t.model).Count(t.dest).Error; err != nil {
			return nil, handleDBError(err, "count entities")
		}
	}

	return counts, nil
}

func (r *analyticsRepository) UsersByRole(ctx context.Context) (map[string]int64, error) {
	return r.groupCount(ctx, &models.User{}, "role")
}

func (r *analyticsRepository) UsersByStatus(ctx context.Context) (map[string]int64, error) {
	return r.groupCount(ctx, &models.User{}, "status")
}

func (r *analyticsRepository) BookingsByStatus(ctx context.Context) (map[string]int64, error) {
	return r.groupCount(ctx, &models.Booking{}, "status")
}

func (r *analyticsRepository) groupCount(ctx context.Context, model interface{}, column string) (map[string]int64, error) {
	type row struct {
		Key   string
		Count int64
	}
	var rows []row

	if err := r.db.WithContext(ctx).
		Model(model).
		Select(column + " as key, COUNT(*) as count").
		Group(column).
		Scan(&rows).Error; err != nil {
		return nil, handleDBError(err, "group count by "+column)
	}

	result := make(map[string]int64, len(rows))
	for _, r := range rows {
		result[r.Key] = r.Count
	}
	return result, nil
}

func (r *analyticsRepository) DailyBookings(ctx context.Context, from, to time.Time) ([]repositories.DailyBookingCount, error) {
	var rows []repositories.DailyBookingCount

	if err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Select("TO_CHAR(DATE(created_at), 'YYYY-MM-DD') as day, COUNT(*) as count").
		Where("created_at >= ? AND created_at <= ?", from, to).
		Group("DATE(created_at)").
		Order("DATE(created_at) ASC").
		Scan(&rows).Error; err != nil {
		return nil, handleDBError(err, "daily booking counts")
	}

	return rows, nil
}

func (r *analyticsRepository) ReviewStats(ctx context.Context) (*repositories.RatingStats, error) {
	stats := &repositories.RatingStats{}

	if err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) as average, COUNT(*) as count").
		Scan(stats).Error; err != nil {
		return nil, handleDBError(err, "review stats")
	}

	return stats, nil
}
