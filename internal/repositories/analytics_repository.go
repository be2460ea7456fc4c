package repositories

import (
	"context"
	"time"
)

// AnalyticsRepository serves the admin dashboard. All methods are
// read-only aggregates over the primary tables.
type AnalyticsRepository interface {
	EntityCounts(ctx context.Context) (*EntityCounts, error)
	UsersByRole(ctx context.Context) (map[string]int64, error)
	UsersByStatus(ctx context.Context) (map[string]int64, error)
	BookingsByStatus(ctx context.Context) (map[string]int64, error)
	// DailyBookings buckets bookings by creation day within [from, to].
	// Days with no bookings are absent from the result.
	DailyBookings(ctx context.Context, from, to time.Time) ([]DailyBookingCount, error)
	ReviewStats(ctx context.Context) (*RatingStats, error)
}
