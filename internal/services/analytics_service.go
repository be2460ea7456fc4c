package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/tutorlane/marketplace-service/internal/repositories"
)

const (
	defaultTopN       = 5
	maxTopN           = 20
	defaultWindowDays = 30
	exportDayFormat   = "2006-01-02"
)

type analyticsService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewAnalyticsService(repo repositories.Repository, logger *slog.Logger) AnalyticsService {
	return &analyticsService{
		repo:   repo,
		logger: logger,
	}
}

func (s *analyticsService) GetAnalytics(ctx context.Context, query AnalyticsQuery) (*AnalyticsResponse, error) {
	from, to := normalizeWindow(query.From, query.To)
	topN := normalizeTopN(query.TopN)

	counts, err := s.repo.Analytics().EntityCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get entity counts: %w", err)
	}

	usersByRole, err := s.repo.Analytics().UsersByRole(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to group users by role: %w", err)
	}

	usersByStatus, err := s.repo.Analytics().UsersByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to group users by status: %w", err)
	}

	bookingsByStatus, err := s.repo.Analytics().BookingsByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to group bookings by status: %w", err)
	}

	daily, err := s.repo.Analytics().DailyBookings(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to get daily bookings: %w", err)
	}

	reviewStats, err := s.repo.Analytics().ReviewStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get review stats: %w", err)
	}

	topTutors, err := s.topTutors(ctx, topN)
	if err != nil {
		return nil, err
	}

	return &AnalyticsResponse{
		Window:           AnalyticsWindow{From: from, To: to},
		Counts:           *counts,
		UsersByRole:      usersByRole,
		UsersByStatus:    usersByStatus,
		BookingsByStatus: bookingsByStatus,
		DailyBookings:    daily,
		Reviews:          *reviewStats,
		TopTutors:        topTutors,
	}, nil
}

// topTutors builds the leaderboard: rating average descending, review count
// breaking ties.
func (s *analyticsService) topTutors(ctx context.Context, topN int) ([]*TutorLeaderboardEntry, error) {
	tutors, err := s.repo.Tutor().ListAllWithReviews(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tutors: %w", err)
	}

	entries := make([]*TutorLeaderboardEntry, 0, len(tutors))
	for _, tutor := range tutors {
		applyDerivedRating(tutor)

		entry := &TutorLeaderboardEntry{
			TutorID:      tutor.ID,
			Subject:      tutor.Subject,
			AvgRating:    tutor.AvgRating,
			ReviewsCount: tutor.ReviewsCount,
		}
		if tutor.User != nil {
			entry.Name = tutor.User.Name
		}
		if tutor.Category != nil {
			entry.Category = tutor.Category.Name
		}
		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].AvgRating != entries[j].AvgRating {
			return entries[i].AvgRating > entries[j].AvgRating
		}
		return entries[i].ReviewsCount > entries[j].ReviewsCount
	})

	if len(entries) > topN {
		entries = entries[:topN]
	}
	return entries, nil
}

// ExportAnalytics renders the same payload as an XLSX workbook, one sheet
// per section.
func (s *analyticsService) ExportAnalytics(ctx context.Context, query AnalyticsQuery) ([]byte, error) {
	analytics, err := s.GetAnalytics(ctx, query)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	overview := "Overview"
	f.SetSheetName("Sheet1", overview)
	writeRows(f, overview, [][]interface{}{
		{"Window from", analytics.Window.From.Format(exportDayFormat)},
		{"Window to", analytics.Window.To.Format(exportDayFormat)},
		{"Users", analytics.Counts.Users},
		{"Students", analytics.Counts.Students},
		{"Tutors", analytics.Counts.Tutors},
		{"Categories", analytics.Counts.Categories},
		{"Bookings", analytics.Counts.Bookings},
		{"Reviews", analytics.Counts.Reviews},
		{"Average rating", analytics.Reviews.Average},
	})

	users := "Users"
	f.NewSheet(users)
	userRows := [][]interface{}{{"Group", "Key", "Count"}}
	for role, count := range analytics.UsersByRole {
		userRows = append(userRows, []interface{}{"role", role, count})
	}
	for status, count := range analytics.UsersByStatus {
		userRows = append(userRows, []interface{}{"status", status, count})
	}
	writeRows(f, users, userRows)

	bookings := "Bookings"
	f.NewSheet(bookings)
	bookingRows := [][]interface{}{{"Status", "Count"}}
	for status, count := range analytics.BookingsByStatus {
		bookingRows = append(bookingRows, []interface{}{status, count})
	}
	writeRows(f, bookings, bookingRows)

	daily := "Daily Bookings"
	f.NewSheet(daily)
	dailyRows := [][]interface{}{{"Day", "Count"}}
	for _, bucket := range analytics.DailyBookings {
		dailyRows = append(dailyRows, []interface{}{bucket.Day, bucket.Count})
	}
	writeRows(f, daily, dailyRows)

	top := "Top Tutors"
	f.NewSheet(top)
	topRows := [][]interface{}{{"Tutor ID", "Name", "Subject", "Category", "Avg Rating", "Reviews"}}
	for _, entry := range analytics.TopTutors {
		topRows = append(topRows, []interface{}{
			entry.TutorID, entry.Name, entry.Subject, entry.Category, entry.AvgRating, entry.ReviewsCount,
		})
	}
	writeRows(f, top, topRows)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}

	return buf.Bytes(), nil
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			continue
		}
		_ = f.SetSheetRow(sheet, cell, &row)
	}
}

func normalizeWindow(from, to *time.Time) (time.Time, time.Time) {
	end := time.Now()
	if to != nil {
		end = *to
	}
	start := end.AddDate(0, 0, -defaultWindowDays)
	if from != nil {
		start = *from
	}
	return start, end
}

func normalizeTopN(topN int) int {
	if topN < 1 {
		return defaultTopN
	}
	if topN > maxTopN {
		return maxTopN
	}
	return topN
}
