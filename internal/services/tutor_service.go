package services

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/tutorlane/marketplace-service/internal/events"
	"github.com/tutorlane/marketplace-service/internal/models"
	"github.com/tutorlane/marketplace-service/internal/repositories"
	"github.com/tutorlane/marketplace-service/internal/validator"
	"github.com/tutorlane/marketplace-service/pkg/apperrors"
)

type tutorService struct {
	repo      repositories.Repository
	validator *validator.Validator
	publisher *events.Publisher
	logger    *slog.Logger
}

func NewTutorService(repo repositories.Repository, v *validator.Validator, publisher *events.Publisher, logger *slog.Logger) TutorService {
	return &tutorService{
		repo:      repo,
		validator: v,
		publisher: publisher,
		logger:    logger,
	}
}

// ===== PROFILE =====

func (s *tutorService) GetProfile(ctx context.Context, userID string) (*models.Tutor, error) {
	tutor, err := s.repo.Tutor().GetByUserID(ctx, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, profileNotFound()
		}
		return nil, fmt.Errorf("failed to get tutor profile: %w", err)
	}
	return tutor, nil
}

func (s *tutorService) UpsertProfile(ctx context.Context, userID string, req TutorProfileUpsertRequest) (*models.Tutor, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, apperrors.ValidationFailed(err)
	}

	if err := s.requireCategory(ctx, req.CategoryID); err != nil {
		return nil, err
	}

	group := models.GroupNone
	if req.Group != nil {
		group = *req.Group
	}
	isAvailable := true
	if req.IsAvailable != nil {
		isAvailable = *req.IsAvailable
	}

	existing, err := s.repo.Tutor().GetByUserID(ctx, userID)
	if err != nil && !repositories.IsNotFoundError(err) {
		return nil, fmt.Errorf("failed to get tutor profile: %w", err)
	}

	if existing == nil || repositories.IsNotFoundError(err) {
		tutor := &models.Tutor{
			UserID:        userID,
			Subject:       req.Subject,
			Experience:    req.Experience,
			Address:       req.Address,
			Phone:         req.Phone,
			ProfilePic:    req.ProfilePic,
			Bio:           req.Bio,
			Institute:     req.Institute,
			Group:         group,
			CategoryID:    req.CategoryID,
			PricePerDay:   req.PricePerDay,
			IsAvailable:   isAvailable,
			AvailableFrom: req.AvailableFrom,
			AvailableTo:   req.AvailableTo,
		}
		if err := s.repo.Tutor().Create(ctx, tutor); err != nil {
			return nil, fmt.Errorf("failed to create tutor profile: %w", err)
		}
		s.logger.Info("tutor profile created", "user_id", userID)
		return tutor, nil
	}

	existing.Subject = req.Subject
	existing.Experience = req.Experience
	existing.Address = req.Address
	existing.Phone = req.Phone
	existing.ProfilePic = req.ProfilePic
	existing.Bio = req.Bio
	existing.Institute = req.Institute
	existing.Group = group
	existing.CategoryID = req.CategoryID
	existing.PricePerDay = req.PricePerDay
	existing.IsAvailable = isAvailable
	existing.AvailableFrom = req.AvailableFrom
	existing.AvailableTo = req.AvailableTo

	if err := s.repo.Tutor().Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("failed to update tutor profile: %w", err)
	}

	return existing, nil
}

func (s *tutorService) PatchProfile(ctx context.Context, userID string, req TutorProfilePatchRequest) (*models.Tutor, error) {
	tutor, err := s.repo.Tutor().GetByUserID(ctx, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, apperrors.New(apperrors.CodeProfileNotFound,
				"No tutor profile exists yet; create your profile first.", http.StatusNotFound)
		}
		return nil, fmt.Errorf("failed to get tutor profile: %w", err)
	}

	fields := map[string]interface{}{}
	patchString(fields, "subject", req.Subject, false)
	patchString(fields, "experience", req.Experience, false)
	patchString(fields, "address", req.Address, false)
	patchString(fields, "phone", req.Phone, false)
	patchString(fields, "profile_pic", req.ProfilePic, true)
	patchString(fields, "bio", req.Bio, true)
	patchString(fields, "institute", req.Institute, true)
	patchString(fields, "available_from", req.AvailableFrom, true)
	patchString(fields, "available_to", req.AvailableTo, true)

	if req.Group.Set {
		if !req.Group.Valid {
			fields["group"] = models.GroupNone
		} else {
			if !req.Group.Value.Valid() {
				return nil, apperrors.BadRequest("Unknown academic group.")
			}
			fields["group"] = req.Group.Value
		}
	}
	if req.CategoryID.Set {
		if !req.CategoryID.Valid {
			return nil, apperrors.BadRequest("category_id cannot be null.")
		}
		if err := s.requireCategory(ctx, req.CategoryID.Value); err != nil {
			return nil, err
		}
		fields["category_id"] = req.CategoryID.Value
	}
	if req.PricePerDay.Set {
		if !req.PricePerDay.Valid || req.PricePerDay.Value <= 0 {
			return nil, apperrors.BadRequest("price_per_day must be a positive number.")
		}
		fields["price_per_day"] = req.PricePerDay.Value
	}

	if len(fields) == 0 {
		return tutor, nil
	}

	if err := s.repo.Tutor().UpdateFields(ctx, tutor.ID, fields); err != nil {
		return nil, fmt.Errorf("failed to patch tutor profile: %w", err)
	}

	return s.repo.Tutor().GetByUserID(ctx, userID)
}

// UpdateAvailability flips the availability flag; the window fields follow
// the same presence rule as a patch.
func (s *tutorService) UpdateAvailability(ctx context.Context, userID string, req AvailabilityUpdateRequest) (*models.Tutor, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, apperrors.ValidationFailed(err)
	}

	tutor, err := s.repo.Tutor().GetByUserID(ctx, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, profileNotFound()
		}
		return nil, fmt.Errorf("failed to get tutor profile: %w", err)
	}

	fields := availabilityFields(req)
	if err := s.repo.Tutor().UpdateFields(ctx, tutor.ID, fields); err != nil {
		return nil, fmt.Errorf("failed to update availability: %w", err)
	}

	return s.repo.Tutor().GetByUserID(ctx, userID)
}

// ===== SESSIONS =====

func (s *tutorService) ListSessions(ctx context.Context, userID string, query BookingListQuery) (*BookingListResponse, error) {
	tutor, err := s.repo.Tutor().GetByUserID(ctx, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, profileNotFound()
		}
		return nil, fmt.Errorf("failed to get tutor profile: %w", err)
	}

	page, limit, skip := NormalizePagination(query.Page, query.Limit)

	bookings, total, err := s.repo.Booking().List(ctx, repositories.BookingFilters{
		TutorID: &tutor.ID,
		Status:  query.Status,
		Limit:   limit,
		Offset:  skip,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	return &BookingListResponse{
		Bookings: bookings,
		Meta:     NewPageMeta(page, limit, total),
	}, nil
}

func (s *tutorService) GetSession(ctx context.Context, userID string, bookingID uint) (*models.Booking, error) {
	return s.ownSession(ctx, userID, bookingID)
}

// CompleteSession transitions CONFIRMED -> COMPLETED with the same
// conditional-update guard as cancellation.
func (s *tutorService) CompleteSession(ctx context.Context, userID string, bookingID uint) (*models.Booking, error) {
	booking, err := s.ownSession(ctx, userID, bookingID)
	if err != nil {
		return nil, err
	}

	changed, err := s.repo.Booking().UpdateStatusIf(ctx, booking.ID, models.BookingConfirmed, models.BookingCompleted)
	if err != nil {
		return nil, fmt.Errorf("failed to complete session: %w", err)
	}
	if !changed {
		return nil, apperrors.New(apperrors.CodeInvalidStatusTransition,
			"Only confirmed sessions can be marked completed.", http.StatusConflict)
	}

	booking.Status = models.BookingCompleted

	s.logger.Info("session completed", "booking_id", booking.ID)
	s.publisher.Publish(ctx, events.BookingCompleted, events.BookingEvent{
		BookingID: booking.ID,
		StudentID: booking.StudentID,
		TutorID:   booking.TutorID,
		Status:    string(booking.Status),
		Date:      booking.Date,
	})

	return booking, nil
}

// ===== REVIEWS & DASHBOARD =====

func (s *tutorService) ListReviews(ctx context.Context, userID string) ([]*models.Review, error) {
	tutor, err := s.repo.Tutor().GetByUserID(ctx, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, profileNotFound()
		}
		return nil, fmt.Errorf("failed to get tutor profile: %w", err)
	}

	return s.repo.Review().ListByTutorID(ctx, tutor.ID)
}

func (s *tutorService) GetDashboard(ctx context.Context, userID string) (*TutorDashboardResponse, error) {
	tutor, err := s.repo.Tutor().GetByUserID(ctx, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, profileNotFound()
		}
		return nil, fmt.Errorf("failed to get tutor profile: %w", err)
	}

	sessions, err := s.repo.Booking().CountByStatusForTutor(ctx, tutor.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count sessions: %w", err)
	}
	// Every status appears in the payload, zero included.
	for _, status := range []models.BookingStatus{models.BookingConfirmed, models.BookingCompleted, models.BookingCancelled} {
		if _, ok := sessions[status]; !ok {
			sessions[status] = 0
		}
	}

	reviews, err := s.repo.Review().ListByTutorID(ctx, tutor.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}

	rating := RatingSummary{Count: len(reviews)}
	if rating.Count > 0 {
		var sum int
		for _, review := range reviews {
			sum += review.Rating
		}
		rating.Average = float64(sum) / float64(rating.Count)
	}

	return &TutorDashboardResponse{
		Sessions: sessions,
		Rating:   rating,
	}, nil
}

// ===== HELPERS =====

func (s *tutorService) ownSession(ctx context.Context, userID string, bookingID uint) (*models.Booking, error) {
	tutor, err := s.repo.Tutor().GetByUserID(ctx, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, profileNotFound()
		}
		return nil, fmt.Errorf("failed to get tutor profile: %w", err)
	}

	booking, err := s.repo.Booking().GetByIDWithDetails(ctx, bookingID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, apperrors.NotFound("Session not found.")
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	if booking.TutorID != tutor.ID {
		return nil, apperrors.NotFound("Session not found.")
	}

	return booking, nil
}

func (s *tutorService) requireCategory(ctx context.Context, categoryID uint) error {
	exists, err := s.repo.Category().ExistsByID(ctx, categoryID)
	if err != nil {
		return fmt.Errorf("failed to check category: %w", err)
	}
	if !exists {
		return apperrors.New(apperrors.CodeInvalidCategory,
			"Category does not exist.", http.StatusNotFound)
	}
	return nil
}

// availabilityFields builds the update map shared by the tutor and admin
// availability endpoints.
func availabilityFields(req AvailabilityUpdateRequest) map[string]interface{} {
	fields := map[string]interface{}{
		"is_available": *req.IsAvailable,
	}
	patchString(fields, "available_from", req.AvailableFrom, true)
	patchString(fields, "available_to", req.AvailableTo, true)
	return fields
}
