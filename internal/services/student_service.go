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

type studentService struct {
	repo      repositories.Repository
	validator *validator.Validator
	publisher *events.Publisher
	logger    *slog.Logger
}

func NewStudentService(repo repositories.Repository, v *validator.Validator, publisher *events.Publisher, logger *slog.Logger) StudentService {
	return &studentService{
		repo:      repo,
		validator: v,
		publisher: publisher,
		logger:    logger,
	}
}

// ===== PROFILE =====

func (s *studentService) GetProfile(ctx context.Context, userID string) (*models.Student, error) {
	student, err := s.repo.Student().GetByUserID(ctx, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, profileNotFound()
		}
		return nil, fmt.Errorf("failed to get student profile: %w", err)
	}
	return student, nil
}

// UpsertProfile creates the profile or overwrites every listed field of the
// existing one.
func (s *studentService) UpsertProfile(ctx context.Context, userID string, req StudentProfileUpsertRequest) (*models.Student, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, apperrors.ValidationFailed(err)
	}

	group := models.GroupNone
	if req.Group != nil {
		group = *req.Group
	}

	existing, err := s.repo.Student().GetByUserID(ctx, userID)
	if err != nil && !repositories.IsNotFoundError(err) {
		return nil, fmt.Errorf("failed to get student profile: %w", err)
	}

	if existing == nil || repositories.IsNotFoundError(err) {
		student := &models.Student{
			UserID:     userID,
			Class:      req.Class,
			Institute:  req.Institute,
			Address:    req.Address,
			Phone:      req.Phone,
			ProfilePic: req.ProfilePic,
			Bio:        req.Bio,
			Group:      group,
		}
		if err := s.repo.Student().Create(ctx, student); err != nil {
			return nil, fmt.Errorf("failed to create student profile: %w", err)
		}
		s.logger.Info("student profile created", "user_id", userID)
		return student, nil
	}

	existing.Class = req.Class
	existing.Institute = req.Institute
	existing.Address = req.Address
	existing.Phone = req.Phone
	existing.ProfilePic = req.ProfilePic
	existing.Bio = req.Bio
	existing.Group = group

	if err := s.repo.Student().Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("failed to update student profile: %w", err)
	}

	return existing, nil
}

// PatchProfile applies only the fields present in the request body. An
// explicit null clears nullable fields; absent fields stay untouched.
func (s *studentService) PatchProfile(ctx context.Context, userID string, req StudentProfilePatchRequest) (*models.Student, error) {
	student, err := s.repo.Student().GetByUserID(ctx, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, apperrors.New(apperrors.CodeProfileNotFound,
				"No student profile exists yet; create your profile first.", http.StatusNotFound)
		}
		return nil, fmt.Errorf("failed to get student profile: %w", err)
	}

	fields := map[string]interface{}{}
	patchString(fields, "class", req.Class, false)
	patchString(fields, "institute", req.Institute, false)
	patchString(fields, "address", req.Address, false)
	patchString(fields, "phone", req.Phone, false)
	patchString(fields, "profile_pic", req.ProfilePic, true)
	patchString(fields, "bio", req.Bio, true)

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

	if len(fields) == 0 {
		return student, nil
	}

	if err := s.repo.Student().UpdateFields(ctx, student.ID, fields); err != nil {
		return nil, fmt.Errorf("failed to patch student profile: %w", err)
	}

	return s.repo.Student().GetByID(ctx, student.ID)
}

// ===== BOOKINGS =====

// CreateBooking inserts a CONFIRMED booking after the profile and
// availability guards pass.
func (s *studentService) CreateBooking(ctx context.Context, userID string, req BookingCreateRequest) (*models.Booking, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, apperrors.ValidationFailed(err)
	}

	student, err := s.repo.Student().GetByUserID(ctx, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, profileNotFound()
		}
		return nil, fmt.Errorf("failed to get student profile: %w", err)
	}

	tutor, err := s.repo.Tutor().GetByID(ctx, req.TutorID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, apperrors.NotFound("Tutor not found.")
		}
		return nil, fmt.Errorf("failed to get tutor: %w", err)
	}

	if !tutor.IsAvailable {
		return nil, apperrors.New(apperrors.CodeTutorUnavailable,
			"Tutor is not available for booking.", http.StatusConflict)
	}

	booking := &models.Booking{
		StudentID: student.ID,
		TutorID:   tutor.ID,
		Date:      req.Date,
		Time:      req.Time,
		Duration:  req.Duration,
		Status:    models.BookingConfirmed,
		Notes:     req.Notes,
	}

	if err := s.repo.Booking().Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	s.logger.Info("booking created", "booking_id", booking.ID, "student_id", student.ID, "tutor_id", tutor.ID)
	s.publisher.Publish(ctx, events.BookingCreated, events.BookingEvent{
		BookingID: booking.ID,
		StudentID: booking.StudentID,
		TutorID:   booking.TutorID,
		Status:    string(booking.Status),
		Date:      booking.Date,
	})

	return booking, nil
}

func (s *studentService) ListBookings(ctx context.Context, userID string, query BookingListQuery) (*BookingListResponse, error) {
	student, err := s.repo.Student().GetByUserID(ctx, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, profileNotFound()
		}
		return nil, fmt.Errorf("failed to get student profile: %w", err)
	}

	page, limit, skip := NormalizePagination(query.Page, query.Limit)

	bookings, total, err := s.repo.Booking().List(ctx, repositories.BookingFilters{
		StudentID: &student.ID,
		Status:    query.Status,
		Limit:     limit,
		Offset:    skip,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	return &BookingListResponse{
		Bookings: bookings,
		Meta:     NewPageMeta(page, limit, total),
	}, nil
}

func (s *studentService) GetBooking(ctx context.Context, userID string, bookingID uint) (*models.Booking, error) {
	return s.ownBooking(ctx, userID, bookingID)
}

// CancelBooking transitions CONFIRMED -> CANCELLED with a conditional
// update; a failed guard leaves the row untouched and surfaces a conflict.
func (s *studentService) CancelBooking(ctx context.Context, userID string, bookingID uint) (*models.Booking, error) {
	booking, err := s.ownBooking(ctx, userID, bookingID)
	if err != nil {
		return nil, err
	}

	changed, err := s.repo.Booking().UpdateStatusIf(ctx, booking.ID, models.BookingConfirmed, models.BookingCancelled)
	if err != nil {
		return nil, fmt.Errorf("failed to cancel booking: %w", err)
	}
	if !changed {
		return nil, apperrors.New(apperrors.CodeInvalidStatusTransition,
			"Only confirmed bookings can be cancelled.", http.StatusConflict)
	}

	booking.Status = models.BookingCancelled

	s.logger.Info("booking cancelled", "booking_id", booking.ID)
	s.publisher.Publish(ctx, events.BookingCancelled, events.BookingEvent{
		BookingID: booking.ID,
		StudentID: booking.StudentID,
		TutorID:   booking.TutorID,
		Status:    string(booking.Status),
		Date:      booking.Date,
	})

	return booking, nil
}

// ===== REVIEWS =====

// CreateReview runs the full guard chain and the insert inside one
// transaction; the unique booking index backstops concurrent creations.
func (s *studentService) CreateReview(ctx context.Context, userID string, req ReviewCreateRequest) (*models.Review, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, apperrors.ValidationFailed(err)
	}

	student, err := s.repo.Student().GetByUserID(ctx, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, profileNotFound()
		}
		return nil, fmt.Errorf("failed to get student profile: %w", err)
	}

	var review *models.Review
	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		booking, err := tx.Booking().GetByID(ctx, req.BookingID)
		if err != nil {
			if repositories.IsNotFoundError(err) {
				return apperrors.NotFound("Booking not found.")
			}
			return fmt.Errorf("failed to get booking: %w", err)
		}

		if booking.StudentID != student.ID {
			return apperrors.Forbidden("You can only review your own bookings.")
		}
		if booking.Status != models.BookingCompleted {
			return apperrors.Conflict("Only completed bookings can be reviewed.")
		}

		exists, err := tx.Review().ExistsByBookingID(ctx, booking.ID)
		if err != nil {
			return fmt.Errorf("failed to check existing review: %w", err)
		}
		if exists {
			return apperrors.New(apperrors.CodeReviewAlreadyExists,
				"This booking has already been reviewed.", http.StatusConflict)
		}

		review = &models.Review{
			StudentID: student.ID,
			TutorID:   booking.TutorID,
			BookingID: booking.ID,
			Rating:    req.Rating,
			Comment:   req.Comment,
		}
		if err := tx.Review().Create(ctx, review); err != nil {
			return fmt.Errorf("failed to create review: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("review created", "review_id", review.ID, "booking_id", review.BookingID)
	s.publisher.Publish(ctx, events.ReviewCreated, events.ReviewEvent{
		ReviewID:  review.ID,
		BookingID: review.BookingID,
		StudentID: review.StudentID,
		TutorID:   review.TutorID,
		Rating:    review.Rating,
	})

	return review, nil
}

func (s *studentService) ListReviews(ctx context.Context, userID string) ([]*models.Review, error) {
	student, err := s.repo.Student().GetByUserID(ctx, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, profileNotFound()
		}
		return nil, fmt.Errorf("failed to get student profile: %w", err)
	}

	return s.repo.Review().ListByStudentID(ctx, student.ID)
}

// ===== HELPERS =====

// ownBooking resolves the caller's profile and the booking, enforcing
// ownership. Foreign bookings read as not found.
func (s *studentService) ownBooking(ctx context.Context, userID string, bookingID uint) (*models.Booking, error) {
	student, err := s.repo.Student().GetByUserID(ctx, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, profileNotFound()
		}
		return nil, fmt.Errorf("failed to get student profile: %w", err)
	}

	booking, err := s.repo.Booking().GetByIDWithDetails(ctx, bookingID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, apperrors.NotFound("Booking not found.")
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.StudentID != student.ID {
		return nil, apperrors.NotFound("Booking not found.")
	}

	return booking, nil
}

func profileNotFound() *apperrors.AppError {
	return apperrors.New(apperrors.CodeProfileNotFound, "Profile not found.", http.StatusNotFound)
}

// patchString writes a tri-state string field into the update map. Nullable
// fields accept an explicit null as a clear; required fields reject it.
func patchString(fields map[string]interface{}, column string, value validator.Optional[string], nullable bool) {
	if !value.Set {
		return
	}
	if !value.Valid {
		if nullable {
			fields[column] = nil
		}
		return
	}
	fields[column] = value.Value
}
