package services

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"gorm.io/datatypes"

	"github.com/tutorlane/marketplace-service/internal/events"
	"github.com/tutorlane/marketplace-service/internal/models"
	"github.com/tutorlane/marketplace-service/internal/repositories"
	"github.com/tutorlane/marketplace-service/internal/validator"
	"github.com/tutorlane/marketplace-service/pkg/apperrors"
)

type adminService struct {
	repo      repositories.Repository
	validator *validator.Validator
	publisher *events.Publisher
	logger    *slog.Logger
}

func NewAdminService(repo repositories.Repository, v *validator.Validator, publisher *events.Publisher, logger *slog.Logger) AdminService {
	return &adminService{
		repo:      repo,
		validator: v,
		publisher: publisher,
		logger:    logger,
	}
}

// ===== USERS =====

func (s *adminService) ListUsers(ctx context.Context, query UserListQuery) (*UserListResponse, error) {
	page, limit, skip := NormalizePagination(query.Page, query.Limit)

	users, total, err := s.repo.User().List(ctx, repositories.UserFilters{
		Search: query.Search,
		Role:   query.Role,
		Status: query.Status,
		Limit:  limit,
		Offset: skip,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return &UserListResponse{
		Users: users,
		Meta:  NewPageMeta(page, limit, total),
	}, nil
}

func (s *adminService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.repo.User().GetByID(ctx, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, apperrors.NotFound("User not found.")
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (s *adminService) UpdateUserRole(ctx context.Context, userID string, req UserRoleUpdateRequest) (*models.User, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, apperrors.ValidationFailed(err)
	}

	if err := s.repo.User().UpdateRole(ctx, userID, req.Role); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, apperrors.NotFound("User not found.")
		}
		return nil, fmt.Errorf("failed to update user role: %w", err)
	}

	s.invalidateIdentity(ctx, userID)
	s.logger.Info("user role updated", "user_id", userID, "role", req.Role)

	return s.repo.User().GetByID(ctx, userID)
}

func (s *adminService) UpdateUserStatus(ctx context.Context, userID string, req UserStatusUpdateRequest) (*models.User, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, apperrors.ValidationFailed(err)
	}
	return s.setStatus(ctx, userID, req.Status)
}

func (s *adminService) SuspendUser(ctx context.Context, userID string) (*models.User, error) {
	return s.setStatus(ctx, userID, models.UserSuspended)
}

func (s *adminService) ActivateUser(ctx context.Context, userID string) (*models.User, error) {
	return s.setStatus(ctx, userID, models.UserActive)
}

func (s *adminService) setStatus(ctx context.Context, userID string, status models.UserStatus) (*models.User, error) {
	if err := s.repo.User().UpdateStatus(ctx, userID, status); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, apperrors.NotFound("User not found.")
		}
		return nil, fmt.Errorf("failed to update user status: %w", err)
	}

	s.invalidateIdentity(ctx, userID)
	s.logger.Info("user status updated", "user_id", userID, "status", status)

	return s.repo.User().GetByID(ctx, userID)
}

// DeleteUser removes the user and everything hanging off it: the profile's
// reviews and bookings first, then the profile, then the user row. One
// transaction keeps the cascade all-or-nothing.
func (s *adminService) DeleteUser(ctx context.Context, userID string) error {
	user, err := s.repo.User().GetByID(ctx, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return apperrors.NotFound("User not found.")
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		student, err := tx.Student().GetByUserID(ctx, userID)
		if err != nil && !repositories.IsNotFoundError(err) {
			return fmt.Errorf("failed to get student profile: %w", err)
		}
		if student != nil && err == nil {
			if err := tx.Review().DeleteByStudentID(ctx, student.ID); err != nil {
				return err
			}
			if err := tx.Booking().DeleteByStudentID(ctx, student.ID); err != nil {
				return err
			}
			if err := tx.Student().DeleteByUserID(ctx, userID); err != nil {
				return err
			}
		}

		tutor, err := tx.Tutor().GetByUserID(ctx, userID)
		if err != nil && !repositories.IsNotFoundError(err) {
			return fmt.Errorf("failed to get tutor profile: %w", err)
		}
		if tutor != nil && err == nil {
			if err := tx.Review().DeleteByTutorID(ctx, tutor.ID); err != nil {
				return err
			}
			if err := tx.Booking().DeleteByTutorID(ctx, tutor.ID); err != nil {
				return err
			}
			if err := tx.Tutor().DeleteByUserID(ctx, userID); err != nil {
				return err
			}
		}

		return tx.User().Delete(ctx, userID)
	})
	if err != nil {
		return err
	}

	s.invalidateIdentity(ctx, userID)
	s.logger.Info("user deleted", "user_id", userID)
	s.publisher.Publish(ctx, events.UserDeleted, events.UserEvent{
		UserID: userID,
		Role:   string(user.Role),
	})

	return nil
}

// ===== CATEGORIES =====

func (s *adminService) CreateCategory(ctx context.Context, req CategoryCreateRequest) (*models.Category, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, apperrors.ValidationFailed(err)
	}

	category := &models.Category{
		Name:     req.Name,
		Subjects: datatypes.JSONSlice[string](req.Subjects),
	}
	if err := s.repo.Category().Create(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	s.logger.Info("category created", "category_id", category.ID, "name", category.Name)

	return category, nil
}

func (s *adminService) UpdateCategory(ctx context.Context, id uint, req CategoryUpdateRequest) (*models.Category, error) {
	fields := map[string]interface{}{}
	if req.Name.Set {
		if !req.Name.Valid || req.Name.Value == "" {
			return nil, apperrors.BadRequest("name cannot be empty.")
		}
		fields["name"] = req.Name.Value
	}
	if req.Subjects.Set {
		if !req.Subjects.Valid {
			return nil, apperrors.BadRequest("subjects cannot be null.")
		}
		fields["subjects"] = datatypes.JSONSlice[string](req.Subjects.Value)
	}

	if len(fields) > 0 {
		if err := s.repo.Category().UpdateFields(ctx, id, fields); err != nil {
			if repositories.IsNotFoundError(err) {
				return nil, apperrors.NotFound("Category not found.")
			}
			return nil, fmt.Errorf("failed to update category: %w", err)
		}
	}

	category, err := s.repo.Category().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, apperrors.NotFound("Category not found.")
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return category, nil
}

// DeleteCategory refuses while any tutor still references the category. The
// guard and the delete run in one transaction.
func (s *adminService) DeleteCategory(ctx context.Context, id uint) error {
	return s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		count, err := tx.Category().CountTutors(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to count category tutors: %w", err)
		}
		if count > 0 {
			return apperrors.New(apperrors.CodeCategoryInUse,
				fmt.Sprintf("Category is referenced by %d tutor(s) and cannot be deleted.", count),
				http.StatusConflict)
		}

		if err := tx.Category().Delete(ctx, id); err != nil {
			if repositories.IsNotFoundError(err) {
				return apperrors.NotFound("Category not found.")
			}
			return fmt.Errorf("failed to delete category: %w", err)
		}
		return nil
	})
}

// ===== BOOKINGS & REVIEWS =====

func (s *adminService) ListBookings(ctx context.Context, query BookingListQuery) (*BookingListResponse, error) {
	page, limit, skip := NormalizePagination(query.Page, query.Limit)

	bookings, total, err := s.repo.Booking().List(ctx, repositories.BookingFilters{
		Status: query.Status,
		Limit:  limit,
		Offset: skip,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	return &BookingListResponse{
		Bookings: bookings,
		Meta:     NewPageMeta(page, limit, total),
	}, nil
}

func (s *adminService) ListReviews(ctx context.Context, query ReviewListQuery) (*ReviewListResponse, error) {
	page, limit, skip := NormalizePagination(query.Page, query.Limit)

	reviews, total, err := s.repo.Review().List(ctx, repositories.ReviewFilters{
		TutorID:   query.TutorID,
		RatingMin: query.RatingMin,
		RatingMax: query.RatingMax,
		Limit:     limit,
		Offset:    skip,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}

	return &ReviewListResponse{
		Reviews: reviews,
		Meta:    NewPageMeta(page, limit, total),
	}, nil
}

func (s *adminService) DeleteReview(ctx context.Context, id uint) error {
	if err := s.repo.Review().Delete(ctx, id); err != nil {
		if repositories.IsNotFoundError(err) {
			return apperrors.NotFound("Review not found.")
		}
		return fmt.Errorf("failed to delete review: %w", err)
	}

	s.logger.Info("review deleted", "review_id", id)
	return nil
}

// ===== TUTOR MODERATION =====

func (s *adminService) SetTutorFeatured(ctx context.Context, tutorID uint, req FeaturedUpdateRequest) (*models.Tutor, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, apperrors.ValidationFailed(err)
	}

	if err := s.repo.Tutor().UpdateFields(ctx, tutorID, map[string]interface{}{
		"is_featured": *req.IsFeatured,
	}); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, apperrors.NotFound("Tutor not found.")
		}
		return nil, fmt.Errorf("failed to update featured flag: %w", err)
	}

	return s.repo.Tutor().GetByID(ctx, tutorID)
}

func (s *adminService) SetTutorAvailability(ctx context.Context, tutorID uint, req AvailabilityUpdateRequest) (*models.Tutor, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, apperrors.ValidationFailed(err)
	}

	if err := s.repo.Tutor().UpdateFields(ctx, tutorID, availabilityFields(req)); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, apperrors.NotFound("Tutor not found.")
		}
		return nil, fmt.Errorf("failed to update availability: %w", err)
	}

	return s.repo.Tutor().GetByID(ctx, tutorID)
}

// invalidateIdentity drops the cached token resolution so gate decisions see
// the new role or status immediately.
func (s *adminService) invalidateIdentity(ctx context.Context, userID string) {
	if err := s.repo.Identity().Invalidate(ctx, userID); err != nil {
		s.logger.Warn("failed to invalidate identity cache", "user_id", userID, "error", err)
	}
}
