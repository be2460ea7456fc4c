package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tutorlane/marketplace-service/internal/models"
	"github.com/tutorlane/marketplace-service/internal/repositories"
	"github.com/tutorlane/marketplace-service/pkg/apperrors"
)

type catalogService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewCatalogService(repo repositories.Repository, logger *slog.Logger) CatalogService {
	return &catalogService{
		repo:   repo,
		logger: logger,
	}
}

func (s *catalogService) BrowseTutors(ctx context.Context, query TutorBrowseQuery) (*TutorListResponse, error) {
	page, limit, skip := NormalizePagination(query.Page, query.Limit)

	filters := repositories.TutorFilters{
		Search:     query.Search,
		CategoryID: query.CategoryID,
		Group:      query.Group,
		PriceMin:   query.PriceMin,
		PriceMax:   query.PriceMax,
		Available:  query.Available,
		Featured:   query.Featured,
		Limit:      limit,
		Offset:     skip,
		SortBy:     query.SortBy,
		SortOrder:  query.SortOrder,
	}

	tutors, total, err := s.repo.Tutor().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list tutors: %w", err)
	}

	for _, tutor := range tutors {
		applyDerivedRating(tutor)
	}

	return &TutorListResponse{
		Tutors: tutors,
		Meta:   NewPageMeta(page, limit, total),
	}, nil
}

func (s *catalogService) GetTutor(ctx context.Context, id uint) (*models.Tutor, error) {
	tutor, err := s.repo.Tutor().GetByIDWithDetails(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, apperrors.NotFound("Tutor not found.")
		}
		return nil, fmt.Errorf("failed to get tutor: %w", err)
	}

	applyDerivedRating(tutor)

	return tutor, nil
}

func (s *catalogService) ListCategories(ctx context.Context) ([]*models.Category, error) {
	categories, err := s.repo.Category().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}
