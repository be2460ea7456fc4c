package services

import (
	"context"
	"log/slog"
	"sync"

	"github.com/tutorlane/marketplace-service/internal/events"
	"github.com/tutorlane/marketplace-service/internal/repositories"
	"github.com/tutorlane/marketplace-service/internal/validator"
)

// serviceManager implements ServiceManager interface
type serviceManager struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	publisher *events.Publisher

	catalogService   CatalogService
	studentService   StudentService
	tutorService     TutorService
	adminService     AdminService
	analyticsService AnalyticsService

	mu sync.RWMutex
}

// NewServiceManager creates a service manager with all dependencies wired.
func NewServiceManager(repo repositories.Repository, logger *slog.Logger, v *validator.Validator, publisher *events.Publisher) ServiceManager {
	return &serviceManager{
		repo:             repo,
		logger:           logger,
		validator:        v,
		publisher:        publisher,
		catalogService:   NewCatalogService(repo, logger),
		studentService:   NewStudentService(repo, v, publisher, logger),
		tutorService:     NewTutorService(repo, v, publisher, logger),
		adminService:     NewAdminService(repo, v, publisher, logger),
		analyticsService: NewAnalyticsService(repo, logger),
	}
}

func (sm *serviceManager) Catalog() CatalogService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.catalogService
}

func (sm *serviceManager) Student() StudentService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.studentService
}

func (sm *serviceManager) Tutor() TutorService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.tutorService
}

func (sm *serviceManager) Admin() AdminService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.adminService
}

func (sm *serviceManager) Analytics() AnalyticsService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.analyticsService
}

// Health reports whether the backing stores are reachable.
func (sm *serviceManager) Health(ctx context.Context) error {
	return sm.repo.Ping(ctx)
}
