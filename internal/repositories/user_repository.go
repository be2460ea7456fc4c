package repositories

import (
	"context"

	"github.com/tutorlane/marketplace-service/internal/models"
)

// UserRepository manages the local mirror rows of provider identities.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	UpdateRole(ctx context.Context, id string, role models.UserRole) error
	UpdateStatus(ctx context.Context, id string, status models.UserStatus) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filters UserFilters) ([]*models.User, int64, error)
}

// IdentityRepository resolves a raw bearer token against the external auth
// provider into the local user record plus session metadata.
type IdentityRepository interface {
	ResolveToken(ctx context.Context, token string) (*models.User, *models.Session, error)
	// Invalidate drops any cached resolution for the user so role and
	// status mutations take effect on the next request.
	Invalidate(ctx context.Context, userID string) error
}
