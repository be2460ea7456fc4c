package casdoor

import (
	"context"
	"fmt"
	"strings"

	"github.com/casdoor/casdoor-go-sdk/casdoorsdk"
	"github.com/redis/go-redis/v9"

	"github.com/tutorlane/marketplace-service/internal/cache"
	"github.com/tutorlane/marketplace-service/internal/models"
	"github.com/tutorlane/marketplace-service/internal/repositories"
)

// CasdoorConfig holds the configuration for Casdoor connection
type CasdoorConfig struct {
	Endpoint         string
	ClientID         string
	ClientSecret     string
	Certificate      string
	OrganizationName string
	ApplicationName  string
}

// IdentityCasdoor verifies bearer tokens against Casdoor and maintains the
// local user mirror. A user row is created the first time a valid token for
// an unknown identity is seen; after that the local row is authoritative for
// role and status.
type IdentityCasdoor struct {
	client *casdoorsdk.Client
	users  repositories.UserRepository
	cache  *cache.CacheHelper
}

func NewIdentityCasdoor(config CasdoorConfig, redisClient *redis.Client, users repositories.UserRepository) repositories.IdentityRepository {
	client := casdoorsdk.NewClient(
		config.Endpoint,
		config.ClientID,
		config.ClientSecret,
		config.Certificate,
		config.OrganizationName,
		config.ApplicationName,
	)

	return &IdentityCasdoor{
		client: client,
		users:  users,
		cache:  cache.NewCacheHelper(redisClient, "identity:"),
	}
}

// ResolveToken validates the token signature, then resolves the local user
// row, creating it from the claims on first sight.
func (i *IdentityCasdoor) ResolveToken(ctx context.Context, token string) (*models.User, *models.Session, error) {
	claims, err := i.client.ParseJwtToken(token)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims.Id == "" {
		return nil, nil, fmt.Errorf("token carries no subject")
	}

	session := &models.Session{
		ID:     claims.ID,
		UserID: claims.Id,
	}
	if claims.ExpiresAt != nil {
		session.ExpiresAt = claims.ExpiresAt.Time
	}

	user, err := i.resolveUser(ctx, claims)
	if err != nil {
		return nil, nil, err
	}

	return user, session, nil
}

// Invalidate drops the cached resolution for a user.
func (i *IdentityCasdoor) Invalidate(ctx context.Context, userID string) error {
	return i.cache.Delete(ctx, userID)
}

func (i *IdentityCasdoor) resolveUser(ctx context.Context, claims *casdoorsdk.Claims) (*models.User, error) {
	var cached models.User
	if err := i.cache.Get(ctx, claims.Id, &cached); err == nil {
		return &cached, nil
	}

	user, err := i.users.GetByID(ctx, claims.Id)
	if err != nil {
		if !repositories.IsNotFoundError(err) {
			return nil, err
		}
		user = i.userFromClaims(claims)
		if err := i.users.Create(ctx, user); err != nil {
			// Another request may have mirrored the identity concurrently.
			if existing, getErr := i.users.GetByID(ctx, claims.Id); getErr == nil {
				user = existing
			} else {
				return nil, err
			}
		}
	}

	_ = i.cache.Set(ctx, claims.Id, user, cache.IdentityTTL)

	return user, nil
}

func (i *IdentityCasdoor) userFromClaims(claims *casdoorsdk.Claims) *models.User {
	name := claims.DisplayName
	if name == "" {
		name = claims.Name
	}

	return &models.User{
		ID:            claims.Id,
		Name:          name,
		Email:         claims.Email,
		EmailVerified: claims.EmailVerified,
		Role:          mapClaimsRole(claims),
		Status:        models.UserActive,
	}
}

func mapClaimsRole(claims *casdoorsdk.Claims) models.UserRole {
	if claims.IsAdmin {
		return models.RoleAdmin
	}
	switch strings.ToLower(claims.Type) {
	case "tutor", "teacher", "instructor":
		return models.RoleTutor
	case "admin", "administrator":
		return models.RoleAdmin
	default:
		return models.RoleStudent
	}
}
