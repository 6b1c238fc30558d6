package repository

import (
	"context"

	"github.com/windoze95/vanadisheart-api/internal/models"
)

// Store is the key-value abstraction every persistence backend implements.
// Get returns a NotFoundError when the key is absent.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// ProfileRepo is the interface for user profile persistence.
type ProfileRepo interface {
	GetProfile(ctx context.Context, userID string) (*models.UserProfile, error)
	SaveProfile(ctx context.Context, profile *models.UserProfile) error
}

// RecipeRepo is the interface for recipe snapshots and per-user recipe state.
type RecipeRepo interface {
	GetSnapshot(ctx context.Context, userID, recipeID string) (*models.Recipe, error)
	SaveSnapshot(ctx context.Context, userID string, recipe *models.Recipe) error
	GetCurrentRecipe(ctx context.Context, userID string) (*models.Recipe, error)
	SetCurrentRecipe(ctx context.Context, userID string, recipe *models.Recipe) error
	GetRecentlyViewed(ctx context.Context, userID string) ([]models.Recipe, error)
	PushRecentlyViewed(ctx context.Context, userID string, recipe *models.Recipe) error
	GetLastResults(ctx context.Context, userID string) ([]models.Recipe, error)
	SetLastResults(ctx context.Context, userID string, recipes []models.Recipe) error
}
