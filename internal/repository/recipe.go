package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/windoze95/vanadisheart-api/internal/models"
)

// Key prefixes for recipe state.
const (
	snapshotKeyPrefix    = "recipe:"
	currentRecipePrefix  = "currentRecipe:"
	viewedRecipesPrefix  = "viewedRecipes:"
	lastResultsKeyPrefix = "lastResults:"
)

// MaxRecentlyViewed caps the per-user recently viewed list.
const MaxRecentlyViewed = 10

// RecipeRepository persists recipe snapshots and per-user recipe state.
type RecipeRepository struct {
	Store Store
}

// NewRecipeRepository creates a new RecipeRepository.
func NewRecipeRepository(store Store) *RecipeRepository {
	return &RecipeRepository{Store: store}
}

// GetSnapshot loads the recipe snapshot userID saved under recipeID.
func (r *RecipeRepository) GetSnapshot(ctx context.Context, userID, recipeID string) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := r.getJSON(ctx, snapshotKey(userID, recipeID), &recipe); err != nil {
		return nil, err
	}
	return &recipe, nil
}

// SaveSnapshot stores a recipe so it stays resolvable for userID after later
// fetches. Snapshots are scoped per user.
func (r *RecipeRepository) SaveSnapshot(ctx context.Context, userID string, recipe *models.Recipe) error {
	return r.setJSON(ctx, snapshotKey(userID, recipe.ID), recipe)
}

func snapshotKey(userID, recipeID string) string {
	return snapshotKeyPrefix + userID + ":" + recipeID
}

// GetCurrentRecipe loads the recipe the user is currently viewing.
func (r *RecipeRepository) GetCurrentRecipe(ctx context.Context, userID string) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := r.getJSON(ctx, currentRecipePrefix+userID, &recipe); err != nil {
		return nil, err
	}
	return &recipe, nil
}

// SetCurrentRecipe replaces the recipe the user is currently viewing.
func (r *RecipeRepository) SetCurrentRecipe(ctx context.Context, userID string, recipe *models.Recipe) error {
	return r.setJSON(ctx, currentRecipePrefix+userID, recipe)
}

// GetRecentlyViewed returns the user's recently viewed recipes, newest first.
// A user with no history gets an empty slice.
func (r *RecipeRepository) GetRecentlyViewed(ctx context.Context, userID string) ([]models.Recipe, error) {
	recipes := []models.Recipe{}
	if err := r.getJSON(ctx, viewedRecipesPrefix+userID, &recipes); err != nil {
		if IsNotFound(err) {
			return []models.Recipe{}, nil
		}
		return nil, err
	}
	return recipes, nil
}

// PushRecentlyViewed moves recipe to the front of the recently viewed list,
// dropping any older copy with the same ID and trimming to MaxRecentlyViewed.
func (r *RecipeRepository) PushRecentlyViewed(ctx context.Context, userID string, recipe *models.Recipe) error {
	existing, err := r.GetRecentlyViewed(ctx, userID)
	if err != nil {
		return err
	}

	updated := make([]models.Recipe, 0, len(existing)+1)
	updated = append(updated, *recipe)
	for _, rc := range existing {
		if rc.ID != recipe.ID {
			updated = append(updated, rc)
		}
	}
	if len(updated) > MaxRecentlyViewed {
		updated = updated[:MaxRecentlyViewed]
	}

	return r.setJSON(ctx, viewedRecipesPrefix+userID, updated)
}

// GetLastResults returns the collection most recently fetched for the user.
func (r *RecipeRepository) GetLastResults(ctx context.Context, userID string) ([]models.Recipe, error) {
	recipes := []models.Recipe{}
	if err := r.getJSON(ctx, lastResultsKeyPrefix+userID, &recipes); err != nil {
		if IsNotFound(err) {
			return []models.Recipe{}, nil
		}
		return nil, err
	}
	return recipes, nil
}

// SetLastResults replaces the collection most recently fetched for the user.
func (r *RecipeRepository) SetLastResults(ctx context.Context, userID string, recipes []models.Recipe) error {
	return r.setJSON(ctx, lastResultsKeyPrefix+userID, recipes)
}

func (r *RecipeRepository) getJSON(ctx context.Context, key string, v interface{}) error {
	data, err := r.Store.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode %q: %w", key, err)
	}
	return nil
}

func (r *RecipeRepository) setJSON(ctx context.Context, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %q: %w", key, err)
	}
	return r.Store.Set(ctx, key, data)
}
