package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	goaway "github.com/TwiN/go-away"
	"github.com/google/uuid"
	"github.com/windoze95/vanadisheart-api/internal/logger"
	"github.com/windoze95/vanadisheart-api/internal/models"
	"github.com/windoze95/vanadisheart-api/internal/providers"
	"github.com/windoze95/vanadisheart-api/internal/repository"
	"go.uber.org/zap"
)

// Profile change kinds sent to the ProfileNotifier.
const (
	ChangeProfileCreated = "profile_created"
	ChangeSavedRecipes   = "saved_recipes"
	ChangeHistory        = "recipe_history"
	ChangeNotes          = "recipe_notes"
	ChangeShoppingLists  = "shopping_lists"
)

const maxShoppingListNameLength = 100

// ProfileNotifier is told about every committed profile mutation.
type ProfileNotifier interface {
	ProfileChanged(userID, change string)
}

// ProfileService is the business logic layer for a user's stored data.
// Mutations of one user's profile are serialized within the process.
type ProfileService struct {
	Repo     repository.ProfileRepo
	Recipes  repository.RecipeRepo
	Images   providers.ImageSearchProvider
	Notifier ProfileNotifier
	Now      func() time.Time

	locks sync.Map // userID -> *sync.Mutex
}

// AddItemInput is a new shopping list entry.
type AddItemInput struct {
	Ingredient string `json:"ingredient"`
	Quantity   string `json:"quantity"`
	RecipeID   string `json:"recipeId"`
}

// NewProfileService is the constructor function for initializing a new ProfileService
func NewProfileService(repo repository.ProfileRepo, recipes repository.RecipeRepo, images providers.ImageSearchProvider, notifier ProfileNotifier) *ProfileService {
	return &ProfileService{
		Repo:     repo,
		Recipes:  recipes,
		Images:   images,
		Notifier: notifier,
		Now:      time.Now,
	}
}

func (s *ProfileService) lock(userID string) func() {
	m, _ := s.locks.LoadOrStore(userID, &sync.Mutex{})
	mu := m.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// load returns the stored profile or, when none exists, a default one.
func (s *ProfileService) load(ctx context.Context, userID string) (*models.UserProfile, error) {
	profile, err := s.Repo.GetProfile(ctx, userID)
	if err != nil {
		if repository.IsNotFound(err) {
			return models.NewUserProfile(userID, userID, ""), nil
		}
		return nil, err
	}
	return profile, nil
}

// mutate runs fn against the user's profile under the user's lock and saves
// the result when fn reports a change.
func (s *ProfileService) mutate(ctx context.Context, userID, change string, fn func(p *models.UserProfile) (bool, error)) error {
	unlock := s.lock(userID)
	defer unlock()

	profile, err := s.load(ctx, userID)
	if err != nil {
		return err
	}

	changed, err := fn(profile)
	if err != nil || !changed {
		return err
	}

	if err := s.Repo.SaveProfile(ctx, profile); err != nil {
		logger.Get().Error("failed to save profile", zap.String("user_id", userID), zap.String("change", change), zap.Error(err))
		return err
	}

	s.notify(userID, change)
	return nil
}

func (s *ProfileService) notify(userID, change string) {
	if s.Notifier != nil {
		s.Notifier.ProfileChanged(userID, change)
	}
}

// GetProfile returns the user's profile. A user with no stored profile gets
// an empty default.
func (s *ProfileService) GetProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	return s.load(ctx, userID)
}

// EnsureProfile returns the user's profile, creating it when missing. A
// non-empty email replaces the stored one. created reports whether a new
// profile was written.
func (s *ProfileService) EnsureProfile(ctx context.Context, userID, username, email string) (profile *models.UserProfile, created bool, err error) {
	unlock := s.lock(userID)
	defer unlock()

	profile, err = s.Repo.GetProfile(ctx, userID)
	switch {
	case err == nil:
		if email == "" || email == profile.Email {
			return profile, false, nil
		}
		profile.Email = email
		if err := s.Repo.SaveProfile(ctx, profile); err != nil {
			return nil, false, err
		}
		return profile, false, nil
	case repository.IsNotFound(err):
		profile = models.NewUserProfile(userID, username, email)
		if err := s.Repo.SaveProfile(ctx, profile); err != nil {
			return nil, false, err
		}
		s.notify(userID, ChangeProfileCreated)
		return profile, true, nil
	default:
		return nil, false, err
	}
}

// SaveRecipe adds recipe to the saved set and stores a snapshot for userID so
// the recipe stays resolvable. Saving twice is a no-op and keeps the first
// snapshot.
func (s *ProfileService) SaveRecipe(ctx context.Context, userID string, recipe *models.Recipe) error {
	if recipe == nil || strings.TrimSpace(recipe.ID) == "" {
		return NewValidationError("id", "recipe id is required")
	}

	return s.mutate(ctx, userID, ChangeSavedRecipes, func(p *models.UserProfile) (bool, error) {
		if p.HasSaved(recipe.ID) {
			return false, nil
		}
		if err := s.Recipes.SaveSnapshot(ctx, userID, recipe); err != nil {
			return false, fmt.Errorf("failed to save recipe snapshot: %w", err)
		}
		p.SavedRecipes = append(p.SavedRecipes, recipe.ID)
		return true, nil
	})
}

// UnsaveRecipe removes recipeID from the saved set. Removing an unsaved
// recipe is a no-op.
func (s *ProfileService) UnsaveRecipe(ctx context.Context, userID, recipeID string) error {
	return s.mutate(ctx, userID, ChangeSavedRecipes, func(p *models.UserProfile) (bool, error) {
		kept := p.SavedRecipes[:0]
		for _, id := range p.SavedRecipes {
			if id != recipeID {
				kept = append(kept, id)
			}
		}
		changed := len(kept) != len(p.SavedRecipes)
		p.SavedRecipes = kept
		return changed, nil
	})
}

// IsRecipeSaved reports whether recipeID is saved.
func (s *ProfileService) IsRecipeSaved(ctx context.Context, userID, recipeID string) (bool, error) {
	profile, err := s.load(ctx, userID)
	if err != nil {
		return false, err
	}
	return profile.HasSaved(recipeID), nil
}

// GetSavedRecipes resolves the saved IDs to recipe snapshots, in saved order.
// IDs without a snapshot are returned in missing.
func (s *ProfileService) GetSavedRecipes(ctx context.Context, userID string) (recipes []models.Recipe, missing []string, err error) {
	profile, err := s.load(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	recipes = []models.Recipe{}
	missing = []string{}
	for _, id := range profile.SavedRecipes {
		recipe, err := s.Recipes.GetSnapshot(ctx, userID, id)
		if err != nil {
			if repository.IsNotFound(err) {
				missing = append(missing, id)
				continue
			}
			return nil, nil, err
		}
		recipes = append(recipes, *recipe)
	}
	return recipes, missing, nil
}

// AddToHistory appends a cooking attempt. A zero date means now.
func (s *ProfileService) AddToHistory(ctx context.Context, userID string, attempt models.CookingAttempt) (*models.CookingAttempt, error) {
	if strings.TrimSpace(attempt.RecipeID) == "" {
		return nil, NewValidationError("recipeId", "recipe id is required")
	}
	if attempt.Rating < 1 || attempt.Rating > 5 {
		return nil, NewValidationError("rating", "rating must be between 1 and 5")
	}
	if attempt.Date.IsZero() {
		attempt.Date = s.Now()
	}
	if attempt.Modifications == nil {
		attempt.Modifications = []string{}
	}

	err := s.mutate(ctx, userID, ChangeHistory, func(p *models.UserProfile) (bool, error) {
		p.RecipeHistory = append(p.RecipeHistory, attempt)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

// GetHistory returns the user's cooking attempts, optionally only those for
// recipeID.
func (s *ProfileService) GetHistory(ctx context.Context, userID, recipeID string) ([]models.CookingAttempt, error) {
	profile, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if recipeID == "" {
		return profile.RecipeHistory, nil
	}

	out := []models.CookingAttempt{}
	for _, a := range profile.RecipeHistory {
		if a.RecipeID == recipeID {
			out = append(out, a)
		}
	}
	return out, nil
}

// SetRecipeNotes replaces the user's notes on recipeID. Blank notes are
// dropped; an empty result removes the entry.
func (s *ProfileService) SetRecipeNotes(ctx context.Context, userID, recipeID string, notes []string) ([]string, error) {
	if strings.TrimSpace(recipeID) == "" {
		return nil, NewValidationError("recipeId", "recipe id is required")
	}

	cleaned := []string{}
	for _, n := range notes {
		if n = strings.TrimSpace(n); n != "" {
			cleaned = append(cleaned, n)
		}
	}

	err := s.mutate(ctx, userID, ChangeNotes, func(p *models.UserProfile) (bool, error) {
		if len(cleaned) == 0 {
			if _, ok := p.RecipeNotes[recipeID]; !ok {
				return false, nil
			}
			delete(p.RecipeNotes, recipeID)
			return true, nil
		}
		if p.RecipeNotes == nil {
			p.RecipeNotes = make(map[string][]string)
		}
		p.RecipeNotes[recipeID] = cleaned
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return cleaned, nil
}

// GetRecipeNotes returns the user's notes on recipeID.
func (s *ProfileService) GetRecipeNotes(ctx context.Context, userID, recipeID string) ([]string, error) {
	profile, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if notes, ok := profile.RecipeNotes[recipeID]; ok {
		return notes, nil
	}
	return []string{}, nil
}

// GetShoppingLists returns all of the user's shopping lists.
func (s *ProfileService) GetShoppingLists(ctx context.Context, userID string) ([]models.ShoppingList, error) {
	profile, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return profile.ShoppingLists, nil
}

// GetShoppingList returns one shopping list.
func (s *ProfileService) GetShoppingList(ctx context.Context, userID, listID string) (*models.ShoppingList, error) {
	profile, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	list := profile.FindShoppingList(listID)
	if list == nil {
		return nil, listNotFound(listID)
	}
	return list, nil
}

// CreateShoppingList adds an empty list named name.
func (s *ProfileService) CreateShoppingList(ctx context.Context, userID, name string) (*models.ShoppingList, error) {
	name = strings.TrimSpace(name)
	if err := ValidateShoppingListName(name); err != nil {
		return nil, err
	}

	list := models.ShoppingList{
		ID:          uuid.NewString(),
		Name:        name,
		Items:       []models.ShoppingListItem{},
		CreatedDate: s.Now(),
	}

	err := s.mutate(ctx, userID, ChangeShoppingLists, func(p *models.UserProfile) (bool, error) {
		p.ShoppingLists = append(p.ShoppingLists, list)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return &list, nil
}

// AddToShoppingList appends an item to a list. An image for the ingredient
// is looked up first; a failed lookup leaves the image empty.
func (s *ProfileService) AddToShoppingList(ctx context.Context, userID, listID string, in AddItemInput) (*models.ShoppingListItem, error) {
	ingredient := strings.TrimSpace(in.Ingredient)
	if ingredient == "" {
		return nil, NewValidationError("ingredient", "ingredient is required")
	}

	item := models.ShoppingListItem{
		ID:         uuid.NewString(),
		Ingredient: ingredient,
		Quantity:   strings.TrimSpace(in.Quantity),
		RecipeID:   in.RecipeID,
		Image:      s.ingredientImage(ctx, ingredient),
		AddedDate:  s.Now(),
	}

	err := s.mutate(ctx, userID, ChangeShoppingLists, func(p *models.UserProfile) (bool, error) {
		list := p.FindShoppingList(listID)
		if list == nil {
			return false, listNotFound(listID)
		}
		list.Items = append(list.Items, item)
		list.RefreshCompletion()
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *ProfileService) ingredientImage(ctx context.Context, ingredient string) string {
	if s.Images == nil {
		return ""
	}
	url, err := s.Images.FindImage(ctx, ingredient)
	if err != nil {
		logger.Get().Debug("no image for shopping list item", zap.String("ingredient", ingredient), zap.Error(err))
		return ""
	}
	return url
}

// RemoveFromShoppingList deletes one item.
func (s *ProfileService) RemoveFromShoppingList(ctx context.Context, userID, listID, itemID string) error {
	return s.mutate(ctx, userID, ChangeShoppingLists, func(p *models.UserProfile) (bool, error) {
		list := p.FindShoppingList(listID)
		if list == nil {
			return false, listNotFound(listID)
		}
		for i := range list.Items {
			if list.Items[i].ID == itemID {
				list.Items = append(list.Items[:i], list.Items[i+1:]...)
				list.RefreshCompletion()
				return true, nil
			}
		}
		return false, itemNotFound(itemID)
	})
}

// ToggleShoppingListItem flips an item's completion and returns the item.
func (s *ProfileService) ToggleShoppingListItem(ctx context.Context, userID, listID, itemID string) (*models.ShoppingListItem, error) {
	var toggled models.ShoppingListItem
	err := s.mutate(ctx, userID, ChangeShoppingLists, func(p *models.UserProfile) (bool, error) {
		list := p.FindShoppingList(listID)
		if list == nil {
			return false, listNotFound(listID)
		}
		item := list.FindItem(itemID)
		if item == nil {
			return false, itemNotFound(itemID)
		}
		item.IsCompleted = !item.IsCompleted
		toggled = *item
		list.RefreshCompletion()
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return &toggled, nil
}

// ClearCompletedShoppingListItems drops completed items and returns how many
// were removed.
func (s *ProfileService) ClearCompletedShoppingListItems(ctx context.Context, userID, listID string) (int, error) {
	removed := 0
	err := s.mutate(ctx, userID, ChangeShoppingLists, func(p *models.UserProfile) (bool, error) {
		list := p.FindShoppingList(listID)
		if list == nil {
			return false, listNotFound(listID)
		}
		kept := make([]models.ShoppingListItem, 0, len(list.Items))
		for _, item := range list.Items {
			if !item.IsCompleted {
				kept = append(kept, item)
			}
		}
		removed = len(list.Items) - len(kept)
		list.Items = kept
		list.RefreshCompletion()
		return removed > 0, nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

// DeleteShoppingList removes a list and its items.
func (s *ProfileService) DeleteShoppingList(ctx context.Context, userID, listID string) error {
	return s.mutate(ctx, userID, ChangeShoppingLists, func(p *models.UserProfile) (bool, error) {
		for i := range p.ShoppingLists {
			if p.ShoppingLists[i].ID == listID {
				p.ShoppingLists = append(p.ShoppingLists[:i], p.ShoppingLists[i+1:]...)
				return true, nil
			}
		}
		return false, listNotFound(listID)
	})
}

// ValidateShoppingListName checks a trimmed list name.
func ValidateShoppingListName(name string) error {
	if name == "" {
		return NewValidationError("name", "shopping list name is required")
	}
	if len(name) > maxShoppingListNameLength {
		return NewValidationError("name", "shopping list name must be at most %d characters", maxShoppingListNameLength)
	}
	if goaway.IsProfane(name) {
		return NewValidationError("name", "shopping list name contains inappropriate language")
	}
	return nil
}

func listNotFound(listID string) error {
	return repository.NewNotFoundError("shopping list %q not found", listID)
}

func itemNotFound(itemID string) error {
	return repository.NewNotFoundError("shopping list item %q not found", itemID)
}
