package testutil

import (
	"time"

	"github.com/windoze95/vanadisheart-api/internal/models"
	"github.com/windoze95/vanadisheart-api/internal/providers"
)

// TestImageURL is the image the default MockImageSearchProvider fixture returns.
const TestImageURL = "https://images.example.com/pasta.jpg"

// TestRawRecipe returns an upstream record with realistic fields.
func TestRawRecipe() providers.RawRecipe {
	return providers.RawRecipe{
		Title:        "Pasta Carbonara",
		Ingredients:  "200g spaghetti pasta|100g pancetta|2 eggs|50g parmesan|black pepper",
		Servings:     "2 servings",
		Instructions: "Boil the pasta. Fry the pancetta. Mix eggs and parmesan. Combine everything off the heat.",
	}
}

// TestRawRecipes returns n distinct upstream records.
func TestRawRecipes(n int) []providers.RawRecipe {
	out := make([]providers.RawRecipe, n)
	for i := range out {
		r := TestRawRecipe()
		r.Title = r.Title + " " + string(rune('A'+i%26)) + string(rune('a'+i/26))
		out[i] = r
	}
	return out
}

// TestRecipe returns an enriched recipe.
func TestRecipe() *models.Recipe {
	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return &models.Recipe{
		ID:           "6f1c1a3e-0000-5000-8000-000000000001",
		Name:         "Pasta Carbonara",
		Description:  "A delicious pasta carbonara recipe",
		Ingredients:  []string{"200g spaghetti pasta", "100g pancetta", "2 eggs", "50g parmesan"},
		Instructions: []string{"Boil the pasta", "Fry the pancetta", "Combine"},
		PrepTime:     20,
		CookTime:     25,
		Servings:     2,
		Difficulty:   models.DifficultyMedium,
		Tags:         []string{"italian", "quick"},
		Rating:       5,
		Image:        TestImageURL,
		Author:       "API Recipe",
		Source:       "api-ninjas",
		CreatedAt:    &created,
	}
}

// TestRecipes returns a small mixed collection for filter tests.
func TestRecipes() []models.Recipe {
	return []models.Recipe{
		{ID: "a", Name: "Quick Salad", Description: "Fresh greens", Tags: []string{"healthy", "quick"},
			PrepTime: 10, CookTime: 0, Difficulty: models.DifficultyEasy, Rating: 4.5},
		{ID: "b", Name: "Beef Stew", Description: "Slow comfort", Tags: []string{"comfort food"},
			PrepTime: 30, CookTime: 90, Difficulty: models.DifficultyHard, Rating: 5},
		{ID: "c", Name: "Pasta Bake", Description: "Cheesy pasta", Tags: []string{"italian", "baking"},
			PrepTime: 20, CookTime: 25, Difficulty: models.DifficultyMedium, Rating: 3},
		{ID: "d", Name: "Salmon Rice", Description: "Weeknight bowl", Tags: []string{"seafood", "asian"},
			PrepTime: 15, CookTime: 10, Difficulty: models.DifficultyEasy, Rating: 4},
	}
}

// TestProfile returns a profile with one saved recipe and one shopping list.
func TestProfile() *models.UserProfile {
	p := models.NewUserProfile("testuser", "testuser", "test@example.com")
	p.SavedRecipes = []string{TestRecipe().ID}
	p.ShoppingLists = []models.ShoppingList{
		{
			ID:          "list-1",
			Name:        "Weekend",
			CreatedDate: time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC),
			Items: []models.ShoppingListItem{
				{ID: "item-1", Ingredient: "eggs", Quantity: "6", AddedDate: time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC)},
			},
		},
	}
	return p
}
