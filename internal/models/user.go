package models

import "time"

// UserProfile is the single persisted record holding everything a user keeps:
// saved recipes, cooking history, notes, and shopping lists.
type UserProfile struct {
	ID            string              `json:"id"`
	Username      string              `json:"username"`
	Email         string              `json:"email,omitempty"`
	SavedRecipes  []string            `json:"savedRecipes"`
	RecipeHistory []CookingAttempt    `json:"recipeHistory"`
	ShoppingLists []ShoppingList      `json:"shoppingLists"`
	RecipeNotes   map[string][]string `json:"recipeNotes,omitempty"`
}

// NewUserProfile returns an empty profile with non-nil collections.
func NewUserProfile(id, username, email string) *UserProfile {
	return &UserProfile{
		ID:            id,
		Username:      username,
		Email:         email,
		SavedRecipes:  []string{},
		RecipeHistory: []CookingAttempt{},
		ShoppingLists: []ShoppingList{},
	}
}

// Normalize replaces nil collections left by older serialized profiles.
func (p *UserProfile) Normalize() {
	if p.SavedRecipes == nil {
		p.SavedRecipes = []string{}
	}
	if p.RecipeHistory == nil {
		p.RecipeHistory = []CookingAttempt{}
	}
	if p.ShoppingLists == nil {
		p.ShoppingLists = []ShoppingList{}
	}
	for i := range p.ShoppingLists {
		if p.ShoppingLists[i].Items == nil {
			p.ShoppingLists[i].Items = []ShoppingListItem{}
		}
	}
}

// HasSaved reports whether recipeID is in the saved list.
func (p *UserProfile) HasSaved(recipeID string) bool {
	for _, id := range p.SavedRecipes {
		if id == recipeID {
			return true
		}
	}
	return false
}

// FindShoppingList returns the list with the given ID, or nil.
func (p *UserProfile) FindShoppingList(listID string) *ShoppingList {
	for i := range p.ShoppingLists {
		if p.ShoppingLists[i].ID == listID {
			return &p.ShoppingLists[i]
		}
	}
	return nil
}

// CookingAttempt records one time the user cooked a recipe.
type CookingAttempt struct {
	RecipeID      string    `json:"recipeId"`
	Date          time.Time `json:"date"`
	Rating        int       `json:"rating"`
	Notes         string    `json:"notes"`
	Modifications []string  `json:"modifications"`
}

// ShoppingList is a named, ordered list of ingredients to buy.
type ShoppingList struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Items       []ShoppingListItem `json:"items"`
	CreatedDate time.Time          `json:"createdDate"`
	IsCompleted bool               `json:"isCompleted"`
}

// FindItem returns the item with the given ID, or nil.
func (l *ShoppingList) FindItem(itemID string) *ShoppingListItem {
	for i := range l.Items {
		if l.Items[i].ID == itemID {
			return &l.Items[i]
		}
	}
	return nil
}

// RefreshCompletion marks the list complete when it has items and all of
// them are completed.
func (l *ShoppingList) RefreshCompletion() {
	if len(l.Items) == 0 {
		l.IsCompleted = false
		return
	}
	for _, item := range l.Items {
		if !item.IsCompleted {
			l.IsCompleted = false
			return
		}
	}
	l.IsCompleted = true
}

// ShoppingListItem is one entry of a ShoppingList.
type ShoppingListItem struct {
	ID          string    `json:"id"`
	Ingredient  string    `json:"ingredient"`
	Quantity    string    `json:"quantity,omitempty"`
	IsCompleted bool      `json:"isCompleted"`
	RecipeID    string    `json:"recipeId,omitempty"`
	Image       string    `json:"image,omitempty"`
	AddedDate   time.Time `json:"addedDate"`
}
