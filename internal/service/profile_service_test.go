package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/windoze95/vanadisheart-api/internal/models"
	"github.com/windoze95/vanadisheart-api/internal/repository"
	"github.com/windoze95/vanadisheart-api/internal/testutil"
)

func newTestProfileService() (*ProfileService, *testutil.MockNotifier, *testutil.MockImageSearchProvider) {
	store := repository.NewMemoryStore()
	notifier := &testutil.MockNotifier{}
	images := &testutil.MockImageSearchProvider{
		FindImageFunc: func(ctx context.Context, keyword string) (string, error) {
			return "https://images.example.com/" + keyword + ".jpg", nil
		},
	}
	svc := NewProfileService(
		repository.NewProfileRepository(store),
		repository.NewRecipeRepository(store),
		images,
		notifier,
	)
	svc.Now = func() time.Time { return fixedNow }
	return svc, notifier, images
}

func TestGetProfile_DefaultsWhenMissing(t *testing.T) {
	svc, _, _ := newTestProfileService()

	p, err := svc.GetProfile(context.Background(), "alice")
	if err != nil {
		t.Fatalf("GetProfile error: %v", err)
	}
	if p.ID != "alice" || len(p.SavedRecipes) != 0 || p.SavedRecipes == nil {
		t.Errorf("default profile = %+v", p)
	}
}

func TestEnsureProfile(t *testing.T) {
	ctx := context.Background()
	svc, notifier, _ := newTestProfileService()

	p, created, err := svc.EnsureProfile(ctx, "alice", "Alice", "")
	if err != nil || !created {
		t.Fatalf("first EnsureProfile = %v, created=%v", err, created)
	}
	if p.Username != "Alice" {
		t.Errorf("Username = %q", p.Username)
	}

	p, created, err = svc.EnsureProfile(ctx, "alice", "Alice", "alice@example.com")
	if err != nil || created {
		t.Fatalf("second EnsureProfile = %v, created=%v", err, created)
	}
	if p.Email != "alice@example.com" {
		t.Errorf("Email = %q, want updated", p.Email)
	}

	if diff := cmp.Diff([]string{ChangeProfileCreated}, notifier.Changes()); diff != "" {
		t.Errorf("notifications (-want +got):\n%s", diff)
	}
}

func TestSaveAndUnsaveRecipe(t *testing.T) {
	ctx := context.Background()
	svc, notifier, _ := newTestProfileService()
	recipe := testutil.TestRecipe()

	before, _ := svc.GetProfile(ctx, "alice")
	saved := append([]string{}, before.SavedRecipes...)

	if err := svc.SaveRecipe(ctx, "alice", recipe); err != nil {
		t.Fatalf("SaveRecipe error: %v", err)
	}
	// Idempotent.
	if err := svc.SaveRecipe(ctx, "alice", recipe); err != nil {
		t.Fatalf("second SaveRecipe error: %v", err)
	}

	ok, err := svc.IsRecipeSaved(ctx, "alice", recipe.ID)
	if err != nil || !ok {
		t.Errorf("IsRecipeSaved = %v, %v", ok, err)
	}
	p, _ := svc.GetProfile(ctx, "alice")
	if len(p.SavedRecipes) != 1 {
		t.Errorf("SavedRecipes = %v, want one entry", p.SavedRecipes)
	}

	if err := svc.UnsaveRecipe(ctx, "alice", recipe.ID); err != nil {
		t.Fatalf("UnsaveRecipe error: %v", err)
	}
	after, _ := svc.GetProfile(ctx, "alice")
	if diff := cmp.Diff(saved, after.SavedRecipes); diff != "" {
		t.Errorf("save then unsave should restore saved set (-want +got):\n%s", diff)
	}

	// One notification for the save, one for the unsave.
	if diff := cmp.Diff([]string{ChangeSavedRecipes, ChangeSavedRecipes}, notifier.Changes()); diff != "" {
		t.Errorf("notifications (-want +got):\n%s", diff)
	}
}

func TestSaveRecipe_RequiresID(t *testing.T) {
	svc, _, _ := newTestProfileService()
	if err := svc.SaveRecipe(context.Background(), "alice", &models.Recipe{}); !IsValidationError(err) {
		t.Errorf("err = %v, want ValidationError", err)
	}
}

func TestGetSavedRecipes_ReportsMissing(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestProfileService()

	recipe := testutil.TestRecipe()
	if err := svc.SaveRecipe(ctx, "alice", recipe); err != nil {
		t.Fatal(err)
	}
	// An ID saved without a snapshot, as older clients did.
	profile, _ := svc.GetProfile(ctx, "alice")
	profile.SavedRecipes = append(profile.SavedRecipes, "legacy-id")
	if err := svc.Repo.SaveProfile(ctx, profile); err != nil {
		t.Fatal(err)
	}

	recipes, missing, err := svc.GetSavedRecipes(ctx, "alice")
	if err != nil {
		t.Fatal(err)
	}
	if len(recipes) != 1 || recipes[0].ID != recipe.ID {
		t.Errorf("recipes = %v", ids(recipes))
	}
	if diff := cmp.Diff([]string{"legacy-id"}, missing); diff != "" {
		t.Errorf("missing (-want +got):\n%s", diff)
	}
}

func TestGetSavedRecipes_SnapshotsArePerUser(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestProfileService()

	if err := svc.SaveRecipe(ctx, "alice", &models.Recipe{ID: "r1", Name: "Real Pasta"}); err != nil {
		t.Fatal(err)
	}
	if err := svc.SaveRecipe(ctx, "bob", &models.Recipe{ID: "r1", Name: "Bob was here"}); err != nil {
		t.Fatal(err)
	}
	// Re-saving keeps the first snapshot.
	if err := svc.SaveRecipe(ctx, "alice", &models.Recipe{ID: "r1", Name: "Renamed"}); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		user string
		want string
	}{
		{"alice", "Real Pasta"},
		{"bob", "Bob was here"},
	}
	for _, tt := range tests {
		recipes, missing, err := svc.GetSavedRecipes(ctx, tt.user)
		if err != nil {
			t.Fatalf("GetSavedRecipes(%s) error: %v", tt.user, err)
		}
		if len(recipes) != 1 || recipes[0].Name != tt.want {
			t.Errorf("GetSavedRecipes(%s) = %+v, want name %q", tt.user, recipes, tt.want)
		}
		if len(missing) != 0 {
			t.Errorf("GetSavedRecipes(%s) missing = %v", tt.user, missing)
		}
	}
}

func TestAddToHistory(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestProfileService()

	tests := []struct {
		name    string
		attempt models.CookingAttempt
		wantErr bool
	}{
		{"valid", models.CookingAttempt{RecipeID: "r1", Rating: 4, Notes: "good"}, false},
		{"missing recipe", models.CookingAttempt{Rating: 4}, true},
		{"rating too low", models.CookingAttempt{RecipeID: "r1", Rating: 0}, true},
		{"rating too high", models.CookingAttempt{RecipeID: "r1", Rating: 6}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.AddToHistory(ctx, "alice", tt.attempt)
			if (err != nil) != tt.wantErr {
				t.Fatalf("AddToHistory err = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && !got.Date.Equal(fixedNow) {
				t.Errorf("Date = %v, want now", got.Date)
			}
		})
	}

	_, _ = svc.AddToHistory(ctx, "alice", models.CookingAttempt{RecipeID: "r2", Rating: 5})

	all, _ := svc.GetHistory(ctx, "alice", "")
	if len(all) != 2 || all[0].RecipeID != "r1" || all[1].RecipeID != "r2" {
		t.Errorf("history = %+v, want r1 then r2", all)
	}
	only, _ := svc.GetHistory(ctx, "alice", "r2")
	if len(only) != 1 {
		t.Errorf("filtered history = %+v", only)
	}
}

func TestRecipeNotes(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestProfileService()

	notes, err := svc.GetRecipeNotes(ctx, "alice", "r1")
	if err != nil || notes == nil || len(notes) != 0 {
		t.Fatalf("empty notes = %v, %v", notes, err)
	}

	got, err := svc.SetRecipeNotes(ctx, "alice", "r1", []string{" less salt ", "", "double garlic"})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"less salt", "double garlic"}, got); diff != "" {
		t.Errorf("SetRecipeNotes (-want +got):\n%s", diff)
	}

	notes, _ = svc.GetRecipeNotes(ctx, "alice", "r1")
	if len(notes) != 2 {
		t.Errorf("stored notes = %v", notes)
	}

	if _, err := svc.SetRecipeNotes(ctx, "alice", "r1", nil); err != nil {
		t.Fatal(err)
	}
	p, _ := svc.GetProfile(ctx, "alice")
	if _, ok := p.RecipeNotes["r1"]; ok {
		t.Error("clearing notes should remove the entry")
	}
}

func TestShoppingListLifecycle(t *testing.T) {
	ctx := context.Background()
	svc, notifier, _ := newTestProfileService()

	list, err := svc.CreateShoppingList(ctx, "alice", "  Weekend  ")
	if err != nil {
		t.Fatalf("CreateShoppingList error: %v", err)
	}
	if list.Name != "Weekend" || list.ID == "" || list.IsCompleted {
		t.Errorf("list = %+v", list)
	}

	eggs, err := svc.AddToShoppingList(ctx, "alice", list.ID, AddItemInput{Ingredient: "eggs", Quantity: "6"})
	if err != nil {
		t.Fatalf("AddToShoppingList error: %v", err)
	}
	if eggs.Image != "https://images.example.com/eggs.jpg" {
		t.Errorf("item image = %q", eggs.Image)
	}
	milk, _ := svc.AddToShoppingList(ctx, "alice", list.ID, AddItemInput{Ingredient: "milk"})

	item, err := svc.ToggleShoppingListItem(ctx, "alice", list.ID, eggs.ID)
	if err != nil || !item.IsCompleted {
		t.Fatalf("toggle = %+v, %v", item, err)
	}
	got, _ := svc.GetShoppingList(ctx, "alice", list.ID)
	if got.IsCompleted {
		t.Error("list should not be complete with an open item")
	}

	_, _ = svc.ToggleShoppingListItem(ctx, "alice", list.ID, milk.ID)
	got, _ = svc.GetShoppingList(ctx, "alice", list.ID)
	if !got.IsCompleted {
		t.Error("list should be complete when every item is complete")
	}

	// Adding an open item reopens the list.
	bread, _ := svc.AddToShoppingList(ctx, "alice", list.ID, AddItemInput{Ingredient: "bread"})
	got, _ = svc.GetShoppingList(ctx, "alice", list.ID)
	if got.IsCompleted {
		t.Error("list should reopen after adding an open item")
	}

	removed, err := svc.ClearCompletedShoppingListItems(ctx, "alice", list.ID)
	if err != nil || removed != 2 {
		t.Fatalf("ClearCompleted = %d, %v, want 2", removed, err)
	}

	if err := svc.RemoveFromShoppingList(ctx, "alice", list.ID, bread.ID); err != nil {
		t.Fatal(err)
	}
	got, _ = svc.GetShoppingList(ctx, "alice", list.ID)
	if len(got.Items) != 0 || got.IsCompleted {
		t.Errorf("empty list = %+v, want no items and not complete", got)
	}

	if err := svc.DeleteShoppingList(ctx, "alice", list.ID); err != nil {
		t.Fatal(err)
	}
	lists, _ := svc.GetShoppingLists(ctx, "alice")
	if len(lists) != 0 {
		t.Errorf("lists = %+v, want none", lists)
	}

	for _, c := range notifier.Changes() {
		if c != ChangeShoppingLists {
			t.Errorf("unexpected change %q", c)
		}
	}
}

func TestShoppingList_NotFound(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestProfileService()
	list, _ := svc.CreateShoppingList(ctx, "alice", "Groceries")

	checks := map[string]error{}
	_, checks["get"] = svc.GetShoppingList(ctx, "alice", "nope")
	_, checks["add"] = svc.AddToShoppingList(ctx, "alice", "nope", AddItemInput{Ingredient: "x"})
	checks["remove item"] = svc.RemoveFromShoppingList(ctx, "alice", list.ID, "nope")
	_, checks["toggle item"] = svc.ToggleShoppingListItem(ctx, "alice", list.ID, "nope")
	_, checks["clear"] = svc.ClearCompletedShoppingListItems(ctx, "alice", "nope")
	checks["delete"] = svc.DeleteShoppingList(ctx, "alice", "nope")
	checks["remove list"] = svc.RemoveFromShoppingList(ctx, "alice", "nope", "nope")

	for name, err := range checks {
		if !repository.IsNotFound(err) {
			t.Errorf("%s: err = %v, want NotFound", name, err)
		}
	}
}

func TestShoppingList_Validation(t *testing.T) {
	ctx := context.Background()
	svc, _, images := newTestProfileService()

	if _, err := svc.CreateShoppingList(ctx, "alice", "   "); !IsValidationError(err) {
		t.Errorf("blank name err = %v", err)
	}
	long := make([]byte, maxShoppingListNameLength+1)
	for i := range long {
		long[i] = 'a'
	}
	if _, err := svc.CreateShoppingList(ctx, "alice", string(long)); !IsValidationError(err) {
		t.Errorf("long name err = %v", err)
	}

	list, _ := svc.CreateShoppingList(ctx, "alice", "Groceries")
	if _, err := svc.AddToShoppingList(ctx, "alice", list.ID, AddItemInput{Ingredient: " "}); !IsValidationError(err) {
		t.Errorf("blank ingredient err = %v", err)
	}

	images.FindImageFunc = func(ctx context.Context, keyword string) (string, error) {
		return "", errors.New("image API down")
	}
	item, err := svc.AddToShoppingList(ctx, "alice", list.ID, AddItemInput{Ingredient: "flour"})
	if err != nil {
		t.Fatalf("image failure should be silent, got %v", err)
	}
	if item.Image != "" {
		t.Errorf("Image = %q, want empty", item.Image)
	}
}

func TestProfileMutations_Concurrent(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestProfileService()

	const n = 25
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r := &models.Recipe{ID: fmt.Sprintf("r%d", i)}
			if err := svc.SaveRecipe(ctx, "alice", r); err != nil {
				t.Errorf("SaveRecipe(%d): %v", i, err)
			}
		}(i)
	}
	wg.Wait()

	p, _ := svc.GetProfile(ctx, "alice")
	if len(p.SavedRecipes) != n {
		t.Errorf("SavedRecipes has %d entries, want %d (lost updates)", len(p.SavedRecipes), n)
	}
}

func TestProfileService_StoreFailure(t *testing.T) {
	store := &testutil.FailingStore{Err: errTest}
	svc := NewProfileService(repository.NewProfileRepository(store), repository.NewRecipeRepository(store), nil, nil)

	if _, err := svc.GetProfile(context.Background(), "alice"); err == nil {
		t.Error("expected error when store fails")
	}
	if err := svc.UnsaveRecipe(context.Background(), "alice", "r1"); err == nil {
		t.Error("expected error when store fails")
	}
}

// errTest is a shared test error for convenience.
var errTest = errTestType{}

type errTestType struct{}

func (e errTestType) Error() string { return "test error" }
