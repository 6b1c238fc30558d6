package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/windoze95/vanadisheart-api/internal/providers"
)

// --- MockRecipeSearchProvider ---

// MockRecipeSearchProvider is a mock implementation of providers.RecipeSearchProvider.
// Every query it receives is recorded.
type MockRecipeSearchProvider struct {
	SearchRecipesFunc func(ctx context.Context, query string) ([]providers.RawRecipe, error)

	mu      sync.Mutex
	Queries []string
}

func (m *MockRecipeSearchProvider) SearchRecipes(ctx context.Context, query string) ([]providers.RawRecipe, error) {
	m.mu.Lock()
	m.Queries = append(m.Queries, query)
	m.mu.Unlock()

	if m.SearchRecipesFunc != nil {
		return m.SearchRecipesFunc(ctx, query)
	}
	return nil, fmt.Errorf("SearchRecipes not configured")
}

// QueryCount returns how many searches were issued.
func (m *MockRecipeSearchProvider) QueryCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Queries)
}

// SeenQueries returns a copy of the recorded queries.
func (m *MockRecipeSearchProvider) SeenQueries() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.Queries...)
}

// --- MockImageSearchProvider ---

// MockImageSearchProvider is a mock implementation of providers.ImageSearchProvider.
type MockImageSearchProvider struct {
	FindImageFunc func(ctx context.Context, keyword string) (string, error)

	mu       sync.Mutex
	Keywords []string
}

func (m *MockImageSearchProvider) FindImage(ctx context.Context, keyword string) (string, error) {
	m.mu.Lock()
	m.Keywords = append(m.Keywords, keyword)
	m.mu.Unlock()

	if m.FindImageFunc != nil {
		return m.FindImageFunc(ctx, keyword)
	}
	return "", fmt.Errorf("FindImage not configured")
}

// SeenKeywords returns a copy of the recorded keywords.
func (m *MockImageSearchProvider) SeenKeywords() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.Keywords...)
}

// --- MockNotifier ---

// ProfileEvent is one recorded profile change.
type ProfileEvent struct {
	UserID string
	Change string
}

// MockNotifier records profile change notifications.
type MockNotifier struct {
	mu     sync.Mutex
	Events []ProfileEvent
}

func (m *MockNotifier) ProfileChanged(userID, change string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, ProfileEvent{UserID: userID, Change: change})
}

// Changes returns the recorded change names in order.
func (m *MockNotifier) Changes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.Events))
	for i, e := range m.Events {
		out[i] = e.Change
	}
	return out
}

// --- FailingStore ---

// FailingStore is a repository.Store whose operations return Err.
type FailingStore struct {
	Err error
}

func (s *FailingStore) Get(ctx context.Context, key string) ([]byte, error) { return nil, s.Err }

func (s *FailingStore) Set(ctx context.Context, key string, value []byte) error { return s.Err }

func (s *FailingStore) Delete(ctx context.Context, key string) error { return s.Err }
