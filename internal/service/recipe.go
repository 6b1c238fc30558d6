package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/windoze95/vanadisheart-api/internal/config"
	"github.com/windoze95/vanadisheart-api/internal/logger"
	"github.com/windoze95/vanadisheart-api/internal/metrics"
	"github.com/windoze95/vanadisheart-api/internal/models"
	"github.com/windoze95/vanadisheart-api/internal/providers"
	"github.com/windoze95/vanadisheart-api/internal/repository"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultMaxResults caps a fetch when the config leaves MaxResults unset.
const DefaultMaxResults = 10

// extraQueries is how many random terms multi-query mode adds.
const extraQueries = 3

// RecipeService is the business logic layer for recipe-related operations.
type RecipeService struct {
	Cfg          *config.Config
	Repo         repository.RecipeRepo
	RecipeSearch providers.RecipeSearchProvider
	ImageSearch  providers.ImageSearchProvider
	Random       *Picker
	Source       string
	Now          func() time.Time
}

// FetchOptions selects what FetchRecipes searches for.
type FetchOptions struct {
	Query      string
	MultiQuery bool
}

// NewRecipeService is the constructor function for initializing a new RecipeService
func NewRecipeService(cfg *config.Config, repo repository.RecipeRepo, recipeSearch providers.RecipeSearchProvider, imageSearch providers.ImageSearchProvider) *RecipeService {
	if cfg.Catalog == nil {
		cfg.Catalog = config.DefaultCatalog()
	}
	return &RecipeService{
		Cfg:          cfg,
		Repo:         repo,
		RecipeSearch: recipeSearch,
		ImageSearch:  imageSearch,
		Random:       NewRandomPicker(),
		Source:       providers.NinjasProviderName,
		Now:          time.Now,
	}
}

// SelectQueries returns the search terms for opts. A non-blank query is the
// only term. A blank query draws one vocabulary term, plus up to three more
// distinct ones in multi-query mode.
func (s *RecipeService) SelectQueries(opts FetchOptions) []string {
	if q := strings.TrimSpace(opts.Query); q != "" {
		return []string{q}
	}

	vocab := s.Cfg.Catalog.Vocabulary
	queries := []string{s.Random.Pick(vocab)}
	if !opts.MultiQuery {
		return queries
	}

	seen := map[string]bool{queries[0]: true}
	for i := 0; i < extraQueries; i++ {
		term := s.Random.Pick(vocab)
		if !seen[term] {
			seen[term] = true
			queries = append(queries, term)
		}
	}
	return queries
}

// FetchRecipes searches the recipe API, combines and shuffles the results,
// caps them, and enriches each one. On a search failure it returns an empty
// slice and an error wrapping ErrRecipeSearchFailed. When userID is set the
// collection is remembered as that user's last results.
func (s *RecipeService) FetchRecipes(ctx context.Context, userID string, opts FetchOptions) ([]models.Recipe, error) {
	queries := s.SelectQueries(opts)
	log := logger.With(zap.Strings("queries", queries), zap.String("user_id", userID))

	raw, err := s.searchAll(ctx, queries)
	if err != nil {
		log.Error("recipe search failed", zap.Error(err))
		return []models.Recipe{}, fmt.Errorf("%w: %w", ErrRecipeSearchFailed, err)
	}

	s.Random.Shuffle(len(raw), func(i, j int) { raw[i], raw[j] = raw[j], raw[i] })
	if limit := s.maxResults(); len(raw) > limit {
		raw = raw[:limit]
	}

	recipes := s.enrichAll(ctx, raw)
	metrics.RecipesServed.Add(float64(len(recipes)))
	log.Info("fetched recipes", zap.Int("count", len(recipes)))

	if userID != "" {
		if err := s.Repo.SetLastResults(ctx, userID, recipes); err != nil {
			log.Warn("failed to remember last results", zap.Error(err))
		}
	}

	return recipes, nil
}

// searchAll issues one search per query concurrently and concatenates the
// results in query order. Any failure fails the whole search.
func (s *RecipeService) searchAll(ctx context.Context, queries []string) ([]providers.RawRecipe, error) {
	results := make([][]providers.RawRecipe, len(queries))

	g, gctx := errgroup.WithContext(ctx)
	for i, q := range queries {
		g.Go(func() error {
			res, err := s.RecipeSearch.SearchRecipes(gctx, q)
			if err != nil {
				return fmt.Errorf("query %q: %w", q, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []providers.RawRecipe
	for _, res := range results {
		all = append(all, res...)
	}
	return all, nil
}

// enrichAll enriches every record concurrently, preserving order.
func (s *RecipeService) enrichAll(ctx context.Context, raw []providers.RawRecipe) []models.Recipe {
	recipes := make([]models.Recipe, len(raw))

	var g errgroup.Group
	for i := range raw {
		g.Go(func() error {
			recipes[i] = s.EnrichRecipe(ctx, raw[i])
			return nil
		})
	}
	_ = g.Wait()

	return recipes
}

// EnrichRecipe converts one upstream record into a Recipe. It never fails;
// image lookup problems fall back to a catalog image.
func (s *RecipeService) EnrichRecipe(ctx context.Context, raw providers.RawRecipe) models.Recipe {
	prep, cook := EstimateTimes(raw.Instructions)
	created := s.Now()

	return models.Recipe{
		ID:           RecipeID(s.Source, raw),
		Name:         raw.Title,
		Description:  raw.Title,
		Ingredients:  SplitIngredients(raw.Ingredients),
		Instructions: SplitInstructions(raw.Instructions),
		PrepTime:     prep,
		CookTime:     cook,
		Servings:     ParseServings(raw.Servings),
		Difficulty:   ClassifyDifficulty(prep + cook),
		Tags:         DeriveTags(s.Cfg.Catalog.TagRules, raw.Ingredients),
		Rating:       DefaultRating,
		Image:        s.resolveImage(ctx, s.imageKeyword(raw)),
		Author:       DefaultAuthor,
		Source:       s.Source,
		CreatedAt:    &created,
	}
}

func (s *RecipeService) imageKeyword(raw providers.RawRecipe) string {
	if kw := MatchImageKeyword(raw, s.Cfg.Catalog.Vocabulary); kw != "" {
		return kw
	}
	return s.Random.Pick(s.Cfg.Catalog.Vocabulary)
}

// resolveImage looks up an image for keyword, falling back to a random
// catalog image on any failure.
func (s *RecipeService) resolveImage(ctx context.Context, keyword string) string {
	url, err := s.ImageSearch.FindImage(ctx, keyword)
	if err == nil && url != "" {
		return url
	}

	metrics.ImageFallbacks.Inc()
	logger.Get().Warn("using fallback image", zap.String("keyword", keyword), zap.Error(err))
	return s.Random.Pick(s.Cfg.Catalog.FallbackImages)
}

func (s *RecipeService) maxResults() int {
	if s.Cfg.EnvVars.MaxResults > 0 {
		return s.Cfg.EnvVars.MaxResults
	}
	return DefaultMaxResults
}

// ViewRecipe makes recipe the user's current recipe and records it as
// recently viewed.
func (s *RecipeService) ViewRecipe(ctx context.Context, userID string, recipe *models.Recipe) error {
	if recipe == nil || strings.TrimSpace(recipe.ID) == "" {
		return NewValidationError("id", "recipe id is required")
	}
	if err := s.Repo.SetCurrentRecipe(ctx, userID, recipe); err != nil {
		return fmt.Errorf("failed to set current recipe: %w", err)
	}
	if err := s.Repo.PushRecentlyViewed(ctx, userID, recipe); err != nil {
		return fmt.Errorf("failed to record recently viewed recipe: %w", err)
	}
	return nil
}

// GetCurrentRecipe returns the recipe the user is viewing.
func (s *RecipeService) GetCurrentRecipe(ctx context.Context, userID string) (*models.Recipe, error) {
	recipe, err := s.Repo.GetCurrentRecipe(ctx, userID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, repository.NewNotFoundError("no current recipe")
		}
		return nil, err
	}
	return recipe, nil
}

// GetRecentlyViewed returns the user's recently viewed recipes, newest first.
func (s *RecipeService) GetRecentlyViewed(ctx context.Context, userID string) ([]models.Recipe, error) {
	return s.Repo.GetRecentlyViewed(ctx, userID)
}

// GetRecipe resolves recipeID from the user's current recipe, then recently
// viewed, then saved snapshots, then the last fetched results.
func (s *RecipeService) GetRecipe(ctx context.Context, userID, recipeID string) (*models.Recipe, error) {
	current, err := s.Repo.GetCurrentRecipe(ctx, userID)
	if err != nil && !repository.IsNotFound(err) {
		return nil, err
	}
	if current != nil && current.ID == recipeID {
		return current, nil
	}

	recent, err := s.Repo.GetRecentlyViewed(ctx, userID)
	if err != nil {
		return nil, err
	}
	if r := findRecipe(recent, recipeID); r != nil {
		return r, nil
	}

	snapshot, err := s.Repo.GetSnapshot(ctx, userID, recipeID)
	if err == nil {
		return snapshot, nil
	}
	if !repository.IsNotFound(err) {
		return nil, err
	}

	last, err := s.Repo.GetLastResults(ctx, userID)
	if err != nil {
		return nil, err
	}
	if r := findRecipe(last, recipeID); r != nil {
		return r, nil
	}

	return nil, repository.NewNotFoundError("recipe %q not found", recipeID)
}

// FilterLastResults applies f to the user's last fetched collection.
func (s *RecipeService) FilterLastResults(ctx context.Context, userID string, f Filter) ([]models.Recipe, error) {
	last, err := s.Repo.GetLastResults(ctx, userID)
	if err != nil {
		return nil, err
	}
	return FilterRecipes(last, f), nil
}

func findRecipe(recipes []models.Recipe, id string) *models.Recipe {
	for i := range recipes {
		if recipes[i].ID == id {
			return &recipes[i]
		}
	}
	return nil
}
