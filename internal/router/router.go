package router

import (
	"context"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/windoze95/vanadisheart-api/internal/config"
	"github.com/windoze95/vanadisheart-api/internal/handlers"
	"github.com/windoze95/vanadisheart-api/internal/logger"
	"github.com/windoze95/vanadisheart-api/internal/middleware"
	"github.com/windoze95/vanadisheart-api/internal/providers"
	"github.com/windoze95/vanadisheart-api/internal/repository"
	"github.com/windoze95/vanadisheart-api/internal/service"
	"github.com/windoze95/vanadisheart-api/internal/ws"
)

const (
	limiterCleanupInterval = time.Minute
	limiterExpiration      = 3 * time.Minute
)

// SetupRouter sets up the Gin router. Background work started here stops
// when ctx is done.
func SetupRouter(ctx context.Context, cfg *config.Config, store repository.Store, recipeSearch providers.RecipeSearchProvider, imageSearch providers.ImageSearchProvider) *gin.Engine {
	// Create default Gin router
	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowCredentials = true
	corsConfig.AllowOrigins = cfg.EnvVars.AllowedOrigins
	corsConfig.AddAllowHeaders("Authorization", middleware.IDHeaderName)
	corsConfig.AddExposeHeaders("X-Request-ID")
	r.Use(cors.New(corsConfig))

	// Add request ID middleware for request correlation
	r.Use(logger.RequestIDMiddleware())

	if cfg.EnvVars.RateLimitRPS > 0 {
		r.Use(middleware.RateLimitByIP(ctx, cfg.EnvVars.RateLimitRPS, limiterCleanupInterval, limiterExpiration))
	}

	// Ping route for testing
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Profile change feed
	hub := ws.NewHub()
	go hub.Run()

	// Repositories share one key-value store
	recipeRepo := repository.NewRecipeRepository(store)
	profileRepo := repository.NewProfileRepository(store)

	// Recipe-related routes setup
	recipeService := service.NewRecipeService(cfg, recipeRepo, recipeSearch, imageSearch)
	recipeHandler := handlers.NewRecipeHandler(recipeService)

	// Profile-related routes setup
	profileService := service.NewProfileService(profileRepo, recipeRepo, imageSearch, hub)
	profileHandler := handlers.NewProfileHandler(profileService, recipeService)
	shoppingHandler := handlers.NewShoppingListHandler(profileService)

	// User-related routes setup
	userService := service.NewUserService(cfg, profileService)
	userHandler := handlers.NewUserHandler(userService)

	v1 := r.Group("/v1")
	if cfg.EnvVars.IDHeader != "" {
		v1.Use(middleware.CheckIDHeader(cfg.EnvVars.IDHeader))
	}

	// Group for API routes that don't require token verification
	apiPublic := v1.Group("")
	{
		// Log in, creating the profile on first login
		apiPublic.POST("/auth/login", userHandler.LoginUser)
	}

	// Group for API routes that require token verification
	apiProtected := v1.Group("")
	{
		apiProtected.Use(middleware.VerifyTokenMiddleware(cfg))

		// Recipe-related routes

		// Fetch a fresh collection from the recipe API
		apiProtected.GET("/recipes", recipeHandler.ListRecipes)
		// Refine the last fetched collection
		apiProtected.GET("/recipes/results", recipeHandler.FilterResults)
		// Refine a collection supplied by the client
		apiProtected.POST("/recipes/filter", recipeHandler.FilterRecipes)
		// Hand a recipe over to the detail page
		apiProtected.PUT("/recipes/current", recipeHandler.SetCurrentRecipe)
		apiProtected.GET("/recipes/current", recipeHandler.GetCurrentRecipe)
		apiProtected.GET("/recipes/recent", recipeHandler.GetRecentlyViewed)
		apiProtected.GET("/recipes/:recipe_id", recipeHandler.GetRecipe)

		// Profile-related routes

		apiProtected.GET("/profile", profileHandler.GetProfile)
		apiProtected.GET("/profile/saved", profileHandler.GetSavedRecipes)
		apiProtected.PUT("/profile/saved/:recipe_id", profileHandler.SaveRecipe)
		apiProtected.DELETE("/profile/saved/:recipe_id", profileHandler.UnsaveRecipe)
		apiProtected.GET("/profile/history", profileHandler.GetHistory)
		apiProtected.POST("/profile/history", profileHandler.AddToHistory)
		apiProtected.GET("/profile/notes/:recipe_id", profileHandler.GetRecipeNotes)
		apiProtected.PUT("/profile/notes/:recipe_id", profileHandler.SetRecipeNotes)

		// Shopping list routes

		apiProtected.GET("/shopping-lists", shoppingHandler.ListShoppingLists)
		apiProtected.POST("/shopping-lists", shoppingHandler.CreateShoppingList)
		apiProtected.GET("/shopping-lists/:list_id", shoppingHandler.GetShoppingList)
		apiProtected.DELETE("/shopping-lists/:list_id", shoppingHandler.DeleteShoppingList)
		apiProtected.POST("/shopping-lists/:list_id/items", shoppingHandler.AddItem)
		apiProtected.DELETE("/shopping-lists/:list_id/items/:item_id", shoppingHandler.RemoveItem)
		apiProtected.PUT("/shopping-lists/:list_id/items/:item_id/toggle", shoppingHandler.ToggleItem)
		apiProtected.POST("/shopping-lists/:list_id/clear-completed", shoppingHandler.ClearCompleted)
	}

	// WebSocket routes (authenticated via query param token). Browsers cannot
	// set headers on the upgrade request, so the ID header check is skipped.
	feedHandler := ws.NewProfileFeedHandler(hub, cfg.EnvVars.JwtSecretKey, cfg.EnvVars.AllowedOrigins)
	r.GET("/v1/ws/profile", feedHandler.HandleProfileFeed)

	return r
}
