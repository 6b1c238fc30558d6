package main

import (
	"context"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/windoze95/vanadisheart-api/internal/config"
	"github.com/windoze95/vanadisheart-api/internal/db"
	"github.com/windoze95/vanadisheart-api/internal/logger"
	"github.com/windoze95/vanadisheart-api/internal/providers"
	"github.com/windoze95/vanadisheart-api/internal/router"
	"go.uber.org/zap"
)

// init is called before the main function.
func init() {
	// Initialize structured logger (dev mode if GIN_MODE != release)
	isDev := os.Getenv("GIN_MODE") != "release"
	logger.Init(isDev)

	// Configure the runtime
	ConfigureRuntime()
}

// Entry point for the API.
func main() {
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load the config
	var cfg *config.Config
	if c, err := config.LoadConfig(); err != nil {
		logger.Get().Fatal("failed to load config", zap.Error(err))
	} else {
		cfg = c
	}

	// Check that all ENV variables are set
	if err := cfg.CheckConfigEnvFields(); err != nil {
		logger.Get().Fatal("missing required config fields", zap.Error(err))
	}
	if err := cfg.CheckStoreFields(); err != nil {
		logger.Get().Fatal("invalid store config", zap.Error(err))
	}

	// Load the food catalog, built-in unless CATALOG_PATH is set
	catalog, err := config.LoadCatalog(cfg.EnvVars.CatalogPath)
	if err != nil {
		logger.Get().Fatal("failed to load catalog", zap.Error(err))
	}
	cfg.Catalog = catalog

	// Open the key-value store
	store, closeStore, err := db.NewStore(ctx, cfg)
	if err != nil {
		logger.Get().Fatal("failed to open store", zap.Error(err))
	}
	defer closeStore()

	// Upstream API clients
	recipeSearch := providers.NewNinjasRecipeProvider(cfg.EnvVars.RecipeAPIKey, cfg.EnvVars.RecipeAPIURL, cfg.EnvVars.HTTPTimeout)
	imageSearch := providers.NewUnsplashImageProvider(cfg.EnvVars.ImageAPIKey, cfg.EnvVars.ImageAPIURL, cfg.EnvVars.HTTPTimeout)

	// Create a new gin router
	gin.SetMode(gin.ReleaseMode)
	r := router.SetupRouter(ctx, cfg, store, recipeSearch, imageSearch)

	// Run the server
	logger.Get().Info("starting server",
		zap.String("port", cfg.EnvVars.Port),
		zap.String("store", cfg.EnvVars.StoreBackend),
	)
	if err := r.Run(":" + cfg.EnvVars.Port); err != nil {
		logger.Get().Error("server stopped", zap.Error(err))
	}
}

// ConfigureRuntime sets the number of operating system threads.
func ConfigureRuntime() {
	nuCPU := runtime.NumCPU()
	runtime.GOMAXPROCS(nuCPU)
	logger.Get().Info("runtime configured", zap.Int("cpus", nuCPU))
}
