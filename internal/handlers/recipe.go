package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/windoze95/vanadisheart-api/internal/models"
	"github.com/windoze95/vanadisheart-api/internal/service"
)

// Fetch modes accepted by ListRecipes.
const (
	modeSingle = "single"
	modeMulti  = "multi"
)

// RecipeHandler is the handler for recipe-related requests.
type RecipeHandler struct {
	Service *service.RecipeService
}

// NewRecipeHandler is the constructor function for initializing a new RecipeHandler.
func NewRecipeHandler(recipeService *service.RecipeService) *RecipeHandler {
	return &RecipeHandler{Service: recipeService}
}

// ListRecipes fetches a fresh collection from the recipe API. Without a
// query and without an explicit mode it fans out over several random terms.
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	opts := service.FetchOptions{Query: c.Query("q")}
	switch mode := strings.ToLower(c.Query("mode")); mode {
	case "":
		opts.MultiQuery = strings.TrimSpace(opts.Query) == ""
	case modeMulti:
		opts.MultiQuery = true
	case modeSingle:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "mode must be single or multi"})
		return
	}

	recipes, err := h.Service.FetchRecipes(c.Request.Context(), userID, opts)
	if err != nil {
		if errors.Is(err, service.ErrRecipeSearchFailed) {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch recipes", "recipes": []models.Recipe{}})
			return
		}
		respondError(c, err, "fetch recipes")
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": recipes, "total": len(recipes)})
}

// FilterResults refines the user's last fetched collection.
func (h *RecipeHandler) FilterResults(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	filter, err := parseFilter(c)
	if err != nil {
		respondError(c, err, "filter recipes")
		return
	}

	recipes, err := h.Service.FilterLastResults(c.Request.Context(), userID, filter)
	if err != nil {
		respondError(c, err, "filter recipes")
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": recipes, "total": len(recipes)})
}

// FilterRecipes refines a collection supplied by the client.
func (h *RecipeHandler) FilterRecipes(c *gin.Context) {
	var request struct {
		Recipes []models.Recipe `json:"recipes"`
		Filter  service.Filter  `json:"filter"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	recipes := service.FilterRecipes(request.Recipes, request.Filter)
	c.JSON(http.StatusOK, gin.H{"recipes": recipes, "total": len(recipes)})
}

// SetCurrentRecipe hands a recipe over to the detail page and records it as
// recently viewed.
func (h *RecipeHandler) SetCurrentRecipe(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var recipe models.Recipe
	if err := c.ShouldBindJSON(&recipe); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recipe"})
		return
	}

	if err := h.Service.ViewRecipe(c.Request.Context(), userID, &recipe); err != nil {
		respondError(c, err, "set current recipe")
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipe": recipe})
}

// GetCurrentRecipe returns the recipe last handed to the detail page.
func (h *RecipeHandler) GetCurrentRecipe(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	recipe, err := h.Service.GetCurrentRecipe(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "get current recipe")
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipe": recipe})
}

// GetRecentlyViewed returns the user's recently viewed recipes, newest first.
func (h *RecipeHandler) GetRecentlyViewed(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	recipes, err := h.Service.GetRecentlyViewed(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "get recently viewed recipes")
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

// GetRecipe returns a recipe by ID.
func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	recipe, err := h.Service.GetRecipe(c.Request.Context(), userID, c.Param("recipe_id"))
	if err != nil {
		respondError(c, err, "get recipe")
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipe": recipe})
}
