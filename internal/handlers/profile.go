package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/windoze95/vanadisheart-api/internal/models"
	"github.com/windoze95/vanadisheart-api/internal/service"
)

// ProfileHandler is the handler for saved recipes, cooking history and notes.
type ProfileHandler struct {
	Service *service.ProfileService
	Recipes *service.RecipeService
}

// NewProfileHandler is the constructor function for initializing a new ProfileHandler.
func NewProfileHandler(profileService *service.ProfileService, recipeService *service.RecipeService) *ProfileHandler {
	return &ProfileHandler{Service: profileService, Recipes: recipeService}
}

// GetProfile returns the authenticated user's whole profile.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	profile, err := h.Service.GetProfile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "get profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// GetSavedRecipes returns the saved recipes. Saved IDs that no longer
// resolve are listed under "missing".
func (h *ProfileHandler) GetSavedRecipes(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	recipes, missing, err := h.Service.GetSavedRecipes(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "get saved recipes")
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": recipes, "missing": missing})
}

// SaveRecipe saves a recipe. The body may carry the recipe itself; otherwise
// it is looked up among the recipes the user has seen.
func (h *ProfileHandler) SaveRecipe(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	recipeID := c.Param("recipe_id")

	var recipe *models.Recipe
	if c.Request.ContentLength > 0 {
		var body models.Recipe
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recipe"})
			return
		}
		if body.ID == "" {
			body.ID = recipeID
		}
		if body.ID != recipeID {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Recipe ID does not match the URL"})
			return
		}
		recipe = &body
	} else {
		found, err := h.Recipes.GetRecipe(c.Request.Context(), userID, recipeID)
		if err != nil {
			respondError(c, err, "save recipe")
			return
		}
		recipe = found
	}

	if err := h.Service.SaveRecipe(c.Request.Context(), userID, recipe); err != nil {
		respondError(c, err, "save recipe")
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipeId": recipeID, "saved": true})
}

// UnsaveRecipe removes a recipe from the saved set.
func (h *ProfileHandler) UnsaveRecipe(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	recipeID := c.Param("recipe_id")

	if err := h.Service.UnsaveRecipe(c.Request.Context(), userID, recipeID); err != nil {
		respondError(c, err, "unsave recipe")
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipeId": recipeID, "saved": false})
}

// GetHistory returns the cooking history, optionally for one recipe_id.
func (h *ProfileHandler) GetHistory(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	history, err := h.Service.GetHistory(c.Request.Context(), userID, c.Query("recipe_id"))
	if err != nil {
		respondError(c, err, "get cooking history")
		return
	}

	c.JSON(http.StatusOK, gin.H{"history": history})
}

// AddToHistory records a cooking attempt.
func (h *ProfileHandler) AddToHistory(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var request struct {
		RecipeID      string    `json:"recipeId" binding:"required"`
		Date          time.Time `json:"date"`
		Rating        int       `json:"rating" binding:"required"`
		Notes         string    `json:"notes"`
		Modifications []string  `json:"modifications"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "recipeId and rating are required"})
		return
	}

	attempt, err := h.Service.AddToHistory(c.Request.Context(), userID, models.CookingAttempt{
		RecipeID:      request.RecipeID,
		Date:          request.Date,
		Rating:        request.Rating,
		Notes:         request.Notes,
		Modifications: request.Modifications,
	})
	if err != nil {
		respondError(c, err, "add cooking attempt")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"attempt": attempt})
}

// GetRecipeNotes returns the user's notes on a recipe.
func (h *ProfileHandler) GetRecipeNotes(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	notes, err := h.Service.GetRecipeNotes(c.Request.Context(), userID, c.Param("recipe_id"))
	if err != nil {
		respondError(c, err, "get recipe notes")
		return
	}

	c.JSON(http.StatusOK, gin.H{"notes": notes})
}

// SetRecipeNotes replaces the user's notes on a recipe.
func (h *ProfileHandler) SetRecipeNotes(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var request struct {
		Notes []string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	notes, err := h.Service.SetRecipeNotes(c.Request.Context(), userID, c.Param("recipe_id"), request.Notes)
	if err != nil {
		respondError(c, err, "set recipe notes")
		return
	}

	c.JSON(http.StatusOK, gin.H{"notes": notes})
}
