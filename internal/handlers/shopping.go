package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/windoze95/vanadisheart-api/internal/service"
)

// ShoppingListHandler is the handler for shopping list requests.
type ShoppingListHandler struct {
	Service *service.ProfileService
}

// NewShoppingListHandler is the constructor function for initializing a new ShoppingListHandler.
func NewShoppingListHandler(profileService *service.ProfileService) *ShoppingListHandler {
	return &ShoppingListHandler{Service: profileService}
}

// ListShoppingLists returns all of the user's lists.
func (h *ShoppingListHandler) ListShoppingLists(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	lists, err := h.Service.GetShoppingLists(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "list shopping lists")
		return
	}

	c.JSON(http.StatusOK, gin.H{"shoppingLists": lists})
}

// CreateShoppingList creates an empty list.
func (h *ShoppingListHandler) CreateShoppingList(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var request struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	list, err := h.Service.CreateShoppingList(c.Request.Context(), userID, request.Name)
	if err != nil {
		respondError(c, err, "create shopping list")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"shoppingList": list})
}

// GetShoppingList returns one list.
func (h *ShoppingListHandler) GetShoppingList(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	list, err := h.Service.GetShoppingList(c.Request.Context(), userID, c.Param("list_id"))
	if err != nil {
		respondError(c, err, "get shopping list")
		return
	}

	c.JSON(http.StatusOK, gin.H{"shoppingList": list})
}

// DeleteShoppingList deletes a list and its items.
func (h *ShoppingListHandler) DeleteShoppingList(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.Service.DeleteShoppingList(c.Request.Context(), userID, c.Param("list_id")); err != nil {
		respondError(c, err, "delete shopping list")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Shopping list deleted"})
}

// AddItem appends an ingredient to a list.
func (h *ShoppingListHandler) AddItem(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var request struct {
		Ingredient string `json:"ingredient" binding:"required"`
		Quantity   string `json:"quantity"`
		RecipeID   string `json:"recipeId"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ingredient is required"})
		return
	}

	item, err := h.Service.AddToShoppingList(c.Request.Context(), userID, c.Param("list_id"), service.AddItemInput{
		Ingredient: request.Ingredient,
		Quantity:   request.Quantity,
		RecipeID:   request.RecipeID,
	})
	if err != nil {
		respondError(c, err, "add shopping list item")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"item": item})
}

// RemoveItem deletes one item from a list.
func (h *ShoppingListHandler) RemoveItem(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	err := h.Service.RemoveFromShoppingList(c.Request.Context(), userID, c.Param("list_id"), c.Param("item_id"))
	if err != nil {
		respondError(c, err, "remove shopping list item")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item removed"})
}

// ToggleItem flips an item's completion.
func (h *ShoppingListHandler) ToggleItem(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	item, err := h.Service.ToggleShoppingListItem(c.Request.Context(), userID, c.Param("list_id"), c.Param("item_id"))
	if err != nil {
		respondError(c, err, "toggle shopping list item")
		return
	}

	c.JSON(http.StatusOK, gin.H{"item": item})
}

// ClearCompleted drops every completed item from a list.
func (h *ShoppingListHandler) ClearCompleted(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	removed, err := h.Service.ClearCompletedShoppingListItems(c.Request.Context(), userID, c.Param("list_id"))
	if err != nil {
		respondError(c, err, "clear completed items")
		return
	}

	c.JSON(http.StatusOK, gin.H{"removed": removed})
}
