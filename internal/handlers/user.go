package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/windoze95/vanadisheart-api/internal/logger"
	"github.com/windoze95/vanadisheart-api/internal/service"
	"go.uber.org/zap"
)

const accessTokenTTL = 24 * time.Hour

// UserHandler is the handler for user-related requests.
type UserHandler struct {
	Service *service.UserService
}

// NewUserHandler is the constructor function for initializing a new UserHandler.
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{Service: userService}
}

// LoginUser logs a user in by username, creating the profile on first login.
func (h *UserHandler) LoginUser(c *gin.Context) {
	var request struct {
		Username string `json:"username" binding:"required"`
		Email    string `json:"email"`
	}

	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username is required"})
		return
	}

	profile, created, err := h.Service.Login(c.Request.Context(), request.Username, request.Email)
	if err != nil {
		respondError(c, err, "log in")
		return
	}

	accessToken, err := generateAccessToken(profile.ID, h.Service.Cfg.EnvVars.JwtSecretKey)
	if err != nil {
		logger.Get().Error("failed to generate access token on login", zap.String("user_id", profile.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate access token"})
		return
	}

	status := http.StatusOK
	message := "User logged in successfully"
	if created {
		status = http.StatusCreated
		message = "User profile created"
	}
	c.JSON(status, gin.H{"access_token": accessToken, "message": message, "profile": profile})
}

// generateAccessToken generates a JWT access token for a profile.
func generateAccessToken(userID, secretKey string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  userID,
		"exp":  now.Add(accessTokenTTL).Unix(),
		"iat":  now.Unix(),
		"type": "access",
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(secretKey))
	if err != nil {
		return "", fmt.Errorf("generateAccessToken: %v", err)
	}
	return tokenString, nil
}
