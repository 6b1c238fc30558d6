package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/windoze95/vanadisheart-api/internal/config"
)

// UserIDKey is the gin context key holding the authenticated profile ID.
const UserIDKey = "user_id"

// Errors returned by ParseAccessToken.
var (
	ErrInvalidToken     = errors.New("invalid or expired token")
	ErrInvalidTokenType = errors.New("invalid token type")
	ErrInvalidSubject   = errors.New("invalid subject in token")
)

// ParseAccessToken verifies an HS256 access token and returns its subject.
func ParseAccessToken(tokenString, secret string) (string, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	// Ensure this is an access token
	tokenType, ok := claims["type"].(string)
	if !ok || tokenType != "access" {
		return "", ErrInvalidTokenType
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", ErrInvalidSubject
	}
	return sub, nil
}

// VerifyTokenMiddleware verifies the JWT token provided in the Authorization header.
func VerifyTokenMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		tokenString = strings.TrimSpace(tokenString)

		userID, err := ParseAccessToken(tokenString, cfg.EnvVars.JwtSecretKey)
		if err != nil {
			status := http.StatusUnauthorized
			if errors.Is(err, ErrInvalidSubject) {
				status = http.StatusBadRequest
			}
			c.JSON(status, gin.H{"message": err.Error()})
			c.Abort()
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}
