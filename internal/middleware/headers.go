package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// IDHeaderName is the header a deployment can require on every API request.
const IDHeaderName = "X-VanadisHeart-Identifier"

// CheckIDHeader checks the X-VanadisHeart-Identifier header for a specific value.
func CheckIDHeader(id string) gin.HandlerFunc {
	return func(c *gin.Context) {
		idHeaderValue := c.GetHeader(IDHeaderName)
		if idHeaderValue != id {
			// If the header is absent or the value is incorrect, reject the request
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}
		c.Next()
	}
}
