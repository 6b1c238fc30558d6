package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/windoze95/vanadisheart-api/internal/logger"
	"github.com/windoze95/vanadisheart-api/internal/models"
	"github.com/windoze95/vanadisheart-api/internal/repository"
	"github.com/windoze95/vanadisheart-api/internal/service"
	"github.com/windoze95/vanadisheart-api/internal/util"
	"go.uber.org/zap"
)

// respondError writes the status matching err. Unexpected errors are logged
// and reported without detail.
func respondError(c *gin.Context, err error, action string) {
	switch {
	case repository.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case service.IsValidationError(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.FromGin(c).Error("failed to "+action, zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to " + action})
	}
}

// requireUserID returns the authenticated user ID, or writes 401.
func requireUserID(c *gin.Context) (string, bool) {
	userID, err := util.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return "", false
	}
	return userID, true
}

// parseFilter reads a Filter from the q, tags, difficulty, max_time and
// min_rating query parameters. List parameters are comma-separated.
func parseFilter(c *gin.Context) (service.Filter, error) {
	f := service.Filter{
		Query:        strings.TrimSpace(c.Query("q")),
		Tags:         splitList(c.Query("tags")),
		Difficulties: splitList(c.Query("difficulty")),
	}

	for _, d := range f.Difficulties {
		if _, ok := models.ParseDifficulty(d); !ok {
			return f, service.NewValidationError("difficulty", "unknown difficulty %q", d)
		}
	}

	if v := c.Query("max_time"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return f, service.NewValidationError("max_time", "max_time must be a non-negative integer")
		}
		f.MaxTotalTime = n
	}

	if v := c.Query("min_rating"); v != "" {
		r, err := strconv.ParseFloat(v, 64)
		if err != nil || r < 0 || r > 5 {
			return f, service.NewValidationError("min_rating", "min_rating must be a number between 0 and 5")
		}
		f.MinRating = r
	}

	return f, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
