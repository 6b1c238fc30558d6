package service

import (
	"strings"

	"github.com/windoze95/vanadisheart-api/internal/models"
)

// Filter narrows an already fetched recipe collection. Zero-valued fields
// are inactive; active predicates must all hold.
type Filter struct {
	Query        string   `json:"query"`
	Tags         []string `json:"tags"`
	Difficulties []string `json:"difficulties"`
	MaxTotalTime int      `json:"maxTotalTime"`
	MinRating    float64  `json:"minRating"`
}

// IsEmpty reports whether no predicate is active.
func (f Filter) IsEmpty() bool {
	return strings.TrimSpace(f.Query) == "" && len(f.Tags) == 0 && len(f.Difficulties) == 0 &&
		f.MaxTotalTime <= 0 && f.MinRating <= 0
}

// Matches reports whether r satisfies every active predicate.
func (f Filter) Matches(r *models.Recipe) bool {
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" && !matchesQuery(r, q) {
		return false
	}
	if len(f.Tags) > 0 && !hasAnyTag(r.Tags, f.Tags) {
		return false
	}
	if len(f.Difficulties) > 0 && !hasDifficulty(r.Difficulty, f.Difficulties) {
		return false
	}
	if f.MaxTotalTime > 0 && r.TotalTime() > f.MaxTotalTime {
		return false
	}
	if f.MinRating > 0 && r.Rating < f.MinRating {
		return false
	}
	return true
}

// FilterRecipes returns the recipes matching f, in their original order.
func FilterRecipes(recipes []models.Recipe, f Filter) []models.Recipe {
	out := make([]models.Recipe, 0, len(recipes))
	for i := range recipes {
		if f.Matches(&recipes[i]) {
			out = append(out, recipes[i])
		}
	}
	return out
}

func matchesQuery(r *models.Recipe, q string) bool {
	if strings.Contains(strings.ToLower(r.Name), q) || strings.Contains(strings.ToLower(r.Description), q) {
		return true
	}
	for _, tag := range r.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

func hasAnyTag(tags, wanted []string) bool {
	for _, w := range wanted {
		for _, t := range tags {
			if strings.EqualFold(t, strings.TrimSpace(w)) {
				return true
			}
		}
	}
	return false
}

func hasDifficulty(d models.Difficulty, wanted []string) bool {
	for _, w := range wanted {
		if strings.EqualFold(string(d), strings.TrimSpace(w)) {
			return true
		}
	}
	return false
}
