package service

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/windoze95/vanadisheart-api/internal/config"
	"github.com/windoze95/vanadisheart-api/internal/models"
	"github.com/windoze95/vanadisheart-api/internal/providers"
)

// Defaults applied to every enriched recipe.
const (
	DefaultRating   = 5
	DefaultAuthor   = "API Recipe"
	DefaultServings = 4

	defaultPrepTime = 20
	defaultCookTime = 25
)

// recipeNamespace scopes the name-based recipe IDs.
var recipeNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://vanadisheart.app/recipes"))

// RecipeID returns a stable ID for an upstream record. The same record from
// the same source always gets the same ID.
func RecipeID(source string, raw providers.RawRecipe) string {
	name := source + "\x00" + raw.Title + "\x00" + raw.Ingredients
	return uuid.NewSHA1(recipeNamespace, []byte(name)).String()
}

// DeriveTags returns the tags of every rule matching the ingredient string.
// Counts use the raw pipe-split length, empty segments included.
func DeriveTags(rules []config.TagRule, ingredients string) []string {
	lower := strings.ToLower(ingredients)
	count := len(strings.Split(ingredients, "|"))

	tags := []string{}
	for _, rule := range rules {
		if rule.Matches(lower, count) {
			tags = append(tags, rule.Tag)
		}
	}
	return tags
}

// EstimateTimes guesses prep and cook minutes from the instruction length.
func EstimateTimes(instructions string) (prep, cook int) {
	n := utf8.RuneCountInString(instructions)
	switch {
	case n > 500:
		return 40, 50
	case n > 300:
		return 30, 35
	default:
		return defaultPrepTime, defaultCookTime
	}
}

// ClassifyDifficulty maps total minutes to a difficulty.
func ClassifyDifficulty(totalMinutes int) models.Difficulty {
	switch {
	case totalMinutes < 30:
		return models.DifficultyEasy
	case totalMinutes <= 60:
		return models.DifficultyMedium
	default:
		return models.DifficultyHard
	}
}

// ParseServings reads the leading integer of s, allowing a "+" sign.
// Strings without one, with a zero count, or with a negative count yield
// DefaultServings.
func ParseServings(s string) int {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	s = strings.TrimPrefix(s, "+")
	end := strings.IndexFunc(s, func(r rune) bool { return r < '0' || r > '9' })
	if end == -1 {
		end = len(s)
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil || n == 0 {
		return DefaultServings
	}
	return n
}

// SplitIngredients splits a pipe-delimited ingredient string.
func SplitIngredients(s string) []string {
	return splitNonEmpty(s, "|")
}

// SplitInstructions splits instructions into sentences on ". ".
func SplitInstructions(s string) []string {
	return splitNonEmpty(s, ". ")
}

func splitNonEmpty(s, sep string) []string {
	parts := strings.Split(s, sep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// MatchImageKeyword returns the first title word, then first-ingredient word,
// that overlaps a vocabulary term in either direction. It returns "" when
// nothing matches.
func MatchImageKeyword(raw providers.RawRecipe, vocabulary []string) string {
	words := strings.Split(strings.ToLower(raw.Title), " ")
	firstIngredient, _, _ := strings.Cut(strings.ToLower(raw.Ingredients), "|")
	words = append(words, strings.Split(firstIngredient, " ")...)

	for _, word := range words {
		if word == "" {
			continue
		}
		for _, term := range vocabulary {
			if strings.Contains(word, term) || strings.Contains(term, word) {
				return word
			}
		}
	}
	return ""
}
