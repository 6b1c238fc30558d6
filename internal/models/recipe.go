package models

import (
	"strings"
	"time"
)

// Difficulty is the three-valued effort classification derived from a
// recipe's total time.
type Difficulty string

// Difficulty enum values.
const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// IsValid checks if the Difficulty is one of the known values.
func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	default:
		return false
	}
}

// ParseDifficulty converts a case-insensitive string into a Difficulty.
func ParseDifficulty(s string) (Difficulty, bool) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	return d, d.IsValid()
}

// Recipe is the application's canonical recipe, built from an upstream
// record and enriched with derived metadata.
type Recipe struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	Ingredients  []string   `json:"ingredients"`
	Instructions []string   `json:"instructions"`
	PrepTime     int        `json:"prepTime"`
	CookTime     int        `json:"cookTime"`
	Servings     int        `json:"servings"`
	Difficulty   Difficulty `json:"difficulty"`
	Tags         []string   `json:"tags"`
	Rating       float64    `json:"rating"`
	Image        string     `json:"image"`
	Variants     []Variant  `json:"variants,omitempty"`
	Notes        []string   `json:"notes,omitempty"`
	Author       string     `json:"author,omitempty"`
	Source       string     `json:"source,omitempty"`
	CreatedAt    *time.Time `json:"createdAt,omitempty"`
}

// TotalTime returns prep plus cook time in minutes.
func (r *Recipe) TotalTime() int {
	return r.PrepTime + r.CookTime
}

// Variant is an alternative take on a recipe.
type Variant struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Description   string        `json:"description"`
	Modifications Modifications `json:"modifications"`
}

// Modifications lists the ingredient and instruction changes of a Variant.
type Modifications struct {
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
}
