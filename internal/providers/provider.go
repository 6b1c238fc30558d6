package providers

import (
	"context"
	"fmt"
	"io"
)

// maxResponseBytes caps how much of an upstream response body is read.
const maxResponseBytes = 1 << 20

// RecipeSearchProvider runs a free-text recipe search against an upstream API.
type RecipeSearchProvider interface {
	SearchRecipes(ctx context.Context, query string) ([]RawRecipe, error)
}

// ImageSearchProvider finds a representative image URL for a keyword.
type ImageSearchProvider interface {
	FindImage(ctx context.Context, keyword string) (string, error)
}

// RawRecipe is an unprocessed record as returned by the recipe API.
// Ingredients are pipe-delimited and instructions are sentence-delimited.
type RawRecipe struct {
	Title        string `json:"title"`
	Ingredients  string `json:"ingredients"`
	Servings     string `json:"servings"`
	Instructions string `json:"instructions"`
}

// readBody reads at most maxResponseBytes from r and fails when the body is
// larger.
func readBody(r io.Reader) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r, maxResponseBytes+1))
	if err != nil {
		return nil, err
	}
	if len(body) > maxResponseBytes {
		return nil, fmt.Errorf("response body exceeds %d bytes", maxResponseBytes)
	}
	return body, nil
}
