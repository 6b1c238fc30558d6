package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/windoze95/vanadisheart-api/internal/metrics"
)

// NinjasProviderName labels API Ninjas calls in logs and metrics.
const NinjasProviderName = "api-ninjas"

// NinjasRecipeProvider implements RecipeSearchProvider using the API Ninjas
// recipe endpoint.
type NinjasRecipeProvider struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
}

// NewNinjasRecipeProvider creates a recipe search provider.
func NewNinjasRecipeProvider(apiKey, endpoint string, timeout time.Duration) *NinjasRecipeProvider {
	return &NinjasRecipeProvider{
		apiKey:   apiKey,
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// SearchRecipes returns the raw records matching query.
func (p *NinjasRecipeProvider) SearchRecipes(ctx context.Context, query string) (results []RawRecipe, err error) {
	start := time.Now()
	defer func() { metrics.ObserveUpstream(NinjasProviderName, start, err) }()

	params := url.Values{}
	params.Set("query", query)

	reqURL := fmt.Sprintf("%s?%s", p.endpoint, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create recipe request: %w", err)
	}
	req.Header.Set("X-Api-Key", p.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("recipe search request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := readBody(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read recipe response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("recipe API returned status %d: %s", resp.StatusCode, truncate(body, 200))
	}

	if err := json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("failed to parse recipe response: %w", err)
	}
	return results, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
