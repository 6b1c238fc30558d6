package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/tidwall/gjson"
	"github.com/windoze95/vanadisheart-api/internal/metrics"
)

// UnsplashProviderName labels Unsplash calls in logs and metrics.
const UnsplashProviderName = "unsplash"

// defaultImageQuery is searched when no keyword is given.
const defaultImageQuery = "food"

// UnsplashImageProvider implements ImageSearchProvider using Unsplash's
// random photo endpoint.
type UnsplashImageProvider struct {
	accessKey  string
	endpoint   string
	httpClient *http.Client
}

// NewUnsplashImageProvider creates an image search provider.
func NewUnsplashImageProvider(accessKey, endpoint string, timeout time.Duration) *UnsplashImageProvider {
	return &UnsplashImageProvider{
		accessKey: accessKey,
		endpoint:  endpoint,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// FindImage returns the small rendition of a random landscape photo for keyword.
func (p *UnsplashImageProvider) FindImage(ctx context.Context, keyword string) (imageURL string, err error) {
	start := time.Now()
	defer func() { metrics.ObserveUpstream(UnsplashProviderName, start, err) }()

	if keyword == "" {
		keyword = defaultImageQuery
	}

	params := url.Values{}
	params.Set("query", keyword)
	params.Set("client_id", p.accessKey)
	params.Set("orientation", "landscape")

	reqURL := fmt.Sprintf("%s?%s", p.endpoint, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create image request: %w", err)
	}
	req.Header.Set("Accept-Version", "v1")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("image search request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := readBody(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read image response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("image API returned status %d: %s", resp.StatusCode, truncate(body, 200))
	}

	if !gjson.ValidBytes(body) {
		return "", errors.New("image API returned invalid JSON")
	}

	urls := gjson.GetManyBytes(body, "urls.small", "urls.regular")
	for _, u := range urls {
		if u.String() != "" {
			return u.String(), nil
		}
	}
	return "", fmt.Errorf("image API returned no URL for %q", keyword)
}
