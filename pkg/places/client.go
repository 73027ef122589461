package places

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Config holds the place details provider settings.
type Config struct {
	APIKey  string
	BaseURL string
}

func (c Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("API key is required")
	}
	if c.BaseURL == "" {
		return fmt.Errorf("base URL is required")
	}
	return nil
}

// Client looks up place details from the external places provider.
// Lookups go through the optional cache first; a cache failure never
// fails the lookup.
type Client struct {
	config     Config
	httpClient *http.Client
	cache      Cache
}

func NewClient(config Config, cache Cache) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		cache: cache,
	}, nil
}

// Details fetches a place by its external id. Returns (nil, nil) when the
// provider has no record for the id.
func (c *Client) Details(ctx context.Context, placeID string) (*Details, error) {
	if placeID == "" {
		return nil, fmt.Errorf("%w: place id is required", ErrInvalidRequest)
	}

	if c.cache != nil {
		if cached, err := c.cache.Get(ctx, placeID); err == nil && cached != nil {
			return cached, nil
		}
	}

	params := url.Values{}
	params.Set("place_id", placeID)
	params.Set("fields", "place_id,name,formatted_address,geometry")
	params.Set("key", c.config.APIKey)
	requestURL := fmt.Sprintf("%s/details/json?%s", c.config.BaseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetworkError, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d, body: %s", resp.StatusCode, string(body))
	}

	var parsed detailsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to unmarshal details response: %w", err)
	}

	switch parsed.Status {
	case "OK":
	case "ZERO_RESULTS", "NOT_FOUND", "INVALID_REQUEST":
		return nil, nil
	case "REQUEST_DENIED":
		return nil, fmt.Errorf("%w: %s", ErrUnauthorized, parsed.ErrorMessage)
	default:
		return nil, fmt.Errorf("places provider returned status %s: %s", parsed.Status, parsed.ErrorMessage)
	}

	lat := parsed.Result.Geometry.Location.Lat
	lng := parsed.Result.Geometry.Location.Lng
	details := &Details{
		PlaceID:          parsed.Result.PlaceID,
		Name:             parsed.Result.Name,
		FormattedAddress: parsed.Result.FormattedAddress,
		Latitude:         &lat,
		Longitude:        &lng,
	}

	if c.cache != nil {
		// Cache writes are best-effort.
		_ = c.cache.Set(ctx, placeID, details)
	}
	return details, nil
}
