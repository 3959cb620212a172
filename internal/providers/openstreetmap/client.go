package openstreetmap

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// API Docs: https://nominatim.org/release-docs/develop/api/Overview/
// Sample requests:
// - https://nominatim.openstreetmap.org/reverse?lat=39.11&lon=-107.65&format=json
// - https://nominatim.openstreetmap.org/search?q=New+Delhi,+Delhi,+India&format=jsonv2&limit=1&countrycodes=in
const (
	DefaultBaseURL   = "https://nominatim.openstreetmap.org"
	DefaultUserAgent = "storefront-location/1.0"
)

// APIError is returned when the API answers with a non-200 status
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("fetch returned status %d: %s", e.StatusCode, e.Body)
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	logger     *slog.Logger
}

func NewClient(baseURL, userAgent string, timeout time.Duration, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  userAgent,
		logger:     logger.With("component", "openstreetmap-client"),
	}
}

// Lookup reverse geocodes a coordinate
func (c *Client) Lookup(ctx context.Context, latitude, longitude float64) (*LookupAPIResponse, error) {
	q := url.Values{}
	q.Set("lat", fmt.Sprintf("%f", latitude))
	q.Set("lon", fmt.Sprintf("%f", longitude))
	q.Set("format", "json")

	c.logger.Debug("fetching OpenStreetMap location data",
		"latitude", latitude,
		"longitude", longitude,
	)

	var apiResp LookupAPIResponse
	if err := c.get(ctx, "/reverse", q, &apiResp); err != nil {
		return nil, err
	}

	c.logger.Debug("successfully fetched OpenStreetMap location data",
		"latitude", latitude,
		"longitude", longitude,
		"display_name", apiResp.DisplayName,
	)

	return &apiResp, nil
}

// Search geocodes free text, optionally restricted to one country
func (c *Client) Search(ctx context.Context, query, countryCode string) ([]SearchAPIResult, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("format", "jsonv2")
	q.Set("limit", "1")
	if countryCode != "" {
		q.Set("countrycodes", strings.ToLower(countryCode))
	}

	c.logger.Debug("searching OpenStreetMap",
		"query", query,
		"country_code", countryCode,
	)

	var apiResp []SearchAPIResult
	if err := c.get(ctx, "/search", q, &apiResp); err != nil {
		return nil, err
	}

	c.logger.Debug("successfully searched OpenStreetMap",
		"query", query,
		"results", len(apiResp),
	)

	return apiResp, nil
}

func (c *Client) get(ctx context.Context, path string, q url.Values, out any) error {
	// Build URL with query parameters
	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("failed to parse base URL: %w", err)
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	// Nominatim rejects requests without an identifying user agent
	req.Header.Set("User-Agent", c.userAgent)

	// Make the HTTP request
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("failed to fetch OpenStreetMap data",
			"path", path,
			"error", err,
		)
		return fmt.Errorf("failed to fetch: %w", err)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("OpenStreetMap API returned error",
			"status_code", resp.StatusCode,
			"path", path,
			"response_body", string(body),
		)
		return &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	// Parse the JSON response
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.logger.Error("failed to decode OpenStreetMap response",
			"path", path,
			"error", err,
		)
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
