package geoapify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// API Docs: https://apidocs.geoapify.com/docs/geocoding/
// Sample requests:
// - https://api.geoapify.com/v1/geocode/search?text=New%20Delhi,%20Delhi,%20India&limit=1&format=json&filter=countrycode:in&apiKey=KEY
// - https://api.geoapify.com/v1/geocode/reverse?lat=28.6139&lon=77.2090&format=json&apiKey=KEY
const (
	DefaultBaseURL = "https://api.geoapify.com/v1"
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
	apiKey     string
	logger     *slog.Logger
}

func NewClient(baseURL, apiKey string, timeout time.Duration, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		apiKey:     apiKey,
		logger:     logger.With("component", "geoapify-client"),
	}
}

// Search geocodes free text. countryCode, when set, restricts results to one
// ISO 3166-1 alpha-2 country.
func (c *Client) Search(ctx context.Context, text, countryCode string) (*GeocodeAPIResponse, error) {
	q := url.Values{}
	q.Set("text", text)
	q.Set("limit", "1")
	q.Set("format", "json")
	if countryCode != "" {
		q.Set("filter", "countrycode:"+strings.ToLower(countryCode))
	}
	return c.get(ctx, "/geocode/search", q)
}

// Reverse looks up the address closest to the given coordinates
func (c *Client) Reverse(ctx context.Context, latitude, longitude float64) (*GeocodeAPIResponse, error) {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(latitude, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(longitude, 'f', -1, 64))
	q.Set("format", "json")
	return c.get(ctx, "/geocode/reverse", q)
}

func (c *Client) get(ctx context.Context, path string, q url.Values) (*GeocodeAPIResponse, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("geoapify API key is not configured")
	}

	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	c.logger.Debug("fetching Geoapify data",
		"path", path,
		"query", q.Encode(),
	)

	q.Set("apiKey", c.apiKey)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// The request URL carries the API key; keep it out of logs and errors.
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		c.logger.Error("failed to fetch Geoapify data",
			"path", path,
			"error", err,
		)
		return nil, fmt.Errorf("failed to fetch %s: %w", path, err)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("Geoapify API returned error",
			"status_code", resp.StatusCode,
			"path", path,
			"response_body", string(body),
		)
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var apiResp GeocodeAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		c.logger.Error("failed to decode Geoapify response",
			"path", path,
			"error", err,
		)
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	c.logger.Debug("successfully fetched Geoapify data",
		"path", path,
		"results", len(apiResp.Results),
	)

	return &apiResp, nil
}
