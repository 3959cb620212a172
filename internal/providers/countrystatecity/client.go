package countrystatecity

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// API Docs: https://countrystatecity.in/docs/
// Sample requests:
// - https://api.countrystatecity.in/v1/countries
// - https://api.countrystatecity.in/v1/countries/IN/states
// - https://api.countrystatecity.in/v1/countries/IN/states/DL/cities
const (
	DefaultBaseURL = "https://api.countrystatecity.in/v1"
	apiKeyHeader   = "X-CSCAPI-KEY"
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
		logger:     logger.With("component", "countrystatecity-client"),
	}
}

// GetCountries fetches every country
func (c *Client) GetCountries(ctx context.Context) ([]CountryAPIResponse, error) {
	var apiResp []CountryAPIResponse
	if err := c.get(ctx, "/countries", &apiResp); err != nil {
		return nil, err
	}
	return apiResp, nil
}

// GetStates fetches the states of the country identified by its ISO2 code
func (c *Client) GetStates(ctx context.Context, countryIso2 string) ([]StateAPIResponse, error) {
	var apiResp []StateAPIResponse
	path := fmt.Sprintf("/countries/%s/states", url.PathEscape(countryIso2))
	if err := c.get(ctx, path, &apiResp); err != nil {
		return nil, err
	}
	return apiResp, nil
}

// GetCities fetches the cities of a state within a country
func (c *Client) GetCities(ctx context.Context, countryIso2, stateIso2 string) ([]CityAPIResponse, error) {
	var apiResp []CityAPIResponse
	path := fmt.Sprintf("/countries/%s/states/%s/cities", url.PathEscape(countryIso2), url.PathEscape(stateIso2))
	if err := c.get(ctx, path, &apiResp); err != nil {
		return nil, err
	}
	return apiResp, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("failed to parse base URL: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set(apiKeyHeader, c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	c.logger.Debug("fetching countrystatecity data", "path", path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("failed to fetch countrystatecity data",
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
		c.logger.Error("countrystatecity API returned error",
			"status_code", resp.StatusCode,
			"path", path,
			"response_body", string(body),
		)
		return &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.logger.Error("failed to decode countrystatecity response",
			"path", path,
			"error", err,
		)
		return fmt.Errorf("failed to decode response: %w", err)
	}

	c.logger.Debug("successfully fetched countrystatecity data", "path", path)

	return nil
}
