package nutrition

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/poshanai/khana-ai-platform/pkg/logging"
)

const defaultLookupTimeout = 5 * time.Second

// Client queries an external nutrition database over HTTP.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *logging.Logger
}

// ClientConfig configures the nutrition database client.
type ClientConfig struct {
	// BaseURL is the nutrition database endpoint.
	BaseURL string
	// APIKey is sent as a Bearer token when non-empty.
	APIKey string
	// HTTPClient overrides the default HTTP client (for testing).
	HTTPClient *http.Client
	Logger     *logging.Logger
}

// NewClient creates a nutrition database client.
func NewClient(cfg ClientConfig) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, fmt.Errorf("nutrition: base URL required")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultLookupTimeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

type foodResponse struct {
	Name     string             `json:"name"`
	Calories float64            `json:"calories"`
	Protein  float64            `json:"protein"`
	Carbs    float64            `json:"carbs"`
	Fat      float64            `json:"fat"`
	Fiber    float64            `json:"fiber"`
	Vitamins map[string]float64 `json:"vitamins"`
	Minerals map[string]float64 `json:"minerals"`
}

// LookupFood fetches per-100g values for a canonical food name. A 404 maps
// to ErrFoodNotFound so callers can degrade a single item instead of
// failing the meal.
func (c *Client) LookupFood(ctx context.Context, name string) (NutritionalInfo, error) {
	endpoint := fmt.Sprintf("%s/v1/foods/%s", c.baseURL, url.PathEscape(name))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return NutritionalInfo{}, fmt.Errorf("nutrition: failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return NutritionalInfo{}, fmt.Errorf("nutrition: lookup failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return NutritionalInfo{}, ErrFoodNotFound
	case resp.StatusCode != http.StatusOK:
		c.logger.Warn("nutrition lookup returned unexpected status", "food", name, "status", resp.StatusCode)
		return NutritionalInfo{}, fmt.Errorf("nutrition: unexpected status %d", resp.StatusCode)
	}

	var payload foodResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return NutritionalInfo{}, fmt.Errorf("nutrition: failed to decode response: %w", err)
	}

	return NutritionalInfo{
		Calories: payload.Calories,
		Protein:  payload.Protein,
		Carbs:    payload.Carbs,
		Fat:      payload.Fat,
		Fiber:    payload.Fiber,
		Vitamins: payload.Vitamins,
		Minerals: payload.Minerals,
	}, nil
}
