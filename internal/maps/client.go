package maps

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"addressbridge_backend/platform/logger"
)

const (
	defaultAutocompleteURL = "https://maps.googleapis.com/maps/api/place/autocomplete/json"
	defaultGeocodeURL      = "https://maps.googleapis.com/maps/api/geocode/json"
	defaultHTTPTimeout     = 10 * time.Second
)

// Client handles Google Maps web API requests.
type Client struct {
	httpClient      *http.Client
	autocompleteURL string
	geocodeURL      string
	log             *logger.Logger
}

// NewClient creates a Google Maps client with the default endpoints.
func NewClient(log *logger.Logger) *Client {
	return &Client{
		httpClient:      &http.Client{Timeout: defaultHTTPTimeout},
		autocompleteURL: defaultAutocompleteURL,
		geocodeURL:      defaultGeocodeURL,
		log:             log,
	}
}

// Autocomplete runs a Places Autocomplete query. The session token, when
// present, is forwarded unchanged for provider-side request grouping.
func (c *Client) Autocomplete(ctx context.Context, apiKey, input, sessionToken string) (*googleAutocompleteResponse, error) {
	params := url.Values{}
	params.Set("input", input)
	params.Set("language", "en")
	params.Set("key", apiKey)
	if sessionToken != "" {
		params.Set("sessiontoken", sessionToken)
	}

	var payload googleAutocompleteResponse
	if err := c.getJSON(ctx, c.autocompleteURL, params, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// GeocodePlace looks up the full address and coordinates for a place id.
func (c *Client) GeocodePlace(ctx context.Context, apiKey, placeID string) (*googleGeocodeResponse, error) {
	params := url.Values{}
	params.Set("place_id", placeID)
	params.Set("language", "en")
	params.Set("key", apiKey)
	return c.geocode(ctx, params)
}

// GeocodeAddress forward-geocodes a free-text address.
func (c *Client) GeocodeAddress(ctx context.Context, apiKey, address string) (*googleGeocodeResponse, error) {
	params := url.Values{}
	params.Set("address", address)
	params.Set("language", "en")
	params.Set("key", apiKey)
	return c.geocode(ctx, params)
}

// ReverseGeocode looks up the address components for a coordinate pair.
func (c *Client) ReverseGeocode(ctx context.Context, apiKey string, lat, lng float64) (*googleGeocodeResponse, error) {
	params := url.Values{}
	params.Set("latlng", fmt.Sprintf("%f,%f", lat, lng))
	params.Set("language", "en")
	params.Set("key", apiKey)
	return c.geocode(ctx, params)
}

func (c *Client) geocode(ctx context.Context, params url.Values) (*googleGeocodeResponse, error) {
	var payload googleGeocodeResponse
	if err := c.getJSON(ctx, c.geocodeURL, params, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, params url.Values, out interface{}) error {
	reqURL := fmt.Sprintf("%s?%s", endpoint, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.ProviderError("google_maps", endpoint, err)
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		c.log.Error("google maps upstream error", "status", resp.StatusCode)
		return fmt.Errorf("upstream api error: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.log.Error("failed to decode google maps payload", "error", err)
		return err
	}
	return nil
}
