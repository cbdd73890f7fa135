package ipapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"weather-lookup/datasource"
	"weather-lookup/geolocation"
	"weather-lookup/models"
)

// Client approximates the device position from its public IP address using ip-api.com
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Ensure Client implements geolocation.PositionSource
var _ geolocation.PositionSource = (*Client)(nil)

// NewClient creates a new ip-api client
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// response represents the /json response structure
type response struct {
	Status  string   `json:"status"`
	Message string   `json:"message"`
	Lat     *float64 `json:"lat"`
	Lon     *float64 `json:"lon"`
}

// CurrentPosition returns the position ip-api.com associates with the caller's address
func (c *Client) CurrentPosition(ctx context.Context) (models.Coordinates, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/json/?fields=status,message,lat,lon", nil)
	if err != nil {
		return models.Coordinates{}, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return models.Coordinates{}, fmt.Errorf("failed to execute request: %w: %w", datasource.ErrNetwork, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.Coordinates{}, fmt.Errorf("failed to read response body: %w: %w", datasource.ErrNetwork, err)
	}
	if resp.StatusCode != http.StatusOK {
		return models.Coordinates{}, datasource.NewAPIError("ip-api", resp.StatusCode, body)
	}

	var r response
	if err := json.Unmarshal(body, &r); err != nil {
		return models.Coordinates{}, datasource.Malformed("failed to parse ip-api response: %v", err)
	}
	if r.Status != "success" {
		return models.Coordinates{}, fmt.Errorf("ip-api lookup failed: %s", r.Message)
	}
	if r.Lat == nil || r.Lon == nil {
		return models.Coordinates{}, datasource.Malformed("ip-api response has no lat/lon")
	}

	return models.Coordinates{Latitude: *r.Lat, Longitude: *r.Lon}, nil
}
