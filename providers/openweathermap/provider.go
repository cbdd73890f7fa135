package openweathermap

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"weather-lookup/datasource"
	"weather-lookup/models"
)

// Client implements both datasource.CurrentSource and datasource.ForecastSource.
// Requests carry no client-side timeout; cancellation comes from the caller's context.
type Client struct {
	apiKey     string
	baseURL    string
	units      string
	httpClient *http.Client
}

// Ensure Client implements datasource.Provider
var _ datasource.Provider = (*Client)(nil)

// Option configures a Client
type Option func(*Client)

// WithBaseURL points the client at another host, e.g. a test server
func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = baseURL }
}

// WithUnits sets the units query parameter ("metric", "imperial"); empty keeps Kelvin
func WithUnits(units string) Option {
	return func(c *Client) { c.units = units }
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.httpClient = httpClient }
}

// NewClient creates a new OpenWeatherMap client
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:     apiKey,
		baseURL:    datasource.DefaultOpenWeatherMapURL,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewFromConfig builds a client from the application configuration
func NewFromConfig(config *datasource.Config) *Client {
	return NewClient(config.OpenWeatherMap.APIKey,
		WithBaseURL(config.OpenWeatherMap.BaseURL),
		WithUnits(config.OpenWeatherMap.Units),
	)
}

// Name returns the provider name
func (c *Client) Name() string {
	return "OpenWeatherMap"
}

type conditionJSON struct {
	ID          int    `json:"id"`
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type mainJSON struct {
	Temp      *float64 `json:"temp"`
	FeelsLike float64  `json:"feels_like"`
	TempMin   float64  `json:"temp_min"`
	TempMax   float64  `json:"temp_max"`
	Pressure  int      `json:"pressure"`
	Humidity  int      `json:"humidity"`
}

type coordJSON struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func (m *mainJSON) reading() models.Reading {
	return models.Reading{
		Temperature: *m.Temp,
		FeelsLike:   m.FeelsLike,
		TempMin:     m.TempMin,
		TempMax:     m.TempMax,
		Pressure:    m.Pressure,
		Humidity:    m.Humidity,
	}
}

func conditions(in []conditionJSON) []models.Condition {
	out := make([]models.Condition, 0, len(in))
	for _, w := range in {
		out = append(out, models.Condition{
			ID:          w.ID,
			Main:        w.Main,
			Description: w.Description,
			Icon:        w.Icon,
		})
	}
	return out
}

// get issues a GET to endpoint with the coordinate query and returns the raw body
func (c *Client) get(ctx context.Context, endpoint string, coords models.Coordinates) ([]byte, error) {
	params := url.Values{}
	params.Add("lat", strconv.FormatFloat(coords.Latitude, 'f', -1, 64))
	params.Add("lon", strconv.FormatFloat(coords.Longitude, 'f', -1, 64))
	params.Add("appid", c.apiKey)
	if c.units != "" {
		params.Add("units", c.units)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("request canceled: %w", ctx.Err())
		}
		return nil, fmt.Errorf("failed to execute request: %w: %w", datasource.ErrNetwork, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w: %w", datasource.ErrNetwork, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, datasource.NewAPIError(c.Name(), resp.StatusCode, body)
	}
	return body, nil
}
