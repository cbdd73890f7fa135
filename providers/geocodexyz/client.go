package geocodexyz

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
	"resty.dev/v3"

	"weather-lookup/datasource"
	"weather-lookup/models"
)

// Client resolves free-text place names through geocode.xyz
type Client struct {
	client *resty.Client
}

// Ensure Client implements datasource.Geocoder
var _ datasource.Geocoder = (*Client)(nil)

// NewClient creates a geocoder against baseURL. A nil httpClient uses resty's default transport.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	var rc *resty.Client
	if httpClient != nil {
		rc = resty.NewWithClient(httpClient)
	} else {
		rc = resty.New()
	}
	rc.SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetHeader("Accept", "application/json").
		SetRetryCount(0)

	return &Client{client: rc}
}

// Name returns the provider name
func (c *Client) Name() string {
	return "geocode.xyz"
}

// Close releases the underlying resty client
func (c *Client) Close() error {
	return c.client.Close()
}

// payload is the part of the geocode.xyz answer we care about.
// The service returns coordinates as strings and reports failures inline.
type payload struct {
	Latt  string `mapstructure:"latt"`
	Longt string `mapstructure:"longt"`
	Error any    `mapstructure:"error"`
}

type providerError struct {
	Code        string `mapstructure:"code"`
	Description string `mapstructure:"description"`
}

// Resolve looks up query and returns its coordinates
func (c *Client) Resolve(ctx context.Context, query string) (models.Coordinates, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return models.Coordinates{}, fmt.Errorf("%w: empty query", datasource.ErrGeocode)
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetPathParam("query", query).
		SetQueryParam("json", "1").
		Get("/{query}")
	if err != nil {
		if ctx.Err() != nil {
			return models.Coordinates{}, fmt.Errorf("geocode canceled: %w", ctx.Err())
		}
		return models.Coordinates{}, fmt.Errorf("failed to execute request: %w: %w", datasource.ErrNetwork, err)
	}
	if !resp.IsSuccess() {
		return models.Coordinates{}, datasource.NewAPIError(c.Name(), resp.StatusCode(), resp.Bytes())
	}

	return parse(query, resp.Bytes())
}

func parse(query string, body []byte) (models.Coordinates, error) {
	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return models.Coordinates{}, datasource.Malformed("failed to parse geocode response: %v", err)
	}

	var p payload
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &p,
	})
	if err != nil {
		return models.Coordinates{}, err
	}
	if err := decoder.Decode(raw); err != nil {
		return models.Coordinates{}, fmt.Errorf("%w: %q: unexpected coordinate fields: %v", datasource.ErrGeocode, query, err)
	}

	if p.Error != nil {
		return models.Coordinates{}, fmt.Errorf("%w: %q: %s", datasource.ErrGeocode, query, describe(p.Error))
	}
	if p.Latt == "" || p.Longt == "" {
		return models.Coordinates{}, fmt.Errorf("%w: %q: no latt/longt in response", datasource.ErrGeocode, query)
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(p.Latt), 64)
	if err != nil {
		return models.Coordinates{}, fmt.Errorf("%w: %q: latt %q", datasource.ErrGeocode, query, p.Latt)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(p.Longt), 64)
	if err != nil {
		return models.Coordinates{}, fmt.Errorf("%w: %q: longt %q", datasource.ErrGeocode, query, p.Longt)
	}

	coords := models.Coordinates{Latitude: lat, Longitude: lon}
	// 0,0 is what the service answers for places it cannot match
	if !coords.Valid() || (lat == 0 && lon == 0) {
		return models.Coordinates{}, fmt.Errorf("%w: %q: unusable coordinates %s", datasource.ErrGeocode, query, coords)
	}
	return coords, nil
}

func describe(v any) string {
	var pe providerError
	if err := mapstructure.WeakDecode(v, &pe); err == nil && pe.Description != "" {
		if pe.Code != "" {
			return fmt.Sprintf("%s (code %s)", pe.Description, pe.Code)
		}
		return pe.Description
	}
	return fmt.Sprint(v)
}
