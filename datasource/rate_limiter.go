package datasource

import (
	"context"
	"fmt"

	"weather-lookup/models"

	"golang.org/x/time/rate"
)

// Provider is a source of both current weather and forecasts
type Provider interface {
	CurrentSource
	ForecastSource
}

// RateLimitedProvider wraps a Provider with one limiter per endpoint
type RateLimitedProvider struct {
	provider        Provider
	currentLimiter  *rate.Limiter
	forecastLimiter *rate.Limiter
	name            string
}

// NewRateLimitedProvider creates a provider that waits for its limiter before each call.
// rps is the maximum requests per second for each endpoint; it can be fractional.
func NewRateLimitedProvider(provider Provider, rps float64, burst int) *RateLimitedProvider {
	return &RateLimitedProvider{
		provider:        provider,
		currentLimiter:  rate.NewLimiter(rate.Limit(rps), burst),
		forecastLimiter: rate.NewLimiter(rate.Limit(rps), burst),
		name:            fmt.Sprintf("%s [Rate Limited]", provider.Name()),
	}
}

// FetchCurrent waits for the current-weather limiter or context cancellation
func (r *RateLimitedProvider) FetchCurrent(ctx context.Context, coords models.Coordinates) (models.CurrentWeather, error) {
	if err := r.currentLimiter.Wait(ctx); err != nil {
		return models.CurrentWeather{}, fmt.Errorf("rate limit wait canceled: %w", err)
	}
	return r.provider.FetchCurrent(ctx, coords)
}

// FetchForecast waits for the forecast limiter or context cancellation
func (r *RateLimitedProvider) FetchForecast(ctx context.Context, coords models.Coordinates) (models.Forecast, error) {
	if err := r.forecastLimiter.Wait(ctx); err != nil {
		return models.Forecast{}, fmt.Errorf("rate limit wait canceled: %w", err)
	}
	return r.provider.FetchForecast(ctx, coords)
}

// Name returns the provider name
func (r *RateLimitedProvider) Name() string {
	return r.name
}

// RateLimitedGeocoder wraps a Geocoder with rate limiting
type RateLimitedGeocoder struct {
	geocoder Geocoder
	limiter  *rate.Limiter
	name     string
}

// NewRateLimitedGeocoder creates a new rate limited geocoder
func NewRateLimitedGeocoder(geocoder Geocoder, rps float64, burst int) *RateLimitedGeocoder {
	return &RateLimitedGeocoder{
		geocoder: geocoder,
		limiter:  rate.NewLimiter(rate.Limit(rps), burst),
		name:     fmt.Sprintf("%s [Rate Limited]", geocoder.Name()),
	}
}

// Resolve resolves a query, respecting rate limits
func (r *RateLimitedGeocoder) Resolve(ctx context.Context, query string) (models.Coordinates, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return models.Coordinates{}, fmt.Errorf("rate limit wait canceled: %w", err)
	}
	return r.geocoder.Resolve(ctx, query)
}

// Name returns the geocoder name
func (r *RateLimitedGeocoder) Name() string {
	return r.name
}

// Verify that our rate limited types implement the required interfaces
var (
	_ Provider = (*RateLimitedProvider)(nil)
	_ Geocoder = (*RateLimitedGeocoder)(nil)
)
