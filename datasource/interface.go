package datasource

import (
	"context"

	"weather-lookup/models"
)

// CurrentSource fetches the current weather at a coordinate
type CurrentSource interface {
	Name() string
	FetchCurrent(ctx context.Context, coords models.Coordinates) (models.CurrentWeather, error)
}

// ForecastSource fetches the multi-point forecast at a coordinate
type ForecastSource interface {
	Name() string
	FetchForecast(ctx context.Context, coords models.Coordinates) (models.Forecast, error)
}

// Geocoder resolves a free-text place name to coordinates
type Geocoder interface {
	Name() string
	Resolve(ctx context.Context, query string) (models.Coordinates, error)
}
