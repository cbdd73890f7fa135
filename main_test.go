package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"weather-lookup/datasource"
	"weather-lookup/geolocation"
	"weather-lookup/models"
	"weather-lookup/navigator"
)

var london = models.Coordinates{Latitude: 51.5, Longitude: -0.12}

type stubWeather struct{}

func (stubWeather) Name() string { return "stub" }

func (stubWeather) FetchCurrent(ctx context.Context, coords models.Coordinates) (models.CurrentWeather, error) {
	return models.CurrentWeather{
		LocationName: "London",
		CountryCode:  "GB",
		Coordinates:  coords,
		Main:         models.Reading{Temperature: 280.32, TempMin: 279.15, TempMax: 281.48, Humidity: 81},
		Timestamp:    1705348800,
		Conditions:   []models.Condition{{Description: "clear sky"}},
	}, nil
}

func (stubWeather) FetchForecast(ctx context.Context, coords models.Coordinates) (models.Forecast, error) {
	return models.Forecast{
		CityName:    "London",
		Coordinates: coords,
		Entries:     []models.ForecastEntry{{Main: models.Reading{Temperature: 280.32}, Timestamp: 1705348800}},
	}, nil
}

type stubGeocoder struct{}

func (stubGeocoder) Name() string { return "stub" }

func (stubGeocoder) Resolve(ctx context.Context, query string) (models.Coordinates, error) {
	return models.Coordinates{}, datasource.ErrGeocode
}

func TestRunTab(t *testing.T) {
	tests := []struct {
		name     string
		prompter geolocation.Prompter
		tab      navigator.Tab
		city     string
		wantErr  error
		want     []string
	}{
		{
			name:     "home",
			prompter: geolocation.Allow,
			tab:      navigator.TabHome,
			want:     []string{"[home] [search-outline] [cloudy-outline]", "London, GB", "sunny  28", "Humidity: 81%"},
		},
		{
			name:     "details",
			prompter: geolocation.Allow,
			tab:      navigator.TabDetails,
			want:     []string{"[cloudy]", "London  28", "Mon 20:00  28"},
		},
		{
			name:     "denied",
			prompter: geolocation.Deny,
			tab:      navigator.TabHome,
			wantErr:  geolocation.ErrPermissionDenied,
			want:     []string{"Permission to access location was denied"},
		},
		{
			name:     "unknown city",
			prompter: geolocation.Allow,
			tab:      navigator.TabSearch,
			city:     "Nowhereville",
			wantErr:  datasource.ErrGeocode,
			want:     []string{"Search: Nowhereville"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			locator := geolocation.NewLocator(tt.prompter, geolocation.Fixed(london), nil)
			nav := newNavigator(locator, stubWeather{}, stubGeocoder{}, nil)

			var out bytes.Buffer
			err := runTab(context.Background(), &out, nav, tt.tab, tt.city)
			if tt.wantErr == nil && err != nil {
				t.Fatalf("runTab() error = %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("runTab() error = %v, want %v", err, tt.wantErr)
			}
			for _, w := range tt.want {
				if !strings.Contains(out.String(), w) {
					t.Errorf("output missing %q:\n%s", w, out.String())
				}
			}
		})
	}
}

func TestLocationPermission(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		allow      bool
		serve      bool
		want       string
		wantErr    bool
	}{
		{name: "terminal prompt", configured: datasource.PermissionPrompt, want: datasource.PermissionPrompt},
		{name: "flag grants", configured: datasource.PermissionDenied, allow: true, want: datasource.PermissionGranted},
		{name: "server with prompt", configured: datasource.PermissionPrompt, serve: true, wantErr: true},
		{name: "server with flag", configured: datasource.PermissionPrompt, allow: true, serve: true, want: datasource.PermissionGranted},
		{name: "server denied", configured: datasource.PermissionDenied, serve: true, want: datasource.PermissionDenied},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := locationPermission(tt.configured, tt.allow, tt.serve)
			if (err != nil) != tt.wantErr {
				t.Fatalf("locationPermission() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("locationPermission() = %q, want %q", got, tt.want)
			}
		})
	}
}
