package models

import (
	"slices"
	"strings"
	"time"
)

// Condition is one entry of the provider's weather array
type Condition struct {
	ID          int    `json:"id"`
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// Reading holds the numeric block shared by current weather and forecast entries
type Reading struct {
	Temperature float64 `json:"temperature"` // Kelvin unless units were configured
	FeelsLike   float64 `json:"feelsLike"`
	TempMin     float64 `json:"tempMin"`
	TempMax     float64 `json:"tempMax"`
	Pressure    int     `json:"pressure"` // hPa
	Humidity    int     `json:"humidity"` // percentage
}

// CurrentWeather is one observation returned by the weather-by-coordinates endpoint
type CurrentWeather struct {
	LocationName string      `json:"locationName"`
	CountryCode  string      `json:"countryCode"`
	Coordinates  Coordinates `json:"coordinates"`
	Main         Reading     `json:"main"`
	Timestamp    int64       `json:"timestamp"` // epoch seconds
	Conditions   []Condition `json:"conditions"`
}

// Description joins all condition descriptions with commas
func (w CurrentWeather) Description() string {
	parts := make([]string, 0, len(w.Conditions))
	for _, c := range w.Conditions {
		parts = append(parts, c.Description)
	}
	return strings.Join(parts, ",")
}

// ObservedAt returns the observation time
func (w CurrentWeather) ObservedAt() time.Time {
	return time.Unix(w.Timestamp, 0)
}

// Clone returns a copy that shares no memory with w
func (w CurrentWeather) Clone() CurrentWeather {
	w.Conditions = slices.Clone(w.Conditions)
	return w
}
