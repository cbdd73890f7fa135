package models

import "slices"

// ForecastEntry is a single forecast point
type ForecastEntry struct {
	Main       Reading     `json:"main"`
	Conditions []Condition `json:"conditions"`
	Timestamp  int64       `json:"timestamp"` // epoch seconds
}

// Forecast is the ordered list of forecast points for a city, ascending by timestamp
type Forecast struct {
	CityName    string          `json:"cityName"`
	CountryCode string          `json:"countryCode"`
	Coordinates Coordinates     `json:"coordinates"`
	Entries     []ForecastEntry `json:"entries"`
}

// Clone returns a deep copy of f
func (f Forecast) Clone() Forecast {
	if f.Entries == nil {
		return f
	}
	entries := make([]ForecastEntry, len(f.Entries))
	for i, e := range f.Entries {
		e.Conditions = slices.Clone(e.Conditions)
		entries[i] = e
	}
	f.Entries = entries
	return f
}
