package models

import "testing"

func TestCurrentWeatherDescription(t *testing.T) {
	tests := []struct {
		name       string
		conditions []Condition
		expected   string
	}{
		{name: "none", conditions: nil, expected: ""},
		{name: "single", conditions: []Condition{{Description: "clear sky"}}, expected: "clear sky"},
		{
			name:       "multiple",
			conditions: []Condition{{Description: "mist"}, {Description: "light rain"}},
			expected:   "mist,light rain",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := CurrentWeather{Conditions: tt.conditions}
			if got := w.Description(); got != tt.expected {
				t.Errorf("Description() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestCloneDoesNotShareConditions(t *testing.T) {
	w := CurrentWeather{Conditions: []Condition{{Description: "snow"}}}
	c := w.Clone()
	c.Conditions[0].Description = "rain"
	if w.Conditions[0].Description != "snow" {
		t.Errorf("original mutated through clone: %q", w.Conditions[0].Description)
	}

	f := Forecast{Entries: []ForecastEntry{{Conditions: []Condition{{Description: "snow"}}}}}
	fc := f.Clone()
	fc.Entries[0].Conditions[0].Description = "rain"
	fc.Entries[0].Timestamp = 42
	if f.Entries[0].Conditions[0].Description != "snow" || f.Entries[0].Timestamp != 0 {
		t.Errorf("original forecast mutated through clone: %+v", f.Entries[0])
	}
}

func TestCoordinatesValid(t *testing.T) {
	tests := []struct {
		coords Coordinates
		valid  bool
	}{
		{Coordinates{51.5, -0.12}, true},
		{Coordinates{-90, 180}, true},
		{Coordinates{90.1, 0}, false},
		{Coordinates{0, -180.5}, false},
	}
	for _, tt := range tests {
		if got := tt.coords.Valid(); got != tt.valid {
			t.Errorf("%v.Valid() = %v, want %v", tt.coords, got, tt.valid)
		}
	}
}
