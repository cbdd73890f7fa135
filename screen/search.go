package screen

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"weather-lookup/datasource"
	"weather-lookup/display"
	"weather-lookup/models"
)

// SearchView is what the city search screen renders
type SearchView struct {
	Status      Status                 `json:"status"`
	Query       string                 `json:"query,omitempty"`
	Weather     *models.CurrentWeather `json:"weather,omitempty"`
	City        string                 `json:"city,omitempty"`
	Temperature string                 `json:"temperature,omitempty"`
	Description string                 `json:"description,omitempty"`
}

func (v SearchView) clone() SearchView {
	if v.Weather != nil {
		w := v.Weather.Clone()
		v.Weather = &w
	}
	return v
}

// RenderSearch builds the ready view for a searched city
func RenderSearch(query string, w models.CurrentWeather) SearchView {
	w = w.Clone()
	view := SearchView{
		Status:      StatusReady,
		Query:       query,
		Weather:     &w,
		City:        w.LocationName,
		Temperature: display.TemperatureLabel(w.Main.Temperature) + "°C",
	}
	if len(w.Conditions) > 0 {
		view.Description = w.Conditions[0].Description
	}
	return view
}

// Search geocodes a city name and shows its current weather
type Search struct {
	geocoder datasource.Geocoder
	source   datasource.CurrentSource
	logger   *zap.Logger
	state    *cell[SearchView]
}

// NewSearch creates the search screen
func NewSearch(geocoder datasource.Geocoder, source datasource.CurrentSource, logger *zap.Logger) *Search {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Search{
		geocoder: geocoder,
		source:   source,
		logger:   logger.Named("search"),
		state:    newCell(SearchView{Status: StatusIdle}, SearchView.clone),
	}
}

// Mount has nothing to load; the screen waits for Submit
func (s *Search) Mount(ctx context.Context) *Task {
	return Completed(nil)
}

// Unmount cancels an in-flight submission
func (s *Search) Unmount() {
	s.state.end()
}

// View returns a snapshot of the screen state
func (s *Search) View() SearchView {
	return s.state.get()
}

// Current returns the most recent submission
func (s *Search) Current() *Task {
	return s.state.current()
}

// Submit looks up query. A newer submission supersedes this one.
// Failures leave the shown weather untouched; the task returns the error for the caller to surface.
func (s *Search) Submit(ctx context.Context, query string) *Task {
	start := func(v SearchView) SearchView {
		v.Status = StatusLoading
		v.Query = query
		return v
	}
	return s.state.begin(ctx, start, func(ctx context.Context, tok uint64) error {
		return s.search(ctx, tok, query)
	})
}

func (s *Search) search(ctx context.Context, tok uint64, query string) error {
	coords, err := s.geocoder.Resolve(ctx, query)
	if err != nil {
		logFailure(ctx, s.logger, "geocode failed", err)
		s.settle(ctx, tok)
		return fmt.Errorf("search %q: %w", query, err)
	}

	w, err := s.source.FetchCurrent(ctx, coords)
	if err != nil {
		logFailure(ctx, s.logger, "city weather fetch failed", err)
		s.settle(ctx, tok)
		return fmt.Errorf("search %q: %w", query, err)
	}

	if !s.state.apply(ctx, tok, replace(RenderSearch(query, w))) {
		logStale(s.logger, tok)
		return nil
	}
	s.logger.Info("city weather loaded", zap.String("query", query), zap.Stringer("coords", coords))
	return nil
}

// settle ends the loading state without touching the shown weather
func (s *Search) settle(ctx context.Context, tok uint64) {
	s.state.apply(ctx, tok, func(v SearchView) SearchView {
		if v.Weather != nil {
			v.Status = StatusReady
		} else {
			v.Status = StatusIdle
		}
		return v
	})
}
