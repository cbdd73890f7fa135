package screen

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"weather-lookup/datasource"
	"weather-lookup/display"
	"weather-lookup/geolocation"
	"weather-lookup/models"
)

// Tile is one forecast point in the horizontal strip
type Tile struct {
	Temperature string `json:"temperature"`
	Time        string `json:"time"`
	Timestamp   int64  `json:"timestamp"`
}

// DetailsView is what the forecast screen renders
type DetailsView struct {
	Status      Status           `json:"status"`
	Message     string           `json:"message,omitempty"`
	Forecast    *models.Forecast `json:"forecast,omitempty"`
	City        string           `json:"city,omitempty"`
	Temperature string           `json:"temperature,omitempty"`
	Tiles       []Tile           `json:"tiles,omitempty"`
}

func (v DetailsView) clone() DetailsView {
	if v.Forecast != nil {
		f := v.Forecast.Clone()
		v.Forecast = &f
	}
	if v.Tiles != nil {
		v.Tiles = append([]Tile(nil), v.Tiles...)
	}
	return v
}

// RenderDetails builds the ready view for a forecast; tiles keep the API order
func RenderDetails(f models.Forecast) DetailsView {
	f = f.Clone()
	loc := display.ZoneAt(f.Coordinates)

	view := DetailsView{
		Status:   StatusReady,
		Forecast: &f,
		City:     f.CityName,
		Tiles:    make([]Tile, 0, len(f.Entries)),
	}
	if len(f.Entries) > 0 {
		view.Temperature = display.TemperatureLabel(f.Entries[0].Main.Temperature)
	}
	for _, e := range f.Entries {
		view.Tiles = append(view.Tiles, Tile{
			Temperature: display.TemperatureLabel(e.Main.Temperature),
			Time:        display.FormatTimeLabel(e.Timestamp, loc),
			Timestamp:   e.Timestamp,
		})
	}
	return view
}

// Details shows the forecast at the device location
type Details struct {
	locator geolocation.Provider
	source  datasource.ForecastSource
	logger  *zap.Logger
	state   *cell[DetailsView]
}

// NewDetails creates the forecast screen
func NewDetails(locator geolocation.Provider, source datasource.ForecastSource, logger *zap.Logger) *Details {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Details{
		locator: locator,
		source:  source,
		logger:  logger.Named("details"),
		state:   newCell(DetailsView{Status: StatusLoading}, DetailsView.clone),
	}
}

// Mount starts loading: location, then forecast
func (d *Details) Mount(ctx context.Context) *Task {
	return d.state.begin(ctx, replace(DetailsView{Status: StatusLoading}), d.load)
}

// Unmount cancels the in-flight load
func (d *Details) Unmount() {
	d.state.end()
}

// View returns a snapshot of the screen state
func (d *Details) View() DetailsView {
	return d.state.get()
}

// Current returns the most recent load
func (d *Details) Current() *Task {
	return d.state.current()
}

func (d *Details) load(ctx context.Context, tok uint64) error {
	coords, err := d.locator.RequestLocation(ctx)
	if err != nil {
		if errors.Is(err, geolocation.ErrPermissionDenied) {
			d.state.apply(ctx, tok, replace(DetailsView{Status: StatusDenied, Message: DeniedMessage}))
			return err
		}
		logFailure(ctx, d.logger, "location request failed", err)
		return err
	}

	f, err := d.source.FetchForecast(ctx, coords)
	if err != nil {
		logFailure(ctx, d.logger, "forecast fetch failed", err)
		if errors.Is(err, datasource.ErrMalformedResponse) {
			d.state.apply(ctx, tok, replace(DetailsView{Status: StatusFailed, Message: MalformedMessage}))
		}
		return err
	}

	if !d.state.apply(ctx, tok, replace(RenderDetails(f))) {
		logStale(d.logger, tok)
		return nil
	}
	d.logger.Info("forecast loaded", zap.String("city", f.CityName), zap.Int("entries", len(f.Entries)))
	return nil
}
