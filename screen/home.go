package screen

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"weather-lookup/datasource"
	"weather-lookup/display"
	"weather-lookup/geolocation"
	"weather-lookup/models"
)

// HomeView is what the home screen renders
type HomeView struct {
	Status      Status                 `json:"status"`
	Message     string                 `json:"message,omitempty"`
	Weather     *models.CurrentWeather `json:"weather,omitempty"`
	Location    string                 `json:"location,omitempty"`
	Icon        display.Icon           `json:"icon,omitempty"`
	Temperature string                 `json:"temperature,omitempty"`
	High        string                 `json:"high,omitempty"`
	Low         string                 `json:"low,omitempty"`
	Humidity    string                 `json:"humidity,omitempty"`
}

func (v HomeView) clone() HomeView {
	if v.Weather != nil {
		w := v.Weather.Clone()
		v.Weather = &w
	}
	return v
}

// RenderHome builds the ready view for a current-weather snapshot
func RenderHome(w models.CurrentWeather) HomeView {
	w = w.Clone()
	return HomeView{
		Status:      StatusReady,
		Weather:     &w,
		Location:    fmt.Sprintf("%s, %s", w.LocationName, w.CountryCode),
		Icon:        display.SelectIcon(w.Description(), display.LocalHour(w.Timestamp, w.Coordinates)),
		Temperature: display.TemperatureLabel(w.Main.Temperature),
		High:        display.TemperatureLabel(w.Main.TempMax),
		Low:         display.TemperatureLabel(w.Main.TempMin),
		Humidity:    display.HumidityLabel(w.Main.Humidity),
	}
}

// Home shows the current weather at the device location
type Home struct {
	locator geolocation.Provider
	source  datasource.CurrentSource
	logger  *zap.Logger
	state   *cell[HomeView]
}

// NewHome creates the home screen
func NewHome(locator geolocation.Provider, source datasource.CurrentSource, logger *zap.Logger) *Home {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Home{
		locator: locator,
		source:  source,
		logger:  logger.Named("home"),
		state:   newCell(HomeView{Status: StatusLoading}, HomeView.clone),
	}
}

// Mount starts loading: location, then current weather
func (h *Home) Mount(ctx context.Context) *Task {
	return h.state.begin(ctx, replace(HomeView{Status: StatusLoading}), h.load)
}

// Unmount cancels the in-flight load; its result will not be applied
func (h *Home) Unmount() {
	h.state.end()
}

// View returns a snapshot of the screen state
func (h *Home) View() HomeView {
	return h.state.get()
}

// Current returns the most recent load
func (h *Home) Current() *Task {
	return h.state.current()
}

func (h *Home) load(ctx context.Context, tok uint64) error {
	coords, err := h.locator.RequestLocation(ctx)
	if err != nil {
		if errors.Is(err, geolocation.ErrPermissionDenied) {
			h.state.apply(ctx, tok, replace(HomeView{Status: StatusDenied, Message: DeniedMessage}))
			return err
		}
		logFailure(ctx, h.logger, "location request failed", err)
		return err
	}

	w, err := h.source.FetchCurrent(ctx, coords)
	if err != nil {
		logFailure(ctx, h.logger, "current weather fetch failed", err)
		if errors.Is(err, datasource.ErrMalformedResponse) {
			h.state.apply(ctx, tok, replace(HomeView{Status: StatusFailed, Message: MalformedMessage}))
		}
		return err
	}

	if !h.state.apply(ctx, tok, replace(RenderHome(w))) {
		logStale(h.logger, tok)
		return nil
	}
	h.logger.Info("current weather loaded",
		zap.String("location", w.LocationName),
		zap.Stringer("coords", coords),
	)
	return nil
}
