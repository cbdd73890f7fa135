package openweathermap

import (
	"context"
	"encoding/json"

	"weather-lookup/datasource"
	"weather-lookup/models"
)

// forecastResponse represents the /forecast response structure.
// The API returns 5 days of data in 3-hour steps, ascending by dt.
type forecastResponse struct {
	City *struct {
		Name    string     `json:"name"`
		Country string     `json:"country"`
		Coord   *coordJSON `json:"coord"`
	} `json:"city"`
	List []struct {
		Dt      *int64          `json:"dt"`
		Main    *mainJSON       `json:"main"`
		Weather []conditionJSON `json:"weather"`
	} `json:"list"`
}

// FetchForecast fetches the forecast at coords
func (c *Client) FetchForecast(ctx context.Context, coords models.Coordinates) (models.Forecast, error) {
	body, err := c.get(ctx, "/forecast", coords)
	if err != nil {
		return models.Forecast{}, err
	}
	return parseForecast(body, coords)
}

func parseForecast(body []byte, requested models.Coordinates) (models.Forecast, error) {
	var resp forecastResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return models.Forecast{}, datasource.Malformed("failed to parse forecast response: %v", err)
	}
	if resp.City == nil {
		return models.Forecast{}, datasource.Malformed("forecast response has no city")
	}
	if resp.List == nil {
		return models.Forecast{}, datasource.Malformed("forecast response has no list")
	}

	forecast := models.Forecast{
		CityName:    resp.City.Name,
		CountryCode: resp.City.Country,
		Coordinates: requested,
		Entries:     make([]models.ForecastEntry, 0, len(resp.List)),
	}
	if resp.City.Coord != nil {
		forecast.Coordinates = models.Coordinates{Latitude: resp.City.Coord.Lat, Longitude: resp.City.Coord.Lon}
	}

	for i, item := range resp.List {
		if item.Main == nil || item.Main.Temp == nil || item.Dt == nil {
			return models.Forecast{}, datasource.Malformed("forecast entry %d is incomplete", i)
		}
		forecast.Entries = append(forecast.Entries, models.ForecastEntry{
			Main:       item.Main.reading(),
			Conditions: conditions(item.Weather),
			Timestamp:  *item.Dt,
		})
	}

	return forecast, nil
}
