package openweathermap

import (
	"context"
	"encoding/json"

	"weather-lookup/datasource"
	"weather-lookup/models"
)

// currentResponse represents the /weather response structure
type currentResponse struct {
	Coord   *coordJSON      `json:"coord"`
	Weather []conditionJSON `json:"weather"`
	Main    *mainJSON       `json:"main"`
	Dt      *int64          `json:"dt"`
	Sys     struct {
		Country string `json:"country"`
	} `json:"sys"`
	Name string `json:"name"`
}

// FetchCurrent fetches the current weather at coords
func (c *Client) FetchCurrent(ctx context.Context, coords models.Coordinates) (models.CurrentWeather, error) {
	body, err := c.get(ctx, "/weather", coords)
	if err != nil {
		return models.CurrentWeather{}, err
	}
	return parseCurrent(body, coords)
}

func parseCurrent(body []byte, requested models.Coordinates) (models.CurrentWeather, error) {
	var resp currentResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return models.CurrentWeather{}, datasource.Malformed("failed to parse weather response: %v", err)
	}

	switch {
	case resp.Main == nil:
		return models.CurrentWeather{}, datasource.Malformed("weather response has no main block")
	case resp.Main.Temp == nil:
		return models.CurrentWeather{}, datasource.Malformed("weather response has no main.temp")
	case resp.Weather == nil:
		return models.CurrentWeather{}, datasource.Malformed("weather response has no weather array")
	case resp.Dt == nil:
		return models.CurrentWeather{}, datasource.Malformed("weather response has no dt")
	}

	coords := requested
	if resp.Coord != nil {
		coords = models.Coordinates{Latitude: resp.Coord.Lat, Longitude: resp.Coord.Lon}
	}

	return models.CurrentWeather{
		LocationName: resp.Name,
		CountryCode:  resp.Sys.Country,
		Coordinates:  coords,
		Main:         resp.Main.reading(),
		Timestamp:    *resp.Dt,
		Conditions:   conditions(resp.Weather),
	}, nil
}
