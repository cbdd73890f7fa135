package display

import (
	"sync"
	"time"
	_ "time/tzdata"

	"github.com/zsefvlol/timezonemapper"

	"weather-lookup/models"
)

var zones sync.Map // zone name -> *time.Location

// ZoneAt returns the time zone in force at coords, or time.Local when it cannot be determined
func ZoneAt(coords models.Coordinates) *time.Location {
	name := timezonemapper.LatLngToTimezoneString(coords.Latitude, coords.Longitude)
	if name == "" {
		return time.Local
	}
	if loc, ok := zones.Load(name); ok {
		return loc.(*time.Location)
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.Local
	}
	zones.Store(name, loc)
	return loc
}

// LocalHour returns the hour [0,23] of epochSeconds on the wall clock at coords
func LocalHour(epochSeconds int64, coords models.Coordinates) int {
	return time.Unix(epochSeconds, 0).In(ZoneAt(coords)).Hour()
}
