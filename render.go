package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"weather-lookup/datasource"
	"weather-lookup/geolocation"
	"weather-lookup/navigator"
	"weather-lookup/screen"
)

func newNavigator(locator geolocation.Provider, weather datasource.Provider, geocoder datasource.Geocoder, zlog *zap.Logger) *navigator.Navigator {
	return navigator.New(
		screen.NewHome(locator, weather, zlog),
		screen.NewSearch(geocoder, weather, zlog),
		screen.NewDetails(locator, weather, zlog),
		zlog,
	)
}

// runTab opens one tab, waits for it to settle and prints what it shows
func runTab(ctx context.Context, out io.Writer, nav *navigator.Navigator, tab navigator.Tab, city string) error {
	defer nav.Close()

	task, err := nav.Select(ctx, tab)
	if err != nil {
		return err
	}
	if tab == navigator.TabSearch {
		task = nav.Search().Submit(ctx, city)
	}
	err = task.Wait()

	printTabBar(out, nav)
	switch tab {
	case navigator.TabHome:
		printHome(out, nav.Home().View())
	case navigator.TabDetails:
		printDetails(out, nav.Details().View())
	case navigator.TabSearch:
		printSearch(out, nav.Search().View())
	}
	return err
}

func printTabBar(out io.Writer, nav *navigator.Navigator) {
	parts := make([]string, 0, 3)
	for _, t := range nav.Tabs() {
		parts = append(parts, fmt.Sprintf("[%s]", navigator.TabIcon(t, t == nav.Active())))
	}
	fmt.Fprintln(out, strings.Join(parts, " "))
}

func printHome(out io.Writer, v screen.HomeView) {
	switch v.Status {
	case screen.StatusReady:
		fmt.Fprintf(out, "%s\n%s  %s\nH: %s  L: %s\nHumidity: %s\n",
			v.Location, v.Icon, v.Temperature, v.High, v.Low, v.Humidity)
	case screen.StatusDenied, screen.StatusFailed:
		fmt.Fprintln(out, v.Message)
	default:
		fmt.Fprintln(out, "Loading...")
	}
}

func printDetails(out io.Writer, v screen.DetailsView) {
	switch v.Status {
	case screen.StatusReady:
		fmt.Fprintf(out, "%s  %s\n", v.City, v.Temperature)
		for _, tile := range v.Tiles {
			fmt.Fprintf(out, "  %s  %s\n", tile.Time, tile.Temperature)
		}
	case screen.StatusDenied, screen.StatusFailed:
		fmt.Fprintln(out, v.Message)
	default:
		fmt.Fprintln(out, "Loading...")
	}
}

func printSearch(out io.Writer, v screen.SearchView) {
	fmt.Fprintf(out, "Search: %s\n", v.Query)
	if v.Weather == nil {
		return
	}
	fmt.Fprintf(out, "%s  %s  %s\n", v.City, v.Temperature, v.Description)
}
