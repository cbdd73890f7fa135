package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"weather-lookup/api"
	"weather-lookup/cache"
	"weather-lookup/datasource"
	"weather-lookup/geolocation"
	"weather-lookup/logger"
	"weather-lookup/navigator"
	"weather-lookup/providers/geocodexyz"
	"weather-lookup/providers/ipapi"
	"weather-lookup/providers/openweathermap"
)

func main() {
	os.Exit(run())
}

// run wires the application and returns the process exit code; deferred cleanup runs before exit
func run() int {
	// Parse command line arguments
	configFile := flag.String("config", "config.json", "Path to configuration file (optional)")
	tabName := flag.String("tab", "home", "Tab to open: home, search or details")
	city := flag.String("city", "", "City to look up on the search tab")
	allowLocation := flag.Bool("allow-location", false, "Grant location permission without prompting")
	serve := flag.Bool("serve", false, "Run the HTTP API instead of rendering a tab")
	port := flag.Int("port", 8080, "Port to run the server on")
	enableRateLimiting := flag.Bool("rate-limit", true, "Enable API rate limiting")
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn, error")
	flag.Parse()

	zlog, err := logger.New(*logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		return 2
	}
	defer zlog.Sync()

	// Load environment variables from .env file
	if err := datasource.LoadEnv(); err != nil {
		zlog.Info("no .env file loaded, using the process environment", zap.Error(err))
	}

	// Load configuration
	config, err := datasource.Load(*configFile, true)
	if err != nil {
		zlog.Error("invalid configuration", zap.Error(err))
		return 2
	}
	permission, err := locationPermission(config.Geolocation.Permission, *allowLocation, *serve)
	if err != nil {
		zlog.Error("invalid location permission", zap.Error(err))
		return 2
	}
	config.Geolocation.Permission = permission

	var tab navigator.Tab
	if !*serve {
		if tab, err = navigator.ParseTab(*tabName); err != nil {
			zlog.Error("invalid -tab", zap.Error(err))
			return 2
		}
		if tab == navigator.TabSearch && *city == "" {
			zlog.Error("-city is required for the search tab")
			return 2
		}
	}

	weather, geocoder, closeClients := buildSources(config, *enableRateLimiting, zlog)
	defer closeClients()
	locator := buildLocator(config, zlog)

	// Set up channel for graceful shutdown
	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(shutdownChan)

	if *serve {
		if err := runServer(api.NewServer(locator, weather, geocoder, *port, zlog), shutdownChan, zlog); err != nil {
			zlog.Error("server stopped", zap.Error(err))
			return 1
		}
		return 0
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		select {
		case sig := <-shutdownChan:
			zlog.Info("interrupted", zap.Stringer("signal", sig))
			cancel()
		case <-ctx.Done():
		}
	}()

	if err := runTab(ctx, os.Stdout, newNavigator(locator, weather, geocoder, zlog), tab, *city); err != nil {
		zlog.Error("screen did not finish loading", zap.Error(err))
		return 1
	}
	return 0
}

// locationPermission resolves the permission policy. The HTTP server has no one to answer a
// terminal prompt, so it needs an explicit grant or denial.
func locationPermission(configured string, allow, serve bool) (string, error) {
	if allow {
		return datasource.PermissionGranted, nil
	}
	if serve && configured == datasource.PermissionPrompt {
		return "", errors.New("LOCATION_PERMISSION=prompt cannot be answered in -serve mode; set granted or denied, or pass -allow-location")
	}
	return configured, nil
}

// buildSources composes the weather and geocode clients with the configured rate limits and cache
func buildSources(config *datasource.Config, rateLimit bool, zlog *zap.Logger) (datasource.Provider, datasource.Geocoder, func()) {
	owm := openweathermap.NewFromConfig(config)
	geo := geocodexyz.NewClient(config.Geocode.BaseURL, nil)

	var weather datasource.Provider = owm
	var geocoder datasource.Geocoder = geo

	// Apply rate limiting if enabled
	if rateLimit && config.RateLimit.Enabled {
		weather = datasource.NewRateLimitedProvider(owm, config.RateLimit.WeatherRPS, config.RateLimit.Burst)
		geocoder = datasource.NewRateLimitedGeocoder(geo, config.RateLimit.GeocodeRPS, config.RateLimit.Burst)
		zlog.Debug("applied rate limiting",
			zap.Float64("weatherRPS", config.RateLimit.WeatherRPS),
			zap.Float64("geocodeRPS", config.RateLimit.GeocodeRPS),
		)
	}

	// Cache outside the limiter so hits never wait for a token
	if ttl := config.Geocode.CacheTTL.Duration; ttl > 0 {
		geocoder = cache.NewCachedGeocoder(geocoder, ttl, zlog.Named("geocode-cache"))
	}

	return weather, geocoder, func() {
		if err := geo.Close(); err != nil {
			zlog.Warn("closing geocode client", zap.Error(err))
		}
	}
}

// buildLocator picks the position source and permission policy from the configuration
func buildLocator(config *datasource.Config, zlog *zap.Logger) *geolocation.Locator {
	var source geolocation.PositionSource
	switch config.Geolocation.Mode {
	case datasource.GeolocationFixed:
		source = geolocation.Fixed{Latitude: config.Geolocation.Latitude, Longitude: config.Geolocation.Longitude}
	default:
		source = ipapi.NewClient(config.Geolocation.BaseURL, nil)
	}

	var prompter geolocation.Prompter
	switch config.Geolocation.Permission {
	case datasource.PermissionGranted:
		prompter = geolocation.Allow
	case datasource.PermissionDenied:
		prompter = geolocation.Deny
	default:
		prompter = geolocation.NewTerminalPrompter(os.Stdin, os.Stderr)
	}

	return geolocation.NewLocator(prompter, source, zlog.Named("geolocation"))
}

func runServer(server *api.Server, shutdownChan <-chan os.Signal, zlog *zap.Logger) error {
	// Start the API server in a goroutine
	serveErr := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	// Wait for shutdown signal or a listener failure
	select {
	case err := <-serveErr:
		return err
	case sig := <-shutdownChan:
		zlog.Info("shutting down", zap.Stringer("signal", sig))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		zlog.Warn("shutdown incomplete", zap.Error(err))
	}
	zlog.Info("shutdown complete")
	return nil
}
