package datasource

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultOpenWeatherMapURL = "https://api.openweathermap.org/data/2.5"
	DefaultGeocodeURL        = "https://geocode.xyz"
	DefaultGeolocationURL    = "http://ip-api.com"
)

// Geolocation modes
const (
	GeolocationIP    = "ip"
	GeolocationFixed = "fixed"
)

// Location permission policies
const (
	PermissionPrompt  = "prompt"
	PermissionGranted = "granted"
	PermissionDenied  = "denied"
)

// ErrMissingAPIKey is returned by Validate when no weather API key is configured
var ErrMissingAPIKey = errors.New("openWeatherMap.apiKey is required (set OPEN_WEATHER_KEY)")

// Duration is a time.Duration that reads "90s"-style strings from JSON
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("duration must be a string: %w", err)
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// Config represents the application configuration
type Config struct {
	OpenWeatherMap struct {
		APIKey  string `json:"apiKey"`
		BaseURL string `json:"baseURL"`
		// Units is passed through to the API; empty means Kelvin
		Units string `json:"units"`
	} `json:"openWeatherMap"`

	Geocode struct {
		BaseURL  string   `json:"baseURL"`
		CacheTTL Duration `json:"cacheTTL"`
	} `json:"geocode"`

	Geolocation struct {
		Mode       string  `json:"mode"`
		BaseURL    string  `json:"baseURL"`
		Latitude   float64 `json:"latitude"`
		Longitude  float64 `json:"longitude"`
		Permission string  `json:"permission"`
	} `json:"geolocation"`

	RateLimit struct {
		Enabled    bool    `json:"enabled"`
		WeatherRPS float64 `json:"weatherRPS"`
		GeocodeRPS float64 `json:"geocodeRPS"`
		Burst      int     `json:"burst"`
	} `json:"rateLimit"`
}

// DefaultConfig creates a default configuration
func DefaultConfig() *Config {
	config := &Config{}
	config.OpenWeatherMap.BaseURL = DefaultOpenWeatherMapURL
	config.Geocode.BaseURL = DefaultGeocodeURL
	config.Geocode.CacheTTL = Duration{time.Hour}
	config.Geolocation.Mode = GeolocationIP
	config.Geolocation.BaseURL = DefaultGeolocationURL
	config.Geolocation.Permission = PermissionPrompt
	config.RateLimit.Enabled = true
	// OpenWeatherMap free tier allows 60 calls/minute, geocode.xyz about one per second
	config.RateLimit.WeatherRPS = 1.0
	config.RateLimit.GeocodeRPS = 1.0
	config.RateLimit.Burst = 3
	return config
}

// LoadConfig loads configuration from a JSON file on top of the defaults
func LoadConfig(filename string) (*Config, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	config := DefaultConfig()
	decoder := json.NewDecoder(file)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(config); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}

	return config, nil
}

// LoadEnv reads a .env file into the process environment.
// An error usually means there is no .env file and the environment is set directly.
func LoadEnv() error {
	return godotenv.Load()
}

// Load builds the configuration: defaults, then the optional JSON file, then the environment.
// A missing file is not an error when optional is true.
func Load(filename string, optional bool) (*Config, error) {
	config := DefaultConfig()
	if filename != "" {
		loaded, err := LoadConfig(filename)
		switch {
		case err == nil:
			config = loaded
		case optional && errors.Is(err, os.ErrNotExist):
		default:
			return nil, err
		}
	}

	if err := config.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return config, config.Validate()
}

// ApplyEnv overlays environment variables onto the configuration
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	str := func(dst *string, keys ...string) {
		for _, key := range keys {
			if v, ok := lookup(key); ok && v != "" {
				*dst = v
				return
			}
		}
	}
	float := func(dst *float64, key string) error {
		v, ok := lookup(key)
		if !ok || v == "" {
			return nil
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", key, err)
		}
		*dst = f
		return nil
	}

	str(&c.OpenWeatherMap.APIKey, "OPEN_WEATHER_KEY", "EXPO_PUBLIC_OPEN_WEATHER_KEY")
	str(&c.OpenWeatherMap.BaseURL, "OPEN_WEATHER_BASE_URL")
	str(&c.OpenWeatherMap.Units, "OPEN_WEATHER_UNITS")
	str(&c.Geocode.BaseURL, "GEOCODE_BASE_URL")
	str(&c.Geolocation.Mode, "GEOLOCATION_MODE")
	str(&c.Geolocation.BaseURL, "GEOLOCATION_BASE_URL")
	str(&c.Geolocation.Permission, "LOCATION_PERMISSION")

	if err := float(&c.Geolocation.Latitude, "GEOLOCATION_LAT"); err != nil {
		return err
	}
	if err := float(&c.Geolocation.Longitude, "GEOLOCATION_LON"); err != nil {
		return err
	}

	if v, ok := lookup("GEOCODE_CACHE_TTL"); ok && v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid GEOCODE_CACHE_TTL: %w", err)
		}
		c.Geocode.CacheTTL = Duration{ttl}
	}
	return nil
}

// Validate checks the configuration once at startup
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.OpenWeatherMap.APIKey) == "" {
		errs = append(errs, ErrMissingAPIKey)
	}
	switch c.OpenWeatherMap.Units {
	case "", "standard", "metric", "imperial":
	default:
		errs = append(errs, fmt.Errorf("unknown openWeatherMap.units %q", c.OpenWeatherMap.Units))
	}

	switch c.Geolocation.Mode {
	case GeolocationIP:
	case GeolocationFixed:
		lat, lon := c.Geolocation.Latitude, c.Geolocation.Longitude
		if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
			errs = append(errs, fmt.Errorf("fixed geolocation %.4f,%.4f out of range", lat, lon))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown geolocation.mode %q", c.Geolocation.Mode))
	}

	switch c.Geolocation.Permission {
	case PermissionPrompt, PermissionGranted, PermissionDenied:
	default:
		errs = append(errs, fmt.Errorf("unknown geolocation.permission %q", c.Geolocation.Permission))
	}

	if c.RateLimit.Enabled && (c.RateLimit.WeatherRPS <= 0 || c.RateLimit.GeocodeRPS <= 0 || c.RateLimit.Burst <= 0) {
		errs = append(errs, errors.New("rate limits must be positive when rate limiting is enabled"))
	}
	if c.Geocode.CacheTTL.Duration < 0 {
		errs = append(errs, errors.New("geocode.cacheTTL must not be negative"))
	}

	return errors.Join(errs...)
}
