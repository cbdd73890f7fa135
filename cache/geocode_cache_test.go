package cache

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"weather-lookup/datasource"
	"weather-lookup/models"
)

type countingGeocoder struct {
	places map[string]models.Coordinates
	calls  int
}

func (g *countingGeocoder) Name() string { return "counting" }

func (g *countingGeocoder) Resolve(ctx context.Context, query string) (models.Coordinates, error) {
	g.calls++
	c, ok := g.places[query]
	if !ok {
		return models.Coordinates{}, fmt.Errorf("%w: %q", datasource.ErrGeocode, query)
	}
	return c, nil
}

var paris = models.Coordinates{Latitude: 48.8566, Longitude: 2.3522}

func TestCachedGeocoderHitAndExpiry(t *testing.T) {
	source := &countingGeocoder{places: map[string]models.Coordinates{"Paris": paris}}
	c := NewCachedGeocoder(source, time.Hour, nil)
	now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	for _, q := range []string{"Paris", "  paris ", "PARIS"} {
		got, err := c.Resolve(context.Background(), q)
		if err != nil {
			t.Fatalf("Resolve(%q) error = %v", q, err)
		}
		if got != paris {
			t.Errorf("Resolve(%q) = %v, want %v", q, got, paris)
		}
	}
	if source.calls != 1 {
		t.Errorf("source called %d times, want 1", source.calls)
	}
	if hits, misses := c.CacheStats(); hits != 2 || misses != 1 {
		t.Errorf("CacheStats() = %d/%d, want 2/1", hits, misses)
	}

	now = now.Add(time.Hour)
	if _, err := c.Resolve(context.Background(), "Paris"); err != nil {
		t.Fatalf("Resolve() after expiry error = %v", err)
	}
	if source.calls != 2 {
		t.Errorf("source called %d times after expiry, want 2", source.calls)
	}
}

func TestCachedGeocoderDoesNotCacheFailures(t *testing.T) {
	source := &countingGeocoder{}
	c := NewCachedGeocoder(source, time.Hour, nil)

	for i := 0; i < 2; i++ {
		if _, err := c.Resolve(context.Background(), "Nowhereville"); !errors.Is(err, datasource.ErrGeocode) {
			t.Fatalf("Resolve() error = %v, want ErrGeocode", err)
		}
	}
	if source.calls != 2 {
		t.Errorf("source called %d times, want 2", source.calls)
	}
}

func TestCachedGeocoderPurge(t *testing.T) {
	source := &countingGeocoder{places: map[string]models.Coordinates{"Paris": paris}}
	c := NewCachedGeocoder(source, time.Minute, nil)
	now := time.Now()
	c.now = func() time.Time { return now }

	c.Resolve(context.Background(), "Paris")
	if n := c.Purge(); n != 0 {
		t.Errorf("Purge() = %d, want 0", n)
	}
	now = now.Add(2 * time.Minute)
	if n := c.Purge(); n != 1 {
		t.Errorf("Purge() = %d, want 1", n)
	}
	if c.Name() != "counting [Cached]" {
		t.Errorf("Name() = %q", c.Name())
	}
}
