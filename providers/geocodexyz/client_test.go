package geocodexyz

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"weather-lookup/datasource"
	"weather-lookup/models"
)

func newTestServer(t *testing.T, status int, body string, check func(*http.Request)) *Client {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			check(r)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	client := NewClient(server.URL, nil)
	t.Cleanup(func() { client.Close() })
	return client
}

func TestResolve(t *testing.T) {
	client := newTestServer(t, http.StatusOK, `{"standard": {"city": "London"}, "longt": "-0.11625", "latt": "51.50643"}`, func(r *http.Request) {
		if r.URL.Path != "/New York" {
			t.Errorf("path = %q, want /New York", r.URL.Path)
		}
		if r.URL.Query().Get("json") != "1" {
			t.Errorf("json = %q, want 1", r.URL.Query().Get("json"))
		}
	})

	coords, err := client.Resolve(context.Background(), " New York ")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	want := models.Coordinates{Latitude: 51.50643, Longitude: -0.11625}
	if coords != want {
		t.Errorf("Resolve() = %v, want %v", coords, want)
	}
}

func TestResolveNumericCoordinates(t *testing.T) {
	client := newTestServer(t, http.StatusOK, `{"longt": 2.35, "latt": 48.85}`, nil)

	coords, err := client.Resolve(context.Background(), "Paris")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if coords.Latitude != 48.85 || coords.Longitude != 2.35 {
		t.Errorf("Resolve() = %v", coords)
	}
}

func TestResolveFailures(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		contains string
	}{
		{"no coordinates", `{"standard": {}}`, "no latt/longt"},
		{"empty coordinates", `{"latt": "", "longt": ""}`, "no latt/longt"},
		{"provider error", `{"error": {"code": "018", "description": "Your request produced no suggestions."}, "latt": "0.00000", "longt": "0.00000"}`, "no suggestions"},
		{"throttled", `{"latt": "Throttled! See geocode.xyz/pricing", "longt": "Throttled! See geocode.xyz/pricing"}`, "Throttled"},
		{"null island", `{"latt": "0.00000", "longt": "0.00000"}`, "unusable"},
		{"out of range", `{"latt": "123.4", "longt": "10"}`, "unusable"},
		{"nested object", `{"latt": {"value": 1}, "longt": "1"}`, "unexpected"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestServer(t, http.StatusOK, tt.body, nil)
			_, err := client.Resolve(context.Background(), "Nowhereville")
			if !errors.Is(err, datasource.ErrGeocode) {
				t.Fatalf("error = %v, want ErrGeocode", err)
			}
			if !strings.Contains(err.Error(), tt.contains) {
				t.Errorf("error %q does not mention %q", err.Error(), tt.contains)
			}
		})
	}
}

func TestResolveEmptyQuerySkipsRequest(t *testing.T) {
	client := newTestServer(t, http.StatusOK, `{}`, func(r *http.Request) {
		t.Errorf("unexpected request to %s", r.URL)
	})

	if _, err := client.Resolve(context.Background(), "   "); !errors.Is(err, datasource.ErrGeocode) {
		t.Errorf("error = %v, want ErrGeocode", err)
	}
}

func TestResolveMalformed(t *testing.T) {
	client := newTestServer(t, http.StatusOK, `<html>busy</html>`, nil)
	if _, err := client.Resolve(context.Background(), "London"); !errors.Is(err, datasource.ErrMalformedResponse) {
		t.Errorf("error = %v, want ErrMalformedResponse", err)
	}
}

func TestResolveAPIError(t *testing.T) {
	client := newTestServer(t, http.StatusForbidden, `{"error": "forbidden"}`, nil)

	_, err := client.Resolve(context.Background(), "London")
	var apiErr *datasource.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusForbidden {
		t.Errorf("StatusCode = %d", apiErr.StatusCode)
	}
}

func TestResolveNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := NewClient(url, nil)
	defer client.Close()

	if _, err := client.Resolve(context.Background(), "London"); !errors.Is(err, datasource.ErrNetwork) {
		t.Errorf("error = %v, want ErrNetwork", err)
	}
}
