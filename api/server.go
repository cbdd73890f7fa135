package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"weather-lookup/datasource"
	"weather-lookup/geolocation"
	"weather-lookup/models"
	"weather-lookup/navigator"
	"weather-lookup/screen"
)

// Server exposes the three weather screens as JSON endpoints.
// Every request runs on a fresh navigator that is closed when the request ends.
type Server struct {
	locator  geolocation.Provider
	weather  datasource.Provider
	geocoder datasource.Geocoder
	logger   *zap.Logger
	server   *http.Server
}

// NewServer creates a new API server
func NewServer(locator geolocation.Provider, weather datasource.Provider, geocoder datasource.Geocoder, port int, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	mux := http.NewServeMux()

	server := &Server{
		locator:  locator,
		weather:  weather,
		geocoder: geocoder,
		logger:   logger.Named("api"),
		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}

	mux.HandleFunc("/api/tabs", server.handleTabs)
	mux.HandleFunc("/api/screen/home", server.handleHome)
	mux.HandleFunc("/api/screen/details", server.handleDetails)
	mux.HandleFunc("/api/screen/search", server.handleSearch)

	// Health check
	mux.HandleFunc("/api/health", server.handleHealthCheck)

	return server
}

// Handler returns the request router
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start begins the API server
func (s *Server) Start() error {
	s.logger.Info("starting API server", zap.String("addr", s.server.Addr))
	return s.server.ListenAndServe()
}

// Shutdown stops accepting requests and waits for in-flight ones
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

type tabInfo struct {
	Name        navigator.Tab `json:"name"`
	Icon        string        `json:"icon"`
	FocusedIcon string        `json:"focusedIcon"`
}

// screenResponse wraps a view with the error that stopped it, if any
type screenResponse struct {
	View  any    `json:"view"`
	Error string `json:"error,omitempty"`
}

func (s *Server) handleTabs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	tabs := make([]tabInfo, 0, 3)
	for _, tab := range s.navigator(s.locator).Tabs() {
		tabs = append(tabs, tabInfo{
			Name:        tab,
			Icon:        navigator.TabIcon(tab, false),
			FocusedIcon: navigator.TabIcon(tab, true),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"tabs": tabs})
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	s.serveTab(w, r, navigator.TabHome, func(nav *navigator.Navigator) any {
		return nav.Home().View()
	})
}

func (s *Server) handleDetails(w http.ResponseWriter, r *http.Request) {
	s.serveTab(w, r, navigator.TabDetails, func(nav *navigator.Navigator) any {
		return nav.Details().View()
	})
}

// serveTab mounts a location-driven screen, waits for its load and writes the resulting view
func (s *Server) serveTab(w http.ResponseWriter, r *http.Request, tab navigator.Tab, view func(*navigator.Navigator) any) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	locator, err := s.locatorFor(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	nav := s.navigator(locator)
	defer nav.Close()

	task, err := nav.Select(r.Context(), tab)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	err = task.Wait()
	s.writeScreen(w, r, view(nav), err)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	query := r.URL.Query().Get("q")
	if query == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Query parameter q is required"})
		return
	}

	nav := s.navigator(s.locator)
	defer nav.Close()

	if _, err := nav.Select(r.Context(), navigator.TabSearch); err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	err := nav.Search().Submit(r.Context(), query).Wait()
	s.writeScreen(w, r, nav.Search().View(), err)
}

// handleHealthCheck provides a simple health check endpoint
func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (s *Server) navigator(locator geolocation.Provider) *navigator.Navigator {
	return navigator.New(
		screen.NewHome(locator, s.weather, s.logger),
		screen.NewSearch(s.geocoder, s.weather, s.logger),
		screen.NewDetails(locator, s.weather, s.logger),
		s.logger,
	)
}

// locatorFor uses explicit lat/lon query parameters when both are given, the shared locator otherwise
func (s *Server) locatorFor(r *http.Request) (geolocation.Provider, error) {
	q := r.URL.Query()
	latStr, lonStr := q.Get("lat"), q.Get("lon")
	if latStr == "" && lonStr == "" {
		return s.locator, nil
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid lat %q", latStr)
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid lon %q", lonStr)
	}
	coords := models.Coordinates{Latitude: lat, Longitude: lon}
	if !coords.Valid() {
		return nil, fmt.Errorf("coordinates out of range: %s", coords)
	}
	return geolocation.NewLocator(geolocation.Allow, geolocation.Fixed(coords), s.logger), nil
}

func (s *Server) writeScreen(w http.ResponseWriter, r *http.Request, view any, err error) {
	if err == nil {
		writeJSON(w, http.StatusOK, screenResponse{View: view})
		return
	}
	if r.Context().Err() != nil {
		s.logger.Debug("client went away", zap.String("path", r.URL.Path))
		return
	}
	writeJSON(w, statusFor(err), screenResponse{View: view, Error: err.Error()})
}

// statusFor maps the error taxonomy onto HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, geolocation.ErrPermissionDenied):
		return http.StatusForbidden
	case errors.Is(err, datasource.ErrGeocode):
		return http.StatusNotFound
	case errors.Is(err, geolocation.ErrPositionUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, datasource.ErrAPI),
		errors.Is(err, datasource.ErrNetwork),
		errors.Is(err, datasource.ErrMalformedResponse):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
