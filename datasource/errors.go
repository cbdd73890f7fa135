package datasource

import (
	"errors"
	"fmt"
)

var (
	// ErrNetwork covers transport failures: offline, DNS, connection resets
	ErrNetwork = errors.New("network error")
	// ErrAPI matches every *APIError
	ErrAPI = errors.New("api error")
	// ErrMalformedResponse is returned when a body does not have the expected shape
	ErrMalformedResponse = errors.New("malformed response")
	// ErrGeocode is returned when a place name yields no usable coordinates
	ErrGeocode = errors.New("geocode failed")
)

// APIError is a non-2xx answer from a provider
type APIError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s API error (status %d)", e.Provider, e.StatusCode)
	}
	return fmt.Sprintf("%s API error (status %d): %s", e.Provider, e.StatusCode, e.Body)
}

func (e *APIError) Is(target error) bool {
	return target == ErrAPI
}

const maxErrorBody = 512

// NewAPIError builds an APIError, clipping long bodies
func NewAPIError(provider string, status int, body []byte) *APIError {
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody]
	}
	return &APIError{Provider: provider, StatusCode: status, Body: string(body)}
}

// Malformed wraps a parsing problem as ErrMalformedResponse
func Malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedResponse, fmt.Sprintf(format, args...))
}
