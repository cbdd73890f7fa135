package geolocation

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"weather-lookup/models"
)

var (
	// ErrPermissionDenied is returned when the user declines location access
	ErrPermissionDenied = errors.New("permission to access location was denied")
	// ErrPositionUnavailable is returned when no fix can be produced
	ErrPositionUnavailable = errors.New("position unavailable")
)

// Provider is what the weather screens need: one fix per call, blocking until resolved
type Provider interface {
	RequestLocation(ctx context.Context) (models.Coordinates, error)
}

// PositionSource produces a position once permission has been granted
type PositionSource interface {
	CurrentPosition(ctx context.Context) (models.Coordinates, error)
}

// Fixed is a PositionSource that always reports the same coordinates
type Fixed models.Coordinates

func (f Fixed) CurrentPosition(ctx context.Context) (models.Coordinates, error) {
	return models.Coordinates(f), nil
}

// Locator gates a PositionSource behind a permission prompt.
// The prompt is shown at most once per Locator; the answer is remembered for the session.
type Locator struct {
	prompter Prompter
	source   PositionSource
	logger   *zap.Logger

	mu      sync.Mutex
	decided bool
	granted bool
}

// Ensure Locator implements Provider
var _ Provider = (*Locator)(nil)

// NewLocator creates a Locator
func NewLocator(prompter Prompter, source PositionSource, logger *zap.Logger) *Locator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Locator{prompter: prompter, source: source, logger: logger}
}

// RequestLocation asks for permission if needed, then queries the position source
func (l *Locator) RequestLocation(ctx context.Context) (models.Coordinates, error) {
	granted, err := l.permission(ctx)
	if err != nil {
		return models.Coordinates{}, err
	}
	if !granted {
		return models.Coordinates{}, ErrPermissionDenied
	}

	coords, err := l.source.CurrentPosition(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return models.Coordinates{}, ctx.Err()
		}
		return models.Coordinates{}, fmt.Errorf("%w: %w", ErrPositionUnavailable, err)
	}
	if !coords.Valid() {
		return models.Coordinates{}, fmt.Errorf("%w: invalid fix %s", ErrPositionUnavailable, coords)
	}

	l.logger.Debug("location fix", zap.Stringer("coords", coords))
	return coords, nil
}

// Reset forgets the remembered permission decision
func (l *Locator) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.decided = false
	l.granted = false
}

func (l *Locator) permission(ctx context.Context) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.decided {
		return l.granted, nil
	}

	granted, err := l.prompter.Prompt(ctx)
	if err != nil {
		if ctx.Err() != nil {
			// the screen went away before the user answered; ask again next time
			return false, ctx.Err()
		}
		l.logger.Warn("location permission prompt failed, treating as denied", zap.Error(err))
		granted = false
	}

	l.decided = true
	l.granted = granted
	l.logger.Info("location permission decided", zap.Bool("granted", granted))
	return granted, nil
}
