// Package navigator hosts the three weather screens behind a bottom-tab style switcher.
package navigator

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"weather-lookup/screen"
)

// Tab identifies one screen
type Tab string

const (
	TabHome    Tab = "home"
	TabSearch  Tab = "search"
	TabDetails Tab = "details"
)

// ErrUnknownTab is returned for a tab name the navigator does not host
var ErrUnknownTab = errors.New("unknown tab")

var order = []Tab{TabHome, TabSearch, TabDetails}

// ParseTab converts a tab name into a Tab
func ParseTab(name string) (Tab, error) {
	for _, t := range order {
		if string(t) == name {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTab, name)
}

// Screen is the lifecycle every hosted screen exposes
type Screen interface {
	Mount(ctx context.Context) *screen.Task
	Unmount()
	Current() *screen.Task
}

// Navigator mounts screens on first visit and keeps them mounted until Close
type Navigator struct {
	id      string
	logger  *zap.Logger
	home    *screen.Home
	search  *screen.Search
	details *screen.Details

	mu      sync.Mutex
	active  Tab
	mounted map[Tab]bool
}

// New creates a navigator; the home tab is active but nothing is mounted yet
func New(home *screen.Home, search *screen.Search, details *screen.Details, logger *zap.Logger) *Navigator {
	if logger == nil {
		logger = zap.NewNop()
	}
	id := uuid.NewString()
	return &Navigator{
		id:      id,
		logger:  logger.With(zap.String("session", id)),
		home:    home,
		search:  search,
		details: details,
		active:  TabHome,
		mounted: make(map[Tab]bool),
	}
}

// Tabs returns the tabs in display order
func (n *Navigator) Tabs() []Tab {
	return append([]Tab(nil), order...)
}

// SessionID identifies this navigator in logs
func (n *Navigator) SessionID() string {
	return n.id
}

// Active returns the focused tab
func (n *Navigator) Active() Tab {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.active
}

// Home returns the home screen
func (n *Navigator) Home() *screen.Home { return n.home }

// Search returns the search screen
func (n *Navigator) Search() *screen.Search { return n.search }

// Details returns the forecast screen
func (n *Navigator) Details() *screen.Details { return n.details }

func (n *Navigator) screen(tab Tab) (Screen, error) {
	switch tab {
	case TabHome:
		return n.home, nil
	case TabSearch:
		return n.search, nil
	case TabDetails:
		return n.details, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownTab, tab)
}

// Select focuses tab, mounting its screen on the first visit, and returns the screen's current task
func (n *Navigator) Select(ctx context.Context, tab Tab) (*screen.Task, error) {
	s, err := n.screen(tab)
	if err != nil {
		return nil, err
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	n.active = tab
	if n.mounted[tab] {
		n.logger.Debug("tab focused", zap.String("tab", string(tab)))
		return s.Current(), nil
	}
	n.mounted[tab] = true
	n.logger.Info("tab mounted", zap.String("tab", string(tab)))
	return s.Mount(ctx), nil
}

// Close unmounts every mounted screen, cancelling in-flight work
func (n *Navigator) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()

	for _, tab := range order {
		if !n.mounted[tab] {
			continue
		}
		s, _ := n.screen(tab)
		s.Unmount()
		delete(n.mounted, tab)
	}
	n.logger.Info("navigator closed")
}

// TabIcon returns the icon for a tab in its focused or unfocused state
func TabIcon(tab Tab, focused bool) string {
	var name string
	switch tab {
	case TabHome:
		name = "home"
	case TabSearch:
		name = "search"
	case TabDetails:
		name = "cloudy"
	default:
		return ""
	}
	if focused {
		return name
	}
	return name + "-outline"
}
