package session

import (
	"sync"

	"go.uber.org/zap"

	"github.com/robaa12/mawid-client/pkg/logger"
)

// Well-known routes the session layer navigates to. The actual route table
// belongs to the UI; the session core only ever targets these two.
const (
	RouteHome  = "/"
	RouteLogin = "/login"
)

// Navigator is how the session layer signals navigation to the surrounding
// UI shell without knowing anything about it.
type Navigator interface {
	// Navigate moves the UI to the given route.
	Navigate(route string)
	// Current returns the route the UI is on.
	Current() string
}

// LogNavigator is a Navigator for headless consumers (the CLI): it records
// the requested route and logs the transition.
type LogNavigator struct {
	mu      sync.Mutex
	current string
	log     *logger.Logger
}

// NewLogNavigator returns a LogNavigator starting at the home route
func NewLogNavigator() *LogNavigator {
	return &LogNavigator{current: RouteHome, log: logger.Get()}
}

func (n *LogNavigator) Navigate(route string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.current != route {
		n.log.Debug("navigation", zap.String("from", n.current), zap.String("to", route))
	}
	n.current = route
}

func (n *LogNavigator) Current() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}
