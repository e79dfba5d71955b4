package di

import (
	"fmt"

	"github.com/robaa12/mawid-client/internal/credstore"
	"github.com/robaa12/mawid-client/internal/service"
	"github.com/robaa12/mawid-client/internal/session"
	"github.com/robaa12/mawid-client/internal/transport"
	"github.com/robaa12/mawid-client/pkg/config"
)

// Container holds all dependencies for the client
type Container struct {
	// Infrastructure
	Store     credstore.Store
	Transport *transport.Client

	// Services
	Auth     *service.AuthService
	Events   *service.EventService
	Bookings *service.BookingService
	Users    *service.UserService

	// Session
	Session   *session.Manager
	Navigator session.Navigator
}

// NewContainer wires the client together: store → session → transport →
// services. The transport reads the token through the session manager and
// reports 401s back to it.
func NewContainer(cfg *config.Config) (*Container, error) {
	store, err := credstore.OpenSQLite(cfg.State.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open credential store: %w", err)
	}
	return newContainer(cfg, store), nil
}

// NewContainerWithStore builds a container on a caller-provided store
// (in-memory in tests).
func NewContainerWithStore(cfg *config.Config, store credstore.Store) *Container {
	return newContainer(cfg, store)
}

func newContainer(cfg *config.Config, store credstore.Store) *Container {
	c := &Container{Store: store}

	c.Navigator = session.NewLogNavigator()

	// The manager needs the transport's auth service and the transport needs
	// the manager's token source and 401 hook; break the cycle by creating
	// the manager first and letting the hooks close over it.
	c.Session = session.NewManager(store, nil, c.Navigator, session.Config{
		TokenTTL:            cfg.Session.TokenTTL,
		ExpiryCheckInterval: cfg.Session.ExpiryCheckInterval,
	})

	c.Transport = transport.New(cfg.API.BaseURL, cfg.API.Timeout,
		transport.WithTokenSource(c.Session),
		transport.WithUnauthorizedHook(c.Session.HandleUnauthorized),
	)

	c.Auth = service.NewAuthService(c.Transport)
	c.Events = service.NewEventService(c.Transport)
	c.Bookings = service.NewBookingService(c.Transport)
	c.Users = service.NewUserService(c.Transport)

	c.Session.SetAuthAPI(c.Auth)

	return c
}

// Close releases the container's resources
func (c *Container) Close() error {
	c.Session.StopExpiryWatch()
	return c.Store.Close()
}
