// Package session owns authentication state: the current user, the bearer
// token and its expiry. It is the only writer of the persisted credential
// group; everything else sees a read-only view.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/robaa12/mawid-client/internal/credstore"
	"github.com/robaa12/mawid-client/internal/domain"
	"github.com/robaa12/mawid-client/internal/dto"
	"github.com/robaa12/mawid-client/internal/envelope"
	"github.com/robaa12/mawid-client/pkg/logger"
)

const (
	// DefaultTokenTTL mirrors the 24-hour expiry the front-end stamps on
	// every login.
	DefaultTokenTTL = 24 * time.Hour
	// DefaultExpiryCheckInterval is how often the background watch compares
	// the persisted expiry against the clock.
	DefaultExpiryCheckInterval = 60 * time.Second
)

// AuthAPI is the slice of the API surface the manager needs. Implemented by
// service.AuthService.
type AuthAPI interface {
	Login(ctx context.Context, req dto.LoginRequest) (*envelope.AuthPayload, error)
	Register(ctx context.Context, req dto.RegisterRequest) (*envelope.AuthPayload, error)
	Profile(ctx context.Context) (domain.User, error)
}

// View is the read-only projection UI surfaces consume
type View struct {
	User            *domain.User
	TokenExpiry     *time.Time
	Loading         bool
	Err             error
	IsAuthenticated bool
	IsAdmin         bool
}

// Config tunes the manager; zero values fall back to defaults
type Config struct {
	TokenTTL            time.Duration
	ExpiryCheckInterval time.Duration
	// Now is the clock, overridable in tests.
	Now func() time.Time
}

// Manager holds the session state machine
type Manager struct {
	store credstore.Store
	auth  AuthAPI
	nav   Navigator
	log   *logger.Logger

	tokenTTL      time.Duration
	checkInterval time.Duration
	now           func() time.Time

	mu      sync.Mutex
	session domain.Session
	loading bool
	lastErr error
	// epoch is bumped on every logout; async completions that started under
	// an older epoch discard their result, so logout always wins a race.
	epoch uint64

	subscribers map[int]func(View)
	nextSub     int

	watchMu      sync.Mutex
	watchRunning bool
	stopCh       chan struct{}
	wg           sync.WaitGroup
}

// NewManager creates a session manager. The session starts empty; call
// Restore to pick up a persisted token.
func NewManager(store credstore.Store, auth AuthAPI, nav Navigator, cfg Config) *Manager {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = DefaultTokenTTL
	}
	if cfg.ExpiryCheckInterval <= 0 {
		cfg.ExpiryCheckInterval = DefaultExpiryCheckInterval
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Manager{
		store:         store,
		auth:          auth,
		nav:           nav,
		log:           logger.Get(),
		tokenTTL:      cfg.TokenTTL,
		checkInterval: cfg.ExpiryCheckInterval,
		now:           cfg.Now,
		subscribers:   make(map[int]func(View)),
	}
}

// SetAuthAPI injects the auth API after construction. The manager and the
// transport reference each other, so wiring happens in two steps.
func (m *Manager) SetAuthAPI(auth AuthAPI) {
	m.auth = auth
}

// Token implements transport.TokenSource by reading the durable store, the
// same way the front-end reads localStorage on every request.
func (m *Manager) Token(ctx context.Context) string {
	token, _, err := m.store.Get(ctx, credstore.KeyAuthToken)
	if err != nil {
		m.log.Warn("failed to read persisted token", zap.Error(err))
		return ""
	}
	return token
}

// Snapshot returns the current read-only view
func (m *Manager) Snapshot() View {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.viewLocked()
}

func (m *Manager) viewLocked() View {
	return View{
		User:            m.session.User,
		TokenExpiry:     m.session.TokenExpiry,
		Loading:         m.loading,
		Err:             m.lastErr,
		IsAuthenticated: m.session.Populated(),
		IsAdmin:         m.session.Populated() && m.session.User.IsAdmin(),
	}
}

// Subscribe registers a view-change callback and returns an unsubscribe
// function. The callback runs synchronously on the mutating goroutine.
func (m *Manager) Subscribe(fn func(View)) func() {
	m.mu.Lock()
	id := m.nextSub
	m.nextSub++
	m.subscribers[id] = fn
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.subscribers, id)
		m.mu.Unlock()
	}
}

// notifyLocked snapshots subscribers under the lock; callbacks run after it
// is released by the caller.
func (m *Manager) notifyLocked() (View, []func(View)) {
	view := m.viewLocked()
	fns := make([]func(View), 0, len(m.subscribers))
	for _, fn := range m.subscribers {
		fns = append(fns, fn)
	}
	return view, fns
}

func publish(view View, fns []func(View)) {
	for _, fn := range fns {
		fn(view)
	}
}

// Restore re-establishes a session from the persisted token, if any. It
// never returns an error: every failure path degrades to logged-out.
func (m *Manager) Restore(ctx context.Context) {
	m.mu.Lock()
	m.loading = true
	startEpoch := m.epoch
	view, fns := m.notifyLocked()
	m.mu.Unlock()
	publish(view, fns)

	defer func() {
		m.mu.Lock()
		m.loading = false
		view, fns := m.notifyLocked()
		m.mu.Unlock()
		publish(view, fns)
	}()

	token, ok, err := m.store.Get(ctx, credstore.KeyAuthToken)
	if err != nil || !ok || token == "" {
		return
	}

	// Cheap pre-check: a well-formed JWT whose exp already passed cannot
	// validate server-side, skip the round trip.
	if expired, exp := tokenExpired(token, m.now()); expired {
		m.log.Debug("persisted token already expired, discarding",
			zap.Time("exp", exp))
		m.discardPersisted(ctx)
		return
	}

	user, err := m.auth.Profile(ctx)
	if err != nil {
		// Invalid token, network failure or malformed response: degrade to
		// logged-out without surfacing anything.
		m.log.Debug("session restore failed, degrading to logged out", zap.Error(err))
		m.discardPersisted(ctx)
		return
	}

	expiry := m.persistedExpiry(ctx)
	if err := m.store.Set(ctx, credstore.KeyUserRole, string(user.Role)); err != nil {
		m.log.Warn("failed to persist user role", zap.Error(err))
	}

	m.mu.Lock()
	if m.epoch != startEpoch {
		// A logout raced the profile fetch; the logout wins.
		m.mu.Unlock()
		return
	}
	m.session = domain.Session{User: &user, Token: token, TokenExpiry: expiry}
	m.lastErr = nil
	m.mu.Unlock()

	m.log.Info("session restored", zap.String("email", user.Email), zap.String("role", string(user.Role)))
}

// Login authenticates and populates the session. On success it persists the
// credential group with an expiry of exactly now+TTL and navigates home.
func (m *Manager) Login(ctx context.Context, req dto.LoginRequest) error {
	return m.authenticate(ctx, func() (*envelope.AuthPayload, error) {
		return m.auth.Login(ctx, req)
	}, "Login failed. Please check your credentials.")
}

// Register creates an account and establishes the session, with the same
// persistence and navigation semantics as Login.
func (m *Manager) Register(ctx context.Context, req dto.RegisterRequest) error {
	return m.authenticate(ctx, func() (*envelope.AuthPayload, error) {
		return m.auth.Register(ctx, req)
	}, "Registration failed")
}

func (m *Manager) authenticate(ctx context.Context, call func() (*envelope.AuthPayload, error), fallbackMsg string) error {
	m.mu.Lock()
	m.loading = true
	m.lastErr = nil
	startEpoch := m.epoch
	view, fns := m.notifyLocked()
	m.mu.Unlock()
	publish(view, fns)

	finish := func(err error) {
		m.mu.Lock()
		m.loading = false
		m.lastErr = err
		view, fns := m.notifyLocked()
		m.mu.Unlock()
		publish(view, fns)
	}

	payload, err := call()
	if err != nil {
		surfaced := surfaceAuthFailure(err, fallbackMsg)
		finish(surfaced)
		return surfaced
	}
	if payload.Token == "" {
		surfaced := &domain.AuthError{Message: "invalid response from server: missing token"}
		finish(surfaced)
		return surfaced
	}

	expiry := m.now().Add(m.tokenTTL)
	role := ""
	if payload.User != nil {
		role = string(payload.User.Role)
	}
	if err := m.store.SetSession(ctx, payload.Token, role, expiry); err != nil {
		surfaced := fmt.Errorf("failed to persist session: %w", err)
		finish(surfaced)
		return surfaced
	}

	m.mu.Lock()
	if m.epoch != startEpoch {
		// Logout raced the call; it wins. Drop the persisted credentials we
		// just wrote as well.
		m.mu.Unlock()
		if err := m.store.ClearSession(ctx); err != nil {
			m.log.Warn("failed to clear session after logout race", zap.Error(err))
		}
		finish(nil)
		return nil
	}
	m.session = domain.Session{User: payload.User, Token: payload.Token, TokenExpiry: &expiry}
	m.loading = false
	m.lastErr = nil
	view, fns = m.notifyLocked()
	m.mu.Unlock()
	publish(view, fns)

	m.nav.Navigate(RouteHome)
	return nil
}

// Logout clears the session everywhere. Synchronous, idempotent, safe to
// call while a restore or login is in flight: the logout outcome sticks.
func (m *Manager) Logout() {
	m.mu.Lock()
	m.epoch++
	m.session.Clear()
	m.lastErr = nil
	view, fns := m.notifyLocked()
	m.mu.Unlock()
	publish(view, fns)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := m.store.ClearSession(ctx); err != nil {
		m.log.Warn("failed to clear persisted session", zap.Error(err))
	}

	m.nav.Navigate(RouteLogin)
}

// HandleUnauthorized is the transport's 401 hook: drop the persisted token
// and role, reset in-memory state, and force the login route unless already
// there.
func (m *Manager) HandleUnauthorized() {
	m.mu.Lock()
	m.epoch++
	m.session.Clear()
	view, fns := m.notifyLocked()
	m.mu.Unlock()
	publish(view, fns)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := m.store.Delete(ctx, credstore.KeyAuthToken, credstore.KeyUserRole); err != nil {
		m.log.Warn("failed to clear credentials after 401", zap.Error(err))
	}

	if m.nav.Current() != RouteLogin {
		m.nav.Navigate(RouteLogin)
	}
}

// StartExpiryWatch launches the background expiry check. It compares the
// persisted expiry to the clock every interval and logs out once passed.
func (m *Manager) StartExpiryWatch(ctx context.Context) error {
	m.watchMu.Lock()
	if m.watchRunning {
		m.watchMu.Unlock()
		return errors.New("expiry watch already running")
	}
	m.watchRunning = true
	m.stopCh = make(chan struct{})
	m.watchMu.Unlock()

	m.wg.Add(1)
	go m.watchExpiry(ctx)
	return nil
}

// StopExpiryWatch tears the watch down; safe to call when not running
func (m *Manager) StopExpiryWatch() {
	m.watchMu.Lock()
	if !m.watchRunning {
		m.watchMu.Unlock()
		return
	}
	m.watchRunning = false
	close(m.stopCh)
	m.watchMu.Unlock()
	m.wg.Wait()
}

func (m *Manager) watchExpiry(ctx context.Context) {
	defer m.wg.Done()

	ticker := time.NewTicker(m.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-m.stopCh:
			return
		case <-ticker.C:
			m.checkExpiry(ctx)
		}
	}
}

func (m *Manager) checkExpiry(ctx context.Context) {
	value, ok, err := m.store.Get(ctx, credstore.KeyTokenExpiry)
	if err != nil || !ok {
		return
	}
	expiry, err := time.Parse(time.RFC3339, value)
	if err != nil {
		m.log.Warn("unparseable persisted expiry, logging out", zap.String("value", value))
		m.Logout()
		return
	}
	if !m.now().Before(expiry) {
		m.log.Info("session token expired, logging out")
		m.Logout()
	}
}

// discardPersisted drops the whole credential group after a failed restore
func (m *Manager) discardPersisted(ctx context.Context) {
	if err := m.store.ClearSession(ctx); err != nil {
		m.log.Warn("failed to discard persisted session", zap.Error(err))
	}
}

// persistedExpiry reads the stored expiry timestamp, if parseable
func (m *Manager) persistedExpiry(ctx context.Context) *time.Time {
	value, ok, err := m.store.Get(ctx, credstore.KeyTokenExpiry)
	if err != nil || !ok {
		return nil
	}
	expiry, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil
	}
	return &expiry
}

// tokenExpired inspects the token's exp claim without verifying the
// signature. Opaque (non-JWT) tokens report not-expired; the server stays
// the authority.
func tokenExpired(token string, now time.Time) (bool, time.Time) {
	claims := jwt.RegisteredClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return false, time.Time{}
	}
	if claims.ExpiresAt == nil {
		return false, time.Time{}
	}
	return now.After(claims.ExpiresAt.Time), claims.ExpiresAt.Time
}

// surfaceAuthFailure keeps typed errors intact and wraps everything else in
// an AuthError carrying a user-displayable message.
func surfaceAuthFailure(err error, fallbackMsg string) error {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return err
	}
	var ae *domain.AuthError
	if errors.As(err, &ae) {
		return err
	}
	var apiErr *domain.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return &domain.AuthError{Message: apiErr.Message, Status: apiErr.Status}
	}
	return &domain.AuthError{Message: fallbackMsg}
}
