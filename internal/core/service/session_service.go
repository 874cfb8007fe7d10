package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/kivusafe/portal/internal/api/metrics"
	"github.com/kivusafe/portal/internal/core/domain"
	"github.com/kivusafe/portal/internal/core/ports"
)

// SessionManager implements ports.SessionService. It is constructed once and
// shared by every view that needs to know who is logged in.
type SessionManager struct {
	identity ports.IdentityClient
	store    ports.TokenStore
	log      zerolog.Logger
	now      func() time.Time

	// authMu serializes Login and Logout so a session is always replaced wholesale.
	authMu sync.Mutex

	mu      sync.RWMutex
	session domain.Session
	loading bool

	ready     chan struct{}
	readyOnce sync.Once
}

// NewSessionManager returns a manager in the loading state. Call Initialize
// once to restore the persisted session.
func NewSessionManager(identity ports.IdentityClient, store ports.TokenStore, log zerolog.Logger) *SessionManager {
	return &SessionManager{
		identity: identity,
		store:    store,
		log:      log,
		now:      time.Now,
		loading:  true,
		ready:    make(chan struct{}),
	}
}

// Initialize restores the session from the persisted token. Failures are
// logged and leave the portal logged out; they are never returned.
func (m *SessionManager) Initialize(ctx context.Context) {
	defer m.finishLoading()

	token, err := m.store.Load(ctx)
	if err != nil {
		m.log.Warn().Err(err).Msg("failed to read persisted token")
		metrics.SessionRestoresTotal.WithLabelValues("store_error").Inc()
		return
	}
	if token == "" {
		m.log.Debug().Msg("no persisted token, starting logged out")
		metrics.SessionRestoresTotal.WithLabelValues("absent").Inc()
		return
	}

	if m.tokenExpired(token) {
		m.log.Info().Msg("persisted token expired, discarding")
		m.discardPersisted(ctx)
		metrics.SessionRestoresTotal.WithLabelValues("expired").Inc()
		return
	}

	user, err := m.fetchUser(ctx, token)
	if err != nil {
		m.log.Warn().Err(err).Msg("failed to fetch user data, discarding persisted token")
		m.discardPersisted(ctx)
		metrics.SessionRestoresTotal.WithLabelValues("rejected").Inc()
		return
	}

	m.mu.Lock()
	m.session = domain.Session{User: user, Token: token}
	m.mu.Unlock()

	metrics.SessionRestoresTotal.WithLabelValues("restored").Inc()
	m.log.Info().Msg("session restored")
}

// Login exchanges credentials for a token, persists it and loads the user.
func (m *SessionManager) Login(ctx context.Context, email, password string) error {
	m.authMu.Lock()
	defer m.authMu.Unlock()

	token, err := m.identity.Login(ctx, email, password)
	if err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("rejected").Inc()
		m.log.Warn().Err(err).Str("email", email).Msg("login failed")
		return fmt.Errorf("login: %w", err)
	}
	if token == "" {
		metrics.LoginAttemptsTotal.WithLabelValues("no_token").Inc()
		m.log.Warn().Str("email", email).Msg("login failed: no token received")
		return domain.ErrAuthenticationFailed
	}

	if err := m.store.Save(ctx, token); err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("store_error").Inc()
		return fmt.Errorf("login: persist token: %w", err)
	}

	user, err := m.fetchUser(ctx, token)
	if err != nil {
		// The new token already replaced any stored one, so the previous
		// session cannot survive in memory either.
		m.mu.Lock()
		m.session = domain.Session{}
		m.mu.Unlock()
		m.discardPersisted(ctx)
		metrics.LoginAttemptsTotal.WithLabelValues("validation_failed").Inc()
		m.log.Warn().Err(err).Str("email", email).Msg("login failed: user lookup")
		return fmt.Errorf("login: %w", err)
	}

	m.mu.Lock()
	m.session = domain.Session{User: user, Token: token}
	m.mu.Unlock()

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	m.log.Info().Str("email", email).Msg("logged in")
	return nil
}

// Logout clears the in-memory session and erases the persisted token. The
// in-memory state is cleared even when the store fails.
func (m *SessionManager) Logout(ctx context.Context) error {
	m.authMu.Lock()
	defer m.authMu.Unlock()

	m.mu.Lock()
	m.session = domain.Session{}
	m.mu.Unlock()

	if err := m.store.Delete(ctx); err != nil {
		m.log.Error().Err(err).Msg("failed to erase persisted token")
		return fmt.Errorf("logout: %w", err)
	}
	m.log.Info().Msg("logged out")
	return nil
}

// Session returns a snapshot of the current session.
func (m *SessionManager) Session() domain.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.session
}

func (m *SessionManager) User() (json.RawMessage, bool) {
	s := m.Session()
	return s.User, s.Authenticated()
}

func (m *SessionManager) Token() string {
	return m.Session().Token
}

func (m *SessionManager) Authenticated() bool {
	return m.Session().Authenticated()
}

// Loading is true until Initialize has finished.
func (m *SessionManager) Loading() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loading
}

// Ready is closed once Initialize has finished.
func (m *SessionManager) Ready() <-chan struct{} {
	return m.ready
}

func (m *SessionManager) finishLoading() {
	m.readyOnce.Do(func() {
		m.mu.Lock()
		m.loading = false
		m.mu.Unlock()
		close(m.ready)
	})
}

func (m *SessionManager) fetchUser(ctx context.Context, token string) (json.RawMessage, error) {
	user, err := m.identity.CurrentUser(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("fetch user data: %w", err)
	}
	if domain.IsEmptyRecord(user) {
		return nil, fmt.Errorf("fetch user data: %w", domain.ErrInvalidToken)
	}
	return user, nil
}

// discardPersisted erases the stored token even when ctx is already
// cancelled, so a failed restore or login never leaves a token behind.
func (m *SessionManager) discardPersisted(ctx context.Context) {
	if err := m.store.Delete(context.WithoutCancel(ctx)); err != nil {
		m.log.Error().Err(err).Msg("failed to erase persisted token")
	}
}

// tokenExpired peeks at the exp claim of JWT-shaped tokens. Opaque tokens and
// tokens without exp are left to the identity endpoint to judge.
func (m *SessionManager) tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return !exp.Time.After(m.now())
}
