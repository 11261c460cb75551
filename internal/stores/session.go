package stores

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/SeimoDev/LightShop/domain"
	"github.com/SeimoDev/LightShop/internal/api"
	"github.com/SeimoDev/LightShop/internal/config"
)

const (
	keyToken = "token"
	keyUser  = "user"
)

// SessionStore owns the authentication token and user identity. It is the
// only writer of either; the gateway reads the token through the
// domain.TokenSource it implements.
type SessionStore struct {
	mu        sync.RWMutex
	cfg       *config.Config
	storage   domain.Storage
	auth      *api.AuthAPI
	inspector domain.TokenInspector
	logger    *slog.Logger
	redirect  func(route string)

	token string
	user  *domain.User
}

var _ domain.SessionState = (*SessionStore)(nil)

// SessionOption configures a SessionStore.
type SessionOption func(*SessionStore)

// WithRedirect sets the hook called with the login route after logout. The
// router collaborator owns what happens next.
func WithRedirect(fn func(route string)) SessionOption {
	return func(s *SessionStore) { s.redirect = fn }
}

// WithTokenInspector enables expiry introspection of the bearer token.
func WithTokenInspector(ti domain.TokenInspector) SessionOption {
	return func(s *SessionStore) { s.inspector = ti }
}

// WithSessionLogger sets the structured logger.
func WithSessionLogger(l *slog.Logger) SessionOption {
	return func(s *SessionStore) { s.logger = l }
}

// NewSessionStore creates the store and rehydrates token and user from
// durable storage. Absent or corrupt persisted user data degrades to a nil
// user; rehydration never fails.
func NewSessionStore(cfg *config.Config, storage domain.Storage, opts ...SessionOption) *SessionStore {
	s := &SessionStore{
		cfg:     cfg,
		storage: storage,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.rehydrate(context.Background())
	return s
}

// BindAuth injects the auth endpoints. Late-bound by the container because
// the gateway those endpoints ride on needs this store's token first.
func (s *SessionStore) BindAuth(auth *api.AuthAPI) {
	s.auth = auth
}

func (s *SessionStore) rehydrate(ctx context.Context) {
	token, err := s.storage.Get(ctx, s.key(keyToken))
	if err == nil {
		s.token = token
	}

	raw, err := s.storage.Get(ctx, s.key(keyUser))
	if err != nil {
		return
	}
	var user domain.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		s.logger.Warn("discarding corrupt persisted user", "error", err)
		return
	}
	s.user = &user
}

func (s *SessionStore) key(name string) string {
	return s.cfg.StorageKeyPrefix + name
}

// Token implements domain.TokenSource. Empty string means logged out.
func (s *SessionStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// CurrentUser returns the cached identity, nil when anonymous.
func (s *SessionStore) CurrentUser() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// IsAuthenticated reports whether a credential is held.
func (s *SessionStore) IsAuthenticated() bool {
	return s.Token() != ""
}

// IsPrivileged reports whether the cached identity carries the admin role.
func (s *SessionStore) IsPrivileged() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user.IsAdmin()
}

// TokenExpiresAt peeks at the bearer token's expiry claim. Returns false
// when anonymous or when no inspector is wired.
func (s *SessionStore) TokenExpiresAt() (time.Time, bool) {
	token := s.Token()
	if token == "" || s.inspector == nil {
		return time.Time{}, false
	}
	exp, err := s.inspector.ExpiresAt(token)
	if err != nil {
		return time.Time{}, false
	}
	return time.Unix(exp, 0), true
}

// Login exchanges credentials for a session. On failure the state is
// unchanged and the error propagates for inline form display.
func (s *SessionStore) Login(ctx context.Context, creds domain.Credentials) error {
	payload, err := s.auth.Login(ctx, creds)
	if err != nil {
		return err
	}
	return s.applyAuth(ctx, payload)
}

// Register creates an account and enters the authenticated state, same
// shape as Login against a different endpoint.
func (s *SessionStore) Register(ctx context.Context, reg domain.Registration) error {
	payload, err := s.auth.Register(ctx, reg)
	if err != nil {
		return err
	}
	return s.applyAuth(ctx, payload)
}

// applyAuth atomically installs token and user, persisting both before any
// in-memory mutation. A role mismatch on the admin variant rejects the whole
// payload; nothing is persisted or cached on that path.
func (s *SessionStore) applyAuth(ctx context.Context, payload *domain.AuthPayload) error {
	if s.cfg.RequiredRole >= 0 {
		if payload.User == nil || payload.User.Role != s.cfg.RequiredRole {
			return domain.ErrNoAdminAccess
		}
	}

	raw, err := json.Marshal(payload.User)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	if err := s.storage.Set(ctx, s.key(keyToken), payload.Token); err != nil {
		return fmt.Errorf("persist token: %w", err)
	}
	if err := s.storage.Set(ctx, s.key(keyUser), string(raw)); err != nil {
		// Keep storage consistent: a token without its user is worse than
		// neither.
		_ = s.storage.Delete(ctx, s.key(keyToken))
		return fmt.Errorf("persist user: %w", err)
	}

	s.mu.Lock()
	s.token = payload.Token
	s.user = payload.User
	s.mu.Unlock()
	return nil
}

// FetchProfile refreshes the cached user from the server. A no-op when
// anonymous; a failure cascades into Logout because a profile fetch failing
// means the credential no longer works.
func (s *SessionStore) FetchProfile(ctx context.Context) error {
	if !s.IsAuthenticated() {
		return nil
	}

	user, err := s.auth.Profile(ctx)
	if err != nil {
		s.Logout(ctx)
		return err
	}
	return s.storeUser(ctx, user)
}

// UpdateProfile mutates the user record in place. The token is untouched.
func (s *SessionStore) UpdateProfile(ctx context.Context, update domain.ProfileUpdate) error {
	user, err := s.auth.UpdateProfile(ctx, update)
	if err != nil {
		return err
	}
	return s.storeUser(ctx, user)
}

func (s *SessionStore) storeUser(ctx context.Context, user *domain.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	if err := s.storage.Set(ctx, s.key(keyUser), string(raw)); err != nil {
		return fmt.Errorf("persist user: %w", err)
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
	return nil
}

// Logout clears the session in memory and in durable storage, then issues
// the login redirect. Idempotent: calling it while anonymous only redirects.
func (s *SessionStore) Logout(ctx context.Context) {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.mu.Unlock()

	if err := s.storage.Delete(ctx, s.key(keyToken)); err != nil {
		s.logger.Warn("evict persisted token", "error", err)
	}
	if err := s.storage.Delete(ctx, s.key(keyUser)); err != nil {
		s.logger.Warn("evict persisted user", "error", err)
	}

	if s.redirect != nil {
		s.redirect(s.cfg.LoginRoute)
	}
}

// HandleUnauthorized is the gateway's 401 hook.
func (s *SessionStore) HandleUnauthorized() {
	s.Logout(context.Background())
}
