// Package session owns the authenticated identity of the running client.
//
// A Store holds the token and the user it belongs to as one value. The API
// gateway reads the Authorization header from it on every request, so login
// and logout take effect immediately for every controller.
package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/theirongolddev/paisa/internal/api"
	"github.com/theirongolddev/paisa/internal/model"
	"github.com/theirongolddev/paisa/internal/store"
)

// Fallback messages shown when the server gives no reason.
const (
	LoginFailed        = "Login failed"
	RegistrationFailed = "Registration failed"
)

// Authenticator performs the two unauthenticated calls a session needs.
// *api.Client satisfies it.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (model.AuthResponse, error)
	Register(ctx context.Context, email, password, name string) (model.AuthResponse, error)
}

// Snapshot is a copy of the session state. User is nil exactly when Token is empty.
type Snapshot struct {
	Token string
	User  *model.User
}

// Store is the process-wide session.
type Store struct {
	mu    sync.RWMutex
	token string
	user  *model.User

	auth      Authenticator
	tokens    store.TokenStore
	log       *slog.Logger
	now       func() time.Time
	observers []func()
}

// New returns an empty session persisting its token in tokens.
// The authenticator is attached with Bind once the gateway exists.
func New(tokens store.TokenStore, log *slog.Logger) *Store {
	if tokens == nil {
		tokens = store.NewMemoryStore()
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Store{tokens: tokens, log: log, now: time.Now}
}

// Bind attaches the authenticator used by Login and Register.
func (s *Store) Bind(auth Authenticator) {
	s.mu.Lock()
	s.auth = auth
	s.mu.Unlock()
}

// Connect builds a session and a gateway client that reads its credential.
func Connect(baseURL string, tokens store.TokenStore, log *slog.Logger, opts ...api.Option) (*Store, *api.Client) {
	sess := New(tokens, log)
	client := api.New(baseURL, sess, opts...)
	sess.Bind(client)
	return sess, client
}

// OnChange registers fn to run after every login, logout and restore.
// fn runs without the session lock held.
func (s *Store) OnChange(fn func()) {
	s.mu.Lock()
	s.observers = append(s.observers, fn)
	s.mu.Unlock()
}

func (s *Store) changed() {
	s.mu.RLock()
	fns := append([]func(){}, s.observers...)
	s.mu.RUnlock()
	for _, fn := range fns {
		fn()
	}
}

// Authorization implements api.Credential.
func (s *Store) Authorization() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == "" {
		return ""
	}
	return "Bearer " + s.token
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := Snapshot{Token: s.token}
	if s.user != nil {
		u := *s.user
		snap.User = &u
	}
	return snap
}

// Authenticated reports whether a token is held.
func (s *Store) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != ""
}

// HasRole reports whether the session user holds role.
func (s *Store) HasRole(role model.Role) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil && s.user.Role == role
}

// Login authenticates and, on success, installs and persists the new session.
// On failure the previous state is untouched and the error is an *api.Error
// whose Message is the server's reason or LoginFailed.
func (s *Store) Login(ctx context.Context, email, password string) (model.Role, error) {
	auth := s.authenticator()
	if auth == nil {
		return "", &api.Error{Message: LoginFailed, Kind: api.KindServer}
	}

	resp, err := auth.Login(ctx, email, password)
	if err != nil {
		s.log.WarnContext(ctx, "login failed", "email", email, "error", err)
		return "", withFallback(err, LoginFailed)
	}
	if resp.Token == "" {
		return "", &api.Error{Message: LoginFailed, Kind: api.KindServer}
	}

	user := resp.User()
	s.install(ctx, resp.Token, user)
	s.log.InfoContext(ctx, "logged in", "email", user.Email, "role", string(user.Role))
	return user.Role, nil
}

// Register creates an account and logs in as it.
func (s *Store) Register(ctx context.Context, email, password, name string) error {
	auth := s.authenticator()
	if auth == nil {
		return &api.Error{Message: RegistrationFailed, Kind: api.KindServer}
	}

	resp, err := auth.Register(ctx, email, password, name)
	if err != nil {
		s.log.WarnContext(ctx, "registration failed", "email", email, "error", err)
		return withFallback(err, RegistrationFailed)
	}
	if resp.Token == "" {
		return &api.Error{Message: RegistrationFailed, Kind: api.KindServer}
	}

	s.install(ctx, resp.Token, resp.User())
	s.log.InfoContext(ctx, "registered", "email", resp.Email)
	return nil
}

// Logout clears the session and its persisted token. It always succeeds;
// storage failures are logged.
func (s *Store) Logout() {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.mu.Unlock()

	if err := s.tokens.Clear(context.Background()); err != nil {
		s.log.Warn("clearing persisted token", "error", err)
	}
	s.changed()
}

// Restore loads a persisted token and re-derives the user from its claims.
// A token that cannot be decoded, names no user or has expired is discarded.
// It reports whether a session was restored.
func (s *Store) Restore(ctx context.Context) (bool, error) {
	token, err := s.tokens.Load(ctx)
	if err != nil {
		return false, err
	}
	if token == "" {
		return false, nil
	}

	claims, err := DecodeClaims(token)
	if err != nil {
		s.log.InfoContext(ctx, "discarding undecodable token", "error", err)
		s.Logout()
		return false, nil
	}
	if claims.Expired(s.now()) {
		s.log.InfoContext(ctx, "discarding expired token")
		s.Logout()
		return false, nil
	}
	user, ok := claims.User()
	if !ok {
		s.log.InfoContext(ctx, "discarding token without subject")
		s.Logout()
		return false, nil
	}

	s.mu.Lock()
	s.token = token
	s.user = &user
	s.mu.Unlock()
	s.changed()
	return true, nil
}

func (s *Store) install(ctx context.Context, token string, user model.User) {
	s.mu.Lock()
	s.token = token
	s.user = &user
	s.mu.Unlock()

	if err := s.tokens.Save(ctx, token); err != nil {
		s.log.WarnContext(ctx, "persisting token", "error", err)
	}
	s.changed()
}

func (s *Store) authenticator() Authenticator {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.auth
}

// withFallback ensures the returned error is an *api.Error with a message.
func withFallback(err error, fallback string) error {
	msg := api.MessageOf(err, fallback)
	return &api.Error{
		Status:  api.StatusOf(err),
		Message: msg,
		Kind:    api.KindOf(err),
		Err:     err,
	}
}
