package stores

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dmitrijs2005/catalogclient/internal/client/apierror"
	"github.com/dmitrijs2005/catalogclient/internal/client/client"
	"github.com/dmitrijs2005/catalogclient/internal/client/models"
	"github.com/dmitrijs2005/catalogclient/internal/client/session"
	"github.com/dmitrijs2005/catalogclient/internal/logging"
)

// Authenticator is the backend side of the session actions.
type Authenticator interface {
	Login(ctx context.Context, identifier, secret string) (*models.AuthResponse, error)
	Register(ctx context.Context, p models.Profile, secret string) (*models.AuthResponse, error)
	Validate(ctx context.Context) error
}

// Session drives the session state machine over a session.Context.
type Session struct {
	sess    *session.Context
	auth    Authenticator
	storage session.Storage
	log     logging.Logger
	now     func() time.Time

	mu      sync.Mutex
	loading bool
	err     string
}

type SessionOption func(*Session)

func WithSessionLogger(l logging.Logger) SessionOption {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

// WithSessionClock sets the clock used to check restored token expiry.
func WithSessionClock(now func() time.Time) SessionOption {
	return func(s *Session) { s.now = now }
}

func NewSession(sess *session.Context, auth Authenticator, storage session.Storage, opts ...SessionOption) *Session {
	s := &Session{
		sess:    sess,
		auth:    auth,
		storage: storage,
		log:     logging.Nop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Login requests a credential and, on success, authenticates and persists
// the session.
func (s *Session) Login(ctx context.Context, identifier, secret string) bool {
	s.begin()
	defer s.end()

	resp, err := s.auth.Login(ctx, identifier, secret)
	if err != nil {
		s.fail(ctx, "login", err)
		return false
	}
	return s.establish(ctx, "login", resp)
}

// Register creates an account and signs it in.
func (s *Session) Register(ctx context.Context, p models.Profile, secret string) bool {
	s.begin()
	defer s.end()

	resp, err := s.auth.Register(ctx, p, secret)
	if err != nil {
		s.fail(ctx, "register", err)
		return false
	}
	return s.establish(ctx, "register", resp)
}

// Logout clears the session and its persisted copy. No request is made.
func (s *Session) Logout(ctx context.Context) {
	s.sess.Clear()
	s.setError("")
	s.clearStorage(ctx)
	s.log.Info(ctx, "signed out")
}

// Restore loads a persisted session at startup. An expired JWT credential
// is discarded; anything else enters the Restored state without contacting
// the server.
func (s *Session) Restore(ctx context.Context) error {
	snap, err := s.storage.Load(ctx)
	if err != nil {
		s.sess.Clear()
		if errors.Is(err, session.ErrCorruptSnapshot) {
			s.clearStorage(ctx)
		}
		return err
	}
	if snap.Credential == "" {
		s.sess.Clear()
		return nil
	}

	if session.Expired(snap.Credential, s.now()) {
		s.log.Info(ctx, "stored credential expired")
		s.sess.Clear()
		s.clearStorage(ctx)
		return nil
	}

	if err := s.sess.Restore(snap.Credential, snap.User); err != nil {
		return err
	}
	s.log.Debug(ctx, "session restored", "user_id", userID(snap.User))
	return nil
}

// Validate confirms a Restored session with the server. A 401 expires the
// session; other failures keep it Restored.
func (s *Session) Validate(ctx context.Context) bool {
	switch s.sess.State() {
	case session.Anonymous:
		return false
	case session.Authenticated:
		return true
	}

	s.begin()
	defer s.end()

	if err := s.auth.Validate(ctx); err != nil {
		s.fail(ctx, "validate", err)
		if isUnauthorized(err) {
			s.Expire(ctx)
		}
		return false
	}
	s.sess.Confirm()
	return true
}

// Expire drops an authenticated session after the server rejected its
// credential.
func (s *Session) Expire(ctx context.Context) {
	if !s.sess.IsAuthenticated() {
		return
	}
	s.sess.Clear()
	s.clearStorage(ctx)
	s.log.Info(ctx, "session expired")
}

func (s *Session) Context() *session.Context { return s.sess }
func (s *Session) State() session.State      { return s.sess.State() }
func (s *Session) User() *models.User        { return s.sess.User() }
func (s *Session) IsAuthenticated() bool     { return s.sess.IsAuthenticated() }

func (s *Session) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Error returns the message of the last failed action, or "".
func (s *Session) Error() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *Session) ClearError() { s.setError("") }

func (s *Session) establish(ctx context.Context, op string, resp *models.AuthResponse) bool {
	if err := s.sess.Authenticate(resp.Token, resp.User); err != nil {
		s.fail(ctx, op, err)
		return false
	}

	if err := s.storage.Save(ctx, session.Snapshot{Credential: resp.Token, User: resp.User}); err != nil {
		s.log.Warn(ctx, "session not persisted", "op", op, "error", err)
	}
	s.log.Info(ctx, "signed in", "op", op, "user_id", userID(resp.User))
	return true
}

func (s *Session) fail(ctx context.Context, op string, err error) {
	msg := apierror.Normalize(err)
	s.setError(msg)
	s.log.Warn(ctx, "session action failed", "op", op, "error", err)
}

func (s *Session) clearStorage(ctx context.Context) {
	if err := s.storage.Clear(ctx); err != nil {
		s.log.Warn(ctx, "persisted session not cleared", "error", err)
	}
}

func (s *Session) begin() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = true
	s.err = ""
}

func (s *Session) end() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
}

func (s *Session) setError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = msg
}

func isUnauthorized(err error) bool {
	te, ok := client.AsTransportError(err)
	return ok && te.IsUnauthorized()
}

func userID(u *models.User) string {
	if u == nil {
		return ""
	}
	return u.ID
}
