// Package session holds the client-side authentication state.
//
// A Context is created once by the application and handed to every
// component that needs auth state; the HTTP client reads the bearer
// credential from it. Durable persistence lives behind Storage.
package session

import (
	"errors"
	"sync"

	"github.com/dmitrijs2005/catalogclient/internal/client/models"
)

// State of the session state machine.
type State int

const (
	// Anonymous: no credential held.
	Anonymous State = iota
	// Restored: credential read from durable storage, not yet confirmed by
	// the server.
	Restored
	// Authenticated: credential issued or confirmed by the server.
	Authenticated
)

func (s State) String() string {
	switch s {
	case Anonymous:
		return "anonymous"
	case Restored:
		return "restored"
	case Authenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// ErrNoCredential is returned when a user is offered without a credential.
var ErrNoCredential = errors.New("session: credential is empty")

// Context is the owned session record. The zero value is an anonymous
// session. A user is never held without a credential.
type Context struct {
	mu         sync.RWMutex
	state      State
	credential string
	user       *models.User
}

func NewContext() *Context {
	return &Context{}
}

// Credential implements client.CredentialSource.
func (c *Context) Credential() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.credential
}

// User returns a copy of the current user, or nil.
func (c *Context) User() *models.User {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.user == nil {
		return nil
	}
	u := *c.user
	return &u
}

func (c *Context) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// IsAuthenticated reports whether a credential is held, confirmed or not.
func (c *Context) IsAuthenticated() bool {
	return c.State() != Anonymous
}

// Authenticate stores a server-issued credential and user.
func (c *Context) Authenticate(credential string, user *models.User) error {
	return c.set(Authenticated, credential, user)
}

// Restore stores a credential read back from durable storage. The session
// stays Restored until Confirm is called.
func (c *Context) Restore(credential string, user *models.User) error {
	return c.set(Restored, credential, user)
}

// Confirm promotes a Restored session to Authenticated. It reports whether
// the promotion happened.
func (c *Context) Confirm() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != Restored {
		return false
	}
	c.state = Authenticated
	return true
}

// Clear drops the credential and user together.
func (c *Context) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = Anonymous
	c.credential = ""
	c.user = nil
}

func (c *Context) set(state State, credential string, user *models.User) error {
	if credential == "" {
		return ErrNoCredential
	}

	var u *models.User
	if user != nil {
		cp := *user
		u = &cp
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = state
	c.credential = credential
	c.user = u
	return nil
}
