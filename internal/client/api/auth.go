package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/catalogclient/internal/client/client"
	"github.com/dmitrijs2005/catalogclient/internal/client/models"
)

// ErrNoToken is returned when a 2xx auth response carries no token.
var ErrNoToken = errors.New("auth response without token")

// Auth issues the credential and account-creation calls.
type Auth struct {
	c         client.Client
	endpoints Endpoints
	now       func() time.Time
}

type AuthOption func(*Auth)

// WithClock replaces the clock used for username synthesis.
func WithClock(now func() time.Time) AuthOption {
	return func(a *Auth) { a.now = now }
}

func NewAuth(c client.Client, endpoints Endpoints, opts ...AuthOption) *Auth {
	a := &Auth{c: c, endpoints: endpoints, now: time.Now}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Login exchanges an identifier and secret for a credential and user.
func (a *Auth) Login(ctx context.Context, identifier, secret string) (*models.AuthResponse, error) {
	req := models.LoginRequest{
		Username: strings.TrimSpace(identifier),
		Password: secret,
	}
	return a.post(ctx, a.endpoints.Login, req)
}

// Register creates an account. The backend's redundant fields are derived
// from the profile and secret.
func (a *Auth) Register(ctx context.Context, p models.Profile, secret string) (*models.AuthResponse, error) {
	return a.post(ctx, a.endpoints.Register, BuildRegisterRequest(p, secret, a.now()))
}

// Validate performs an authenticated GET to check the current credential.
// Only a 401 from Endpoints.Validate reveals a revoked credential.
func (a *Auth) Validate(ctx context.Context) error {
	return a.c.Send(ctx, http.MethodGet, a.endpoints.Validate, nil, nil)
}

func (a *Auth) post(ctx context.Context, path string, body any) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := a.c.Send(ctx, http.MethodPost, path, body, &resp); err != nil {
		return nil, err
	}
	if strings.TrimSpace(resp.Token) == "" {
		return nil, fmt.Errorf("%s: %w", path, ErrNoToken)
	}
	return &resp, nil
}

// BuildRegisterRequest normalizes the profile and synthesizes username and
// confirmPassword. The username is the lower-cased local part of the e-mail
// followed by the Unix-millisecond timestamp of now.
func BuildRegisterRequest(p models.Profile, secret string, now time.Time) models.RegisterRequest {
	email := strings.ToLower(strings.TrimSpace(p.Email))

	local := email
	if i := strings.IndexByte(email, '@'); i >= 0 {
		local = email[:i]
	}

	return models.RegisterRequest{
		Username:        fmt.Sprintf("%s%d", local, now.UnixMilli()),
		Email:           email,
		Password:        secret,
		ConfirmPassword: secret,
		FirstName:       strings.TrimSpace(p.FirstName),
		LastName:        strings.TrimSpace(p.LastName),
	}
}
