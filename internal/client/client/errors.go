package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrCircuitOpen  = errors.New("circuit breaker open")
)

// TransportError is the uniform failure shape of Send. StatusCode is zero
// when no response was received (network failure, timeout, open breaker).
type TransportError struct {
	StatusCode int
	Payload    ErrorPayload
	Message    string
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("transport error: %s", e.Message)
	}
	return fmt.Sprintf("http %d: %s", e.StatusCode, e.Message)
}

// Unwrap exposes the cause together with the matching sentinel: responses
// that never arrived also match ErrUnavailable, 401 responses ErrUnauthorized.
func (e *TransportError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	switch {
	case e.StatusCode == 0:
		errs = append(errs, ErrUnavailable)
	case e.StatusCode == http.StatusUnauthorized:
		errs = append(errs, ErrUnauthorized)
	}
	return errs
}

// HasResponse reports whether the backend answered at all.
func (e *TransportError) HasResponse() bool { return e.StatusCode != 0 }

func (e *TransportError) IsNetwork() bool      { return e.StatusCode == 0 }
func (e *TransportError) IsUnauthorized() bool { return e.StatusCode == http.StatusUnauthorized }
func (e *TransportError) IsForbidden() bool    { return e.StatusCode == http.StatusForbidden }
func (e *TransportError) IsNotFound() bool     { return e.StatusCode == http.StatusNotFound }
func (e *TransportError) IsValidation() bool   { return e.StatusCode == http.StatusBadRequest }

func (e *TransportError) IsClientError() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500
}

func (e *TransportError) IsServerError() bool {
	return e.StatusCode >= 500
}

// AsTransportError extracts a *TransportError from err's chain.
func AsTransportError(err error) (*TransportError, bool) {
	var te *TransportError
	if errors.As(err, &te) {
		return te, true
	}
	return nil, false
}
