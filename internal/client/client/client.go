package client

import (
	"context"
)

// Client is the transport contract used by the resource and auth APIs.
//
// Send issues method against path (relative to the configured base address).
// A non-nil body is JSON-encoded; a 2xx response is JSON-decoded into out when
// out is non-nil. Every other outcome is reported as *TransportError.
type Client interface {
	Send(ctx context.Context, method, path string, body, out any) error
}

// CredentialSource supplies the bearer credential attached to requests. An
// empty string means no Authorization header is sent.
type CredentialSource interface {
	Credential() string
}
