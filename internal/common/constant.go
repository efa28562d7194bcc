// Package common contains shared constants, sentinel errors and small helpers
// used across the catalog client components.
package common

// Header names set on every outbound request.
const (
	AuthorizationHeaderName = "Authorization"
	RequestIDHeaderName     = "X-Request-ID"
	ContentTypeHeaderName   = "Content-Type"
	AcceptHeaderName        = "Accept"

	BearerPrefix    = "Bearer "
	JSONContentType = "application/json"
)
