// Package client contains the transport layer of the catalog client.
//
// # Overview
//
// The package provides:
//  1. A transport contract (see the Client interface) used by the auth and
//     resource APIs: a single Send operation against a path relative to the
//     configured base address.
//  2. A REST implementation (see HTTPClient) with default JSON headers, a
//     fixed timeout, bearer-credential injection from a CredentialSource and a
//     per-request X-Request-ID.
//  3. Optional capabilities: exchange observers (LogObserver, or any Observer
//     such as the Prometheus collector) and a circuit breaker (WithBreaker).
//
// # Error Handling
//
// Every failure of Send is a *TransportError carrying the HTTP status (zero
// when no response was received) and the error body parsed once into an
// ErrorPayload. The apierror package turns it into a display message.
// Sentinels ErrUnavailable, ErrUnauthorized and ErrCircuitOpen can be matched
// with errors.Is.
//
// Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. All requests honor ctx cancellation
// in addition to the client-level timeout.
package client
