// Package models defines the client-side data models of the catalog client:
// the authenticated user, the catalog entities and the auth request/response
// shapes exchanged with the backend.
package models

// Entity is implemented by every catalog resource held in a resource store.
// Identity is the server-assigned id.
type Entity interface {
	EntityID() int64
}
