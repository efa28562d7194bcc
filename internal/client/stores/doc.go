// Package stores holds the client-side state mirrored from the catalog
// backend: the session actions and one store per resource collection.
//
// Store actions never return errors. Each sets its loading flag for the
// duration of the call, records a normalized message on failure and reports
// success with a bool or an ok result. Overlapping calls on the same store
// are serialized per field only; the last response to complete wins.
package stores
