// Package metadata is a small key/value table in the local database used to
// persist the session credential and the signed-in user profile.
package metadata

import (
	"context"
)

// Key names a metadata row.
type Key string

// Keys used by the session storage.
const (
	KeyCredential Key = "credential"
	KeyUser       Key = "user"
)

// Repository reads and writes metadata rows. Get returns (nil, nil) when
// the key is absent.
type Repository interface {
	Get(ctx context.Context, key Key) ([]byte, error)
	Set(ctx context.Context, key Key, value []byte) error
	Delete(ctx context.Context, keys ...Key) error
}
