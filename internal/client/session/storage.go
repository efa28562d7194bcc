package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/catalogclient/internal/client/models"
	"github.com/dmitrijs2005/catalogclient/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/catalogclient/internal/dbx"
)

// ErrCorruptSnapshot is returned by Load when stored data cannot be decoded.
var ErrCorruptSnapshot = errors.New("stored session is corrupt")

// Snapshot is the persisted part of a session.
type Snapshot struct {
	Credential string
	User       *models.User
}

// Storage persists a session across process restarts. Load returns an empty
// Snapshot when nothing is stored.
type Storage interface {
	Load(ctx context.Context) (Snapshot, error)
	Save(ctx context.Context, s Snapshot) error
	Clear(ctx context.Context) error
}

// MetadataStorage keeps the credential as a raw string and the user as JSON
// in the local metadata table.
type MetadataStorage struct {
	db *sql.DB
	// repo binds a metadata repository to the handle of one transaction.
	repo func(dbx.DBTX) metadata.Repository
}

func NewMetadataStorage(db *sql.DB) *MetadataStorage {
	return &MetadataStorage{db: db, repo: newSQLiteRepo}
}

func newSQLiteRepo(tx dbx.DBTX) metadata.Repository {
	return metadata.NewSQLiteRepository(tx)
}

func (s *MetadataStorage) Load(ctx context.Context) (Snapshot, error) {
	var snap Snapshot

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repo(tx)

		cred, err := repo.Get(ctx, metadata.KeyCredential)
		if err != nil {
			return err
		}
		if len(cred) == 0 {
			return nil
		}
		snap.Credential = string(cred)

		raw, err := repo.Get(ctx, metadata.KeyUser)
		if err != nil {
			return err
		}
		if len(raw) == 0 {
			return nil
		}

		var u models.User
		if err := json.Unmarshal(raw, &u); err != nil {
			return fmt.Errorf("%w: decode stored user: %v", ErrCorruptSnapshot, err)
		}
		snap.User = &u
		return nil
	})
	if err != nil {
		return Snapshot{}, fmt.Errorf("load session: %w", err)
	}
	return snap, nil
}

// Save replaces the stored session. A nil user removes the stored profile.
func (s *MetadataStorage) Save(ctx context.Context, snap Snapshot) error {
	if snap.Credential == "" {
		return ErrNoCredential
	}

	var userJSON []byte
	if snap.User != nil {
		b, err := json.Marshal(snap.User)
		if err != nil {
			return fmt.Errorf("encode user: %w", err)
		}
		userJSON = b
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repo(tx)
		if err := repo.Set(ctx, metadata.KeyCredential, []byte(snap.Credential)); err != nil {
			return err
		}
		if userJSON == nil {
			return repo.Delete(ctx, metadata.KeyUser)
		}
		return repo.Set(ctx, metadata.KeyUser, userJSON)
	})
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *MetadataStorage) Clear(ctx context.Context) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return s.repo(tx).Delete(ctx, metadata.KeyCredential, metadata.KeyUser)
	})
	if err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
