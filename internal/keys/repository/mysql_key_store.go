package repository

import (
	"context"
	"crypto/rand"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	apperrors "github.com/allisson/cryptokit/internal/errors"
	keysDomain "github.com/allisson/cryptokit/internal/keys/domain"
)

// MySQLKeyStore implements the key store contract on a MySQL table.
//
// Same semantics as PostgreSQLKeyStore; MySQL stores ids as BINARY(16) and
// values as BLOB, and the racing create uses INSERT IGNORE against the UNIQUE
// name constraint followed by a read-back.
type MySQLKeyStore struct {
	db     *sql.DB
	keeper keysDomain.KMSKeeper
	group  singleflight.Group
}

// NewMySQLKeyStore creates a MySQL-backed key store.
// The keeper may be nil, in which case values are stored unwrapped.
func NewMySQLKeyStore(db *sql.DB, keeper keysDomain.KMSKeeper) *MySQLKeyStore {
	return &MySQLKeyStore{db: db, keeper: keeper}
}

// GetOrCreate returns the value stored under name, generating and persisting
// length random bytes on first use.
func (m *MySQLKeyStore) GetOrCreate(ctx context.Context, name string, length int) ([]byte, error) {
	value, err, _ := m.group.Do(name, func() (any, error) {
		return m.getOrCreate(ctx, name, length)
	})
	if err != nil {
		return nil, err
	}
	return value.([]byte), nil
}

func (m *MySQLKeyStore) getOrCreate(ctx context.Context, name string, length int) ([]byte, error) {
	value, err := m.get(ctx, name)
	if err == nil {
		return value, nil
	}
	if !apperrors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	fresh := make([]byte, length)
	if _, err := rand.Read(fresh); err != nil {
		return nil, apperrors.Wrap(err, "failed to generate key material")
	}

	stored := fresh
	if m.keeper != nil {
		stored, err = m.keeper.Encrypt(ctx, fresh)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to wrap key material")
		}
		// Only the wrapped form leaves this function.
		keysDomain.Zero(fresh)
	}

	id := uuid.Must(uuid.NewV7())
	query := `INSERT IGNORE INTO security_keys (id, name, value, created_at)
			  VALUES (?, ?, ?, ?)`

	_, err = m.db.ExecContext(ctx, query, id[:], name, stored, time.Now().UTC())
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to create key")
	}

	// Read back so a concurrent writer's value wins consistently.
	return m.get(ctx, name)
}

// get loads and, if needed, unwraps the value stored under name.
func (m *MySQLKeyStore) get(ctx context.Context, name string) ([]byte, error) {
	query := `SELECT value FROM security_keys WHERE name = ?`

	var value []byte
	err := m.db.QueryRowContext(ctx, query, name).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, apperrors.Wrap(apperrors.ErrNotFound, "key not found")
	}
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to get key")
	}

	if m.keeper != nil {
		value, err = m.keeper.Decrypt(ctx, value)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to unwrap key material")
		}
	}

	return value, nil
}
