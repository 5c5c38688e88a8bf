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

// PostgreSQLKeyStore implements the key store contract on a PostgreSQL table.
//
// Database schema requirements (see migrations/postgresql):
//   - id: UUID PRIMARY KEY
//   - name: TEXT UNIQUE (logical key name)
//   - value: BYTEA (key material, optionally KMS-wrapped)
//   - created_at: TIMESTAMP WITH TIME ZONE
//
// Concurrent first-use safety relies on the UNIQUE constraint: create is an
// INSERT ... ON CONFLICT DO NOTHING followed by a read-back, so two processes
// racing on the same name converge on whichever row the database kept. Within
// a process, concurrent calls for the same name are collapsed into a single
// round-trip via singleflight.
//
// When a KMS keeper is supplied, values are wrapped before insert and
// unwrapped after read, so raw key material never reaches the database.
type PostgreSQLKeyStore struct {
	db     *sql.DB
	keeper keysDomain.KMSKeeper
	group  singleflight.Group
}

// NewPostgreSQLKeyStore creates a PostgreSQL-backed key store.
// The keeper may be nil, in which case values are stored unwrapped.
func NewPostgreSQLKeyStore(db *sql.DB, keeper keysDomain.KMSKeeper) *PostgreSQLKeyStore {
	return &PostgreSQLKeyStore{db: db, keeper: keeper}
}

// GetOrCreate returns the value stored under name, generating and persisting
// length random bytes on first use.
func (p *PostgreSQLKeyStore) GetOrCreate(ctx context.Context, name string, length int) ([]byte, error) {
	value, err, _ := p.group.Do(name, func() (any, error) {
		return p.getOrCreate(ctx, name, length)
	})
	if err != nil {
		return nil, err
	}
	return value.([]byte), nil
}

func (p *PostgreSQLKeyStore) getOrCreate(ctx context.Context, name string, length int) ([]byte, error) {
	value, err := p.get(ctx, name)
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
	if p.keeper != nil {
		stored, err = p.keeper.Encrypt(ctx, fresh)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to wrap key material")
		}
		// Only the wrapped form leaves this function.
		keysDomain.Zero(fresh)
	}

	query := `INSERT INTO security_keys (id, name, value, created_at)
			  VALUES ($1, $2, $3, $4)
			  ON CONFLICT (name) DO NOTHING`

	_, err = p.db.ExecContext(ctx, query, uuid.Must(uuid.NewV7()), name, stored, time.Now().UTC())
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to create key")
	}

	// Read back so a concurrent writer's value wins consistently.
	return p.get(ctx, name)
}

// get loads and, if needed, unwraps the value stored under name.
func (p *PostgreSQLKeyStore) get(ctx context.Context, name string) ([]byte, error) {
	query := `SELECT value FROM security_keys WHERE name = $1`

	var value []byte
	err := p.db.QueryRowContext(ctx, query, name).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, apperrors.Wrap(apperrors.ErrNotFound, "key not found")
	}
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to get key")
	}

	if p.keeper != nil {
		value, err = p.keeper.Decrypt(ctx, value)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to unwrap key material")
		}
	}

	return value, nil
}
