package service

import "context"

// Hasher is the password hashing contract: peppered argon2id records with
// verification-time cost migration.
type Hasher interface {
	// Hash derives a new self-describing record for the password.
	Hash(ctx context.Context, password, bias string) (string, error)
	// Verify checks the password and returns the current record, re-derived
	// when its cost parameters lag the configured ones.
	Verify(ctx context.Context, password, encoded, bias string) (string, error)
	// IsEqual reports whether the password matches the record.
	IsEqual(ctx context.Context, password, encoded, bias string) (bool, error)
}
