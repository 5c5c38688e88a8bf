// Package service implements memory-hard password hashing and verification
// with a server-wide pepper and optional per-subject bias values.
package service

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/argon2"

	apperrors "github.com/allisson/cryptokit/internal/errors"
	keysDomain "github.com/allisson/cryptokit/internal/keys/domain"
	keysService "github.com/allisson/cryptokit/internal/keys/service"
	passwordDomain "github.com/allisson/cryptokit/internal/password/domain"
)

// PasswordHasher hashes credentials with Argon2id.
//
// The input to the primitive is always, in fixed order: the server-wide
// pepper, the password, and the optional caller-supplied bias (e.g., an
// account identifier). The bias decorrelates identical passwords across
// subjects even before the per-record random salt is applied.
//
// Cost parameters are explicit per-instance configuration, so concurrent
// hashers with different policies cannot interfere with one another. A
// PasswordHasher is safe for concurrent use once the pepper has resolved.
type PasswordHasher struct {
	pepper *keysService.Provider
	params passwordDomain.Params
}

// NewPasswordHasher creates a PasswordHasher with the given pepper provider
// and cost parameters. Returns ErrNoKeySource when pepper is nil and a
// configuration error when the parameters fail validation.
func NewPasswordHasher(pepper *keysService.Provider, params passwordDomain.Params) (*PasswordHasher, error) {
	if pepper == nil {
		return nil, keysDomain.ErrNoKeySource
	}
	if err := params.Validate(); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidConfig, err.Error())
	}

	return &PasswordHasher{pepper: pepper, params: params}, nil
}

// Params returns the hasher's configured cost parameters.
func (h *PasswordHasher) Params() passwordDomain.Params {
	return h.params
}

// Hash hashes the password under a fresh random salt and returns the
// self-describing record string. The bias may be empty.
func (h *PasswordHasher) Hash(ctx context.Context, password, bias string) (string, error) {
	material, err := h.material(ctx, password, bias)
	if err != nil {
		return "", err
	}

	salt := make([]byte, h.params.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	record := passwordDomain.Record{
		Params: h.params,
		Salt:   salt,
		Hash:   derive(material, salt, h.params),
	}

	return record.Encode(), nil
}

// Verify checks the password against the record and returns a record string
// the caller should persist.
//
// On success, if the record's embedded cost parameters differ from the
// hasher's configured parameters, the hash is transparently recomputed with
// the current parameters and the new record is returned; otherwise the
// original record is returned unchanged. Returns ErrPasswordMismatch when the
// password does not match and ErrMalformedRecord for unparseable records.
func (h *PasswordHasher) Verify(ctx context.Context, password, encoded, bias string) (string, error) {
	match, record, err := h.compare(ctx, password, encoded, bias)
	if err != nil {
		return "", err
	}
	if !match {
		return "", passwordDomain.ErrPasswordMismatch
	}

	if record.Params.CostEqual(h.params) {
		return encoded, nil
	}

	// Cost-parameter migration: re-issue the record under the current policy
	// without forcing a password reset.
	return h.Hash(ctx, password, bias)
}

// IsEqual reports whether the password matches the record.
//
// Unlike Verify it never re-hashes and never fails on a legitimate mismatch;
// the error is non-nil only for malformed records or an unresolvable pepper.
func (h *PasswordHasher) IsEqual(ctx context.Context, password, encoded, bias string) (bool, error) {
	match, _, err := h.compare(ctx, password, encoded, bias)
	if err != nil {
		return false, err
	}
	return match, nil
}

// compare recomputes the hash with the record's embedded parameters and
// compares it against the stored hash in constant time.
func (h *PasswordHasher) compare(
	ctx context.Context,
	password, encoded, bias string,
) (bool, passwordDomain.Record, error) {
	record, err := passwordDomain.ParseRecord(encoded)
	if err != nil {
		return false, passwordDomain.Record{}, err
	}

	material, err := h.material(ctx, password, bias)
	if err != nil {
		return false, passwordDomain.Record{}, err
	}

	computed := derive(material, record.Salt, record.Params)
	match := subtle.ConstantTimeCompare(computed, record.Hash) == 1

	return match, record, nil
}

// material builds the primitive input: pepper + password + bias, in fixed order.
func (h *PasswordHasher) material(ctx context.Context, password, bias string) ([]byte, error) {
	pepper, err := h.pepper.Resolve(ctx)
	if err != nil {
		return nil, err
	}

	material := make([]byte, 0, len(pepper)+len(password)+len(bias))
	material = append(material, pepper...)
	material = append(material, password...)
	material = append(material, bias...)
	return material, nil
}

// derive runs Argon2id with the given parameters.
func derive(material, salt []byte, params passwordDomain.Params) []byte {
	return argon2.IDKey(
		material,
		salt,
		params.Time,
		params.Memory,
		params.Parallelism,
		params.KeyLength,
	)
}
