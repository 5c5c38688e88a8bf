// Package service implements key resolution for the cryptographic components.
// A Provider turns either literal key material or a named entry in an external
// key store into a usable secret of the required length, resolved once and
// cached for the provider's lifetime.
package service

import (
	"context"
	"crypto/sha256"
	"sync"
	"sync/atomic"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/cryptokit/internal/errors"
	keysDomain "github.com/allisson/cryptokit/internal/keys/domain"
	appvalidation "github.com/allisson/cryptokit/internal/validation"
)

// maxKeyLength is the largest key length a Provider can produce. It matches
// the output size of the SHA-256 derivation used for literal material.
const maxKeyLength = sha256.Size

// Provider resolves a usable secret either from literal input or by
// get-or-create against an external key store.
//
// Resolution is lazy and happens at most once per provider: concurrent first
// calls to Resolve are synchronized so only one store round-trip occurs, and
// all callers observe the same resolved value. After a successful resolution,
// Resolve reads the cached value without taking the lock.
//
// A failed store resolution is not cached; a later call retries the store.
// At most one persist-write to the store occurs per (provider, key name)
// because the store's get-or-create is itself atomic.
type Provider struct {
	material []byte
	store    keysDomain.KeyStore
	name     string
	length   int

	mu       sync.Mutex
	resolved atomic.Pointer[[]byte]
}

// FromBytes creates a Provider backed by literal key material.
//
// Material of exactly length bytes is used as-is. Shorter or longer material
// is derived to length bytes with SHA-256, so any passphrase can key a
// primitive that requires a fixed-size key.
//
// Returns ErrNoKeySource if material is empty and ErrInvalidKeyLength if
// length is not in (0, 32].
func FromBytes(material []byte, length int) (*Provider, error) {
	if len(material) == 0 {
		return nil, keysDomain.ErrNoKeySource
	}
	if length <= 0 || length > maxKeyLength {
		return nil, keysDomain.ErrInvalidKeyLength
	}

	buf := make([]byte, len(material))
	copy(buf, material)

	return &Provider{material: buf, length: length}, nil
}

// FromString creates a Provider backed by a literal string key, encoded as UTF-8 bytes.
func FromString(material string, length int) (*Provider, error) {
	return FromBytes([]byte(material), length)
}

// FromStore creates a Provider that resolves its secret by get-or-create
// against the given key store under the given logical name.
//
// Returns ErrNoKeySource if store is nil, an invalid input error if name is
// not a valid key name, and ErrInvalidKeyLength if length is not in (0, 32].
func FromStore(store keysDomain.KeyStore, name string, length int) (*Provider, error) {
	if store == nil {
		return nil, keysDomain.ErrNoKeySource
	}
	if err := appvalidation.WrapValidationError(
		validation.Validate(name, validation.Required, appvalidation.KeyName),
	); err != nil {
		return nil, err
	}
	if length <= 0 || length > maxKeyLength {
		return nil, keysDomain.ErrInvalidKeyLength
	}

	return &Provider{store: store, name: name, length: length}, nil
}

// Resolve returns the provider's secret, resolving it on first use.
//
// For literal providers this never fails and never blocks. For store-backed
// providers the first call performs the store's get-or-create round-trip;
// callers should treat it as potentially blocking and wrap ctx with their own
// timeout policy. Returns ErrKeyUnavailable if the store cannot be reached.
//
// The returned slice is the cached secret and must not be modified.
func (p *Provider) Resolve(ctx context.Context) ([]byte, error) {
	if key := p.resolved.Load(); key != nil {
		return *key, nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	// Another caller may have resolved while we waited for the lock.
	if key := p.resolved.Load(); key != nil {
		return *key, nil
	}

	key, err := p.resolve(ctx)
	if err != nil {
		return nil, err
	}

	p.resolved.Store(&key)
	return key, nil
}

// Length returns the key length this provider resolves to.
func (p *Provider) Length() int {
	return p.length
}

// resolve produces the secret from the configured source. Callers must hold p.mu.
func (p *Provider) resolve(ctx context.Context) ([]byte, error) {
	if p.material != nil {
		return deriveKey(p.material, p.length), nil
	}

	key, err := p.store.GetOrCreate(ctx, p.name, p.length)
	if err != nil {
		return nil, apperrors.Wrap(keysDomain.ErrKeyUnavailable, err.Error())
	}
	if len(key) != p.length {
		// A previously stored value may have a different length; adapt it
		// the same way literal material is adapted.
		return deriveKey(key, p.length), nil
	}

	return key, nil
}

// deriveKey adapts literal material to the required length. Material of the
// exact length is copied as-is; anything else is hashed with SHA-256 and
// truncated to length bytes.
func deriveKey(material []byte, length int) []byte {
	if len(material) == length {
		key := make([]byte, length)
		copy(key, material)
		return key
	}

	sum := sha256.Sum256(material)
	key := make([]byte, length)
	copy(key, sum[:length])
	return key
}
