package domain

import (
	"github.com/allisson/cryptokit/internal/errors"
)

// Key management error definitions.
var (
	// ErrKeyUnavailable indicates the key store is unreachable and no literal
	// fallback key material exists.
	ErrKeyUnavailable = errors.Wrap(errors.ErrUnavailable, "key unavailable")

	// ErrNoKeySource indicates a component was constructed with neither
	// literal key material nor a key store.
	ErrNoKeySource = errors.Wrap(errors.ErrInvalidConfig, "no key material or key store provided")

	// ErrInvalidKeyLength indicates the requested key length is not supported
	// by the target primitive.
	ErrInvalidKeyLength = errors.Wrap(errors.ErrInvalidInput, "invalid key length")
)
