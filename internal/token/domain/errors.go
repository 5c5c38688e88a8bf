package domain

import (
	"github.com/allisson/cryptokit/internal/errors"
)

// Token verification error definitions.
//
// The kinds are deliberately distinct: an expired token and a forged token
// demand different caller responses, so they are never collapsed.
var (
	// ErrMalformedToken indicates structurally invalid token input.
	ErrMalformedToken = errors.Wrap(errors.ErrInvalidInput, "malformed token")

	// ErrSignatureInvalid indicates the outer HMAC signature did not verify.
	ErrSignatureInvalid = errors.Wrap(errors.ErrUnauthorized, "invalid token signature")

	// ErrSignMismatch indicates the extra-integrity "sign" claim does not
	// match the recomputed digest, even though the outer signature verified.
	ErrSignMismatch = errors.Wrap(errors.ErrUnauthorized, "token sign mismatch")

	// ErrTokenExpired indicates the token's expiry has passed.
	ErrTokenExpired = errors.Wrap(errors.ErrUnauthorized, "token expired")
)
