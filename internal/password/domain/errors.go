package domain

import (
	"github.com/allisson/cryptokit/internal/errors"
)

// Password hashing error definitions.
var (
	// ErrPasswordMismatch indicates the password does not match the record.
	ErrPasswordMismatch = errors.Wrap(errors.ErrUnauthorized, "password mismatch")

	// ErrMalformedRecord indicates the record string does not match the
	// self-describing password record format.
	ErrMalformedRecord = errors.Wrap(errors.ErrInvalidInput, "malformed password record")
)
