package domain

import (
	"github.com/allisson/cryptokit/internal/errors"
)

// Symmetric encryption error definitions.
//
// ErrInvalidEnvelope and ErrAuthenticationFailed are distinct on purpose:
// callers need to tell "not our format" apart from "corrupted or forged".
var (
	// ErrUnsupportedAlgorithm indicates the requested encryption algorithm is
	// not supported. Supported algorithms: AESGCM, ChaCha20.
	ErrUnsupportedAlgorithm = errors.Wrap(errors.ErrInvalidInput, "unsupported algorithm")

	// ErrInvalidKeySize indicates the cryptographic key size is invalid.
	// Both supported algorithms require exactly 32 bytes (256 bits).
	ErrInvalidKeySize = errors.Wrap(errors.ErrInvalidInput, "invalid key size")

	// ErrInvalidEnvelope indicates the envelope string does not match the
	// expected prefix, version, or four-field comma-delimited shape.
	ErrInvalidEnvelope = errors.Wrap(errors.ErrInvalidInput, "invalid envelope")

	// ErrAuthenticationFailed indicates the authentication tag did not verify:
	// the envelope was produced under a different key or has been tampered with.
	// No plaintext is ever returned when this error occurs.
	ErrAuthenticationFailed = errors.Wrap(errors.ErrInvalidInput, "authentication failed")
)
