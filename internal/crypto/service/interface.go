// Package service implements authenticated symmetric encryption: the AEAD
// ciphers (AES-256-GCM and ChaCha20-Poly1305), a manager that selects between
// them, and the Codec that turns byte payloads into self-describing envelope
// strings and back.
package service

import (
	"context"

	cryptoDomain "github.com/allisson/cryptokit/internal/crypto/domain"
)

// AEAD defines the interface for Authenticated Encryption with Associated Data.
type AEAD interface {
	// Encrypt encrypts plaintext with optional AAD and returns ciphertext and nonce.
	Encrypt(plaintext, aad []byte) (ciphertext, nonce []byte, err error)

	// Decrypt decrypts ciphertext using the provided nonce and AAD.
	Decrypt(ciphertext, nonce, aad []byte) ([]byte, error)

	// Overhead returns the size in bytes of the authentication tag appended
	// to the ciphertext by Encrypt.
	Overhead() int

	// NonceSize returns the size in bytes of the nonce accepted by Decrypt
	// and generated by Encrypt.
	NonceSize() int
}

// AEADManager defines the interface for creating AEAD cipher instances.
type AEADManager interface {
	// CreateCipher creates an AEAD cipher instance for the specified algorithm.
	CreateCipher(key []byte, alg cryptoDomain.Algorithm) (AEAD, error)
}

// SymmetricCodec encrypts byte payloads into self-describing envelope strings
// and decrypts them back. Implementations are safe for concurrent use.
type SymmetricCodec interface {
	// Encrypt encrypts plaintext and returns the envelope text form.
	Encrypt(ctx context.Context, plaintext []byte) (string, error)

	// Decrypt parses an envelope string, verifies its authentication tag, and
	// returns the original plaintext.
	Decrypt(ctx context.Context, envelope string) ([]byte, error)
}
