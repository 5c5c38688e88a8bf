// Package domain defines the symmetric encryption types: supported AEAD
// algorithms, the self-describing envelope text format, and encryption errors.
package domain

// Algorithm represents the AEAD algorithm used for authenticated encryption.
//
// Both supported algorithms use a 256-bit key, a 12-byte nonce, and a 16-byte
// authentication tag, and provide equivalent security when used correctly.
// Prefer AESGCM on CPUs with AES-NI hardware acceleration and ChaCha20 on
// platforms without it.
type Algorithm string

const (
	// AESGCM represents the AES-256-GCM authenticated encryption algorithm.
	AESGCM Algorithm = "aes-gcm"

	// ChaCha20 represents the ChaCha20-Poly1305 authenticated encryption algorithm.
	ChaCha20 Algorithm = "chacha20-poly1305"
)

// KeySize is the key length in bytes required by both supported algorithms.
const KeySize = 32
