// Package domain defines the key management contracts shared by all
// cryptographic components: the key store collaborator interface, the logical
// key names used for automatic key management, and key-related errors.
package domain

import "context"

// Well-known logical key names used when callers prefer automatic key
// management over supplying their own key material. The names are part of the
// stored data and must remain stable across releases.
const (
	// KeyNameAES is the logical name of the symmetric encryption key.
	KeyNameAES = "__aes_key__"

	// KeyNamePepper is the logical name of the server-wide password pepper.
	KeyNamePepper = "__password_pepper__"

	// KeyNameToken is the logical name of the token signing key.
	KeyNameToken = "__jwt_key__"

	// KeyNameTokenSign is the logical name of the secondary token integrity secret.
	KeyNameTokenSign = "__jwt_sign__"
)

// KeyStore is the capability this toolkit requires from the surrounding
// system: atomically get-or-create-and-persist a named secret value.
//
// Implementations must be safe under concurrent first-use from multiple
// processes sharing the same backing store: when two callers race on the same
// name, the last writer may overwrite, but all subsequent reads must return
// one consistent value.
type KeyStore interface {
	// GetOrCreate returns the value stored under name. If no value exists,
	// it generates length cryptographically-random bytes, persists them
	// under name, and returns them.
	GetOrCreate(ctx context.Context, name string, length int) ([]byte, error)
}

// KMSKeeper abstracts a KMS-backed keeper used to wrap stored key values at
// rest. *gocloud.dev/secrets.Keeper implements this interface.
type KMSKeeper interface {
	Encrypt(ctx context.Context, plaintext []byte) ([]byte, error)
	Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error)
}
