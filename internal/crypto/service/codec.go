package service

import (
	"context"

	cryptoDomain "github.com/allisson/cryptokit/internal/crypto/domain"
	keysDomain "github.com/allisson/cryptokit/internal/keys/domain"
	keysService "github.com/allisson/cryptokit/internal/keys/service"
)

// Codec implements SymmetricCodec: authenticated encryption of byte payloads
// into the versioned envelope text format and back.
//
// The codec is keyed by a key provider, so the same component works with
// literal key material or store-backed automatic key management. Every public
// operation is a pure function of its inputs plus the resolved key; a Codec
// is safe for concurrent use by multiple goroutines.
type Codec struct {
	provider *keysService.Provider
	manager  AEADManager
	alg      cryptoDomain.Algorithm
	prefix   string
}

// NewCodec creates a Codec for the given key provider and algorithm.
//
// An empty prefix selects cryptoDomain.DefaultPrefix. The provider must
// resolve to a 32-byte key; returns ErrInvalidKeySize otherwise and
// ErrNoKeySource when provider is nil.
func NewCodec(
	provider *keysService.Provider,
	manager AEADManager,
	alg cryptoDomain.Algorithm,
	prefix string,
) (*Codec, error) {
	if provider == nil {
		return nil, keysDomain.ErrNoKeySource
	}
	if provider.Length() != cryptoDomain.KeySize {
		return nil, cryptoDomain.ErrInvalidKeySize
	}
	if prefix == "" {
		prefix = cryptoDomain.DefaultPrefix
	}

	return &Codec{
		provider: provider,
		manager:  manager,
		alg:      alg,
		prefix:   prefix,
	}, nil
}

// Prefix returns the envelope prefix this codec produces and accepts.
func (c *Codec) Prefix() string {
	return c.prefix
}

// Encrypt encrypts plaintext with a fresh random nonce and returns the
// envelope text form. Encrypting the same plaintext twice produces two
// different envelopes.
func (c *Codec) Encrypt(ctx context.Context, plaintext []byte) (string, error) {
	aead, err := c.cipher(ctx)
	if err != nil {
		return "", err
	}

	sealed, nonce, err := aead.Encrypt(plaintext, nil)
	if err != nil {
		return "", err
	}

	// The AEAD appends the authentication tag to the ciphertext; the envelope
	// carries them as separate fields.
	split := len(sealed) - aead.Overhead()
	envelope := cryptoDomain.Envelope{
		Prefix:     c.prefix,
		Version:    cryptoDomain.FormatVersion,
		Nonce:      nonce,
		Tag:        sealed[split:],
		Ciphertext: sealed[:split],
	}

	return envelope.Encode(), nil
}

// EncryptString encrypts a string payload, encoded as UTF-8 bytes.
func (c *Codec) EncryptString(ctx context.Context, plaintext string) (string, error) {
	return c.Encrypt(ctx, []byte(plaintext))
}

// Decrypt parses an envelope string, verifies the authentication tag, and
// returns the original plaintext.
//
// Returns ErrInvalidEnvelope for strings with an unrecognized prefix, version,
// or shape, and ErrAuthenticationFailed when the tag does not verify (wrong
// key or tampered data). Tag verification completes before any plaintext is
// returned.
func (c *Codec) Decrypt(ctx context.Context, envelope string) ([]byte, error) {
	return c.decrypt(ctx, envelope, false)
}

// DecryptIgnorePrefix decrypts an envelope produced with a different prefix:
// everything up to the first prefix separator is discarded instead of being
// matched against the codec's own prefix.
func (c *Codec) DecryptIgnorePrefix(ctx context.Context, envelope string) ([]byte, error) {
	return c.decrypt(ctx, envelope, true)
}

// DecryptString decrypts an envelope and returns the plaintext as a string.
func (c *Codec) DecryptString(ctx context.Context, envelope string) (string, error) {
	plaintext, err := c.Decrypt(ctx, envelope)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}

func (c *Codec) decrypt(ctx context.Context, envelope string, ignorePrefix bool) ([]byte, error) {
	parsed, err := cryptoDomain.ParseEnvelope(envelope, c.prefix, ignorePrefix)
	if err != nil {
		return nil, err
	}

	aead, err := c.cipher(ctx)
	if err != nil {
		return nil, err
	}

	// A wrong-length nonce would make the underlying AEAD panic rather than
	// return an error, so field lengths are structural validation.
	if len(parsed.Nonce) != aead.NonceSize() || len(parsed.Tag) != aead.Overhead() {
		return nil, cryptoDomain.ErrInvalidEnvelope
	}

	sealed := make([]byte, 0, len(parsed.Ciphertext)+len(parsed.Tag))
	sealed = append(sealed, parsed.Ciphertext...)
	sealed = append(sealed, parsed.Tag...)

	plaintext, err := aead.Decrypt(sealed, parsed.Nonce, nil)
	if err != nil {
		return nil, cryptoDomain.ErrAuthenticationFailed
	}

	return plaintext, nil
}

// cipher resolves the key and builds the AEAD instance for one operation.
func (c *Codec) cipher(ctx context.Context) (AEAD, error) {
	key, err := c.provider.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	return c.manager.CreateCipher(key, c.alg)
}
