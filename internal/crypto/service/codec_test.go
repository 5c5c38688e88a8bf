package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/allisson/cryptokit/internal/crypto/domain"
	keysDomain "github.com/allisson/cryptokit/internal/keys/domain"
	"github.com/allisson/cryptokit/internal/keys/repository"
	keysService "github.com/allisson/cryptokit/internal/keys/service"
)

func newTestCodec(t *testing.T, alg cryptoDomain.Algorithm, prefix string) *Codec {
	t.Helper()

	provider, err := keysService.FromStore(repository.NewMemoryKeyStore(), keysDomain.KeyNameAES, 32)
	require.NoError(t, err)

	codec, err := NewCodec(provider, NewAEADManager(), alg, prefix)
	require.NoError(t, err)
	return codec
}

func TestNewCodec(t *testing.T) {
	t.Run("nil provider is rejected", func(t *testing.T) {
		_, err := NewCodec(nil, NewAEADManager(), cryptoDomain.AESGCM, "")
		assert.ErrorIs(t, err, keysDomain.ErrNoKeySource)
	})

	t.Run("provider with wrong key length is rejected", func(t *testing.T) {
		provider, err := keysService.FromString("key", 16)
		require.NoError(t, err)

		_, err = NewCodec(provider, NewAEADManager(), cryptoDomain.AESGCM, "")
		assert.ErrorIs(t, err, cryptoDomain.ErrInvalidKeySize)
	})

	t.Run("empty prefix selects the default", func(t *testing.T) {
		codec := newTestCodec(t, cryptoDomain.AESGCM, "")
		assert.Equal(t, cryptoDomain.DefaultPrefix, codec.Prefix())
	})
}

func TestCodecRoundTrip(t *testing.T) {
	for _, alg := range []cryptoDomain.Algorithm{cryptoDomain.AESGCM, cryptoDomain.ChaCha20} {
		t.Run(string(alg), func(t *testing.T) {
			codec := newTestCodec(t, alg, "")

			payloads := [][]byte{
				[]byte("hello world"),
				[]byte(""),
				{0x00, 0x01, 0xff, 0xfe},
				[]byte(strings.Repeat("long payload ", 1000)),
			}

			for _, plaintext := range payloads {
				envelope, err := codec.Encrypt(context.Background(), plaintext)
				require.NoError(t, err)

				decrypted, err := codec.Decrypt(context.Background(), envelope)
				require.NoError(t, err)
				assert.Equal(t, plaintext, decrypted)
			}
		})
	}
}

func TestCodecEncrypt(t *testing.T) {
	codec := newTestCodec(t, cryptoDomain.AESGCM, "")

	t.Run("same plaintext yields different envelopes", func(t *testing.T) {
		first, err := codec.Encrypt(context.Background(), []byte("hello world"))
		require.NoError(t, err)
		second, err := codec.Encrypt(context.Background(), []byte("hello world"))
		require.NoError(t, err)

		assert.NotEqual(t, first, second)

		env1, err := cryptoDomain.ParseEnvelope(first, codec.Prefix(), false)
		require.NoError(t, err)
		env2, err := cryptoDomain.ParseEnvelope(second, codec.Prefix(), false)
		require.NoError(t, err)
		assert.NotEqual(t, env1.Nonce, env2.Nonce)
	})

	t.Run("repeated round-trips always recover the literal payload", func(t *testing.T) {
		for i := 0; i < 10; i++ {
			envelope, err := codec.Encrypt(context.Background(), []byte("hello world"))
			require.NoError(t, err)

			plaintext, err := codec.DecryptString(context.Background(), envelope)
			require.NoError(t, err)
			assert.Equal(t, "hello world", plaintext)
		}
	})

	t.Run("envelope tag has the AEAD tag size", func(t *testing.T) {
		envelope, err := codec.Encrypt(context.Background(), []byte("payload"))
		require.NoError(t, err)

		parsed, err := cryptoDomain.ParseEnvelope(envelope, codec.Prefix(), false)
		require.NoError(t, err)
		assert.Len(t, parsed.Tag, 16)
		assert.Len(t, parsed.Nonce, 12)
	})
}

func TestCodecDecrypt(t *testing.T) {
	codec := newTestCodec(t, cryptoDomain.AESGCM, "")

	t.Run("rejects unknown prefix with ErrInvalidEnvelope", func(t *testing.T) {
		envelope, err := codec.Encrypt(context.Background(), []byte("data"))
		require.NoError(t, err)

		other := newTestCodec(t, cryptoDomain.AESGCM, "other")
		_, err = other.Decrypt(context.Background(), envelope)
		assert.ErrorIs(t, err, cryptoDomain.ErrInvalidEnvelope)
	})

	t.Run("rejects garbage with ErrInvalidEnvelope", func(t *testing.T) {
		_, err := codec.Decrypt(context.Background(), "not an envelope at all")
		assert.ErrorIs(t, err, cryptoDomain.ErrInvalidEnvelope)
	})

	t.Run("wrong-length nonce is rejected, not a panic", func(t *testing.T) {
		for _, envelope := range []string{
			"cryptokit+01,aa,00112233445566778899aabbccddeeff,00",
			"cryptokit+01,,00112233445566778899aabbccddeeff,00",
			"cryptokit+01,00112233445566778899aabbccddeeff00,00112233445566778899aabbccddeeff,00",
		} {
			_, err := codec.Decrypt(context.Background(), envelope)
			assert.ErrorIs(t, err, cryptoDomain.ErrInvalidEnvelope)
		}
	})

	t.Run("wrong-length tag is rejected as malformed", func(t *testing.T) {
		envelope, err := codec.Encrypt(context.Background(), []byte("data"))
		require.NoError(t, err)

		fields := strings.Split(envelope, ",")
		fields[2] = fields[2][:len(fields[2])-2]
		_, err = codec.Decrypt(context.Background(), strings.Join(fields, ","))
		assert.ErrorIs(t, err, cryptoDomain.ErrInvalidEnvelope)
	})

	t.Run("tampered tag fails authentication", func(t *testing.T) {
		envelope, err := codec.Encrypt(context.Background(), []byte("sensitive"))
		require.NoError(t, err)

		fields := strings.Split(envelope, ",")
		fields[2] = flipHexChar(fields[2])
		_, err = codec.Decrypt(context.Background(), strings.Join(fields, ","))
		assert.ErrorIs(t, err, cryptoDomain.ErrAuthenticationFailed)
	})

	t.Run("tampered ciphertext fails authentication", func(t *testing.T) {
		envelope, err := codec.Encrypt(context.Background(), []byte("sensitive"))
		require.NoError(t, err)

		fields := strings.Split(envelope, ",")
		fields[3] = flipHexChar(fields[3])
		_, err = codec.Decrypt(context.Background(), strings.Join(fields, ","))
		assert.ErrorIs(t, err, cryptoDomain.ErrAuthenticationFailed)
	})

	t.Run("wrong key fails authentication", func(t *testing.T) {
		envelope, err := codec.Encrypt(context.Background(), []byte("sensitive"))
		require.NoError(t, err)

		other := newTestCodec(t, cryptoDomain.AESGCM, "")
		_, err = other.Decrypt(context.Background(), envelope)
		assert.ErrorIs(t, err, cryptoDomain.ErrAuthenticationFailed)
	})

	t.Run("ignore-prefix mode decrypts foreign prefixes", func(t *testing.T) {
		custom := newTestCodec(t, cryptoDomain.AESGCM, "")

		envelope, err := custom.Encrypt(context.Background(), []byte("data"))
		require.NoError(t, err)

		// Same key provider, different configured prefix.
		sibling, err := NewCodec(providerOf(t, custom), NewAEADManager(), cryptoDomain.AESGCM, "legacy")
		require.NoError(t, err)

		_, err = sibling.Decrypt(context.Background(), envelope)
		assert.ErrorIs(t, err, cryptoDomain.ErrInvalidEnvelope)

		plaintext, err := sibling.DecryptIgnorePrefix(context.Background(), envelope)
		require.NoError(t, err)
		assert.Equal(t, []byte("data"), plaintext)
	})
}

// providerOf exposes a codec's provider for building sibling codecs in tests.
func providerOf(t *testing.T, c *Codec) *keysService.Provider {
	t.Helper()
	return c.provider
}

// flipHexChar flips one hex digit so the decoded bytes change but stay valid hex.
func flipHexChar(s string) string {
	b := []byte(s)
	if b[0] == '0' {
		b[0] = '1'
	} else {
		b[0] = '0'
	}
	return string(b)
}
