package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/allisson/cryptokit/internal/crypto/domain"
	cryptoService "github.com/allisson/cryptokit/internal/crypto/service"
	keysDomain "github.com/allisson/cryptokit/internal/keys/domain"
	"github.com/allisson/cryptokit/internal/keys/repository"
	keysService "github.com/allisson/cryptokit/internal/keys/service"
	tokenDomain "github.com/allisson/cryptokit/internal/token/domain"
)

func provider(t *testing.T, material string) *keysService.Provider {
	t.Helper()
	p, err := keysService.FromString(material, 32)
	require.NoError(t, err)
	return p
}

func newTestIssuer(t *testing.T, key, sign string) *TokenIssuer {
	t.Helper()

	var signProvider *keysService.Provider
	if sign != "" {
		signProvider = provider(t, sign)
	}

	issuer, err := NewTokenIssuer(provider(t, key), signProvider, 0)
	require.NoError(t, err)
	return issuer
}

func newTestCodec(t *testing.T) *cryptoService.Codec {
	t.Helper()

	keyProvider, err := keysService.FromStore(repository.NewMemoryKeyStore(), keysDomain.KeyNameAES, 32)
	require.NoError(t, err)

	codec, err := cryptoService.NewCodec(keyProvider, cryptoService.NewAEADManager(), cryptoDomain.AESGCM, "")
	require.NoError(t, err)
	return codec
}

func TestNewTokenIssuer(t *testing.T) {
	t.Run("nil key is rejected", func(t *testing.T) {
		_, err := NewTokenIssuer(nil, nil, time.Hour)
		assert.ErrorIs(t, err, keysDomain.ErrNoKeySource)
	})

	t.Run("non-positive expiry selects the default", func(t *testing.T) {
		issuer, err := NewTokenIssuer(provider(t, "key"), nil, 0)
		require.NoError(t, err)
		assert.Equal(t, DefaultExpiry, issuer.defaultExpiry)
	})
}

func TestTokenIssuer_Lifecycle(t *testing.T) {
	issuer := newTestIssuer(t, "key", "")
	ctx := context.Background()

	t.Run("round trip preserves claims and injects iat/exp", func(t *testing.T) {
		token, err := issuer.Generate(ctx, tokenDomain.ClaimSet{
			"sub":  "user-42",
			"role": "admin",
		}, time.Minute, nil)
		require.NoError(t, err)
		assert.Len(t, strings.Split(token, "."), 3)

		claims, err := issuer.Decode(ctx, token, nil)
		require.NoError(t, err)
		assert.Equal(t, "user-42", claims.Subject())
		assert.Equal(t, "admin", claims["role"])

		issuedAt, ok := claims.IssuedAt()
		assert.True(t, ok)
		assert.WithinDuration(t, time.Now(), issuedAt, 5*time.Second)

		expiresAt, ok := claims.ExpiresAt()
		assert.True(t, ok)
		assert.WithinDuration(t, time.Now().Add(time.Minute), expiresAt, 5*time.Second)
	})

	t.Run("expired token fails with ErrTokenExpired", func(t *testing.T) {
		// A non-positive expiry selects the default, so force exp via a
		// caller claim.
		token, err := issuer.Generate(ctx, tokenDomain.ClaimSet{
			"sub": "user-42",
			"exp": time.Now().UTC().Add(-time.Minute).Unix(),
		}, time.Minute, nil)
		require.NoError(t, err)

		_, err = issuer.Decode(ctx, token, nil)
		assert.ErrorIs(t, err, tokenDomain.ErrTokenExpired)
	})

	t.Run("wrong key fails with ErrSignatureInvalid", func(t *testing.T) {
		token, err := issuer.Generate(ctx, tokenDomain.ClaimSet{"sub": "user-42"}, time.Minute, nil)
		require.NoError(t, err)

		other := newTestIssuer(t, "other-key", "")
		_, err = other.Decode(ctx, token, nil)
		assert.ErrorIs(t, err, tokenDomain.ErrSignatureInvalid)
	})

	t.Run("garbage fails with ErrMalformedToken", func(t *testing.T) {
		_, err := issuer.Decode(ctx, "definitely.not a.token", nil)
		assert.ErrorIs(t, err, tokenDomain.ErrMalformedToken)
	})

	t.Run("missing exp fails with ErrMalformedToken", func(t *testing.T) {
		// Force the exp claim out by overriding it with a non-numeric value.
		token, err := issuer.Generate(ctx, tokenDomain.ClaimSet{"exp": "never"}, time.Minute, nil)
		require.NoError(t, err)

		_, err = issuer.Decode(ctx, token, nil)
		assert.ErrorIs(t, err, tokenDomain.ErrMalformedToken)
	})
}

func TestTokenIssuer_ExtraIntegrity(t *testing.T) {
	ctx := context.Background()

	t.Run("round trip with sign secret", func(t *testing.T) {
		issuer := newTestIssuer(t, "key", "sign-secret")

		token, err := issuer.Generate(ctx, tokenDomain.ClaimSet{"sub": "user-42"}, time.Minute, nil)
		require.NoError(t, err)

		claims, err := issuer.Decode(ctx, token, nil)
		require.NoError(t, err)
		assert.Contains(t, claims, tokenDomain.ClaimRand)
		assert.Contains(t, claims, tokenDomain.ClaimSign)
	})

	t.Run("different sign secret fails with ErrSignMismatch", func(t *testing.T) {
		issuer := newTestIssuer(t, "key", "sign-secret")
		token, err := issuer.Generate(ctx, tokenDomain.ClaimSet{"sub": "user-42"}, time.Minute, nil)
		require.NoError(t, err)

		// Same outer key: the outer signature still verifies, only the
		// nested integrity layer fails.
		other := newTestIssuer(t, "key", "other-secret")
		_, err = other.Decode(ctx, token, nil)
		assert.ErrorIs(t, err, tokenDomain.ErrSignMismatch)
	})

	t.Run("sign claim with the wrong digest length fails", func(t *testing.T) {
		issuer := newTestIssuer(t, "key", "sign-secret")

		// The outer signature is valid; only the sign claim is truncated.
		token, err := issuer.Generate(ctx, tokenDomain.ClaimSet{tokenDomain.ClaimSign: "deadbeef"}, time.Minute, nil)
		require.NoError(t, err)

		_, err = issuer.Decode(ctx, token, nil)
		assert.ErrorIs(t, err, tokenDomain.ErrSignMismatch)
	})

	t.Run("token without rand/sign fails when sign is configured", func(t *testing.T) {
		plain := newTestIssuer(t, "key", "")
		token, err := plain.Generate(ctx, tokenDomain.ClaimSet{"sub": "user-42"}, time.Minute, nil)
		require.NoError(t, err)

		signing := newTestIssuer(t, "key", "sign-secret")
		_, err = signing.Decode(ctx, token, nil)
		assert.ErrorIs(t, err, tokenDomain.ErrSignMismatch)
	})

	t.Run("rand nonce is fresh per token", func(t *testing.T) {
		issuer := newTestIssuer(t, "key", "sign-secret")

		first, err := issuer.Generate(ctx, nil, time.Minute, nil)
		require.NoError(t, err)
		second, err := issuer.Generate(ctx, nil, time.Minute, nil)
		require.NoError(t, err)

		claims1, err := issuer.Decode(ctx, first, nil)
		require.NoError(t, err)
		claims2, err := issuer.Decode(ctx, second, nil)
		require.NoError(t, err)
		assert.NotEqual(t, claims1[tokenDomain.ClaimRand], claims2[tokenDomain.ClaimRand])
	})
}

func TestTokenIssuer_Encrypted(t *testing.T) {
	ctx := context.Background()
	issuer := newTestIssuer(t, "key", "sign-secret")
	codec := newTestCodec(t)

	t.Run("encrypted round trip", func(t *testing.T) {
		token, err := issuer.Generate(ctx, tokenDomain.ClaimSet{"sub": "user-42"}, time.Minute, codec)
		require.NoError(t, err)

		// The wire form is an envelope, not a three-part compact token.
		assert.True(t, strings.HasPrefix(token, codec.Prefix()+cryptoDomain.PrefixSeparator))

		claims, err := issuer.Decode(ctx, token, codec)
		require.NoError(t, err)
		assert.Equal(t, "user-42", claims.Subject())
	})

	t.Run("decrypt failure surfaces the codec error", func(t *testing.T) {
		token, err := issuer.Generate(ctx, tokenDomain.ClaimSet{"sub": "user-42"}, time.Minute, codec)
		require.NoError(t, err)

		other := newTestCodec(t)
		_, err = issuer.Decode(ctx, token, other)
		assert.ErrorIs(t, err, cryptoDomain.ErrAuthenticationFailed)
	})

	t.Run("decoding an envelope without a codec fails structurally", func(t *testing.T) {
		token, err := issuer.Generate(ctx, tokenDomain.ClaimSet{"sub": "user-42"}, time.Minute, codec)
		require.NoError(t, err)

		_, err = issuer.Decode(ctx, token, nil)
		assert.ErrorIs(t, err, tokenDomain.ErrMalformedToken)
	})
}
