// Package service implements compact signed token issuance and verification:
// HS256-signed claim sets with an optional extra-integrity layer and optional
// envelope encryption of the whole token.
package service

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	cryptoService "github.com/allisson/cryptokit/internal/crypto/service"
	"github.com/allisson/cryptokit/internal/digest"
	keysDomain "github.com/allisson/cryptokit/internal/keys/domain"
	keysService "github.com/allisson/cryptokit/internal/keys/service"
	tokenDomain "github.com/allisson/cryptokit/internal/token/domain"
)

// DefaultExpiry is the token lifetime used when neither the issuer nor the
// call supplies one.
const DefaultExpiry = 24 * time.Hour

// randLength is the byte length of the extra-integrity nonce.
const randLength = 8

// TokenIssuer builds and parses compact signed claim sets.
//
// Tokens are three dot-delimited base64url segments signed with HMAC-SHA256
// under the issuer's key. When a secondary sign secret is configured, every
// payload additionally carries a rand/sign claim pair: a fresh random hex
// nonce and the digest of that nonce concatenated with the sign secret. This
// integrity layer is nested inside the outer signature and tied to a separate
// secret, so it remains verifiable across outer key rotations.
//
// A TokenIssuer is stateless per call and safe for concurrent use.
type TokenIssuer struct {
	key           *keysService.Provider
	sign          *keysService.Provider
	hasher        *digest.Hasher
	defaultExpiry time.Duration
}

// NewTokenIssuer creates a TokenIssuer.
//
// key signs and verifies the outer HMAC and is required. sign enables the
// extra-integrity layer and may be nil. A non-positive defaultExpiry selects
// DefaultExpiry.
func NewTokenIssuer(key, sign *keysService.Provider, defaultExpiry time.Duration) (*TokenIssuer, error) {
	if key == nil {
		return nil, keysDomain.ErrNoKeySource
	}
	if defaultExpiry <= 0 {
		defaultExpiry = DefaultExpiry
	}

	return &TokenIssuer{
		key:           key,
		sign:          sign,
		hasher:        digest.NewHasher(),
		defaultExpiry: defaultExpiry,
	}, nil
}

// Generate serializes the claims into a signed compact token.
//
// iat and exp are injected when absent; a non-positive expiry selects the
// issuer's default. When codec is non-nil the compact token is passed through
// envelope encryption and the envelope string replaces it as the wire form.
func (t *TokenIssuer) Generate(
	ctx context.Context,
	claims tokenDomain.ClaimSet,
	expiry time.Duration,
	codec cryptoService.SymmetricCodec,
) (string, error) {
	if expiry <= 0 {
		expiry = t.defaultExpiry
	}

	now := time.Now().UTC()
	payload := jwt.MapClaims{
		tokenDomain.ClaimIssuedAt: jwt.NewNumericDate(now),
		tokenDomain.ClaimExpiry:   jwt.NewNumericDate(now.Add(expiry)),
	}

	if t.sign != nil {
		signSecret, err := t.sign.Resolve(ctx)
		if err != nil {
			return "", err
		}

		nonce := make([]byte, randLength)
		if _, err := rand.Read(nonce); err != nil {
			return "", fmt.Errorf("failed to generate token nonce: %w", err)
		}

		payload[tokenDomain.ClaimRand] = hex.EncodeToString(nonce)
		payload[tokenDomain.ClaimSign] = t.signDigest(nonce, signSecret)
	}

	// Caller claims win over injected ones, including iat/exp.
	for name, value := range claims {
		payload[name] = value
	}

	key, err := t.key.Resolve(ctx)
	if err != nil {
		return "", err
	}

	compact, err := jwt.NewWithClaims(jwt.SigningMethodHS256, payload).SignedString(key)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	if codec == nil {
		return compact, nil
	}
	return codec.Encrypt(ctx, []byte(compact))
}

// Decode verifies a token and returns its ClaimSet.
//
// Verification order: structural decode, authenticated decryption when a
// codec is supplied, outer signature, extra-integrity sign claim, expiry. The
// first failure short-circuits; no partial ClaimSet crosses a failed layer.
//
// Fails with ErrTokenExpired, ErrSignatureInvalid, ErrSignMismatch, or
// ErrMalformedToken; decryption failures surface the codec's own error kinds.
func (t *TokenIssuer) Decode(
	ctx context.Context,
	token string,
	codec cryptoService.SymmetricCodec,
) (tokenDomain.ClaimSet, error) {
	if codec != nil {
		plaintext, err := codec.Decrypt(ctx, token)
		if err != nil {
			return nil, err
		}
		token = string(plaintext)
	}

	key, err := t.key.Resolve(ctx)
	if err != nil {
		return nil, err
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)

	claims := jwt.MapClaims{}
	_, err = parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return key, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenSignatureInvalid) {
			return nil, tokenDomain.ErrSignatureInvalid
		}
		return nil, tokenDomain.ErrMalformedToken
	}

	claimSet := tokenDomain.ClaimSet(claims)

	// iat and exp are mandatory claims in this token profile.
	if _, ok := claimSet.IssuedAt(); !ok {
		return nil, tokenDomain.ErrMalformedToken
	}
	expiresAt, ok := claimSet.ExpiresAt()
	if !ok {
		return nil, tokenDomain.ErrMalformedToken
	}

	if t.sign != nil {
		if err := t.verifySign(ctx, claimSet); err != nil {
			return nil, err
		}
	}

	if time.Now().UTC().After(expiresAt) {
		return nil, tokenDomain.ErrTokenExpired
	}

	return claimSet, nil
}

// verifySign recomputes the extra-integrity digest and compares it with the
// sign claim.
func (t *TokenIssuer) verifySign(ctx context.Context, claims tokenDomain.ClaimSet) error {
	randHex, ok := claims[tokenDomain.ClaimRand].(string)
	if !ok {
		return tokenDomain.ErrSignMismatch
	}
	signClaim, ok := claims[tokenDomain.ClaimSign].(string)
	if !ok {
		return tokenDomain.ErrSignMismatch
	}
	if len(signClaim) != digest.Size {
		return tokenDomain.ErrSignMismatch
	}

	nonce, err := hex.DecodeString(randHex)
	if err != nil {
		return tokenDomain.ErrMalformedToken
	}

	signSecret, err := t.sign.Resolve(ctx)
	if err != nil {
		return err
	}

	expected := t.signDigest(nonce, signSecret)
	if subtle.ConstantTimeCompare([]byte(expected), []byte(signClaim)) != 1 {
		return tokenDomain.ErrSignMismatch
	}
	return nil
}

// signDigest computes the extra-integrity digest: hash(nonce + sign secret).
func (t *TokenIssuer) signDigest(nonce, signSecret []byte) string {
	material := make([]byte, 0, len(nonce)+len(signSecret))
	material = append(material, nonce...)
	material = append(material, signSecret...)
	return t.hasher.SumBytes(material)
}
