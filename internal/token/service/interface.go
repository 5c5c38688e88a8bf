package service

import (
	"context"
	"time"

	cryptoService "github.com/allisson/cryptokit/internal/crypto/service"
	tokenDomain "github.com/allisson/cryptokit/internal/token/domain"
)

// Issuer is the token contract: signed claim sets with optional envelope
// encryption of the wire form.
type Issuer interface {
	// Generate serializes the claims into a signed token.
	Generate(
		ctx context.Context,
		claims tokenDomain.ClaimSet,
		expiry time.Duration,
		codec cryptoService.SymmetricCodec,
	) (string, error)
	// Decode verifies a token and returns its claims.
	Decode(ctx context.Context, token string, codec cryptoService.SymmetricCodec) (tokenDomain.ClaimSet, error)
}
