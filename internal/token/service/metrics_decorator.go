package service

import (
	"context"
	"time"

	cryptoService "github.com/allisson/cryptokit/internal/crypto/service"
	"github.com/allisson/cryptokit/internal/metrics"
	tokenDomain "github.com/allisson/cryptokit/internal/token/domain"
)

// issuerWithMetrics decorates an Issuer with metrics instrumentation.
type issuerWithMetrics struct {
	next    Issuer
	metrics metrics.BusinessMetrics
}

// NewIssuerWithMetrics wraps an Issuer with metrics recording.
func NewIssuerWithMetrics(issuer Issuer, m metrics.BusinessMetrics) Issuer {
	return &issuerWithMetrics{
		next:    issuer,
		metrics: m,
	}
}

// Generate records metrics for token generation operations.
func (i *issuerWithMetrics) Generate(
	ctx context.Context,
	claims tokenDomain.ClaimSet,
	expiry time.Duration,
	codec cryptoService.SymmetricCodec,
) (string, error) {
	start := time.Now()
	token, err := i.next.Generate(ctx, claims, expiry, codec)

	status := "success"
	if err != nil {
		status = "error"
	}

	i.metrics.RecordOperation(ctx, "token", "token_generate", status)
	i.metrics.RecordDuration(ctx, "token", "token_generate", time.Since(start), status)

	return token, err
}

// Decode records metrics for token verification operations.
func (i *issuerWithMetrics) Decode(
	ctx context.Context,
	token string,
	codec cryptoService.SymmetricCodec,
) (tokenDomain.ClaimSet, error) {
	start := time.Now()
	claims, err := i.next.Decode(ctx, token, codec)

	status := "success"
	if err != nil {
		status = "error"
	}

	i.metrics.RecordOperation(ctx, "token", "token_decode", status)
	i.metrics.RecordDuration(ctx, "token", "token_decode", time.Since(start), status)

	return claims, err
}
