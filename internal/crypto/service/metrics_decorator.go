package service

import (
	"context"
	"time"

	"github.com/allisson/cryptokit/internal/metrics"
)

// codecWithMetrics decorates a SymmetricCodec with metrics instrumentation.
type codecWithMetrics struct {
	next    SymmetricCodec
	metrics metrics.BusinessMetrics
}

// NewCodecWithMetrics wraps a SymmetricCodec with metrics recording.
func NewCodecWithMetrics(codec SymmetricCodec, m metrics.BusinessMetrics) SymmetricCodec {
	return &codecWithMetrics{
		next:    codec,
		metrics: m,
	}
}

// Encrypt records metrics for encryption operations.
func (c *codecWithMetrics) Encrypt(ctx context.Context, plaintext []byte) (string, error) {
	start := time.Now()
	envelope, err := c.next.Encrypt(ctx, plaintext)

	status := "success"
	if err != nil {
		status = "error"
	}

	c.metrics.RecordOperation(ctx, "crypto", "encrypt", status)
	c.metrics.RecordDuration(ctx, "crypto", "encrypt", time.Since(start), status)

	return envelope, err
}

// Decrypt records metrics for decryption operations.
func (c *codecWithMetrics) Decrypt(ctx context.Context, envelope string) ([]byte, error) {
	start := time.Now()
	plaintext, err := c.next.Decrypt(ctx, envelope)

	status := "success"
	if err != nil {
		status = "error"
	}

	c.metrics.RecordOperation(ctx, "crypto", "decrypt", status)
	c.metrics.RecordDuration(ctx, "crypto", "decrypt", time.Since(start), status)

	return plaintext, err
}
