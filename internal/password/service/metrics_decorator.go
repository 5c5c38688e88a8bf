package service

import (
	"context"
	"time"

	"github.com/allisson/cryptokit/internal/metrics"
)

// hasherWithMetrics decorates a Hasher with metrics instrumentation.
type hasherWithMetrics struct {
	next    Hasher
	metrics metrics.BusinessMetrics
}

// NewHasherWithMetrics wraps a Hasher with metrics recording.
func NewHasherWithMetrics(hasher Hasher, m metrics.BusinessMetrics) Hasher {
	return &hasherWithMetrics{
		next:    hasher,
		metrics: m,
	}
}

// Hash records metrics for password hashing operations.
func (h *hasherWithMetrics) Hash(ctx context.Context, password, bias string) (string, error) {
	start := time.Now()
	encoded, err := h.next.Hash(ctx, password, bias)

	status := "success"
	if err != nil {
		status = "error"
	}

	h.metrics.RecordOperation(ctx, "password", "password_hash", status)
	h.metrics.RecordDuration(ctx, "password", "password_hash", time.Since(start), status)

	return encoded, err
}

// Verify records metrics for password verification operations.
func (h *hasherWithMetrics) Verify(ctx context.Context, password, encoded, bias string) (string, error) {
	start := time.Now()
	record, err := h.next.Verify(ctx, password, encoded, bias)

	status := "success"
	if err != nil {
		status = "error"
	}

	h.metrics.RecordOperation(ctx, "password", "password_verify", status)
	h.metrics.RecordDuration(ctx, "password", "password_verify", time.Since(start), status)

	return record, err
}

// IsEqual records metrics for password comparison operations.
func (h *hasherWithMetrics) IsEqual(ctx context.Context, password, encoded, bias string) (bool, error) {
	start := time.Now()
	match, err := h.next.IsEqual(ctx, password, encoded, bias)

	status := "success"
	if err != nil {
		status = "error"
	}

	h.metrics.RecordOperation(ctx, "password", "password_is_equal", status)
	h.metrics.RecordDuration(ctx, "password", "password_is_equal", time.Since(start), status)

	return match, err
}
